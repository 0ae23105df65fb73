// Package emitter turns a completed set of answers into a route handler file.
package emitter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/recera/routegen/cmd/routegen/internal/config"
	"github.com/recera/routegen/cmd/routegen/internal/template"
	"github.com/recera/routegen/cmd/routegen/internal/wizard"
)

// Request is everything needed to produce one route file.
type Request struct {
	RouteName  string
	Method     string
	Template   string
	TypeScript bool
	BaseDir    string
	// APIDir is the route root below BaseDir, config.DefaultAPIDir when empty.
	APIDir string
}

// Result describes a finished emission.
type Result struct {
	Path    string
	Bytes   int
	Elapsed time.Duration
	DryRun  bool
	Content string
}

// NewRequest projects wizard answers onto a Request. An empty base directory
// answer falls back to the configured one, then to workDir.
func NewRequest(a wizard.Answers, cfg *config.Config, workDir string) (Request, error) {
	route, err := a.String(wizard.StepRouteName)
	if err != nil {
		return Request{}, err
	}
	method, err := a.String(wizard.StepHTTPMethod)
	if err != nil {
		return Request{}, err
	}
	tmpl, err := a.String(wizard.StepTemplate)
	if err != nil {
		return Request{}, err
	}
	ts, err := a.Bool(wizard.StepUseTypeScript)
	if err != nil {
		return Request{}, err
	}
	baseDir, err := a.String(wizard.StepBaseDirectory)
	if err != nil {
		return Request{}, err
	}

	if baseDir == "" {
		baseDir = cfg.Defaults.BaseDir
	}
	if baseDir == "" {
		baseDir = workDir
	}

	return Request{
		RouteName:  route,
		Method:     method,
		Template:   tmpl,
		TypeScript: ts,
		BaseDir:    baseDir,
		APIDir:     cfg.Output.APIDir,
	}, nil
}

// Extension returns the file extension for the language switch.
func Extension(typeScript bool) string {
	if typeScript {
		return ".ts"
	}
	return ".js"
}

// Segments splits a route name on "/". Segments are passed through verbatim,
// empty ones from doubled or edge slashes are dropped.
func Segments(routeName string) []string {
	var out []string
	for _, seg := range strings.Split(strings.TrimSpace(routeName), "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// Destination computes <BaseDir>/<APIDir>/<segments...>/route.<ext>.
func Destination(req Request) string {
	apiDir := req.APIDir
	if apiDir == "" {
		apiDir = config.DefaultAPIDir
	}

	parts := []string{req.BaseDir, filepath.FromSlash(apiDir)}
	parts = append(parts, Segments(req.RouteName)...)
	parts = append(parts, "route"+Extension(req.TypeScript))
	return filepath.Join(parts...)
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithLogger sets the logger for emission events.
func WithLogger(l *slog.Logger) Option {
	return func(e *Emitter) {
		e.logger = l
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Emitter) {
		e.now = now
	}
}

// WithDryRun renders without touching the filesystem.
func WithDryRun(enabled bool) Option {
	return func(e *Emitter) {
		e.dryRun = enabled
	}
}

// Emitter renders templates and writes them to a filesystem.
type Emitter struct {
	fs     afero.Fs
	logger *slog.Logger
	now    func() time.Time
	dryRun bool
}

// New creates an Emitter writing to fs.
func New(fs afero.Fs, opts ...Option) *Emitter {
	e := &Emitter{
		fs:     fs,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emit renders req and writes the result, creating parent directories and
// replacing any existing file at the destination.
func (e *Emitter) Emit(ctx context.Context, req Request) (Result, error) {
	start := e.now()
	path := Destination(req)
	logger := e.logger.With("route", req.RouteName, "path", path)

	if err := wizard.ValidateRouteName(req.RouteName); err != nil {
		logger.Error("route generation failed", "error", err)
		return Result{}, fmt.Errorf("route %q: %w", req.RouteName, err)
	}

	content, err := template.Render(req.Template, req.Method, req.RouteName, req.TypeScript)
	if err != nil {
		logger.Error("route generation failed", "error", err)
		return Result{}, fmt.Errorf("render %s: %w", req.RouteName, err)
	}

	if err := ctx.Err(); err != nil {
		logger.Error("route generation failed", "error", err)
		return Result{}, err
	}

	if !e.dryRun {
		if err := e.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			logger.Error("route generation failed", "error", err)
			return Result{}, fmt.Errorf("failed to create directory %s: %w", filepath.Dir(path), err)
		}
		if err := afero.WriteFile(e.fs, path, []byte(content), 0o644); err != nil {
			logger.Error("route generation failed", "error", err)
			return Result{}, fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	res := Result{
		Path:    path,
		Bytes:   len(content),
		Elapsed: e.now().Sub(start),
		DryRun:  e.dryRun,
		Content: content,
	}
	logger.Debug("route generated",
		"method", req.Method,
		"template", req.Template,
		"typescript", req.TypeScript,
		"bytes", res.Bytes,
		"elapsed", res.Elapsed,
		"dry_run", e.dryRun,
	)
	return res, nil
}
