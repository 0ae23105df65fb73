package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/recera/routegen/cmd/routegen/internal/config"
	"github.com/recera/routegen/cmd/routegen/internal/emitter"
	"github.com/recera/routegen/cmd/routegen/internal/prompt"
	"github.com/recera/routegen/cmd/routegen/internal/ui"
)

// app holds the process level dependencies shared by every command.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	fs     afero.Fs
	getwd  func() (string, error)

	// set by persistent flags
	configPath string
	verbose    bool
	plain      bool

	// set in setup
	cfg     *config.Config
	workDir string
	logger  *slog.Logger
	printer *ui.Printer
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		fs:     afero.NewOsFs(),
		getwd:  os.Getwd,
	}
}

// run executes the command tree and maps the outcome to an exit code.
func (a *app) run(ctx context.Context, args []string) int {
	root := a.newRootCommand()
	root.SetArgs(args)
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	if code, ok := IsExitError(err); ok {
		return code
	}

	color := false
	if f, ok := a.stderr.(*os.File); ok {
		color = ui.IsTerminal(f) && (a.cfg == nil || a.cfg.Output.Color)
	}
	ui.NewPrinter(a.stderr, color).Error(err)
	return 1
}

func (a *app) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "routegen",
		Short: "Generate API route handlers",
		Long: `routegen asks a few questions and writes a route handler file at
<base>/app/api/<route>/route.{js,ts} from one of the built-in templates.

Run without arguments for the interactive wizard.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWizard(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a defaults file (default ./"+config.FileName+")")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging on stderr")
	root.PersistentFlags().BoolVar(&a.plain, "plain", false, "Use line based prompts instead of the terminal UI")

	root.AddCommand(a.newGenerateCommand())
	root.AddCommand(a.newTemplatesCommand())
	root.AddCommand(a.newInitCommand())

	return root
}

// setup loads configuration and builds the logger and printer.
func (a *app) setup() error {
	wd, err := a.getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	a.workDir = wd

	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.NewLoader(a.fs).Load(a.configPath, wd)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.printer = ui.NewPrinter(a.stdout, a.colorEnabled())

	a.logger.Debug("configuration loaded",
		"work_dir", wd,
		"method", cfg.Defaults.Method,
		"template", cfg.Defaults.Template,
		"typescript", cfg.Defaults.TypeScript,
		"api_dir", cfg.Output.APIDir,
	)
	return nil
}

func (a *app) colorEnabled() bool {
	if a.cfg != nil && !a.cfg.Output.Color {
		return false
	}
	f, ok := a.stdout.(*os.File)
	return ok && ui.IsTerminal(f)
}

// interactive reports whether both ends of the session are a terminal.
func (a *app) interactive() bool {
	in, ok := a.stdin.(*os.File)
	if !ok || !ui.IsTerminal(in) {
		return false
	}
	out, ok := a.stdout.(*os.File)
	return ok && ui.IsTerminal(out)
}

func (a *app) prompter() prompt.Prompter {
	if a.plain || !a.interactive() {
		a.logger.Debug("using line prompts")
		return prompt.NewLine(a.stdin, a.stdout)
	}
	return prompt.NewHuh(a.stdin, a.stdout)
}

// emit writes one route and reports it. A failed write is reported once and
// turned into exit status 1.
func (a *app) emit(ctx context.Context, req emitter.Request, dryRun bool) error {
	a.logger.Debug("generation request",
		"route", req.RouteName,
		"method", req.Method,
		"template", req.Template,
		"typescript", req.TypeScript,
		"base_dir", req.BaseDir,
	)

	e := emitter.New(a.fs, emitter.WithLogger(a.logger), emitter.WithDryRun(dryRun))
	res, err := e.Emit(ctx, req)
	if err != nil {
		a.printer.Failure(req.RouteName, err)
		a.printer.Outro(false)
		return NewExitError(1)
	}

	a.printer.Success(res)
	a.printer.Outro(true)
	return nil
}
