// Package wizard walks the user through the route generation questions.
//
// The wizard is a small state machine: an integer cursor over [Steps] and an
// [Answers] bundle. Answering moves the cursor forward, the go back choice moves
// it back without clearing anything, and a cancelled prompt ends the run.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/recera/routegen/cmd/routegen/internal/prompt"
	"github.com/recera/routegen/cmd/routegen/internal/template"
)

// ErrCancelled is returned by Run when the user aborts the wizard.
var ErrCancelled = errors.New("route generation cancelled")

// State is the lifecycle of a Wizard.
type State int

const (
	StateRunning State = iota
	StateCompleted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Defaults seed the answers of steps that have not been visited yet.
type Defaults struct {
	Method     string
	Template   string
	TypeScript bool
	BaseDir    string
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithDefaults sets the first-visit defaults.
func WithDefaults(d Defaults) Option {
	return func(w *Wizard) {
		w.defaults = d
	}
}

// WithLogger sets the logger used for transition events.
func WithLogger(l *slog.Logger) Option {
	return func(w *Wizard) {
		w.logger = l
	}
}

// WithBanner registers a callback invoked before each prompt with the
// 1-based step position.
func WithBanner(fn func(step Step, position, total int)) Option {
	return func(w *Wizard) {
		w.banner = fn
	}
}

// Wizard collects one answer per step.
type Wizard struct {
	prompter prompt.Prompter
	cursor   int
	answers  Answers
	state    State
	defaults Defaults
	logger   *slog.Logger
	banner   func(Step, int, int)
}

// New creates a wizard positioned on the first step.
func New(p prompt.Prompter, opts ...Option) *Wizard {
	w := &Wizard{
		prompter: p,
		answers:  make(Answers),
		state:    StateRunning,
		defaults: Defaults{Method: template.Methods[0], Template: template.Keys()[0]},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Cursor returns the index of the current step.
func (w *Wizard) Cursor() int { return w.cursor }

// State returns the lifecycle state.
func (w *Wizard) State() State { return w.state }

// Current returns the step under the cursor. ok is false once the wizard
// has left the running state.
func (w *Wizard) Current() (step Step, ok bool) {
	if w.state != StateRunning {
		return 0, false
	}
	return Steps[w.cursor], true
}

// Advance stores value for the current step and moves to the next one.
func (w *Wizard) Advance(value any) {
	if w.state != StateRunning {
		return
	}

	step := Steps[w.cursor]
	w.answers[step.Key()] = value
	w.cursor++
	if w.cursor >= len(Steps) {
		w.state = StateCompleted
	}
	w.logger.Debug("wizard advanced", "step", step.Key(), "cursor", w.cursor, "state", w.state)
}

// Back moves to the previous step. Stored answers are kept and become the
// defaults when the step is shown again.
func (w *Wizard) Back() {
	if w.state != StateRunning {
		return
	}
	if w.cursor > 0 {
		w.cursor--
	}
	w.logger.Debug("wizard went back", "cursor", w.cursor)
}

// Cancel ends the wizard without answers.
func (w *Wizard) Cancel() {
	if w.state == StateRunning {
		w.state = StateCancelled
		w.logger.Debug("wizard cancelled", "cursor", w.cursor)
	}
}

// Answers returns a copy of the answers of a completed wizard.
func (w *Wizard) Answers() (Answers, error) {
	if w.state != StateCompleted {
		return nil, fmt.Errorf("wizard is %s, not completed", w.state)
	}
	return w.answers.Clone(), nil
}

// Run asks the questions until every step is answered or the user cancels.
func (w *Wizard) Run(ctx context.Context) (Answers, error) {
	for w.state == StateRunning {
		if ctx.Err() != nil {
			w.Cancel()
			return nil, ErrCancelled
		}

		step := Steps[w.cursor]
		if w.banner != nil {
			w.banner(step, w.cursor+1, len(Steps))
		}

		value, err := w.ask(ctx, step)
		if err != nil {
			if errors.Is(err, prompt.ErrCancelled) {
				w.Cancel()
				return nil, ErrCancelled
			}
			return nil, fmt.Errorf("%s: %w", step.Title(), err)
		}

		if s, ok := value.(string); ok && s == prompt.BackValue && step.allowsBack() {
			w.Back()
			continue
		}
		w.Advance(value)
	}

	if w.state == StateCancelled {
		return nil, ErrCancelled
	}
	return w.Answers()
}

func (w *Wizard) ask(ctx context.Context, step Step) (any, error) {
	switch step {
	case StepRouteName:
		name, err := w.prompter.Text(ctx, prompt.TextPrompt{
			Title:       "What is the route name? (e.g. users or users/[id])",
			Placeholder: "users/[id]",
			Default:     w.answers.stringOr(step, ""),
			Validate:    ValidateRouteName,
		})
		return strings.TrimSpace(name), err

	case StepHTTPMethod:
		choices := make([]prompt.Choice, 0, len(template.Methods)+1)
		for _, m := range template.Methods {
			choices = append(choices, prompt.Choice{Label: m, Value: m})
		}
		return w.prompter.Select(ctx, prompt.SelectPrompt{
			Title:   "Which HTTP method should the handler export?",
			Choices: append(choices, prompt.BackChoice()),
			Default: w.answers.stringOr(step, w.defaults.Method),
		})

	case StepTemplate:
		defs := template.All()
		choices := make([]prompt.Choice, 0, len(defs)+1)
		for _, d := range defs {
			choices = append(choices, prompt.Choice{Label: d.Label(), Value: d.Key})
		}
		return w.prompter.Select(ctx, prompt.SelectPrompt{
			Title:   "Which template should be used?",
			Choices: append(choices, prompt.BackChoice()),
			Default: w.answers.stringOr(step, w.defaults.Template),
		})

	case StepUseTypeScript:
		return w.prompter.Confirm(ctx, prompt.ConfirmPrompt{
			Title:   "Use TypeScript?",
			Default: w.answers.boolOr(step, w.defaults.TypeScript),
		})

	case StepBaseDirectory:
		dir, err := w.prompter.Text(ctx, prompt.TextPrompt{
			Title:       "Base directory for the app folder",
			Placeholder: w.defaults.BaseDir,
			Default:     w.answers.stringOr(step, w.defaults.BaseDir),
		})
		return strings.TrimSpace(dir), err
	}

	return nil, fmt.Errorf("unknown step %d", int(step))
}

// ValidateRouteName rejects names the emitter cannot turn into a path.
// Segments are otherwise opaque, so dynamic segments like [id] or [...slug]
// pass unchanged.
func ValidateRouteName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errors.New("route name is required")
	}

	segments := 0
	for _, seg := range strings.Split(trimmed, "/") {
		switch seg {
		case "":
			continue
		case ".", "..":
			return errors.New("route segments cannot be '.' or '..'")
		}
		segments++
	}
	if segments == 0 {
		return errors.New("route name needs at least one path segment")
	}
	return nil
}
