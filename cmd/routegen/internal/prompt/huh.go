package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// Huh renders every question as a one field huh form.
type Huh struct {
	in     io.Reader
	out    io.Writer
	keymap *huh.KeyMap
	theme  *huh.Theme
}

// NewHuh creates a terminal Prompter. ctrl+c cancels any prompt.
func NewHuh(in io.Reader, out io.Writer) *Huh {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "cancel"),
	)

	return &Huh{
		in:     in,
		out:    out,
		keymap: km,
		theme:  huh.ThemeCharm(),
	}
}

// Text prompts for text input
func (p *Huh) Text(ctx context.Context, q TextPrompt) (string, error) {
	value := q.Default
	field := huh.NewInput().
		Title(q.Title).
		Placeholder(q.Placeholder).
		Value(&value)
	if q.Validate != nil {
		field.Validate(q.Validate)
	}

	if err := p.run(ctx, field); err != nil {
		return "", fmt.Errorf("prompt input: %w", err)
	}
	return value, nil
}

// Select prompts for a single choice
func (p *Huh) Select(ctx context.Context, q SelectPrompt) (string, error) {
	if len(q.Choices) == 0 {
		return "", fmt.Errorf("select %q: no choices", q.Title)
	}

	options := make([]huh.Option[string], len(q.Choices))
	for i, c := range q.Choices {
		options[i] = huh.NewOption(c.Label, c.Value)
	}

	selected := q.Choices[q.defaultIndex()].Value
	field := huh.NewSelect[string]().
		Title(q.Title).
		Options(options...).
		Value(&selected)

	if err := p.run(ctx, field); err != nil {
		return "", fmt.Errorf("prompt select: %w", err)
	}
	return selected, nil
}

// Confirm prompts for yes/no confirmation
func (p *Huh) Confirm(ctx context.Context, q ConfirmPrompt) (bool, error) {
	value := q.Default
	field := huh.NewConfirm().
		Title(q.Title).
		Affirmative("Yes").
		Negative("No").
		Value(&value)

	if err := p.run(ctx, field); err != nil {
		return false, fmt.Errorf("prompt confirm: %w", err)
	}
	return value, nil
}

// run shows field in its own form. An abort key, or ctx ending before or
// while the form runs, is reported as ErrCancelled.
func (p *Huh) run(ctx context.Context, field huh.Field) error {
	if ctx.Err() != nil {
		return ErrCancelled
	}

	form := huh.NewForm(huh.NewGroup(field)).
		WithKeyMap(p.keymap).
		WithTheme(p.theme).
		WithShowHelp(true).
		WithProgramOptions(tea.WithInput(p.in), tea.WithOutput(p.out))

	err := form.RunWithContext(ctx)
	if err == nil {
		return nil
	}
	if errors.Is(err, huh.ErrUserAborted) || ctx.Err() != nil {
		return ErrCancelled
	}
	return err
}
