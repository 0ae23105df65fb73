// Package prompt provides the input widgets the wizard asks questions with.
package prompt

import (
	"context"
	"errors"
)

// ErrCancelled is returned by a Prompter when the user aborts the prompt.
var ErrCancelled = errors.New("prompt cancelled")

// BackValue is the choice value that asks the caller to return to the previous step.
const BackValue = "__back__"

// Prompter asks one question at a time.
type Prompter interface {
	Text(ctx context.Context, p TextPrompt) (string, error)
	Select(ctx context.Context, p SelectPrompt) (string, error)
	Confirm(ctx context.Context, p ConfirmPrompt) (bool, error)
}

// TextPrompt is a free text question.
type TextPrompt struct {
	Title       string
	Placeholder string
	Default     string
	// Validate rejects an answer in place; the user is asked again.
	Validate func(string) error
}

// Choice is one entry of a SelectPrompt.
type Choice struct {
	Label string
	Value string
}

// SelectPrompt is a single choice question.
type SelectPrompt struct {
	Title   string
	Choices []Choice
	// Default is the Value preselected, empty selects the first choice.
	Default string
}

// ConfirmPrompt is a yes/no question.
type ConfirmPrompt struct {
	Title   string
	Default bool
}

// BackChoice is appended to select lists that allow going back.
func BackChoice() Choice {
	return Choice{Label: "← Go back", Value: BackValue}
}

func (p SelectPrompt) defaultIndex() int {
	for i, c := range p.Choices {
		if c.Value == p.Default {
			return i
		}
	}
	return 0
}
