package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/recera/routegen/cmd/routegen/internal/emitter"
	"github.com/recera/routegen/cmd/routegen/internal/wizard"
)

// runWizard runs the interactive questions and emits exactly one route.
// Cancelling is not an error: it prints a notice and exits 0.
func (a *app) runWizard(ctx context.Context) error {
	baseDir := a.cfg.Defaults.BaseDir
	if baseDir == "" {
		baseDir = a.workDir
	}

	a.printer.Intro()

	w := wizard.New(a.prompter(),
		wizard.WithDefaults(wizard.Defaults{
			Method:     a.cfg.Defaults.Method,
			Template:   a.cfg.Defaults.Template,
			TypeScript: a.cfg.Defaults.TypeScript,
			BaseDir:    baseDir,
		}),
		wizard.WithLogger(a.logger),
		wizard.WithBanner(a.printer.Banner),
	)

	answers, err := w.Run(ctx)
	if errors.Is(err, wizard.ErrCancelled) {
		a.printer.Cancelled()
		return nil
	}
	if err != nil {
		return fmt.Errorf("wizard: %w", err)
	}

	req, err := emitter.NewRequest(answers, a.cfg, a.workDir)
	if err != nil {
		return fmt.Errorf("invalid answers: %w", err)
	}
	return a.emit(ctx, req, false)
}
