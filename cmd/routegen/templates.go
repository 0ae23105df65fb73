package main

import (
	"github.com/spf13/cobra"

	"github.com/recera/routegen/cmd/routegen/internal/template"
)

func (a *app) newTemplatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the built-in templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.printer.Templates(template.All())
			return nil
		},
	}
}
