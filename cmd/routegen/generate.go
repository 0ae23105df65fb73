package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/recera/routegen/cmd/routegen/internal/emitter"
	"github.com/recera/routegen/cmd/routegen/internal/wizard"
)

func (a *app) newGenerateCommand() *cobra.Command {
	var (
		route      string
		method     string
		tmpl       string
		typeScript bool
		dir        string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a route without prompting",
		Long: `Generate a route handler from flags. Values not given on the command line
come from the defaults file, then from the built-in defaults.

Examples:
  routegen generate --route users
  routegen generate --route users/[id] --method DELETE --template withErrorHandling
  routegen generate --route orders --template withValidation --typescript --dir ./web
  routegen generate --route health --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wizard.ValidateRouteName(route); err != nil {
				return err
			}

			flags := cmd.Flags()
			if !flags.Changed("method") {
				method = a.cfg.Defaults.Method
			}
			if !flags.Changed("template") {
				tmpl = a.cfg.Defaults.Template
			}
			if !flags.Changed("typescript") {
				typeScript = a.cfg.Defaults.TypeScript
			}
			if dir == "" {
				dir = a.cfg.Defaults.BaseDir
			}
			if dir == "" {
				dir = a.workDir
			}

			req := emitter.Request{
				RouteName:  strings.TrimSpace(route),
				Method:     strings.ToUpper(method),
				Template:   tmpl,
				TypeScript: typeScript,
				BaseDir:    dir,
				APIDir:     a.cfg.Output.APIDir,
			}
			return a.emit(cmd.Context(), req, dryRun)
		},
	}

	cmd.Flags().StringVarP(&route, "route", "r", "", "Route path, e.g. users or users/[id]")
	cmd.Flags().StringVarP(&method, "method", "m", "GET", "HTTP method: GET, POST, PUT, PATCH or DELETE")
	cmd.Flags().StringVarP(&tmpl, "template", "t", "basic", "Template key (see 'routegen templates')")
	cmd.Flags().BoolVar(&typeScript, "typescript", false, "Write route.ts with type annotations")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Base directory (default: working directory)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the file instead of writing it")
	_ = cmd.MarkFlagRequired("route")

	return cmd
}
