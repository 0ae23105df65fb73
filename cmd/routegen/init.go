package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/recera/routegen/cmd/routegen/internal/config"
)

func (a *app) newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a " + config.FileName + " defaults file",
		Long: `Write the current effective defaults to ` + config.FileName + ` in the working
directory so the wizard starts from them next time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(a.workDir, config.FileName)
			if err := config.Write(a.fs, path, a.cfg, force); err != nil {
				return err
			}
			a.printer.Info("📁 Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}
