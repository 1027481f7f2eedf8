package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/irfansharif/panotool/internal/app"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [photo...]",
	Short: "Print every photo's placement",
	Long: `Print one transform snapshot per photo, in the same newline-delimited JSON
format the alignment file uses. Photos missing from the alignment file show
their starting placement.

Examples:
  panotool snapshot --project pano.toml > backup.align`,
	RunE: runSnapshot,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	proj, err := loadProject(cmd, args)
	if err != nil {
		return err
	}
	application, err := app.Load(proj)
	if err != nil {
		return err
	}
	return application.WriteAlignment(os.Stdout)
}
