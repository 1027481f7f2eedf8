package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/irfansharif/panotool/internal/input"
	"github.com/irfansharif/panotool/internal/project"
)

var (
	// Global flags
	projectPath string
	width       int
	height      int
	invertWheel bool
)

var rootCmd = &cobra.Command{
	Use:   "panotool",
	Short: "Align overlapping photos by hand",
	Long: `An interactive tool for placing photos of a panorama relative to one
another: pan and zoom around the canvas, drag photos into place and rotate them
about a chosen point, guided by the control points of a .pto file.

Photos come from a project file (--project) or are listed as arguments.

Examples:
  panotool view --project pano.toml        # Align the photos of a project
  panotool view left.jpg right.jpg         # Align photos with default settings
  panotool points --project pano.toml      # List control points per photo
  panotool snapshot --project pano.toml    # Print the saved alignment`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectPath, "project", "p", "",
		"project file (TOML)")
	rootCmd.PersistentFlags().IntVar(&width, "width", 0,
		"initial window width in pixels (overrides the project)")
	rootCmd.PersistentFlags().IntVar(&height, "height", 0,
		"initial window height in pixels (overrides the project)")
	rootCmd.PersistentFlags().BoolVar(&invertWheel, "invert-wheel", false,
		"treat scrolling down as zooming in")
}

// loadProject reads the --project file, or builds a default project around
// photos listed as arguments, then applies flag overrides.
func loadProject(cmd *cobra.Command, args []string) (*project.File, error) {
	var proj *project.File
	switch {
	case projectPath != "" && len(args) > 0:
		return nil, fmt.Errorf("photos given both as arguments and by --project")
	case projectPath != "":
		var err error
		if proj, err = project.Load(projectPath); err != nil {
			return nil, err
		}
	default:
		proj = project.New(args...)
		proj.SetDir(".")
	}

	if cmd.Flags().Changed("width") {
		proj.Window.Width = width
	}
	if cmd.Flags().Changed("height") {
		proj.Window.Height = height
	}
	if invertWheel {
		proj.Wheel = input.Inverted.String()
	}
	if err := proj.Validate(); err != nil {
		return nil, err
	}
	return proj, nil
}
