package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/irfansharif/panotool/internal/app"
)

var pointsCmd = &cobra.Command{
	Use:   "points [photo...]",
	Short: "List each photo's control points",
	Long: `List the control points of every photo, in the photo's own pixels and at
their current world position (after applying the saved alignment).

Examples:
  panotool points --project pano.toml
  panotool points --project pano.toml --photo left.jpg`,
	RunE: runPoints,
}

var pointsPhoto string

func init() {
	rootCmd.AddCommand(pointsCmd)

	pointsCmd.Flags().StringVar(&pointsPhoto, "photo", "",
		"only list the photo with this file name")
}

func runPoints(cmd *cobra.Command, args []string) error {
	proj, err := loadProject(cmd, args)
	if err != nil {
		return err
	}
	application, err := app.Load(proj)
	if err != nil {
		return err
	}

	photos := application.Photos.Photos()
	first := 0
	if pointsPhoto != "" {
		i, ok := application.Photos.Index(pointsPhoto)
		if !ok {
			return fmt.Errorf("no photo named %q", pointsPhoto)
		}
		photos, first = photos[i:i+1], i
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for i, photo := range photos {
		fmt.Fprintf(w, "%d: %s (image %d, %d control points)\n", first+i, photo.Name, photo.Image, len(photo.ControlPoints))
		world := photo.MarkerPositions()
		for j, cp := range photo.ControlPoints {
			fmt.Fprintf(w, "\t%v\t%v\n", cp, world[j])
		}
	}
	return w.Flush()
}
