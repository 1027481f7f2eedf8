package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/irfansharif/panotool/internal/input"
)

func testCommand(t *testing.T) *cobra.Command {
	t.Helper()
	projectPath, width, height, invertWheel = "", 0, 0, false
	cmd := &cobra.Command{}
	cmd.Flags().IntVar(&width, "width", 0, "")
	cmd.Flags().IntVar(&height, "height", 0, "")
	return cmd
}

func TestLoadProjectFromArgs(t *testing.T) {
	cmd := testCommand(t)
	if err := cmd.Flags().Set("width", "800"); err != nil {
		t.Fatal(err)
	}
	invertWheel = true

	proj, err := loadProject(cmd, []string{"a.png", "b.png"})
	if err != nil {
		t.Fatal(err)
	}
	if len(proj.Photos) != 2 || proj.PhotoPath(1) != "b.png" {
		t.Errorf("photos = %+v", proj.Photos)
	}
	if proj.Window.Width != 800 || proj.Window.Height != 960 {
		t.Errorf("window = %+v", proj.Window)
	}
	if proj.WheelConvention() != input.Inverted {
		t.Errorf("wheel = %v", proj.WheelConvention())
	}
}

func TestLoadProjectFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pano.toml")
	if err := os.WriteFile(path, []byte("[window]\nheight = 300\n[[photos]]\npath = \"a.png\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := testCommand(t)
	projectPath = path
	proj, err := loadProject(cmd, nil)
	if err != nil {
		t.Fatal(err)
	}
	if proj.Window.Height != 300 || proj.PhotoPath(0) != filepath.Join(filepath.Dir(path), "a.png") {
		t.Errorf("project = %+v", proj)
	}

	if _, err := loadProject(cmd, []string{"b.png"}); err == nil {
		t.Errorf("photos from both a project and arguments accepted")
	}

	cmd = testCommand(t)
	if _, err := loadProject(cmd, nil); err == nil {
		t.Errorf("a project without photos accepted")
	}
}
