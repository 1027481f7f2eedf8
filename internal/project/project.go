// Package project provides the panorama project file: which photos to load,
// where their control points and saved alignment live, and how the viewport
// starts out.
//
// Project files are TOML:
//
//	control_points = "pano.pto"
//	alignment = "pano.align"
//	wheel = "natural"
//
//	[viewport]
//	zoom_level = 11
//
//	[[photos]]
//	path = "left.jpg"
//
//	[[photos]]
//	path = "right.jpg"
//	translation = [900, 0]
//
// Relative paths are relative to the project file.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/irfansharif/panotool/internal/geom"
	"github.com/irfansharif/panotool/internal/input"
	"github.com/irfansharif/panotool/internal/viewport"
)

// photoSpacing is how far apart, along x, photos without an explicit
// translation start out.
const photoSpacing = 500

// File is a decoded project file.
type File struct {
	Photos []Photo `toml:"photos"`

	// Data file paths (relative to the project file).
	ControlPoints string `toml:"control_points"`
	Alignment     string `toml:"alignment"`

	Wheel          string         `toml:"wheel"`
	MaxTextureSize int            `toml:"max_texture_size"`
	Window         WindowSettings `toml:"window"`
	Viewport       ViewSettings   `toml:"viewport"`

	dir string // directory of the project file, for resolving paths
}

// Photo is one image to arrange.
type Photo struct {
	Path string `toml:"path"`

	// Translation is where the photo's center starts out, in world units.
	// Defaults to a row along the x axis.
	Translation *[2]float64 `toml:"translation"`

	// Image is the photo's image number in the control point file. Defaults to
	// its position in the photo list.
	Image *uint64 `toml:"image"`
}

type WindowSettings struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type ViewSettings struct {
	Camera    [2]float64 `toml:"camera"`
	ZoomScale float64    `toml:"zoom_scale"`
	ZoomLevel int        `toml:"zoom_level"`
	ZoomMin   int        `toml:"zoom_min"`
	ZoomMax   int        `toml:"zoom_max"`
}

// New returns a project with default settings for the given photos.
func New(photos ...string) *File {
	vc := viewport.DefaultConfig()
	f := &File{
		Wheel:          input.Natural.String(),
		MaxTextureSize: 4096,
		Window:         WindowSettings{Width: vc.Width, Height: vc.Height},
		Viewport: ViewSettings{
			ZoomScale: vc.ZoomScale,
			ZoomLevel: vc.ZoomLevel,
			ZoomMin:   vc.ZoomMin,
			ZoomMax:   vc.ZoomMax,
		},
	}
	for _, p := range photos {
		f.Photos = append(f.Photos, Photo{Path: p})
	}
	return f
}

// Load reads a project file. Settings it leaves out keep their defaults;
// unknown keys are an error.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Decode(string(data), filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Decode parses project file contents. dir is used to resolve relative paths.
func Decode(contents, dir string) (*File, error) {
	f := New()
	md, err := toml.Decode(contents, f)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	f.dir = dir
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks the settings that cannot be caught by decoding alone.
func (f *File) Validate() error {
	var errs []error
	if len(f.Photos) == 0 {
		errs = append(errs, errors.New("no photos"))
	}
	for i, p := range f.Photos {
		if p.Path == "" {
			errs = append(errs, fmt.Errorf("photo %d has no path", i))
		}
	}
	if _, err := input.ParseWheelConvention(f.Wheel); err != nil {
		errs = append(errs, err)
	}
	if f.MaxTextureSize <= 0 {
		errs = append(errs, fmt.Errorf("max_texture_size must be positive, got %d", f.MaxTextureSize))
	}
	if _, err := viewport.New(f.ViewportConfig()); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Resolve returns path relative to the project file's directory, unless it is
// absolute or empty.
func (f *File) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(f.dir, path)
}

// SetDir sets the directory relative paths resolve against.
func (f *File) SetDir(dir string) { f.dir = dir }

// PhotoPath returns the resolved path of photo i.
func (f *File) PhotoPath(i int) string { return f.Resolve(f.Photos[i].Path) }

// ControlPointsPath returns the resolved control point file, or "" for none.
func (f *File) ControlPointsPath() string { return f.Resolve(f.ControlPoints) }

// AlignmentPath returns the resolved alignment file, or "" for none.
func (f *File) AlignmentPath() string { return f.Resolve(f.Alignment) }

// InitialTranslation returns where photo i starts out.
func (f *File) InitialTranslation(i int) geom.WorldCoords {
	if t := f.Photos[i].Translation; t != nil {
		return geom.WorldCoords{X: t[0], Y: t[1]}
	}
	return geom.WorldCoords{X: float64(i) * photoSpacing}
}

// ImageNumber returns photo i's image number in the control point file.
func (f *File) ImageNumber(i int) uint64 {
	if n := f.Photos[i].Image; n != nil {
		return *n
	}
	return uint64(i)
}

// WheelConvention returns the parsed wheel setting. Validate has already
// rejected unknown values for loaded files.
func (f *File) WheelConvention() input.WheelConvention {
	w, _ := input.ParseWheelConvention(f.Wheel)
	return w
}

func (f *File) ViewportConfig() viewport.Config {
	return viewport.Config{
		CameraPosition: geom.WorldCoords{X: f.Viewport.Camera[0], Y: f.Viewport.Camera[1]},
		ZoomScale:      f.Viewport.ZoomScale,
		ZoomLevel:      f.Viewport.ZoomLevel,
		ZoomMin:        f.Viewport.ZoomMin,
		ZoomMax:        f.Viewport.ZoomMax,
		Width:          f.Window.Width,
		Height:         f.Window.Height,
	}
}
