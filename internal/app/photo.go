package app

import (
	"fmt"
	"image"
	_ "image/jpeg" // register decoders for image.DecodeConfig
	_ "image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/irfansharif/panotool/internal/geom"
	"github.com/irfansharif/panotool/internal/rect"
)

// Photo is one image placed in the world. Its transform is sized in pixels, so
// one image pixel is one world unit before any zoom.
type Photo struct {
	Name          string
	Path          string
	Width, Height int // in image pixels
	Image         uint64

	Transform     *rect.Transform
	ControlPoints []geom.PixelCoords // local pixel positions
}

// NewPhoto returns a photo of the given pixel size centered at translation.
func NewPhoto(path string, width, height int, translation geom.WorldCoords) *Photo {
	t := rect.New(float64(width), float64(height))
	t.SetTranslation(translation)
	return &Photo{
		Name:      filepath.Base(path),
		Path:      path,
		Width:     width,
		Height:    height,
		Transform: t,
	}
}

// LoadPhoto reads just enough of the image at path to learn its size.
func LoadPhoto(path string, translation geom.WorldCoords) (*Photo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%s: %s image has no pixels (%dx%d)", path, format, cfg.Width, cfg.Height)
	}
	return NewPhoto(path, cfg.Width, cfg.Height, translation), nil
}

// MarkerPositions returns the world position of every control point.
func (p *Photo) MarkerPositions() []geom.WorldCoords {
	positions := make([]geom.WorldCoords, len(p.ControlPoints))
	for i, cp := range p.ControlPoints {
		positions[i] = p.Transform.LocalToWorld(cp)
	}
	return positions
}

func (p *Photo) String() string {
	return fmt.Sprintf("%s (%dx%d) %v", p.Name, p.Width, p.Height, p.Transform)
}

// PhotoSet is the ordered list of photos. Order decides hit-test priority
// (earlier wins) and draw order (later drawn on top).
type PhotoSet struct {
	photos     []*Photo
	transforms []*rect.Transform
}

func NewPhotoSet(photos ...*Photo) *PhotoSet {
	ps := &PhotoSet{}
	for _, p := range photos {
		ps.Add(p)
	}
	return ps
}

// Add appends a photo and returns its index. Once the set belongs to an App,
// add photos through App.AddPhoto so the gesture processor sees them.
func (ps *PhotoSet) Add(p *Photo) int {
	ps.photos = append(ps.photos, p)
	ps.transforms = append(ps.transforms, p.Transform)
	return len(ps.photos) - 1
}

func (ps *PhotoSet) Len() int { return len(ps.photos) }

func (ps *PhotoSet) Get(i int) *Photo { return ps.photos[i] }

// Photos returns the photos in order. The slice must not be modified.
func (ps *PhotoSet) Photos() []*Photo { return ps.photos }

// Transforms returns each photo's transform, index-aligned with Photos.
func (ps *PhotoSet) Transforms() []*rect.Transform { return ps.transforms }

// Index returns the index of the photo with the given name.
func (ps *PhotoSet) Index(name string) (int, bool) {
	for i, p := range ps.photos {
		if p.Name == name {
			return i, true
		}
	}
	return 0, false
}
