package app

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/irfansharif/panotool/internal/gesture"
	"github.com/irfansharif/panotool/internal/input"
	"github.com/irfansharif/panotool/internal/project"
	"github.com/irfansharif/panotool/internal/pto"
	"github.com/irfansharif/panotool/internal/rect"
	"github.com/irfansharif/panotool/internal/viewport"
)

// App encapsulates the main application state: the photos, the camera looking
// at them, and the gesture processor driving both.
type App struct {
	Project   *project.File
	Viewport  *viewport.Viewport
	Photos    *PhotoSet
	Processor *gesture.Processor

	redraw bool // set by changes made outside the processor

	hovered  int // photo under the pointer, valid if hovering
	hovering bool
}

// NewApp wires an app around photos that are already loaded.
func NewApp(proj *project.File, photos *PhotoSet) (*App, error) {
	vp, err := viewport.New(proj.ViewportConfig())
	if err != nil {
		return nil, err
	}
	return &App{
		Project:   proj,
		Viewport:  vp,
		Photos:    photos,
		Processor: gesture.NewProcessor(vp, photos.Transforms(), proj.WheelConvention()),
		redraw:    true,
	}, nil
}

// Load reads every photo, control point and alignment file the project names
// and returns an app ready for its first frame. A missing alignment file is
// not an error; it is created on the first save.
func Load(proj *project.File) (*App, error) {
	photos := NewPhotoSet()
	for i := range proj.Photos {
		photo, err := LoadPhoto(proj.PhotoPath(i), proj.InitialTranslation(i))
		if err != nil {
			return nil, err
		}
		photo.Image = proj.ImageNumber(i)
		photos.Add(photo)
	}

	if path := proj.ControlPointsPath(); path != "" {
		pairs, err := pto.ParseFile(path)
		if err != nil {
			return nil, err
		}
		for _, photo := range photos.Photos() {
			photo.ControlPoints = pto.PointsForImage(pairs, photo.Image)
		}
		log.Printf("Loaded %d control point pairs from %s", len(pairs), path)
	}

	app, err := NewApp(proj, photos)
	if err != nil {
		return nil, err
	}
	if path := proj.AlignmentPath(); path != "" {
		if err := app.LoadAlignment(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return app, nil
}

// Frame processes one frame's input events and reports whether the frame
// needs to be redrawn.
func (app *App) Frame(events []input.Event) bool {
	redraw := app.Processor.Process(events)
	if i, ok := app.Hovered(); ok != app.hovering || i != app.hovered {
		app.hovered, app.hovering = i, ok
		redraw = true
	}
	if app.redraw {
		redraw, app.redraw = true, false
	}
	return redraw
}

// Hovered returns the first photo, in list order, under the last known
// pointer position.
func (app *App) Hovered() (int, bool) {
	w := app.Viewport.PixelsToWorld(app.Processor.Cursor())
	for i, photo := range app.Photos.Photos() {
		if photo.Transform.Contains(w) {
			return i, true
		}
	}
	return 0, false
}

// AddPhoto appends a photo to an app that is already running and makes it
// available to hit-tests and gestures.
func (app *App) AddPhoto(p *Photo) int {
	i := app.Photos.Add(p)
	app.Processor.Photos = app.Photos.Transforms()
	app.redraw = true
	return i
}

// Resize updates the viewport to a new framebuffer size. A zero size (as
// reported for minimized windows) is rejected and the previous size kept.
func (app *App) Resize(width, height int) error {
	if err := app.Viewport.SetPixelDimensions(width, height); err != nil {
		return err
	}
	app.redraw = true
	return nil
}

// ApplyAlignment reads newline-delimited transform snapshots, one per photo in
// order, and applies them. Every line is decoded before any photo changes, so
// a malformed batch leaves all photos where they were. Lines beyond the
// number of photos are ignored; photos beyond the number of lines keep their
// placement.
func (app *App) ApplyAlignment(r io.Reader) error {
	var snapshots []rect.Snapshot
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		if line > app.Photos.Len() {
			continue
		}
		var s rect.Snapshot
		if err := json.Unmarshal(scanner.Bytes(), &s); err != nil {
			return fmt.Errorf("alignment line %d: %w", line, err)
		}
		snapshots = append(snapshots, s)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading alignment: %w", err)
	}

	for i, s := range snapshots {
		app.Photos.Get(i).Transform.Restore(s)
	}
	app.redraw = true
	return nil
}

// WriteAlignment writes one snapshot line per photo, in order.
func (app *App) WriteAlignment(w io.Writer) error {
	for _, photo := range app.Photos.Photos() {
		data, err := photo.Transform.MarshalSnapshot()
		if err != nil {
			return fmt.Errorf("%s: %w", photo.Name, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return err
		}
	}
	return nil
}

func (app *App) LoadAlignment(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := app.ApplyAlignment(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("Loaded alignment from %s", path)
	return nil
}

func (app *App) SaveAlignment(path string) error {
	var buf bytes.Buffer
	if err := app.WriteAlignment(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return err
	}
	log.Printf("Saved alignment of %d photos to %s", app.Photos.Len(), path)
	return nil
}

// Title summarizes the interaction state for the window title.
func (app *App) Title() string {
	var b strings.Builder
	fmt.Fprintf(&b, "panotool (%s, zoom %d", app.Processor.Tool, app.Viewport.ZoomLevel())
	if i, ok := app.Processor.Selection(); ok && i < app.Photos.Len() {
		fmt.Fprintf(&b, ", %s selected", app.Photos.Get(i).Name)
	}
	if i, ok := app.Hovered(); ok {
		if sel, selected := app.Processor.Selection(); !selected || sel != i {
			fmt.Fprintf(&b, ", over %s", app.Photos.Get(i).Name)
		}
	}
	if _, ok := app.Processor.Pivot(); ok {
		b.WriteString(", pivot set")
	}
	fmt.Fprintf(&b, ", %s)", app.Processor.Blend)
	return b.String()
}
