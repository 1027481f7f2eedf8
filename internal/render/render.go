// Package render draws the application state with OpenGL.
//
// Each frame it:
// 1. Draws every photo as a textured quad through its rectangle transform.
// 2. Outlines the photos, highlighting the selected and hovered ones.
// 3. Marks each photo's control points at their world positions.
// 4. Draws the rotation point and, while rotating, the swept wedge.
//
// Everything is positioned in world units and mapped to NDC by one matrix
// built from the viewport's projection, so pan and zoom need no geometry
// regeneration beyond the per-frame overlays.
package render

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/irfansharif/panotool/internal/app"
	"github.com/irfansharif/panotool/internal/geom"
	"github.com/irfansharif/panotool/internal/gesture"
	"github.com/irfansharif/panotool/internal/palette"
)

var renderLogger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("PANOTOOL_DEBUG_RENDER") == "1" {
		renderLogger = log.New(os.Stdout, "[render] ", log.Ltime|log.Lmsgprefix)
	}
}

const (
	markerSide         = 10 // world units
	pivotSidePx        = 12
	borderThicknessPx  = 2
	angleLineThickness = 2 // pixels

	hoverBrightening = 0.3
	hoverAlpha       = 0.8
)

type Renderer struct {
	shaders  *ShaderManager
	quad     *buffer // the unit photo quad
	stream   *buffer // overlay geometry, re-uploaded per fill
	textures []uint32
	stats    Stats
}

// Stats tracks rendering performance metrics.
type Stats struct {
	LastDrawTimeUs float64 // time spent in last Draw() call in microseconds
	DrawCalls      int
	Triangles      int
	BufferGrowths  int
}

// NewRenderer compiles the shaders and uploads one texture per photo. It must
// be called with a current GL context.
func NewRenderer(photos *app.PhotoSet, maxTextureSize int) (*Renderer, error) {
	shaders, err := NewShaderManager()
	if err != nil {
		return nil, err
	}
	r := &Renderer{
		shaders: shaders,
		quad:    newBuffer(gl.STATIC_DRAW),
		stream:  newBuffer(gl.STREAM_DRAW),
	}
	r.quad.upload(unitQuad())

	for _, photo := range photos.Photos() {
		img, err := LoadImage(photo.Path, maxTextureSize)
		if err != nil {
			r.Delete()
			return nil, err
		}
		r.textures = append(r.textures, uploadTexture(img))
		renderLogger.Printf("uploaded %s as %dx%d texture", photo.Name, img.Rect.Dx(), img.Rect.Dy())
	}

	gl.Enable(gl.BLEND)
	return r, nil
}

// Draw renders one frame of a into the current framebuffer.
func (r *Renderer) Draw(a *app.App) error {
	startTime := time.Now()
	growths := r.quad.growths + r.stream.growths
	r.stats = Stats{}

	w, h := a.Viewport.PixelDimensions()
	gl.Viewport(0, 0, int32(w), int32(h))
	bg := palette.Clear.Vec4()
	gl.ClearColor(bg[0], bg[1], bg[2], bg[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)

	worldToNDC := a.Viewport.Projection().WorldToNDC()
	wupp := a.Viewport.WorldUnitsPerPixel()

	r.drawPhotos(a, worldToNDC)

	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	r.shaders.SetTexture(0)
	r.shaders.SetTransform(worldToNDC.Matrix4())

	r.drawBorders(a, borderThicknessPx*wupp)
	r.drawMarkers(a)
	if err := r.drawRotation(a.Processor, wupp); err != nil {
		return err
	}

	r.stats.BufferGrowths = r.quad.growths + r.stream.growths - growths
	r.stats.LastDrawTimeUs = float64(time.Since(startTime).Microseconds())
	return nil
}

// Stats returns the statistics of the last Draw call.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Delete releases the renderer's GL resources.
func (r *Renderer) Delete() {
	if len(r.textures) > 0 {
		gl.DeleteTextures(int32(len(r.textures)), &r.textures[0])
	}
	r.quad.delete()
	r.stream.delete()
	r.shaders.Delete()
}

// photoBlending returns the photo alpha and blend factors for a blend mode.
func photoBlending(mode gesture.BlendMode) (alpha float32, src, dst uint32) {
	switch mode {
	case gesture.Opaque:
		return 1, gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA
	case gesture.Additive:
		return 1, gl.ONE, gl.ONE
	default:
		return 0.5, gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA
	}
}

func (r *Renderer) drawPhotos(a *app.App, worldToNDC geom.Affine) {
	alpha, src, dst := photoBlending(a.Processor.Blend)
	gl.BlendFunc(src, dst)
	r.shaders.SetColor([4]float32{1, 1, 1, alpha})

	for i, photo := range a.Photos.Photos() {
		r.shaders.SetTexture(r.textures[i])
		r.shaders.SetTransform(worldToNDC.Mul(photo.Transform.ToWorld()).Matrix4())
		r.quad.draw()
		r.count(r.quad)
	}
}

func (r *Renderer) drawBorders(a *app.App, thickness float64) {
	selected, hasSelected := a.Processor.Selection()
	hovered, hasHovered := a.Hovered()

	var plain, hover, highlighted mesh
	for i, photo := range a.Photos.Photos() {
		m := &plain
		switch {
		case hasSelected && i == selected:
			m = &highlighted
		case hasHovered && i == hovered:
			m = &hover
		}
		outline := photo.Transform.Outline()
		for k := range outline {
			if q, ok := segment(outline[k], outline[(k+1)%len(outline)], thickness); ok {
				m.quad(q)
			}
		}
	}
	r.fill(plain, palette.Border)
	r.fill(hover, palette.Border.Brighter(hoverBrightening).WithAlpha(hoverAlpha))
	r.fill(highlighted, palette.SelectedBorder)
}

func (r *Renderer) drawMarkers(a *app.App) {
	for i, photo := range a.Photos.Photos() {
		var m mesh
		for _, pos := range photo.MarkerPositions() {
			m.quad(square(pos, markerSide, palette.MarkerAngle(i)))
		}
		r.fill(m, palette.Marker(i))
	}
}

func (r *Renderer) drawRotation(p *gesture.Processor, wupp float64) error {
	pivot, ok := p.Pivot()
	if !ok {
		return nil
	}
	var m mesh
	m.quad(square(pivot, pivotSidePx*wupp, 0))
	r.fill(m, palette.RotationPoint)

	tri, ok := p.Wedge()
	if !ok {
		return nil
	}
	var sector mesh
	if err := sector.polygon(wedge(tri[0], tri[1], tri[2])); err != nil {
		return fmt.Errorf("rotation wedge: %w", err)
	}
	r.fill(sector, palette.Wedge)

	var lines mesh
	for _, end := range tri[1:] {
		if q, ok := segment(tri[0], end, angleLineThickness*wupp); ok {
			lines.quad(q)
		}
	}
	r.fill(lines, palette.AngleLine)
	return nil
}

// fill draws m in a flat colour through the stream buffer.
func (r *Renderer) fill(m mesh, c palette.Color) {
	if len(m) == 0 {
		return
	}
	r.shaders.SetColor(c.Vec4())
	r.stream.upload(m)
	r.stream.draw()
	r.count(r.stream)
}

func (r *Renderer) count(b *buffer) {
	r.stats.DrawCalls++
	r.stats.Triangles += int(b.vertexCount / 3)
}
