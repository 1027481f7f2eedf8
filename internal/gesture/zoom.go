package gesture

import (
	"github.com/irfansharif/panotool/internal/geom"
	"github.com/irfansharif/panotool/internal/viewport"
)

// ZoomAt runs one zoom step (vp.ZoomIn or vp.ZoomOut) keeping the world point
// under cursor fixed on screen. The camera first moves onto the cursor, the
// zoom level changes, then the camera moves back by the same screen offset
// measured at the new zoom. Returns whether the zoom level changed; if it did
// not the camera is left exactly as it was.
func ZoomAt(vp *viewport.Viewport, cursor geom.PixelCoords, step func() bool) bool {
	camera := vp.CameraPosition
	offset := vp.PixelToScreen(cursor)

	vp.CameraPosition = vp.CameraPosition.Add(vp.ScreenToWorldAtOrigin(offset))
	if !step() {
		vp.CameraPosition = camera
		return false
	}
	vp.CameraPosition = vp.CameraPosition.Sub(vp.ScreenToWorldAtOrigin(offset))
	return true
}
