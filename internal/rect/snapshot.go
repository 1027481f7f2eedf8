package rect

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/irfansharif/panotool/internal/geom"
)

// Snapshot is the persisted part of a transform. Scale is derived from the
// photo itself and never stored.
type Snapshot struct {
	Translate geom.WorldCoords
	Rotate    float64 // degrees
}

// snapshotJSON is the wire form: {"translate":[x,y],"rotate":deg}.
type snapshotJSON struct {
	Translate *[2]float64 `json:"translate"`
	Rotate    *float64    `json:"rotate"`
}

var errIncompleteSnapshot = errors.New("snapshot needs both translate and rotate")

func (t *Transform) Snapshot() Snapshot {
	return Snapshot{Translate: t.translate, Rotate: t.rotate}
}

// Restore overwrites translation and rotation. Scale is untouched.
func (t *Transform) Restore(s Snapshot) {
	t.translate = s.Translate
	t.rotate = s.Rotate
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	xy := [2]float64{s.Translate.X, s.Translate.Y}
	rot := s.Rotate
	return json.Marshal(snapshotJSON{Translate: &xy, Rotate: &rot})
}

func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw snapshotJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Translate == nil || raw.Rotate == nil {
		return errIncompleteSnapshot
	}
	for _, v := range []float64{raw.Translate[0], raw.Translate[1], *raw.Rotate} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("snapshot value %v is not finite", v)
		}
	}
	*s = Snapshot{
		Translate: geom.WorldCoords{X: raw.Translate[0], Y: raw.Translate[1]},
		Rotate:    *raw.Rotate,
	}
	return nil
}

// MarshalSnapshot encodes the transform's translation and rotation.
func (t *Transform) MarshalSnapshot() ([]byte, error) {
	return json.Marshal(t.Snapshot())
}

// UnmarshalSnapshot decodes data produced by MarshalSnapshot into t. On error t
// is left unchanged.
func (t *Transform) UnmarshalSnapshot(data []byte) error {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding transform snapshot: %w", err)
	}
	t.Restore(s)
	return nil
}
