package writers

import (
	"github.com/achilleasa/scenecache/compiledscene"
	"github.com/achilleasa/scenecache/scenegraph"
)

// WriteCamera serializes the scene's camera into its fixed on-device
// record. Physical is derived from Aperture > 0 (kPhysical vs. kDefault in
// the original), a supplemental field carried per SPEC_FULL §12.
func WriteCamera(c *scenegraph.Camera) compiledscene.Camera {
	rec := compiledscene.Camera{
		Forward:       c.Forward,
		Up:            c.Up,
		Right:         c.Right,
		Position:      c.Position,
		Aperture:      c.Aperture,
		AspectRatio:   c.AspectRatio,
		Dim:           c.SensorSize,
		FocalLength:   c.FocalLength,
		FocusDistance: c.FocusDistance,
		DepthRange:    c.DepthRange,
	}
	if c.Physical() {
		rec.Physical = 1
	}

	c.SetDirty(false)
	return rec
}
