package scenegraph

import "github.com/achilleasa/scenecache/types"

// Camera describes the viewpoint the writer serializes into a compiled
// camera record.
type Camera struct {
	Forward       types.Vec3
	Up            types.Vec3
	Right         types.Vec3
	Position      types.Vec3
	Aperture      float32
	AspectRatio   float32
	SensorSize    types.Vec2
	FocalLength   float32
	FocusDistance float32
	DepthRange    types.Vec2
	dirty         bool
}

// NewCamera creates a camera looking down -Z with an identity basis.
func NewCamera() *Camera {
	return &Camera{
		Forward:     types.XYZ(0, 0, -1),
		Up:          types.XYZ(0, 1, 0),
		Right:       types.XYZ(1, 0, 0),
		AspectRatio: 1,
		SensorSize:  types.XY(0.036, 0.024),
		FocalLength: 0.035,
		DepthRange:  types.XY(0.0, 1e5),
	}
}

func (c *Camera) Dirty() bool { return c.dirty }

func (c *Camera) SetDirty(d bool) { c.dirty = d }

// Physical reports whether the camera should be tagged as a physical
// (aperture-based depth of field) camera rather than a pinhole default.
func (c *Camera) Physical() bool { return c.Aperture > 0 }
