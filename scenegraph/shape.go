package scenegraph

import "github.com/achilleasa/scenecache/types"

// Shape is the sealed interface implemented by Mesh and Instance. A Shape
// may appear in a scene's shape list directly (as a mesh or an instance) or
// only indirectly, as the base mesh an instance refers to.
type Shape interface {
	isShape()
	Dirty() bool
	SetDirty(bool)
	Material() Material
	Transform() types.Mat4
}

// Mesh owns its own vertex/index data.
type Mesh struct {
	Name      string
	Vertices  []types.Vec3
	Normals   []types.Vec3
	UVs       []types.Vec2
	Indices   []uint32
	Xform     types.Mat4
	Mat       Material
	dirty     bool
}

// NewMesh creates a mesh with an identity transform.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name, Xform: types.Mat4Ident()}
}

func (m *Mesh) isShape() {}

func (m *Mesh) Dirty() bool { return m.dirty }

func (m *Mesh) SetDirty(d bool) { m.dirty = d }

func (m *Mesh) Material() Material { return m.Mat }

func (m *Mesh) Transform() types.Mat4 { return m.Xform }

// NumTriangles returns the number of triangles described by Indices.
func (m *Mesh) NumTriangles() int { return len(m.Indices) / 3 }

// Instance shares Base's vertex/index data under its own transform and
// material, and does not contribute its own geometry.
type Instance struct {
	Base  *Mesh
	Xform types.Mat4
	Mat   Material
	dirty bool
}

// NewInstance creates an instance of base with an identity transform.
func NewInstance(base *Mesh) *Instance {
	return &Instance{Base: base, Xform: types.Mat4Ident()}
}

func (i *Instance) isShape() {}

func (i *Instance) Dirty() bool { return i.dirty }

func (i *Instance) SetDirty(d bool) { i.dirty = d }

// Material returns the instance's own material, or nil if it has none. An
// instance never inherits its base mesh's material: per §4.2/§4.5, a shape
// or instance with no material of its own is shaded with the shared
// default material, not with whatever its base geometry happens to use.
func (i *Instance) Material() Material {
	return i.Mat
}

func (i *Instance) Transform() types.Mat4 { return i.Xform }
