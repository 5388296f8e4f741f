package scenegraph

import "github.com/achilleasa/scenecache/types"

// LightKind tags the concrete variant behind the Light interface.
type LightKind int

const (
	LightPoint LightKind = iota
	LightDirectional
	LightSpot
	LightIbl
	LightArea
)

func (k LightKind) String() string {
	switch k {
	case LightPoint:
		return "point"
	case LightDirectional:
		return "directional"
	case LightSpot:
		return "spot"
	case LightIbl:
		return "ibl"
	case LightArea:
		return "area"
	default:
		return "unknown"
	}
}

// Light is the sealed interface implemented by each light variant.
type Light interface {
	isLight()
	Kind() LightKind
	Dirty() bool
	SetDirty(bool)
	// Textures returns the textures this light directly references.
	// Only Ibl yields one in practice.
	Textures() []*Texture
}

// PointLight radiates intensity equally in all directions from Position.
type PointLight struct {
	Position  types.Vec3
	Intensity types.Vec3
	dirty     bool
}

func (l *PointLight) isLight()              {}
func (l *PointLight) Kind() LightKind       { return LightPoint }
func (l *PointLight) Dirty() bool           { return l.dirty }
func (l *PointLight) SetDirty(d bool)       { l.dirty = d }
func (l *PointLight) Textures() []*Texture  { return nil }

// DirectionalLight radiates parallel rays along Direction, as from an
// infinitely distant source.
type DirectionalLight struct {
	Direction types.Vec3
	Intensity types.Vec3
	dirty     bool
}

func (l *DirectionalLight) isLight()              {}
func (l *DirectionalLight) Kind() LightKind       { return LightDirectional }
func (l *DirectionalLight) Dirty() bool           { return l.dirty }
func (l *DirectionalLight) SetDirty(d bool)       { l.dirty = d }
func (l *DirectionalLight) Textures() []*Texture  { return nil }

// SpotLight is a point light constrained to a cone.
type SpotLight struct {
	Position            types.Vec3
	Direction           types.Vec3
	Intensity           types.Vec3
	InnerAngle          float32
	OuterAngle          float32
	dirty               bool
}

func (l *SpotLight) isLight()              {}
func (l *SpotLight) Kind() LightKind       { return LightSpot }
func (l *SpotLight) Dirty() bool           { return l.dirty }
func (l *SpotLight) SetDirty(d bool)       { l.dirty = d }
func (l *SpotLight) Textures() []*Texture  { return nil }

// IblLight is an image-based environment light. At most one such light in a
// scene may provide the envmapidx the writer resolves; if several are
// present, the last one written wins.
type IblLight struct {
	Multiplier float32
	Texture    *Texture
	dirty      bool
}

func (l *IblLight) isLight()        {}
func (l *IblLight) Kind() LightKind { return LightIbl }
func (l *IblLight) Dirty() bool     { return l.dirty }
func (l *IblLight) SetDirty(d bool) { l.dirty = d }

// Textures returns the single texture this environment light samples, if
// any.
func (l *IblLight) Textures() []*Texture {
	if l.Texture == nil {
		return nil
	}
	return []*Texture{l.Texture}
}

// AreaLight is emission from a shape's surface, identified by the shape it
// rides on and, for instances, the local primitive index within that shape.
type AreaLight struct {
	Shape          Shape
	PrimitiveIndex uint32
	dirty          bool
}

func (l *AreaLight) isLight()              {}
func (l *AreaLight) Kind() LightKind       { return LightArea }
func (l *AreaLight) Dirty() bool           { return l.dirty }
func (l *AreaLight) SetDirty(d bool)       { l.dirty = d }
func (l *AreaLight) Textures() []*Texture  { return nil }
