package scenegraph

import "github.com/achilleasa/scenecache/types"

// BxdfKind enumerates the leaf BxDF variants a SingleBxdf material can wrap.
type BxdfKind int

const (
	BxdfZero BxdfKind = iota
	BxdfLambert
	BxdfEmissive
	BxdfPassthrough
	BxdfTranslucent
	BxdfIdealRefract
	BxdfIdealReflect
	BxdfMicrofacetGGX
	BxdfMicrofacetBeckmann
	BxdfMicrofacetRefractionGGX
	BxdfMicrofacetRefractionBeckmann
)

func (k BxdfKind) String() string {
	switch k {
	case BxdfZero:
		return "zero"
	case BxdfLambert:
		return "lambert"
	case BxdfEmissive:
		return "emissive"
	case BxdfPassthrough:
		return "passthrough"
	case BxdfTranslucent:
		return "translucent"
	case BxdfIdealRefract:
		return "ideal_refract"
	case BxdfIdealReflect:
		return "ideal_reflect"
	case BxdfMicrofacetGGX:
		return "microfacet_ggx"
	case BxdfMicrofacetBeckmann:
		return "microfacet_beckmann"
	case BxdfMicrofacetRefractionGGX:
		return "microfacet_refraction_ggx"
	case BxdfMicrofacetRefractionBeckmann:
		return "microfacet_refraction_beckmann"
	default:
		return "unknown"
	}
}

// MultiOp enumerates the ways two child materials can be combined into a
// MultiBxdf.
type MultiOp int

const (
	OpMix MultiOp = iota
	OpLayered
	OpFresnelBlend
)

func (o MultiOp) String() string {
	switch o {
	case OpMix:
		return "mix"
	case OpLayered:
		return "layered"
	case OpFresnelBlend:
		return "fresnel_blend"
	default:
		return "unknown"
	}
}

// InputKind tags the union held by an Input.
type InputKind int

const (
	InputFloat4 InputKind = iota
	InputTexture
	InputMaterial
)

// Input is a single named material parameter. Exactly one of Float4,
// Texture or Material is meaningful, selected by Kind.
type Input struct {
	Kind     InputKind
	Float4   types.Vec4
	Texture  *Texture
	Material Material
}

// Float4Input builds a constant-valued input.
func Float4Input(v types.Vec4) Input {
	return Input{Kind: InputFloat4, Float4: v}
}

// TextureInput builds a texture-mapped input.
func TextureInput(t *Texture) Input {
	return Input{Kind: InputTexture, Texture: t}
}

// MaterialInput builds a material-referencing input, used by MultiBxdf's
// base_material/top_material slots.
func MaterialInput(m Material) Input {
	return Input{Kind: InputMaterial, Material: m}
}

// Material is the sealed interface implemented by SingleBxdf and MultiBxdf.
// Polymorphism is expressed as a tagged variant rather than a class
// hierarchy: callers type-switch on the concrete type to decide how to
// serialize it.
type Material interface {
	isMaterial()
	Dirty() bool
	SetDirty(bool)
	Input(name string) (Input, bool)
	// AllInputs returns every named input, used to enumerate a
	// material's texture references regardless of which names a
	// particular BxDF happens to use.
	AllInputs() map[string]Input
	// Dependencies returns the materials directly referenced by this
	// one's inputs (MultiBxdf's children). SingleBxdf has none.
	Dependencies() []Material
}

// SingleBxdf is a material backed by exactly one BxDF.
type SingleBxdf struct {
	Kind   BxdfKind
	Inputs map[string]Input
	dirty  bool
}

// NewSingleBxdf creates a SingleBxdf with an empty input set.
func NewSingleBxdf(kind BxdfKind) *SingleBxdf {
	return &SingleBxdf{Kind: kind, Inputs: make(map[string]Input)}
}

func (m *SingleBxdf) isMaterial() {}

func (m *SingleBxdf) Dirty() bool { return m.dirty }

func (m *SingleBxdf) SetDirty(d bool) { m.dirty = d }

func (m *SingleBxdf) Input(name string) (Input, bool) {
	v, ok := m.Inputs[name]
	return v, ok
}

func (m *SingleBxdf) AllInputs() map[string]Input { return m.Inputs }

func (m *SingleBxdf) Dependencies() []Material { return nil }

// SetInput sets a named input and marks the material dirty.
func (m *SingleBxdf) SetInput(name string, in Input) {
	m.Inputs[name] = in
	m.dirty = true
}

// MultiBxdf combines two child materials (base_material, top_material)
// under kMix, kLayered or kFresnelBlend.
type MultiBxdf struct {
	Op     MultiOp
	Inputs map[string]Input
	dirty  bool
}

// NewMultiBxdf creates a MultiBxdf combining base and top under op.
func NewMultiBxdf(op MultiOp, base, top Material) *MultiBxdf {
	return &MultiBxdf{
		Op: op,
		Inputs: map[string]Input{
			"base_material": MaterialInput(base),
			"top_material":  MaterialInput(top),
		},
	}
}

func (m *MultiBxdf) isMaterial() {}

func (m *MultiBxdf) Dirty() bool { return m.dirty }

func (m *MultiBxdf) SetDirty(d bool) { m.dirty = d }

func (m *MultiBxdf) Input(name string) (Input, bool) {
	v, ok := m.Inputs[name]
	return v, ok
}

func (m *MultiBxdf) AllInputs() map[string]Input { return m.Inputs }

func (m *MultiBxdf) SetInput(name string, in Input) {
	m.Inputs[name] = in
	m.dirty = true
}

func (m *MultiBxdf) Dependencies() []Material {
	var deps []Material
	if v, ok := m.Inputs["base_material"]; ok && v.Kind == InputMaterial && v.Material != nil {
		deps = append(deps, v.Material)
	}
	if v, ok := m.Inputs["top_material"]; ok && v.Kind == InputMaterial && v.Material != nil {
		deps = append(deps, v.Material)
	}
	return deps
}

// DefaultMaterial is the material the compiler substitutes for shapes that
// reference none: a diffuse lambert with a flat grey-green albedo.
func DefaultMaterial() *SingleBxdf {
	m := NewSingleBxdf(BxdfLambert)
	m.Inputs["albedo"] = Float4Input(types.XYZW(0.5, 0.6, 0.5, 1.0))
	return m
}
