package compiledscene

import "github.com/achilleasa/scenecache/types"

// MaterialKind spans both SingleBxdf and MultiBxdf variants in a single
// device-facing enum, since the kernel dispatches on one tag regardless of
// which Go type produced the record.
type MaterialKind int32

const (
	MatZero MaterialKind = iota
	MatLambert
	MatEmissive
	MatPassthrough
	MatTranslucent
	MatIdealRefract
	MatIdealReflect
	MatMicrofacetGGX
	MatMicrofacetBeckmann
	MatMicrofacetRefractionGGX
	MatMicrofacetRefractionBeckmann
	MatMix
	MatLayered
	MatFresnelBlend
)

// Shape is the fixed on-device record for a mesh or instance, as laid out
// by the §4.5 serialization pass.
type Shape struct {
	NumPrims         int32
	StartVtx         int32
	StartIdx         int32
	StartMaterialIdx int32
	Transform        types.Mat4
	LinearVelocity   types.Vec3
	AngularVelocity  types.Quat
}

// Material is the fixed on-device record written by the material writer
// (§4.7). Field names mirror the writer's own vocabulary (kx/kxmapidx,
// nmapidx, ns/nsmapidx, ni) rather than a more descriptive rename, since
// they are a bit-exact kernel contract.
type Material struct {
	Type        MaterialKind
	Kx          types.Vec4
	KxMapIdx    int32
	NMapIdx     int32
	BumpFlag    int32
	Fresnel     int32
	Ni          float32
	Ns          float32
	NsMapIdx    int32
	BrdfBaseIdx int32
	BrdfTopIdx  int32
}

// Light is the fixed on-device record written by the light writer (§4.8).
type Light struct {
	Kind       int32
	Position   types.Vec3
	Direction  types.Vec3
	Intensity  types.Vec3
	IA         float32
	OA         float32
	Multiplier float32
	Tex        int32
	TexDiffuse int32
	ShapeIdx   int32
	PrimIdx    int32
}

// Texture is the fixed on-device header record written by the texture
// writer's first pass (§4.9). The payload bytes live separately in the
// texturedata blob, at DataOffset.
type Texture struct {
	W          uint32
	H          uint32
	Format     int32
	DataOffset int32
}

// Camera is the fixed on-device camera record.
type Camera struct {
	Forward       types.Vec3
	Up            types.Vec3
	Right         types.Vec3
	Position      types.Vec3
	Aperture      float32
	AspectRatio   float32
	Dim           types.Vec2
	FocalLength   float32
	FocusDistance float32
	DepthRange    types.Vec2
	// Physical is derived from Aperture > 0 (kPhysical vs. kDefault in
	// the original), carried as a distinct field since spec §3 already
	// treats aperture as independent camera data.
	Physical int32
}

// Volume is the fixed on-device record for a participating medium. Full
// rebuilds always emit exactly one default medium record.
type Volume struct {
	Type   int32
	SigmaA types.Vec3
	SigmaS types.Vec3
	SigmaE types.Vec3
	G      float32
}

// DefaultVolume is the single default medium record emitted on every full
// rebuild: a faint absorbing/scattering medium, matching the original's
// hardcoded default (scene_tracker.cpp's "temporary code" Volume literal)
// rather than a true vacuum.
func DefaultVolume() Volume {
	return Volume{
		Type:   1,
		SigmaA: types.XYZ(0.09, 0.09, 0.09),
		SigmaS: types.XYZ(0.1, 0.1, 0.1),
	}
}
