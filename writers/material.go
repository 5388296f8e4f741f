package writers

import (
	"github.com/achilleasa/scenecache/compiledscene"
	"github.com/achilleasa/scenecache/scenegraph"
)

// WriteMaterial serializes a material into its fixed on-device record, per
// §4.7. matIndexOf resolves a MultiBxdf child material to its collector
// index; texIndexOf resolves a texture input to its collector index.
func WriteMaterial(m scenegraph.Material, matIndexOf func(scenegraph.Material) int32, texIndexOf func(*scenegraph.Texture) int32) compiledscene.Material {
	var rec compiledscene.Material

	switch mat := m.(type) {
	case *scenegraph.SingleBxdf:
		rec = writeSingleBxdf(mat, texIndexOf)
	case *scenegraph.MultiBxdf:
		rec = writeMultiBxdf(mat, matIndexOf, texIndexOf)
	}

	m.SetDirty(false)
	return rec
}

func writeSingleBxdf(m *scenegraph.SingleBxdf, texIndexOf func(*scenegraph.Texture) int32) compiledscene.Material {
	rec := compiledscene.Material{Type: bxdfKindToMaterialKind(m.Kind)}

	if m.Kind == scenegraph.BxdfZero {
		return rec
	}

	switch m.Kind {
	case scenegraph.BxdfMicrofacetGGX, scenegraph.BxdfMicrofacetBeckmann,
		scenegraph.BxdfMicrofacetRefractionGGX, scenegraph.BxdfMicrofacetRefractionBeckmann:
		if in, ok := m.Input("roughness"); ok && in.Kind == scenegraph.InputTexture {
			rec.NsMapIdx = texIdxOrNeg1(in.Texture, texIndexOf)
		} else {
			rec.NsMapIdx = -1
		}
		// Falls through into the general diffuse/reflect/refract
		// branch below, which re-derives Ns from the scalar
		// "roughness" input (default 0.99) a second time even when
		// it was just resolved as a texture index above. This mirrors
		// the original's source-observable behavior; see DESIGN.md.
	}

	writeAlbedoNormalFresnel(m, &rec, texIndexOf)
	return rec
}

func writeAlbedoNormalFresnel(m *scenegraph.SingleBxdf, rec *compiledscene.Material, texIndexOf func(*scenegraph.Texture) int32) {
	if in, ok := m.Input("albedo"); ok {
		if in.Kind == scenegraph.InputTexture {
			rec.KxMapIdx = texIdxOrNeg1(in.Texture, texIndexOf)
		} else {
			rec.Kx = in.Float4
			rec.KxMapIdx = -1
		}
	} else {
		rec.KxMapIdx = -1
	}

	if in, ok := m.Input("normal"); ok && in.Kind == scenegraph.InputTexture {
		rec.NMapIdx = texIdxOrNeg1(in.Texture, texIndexOf)
		rec.BumpFlag = 0
	} else if in, ok := m.Input("bump"); ok && in.Kind == scenegraph.InputTexture {
		rec.NMapIdx = texIdxOrNeg1(in.Texture, texIndexOf)
		rec.BumpFlag = 1
	} else {
		rec.NMapIdx = -1
		rec.BumpFlag = 0
	}

	if in, ok := m.Input("fresnel"); ok && in.Kind == scenegraph.InputFloat4 && in.Float4[0] > 0 {
		rec.Fresnel = 1
	} else {
		rec.Fresnel = 0
	}

	rec.Ni = floatInputOr(m, "ior", 1)
	rec.Ns = floatInputOr(m, "roughness", 0.99)
}

func writeMultiBxdf(m *scenegraph.MultiBxdf, matIndexOf func(scenegraph.Material) int32, texIndexOf func(*scenegraph.Texture) int32) compiledscene.Material {
	rec := compiledscene.Material{Type: multiOpToMaterialKind(m.Op)}

	rec.BrdfBaseIdx = matInputIdxOrNeg1(m, "base_material", matIndexOf)
	rec.BrdfTopIdx = matInputIdxOrNeg1(m, "top_material", matIndexOf)

	switch m.Op {
	case scenegraph.OpMix:
		rec.Fresnel = 0
		if in, ok := m.Input("weight"); ok && in.Kind == scenegraph.InputTexture {
			rec.NsMapIdx = texIdxOrNeg1(in.Texture, texIndexOf)
		} else {
			rec.NsMapIdx = -1
			rec.Ns = floatInputOr(m, "weight", 0)
		}
	case scenegraph.OpFresnelBlend:
		rec.Fresnel = 1
		rec.Ni = floatInputOr(m, "ior", 1)
	}

	return rec
}

func matInputIdxOrNeg1(m scenegraph.Material, name string, matIndexOf func(scenegraph.Material) int32) int32 {
	in, ok := m.Input(name)
	if !ok || in.Kind != scenegraph.InputMaterial || in.Material == nil {
		return -1
	}
	return matIndexOf(in.Material)
}

func texIdxOrNeg1(t *scenegraph.Texture, texIndexOf func(*scenegraph.Texture) int32) int32 {
	if t == nil {
		return -1
	}
	return texIndexOf(t)
}

func floatInputOr(m scenegraph.Material, name string, def float32) float32 {
	if in, ok := m.Input(name); ok && in.Kind == scenegraph.InputFloat4 {
		return in.Float4[0]
	}
	return def
}

func bxdfKindToMaterialKind(k scenegraph.BxdfKind) compiledscene.MaterialKind {
	switch k {
	case scenegraph.BxdfZero:
		return compiledscene.MatZero
	case scenegraph.BxdfLambert:
		return compiledscene.MatLambert
	case scenegraph.BxdfEmissive:
		return compiledscene.MatEmissive
	case scenegraph.BxdfPassthrough:
		return compiledscene.MatPassthrough
	case scenegraph.BxdfTranslucent:
		return compiledscene.MatTranslucent
	case scenegraph.BxdfIdealRefract:
		return compiledscene.MatIdealRefract
	case scenegraph.BxdfIdealReflect:
		return compiledscene.MatIdealReflect
	case scenegraph.BxdfMicrofacetGGX:
		return compiledscene.MatMicrofacetGGX
	case scenegraph.BxdfMicrofacetBeckmann:
		return compiledscene.MatMicrofacetBeckmann
	case scenegraph.BxdfMicrofacetRefractionGGX:
		return compiledscene.MatMicrofacetRefractionGGX
	case scenegraph.BxdfMicrofacetRefractionBeckmann:
		return compiledscene.MatMicrofacetRefractionBeckmann
	default:
		return compiledscene.MatZero
	}
}

func multiOpToMaterialKind(op scenegraph.MultiOp) compiledscene.MaterialKind {
	switch op {
	case scenegraph.OpMix:
		return compiledscene.MatMix
	case scenegraph.OpLayered:
		return compiledscene.MatLayered
	case scenegraph.OpFresnelBlend:
		return compiledscene.MatFresnelBlend
	default:
		return compiledscene.MatMix
	}
}
