package writers

import (
	"github.com/achilleasa/scenecache/compiledscene"
	"github.com/achilleasa/scenecache/scenegraph"
)

// WriteLight serializes a light into its fixed on-device record, per §4.8.
// texIndexOf resolves an Ibl light's texture to its collector index;
// shapeIdxOf resolves an Area light's shape to its position in the
// partitioned shape order (§4.5).
func WriteLight(l scenegraph.Light, texIndexOf func(*scenegraph.Texture) int32, shapeIdxOf func(scenegraph.Shape) int32) compiledscene.Light {
	rec := compiledscene.Light{Kind: int32(l.Kind())}

	switch lt := l.(type) {
	case *scenegraph.PointLight:
		rec.Position = lt.Position
		rec.Intensity = lt.Intensity
	case *scenegraph.DirectionalLight:
		rec.Direction = lt.Direction
		rec.Intensity = lt.Intensity
	case *scenegraph.SpotLight:
		rec.Position = lt.Position
		rec.Direction = lt.Direction
		rec.Intensity = lt.Intensity
		rec.IA = lt.InnerAngle
		rec.OA = lt.OuterAngle
	case *scenegraph.IblLight:
		rec.Multiplier = lt.Multiplier
		idx := texIdxOrNeg1(lt.Texture, texIndexOf)
		rec.Tex = idx
		rec.TexDiffuse = idx
	case *scenegraph.AreaLight:
		rec.ShapeIdx = shapeIdxOf(lt.Shape)
		rec.PrimIdx = int32(lt.PrimitiveIndex)
	}

	l.SetDirty(false)
	return rec
}
