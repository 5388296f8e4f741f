package compiler

import (
	"sort"

	"github.com/achilleasa/scenecache/scenegraph"
)

// collectMaterials gathers, into t.matCollector, every material reachable
// from each shape's own material (or the shared default material, for a
// shape or instance with none), transitively expanding through each
// material's Dependencies() — §4.2's "Shape → materials" rule. The
// traversal tolerates cycles between materials (e.g. two layered materials
// referencing each other) since the collector's membership is a set.
func (t *Tracker) collectMaterials(scene scenegraph.Scene) {
	shapes := scene.Shapes()
	roots := make([]scenegraph.Material, 0, len(shapes))
	for _, s := range shapes {
		roots = append(roots, t.materialOrDefault(s.Material()))
	}

	t.matCollector.Collect(roots, func(m scenegraph.Material) []scenegraph.Material {
		return m.Dependencies()
	})
}

// collectTextures gathers, into t.texCollector, every texture referenced by
// an input of an already-committed material, then every texture a light
// references directly — §4.2's "Material → textures" and "Light →
// textures" rules. This must run after collectMaterials commits the
// material set, since it iterates that set (§12's two-collector ordering
// dependency).
//
// AllInputs() is a map, so its iteration order is randomized; a material
// with two or more texture inputs (e.g. albedo + normal) would otherwise
// append its textures to roots in a different relative order on every
// call, giving them different collector indices across compiles even
// though nothing changed. Input names are sorted first so the resulting
// root order — and therefore every assigned texture index — is stable,
// matching the ordered std::set the original collects into.
func (t *Tracker) collectTextures(scene scenegraph.Scene) {
	var roots []*scenegraph.Texture

	var names []string
	t.matCollector.Iterate(func(_ int32, m scenegraph.Material) {
		names = names[:0]
		for name := range m.AllInputs() {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			in, _ := m.Input(name)
			if in.Kind == scenegraph.InputTexture && in.Texture != nil {
				roots = append(roots, in.Texture)
			}
		}
	})

	for _, l := range scene.Lights() {
		roots = append(roots, l.Textures()...)
	}

	t.texCollector.Collect(roots, func(*scenegraph.Texture) []*scenegraph.Texture {
		return nil
	})
}

func (t *Tracker) materialOrDefault(m scenegraph.Material) scenegraph.Material {
	if m == nil {
		return t.defaultMaterial
	}
	return m
}
