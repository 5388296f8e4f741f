// Package writers holds the pure serializers that turn a scenegraph object
// into a fixed-layout compiledscene record, given collector indices for
// cross-references. None of these functions touch a device or the
// intersector; the compiler package orchestrates them and owns the
// collectors, buffers and acceleration-structure handles.
package writers

import (
	"github.com/achilleasa/scenecache/compiledscene"
	"github.com/achilleasa/scenecache/scenegraph"
	"github.com/achilleasa/scenecache/types"
)

// PartitionShapes splits a scene's shape list into the three disjoint,
// deterministically-ordered sets described by §4.5: every mesh shape (in
// iterator order), every instance (in iterator order), and every distinct
// base mesh an instance points to that is not itself present among the
// meshes.
func PartitionShapes(shapes []scenegraph.Shape) (meshes, excluded []*scenegraph.Mesh, instances []*scenegraph.Instance) {
	present := make(map[*scenegraph.Mesh]bool, len(shapes))

	for _, s := range shapes {
		switch sh := s.(type) {
		case *scenegraph.Mesh:
			meshes = append(meshes, sh)
			present[sh] = true
		case *scenegraph.Instance:
			instances = append(instances, sh)
		}
	}

	seenExcluded := make(map[*scenegraph.Mesh]bool, len(instances))
	for _, inst := range instances {
		if inst.Base == nil || present[inst.Base] || seenExcluded[inst.Base] {
			continue
		}
		seenExcluded[inst.Base] = true
		excluded = append(excluded, inst.Base)
	}

	return meshes, excluded, instances
}

// ShapeOrder combines an already-partitioned shape set into the single
// {meshes, excluded meshes, instances} order that shape records,
// acceleration-structure handle ids and area-light shapeidx resolution all
// share.
func ShapeOrder(meshes, excluded []*scenegraph.Mesh, instances []*scenegraph.Instance) []scenegraph.Shape {
	order := make([]scenegraph.Shape, 0, len(meshes)+len(excluded)+len(instances))
	for _, m := range meshes {
		order = append(order, m)
	}
	for _, m := range excluded {
		order = append(order, m)
	}
	for _, inst := range instances {
		order = append(order, inst)
	}
	return order
}

// ShapesResult is the output of the §4.5 serialization pass: the coalesced
// geometry pools, the per-shape records, and the partition used to produce
// them.
type ShapesResult struct {
	Meshes    []*scenegraph.Mesh
	Excluded  []*scenegraph.Mesh
	Instances []*scenegraph.Instance

	Vertices []types.Vec3
	Normals  []types.Vec3
	UVs      []types.Vec2
	Indices  []uint32

	Shapes      []compiledscene.Shape
	MaterialIDs []int32

	// ShapeOrder is the order Shapes is laid out in: ShapeOrder(Meshes,
	// Excluded, Instances), minus any instance with no recorded base mesh.
	ShapeOrder []scenegraph.Shape
}

// WriteShapes partitions shapes and serializes them into flat vertex/index
// pools plus fixed-layout shape records, per §4.5. matIndexOf resolves a
// material to its collector index; defaultMaterial substitutes for any
// shape or instance with no material of its own.
//
// For every mesh and excluded mesh, vertices/normals/uvs/indices are
// appended once (I1) and a shape record is written with its own material-id
// region, -1-filled for excluded meshes since they are never shaded. For
// every instance, the base mesh's record is copied and only its transform
// and material-id region are overwritten: the instance shares the base
// mesh's vertex/index pool rather than duplicating it.
func WriteShapes(shapes []scenegraph.Shape, defaultMaterial scenegraph.Material, matIndexOf func(scenegraph.Material) int32) ShapesResult {
	meshes, excluded, instances := PartitionShapes(shapes)

	res := ShapesResult{Meshes: meshes, Excluded: excluded, Instances: instances}
	meshShapeIndex := make(map[*scenegraph.Mesh]int, len(meshes)+len(excluded))

	writeMesh := func(m *scenegraph.Mesh, isExcluded bool) {
		startVtx := int32(len(res.Vertices))
		startIdx := int32(len(res.Indices))
		numPrims := int32(m.NumTriangles())

		res.Vertices = append(res.Vertices, m.Vertices...)
		res.Normals = append(res.Normals, m.Normals...)
		res.UVs = append(res.UVs, m.UVs...)
		res.Indices = append(res.Indices, m.Indices...)

		startMatIdx := int32(len(res.MaterialIDs))
		if isExcluded {
			for i := int32(0); i < numPrims; i++ {
				res.MaterialIDs = append(res.MaterialIDs, -1)
			}
		} else {
			mat := m.Material()
			if mat == nil {
				mat = defaultMaterial
			}
			idx := matIndexOf(mat)
			for i := int32(0); i < numPrims; i++ {
				res.MaterialIDs = append(res.MaterialIDs, idx)
			}
		}

		res.Shapes = append(res.Shapes, compiledscene.Shape{
			NumPrims:         numPrims,
			StartVtx:         startVtx,
			StartIdx:         startIdx,
			StartMaterialIdx: startMatIdx,
			Transform:        m.Transform(),
			AngularVelocity:  types.QuatIdent(),
		})
		meshShapeIndex[m] = len(res.Shapes) - 1
		res.ShapeOrder = append(res.ShapeOrder, m)
		m.SetDirty(false)
	}

	for _, m := range meshes {
		writeMesh(m, false)
	}
	for _, m := range excluded {
		writeMesh(m, true)
	}

	for _, inst := range instances {
		baseIdx, ok := meshShapeIndex[inst.Base]
		if !ok {
			// No recorded base (nil base, or a base that failed to
			// partition); there is nothing sane to share, so the
			// instance contributes no geometry and no record.
			continue
		}

		rec := res.Shapes[baseIdx]

		startMatIdx := int32(len(res.MaterialIDs))
		mat := inst.Material()
		if mat == nil {
			mat = defaultMaterial
		}
		idx := matIndexOf(mat)
		for i := int32(0); i < rec.NumPrims; i++ {
			res.MaterialIDs = append(res.MaterialIDs, idx)
		}

		rec.Transform = inst.Transform()
		rec.StartMaterialIdx = startMatIdx
		res.Shapes = append(res.Shapes, rec)
		res.ShapeOrder = append(res.ShapeOrder, inst)
		inst.SetDirty(false)
	}

	return res
}
