package writers

import (
	"testing"

	"github.com/achilleasa/scenecache/scenegraph"
	"github.com/achilleasa/scenecache/types"
)

func triangleMesh(name string) *scenegraph.Mesh {
	m := scenegraph.NewMesh(name)
	m.Vertices = []types.Vec3{types.XYZ(0, 0, 0), types.XYZ(1, 0, 0), types.XYZ(0, 1, 0)}
	m.Normals = []types.Vec3{types.XYZ(0, 0, 1), types.XYZ(0, 0, 1), types.XYZ(0, 0, 1)}
	m.Indices = []uint32{0, 1, 2}
	return m
}

func TestPartitionShapesSeparatesMeshesInstancesAndExcludedBases(t *testing.T) {
	visible := triangleMesh("visible")
	base := triangleMesh("base")
	inst := scenegraph.NewInstance(base)

	meshes, excluded, instances := PartitionShapes([]scenegraph.Shape{visible, inst})

	if len(meshes) != 1 || meshes[0] != visible {
		t.Fatalf("meshes = %v, want [visible]", meshes)
	}
	if len(excluded) != 1 || excluded[0] != base {
		t.Fatalf("excluded = %v, want [base]", excluded)
	}
	if len(instances) != 1 || instances[0] != inst {
		t.Fatalf("instances = %v, want [inst]", instances)
	}
}

func TestPartitionShapesDoesNotExcludeAPresentBase(t *testing.T) {
	base := triangleMesh("base")
	inst := scenegraph.NewInstance(base)

	_, excluded, _ := PartitionShapes([]scenegraph.Shape{base, inst})
	if len(excluded) != 0 {
		t.Fatalf("excluded = %v, want none (base is already a mesh)", excluded)
	}
}

func TestWriteShapesPoolsExcludedBaseGeometryExactlyOnce(t *testing.T) {
	base := triangleMesh("base")
	inst := scenegraph.NewInstance(base)

	res := WriteShapes([]scenegraph.Shape{inst}, scenegraph.DefaultMaterial(), func(scenegraph.Material) int32 { return 0 })

	if got, want := len(res.Vertices), 3; got != want {
		t.Fatalf("len(Vertices) = %d, want %d", got, want)
	}
	if got, want := len(res.Shapes), 2; got != want {
		t.Fatalf("len(Shapes) = %d, want 2 (excluded base + instance)", got)
	}

	baseRec := res.Shapes[0]
	instRec := res.Shapes[1]
	if instRec.StartVtx != baseRec.StartVtx || instRec.StartIdx != baseRec.StartIdx {
		t.Fatalf("instance record does not share the base mesh's geometry offsets: %+v vs %+v", instRec, baseRec)
	}
	if instRec.StartMaterialIdx == baseRec.StartMaterialIdx {
		t.Fatal("instance and excluded base share a material-id region; they must each own their own")
	}

	for _, id := range res.MaterialIDs[baseRec.StartMaterialIdx : baseRec.StartMaterialIdx+baseRec.NumPrims] {
		if id != -1 {
			t.Fatalf("excluded base material id = %d, want -1", id)
		}
	}
}

func TestWriteShapesAssignsDefaultMaterialWhenMissing(t *testing.T) {
	m := triangleMesh("m")
	defaultMat := scenegraph.DefaultMaterial()

	called := false
	res := WriteShapes([]scenegraph.Shape{m}, defaultMat, func(mat scenegraph.Material) int32 {
		if mat == defaultMat {
			called = true
		}
		return 7
	})

	if !called {
		t.Fatal("matIndexOf was not called with the default material")
	}
	if res.MaterialIDs[0] != 7 {
		t.Fatalf("MaterialIDs[0] = %d, want 7", res.MaterialIDs[0])
	}
}

func TestWriteShapesOrdersMeshesThenExcludedThenInstances(t *testing.T) {
	visibleMesh := triangleMesh("visible")
	base := triangleMesh("base")
	inst := scenegraph.NewInstance(base)

	res := WriteShapes([]scenegraph.Shape{visibleMesh, inst}, scenegraph.DefaultMaterial(), func(scenegraph.Material) int32 { return 0 })

	if len(res.ShapeOrder) != 3 {
		t.Fatalf("len(ShapeOrder) = %d, want 3", len(res.ShapeOrder))
	}
	if res.ShapeOrder[0] != scenegraph.Shape(visibleMesh) {
		t.Fatalf("ShapeOrder[0] = %v, want visible mesh", res.ShapeOrder[0])
	}
	if res.ShapeOrder[1] != scenegraph.Shape(base) {
		t.Fatalf("ShapeOrder[1] = %v, want excluded base", res.ShapeOrder[1])
	}
	if res.ShapeOrder[2] != scenegraph.Shape(inst) {
		t.Fatalf("ShapeOrder[2] = %v, want instance", res.ShapeOrder[2])
	}
}
