package compiler

import (
	"testing"

	"github.com/achilleasa/scenecache/device/memory"
	"github.com/achilleasa/scenecache/intersector/mock"
	"github.com/achilleasa/scenecache/scenegraph"
	"github.com/achilleasa/scenecache/types"
)

func triangle(name string) *scenegraph.Mesh {
	m := scenegraph.NewMesh(name)
	m.Vertices = []types.Vec3{types.XYZ(0, 0, 0), types.XYZ(1, 0, 0), types.XYZ(0, 1, 0)}
	m.Normals = []types.Vec3{types.XYZ(0, 0, 1), types.XYZ(0, 0, 1), types.XYZ(0, 0, 1)}
	m.UVs = []types.Vec2{types.XY(0, 0), types.XY(1, 0), types.XY(0, 1)}
	m.Indices = []uint32{0, 1, 2}
	return m
}

func basicScene() *scenegraph.BasicScene {
	s := scenegraph.NewBasicScene()
	s.SetCamera(scenegraph.NewCamera())
	s.AddLight(&scenegraph.PointLight{Position: types.XYZ(0, 5, 0), Intensity: types.XYZ(1, 1, 1)})
	s.AddMesh(triangle("tri"))
	return s
}

func TestCompileFullRebuildThenNoOpSecondCompileDoesNoWork(t *testing.T) {
	scene := basicScene()
	tr := New(memory.New(), mock.New())

	if _, err := tr.Compile(scene); err != nil {
		t.Fatalf("first compile: %v", err)
	}
	out, err := tr.Compile(scene)
	if err != nil {
		t.Fatalf("second compile: %v", err)
	}

	isect := tr.isect.(*mock.Intersector)
	if isect.CommitCount != 1 {
		t.Fatalf("CommitCount = %d, want 1 (second compile should not re-run reload_intersector)", isect.CommitCount)
	}
	if len(out.Shapes) != 1 {
		t.Fatalf("len(Shapes) = %d, want 1", len(out.Shapes))
	}
}

func TestCompileInstanceWithExcludedBaseOnlyPoolsGeometryOnce(t *testing.T) {
	scene := scenegraph.NewBasicScene()
	scene.SetCamera(scenegraph.NewCamera())
	scene.AddLight(&scenegraph.PointLight{Position: types.XYZ(0, 5, 0), Intensity: types.XYZ(1, 1, 1)})

	base := triangle("base")
	inst := scenegraph.NewInstance(base)
	scene.AddInstance(inst)

	tr := New(memory.New(), mock.New())
	out, err := tr.Compile(scene)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	if len(out.Vertices) != 3 {
		t.Fatalf("len(Vertices) = %d, want 3 (base geometry pooled once)", len(out.Vertices))
	}
	if len(out.Shapes) != 2 {
		t.Fatalf("len(Shapes) = %d, want 2 (excluded base + instance)", len(out.Shapes))
	}

	isect := tr.isect.(*mock.Intersector)
	if isect.NumLiveHandles() != 2 {
		t.Fatalf("NumLiveHandles = %d, want 2", isect.NumLiveHandles())
	}
	if len(isect.Attached) != 1 {
		t.Fatalf("len(Attached) = %d, want 1 (excluded base never attached)", len(isect.Attached))
	}
}

func TestCompileMaterialGraphWithCycleStillCompiles(t *testing.T) {
	scene := basicScene()

	base := scenegraph.NewSingleBxdf(scenegraph.BxdfLambert)
	top := scenegraph.NewSingleBxdf(scenegraph.BxdfIdealReflect)
	mix := scenegraph.NewMultiBxdf(scenegraph.OpMix, base, top)
	// Force a self-reference, mimicking a malformed graph the collector
	// must still terminate on.
	mix.SetInput("base_material", scenegraph.MaterialInput(mix))

	mesh := scene.Shapes()[0].(*scenegraph.Mesh)
	mesh.Mat = mix

	tr := New(memory.New(), mock.New())
	out, err := tr.Compile(scene)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(out.Materials) == 0 {
		t.Fatal("expected at least one material record")
	}
}

func TestCompileIblLightSetsEnvMapIdx(t *testing.T) {
	scene := basicScene()
	tex := scenegraph.NewTexture(4, 4, scenegraph.FormatRGBA8, make([]byte, 4*4*4))
	scene.AddLight(&scenegraph.IblLight{Multiplier: 1, Texture: tex})

	tr := New(memory.New(), mock.New())
	out, err := tr.Compile(scene)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if out.EnvMapIdx != 1 {
		t.Fatalf("EnvMapIdx = %d, want 1 (index of the second, IBL, light)", out.EnvMapIdx)
	}
	if len(out.Textures) != 1 {
		t.Fatalf("len(Textures) = %d, want 1", len(out.Textures))
	}
}

func TestCompileMultiTextureMaterialKeepsStableIndicesAcrossRecompiles(t *testing.T) {
	scene := basicScene()

	albedoTex := scenegraph.NewTexture(2, 2, scenegraph.FormatRGBA8, make([]byte, 2*2*4))
	normalTex := scenegraph.NewTexture(2, 2, scenegraph.FormatRGBA8, make([]byte, 2*2*4))
	mat := scenegraph.NewSingleBxdf(scenegraph.BxdfLambert)
	mat.SetInput("albedo", scenegraph.TextureInput(albedoTex))
	mat.SetInput("normal", scenegraph.TextureInput(normalTex))
	mesh := scene.Shapes()[0].(*scenegraph.Mesh)
	mesh.Mat = mat

	tr := New(memory.New(), mock.New())

	first, err := tr.Compile(scene)
	if err != nil {
		t.Fatalf("first compile: %v", err)
	}
	firstKx, firstN := first.Materials[0].KxMapIdx, first.Materials[0].NMapIdx

	// Repeated, unmutated recompiles must resolve the same material's
	// two texture inputs to the same collector indices every time; a
	// map-iteration-order-dependent root list would flip KxMapIdx/NMapIdx
	// between compiles without anything actually changing.
	for i := 0; i < 5; i++ {
		out, err := tr.Compile(scene)
		if err != nil {
			t.Fatalf("recompile %d: %v", i, err)
		}
		if out.Materials[0].KxMapIdx != firstKx {
			t.Fatalf("recompile %d: KxMapIdx = %d, want stable %d", i, out.Materials[0].KxMapIdx, firstKx)
		}
		if out.Materials[0].NMapIdx != firstN {
			t.Fatalf("recompile %d: NMapIdx = %d, want stable %d", i, out.Materials[0].NMapIdx, firstN)
		}
	}
}

func TestCompileMaterialDirtyAloneTriggersMaterialRebuildNotShapeRebuild(t *testing.T) {
	scene := basicScene()
	mat := scenegraph.NewSingleBxdf(scenegraph.BxdfLambert)
	mat.SetInput("albedo", scenegraph.Float4Input(types.XYZW(0.2, 0.2, 0.2, 1)))
	mesh := scene.Shapes()[0].(*scenegraph.Mesh)
	mesh.Mat = mat

	tr := New(memory.New(), mock.New())
	if _, err := tr.Compile(scene); err != nil {
		t.Fatalf("first compile: %v", err)
	}

	isect := tr.isect.(*mock.Intersector)
	commitsAfterFirst := isect.CommitCount

	mat.SetInput("albedo", scenegraph.Float4Input(types.XYZW(0.9, 0.1, 0.1, 1)))
	out, err := tr.Compile(scene)
	if err != nil {
		t.Fatalf("second compile: %v", err)
	}

	if isect.CommitCount != commitsAfterFirst {
		t.Fatalf("CommitCount changed from %d to %d; a material-only edit must not reload the intersector", commitsAfterFirst, isect.CommitCount)
	}
	if out.Materials[0].Kx != types.XYZW(0.9, 0.1, 0.1, 1) {
		t.Fatalf("Kx = %v, want updated albedo", out.Materials[0].Kx)
	}
}

func TestCompileMissingCameraFails(t *testing.T) {
	scene := scenegraph.NewBasicScene()
	scene.AddLight(&scenegraph.PointLight{Position: types.XYZ(0, 5, 0), Intensity: types.XYZ(1, 1, 1)})
	scene.AddMesh(triangle("tri"))

	tr := New(memory.New(), mock.New())
	_, err := tr.Compile(scene)
	if err == nil {
		t.Fatal("expected an error for a scene with no camera")
	}
	if err.Error() != "No camera in the scene" {
		t.Fatalf("err = %q, want %q", err.Error(), "No camera in the scene")
	}
}

func TestCompileMissingLightsFails(t *testing.T) {
	scene := scenegraph.NewBasicScene()
	scene.SetCamera(scenegraph.NewCamera())
	scene.AddMesh(triangle("tri"))

	tr := New(memory.New(), mock.New())
	_, err := tr.Compile(scene)
	if err == nil || err.Error() != "No lights in the scene" {
		t.Fatalf("err = %v, want %q", err, "No lights in the scene")
	}
}

func TestCompileMissingShapesFails(t *testing.T) {
	scene := scenegraph.NewBasicScene()
	scene.SetCamera(scenegraph.NewCamera())
	scene.AddLight(&scenegraph.PointLight{Position: types.XYZ(0, 5, 0), Intensity: types.XYZ(1, 1, 1)})

	tr := New(memory.New(), mock.New())
	_, err := tr.Compile(scene)
	if err == nil || err.Error() != "No shapes in the scene" {
		t.Fatalf("err = %v, want %q", err, "No shapes in the scene")
	}
}
