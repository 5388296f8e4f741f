package scenegraph

import (
	"testing"

	"github.com/achilleasa/scenecache/types"
)

func TestAddMeshMarksShapesDirty(t *testing.T) {
	s := NewBasicScene()
	s.AddMesh(NewMesh("m"))

	if !s.DirtyFlags().Has(DirtyShapes) {
		t.Fatal("AddMesh did not set DirtyShapes")
	}
}

func TestClearDirtyFlagsResetsToEmpty(t *testing.T) {
	s := NewBasicScene()
	s.AddMesh(NewMesh("m"))
	s.AddLight(&PointLight{})
	s.SetCamera(NewCamera())

	s.ClearDirtyFlags()

	if s.DirtyFlags().Any() {
		t.Fatalf("DirtyFlags() = %v, want empty after ClearDirtyFlags", s.DirtyFlags())
	}
}

func TestRemoveShapeDropsItAndMarksDirty(t *testing.T) {
	s := NewBasicScene()
	a := NewMesh("a")
	b := NewMesh("b")
	s.AddMesh(a)
	s.AddMesh(b)
	s.ClearDirtyFlags()

	s.RemoveShape(a)

	if len(s.Shapes()) != 1 || s.Shapes()[0] != b {
		t.Fatalf("Shapes() = %v, want [b]", s.Shapes())
	}
	if !s.DirtyFlags().Has(DirtyShapes) {
		t.Fatal("RemoveShape did not set DirtyShapes")
	}
}

func TestInstanceMaterialDoesNotInheritFromBase(t *testing.T) {
	base := NewMesh("base")
	base.Mat = NewSingleBxdf(BxdfLambert)
	inst := NewInstance(base)

	if inst.Material() != nil {
		t.Fatal("Instance.Material() inherited its base mesh's material; an un-materialed instance should get the default material at write time instead")
	}

	override := NewSingleBxdf(BxdfEmissive)
	inst.Mat = override
	if inst.Material() != override {
		t.Fatal("Instance.Material() did not return its own override")
	}
}

func TestMultiBxdfDependenciesReturnsBothChildren(t *testing.T) {
	base := NewSingleBxdf(BxdfLambert)
	top := NewSingleBxdf(BxdfIdealReflect)
	mix := NewMultiBxdf(OpMix, base, top)

	deps := mix.Dependencies()
	if len(deps) != 2 || deps[0] != base || deps[1] != top {
		t.Fatalf("Dependencies() = %v, want [base, top]", deps)
	}
}

func TestSingleBxdfSetInputMarksDirty(t *testing.T) {
	m := NewSingleBxdf(BxdfLambert)
	m.SetDirty(false)

	m.SetInput("albedo", Float4Input(types.XYZW(1, 1, 1, 1)))

	if !m.Dirty() {
		t.Fatal("SetInput did not mark the material dirty")
	}
}
