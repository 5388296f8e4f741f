package compiler

import (
	"fmt"

	"github.com/achilleasa/scenecache/compiledscene"
	"github.com/achilleasa/scenecache/intersector"
	"github.com/achilleasa/scenecache/scenegraph"
	"github.com/achilleasa/scenecache/writers"
)

// rebuildIntersectorShapes implements update_intersector (§4.6): detach and
// delete every handle the record currently owns, re-partition the scene's
// shapes, and create a fresh handle for every mesh, excluded mesh and
// instance, assigning ids monotonically from 1 in that order (I2).
// visible_shapes ends up holding exactly the meshes' and instances'
// handles, never the excluded meshes' (I3).
func (t *Tracker) rebuildIntersectorShapes(scene scenegraph.Scene, out *compiledscene.CompiledScene) error {
	for _, h := range out.IsectShapes {
		t.isect.Detach(h)
		t.isect.Delete(h)
	}
	out.IsectShapes = nil
	out.VisibleShapes = nil

	meshes, excluded, instances := writers.PartitionShapes(scene.Shapes())
	out.ShapeOrder = writers.ShapeOrder(meshes, excluded, instances)

	meshHandles := make(map[*scenegraph.Mesh]intersector.Handle, len(meshes)+len(excluded))
	nextID := 1

	for _, m := range meshes {
		h, err := t.isect.CreateMesh(m.Vertices, m.Indices)
		if err != nil {
			return fmt.Errorf("intersector: creating mesh handle: %w", err)
		}
		h.SetTransform(m.Transform(), m.Transform().Inv())
		h.SetID(nextID)
		nextID++

		out.IsectShapes = append(out.IsectShapes, h)
		out.VisibleShapes = append(out.VisibleShapes, h)
		meshHandles[m] = h
	}

	for _, m := range excluded {
		h, err := t.isect.CreateMesh(m.Vertices, m.Indices)
		if err != nil {
			return fmt.Errorf("intersector: creating excluded mesh handle: %w", err)
		}
		h.SetTransform(m.Transform(), m.Transform().Inv())
		h.SetID(nextID)
		nextID++

		out.IsectShapes = append(out.IsectShapes, h)
		meshHandles[m] = h
	}

	for _, inst := range instances {
		base, ok := meshHandles[inst.Base]
		if !ok {
			return fmt.Errorf("intersector: instance references a base mesh with no acceleration-structure handle")
		}

		h, err := t.isect.CreateInstance(base)
		if err != nil {
			return fmt.Errorf("intersector: creating instance handle: %w", err)
		}
		h.SetTransform(inst.Transform(), inst.Transform().Inv())
		h.SetID(nextID)
		nextID++

		out.IsectShapes = append(out.IsectShapes, h)
		out.VisibleShapes = append(out.VisibleShapes, h)
	}

	return nil
}

// reloadIntersector implements reload_intersector (§4.6): detach everything
// currently attached, re-attach exactly visible_shapes, and commit. This
// must run whenever the attached handle set changes or the active scene
// identity changes since the previous Compile call.
func (t *Tracker) reloadIntersector(out *compiledscene.CompiledScene) error {
	t.isect.DetachAll()
	for _, h := range out.VisibleShapes {
		t.isect.Attach(h)
	}
	if err := t.isect.Commit(); err != nil {
		return fmt.Errorf("intersector: commit: %w", err)
	}
	return nil
}
