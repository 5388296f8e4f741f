// Package intersector is a thin bridge to an external acceleration-structure
// engine. This subsystem treats it as opaque: it creates and destroys
// handles and attaches/detaches them from the active BVH, but never
// inspects or builds the structure itself.
package intersector

import "github.com/achilleasa/scenecache/types"

// Handle identifies a shape registered with the intersector. It carries no
// meaning beyond letting the caller detach, delete, attach or retransform
// the shape it names.
type Handle interface {
	// SetTransform updates the shape's world transform and its inverse.
	SetTransform(world, inverse types.Mat4)
	// SetID tags the handle with the monotonically increasing id the
	// compiler assigns shapes during a rebuild, starting from 1 across
	// meshes, then excluded meshes, then instances.
	SetID(id int)
}

// Intersector is the external intersection engine's create/attach surface.
type Intersector interface {
	// CreateMesh registers a new triangle mesh and returns its handle.
	CreateMesh(vertices []types.Vec3, indices []uint32) (Handle, error)

	// CreateInstance registers an instance of an already-created mesh
	// handle and returns its own handle.
	CreateInstance(base Handle) (Handle, error)

	// Detach removes h from the active BVH without destroying it.
	Detach(h Handle)

	// Delete destroys h. The caller must Detach first if h is attached.
	Delete(h Handle)

	// Attach adds h to the active BVH.
	Attach(h Handle)

	// DetachAll removes every currently attached handle from the active
	// BVH, without destroying any of them.
	DetachAll()

	// Commit finalizes the active BVH after a round of Attach/Detach
	// calls, making it ready for use.
	Commit() error
}
