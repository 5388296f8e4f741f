// Package mock provides a host-only intersector.Intersector for tests, one
// that records calls instead of driving real acceleration-structure
// hardware.
package mock

import (
	"github.com/achilleasa/scenecache/intersector"
	"github.com/achilleasa/scenecache/types"
)

type handle struct {
	id       int
	world    types.Mat4
	inverse  types.Mat4
	base     *handle
	numVerts int
	numTris  int
	deleted  bool
	attached bool
}

func (h *handle) SetTransform(world, inverse types.Mat4) {
	h.world, h.inverse = world, inverse
}

func (h *handle) SetID(id int) { h.id = id }

// Intersector is an in-memory intersector.Intersector that tracks created,
// attached and committed handles so tests can assert on them.
type Intersector struct {
	handles       []*handle
	Attached      []intersector.Handle
	CommitCount   int
	DetachAllCalls int
}

// New returns an empty mock intersector.
func New() *Intersector {
	return &Intersector{}
}

func (m *Intersector) CreateMesh(vertices []types.Vec3, indices []uint32) (intersector.Handle, error) {
	h := &handle{numVerts: len(vertices), numTris: len(indices) / 3}
	m.handles = append(m.handles, h)
	return h, nil
}

func (m *Intersector) CreateInstance(base intersector.Handle) (intersector.Handle, error) {
	baseHandle, _ := base.(*handle)
	h := &handle{base: baseHandle}
	m.handles = append(m.handles, h)
	return h, nil
}

func (m *Intersector) Detach(h intersector.Handle) {
	hh := h.(*handle)
	hh.attached = false
	for i, a := range m.Attached {
		if a == h {
			m.Attached = append(m.Attached[:i], m.Attached[i+1:]...)
			break
		}
	}
}

func (m *Intersector) Delete(h intersector.Handle) {
	hh := h.(*handle)
	hh.deleted = true
}

func (m *Intersector) Attach(h intersector.Handle) {
	h.(*handle).attached = true
	m.Attached = append(m.Attached, h)
}

func (m *Intersector) DetachAll() {
	m.DetachAllCalls++
	for _, h := range m.handles {
		h.attached = false
	}
	m.Attached = nil
}

func (m *Intersector) Commit() error {
	m.CommitCount++
	return nil
}

// NumLiveHandles returns the number of handles that have been created but
// not yet deleted, useful for asserting detach/delete/create/attach/commit
// lifecycle ordering in tests.
func (m *Intersector) NumLiveHandles() int {
	n := 0
	for _, h := range m.handles {
		if !h.deleted {
			n++
		}
	}
	return n
}
