// Package opencl adapts the scene compiler's device.Context to real OpenCL
// hardware via github.com/achilleasa/gopencl.
package opencl

import (
	"fmt"
	"unsafe"

	"github.com/achilleasa/gopencl/v1.2/cl"

	"github.com/achilleasa/scenecache/device"
)

// Context wraps an opencl context and command queue already set up by the
// caller (device selection and program compilation are outside this
// subsystem's scope).
type Context struct {
	name     string
	ctx      cl.Context
	cmdQueue cl.CommandQueue
}

// New wraps an already-initialized opencl context and command queue.
func New(name string, ctx cl.Context, cmdQueue cl.CommandQueue) *Context {
	return &Context{name: name, ctx: ctx, cmdQueue: cmdQueue}
}

func (c *Context) CreateBuffer(name string, sizeBytes int) (device.Buffer, error) {
	var errCode int32

	handle := cl.CreateBuffer(c.ctx, cl.MEM_READ_WRITE, cl.MemFlags(sizeBytes), nil, &errCode)
	if cl.ErrorCode(errCode) != cl.SUCCESS {
		return nil, fmt.Errorf("opencl device (%s): could not allocate buffer %s of size %d (errCode %d)", c.name, name, sizeBytes, errCode)
	}

	return &buffer{ctx: c, name: name, size: sizeBytes, handle: handle}, nil
}

type buffer struct {
	ctx     *Context
	name    string
	size    int
	handle  cl.Mem
	mapping []byte
}

func (b *buffer) Name() string { return b.name }

func (b *buffer) Size() int { return b.size }

// Map allocates a host staging area; real OpenCL map/unmap calls (rather
// than a plain staging buffer plus a blocking write) are not exercised by
// this package, since the retrieved pack's gopencl binding only shows
// EnqueueWriteBuffer/EnqueueReadBuffer, not EnqueueMapBuffer.
func (b *buffer) Map(sizeBytes int) ([]byte, error) {
	if sizeBytes > b.size {
		return nil, fmt.Errorf("opencl device (%s): buffer %s too small (%d) to map %d bytes", b.ctx.name, b.name, b.size, sizeBytes)
	}
	b.mapping = make([]byte, sizeBytes)
	return b.mapping, nil
}

func (b *buffer) Unmap() (device.Event, error) {
	if b.mapping == nil {
		return device.NoopEvent(), nil
	}

	errCode := cl.EnqueueWriteBuffer(
		b.ctx.cmdQueue,
		b.handle,
		cl.TRUE,
		0,
		uint64(len(b.mapping)),
		unsafe.Pointer(&b.mapping[0]),
		0,
		nil,
		nil,
	)
	b.mapping = nil

	if errCode != cl.SUCCESS {
		return nil, fmt.Errorf("opencl device (%s): error copying host data to device buffer %s (errCode %d)", b.ctx.name, b.name, errCode)
	}

	// EnqueueWriteBuffer was issued with a blocking flag, so the copy has
	// already landed by the time it returns.
	return device.NoopEvent(), nil
}

func (b *buffer) Release() {
	if b.handle != nil {
		cl.ReleaseMemObject(b.handle)
		b.handle = nil
	}
}
