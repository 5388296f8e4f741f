// Package memory provides a host-only device.Context, used by the CLI demo
// and by compiler tests where no OpenCL hardware can be assumed present.
package memory

import (
	"fmt"

	"github.com/achilleasa/scenecache/device"
)

// Context is a device.Context backed by plain Go byte slices.
type Context struct{}

// New returns a host-only context.
func New() *Context { return &Context{} }

func (c *Context) CreateBuffer(name string, sizeBytes int) (device.Buffer, error) {
	if sizeBytes < 0 {
		return nil, fmt.Errorf("memory device: negative buffer size %d for %s", sizeBytes, name)
	}
	return &buffer{name: name, data: make([]byte, sizeBytes)}, nil
}

type buffer struct {
	name    string
	data    []byte
	mapping []byte
}

func (b *buffer) Name() string { return b.name }

func (b *buffer) Size() int { return len(b.data) }

func (b *buffer) Map(sizeBytes int) ([]byte, error) {
	if sizeBytes > len(b.data) {
		return nil, fmt.Errorf("memory device: buffer %s too small (%d) to map %d bytes", b.name, len(b.data), sizeBytes)
	}
	b.mapping = b.data[:sizeBytes]
	return b.mapping, nil
}

func (b *buffer) Unmap() (device.Event, error) {
	b.mapping = nil
	return device.NoopEvent(), nil
}

func (b *buffer) Release() {
	b.data = nil
	b.mapping = nil
}
