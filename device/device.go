// Package device defines the minimal device-buffer abstraction the scene
// compiler drives every record buffer through: allocate, then repeatedly
// map, write, unmap, and wait for the copy to land.
package device

import "unsafe"

// Context creates device buffers. A concrete implementation lives in
// device/opencl (backed by real OpenCL hardware) and device/memory (a
// host-only stand-in used by tests and the CLI demo, where no GPU is
// assumed to be present).
type Context interface {
	CreateBuffer(name string, sizeBytes int) (Buffer, error)
}

// Buffer is a device-resident memory region.
type Buffer interface {
	Name() string
	Size() int

	// Map returns a host-visible staging region backing the first
	// sizeBytes of the buffer. The region is not guaranteed to reflect
	// the on-device contents until a prior Unmap's event has been
	// waited on.
	Map(sizeBytes int) ([]byte, error)

	// Unmap flushes a previously Map'd region back to the device and
	// returns an Event the caller must Wait() on before relying on the
	// device seeing the write.
	Unmap() (Event, error)

	Release()
}

// Event represents an in-flight asynchronous device operation.
type Event interface {
	Wait() error
}

// noopEvent is already complete; Wait always returns nil. Used for
// zero-length writes, which never touch the device.
type noopEvent struct{}

func (noopEvent) Wait() error { return nil }

// NoopEvent returns an Event that is already satisfied.
func NoopEvent() Event { return noopEvent{} }

// WriteSlice maps buf to fit data, copies data's backing bytes into the
// mapped region via unsafe.Slice reinterpretation, and unmaps. Unlike the
// reflect-based marshaling this is adapted from, the element layout is
// known at compile time through the type parameter, so no runtime
// reflection is needed to find the slice's backing pointer and length.
func WriteSlice[T any](buf Buffer, data []T) (Event, error) {
	if len(data) == 0 {
		return NoopEvent(), nil
	}

	sizeBytes := ByteLen(data)

	mapped, err := buf.Map(sizeBytes)
	if err != nil {
		return nil, err
	}

	src := unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), sizeBytes)
	copy(mapped, src)

	return buf.Unmap()
}

// ByteLen returns the byte size of data's backing storage, computed from
// the element type rather than from reflection.
func ByteLen[T any](data []T) int {
	var zero T
	return len(data) * int(unsafe.Sizeof(zero))
}

// EnsureCapacity returns buf unchanged if it already has at least sizeBytes
// of capacity; otherwise it releases buf (if non-nil) and allocates a fresh
// buffer of exactly sizeBytes. Buffers are resized only upward, matching
// the compiled scene's rule that, e.g., a shrinking light count leaves
// stale trailing slots rather than reallocating.
//
// sizeBytes is floored to 1: a buffer is never created with zero length, so
// a subsequent Map never fails against a genuinely empty buffer (the
// texture buffers' "allocate at length 1, write nothing" case).
func EnsureCapacity(ctx Context, buf Buffer, name string, sizeBytes int) (Buffer, error) {
	if sizeBytes < 1 {
		sizeBytes = 1
	}
	if buf != nil && buf.Size() >= sizeBytes {
		return buf, nil
	}
	if buf != nil {
		buf.Release()
	}
	return ctx.CreateBuffer(name, sizeBytes)
}

// Upload ensures buf has capacity for data and writes it, returning the
// (possibly reallocated) buffer and the in-flight write event. The caller
// must Wait() the event before any kernel may read the buffer.
func Upload[T any](ctx Context, buf Buffer, name string, data []T) (Buffer, Event, error) {
	buf, err := EnsureCapacity(ctx, buf, name, ByteLen(data))
	if err != nil {
		return buf, nil, err
	}
	ev, err := WriteSlice(buf, data)
	return buf, ev, err
}
