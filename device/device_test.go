package device_test

import (
	"testing"

	"github.com/achilleasa/scenecache/device"
	"github.com/achilleasa/scenecache/device/memory"
)

func TestEnsureCapacityAllocatesOnFirstUse(t *testing.T) {
	ctx := memory.New()

	buf, err := device.EnsureCapacity(ctx, nil, "test", 64)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Size() != 64 {
		t.Fatalf("Size() = %d, want 64", buf.Size())
	}
}

func TestEnsureCapacityFloorsZeroLengthToOne(t *testing.T) {
	ctx := memory.New()

	buf, err := device.EnsureCapacity(ctx, nil, "test", 0)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", buf.Size())
	}
}

func TestEnsureCapacityReusesBufferWhenAlreadyLargeEnough(t *testing.T) {
	ctx := memory.New()

	buf, err := device.EnsureCapacity(ctx, nil, "test", 128)
	if err != nil {
		t.Fatal(err)
	}

	grown, err := device.EnsureCapacity(ctx, buf, "test", 64)
	if err != nil {
		t.Fatal(err)
	}
	if grown != buf {
		t.Fatal("EnsureCapacity reallocated a buffer that was already big enough")
	}
}

func TestEnsureCapacityReallocatesOnGrowth(t *testing.T) {
	ctx := memory.New()

	buf, err := device.EnsureCapacity(ctx, nil, "test", 16)
	if err != nil {
		t.Fatal(err)
	}

	grown, err := device.EnsureCapacity(ctx, buf, "test", 256)
	if err != nil {
		t.Fatal(err)
	}
	if grown.Size() != 256 {
		t.Fatalf("Size() = %d, want 256", grown.Size())
	}
}

func TestUploadWritesDataAndReturnsAWaitableEvent(t *testing.T) {
	ctx := memory.New()

	data := []int32{1, 2, 3, 4}
	buf, ev, err := device.Upload[int32](ctx, nil, "test", data)
	if err != nil {
		t.Fatal(err)
	}
	if err := ev.Wait(); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.Size(), device.ByteLen(data); got != want {
		t.Fatalf("Size() = %d, want %d", got, want)
	}
}

func TestUploadOfEmptySliceNeverMaps(t *testing.T) {
	ctx := memory.New()

	buf, ev, err := device.Upload[int32](ctx, nil, "test", nil)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Size() != 1 {
		t.Fatalf("Size() = %d, want the zero-length-upload floor of 1", buf.Size())
	}
	if err := ev.Wait(); err != nil {
		t.Fatal(err)
	}
}
