package memory

import "testing"

func TestCreateBufferAllocatesRequestedSize(t *testing.T) {
	ctx := New()

	buf, err := ctx.CreateBuffer("test", 128)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Size() != 128 {
		t.Fatalf("Size() = %d, want 128", buf.Size())
	}
	if buf.Name() != "test" {
		t.Fatalf("Name() = %q, want %q", buf.Name(), "test")
	}
}

func TestCreateBufferRejectsNegativeSize(t *testing.T) {
	ctx := New()
	if _, err := ctx.CreateBuffer("test", -1); err == nil {
		t.Fatal("expected an error for a negative buffer size")
	}
}

func TestMapRejectsOversizedRequest(t *testing.T) {
	ctx := New()
	buf, err := ctx.CreateBuffer("test", 4)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := buf.Map(8); err == nil {
		t.Fatal("expected an error mapping more bytes than the buffer holds")
	}
}

func TestMapThenUnmapRoundTripsData(t *testing.T) {
	ctx := New()
	buf, err := ctx.CreateBuffer("test", 4)
	if err != nil {
		t.Fatal(err)
	}

	mapped, err := buf.Map(4)
	if err != nil {
		t.Fatal(err)
	}
	copy(mapped, []byte{1, 2, 3, 4})

	ev, err := buf.Unmap()
	if err != nil {
		t.Fatal(err)
	}
	if err := ev.Wait(); err != nil {
		t.Fatal(err)
	}
}

func TestReleaseClearsBackingStorage(t *testing.T) {
	ctx := New()
	buf, err := ctx.CreateBuffer("test", 4)
	if err != nil {
		t.Fatal(err)
	}
	buf.Release()
	if buf.Size() != 0 {
		t.Fatalf("Size() after Release() = %d, want 0", buf.Size())
	}
}
