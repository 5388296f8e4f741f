package writers

import (
	"bytes"
	"testing"

	"github.com/achilleasa/scenecache/scenegraph"
)

func TestWriteTexturesComputesCumulativeOffsetsAndPacksPayloads(t *testing.T) {
	a := scenegraph.NewTexture(2, 2, scenegraph.FormatRGBA8, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16})
	b := scenegraph.NewTexture(1, 1, scenegraph.FormatRGBA32, []byte{0xA, 0xB, 0xC, 0xD})

	headers, data := WriteTextures([]*scenegraph.Texture{a, b})

	if len(headers) != 2 {
		t.Fatalf("len(headers) = %d, want 2", len(headers))
	}
	if headers[0].DataOffset != 0 {
		t.Fatalf("headers[0].DataOffset = %d, want 0", headers[0].DataOffset)
	}
	if headers[1].DataOffset != int32(len(a.Data)) {
		t.Fatalf("headers[1].DataOffset = %d, want %d", headers[1].DataOffset, len(a.Data))
	}
	if got, want := len(data), len(a.Data)+len(b.Data); got != want {
		t.Fatalf("len(data) = %d, want %d", got, want)
	}
	if !bytes.Equal(data[headers[1].DataOffset:], b.Data) {
		t.Fatal("texture b's payload was not copied at its computed offset")
	}
	if a.Dirty() || b.Dirty() {
		t.Fatal("textures still dirty after WriteTextures")
	}
}

func TestWriteTexturesEmptyCollectionProducesNoHeadersOrData(t *testing.T) {
	headers, data := WriteTextures(nil)
	if len(headers) != 0 {
		t.Fatalf("len(headers) = %d, want 0", len(headers))
	}
	if len(data) != 0 {
		t.Fatalf("len(data) = %d, want 0", len(data))
	}
}
