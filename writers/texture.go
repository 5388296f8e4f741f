package writers

import (
	"github.com/achilleasa/scenecache/compiledscene"
	"github.com/achilleasa/scenecache/scenegraph"
)

// WriteTextures serializes a collector-ordered texture list into headers
// plus a single packed payload blob, per §4.9's two-pass layout: headers
// record each texture's size/format/cumulative offset, then payloads are
// copied into the blob at those offsets.
func WriteTextures(textures []*scenegraph.Texture) ([]compiledscene.Texture, []byte) {
	headers := make([]compiledscene.Texture, len(textures))

	offset := int32(0)
	for i, t := range textures {
		headers[i] = compiledscene.Texture{
			W:          t.Width,
			H:          t.Height,
			Format:     textureFormatToInt(t.Format),
			DataOffset: offset,
		}
		offset += int32(t.SizeInBytes())
	}

	data := make([]byte, offset)
	pos := 0
	for _, t := range textures {
		pos += copy(data[pos:], t.Data)
		t.SetDirty(false)
	}

	return headers, data
}

func textureFormatToInt(f scenegraph.TextureFormat) int32 {
	switch f {
	case scenegraph.FormatRGBA8:
		return 0
	case scenegraph.FormatRGBA16:
		return 1
	case scenegraph.FormatRGBA32:
		return 2
	default:
		return 0
	}
}
