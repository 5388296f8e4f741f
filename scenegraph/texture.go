package scenegraph

// TextureFormat enumerates the pixel layouts a Texture payload may carry.
type TextureFormat int

const (
	FormatRGBA8 TextureFormat = iota
	FormatRGBA16
	FormatRGBA32
)

func (f TextureFormat) String() string {
	switch f {
	case FormatRGBA8:
		return "rgba8"
	case FormatRGBA16:
		return "rgba16"
	case FormatRGBA32:
		return "rgba32"
	default:
		return "unknown"
	}
}

// BytesPerPixel returns the payload size of a single texel in this format.
func (f TextureFormat) BytesPerPixel() int {
	switch f {
	case FormatRGBA8:
		return 4
	case FormatRGBA16:
		return 8
	case FormatRGBA32:
		return 16
	default:
		return 0
	}
}

// Texture is a decoded, ready-to-upload image. Decoding from an on-disk
// resource happens upstream of this subsystem; Data already holds the raw
// texel payload.
type Texture struct {
	Width, Height uint32
	Format        TextureFormat
	Data          []byte
	dirty         bool
}

// NewTexture creates a texture with the given payload.
func NewTexture(width, height uint32, format TextureFormat, data []byte) *Texture {
	return &Texture{Width: width, Height: height, Format: format, Data: data}
}

func (t *Texture) Dirty() bool { return t.dirty }

func (t *Texture) SetDirty(d bool) { t.dirty = d }

// SizeInBytes returns the raw payload size.
func (t *Texture) SizeInBytes() int { return len(t.Data) }
