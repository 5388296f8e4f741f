// Package compiledscene holds the flat, device-resident representation the
// compiler produces from a scenegraph.Scene: one CompiledScene per source
// scene identity.
package compiledscene

import (
	"bytes"
	"fmt"
	"strings"
	"unsafe"

	"github.com/olekukonko/tablewriter"

	"github.com/achilleasa/scenecache/collector"
	"github.com/achilleasa/scenecache/device"
	"github.com/achilleasa/scenecache/intersector"
	"github.com/achilleasa/scenecache/scenegraph"
	"github.com/achilleasa/scenecache/types"
)

// CompiledScene is the compiler's output, and the unit the cache stores per
// scene identity. Host-side slices are the source of truth the compiler
// reads and writes; the *Buf fields mirror them on the device and are
// rewritten (via device.WriteSlice) whenever the corresponding host slice
// changes.
type CompiledScene struct {
	Camera Camera

	Vertices []types.Vec3
	Normals  []types.Vec3
	UVs      []types.Vec2
	Indices  []uint32

	Shapes      []Shape
	MaterialIDs []int32
	Materials   []Material

	Textures    []Texture
	TextureData []byte

	Lights    []Light
	NumLights int32
	EnvMapIdx int32

	Volumes []Volume

	// IsectShapes holds every acceleration-structure handle owned by
	// this compiled scene, in {meshes, excluded meshes, instances}
	// order. VisibleShapes is the subset currently attached to the
	// intersector.
	IsectShapes   []intersector.Handle
	VisibleShapes []intersector.Handle

	// ShapeOrder is the {meshes, excluded meshes, instances} partition
	// order (§4.5) last written by the shape, light or intersector pass.
	// Each of those passes derives it from writers.PartitionShapes, so
	// they agree on shape positions; none of them reads it back.
	ShapeOrder []scenegraph.Shape

	MaterialBundle    collector.Bundle[scenegraph.Material]
	HasMaterialBundle bool
	TextureBundle     collector.Bundle[*scenegraph.Texture]
	HasTextureBundle  bool

	CameraBuf      device.Buffer
	VerticesBuf    device.Buffer
	NormalsBuf     device.Buffer
	UVsBuf         device.Buffer
	IndicesBuf     device.Buffer
	ShapesBuf      device.Buffer
	MaterialIDsBuf device.Buffer
	MaterialsBuf   device.Buffer
	TexturesBuf    device.Buffer
	TextureDataBuf device.Buffer
	LightsBuf      device.Buffer
	VolumesBuf     device.Buffer
}

// New returns an empty compiled scene.
func New() *CompiledScene {
	return &CompiledScene{}
}

// Stats renders a tabular breakdown of the compiled scene's buffer sizes.
func (cs *CompiledScene) Stats() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Asset Type", "Asset", "Size"})

	vtx := sizeOf(cs.Vertices)
	nrm := sizeOf(cs.Normals)
	uv := sizeOf(cs.UVs)
	idx := sizeOf(cs.Indices)
	table.Append([]string{"Geometry", "---", fmtSize(vtx + nrm + uv + idx)})
	table.Append([]string{"", "Vertices", fmtSize(vtx)})
	table.Append([]string{"", "Normals", fmtSize(nrm)})
	table.Append([]string{"", "UVs", fmtSize(uv)})
	table.Append([]string{"", "Indices", fmtSize(idx)})
	table.Append([]string{" ", " ", " "})

	shapes := sizeOf(cs.Shapes)
	matIDs := sizeOf(cs.MaterialIDs)
	table.Append([]string{"Shapes", "---", fmtSize(shapes + matIDs)})
	table.Append([]string{"", "Shape records", fmtSize(shapes)})
	table.Append([]string{"", "Material ids", fmtSize(matIDs)})
	table.Append([]string{" ", " ", " "})

	mats := sizeOf(cs.Materials)
	table.Append([]string{"Materials", "---", fmtSize(mats)})
	table.Append([]string{" ", " ", " "})

	texHeaders := sizeOf(cs.Textures)
	texData := len(cs.TextureData)
	table.Append([]string{"Textures", "---", fmtSize(texHeaders + texData)})
	table.Append([]string{"", "Headers", fmtSize(texHeaders)})
	table.Append([]string{"", "Data", fmtSize(texData)})
	table.Append([]string{" ", " ", " "})

	lights := sizeOf(cs.Lights)
	volumes := sizeOf(cs.Volumes)
	table.Append([]string{"Lights/Volumes", "---", fmtSize(lights + volumes)})
	table.Append([]string{"", "Lights", fmtSize(lights)})
	table.Append([]string{"", "Volumes", fmtSize(volumes)})

	total := vtx + nrm + uv + idx + shapes + matIDs + mats + texHeaders + texData + lights + volumes
	table.SetFooter([]string{"Total", " ", strings.TrimLeft(fmtSize(total), " ")})

	table.Render()
	return buf.String()
}

func sizeOf[T any](s []T) int {
	if len(s) == 0 {
		return 0
	}
	var zero T
	return len(s) * int(unsafe.Sizeof(zero))
}

func fmtSize(n int) string {
	total := float32(n)
	switch {
	case total < 1e3:
		return fmt.Sprintf("%3d bytes", int(total))
	case total < 1e6:
		return fmt.Sprintf("%3.1f kb", total/1e3)
	default:
		return fmt.Sprintf("%5.1f mb", total/1e6)
	}
}
