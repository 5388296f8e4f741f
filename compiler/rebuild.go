package compiler

import (
	"fmt"

	"github.com/achilleasa/scenecache/compiledscene"
	"github.com/achilleasa/scenecache/device"
	"github.com/achilleasa/scenecache/scenegraph"
	"github.com/achilleasa/scenecache/writers"
)

// fullRebuild implements §4.4: drop every acceleration-structure handle the
// record currently owns, then rewrite every buffer from scratch in the
// order camera, lights, shapes, materials, textures, intersector, plus the
// single default volume record.
func (t *Tracker) fullRebuild(scene scenegraph.Scene, out *compiledscene.CompiledScene) error {
	for _, h := range out.IsectShapes {
		t.isect.Detach(h)
		t.isect.Delete(h)
	}
	out.IsectShapes = nil
	out.VisibleShapes = nil

	if scene.Camera() == nil {
		return fmt.Errorf("No camera in the scene")
	}
	if err := t.rebuildCamera(scene, out); err != nil {
		return err
	}

	if scene.NumLights() == 0 {
		return fmt.Errorf("No lights in the scene")
	}
	if err := t.rebuildLights(scene, out); err != nil {
		return err
	}

	if len(scene.Shapes()) == 0 {
		return fmt.Errorf("No shapes in the scene")
	}
	if err := t.rebuildShapes(scene, out); err != nil {
		return err
	}

	if err := t.rebuildMaterials(out); err != nil {
		return err
	}

	if err := t.rebuildTextures(out); err != nil {
		return err
	}

	if err := t.rebuildIntersectorShapes(scene, out); err != nil {
		return err
	}

	out.Volumes = []compiledscene.Volume{compiledscene.DefaultVolume()}
	buf, err := uploadAndWait(t.devCtx, out.VolumesBuf, "volumes", out.Volumes)
	if err != nil {
		return fmt.Errorf("device: uploading volumes: %w", err)
	}
	out.VolumesBuf = buf

	return nil
}

// rebuildCamera writes the single-entry camera buffer (§4.3's camera
// rebuild bullet).
func (t *Tracker) rebuildCamera(scene scenegraph.Scene, out *compiledscene.CompiledScene) error {
	rec := writers.WriteCamera(scene.Camera())
	out.Camera = rec

	buf, err := uploadAndWait(t.devCtx, out.CameraBuf, "camera", []compiledscene.Camera{rec})
	if err != nil {
		return fmt.Errorf("device: uploading camera: %w", err)
	}
	out.CameraBuf = buf
	return nil
}

// rebuildLights writes the lights buffer and resolves envmapidx (§4.8,
// I7). It re-derives the shape partition to resolve area-light shapeidx
// references, rather than depending on a shape rebuild having already run
// this call — lights can be dirty independently of shapes. The partition
// is computed once per call and shared by every area light in it.
func (t *Tracker) rebuildLights(scene scenegraph.Scene, out *compiledscene.CompiledScene) error {
	meshes, excluded, instances := writers.PartitionShapes(scene.Shapes())
	out.ShapeOrder = writers.ShapeOrder(meshes, excluded, instances)

	shapeIdx := make(map[scenegraph.Shape]int32, len(out.ShapeOrder))
	for i, s := range out.ShapeOrder {
		shapeIdx[s] = int32(i)
	}
	shapeIdxOf := func(s scenegraph.Shape) int32 {
		if idx, ok := shapeIdx[s]; ok {
			return idx
		}
		return -1
	}

	lights := scene.Lights()
	recs := make([]compiledscene.Light, len(lights))
	envIdx := int32(-1)
	for i, l := range lights {
		recs[i] = writers.WriteLight(l, t.texIndexOf, shapeIdxOf)
		if l.Kind() == scenegraph.LightIbl {
			envIdx = int32(i)
		}
	}

	out.Lights = recs
	out.NumLights = int32(len(recs))
	out.EnvMapIdx = envIdx

	buf, err := uploadAndWait(t.devCtx, out.LightsBuf, "lights", out.Lights)
	if err != nil {
		return fmt.Errorf("device: uploading lights: %w", err)
	}
	out.LightsBuf = buf
	return nil
}

// rebuildShapes runs the §4.5 serialization pass and uploads every
// geometry-related buffer it produces.
func (t *Tracker) rebuildShapes(scene scenegraph.Scene, out *compiledscene.CompiledScene) error {
	res := writers.WriteShapes(scene.Shapes(), t.defaultMaterial, t.matIndexOf)

	out.Vertices, out.Normals, out.UVs, out.Indices = res.Vertices, res.Normals, res.UVs, res.Indices
	out.Shapes, out.MaterialIDs = res.Shapes, res.MaterialIDs
	out.ShapeOrder = res.ShapeOrder

	var err error
	if out.VerticesBuf, err = uploadAndWait(t.devCtx, out.VerticesBuf, "vertices", out.Vertices); err != nil {
		return fmt.Errorf("device: uploading vertices: %w", err)
	}
	if out.NormalsBuf, err = uploadAndWait(t.devCtx, out.NormalsBuf, "normals", out.Normals); err != nil {
		return fmt.Errorf("device: uploading normals: %w", err)
	}
	if out.UVsBuf, err = uploadAndWait(t.devCtx, out.UVsBuf, "uvs", out.UVs); err != nil {
		return fmt.Errorf("device: uploading uvs: %w", err)
	}
	if out.IndicesBuf, err = uploadAndWait(t.devCtx, out.IndicesBuf, "indices", out.Indices); err != nil {
		return fmt.Errorf("device: uploading indices: %w", err)
	}
	if out.ShapesBuf, err = uploadAndWait(t.devCtx, out.ShapesBuf, "shapes", out.Shapes); err != nil {
		return fmt.Errorf("device: uploading shapes: %w", err)
	}
	if out.MaterialIDsBuf, err = uploadAndWait(t.devCtx, out.MaterialIDsBuf, "materialids", out.MaterialIDs); err != nil {
		return fmt.Errorf("device: uploading materialids: %w", err)
	}
	return nil
}

// rebuildMaterials writes the materials buffer in collector index order and
// snapshots the bundle NeedsUpdate compares against next time (§4.7).
func (t *Tracker) rebuildMaterials(out *compiledscene.CompiledScene) error {
	recs := make([]compiledscene.Material, t.matCollector.NumItems())
	t.matCollector.Iterate(func(idx int32, m scenegraph.Material) {
		recs[idx] = writers.WriteMaterial(m, t.matIndexOf, t.texIndexOf)
	})
	out.Materials = recs
	out.MaterialBundle = t.matCollector.CreateBundle()
	out.HasMaterialBundle = true

	buf, err := uploadAndWait(t.devCtx, out.MaterialsBuf, "materials", out.Materials)
	if err != nil {
		return fmt.Errorf("device: uploading materials: %w", err)
	}
	out.MaterialsBuf = buf
	return nil
}

// rebuildTextures writes the texture headers and packed payload blob
// (§4.9), snapshotting the bundle NeedsUpdate compares against next time.
func (t *Tracker) rebuildTextures(out *compiledscene.CompiledScene) error {
	textures := make([]*scenegraph.Texture, t.texCollector.NumItems())
	t.texCollector.Iterate(func(idx int32, tex *scenegraph.Texture) { textures[idx] = tex })

	headers, data := writers.WriteTextures(textures)
	out.Textures = headers
	out.TextureData = data
	out.TextureBundle = t.texCollector.CreateBundle()
	out.HasTextureBundle = true

	var err error
	if out.TexturesBuf, err = uploadAndWait(t.devCtx, out.TexturesBuf, "textures", out.Textures); err != nil {
		return fmt.Errorf("device: uploading textures: %w", err)
	}
	if out.TextureDataBuf, err = uploadAndWait(t.devCtx, out.TextureDataBuf, "texturedata", out.TextureData); err != nil {
		return fmt.Errorf("device: uploading texturedata: %w", err)
	}
	return nil
}

// uploadAndWait is the map→write→unmap→wait scoped-lease pattern (§5, §9)
// collapsed into one call: it grows buf if needed, writes data, and blocks
// until the device has the copy before returning.
func uploadAndWait[T any](ctx device.Context, buf device.Buffer, name string, data []T) (device.Buffer, error) {
	buf, ev, err := device.Upload(ctx, buf, name, data)
	if err != nil {
		return buf, err
	}
	if err := ev.Wait(); err != nil {
		return buf, fmt.Errorf("waiting on %s upload: %w", name, err)
	}
	return buf, nil
}
