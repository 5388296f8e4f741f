// Package compiler implements the scene compiler (§4.3): it drives the
// collector, writer and intersector-bridge passes, owns the per-scene-
// identity cache, and decides between a full rebuild and a selective
// incremental update from a scene's dirty flags.
package compiler

import (
	"fmt"
	"time"

	"github.com/achilleasa/scenecache/collector"
	"github.com/achilleasa/scenecache/compiledscene"
	"github.com/achilleasa/scenecache/device"
	"github.com/achilleasa/scenecache/intersector"
	"github.com/achilleasa/scenecache/log"
	"github.com/achilleasa/scenecache/scenegraph"
)

// Tracker is a scene compiler instance. It must not be invoked concurrently
// from multiple goroutines; a single Tracker owns one scene cache and one
// pair of collectors that are cleared and reused on every Compile call.
type Tracker struct {
	devCtx device.Context
	isect  intersector.Intersector
	logger log.Logger

	defaultMaterial scenegraph.Material

	matCollector *collector.Collector[scenegraph.Material]
	texCollector *collector.Collector[*scenegraph.Texture]

	cache        map[scenegraph.Scene]*compiledscene.CompiledScene
	currentScene scenegraph.Scene
}

// New returns a Tracker that allocates device buffers through devCtx and
// drives acceleration-structure handles through isect.
func New(devCtx device.Context, isect intersector.Intersector) *Tracker {
	return &Tracker{
		devCtx:          devCtx,
		isect:           isect,
		logger:          log.New("scene compiler"),
		defaultMaterial: scenegraph.DefaultMaterial(),
		matCollector:    collector.New[scenegraph.Material](),
		texCollector:    collector.New[*scenegraph.Texture](),
		cache:           make(map[scenegraph.Scene]*compiledscene.CompiledScene),
	}
}

// Compile translates scene into its cached device-resident representation
// per §4.3. The returned *compiledscene.CompiledScene is owned by the
// Tracker and reused across calls for the same scene identity (I6); callers
// must not mutate it.
func (t *Tracker) Compile(scene scenegraph.Scene) (*compiledscene.CompiledScene, error) {
	start := time.Now()

	t.matCollector.Clear()
	t.texCollector.Clear()
	t.collectMaterials(scene)
	t.collectTextures(scene)

	out, exists := t.cache[scene]
	if !exists {
		out = compiledscene.New()
		t.cache[scene] = out

		if err := t.fullRebuild(scene, out); err != nil {
			return nil, err
		}
		if err := t.reloadIntersector(out); err != nil {
			return nil, err
		}
		t.currentScene = scene
		t.finishCompile(scene, start, "full rebuild")
		return out, nil
	}

	if err := t.compileIncremental(scene, out); err != nil {
		return nil, err
	}

	t.finishCompile(scene, start, "incremental update")
	return out, nil
}

// compileIncremental implements §4.3's "otherwise" branch against an
// already-cached record.
func (t *Tracker) compileIncremental(scene scenegraph.Scene, out *compiledscene.CompiledScene) error {
	if scene.Camera() == nil {
		return fmt.Errorf("No camera in the scene")
	}
	dirty := scene.DirtyFlags()
	if dirty.Has(scenegraph.DirtyCamera) || scene.Camera().Dirty() {
		if err := t.rebuildCamera(scene, out); err != nil {
			return err
		}
	}

	if scene.NumLights() == 0 {
		return fmt.Errorf("No lights in the scene")
	}
	if dirty.Has(scenegraph.DirtyLights) || anyLightDirty(scene.Lights()) {
		if err := t.rebuildLights(scene, out); err != nil {
			return err
		}
	}

	if len(scene.Shapes()) == 0 {
		return fmt.Errorf("No shapes in the scene")
	}
	shapesRebuilt := false
	if dirty.Has(scenegraph.DirtyShapes) || anyShapeDirty(scene.Shapes()) {
		if err := t.rebuildShapes(scene, out); err != nil {
			return err
		}
		if err := t.rebuildIntersectorShapes(scene, out); err != nil {
			return err
		}
		shapesRebuilt = true
	}

	if !out.HasMaterialBundle || t.matCollector.NeedsUpdate(out.MaterialBundle, isMaterialDirty) {
		if err := t.rebuildMaterials(out); err != nil {
			return err
		}
	}

	if t.texCollector.NumItems() > 0 && (!out.HasTextureBundle || t.texCollector.NeedsUpdate(out.TextureBundle, isTextureDirty)) {
		if err := t.rebuildTextures(out); err != nil {
			return err
		}
	}

	if shapesRebuilt || t.currentScene != scene {
		if err := t.reloadIntersector(out); err != nil {
			return err
		}
	}
	t.currentScene = scene

	return nil
}

func (t *Tracker) finishCompile(scene scenegraph.Scene, start time.Time, kind string) {
	scene.ClearDirtyFlags()
	t.logger.Noticef("compiled scene (%s) in %d ms", kind, time.Since(start).Nanoseconds()/1e6)
}

func (t *Tracker) matIndexOf(m scenegraph.Material) int32 {
	idx, ok := t.matCollector.IndexOf(m)
	if !ok {
		return -1
	}
	return idx
}

func (t *Tracker) texIndexOf(tex *scenegraph.Texture) int32 {
	if tex == nil {
		return -1
	}
	idx, ok := t.texCollector.IndexOf(tex)
	if !ok {
		return -1
	}
	return idx
}

func anyLightDirty(lights []scenegraph.Light) bool {
	for _, l := range lights {
		if l.Dirty() {
			return true
		}
	}
	return false
}

func anyShapeDirty(shapes []scenegraph.Shape) bool {
	for _, s := range shapes {
		if s.Dirty() {
			return true
		}
	}
	return false
}

func isMaterialDirty(m scenegraph.Material) bool { return m.Dirty() }

func isTextureDirty(tex *scenegraph.Texture) bool { return tex.Dirty() }
