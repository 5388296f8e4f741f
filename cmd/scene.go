package cmd

import (
	"github.com/achilleasa/scenecache/scenegraph"
	"github.com/achilleasa/scenecache/types"
)

// BuildDemoScene assembles a small in-memory scene exercising every
// compiled-scene buffer: a textured lambert ground plane, an instanced
// emitter triangle doubling as an area light, a point light and an environment
// light, all under a physical camera. There is no on-disk scene format in
// this repository's scope, so the demo scene is built directly in code
// rather than loaded from a file.
func BuildDemoScene() *scenegraph.BasicScene {
	scene := scenegraph.NewBasicScene()

	cam := scenegraph.NewCamera()
	cam.Position = types.XYZ(0, 2, 6)
	cam.Aperture = 0.01
	cam.FocusDistance = 6
	scene.SetCamera(cam)

	groundTex := scenegraph.NewTexture(2, 2, scenegraph.FormatRGBA8, make([]byte, 2*2*4))
	groundMat := scenegraph.NewSingleBxdf(scenegraph.BxdfLambert)
	groundMat.SetInput("albedo", scenegraph.TextureInput(groundTex))

	ground := scenegraph.NewMesh("ground")
	ground.Vertices = []types.Vec3{
		types.XYZ(-5, 0, -5), types.XYZ(5, 0, -5), types.XYZ(5, 0, 5), types.XYZ(-5, 0, 5),
	}
	ground.Normals = []types.Vec3{types.XYZ(0, 1, 0), types.XYZ(0, 1, 0), types.XYZ(0, 1, 0), types.XYZ(0, 1, 0)}
	ground.UVs = []types.Vec2{types.XY(0, 0), types.XY(1, 0), types.XY(1, 1), types.XY(0, 1)}
	ground.Indices = []uint32{0, 1, 2, 0, 2, 3}
	ground.Mat = groundMat
	scene.AddMesh(ground)

	emitterBase := scenegraph.NewMesh("emitter-base")
	emitterBase.Vertices = []types.Vec3{types.XYZ(-0.5, 0, -0.5), types.XYZ(0.5, 0, -0.5), types.XYZ(0, 1, 0)}
	emitterBase.Normals = []types.Vec3{types.XYZ(0, 0, 1), types.XYZ(0, 0, 1), types.XYZ(0, 0, 1)}
	emitterBase.UVs = []types.Vec2{types.XY(0, 0), types.XY(1, 0), types.XY(0.5, 1)}
	emitterBase.Indices = []uint32{0, 1, 2}
	emitterBase.Mat = scenegraph.NewSingleBxdf(scenegraph.BxdfEmissive)

	emitter := scenegraph.NewInstance(emitterBase)
	emitter.Xform = types.Mat4Translate(types.XYZ(2, 0, 0))
	scene.AddInstance(emitter)

	scene.AddLight(&scenegraph.PointLight{Position: types.XYZ(-3, 4, 0), Intensity: types.XYZ(8, 8, 8)})
	scene.AddLight(&scenegraph.AreaLight{Shape: emitter, PrimitiveIndex: 0})

	envTex := scenegraph.NewTexture(4, 2, scenegraph.FormatRGBA32, make([]byte, 4*2*16))
	scene.AddLight(&scenegraph.IblLight{Multiplier: 1.2, Texture: envTex})

	return scene
}
