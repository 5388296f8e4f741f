package scenegraph

// Scene is the compiler's view of a scene graph: an unordered shape list,
// an unordered light list, a single camera, and a dirty-bit summary of what
// changed since the last compile.
type Scene interface {
	Shapes() []Shape
	Lights() []Light
	Camera() *Camera
	NumLights() int
	DirtyFlags() DirtyFlags
	ClearDirtyFlags()
}

// BasicScene is a straightforward in-memory Scene, the one a caller
// assembles by hand (or a loader populates) before handing it to the
// compiler.
type BasicScene struct {
	shapes []Shape
	lights []Light
	camera *Camera
	dirty  DirtyFlags
}

// NewBasicScene returns an empty scene.
func NewBasicScene() *BasicScene {
	return &BasicScene{}
}

func (s *BasicScene) Shapes() []Shape { return s.shapes }

func (s *BasicScene) Lights() []Light { return s.lights }

func (s *BasicScene) Camera() *Camera { return s.camera }

func (s *BasicScene) NumLights() int { return len(s.lights) }

func (s *BasicScene) DirtyFlags() DirtyFlags { return s.dirty }

func (s *BasicScene) ClearDirtyFlags() { s.dirty = 0 }

// AddMesh appends a mesh to the scene's shape list and marks it dirty.
func (s *BasicScene) AddMesh(m *Mesh) {
	s.shapes = append(s.shapes, m)
	s.dirty |= DirtyShapes
}

// AddInstance appends an instance to the scene's shape list and marks it
// dirty. Base meshes referenced only through an instance, and never added
// via AddMesh, become excluded meshes when the compiler partitions the
// shape list.
func (s *BasicScene) AddInstance(i *Instance) {
	s.shapes = append(s.shapes, i)
	s.dirty |= DirtyShapes
}

// RemoveShape drops shape from the scene's shape list, if present.
func (s *BasicScene) RemoveShape(shape Shape) {
	for idx, sh := range s.shapes {
		if sh == shape {
			s.shapes = append(s.shapes[:idx], s.shapes[idx+1:]...)
			s.dirty |= DirtyShapes
			return
		}
	}
}

// AddLight appends a light to the scene's light list and marks it dirty.
func (s *BasicScene) AddLight(l Light) {
	s.lights = append(s.lights, l)
	s.dirty |= DirtyLights
}

// SetCamera replaces the scene's camera and marks it dirty.
func (s *BasicScene) SetCamera(c *Camera) {
	s.camera = c
	s.dirty |= DirtyCamera
}

// MarkShapesDirty forces the shape-structure dirty bit without adding or
// removing any shape, useful when a test wants to force a full shape
// re-partition without touching any one shape's own dirty flag.
func (s *BasicScene) MarkShapesDirty() { s.dirty |= DirtyShapes }

// MarkLightsDirty forces the light-structure dirty bit.
func (s *BasicScene) MarkLightsDirty() { s.dirty |= DirtyLights }

// MarkCameraDirty forces the camera dirty bit.
func (s *BasicScene) MarkCameraDirty() { s.dirty |= DirtyCamera }
