package scene

import (
	"image"
	"image/color"
)

// Vec3 is a float32 3-vector used for positions and Euler rotations (radians).
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Transform holds the two mutable fields of every scene object.
// Rotation is an XYZ Euler rotation in radians.
type Transform struct {
	Position Vec3
	Rotation Vec3
}

// Hex returns an opaque color from a 0xRRGGBB value.
func Hex(rgb uint32) color.RGBA {
	return color.RGBA{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb), A: 255}
}

// GeometryKind selects the primitive mesh a renderer generates.
type GeometryKind int

const (
	GeometrySphere GeometryKind = iota
	GeometryTorus
	GeometryBox
)

// Geometry describes a primitive mesh. It is comparable so renderers can use it as a cache key;
// the 200 stars share one Geometry value and therefore one GPU mesh.
type Geometry struct {
	Kind GeometryKind
	// Sphere: Radius, WidthSegments, HeightSegments.
	// Torus: Radius, Tube, RadialSegments, TubularSegments.
	// Box: Width, Height, Depth.
	Radius          float32
	Tube            float32
	Width           float32
	Height          float32
	Depth           float32
	WidthSegments   int
	HeightSegments  int
	RadialSegments  int
	TubularSegments int
	// Inverted mirrors the mesh on X so its faces point inward (skybox).
	Inverted bool
}

// SphereGeometry returns a UV sphere.
func SphereGeometry(radius float32, widthSegments, heightSegments int) Geometry {
	return Geometry{Kind: GeometrySphere, Radius: radius, WidthSegments: widthSegments, HeightSegments: heightSegments}
}

// TorusGeometry returns a torus with ring radius and tube radius.
func TorusGeometry(radius, tube float32, radialSegments, tubularSegments int) Geometry {
	return Geometry{Kind: GeometryTorus, Radius: radius, Tube: tube, RadialSegments: radialSegments, TubularSegments: tubularSegments}
}

// BoxGeometry returns an axis-aligned box centered on the origin.
func BoxGeometry(width, height, depth float32) Geometry {
	return Geometry{Kind: GeometryBox, Width: width, Height: height, Depth: depth}
}

// Texture is a slot that materials reference from construction on. The image arrives later
// (Fill) from an asynchronous load; until then the slot is empty and renderers draw without it.
// Cube slots hold six faces laid out as a horizontal strip (+X, -X, +Y, -Y, +Z, -Z).
// Fill and Image are only called from the goroutine that owns the scene.
type Texture struct {
	Name string
	Cube bool

	img     image.Image
	version int
}

// NewTexture returns an empty 2D texture slot.
func NewTexture(name string) *Texture {
	return &Texture{Name: name}
}

// NewCubeTexture returns an empty cubemap slot.
func NewCubeTexture(name string) *Texture {
	return &Texture{Name: name, Cube: true}
}

// Fill stores img in the slot and bumps its version so renderers re-upload it.
func (t *Texture) Fill(img image.Image) {
	t.img = img
	t.version++
}

// Image returns the current image and its version. ok is false while the slot is empty.
func (t *Texture) Image() (img image.Image, version int, ok bool) {
	return t.img, t.version, t.img != nil
}

// Ready reports whether the slot has been filled.
func (t *Texture) Ready() bool {
	_, _, ok := t.Image()
	return ok
}

// MaterialKind selects the shading model.
type MaterialKind int

const (
	// MaterialBasic is unlit: color times optional map.
	MaterialBasic MaterialKind = iota
	// MaterialStandard is lit by the scene lights, with optional map, normal map and env map.
	MaterialStandard
)

// Side selects which faces of a mesh are drawn.
type Side int

const (
	FrontSide Side = iota
	BackSide
)

// Material is referenced by meshes. Texture slots may be empty.
type Material struct {
	Kind      MaterialKind
	Color     color.RGBA
	Metalness float32
	Roughness float32
	Wireframe bool
	Side      Side
	Map       *Texture
	NormalMap *Texture
	EnvMap    *Texture
}

// Mesh is a renderable object: geometry, material and a transform.
type Mesh struct {
	Name     string
	Geometry Geometry
	Material *Material
	Transform
}

func (*Mesh) isObject() {}

// LightKind selects the light model.
type LightKind int

const (
	LightPoint LightKind = iota
	LightAmbient
)

// Light is a point or ambient light. Distance 0 means no falloff limit.
type Light struct {
	Name      string
	Kind      LightKind
	Color     color.RGBA
	Intensity float32
	Distance  float32
	Position  Vec3
}

func (*Light) isObject() {}

// Camera is a perspective camera. Children move rigidly with it and are owned by it alone.
type Camera struct {
	Transform
	Fov      float32 // vertical, degrees
	Aspect   float32
	Near     float32
	Far      float32
	Children []*Light
}

// Scene owns every entity of the space scene. The graph holds all objects that are drawn;
// the named fields give the updater direct access to the ones it animates.
type Scene struct {
	Graph  *Graph
	Camera *Camera

	Skybox *Mesh
	Torus  *Mesh
	Sun    *Mesh
	Avatar *Mesh
	Moon   *Mesh
	Stars  []*Mesh

	SunLight    *Light
	StaticLight *Light
	CameraLight *Light
	Ambient     *Light

	// EnvMap is the torus reflection slot, filled by the cube load.
	EnvMap *Texture
}

// Resize updates the camera aspect ratio after the drawing surface changes size.
// Zero or negative sizes are ignored.
func (s *Scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.Camera.Aspect = float32(width) / float32(height)
}
