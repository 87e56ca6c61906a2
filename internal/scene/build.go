package scene

import (
	"image"
	"math/rand"
)

// Loader issues asynchronous image loads. apply is called at most once, on the goroutine that owns
// the scene, after the image is decoded. A failed load never calls apply.
type Loader interface {
	Texture(name string, apply func(img image.Image))
	Cube(faces [6]string, apply func(strip image.Image))
}

// Assets names every image the scene loads.
type Assets struct {
	Panorama   string
	CubeFaces  [6]string // +X, -X, +Y, -Y, +Z, -Z
	Avatar     string
	Moon       string
	MoonNormal string
}

// Options controls Build.
type Options struct {
	Assets     Assets
	Aspect     float32
	StarCount  int
	StarSpread float32
}

// DefaultOptions returns the stock scene: 200 stars spread over 100 units.
func DefaultOptions() Options {
	return Options{
		Assets: Assets{
			Panorama:   "dikhololo_night_4k.exr",
			CubeFaces:  [6]string{"path_to_px.jpg", "path_to_nx.jpg", "path_to_py.jpg", "path_to_ny.jpg", "path_to_pz.jpg", "path_to_nz.jpg"},
			Avatar:     "rafa.png",
			Moon:       "moon.jpg",
			MoonNormal: "normal.jpg",
		},
		Aspect:     16.0 / 9.0,
		StarCount:  200,
		StarSpread: 100,
	}
}

// Initial placement of the fixed objects.
var (
	CameraStart = Vec3{X: -3, Y: 0, Z: 30}
	SunPosition = Vec3{X: 50, Y: 50, Z: -100}
	LampPos     = Vec3{X: 20, Y: 20, Z: 20}
	AvatarStart = Vec3{X: 2, Y: 0, Z: -5}
	MoonStart   = Vec3{X: -10, Y: 0, Z: 30}
)

// Build constructs the whole scene once. The panorama and environment loads are issued after their
// target objects exist, so their completions can run at any later time; every other object is
// created synchronously. Avatar and moon materials reference texture slots that fill in later.
// rng drives star placement.
func Build(opts Options, ld Loader, rng *rand.Rand) *Scene {
	s := &Scene{Graph: NewGraph()}

	s.Camera = &Camera{
		Transform: Transform{Position: CameraStart},
		Fov:       75,
		Aspect:    opts.Aspect,
		Near:      0.1,
		Far:       1000,
	}

	// Placeholders the two gated loads complete onto.
	skyGeom := SphereGeometry(500, 60, 40)
	skyGeom.Inverted = true
	s.Skybox = &Mesh{
		Name:     "skybox",
		Geometry: skyGeom,
		Material: &Material{Kind: MaterialBasic, Color: Hex(0x000000), Side: BackSide},
	}
	s.EnvMap = NewCubeTexture("environment")

	sky := s.Skybox
	ld.Texture(opts.Assets.Panorama, func(img image.Image) {
		tex := NewTexture(opts.Assets.Panorama)
		tex.Fill(img)
		sky.Material = &Material{Kind: MaterialBasic, Color: Hex(0xffffff), Side: BackSide, Map: tex}
	})
	env := s.EnvMap
	ld.Cube(opts.Assets.CubeFaces, func(strip image.Image) {
		env.Fill(strip)
	})

	s.Torus = &Mesh{
		Name:     "torus",
		Geometry: TorusGeometry(10, 3, 16, 100),
		Material: &Material{Kind: MaterialStandard, Color: Hex(0xffffff), Metalness: 1, Roughness: 0, EnvMap: s.EnvMap},
	}

	s.Sun = &Mesh{
		Name:      "sun",
		Geometry:  SphereGeometry(5, 32, 32),
		Material:  &Material{Kind: MaterialBasic, Color: Hex(0xffff00), Wireframe: true},
		Transform: Transform{Position: SunPosition},
	}
	s.SunLight = &Light{Name: "sun-light", Kind: LightPoint, Color: Hex(0xffff00), Intensity: 1, Distance: 500, Position: SunPosition}
	s.StaticLight = &Light{Name: "static-light", Kind: LightPoint, Color: Hex(0xffffff), Intensity: 0.5, Position: LampPos}
	s.CameraLight = &Light{Name: "camera-light", Kind: LightPoint, Color: Hex(0xffffff), Intensity: 0.3}
	s.Camera.Children = append(s.Camera.Children, s.CameraLight)
	s.Ambient = &Light{Name: "ambient", Kind: LightAmbient, Color: Hex(0xffffff), Intensity: 0.2}

	s.Stars = placeStars(opts.StarCount, opts.StarSpread, rng)

	avatarMap := NewTexture(opts.Assets.Avatar)
	s.Avatar = &Mesh{
		Name:      "avatar",
		Geometry:  BoxGeometry(3, 3, 3),
		Material:  &Material{Kind: MaterialBasic, Color: Hex(0xffffff), Map: avatarMap},
		Transform: Transform{Position: AvatarStart},
	}
	ld.Texture(opts.Assets.Avatar, avatarMap.Fill)

	moonMap := NewTexture(opts.Assets.Moon)
	moonNormal := NewTexture(opts.Assets.MoonNormal)
	s.Moon = &Mesh{
		Name:      "moon",
		Geometry:  SphereGeometry(3, 32, 32),
		Material:  &Material{Kind: MaterialStandard, Color: Hex(0xffffff), Roughness: 1, Map: moonMap, NormalMap: moonNormal},
		Transform: Transform{Position: MoonStart},
	}
	ld.Texture(opts.Assets.Moon, moonMap.Fill)
	ld.Texture(opts.Assets.MoonNormal, moonNormal.Fill)

	objects := []Object{s.Skybox, s.Torus, s.Sun, s.SunLight, s.StaticLight, s.Ambient}
	for _, star := range s.Stars {
		objects = append(objects, star)
	}
	objects = append(objects, s.Avatar, s.Moon)
	for _, o := range objects {
		// Every object above is freshly allocated, so Add cannot fail here.
		_ = s.Graph.Add(o)
	}
	return s
}

// placeStars samples count positions, each axis independently from (U[0,1) - 0.5) * spread.
// Stars may overlap.
func placeStars(count int, spread float32, rng *rand.Rand) []*Mesh {
	geom := SphereGeometry(0.25, 24, 24)
	stars := make([]*Mesh, 0, count)
	for i := 0; i < count; i++ {
		pos := Vec3{
			X: randSpread(rng, spread),
			Y: randSpread(rng, spread),
			Z: randSpread(rng, spread),
		}
		stars = append(stars, &Mesh{
			Name:      "star",
			Geometry:  geom,
			Material:  &Material{Kind: MaterialStandard, Color: Hex(0xffffff), Roughness: 1},
			Transform: Transform{Position: pos},
		})
	}
	return stars
}

func randSpread(rng *rand.Rand, spread float32) float32 {
	return (rng.Float32() - 0.5) * spread
}
