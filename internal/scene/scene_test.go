package scene

import (
	"image"
	"image/color"
	"math"
	"math/rand"
	"testing"
)

// fakeLoader records requests; tests decide which ones complete.
type fakeLoader struct {
	textures map[string]func(image.Image)
	cubes    []func(image.Image)
	order    []string
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{textures: make(map[string]func(image.Image))}
}

func (f *fakeLoader) Texture(name string, apply func(image.Image)) {
	f.textures[name] = apply
	f.order = append(f.order, name)
}

func (f *fakeLoader) Cube(faces [6]string, apply func(image.Image)) {
	f.cubes = append(f.cubes, apply)
	f.order = append(f.order, "cube")
}

func solid(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return img
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) <= 1e-5*math.Max(1, math.Abs(float64(b)))
}

func buildTestScene(t *testing.T) (*Scene, *fakeLoader) {
	t.Helper()
	ld := newFakeLoader()
	s := Build(DefaultOptions(), ld, rand.New(rand.NewSource(1)))
	return s, ld
}

func TestBuildCreatesEveryObjectOnce(t *testing.T) {
	s, _ := buildTestScene(t)
	// skybox, torus, sun, sun light, static light, ambient, 200 stars, avatar, moon
	if got, want := s.Graph.Len(), 6+200+2; got != want {
		t.Fatalf("Graph.Len() = %d, want %d", got, want)
	}
	for _, o := range []Object{s.Skybox, s.Torus, s.Sun, s.SunLight, s.StaticLight, s.Ambient, s.Avatar, s.Moon} {
		if !s.Graph.Contains(o) {
			t.Errorf("graph is missing %#v", o)
		}
		if err := s.Graph.Add(o); err != ErrAlreadyInGraph {
			t.Errorf("second Add = %v, want ErrAlreadyInGraph", err)
		}
	}
	if s.Graph.Contains(s.CameraLight) {
		t.Error("camera light must be owned by the camera, not the graph")
	}
	if len(s.Camera.Children) != 1 || s.Camera.Children[0] != s.CameraLight {
		t.Errorf("camera children = %v, want [camera light]", s.Camera.Children)
	}
	if got := len(s.Graph.Lights()); got != 3 {
		t.Errorf("graph lights = %d, want 3", got)
	}
}

func TestBuildInitialState(t *testing.T) {
	s, _ := buildTestScene(t)
	if s.Camera.Position != CameraStart || s.Camera.Rotation != (Vec3{}) {
		t.Errorf("camera transform = %+v", s.Camera.Transform)
	}
	if s.Camera.Fov != 75 || s.Camera.Near != 0.1 || s.Camera.Far != 1000 {
		t.Errorf("camera projection = %+v", s.Camera)
	}
	if s.Sun.Position != SunPosition || s.SunLight.Position != SunPosition {
		t.Errorf("sun and sun light must share %v: %v %v", SunPosition, s.Sun.Position, s.SunLight.Position)
	}
	if s.Avatar.Position != AvatarStart {
		t.Errorf("avatar position = %v", s.Avatar.Position)
	}
	if s.Moon.Position != MoonStart {
		t.Errorf("moon position = %v", s.Moon.Position)
	}
	if !s.Skybox.Geometry.Inverted || s.Skybox.Material.Side != BackSide {
		t.Error("skybox must face inward")
	}
	if s.Skybox.Material.Map != nil {
		t.Error("skybox starts without a map")
	}
	if s.Torus.Material.EnvMap != s.EnvMap || s.EnvMap.Ready() {
		t.Error("torus must reference the empty environment slot")
	}
	if !s.Sun.Material.Wireframe {
		t.Error("sun is drawn as wireframe")
	}
}

func TestBuildIssuesLoads(t *testing.T) {
	_, ld := buildTestScene(t)
	opts := DefaultOptions()
	want := []string{opts.Assets.Panorama, "cube", opts.Assets.Avatar, opts.Assets.Moon, opts.Assets.MoonNormal}
	if len(ld.order) != len(want) {
		t.Fatalf("loads = %v, want %v", ld.order, want)
	}
	for i := range want {
		if ld.order[i] != want[i] {
			t.Errorf("load %d = %q, want %q", i, ld.order[i], want[i])
		}
	}
}

func TestLoadCompletionsUpdateMaterials(t *testing.T) {
	s, ld := buildTestScene(t)
	opts := DefaultOptions()
	placeholder := s.Skybox.Material
	avatarMat := s.Avatar.Material

	ld.textures[opts.Assets.Avatar](solid(2, 2))
	if s.Avatar.Material != avatarMat {
		t.Error("avatar material identity must not change")
	}
	if !s.Avatar.Material.Map.Ready() {
		t.Error("avatar map slot not filled")
	}

	ld.textures[opts.Assets.Panorama](solid(4, 2))
	if s.Skybox.Material == placeholder {
		t.Fatal("skybox material not swapped")
	}
	if s.Skybox.Material.Map == nil || !s.Skybox.Material.Map.Ready() || s.Skybox.Material.Side != BackSide {
		t.Errorf("skybox material = %+v", s.Skybox.Material)
	}

	ld.cubes[0](solid(12, 2))
	if !s.Torus.Material.EnvMap.Ready() {
		t.Error("environment slot not filled")
	}
	ld.textures[opts.Assets.Moon](solid(2, 2))
	ld.textures[opts.Assets.MoonNormal](solid(2, 2))
	if !s.Moon.Material.Map.Ready() || !s.Moon.Material.NormalMap.Ready() {
		t.Error("moon slots not filled")
	}
}

func TestPanoramaFailureKeepsPlaceholder(t *testing.T) {
	s, ld := buildTestScene(t)
	placeholder := s.Skybox.Material
	// The panorama completion never runs; everything else resolves.
	ld.cubes[0](solid(6, 1))
	for i := 0; i < 100; i++ {
		s.Tick()
	}
	if !s.Graph.Contains(s.Skybox) {
		t.Fatal("skybox removed from graph")
	}
	if s.Skybox.Material != placeholder || s.Skybox.Material.Map != nil {
		t.Errorf("skybox material = %+v, want placeholder", s.Skybox.Material)
	}
}

func TestStarPlacement(t *testing.T) {
	s, _ := buildTestScene(t)
	if len(s.Stars) != 200 {
		t.Fatalf("stars = %d, want 200", len(s.Stars))
	}
	var sum Vec3
	for _, star := range s.Stars {
		p := star.Position
		for _, c := range []float32{p.X, p.Y, p.Z} {
			if c < -50 || c > 50 {
				t.Fatalf("star coordinate %v outside [-50, 50]", c)
			}
		}
		sum = sum.Add(p)
		if !s.Graph.Contains(star) {
			t.Fatal("star not in graph")
		}
	}
	// Uniform on [-50, 50): sd of the mean over 200 samples is ~2.04.
	n := float32(len(s.Stars))
	for _, m := range []float32{sum.X / n, sum.Y / n, sum.Z / n} {
		if m < -10 || m > 10 {
			t.Errorf("sample mean %v too far from 0", m)
		}
	}
}

func TestStarsShareGeometry(t *testing.T) {
	s, _ := buildTestScene(t)
	for _, star := range s.Stars[1:] {
		if star.Geometry != s.Stars[0].Geometry {
			t.Fatal("stars must share one geometry value")
		}
		if star.Material == s.Stars[0].Material {
			t.Fatal("each star owns its material")
		}
	}
}

func TestStarCountOption(t *testing.T) {
	opts := DefaultOptions()
	opts.StarCount = 0
	s := Build(opts, newFakeLoader(), rand.New(rand.NewSource(2)))
	if len(s.Stars) != 0 || s.Graph.Len() != 8 {
		t.Errorf("stars = %d, graph = %d", len(s.Stars), s.Graph.Len())
	}
}

func TestTickAccumulates(t *testing.T) {
	for _, n := range []int{0, 1, 10, 1000} {
		s, _ := buildTestScene(t)
		torus0, moon0, avatar0 := s.Torus.Rotation, s.Moon.Rotation, s.Avatar.Rotation
		cam0 := s.Camera.Transform
		for i := 0; i < n; i++ {
			s.Tick()
		}
		f := float32(n)
		checks := []struct {
			name      string
			got, want Vec3
		}{
			{"torus", s.Torus.Rotation, Vec3{torus0.X + f*0.01, torus0.Y + f*0.005, torus0.Z + f*0.01}},
			{"moon", s.Moon.Rotation, Vec3{moon0.X + f*0.05, moon0.Y + f*0.075, moon0.Z + f*0.05}},
			{"avatar", s.Avatar.Rotation, Vec3{avatar0.X + f*0.01, avatar0.Y + f*0.01, avatar0.Z + f*0.01}},
		}
		for _, c := range checks {
			if !approxVec(c.got, c.want, 1e-3) {
				t.Errorf("n=%d %s rotation = %v, want %v", n, c.name, c.got, c.want)
			}
		}
		if s.Camera.Transform != cam0 {
			t.Errorf("n=%d Tick moved the camera", n)
		}
		if s.Moon.Position != MoonStart || s.Avatar.Position != AvatarStart {
			t.Errorf("n=%d Tick moved a fixed position", n)
		}
	}
}

func approxVec(a, b Vec3, tol float64) bool {
	d := func(x, y float32) bool { return math.Abs(float64(x-y)) <= tol }
	return d(a.X, b.X) && d(a.Y, b.Y) && d(a.Z, b.Z)
}

func TestScrollOverwrites(t *testing.T) {
	offsets := []float32{0, -1, -250.5, -1000, -123456, 500}
	for _, off := range offsets {
		s, _ := buildTestScene(t)
		// Scramble prior state; Scroll must not depend on it.
		s.Camera.Position = Vec3{X: 99, Y: 7, Z: -99}
		s.Camera.Rotation = Vec3{X: 0.3, Y: 2, Z: 0.1}
		s.Tick()

		s.Scroll(off)
		first := s.Camera.Transform
		firstLight := s.CameraLight.Position
		s.Scroll(off)

		if s.Camera.Transform != first || s.CameraLight.Position != firstLight {
			t.Errorf("t=%v: second Scroll changed state", off)
		}
		if !approx(s.Camera.Position.Z, off*-0.01) ||
			!approx(s.Camera.Position.X, off*-0.0002) ||
			!approx(s.Camera.Rotation.Y, off*-0.0002) {
			t.Errorf("t=%v: camera = %+v", off, s.Camera.Transform)
		}
		if s.Camera.Position.Y != 7 || s.Camera.Rotation.X != 0.3 || s.Camera.Rotation.Z != 0.1 {
			t.Errorf("t=%v: Scroll touched untracked components: %+v", off, s.Camera.Transform)
		}
		want := Vec3{s.Camera.Position.X, s.Camera.Position.Y, s.Camera.Position.Z + 10}
		if s.CameraLight.Position != want {
			t.Errorf("t=%v: camera light = %v, want %v", off, s.CameraLight.Position, want)
		}
	}
}

func TestScrollScenario(t *testing.T) {
	s, _ := buildTestScene(t)
	s.Scroll(0)
	if s.Camera.Position.X != 0 || s.Camera.Position.Z != 0 || s.Camera.Rotation.Y != 0 {
		t.Errorf("startup camera = %+v", s.Camera.Transform)
	}
	if s.CameraLight.Position != (Vec3{0, 0, 10}) {
		t.Errorf("startup camera light = %v", s.CameraLight.Position)
	}
	s.Scroll(-1000)
	if !approx(s.Camera.Position.Z, 10) {
		t.Errorf("z = %v, want 10", s.Camera.Position.Z)
	}
	if !approx(s.Camera.Position.X, 0.2) {
		t.Errorf("x = %v, want 0.2", s.Camera.Position.X)
	}
	if !approx(s.CameraLight.Position.Z, 20) {
		t.Errorf("camera light z = %v, want 20", s.CameraLight.Position.Z)
	}
}

func TestTickAndScrollAreIndependent(t *testing.T) {
	a, _ := buildTestScene(t)
	b, _ := buildTestScene(t)
	a.Scroll(-500)
	for i := 0; i < 30; i++ {
		a.Tick()
		b.Tick()
	}
	b.Scroll(-500)
	if a.Torus.Rotation != b.Torus.Rotation || a.Camera.Transform != b.Camera.Transform {
		t.Error("tick and scroll order changed the result")
	}
}

func TestCameraBasis(t *testing.T) {
	c := &Camera{}
	if f := c.Forward(); !approxVec(f, Vec3{0, 0, -1}, 1e-6) {
		t.Errorf("Forward() = %v", f)
	}
	if u := c.Up(); !approxVec(u, Vec3{0, 1, 0}, 1e-6) {
		t.Errorf("Up() = %v", u)
	}
	c.Rotation.Y = math.Pi / 2
	if f := c.Forward(); !approxVec(f, Vec3{-1, 0, 0}, 1e-6) {
		t.Errorf("yawed Forward() = %v", f)
	}
	c.Rotation = Vec3{X: 0.4, Y: -1.1, Z: 0.7}
	if l := c.Forward().Length(); !approx(l, 1) {
		t.Errorf("|Forward()| = %v", l)
	}
	if l := c.Up().Length(); !approx(l, 1) {
		t.Errorf("|Up()| = %v", l)
	}
	c.Position = Vec3{1, 2, 3}
	if got := c.Target(); !approxVec(got, c.Position.Add(c.Forward()), 1e-6) {
		t.Errorf("Target() = %v", got)
	}
}

func TestResize(t *testing.T) {
	s, _ := buildTestScene(t)
	s.Resize(1000, 500)
	if s.Camera.Aspect != 2 {
		t.Errorf("aspect = %v, want 2", s.Camera.Aspect)
	}
	s.Resize(0, 500)
	if s.Camera.Aspect != 2 {
		t.Error("zero width must be ignored")
	}
}

func TestHex(t *testing.T) {
	if got := Hex(0xffff00); got != (color.RGBA{255, 255, 0, 255}) {
		t.Errorf("Hex(0xffff00) = %v", got)
	}
}

func TestTextureSlot(t *testing.T) {
	tex := NewTexture("x")
	if tex.Ready() {
		t.Fatal("new slot is empty")
	}
	tex.Fill(solid(1, 1))
	tex.Fill(solid(2, 2))
	img, v, ok := tex.Image()
	if !ok || v != 2 || img.Bounds().Dx() != 2 {
		t.Errorf("Image() = %v, %d, %v", img.Bounds(), v, ok)
	}
}
