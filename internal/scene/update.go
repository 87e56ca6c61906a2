package scene

// Per-frame rotation deltas in radians. Tick adds them to the current rotation.
var (
	TorusSpin  = Vec3{X: 0.01, Y: 0.005, Z: 0.01}
	MoonSpin   = Vec3{X: 0.05, Y: 0.075, Z: 0.05}
	AvatarSpin = Vec3{X: 0.01, Y: 0.01, Z: 0.01}
)

// Scroll multipliers applied to the document top offset.
const (
	scrollCameraZ    = -0.01
	scrollCameraX    = -0.0002
	scrollCameraYaw  = -0.0002
	cameraLightTrail = 10
)

// Tick runs once per rendered frame. It only accumulates rotations, so total rotation is
// proportional to the number of frames; it never touches the camera or any material.
func (s *Scene) Tick() {
	s.Torus.Rotation = s.Torus.Rotation.Add(TorusSpin)
	s.Moon.Rotation = s.Moon.Rotation.Add(MoonSpin)
	s.Avatar.Rotation = s.Avatar.Rotation.Add(AvatarSpin)
}

// Scroll places the camera from the document top offset t (<= 0 when scrolled down).
// Every value is overwritten from t alone, so calling Scroll twice with the same t equals calling it once.
// Offsets are used as-is, without clamping.
func (s *Scene) Scroll(t float32) {
	cam := s.Camera
	cam.Position.Z = t * scrollCameraZ
	cam.Position.X = t * scrollCameraX
	cam.Rotation.Y = t * scrollCameraYaw
	s.CameraLight.Position = Vec3{
		X: cam.Position.X,
		Y: cam.Position.Y,
		Z: cam.Position.Z + cameraLightTrail,
	}
}
