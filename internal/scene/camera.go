package scene

import "github.com/chewxy/math32"

// Forward returns the unit view direction of the camera. A camera with zero rotation looks down -Z;
// the rotation is applied in XYZ Euler order (R = Rx * Ry * Rz).
func (c *Camera) Forward() Vec3 {
	sx, cx := math32.Sincos(c.Rotation.X)
	sy, cy := math32.Sincos(c.Rotation.Y)
	return Vec3{X: -sy, Y: sx * cy, Z: -cx * cy}
}

// Up returns the unit up vector of the camera under the same rotation as Forward.
func (c *Camera) Up() Vec3 {
	sx, cx := math32.Sincos(c.Rotation.X)
	sy, cy := math32.Sincos(c.Rotation.Y)
	sz, cz := math32.Sincos(c.Rotation.Z)
	// Rz * (0,1,0) = (-sz, cz, 0), then Ry, then Rx.
	u := cy * -sz
	v := cz
	w := -sy * -sz
	return Vec3{X: u, Y: cx*v - sx*w, Z: sx*v + cx*w}
}

// Target returns the point one unit in front of the camera.
func (c *Camera) Target() Vec3 {
	return c.Position.Add(c.Forward())
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}
