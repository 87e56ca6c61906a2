package assets

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// CubeStrip lays six faces out side by side (+X, -X, +Y, -Y, +Z, -Z), the horizontal line layout
// cubemap loaders accept. Faces are scaled to the size of the smallest face so the strip is
// exactly 6 squares wide.
func CubeStrip(faces [6]image.Image) (*image.RGBA, error) {
	size := 0
	for i, f := range faces {
		if f == nil {
			return nil, fmt.Errorf("assets: cube face %d missing", i)
		}
		b := f.Bounds()
		side := min(b.Dx(), b.Dy())
		if side <= 0 {
			return nil, fmt.Errorf("assets: cube face %d is empty", i)
		}
		if size == 0 || side < size {
			size = side
		}
	}
	strip := image.NewRGBA(image.Rect(0, 0, size*6, size))
	for i, f := range faces {
		dst := image.Rect(i*size, 0, (i+1)*size, size)
		b := f.Bounds()
		if b.Dx() == size && b.Dy() == size {
			draw.Draw(strip, dst, f, b.Min, draw.Src)
			continue
		}
		draw.CatmullRom.Scale(strip, dst, f, b, draw.Src, nil)
	}
	return strip, nil
}
