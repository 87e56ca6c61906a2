package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"space-scroll/internal/scroll"
)

// Scroller receives the page input polled each frame.
type Scroller interface {
	Wheel(notches float32)
	Key(k scroll.Key)
	Resize(width, height int)
}

var pagingKeys = []struct {
	key  int32
	page scroll.Key
}{
	{rl.KeyUp, scroll.KeyUp},
	{rl.KeyDown, scroll.KeyDown},
	{rl.KeyPageUp, scroll.KeyPageUp},
	{rl.KeyPageDown, scroll.KeyPageDown},
	{rl.KeySpace, scroll.KeyPageDown},
	{rl.KeyHome, scroll.KeyHome},
	{rl.KeyEnd, scroll.KeyEnd},
}

// Poll forwards window resizes, mouse wheel moves and paging keys (with key repeat) to s.
// Scrolling is the only input the scene reacts to.
func Poll(s Scroller) {
	if rl.IsWindowResized() {
		s.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	}
	if move := rl.GetMouseWheelMove(); move != 0 {
		s.Wheel(move)
	}
	for _, k := range pagingKeys {
		if rl.IsKeyPressed(k.key) || rl.IsKeyPressedRepeat(k.key) {
			s.Key(k.page)
		}
	}
}
