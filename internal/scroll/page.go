package scroll

// Page is a virtual document taller than the window. Top is the document's top edge relative to
// the viewport: 0 at the start, negative once scrolled down, never below -(Height - Viewport).
// Moves that leave Top unchanged report no change, so listeners only fire on real scrolls.
type Page struct {
	height    float32
	viewport  float32
	wheelStep float32
	keyStep   float32
	top       float32
}

// Key is a paging key understood by Page.Key.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
)

// NewPage returns a page of the given height shown through a viewport. wheelStep is the distance of one
// wheel notch; keyStep the distance of one arrow key press.
func NewPage(height, viewport, wheelStep, keyStep float32) *Page {
	return &Page{height: height, viewport: viewport, wheelStep: wheelStep, keyStep: keyStep}
}

// Top returns the current document top offset (<= 0).
func (p *Page) Top() float32 {
	return p.top
}

// minTop is the offset when scrolled to the bottom.
func (p *Page) minTop() float32 {
	if p.height <= p.viewport {
		return 0
	}
	return -(p.height - p.viewport)
}

// ScrollTo moves the top edge to top, clamped to the page. It reports whether the offset changed.
func (p *Page) ScrollTo(top float32) bool {
	top = min(max(top, p.minTop()), 0)
	if top == p.top {
		return false
	}
	p.top = top
	return true
}

// ScrollBy moves the top edge by delta pixels (negative scrolls down).
func (p *Page) ScrollBy(delta float32) bool {
	return p.ScrollTo(p.top + delta)
}

// Wheel applies a mouse wheel move. Positive notches scroll up, as reported by raylib.
func (p *Page) Wheel(notches float32) bool {
	if notches == 0 {
		return false
	}
	return p.ScrollBy(notches * p.wheelStep)
}

// Key applies a paging key.
func (p *Page) Key(k Key) bool {
	switch k {
	case KeyUp:
		return p.ScrollBy(p.keyStep)
	case KeyDown:
		return p.ScrollBy(-p.keyStep)
	case KeyPageUp:
		return p.ScrollBy(p.viewport)
	case KeyPageDown:
		return p.ScrollBy(-p.viewport)
	case KeyHome:
		return p.ScrollTo(0)
	case KeyEnd:
		return p.ScrollTo(p.minTop())
	}
	return false
}

// SetViewport updates the visible height after a window resize and re-clamps the offset.
func (p *Page) SetViewport(viewport float32) bool {
	p.viewport = viewport
	return p.ScrollTo(p.top)
}
