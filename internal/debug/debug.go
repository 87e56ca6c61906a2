package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"space-scroll/internal/app"
	"space-scroll/internal/config"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh the text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug draws the runtime overlays (FPS, heap, scroll state). All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowScroll   bool

	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns a Debug system with the overlays the config enables.
func New(cfg config.DebugConfig) *Debug {
	return &Debug{ShowFPS: cfg.ShowFPS, ShowMemAlloc: cfg.ShowMemAlloc, ShowScroll: cfg.ShowScroll}
}

// Draw renders the enabled overlays at the top-right in green. Call after the scene in the draw loop.
// FPS and memory text are only recomputed every updateInterval frames; scroll text changes on input so it is built each frame.
func (d *Debug) Draw(st app.Stats) {
	d.frameCount++
	update := d.frameCount%updateInterval == 0
	if (d.ShowFPS && d.lastFpsText == "") || (d.ShowMemAlloc && d.lastMemText == "") {
		update = true
	}

	y := int32(padding)
	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(d.lastFpsText, y)
		y += lineHeight
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", float64(d.lastMemStats.Alloc)/(1024*1024))
		}
		drawRight(d.lastMemText, y)
		y += lineHeight
	}
	if d.ShowScroll {
		drawRight(fmt.Sprintf("Scroll: %.0f", st.ScrollTop), y)
		y += lineHeight
		if st.PendingLoads > 0 {
			drawRight(fmt.Sprintf("Loading: %d", st.PendingLoads), y)
		}
	}
}

func drawRight(text string, y int32) {
	if text == "" {
		return
	}
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, int32(rl.GetScreenWidth())-w-padding, y, fontSize, rl.Green)
}
