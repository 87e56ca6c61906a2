package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"space-scroll/internal/config"
)

// Loop is driven by Run. Start runs once after the window and GL context exist; Stop runs before the window closes.
type Loop interface {
	Start(width, height int)
	Update()
	Draw()
	Stop()
}

// Run opens the window and runs the main loop on the calling goroutine, which must be locked to its OS thread.
// Each frame it calls Update (input), then clears the screen and calls Draw between BeginDrawing and EndDrawing.
// The loop ends when the window is closed (close button or ESC).
func Run(win config.WindowConfig, loop Loop) {
	var flags uint32 = rl.FlagMsaa4xHint
	if win.Resizable {
		flags |= rl.FlagWindowResizable
	}
	if win.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)

	width, height := int32(win.Width), int32(win.Height)
	if win.Fullscreen {
		// Monitor size is only known once a window exists; raylib picks it up when width/height are 0.
		width, height = 0, 0
	}
	rl.InitWindow(width, height, win.Title)
	defer rl.CloseWindow()

	if win.TargetFPS > 0 {
		rl.SetTargetFPS(int32(win.TargetFPS))
	}

	loop.Start(rl.GetScreenWidth(), rl.GetScreenHeight())
	defer loop.Stop()

	for !rl.WindowShouldClose() {
		loop.Update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		loop.Draw()
		rl.EndDrawing()
	}
}
