package app

import (
	"context"
	"math/rand"
	"time"

	"space-scroll/internal/assets"
	"space-scroll/internal/config"
	"space-scroll/internal/logger"
	"space-scroll/internal/scene"
	"space-scroll/internal/scroll"
)

// Renderer draws the current scene state. It never writes back to the scene.
type Renderer interface {
	Render(s *scene.Scene)
}

// App owns the scene and everything that mutates it. All methods run on one goroutine
// (the window loop); loader goroutines only reach the scene through the queue.
type App struct {
	Scene *scene.Scene

	cfg      config.Config
	log      *logger.Logger
	queue    *assets.Queue
	loader   *assets.Loader
	page     *scroll.Page
	renderer Renderer
	frames   uint64
}

// Options wires an App. Decode defaults to assets.Decode.
type Options struct {
	Config   config.Config
	Log      *logger.Logger
	Renderer Renderer
	Decode   assets.DecodeFunc
	// Width and Height are the drawing surface size at startup.
	Width, Height int
}

// New builds the scene, issues its loads and places the camera for scroll offset 0.
// ctx bounds the background loads.
func New(ctx context.Context, opts Options) *App {
	cfg := opts.Config
	queue := assets.NewQueue()
	loader := assets.NewLoader(ctx, assets.Options{
		Dir:            cfg.Assets.Dir,
		MaxTextureSize: cfg.Assets.MaxTextureSize,
		Decode:         opts.Decode,
	}, queue, opts.Log)

	seed := cfg.Stars.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts.Log.Logf("building scene (seed %d, %d stars)", seed, cfg.Stars.Count)

	sceneOpts := SceneOptions(cfg)
	if opts.Width > 0 && opts.Height > 0 {
		sceneOpts.Aspect = float32(opts.Width) / float32(opts.Height)
	}
	a := &App{
		Scene:    scene.Build(sceneOpts, loader, rand.New(rand.NewSource(seed))),
		cfg:      cfg,
		log:      opts.Log,
		queue:    queue,
		loader:   loader,
		page:     scroll.NewPage(cfg.Scroll.PageHeight, float32(opts.Height), cfg.Scroll.WheelStep, cfg.Scroll.KeyStep),
		renderer: opts.Renderer,
	}
	a.Scene.Scroll(a.page.Top())
	return a
}

// SceneOptions maps the config onto scene build options.
func SceneOptions(cfg config.Config) scene.Options {
	opts := scene.DefaultOptions()
	opts.Assets = scene.Assets{
		Panorama:   cfg.Assets.Panorama,
		CubeFaces:  cfg.Assets.CubeFaces,
		Avatar:     cfg.Assets.Avatar,
		Moon:       cfg.Assets.Moon,
		MoonNormal: cfg.Assets.MoonNormal,
	}
	opts.StarCount = cfg.Stars.Count
	opts.StarSpread = cfg.Stars.Spread
	return opts
}

// Frame is the per-frame routine: apply finished loads, advance the animation, draw.
func (a *App) Frame() {
	a.queue.Drain()
	a.Scene.Tick()
	a.frames++
	if a.renderer != nil {
		a.renderer.Render(a.Scene)
	}
}

// Wheel applies a mouse wheel move to the page and scrolls the scene if the offset changed.
func (a *App) Wheel(notches float32) {
	if a.page.Wheel(notches) {
		a.Scene.Scroll(a.page.Top())
	}
}

// Key applies a paging key to the page and scrolls the scene if the offset changed.
func (a *App) Key(k scroll.Key) {
	if a.page.Key(k) {
		a.Scene.Scroll(a.page.Top())
	}
}

// Resize updates the camera aspect and the page viewport after the window changes size.
func (a *App) Resize(width, height int) {
	a.Scene.Resize(width, height)
	if height > 0 && a.page.SetViewport(float32(height)) {
		a.Scene.Scroll(a.page.Top())
	}
}

// Stats is a snapshot for the debug overlay.
type Stats struct {
	Frames       uint64
	ScrollTop    float32
	PendingLoads int
}

// Stats returns the current counters.
func (a *App) Stats() Stats {
	return Stats{Frames: a.frames, ScrollTop: a.page.Top(), PendingLoads: a.loader.Pending()}
}

// WaitLoads blocks until every load has finished decoding, then applies the results.
// The window loop never calls it; it exists for tools and tests.
func (a *App) WaitLoads() {
	a.loader.Wait()
	a.queue.Drain()
}
