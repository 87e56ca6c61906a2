package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"space-scroll/internal/app"
	"space-scroll/internal/commands"
	"space-scroll/internal/config"
	"space-scroll/internal/debug"
	"space-scroll/internal/graphics"
	"space-scroll/internal/logger"
	"space-scroll/internal/render"
)

func registerCommands(reg *commands.Registry) {
	registerRun(reg)
	registerConfig(reg)
	registerAssets(reg)
}

// loadConfig reads the config file and applies command-line overrides on top.
// An unreadable file is reported and the defaults are used.
func loadConfig(path string, o config.Overrides) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scene: %v (using defaults)\n", err)
	}
	if err := config.Apply(&cfg, o); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func registerRun(reg *commands.Registry) {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	path := fs.String("config", config.DefaultPath, "config file (YAML)")
	seed := fs.Int64("seed", 0, "star field seed (0 = random)")
	dir := fs.String("assets", "", "asset directory")
	fullscreen := fs.Bool("fullscreen", false, "open fullscreen")
	reg.Register("run", "open the scene window (default)", fs, func() error {
		cfg, err := loadConfig(*path, config.Overrides{
			Window: config.WindowConfig{Fullscreen: *fullscreen},
			Assets: config.AssetsConfig{Dir: *dir},
			Stars:  config.StarsConfig{Seed: *seed},
		})
		if err != nil {
			return err
		}
		log := logger.New(cfg.Log)
		log.Logf("starting %dx%d fullscreen=%v assets=%s", cfg.Window.Width, cfg.Window.Height, cfg.Window.Fullscreen, cfg.Assets.Dir)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		graphics.Run(cfg.Window, &sceneLoop{ctx: ctx, cancel: cancel, cfg: cfg, log: log})
		log.Log("window closed")
		return nil
	})
}

// sceneLoop drives the App from the window loop.
type sceneLoop struct {
	ctx    context.Context
	cancel context.CancelFunc
	cfg    config.Config
	log    *logger.Logger

	app      *app.App
	renderer *render.Renderer
	dbg      *debug.Debug
}

func (l *sceneLoop) Start(width, height int) {
	l.renderer = render.New(l.log)
	l.dbg = debug.New(l.cfg.Debug)
	l.app = app.New(l.ctx, app.Options{
		Config:   l.cfg,
		Log:      l.log,
		Renderer: l.renderer,
		Width:    width,
		Height:   height,
	})
}

func (l *sceneLoop) Update() {
	graphics.Poll(l.app)
}

func (l *sceneLoop) Draw() {
	l.app.Frame()
	l.dbg.Draw(l.app.Stats())
}

func (l *sceneLoop) Stop() {
	// Loads still decoding are abandoned; their results are never applied.
	l.cancel()
	l.renderer.Unload()
}

func registerConfig(reg *commands.Registry) {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	out := fs.String("out", config.DefaultPath, "where to write the default config")
	reg.Register("config", "write the default config file", fs, func() error {
		if err := config.Save(*out, config.Default()); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "wrote %s\n", *out)
		return nil
	})
}

func registerAssets(reg *commands.Registry) {
	fs := flag.NewFlagSet("assets", flag.ContinueOnError)
	path := fs.String("config", config.DefaultPath, "config file (YAML)")
	dir := fs.String("assets", "", "asset directory")
	reg.Register("assets", "decode every configured asset and report failures", fs, func() error {
		cfg, err := loadConfig(*path, config.Overrides{Assets: config.AssetsConfig{Dir: *dir}})
		if err != nil {
			return err
		}
		return app.WriteReports(os.Stdout, app.CheckAssets(cfg, nil))
	})
}
