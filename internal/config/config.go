package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the path to the scene config file, relative to the process working directory.
const DefaultPath = "config/scene.yaml"

// Config holds every tunable of the scene application. Persisted as YAML.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Assets AssetsConfig `yaml:"assets"`
	Stars  StarsConfig  `yaml:"stars"`
	Scroll ScrollConfig `yaml:"scroll"`
	Debug  DebugConfig  `yaml:"debug"`
	Log    string       `yaml:"log"`
}

// WindowConfig sizes the drawing surface. Width/Height are ignored in fullscreen (monitor size is used).
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	Resizable  bool   `yaml:"resizable"`
	TargetFPS  int    `yaml:"target_fps"`
}

// AssetsConfig names the images the scene loads, relative to Dir.
// CubeFaces order: +X, -X, +Y, -Y, +Z, -Z.
type AssetsConfig struct {
	Dir            string    `yaml:"dir"`
	Panorama       string    `yaml:"panorama"`
	CubeFaces      [6]string `yaml:"cube_faces"`
	Avatar         string    `yaml:"avatar"`
	Moon           string    `yaml:"moon"`
	MoonNormal     string    `yaml:"moon_normal"`
	MaxTextureSize int       `yaml:"max_texture_size"`
}

// StarsConfig controls star placement. Seed 0 uses a time-based seed.
type StarsConfig struct {
	Count  int     `yaml:"count"`
	Spread float32 `yaml:"spread"`
	Seed   int64   `yaml:"seed"`
}

// ScrollConfig shapes the virtual page the camera scrolls through (pixels).
type ScrollConfig struct {
	PageHeight float32 `yaml:"page_height"`
	WheelStep  float32 `yaml:"wheel_step"`
	KeyStep    float32 `yaml:"key_step"`
}

// DebugConfig toggles the debug overlays. All off by default.
type DebugConfig struct {
	ShowFPS      bool `yaml:"show_fps"`
	ShowMemAlloc bool `yaml:"show_memalloc"`
	ShowScroll   bool `yaml:"show_scroll"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:     "space scroll",
			Width:     1280,
			Height:    720,
			Resizable: true,
			TargetFPS: 60,
		},
		Assets: AssetsConfig{
			Dir:      "assets",
			Panorama: "dikhololo_night_4k.exr",
			CubeFaces: [6]string{
				"path_to_px.jpg", "path_to_nx.jpg",
				"path_to_py.jpg", "path_to_ny.jpg",
				"path_to_pz.jpg", "path_to_nz.jpg",
			},
			Avatar:         "rafa.png",
			Moon:           "moon.jpg",
			MoonNormal:     "normal.jpg",
			MaxTextureSize: 4096,
		},
		Stars: StarsConfig{
			Count:  200,
			Spread: 100,
		},
		Scroll: ScrollConfig{
			PageHeight: 6000,
			WheelStep:  100,
			KeyStep:    40,
		},
		Log: "logs/scene.txt",
	}
}

// Load reads the config at path. Fields missing from the file keep their Default() values.
// If the file is missing, returns Default() and does not create a file.
// An invalid file is an error; the returned config is still Default().
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Overrides are values set on the command line. Zero fields leave the config untouched.
type Overrides struct {
	Window WindowConfig
	Assets AssetsConfig
	Stars  StarsConfig
}

// Apply merges the non-zero fields of o into cfg.
func Apply(cfg *Config, o Overrides) error {
	opt := copier.Option{IgnoreEmpty: true}
	if err := copier.CopyWithOption(&cfg.Window, &o.Window, opt); err != nil {
		return fmt.Errorf("config: window overrides: %w", err)
	}
	if err := copier.CopyWithOption(&cfg.Assets, &o.Assets, opt); err != nil {
		return fmt.Errorf("config: assets overrides: %w", err)
	}
	if err := copier.CopyWithOption(&cfg.Stars, &o.Stars, opt); err != nil {
		return fmt.Errorf("config: stars overrides: %w", err)
	}
	return nil
}
