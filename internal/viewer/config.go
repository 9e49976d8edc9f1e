package viewer

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config controls the viewer window and its optional subsystems.
type Config struct {
	Title     string `toml:"title"`
	Width     int32  `toml:"width"`
	Height    int32  `toml:"height"`
	TargetFPS int32  `toml:"target_fps"`

	// Scene is the scene file to open. Its extension picks JSON or YAML.
	Scene string `toml:"scene"`

	HotReload      bool   `toml:"hot_reload"`
	GPUBounds      bool   `toml:"gpu_bounds"`
	BoundsCapacity int    `toml:"bounds_capacity"`
	PanelWidth     int32  `toml:"panel_width"`
	ShowBounds     bool   `toml:"show_bounds"`
	LogLevel       string `toml:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		Title:          "Scene Viewer",
		Width:          1280,
		Height:         720,
		TargetFPS:      120,
		Scene:          "assets/scenes/demo.json",
		HotReload:      true,
		GPUBounds:      true,
		BoundsCapacity: 4096,
		PanelWidth:     240,
		LogLevel:       "info",
	}
}

// LoadConfig reads a TOML config over the defaults. A missing file is not
// an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Save writes cfg as TOML.
func (c Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Width, c.Height)
	}
	if c.BoundsCapacity <= 0 {
		return fmt.Errorf("invalid bounds capacity %d", c.BoundsCapacity)
	}
	if c.PanelWidth < 0 || c.PanelWidth >= c.Width {
		return fmt.Errorf("invalid panel width %d", c.PanelWidth)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel. Empty means info.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
