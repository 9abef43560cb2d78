// Package config loads rgallery settings from a TOML, YAML or JSON file with
// environment overrides.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kk-code-lab/rgallery/internal/catalog"
)

// Config holds every tunable of the browser.
type Config struct {
	// Catalog describes where entries come from and how asset paths are built.
	Catalog CatalogConfig `toml:"catalog" json:"catalog" yaml:"catalog"`

	// Layout tunes windowing, anchoring and the card grid.
	Layout LayoutConfig `toml:"layout" json:"layout" yaml:"layout"`

	// Log configures the log file.
	Log LogConfig `toml:"log" json:"log" yaml:"log"`

	// StateDir holds the acknowledgement flag and the default log file.
	StateDir string `toml:"state_dir" json:"state_dir" yaml:"state_dir"`
}

// CatalogConfig holds catalog source settings.
type CatalogConfig struct {
	// Source is an http(s) URL, a file:// URL or a local path.
	Source     string `toml:"source" json:"source" yaml:"source"`
	FileBase   string `toml:"file_base" json:"file_base" yaml:"file_base"`
	RenderBase string `toml:"render_base" json:"render_base" yaml:"render_base"`
	RenderExt  string `toml:"render_ext" json:"render_ext" yaml:"render_ext"`

	// TimeoutSec bounds each HTTP attempt.
	TimeoutSec int `toml:"timeout_sec" json:"timeout_sec" yaml:"timeout_sec"`
	RetryMax   int `toml:"retry_max" json:"retry_max" yaml:"retry_max"`
}

// LayoutConfig holds grid and scroll settings. Heights are terminal lines.
type LayoutConfig struct {
	WindowSize       int     `toml:"window_size" json:"window_size" yaml:"window_size"`
	BufferRows       int     `toml:"buffer_rows" json:"buffer_rows" yaml:"buffer_rows"`
	HalfRowThreshold float64 `toml:"half_row_threshold" json:"half_row_threshold" yaml:"half_row_threshold"`

	// DefaultRowHeight is used until a card has been measured.
	DefaultRowHeight int `toml:"default_row_height" json:"default_row_height" yaml:"default_row_height"`
	CardWidth        int `toml:"card_width" json:"card_width" yaml:"card_width"`
	ColumnGap        int `toml:"column_gap" json:"column_gap" yaml:"column_gap"`
	HeaderHeight     int `toml:"header_height" json:"header_height" yaml:"header_height"`
	SummaryHeight    int `toml:"summary_height" json:"summary_height" yaml:"summary_height"`

	RestoreAttempts int `toml:"restore_attempts" json:"restore_attempts" yaml:"restore_attempts"`
	ScrollSettleMs  int `toml:"scroll_settle_ms" json:"scroll_settle_ms" yaml:"scroll_settle_ms"`
	FrameIntervalMs int `toml:"frame_interval_ms" json:"frame_interval_ms" yaml:"frame_interval_ms"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" json:"level" yaml:"level"`
	// File defaults to rgallery.log in the state directory.
	File string `toml:"file" json:"file" yaml:"file"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Source:     "catalog.json",
			FileBase:   "files/",
			RenderBase: "renders/",
			RenderExt:  ".webp",
			TimeoutSec: 30,
			RetryMax:   3,
		},
		Layout: LayoutConfig{
			WindowSize:       200,
			BufferRows:       3,
			HalfRowThreshold: 0.5,
			DefaultRowHeight: 8,
			CardWidth:        28,
			ColumnGap:        2,
			HeaderHeight:     2,
			SummaryHeight:    2,
			RestoreAttempts:  10,
			ScrollSettleMs:   150,
			FrameIntervalMs:  16,
		},
		Log: LogConfig{
			Level: "info",
		},
		StateDir: DefaultStateDir(),
	}
}

// ConfigDir is $XDG_CONFIG_HOME/rgallery, falling back to ~/.config/rgallery.
func ConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "rgallery")
	}
	return filepath.Join(homeDir(), ".config", "rgallery")
}

// ConfigPath is the file read when no --config flag is given.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DefaultStateDir is $XDG_STATE_HOME/rgallery, falling back to
// ~/.local/state/rgallery.
func DefaultStateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "rgallery")
	}
	return filepath.Join(homeDir(), ".local", "state", "rgallery")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// ApplyEnvOverrides applies RGALLERY_* environment variables.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("RGALLERY_CATALOG"); v != "" {
		c.Catalog.Source = v
	}
	if v := os.Getenv("RGALLERY_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("RGALLERY_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("RGALLERY_STATE_DIR"); v != "" {
		c.StateDir = v
	}
}

// LogPath resolves the log file location.
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return expandPath(c.Log.File)
	}
	return filepath.Join(c.StateDirPath(), "rgallery.log")
}

// StateDirPath is StateDir with ~ expanded.
func (c *Config) StateDirPath() string {
	return expandPath(c.StateDir)
}

// CatalogSource is the catalog location with ~ expanded for local paths.
func (c *Config) CatalogSource() string {
	return expandPath(c.Catalog.Source)
}

// PathOptions maps the catalog section onto normalization options.
func (c *Config) PathOptions() catalog.PathOptions {
	return catalog.PathOptions{
		FileBase:   c.Catalog.FileBase,
		RenderBase: c.Catalog.RenderBase,
		RenderExt:  c.Catalog.RenderExt,
	}
}

// Timeout is the per-attempt HTTP timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Catalog.TimeoutSec) * time.Second
}

// ScrollSettle is the quiet period after the last scroll before the position
// is written to history.
func (c *Config) ScrollSettle() time.Duration {
	return time.Duration(c.Layout.ScrollSettleMs) * time.Millisecond
}

// FrameInterval is the restoration frame period.
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.Layout.FrameIntervalMs) * time.Millisecond
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
