package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/genricoloni/dailywall/internal/domain"
	"go.uber.org/zap"
)

// Display backends understood by the monitor inspector
const (
	BackendXrandr     = "xrandr"
	BackendRandR      = "randr"
	BackendScreenshot = "screenshot"
)

const (
	appName            = "dailywall"
	defaultOutputSub   = "Pictures/wallpaper"
	defaultOutputName  = "merged.jpg"
	defaultMaxSkips    = 7
	defaultQuality     = 90
	defaultTimeout     = 30 * time.Second
	defaultPictureMode = "spanned"
)

// Duration is a time.Duration that decodes from strings like "30s"
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// AppConfig holds application configuration
type AppConfig struct {
	OutputDir      string   `toml:"output_dir"`
	OutputName     string   `toml:"output_name"`
	Providers      []string `toml:"providers"`
	DaysInPast     int      `toml:"days_in_past"`
	MaxSkips       int      `toml:"max_skips"`
	Random         bool     `toml:"random"`
	DisplayBackend string   `toml:"display_backend"`
	NASAAPIKey     string   `toml:"nasa_api_key"`
	PreferHD       bool     `toml:"prefer_hd"`
	PictureOptions string   `toml:"picture_options"`
	SetDarkURI     bool     `toml:"set_dark_uri"`
	JPEGQuality    int      `toml:"jpeg_quality"`
	HTTPTimeout    Duration `toml:"http_timeout"`
	Apply          bool     `toml:"apply"`
	Debug          bool     `toml:"debug"`
}

// Default returns the built-in configuration
func Default() *AppConfig {
	c := &AppConfig{
		OutputName:     defaultOutputName,
		Providers:      []string{string(domain.ProviderBing), string(domain.ProviderNASA)},
		MaxSkips:       defaultMaxSkips,
		DisplayBackend: BackendXrandr,
		PictureOptions: defaultPictureMode,
		SetDarkURI:     true,
		JPEGQuality:    defaultQuality,
		HTTPTimeout:    Duration{defaultTimeout},
		Apply:          true,
	}
	if home, err := os.UserHomeDir(); err == nil {
		c.OutputDir = filepath.Join(home, defaultOutputSub)
	}
	return c
}

// DefaultPath returns $XDG_CONFIG_HOME/dailywall/config.toml
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// Load builds the configuration from defaults, the TOML file and the environment.
// An empty path means the default location, which may be absent.
func Load(path string) (*AppConfig, error) {
	c := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		// A missing file at the default location is fine
		_, err := toml.DecodeFile(path, c)
		if err != nil && (explicit || !errors.Is(err, fs.ErrNotExist)) {
			return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrConfiguration, path, err)
		}
	}

	c.applyEnv()
	return c, nil
}

// applyEnv overrides file values with environment variables
func (c *AppConfig) applyEnv() {
	if key := os.Getenv("NASA_API_KEY"); key != "" {
		c.NASAAPIKey = key
	}
	if dir := os.Getenv("DAILYWALL_OUTPUT_DIR"); dir != "" {
		c.OutputDir = dir
	}
	if list := os.Getenv("DAILYWALL_PROVIDERS"); list != "" {
		c.Providers = SplitList(list)
	}
}

// SplitList splits a comma separated list, dropping blanks
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}

// Validate normalizes paths and rejects invalid values
func (c *AppConfig) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output directory not set and HOME is unavailable", domain.ErrConfiguration)
	}
	c.OutputDir = expandPath(c.OutputDir)

	if c.OutputName == "" || strings.ContainsRune(c.OutputName, filepath.Separator) {
		return fmt.Errorf("%w: invalid output name %q", domain.ErrConfiguration, c.OutputName)
	}

	if len(c.Providers) == 0 {
		return fmt.Errorf("%w: no providers configured", domain.ErrConfiguration)
	}
	for _, name := range c.Providers {
		switch domain.ProviderKind(name) {
		case domain.ProviderBing, domain.ProviderNASA:
		default:
			return fmt.Errorf("%w: unknown provider %q", domain.ErrConfiguration, name)
		}
	}

	if c.DaysInPast < 0 {
		return fmt.Errorf("%w: days in past must be >= 0, got %d", domain.ErrConfiguration, c.DaysInPast)
	}
	if c.MaxSkips <= 0 {
		return fmt.Errorf("%w: max skips must be > 0, got %d", domain.ErrConfiguration, c.MaxSkips)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("%w: jpeg quality must be in 1..100, got %d", domain.ErrConfiguration, c.JPEGQuality)
	}
	if c.HTTPTimeout.Duration <= 0 {
		c.HTTPTimeout = Duration{defaultTimeout}
	}

	switch c.DisplayBackend {
	case BackendXrandr, BackendRandR, BackendScreenshot:
	default:
		return fmt.Errorf("%w: unknown display backend %q", domain.ErrConfiguration, c.DisplayBackend)
	}

	return nil
}

// LogFields returns the configuration as structured log fields
func (c *AppConfig) LogFields() []zap.Field {
	return []zap.Field{
		zap.String("outputDir", c.OutputDir),
		zap.String("outputName", c.OutputName),
		zap.Strings("providers", c.Providers),
		zap.Int("daysInPast", c.DaysInPast),
		zap.Bool("random", c.Random),
		zap.String("backend", c.DisplayBackend),
		zap.Bool("apply", c.Apply),
	}
}

// expandPath expands environment variables and a leading ~
func expandPath(p string) string {
	p = os.ExpandEnv(p)
	if len(p) > 0 && p[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			p = filepath.Join(home, p[1:])
		}
	}
	return p
}

// GetOutputDir returns the directory for fetched images and the composite
func (c *AppConfig) GetOutputDir() string {
	return c.OutputDir
}

// GetOutputName returns the composite file name
func (c *AppConfig) GetOutputName() string {
	return c.OutputName
}

// GetDaysInPast returns the base provider offset
func (c *AppConfig) GetDaysInPast() int {
	return c.DaysInPast
}

// GetMaxSkips returns the number of days a slot may try
func (c *AppConfig) GetMaxSkips() int {
	return c.MaxSkips
}

// GetRandom reports whether random offsets are used
func (c *AppConfig) GetRandom() bool {
	return c.Random
}

// GetApply reports whether the wallpaper is set after compositing
func (c *AppConfig) GetApply() bool {
	return c.Apply
}
