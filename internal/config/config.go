// Package config loads the kpi-donut configuration from a YAML file with
// KPIDONUT_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/iburimskiy/kpi-donut/internal/settings"
)

// Preview window layout.
const (
	ButtonWidth  = 120
	ButtonHeight = 40
	ButtonX      = 20
	ButtonY      = 50
	ButtonGap    = 10

	// VisualRingSize is the number of audio samples kept for the level meter.
	VisualRingSize  = 8192
	LevelWindow     = 2048
	SmoothingFactor = 0.6

	// ValueStep is how far one arrow key press moves the measure.
	ValueStep = 0.01
)

// Config is the complete application configuration.
type Config struct {
	Logging  LoggingConfig     `mapstructure:"logging"  yaml:"logging"`
	Viewport ViewportConfig    `mapstructure:"viewport" yaml:"viewport"`
	Output   OutputConfig      `mapstructure:"output"   yaml:"output"`
	Fonts    map[string]string `mapstructure:"fonts"    yaml:"fonts"` // family -> TTF/OTF path
	Preview  PreviewConfig     `mapstructure:"preview"  yaml:"preview"`
	Donut    settings.Donut    `mapstructure:"donut"    yaml:"donut"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// ViewportConfig is the default render area.
type ViewportConfig struct {
	Width  float64 `mapstructure:"width"  yaml:"width"`
	Height float64 `mapstructure:"height" yaml:"height"`
}

// OutputConfig selects the render encoding.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"` // "svg" or "png"
	Path   string `mapstructure:"path"   yaml:"path"`   // "-" for stdout
}

// PreviewConfig sizes the preview window.
type PreviewConfig struct {
	Width  int `mapstructure:"width"  yaml:"width"`
	Height int `mapstructure:"height" yaml:"height"`
}

// Load reads configuration from path, or searches ./config.yaml,
// ~/.kpi-donut/config.yaml and /etc/kpi-donut/config.yaml when path is
// empty. A missing file in the search path is not an error.
//
// Environment variables override file values: KPIDONUT_<SECTION>_<KEY>,
// e.g. KPIDONUT_DONUT_FONT_SIZE.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".kpi-donut"))
		}
		v.AddConfigPath("/etc/kpi-donut")
	}

	v.SetEnvPrefix("KPIDONUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// LoadDonut reads a standalone style file: the donut properties at the top
// level, on top of defaults.
func LoadDonut(path string, defaults settings.Donut) (settings.Donut, error) {
	v := viper.New()
	setDonutDefaults(v, "", defaults)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return defaults, fmt.Errorf("error reading style file %s: %w", path, err)
	}

	var d settings.Donut
	if err := v.Unmarshal(&d); err != nil {
		return defaults, fmt.Errorf("error unmarshaling style file %s: %w", path, err)
	}
	return d, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("viewport.width", 300)
	v.SetDefault("viewport.height", 300)

	v.SetDefault("output.format", "svg")
	v.SetDefault("output.path", "-")

	v.SetDefault("fonts", map[string]string{})

	v.SetDefault("preview.width", 1024)
	v.SetDefault("preview.height", 512)

	setDonutDefaults(v, "donut.", settings.Defaults())
}

func setDonutDefaults(v *viper.Viper, prefix string, d settings.Donut) {
	v.SetDefault(prefix+"enable_custom_font_sizes", d.EnableCustomFontSizes)
	v.SetDefault(prefix+"font_family", d.FontFamily)
	v.SetDefault(prefix+"font_bold", d.FontBold)
	v.SetDefault(prefix+"font_italic", d.FontItalic)
	v.SetDefault(prefix+"font_size", d.FontSize)
	v.SetDefault(prefix+"font_color", d.FontColor)
	v.SetDefault(prefix+"background_color", d.BackgroundColor)
	v.SetDefault(prefix+"outer_line_color", d.OuterLineColor)
	v.SetDefault(prefix+"inner_line_color", d.InnerLineColor)
	v.SetDefault(prefix+"value_decimal_places", d.ValueDecimalPlaces)
	v.SetDefault(prefix+"outer_line_width", d.OuterLineWidth)
	v.SetDefault(prefix+"inner_line_width", d.InnerLineWidth)
	v.SetDefault(prefix+"amendment_size", d.AmendmentSize)
}

// Logger builds a slog logger from the logging section.
func (c LoggingConfig) Logger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(c.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
