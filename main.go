// kpi-donut renders a single KPI measure as a radial percentage gauge.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/kpi-donut/internal/config"
	"github.com/iburimskiy/kpi-donut/internal/dataview"
	"github.com/iburimskiy/kpi-donut/internal/fonts"
	"github.com/iburimskiy/kpi-donut/internal/gauge"
	"github.com/iburimskiy/kpi-donut/internal/preview"
	"github.com/iburimskiy/kpi-donut/internal/settings"
	"github.com/iburimskiy/kpi-donut/internal/surface"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
)

var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "kpi-donut",
	Short:         "Render a KPI measure as a donut percentage gauge",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		c, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			c.Logging.Level = level
		}
		cfg = c
		gauge.SetLogger(cfg.Logging.Logger())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(enumerateCmd)
	rootCmd.AddCommand(previewCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "kpi-donut %s (%s)\n", version, commit)
	},
}

// --- Render Command ---

type renderRequest struct {
	DataView *dataview.DataView // nil renders the placeholder
	Donut    settings.Donut     // parser defaults
	Width    float64
	Height   float64
	Format   string
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the gauge to SVG or PNG",
	Long: `Render one update of the gauge. The measure comes from --dataview, a
YAML/JSON data view file, or from --name and --value. Formatting comes from
the config donut section, optionally replaced by --style.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := renderRequestFromFlags(cmd)
		if err != nil {
			return err
		}
		lib, err := loadFonts(cfg.Fonts)
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			out = cfg.Output.Path
		}
		if out == "" || out == "-" {
			return render(cmd.OutOrStdout(), lib, req)
		}

		f, err := os.Create(out)
		if err != nil {
			return err
		}
		if err := render(f, lib, req); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	},
}

func init() {
	renderCmd.Flags().String("name", "Value", "measure display name")
	renderCmd.Flags().Float64("value", 0, "measure value, 1 is 100%")
	renderCmd.Flags().Bool("empty", false, "render without a measure")
	renderCmd.Flags().String("dataview", "", "data view file (yaml or json)")
	renderCmd.Flags().String("style", "", "donut style file replacing the config donut section")
	renderCmd.Flags().Float64("width", 0, "viewport width (default from config)")
	renderCmd.Flags().Float64("height", 0, "viewport height (default from config)")
	renderCmd.Flags().String("format", "", "output format: svg or png (default from config)")
	renderCmd.Flags().StringP("output", "o", "", "output file, - for stdout (default from config)")
}

func renderRequestFromFlags(cmd *cobra.Command) (renderRequest, error) {
	flags := cmd.Flags()
	req := renderRequest{
		Donut:  cfg.Donut,
		Width:  cfg.Viewport.Width,
		Height: cfg.Viewport.Height,
		Format: cfg.Output.Format,
	}

	if style, _ := flags.GetString("style"); style != "" {
		d, err := config.LoadDonut(style, settings.Defaults())
		if err != nil {
			return req, err
		}
		req.Donut = d
	}
	if w, _ := flags.GetFloat64("width"); w > 0 {
		req.Width = w
	}
	if h, _ := flags.GetFloat64("height"); h > 0 {
		req.Height = h
	}
	if f, _ := flags.GetString("format"); f != "" {
		req.Format = f
	}

	if empty, _ := flags.GetBool("empty"); empty {
		return req, nil
	}
	if path, _ := flags.GetString("dataview"); path != "" {
		dv, err := dataview.LoadFile(path)
		if err != nil {
			return req, err
		}
		req.DataView = dv
		return req, nil
	}

	name, _ := flags.GetString("name")
	value, _ := flags.GetFloat64("value")
	req.DataView = dataview.NewSingle(name, value, req.Donut.Objects())
	return req, nil
}

// render delivers one update to a fresh renderer and encodes the surface.
func render(w io.Writer, lib *fonts.Library, req renderRequest) error {
	canvas := surface.New(lib)
	r := gauge.New(canvas, nil, gauge.WithParser(settings.NewParser(req.Donut)))

	var views []*dataview.DataView
	if req.DataView != nil {
		views = []*dataview.DataView{req.DataView}
	}
	r.Update(gauge.UpdateOptions{
		DataViews: views,
		Viewport:  gauge.Viewport{Width: req.Width, Height: req.Height},
	})
	gauge.Logger().Debug("rendered", "state", r.State(), "format", req.Format)

	switch strings.ToLower(req.Format) {
	case "", "svg":
		return canvas.WriteSVG(w)
	case "png":
		return canvas.WritePNG(w)
	default:
		return fmt.Errorf("unknown output format %q", req.Format)
	}
}

func loadFonts(families map[string]string) (*fonts.Library, error) {
	lib := fonts.NewLibrary()
	for family, path := range families {
		if err := lib.RegisterFile(family, path); err != nil {
			return nil, fmt.Errorf("font %q: %w", family, err)
		}
	}
	return lib, nil
}

// --- Enumerate Command ---

var enumerateCmd = &cobra.Command{
	Use:   "enumerate",
	Short: "List the formatting properties exposed to a property pane",
	RunE: func(cmd *cobra.Command, args []string) error {
		object, _ := cmd.Flags().GetString("object")
		format, _ := cmd.Flags().GetString("format")

		d := cfg.Donut
		if style, _ := cmd.Flags().GetString("style"); style != "" {
			var err error
			if d, err = config.LoadDonut(style, settings.Defaults()); err != nil {
				return err
			}
		}
		return writeInstances(cmd.OutOrStdout(), settings.EnumerateObjectInstances(d, object), format)
	},
}

func init() {
	enumerateCmd.Flags().String("object", settings.ObjectName, "object name to enumerate")
	enumerateCmd.Flags().String("style", "", "donut style file replacing the config donut section")
	enumerateCmd.Flags().String("format", "yaml", "output format: yaml or json")
}

var errUnknownFormat = errors.New("unknown format")

func writeInstances(w io.Writer, instances []settings.ObjectInstance, format string) error {
	if instances == nil {
		instances = []settings.ObjectInstance{}
	}
	switch strings.ToLower(format) {
	case "yaml", "yml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(instances); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(instances)
	default:
		return fmt.Errorf("%w %q", errUnknownFormat, format)
	}
}

// --- Preview Command ---

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Open an interactive preview window",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := loadFonts(cfg.Fonts)
		if err != nil {
			return err
		}
		opts := preview.Options{}
		opts.Name, _ = cmd.Flags().GetString("name")
		opts.Value, _ = cmd.Flags().GetFloat64("value")
		opts.Audio, _ = cmd.Flags().GetString("audio")
		opts.Empty, _ = cmd.Flags().GetBool("empty")
		return preview.Run(cfg, lib, opts)
	},
}

func init() {
	previewCmd.Flags().String("name", "Value", "measure display name")
	previewCmd.Flags().Float64("value", 0.5, "initial measure value")
	previewCmd.Flags().String("audio", "", "audio file whose level drives the measure")
	previewCmd.Flags().Bool("empty", false, "start without a measure")
}
