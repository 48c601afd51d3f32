// Command oskdemo opens the on-screen keyboard once and prints the result.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/BrandonKowalski/osk/pkg/osk"
	"github.com/BrandonKowalski/osk/pkg/osk/grid"
	"github.com/BrandonKowalski/osk/pkg/osk/panel"
	"github.com/BrandonKowalski/osk/pkg/osk/present"
	"github.com/BrandonKowalski/osk/pkg/osk/session"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

var version = "dev"

type flags struct {
	modes       string
	firstView   string
	hostLang    string
	supported   string
	preferHost  bool
	title       string
	text        string
	maxLength   int
	noSpace     bool
	noReturn    bool
	noAnalog    bool
	alignX      string
	alignY      string
	offsetX     int
	offsetY     int
	scale       float64
	dimmer      bool
	sounds      bool
	mouse       bool
	keysButtons bool
	evdev       string
	logLevel    string
	logFile     string
	mapping     string
	nextUI      bool
	cannoli     bool
	accent      string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:           "oskdemo",
		Short:         "Open the on-screen keyboard and print the entered text",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, f)
		},
	}

	fl := root.Flags()
	fl.StringVar(&f.modes, "modes", "", "comma separated panel modes, e.g. english,french (empty uses the host locale)")
	fl.StringVar(&f.firstView, "first", "", "panel mode shown first")
	fl.StringVar(&f.hostLang, "lang", "en", "host system language (BCP 47)")
	fl.StringVar(&f.supported, "supported", "", "restricted panel modes the host supports")
	fl.BoolVar(&f.preferHost, "prefer-host", false, "use the host language panel regardless of --modes")
	fl.StringVar(&f.title, "title", "", "dialog title")
	fl.StringVar(&f.text, "text", "", "initial text")
	fl.IntVar(&f.maxLength, "max", 0, "maximum text length in characters")
	fl.BoolVar(&f.noSpace, "no-space", false, "forbid space")
	fl.BoolVar(&f.noReturn, "no-return", false, "forbid new lines")
	fl.BoolVar(&f.noAnalog, "no-analog", false, "forbid moving the dialog with the right stick")
	fl.StringVar(&f.alignX, "align-x", "center", "left, center or right")
	fl.StringVar(&f.alignY, "align-y", "center", "top, center or bottom")
	fl.IntVar(&f.offsetX, "offset-x", 0, "horizontal offset from the aligned position")
	fl.IntVar(&f.offsetY, "offset-y", 0, "vertical offset from the aligned position")
	fl.Float64Var(&f.scale, "scale", 1, "dialog scale")
	fl.BoolVar(&f.dimmer, "dimmer", true, "dim the screen behind the dialog")
	fl.BoolVar(&f.sounds, "sounds", true, "play audio cues")
	fl.BoolVar(&f.mouse, "mouse", false, "show a mouse pointer")
	fl.BoolVar(&f.keysButtons, "keys-as-buttons", false, "drive the dialog with mapped keyboard keys instead of typing")
	fl.StringVar(&f.evdev, "evdev", "", "extra Linux keyboard device, or \"auto\"")
	fl.StringVar(&f.logLevel, "log-level", "error", "debug, info, warn or error")
	fl.StringVar(&f.logFile, "log-file", "", "also log to logs/<file>")
	fl.StringVar(&f.mapping, "mapping", "", "JSON controller mapping file")
	fl.BoolVar(&f.nextUI, "nextui", false, "use the NextUI firmware theme")
	fl.BoolVar(&f.cannoli, "cannoli", false, "use the Cannoli firmware theme")
	fl.StringVar(&f.accent, "accent", "", "accent color as RRGGBB, overrides the firmware accent")

	root.AddCommand(newPanelsCmd(), newVersionCmd())
	return root
}

func newPanelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "panels",
		Short: "List the built-in keyboard panels",
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := panel.DefaultCatalog()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMODE\tGRID\tCHARSETS")
			for _, p := range catalog.Panels() {
				fmt.Fprintf(w, "%s\t%s\t%dx%d\t%s\n", p.Name, p.Mode, p.Columns, p.Rows, strings.Join(p.Charsets, " "))
			}
			return w.Flush()
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "oskdemo %s\n", version)
		},
	}
}

func run(cmd *cobra.Command, f *flags) error {
	cfg, err := f.keyboardConfig()
	if err != nil {
		return err
	}

	opts := osk.Options{
		WindowTitle: "oskdemo",
		Language:    cfg.Host.Language,
		LogFilename: f.logFile,
		IsNextUI:    f.nextUI,
		IsCannoli:   f.cannoli,
	}
	if f.accent != "" {
		hex, err := strconv.ParseUint(strings.TrimPrefix(f.accent, "#"), 16, 32)
		if err != nil {
			return fmt.Errorf("invalid --accent %q: %w", f.accent, err)
		}
		opts.PrimaryThemeColorHex = uint32(hex)
	}
	if f.mapping != "" {
		data, err := os.ReadFile(f.mapping)
		if err != nil {
			return fmt.Errorf("read mapping: %w", err)
		}
		opts.InputMapping = data
	}

	if err := osk.Init(opts); err != nil {
		return err
	}
	defer osk.Close()
	osk.SetRawLogLevel(f.logLevel)

	res, err := osk.Keyboard(cfg)
	if errors.Is(err, osk.ErrCancelled) {
		fmt.Fprintln(cmd.ErrOrStderr(), "cancelled")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.Text)
	return nil
}

func (f *flags) keyboardConfig() (osk.KeyboardConfig, error) {
	var cfg osk.KeyboardConfig

	modes, err := panel.ParseModes(f.modes)
	if err != nil {
		return cfg, err
	}
	first, err := panel.ParseModes(f.firstView)
	if err != nil {
		return cfg, err
	}
	supported, err := panel.ParseModes(f.supported)
	if err != nil {
		return cfg, err
	}
	tag, err := language.Parse(f.hostLang)
	if err != nil {
		return cfg, fmt.Errorf("invalid --lang %q: %w", f.hostLang, err)
	}

	var prohibit grid.Prohibit
	if f.noSpace {
		prohibit |= grid.NoSpace
	}
	if f.noReturn {
		prohibit |= grid.NoReturn
	}
	if f.noAnalog {
		prohibit |= grid.NoInputAnalog
	}

	alignX, ok := map[string]present.XAlign{
		"left": present.XAlignLeft, "center": present.XAlignCenter, "right": present.XAlignRight,
	}[f.alignX]
	if !ok {
		return cfg, fmt.Errorf("invalid --align-x %q", f.alignX)
	}
	alignY, ok := map[string]present.YAlign{
		"top": present.YAlignTop, "center": present.YAlignCenter, "bottom": present.YAlignBottom,
	}[f.alignY]
	if !ok {
		return cfg, fmt.Errorf("invalid --align-y %q", f.alignY)
	}

	cfg.Config = session.Config{
		Modes:            modes,
		Host:             panel.Host{Language: tag, Supported: supported},
		PreferHostLocale: f.preferHost,
		FirstView:        first,
		Title:            f.title,
		InitialText:      f.text,
		MaxLength:        f.maxLength,
		Prohibit:         prohibit,
		AlignX:           alignX,
		AlignY:           alignY,
		OffsetX:          f.offsetX,
		OffsetY:          f.offsetY,
		Scale:            f.scale,
		Dimmer:           f.dimmer,
		InterceptInput:   f.evdev != "",
	}
	cfg.Sounds = f.sounds
	cfg.Mouse = f.mouse
	cfg.KeyboardAsButtons = f.keysButtons
	cfg.EvdevDevice = f.evdev
	return cfg, nil
}
