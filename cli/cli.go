package cli

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/sokinpui/eolbox/lineending"
)

// Config holds all the command-line flag values.
type Config struct {
	Classify        bool
	To              string
	Visualize       bool
	File            string
	InPlace         bool
	Diff            bool
	Host            string
	NoEOLTracking   bool
	ConvertInserted bool
	DefaultEOL      string
	Debug           bool
	LogFile         string
	ConfigFile      string

	// Target and DefaultKind are To and DefaultEOL parsed, set by Validate.
	Target      lineending.Kind
	DefaultKind lineending.Kind
}

// Hosts accepted by --host.
const (
	HostBuffer = "buffer"
	HostNvim   = "nvim"
)

// OneShot reports whether a mode flag asks for output instead of the TUI.
func (c *Config) OneShot() bool {
	return c.Classify || c.Visualize || c.To != ""
}

// NewFlagSet defines the eolbox flags on a new set bound to cfg.
func NewFlagSet(cfg *Config) *pflag.FlagSet {
	fs := pflag.NewFlagSet("eolbox", pflag.ContinueOnError)

	// Modes
	fs.BoolVarP(&cfg.Classify, "classify", "c", false, "Print the line ending type and break counts of the input.")
	fs.StringVarP(&cfg.To, "to", "t", "", "Convert the input to a line ending: crlf (dos), cr (mac) or lf (unix).")
	fs.BoolVarP(&cfg.Visualize, "visualize", "v", false, "Print the input with <CR> and <LF> markers.")

	// Input and output
	fs.StringVarP(&cfg.File, "file", "f", "", "Read input from a file instead of stdin or the clipboard.")
	fs.BoolVarP(&cfg.InPlace, "in-place", "i", false, "With --to and --file, rewrite the file.")
	fs.BoolVarP(&cfg.Diff, "diff", "d", false, "With --to, print a diff of the visualized text instead of the result.")

	// Text control
	fs.StringVar(&cfg.Host, "host", HostBuffer, "Text control for the interactive demo: buffer or nvim.")
	fs.BoolVar(&cfg.NoEOLTracking, "no-eol-tracking", false, "Make the buffer control behave as if it only knew CRLF.")
	fs.BoolVar(&cfg.ConvertInserted, "convert-inserted", false, "Convert inserted text to the buffer's line ending.")
	fs.StringVar(&cfg.DefaultEOL, "default-eol", "crlf", "Line ending of a buffer whose text has no breaks.")

	// Ambient
	fs.BoolVar(&cfg.Debug, "debug", false, "Write a debug log.")
	fs.StringVar(&cfg.LogFile, "log-file", "eolbox.log", "Path of the debug log.")
	fs.StringVar(&cfg.ConfigFile, "config", "", "Config file (default $XDG_CONFIG_HOME/eolbox/config.yaml).")

	fs.Usage = func() {
		fmt.Println("Usage: eolbox [flags]")
		fmt.Println("\nInspect and convert line endings. Without a mode flag, opens the interactive demo.")
		fmt.Println("\nExamples:")
		fmt.Println("  eolbox                       # interactive demo")
		fmt.Println("  pbpaste | eolbox -c          # classify the piped text")
		fmt.Println("  eolbox -f notes.txt -t lf -i # rewrite a file with Unix line endings")
		fmt.Println("\nFlags:")
		fs.PrintDefaults()
	}
	return fs
}

// ParseFlags parses args into a Config. Call Validate once config file
// values have been merged.
func ParseFlags(args []string) (*Config, *pflag.FlagSet, error) {
	cfg := &Config{}
	fs := NewFlagSet(cfg)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return cfg, fs, nil
}

// Validate checks flag combinations and parses the conversion target.
func (c *Config) Validate() error {
	modes := 0
	for _, on := range []bool{c.Classify, c.Visualize, c.To != ""} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return fmt.Errorf("error: --classify, --to and --visualize are mutually exclusive")
	}

	if c.To != "" {
		target, err := lineending.ParseKind(c.To)
		if err != nil {
			return fmt.Errorf("error: --to: %w", err)
		}
		if !target.IsConcrete() {
			return fmt.Errorf("error: --to: %w: %s", lineending.ErrInvalidTarget, target)
		}
		c.Target = target
	}

	if c.InPlace && (c.To == "" || c.File == "") {
		return fmt.Errorf("error: --in-place requires --to and --file")
	}
	if c.Diff && c.To == "" {
		return fmt.Errorf("error: --diff requires --to")
	}
	if c.Diff && c.InPlace {
		return fmt.Errorf("error: --diff and --in-place are mutually exclusive")
	}

	if c.Host != HostBuffer && c.Host != HostNvim {
		return fmt.Errorf("error: --host must be %q or %q, got %q", HostBuffer, HostNvim, c.Host)
	}
	kind, err := lineending.ParseKind(c.DefaultEOL)
	if err != nil || !kind.IsConcrete() {
		return fmt.Errorf("error: --default-eol must be crlf, cr or lf, got %q", c.DefaultEOL)
	}
	c.DefaultKind = kind
	return nil
}
