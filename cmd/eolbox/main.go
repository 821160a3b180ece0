package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/pflag"

	"github.com/sokinpui/eolbox/cli"
	"github.com/sokinpui/eolbox/eolbox"
	"github.com/sokinpui/eolbox/internal/config"
	"github.com/sokinpui/eolbox/internal/host"
	"github.com/sokinpui/eolbox/internal/log"
	"github.com/sokinpui/eolbox/internal/source"
	"github.com/sokinpui/eolbox/internal/tui"
	"github.com/sokinpui/eolbox/internal/ui"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, flags, err := cli.ParseFlags(args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		// pflag already prints the error message.
		return 2
	}

	configPath, err := config.Load(cfg, flags)
	if err != nil {
		ui.Error("Error: %v", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		ui.Error("%v", err)
		return 2
	}

	if cfg.Debug {
		cleanup, err := log.Init(cfg.LogFile, log.LevelDebug, 500)
		if err != nil {
			ui.Warning("Could not open log file: %v", err)
		} else {
			defer cleanup()
		}
	}
	log.Info(log.CatConfig, "starting", "config", configPath, "host", cfg.Host, "oneShot", cfg.OneShot())

	if cfg.OneShot() {
		return runOneShot(cfg)
	}
	return runTUI(cfg)
}

func runOneShot(cfg *cli.Config) int {
	app, err := eolbox.New(cfg)
	if err != nil {
		ui.Error("Failed to initialize application: %v", err)
		return 1
	}

	report, err := app.Execute()
	if err != nil {
		printError(err)
		return 1
	}
	ui.PrintReport(os.Stdout, report)
	return 0
}

func runTUI(cfg *cli.Config) int {
	text := tui.DemoText
	if cfg.File != "" {
		content, err := source.New(cfg.File).GetContent()
		if err != nil {
			ui.Error("Error: %v", err)
			return 1
		}
		text = content.Text
	}

	adapter, err := newHost(cfg)
	if err != nil {
		ui.Error("Failed to start %s host: %v", cfg.Host, err)
		return 1
	}
	defer adapter.Close()

	if err := adapter.SetText(text); err != nil {
		ui.Error("Failed to load text: %v", err)
		return 1
	}

	zone.NewGlobal()

	p := tea.NewProgram(tui.New(adapter, cfg.Host), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		ui.Error("Error running program: %v", err)
		return 1
	}
	return 0
}

func newHost(cfg *cli.Config) (host.Adapter, error) {
	if cfg.Host == cli.HostNvim {
		return host.NewNvim()
	}
	return host.NewBuffer(host.Options{
		TrackEOL:          !cfg.NoEOLTracking,
		ConvertInserted:   cfg.ConvertInserted,
		DefaultConvention: cfg.DefaultKind,
	}), nil
}

func printError(err error) {
	ui.Error("Error: %v", err)
	var detailed *eolbox.DetailedError
	if errors.As(err, &detailed) {
		fmt.Fprintf(os.Stderr, "\n--- Stack Trace ---\n%s\n", detailed.Stack)
	}
}
