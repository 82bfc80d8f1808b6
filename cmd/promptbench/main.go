package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"promptbench/celebrate"
	"promptbench/client"
	"promptbench/config"
	"promptbench/ui"
)

var configFlag = flag.String("config", "", "Path to config file")

func main() {
	flag.Parse()
	cfg := config.Load(*configFlag)

	logger, err := newLogger(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	// Panic recovery: restore the terminal before printing the trace
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\npromptbench crashed: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	stage := celebrate.NewStage()
	effectCfg := celebrate.Config{
		AssetDir:      cfg.AssetDir,
		ReducedMotion: cfg.ReducedMotion,
	}
	if cfg.PrefsFile != "" {
		effectCfg.Backend = &celebrate.FileBackend{Path: cfg.PrefsFile}
	}
	effects := celebrate.New(effectCfg, logger)

	runner := client.New(cfg.Endpoint, cfg.Model, logger)

	app := ui.NewApp(screen, effects, stage, runner, logger)
	effects.Init(stage, app.Header())

	if err := app.Run(); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "promptbench exited with error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes structured logs to a file; the TUI owns the terminal
func newLogger(path string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{path}
	return zcfg.Build()
}
