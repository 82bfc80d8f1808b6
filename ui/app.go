package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"promptbench/celebrate"
	"promptbench/client"
)

const frameInterval = 33 * time.Millisecond

// runOutcome carries a finished test run back to the UI goroutine
type runOutcome struct {
	result client.RunResult
	err    error
}

// App wires the screen, the header band, the run client and the effect
// engine into the interactive loop. All UI state mutates on the loop
// goroutine; background runs report back over a channel.
type App struct {
	screen   tcell.Screen
	header   *Header
	renderer *Renderer
	stage    *celebrate.Stage
	effects  *celebrate.Engine
	runner   *client.Client
	log      *zap.Logger

	running   bool
	bodyLines []string
}

// NewApp assembles the application over an initialized screen
func NewApp(screen tcell.Screen, effects *celebrate.Engine, stage *celebrate.Stage, runner *client.Client, log *zap.Logger) *App {
	header := NewHeader("PromptBench")
	return &App{
		screen:   screen,
		header:   header,
		renderer: NewRenderer(screen, header, stage),
		stage:    stage,
		effects:  effects,
		runner:   runner,
		log:      log,
		bodyLines: []string{
			"Press r to run the saved prompt against the model.",
			"A successful run plays the celebration effect.",
		},
	}
}

// Header exposes the header band for anchor wiring
func (a *App) Header() *Header {
	return a.header
}

// Run drives the event loop until quit
func (a *App) Run() error {
	events := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	outcomes := make(chan runOutcome, 1)
	frames := time.NewTicker(frameInterval)
	defer frames.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if quit := a.handleEvent(ev, outcomes); quit {
				return nil
			}
		case out := <-outcomes:
			a.finishRun(out)
		case <-frames.C:
			a.renderer.Frame(time.Now(), a.bodyLines)
		}
	}
}

func (a *App) handleEvent(ev tcell.Event, outcomes chan<- runOutcome) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q':
			return true
		case ev.Rune() == 'r':
			a.startRun(outcomes)
		case ev.Rune() == 'e':
			enabled := !a.effects.IsEnabled()
			a.effects.SetEnabled(enabled)
			if enabled {
				a.setBodyLine("Celebration effect enabled.")
			} else {
				a.setBodyLine("Celebration effect disabled.")
			}
		}
	}
	return false
}

func (a *App) startRun(outcomes chan<- runOutcome) {
	if a.running {
		return
	}
	a.running = true
	a.header.SetStatus("running...")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		result, err := a.runner.TestPrompt(ctx,
			"You are a concise assistant.",
			"Reply with a single short sentence.")
		outcomes <- runOutcome{result: result, err: err}
	}()
}

// finishRun classifies the outcome and fires the celebration only for a
// success — never for failed, errored or timed-out runs
func (a *App) finishRun(out runOutcome) {
	a.running = false

	switch {
	case out.err != nil:
		a.header.SetStatus("error")
		a.setBodyLine(fmt.Sprintf("Run failed: %v", out.err))
		a.log.Warn("prompt test run failed", zap.Error(out.err))
	case out.result.Success:
		a.header.SetStatus("success")
		a.setBodyLine(fmt.Sprintf("Model %s replied in %s.", out.result.Model, out.result.Duration.Round(time.Millisecond)))
		a.effects.Trigger()
	default:
		a.header.SetStatus("failed")
		a.setBodyLine("Run completed but was classified as a failure.")
	}
}

func (a *App) setBodyLine(line string) {
	a.bodyLines = []string{line}
}
