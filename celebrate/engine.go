// Package celebrate implements the celebratory effect played when a
// prompt test run succeeds: a brief full-screen flash, an optional short
// audio cue, and a floating ghost that drifts across the header between
// the title and the settings gear.
//
// The engine is a non-essential embellishment by design: every failure
// path (missing asset, unreadable preference file, missing anchor,
// blocked playback) logs a warning and degrades exactly one sub-effect,
// never the host application.
package celebrate

import (
	"sync"

	"go.uber.org/zap"
)

// Default anchor ids the path resolver tries. The header may expose its
// title under the dedicated id or only under the generic one.
var defaultTitleAnchors = []string{"header-title", "title"}

const defaultGearAnchor = "gear"

// Config parameterizes one effect engine instance
type Config struct {
	// AssetDir is the static asset root holding chime.wav and ghost.txt
	AssetDir string
	// Backend persists the enabled flag; nil selects the default file backend
	Backend Backend
	// ReducedMotion selects the gentler flash variant and suppresses the ghost
	ReducedMotion bool
	// Clock overrides the time source; nil selects the system clock
	Clock Clock
	// TitleAnchors and GearAnchor override the default anchor ids
	TitleAnchors []string
	GearAnchor   string
}

// Engine is the public facade the host UI composes the effect through.
// Exactly one engine exists per application, owned by the top-level
// controller and passed by reference — no package-level mutable state.
type Engine struct {
	mu  sync.Mutex
	log *zap.Logger

	prefs  *PreferenceStore
	loader *AssetLoader
	flash  *FlashController
	audio  *AudioController
	ghost  *GhostAnimationEngine

	stage   *Stage
	anchors AnchorResolver

	titleAnchors  []string
	gearAnchor    string
	reducedMotion bool

	audioAvailable bool
	ghostAvailable bool
	sprite         Sprite
}

// New creates an engine; call Init once before the first Trigger
func New(cfg Config, log *zap.Logger) *Engine {
	clock := cfg.Clock
	if clock == nil {
		clock = NewSystemClock()
	}
	backend := cfg.Backend
	if backend == nil {
		backend = DefaultBackend()
	}
	titleAnchors := cfg.TitleAnchors
	if len(titleAnchors) == 0 {
		titleAnchors = defaultTitleAnchors
	}
	gearAnchor := cfg.GearAnchor
	if gearAnchor == "" {
		gearAnchor = defaultGearAnchor
	}

	return &Engine{
		log:           log,
		prefs:         NewPreferenceStore(backend, log),
		loader:        NewAssetLoader(cfg.AssetDir, log),
		flash:         NewFlashController(clock, log),
		audio:         NewAudioController(log),
		titleAnchors:  titleAnchors,
		gearAnchor:    gearAnchor,
		reducedMotion: cfg.ReducedMotion,
	}
}

// Init wires the engine to the host's stage and anchor layout: appends
// the flash overlay, loads the stored preference, and kicks off both
// asset preloads. The preloads never block; a trigger arriving before
// they resolve simply treats that sub-effect as unavailable.
func (e *Engine) Init(stage *Stage, anchors AnchorResolver) {
	e.mu.Lock()
	e.stage = stage
	e.anchors = anchors
	e.ghost = NewGhostAnimationEngine(stage, e.clockForGhost(), e.reducedMotion, e.log)
	e.mu.Unlock()

	overlay := NewFlashOverlay(e.reducedMotion)
	stage.Append(overlay)
	e.flash.Arm(overlay)

	e.prefs.Load()

	go func() {
		clip, err := e.loader.LoadAudio()
		if err != nil {
			e.log.Warn("celebration audio unavailable for this session", zap.Error(err))
			return
		}
		e.audio.SetClip(clip)
		e.mu.Lock()
		e.audioAvailable = true
		e.mu.Unlock()
	}()

	e.loader.PreloadSprite(func(sprite Sprite) {
		e.mu.Lock()
		e.sprite = sprite
		e.ghostAvailable = true
		e.mu.Unlock()
	})
}

// clockForGhost reuses the flash controller's clock so the whole engine
// shares one time source
func (e *Engine) clockForGhost() Clock {
	return e.flash.clock
}

// IsEnabled reports the current preference
func (e *Engine) IsEnabled() bool {
	return e.prefs.Enabled()
}

// SetEnabled updates and persists the preference; no other side effects
func (e *Engine) SetEnabled(enabled bool) {
	e.prefs.Save(enabled)
}

// Trigger plays the combined effect for one successful run. The host
// calls this exactly once per success and never for failed runs; the
// engine does not re-derive that classification. Flash, audio and ghost
// fire independently — no sub-effect's failure touches the others.
func (e *Engine) Trigger() {
	if !e.prefs.Enabled() {
		return
	}

	e.flash.Play()

	e.mu.Lock()
	audioOK := e.audioAvailable
	ghostOK := e.ghostAvailable
	sprite := e.sprite
	anchors := e.anchors
	ghost := e.ghost
	e.mu.Unlock()

	if audioOK {
		e.audio.Play()
	}

	if ghostOK && ghost != nil && anchors != nil {
		// Anchors move with the layout; waypoints are never cached
		if path, ok := ResolvePath(anchors, e.titleAnchors, e.gearAnchor, sprite.WidthPx); ok {
			ghost.Play(&sprite, path)
		}
	}
}
