package celebrate

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type engineFixture struct {
	engine    *Engine
	stage     *Stage
	clock     *MockClock
	playCount *int
	anchors   mapAnchors
	backend   *memBackend
}

func newEngineFixture(t *testing.T, reducedMotion bool) *engineFixture {
	t.Helper()

	clock := NewMockClock(time.Unix(1000, 0))
	backend := &memBackend{}
	engine := New(Config{
		AssetDir:      t.TempDir(), // empty: both asset loads fail quietly
		Backend:       backend,
		ReducedMotion: reducedMotion,
		Clock:         clock,
	}, zap.NewNop())

	stage := NewStage()
	anchors := mapAnchors{
		"header-title": {X: 4, Y: 4, W: 22, H: 4},
		"gear":         {X: 150, Y: 4, W: 2, H: 4},
	}
	engine.Init(stage, anchors)

	playCount := 0
	engine.audio.initSpeaker = func(beep.Format) error { return nil }
	engine.audio.play = func(beep.Streamer) { playCount++ }

	return &engineFixture{
		engine:    engine,
		stage:     stage,
		clock:     clock,
		playCount: &playCount,
		anchors:   anchors,
		backend:   backend,
	}
}

// makeAssetsAvailable simulates both async preloads having resolved
func (f *engineFixture) makeAssetsAvailable() {
	format := beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}
	buf := beep.NewBuffer(format)
	buf.Append(beep.Silence(64))
	f.engine.audio.SetClip(&AudioClip{Buffer: buf, Format: format})

	f.engine.mu.Lock()
	f.engine.audioAvailable = true
	f.engine.sprite = testSprite
	f.engine.ghostAvailable = true
	f.engine.mu.Unlock()
}

// TestEngineDisabledByDefault verifies the first-ever init with no
// stored record reports disabled
func TestEngineDisabledByDefault(t *testing.T) {
	f := newEngineFixture(t, false)
	assert.False(t, f.engine.IsEnabled())
}

// TestEngineTriggerWhileDisabled verifies a disabled trigger performs no
// stage mutation and no playback attempt
func TestEngineTriggerWhileDisabled(t *testing.T) {
	f := newEngineFixture(t, false)
	f.makeAssetsAvailable()

	f.engine.Trigger()

	assert.False(t, f.stage.Overlay().Active())
	assert.Empty(t, f.stage.Ghosts())
	assert.Zero(t, *f.playCount)
}

// TestEngineTriggerAllEffects verifies one enabled trigger with all
// assets available yields exactly one flash activation, one audio
// attempt, and one ghost element
func TestEngineTriggerAllEffects(t *testing.T) {
	f := newEngineFixture(t, false)
	f.makeAssetsAvailable()
	f.engine.SetEnabled(true)

	f.engine.Trigger()

	assert.True(t, f.stage.Overlay().Active())
	assert.Len(t, f.stage.Ghosts(), 1)
	assert.Equal(t, 1, *f.playCount)
}

// TestEngineSetEnabledPersists verifies the enabled flag round-trips
// through the store
func TestEngineSetEnabledPersists(t *testing.T) {
	f := newEngineFixture(t, false)

	f.engine.SetEnabled(true)
	assert.True(t, f.engine.IsEnabled())

	reloaded := NewPreferenceStore(f.backend, zap.NewNop())
	assert.True(t, reloaded.Load())
}

// TestEngineRapidRetrigger verifies N triggers within the flash window
// keep exactly one overlay node and one ghost, restart the flash, and
// attempt audio once per call
func TestEngineRapidRetrigger(t *testing.T) {
	f := newEngineFixture(t, false)
	f.makeAssetsAvailable()
	f.engine.SetEnabled(true)

	for i := 0; i < 3; i++ {
		f.engine.Trigger()
		f.clock.Advance(200 * time.Millisecond)
	}

	overlays := 0
	for _, e := range f.stage.Elements() {
		if _, ok := e.(*FlashOverlay); ok {
			overlays++
		}
	}
	assert.Equal(t, 1, overlays, "replays must reuse the single overlay node")
	assert.Len(t, f.stage.Ghosts(), 1, "overlap guard holds across rapid triggers")
	assert.Equal(t, 3, *f.playCount)
	assert.EqualValues(t, 3, f.stage.Overlay().Generation())

	// Deactivation reflects the last call: 1s after the third trigger
	f.clock.Advance(500 * time.Millisecond)
	assert.True(t, f.stage.Overlay().Active())
	f.clock.Advance(500 * time.Millisecond)
	assert.False(t, f.stage.Overlay().Active())
}

// TestEngineMissingAnchorDegradation verifies a missing anchor skips
// only the ghost: flash and audio still execute
func TestEngineMissingAnchorDegradation(t *testing.T) {
	f := newEngineFixture(t, false)
	f.makeAssetsAvailable()
	f.engine.SetEnabled(true)
	delete(f.anchors, "gear")

	f.engine.Trigger()

	assert.Empty(t, f.stage.Ghosts(), "ghost must be skipped without its anchors")
	assert.True(t, f.stage.Overlay().Active())
	assert.Equal(t, 1, *f.playCount)
}

// TestEngineAssetUnavailable verifies triggers before the preloads
// resolve simply omit those sub-effects
func TestEngineAssetUnavailable(t *testing.T) {
	f := newEngineFixture(t, false)
	f.engine.SetEnabled(true)

	f.engine.Trigger()

	assert.True(t, f.stage.Overlay().Active(), "flash needs no assets")
	assert.Empty(t, f.stage.Ghosts())
	assert.Zero(t, *f.playCount)
}

// TestEngineReducedMotion verifies the ghost is suppressed while the
// flash still activates with its gentler variant
func TestEngineReducedMotion(t *testing.T) {
	f := newEngineFixture(t, true)
	f.makeAssetsAvailable()
	f.engine.SetEnabled(true)

	f.engine.Trigger()

	assert.Empty(t, f.stage.Ghosts(), "reduced motion suppresses the ghost")
	overlay := f.stage.Overlay()
	assert.True(t, overlay.Active())

	peak := 0.0
	start := f.clock.Now()
	for ms := 0; ms <= 1000; ms += 25 {
		if b := overlay.BrightnessAt(start.Add(time.Duration(ms) * time.Millisecond)); b > peak {
			peak = b
		}
	}
	assert.InDelta(t, 0.3, peak, 0.01, "reduced variant replaces the pulses")
}

// TestEngineEffectDurations verifies the end-to-end timing scenario:
// flash clears within 1s, ghost removed within 8s of creation
func TestEngineEffectDurations(t *testing.T) {
	f := newEngineFixture(t, false)
	f.makeAssetsAvailable()
	f.engine.SetEnabled(true)

	f.engine.Trigger()
	require.True(t, f.stage.Overlay().Active())
	require.Len(t, f.stage.Ghosts(), 1)

	f.clock.Advance(time.Second)
	assert.False(t, f.stage.Overlay().Active())
	assert.Len(t, f.stage.Ghosts(), 1)

	f.clock.Advance(7 * time.Second)
	assert.Empty(t, f.stage.Ghosts())
}

// TestEngineTriggerBeforeInit verifies a trigger on an unwired engine is
// safe and does nothing
func TestEngineTriggerBeforeInit(t *testing.T) {
	engine := New(Config{
		AssetDir: t.TempDir(),
		Backend:  &memBackend{},
		Clock:    NewMockClock(time.Unix(1000, 0)),
	}, zap.NewNop())
	engine.SetEnabled(true)

	assert.NotPanics(t, func() { engine.Trigger() })
}
