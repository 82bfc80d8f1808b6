package celebrate

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// flashDuration is the nominal length of one flash run; the deactivation
// timer always uses this exact value
const flashDuration = time.Second

// keyframe maps a fraction of the flash duration to a screen brightness.
// Brightness is evaluated piecewise-linearly between frames.
type keyframe struct {
	At         float64
	Brightness float64
}

// Full-severity flash: three brightness pulses over one second
var flashFrames = []keyframe{
	{At: 0.00, Brightness: 0.00},
	{At: 0.08, Brightness: 1.00},
	{At: 0.22, Brightness: 0.25},
	{At: 0.38, Brightness: 0.85},
	{At: 0.55, Brightness: 0.15},
	{At: 0.70, Brightness: 0.55},
	{At: 1.00, Brightness: 0.00},
}

// Reduced-motion variant: a single gentle fade instead of pulses
var flashFramesReduced = []keyframe{
	{At: 0.00, Brightness: 0.00},
	{At: 0.30, Brightness: 0.30},
	{At: 1.00, Brightness: 0.00},
}

// framesForMotion selects the keyframe table once, at overlay creation;
// the play path never branches on the motion preference
var framesForMotion = map[bool][]keyframe{
	false: flashFrames,
	true:  flashFramesReduced,
}

// FlashOverlay is the single full-viewport element the flash plays on.
// It never intercepts input: the renderer only reads brightness from it.
type FlashOverlay struct {
	mu         sync.Mutex
	frames     []keyframe
	active     bool
	startedAt  time.Time
	generation uint64
}

// NewFlashOverlay creates the overlay with the keyframe table matching
// the motion preference
func NewFlashOverlay(reducedMotion bool) *FlashOverlay {
	return &FlashOverlay{frames: framesForMotion[reducedMotion]}
}

func (o *FlashOverlay) element() {}

// restart forces the animation back to its first frame. The active state
// is dropped and re-applied under one lock so a renderer mid-frame never
// observes a half-restarted run; the generation bump tells renderers that
// any run they were tracking is gone.
func (o *FlashOverlay) restart(now time.Time) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.active = false
	o.generation++
	o.active = true
	o.startedAt = now
}

func (o *FlashOverlay) deactivate() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.active = false
}

// Active reports whether a flash run is in flight
func (o *FlashOverlay) Active() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.active
}

// Generation increments on every restart
func (o *FlashOverlay) Generation() uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.generation
}

// BrightnessAt evaluates the keyframe curve at the given time.
// Inactive or out-of-window times yield zero.
func (o *FlashOverlay) BrightnessAt(now time.Time) float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.active {
		return 0
	}
	p := float64(now.Sub(o.startedAt)) / float64(flashDuration)
	if p <= 0 || p >= 1 {
		return 0
	}
	for i := 1; i < len(o.frames); i++ {
		if p > o.frames[i].At {
			continue
		}
		prev, next := o.frames[i-1], o.frames[i]
		span := next.At - prev.At
		if span <= 0 {
			return next.Brightness
		}
		t := (p - prev.At) / span
		return prev.Brightness + (next.Brightness-prev.Brightness)*t
	}
	return 0
}

// FlashController drives the full-viewport brightness pulse.
// Restart-safe: a play while a run is active cancels the pending
// deactivation and restarts the run from frame zero.
type FlashController struct {
	mu         sync.Mutex
	overlay    *FlashOverlay
	clock      Clock
	log        *zap.Logger
	deactivate Timer
}

// NewFlashController creates an unarmed controller
func NewFlashController(clock Clock, log *zap.Logger) *FlashController {
	return &FlashController{clock: clock, log: log}
}

// Arm binds the controller to its overlay element
func (c *FlashController) Arm(overlay *FlashOverlay) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.overlay = overlay
}

// Play starts (or restarts) the flash and rearms the deactivation timer.
// Unarmed controllers warn and no-op; Play never fails outward.
func (c *FlashController) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.overlay == nil {
		c.log.Warn("flash overlay not armed, skipping flash")
		return
	}

	// A stale timer from a previous run must not clobber this one
	if c.deactivate != nil {
		c.deactivate.Stop()
	}

	c.overlay.restart(c.clock.Now())
	c.deactivate = c.clock.AfterFunc(flashDuration, c.overlay.deactivate)
}
