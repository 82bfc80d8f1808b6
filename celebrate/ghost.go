package celebrate

import (
	"math"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Ghost run timing. The phase boundaries are fractions of the total
// duration; the fade occupies the final eighth, so with an 8s run the
// fade lasts exactly 1s. The removal timer uses the nominal total.
const (
	ghostDuration = 8 * time.Second

	ghostFlipAtGearFrac = 0.625
	ghostFlipBackFrac   = 0.875

	// Vertical bob: a repeating oscillation independent of horizontal
	// progress, giving the floating gait
	ghostBobAmplitudePx = 3.0
	ghostBobHz          = 1.25
)

// Ghost custom property names, bound per run for the declarative layer
const (
	VarStartX  = "--start-x"
	VarGearX   = "--gear-x"
	VarMiddleX = "--middle-x"
	VarEndX    = "--end-x"
)

// GhostPhase enumerates the ghost run's state machine
type GhostPhase int

const (
	GhostIdle GhostPhase = iota
	GhostCreated
	GhostRightwardFloat
	GhostLeftwardFloat
	GhostFadingOut
	GhostRemoved
)

// String implements fmt.Stringer for logs and test failures
func (p GhostPhase) String() string {
	switch p {
	case GhostIdle:
		return "idle"
	case GhostCreated:
		return "created"
	case GhostRightwardFloat:
		return "rightward-float"
	case GhostLeftwardFloat:
		return "leftward-float"
	case GhostFadingOut:
		return "fading-out"
	case GhostRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// GhostNode is one in-flight ghost element on the stage. The waypoints
// are bound as per-run custom properties; the renderer reads geometry
// through SnapshotAt and never mutates the node.
type GhostNode struct {
	Sprite    Sprite
	Vars      map[string]float64
	createdAt time.Time
}

func (n *GhostNode) element() {}

// GhostSnapshot is the node's visual state at a point in time
type GhostSnapshot struct {
	Phase       GhostPhase
	XPx         float64
	BobPx       float64
	Opacity     float64
	FacingRight bool
	// Behind is true when the ghost renders behind the status text
	// (the return leg and the fade hold)
	Behind bool
}

// SnapshotAt computes phase, position, facing, stacking and opacity for
// the given time. Pure over the node's bound vars and creation time.
func (n *GhostNode) SnapshotAt(now time.Time) GhostSnapshot {
	t := float64(now.Sub(n.createdAt)) / float64(ghostDuration)
	bobSeconds := now.Sub(n.createdAt).Seconds()
	bob := ghostBobAmplitudePx * math.Sin(2*math.Pi*ghostBobHz*bobSeconds)

	start := n.Vars[VarStartX]
	gear := n.Vars[VarGearX]
	middle := n.Vars[VarMiddleX]

	switch {
	case t < 0:
		return GhostSnapshot{Phase: GhostCreated, XPx: start, BobPx: bob, Opacity: 1, FacingRight: true}
	case t == 0:
		return GhostSnapshot{Phase: GhostCreated, XPx: start, BobPx: bob, Opacity: 1, FacingRight: true}
	case t < ghostFlipAtGearFrac:
		p := t / ghostFlipAtGearFrac
		return GhostSnapshot{
			Phase:       GhostRightwardFloat,
			XPx:         lerp(start, gear, p),
			BobPx:       bob,
			Opacity:     1,
			FacingRight: true,
		}
	case t < ghostFlipBackFrac:
		p := (t - ghostFlipAtGearFrac) / (ghostFlipBackFrac - ghostFlipAtGearFrac)
		return GhostSnapshot{
			Phase:       GhostLeftwardFloat,
			XPx:         lerp(gear, middle, p),
			BobPx:       bob,
			Opacity:     1,
			FacingRight: false,
			Behind:      true,
		}
	case t < 1:
		p := (t - ghostFlipBackFrac) / (1 - ghostFlipBackFrac)
		return GhostSnapshot{
			Phase:       GhostFadingOut,
			XPx:         middle,
			BobPx:       bob,
			Opacity:     1 - p,
			FacingRight: true,
			Behind:      true,
		}
	default:
		return GhostSnapshot{Phase: GhostRemoved, XPx: middle, Opacity: 0, FacingRight: true, Behind: true}
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// GhostAnimationEngine owns the ghost element's lifecycle: creation,
// overlap guard and teardown. At most one run exists at a time; the
// removal timer set at creation is the authoritative terminator and
// releases the guard unconditionally.
type GhostAnimationEngine struct {
	mu            sync.Mutex
	clock         Clock
	log           *zap.Logger
	stage         *Stage
	reducedMotion bool
	animating     bool
}

// NewGhostAnimationEngine creates an engine parenting its runs to stage
func NewGhostAnimationEngine(stage *Stage, clock Clock, reducedMotion bool, log *zap.Logger) *GhostAnimationEngine {
	return &GhostAnimationEngine{
		stage:         stage,
		clock:         clock,
		reducedMotion: reducedMotion,
		log:           log,
	}
}

// Animating reports whether a run's guard is currently set
func (e *GhostAnimationEngine) Animating() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.animating
}

// Play starts one ghost run. Silent no-op when the sprite is missing,
// reduced motion is preferred, or a run is already in flight — none of
// these are errors.
func (e *GhostAnimationEngine) Play(sprite *Sprite, path GhostPath) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if sprite == nil || e.reducedMotion || e.animating {
		return
	}

	node := &GhostNode{
		Sprite: *sprite,
		Vars: map[string]float64{
			VarStartX:  path.StartX,
			VarGearX:   path.GearX,
			VarMiddleX: path.MiddleX,
			VarEndX:    path.EndX,
		},
		createdAt: e.clock.Now(),
	}
	e.stage.Append(node)
	e.animating = true

	// Authoritative terminator: removes the node and clears the guard
	// even if the visual animation was skipped or stalled
	e.clock.AfterFunc(ghostDuration, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.stage.Remove(node)
		e.animating = false
	})
}
