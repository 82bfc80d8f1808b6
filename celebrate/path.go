package celebrate

// Horizontal geometry runs in sub-cell pixel units so waypoints can sit
// between terminal columns: 2 px per column, 4 px per row.
const (
	PxPerCell = 2.0
	PxPerRow  = 4.0

	// Fixed visual gap between an anchor edge and the ghost
	anchorGapPx = 10.0
)

// Rect is an anchor bounding box in pixel space
type Rect struct {
	X, Y, W, H float64
}

// Right returns the x coordinate of the right edge
func (r Rect) Right() float64 {
	return r.X + r.W
}

// AnchorResolver reports the live bounding box of a named layout anchor.
// Positions are read fresh on every call; the resolver never caches.
type AnchorResolver interface {
	Anchor(id string) (Rect, bool)
}

// GhostPath holds the waypoints of one ghost run, in pixel offsets.
// EndX always equals StartX: the ghost returns toward its origin.
type GhostPath struct {
	StartX  float64
	GearX   float64
	MiddleX float64
	EndX    float64
}

// ResolvePath computes the ghost waypoints from the current anchor layout.
// Title candidates are tried in order; the host header may or may not expose
// the dedicated title id. A missing title or gear anchor yields ok=false,
// which skips the ghost run entirely — that is expected degradation, not an
// error. Recomputed on every trigger because anchors move with the layout.
func ResolvePath(anchors AnchorResolver, titleCandidates []string, gearID string, ghostWidth float64) (GhostPath, bool) {
	var titleRect Rect
	found := false
	for _, id := range titleCandidates {
		if r, ok := anchors.Anchor(id); ok {
			titleRect = r
			found = true
			break
		}
	}
	if !found {
		return GhostPath{}, false
	}

	gearRect, ok := anchors.Anchor(gearID)
	if !ok {
		return GhostPath{}, false
	}

	startX := titleRect.Right() + anchorGapPx
	gearX := gearRect.X - ghostWidth - anchorGapPx
	return GhostPath{
		StartX:  startX,
		GearX:   gearX,
		MiddleX: startX + (gearX-startX)/2,
		EndX:    startX,
	}, true
}
