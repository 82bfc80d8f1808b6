package ui

import (
	"sync"

	"promptbench/celebrate"
)

// Header band geometry: three terminal rows, content on the middle row
const (
	HeaderRows   = 3
	headerRowY   = 1
	titleCol     = 2
	gearColRight = 3 // gear sits this many columns in from the right edge
)

// Anchor ids the header exposes to the effect engine
const (
	AnchorHeaderTitle = "header-title"
	AnchorTitle       = "title"
	AnchorGear        = "gear"
)

// GearGlyph is the settings icon drawn at the right edge of the band
const GearGlyph = '⚙'

// Header owns the fixed band at the top of the screen: the application
// title on the left, the run status indicator in the middle, and the
// settings gear on the right. Anchor positions are reported live so the
// effect engine always sees the current layout.
type Header struct {
	mu     sync.Mutex
	title  string
	status string
	width  int
}

// NewHeader creates a header for the given title
func NewHeader(title string) *Header {
	return &Header{title: title, status: "ready"}
}

// Resize records the current screen width
func (h *Header) Resize(width int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.width = width
}

// SetStatus updates the status indicator text
func (h *Header) SetStatus(status string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.status = status
}

// Title returns the application title
func (h *Header) Title() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.title
}

// Status returns the current status indicator text
func (h *Header) Status() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

// statusCol centers the status text between title and gear
func (h *Header) statusCol() int {
	col := (h.width - len(h.status)) / 2
	if col < titleCol+len(h.title)+2 {
		col = titleCol + len(h.title) + 2
	}
	return col
}

// Anchor implements celebrate.AnchorResolver over the live layout.
// The title answers both the dedicated and the generic id; positions
// are computed fresh on every call.
func (h *Header) Anchor(id string) (celebrate.Rect, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.width <= 0 {
		return celebrate.Rect{}, false
	}

	switch id {
	case AnchorHeaderTitle, AnchorTitle:
		return celebrate.Rect{
			X: titleCol * celebrate.PxPerCell,
			Y: headerRowY * celebrate.PxPerRow,
			W: float64(len(h.title)) * celebrate.PxPerCell,
			H: celebrate.PxPerRow,
		}, true
	case AnchorGear:
		return celebrate.Rect{
			X: float64(h.width-gearColRight) * celebrate.PxPerCell,
			Y: headerRowY * celebrate.PxPerRow,
			W: celebrate.PxPerCell,
			H: celebrate.PxPerRow,
		}, true
	}
	return celebrate.Rect{}, false
}
