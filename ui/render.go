package ui

import (
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"promptbench/celebrate"
)

var (
	styleDefault = tcell.StyleDefault.
			Foreground(tcell.NewRGBColor(200, 200, 200)).
			Background(tcell.NewRGBColor(16, 16, 24))
	styleTitle  = styleDefault.Foreground(tcell.NewRGBColor(120, 220, 255)).Bold(true)
	styleStatus = styleDefault.Foreground(tcell.NewRGBColor(255, 215, 120))
	styleGear   = styleDefault.Foreground(tcell.NewRGBColor(160, 160, 180))
	styleRule   = styleDefault.Foreground(tcell.NewRGBColor(60, 60, 90))
	styleHelp   = styleDefault.Foreground(tcell.NewRGBColor(110, 110, 130))
	styleBody   = styleDefault

	ghostColor = tcell.NewRGBColor(190, 240, 255)
)

// Renderer composites the header band, the host body, and the effect
// engine's stage elements onto the screen each frame
type Renderer struct {
	screen tcell.Screen
	header *Header
	stage  *celebrate.Stage
}

// NewRenderer creates a renderer over the given screen
func NewRenderer(screen tcell.Screen, header *Header, stage *celebrate.Stage) *Renderer {
	return &Renderer{screen: screen, header: header, stage: stage}
}

// Frame draws one complete frame for the given time
func (r *Renderer) Frame(now time.Time, bodyLines []string) {
	r.screen.Fill(' ', styleDefault)
	w, h := r.screen.Size()
	r.header.Resize(w)

	// Ghost stacking order is phase driven: in front of the status text
	// on the outbound leg, behind it on the return leg and fade
	var ghostSnap *celebrate.GhostSnapshot
	var ghostNode *celebrate.GhostNode
	if ghosts := r.stage.Ghosts(); len(ghosts) > 0 {
		snap := ghosts[0].SnapshotAt(now)
		if snap.Phase != celebrate.GhostRemoved {
			ghostSnap = &snap
			ghostNode = ghosts[0]
		}
	}

	if ghostSnap != nil && ghostSnap.Behind {
		r.drawGhost(ghostNode, ghostSnap, w)
	}

	r.drawHeader(w)

	if ghostSnap != nil && !ghostSnap.Behind {
		r.drawGhost(ghostNode, ghostSnap, w)
	}

	r.drawBody(bodyLines, w, h)

	// Flash last: a full-viewport brightness wash over everything
	if overlay := r.stage.Overlay(); overlay != nil {
		if b := overlay.BrightnessAt(now); b > 0 {
			r.applyFlash(w, h, b)
		}
	}

	r.screen.Show()
}

func (r *Renderer) drawHeader(w int) {
	drawText(r.screen, titleCol, headerRowY, r.header.Title(), styleTitle)
	drawText(r.screen, r.header.statusCol(), headerRowY, r.header.Status(), styleStatus)
	if w > gearColRight {
		r.screen.SetContent(w-gearColRight, headerRowY, GearGlyph, nil, styleGear)
	}
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, HeaderRows-1, '─', nil, styleRule)
	}
}

func (r *Renderer) drawBody(lines []string, w, h int) {
	y := HeaderRows + 1
	for _, line := range lines {
		if y >= h-1 {
			break
		}
		drawText(r.screen, 2, y, line, styleBody)
		y++
	}
	drawText(r.screen, 2, h-1, "r: run test   e: toggle celebration   q: quit", styleHelp)
}

func (r *Renderer) drawGhost(node *celebrate.GhostNode, snap *celebrate.GhostSnapshot, w int) {
	cells := node.Sprite.Cells
	if !snap.FacingRight {
		cells = node.Sprite.Mirrored()
	}

	col := int(math.Round(snap.XPx / celebrate.PxPerCell))
	row := headerRowY + int(math.Round(snap.BobPx/celebrate.PxPerRow))
	if row < 0 {
		row = 0
	}
	if row >= HeaderRows-1 {
		row = HeaderRows - 2
	}

	// Opacity fades the glyph toward the background color
	style := styleDefault.Foreground(fadeColor(ghostColor, snap.Opacity))
	for i, c := range cells {
		x := col + i
		if x < 0 || x >= w {
			continue
		}
		r.screen.SetContent(x, row, c, nil, style)
	}
}

// applyFlash brightens every cell toward white, read-modify-write
func (r *Renderer) applyFlash(w, h int, brightness float64) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			ch, comb, style, _ := r.screen.GetContent(x, y)
			fg, bg, attr := style.Decompose()
			brightened := tcell.StyleDefault.
				Foreground(blendTowardWhite(fg, brightness)).
				Background(blendTowardWhite(bg, brightness*0.6)).
				Attributes(attr)
			r.screen.SetContent(x, y, ch, comb, brightened)
		}
	}
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, c := range text {
		s.SetContent(x, y, c, nil, style)
		x++
	}
}

// blendTowardWhite moves a color toward full white by t in [0,1]
func blendTowardWhite(c tcell.Color, t float64) tcell.Color {
	red, green, blue := rgbOf(c)
	blend := func(v int32) int32 {
		return v + int32(float64(255-v)*t)
	}
	return tcell.NewRGBColor(blend(red), blend(green), blend(blue))
}

// fadeColor scales a color toward the background by opacity in [0,1]
func fadeColor(c tcell.Color, opacity float64) tcell.Color {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	red, green, blue := rgbOf(c)
	return tcell.NewRGBColor(
		int32(float64(red)*opacity),
		int32(float64(green)*opacity),
		int32(float64(blue)*opacity),
	)
}

func rgbOf(c tcell.Color) (int32, int32, int32) {
	if !c.Valid() {
		return 0, 0, 0
	}
	return c.RGB()
}
