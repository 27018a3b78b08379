package render

import (
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/tomz197/forestshooter/internal/draw"
	"github.com/tomz197/forestshooter/internal/loop"
	"github.com/tomz197/forestshooter/internal/object"
)

// skyBands is the number of horizontal bands the background gradient is drawn with.
const skyBands = 48

// fallback size when the terminal cannot report one
const (
	fallbackCols = 80
	fallbackRows = 24
)

// Line is one row of text on a full-screen message.
type Line struct {
	Text  string
	Color string // Hex colour; empty uses the terminal default
}

// Terminal draws frames as coloured half blocks on an ANSI terminal. The first
// row above the field holds the score. It is safe for use by the tick goroutine
// and a host goroutine at the same time.
type Terminal struct {
	mu     sync.Mutex
	out    io.Writer
	field  object.Field
	size   draw.TermSizeFunc
	canvas *draw.Canvas
	cw     *draw.ChunkWriter

	termW, termH int
	needClear    bool
	scene        *scenery
	err          error
}

// NewTerminal creates a terminal renderer writing to w. sizeFunc reports the
// terminal size and is queried on every frame so resizes are picked up.
func NewTerminal(w io.Writer, field object.Field, sizeFunc draw.TermSizeFunc) *Terminal {
	if sizeFunc == nil {
		sizeFunc = draw.DefaultTermSizeFunc
	}
	t := &Terminal{
		out:       w,
		field:     field,
		size:      sizeFunc,
		canvas:    draw.NewScaledCanvas(1, 1, field.Width, field.Height),
		cw:        draw.NewChunkWriter(w, 0, 0),
		needClear: true,
	}
	return t
}

// Render draws one frame. Write errors are kept for Err.
func (t *Terminal) Render(f *loop.Frame) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.layout()
	if t.needClear {
		t.cw.WriteString("\033[H\033[2J")
		t.canvas.ForceRedraw()
		t.needClear = false
	}

	t.scene = sceneryFor(t.scene, f.Field, f.BackgroundSeed)
	c := t.canvas
	c.Clear()
	t.drawBackground()
	for i := range f.Enemies {
		drawSpirit(c, &f.Enemies[i])
	}
	for i := range f.Projectiles {
		p := &f.Projectiles[i]
		c.FillCircle(p.X, p.Y, p.Radius*2.4, blend(skyAt(p.Y/f.Field.Height), draw.Hex(seedGlow), 0.7))
		c.SetFloat(p.X, p.Y, draw.Hex(seedCore))
	}
	for i := range f.Particles {
		p := &f.Particles[i]
		under := skyAt(p.Y / f.Field.Height)
		c.FillCircle(p.X, p.Y, max(0.8, p.Radius*1.7), blend(under, draw.Hex(p.Color), p.Alpha))
	}
	drawMushroom(c, &f.Player, capColor(f.BackgroundSeed))

	if err := c.Render(t.cw); err != nil {
		t.err = err
		return
	}
	t.drawHUD(f)
	if err := t.cw.Flush(); err != nil {
		t.err = err
	}
}

// layout fits the canvas into the current terminal, one row below the HUD.
func (t *Terminal) layout() {
	w, h, err := t.size()
	if err != nil || w <= 0 || h <= 0 {
		w, h = fallbackCols, fallbackRows
	}
	if w == t.termW && h == t.termH {
		return
	}
	t.termW, t.termH = w, h

	rw, rh, offCol, offRow := draw.FitAspect(w, max(h-1, 1), t.field.Width, t.field.Height)
	t.canvas.Resize(rw, rh)
	t.canvas.SetOffset(offCol, offRow+1)
	t.cw.SetOffset(offCol, offRow)
	t.needClear = true
}

func (t *Terminal) drawBackground() {
	c := t.canvas
	bandH := t.field.Height / skyBands
	for i := range skyBands {
		y := float64(i) * bandH
		c.FillRect(0, y, t.field.Width, bandH+1, skyAt((y+bandH/2)/t.field.Height))
	}
	for _, ff := range t.scene.fireflies {
		under := skyAt(ff.y / t.field.Height)
		c.FillCircle(ff.x, ff.y, ff.radius*0.5, blend(under, draw.Hex(ff.color), ff.alpha*2))
	}
	trunk := draw.Hex(treeColor)
	for _, tr := range t.scene.trees {
		top := t.field.Height - tr.height
		col := blend(skyAt(top/t.field.Height), trunk, tr.alpha)
		c.FillRect(tr.x, top, tr.width, tr.height, col)
		c.FillCircle(tr.x+tr.width/2, top, tr.width*1.6, col)
		c.FillCircle(tr.x, top+10, tr.width, col)
		c.FillCircle(tr.x+tr.width, top+10, tr.width, col)
	}
}

// drawHUD writes the score line above the field.
func (t *Terminal) drawHUD(f *loop.Frame) {
	width := t.canvas.TerminalWidth()
	t.cw.WriteColorAt(1, 1, fmt.Sprintf("Score: %-6d", f.Score), draw.Hex(scoreColor))

	status := "                "
	switch {
	case f.BossDefeated:
		status = "Guardian saved! "
	case f.BossActive():
		status = "Forest Guardian!"
	}
	col := max(width-len(status)+1, 14)
	t.cw.WriteColorAt(col, 1, status, draw.Hex(savedColor))
}

// ShowScreen clears the terminal and shows lines centered on it. The next
// Render repaints the whole field.
func (t *Terminal) ShowScreen(lines []Line) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, h, err := t.size()
	if err != nil || w <= 0 || h <= 0 {
		w, h = fallbackCols, fallbackRows
	}
	cw := draw.NewChunkWriter(t.out, 0, 0)
	cw.WriteString("\033[H\033[2J")
	top := max((h-len(lines))/2, 1)
	for i, l := range lines {
		fg := draw.NoColor
		if l.Color != "" {
			fg = draw.Hex(l.Color)
		}
		cw.WriteCentered(w, top+i, l.Text, fg)
	}
	t.needClear = true
	if err := cw.Flush(); err != nil {
		t.err = err
		return err
	}
	return nil
}

// Err returns the last write error, if any.
func (t *Terminal) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// drawSpirit draws an enemy as a round forest spirit.
func drawSpirit(c *draw.Canvas, e *object.Enemy) {
	r := e.Radius
	body, aura, auraScale := spiritBody, spiritAura, 1.25
	if e.IsBoss() {
		body, aura, auraScale = bossBody, bossAura, 1.55
	}
	c.FillCircle(e.X, e.Y, r*auraScale, draw.Hex(aura))
	c.FillCircle(e.X, e.Y, r, draw.Hex(body))

	for _, side := range []float64{-1, 1} {
		leaf := draw.Hex(variantColor(ForestGreens, e.Variant, int(side+1)))
		c.DrawPolygon([]draw.Point{
			{X: e.X + side*r*0.7, Y: e.Y - r*0.7},
			{X: e.X + side*r*1.1, Y: e.Y - r*1.1},
			{X: e.X + side*r*0.3, Y: e.Y - r*1.25},
		}, leaf, true)
	}

	for i := range flowerCount(e) {
		fx, fy := flowerOffset(e, i)
		c.FillCircle(e.X+fx, e.Y+fy, r*0.18, draw.Hex(variantColor(ForestFlowers, e.Variant, i)))
	}

	eye := draw.Hex(spiritEye)
	c.FillCircle(e.X-r*0.33, e.Y-r*0.22, r*0.11, eye)
	c.FillCircle(e.X+r*0.33, e.Y-r*0.22, r*0.11, eye)
	c.FillCircle(e.X-r*0.4, e.Y+r*0.3, r*0.12, blend(draw.Hex(body), draw.Hex(blush), 0.5))
	c.FillCircle(e.X+r*0.4, e.Y+r*0.3, r*0.12, blend(draw.Hex(body), draw.Hex(blush), 0.5))

	if e.IsBoss() {
		c.FillCircle(e.X+r*0.8, e.Y+r*0.6, r*0.24, draw.Hex(moonGlow))
	}
}

// flowerCount is 5 for the boss and 2 or 3 for basic spirits.
func flowerCount(e *object.Enemy) int {
	if e.IsBoss() {
		return 5
	}
	return 2 + e.Variant%2
}

// flowerOffset returns the position of flower i relative to the spirit's center.
func flowerOffset(e *object.Enemy, i int) (float64, float64) {
	step := math.Pi / 2.0
	if e.IsBoss() {
		step = math.Pi / 2.6
	}
	ang := -math.Pi/6 + float64(i)*step
	return math.Cos(ang) * e.Radius * 0.68, math.Sin(ang)*e.Radius*0.68 - e.Radius*0.46
}

// drawMushroom draws the player.
func drawMushroom(c *draw.Canvas, p *object.Player, capHex string) {
	r := p.Radius
	stem := draw.Hex(stemColor)
	c.DrawPolygon(ellipsePoints(p.X, p.Y+r*0.28, r*0.55, r*0.74, 0, 2*math.Pi, 16), stem, true)
	c.DrawPolygon(ellipsePoints(p.X, p.Y-r*0.35, r*1.04, r*0.64, math.Pi, 2*math.Pi, 12), draw.Hex(capHex), true)
	for _, s := range capSpots {
		c.FillCircle(p.X+s[0]*r, p.Y+s[1]*r, r*0.17, stem)
	}
	eye := draw.Hex(mushroomEye)
	c.FillCircle(p.X-r*0.22, p.Y+r*0.1, r*0.1, eye)
	c.FillCircle(p.X+r*0.22, p.Y+r*0.1, r*0.1, eye)
}

// capSpots are the mushroom cap's spots relative to the center, in radii.
var capSpots = func() [][2]float64 {
	spots := make([][2]float64, 4)
	for i := range spots {
		a := (float64(i) + 0.5) * math.Pi / 2
		spots[i] = [2]float64{math.Cos(a) * 0.4, -0.5 + math.Sin(a)*0.22}
	}
	return spots
}()

// ellipsePoints approximates an elliptical arc from angle a0 to a1 with n segments.
func ellipsePoints(cx, cy, rx, ry, a0, a1 float64, n int) []draw.Point {
	pts := make([]draw.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		a := a0 + (a1-a0)*float64(i)/float64(n)
		pts = append(pts, draw.Point{X: cx + math.Cos(a)*rx, Y: cy + math.Sin(a)*ry})
	}
	return pts
}
