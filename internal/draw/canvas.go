package draw

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
)

// Canvas is a colour drawing buffer with 2x vertical resolution using half-block
// characters. It scales from logical coordinates to terminal pixels and only
// redraws the cells that changed since the previous Render.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x]

	// Cells sent by the previous Render, used to skip unchanged output.
	prev        []cell
	forceRedraw bool

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area inside a larger terminal.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	// Reusable buffers to reduce allocations
	renderBuf       strings.Builder
	scaledBuf       []Point
	intersectionBuf []float64
}

// cell is the pair of sub-pixels shown by one terminal character.
type cell struct {
	top, bottom Color
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by the game field.
// termWidth/Height are the terminal dimensions of the render area.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
// A size change forces a full redraw.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]Color, subPixelHeight*termWidth)
		c.prev = make([]cell, termWidth*termHeight)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
		c.forceRedraw = true
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.forceRedraw = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render send every non-empty cell. Call it after
// clearing the terminal.
func (c *Canvas) ForceRedraw() {
	c.forceRedraw = true
	clear(c.prev)
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

// SetFloat sets a pixel using float logical coordinates (applies scaling).
func (c *Canvas) SetFloat(x, y float64, col Color) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	c.setPixel(px, py, col)
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point, col Color) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// FillCircle fills a circle given in logical coordinates. Non-square scaling
// turns it into an ellipse in pixel space. Tiny circles still cover the pixel
// under their center.
func (c *Canvas) FillCircle(cx, cy, r float64, col Color) {
	px, py := cx*c.scaleX, cy*c.scaleY
	rx, ry := r*c.scaleX, r*c.scaleY

	c.setPixel(int(math.Floor(px)), int(math.Floor(py)), col)
	if rx <= 0 || ry <= 0 {
		return
	}

	yStart := int(math.Floor(py - ry))
	yEnd := int(math.Ceil(py + ry))
	for y := yStart; y <= yEnd; y++ {
		dy := (float64(y) + 0.5 - py) / ry
		if dy < -1 || dy > 1 {
			continue
		}
		half := rx * math.Sqrt(1-dy*dy)
		xStart := int(math.Ceil(px - half - 0.5))
		xEnd := int(math.Floor(px + half - 0.5))
		for x := xStart; x <= xEnd; x++ {
			c.setPixel(x, y, col)
		}
	}
}

// FillRect fills an axis-aligned rectangle given in logical coordinates.
func (c *Canvas) FillRect(x, y, w, h float64, col Color) {
	x0 := int(math.Floor(x * c.scaleX))
	y0 := int(math.Floor(y * c.scaleY))
	x1 := int(math.Ceil((x + w) * c.scaleX))
	y1 := int(math.Ceil((y + h) * c.scaleY))
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.setPixel(px, py, col)
		}
	}
}

// DrawPolygon draws a polygon on the canvas.
// If filled is true, the interior is filled using scanline algorithm.
func (c *Canvas) DrawPolygon(points []Point, col Color, filled bool) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points, col)
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], col)
	}
}

// fillPolygon fills a polygon using scanline algorithm in pixel space.
func (c *Canvas) fillPolygon(points []Point, col Color) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]
	for i, p := range points {
		scaled[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]
		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		sort.Float64s(intersections)
		for i := 0; i+1 < len(intersections); i += 2 {
			for x := int(math.Ceil(intersections[i])); x <= int(math.Floor(intersections[i+1])); x++ {
				c.setPixel(x, y, col)
			}
		}
	}
}

// maxChunkSize is the maximum bytes to write at once. It stays under a typical
// 1500-byte MTU to leave room for SSH and TCP framing.
const maxChunkSize = 1400

// Render writes the cells that changed since the previous Render using
// half-block characters with 24-bit colours.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()

	var fg, bg Color // NoColor means the terminal default
	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			cur := cell{top: c.pixels[topOffset+col], bottom: c.pixels[bottomOffset+col]}
			idx := row*c.termWidth + col

			if c.forceRedraw {
				if cur == (cell{}) {
					c.prev[idx] = cur
					continue
				}
			} else if c.prev[idx] == cur {
				continue
			}
			c.prev[idx] = cur

			fmt.Fprintf(&c.renderBuf, "\033[%d;%dH", row+1+c.offsetRow, col+1+c.offsetCol)
			c.writeCell(cur, &fg, &bg)
		}
	}
	c.forceRedraw = false

	if c.renderBuf.Len() == 0 {
		return nil
	}
	c.renderBuf.WriteString("\033[0m")
	return writeChunks(w, c.renderBuf.String())
}

// writeCell emits the glyph for a cell, switching colours only when needed.
func (c *Canvas) writeCell(cur cell, fg, bg *Color) {
	setFG := func(col Color) {
		if *fg != col {
			r, g, b := col.RGB()
			fmt.Fprintf(&c.renderBuf, "\033[38;2;%d;%d;%dm", r, g, b)
			*fg = col
		}
	}
	setBG := func(col Color) {
		if *bg == col {
			return
		}
		if !col.IsSet() {
			c.renderBuf.WriteString("\033[49m")
		} else {
			r, g, b := col.RGB()
			fmt.Fprintf(&c.renderBuf, "\033[48;2;%d;%d;%dm", r, g, b)
		}
		*bg = col
	}

	top, bottom := cur.top.IsSet(), cur.bottom.IsSet()
	switch {
	case top && bottom && cur.top == cur.bottom:
		setFG(cur.top)
		c.renderBuf.WriteRune(BlockFull)
	case top && bottom:
		setFG(cur.top)
		setBG(cur.bottom)
		c.renderBuf.WriteRune(BlockUpperHalf)
	case top:
		setFG(cur.top)
		setBG(NoColor)
		c.renderBuf.WriteRune(BlockUpperHalf)
	case bottom:
		setFG(cur.bottom)
		setBG(NoColor)
		c.renderBuf.WriteRune(BlockLowerHalf)
	default:
		setBG(NoColor)
		c.renderBuf.WriteRune(BlockEmpty)
	}
}

// TerminalWidth returns the render area column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the render area row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// writeChunks writes s in chunks of at most maxChunkSize bytes.
func writeChunks(w io.Writer, s string) error {
	for len(s) > 0 {
		chunk := s
		if len(chunk) > maxChunkSize {
			chunk = s[:maxChunkSize]
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		s = s[len(chunk):]
	}
	return nil
}
