package draw

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// ChunkWriter accumulates text for terminal output and writes in chunks for optimal
// network flow (e.g. over SSH). Use MoveCursor, WriteString, WriteAt to accumulate,
// then Flush to write to the underlying writer. Implements io.Writer for Canvas.Render.
type ChunkWriter struct {
	buf    strings.Builder
	bufw   *bufio.Writer // Buffers writes to underlying writer for fewer syscalls
	numBuf [20]byte      // Scratch buffer for allocation-free integer formatting
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter that writes to w. offsetCol and offsetRow
// are added to all MoveCursor coordinates (for canvas centering).
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		bufw:   bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the cursor offset (e.g. after terminal resize).
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// MoveCursor appends an ANSI cursor position sequence. col and row are 1-based
// canvas coordinates; offset is applied automatically.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(row+cw.offRow), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(col+cw.offCol), 10))
	cw.buf.WriteByte('H')
}

// Write implements io.Writer for use with Canvas.Render.
func (cw *ChunkWriter) Write(p []byte) (n int, err error) {
	return cw.buf.Write(p)
}

// WriteString appends a string to the buffer.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf.WriteString(s)
}

// WriteAt writes a string at a specific position. col and row are 1-based canvas
// coordinates; offset is applied automatically.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.buf.WriteString(s)
}

// WriteColorAt is WriteAt in a foreground colour. The colour is reset afterwards.
func (cw *ChunkWriter) WriteColorAt(col, row int, s string, fg Color) {
	cw.MoveCursor(col, row)
	if fg.IsSet() {
		r, g, b := fg.RGB()
		fmt.Fprintf(&cw.buf, "\033[1;38;2;%d;%d;%dm%s\033[0m", r, g, b, s)
		return
	}
	cw.buf.WriteString(s)
}

// WriteCentered writes s centered on row within a area of width columns.
func (cw *ChunkWriter) WriteCentered(width, row int, s string, fg Color) {
	col := max((width-len([]rune(s)))/2+1, 1)
	cw.WriteColorAt(col, row, s, fg)
}

// Len returns the number of buffered bytes.
func (cw *ChunkWriter) Len() int {
	return cw.buf.Len()
}

// Ensure ChunkWriter satisfies io.Writer.
var _ io.Writer = (*ChunkWriter)(nil)

// Flush writes the accumulated buffer to the underlying writer in chunks,
// then resets the buffer. Uses the same chunk size as Canvas.Render.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	if err := writeChunks(cw.bufw, data); err != nil {
		return err
	}
	return cw.bufw.Flush()
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// FixedTermSize returns a TermSizeFunc that always reports width x height.
func FixedTermSize(width, height int) TermSizeFunc {
	return func() (int, int, error) {
		return width, height, nil
	}
}

// FitAspect picks the largest render area inside a termWidth x termHeight
// terminal that keeps the logical aspect ratio (a character cell holds two
// square-ish sub-pixels), and the offsets that center it.
func FitAspect(termWidth, termHeight int, logicalWidth, logicalHeight float64) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	aspect := logicalWidth / logicalHeight

	renderHeight = termHeight
	renderWidth = int(math.Round(float64(renderHeight) * 2 * aspect))
	if renderWidth > termWidth {
		renderWidth = termWidth
		renderHeight = int(math.Round(float64(renderWidth) / (2 * aspect)))
	}
	renderWidth = max(renderWidth, 1)
	renderHeight = max(min(renderHeight, termHeight), 1)

	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}
