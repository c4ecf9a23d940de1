package draw

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// ChunkWriter accumulates one frame of terminal output and flushes it in
// chunks. It implements io.Writer so a Canvas can render into it.
type ChunkWriter struct {
	buf    strings.Builder
	bufw   *bufio.Writer
	numBuf [20]byte
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter over w. The offsets are added to every
// WriteAt position.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		bufw:   bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the cursor offset after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// Write implements io.Writer.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	return cw.buf.Write(p)
}

// WriteString appends raw output.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf.WriteString(s)
}

// WriteAt writes s starting at a 1-based canvas column and row.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(row+cw.offRow), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(col+cw.offCol), 10))
	cw.buf.WriteByte('H')
	cw.buf.WriteString(s)
}

// Flush writes the accumulated frame and resets the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	if err := writeChunked(cw.bufw, data); err != nil {
		return err
	}
	return cw.bufw.Flush()
}

var _ io.Writer = (*ChunkWriter)(nil)

// TermSizeFunc returns the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of the process's stdout terminal.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// Fit clamps a terminal size to maxCols×maxRows and returns the centering
// offset of the clamped area.
func Fit(cols, rows, maxCols, maxRows int) (width, height, offsetCol, offsetRow int) {
	width = min(cols, maxCols)
	height = min(rows, maxRows)
	offsetCol = (cols - width) / 2
	offsetRow = (rows - height) / 2
	return width, height, offsetCol, offsetRow
}

// ClearScreen clears the terminal and moves the cursor home.
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
