// Package draw renders world geometry to a terminal using half-block characters.
package draw

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tomz197/rigid2d/internal/geom"
)

// Half-block characters. Each terminal cell holds two vertically stacked pixels.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// maxChunkSize is the maximum bytes written at once, close to a typical MTU so
// frames stream smoothly over SSH.
const maxChunkSize = 1400

// Canvas is a 1-bit pixel buffer twice as tall as the terminal area it covers.
// World coordinates are scaled uniformly so the whole world fits and circles
// stay round.
type Canvas struct {
	cols, rows int
	height     int // rows * 2
	pixels     []bool

	worldWidth  float64
	worldHeight float64
	scale       float64 // pixels per world unit

	offsetCol int
	offsetRow int

	renderBuf strings.Builder
	numBuf    [20]byte
}

// NewCanvas creates a canvas of cols×rows terminal cells showing a world of the
// given size.
func NewCanvas(cols, rows int, worldWidth, worldHeight float64) *Canvas {
	c := &Canvas{worldWidth: worldWidth, worldHeight: worldHeight}
	c.Resize(cols, rows)
	return c
}

// Resize adapts the canvas to a new terminal area, keeping the world size.
func (c *Canvas) Resize(cols, rows int) {
	cols = max(cols, 1)
	rows = max(rows, 1)
	if cols != c.cols || rows != c.rows {
		c.cols = cols
		c.rows = rows
		c.height = rows * 2
		c.pixels = make([]bool, c.cols*c.height)
	}
	c.scale = math.Min(float64(c.cols)/c.worldWidth, float64(c.height)/c.worldHeight)
}

// SetOffset places the canvas at a 0-based terminal column and row.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// Cols returns the canvas width in terminal cells.
func (c *Canvas) Cols() int { return c.cols }

// Rows returns the canvas height in terminal cells.
func (c *Canvas) Rows() int { return c.rows }

// Clear resets all pixels.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

func (c *Canvas) toPixel(p geom.Vector2) (int, int) {
	return int(math.Round(p.X * c.scale)), int(math.Round(p.Y * c.scale))
}

func (c *Canvas) set(x, y int) {
	if x >= 0 && x < c.cols && y >= 0 && y < c.height {
		c.pixels[y*c.cols+x] = true
	}
}

// Lit reports whether the pixel containing world point p is set.
func (c *Canvas) Lit(p geom.Vector2) bool {
	x, y := c.toPixel(p)
	if x < 0 || x >= c.cols || y < 0 || y >= c.height {
		return false
	}
	return c.pixels[y*c.cols+x]
}

// Plot sets the pixel containing world point p.
func (c *Canvas) Plot(p geom.Vector2) {
	c.set(c.toPixel(p))
}

// Line draws a segment between two world points (Bresenham).
func (c *Canvas) Line(a, b geom.Vector2) {
	x1, y1 := c.toPixel(a)
	x2, y2 := c.toPixel(b)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		c.set(x1, y1)
		if x1 == x2 && y1 == y2 {
			return
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

// Polygon draws the closed outline through vertices.
func (c *Canvas) Polygon(vertices []geom.Vector2) {
	n := len(vertices)
	if n < 2 {
		return
	}
	for i := range n {
		c.Line(vertices[i], vertices[(i+1)%n])
	}
}

// Circle draws the outline of a circle (midpoint algorithm).
func (c *Canvas) Circle(center geom.Vector2, radius float64) {
	cx, cy := c.toPixel(center)
	r := int(math.Round(radius * c.scale))
	if r <= 0 {
		c.set(cx, cy)
		return
	}

	x, y := r, 0
	d := 1 - r
	for x >= y {
		c.set(cx+x, cy+y)
		c.set(cx+y, cy+x)
		c.set(cx-y, cy+x)
		c.set(cx-x, cy+y)
		c.set(cx-x, cy-y)
		c.set(cx-y, cy-x)
		c.set(cx+y, cy-x)
		c.set(cx+x, cy-y)
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// Render writes every non-empty cell as a cursor move plus a half-block rune.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()

	for row := range c.rows {
		top := row * 2 * c.cols
		bottom := top + c.cols
		for col := range c.cols {
			var ch rune
			switch t, b := c.pixels[top+col], c.pixels[bottom+col]; {
			case t && b:
				ch = BlockFull
			case t:
				ch = BlockUpperHalf
			case b:
				ch = BlockLowerHalf
			default:
				continue
			}
			c.moveCursor(col+1+c.offsetCol, row+1+c.offsetRow)
			c.renderBuf.WriteRune(ch)
		}
	}
	return writeChunked(w, c.renderBuf.String())
}

func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// RenderBorder boxes the canvas area when it has been offset into a larger
// terminal.
func (c *Canvas) RenderBorder(w io.Writer) error {
	if c.offsetCol < 1 || c.offsetRow < 1 {
		return nil
	}
	left := c.offsetCol
	right := c.offsetCol + c.cols + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.rows + 1
	bar := strings.Repeat("─", c.cols)

	c.renderBuf.Reset()
	c.moveCursor(left, top)
	c.renderBuf.WriteString("┌" + bar + "┐")
	c.moveCursor(left, bottom)
	c.renderBuf.WriteString("└" + bar + "┘")
	for row := top + 1; row < bottom; row++ {
		c.moveCursor(left, row)
		c.renderBuf.WriteString("│")
		c.moveCursor(right, row)
		c.renderBuf.WriteString("│")
	}
	return writeChunked(w, c.renderBuf.String())
}

func writeChunked(w io.Writer, data string) error {
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
