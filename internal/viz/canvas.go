package viz

import (
	"math"
	"strings"

	"github.com/san-kum/tempograph/internal/layout"
)

// Braille cells hold 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
const brailleBlank = 0x2800

var dotBits = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells addressed in dot coordinates, so it is
// Width*2 dots wide and Height*4 dots tall.
type Canvas struct {
	Width, Height int
	cells         [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, cells: make([][]rune, h)}
	for i := range c.cells {
		c.cells[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Dots returns the drawable area in dot coordinates.
func (c *Canvas) Dots() (w, h int) {
	return c.Width * 2, c.Height * 4
}

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	row, col := y/4, x/2
	if row >= c.Height || col >= c.Width {
		return
	}
	c.cells[row][col] |= dotBits[y%4][x%2]
}

func (c *Canvas) Clear() {
	for _, row := range c.cells {
		for j := range row {
			row[j] = brailleBlank
		}
	}
}

// Line draws with Bresenham's algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Disc fills a square of side 2r+1 centred on (x, y).
func (c *Canvas) Disc(x, y, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r+1 {
				c.Set(x+dx, y+dy)
			}
		}
	}
}

func (c *Canvas) Segment(a, b layout.Point) {
	c.Line(round(a.X), round(a.Y), round(b.X), round(b.Y))
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}

func round(v float64) int {
	return int(math.Round(v))
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
