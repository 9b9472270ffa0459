package viz

import "strings"

// cell content markers for the box canvas.
const (
	cellEmpty = iota
	cellSlow
	cellFast
	cellBarrier
	cellBarrierOpen
)

// Canvas maps box coordinates onto a character grid. Cells carry a content
// marker so the view can style fast/slow particles and the barrier band
// independently.
type Canvas struct {
	Width, Height int
	cells         [][]int

	lx, ly float64
}

func NewCanvas(w, h int, lx, ly float64) *Canvas {
	c := &Canvas{Width: w, Height: h, lx: lx, ly: ly}
	c.cells = make([][]int, h)
	for i := range c.cells {
		c.cells[i] = make([]int, w)
	}
	return c
}

func (c *Canvas) Clear() {
	for _, row := range c.cells {
		for j := range row {
			row[j] = cellEmpty
		}
	}
}

// project converts box coordinates (x in [0,lx], y in [-ly,ly]) to a cell.
func (c *Canvas) project(x, y float64) (int, int) {
	col := int(x / c.lx * float64(c.Width-1))
	row := int((c.ly - y) / (2 * c.ly) * float64(c.Height-1))
	return col, row
}

func (c *Canvas) set(col, row, marker int) {
	if col < 0 || col >= c.Width || row < 0 || row >= c.Height {
		return
	}
	// Particles draw over the barrier band.
	if marker >= cellBarrier && c.cells[row][col] != cellEmpty && c.cells[row][col] < cellBarrier {
		return
	}
	c.cells[row][col] = marker
}

// DrawBarrier paints the vertical barrier band at x = center.
func (c *Canvas) DrawBarrier(center float64, open bool) {
	col, _ := c.project(center, 0)
	marker := cellBarrier
	if open {
		marker = cellBarrierOpen
	}
	for row := 0; row < c.Height; row++ {
		c.set(col, row, marker)
	}
}

// DrawParticle places one particle with its classification marker.
func (c *Canvas) DrawParticle(x, y float64, fast bool) {
	col, row := c.project(x, y)
	marker := cellSlow
	if fast {
		marker = cellFast
	}
	c.set(col, row, marker)
}

// Render turns the grid into styled terminal lines.
func (c *Canvas) Render() string {
	var b strings.Builder
	for _, row := range c.cells {
		for _, cell := range row {
			switch cell {
			case cellSlow:
				b.WriteString(slowStyle.Render("o"))
			case cellFast:
				b.WriteString(fastStyle.Render("o"))
			case cellBarrier:
				b.WriteString(barrierStyle.Render("┊"))
			case cellBarrierOpen:
				b.WriteString(barrierOpenStyle.Render("█"))
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
