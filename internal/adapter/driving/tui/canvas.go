package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ericfisherdev/hypergraph/internal/domain/layout"
	"github.com/ericfisherdev/hypergraph/internal/domain/model"
)

const (
	nodeGlyph   = '●'
	centerGlyph = '◎'
)

type cell struct {
	r     rune
	color string // empty for the default style
}

// canvas is a character grid onto which layout coordinates are projected.
type canvas struct {
	cols, rows int
	cells      [][]cell
}

func newCanvas(cols, rows int) *canvas {
	cols, rows = max(cols, 1), max(rows, 1)
	cells := make([][]cell, rows)
	for i := range cells {
		cells[i] = make([]cell, cols)
		for j := range cells[i] {
			cells[i][j] = cell{r: ' '}
		}
	}
	return &canvas{cols: cols, rows: rows, cells: cells}
}

// project maps a layout point to a grid position.
func (c *canvas) project(p model.Point, width, height float64) (int, int) {
	col := int(p.X / width * float64(c.cols-1))
	row := int(p.Y / height * float64(c.rows-1))
	return min(max(col, 0), c.cols-1), min(max(row, 0), c.rows-1)
}

func (c *canvas) set(col, row int, r rune, color string) {
	if row < 0 || row >= c.rows || col < 0 || col >= c.cols {
		return
	}
	c.cells[row][col] = cell{r: r, color: color}
}

// text writes s centred on col, clipped to the grid.
func (c *canvas) text(col, row int, s, color string) {
	runes := []rune(s)
	start := col - len(runes)/2
	for i, r := range runes {
		c.set(start+i, row, r, color)
	}
}

// String renders the grid, colouring runs of cells that share a colour.
func (c *canvas) String() string {
	var b strings.Builder
	for i, row := range c.cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		runColor := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(styleFor(runColor).Render(run.String()))
			run.Reset()
		}
		for _, cl := range row {
			if cl.color != runColor {
				flush()
				runColor = cl.color
			}
			run.WriteRune(cl.r)
		}
		flush()
	}
	return b.String()
}

func styleFor(color string) lipgloss.Style {
	switch color {
	case "":
		return lipgloss.NewStyle()
	case "center":
		return centerStyle
	default:
		return colorStyle(color)
	}
}

// renderGraph draws graph onto a cols x rows grid: cluster labels, the
// centre with the organization name, then repository nodes on top.
func renderGraph(graph model.Graph, org string, cols, rows int) string {
	c := newCanvas(cols, rows)

	for _, cl := range graph.Clusters {
		col, row := c.project(cl.Label, graph.Width, graph.Height)
		c.text(col, row, layout.DisplayName(cl.Language), cl.Color)
	}

	col, row := c.project(graph.Center, graph.Width, graph.Height)
	c.set(col, row, centerGlyph, "center")
	c.text(col, row+1, org, "center")

	for _, n := range graph.Nodes {
		col, row := c.project(n.Position, graph.Width, graph.Height)
		c.set(col, row, nodeGlyph, n.Color)
	}

	return c.String()
}
