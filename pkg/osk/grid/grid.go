// Package grid expands a panel into a concrete grid of cells and tracks the
// selection on it.
package grid

import (
	"fmt"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/BrandonKowalski/osk/pkg/osk/internal/logging"
	"github.com/BrandonKowalski/osk/pkg/osk/panel"
)

// Border marks which sides of a cell are drawn. Runs share inner edges.
type Border uint8

const (
	BorderLeft Border = 1 << iota
	BorderRight
	BorderTop
	BorderBottom

	BorderNone   Border = 0
	BorderSingle        = BorderLeft | BorderRight | BorderTop | BorderBottom
	BorderStart         = BorderLeft | BorderTop | BorderBottom
	BorderEnd           = BorderRight | BorderTop | BorderBottom
	BorderMiddle        = BorderTop | BorderBottom
)

func (b Border) Has(side Border) bool {
	return b&side != 0
}

// Prohibit carries the dialog level restriction flags.
type Prohibit uint32

const (
	NoSpace       Prohibit = 0x00000002
	NoReturn      Prohibit = 0x00000004
	NoInputAnalog Prohibit = 0x00000008
)

func (p Prohibit) Has(flag Prohibit) bool {
	return p&flag != 0
}

type Cell struct {
	Role     panel.Role
	Action   panel.Action
	X, Y     int
	W, H     int
	Border   Border
	Enabled  bool
	Selected bool
	Tint     constants.Color
	Outputs  [][]string
}

// Output resolves the cell's string for a charset and layer. A layer past the
// end of the cell's table clamps to its last entry.
func (c *Cell) Output(charset, layer int) string {
	if charset < 0 || charset >= len(c.Outputs) {
		return ""
	}
	layers := c.Outputs[charset]
	if len(layers) == 0 {
		return ""
	}
	if layer >= len(layers) {
		layer = len(layers) - 1
	}
	if layer < 0 {
		layer = 0
	}
	return layers[layer]
}

func (c *Cell) hasOutput(charset int) bool {
	if charset < 0 || charset >= len(c.Outputs) {
		return false
	}
	for _, s := range c.Outputs[charset] {
		if s != "" {
			return true
		}
	}
	return false
}

// Grid is the row-major cell sequence of one panel.
type Grid struct {
	Panel    *panel.Panel
	Rows     int
	Columns  int
	Cells    []Cell
	Prohibit Prohibit

	// layers holds the populated layer count of every charset.
	layers []int
}

// Build places the panel's runs row-major and computes per-cell enablement.
// A panel violating the layer invariant fails with panel.ErrMalformedPanel.
func Build(p *panel.Panel, prohibit Prohibit) (*Grid, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil panel", panel.ErrMalformedPanel)
	}
	if p.Rows <= 0 || p.Columns <= 0 {
		return nil, fmt.Errorf("%w: %s has a %dx%d grid", panel.ErrMalformedPanel, p.Name, p.Columns, p.Rows)
	}

	g := &Grid{
		Panel:    p,
		Rows:     p.Rows,
		Columns:  p.Columns,
		Prohibit: prohibit,
		Cells:    make([]Cell, 0, p.Rows*p.Columns),
		layers:   make([]int, p.CharsetCount()),
	}

	for _, group := range p.Layout {
		if group.Span < 1 {
			return nil, fmt.Errorf("%w: %s has a run with span %d", panel.ErrMalformedPanel, p.Name, group.Span)
		}

		for i := 0; i < group.Span; i++ {
			index := len(g.Cells)
			if index >= p.Rows*p.Columns {
				return nil, fmt.Errorf("%w: %s overflows its %dx%d grid", panel.ErrMalformedPanel, p.Name, p.Columns, p.Rows)
			}

			cell := Cell{
				Role:    group.Role,
				Action:  group.Action,
				X:       (index % p.Columns) * p.CellWidth,
				Y:       (index / p.Columns) * p.CellHeight,
				W:       p.CellWidth,
				H:       p.CellHeight,
				Tint:    group.Tint,
				Outputs: group.Outputs,
			}

			switch {
			case group.Span == 1:
				cell.Border = BorderSingle
			case i == 0:
				cell.Border = BorderStart
			case i == group.Span-1:
				cell.Border = BorderEnd
			default:
				cell.Border = BorderMiddle
			}

			// Runs never wrap across rows.
			if index%p.Columns == 0 {
				cell.Border |= BorderLeft
			}
			if index%p.Columns == p.Columns-1 {
				cell.Border |= BorderRight
			}

			switch group.Role {
			case panel.RoleDefault:
				cell.Enabled = true
			case panel.RoleSpace:
				cell.Enabled = !prohibit.Has(NoSpace)
			case panel.RoleReturn:
				cell.Enabled = !prohibit.Has(NoReturn)
			}

			g.Cells = append(g.Cells, cell)
		}

		if group.Role == panel.RoleDefault {
			for cs, layers := range group.Outputs {
				for layer := len(layers) - 1; layer >= g.layers[cs]; layer-- {
					if layers[layer] != "" {
						g.layers[cs] = layer + 1
						break
					}
				}
			}
		}
	}

	if len(g.Cells) != p.Rows*p.Columns {
		return nil, fmt.Errorf("%w: %s fills %d of %d cells", panel.ErrMalformedPanel, p.Name, len(g.Cells), p.Rows*p.Columns)
	}
	if len(g.layers) == 0 {
		return nil, fmt.Errorf("%w: %s has no charsets", panel.ErrMalformedPanel, p.Name)
	}
	for cs, n := range g.layers {
		if n == 0 {
			logging.For("grid").Error("Panel charset has no populated layer", "panel", p.Name, "charset", cs)
			return nil, fmt.Errorf("%w: %s charset %d has no populated layer", panel.ErrMalformedPanel, p.Name, cs)
		}
	}

	return g, nil
}

func (g *Grid) Size() int {
	return len(g.Cells)
}

// Charsets is the number of charsets in the grid.
func (g *Grid) Charsets() int {
	return len(g.layers)
}

// Layers returns the populated layer count of a charset.
func (g *Grid) Layers(charset int) int {
	if charset < 0 || charset >= len(g.layers) {
		return 0
	}
	return g.layers[charset]
}

// Run returns the first index and the length of the run containing index.
// Indices past the end are moved up a row at a time until they land in the grid.
func (g *Grid) Run(index int) (start, count int) {
	size := len(g.Cells)
	if size == 0 {
		return 0, 0
	}
	if index < 0 {
		index = 0
	}
	for index >= size && index >= g.Columns {
		index -= g.Columns
	}
	if index >= size {
		index = size - 1
	}

	start = index
	for start > 0 && !g.Cells[start].Border.Has(BorderLeft) {
		start--
	}
	for start+count < size {
		count++
		if g.Cells[start+count-1].Border.Has(BorderRight) {
			break
		}
	}
	return start, count
}

// RunEnabled reports whether the run containing index can be selected.
func (g *Grid) RunEnabled(index int) bool {
	start, count := g.Run(index)
	return count > 0 && g.Cells[start].Enabled
}

// refreshControls recomputes the enablement of the shift and charset-cycle
// runs, which depends on the active charset.
func (g *Grid) refreshControls(charset int) {
	shift := g.Layers(charset) > 1
	cycle := g.Charsets() > 1

	for i := range g.Cells {
		cell := &g.Cells[i]
		switch cell.Role {
		case panel.RoleShift:
			cell.Enabled = shift && cell.hasOutput(charset)
		case panel.RoleCharset:
			cell.Enabled = cycle
		}
	}
}

// Place moves every cell into screen space with the grid's top left corner at
// (x, y) and the given cell size.
func (g *Grid) Place(x, y, cellW, cellH int) {
	for i := range g.Cells {
		c := &g.Cells[i]
		c.X = x + (i%g.Columns)*cellW
		c.Y = y + (i/g.Columns)*cellH
		c.W = cellW
		c.H = cellH
	}
}
