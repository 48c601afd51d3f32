package grid

// Direction is a grid or caret movement.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// Navigator owns the selection on one grid: the selected cell index, the
// active charset and the active shift layer.
type Navigator struct {
	grid    *Grid
	index   int
	charset int
	layer   int
}

// NewNavigator resets charset and layer to zero and selects the run nearest
// to anchor.
func NewNavigator(g *Grid, anchor int) *Navigator {
	n := &Navigator{grid: g}
	g.refreshControls(0)
	n.SelectIndex(anchor)
	return n
}

func (n *Navigator) Grid() *Grid {
	return n.grid
}

// Index is the linear index of the selected cell.
func (n *Navigator) Index() int {
	return n.index
}

func (n *Navigator) Row() int {
	return n.index / n.grid.Columns
}

func (n *Navigator) Column() int {
	return n.index % n.grid.Columns
}

func (n *Navigator) Charset() int {
	return n.charset
}

func (n *Navigator) Layer() int {
	return n.layer
}

// Current returns the lead cell of the selected run.
func (n *Navigator) Current() *Cell {
	if len(n.grid.Cells) == 0 {
		return nil
	}
	start, _ := n.grid.Run(n.index)
	return &n.grid.Cells[start]
}

// CurrentOutput resolves the selected run's string at the active charset and layer.
func (n *Navigator) CurrentOutput() string {
	c := n.Current()
	if c == nil {
		return ""
	}
	return c.Output(n.charset, n.layer)
}

// CellOutput resolves any cell's string at the active charset and layer.
func (n *Navigator) CellOutput(index int) string {
	if index < 0 || index >= len(n.grid.Cells) {
		return ""
	}
	return n.grid.Cells[index].Output(n.charset, n.layer)
}

// Move steps to the next enabled run in a direction. It reports whether the
// selection changed; a dead end leaves it untouched.
func (n *Navigator) Move(d Direction) bool {
	g := n.grid
	size := len(g.Cells)
	if size == 0 {
		return false
	}
	index := n.index

	switch d {
	case Right:
		for {
			start, count := g.Run(index)
			index = start + count
			if index >= size {
				return false
			}
			if g.RunEnabled(index) {
				return n.selectRun(index)
			}
		}

	case Left:
		for index > 0 {
			start, _ := g.Run(index)
			if start == 0 {
				return false
			}
			index = start - 1
			if g.RunEnabled(index) {
				return n.selectRun(index)
			}
		}
		return false

	case Down:
		for {
			index += g.Columns
			if index >= size {
				return false
			}
			if g.RunEnabled(index) {
				return n.selectRun(index)
			}
		}

	case Up:
		for index >= g.Columns {
			index -= g.Columns
			if g.RunEnabled(index) {
				return n.selectRun(index)
			}
		}
		return false
	}

	return false
}

// CycleShift advances the layer modulo the active charset's layer count.
func (n *Navigator) CycleShift() {
	layers := n.grid.Layers(n.charset)
	if layers == 0 {
		return
	}
	n.layer = (n.layer + 1) % layers
}

// CycleCharset advances the charset, clamps the layer into the new charset and
// refreshes the controls that depend on it.
func (n *Navigator) CycleCharset() {
	charsets := n.grid.Charsets()
	if charsets < 1 {
		charsets = 1
	}
	n.charset = (n.charset + 1) % charsets

	if last := n.grid.Layers(n.charset) - 1; n.layer > last {
		n.layer = last
	}
	if n.layer < 0 {
		n.layer = 0
	}

	n.grid.refreshControls(n.charset)
	n.keepEnabled()
}

// SelectIndex selects the run containing index, moving to the nearest enabled
// run when that one is disabled. Out of range indices are clamped first.
func (n *Navigator) SelectIndex(index int) {
	g := n.grid
	size := len(g.Cells)
	if size == 0 {
		return
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

	if !g.RunEnabled(index) {
		start, _ := g.Run(index)
		if nearest, ok := n.nearestEnabled(start); ok {
			index = nearest
		}
	}
	n.selectRun(index)
}

func (n *Navigator) keepEnabled() {
	if !n.grid.RunEnabled(n.index) {
		n.SelectIndex(n.index)
	}
}

// nearestEnabled scans outwards from index for the closest enabled run lead.
func (n *Navigator) nearestEnabled(index int) (int, bool) {
	g := n.grid
	for distance := 1; distance < len(g.Cells); distance++ {
		for _, candidate := range []int{index + distance, index - distance} {
			if candidate < 0 || candidate >= len(g.Cells) {
				continue
			}
			if start, _ := g.Run(candidate); g.Cells[start].Enabled {
				return start, true
			}
		}
	}
	return 0, false
}

func (n *Navigator) selectRun(index int) bool {
	g := n.grid
	oldStart, oldCount := g.Run(n.index)
	for i := oldStart; i < oldStart+oldCount; i++ {
		g.Cells[i].Selected = false
	}

	newStart, newCount := g.Run(index)
	for i := newStart; i < newStart+newCount; i++ {
		g.Cells[i].Selected = true
	}

	changed := index != n.index
	n.index = index
	return changed
}
