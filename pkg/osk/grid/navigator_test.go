package grid

import (
	"testing"

	"github.com/BrandonKowalski/osk/pkg/osk/panel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNavigator(t *testing.T, prohibit Prohibit, anchor int) *Navigator {
	t.Helper()
	g, err := Build(testPanel(), prohibit)
	require.NoError(t, err)
	return NewNavigator(g, anchor)
}

func selectedRun(g *Grid) []int {
	var out []int
	for i, c := range g.Cells {
		if c.Selected {
			out = append(out, i)
		}
	}
	return out
}

func TestMoveRightLandsOnMergedRunStart(t *testing.T) {
	n := newTestNavigator(t, 0, 1)
	require.Equal(t, 1, n.Column())

	assert.True(t, n.Move(Right))
	assert.Equal(t, 2, n.Index())
	assert.Equal(t, 0, n.Row())
	assert.Equal(t, panel.RoleSpace, n.Current().Role)
	assert.Equal(t, []int{2, 3, 4}, selectedRun(n.Grid()))

	assert.True(t, n.Move(Right))
	assert.Equal(t, 5, n.Index(), "right past the row end continues on the next row")
	assert.Equal(t, []int{5}, selectedRun(n.Grid()))
}

func TestMoveLeftAcrossMergedRun(t *testing.T) {
	n := newTestNavigator(t, 0, 5)

	assert.True(t, n.Move(Left))
	assert.Equal(t, 4, n.Index())
	assert.Equal(t, panel.RoleSpace, n.Current().Role)

	assert.True(t, n.Move(Left))
	assert.Equal(t, 1, n.Index())
}

func TestMoveSkipsDisabledRuns(t *testing.T) {
	n := newTestNavigator(t, NoSpace, 1)

	assert.True(t, n.Move(Right))
	assert.Equal(t, 5, n.Index())

	assert.True(t, n.Move(Left))
	assert.Equal(t, 1, n.Index())

	n.SelectIndex(9)
	assert.False(t, n.Move(Up), "only a disabled run is above")
	assert.Equal(t, 9, n.Index())
}

func TestMoveVertical(t *testing.T) {
	n := newTestNavigator(t, 0, 0)

	assert.True(t, n.Move(Down))
	assert.Equal(t, 5, n.Index())
	assert.False(t, n.Move(Down))
	assert.Equal(t, 5, n.Index())

	n.SelectIndex(3)
	assert.True(t, n.Move(Down))
	assert.Equal(t, 8, n.Index())

	n.SelectIndex(9)
	assert.True(t, n.Move(Up))
	assert.Equal(t, 4, n.Index())
	assert.Equal(t, panel.RoleSpace, n.Current().Role)
}

func TestMoveDeadEnds(t *testing.T) {
	n := newTestNavigator(t, 0, 0)
	assert.False(t, n.Move(Left))
	assert.False(t, n.Move(Up))
	assert.Equal(t, 0, n.Index())

	n.SelectIndex(9)
	assert.False(t, n.Move(Right))
	assert.False(t, n.Move(Down))
	assert.Equal(t, 9, n.Index())
}

func TestCycleShiftAndCharset(t *testing.T) {
	n := newTestNavigator(t, 0, 0)
	assert.Equal(t, "a", n.CurrentOutput())

	n.CycleShift()
	assert.Equal(t, "A", n.CurrentOutput())
	n.CycleShift()
	assert.Equal(t, 2, n.Layer())
	assert.Equal(t, "á", n.CurrentOutput())
	assert.Equal(t, "B", n.CellOutput(1), "shorter layer tables clamp")

	n.SelectIndex(5)
	n.CycleCharset()
	assert.Equal(t, 1, n.Charset())
	assert.Equal(t, 0, n.Layer(), "layer clamps into the new charset")
	assert.False(t, n.Grid().Cells[5].Enabled, "one layer leaves nothing to shift")
	assert.Equal(t, 6, n.Index(), "selection leaves the disabled shift run")
	assert.Equal(t, "1", n.CellOutput(0))

	n.CycleCharset()
	assert.Equal(t, 0, n.Charset())
	assert.True(t, n.Grid().Cells[5].Enabled)
}

func TestSelectIndexClamps(t *testing.T) {
	n := newTestNavigator(t, 0, 999)
	assert.Equal(t, 9, n.Index())

	n = newTestNavigator(t, NoReturn, 999)
	assert.Equal(t, 8, n.Index())

	n = newTestNavigator(t, NoSpace, 3)
	assert.True(t, n.Grid().RunEnabled(n.Index()))
}

func catalogGrids(t *testing.T, prohibit Prohibit) []*Grid {
	t.Helper()
	c, err := panel.DefaultCatalog()
	require.NoError(t, err)

	var grids []*Grid
	for _, p := range c.Panels() {
		g, err := Build(p, prohibit)
		require.NoError(t, err, p.Name)
		grids = append(grids, g)
	}
	return grids
}

func enabledRuns(g *Grid) map[int]bool {
	runs := make(map[int]bool)
	for i := 0; i < g.Size(); {
		start, count := g.Run(i)
		if g.Cells[start].Enabled {
			runs[start] = true
		}
		i = start + count
	}
	return runs
}

func TestCatalogGridsAreConnected(t *testing.T) {
	for _, prohibit := range []Prohibit{0, NoSpace, NoReturn, NoSpace | NoReturn} {
		for _, g := range catalogGrids(t, prohibit) {
			for charset := 0; charset < g.Charsets(); charset++ {
				n := NewNavigator(g, 0)
				for i := 0; i < charset; i++ {
					n.CycleCharset()
				}
				want := enabledRuns(g)

				for from := range want {
					reached := map[int]bool{from: true}
					queue := []int{from}
					for len(queue) > 0 {
						index := queue[0]
						queue = queue[1:]
						for _, d := range []Direction{Up, Down, Left, Right} {
							n.selectRun(index)
							if !n.Move(d) {
								continue
							}
							require.True(t, g.RunEnabled(n.Index()), "%s moved onto a disabled run", g.Panel.Name)
							start, _ := g.Run(n.Index())
							if !reached[start] {
								reached[start] = true
								queue = append(queue, n.Index())
							}
						}
					}
					for start := range reached {
						if start != from {
							assert.True(t, want[start], "%s reached run %d", g.Panel.Name, start)
						}
					}
					assert.Len(t, reached, len(want), "%s from run %d", g.Panel.Name, from)
				}
			}
		}
	}
}

func TestCatalogShiftCycleIsIdempotent(t *testing.T) {
	for _, g := range catalogGrids(t, 0) {
		n := NewNavigator(g, 0)
		for charset := 0; charset < g.Charsets(); charset++ {
			for start := 0; start < g.Layers(n.Charset()); start++ {
				layers := g.Layers(n.Charset())
				before := n.Layer()
				for i := 0; i < layers; i++ {
					n.CycleShift()
				}
				assert.Equal(t, before, n.Layer(), g.Panel.Name)
				n.CycleShift()
			}
			n.CycleCharset()
		}
	}
}

func TestCatalogCharsetCycleKeepsLayerInRange(t *testing.T) {
	for _, g := range catalogGrids(t, 0) {
		n := NewNavigator(g, 0)
		for i := 0; i < 3*g.Charsets(); i++ {
			for j := 0; j < i%4; j++ {
				n.CycleShift()
			}
			n.CycleCharset()
			assert.Less(t, n.Layer(), g.Layers(n.Charset()), g.Panel.Name)
			assert.Less(t, n.Charset(), g.Charsets(), g.Panel.Name)
			assert.True(t, g.RunEnabled(n.Index()), g.Panel.Name)
		}
	}
}
