package grid

import (
	"errors"
	"testing"

	"github.com/BrandonKowalski/osk/pkg/osk/panel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(outputs ...[]string) panel.Group {
	return panel.Group{Role: panel.RoleDefault, Span: 1, Action: panel.ActionAppend, Outputs: outputs}
}

func control(role panel.Role, span int, label string) panel.Group {
	return panel.Group{
		Role:    role,
		Span:    span,
		Action:  role.DefaultAction(),
		Outputs: [][]string{{label}, {label}},
	}
}

// testPanel is a 5x2 grid:
//
//	a  b  [  space  ]
//	sh cs c  d  ret
func testPanel() *panel.Panel {
	return &panel.Panel{
		Name: "test", Rows: 2, Columns: 5, CellWidth: 10, CellHeight: 20,
		Layout: []panel.Group{
			key([]string{"a", "A", "á"}, []string{"1"}),
			key([]string{"b", "B"}, []string{"2"}),
			control(panel.RoleSpace, 3, "Space"),
			control(panel.RoleShift, 1, "Shift"),
			control(panel.RoleCharset, 1, "123"),
			key([]string{"c", "C"}, []string{"3"}),
			key([]string{"d"}, []string{"4"}),
			control(panel.RoleReturn, 1, "Enter"),
		},
	}
}

func TestBuildGeometryAndBorders(t *testing.T) {
	g, err := Build(testPanel(), 0)
	require.NoError(t, err)
	require.Equal(t, 10, g.Size())

	assert.Equal(t, BorderSingle, g.Cells[0].Border)
	assert.Equal(t, BorderStart, g.Cells[2].Border)
	assert.Equal(t, BorderMiddle, g.Cells[3].Border)
	assert.Equal(t, BorderEnd, g.Cells[4].Border)

	assert.Equal(t, 30, g.Cells[3].X)
	assert.Equal(t, 0, g.Cells[3].Y)
	assert.Equal(t, 10, g.Cells[6].X)
	assert.Equal(t, 20, g.Cells[6].Y)
	assert.Equal(t, 10, g.Cells[6].W)
	assert.Equal(t, 20, g.Cells[6].H)

	for i := 2; i <= 4; i++ {
		start, count := g.Run(i)
		assert.Equal(t, 2, start)
		assert.Equal(t, 3, count)
	}
	start, count := g.Run(9)
	assert.Equal(t, 9, start)
	assert.Equal(t, 1, count)

	assert.Equal(t, 2, g.Charsets())
	assert.Equal(t, 3, g.Layers(0))
	assert.Equal(t, 1, g.Layers(1))
}

func TestBuildEnablement(t *testing.T) {
	tests := []struct {
		name     string
		prohibit Prohibit
		space    bool
		ret      bool
	}{
		{"none", 0, true, true},
		{"no space", NoSpace, false, true},
		{"no return", NoReturn, true, false},
		{"analog only", NoInputAnalog, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Build(testPanel(), tt.prohibit)
			require.NoError(t, err)
			NewNavigator(g, 0)

			assert.True(t, g.Cells[0].Enabled)
			assert.Equal(t, tt.space, g.Cells[2].Enabled)
			assert.Equal(t, tt.ret, g.Cells[9].Enabled)
			assert.True(t, g.Cells[5].Enabled, "shift")
			assert.True(t, g.Cells[6].Enabled, "charset cycle")
		})
	}
}

func TestBuildRejectsMalformedPanels(t *testing.T) {
	unpopulated := testPanel()
	for i := range unpopulated.Layout {
		if unpopulated.Layout[i].Role == panel.RoleDefault {
			unpopulated.Layout[i].Outputs = [][]string{unpopulated.Layout[i].Outputs[0], {""}}
		}
	}

	overflow := testPanel()
	overflow.Layout = append(overflow.Layout, key([]string{"e"}, []string{"5"}))

	underfill := testPanel()
	underfill.Layout = underfill.Layout[:len(underfill.Layout)-1]

	tests := map[string]*panel.Panel{
		"unpopulated charset": unpopulated,
		"overflow":            overflow,
		"underfill":           underfill,
		"nil":                 nil,
		"empty grid":          {Name: "empty"},
	}

	for name, p := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Build(p, 0)
			assert.True(t, errors.Is(err, panel.ErrMalformedPanel), "got %v", err)
		})
	}
}

func TestCellOutputClampsLayer(t *testing.T) {
	c := Cell{Outputs: [][]string{{"Back"}, {"a", "b"}}}
	assert.Equal(t, "Back", c.Output(0, 0))
	assert.Equal(t, "Back", c.Output(0, 2))
	assert.Equal(t, "b", c.Output(1, 5))
	assert.Equal(t, "", c.Output(2, 0))
}

func TestRunsStopAtRowEdges(t *testing.T) {
	p := &panel.Panel{
		Name: "wrap", Rows: 2, Columns: 3, CellWidth: 1, CellHeight: 1,
		Layout: []panel.Group{
			key([]string{"a"}, []string{"1"}),
			control(panel.RoleSpace, 4, "Space"),
			key([]string{"b"}, []string{"2"}),
		},
	}
	g, err := Build(p, 0)
	require.NoError(t, err)

	start, count := g.Run(1)
	assert.Equal(t, 1, start)
	assert.Equal(t, 2, count)

	start, count = g.Run(3)
	assert.Equal(t, 3, start)
	assert.Equal(t, 2, count)
}

func TestPlace(t *testing.T) {
	g, err := Build(testPanel(), 0)
	require.NoError(t, err)

	g.Place(100, 200, 30, 40)
	assert.Equal(t, 100, g.Cells[0].X)
	assert.Equal(t, 200, g.Cells[0].Y)
	assert.Equal(t, 190, g.Cells[8].X)
	assert.Equal(t, 240, g.Cells[8].Y)
	assert.Equal(t, 30, g.Cells[8].W)
	assert.Equal(t, 40, g.Cells[8].H)
}
