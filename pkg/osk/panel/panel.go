package panel

import (
	"errors"
	"fmt"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
)

var (
	ErrMalformedPanel = errors.New("malformed panel")
	ErrUnknownMode    = errors.New("unknown panel mode")
)

// Role decides how a run is drawn and which controls it belongs to.
type Role int

const (
	RoleDefault Role = iota
	RoleSpace
	RoleReturn
	RoleShift
	RoleCharset
)

var roleNames = map[string]Role{
	"default": RoleDefault,
	"space":   RoleSpace,
	"return":  RoleReturn,
	"shift":   RoleShift,
	"charset": RoleCharset,
}

func (r Role) String() string {
	switch r {
	case RoleDefault:
		return "default"
	case RoleSpace:
		return "space"
	case RoleReturn:
		return "return"
	case RoleShift:
		return "shift"
	case RoleCharset:
		return "charset"
	}
	return "unknown"
}

// Action is what a run does when it is accepted.
type Action int

const (
	// ActionAppend inserts the run's current output into the text buffer.
	ActionAppend Action = iota
	ActionShift
	ActionCharset
	ActionSpace
	ActionBackspace
	ActionEnter
)

var actionNames = map[string]Action{
	"append":    ActionAppend,
	"shift":     ActionShift,
	"charset":   ActionCharset,
	"space":     ActionSpace,
	"backspace": ActionBackspace,
	"enter":     ActionEnter,
}

func (a Action) String() string {
	switch a {
	case ActionAppend:
		return "append"
	case ActionShift:
		return "shift"
	case ActionCharset:
		return "charset"
	case ActionSpace:
		return "space"
	case ActionBackspace:
		return "backspace"
	case ActionEnter:
		return "enter"
	}
	return "unknown"
}

// DefaultAction is the action a run gets when its definition names none.
func (r Role) DefaultAction() Action {
	switch r {
	case RoleSpace:
		return ActionSpace
	case RoleReturn:
		return ActionEnter
	case RoleShift:
		return ActionShift
	case RoleCharset:
		return ActionCharset
	default:
		return ActionAppend
	}
}

// Group is one run of the layout: Span adjacent cells that act as a single key.
// Outputs is indexed by charset and then by layer.
type Group struct {
	Role    Role
	Span    int
	Tint    constants.Color
	Action  Action
	Outputs [][]string
}

// Output returns the string for the given charset and layer, or "" when absent.
func (g Group) Output(charset, layer int) string {
	if charset < 0 || charset >= len(g.Outputs) {
		return ""
	}
	layers := g.Outputs[charset]
	if layer < 0 || layer >= len(layers) {
		return ""
	}
	return layers[layer]
}

// Panel is an immutable keyboard face.
type Panel struct {
	Name       string
	Mode       Mode
	Priority   int
	Rows       int
	Columns    int
	CellWidth  int
	CellHeight int
	// Charsets holds the display names of each charset, used for the charset cycle label.
	Charsets []string
	Layout   []Group
}

// CharsetCount returns the number of charsets carried by the panel's layout.
func (p *Panel) CharsetCount() int {
	n := len(p.Charsets)
	for _, g := range p.Layout {
		if len(g.Outputs) > n {
			n = len(g.Outputs)
		}
	}
	return n
}

// LayerCounts returns, per charset, the number of populated layers among default
// role runs: one past the highest layer with a non-empty output.
func (p *Panel) LayerCounts() []int {
	counts := make([]int, p.CharsetCount())
	for _, g := range p.Layout {
		if g.Role != RoleDefault {
			continue
		}
		for cs, layers := range g.Outputs {
			for layer := len(layers) - 1; layer >= counts[cs]; layer-- {
				if layers[layer] != "" {
					counts[cs] = layer + 1
					break
				}
			}
		}
	}
	return counts
}

// Validate checks that the layout tiles the grid exactly and that every charset has a layer.
func (p *Panel) Validate() error {
	if p.Rows <= 0 || p.Columns <= 0 {
		return fmt.Errorf("%w: %s has a %dx%d grid", ErrMalformedPanel, p.Name, p.Columns, p.Rows)
	}
	if p.CellWidth <= 0 || p.CellHeight <= 0 {
		return fmt.Errorf("%w: %s has a zero cell size", ErrMalformedPanel, p.Name)
	}

	span := 0
	for i, g := range p.Layout {
		if g.Span < 1 {
			return fmt.Errorf("%w: %s run %d has span %d", ErrMalformedPanel, p.Name, i, g.Span)
		}
		span += g.Span
	}
	if span != p.Rows*p.Columns {
		return fmt.Errorf("%w: %s spans %d cells, grid has %d", ErrMalformedPanel, p.Name, span, p.Rows*p.Columns)
	}

	counts := p.LayerCounts()
	if len(counts) == 0 {
		return fmt.Errorf("%w: %s has no charsets", ErrMalformedPanel, p.Name)
	}
	for cs, n := range counts {
		if n == 0 {
			return fmt.Errorf("%w: %s charset %d has no layers", ErrMalformedPanel, p.Name, cs)
		}
	}
	return nil
}
