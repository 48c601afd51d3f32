package panel

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/BrandonKowalski/osk/pkg/osk/internal/logging"
	"github.com/BurntSushi/toml"
)

//go:embed layouts
var layoutFS embed.FS

// EmptyKey marks a key position that produces nothing in a charset layer.
const EmptyKey = "∅"

var (
	DefaultTint  = constants.HexToColor(0xB3B3B3)
	SpecialTint  = constants.HexToColor(0x33B3B3)
	Special2Tint = constants.HexToColor(0xD4CF91)
)

type charsetFile struct {
	Name   string     `toml:"name"`
	Label  string     `toml:"label"`
	Layers [][]string `toml:"layers"`
}

type controlDef struct {
	Role   string   `toml:"role"`
	Action string   `toml:"action"`
	Span   int      `toml:"span"`
	Tint   *uint32  `toml:"tint"`
	Labels []string `toml:"labels"`
}

type controlsFile struct {
	Name     string       `toml:"name"`
	Controls []controlDef `toml:"control"`
}

type panelFile struct {
	Name       string   `toml:"name"`
	Mode       string   `toml:"mode"`
	Priority   int      `toml:"priority"`
	Columns    int      `toml:"columns"`
	CellWidth  int      `toml:"cell_width"`
	CellHeight int      `toml:"cell_height"`
	Charsets   []string `toml:"charsets"`
	Controls   string   `toml:"controls"`
}

// Catalog is the read-only set of panels, ordered by priority.
type Catalog struct {
	panels []*Panel
	byMode map[Mode]*Panel
}

var (
	defaultCatalog    *Catalog
	defaultCatalogErr error
	defaultOnce       sync.Once
)

// DefaultCatalog returns the catalog built from the embedded layout files.
func DefaultCatalog() (*Catalog, error) {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(layoutFS, "layouts")
		if err != nil {
			defaultCatalogErr = err
			return
		}
		defaultCatalog, defaultCatalogErr = Load(sub)
	})
	return defaultCatalog, defaultCatalogErr
}

// NewCatalog validates the panels and orders them by priority, keeping the
// first panel for every mode.
func NewCatalog(panels ...*Panel) (*Catalog, error) {
	c := &Catalog{byMode: make(map[Mode]*Panel)}

	sorted := make([]*Panel, len(panels))
	copy(sorted, panels)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	for _, p := range sorted {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byMode[p.Mode]; dup {
			logging.For("panel").Warn("Duplicate panel mode in catalog", "panel", p.Name, "mode", p.Mode.String())
			continue
		}
		c.byMode[p.Mode] = p
		c.panels = append(c.panels, p)
	}
	return c, nil
}

// Load reads charsets/, controls/ and panels/ from fsys.
func Load(fsys fs.FS) (*Catalog, error) {
	charsets := make(map[string]charsetFile)
	if err := decodeDir(fsys, "charsets", func(name string, data []byte) error {
		var cf charsetFile
		if _, err := toml.Decode(string(data), &cf); err != nil {
			return err
		}
		if cf.Name == "" {
			cf.Name = name
		}
		charsets[cf.Name] = cf
		return nil
	}); err != nil {
		return nil, err
	}

	controls := make(map[string]controlsFile)
	if err := decodeDir(fsys, "controls", func(name string, data []byte) error {
		var cf controlsFile
		if _, err := toml.Decode(string(data), &cf); err != nil {
			return err
		}
		if cf.Name == "" {
			cf.Name = name
		}
		controls[cf.Name] = cf
		return nil
	}); err != nil {
		return nil, err
	}

	var panels []*Panel
	if err := decodeDir(fsys, "panels", func(name string, data []byte) error {
		var pf panelFile
		if _, err := toml.Decode(string(data), &pf); err != nil {
			return err
		}
		p, err := buildPanel(pf, charsets, controls)
		if err != nil {
			return err
		}
		panels = append(panels, p)
		return nil
	}); err != nil {
		return nil, err
	}

	return NewCatalog(panels...)
}

func decodeDir(fsys fs.FS, dir string, fn func(name string, data []byte) error) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".toml" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("reading %s: %w", entry.Name(), err)
		}
		if err := fn(strings.TrimSuffix(entry.Name(), ".toml"), data); err != nil {
			return fmt.Errorf("decoding %s/%s: %w", dir, entry.Name(), err)
		}
	}
	return nil
}

func buildPanel(pf panelFile, charsets map[string]charsetFile, controls map[string]controlsFile) (*Panel, error) {
	mode, err := ParseMode(pf.Mode)
	if err != nil {
		return nil, fmt.Errorf("panel %s: %w", pf.Name, err)
	}
	if len(pf.Charsets) == 0 {
		return nil, fmt.Errorf("%w: %s lists no charsets", ErrMalformedPanel, pf.Name)
	}
	if pf.Columns <= 0 {
		return nil, fmt.Errorf("%w: %s has %d columns", ErrMalformedPanel, pf.Name, pf.Columns)
	}

	sets := make([][][]string, 0, len(pf.Charsets))
	labels := make([]string, 0, len(pf.Charsets))
	keys := 0
	for _, name := range pf.Charsets {
		cf, ok := charsets[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s references unknown charset %q", ErrMalformedPanel, pf.Name, name)
		}
		layers := make([][]string, len(cf.Layers))
		for i, rows := range cf.Layers {
			for _, row := range rows {
				layers[i] = append(layers[i], strings.Fields(row)...)
			}
			if len(layers[i]) > keys {
				keys = len(layers[i])
			}
		}
		sets = append(sets, layers)
		labels = append(labels, cf.Label)
	}

	if keys == 0 || keys%pf.Columns != 0 {
		return nil, fmt.Errorf("%w: %s has %d keys for %d columns", ErrMalformedPanel, pf.Name, keys, pf.Columns)
	}

	p := &Panel{
		Name:       pf.Name,
		Mode:       mode,
		Priority:   pf.Priority,
		Columns:    pf.Columns,
		Rows:       keys / pf.Columns,
		CellWidth:  pf.CellWidth,
		CellHeight: pf.CellHeight,
		Charsets:   labels,
	}

	for k := 0; k < keys; k++ {
		g := Group{Role: RoleDefault, Span: 1, Tint: DefaultTint, Action: ActionAppend}
		g.Outputs = make([][]string, len(sets))
		for cs, layers := range sets {
			g.Outputs[cs] = make([]string, len(layers))
			for layer, tokens := range layers {
				if k < len(tokens) && tokens[k] != EmptyKey {
					g.Outputs[cs][layer] = tokens[k]
				}
			}
		}
		p.Layout = append(p.Layout, g)
	}

	if pf.Controls == "" {
		return p, nil
	}
	cf, ok := controls[pf.Controls]
	if !ok {
		return nil, fmt.Errorf("%w: %s references unknown controls %q", ErrMalformedPanel, pf.Name, pf.Controls)
	}

	span := 0
	for _, def := range cf.Controls {
		g, err := buildControl(def, labels)
		if err != nil {
			return nil, fmt.Errorf("panel %s: %w", pf.Name, err)
		}
		span += g.Span
		p.Layout = append(p.Layout, g)
	}
	if span%pf.Columns != 0 {
		return nil, fmt.Errorf("%w: %s controls span %d cells for %d columns", ErrMalformedPanel, pf.Name, span, pf.Columns)
	}
	p.Rows += span / pf.Columns

	return p, nil
}

func buildControl(def controlDef, charsetLabels []string) (Group, error) {
	role, ok := roleNames[def.Role]
	if !ok {
		return Group{}, fmt.Errorf("%w: unknown control role %q", ErrMalformedPanel, def.Role)
	}
	action := role.DefaultAction()
	if def.Action != "" {
		if action, ok = actionNames[def.Action]; !ok {
			return Group{}, fmt.Errorf("%w: unknown control action %q", ErrMalformedPanel, def.Action)
		}
	}

	g := Group{Role: role, Span: def.Span, Action: action, Tint: SpecialTint}
	if g.Span == 0 {
		g.Span = 1
	}
	if def.Tint != nil {
		g.Tint = constants.HexToColor(*def.Tint)
	}

	n := len(charsetLabels)
	g.Outputs = make([][]string, n)
	for cs := 0; cs < n; cs++ {
		switch {
		case role == RoleCharset && len(def.Labels) == 0:
			// Labelled with the charset the button switches to.
			g.Outputs[cs] = []string{charsetLabels[(cs+1)%n]}
		default:
			g.Outputs[cs] = append([]string(nil), def.Labels...)
		}
	}
	return g, nil
}

// Lookup returns the panel registered for exactly one mode bit.
func (c *Catalog) Lookup(m Mode) (*Panel, bool) {
	p, ok := c.byMode[m]
	return p, ok
}

// Panels returns every panel in priority order.
func (c *Catalog) Panels() []*Panel {
	out := make([]*Panel, len(c.panels))
	copy(out, c.panels)
	return out
}

func (c *Catalog) Len() int {
	return len(c.panels)
}
