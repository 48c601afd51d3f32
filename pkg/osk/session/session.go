// Package session runs one on-screen keyboard dialog: panel selection, the
// input goroutine and the open/close lifecycle.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/BrandonKowalski/osk/pkg/osk/dispatch"
	"github.com/BrandonKowalski/osk/pkg/osk/grid"
	"github.com/BrandonKowalski/osk/pkg/osk/i18n"
	"github.com/BrandonKowalski/osk/pkg/osk/internal/logging"
	"github.com/BrandonKowalski/osk/pkg/osk/panel"
	"github.com/BrandonKowalski/osk/pkg/osk/present"
	"github.com/BrandonKowalski/osk/pkg/osk/textbuf"
	"go.uber.org/atomic"
)

var (
	ErrAlreadyOpen  = errors.New("keyboard session already open")
	ErrStartTimeout = errors.New("keyboard input loop did not start")
)

type State int32

const (
	StateClosed State = iota
	StateOpen
	StateClosing
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	}
	return "closed"
}

type Localizer interface {
	GetString(key string) string
}

type CuePlayer interface {
	Play(cue dispatch.Cue)
}

// PointerState is owned by another component and read once per frame.
type PointerState interface {
	Pointer() (x, y int, visible bool)
}

type Options struct {
	Catalog   *panel.Catalog
	Localizer Localizer
	Cues      CuePlayer
	Pointer   PointerState
	// Poster is the context the close callback runs on.
	Poster   Poster
	Source   InputSource
	Resolver dispatch.KeyResolver

	OnClose func(result dispatch.Result, text string)
	OnKey   func(msg dispatch.KeyMessage)
	Clock   func() time.Time
}

// Session is one open-to-closed lifetime of the keyboard. Grid, selection and
// buffer belong to the input goroutine; the render path only reads the
// published primitives and the atomics.
type Session struct {
	cfg  Config
	opts Options

	state     *atomic.Int32
	stop      *atomic.Bool
	launched  *atomic.Bool
	started   *atomic.Bool
	startedCh chan struct{}
	done      chan struct{}
	cancel    context.CancelFunc
	closeOnce sync.Once
	// beforeRun runs on the input goroutine before it signals Start.
	beforeRun func()

	selection  panel.Selection
	active     int
	grid       *grid.Grid
	buf        *textbuf.Buffer
	dispatcher *dispatch.Dispatcher
	assembler  *present.Assembler
	layout     present.Layout
	frameX     int
	frameY     int
	positioned bool
	resetPulse bool
	hints      map[present.HintKind]string

	published   *atomic.Pointer[[]present.Primitive]
	activePanel *atomic.Pointer[panel.Panel]
	text        *atomic.String
	fade        *present.Fade
	visible     *atomic.Bool
}

// New selects the panels and builds the first grid. The session does not
// take input until Start.
func New(cfg Config, opts Options) (*Session, error) {
	cfg = cfg.withDefaults()

	if opts.Catalog == nil {
		catalog, err := panel.DefaultCatalog()
		if err != nil {
			return nil, err
		}
		opts.Catalog = catalog
	}
	if opts.Localizer == nil {
		opts.Localizer = i18n.Default()
	}
	if opts.Poster == nil {
		opts.Poster = GoPoster{}
	}
	if opts.Source == nil {
		opts.Source = NewChanSource(0)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	s := &Session{
		cfg:         cfg,
		opts:        opts,
		state:       atomic.NewInt32(int32(StateClosed)),
		stop:        atomic.NewBool(false),
		launched:    atomic.NewBool(false),
		started:     atomic.NewBool(false),
		startedCh:   make(chan struct{}),
		done:        make(chan struct{}),
		assembler:   present.NewAssembler(),
		published:   atomic.NewPointer[[]present.Primitive](nil),
		activePanel: atomic.NewPointer[panel.Panel](nil),
		text:        atomic.NewString(""),
		fade:        present.NewFade(0),
		visible:     atomic.NewBool(false),
	}

	s.selection = opts.Catalog.Select(panel.Request{
		Modes:            cfg.Modes,
		PreferHostLocale: cfg.PreferHostLocale,
		FirstView:        cfg.FirstView,
	}, cfg.Host)
	if len(s.selection.Panels) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", panel.ErrMalformedPanel)
	}
	s.active = s.selection.Active

	s.buf = textbuf.New(cfg.MaxLength, s.selection.Password)
	s.buf.Replace(cfg.InitialText)
	s.text.Store(s.buf.Text())

	s.hints = map[present.HintKind]string{
		present.HintCancel:    opts.Localizer.GetString(i18n.Cancel),
		present.HintSpace:     opts.Localizer.GetString(i18n.Space),
		present.HintBackspace: opts.Localizer.GetString(i18n.Backspace),
		present.HintShift:     opts.Localizer.GetString(i18n.Shift),
		present.HintAccept:    opts.Localizer.GetString(i18n.Accept),
	}

	g, err := grid.Build(s.selection.Panels[s.active], cfg.Prohibit)
	if err != nil {
		return nil, err
	}
	s.dispatcher = dispatch.New(grid.NewNavigator(g, 0), s.buf, dialogHost{s}, dispatch.Options{
		Prohibit: cfg.Prohibit,
		Resolver: opts.Resolver,
		OnKey:    opts.OnKey,
	})
	s.setGrid(g)
	s.publish()

	return s, nil
}

// Open is New followed by Start.
func Open(ctx context.Context, cfg Config, opts Options) (*Session, error) {
	s, err := New(cfg, opts)
	if err != nil {
		return nil, err
	}
	if err := s.Start(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Start launches the input goroutine and waits until it is running. The fade
// in begins at the same time. A session starts at most once, even when the
// first attempt timed out.
func (s *Session) Start(ctx context.Context) error {
	if !s.launched.CompareAndSwap(false, true) {
		return ErrAlreadyOpen
	}
	if !s.state.CompareAndSwap(int32(StateClosed), int32(StateOpen)) {
		return ErrAlreadyOpen
	}

	s.visible.Store(true)
	s.fade.Start(0, 1, present.FadeDuration, s.opts.Clock(), nil)

	ctx, s.cancel = context.WithCancel(ctx)
	go s.run(ctx)

	deadline := time.NewTimer(s.cfg.StartTimeout)
	defer deadline.Stop()
	retry := time.NewTicker(startRetryInterval)
	defer retry.Stop()

	for !s.started.Load() {
		select {
		case <-s.startedCh:
		case <-retry.C:
		case <-deadline.C:
			s.stop.Store(true)
			s.cancel()
			s.visible.Store(false)
			s.state.Store(int32(StateClosed))
			logging.For("session").Error("Keyboard input loop did not start", "timeout", s.cfg.StartTimeout)
			return ErrStartTimeout
		}
	}

	logging.For("session").Debug("Keyboard opened",
		"panel", s.selection.Panels[s.active].Name,
		"panels", len(s.selection.Panels),
		"password", s.selection.Password)
	return nil
}

func (s *Session) run(ctx context.Context) {
	defer close(s.done)

	if s.beforeRun != nil {
		s.beforeRun()
	}
	s.started.Store(true)
	close(s.startedCh)

	logger := logging.For("session")
	for !s.stop.Load() {
		ev, err := s.opts.Source.Next(ctx)
		if err != nil {
			if errors.Is(err, ErrSourceClosed) {
				logger.Debug("Keyboard input source closed")
				s.Close(dispatch.ResultCancel)
			}
			return
		}
		if s.stop.Load() {
			return
		}
		s.handle(ev)
	}
}

func (s *Session) handle(ev Event) {
	var out dispatch.Outcome
	switch ev.Kind {
	case EventButton:
		out = s.dispatcher.HandleButton(ev.Button)
	case EventKey:
		out = s.dispatcher.HandleKey(ev.Key)
	}

	if out.Cue != dispatch.CueNone && s.opts.Cues != nil {
		s.opts.Cues.Play(out.Cue)
	}
	if out.TextChanged {
		s.text.Store(s.buf.Text())
	}
	if out.ResetPulse {
		s.resetPulse = true
	}
	if out.Dirty {
		s.assembler.Invalidate()
	}
	if s.State() == StateOpen {
		s.publish()
	}
}

// setGrid installs a freshly built grid and lays the dialog out around it.
func (s *Session) setGrid(g *grid.Grid) {
	s.grid = g
	s.activePanel.Store(g.Panel)
	s.updateLayout()
}

func (s *Session) layoutParams() present.LayoutParams {
	p := s.grid.Panel
	return present.LayoutParams{
		Columns:    p.Columns,
		Rows:       p.Rows,
		CellWidth:  p.CellWidth,
		CellHeight: p.CellHeight,
		Scale:      s.cfg.Scale,
		NoReturn:   s.cfg.Prohibit.Has(grid.NoReturn),
		AlignX:     s.cfg.AlignX,
		AlignY:     s.cfg.AlignY,
		OffsetX:    s.cfg.OffsetX,
		OffsetY:    s.cfg.OffsetY,
		ScreenW:    s.cfg.ScreenW,
		ScreenH:    s.cfg.ScreenH,
	}
}

// updateLayout aligns the frame the first time and afterwards only clamps
// the current position into the screen margins.
func (s *Session) updateLayout() {
	lp := s.layoutParams()
	if !s.positioned {
		s.frameX, s.frameY = present.Position(lp)
		s.positioned = true
	}

	s.layout = present.Compute(lp, s.frameX, s.frameY)
	s.frameX, s.frameY = s.layout.Frame.X, s.layout.Frame.Y
	s.grid.Place(s.layout.Grid.X, s.layout.Grid.Y, s.layout.CellW, s.layout.CellH)
	s.assembler.Invalidate()
}

func (s *Session) publish() {
	placeholder := s.opts.Localizer.GetString(i18n.EnterText)
	if s.buf.Password() {
		placeholder = s.opts.Localizer.GetString(i18n.EnterPassword)
	}

	nav := s.dispatcher.Navigator()
	prims := s.assembler.Compile(present.Scene{
		Layout:      s.layout,
		Grid:        s.grid,
		Charset:     nav.Charset(),
		Layer:       nav.Layer(),
		Title:       s.cfg.Title,
		Placeholder: placeholder,
		Text:        s.buf.Display(),
		Caret:       s.buf.Caret(),
		Dimmer:      s.cfg.Dimmer,
		BaseTint:    s.cfg.BaseTint,
		Hints:       s.hints,
		ResetPulse:  s.resetPulse,
		Now:         s.opts.Clock(),
	})
	s.resetPulse = false
	s.published.Store(&prims)
}

// Frame advances the fade and returns what to draw now. It is the only
// method the render goroutine calls.
func (s *Session) Frame(now time.Time) []present.Primitive {
	alpha := s.fade.Tick(now)
	if !s.visible.Load() {
		return nil
	}

	prims := s.published.Load()
	if prims == nil {
		return nil
	}
	out := present.ApplyAlpha(*prims, alpha)

	if s.opts.Pointer != nil {
		if x, y, visible := s.opts.Pointer.Pointer(); visible {
			size := present.Scaled(16, s.cfg.Scale)
			out = append(out, present.Primitive{
				Kind:  present.KindImage,
				Rect:  present.Rect{X: x, Y: y, W: size, H: size},
				Image: present.ImagePointer,
				Fore:  constants.Color{R: 255, G: 255, B: 255, A: 255}.Fade(alpha),
				Caret: -1,
			})
		}
	}
	return out
}

// Close starts the fade out. When it completes the result is posted to the
// Poster and delivered exactly once. Later calls are ignored.
//
// Frame drives the fade. If nothing calls Frame within CloseDeadline the fade
// is cut short so headless hosts still get their result.
func (s *Session) Close(result dispatch.Result) {
	if !s.state.CompareAndSwap(int32(StateOpen), int32(StateClosing)) {
		return
	}

	s.dispatcher.IgnoreInput(true)
	s.stop.Store(true)
	text := s.text.Load()

	logging.For("session").Debug("Keyboard closing", "result", result.String())

	s.fade.Start(s.fade.Alpha(), 0, present.FadeDuration, s.opts.Clock(), func() {
		s.visible.Store(false)
		s.opts.Poster.Post(func() { s.finish(result, text) })
	})
	time.AfterFunc(s.cfg.CloseDeadline, s.fade.Finish)
}

func (s *Session) finish(result dispatch.Result, text string) {
	s.closeOnce.Do(func() {
		s.state.Store(int32(StateClosed))
		if s.cancel != nil {
			s.cancel()
		}
		if s.opts.OnClose != nil {
			s.opts.OnClose(result, text)
		}
	})
}

func (s *Session) State() State {
	return State(s.state.Load())
}

func (s *Session) Visible() bool {
	return s.visible.Load()
}

// Text is the current buffer content. Safe from any goroutine.
func (s *Session) Text() string {
	return s.text.Load()
}

func (s *Session) Panel() *panel.Panel {
	return s.activePanel.Load()
}

func (s *Session) Panels() []*panel.Panel {
	return append([]*panel.Panel(nil), s.selection.Panels...)
}

func (s *Session) Password() bool {
	return s.selection.Password
}

func (s *Session) InterceptsInput() bool {
	return s.cfg.InterceptInput
}

func (s *Session) EnableButtons(enabled bool) {
	s.dispatcher.EnableButtons(enabled)
}

func (s *Session) EnableKeys(enabled bool) {
	s.dispatcher.EnableKeys(enabled)
}

// Done is closed when the input goroutine has exited.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// dialogHost carries the dispatcher's dialog actions. Its methods run on the
// input goroutine.
type dialogHost struct {
	s *Session
}

func (h dialogHost) StepPanel(forward bool) {
	s := h.s
	n := len(s.selection.Panels)
	if n <= 1 {
		return
	}

	next := s.active
	switch {
	case forward:
		next = (next + 1) % n
	case next == 0:
		next = n - 1
	default:
		next--
	}

	anchor := s.dispatcher.Navigator().Index()
	g, err := grid.Build(s.selection.Panels[next], s.cfg.Prohibit)
	if err != nil {
		logging.For("session").Error("Failed to build keyboard panel", "panel", s.selection.Panels[next].Name, "error", err)
		return
	}
	s.active = next
	s.dispatcher.SetNavigator(grid.NewNavigator(g, anchor))
	s.setGrid(g)
}

func (h dialogHost) MoveFrame(dx, dy int) {
	h.s.frameX += dx
	h.s.frameY += dy
	h.s.updateLayout()
}

func (h dialogHost) Close(result dispatch.Result) {
	h.s.Close(result)
}
