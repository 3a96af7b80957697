package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/olivoil/gesturenav/internal/backend"
	"github.com/olivoil/gesturenav/internal/event"
	"github.com/olivoil/gesturenav/internal/focus"
	"github.com/olivoil/gesturenav/internal/logging"
	"github.com/olivoil/gesturenav/internal/ui"
	"github.com/olivoil/gesturenav/internal/views/command"
	"github.com/olivoil/gesturenav/internal/views/logview"
	"github.com/olivoil/gesturenav/internal/widget"
)

// Set at build time.
var (
	AppName    = "gesturenav"
	AppVersion = "dev"
)

const (
	headerHeight = 2
	minLogWidth  = 30
)

// Options configure Run.
type Options struct {
	// ConfigPath overrides the default config location.
	ConfigPath string
}

// Run starts the TUI application.
func Run(opts Options) error {
	path := opts.ConfigPath
	if path == "" {
		path = backend.DefaultConfigPath(AppName)
	}
	cfg, err := backend.ReadConfigFile(path)
	if err != nil {
		return err
	}

	logPath := cfg.Log.File
	if logPath == "" {
		logPath = logging.DefaultPath(AppName)
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(logPath, AppName)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer f.Close()
	logger := logging.Init(f, logging.ParseLevel(cfg.Log.Level))
	logger.Info("starting", "version", AppVersion, "config", path)

	m, err := newModel(cfg, logger)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	client := backend.NewClient(cfg, p, logger)
	if err := client.Start(ctx); err != nil {
		return err
	}
	defer client.Close()
	go p.Send(ClientReadyMsg{Client: client})

	_, err = p.Run()
	return err
}

// model is the root application model. Widget state lives behind the
// screens pointer so widget callbacks survive model copies.
type model struct {
	width     int
	height    int
	ready     bool
	showHelp  bool
	showLog   bool
	logFocus  bool
	animating bool

	keys   KeyMap
	help   help.Model
	styles ui.Styles
	log    *slog.Logger
	now    func() time.Time

	client  *backend.Client
	screens *screens
	status  *publisherStatus

	commandView command.Model
	logView     logview.Model
}

func newModel(cfg backend.Config, logger *slog.Logger) (model, error) {
	strategy, err := focus.StrategyByName(cfg.Navigator.Strategy, logger)
	if err != nil {
		return model{}, err
	}
	bindings, err := focus.ParseBindings(cfg.Gestures)
	if err != nil {
		return model{}, err
	}

	theme := ui.LoadTheme(ui.ThemePath(AppName))
	styles := ui.NewStyles(theme)
	scr := newScreens(func(h focus.Host) *focus.Navigator {
		return focus.New(h,
			focus.WithStrategy(strategy),
			focus.WithBindings(bindings),
			focus.WithLogger(logger),
		)
	}, logger)

	return model{
		showLog:     true,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		styles:      styles,
		log:         logger,
		now:         time.Now,
		screens:     scr,
		status:      &publisherStatus{},
		commandView: command.New(theme),
		logView:     logview.New(styles),
	}, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layoutViews()
		return m, nil

	case ClientReadyMsg:
		m.client = msg.Client
		return m, nil

	case backend.EventMsg:
		return m.handleEvent(msg)

	case backend.LogMsg:
		logging.Publisher(m.log, msg.Log)
		m.logView.AddLog(msg)
		return m, nil

	case backend.DroppedMsg:
		m.logView.AddDropped(msg)
		return m, nil

	case backend.TransportErrMsg:
		m.logView.Addf("transport stopped: %v", msg.Err)
		return m, nil

	case ResetResultMsg:
		if msg.Err != nil {
			m.log.Warn("orientation reset failed", "err", msg.Err)
			m.logView.Addf("orientation reset failed: %v", msg.Err)
		} else {
			m.logView.Addf("orientation reset requested")
		}
		return m, nil

	case animateMsg:
		if m.screens.tree.Animate() {
			return m, animate()
		}
		m.animating = false
		return m, nil

	case command.ExecuteMsg:
		return m.execute(msg.Route)

	case tea.MouseClickMsg:
		if msg.Button != tea.MouseLeft || m.commandView.Focused() {
			return m, nil
		}
		hit := m.screens.tree.Touch(msg.X, msg.Y)
		if hit != nil {
			m.log.Debug("touch", "x", msg.X, "y", msg.Y, "widget", hit.ID())
		}
		return m.afterInput()

	case tea.KeyPressMsg:
		if m.commandView.Focused() {
			var cmd tea.Cmd
			m.commandView, cmd = m.commandView.Update(msg)
			m.layoutViews()
			return m, cmd
		}
		return m.handleKey(msg)
	}

	if m.logFocus {
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) handleEvent(msg backend.EventMsg) (tea.Model, tea.Cmd) {
	if m.status.apply(msg.Event, msg.Received) {
		m.logView.AddEvent(msg)
	}
	if g, ok := msg.Event.(event.Gesture); ok {
		return m.gesture(g.Name)
	}
	return m, nil
}

// gesture feeds one gesture name to the navigator, whatever its source.
func (m model) gesture(name string) (tea.Model, tea.Cmd) {
	out, ok := m.screens.nav.HandleGesture(name)
	m.status.gesture, m.status.outcome = name, out
	if !ok {
		m.log.Debug("gesture without binding", "gesture", name)
	}
	return m.afterInput()
}

func (m model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Back, m.keys.Quit) {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Pane):
		if m.showLog {
			m.logFocus = !m.logFocus
			if m.logFocus {
				m.logView.Show()
			} else {
				m.logView.Hide()
			}
		}
		return m, nil
	}

	if m.logFocus {
		if key.Matches(msg, m.keys.Back) {
			m.logFocus = false
			m.logView.Hide()
			return m, nil
		}
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Command):
		cmd := m.commandView.Focus()
		m.layoutViews()
		return m, cmd
	case key.Matches(msg, m.keys.Reset):
		return m, m.requestReset()
	case key.Matches(msg, m.keys.Touch):
		m.simulateTouch()
		return m.afterInput()
	}

	for _, gk := range m.keys.gestureKeys() {
		if key.Matches(msg, gk.binding) {
			return m.gesture(gk.gesture)
		}
	}
	return m, nil
}

func (m model) execute(r command.Route) (tea.Model, tea.Cmd) {
	switch r.Kind {
	case command.RouteGesture:
		return m.gesture(r.Gesture)
	case command.RouteNav:
		out := m.screens.nav.Run(r.Command)
		m.status.gesture, m.status.outcome = r.Command.String(), out
		return m.afterInput()
	case command.RouteReset:
		return m, m.requestReset()
	case command.RouteTouch:
		if r.HasPoint {
			m.screens.tree.Touch(r.X, r.Y)
		} else {
			m.simulateTouch()
		}
		return m.afterInput()
	case command.RouteStrategy:
		s, err := focus.StrategyByName(r.Strategy, m.log)
		if err != nil {
			m.commandView.SetError(err)
			return m, nil
		}
		m.screens.nav.SetStrategy(s)
		m.commandView.SetResult("selection strategy: " + r.Strategy)
		return m, nil
	case command.RouteLog:
		m.showLog = !m.showLog
		if !m.showLog {
			m.logFocus = false
			m.logView.Hide()
		}
		m.layoutViews()
		return m, nil
	case command.RouteHelp:
		m.commandView.Blur()
		m.showHelp = true
		return m, nil
	case command.RouteQuit:
		return m, tea.Quit
	}
	return m, nil
}

// afterInput settles the widget tree, runs what widgets asked for and
// starts the animation clock when a list began scrolling.
func (m model) afterInput() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	for {
		m.screens.settle()
		notes, reqs := m.screens.drain()
		for _, n := range notes {
			m.logView.Addf("%s", n)
		}
		if len(reqs) == 0 {
			break
		}
		for _, r := range reqs {
			switch r {
			case reqReset:
				cmds = append(cmds, m.requestReset())
			case reqSimulateTouch:
				m.simulateTouch()
			}
		}
	}
	if m.screens.tree.Animating() && !m.animating {
		m.animating = true
		cmds = append(cmds, animate())
	}
	return m, tea.Batch(cmds...)
}

// simulateTouch enters touch mode without touching a widget. The navigator
// takes focus back on the next settle, which leaves touch mode again.
func (m *model) simulateTouch() {
	m.screens.tree.SetTouchMode(true)
	m.log.Debug("touch simulated")
}

func (m *model) requestReset() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		if client == nil {
			return ResetResultMsg{Err: errors.New("publisher client not started")}
		}
		return ResetResultMsg{Err: client.RequestOrientationReset()}
	}
}

func animate() tea.Cmd {
	return tea.Tick(widget.FrameInterval, func(time.Time) tea.Msg {
		return animateMsg{}
	})
}

func (m *model) logWidth() int {
	if !m.showLog || m.width < 2*minLogWidth {
		return 0
	}
	return max(minLogWidth, m.width/3)
}

func (m *model) bodyHeight() int {
	footer := 1 + m.commandView.MenuHeight()
	return max(3, m.height-headerHeight-footer)
}

func (m *model) layoutViews() {
	logW := m.logWidth()
	h := m.bodyHeight()
	m.screens.SetArea(widget.Rect{X: 0, Y: headerHeight, W: m.width - logW, H: h})
	m.logView.SetSize(max(logW-1, 1), h)
	m.commandView.SetSize(m.width, h)
	m.help.SetWidth(m.width)
}

func (m model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion

	if !m.ready {
		v.SetContent("Starting...")
		return v
	}
	if m.showHelp {
		v.SetContent(m.renderHelpOverlay())
		return v
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteByte('\n')

	h := m.bodyHeight()
	body := m.commandView.ViewResult()
	if body == "" {
		body = m.screens.tree.Render(m.styles.Widgets)
	}
	if logW := m.logWidth(); logW > 0 {
		pane := m.styles.Sidebar.Height(h).Render(m.logView.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(m.width-logW).Height(h).Render(body),
			pane,
		)
	}
	b.WriteString(fitLines(body, h))
	b.WriteByte('\n')

	if m.commandView.Focused() {
		b.WriteString(m.commandView.ViewInput())
	} else {
		b.WriteString(m.renderHelpLine())
	}

	v.SetContent(b.String())
	return v
}

func (m *model) renderHeader() string {
	title := m.styles.Header.Render(fmt.Sprintf(" %s ", AppName))
	cur := m.screens.current()
	state := m.screens.nav.State()

	mode := state.Mode.String()
	if m.screens.tree.InTouchMode() {
		mode = "touch"
	}
	crumbs := m.styles.Dim.Render(fmt.Sprintf("%s  mode:%s", cur.name, mode))
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		title, "  ", m.status.render(m.styles, m.now()), "  ", crumbs,
	)
	return header + "\n" + m.styles.Dim.Render(strings.Repeat("━", m.width))
}

func (m *model) renderHelpLine() string {
	if m.logFocus {
		return m.styles.Dim.Render(" ↑↓ scroll  │  tab/esc back to widgets")
	}
	return " " + m.help.View(m.keys)
}

func (m *model) renderHelpOverlay() string {
	title := m.styles.Header.Render(fmt.Sprintf(" %s %s ", AppName, AppVersion))
	h := m.help
	h.ShowAll = true
	commands := `
  Commands (/)
    gesture <name>    inject a gesture, e.g. gesture Swipe R
    nav <command>     right, left, up, down, select, back
    strategy <name>   animated, plain, dpad
    touch [x y]       simulate a touch (focus bounces back) or tap a cell
    reset             reset sensor orientation
    log               toggle the publisher pane
    quit

  Mouse clicks are touch input; gestures take focus back.
`
	return title + "\n\n" + h.View(m.keys) + "\n" + commands + "\n  " + m.styles.Dim.Render("Press ? to close")
}

// fitLines pads or cuts s to exactly n lines.
func fitLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
