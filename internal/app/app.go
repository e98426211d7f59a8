package app

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/pugivik/sumas/internal/config"
	"github.com/pugivik/sumas/internal/router"
	"github.com/pugivik/sumas/internal/screen"
	"github.com/pugivik/sumas/internal/screens/home"
	sessionscreen "github.com/pugivik/sumas/internal/screens/session"
	"github.com/pugivik/sumas/internal/screens/welcome"
	"github.com/pugivik/sumas/internal/session"
	"github.com/pugivik/sumas/internal/store"
	"github.com/pugivik/sumas/internal/ui/layout"
)

// debugEnv enables the debug log when set to any non-empty value.
const debugEnv = "SUMAS_DEBUG"

// Options wires the TUI to its dependencies.
type Options struct {
	// EventRepo records sessions and answers. Nil disables persistence.
	EventRepo store.EventRepo

	// Configure resolves the config for a mode. Defaults to the presets.
	Configure home.ConfigureFunc

	// Play, when set, opens a session in this mode right away. Leaving it
	// returns to the home screen.
	Play session.Mode

	// Splash shows the welcome animation before the home screen. Ignored
	// when Play is set.
	Splash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	start  screen.Screen
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) (AppModel, error) {
	configure := opts.Configure
	if configure == nil {
		configure = session.Preset
	}
	newHome := func() screen.Screen { return home.New(opts.EventRepo, configure) }

	var m AppModel
	if opts.Splash && opts.Play == "" {
		m.router = router.New(welcome.New(newHome))
	} else {
		m.router = router.New(newHome())
	}
	if opts.Play != "" {
		cfg, err := configure(opts.Play)
		if err != nil {
			return AppModel{}, err
		}
		m.start = sessionscreen.New(cfg, opts.EventRepo)
	}
	return m, nil
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init()}
	if m.start != nil {
		start := m.start
		cmds = append(cmds, func() tea.Msg { return router.PushScreenMsg{Screen: start} })
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws header, active screen and footer for the current size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var title, status string
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	} else {
		hints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navegar"},
			{Key: "Enter", Description: "Elegir"},
		}
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Salir"})
}

// Run starts the Bubble Tea program and blocks until it exits. Every
// screen still on the stack is closed before returning, so an unfinished
// session is still recorded.
func Run(opts Options) error {
	if os.Getenv(debugEnv) != "" {
		path := config.DefaultLogPath()
		if err := config.EnsureDir(path); err != nil {
			return err
		}
		f, err := tea.LogToFile(path, "sumas")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	m, err := newAppModel(opts)
	if err != nil {
		return err
	}
	defer m.router.Close()

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
