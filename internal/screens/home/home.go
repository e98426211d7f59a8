package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/pugivik/sumas/internal/router"
	"github.com/pugivik/sumas/internal/screen"
	"github.com/pugivik/sumas/internal/screens/history"
	sessionscreen "github.com/pugivik/sumas/internal/screens/session"
	"github.com/pugivik/sumas/internal/session"
	"github.com/pugivik/sumas/internal/store"
	"github.com/pugivik/sumas/internal/ui/components"
	"github.com/pugivik/sumas/internal/ui/layout"
)

// ConfigureFunc resolves the session config for a mode, applying the
// user's config file on top of the preset.
type ConfigureFunc func(mode session.Mode) (session.Config, error)

// stats is the dashboard data shown above the menu.
type stats struct {
	best   map[session.Mode]int
	totals store.Totals
	last   *store.SessionSummaryRecord
}

type statsLoadedMsg struct {
	stats stats
	err   error
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	eventRepo store.EventRepo
	configure ConfigureFunc

	menu       components.Menu
	menuLabels []string
	modes      []session.Mode // parallel to the first menu items

	stats  stats
	mood   Mood
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen. eventRepo may be nil; configure defaults
// to the built-in presets.
func New(eventRepo store.EventRepo, configure ConfigureFunc) *HomeScreen {
	if configure == nil {
		configure = session.Preset
	}
	h := &HomeScreen{
		eventRepo: eventRepo,
		configure: configure,
		modes:     session.Modes(),
	}

	var items []components.MenuItem
	for _, mode := range h.modes {
		items = append(items, components.MenuItem{
			Label:  strings.ToUpper(mode.DisplayName()),
			Action: func() tea.Cmd { return h.startSession(mode) },
		})
	}
	items = append(items,
		components.MenuItem{Label: "HISTORIAL", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(eventRepo)}
			}
		}},
		components.MenuItem{Label: "SALIR", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)

	h.menu = components.NewMenu(items)
	h.menuLabels = h.menu.Labels()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume refreshes the dashboard after a session or the history screen.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.err != nil {
			h.errMsg = msg.err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.stats = msg.stats
		h.mood = mascotFor(msg.stats)
		return h, nil
	case tea.KeyMsg:
		if msg.String() == "esc" || msg.String() == "q" {
			return h, tea.Quit
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header, footer and frame gaps
	termHeight := height + 8
	compact := layout.IsCompact(width, termHeight)

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mood, cw))
	}
	sections = append(sections, renderStatsBar(h.statsLine(compact), cw))
	if h.errMsg != "" {
		sections = append(sections, renderError(h.errMsg, cw))
	}
	if termHeight < 30 {
		sections = append(sections, renderArcadeMenuCompact(h.menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.menuLabels, h.menu.Selected, cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Inicio"
}

// selectedMode returns the mode under the cursor, if the cursor is on one.
func (h *HomeScreen) selectedMode() (session.Mode, bool) {
	if h.menu.Selected < len(h.modes) {
		return h.modes[h.menu.Selected], true
	}
	return "", false
}

func (h *HomeScreen) statsLine(compact bool) statsView {
	v := statsView{
		sessions: h.stats.totals.Sessions,
		accuracy: h.stats.totals.Accuracy(),
		compact:  compact,
	}
	if mode, ok := h.selectedMode(); ok {
		v.mode = mode.DisplayName()
		if best, ok := h.stats.best[mode]; ok {
			v.best = fmt.Sprint(best)
		}
	}
	return v
}

func (h *HomeScreen) startSession(mode session.Mode) tea.Cmd {
	cfg, err := h.configure(mode)
	if err != nil {
		h.errMsg = err.Error()
		return nil
	}
	h.errMsg = ""
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: sessionscreen.New(cfg, h.eventRepo)}
	}
}

func (h *HomeScreen) loadStats() tea.Cmd {
	repo := h.eventRepo
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		st := stats{best: make(map[session.Mode]int)}

		for _, mode := range session.Modes() {
			best, ok, err := repo.BestScore(ctx, string(mode))
			if err != nil {
				return statsLoadedMsg{err: err}
			}
			if ok {
				st.best[mode] = best
			}
		}

		totals, err := repo.Totals(ctx)
		if err != nil {
			return statsLoadedMsg{err: err}
		}
		st.totals = totals

		recent, err := repo.QuerySessionSummaries(ctx, store.QueryOpts{Limit: 1})
		if err != nil {
			return statsLoadedMsg{err: err}
		}
		if len(recent) > 0 {
			st.last = &recent[0]
		}
		return statsLoadedMsg{stats: st}
	}
}

// mascotFor celebrates when the latest session set the record for its mode
// and worries when it ended below zero.
func mascotFor(st stats) Mood {
	if st.last == nil {
		return MoodCalm
	}
	if st.last.Score < 0 {
		return MoodWorried
	}
	if best, ok := st.best[session.Mode(st.last.Mode)]; ok && st.last.Score > 0 && st.last.Score >= best {
		return MoodProud
	}
	return MoodCalm
}
