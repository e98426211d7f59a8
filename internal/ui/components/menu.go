package components

import (
	"strconv"

	tea "charm.land/bubbletea/v2"
)

// MenuItem is one entry of a Menu. Action runs when the entry is chosen.
type MenuItem struct {
	Label  string
	Action func() tea.Cmd
}

// Menu is a vertical list with a cursor that wraps around both ends.
// Digits 1-9 choose the matching entry directly.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu returns a menu with the cursor on the first item.
func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Update moves the cursor or runs the chosen item's action.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch k := key.String(); k {
	case "up", "k":
		m.Selected = (m.Selected - 1 + len(m.Items)) % len(m.Items)
	case "down", "j", "tab":
		m.Selected = (m.Selected + 1) % len(m.Items)
	case "home":
		m.Selected = 0
	case "end":
		m.Selected = len(m.Items) - 1
	case "enter", "space":
		return m, m.choose()
	default:
		if n, err := strconv.Atoi(k); err == nil && n >= 1 && n <= len(m.Items) {
			m.Selected = n - 1
			return m, m.choose()
		}
	}
	return m, nil
}

func (m Menu) choose() tea.Cmd {
	if act := m.Items[m.Selected].Action; act != nil {
		return act()
	}
	return nil
}

// Labels returns the item labels in order.
func (m Menu) Labels() []string {
	labels := make([]string, len(m.Items))
	for i, item := range m.Items {
		labels[i] = item.Label
	}
	return labels
}
