package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	var body string
	switch {
	case m.detailOpen:
		body = m.Detail.View()
	case m.Tab == TabHome:
		body = m.HomeList.View()
	case m.Tab == TabSearch, m.Tab == TabSuggest:
		body = m.renderSearchTab()
	case m.Tab == TabSaved:
		body = m.renderSavedTab()
	}

	bodyHeight := m.Height - HeaderHeight - FooterHeight
	body = lipgloss.NewStyle().
		Padding(0, 2).
		Width(m.Width).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(body)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabBar(),
		"",
		body,
		m.renderFooter(),
	)
}

func (m Model) renderTabBar() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		label := string(rune('1'+i)) + " " + name
		if Tab(i) == m.Tab {
			tabs[i] = styles.ActiveTabStyle.Render(label)
		} else {
			tabs[i] = styles.InactiveTabStyle.Render(label)
		}
	}
	brand := styles.AccentStyle.Bold(true).Render("marquee") + "  "
	return brand + strings.Join(tabs, " ")
}

func (m Model) renderSearchTab() string {
	mode, _ := m.activeMode()

	input := m.inputs[mode].View()
	if m.Tab == TabSearch {
		keyword := styles.DimBadgeStyle.Render("keyword")
		ai := styles.DimBadgeStyle.Render("AI")
		if m.searchMode == service.ModeKeyword {
			keyword = styles.BadgeStyle.Render("keyword")
		} else {
			ai = styles.BadgeStyle.Render("AI")
		}
		input = keyword + ai + " " + input
	}

	return input + "\n\n" + m.results[mode].View()
}

func (m Model) renderSavedTab() string {
	filter := " "
	if m.filterActive {
		filter = m.filterInput.View()
	}
	return filter + "\n\n" + m.SavedList.View()
}

// renderFooter renders a single-line footer: status on the left, key hints
// for the current screen on the right
func (m Model) renderFooter() string {
	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	right := renderHints(m.hints())

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

// hints returns the key bindings relevant to the current screen
func (m Model) hints() []key.Binding {
	switch {
	case m.detailOpen:
		return []key.Binding{Keys.ToggleSaved, Keys.Enter, Keys.Escape}
	case m.typing:
		if m.Tab == TabSearch {
			return []key.Binding{Keys.ToggleMode, Keys.Enter, Keys.Escape}
		}
		return []key.Binding{Keys.Enter, Keys.Escape}
	case m.Tab == TabHome:
		return []key.Binding{Keys.ToggleWindow, Keys.ToggleSaved, Keys.Enter, Keys.Quit}
	case m.Tab == TabSaved:
		return []key.Binding{Keys.Filter, Keys.ToggleSaved, Keys.Enter, Keys.Quit}
	default:
		return []key.Binding{Keys.Focus, Keys.ToggleSaved, Keys.Enter, Keys.Quit}
	}
}

func renderHints(bindings []key.Binding) string {
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		h := b.Help()
		parts[i] = styles.HelpKeyStyle.Render(h.Key) + " " + styles.HelpDescStyle.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}
