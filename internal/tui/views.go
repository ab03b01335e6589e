package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/moodreel/moodreel/internal/tui/styles"
)

// chromeHeight is the single footer line below the content area
const chromeHeight = 1

const logo = `  __ _  ___  ___  ___/ /______ ___ / /
 /  ' \/ _ \/ _ \/ _  / __/ -_) -_) /
/_/_/_/\___/\___/\_,_/_/  \__/\__/_/`

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	var view string
	switch m.State {
	case StateWelcome:
		view = m.renderWelcome()
	case StateExtracting:
		view = m.renderLoading("Reading your mood...")
	case StateFetching:
		view = m.renderLoading("Finding titles...")
	case StateError:
		view = m.renderError()
	case StateResults:
		view = m.renderResults()
	case StateHelp:
		view = m.renderHelp()
	}

	if m.Inspector.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.Inspector.View())
	}

	return view
}

// renderWelcome renders the prompt screen: logo, input line, recent searches
func (m Model) renderWelcome() string {
	var b strings.Builder

	b.WriteString(styles.AccentStyle.Render(logo))
	b.WriteString("\n\n")
	b.WriteString(styles.SubtitleStyle.Render("What are you in the mood for?"))
	b.WriteString("\n\n")
	b.WriteString(m.Input.View())
	b.WriteString("\n")

	if !m.HistoryList.IsEmpty() {
		b.WriteString("\n")
		b.WriteString(m.HistoryList.View())
		b.WriteString("\n")
	}

	content := lipgloss.NewStyle().Padding(1, 2).Render(b.String())

	body := lipgloss.Place(m.Width, m.Height-chromeHeight,
		lipgloss.Left, lipgloss.Top, content)

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderFooter(
		"enter search · ↑/↓ history · ? help · C-c quit"))
}

// renderLoading renders the in-flight states with a spinner
func (m Model) renderLoading(stage string) string {
	frame := styles.SpinnerFrames[m.SpinnerFrame%len(styles.SpinnerFrames)]
	line := styles.SpinnerStyle.Render(frame) + " " + styles.TitleStyle.Render(stage)

	query := styles.DimStyle.Render(styles.Truncate("\""+strings.TrimSpace(m.Input.Value())+"\"", m.Width-4))

	content := line + "\n\n" + query
	if m.StatusMsg != "" && !m.StatusIsErr {
		content += "\n" + styles.SubtitleStyle.Render(m.StatusMsg)
	}

	body := lipgloss.Place(m.Width, m.Height-chromeHeight,
		lipgloss.Center, lipgloss.Center, content)

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderFooter("esc cancel · C-c quit"))
}

// renderError renders the terminal error state
func (m Model) renderError() string {
	title := styles.ErrorStyle.Render("Search failed")
	detail := lipgloss.NewStyle().Width(min(m.Width-8, 70)).Render(m.ErrorText)

	content := title + "\n\n" + detail

	body := lipgloss.Place(m.Width, m.Height-chromeHeight,
		lipgloss.Center, lipgloss.Center, content)

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderFooter("enter/esc back · q quit"))
}

// renderResults renders the results grid
func (m Model) renderResults() string {
	help := "j/k move · enter details · / filter · n new search · q quit"
	return lipgloss.JoinVertical(lipgloss.Left, m.Grid.View(), m.renderFooter(help))
}

// renderHelp renders the key binding reference
func (m Model) renderHelp() string {
	rows := []struct{ key, desc string }{
		{"enter", "search the typed mood / open details"},
		{"↑/↓", "select a recent search"},
		{"j/k", "move in results"},
		{"g/G", "jump to top/bottom"},
		{"C-d/C-u", "half page down/up"},
		{"/", "filter results by name"},
		{"i", "title details"},
		{"n", "new search"},
		{"esc", "cancel / back"},
		{"?", "toggle this help"},
		{"C-c", "quit"},
	}

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("Keys"))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%s  %s\n",
			styles.HelpKeyStyle.Render(fmt.Sprintf("%8s", row.key)),
			styles.HelpDescStyle.Render(row.desc)))
	}

	modal := styles.ModalStyle.Render(b.String())
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, modal)
}

// renderFooter renders the single-line footer: status on the left, key hints
// on the right
func (m Model) renderFooter(help string) string {
	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(styles.Truncate(m.StatusMsg, m.Width/2))
		} else {
			left = styles.SubtitleStyle.Render(styles.Truncate(m.StatusMsg, m.Width/2))
		}
	}

	right := styles.DimStyle.Render(help)

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return " " + left + strings.Repeat(" ", gap) + right
}
