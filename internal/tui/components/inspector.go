package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/moodreel/moodreel/internal/domain"
	"github.com/moodreel/moodreel/internal/tui/styles"
)

// Inspector is a centered modal showing full details for one title
type Inspector struct {
	title   *domain.Title
	width   int
	height  int
	visible bool
}

// NewInspector creates a new inspector component
func NewInspector() Inspector {
	return Inspector{}
}

// Show opens the modal for a title
func (i *Inspector) Show(title *domain.Title) {
	i.title = title
	i.visible = title != nil
}

// Hide closes the modal
func (i *Inspector) Hide() {
	i.visible = false
	i.title = nil
}

// IsVisible returns true while the modal is open
func (i Inspector) IsVisible() bool {
	return i.visible
}

// SetSize updates the window dimensions used to size the modal
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
}

// Update handles messages; any close key hides the modal
func (i Inspector) Update(msg tea.Msg) (Inspector, tea.Cmd) {
	if !i.visible {
		return i, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "enter", "i", "q":
			i.Hide()
		}
	}
	return i, nil
}

// View renders the modal content
func (i Inspector) View() string {
	if !i.visible || i.title == nil {
		return ""
	}

	modalWidth := i.width * 2 / 3
	if modalWidth < 30 {
		modalWidth = 30
	}
	if modalWidth > 80 {
		modalWidth = 80
	}
	contentWidth := modalWidth - 6 // border + padding

	t := i.title

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render(styles.Truncate(t.DisplayName(), contentWidth)))
	b.WriteString("\n")

	meta := t.MediaType.Label()
	if t.Rating > 0 {
		meta += "  ·  " + fmt.Sprintf("★ %s", t.FormattedRating())
	}
	if t.ReleaseDate != "" {
		meta += "  ·  " + t.ReleaseDate
	}
	b.WriteString(styles.SubtitleStyle.Render(meta))
	b.WriteString("\n\n")

	overview := t.Overview
	if overview == "" {
		overview = styles.DimStyle.Render("No overview available.")
	}
	b.WriteString(lipgloss.NewStyle().Width(contentWidth).Render(overview))
	b.WriteString("\n\n")
	b.WriteString(styles.DimStyle.Render("esc to close"))

	return styles.ModalStyle.Width(modalWidth - 2).Render(b.String())
}
