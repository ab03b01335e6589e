package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/moodreel/moodreel/internal/domain"
	"github.com/moodreel/moodreel/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// Layout constants for the results grid
const (
	// Border adds 1 char on each side
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2

	// Breadcrumb line at top of content area
	BreadcrumbLines = 1

	// Extra safety margin for item width calculations
	ItemWidthMargin = 2
)

// Grid is the scrollable results list for a completed search
type Grid struct {
	titles []*domain.Title

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	// Border title (the mood query that produced these results)
	breadcrumb string

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into the original slice
}

// NewGrid creates a new grid component
func NewGrid() Grid {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return Grid{
		filterInput: ti,
	}
}

// SetTitles replaces the grid content and resets selection and filter
func (g *Grid) SetTitles(titles []*domain.Title) {
	g.titles = titles
	g.cursor = 0
	g.offset = 0
	g.clearFilter()
}

// SetSize updates the component dimensions
func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.recalcMaxVisible()
}

// SetBreadcrumb sets the breadcrumb text displayed above the list
func (g *Grid) SetBreadcrumb(crumb string) {
	g.breadcrumb = crumb
}

func (g *Grid) recalcMaxVisible() {
	interiorHeight := g.height - BorderHeight
	g.maxVisible = interiorHeight - ScrollIndicatorLines - BreadcrumbLines
	if g.filterActive {
		g.maxVisible--
	}
	if g.maxVisible < 1 {
		g.maxVisible = 1
	}
}

// SetFocused sets the focus state
func (g *Grid) SetFocused(focused bool) {
	g.focused = focused
}

// IsFocused returns the focus state
func (g Grid) IsFocused() bool {
	return g.focused
}

// Cursor returns the current cursor position
func (g Grid) Cursor() int {
	return g.cursor
}

// Count returns the number of visible items (after filtering)
func (g Grid) Count() int {
	if g.filteredIdx != nil {
		return len(g.filteredIdx)
	}
	return len(g.titles)
}

// IsEmpty returns true if there are no visible items
func (g Grid) IsEmpty() bool {
	return g.Count() == 0
}

// SelectedTitle returns the title under the cursor, or nil
func (g Grid) SelectedTitle() *domain.Title {
	count := g.Count()
	if count == 0 || g.cursor >= count {
		return nil
	}
	return g.titles[g.mapIndex(g.cursor)]
}

func (g *Grid) ensureVisible() {
	if g.cursor < g.offset {
		g.offset = g.cursor
	}
	if g.cursor >= g.offset+g.maxVisible {
		g.offset = g.cursor - g.maxVisible + 1
	}
}

// ToggleFilter activates the filter input
func (g *Grid) ToggleFilter() {
	g.filterActive = true
	g.filterInput.Focus()
	g.recalcMaxVisible()
}

// IsFiltering returns true while a filter narrows the list
func (g Grid) IsFiltering() bool {
	return g.filterActive
}

// IsFilterTyping returns true if the filter input is focused (typing mode)
func (g Grid) IsFilterTyping() bool {
	return g.filterActive && g.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (g *Grid) ClearFilter() {
	g.clearFilter()
}

func (g *Grid) clearFilter() {
	g.filterActive = false
	g.filterQuery = ""
	g.filteredIdx = nil
	g.filterInput.SetValue("")
	g.filterInput.Blur()
	g.recalcMaxVisible()
}

// applyFilter narrows the list to fuzzy matches of the typed query
func (g *Grid) applyFilter() {
	query := g.filterInput.Value()
	g.filterQuery = query

	if query == "" {
		g.filteredIdx = nil
		return
	}

	names := make([]string, len(g.titles))
	for i, t := range g.titles {
		names[i] = strings.ToLower(t.Name)
	}

	matches := fuzzy.Find(strings.ToLower(query), names)

	g.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		g.filteredIdx[i] = match.Index
	}

	g.cursor = 0
	g.offset = 0
}

// mapIndex maps a cursor position to the actual index in the data
func (g Grid) mapIndex(i int) int {
	if g.filteredIdx != nil && i < len(g.filteredIdx) {
		return g.filteredIdx[i]
	}
	return i
}

// Update handles messages
func (g Grid) Update(msg tea.Msg) (Grid, tea.Cmd) {
	if !g.focused {
		return g, nil
	}

	// Typing mode: route keys to the filter input
	if g.filterActive && g.filterInput.Focused() {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch msg.String() {
			case "esc":
				g.clearFilter()
				return g, nil
			case "enter":
				// Accept filter, blur input to allow navigation
				g.filterInput.Blur()
				return g, nil
			case "backspace":
				if g.filterInput.Value() == "" {
					g.clearFilter()
					return g, nil
				}
			}
		}

		var cmd tea.Cmd
		g.filterInput, cmd = g.filterInput.Update(msg)
		g.applyFilter()
		return g, cmd
	}

	// Filter accepted but still narrowing: esc clears, / re-enters typing
	if g.filterActive {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch msg.String() {
			case "esc":
				g.clearFilter()
				return g, nil
			case "/":
				g.filterInput.Focus()
				return g, nil
			}
		}
	}

	count := g.Count()
	if count == 0 {
		return g, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if g.cursor < count-1 {
				g.cursor++
				g.ensureVisible()
			}
		case "k", "up":
			if g.cursor > 0 {
				g.cursor--
				g.ensureVisible()
			}
		case "g", "home":
			g.cursor = 0
			g.offset = 0
		case "G", "end":
			g.cursor = count - 1
			g.ensureVisible()
		case "ctrl+d":
			g.cursor += g.maxVisible / 2
			if g.cursor >= count {
				g.cursor = count - 1
			}
			g.ensureVisible()
		case "ctrl+u":
			g.cursor -= g.maxVisible / 2
			if g.cursor < 0 {
				g.cursor = 0
			}
			g.ensureVisible()
		}
	}

	return g, nil
}

// View renders the component
func (g Grid) View() string {
	style := styles.InactiveBorder
	if g.focused {
		style = styles.ActiveBorder
	}

	content := g.renderList()

	frameW, frameH := style.GetFrameSize()

	return style.
		Width(g.width - frameW).
		Height(g.height - frameH).
		Render(content)
}

func (g Grid) renderList() string {
	itemWidth := g.width - BorderWidth - ItemWidthMargin

	breadcrumbLine := " "
	if g.breadcrumb != "" {
		crumb := g.breadcrumb
		if len(crumb) > itemWidth {
			crumb = "..." + crumb[len(crumb)-itemWidth+3:]
		}
		breadcrumbLine = styles.AccentStyle.Render(crumb)
	}

	count := g.Count()
	if count == 0 {
		emptyMsg := styles.DimStyle.Render("No titles")
		if g.filterActive && g.filterQuery != "" {
			emptyMsg = styles.DimStyle.Render("No matches")
		}
		return breadcrumbLine + "\n" + " " + "\n" + emptyMsg + "\n" + " "
	}

	var lines []string

	end := g.offset + g.maxVisible
	if end > count {
		end = count
	}

	for i := g.offset; i < end; i++ {
		selected := i == g.cursor
		lines = append(lines, g.renderTitleRow(g.titles[g.mapIndex(i)], selected, itemWidth))
	}

	// Always reserve the indicator lines to prevent layout shifts
	header := " "
	if g.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := breadcrumbLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer

	if g.filterActive {
		content += "\n" + g.renderFilterBar()
	}

	return content
}

// renderTitleRow renders one result line: name (year), rating badge
func (g Grid) renderTitleRow(title *domain.Title, selected bool, width int) string {
	name := styles.Truncate(title.DisplayName(), width-12)

	rating := " " + title.FormattedRating()
	amber := styles.ReelAmber
	dimGray := styles.DimGray

	kind := "○"
	if title.MediaType == domain.MediaTypeTV {
		kind = "◻"
	}

	parts := []styles.RowPart{
		{Text: kind, Foreground: &amber},
		{Text: " " + name, Foreground: nil},
		{Text: rating, Foreground: &dimGray},
	}

	return styles.RenderListRow(parts, selected, width)
}

func (g Grid) renderFilterBar() string {
	input := g.filterInput.View()

	countStr := ""
	if g.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", g.Count(), len(g.titles)))
	}

	return input + countStr
}
