package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/moodreel/moodreel/internal/domain"
	"github.com/moodreel/moodreel/internal/tui/styles"
)

// HistoryList renders recent searches under the welcome prompt. It keeps its
// own cursor; -1 means nothing selected and focus stays on the input line.
type HistoryList struct {
	records []domain.SearchRecord
	cursor  int
	width   int
}

// NewHistoryList creates a new history list
func NewHistoryList() HistoryList {
	return HistoryList{cursor: -1}
}

// SetRecords replaces the list content and clears the selection
func (h *HistoryList) SetRecords(records []domain.SearchRecord) {
	h.records = records
	h.cursor = -1
}

// SetWidth sets the render width
func (h *HistoryList) SetWidth(width int) {
	h.width = width
}

// IsEmpty returns true when there is nothing to show
func (h HistoryList) IsEmpty() bool {
	return len(h.records) == 0
}

// HasSelection returns true when a record is highlighted
func (h HistoryList) HasSelection() bool {
	return h.cursor >= 0 && h.cursor < len(h.records)
}

// Selected returns the highlighted record, or nil
func (h HistoryList) Selected() *domain.SearchRecord {
	if !h.HasSelection() {
		return nil
	}
	return &h.records[h.cursor]
}

// MoveDown advances the selection, entering the list from the input line
func (h *HistoryList) MoveDown() {
	if len(h.records) == 0 {
		return
	}
	if h.cursor < len(h.records)-1 {
		h.cursor++
	}
}

// MoveUp retreats the selection; above the first row it leaves the list
func (h *HistoryList) MoveUp() {
	if h.cursor >= 0 {
		h.cursor--
	}
}

// ClearSelection returns focus to the input line
func (h *HistoryList) ClearSelection() {
	h.cursor = -1
}

// View renders the list
func (h HistoryList) View() string {
	if len(h.records) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.DimStyle.Render("Recent searches"))
	b.WriteString("\n")

	for i, rec := range h.records {
		line := h.renderRecord(rec, i == h.cursor)
		b.WriteString(line)
		if i < len(h.records)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (h HistoryList) renderRecord(rec domain.SearchRecord, selected bool) string {
	age := relativeTime(time.Unix(rec.SearchedAt, 0))
	label := fmt.Sprintf("%s  %s", rec.MediaType.Label(), age)

	query := styles.Truncate(rec.Query, h.width-len(label)-8)

	dimGray := styles.DimGray
	parts := []styles.RowPart{
		{Text: query, Foreground: nil},
		{Text: "  " + label, Foreground: &dimGray},
	}
	return styles.RenderListRow(parts, selected, h.width)
}

// relativeTime formats an age like "3h ago" for the history rows
func relativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
