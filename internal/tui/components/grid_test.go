package components

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodreel/moodreel/internal/domain"
)

func testTitles(n int) []*domain.Title {
	titles := make([]*domain.Title, n)
	for i := range titles {
		titles[i] = &domain.Title{
			ID:        i,
			Name:      fmt.Sprintf("Title %02d", i),
			MediaType: domain.MediaTypeMovie,
		}
	}
	return titles
}

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func newTestGrid(n int) Grid {
	g := NewGrid()
	g.SetSize(80, 20)
	g.SetFocused(true)
	g.SetTitles(testTitles(n))
	return g
}

func TestGridNavigation(t *testing.T) {
	g := newTestGrid(5)

	g, _ = g.Update(key("j"))
	g, _ = g.Update(key("j"))
	assert.Equal(t, 2, g.Cursor())

	g, _ = g.Update(key("k"))
	assert.Equal(t, 1, g.Cursor())

	g, _ = g.Update(key("G"))
	assert.Equal(t, 4, g.Cursor())

	g, _ = g.Update(key("g"))
	assert.Equal(t, 0, g.Cursor())
}

func TestGridCursorClamped(t *testing.T) {
	g := newTestGrid(2)

	g, _ = g.Update(key("k"))
	assert.Equal(t, 0, g.Cursor())

	g, _ = g.Update(key("G"))
	g, _ = g.Update(key("j"))
	assert.Equal(t, 1, g.Cursor())
}

func TestGridSelectedTitle(t *testing.T) {
	g := newTestGrid(3)

	g, _ = g.Update(key("j"))
	sel := g.SelectedTitle()
	require.NotNil(t, sel)
	assert.Equal(t, "Title 01", sel.Name)
}

func TestGridFilterNarrows(t *testing.T) {
	g := NewGrid()
	g.SetSize(80, 20)
	g.SetFocused(true)
	g.SetTitles([]*domain.Title{
		{ID: 1, Name: "The Shining"},
		{ID: 2, Name: "Alien"},
		{ID: 3, Name: "Aliens"},
	})

	g.ToggleFilter()
	require.True(t, g.IsFilterTyping())

	g, _ = g.Update(key("a"))
	g, _ = g.Update(key("l"))

	assert.Equal(t, 2, g.Count())
	sel := g.SelectedTitle()
	require.NotNil(t, sel)
	assert.Contains(t, sel.Name, "Alien")
}

func TestGridFilterEnterBlursEscClears(t *testing.T) {
	g := newTestGrid(10)

	g.ToggleFilter()
	g, _ = g.Update(key("3"))
	require.Equal(t, 1, g.Count())

	// Enter accepts the filter and returns to navigation
	g, _ = g.Update(key("enter"))
	assert.True(t, g.IsFiltering())
	assert.False(t, g.IsFilterTyping())

	// Esc clears it entirely
	g, _ = g.Update(key("esc"))
	assert.False(t, g.IsFiltering())
	assert.Equal(t, 10, g.Count())
}

func TestGridSetTitlesResetsState(t *testing.T) {
	g := newTestGrid(10)
	g, _ = g.Update(key("G"))
	g.ToggleFilter()

	g.SetTitles(testTitles(3))

	assert.Equal(t, 0, g.Cursor())
	assert.False(t, g.IsFiltering())
	assert.Equal(t, 3, g.Count())
}

func TestGridEmpty(t *testing.T) {
	g := newTestGrid(0)

	assert.True(t, g.IsEmpty())
	assert.Nil(t, g.SelectedTitle())

	// Navigation on empty content must not panic
	g, _ = g.Update(key("j"))
	assert.Equal(t, 0, g.Cursor())
}
