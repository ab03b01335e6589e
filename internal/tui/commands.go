package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/moodreel/moodreel/internal/domain"
	"github.com/moodreel/moodreel/internal/service"
)

// Command factories for async operations. The HTTP clients carry their own
// timeouts, so commands run on a background context.

// LoadGenresCmd preloads the genre vocabulary at startup
func LoadGenresCmd(svc *service.SearchService) tea.Cmd {
	return func() tea.Msg {
		if err := svc.LoadGenres(context.Background()); err != nil {
			return ErrMsg{Err: err, Context: "loading genres"}
		}
		return GenresLoadedMsg{}
	}
}

// ExtractIntentCmd runs the intent extraction stage for a submission
func ExtractIntentCmd(svc *service.SearchService, seq int, query string) tea.Cmd {
	return func() tea.Msg {
		intent, err := svc.Extract(context.Background(), query)
		if err != nil {
			return ErrMsg{Err: err, Context: "understanding your mood", Seq: seq}
		}
		return IntentExtractedMsg{Seq: seq, Query: query, Intent: intent}
	}
}

// FetchResultsCmd runs mapping, discovery, and post-filtering for an intent
func FetchResultsCmd(svc *service.SearchService, seq int, query string, intent domain.Intent) tea.Cmd {
	return func() tea.Msg {
		titles, err := svc.Fetch(context.Background(), query, intent)
		if err != nil {
			return ErrMsg{Err: err, Context: "finding titles", Seq: seq}
		}
		return ResultsLoadedMsg{Seq: seq, Query: query, Titles: titles}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd clears the status message after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
