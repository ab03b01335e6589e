package tui

import (
	"github.com/moodreel/moodreel/internal/domain"
)

// Message types for the TUI

// ErrMsg represents a failed async operation. Seq ties it to the search
// submission that produced it; stale errors are dropped.
type ErrMsg struct {
	Err     error
	Context string
	Seq     int
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// GenresLoadedMsg signals that the startup genre preload finished
type GenresLoadedMsg struct {
	Count int
}

// IntentExtractedMsg signals that intent extraction settled for a submission
type IntentExtractedMsg struct {
	Seq    int
	Query  string
	Intent domain.Intent
}

// ResultsLoadedMsg signals that discovery settled for a submission
type ResultsLoadedMsg struct {
	Seq    int
	Query  string
	Titles []*domain.Title
}

// TickMsg is a general tick message for spinner animation
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
