package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/moodreel/moodreel/internal/domain"
	"github.com/moodreel/moodreel/internal/service"
	"github.com/moodreel/moodreel/internal/tui/components"
	"github.com/moodreel/moodreel/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateWelcome ApplicationState = iota
	StateExtracting
	StateFetching
	StateResults
	StateError
	StateHelp
)

const spinnerInterval = 100 * time.Millisecond

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	SearchSvc  *service.SearchService
	HistorySvc *service.HistoryService

	// UI components
	Input       textinput.Model
	Grid        components.Grid
	Inspector   components.Inspector
	HistoryList components.HistoryList

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int
	ErrorText    string

	// Search state. searchSeq increments on every submission; settlement
	// messages carrying an older seq are dropped as stale.
	searchSeq int

	historyLimit  int
	preloadGenres bool
	helpReturn    ApplicationState
}

// NewModel creates a new application model
func NewModel(searchSvc *service.SearchService, historySvc *service.HistoryService, historyLimit int, preloadGenres bool) Model {
	ti := textinput.New()
	ti.Placeholder = "describe a mood, e.g. \"a feel-good space adventure\""
	ti.Prompt = "> "
	ti.PromptStyle = styles.PromptStyle
	ti.TextStyle = styles.PromptTextStyle
	ti.PlaceholderStyle = styles.PlaceholderStyle
	ti.CharLimit = 300
	ti.Focus()

	if historyLimit <= 0 {
		historyLimit = 8
	}

	m := Model{
		State:         StateWelcome,
		SearchSvc:     searchSvc,
		HistorySvc:    historySvc,
		Input:         ti,
		Grid:          components.NewGrid(),
		Inspector:     components.NewInspector(),
		HistoryList:   components.NewHistoryList(),
		historyLimit:  historyLimit,
		preloadGenres: preloadGenres,
	}
	m.refreshHistory("")
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		TickCmd(spinnerInterval),
	}
	if m.preloadGenres {
		cmds = append(cmds, LoadGenresCmd(m.SearchSvc))
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		return m, TickCmd(spinnerInterval)

	case GenresLoadedMsg:
		return m, nil

	case IntentExtractedMsg:
		if msg.Seq != m.searchSeq || m.State != StateExtracting {
			return m, nil
		}
		m.State = StateFetching
		m.StatusMsg = msg.Intent.Summary()
		m.StatusIsErr = false
		return m, FetchResultsCmd(m.SearchSvc, msg.Seq, msg.Query, msg.Intent)

	case ResultsLoadedMsg:
		if msg.Seq != m.searchSeq || m.State != StateFetching {
			return m, nil
		}
		m.State = StateResults
		m.Grid.SetTitles(msg.Titles)
		m.Grid.SetBreadcrumb(msg.Query)
		m.Grid.SetFocused(true)
		m.updateLayout()
		return m, ClearStatusCmd(5 * time.Second)

	case ErrMsg:
		// Genre preload failures carry no seq; surface them as a status
		// warning without leaving the current state.
		if msg.Seq == 0 {
			m.StatusMsg = msg.Error()
			m.StatusIsErr = true
			return m, ClearStatusCmd(5 * time.Second)
		}
		if msg.Seq != m.searchSeq {
			return m, nil
		}
		m.State = StateError
		m.ErrorText = m.describeError(msg)
		return m, nil

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.ForceQuit) {
		return m, tea.Quit
	}

	switch m.State {
	case StateHelp:
		if key.Matches(msg, Keys.Escape, Keys.Help, Keys.Quit) {
			m.State = m.helpReturn
		}
		return m, nil

	case StateWelcome:
		return m.handleWelcomeKeys(msg)

	case StateExtracting, StateFetching:
		// A search is in flight; esc abandons it and returns to the prompt.
		// The late settlement message is dropped by the seq guard.
		if key.Matches(msg, Keys.Escape) {
			m.searchSeq++
			return m.toWelcome(), nil
		}
		return m, nil

	case StateError:
		switch {
		case key.Matches(msg, Keys.Escape, Keys.Enter, Keys.NewSearch):
			return m.toWelcome(), nil
		case key.Matches(msg, Keys.Quit):
			return m, tea.Quit
		}
		return m, nil

	case StateResults:
		return m.handleResultsKeys(msg)
	}

	return m, nil
}

// handleWelcomeKeys handles input on the prompt screen. Only chrome keys are
// matched here; everything else falls through to the text input.
func (m Model) handleWelcomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Enter):
		if rec := m.HistoryList.Selected(); rec != nil {
			return m.submitSearch(rec.Query)
		}
		return m.submitSearch(m.Input.Value())

	case key.Matches(msg, Keys.Down):
		m.HistoryList.MoveDown()
		return m, nil

	case key.Matches(msg, Keys.Up):
		m.HistoryList.MoveUp()
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.HistoryList.HasSelection() {
			m.HistoryList.ClearSelection()
			return m, nil
		}
		m.Input.SetValue("")
		m.refreshHistory("")
		return m, nil

	case key.Matches(msg, Keys.Help) && m.Input.Value() == "":
		m.helpReturn = StateWelcome
		m.State = StateHelp
		return m, nil
	}

	var cmd tea.Cmd
	before := m.Input.Value()
	m.Input, cmd = m.Input.Update(msg)
	if m.Input.Value() != before {
		m.refreshHistory(m.Input.Value())
	}
	return m, cmd
}

// handleResultsKeys handles input on the results screen
func (m Model) handleResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Inspector swallows keys while open
	if m.Inspector.IsVisible() {
		var cmd tea.Cmd
		m.Inspector, cmd = m.Inspector.Update(msg)
		return m, cmd
	}

	// Filter typing mode routes everything to the grid
	if m.Grid.IsFilterTyping() {
		var cmd tea.Cmd
		m.Grid, cmd = m.Grid.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.helpReturn = StateResults
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.Grid.IsFiltering() {
			var cmd tea.Cmd
			m.Grid, cmd = m.Grid.Update(msg)
			return m, cmd
		}
		return m.toWelcome(), nil

	case key.Matches(msg, Keys.NewSearch):
		return m.toWelcome(), nil

	case key.Matches(msg, Keys.Filter):
		m.Grid.ToggleFilter()
		return m, nil

	case key.Matches(msg, Keys.Details, Keys.Enter):
		if title := m.Grid.SelectedTitle(); title != nil {
			m.Inspector.Show(title)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.Grid, cmd = m.Grid.Update(msg)
	return m, cmd
}

// submitSearch starts the pipeline for one submission
func (m Model) submitSearch(query string) (tea.Model, tea.Cmd) {
	query = strings.TrimSpace(query)
	if query == "" {
		return m, nil
	}

	m.searchSeq++
	m.State = StateExtracting
	m.Input.SetValue(query)
	m.HistoryList.ClearSelection()
	m.StatusMsg = ""
	m.StatusIsErr = false

	return m, ExtractIntentCmd(m.SearchSvc, m.searchSeq, query)
}

// toWelcome resets to the prompt screen, keeping the typed text
func (m Model) toWelcome() Model {
	m.State = StateWelcome
	m.ErrorText = ""
	m.Inspector.Hide()
	m.Grid.ClearFilter()
	m.Grid.SetFocused(false)
	m.Input.Focus()
	m.refreshHistory(m.Input.Value())
	return m
}

// refreshHistory reloads the welcome-screen list, narrowed by typed text
func (m *Model) refreshHistory(query string) {
	if m.HistorySvc == nil {
		return
	}
	m.HistoryList.SetRecords(m.HistorySvc.Filter(strings.TrimSpace(query), m.historyLimit))
}

// describeError maps pipeline failures to a user-facing message
func (m Model) describeError(msg ErrMsg) string {
	switch {
	case errors.Is(msg.Err, domain.ErrNoCredentials):
		return "Missing credentials. Set MOODREEL_EXTRACTOR_API_KEY, MOODREEL_CATALOG_BEARER_TOKEN and MOODREEL_CATALOG_API_KEY (or add them to the config file)."
	case errors.Is(msg.Err, domain.ErrAuthFailed):
		return "The provider rejected your credentials. Check your API keys."
	case errors.Is(msg.Err, domain.ErrProviderUnreachable):
		return "Could not reach the provider. Check your connection and try again."
	case errors.Is(msg.Err, domain.ErrMalformedIntent):
		return "Couldn't make sense of that mood. Try rephrasing it."
	case errors.Is(msg.Err, domain.ErrNoResults):
		return "No titles matched. Try a broader mood."
	default:
		return msg.Error()
	}
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}
	m.Input.Width = m.Width - 8
	m.HistoryList.SetWidth(m.Width - 4)
	m.Grid.SetSize(m.Width, m.Height-chromeHeight)
	m.Inspector.SetSize(m.Width, m.Height)
}
