package service

import (
	"log/slog"
	"sort"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/moodreel/moodreel/internal/domain"
)

// HistoryService wraps the persisted search history. Recording is
// best-effort: a storage failure is logged and never fails a search.
type HistoryService struct {
	store  domain.HistoryStore
	logger *slog.Logger
}

// NewHistoryService creates a new history service
func NewHistoryService(store domain.HistoryStore, logger *slog.Logger) *HistoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryService{store: store, logger: logger}
}

// Record appends a completed search to the history
func (h *HistoryService) Record(query string, intent domain.Intent, resultCount int) {
	rec := domain.SearchRecord{
		Query:       query,
		MediaType:   intent.MediaType,
		Genres:      intent.Genres,
		Keywords:    intent.Keywords,
		ResultCount: resultCount,
		SearchedAt:  time.Now().Unix(),
	}
	if err := h.store.AppendSearch(rec); err != nil {
		h.logger.Warn("failed to record search history", "error", err)
	}
}

// Recent returns up to limit past searches, newest first
func (h *HistoryService) Recent(limit int) []domain.SearchRecord {
	records, err := h.store.RecentSearches(limit)
	if err != nil {
		h.logger.Warn("failed to load search history", "error", err)
		return nil
	}
	return records
}

// Filter ranks recent searches against typed text for the welcome screen's
// typeahead. An empty query returns the recent list unchanged.
func (h *HistoryService) Filter(query string, limit int) []domain.SearchRecord {
	records := h.Recent(limit)
	if query == "" || len(records) == 0 {
		return records
	}

	queries := make([]string, len(records))
	for i, rec := range records {
		queries[i] = rec.Query
	}

	ranks := fuzzy.RankFindFold(query, queries)
	if len(ranks) == 0 {
		return nil
	}
	sort.Sort(ranks)

	filtered := make([]domain.SearchRecord, 0, len(ranks))
	for _, rank := range ranks {
		filtered = append(filtered, records[rank.OriginalIndex])
	}
	return filtered
}
