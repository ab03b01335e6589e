package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/moodreel/moodreel/internal/domain"
)

// maxResults caps the rendered result list; the provider's popularity order
// is preserved, never re-sorted locally.
const maxResults = 50

// SearchService sequences the pipeline: extract intent, map it to filters,
// discover titles, post-filter. One submission runs the stages strictly in
// order; nothing is retried automatically.
type SearchService struct {
	extractor    domain.IntentExtractor
	catalog      domain.Catalog
	mapper       *Mapper
	session      *Session
	history      *HistoryService
	missingCreds []string
	logger       *slog.Logger
}

// NewSearchService creates the orchestrator. missingCreds names credentials
// absent from the configuration; when non-empty every search short-circuits
// to a credential error before any network call.
func NewSearchService(
	extractor domain.IntentExtractor,
	catalog domain.Catalog,
	mapper *Mapper,
	session *Session,
	history *HistoryService,
	missingCreds []string,
	logger *slog.Logger,
) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchService{
		extractor:    extractor,
		catalog:      catalog,
		mapper:       mapper,
		session:      session,
		history:      history,
		missingCreds: missingCreds,
		logger:       logger,
	}
}

// CheckCredentials returns a specific error naming every missing credential,
// or nil when the full call path is configured.
func (s *SearchService) CheckCredentials() error {
	if len(s.missingCreds) == 0 {
		return nil
	}
	return fmt.Errorf("%w: missing %s", domain.ErrNoCredentials, strings.Join(s.missingCreds, ", "))
}

// LoadGenres fetches both genre lists once and merges them into the session
// cache. Called at startup; a later search retries transparently if this
// failed.
func (s *SearchService) LoadGenres(ctx context.Context) error {
	for _, mediaType := range []domain.MediaType{domain.MediaTypeMovie, domain.MediaTypeTV} {
		genres, err := s.catalog.Genres(ctx, mediaType)
		if err != nil {
			return fmt.Errorf("loading %s genres: %w", mediaType, err)
		}
		s.session.AddGenres(genres)
	}
	s.logger.Info("genre vocabulary loaded", "genres", len(s.session.GenreNames()))
	return nil
}

// Extract runs the first pipeline stage: credential check, then intent
// extraction against the current genre vocabulary. Any failure aborts the
// whole search.
func (s *SearchService) Extract(ctx context.Context, query string) (domain.Intent, error) {
	if err := s.CheckCredentials(); err != nil {
		return domain.Intent{}, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Intent{}, fmt.Errorf("empty search text")
	}

	// The prompt embeds whatever the session knows right now; retry the
	// genre load here if startup preloading failed.
	if !s.session.HasGenres() {
		if err := s.LoadGenres(ctx); err != nil {
			s.logger.Warn("genre vocabulary unavailable, extracting without it", "error", err)
		}
	}

	return s.extractor.Extract(ctx, query, s.session.GenreNames())
}

// Fetch runs the remaining stages for an extracted intent: build filters
// (all keyword sub-calls settle inside), discover, post-filter, record
// history. Returns domain.ErrNoResults when the filtered set is empty.
func (s *SearchService) Fetch(ctx context.Context, query string, intent domain.Intent) ([]*domain.Title, error) {
	filters := s.mapper.BuildFilters(ctx, intent)

	s.logger.Debug("discovering titles",
		"type", filters.MediaType,
		"genreIDs", filters.GenreIDs,
		"keywordIDs", filters.KeywordIDs)

	titles, total, err := s.catalog.Discover(ctx, filters)
	if err != nil {
		return nil, err
	}

	titles = postFilter(titles, intent.MediaType)
	if len(titles) == 0 {
		return nil, domain.ErrNoResults
	}

	s.logger.Info("search complete", "query", query, "total", total, "shown", len(titles))

	if s.history != nil {
		s.history.Record(query, intent, len(titles))
	}

	return titles, nil
}

// Search runs the full pipeline for one submission.
func (s *SearchService) Search(ctx context.Context, query string) ([]*domain.Title, error) {
	intent, err := s.Extract(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.Fetch(ctx, query, intent)
}

// postFilter drops adult-flagged movie results and truncates to maxResults,
// preserving provider order.
func postFilter(titles []*domain.Title, mediaType domain.MediaType) []*domain.Title {
	filtered := titles
	if mediaType == domain.MediaTypeMovie {
		filtered = make([]*domain.Title, 0, len(titles))
		for _, t := range titles {
			if t.Adult {
				continue
			}
			filtered = append(filtered, t)
		}
	}

	if len(filtered) > maxResults {
		filtered = filtered[:maxResults]
	}
	return filtered
}
