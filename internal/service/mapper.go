package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/moodreel/moodreel/internal/domain"
)

// Mapper joins extractor output against the session caches to produce
// provider-native filters.
type Mapper struct {
	catalog domain.Catalog
	session *Session
	logger  *slog.Logger
}

// NewMapper creates a new query mapper
func NewMapper(catalog domain.Catalog, session *Session, logger *slog.Logger) *Mapper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mapper{catalog: catalog, session: session, logger: logger}
}

// BuildFilters derives SearchFilters from an intent. Genre names without an
// exact case-insensitive match in the session cache are dropped silently.
// Keyword resolution fans out concurrently; an individual keyword's failure
// only narrows the keyword-id set and never fails the mapping.
func (m *Mapper) BuildFilters(ctx context.Context, intent domain.Intent) domain.Filters {
	filters := domain.Filters{
		MediaType: intent.MediaType,
		Year:      intent.Year,
	}

	for _, name := range intent.Genres {
		id, ok := m.session.GenreIDByName(name)
		if !ok {
			m.logger.Debug("dropping genre not in catalog vocabulary", "genre", name)
			continue
		}
		filters.GenreIDs = append(filters.GenreIDs, id)
	}

	filters.KeywordIDs = m.resolveKeywords(ctx, intent.Keywords)
	return filters
}

// keywordOutcome is the result-or-absent outcome of one keyword resolution
type keywordOutcome struct {
	id int
	ok bool
}

// resolveKeywords resolves each keyword to a provider ID, using the session
// cache and firing provider lookups concurrently on misses. It waits for all
// lookups to settle before returning.
func (m *Mapper) resolveKeywords(ctx context.Context, keywords []string) []int {
	outcomes := make([]keywordOutcome, len(keywords))
	var wg sync.WaitGroup

	for i, raw := range keywords {
		keyword := strings.ToLower(strings.TrimSpace(raw))
		if keyword == "" {
			continue
		}

		if id, ok := m.session.KeywordID(keyword); ok {
			outcomes[i] = keywordOutcome{id: id, ok: true}
			continue
		}

		wg.Add(1)
		go func(i int, keyword string) {
			defer wg.Done()

			id, ok, err := m.catalog.ResolveKeyword(ctx, keyword)
			if err != nil {
				m.logger.Warn("keyword resolution failed", "keyword", keyword, "error", err)
				return
			}
			if !ok {
				m.logger.Debug("keyword has no provider match", "keyword", keyword)
				return
			}

			m.session.PutKeywordID(keyword, id)
			outcomes[i] = keywordOutcome{id: id, ok: true}
		}(i, keyword)
	}

	wg.Wait()

	var ids []int
	seen := make(map[int]bool)
	for _, o := range outcomes {
		if o.ok && !seen[o.id] {
			seen[o.id] = true
			ids = append(ids, o.id)
		}
	}
	return ids
}
