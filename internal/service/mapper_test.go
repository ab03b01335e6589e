package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/moodreel/moodreel/internal/domain"
	"github.com/moodreel/moodreel/internal/log"
)

// fakeCatalog is a scriptable domain.Catalog that counts calls per operation
type fakeCatalog struct {
	mu sync.Mutex

	genres       map[domain.MediaType][]domain.Genre
	genresErr    error
	genreCalls   int
	keywords     map[string]int
	keywordErrs  map[string]error
	keywordCalls map[string]int
	discover     []*domain.Title
	discoverErr  error
	discovered   []domain.Filters
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		genres:       make(map[domain.MediaType][]domain.Genre),
		keywords:     make(map[string]int),
		keywordErrs:  make(map[string]error),
		keywordCalls: make(map[string]int),
	}
}

func (f *fakeCatalog) Genres(_ context.Context, mediaType domain.MediaType) ([]domain.Genre, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.genreCalls++
	if f.genresErr != nil {
		return nil, f.genresErr
	}
	return f.genres[mediaType], nil
}

func (f *fakeCatalog) ResolveKeyword(_ context.Context, keyword string) (int, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keywordCalls[keyword]++
	if err, ok := f.keywordErrs[keyword]; ok {
		return 0, false, err
	}
	id, ok := f.keywords[keyword]
	return id, ok, nil
}

func (f *fakeCatalog) Discover(_ context.Context, filters domain.Filters) ([]*domain.Title, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.discovered = append(f.discovered, filters)
	if f.discoverErr != nil {
		return nil, 0, f.discoverErr
	}
	return f.discover, len(f.discover), nil
}

func (f *fakeCatalog) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.genreCalls + len(f.discovered)
	for _, c := range f.keywordCalls {
		n += c
	}
	return n
}

func sessionWithGenres(genres ...domain.Genre) *Session {
	s := NewSession()
	s.AddGenres(genres)
	return s
}

func TestBuildFiltersGenreMatching(t *testing.T) {
	catalog := newFakeCatalog()
	session := sessionWithGenres(
		domain.Genre{ID: 28, Name: "Action"},
		domain.Genre{ID: 27, Name: "Horror"},
	)
	mapper := NewMapper(catalog, session, log.NullLogger())

	filters := mapper.BuildFilters(context.Background(), domain.Intent{
		MediaType: domain.MediaTypeMovie,
		Genres:    []string{"action", "HORROR", "ZZZ"},
	})

	// Case-insensitive matches resolve; unknown names are dropped silently
	assert.Equal(t, []int{28, 27}, filters.GenreIDs)
	assert.Equal(t, domain.MediaTypeMovie, filters.MediaType)
}

func TestBuildFiltersKeywordResolution(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.keywords["heist"] = 10051
	catalog.keywords["time travel"] = 4379
	session := NewSession()
	mapper := NewMapper(catalog, session, log.NullLogger())

	filters := mapper.BuildFilters(context.Background(), domain.Intent{
		MediaType: domain.MediaTypeMovie,
		Keywords:  []string{"Heist", "time travel"},
	})

	assert.ElementsMatch(t, []int{10051, 4379}, filters.KeywordIDs)
}

func TestKeywordCacheIdempotent(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.keywords["zombie"] = 12377
	session := NewSession()
	mapper := NewMapper(catalog, session, log.NullLogger())

	for i := 0; i < 3; i++ {
		filters := mapper.BuildFilters(context.Background(), domain.Intent{
			MediaType: domain.MediaTypeMovie,
			Keywords:  []string{"zombie"},
		})
		assert.Equal(t, []int{12377}, filters.KeywordIDs)
	}

	assert.Equal(t, 1, catalog.keywordCalls["zombie"], "repeat resolutions must hit the cache")
}

func TestKeywordFailureDoesNotAbortBatch(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.keywords["heist"] = 10051
	catalog.keywordErrs["cursed"] = errors.New("boom")
	session := NewSession()
	mapper := NewMapper(catalog, session, log.NullLogger())

	filters := mapper.BuildFilters(context.Background(), domain.Intent{
		MediaType: domain.MediaTypeMovie,
		Keywords:  []string{"cursed", "heist", "nonsensewords"},
	})

	// The failed and unmatched keywords simply yield no ID
	assert.Equal(t, []int{10051}, filters.KeywordIDs)
}

func TestKeywordFailureNotCached(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.keywordErrs["flaky"] = errors.New("boom")
	session := NewSession()
	mapper := NewMapper(catalog, session, log.NullLogger())

	mapper.BuildFilters(context.Background(), domain.Intent{
		MediaType: domain.MediaTypeMovie,
		Keywords:  []string{"flaky"},
	})

	// A later search may succeed, so failures must not poison the cache
	catalog.mu.Lock()
	delete(catalog.keywordErrs, "flaky")
	catalog.keywords["flaky"] = 99
	catalog.mu.Unlock()

	filters := mapper.BuildFilters(context.Background(), domain.Intent{
		MediaType: domain.MediaTypeMovie,
		Keywords:  []string{"flaky"},
	})
	assert.Equal(t, []int{99}, filters.KeywordIDs)
	assert.Equal(t, 2, catalog.keywordCalls["flaky"])
}

func TestBuildFiltersBlankKeywordsSkipped(t *testing.T) {
	catalog := newFakeCatalog()
	session := NewSession()
	mapper := NewMapper(catalog, session, log.NullLogger())

	filters := mapper.BuildFilters(context.Background(), domain.Intent{
		MediaType: domain.MediaTypeTV,
		Keywords:  []string{"", "   "},
	})

	assert.Empty(t, filters.KeywordIDs)
	assert.Zero(t, catalog.totalCalls())
}
