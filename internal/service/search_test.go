package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodreel/moodreel/internal/domain"
	"github.com/moodreel/moodreel/internal/log"
	"github.com/moodreel/moodreel/internal/store"
)

type fakeExtractor struct {
	intent    domain.Intent
	err       error
	calls     int
	gotText   string
	gotGenres []string
}

func (f *fakeExtractor) Extract(_ context.Context, text string, genreNames []string) (domain.Intent, error) {
	f.calls++
	f.gotText = text
	f.gotGenres = genreNames
	if f.err != nil {
		return domain.Intent{}, f.err
	}
	return f.intent, nil
}

func newSearchService(t *testing.T, extractor *fakeExtractor, catalog *fakeCatalog, missing []string) *SearchService {
	t.Helper()
	session := NewSession()
	mapper := NewMapper(catalog, session, log.NullLogger())

	historyStore, err := store.NewHistoryStore("")
	require.NoError(t, err)
	history := NewHistoryService(historyStore, log.NullLogger())

	return NewSearchService(extractor, catalog, mapper, session, history, missing, log.NullLogger())
}

func TestSearchHorrorScenario(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.genres[domain.MediaTypeMovie] = []domain.Genre{
		{ID: 28, Name: "Action"},
		{ID: 27, Name: "Horror"},
	}
	catalog.discover = []*domain.Title{
		{ID: 1, Name: "The Shining", MediaType: domain.MediaTypeMovie, Rating: 8.2},
		{ID: 2, Name: "Hereditary", MediaType: domain.MediaTypeMovie, Rating: 7.3},
	}
	extractor := &fakeExtractor{intent: domain.Intent{
		MediaType: domain.MediaTypeMovie,
		Genres:    []string{"Horror"},
		Keywords:  []string{},
	}}

	svc := newSearchService(t, extractor, catalog, nil)

	titles, err := svc.Search(context.Background(), "Show me some horror films")
	require.NoError(t, err)

	require.Len(t, titles, 2)
	assert.Equal(t, "The Shining", titles[0].Name)

	// The extractor saw the session genre vocabulary
	assert.Contains(t, extractor.gotGenres, "Horror")

	// Discover ran with the resolved genre ID and no keyword filter
	require.Len(t, catalog.discovered, 1)
	assert.Equal(t, []int{27}, catalog.discovered[0].GenreIDs)
	assert.Empty(t, catalog.discovered[0].KeywordIDs)
}

func TestSearchMissingCredentialsShortCircuits(t *testing.T) {
	catalog := newFakeCatalog()
	extractor := &fakeExtractor{}
	svc := newSearchService(t, extractor, catalog, []string{"extractor API key"})

	_, err := svc.Search(context.Background(), "anything at all")

	require.ErrorIs(t, err, domain.ErrNoCredentials)
	assert.Contains(t, err.Error(), "extractor API key")

	// No network path was entered
	assert.Zero(t, extractor.calls)
	assert.Zero(t, catalog.totalCalls())
}

func TestSearchAdultResultsExcluded(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.discover = []*domain.Title{
		{ID: 1, Name: "Fine", MediaType: domain.MediaTypeMovie},
		{ID: 2, Name: "Flagged", MediaType: domain.MediaTypeMovie, Adult: true},
		{ID: 3, Name: "Also Fine", MediaType: domain.MediaTypeMovie},
	}
	extractor := &fakeExtractor{intent: domain.Intent{MediaType: domain.MediaTypeMovie}}
	svc := newSearchService(t, extractor, catalog, nil)

	titles, err := svc.Search(context.Background(), "movies")
	require.NoError(t, err)

	require.Len(t, titles, 2)
	assert.Equal(t, "Fine", titles[0].Name)
	assert.Equal(t, "Also Fine", titles[1].Name)
}

func TestSearchTruncatesToCap(t *testing.T) {
	catalog := newFakeCatalog()
	for i := 0; i < maxResults+25; i++ {
		catalog.discover = append(catalog.discover, &domain.Title{
			ID:        i,
			Name:      fmt.Sprintf("Title %d", i),
			MediaType: domain.MediaTypeMovie,
		})
	}
	extractor := &fakeExtractor{intent: domain.Intent{MediaType: domain.MediaTypeMovie}}
	svc := newSearchService(t, extractor, catalog, nil)

	titles, err := svc.Search(context.Background(), "popular movies")
	require.NoError(t, err)

	require.Len(t, titles, maxResults)
	// Provider order preserved
	assert.Equal(t, "Title 0", titles[0].Name)
	assert.Equal(t, fmt.Sprintf("Title %d", maxResults-1), titles[maxResults-1].Name)
}

func TestSearchNoResultsIsError(t *testing.T) {
	catalog := newFakeCatalog()
	extractor := &fakeExtractor{intent: domain.Intent{MediaType: domain.MediaTypeTV}}
	svc := newSearchService(t, extractor, catalog, nil)

	_, err := svc.Search(context.Background(), "something very obscure")
	assert.ErrorIs(t, err, domain.ErrNoResults)
}

func TestSearchAllResultsAdultIsError(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.discover = []*domain.Title{
		{ID: 1, Name: "Flagged", MediaType: domain.MediaTypeMovie, Adult: true},
	}
	extractor := &fakeExtractor{intent: domain.Intent{MediaType: domain.MediaTypeMovie}}
	svc := newSearchService(t, extractor, catalog, nil)

	_, err := svc.Search(context.Background(), "movies")
	assert.ErrorIs(t, err, domain.ErrNoResults)
}

func TestSearchExtractorFailureAborts(t *testing.T) {
	catalog := newFakeCatalog()
	extractor := &fakeExtractor{err: fmt.Errorf("%w: gibberish", domain.ErrMalformedIntent)}
	svc := newSearchService(t, extractor, catalog, nil)

	_, err := svc.Search(context.Background(), "mood text")

	require.ErrorIs(t, err, domain.ErrMalformedIntent)
	// Mapping and discovery never ran
	assert.Empty(t, catalog.discovered)
}

func TestSearchDiscoverFailurePropagates(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.discoverErr = domain.ErrProviderUnreachable
	extractor := &fakeExtractor{intent: domain.Intent{MediaType: domain.MediaTypeMovie}}
	svc := newSearchService(t, extractor, catalog, nil)

	_, err := svc.Search(context.Background(), "movies")
	assert.ErrorIs(t, err, domain.ErrProviderUnreachable)
}

func TestSearchGenreLoadFailureIsNotFatal(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.genresErr = errors.New("genres down")
	catalog.discover = []*domain.Title{{ID: 1, Name: "Still Works", MediaType: domain.MediaTypeMovie}}
	extractor := &fakeExtractor{intent: domain.Intent{MediaType: domain.MediaTypeMovie}}
	svc := newSearchService(t, extractor, catalog, nil)

	titles, err := svc.Search(context.Background(), "movies")
	require.NoError(t, err)
	assert.Len(t, titles, 1)

	// The extractor was called with an empty vocabulary
	assert.Empty(t, extractor.gotGenres)
}

func TestSearchRecordsHistory(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.discover = []*domain.Title{{ID: 1, Name: "Recorded", MediaType: domain.MediaTypeMovie}}
	extractor := &fakeExtractor{intent: domain.Intent{
		MediaType: domain.MediaTypeMovie,
		Genres:    []string{"Comedy"},
	}}
	svc := newSearchService(t, extractor, catalog, nil)

	_, err := svc.Search(context.Background(), "funny movies")
	require.NoError(t, err)

	recent := svc.history.Recent(5)
	require.Len(t, recent, 1)
	assert.Equal(t, "funny movies", recent[0].Query)
	assert.Equal(t, 1, recent[0].ResultCount)
}
