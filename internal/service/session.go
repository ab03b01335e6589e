package service

import (
	"strings"
	"sync"

	"github.com/moodreel/moodreel/internal/domain"
)

// Session holds the per-session caches the pipeline stages share: the genre
// list (fetched once per session) and the keyword-to-ID map (grows lazily,
// never evicted). It is passed by reference to the stages; there is no
// ambient global state.
type Session struct {
	mu         sync.RWMutex
	genres     []domain.Genre
	genreIDs   map[string]int // lowercase name -> id
	keywordIDs map[string]int // lowercase keyword -> id
}

// NewSession creates an empty session
func NewSession() *Session {
	return &Session{
		genreIDs:   make(map[string]int),
		keywordIDs: make(map[string]int),
	}
}

// AddGenres merges provider genres into the cache. Matching is
// case-insensitive; the first entry for a name wins (movie and tv lists
// overlap on several names with identical IDs).
func (s *Session) AddGenres(genres []domain.Genre) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range genres {
		key := strings.ToLower(g.Name)
		if _, exists := s.genreIDs[key]; exists {
			continue
		}
		s.genreIDs[key] = g.ID
		s.genres = append(s.genres, g)
	}
}

// HasGenres reports whether the genre list has been loaded
func (s *Session) HasGenres() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.genres) > 0
}

// GenreNames returns the cached genre names in load order, for embedding in
// the extraction prompt.
func (s *Session) GenreNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.genres))
	for i, g := range s.genres {
		names[i] = g.Name
	}
	return names
}

// GenreIDByName looks up a genre by exact case-insensitive name match.
func (s *Session) GenreIDByName(name string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.genreIDs[strings.ToLower(name)]
	return id, ok
}

// KeywordID returns the cached provider ID for a keyword, if resolved before.
func (s *Session) KeywordID(keyword string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.keywordIDs[strings.ToLower(keyword)]
	return id, ok
}

// PutKeywordID caches a resolved keyword ID for the rest of the session.
// Entries are never invalidated; a provider-side rename stays stale until
// restart.
func (s *Session) PutKeywordID(keyword string, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keywordIDs[strings.ToLower(keyword)] = id
}
