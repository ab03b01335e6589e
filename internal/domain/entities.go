package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// MediaType distinguishes the two catalog content types
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// Valid reports whether t is one of the known media types
func (t MediaType) Valid() bool {
	return t == MediaTypeMovie || t == MediaTypeTV
}

// Label returns a human-readable name for the media type
func (t MediaType) Label() string {
	switch t {
	case MediaTypeMovie:
		return "Movie"
	case MediaTypeTV:
		return "TV Show"
	default:
		return "Unknown"
	}
}

// Genre is a provider-defined category. The provider assigns IDs; the list is
// fetched once per session and cached.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Intent is the structured interpretation of the user's free-text mood,
// produced by the extractor and consumed immediately by the mapper.
type Intent struct {
	MediaType MediaType `json:"type"`
	Genres    []string  `json:"genres"`
	Keywords  []string  `json:"keywords"`
	Year      int       `json:"year,omitempty"`
}

// Summary returns a short description of the intent for status lines and
// search history entries.
func (i Intent) Summary() string {
	parts := []string{i.MediaType.Label()}
	if len(i.Genres) > 0 {
		parts = append(parts, strings.Join(i.Genres, ", "))
	}
	if i.Year > 0 {
		parts = append(parts, strconv.Itoa(i.Year))
	}
	return strings.Join(parts, " · ")
}

// Filters are the provider-native search parameters derived from an Intent.
type Filters struct {
	MediaType  MediaType
	GenreIDs   []int
	KeywordIDs []int
	Year       int
}

// Title is a single discovered catalog entry. Immutable once fetched; held
// only for the current result set.
type Title struct {
	ID          int
	Name        string
	Overview    string
	PosterPath  string
	ReleaseDate string // "YYYY-MM-DD", may be empty
	Rating      float64
	MediaType   MediaType
	Adult       bool
}

// Year returns the release year, or 0 when the release date is unknown.
func (t Title) Year() int {
	if len(t.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(t.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// DisplayName returns the title with its release year when known.
func (t Title) DisplayName() string {
	if y := t.Year(); y > 0 {
		return fmt.Sprintf("%s (%d)", t.Name, y)
	}
	return t.Name
}

// FormattedRating returns the community rating as a one-decimal string, or
// empty when the provider reported no votes.
func (t Title) FormattedRating() string {
	if t.Rating <= 0 {
		return ""
	}
	return fmt.Sprintf("%.1f", t.Rating)
}

// SearchRecord is one entry in the persisted search history.
type SearchRecord struct {
	Query       string    `json:"query"`
	MediaType   MediaType `json:"media_type"`
	Genres      []string  `json:"genres,omitempty"`
	Keywords    []string  `json:"keywords,omitempty"`
	ResultCount int       `json:"result_count"`
	SearchedAt  int64     `json:"searched_at"` // Unix timestamp
}
