package domain

import "context"

// Catalog is the movie catalog provider surface used by the search pipeline:
// list genres, resolve a keyword string to its provider ID, and discover
// titles matching a set of filters.
type Catalog interface {
	// Genres returns the provider-defined genre list for a media type.
	Genres(ctx context.Context, mediaType MediaType) ([]Genre, error)

	// ResolveKeyword maps a free-text keyword to the provider's internal
	// keyword identifier. ok is false when the provider has no match.
	ResolveKeyword(ctx context.Context, keyword string) (id int, ok bool, err error)

	// Discover returns titles matching the filters, in the provider's
	// popularity order, along with the provider-reported total.
	Discover(ctx context.Context, filters Filters) ([]*Title, int, error)
}

// IntentExtractor turns a free-text mood description into a structured Intent.
// genreNames is the current session genre vocabulary, embedded in the prompt.
type IntentExtractor interface {
	Extract(ctx context.Context, text string, genreNames []string) (Intent, error)
}

// HistoryStore persists recent searches across sessions.
type HistoryStore interface {
	AppendSearch(rec SearchRecord) error
	RecentSearches(limit int) ([]SearchRecord, error)
}
