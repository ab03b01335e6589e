package tmdb

import "github.com/moodreel/moodreel/internal/domain"

// Wire types for the catalog provider's JSON responses

// genreListResponse is the envelope for GET /genre/{type}/list
type genreListResponse struct {
	Genres []domain.Genre `json:"genres"`
}

// keywordDTO is a single keyword search result
type keywordDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// keywordSearchResponse is the envelope for GET /search/keyword
type keywordSearchResponse struct {
	Results      []keywordDTO `json:"results"`
	TotalResults int          `json:"total_results"`
}

// titleDTO is a single discover result. Movies carry title/release_date,
// TV shows carry name/first_air_date.
type titleDTO struct {
	ID           int     `json:"id"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	VoteAverage  float64 `json:"vote_average"`
	Adult        bool    `json:"adult"`
}

// discoverResponse is the envelope for GET /discover/{type}
type discoverResponse struct {
	Page         int        `json:"page"`
	Results      []titleDTO `json:"results"`
	TotalResults int        `json:"total_results"`
	TotalPages   int        `json:"total_pages"`
}
