package tmdb

import "github.com/moodreel/moodreel/internal/domain"

// MapTitles converts discover result DTOs to domain titles, preserving the
// provider's ordering.
func MapTitles(dtos []titleDTO, mediaType domain.MediaType) []*domain.Title {
	titles := make([]*domain.Title, 0, len(dtos))
	for _, dto := range dtos {
		titles = append(titles, mapTitle(dto, mediaType))
	}
	return titles
}

func mapTitle(dto titleDTO, mediaType domain.MediaType) *domain.Title {
	name := dto.Title
	releaseDate := dto.ReleaseDate
	if mediaType == domain.MediaTypeTV {
		name = dto.Name
		releaseDate = dto.FirstAirDate
	}

	return &domain.Title{
		ID:          dto.ID,
		Name:        name,
		Overview:    dto.Overview,
		PosterPath:  dto.PosterPath,
		ReleaseDate: releaseDate,
		Rating:      dto.VoteAverage,
		MediaType:   mediaType,
		Adult:       dto.Adult,
	}
}
