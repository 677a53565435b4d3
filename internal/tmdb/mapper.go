package tmdb

import "github.com/mmcdole/marquee/internal/domain"

// MapMovies converts TMDB movies to domain movies, preserving order
func MapMovies(dtos []MovieDTO) []domain.Movie {
	movies := make([]domain.Movie, 0, len(dtos))
	for _, d := range dtos {
		movies = append(movies, MapMovie(d))
	}
	return movies
}

// MapMovie converts a single TMDB movie
func MapMovie(d MovieDTO) domain.Movie {
	m := domain.Movie{
		ID:           d.ID,
		Title:        d.Title,
		Overview:     d.Overview,
		PosterPath:   d.PosterPath,
		BackdropPath: d.BackdropPath,
		ReleaseDate:  d.ReleaseDate,
		VoteAverage:  d.VoteAverage,
		GenreIDs:     d.GenreIDs,
		Runtime:      d.Runtime,
	}
	if len(d.Genres) > 0 {
		m.Genres = MapGenres(d.Genres)
	}
	return m
}

// MapGenres converts TMDB genres
func MapGenres(dtos []GenreDTO) []domain.Genre {
	genres := make([]domain.Genre, len(dtos))
	for i, g := range dtos {
		genres[i] = domain.Genre{ID: g.ID, Name: g.Name}
	}
	return genres
}

// MapCast converts TMDB cast entries in billing order
func MapCast(dtos []CastDTO) []domain.Credit {
	cast := make([]domain.Credit, len(dtos))
	for i, c := range dtos {
		cast[i] = domain.Credit{
			ID:          c.ID,
			Name:        c.Name,
			Character:   c.Character,
			ProfilePath: c.ProfilePath,
		}
	}
	return cast
}
