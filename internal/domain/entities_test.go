package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovieFormatting(t *testing.T) {
	tests := []struct {
		name    string
		movie   Movie
		year    string
		rating  string
		runtime string
	}{
		{"full", Movie{ReleaseDate: "2014-11-05", VoteAverage: 8.43, Runtime: 169}, "2014", "8.4", "2h 49m"},
		{"short", Movie{ReleaseDate: "2009-06-12", Runtime: 45}, "2009", "0.0", "45m"},
		{"unknown", Movie{ReleaseDate: "20"}, "", "0.0", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.year, tt.movie.Year())
			assert.Equal(t, tt.rating, tt.movie.FormattedRating())
			assert.Equal(t, tt.runtime, tt.movie.FormattedRuntime())
		})
	}
}

func TestGenreIDList(t *testing.T) {
	assert.Equal(t, []int{18, 80}, Movie{GenreIDs: []int{18, 80}}.GenreIDList())
	assert.Equal(t, []int{28}, Movie{Genres: []Genre{{ID: 28, Name: "Action"}}}.GenreIDList())
	assert.Empty(t, Movie{}.GenreIDList())
}

func TestGenreMapLabels(t *testing.T) {
	genres := NewGenreMap([]Genre{{ID: 18, Name: "Drama"}, {ID: 878, Name: "Science Fiction"}})
	assert.Equal(t, []string{"Science Fiction", "Drama"}, genres.Labels([]int{878, 99, 18}))
	assert.Empty(t, GenreMap(nil).Labels([]int{1}))
}

func TestImageURL(t *testing.T) {
	assert.Equal(t, "https://img/w500/a.jpg", ImageURL("https://img/w500/", "/a.jpg"))
	assert.Equal(t, "https://img/w500/a.jpg", ImageURL("https://img/w500", "a.jpg"))
	assert.Equal(t, "", ImageURL("https://img/w500", ""))
}

func TestTrendingWindow(t *testing.T) {
	assert.True(t, TrendingDay.Valid())
	assert.True(t, TrendingWeek.Valid())
	assert.False(t, TrendingWindow("month").Valid())
	assert.Equal(t, TrendingWeek, TrendingDay.Toggle())
	assert.Equal(t, TrendingDay, TrendingWeek.Toggle())
}

func TestErrorHierarchy(t *testing.T) {
	assert.True(t, errors.Is(ErrAuthFailed, ErrRequestFailed))
	assert.True(t, errors.Is(ErrNotFound, ErrRequestFailed))
	assert.False(t, errors.Is(ErrCancelled, ErrRequestFailed))
}
