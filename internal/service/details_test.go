package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/domain"
)

func TestDetails(t *testing.T) {
	repo := &fakeRepo{
		movies:  map[int]*domain.Movie{603: {ID: 603, Title: "The Matrix", Runtime: 136}},
		credits: map[int][]domain.Credit{603: {{ID: 6384, Name: "Keanu Reeves", Character: "Neo"}}},
		similar: map[int][]domain.Movie{603: movies("1", "2", "3", "4", "5", "6", "7", "8")},
		genres:  []domain.Genre{{ID: 28, Name: "Action"}},
	}

	d, err := NewDetailsService(repo, nil).Details(context.Background(), 603)
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", d.Movie.Title)
	require.Len(t, d.Cast, 1)
	assert.Equal(t, "Neo", d.Cast[0].Character)
	assert.Len(t, d.Similar, SimilarCount)
	assert.Equal(t, "Action", d.Genres[28])
	for _, name := range []string{"movie", "credits", "similar", "genres"} {
		assert.Equal(t, 1, repo.called(name), name)
	}
}

func TestDetailsNotFound(t *testing.T) {
	d, err := NewDetailsService(&fakeRepo{}, nil).Details(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, d)
}
