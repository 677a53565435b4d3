package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/domain"
)

func TestFavoritesToggle(t *testing.T) {
	svc := NewFavoritesService(&memStore{}, nil)
	movie := domain.FavoriteRecord{ID: 42, Title: "Heat"}

	saved, err := svc.Toggle(movie)
	require.NoError(t, err)
	assert.True(t, saved)
	assert.True(t, svc.IsSaved(42))
	assert.Equal(t, []domain.FavoriteRecord{movie}, svc.List())

	saved, err = svc.Toggle(movie)
	require.NoError(t, err)
	assert.False(t, saved)
	assert.Empty(t, svc.List())
}

func TestFavoritesToggleError(t *testing.T) {
	failure := errors.New("disk full")
	svc := NewFavoritesService(&memStore{err: failure}, nil)

	saved, err := svc.Toggle(domain.FavoriteRecord{ID: 1})
	assert.ErrorIs(t, err, failure)
	assert.False(t, saved)
}

func TestFavoritesFilter(t *testing.T) {
	store := &memStore{records: []domain.FavoriteRecord{
		{ID: 1, Title: "The Matrix"},
		{ID: 2, Title: "Heat"},
		{ID: 3, Title: "Matrix"},
	}}
	svc := NewFavoritesService(store, nil)

	results := svc.Filter("matrix")
	require.Len(t, results, 2)
	// Closer title first
	assert.Equal(t, 3, results[0].Movie.ID)
	assert.Equal(t, 1, results[1].Movie.ID)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, results[0].MatchedIndexes)
	assert.LessOrEqual(t, results[0].Distance, results[1].Distance)

	assert.Empty(t, svc.Filter("zzz"))
}

func TestFavoritesFilterEmptyQueryReturnsAll(t *testing.T) {
	store := &memStore{records: []domain.FavoriteRecord{{ID: 1, Title: "B"}, {ID: 2, Title: "A"}}}
	results := NewFavoritesService(store, nil).Filter("  ")
	require.Len(t, results, 2)
	assert.Equal(t, 1, results[0].Movie.ID)
	assert.Nil(t, results[0].MatchedIndexes)
}
