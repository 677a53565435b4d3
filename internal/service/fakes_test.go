package service

import (
	"context"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
)

// fakeRepo serves canned metadata; errs fails the named endpoint
type fakeRepo struct {
	discover []domain.Movie
	trending map[domain.TrendingWindow][]domain.Movie
	genres   []domain.Genre
	search   map[string][]domain.Movie
	movies   map[int]*domain.Movie
	credits  map[int][]domain.Credit
	similar  map[int][]domain.Movie
	errs     map[string]error

	mu    sync.Mutex
	calls []string
}

func (f *fakeRepo) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	return f.errs[name]
}

func (f *fakeRepo) called(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeRepo) Search(ctx context.Context, title string) ([]domain.Movie, error) {
	return f.SearchPage(ctx, title, 1)
}

func (f *fakeRepo) SearchPage(_ context.Context, title string, _ int) ([]domain.Movie, error) {
	if err := f.record("search"); err != nil {
		return nil, err
	}
	return f.search[title], nil
}

func (f *fakeRepo) Discover(context.Context) ([]domain.Movie, error) {
	if err := f.record("discover"); err != nil {
		return nil, err
	}
	return f.discover, nil
}

func (f *fakeRepo) Trending(_ context.Context, window domain.TrendingWindow) ([]domain.Movie, error) {
	if err := f.record("trending:" + string(window)); err != nil {
		return nil, err
	}
	return f.trending[window], nil
}

func (f *fakeRepo) Genres(context.Context) ([]domain.Genre, error) {
	if err := f.record("genres"); err != nil {
		return nil, err
	}
	return f.genres, nil
}

func (f *fakeRepo) Movie(_ context.Context, id int) (*domain.Movie, error) {
	if err := f.record("movie"); err != nil {
		return nil, err
	}
	m, ok := f.movies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

func (f *fakeRepo) Credits(_ context.Context, id int) ([]domain.Credit, error) {
	if err := f.record("credits"); err != nil {
		return nil, err
	}
	return f.credits[id], nil
}

func (f *fakeRepo) Similar(_ context.Context, id int) ([]domain.Movie, error) {
	if err := f.record("similar"); err != nil {
		return nil, err
	}
	return f.similar[id], nil
}

// fakeCompleter answers every prompt with the same text
type fakeCompleter struct {
	text string
	err  error
}

func (f *fakeCompleter) Complete(context.Context, []domain.ChatMessage) (string, error) {
	return f.text, f.err
}

// memStore is an in-memory favorites store
type memStore struct {
	records []domain.FavoriteRecord
	err     error
}

func (m *memStore) List() []domain.FavoriteRecord {
	return append([]domain.FavoriteRecord{}, m.records...)
}

func (m *memStore) IsSaved(id int) bool {
	for _, r := range m.records {
		if r.ID == id {
			return true
		}
	}
	return false
}

func (m *memStore) Toggle(record domain.FavoriteRecord) (bool, error) {
	if m.err != nil {
		return m.IsSaved(record.ID), m.err
	}
	for i, r := range m.records {
		if r.ID == record.ID {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return false, nil
		}
	}
	m.records = append(m.records, record)
	return true, nil
}

func (m *memStore) Close() error { return nil }

func movies(titles ...string) []domain.Movie {
	out := make([]domain.Movie, len(titles))
	for i, t := range titles {
		out[i] = domain.Movie{ID: i + 1, Title: t}
	}
	return out
}
