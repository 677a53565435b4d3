package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	bolt "go.etcd.io/bbolt"

	"github.com/mmcdole/marquee/internal/domain"
)

// SavedMoviesKey is the fixed key holding the saved movie array
const SavedMoviesKey = "savedMovies"

var bucketFavorites = []byte("favorites")

// FavoritesStore implements domain.FavoritesStore using BoltDB.
//
// All records live under one key as a JSON array. Every mutation rewrites the
// whole array. Absent or unreadable data reads as an empty list.
type FavoritesStore struct {
	db *bolt.DB
	mu sync.Mutex // Serializes read-modify-write and protects cache

	// Raw value of SavedMoviesKey, populated on first access
	cache  []byte
	cached bool
}

// Ensure FavoritesStore implements domain.FavoritesStore
var _ domain.FavoritesStore = (*FavoritesStore)(nil)

// NewFavoritesStore opens the store in dir. An empty dir selects memory-only
// mode, where nothing survives Close.
func NewFavoritesStore(dir string) (*FavoritesStore, error) {
	if dir == "" {
		// Memory-only mode (no persistence)
		return &FavoritesStore{cached: true}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "marquee.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketFavorites)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &FavoritesStore{db: db}, nil
}

func (s *FavoritesStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// List returns the saved records in insertion order
func (s *FavoritesStore) List() []domain.FavoriteRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// IsSaved reports whether a record with id is saved
func (s *FavoritesStore) IsSaved(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOf(s.loadLocked(), id) >= 0
}

// Toggle removes the record with record.ID if saved, otherwise appends it.
// It returns the new saved state.
func (s *FavoritesStore) Toggle(record domain.FavoriteRecord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.loadLocked()
	saved := false
	if i := indexOf(records, record.ID); i >= 0 {
		records = append(records[:i], records[i+1:]...)
	} else {
		records = append(records, record)
		saved = true
	}

	if err := s.storeLocked(records); err != nil {
		return !saved, err
	}
	return saved, nil
}

// === Raw value access ===

func (s *FavoritesStore) loadLocked() []domain.FavoriteRecord {
	if !s.cached {
		s.cache = s.read()
		s.cached = true
	}

	records := []domain.FavoriteRecord{}
	if len(s.cache) == 0 {
		return records
	}
	if err := json.Unmarshal(s.cache, &records); err != nil {
		return []domain.FavoriteRecord{}
	}
	return records
}

func (s *FavoritesStore) read() []byte {
	if s.db == nil {
		return nil
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFavorites)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(SavedMoviesKey)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	return data
}

func (s *FavoritesStore) storeLocked(records []domain.FavoriteRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}

	if s.db != nil {
		err = s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucketFavorites).Put([]byte(SavedMoviesKey), data)
		})
		if err != nil {
			return fmt.Errorf("failed to write saved movies: %w", err)
		}
	}

	s.cache = data
	s.cached = true
	return nil
}

func indexOf(records []domain.FavoriteRecord, id int) int {
	for i, r := range records {
		if r.ID == id {
			return i
		}
	}
	return -1
}
