package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	want := DefaultConfig()
	assert.Equal(t, want, cfg)
	assert.Equal(t, 500*time.Millisecond, cfg.Search.KeywordDebounce)
	assert.Equal(t, 800*time.Millisecond, cfg.Search.RecommendDebounce)
	assert.Equal(t, 4, cfg.Search.AssistLimit)
	assert.Equal(t, 6, cfg.Search.RecommendLimit)
	assert.False(t, cfg.IsConfigured())
}

func TestSaveThenLoad(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.TMDB.Token = "tmdb-token"
	cfg.Completion.Token = "gateway-token"
	cfg.Completion.Temperature = 0.2
	cfg.Search.RecommendDebounce = 1200 * time.Millisecond
	cfg.Storage.Path = filepath.Join(dir, "data")
	require.NoError(t, SaveConfig(cfg, dir))

	loaded, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.True(t, loaded.IsConfigured())
}

func TestLoadConfigPartialFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "tmdb:\n  token: abc\nsearch:\n  keyword_debounce: 250ms\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "abc", cfg.TMDB.Token)
	assert.Equal(t, 250*time.Millisecond, cfg.Search.KeywordDebounce)
	assert.Equal(t, "en-US", cfg.TMDB.Language)
	assert.Equal(t, 500*time.Millisecond, cfg.Search.AssistDebounce)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("MARQUEE_TMDB_TOKEN", "from-env")
	t.Setenv("MARQUEE_COMPLETION_TOKEN", "gw-env")
	t.Setenv("MARQUEE_SEARCH_RECOMMEND_LIMIT", "3")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.TMDB.Token)
	assert.Equal(t, "gw-env", cfg.Completion.Token)
	assert.Equal(t, 3, cfg.Search.RecommendLimit)
	assert.True(t, cfg.IsConfigured())
}

func TestLoadConfigInvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("tmdb: [unclosed"), 0644))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestIsConfigured(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TMDB.Token = "a"
	assert.False(t, cfg.IsConfigured())
	cfg.Completion.Token = "b"
	assert.True(t, cfg.IsConfigured())
}
