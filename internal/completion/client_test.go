package completion

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Options{
		Endpoint:    server.URL + "/v1/chat/completions",
		Token:       "secret-key",
		Temperature: DefaultTemperature,
	}, nil)
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(Options{Token: "k"}, nil)
	assert.Equal(t, DefaultEndpoint, c.opts.Endpoint)
	assert.Equal(t, DefaultModel, c.opts.Model)
	assert.Equal(t, DefaultMaxTokens, c.opts.MaxTokens)
	assert.Zero(t, c.httpClient.Timeout)
}

func TestCompleteSendsRequestAndReturnsFirstChoice(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "secret-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var req chatRequest
		require.NoError(t, json.Unmarshal(raw, &req))
		assert.Equal(t, DefaultModel, req.Model)
		assert.InDelta(t, 0.5, req.Temperature, 0.0001)
		assert.Equal(t, DefaultMaxTokens, req.MaxTokens)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, domain.RoleSystem, req.Messages[0].Role)
		assert.Equal(t, domain.RoleUser, req.Messages[1].Role)
		assert.Contains(t, req.Messages[1].Content, `"space mystery"`)

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"[\"Moon\"]"}},{"message":{"content":"ignored"}}]}`))
	})

	text, err := client.Complete(context.Background(), TitlePrompt("space mystery", TitleLimit))
	require.NoError(t, err)
	assert.Equal(t, `["Moon"]`, text)
}

func TestCompleteNoChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	text, err := client.Complete(context.Background(), TitlePrompt("x", 1))
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestCompleteNon2xxIsRequestFailed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Complete(context.Background(), TitlePrompt("x", 1))
	assert.ErrorIs(t, err, domain.ErrRequestFailed)
	assert.NotErrorIs(t, err, domain.ErrCancelled)
}

func TestCompleteUnauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.Complete(context.Background(), TitlePrompt("x", 1))
	assert.ErrorIs(t, err, domain.ErrAuthFailed)
	assert.ErrorIs(t, err, domain.ErrRequestFailed)
}

func TestCompleteCancelled(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	_, err := client.Complete(ctx, RecommendPrompt("x", RecommendLimit))
	assert.ErrorIs(t, err, domain.ErrCancelled)
	assert.NotErrorIs(t, err, domain.ErrRequestFailed)
}

func TestPromptsEmbedLimitAndQuery(t *testing.T) {
	title := TitlePrompt("heist with a twist", TitleLimit)
	require.Len(t, title, 2)
	assert.Contains(t, title[1].Content, "up to 4 movies")
	assert.Contains(t, title[1].Content, `"heist with a twist"`)

	rec := RecommendPrompt("slow burn horror", RecommendLimit)
	require.Len(t, rec, 2)
	assert.Contains(t, rec[0].Content, `"explanation"`)
	assert.Contains(t, rec[1].Content, "up to 6 movies")
}
