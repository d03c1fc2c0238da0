package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// fakeService answers with canned bodies and records what it received.
type fakeService struct {
	t         *testing.T
	status    int
	guessBody string
	lastBody  map[string]any
	cookieOK  bool
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	require.Equal(f.t, http.MethodPost, r.Method)
	f.lastBody = map[string]any{}
	require.NoError(f.t, json.NewDecoder(r.Body).Decode(&f.lastBody))
	if c, err := r.Cookie("session"); err == nil && c.Value == "abc" {
		f.cookieOK = true
	}
	if f.status != 0 {
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
		return
	}
	switch r.URL.Path {
	case "/game/register":
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc", Path: "/"})
		_, _ = w.Write([]byte(`{"id":"p-1"}`))
	case "/game/create":
		w.WriteHeader(http.StatusCreated)
	case "/game/guess":
		_, _ = w.Write([]byte(f.guessBody))
	default:
		http.NotFound(w, r)
	}
}

func newTestClient(t *testing.T, f *fakeService) *Client {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	c, err := New(Config{BaseURL: srv.URL + "/game/", Timeout: time.Second})
	require.NoError(t, err)
	return c
}

func TestRegisterAndCreate(t *testing.T) {
	f := &fakeService{t: t}
	c := newTestClient(t, f)
	ctx := context.Background()

	id, err := c.Register(ctx, "bot")
	require.NoError(t, err)
	assert.Equal(t, "p-1", id)
	assert.Equal(t, map[string]any{"mode": "wordle", "name": "bot"}, f.lastBody)

	require.NoError(t, c.CreateGame(ctx, id))
	assert.Equal(t, map[string]any{"id": "p-1", "overwrite": true}, f.lastBody)
	assert.True(t, f.cookieOK, "session cookie must be sent back")
}

func TestGuessFeedback(t *testing.T) {
	f := &fakeService{t: t, guessBody: `{"feedback":"gyrrr","message":"keep going"}`}
	c := newTestClient(t, f)

	fb, err := c.Guess(context.Background(), "p-1", game.MustWord("oxide"))
	require.NoError(t, err)
	assert.Equal(t, "GYRRR", fb.String())
	assert.Equal(t, map[string]any{"id": "p-1", "guess": "oxide"}, f.lastBody)
}

func TestGuessWithoutFeedback(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"limit exceeded", `{"feedback":null,"message":"Guess limit exceeded"}`, solver.ErrGameOver},
		{"no game", `{"message":"No game in progress"}`, solver.ErrGameOver},
		{"unknown word", `{"feedback":null,"message":"not a valid word"}`, solver.ErrGuessRejected},
		{"empty feedback", `{"feedback":"","message":""}`, solver.ErrGuessRejected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, &fakeService{t: t, guessBody: tt.body})
			_, err := c.Guess(context.Background(), "p-1", game.MustWord("crane"))
			assert.ErrorIs(t, err, tt.want)
			assert.False(t, solver.IsTransport(err))
		})
	}
}

func TestTransportFailures(t *testing.T) {
	tests := []struct {
		name string
		f    *fakeService
	}{
		{"bad status", &fakeService{status: http.StatusInternalServerError}},
		{"malformed json", &fakeService{guessBody: `{"feedback":`}},
		{"malformed feedback", &fakeService{guessBody: `{"feedback":"GGXGG"}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.f.t = t
			c := newTestClient(t, tt.f)
			_, err := c.Guess(context.Background(), "p-1", game.MustWord("crane"))
			require.Error(t, err)
			assert.True(t, solver.IsTransport(err), "%v", err)
		})
	}

	t.Run("register status", func(t *testing.T) {
		c := newTestClient(t, &fakeService{t: t, status: http.StatusBadRequest})
		_, err := c.Register(context.Background(), "bot")
		assert.ErrorIs(t, err, ErrStatus)
		assert.True(t, solver.IsTransport(err))
	})
}

func TestUnreachableService(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(Config{BaseURL: url, Timeout: time.Second})
	require.NoError(t, err)
	err = c.CreateGame(context.Background(), "p-1")
	assert.True(t, solver.IsTransport(err))
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)
	_, err = c.Register(context.Background(), "bot")
	assert.True(t, solver.IsTransport(err))
}

func TestRateLimitHonoursContext(t *testing.T) {
	f := &fakeService{t: t}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	c, err := New(Config{BaseURL: srv.URL + "/game", RateLimit: 0.001})
	require.NoError(t, err)

	require.NoError(t, c.CreateGame(context.Background(), "p-1")) // uses the burst

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err = c.CreateGame(ctx, "p-1")
	assert.True(t, solver.IsTransport(err))
}
