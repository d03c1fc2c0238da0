// apps/go-solver/internal/client/client.go
//
// HTTP client for the remote game service.
//
// Endpoints (relative to BaseURL):
//   POST /register {mode, name}     → {id}
//   POST /create   {id, overwrite}  → status only
//   POST /guess    {id, guess}      → {feedback, message}
//
// The service keeps a session cookie; a cookie jar carries it between calls.
// Every failure to reach the service or understand its answer is reported as a
// *solver.TransportError. A guess answered without feedback maps to
// solver.ErrGameOver (limit exceeded / no game) or solver.ErrGuessRejected.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// DefaultBaseURL is the public game service.
const DefaultBaseURL = "https://wordle.we4shakthi.in/game"

// ErrStatus is wrapped for non-success HTTP responses.
var ErrStatus = errors.New("unexpected status")

// Config holds client settings.
type Config struct {
	BaseURL   string        // service root, without trailing slash
	Mode      string        // game mode sent on registration
	Timeout   time.Duration // per request; 0 means 10s
	RateLimit float64       // requests per second; 0 means unlimited
}

// Client talks to the game service. It implements solver.Service.
type Client struct {
	base    string
	mode    string
	http    *http.Client
	limiter *rate.Limiter
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its Jar should be set if the
// service relies on cookies.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithLogger sets the logger.
func WithLogger(lg zerolog.Logger) Option { return func(c *Client) { c.log = lg } }

// New constructs a Client.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Mode == "" {
		cfg.Mode = "wordle"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	c := &Client{
		base:    strings.TrimRight(cfg.BaseURL, "/"),
		mode:    cfg.Mode,
		http:    &http.Client{Jar: jar, Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(limit, 1),
		log:     zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

var _ solver.Service = (*Client)(nil)

type registerReq struct {
	Mode string `json:"mode"`
	Name string `json:"name"`
}

type registerRes struct {
	ID string `json:"id"`
}

// Register creates a player and returns its id.
func (c *Client) Register(ctx context.Context, name string) (string, error) {
	var res registerRes
	if err := c.post(ctx, "register", "/register", registerReq{Mode: c.mode, Name: name}, &res); err != nil {
		return "", err
	}
	if res.ID == "" {
		return "", &solver.TransportError{Op: "register", Err: errors.New("response has no player id")}
	}
	c.log.Info().Str("player", name).Str("id", res.ID).Msg("registered")
	return res.ID, nil
}

type createReq struct {
	ID        string `json:"id"`
	Overwrite bool   `json:"overwrite"`
}

// CreateGame starts a fresh game for the player, replacing any current one.
func (c *Client) CreateGame(ctx context.Context, playerID string) error {
	if err := c.post(ctx, "create", "/create", createReq{ID: playerID, Overwrite: true}, nil); err != nil {
		return err
	}
	c.log.Info().Str("id", playerID).Msg("new game started")
	return nil
}

type guessReq struct {
	ID    string `json:"id"`
	Guess string `json:"guess"`
}

type guessRes struct {
	Feedback *string `json:"feedback"`
	Message  string  `json:"message"`
}

// Guess submits a word and decodes the service's G/Y/R feedback.
func (c *Client) Guess(ctx context.Context, playerID string, word game.Word) (game.Feedback, error) {
	var res guessRes
	if err := c.post(ctx, "guess", "/guess", guessReq{ID: playerID, Guess: word.String()}, &res); err != nil {
		return game.Feedback{}, err
	}
	if res.Message != "" {
		c.log.Debug().Str("guess", word.String()).Str("message", res.Message).Msg("service message")
	}

	if res.Feedback == nil || *res.Feedback == "" {
		msg := strings.ToLower(res.Message)
		if strings.Contains(msg, "exceeded") || strings.Contains(msg, "no game") {
			return game.Feedback{}, fmt.Errorf("%w: %s", solver.ErrGameOver, res.Message)
		}
		return game.Feedback{}, fmt.Errorf("%w: %s: %s", solver.ErrGuessRejected, word, res.Message)
	}

	fb, err := game.ParseFeedback(*res.Feedback)
	if err != nil {
		return game.Feedback{}, &solver.TransportError{Op: "guess", Err: err}
	}
	return fb, nil
}

// post sends body as JSON and decodes the JSON response into out (if non-nil).
func (c *Client) post(ctx context.Context, op, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &solver.TransportError{Op: op, Err: err}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return &solver.TransportError{Op: op, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return &solver.TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return &solver.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &solver.TransportError{Op: op, Err: err}
	}
	c.log.Debug().
		Str("op", op).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("service call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &solver.TransportError{Op: op, Err: fmt.Errorf("%w %d: %s", ErrStatus, resp.StatusCode, bytes.TrimSpace(data))}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &solver.TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
