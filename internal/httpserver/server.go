// apps/go-solver/internal/httpserver/server.go
//
// Local emulation of the remote game service, used by `serve`, by integration
// tests and for offline play over HTTP.
// Responsibilities:
//   - Router + middleware (JSON, request IDs, panic recovery, timeouts, access log).
//   - Public endpoints: "/", "/health", "/metrics".
//   - Game endpoints: POST /game/register, POST /game/create, POST /game/guess.
//   - Signed session cookie issued on register and checked when present.
//
// Notes:
//   - Guesses that cannot be scored are answered 200 with a null feedback and a
//     message, the way the public service does; the solver keys off the message.
//   - All game mutations go through one mutex: a single writer per server.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle/apps/go-solver/internal/daily"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/metrics"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// Options configures the emulated service.
type Options struct {
	MaxGuesses       int    // guess limit per game; 0 means unlimited
	DailySalt        string // key for the daily secret
	SessionSecret    string // HMAC key for session cookies
	AllowFixedAnswer bool   // accept "answer" on /game/create (tests, demos)
	Now              func() time.Time
}

// Server bundles router, store and word list.
type Server struct {
	r       *chi.Mux
	store   store.Store
	words   []game.Word
	allowed words.Set
	opts    Options
	log     zerolog.Logger
	rec     *metrics.ServiceRecorder
	mu      sync.Mutex // serializes game mutations
}

// New constructs a Server, installs middleware, and registers routes.
// reg receives the service metrics and backs GET /metrics.
func New(st store.Store, list []game.Word, opts Options, lg zerolog.Logger, reg *prometheus.Registry) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.SessionSecret == "" {
		opts.SessionSecret = "dev_secret_change_me"
	}
	s := &Server{
		r:       chi.NewRouter(),
		store:   st,
		words:   list,
		allowed: words.NewSet(list),
		opts:    opts,
		log:     lg,
		rec:     metrics.NewServiceRecorder(reg),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(s.accessLog)                     // one log line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time

	// --- diagnostics ---
	s.r.Get("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}).ServeHTTP)

	s.r.Group(func(r chi.Router) {
		r.Use(jsonContentType)
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"service":"wordle-emulator","endpoints":["/health","/metrics","POST /game/register","POST /game/create","POST /game/guess"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})

		r.Route("/game", func(r chi.Router) {
			r.Use(s.withSession)
			r.Post("/register", s.handleRegister)
			r.Post("/create", s.handleCreate)
			r.Post("/guess", s.handleGuess)
		})
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Handler exposes the router (used by tests and Serve).
func (s *Server) Handler() http.Handler { return s.r }

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one debug line per request with status and latency.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("request_id", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}

// ------------------------------ GAME ---------------------------------------

type registerReq struct {
	Mode string `json:"mode"` // "wordle" | "daily"
	Name string `json:"name"`
}

type registerRes struct {
	ID string `json:"id"`
}

// handleRegister creates a player and issues the session cookie.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}
	if req.Mode == "" {
		req.Mode = "wordle"
	}
	if req.Mode != "wordle" && req.Mode != "daily" {
		writeError(w, http.StatusBadRequest, "unknown mode")
		return
	}

	p := store.Player{ID: uuid.NewString(), Name: req.Name, Mode: req.Mode, CreatedAt: s.opts.Now().UTC()}
	if err := s.store.SavePlayer(r.Context(), p); err != nil {
		s.log.Error().Err(err).Msg("save player")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	if err := s.setSessionCookie(w, p.ID); err != nil {
		s.log.Error().Err(err).Msg("sign session")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.rec.PlayerRegistered()
	s.log.Info().Str("player", p.ID).Str("name", p.Name).Str("mode", p.Mode).Msg("player registered")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(registerRes{ID: p.ID})
}

type createReq struct {
	ID        string `json:"id"`
	Overwrite bool   `json:"overwrite"`
	Answer    string `json:"answer"` // optional fixed answer (testing)
}

type createRes struct {
	OK     bool   `json:"ok"`
	GameID string `json:"gameId"`
}

// handleCreate starts a game for a registered player.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	p, ok := s.player(w, r, req.ID)
	if !ok {
		return
	}

	answer, err := s.pickAnswer(p, req.Answer)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, err := s.store.GetGame(r.Context(), p.ID); err == nil && !cur.Finished && !req.Overwrite {
		writeError(w, http.StatusConflict, "game in progress")
		return
	}
	g := game.New(p.ID, answer, s.opts.MaxGuesses)
	if err := s.store.SaveGame(r.Context(), g); err != nil {
		s.log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	s.rec.GameCreated(p.Mode)
	s.log.Info().Str("player", p.ID).Str("game", g.ID).Msg("game created")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(createRes{OK: true, GameID: g.ID})
}

// pickAnswer returns the fixed answer if allowed, the daily word in daily mode,
// or a random word.
func (s *Server) pickAnswer(p store.Player, fixed string) (game.Word, error) {
	if fixed != "" {
		if !s.opts.AllowFixedAnswer {
			return game.Word{}, errors.New("fixed answers disabled")
		}
		return game.ParseWord(fixed)
	}
	if p.Mode == "daily" {
		if len(s.words) == 0 {
			return game.Word{}, words.ErrEmpty
		}
		return s.words[daily.WordIndex(s.opts.Now(), s.opts.DailySalt, len(s.words))], nil
	}
	return words.Random(s.words)
}

type guessReq struct {
	ID    string `json:"id"`
	Guess string `json:"guess"`
}

type guessRes struct {
	Feedback *string `json:"feedback"`
	Message  string  `json:"message"`
	State    string  `json:"state,omitempty"`
}

// handleGuess scores a guess against the player's current game.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	p, ok := s.player(w, r, req.ID)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.store.GetGame(r.Context(), p.ID)
	if errors.Is(err, store.ErrNotFound) {
		s.rec.Guess("over")
		_ = json.NewEncoder(w).Encode(guessRes{Message: "No game in progress, create one first"})
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("load game")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}

	word, err := game.ParseWord(req.Guess)
	if err != nil || !s.allowed.Contains(word) {
		s.rec.Guess("rejected")
		_ = json.NewEncoder(w).Encode(guessRes{Message: "Not a valid word", State: g.State()})
		return
	}

	fb, state, err := g.ApplyGuess(word)
	switch {
	case errors.Is(err, game.ErrLimitExceeded):
		s.rec.Guess("over")
		_ = json.NewEncoder(w).Encode(guessRes{Message: "Guess limit exceeded", State: state})
		return
	case errors.Is(err, game.ErrGameFinished):
		s.rec.Guess("over")
		_ = json.NewEncoder(w).Encode(guessRes{Message: "No game in progress, the word was already found", State: state})
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.store.SaveGame(r.Context(), g); err != nil {
		s.log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	s.rec.Guess(state)

	msg := "Keep guessing"
	switch state {
	case "won":
		msg = "Correct, you found the word"
	case "lost":
		msg = "Out of guesses, the word was " + g.Answer.String()
	}
	code := fb.String()
	s.log.Debug().Str("player", p.ID).Str("guess", word.String()).Str("feedback", code).Str("state", state).Msg("guess")
	_ = json.NewEncoder(w).Encode(guessRes{Feedback: &code, Message: msg, State: state})
}

// player loads the player named in the body and checks it against the session
// cookie, if one was presented. On failure it writes the response.
func (s *Server) player(w http.ResponseWriter, r *http.Request, id string) (store.Player, bool) {
	if id == "" {
		writeError(w, http.StatusBadRequest, "id required")
		return store.Player{}, false
	}
	if sid, ok := sessionPlayer(r.Context()); ok && sid != id {
		writeError(w, http.StatusForbidden, "session mismatch")
		return store.Player{}, false
	}
	p, err := s.store.GetPlayer(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "unknown player")
		return store.Player{}, false
	}
	if err != nil {
		s.log.Error().Err(err).Msg("load player")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return store.Player{}, false
	}
	return p, true
}

// writeError writes {"error": msg} with the given status.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
