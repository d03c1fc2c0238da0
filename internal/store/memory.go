// apps/go-solver/internal/store/memory.go
//
// In-memory implementation of Store.
//
// Characteristics:
//   - Players and games are kept in maps keyed by player id.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Games are copied in and out, so callers never share a *game.Game with the store.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu      sync.RWMutex          // guards both maps
	players map[string]Player     // keyed by Player.ID
	games   map[string]*game.Game // keyed by Game.PlayerID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{
		players: make(map[string]Player),
		games:   make(map[string]*game.Game),
	}
}

func (m *memory) SavePlayer(ctx context.Context, p Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players[p.ID] = p
	return nil
}

func (m *memory) GetPlayer(ctx context.Context, id string) (Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.players[id]; ok {
		return p, nil
	}
	return Player{}, ErrNotFound
}

func (m *memory) SaveGame(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.PlayerID] = clone(g)
	return nil
}

func (m *memory) GetGame(ctx context.Context, playerID string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[playerID]; ok {
		return clone(g), nil
	}
	return nil, ErrNotFound
}

func clone(g *game.Game) *game.Game {
	c := *g
	c.Guesses = append([]game.Word(nil), g.Guesses...)
	return &c
}
