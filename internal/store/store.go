// apps/go-solver/internal/store/store.go
//
// Persistence for the emulated game service: registered players and the current
// game of each player. Two implementations: memory (tests, ephemeral runs) and
// SQLite (durable across restarts of `serve`).

package store

import (
	"context"
	"errors"
	"time"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

// ErrNotFound is returned for unknown player ids.
var ErrNotFound = errors.New("not found")

// Player is a registered service user.
type Player struct {
	ID        string
	Name      string
	Mode      string // "wordle" or "daily"
	CreatedAt time.Time
}

// Store defines the persistence interface for players and games.
type Store interface {
	// SavePlayer inserts or updates a player.
	SavePlayer(ctx context.Context, p Player) error

	// GetPlayer retrieves a player by id, or ErrNotFound.
	GetPlayer(ctx context.Context, id string) (Player, error)

	// SaveGame persists the game as its player's current game, replacing any other.
	SaveGame(ctx context.Context, g *game.Game) error

	// GetGame returns the current game of a player, or ErrNotFound.
	GetGame(ctx context.Context, playerID string) (*game.Game, error)
}
