package ledger

import (
	"context"

	"github.com/mauv0809/rootstats/internal/game"
)

// Store defines the interface for reading and writing recorded games.
type Store interface {
	SaveGame(ctx context.Context, g game.Game) (string, error)
	Import(ctx context.Context, records []Record) (int, error)
	ListRecords(ctx context.Context) ([]Record, error)
	ListGames(ctx context.Context) ([]game.Game, error)
	DeleteGame(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}
