package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/mauv0809/rootstats/internal/game"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrInvalidDate  = errors.New("invalid date")
)

// PlayerRecord is the stored form of one seat at a game.
type PlayerRecord struct {
	Name     string `json:"name" msgpack:"name"`
	Faction  string `json:"faction" msgpack:"faction"`
	IsWinner bool   `json:"is_winner" msgpack:"is_winner"`
}

// Record is the stored form of a game. Date uses the YYYY-MM-DD layout.
type Record struct {
	ID      string         `json:"id,omitempty" msgpack:"id"`
	Date    string         `json:"date" msgpack:"date"`
	Players []PlayerRecord `json:"players" msgpack:"players"`
}

// RecordOf converts a game into its stored form.
func RecordOf(id string, g game.Game) Record {
	players := g.Players()
	r := Record{
		ID:      id,
		Date:    g.Date().Format(time.DateOnly),
		Players: make([]PlayerRecord, 0, len(players)),
	}
	for _, p := range players {
		r.Players = append(r.Players, PlayerRecord{
			Name:     string(p.Name()),
			Faction:  string(p.Faction()),
			IsWinner: p.IsWinner(),
		})
	}
	return r
}

// Game validates the record against roster and rebuilds the game.
func (r Record) Game(roster *game.Roster) (game.Game, error) {
	date, err := time.Parse(time.DateOnly, r.Date)
	if err != nil {
		return game.Game{}, fmt.Errorf("%w %q: %v", ErrInvalidDate, r.Date, err)
	}

	players := make([]game.Player, 0, len(r.Players))
	for _, pr := range r.Players {
		p, err := roster.NewPlayer(pr.Name, pr.Faction, pr.IsWinner)
		if err != nil {
			return game.Game{}, err
		}
		players = append(players, p)
	}
	return game.NewGame(date, players...)
}
