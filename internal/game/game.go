// Package game holds the entity model: validated rosters, players and games.
// Every derived view is computed on access; nothing is denormalized.
package game

import (
	"fmt"
	"time"
)

// Game is one completed session with exactly one winner.
type Game struct {
	date    time.Time
	players []Player
}

// NewGame validates the players and returns an immutable Game.
// It rejects empty games, zero or multiple winners and repeated names.
func NewGame(date time.Time, players ...Player) (Game, error) {
	if len(players) == 0 {
		return Game{}, ErrNoPlayers
	}

	winners := 0
	seen := make(map[Name]struct{}, len(players))
	for _, p := range players {
		if _, dup := seen[p.name]; dup {
			return Game{}, fmt.Errorf("%w: %s", ErrDuplicateName, p.name)
		}
		seen[p.name] = struct{}{}
		if p.isWinner {
			winners++
		}
	}
	switch {
	case winners == 0:
		return Game{}, ErrNoWinner
	case winners > 1:
		return Game{}, fmt.Errorf("%w: %d winners", ErrMultipleWinners, winners)
	}

	return Game{
		date:    date,
		players: append([]Player(nil), players...),
	}, nil
}

// Date returns the day the game was played.
func (g Game) Date() time.Time {
	return g.date
}

// Players returns a copy of the players in their recorded order.
func (g Game) Players() []Player {
	return append([]Player(nil), g.players...)
}

// Len returns the number of players.
func (g Game) Len() int {
	return len(g.players)
}

// Names returns one name per player, in player order.
func (g Game) Names() []Name {
	names := make([]Name, len(g.players))
	for i, p := range g.players {
		names[i] = p.name
	}
	return names
}

// Factions returns one faction per player, in player order.
func (g Game) Factions() []Faction {
	factions := make([]Faction, len(g.players))
	for i, p := range g.players {
		factions[i] = p.faction
	}
	return factions
}

// Winner returns the winning player or ErrNoWinner.
func (g Game) Winner() (Player, error) {
	for _, p := range g.players {
		if p.isWinner {
			return p, nil
		}
	}
	return Player{}, ErrNoWinner
}

// Losers returns every non-winning player, in player order.
func (g Game) Losers() []Player {
	losers := make([]Player, 0, len(g.players))
	for _, p := range g.players {
		if !p.isWinner {
			losers = append(losers, p)
		}
	}
	return losers
}

func (g Game) WinnerName() (Name, error) {
	w, err := g.Winner()
	if err != nil {
		return "", err
	}
	return w.name, nil
}

func (g Game) WinnerFaction() (Faction, error) {
	w, err := g.Winner()
	if err != nil {
		return "", err
	}
	return w.faction, nil
}

func (g Game) LoserNames() []Name {
	losers := g.Losers()
	names := make([]Name, len(losers))
	for i, p := range losers {
		names[i] = p.name
	}
	return names
}

func (g Game) LoserFactions() []Faction {
	losers := g.Losers()
	factions := make([]Faction, len(losers))
	for i, p := range losers {
		factions[i] = p.faction
	}
	return factions
}
