// Package stats derives participation counts, win counts and win rates from a
// list of games. Every function is pure and independent of the order of the
// input; keys are always the names or factions found in the input itself.
package stats

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/mauv0809/rootstats/internal/game"
)

// ErrUndefinedRate is returned when a win rate would divide by zero games
// or when the win and game counts disagree about which keys exist.
var ErrUndefinedRate = errors.New("win rate undefined")

// DistinctNames returns every name that appears in any game, sorted.
func DistinctNames(games []game.Game) []game.Name {
	return distinct(games, game.Game.Names)
}

// DistinctFactions returns every faction that appears in any game, sorted.
func DistinctFactions(games []game.Game) []game.Faction {
	return distinct(games, game.Game.Factions)
}

// GamesPlayedCount counts the games name took part in, won or lost.
func GamesPlayedCount(games []game.Game, name game.Name) int {
	return countContaining(games, game.Game.Names, name)
}

// GamesPlayedCountByFaction counts the games in which faction was played.
func GamesPlayedCountByFaction(games []game.Game, faction game.Faction) int {
	return countContaining(games, game.Game.Factions, faction)
}

// WinsCount counts the games won by name.
func WinsCount(games []game.Game, name game.Name) (int, error) {
	return countWinner(games, game.Game.WinnerName, name)
}

// WinsCountByFaction counts the games won by faction.
func WinsCountByFaction(games []game.Game, faction game.Faction) (int, error) {
	return countWinner(games, game.Game.WinnerFaction, faction)
}

// GameCountMap maps every distinct name to its number of games played.
func GameCountMap(games []game.Game) map[game.Name]int {
	return played(games, game.Game.Names)
}

// FactionGameCountMap maps every distinct faction to its number of games played.
func FactionGameCountMap(games []game.Game) map[game.Faction]int {
	return played(games, game.Game.Factions)
}

// WinCountMap maps every distinct name to its number of wins, zero included.
func WinCountMap(games []game.Game) (map[game.Name]int, error) {
	return wins(games, game.Game.Names, game.Game.WinnerName)
}

// FactionWinCountMap maps every distinct faction to its number of wins, zero included.
func FactionWinCountMap(games []game.Game) (map[game.Faction]int, error) {
	return wins(games, game.Game.Factions, game.Game.WinnerFaction)
}

// WinRateMap maps every distinct name to wins / games played.
func WinRateMap(games []game.Game) (map[game.Name]float64, error) {
	w, err := WinCountMap(games)
	if err != nil {
		return nil, err
	}
	return rates(w, GameCountMap(games))
}

// FactionWinRateMap maps every distinct faction to wins / games played.
func FactionWinRateMap(games []game.Game) (map[game.Faction]float64, error) {
	w, err := FactionWinCountMap(games)
	if err != nil {
		return nil, err
	}
	return rates(w, FactionGameCountMap(games))
}

func distinct[K cmp.Ordered](games []game.Game, keys func(game.Game) []K) []K {
	set := make(map[K]struct{})
	for _, g := range games {
		for _, k := range keys(g) {
			set[k] = struct{}{}
		}
	}
	out := make([]K, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func countContaining[K comparable](games []game.Game, keys func(game.Game) []K, target K) int {
	n := 0
	for _, g := range games {
		if slices.Contains(keys(g), target) {
			n++
		}
	}
	return n
}

func countWinner[K comparable](games []game.Game, winner func(game.Game) (K, error), target K) (int, error) {
	n := 0
	for i, g := range games {
		w, err := winner(g)
		if err != nil {
			return 0, gameErr(i, g, err)
		}
		if w == target {
			n++
		}
	}
	return n, nil
}

// played accumulates in a single pass; a key counts at most once per game.
func played[K comparable](games []game.Game, keys func(game.Game) []K) map[K]int {
	counts := make(map[K]int)
	for _, g := range games {
		seen := make(map[K]struct{})
		for _, k := range keys(g) {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			counts[k]++
		}
	}
	return counts
}

func wins[K comparable](games []game.Game, keys func(game.Game) []K, winner func(game.Game) (K, error)) (map[K]int, error) {
	counts := make(map[K]int)
	for i, g := range games {
		for _, k := range keys(g) {
			if _, ok := counts[k]; !ok {
				counts[k] = 0
			}
		}
		w, err := winner(g)
		if err != nil {
			return nil, gameErr(i, g, err)
		}
		counts[w]++
	}
	return counts, nil
}

func rates[K comparable](wins, played map[K]int) (map[K]float64, error) {
	for k := range wins {
		if _, ok := played[k]; !ok {
			return nil, fmt.Errorf("%w: %v has wins but no game count", ErrUndefinedRate, k)
		}
	}
	out := make(map[K]float64, len(played))
	for k, n := range played {
		w, ok := wins[k]
		if !ok {
			return nil, fmt.Errorf("%w: %v has no win count", ErrUndefinedRate, k)
		}
		if n == 0 {
			return nil, fmt.Errorf("%w: %v has no recorded games", ErrUndefinedRate, k)
		}
		out[k] = float64(w) / float64(n)
	}
	return out, nil
}

func gameErr(i int, g game.Game, err error) error {
	return fmt.Errorf("game %d (%s): %w", i, g.Date().Format(time.DateOnly), err)
}
