package chart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mauv0809/rootstats/internal/stats"
)

var (
	ErrUnknownKind = errors.New("unknown chart kind")
	ErrNoSummary   = errors.New("no summary to chart")
)

// Kind names one of the standard statistics charts.
type Kind string

const (
	NameGames      Kind = "name-games"
	NameWins       Kind = "name-wins"
	NameWinRate    Kind = "name-winrate"
	FactionGames   Kind = "faction-games"
	FactionWins    Kind = "faction-wins"
	FactionWinRate Kind = "faction-winrate"
)

// Kinds lists the standard charts in dashboard order: players first, then factions.
func Kinds() []Kind {
	return []Kind{NameGames, NameWins, NameWinRate, FactionGames, FactionWins, FactionWinRate}
}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

const (
	playerAxis  = "Player Name"
	factionAxis = "Faction"
	gamesAxis   = "# Games"
	winsAxis    = "# Wins"
	rateAxis    = "Win Rate"
)

// Build returns the chart of the given kind for a summary.
func Build(kind Kind, s *stats.Summary) (Chart, error) {
	if s == nil {
		return Chart{}, ErrNoSummary
	}
	switch kind {
	case NameGames:
		return FromCounts(s.GameCounts, WithTitle("Games played per player"), WithXLabel(playerAxis), WithYLabel(gamesAxis)), nil
	case NameWins:
		return FromCounts(s.WinCounts, WithTitle("Wins per player"), WithXLabel(playerAxis), WithYLabel(winsAxis)), nil
	case NameWinRate:
		return FromRates(s.WinRates, WithTitle("Win rate per player"), WithXLabel(playerAxis), WithYLabel(rateAxis)), nil
	case FactionGames:
		return FromCounts(s.FactionGameCounts, WithTitle("Games played per faction"), WithXLabel(factionAxis), WithYLabel(gamesAxis)), nil
	case FactionWins:
		return FromCounts(s.FactionWinCounts, WithTitle("Wins per faction"), WithXLabel(factionAxis), WithYLabel(winsAxis)), nil
	case FactionWinRate:
		return FromRates(s.FactionWinRates, WithTitle("Win rate per faction"), WithXLabel(factionAxis), WithYLabel(rateAxis)), nil
	default:
		return Chart{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Dashboard returns all six standard charts.
func Dashboard(s *stats.Summary) ([]Chart, error) {
	charts := make([]Chart, 0, len(Kinds()))
	for _, k := range Kinds() {
		c, err := Build(k, s)
		if err != nil {
			return nil, err
		}
		charts = append(charts, c)
	}
	return charts, nil
}
