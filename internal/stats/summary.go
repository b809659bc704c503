package stats

import "github.com/mauv0809/rootstats/internal/game"

// Summary bundles every aggregation over one list of games.
type Summary struct {
	Games             int                      `json:"games"`
	GameCounts        map[game.Name]int        `json:"game_counts"`
	WinCounts         map[game.Name]int        `json:"win_counts"`
	WinRates          map[game.Name]float64    `json:"win_rates"`
	FactionGameCounts map[game.Faction]int     `json:"faction_game_counts"`
	FactionWinCounts  map[game.Faction]int     `json:"faction_win_counts"`
	FactionWinRates   map[game.Faction]float64 `json:"faction_win_rates"`
}

// Summarize computes all name and faction aggregations. It fails as a whole
// if any of them fails.
func Summarize(games []game.Game) (*Summary, error) {
	winCounts, err := WinCountMap(games)
	if err != nil {
		return nil, err
	}
	factionWinCounts, err := FactionWinCountMap(games)
	if err != nil {
		return nil, err
	}

	gameCounts := GameCountMap(games)
	factionGameCounts := FactionGameCountMap(games)

	winRates, err := rates(winCounts, gameCounts)
	if err != nil {
		return nil, err
	}
	factionWinRates, err := rates(factionWinCounts, factionGameCounts)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Games:             len(games),
		GameCounts:        gameCounts,
		WinCounts:         winCounts,
		WinRates:          winRates,
		FactionGameCounts: factionGameCounts,
		FactionWinCounts:  factionWinCounts,
		FactionWinRates:   factionWinRates,
	}, nil
}
