package stats_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/mauv0809/rootstats/internal/game"
	"github.com/mauv0809/rootstats/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seat struct {
	name    game.Name
	faction game.Faction
}

// newGame builds a game whose first seat is the winner.
func newGame(t *testing.T, day int, winner seat, losers ...seat) game.Game {
	t.Helper()
	w, err := game.NewPlayer(winner.name, winner.faction, true)
	require.NoError(t, err)
	players := []game.Player{w}
	for _, l := range losers {
		p, err := game.NewPlayer(l.name, l.faction, false)
		require.NoError(t, err)
		players = append(players, p)
	}
	g, err := game.NewGame(time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC), players...)
	require.NoError(t, err)
	return g
}

func sampleGames(t *testing.T) []game.Game {
	t.Helper()
	return []game.Game{
		newGame(t, 1, seat{game.Agrim, game.Cats}, seat{game.Munira, game.Birds}, seat{game.Tobi, game.Vagabond}),
		newGame(t, 2, seat{game.Munira, game.Birds}, seat{game.Agrim, game.Cats}),
		newGame(t, 3, seat{game.Tobi, game.Woodland}, seat{game.Alina, game.Cats}, seat{game.Agrim, game.Duchy}, seat{game.Maxi, game.Lizards}),
		newGame(t, 4, seat{game.Alina, game.Cats}, seat{game.Wissal, game.Riverfolk}),
		newGame(t, 5, seat{game.Agrim, game.Crows}, seat{game.Georgios, game.Birds}, seat{game.TobiasBl, game.Cats}),
	}
}

func TestTwoPlayerScenario(t *testing.T) {
	games := []game.Game{
		newGame(t, 1, seat{game.Agrim, game.Cats}, seat{game.Munira, game.Birds}),
		newGame(t, 2, seat{game.Munira, game.Birds}, seat{game.Agrim, game.Cats}),
	}

	assert.Equal(t, map[game.Name]int{game.Agrim: 2, game.Munira: 2}, stats.GameCountMap(games))

	winCounts, err := stats.WinCountMap(games)
	require.NoError(t, err)
	assert.Equal(t, map[game.Name]int{game.Agrim: 1, game.Munira: 1}, winCounts)

	winRates, err := stats.WinRateMap(games)
	require.NoError(t, err)
	assert.Equal(t, map[game.Name]float64{game.Agrim: 0.5, game.Munira: 0.5}, winRates)

	factionRates, err := stats.FactionWinRateMap(games)
	require.NoError(t, err)
	assert.Equal(t, map[game.Faction]float64{game.Cats: 0.5, game.Birds: 0.5}, factionRates)
}

func TestSinglePlayerScenario(t *testing.T) {
	games := []game.Game{newGame(t, 1, seat{game.Maxi, game.Duchy})}

	assert.Equal(t, map[game.Name]int{game.Maxi: 1}, stats.GameCountMap(games))

	rates, err := stats.WinRateMap(games)
	require.NoError(t, err)
	assert.Equal(t, map[game.Name]float64{game.Maxi: 1.0}, rates)
}

func TestDistinctFactions(t *testing.T) {
	games := []game.Game{
		newGame(t, 1, seat{game.Agrim, game.Cats}),
		newGame(t, 2, seat{game.Munira, game.Birds}),
		newGame(t, 3, seat{game.Tobi, game.Cats}),
	}

	factions := stats.DistinctFactions(games)
	assert.Len(t, factions, 2)
	assert.ElementsMatch(t, []game.Faction{game.Cats, game.Birds}, factions)
}

func TestDistinctNames(t *testing.T) {
	names := stats.DistinctNames(sampleGames(t))
	assert.ElementsMatch(t, []game.Name{
		game.Agrim, game.Munira, game.Tobi, game.Alina, game.Maxi, game.Wissal, game.Georgios, game.TobiasBl,
	}, names)
	assert.Empty(t, stats.DistinctNames(nil))
}

func TestSingleKeyCounts(t *testing.T) {
	games := sampleGames(t)

	assert.Equal(t, 4, stats.GamesPlayedCount(games, game.Agrim))
	assert.Equal(t, 0, stats.GamesPlayedCount(games, "Lena"))
	assert.Equal(t, 5, stats.GamesPlayedCountByFaction(games, game.Cats))

	w, err := stats.WinsCount(games, game.Agrim)
	require.NoError(t, err)
	assert.Equal(t, 2, w)

	w, err = stats.WinsCountByFaction(games, game.Cats)
	require.NoError(t, err)
	assert.Equal(t, 2, w)

	w, err = stats.WinsCountByFaction(games, game.Vagabond)
	require.NoError(t, err)
	assert.Equal(t, 0, w)
}

func TestCountMapsMatchDirectRecount(t *testing.T) {
	games := sampleGames(t)

	gameCounts := stats.GameCountMap(games)
	for name, n := range gameCounts {
		recount := 0
		for _, g := range games {
			for _, other := range g.Names() {
				if other == name {
					recount++
					break
				}
			}
		}
		assert.Equal(t, recount, n, "game count for %s", name)
	}

	factionCounts := stats.FactionGameCountMap(games)
	for faction, n := range factionCounts {
		assert.Equal(t, stats.GamesPlayedCountByFaction(games, faction), n, "game count for %s", faction)
	}
	assert.Equal(t, len(stats.DistinctFactions(games)), len(factionCounts))
}

func TestWinsNeverExceedGames(t *testing.T) {
	games := sampleGames(t)

	gameCounts := stats.GameCountMap(games)
	winCounts, err := stats.WinCountMap(games)
	require.NoError(t, err)
	rates, err := stats.WinRateMap(games)
	require.NoError(t, err)

	require.Len(t, winCounts, len(gameCounts))
	for name, played := range gameCounts {
		assert.LessOrEqual(t, winCounts[name], played, name)
		assert.Equal(t, float64(winCounts[name])/float64(played), rates[name], name)
		assert.GreaterOrEqual(t, rates[name], 0.0)
		assert.LessOrEqual(t, rates[name], 1.0)
	}

	factionGames := stats.FactionGameCountMap(games)
	factionWins, err := stats.FactionWinCountMap(games)
	require.NoError(t, err)
	factionRates, err := stats.FactionWinRateMap(games)
	require.NoError(t, err)
	for faction, played := range factionGames {
		assert.LessOrEqual(t, factionWins[faction], played, faction)
		assert.Equal(t, float64(factionWins[faction])/float64(played), factionRates[faction], faction)
	}
}

func TestLosersAppearWithZeroWins(t *testing.T) {
	winCounts, err := stats.WinCountMap(sampleGames(t))
	require.NoError(t, err)

	assert.Contains(t, winCounts, game.Georgios)
	assert.Equal(t, 0, winCounts[game.Georgios])
}

func TestOrderIndependence(t *testing.T) {
	games := sampleGames(t)
	want, err := stats.Summarize(games)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		shuffled := append([]game.Game(nil), games...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got, err := stats.Summarize(shuffled)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, stats.DistinctNames(games), stats.DistinctNames(shuffled))
	}
}

func TestMissingWinnerPropagates(t *testing.T) {
	games := append(sampleGames(t), game.Game{})

	_, err := stats.WinsCount(games, game.Agrim)
	assert.ErrorIs(t, err, game.ErrNoWinner)

	_, err = stats.WinsCountByFaction(games, game.Cats)
	assert.ErrorIs(t, err, game.ErrNoWinner)

	m, err := stats.WinCountMap(games)
	assert.ErrorIs(t, err, game.ErrNoWinner)
	assert.Nil(t, m)

	_, err = stats.FactionWinRateMap(games)
	assert.ErrorIs(t, err, game.ErrNoWinner)

	s, err := stats.Summarize(games)
	assert.ErrorIs(t, err, game.ErrNoWinner)
	assert.Nil(t, s)
}

func TestEmptyInput(t *testing.T) {
	s, err := stats.Summarize(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Games)
	assert.Empty(t, s.GameCounts)
	assert.Empty(t, s.WinRates)
	assert.Empty(t, s.FactionWinRates)
}

func TestSummarize(t *testing.T) {
	games := sampleGames(t)
	s, err := stats.Summarize(games)
	require.NoError(t, err)

	assert.Equal(t, 5, s.Games)
	assert.Equal(t, stats.GameCountMap(games), s.GameCounts)
	assert.Equal(t, stats.FactionGameCountMap(games), s.FactionGameCounts)
	assert.Equal(t, 0.5, s.WinRates[game.Agrim])
	assert.Equal(t, 0.4, s.FactionWinRates[game.Cats])
	assert.Equal(t, 1.0, s.FactionWinRates[game.Crows])
}
