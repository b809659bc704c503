package game_test

import (
	"testing"
	"time"

	"github.com/mauv0809/rootstats/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

func mustPlayer(t *testing.T, name game.Name, faction game.Faction, winner bool) game.Player {
	t.Helper()
	p, err := game.NewPlayer(name, faction, winner)
	require.NoError(t, err)
	return p
}

func TestNewGame_Validation(t *testing.T) {
	agrim := mustPlayer(t, game.Agrim, game.Cats, true)
	munira := mustPlayer(t, game.Munira, game.Birds, false)
	muniraWins := mustPlayer(t, game.Munira, game.Birds, true)
	agrimLoses := mustPlayer(t, game.Agrim, game.Vagabond, false)

	t.Run("accepts a single winner", func(t *testing.T) {
		g, err := game.NewGame(day, agrim, munira)
		require.NoError(t, err)
		assert.Equal(t, 2, g.Len())
		assert.Equal(t, day, g.Date())
	})

	t.Run("rejects no players", func(t *testing.T) {
		_, err := game.NewGame(day)
		assert.ErrorIs(t, err, game.ErrNoPlayers)
	})

	t.Run("rejects no winner", func(t *testing.T) {
		_, err := game.NewGame(day, munira, agrimLoses)
		assert.ErrorIs(t, err, game.ErrNoWinner)
	})

	t.Run("rejects multiple winners", func(t *testing.T) {
		_, err := game.NewGame(day, agrim, muniraWins)
		assert.ErrorIs(t, err, game.ErrMultipleWinners)
	})

	t.Run("rejects repeated names", func(t *testing.T) {
		_, err := game.NewGame(day, agrim, agrimLoses)
		assert.ErrorIs(t, err, game.ErrDuplicateName)
	})
}

func TestGame_DerivedViews(t *testing.T) {
	g, err := game.NewGame(day,
		mustPlayer(t, game.Tobi, game.Duchy, false),
		mustPlayer(t, game.Alina, game.Lizards, true),
		mustPlayer(t, game.Maxi, game.Crows, false),
	)
	require.NoError(t, err)

	assert.Equal(t, []game.Name{game.Tobi, game.Alina, game.Maxi}, g.Names())
	assert.Equal(t, []game.Faction{game.Duchy, game.Lizards, game.Crows}, g.Factions())

	winner, err := g.Winner()
	require.NoError(t, err)
	assert.Equal(t, game.Alina, winner.Name())
	assert.True(t, winner.IsWinner())

	name, err := g.WinnerName()
	require.NoError(t, err)
	assert.Equal(t, game.Alina, name)

	faction, err := g.WinnerFaction()
	require.NoError(t, err)
	assert.Equal(t, game.Lizards, faction)

	require.Len(t, g.Losers(), 2)
	assert.Equal(t, []game.Name{game.Tobi, game.Maxi}, g.LoserNames())
	assert.Equal(t, []game.Faction{game.Duchy, game.Crows}, g.LoserFactions())
}

func TestGame_MissingWinner(t *testing.T) {
	var g game.Game

	_, err := g.Winner()
	assert.ErrorIs(t, err, game.ErrNoWinner)

	name, err := g.WinnerName()
	assert.ErrorIs(t, err, game.ErrNoWinner)
	assert.Empty(t, name)

	_, err = g.WinnerFaction()
	assert.ErrorIs(t, err, game.ErrNoWinner)
}

func TestGame_IsImmutable(t *testing.T) {
	players := []game.Player{
		mustPlayer(t, game.Wissal, game.Riverfolk, true),
		mustPlayer(t, game.Georgios, game.Woodland, false),
	}
	g, err := game.NewGame(day, players...)
	require.NoError(t, err)

	players[0] = mustPlayer(t, game.Maxi, game.Cats, true)
	out := g.Players()
	out[1] = mustPlayer(t, game.Tobi, game.Birds, false)

	assert.Equal(t, []game.Name{game.Wissal, game.Georgios}, g.Names())
}
