package ledger_test

import (
	"bytes"
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/mauv0809/rootstats/internal/database"
	"github.com/mauv0809/rootstats/internal/game"
	"github.com/mauv0809/rootstats/internal/ledger"
	"github.com/mauv0809/rootstats/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (ledger.Store, *sql.DB) {
	t.Helper()

	db, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return ledger.New(db, game.DefaultRoster()), db
}

func mustGame(t *testing.T, day int, seats ...ledger.PlayerRecord) game.Game {
	t.Helper()
	r := ledger.Record{Date: time.Date(2025, 2, day, 0, 0, 0, 0, time.UTC).Format(time.DateOnly), Players: seats}
	g, err := r.Game(game.DefaultRoster())
	require.NoError(t, err)
	return g
}

func TestSaveAndListGames(t *testing.T) {
	store, _ := setupTestDB(t)
	ctx := context.Background()

	later := mustGame(t, 9,
		ledger.PlayerRecord{Name: "Tobi", Faction: "Woodland", IsWinner: true},
		ledger.PlayerRecord{Name: "Agrim", Faction: "Cats"},
	)
	earlier := mustGame(t, 2,
		ledger.PlayerRecord{Name: "Munira", Faction: "Birds"},
		ledger.PlayerRecord{Name: "Agrim", Faction: "Cats", IsWinner: true},
		ledger.PlayerRecord{Name: "Tobias Bl.", Faction: "Vagabond"},
	)

	id1, err := store.SaveGame(ctx, later)
	require.NoError(t, err)
	id2, err := store.SaveGame(ctx, earlier)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	records, err := store.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, id2, records[0].ID, "games are ordered by date")
	assert.Equal(t, "2025-02-02", records[0].Date)
	assert.Equal(t, []string{"Munira", "Agrim", "Tobias Bl."}, []string{
		records[0].Players[0].Name, records[0].Players[1].Name, records[0].Players[2].Name,
	}, "seat order is preserved")

	games, err := store.ListGames(ctx)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, earlier.Names(), games[0].Names())
	winner, err := games[0].WinnerName()
	require.NoError(t, err)
	assert.Equal(t, game.Agrim, winner)

	s, err := stats.Summarize(games)
	require.NoError(t, err)
	assert.Equal(t, 0.5, s.WinRates[game.Agrim])
}

func TestDeleteGame(t *testing.T) {
	store, db := setupTestDB(t)
	ctx := context.Background()

	id, err := store.SaveGame(ctx, mustGame(t, 1, ledger.PlayerRecord{Name: "Maxi", Faction: "Duchy", IsWinner: true}))
	require.NoError(t, err)

	require.NoError(t, store.DeleteGame(ctx, id))

	var seats int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM game_players").Scan(&seats))
	assert.Zero(t, seats)

	err = store.DeleteGame(ctx, id)
	assert.ErrorIs(t, err, ledger.ErrGameNotFound)
}

func TestListGames_RejectsUnknownStoredNames(t *testing.T) {
	store, db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO games (id, played_on, created_at) VALUES ('g1', '2025-01-01', 1)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO game_players (game_id, seat, name, faction, is_winner) VALUES ('g1', 0, 'Lena', 'Cats', 1)`)
	require.NoError(t, err)

	_, err = store.ListGames(ctx)
	assert.ErrorIs(t, err, game.ErrUnknownName)
}

func TestImport(t *testing.T) {
	store, _ := setupTestDB(t)
	ctx := context.Background()

	records := []ledger.Record{
		{ID: "a", Date: "2025-01-01", Players: []ledger.PlayerRecord{{Name: "Alina", Faction: "Lizards", IsWinner: true}}},
		{Date: "2025-01-02", Players: []ledger.PlayerRecord{{Name: "Wissal", Faction: "Riverfolk", IsWinner: true}}},
	}

	n, err := store.Import(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = store.Import(ctx, records[:1])
	require.NoError(t, err)
	assert.Zero(t, n, "known IDs are skipped")

	_, err = store.Import(ctx, []ledger.Record{{Date: "2025-01-03", Players: []ledger.PlayerRecord{{Name: "Alina", Faction: "Lizards"}}}})
	assert.ErrorIs(t, err, game.ErrNoWinner)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestClear(t *testing.T) {
	store, _ := setupTestDB(t)
	ctx := context.Background()

	_, err := store.SaveGame(ctx, mustGame(t, 1, ledger.PlayerRecord{Name: "Georgios", Faction: "Crows", IsWinner: true}))
	require.NoError(t, err)
	require.NoError(t, store.Clear(ctx))

	games, err := store.ListGames(ctx)
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestArchiveRoundTrip(t *testing.T) {
	records := []ledger.Record{
		{ID: "a", Date: "2025-01-01", Players: []ledger.PlayerRecord{
			{Name: "Alina", Faction: "Lizards", IsWinner: true},
			{Name: "Tobi", Faction: "Cats"},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, ledger.EncodeArchive(&buf, records))

	a, err := ledger.DecodeArchive(&buf)
	require.NoError(t, err)
	assert.Equal(t, records, a.Games)
	assert.False(t, a.ExportedAt.IsZero())
}

func TestDecodeArchive_Garbage(t *testing.T) {
	_, err := ledger.DecodeArchive(bytes.NewReader([]byte("not msgpack")))
	assert.Error(t, err)
}
