// Package ledger persists recorded games and rebuilds them for aggregation.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/rootstats/internal/game"
)

type store struct {
	db     *sql.DB
	roster *game.Roster
	mu     sync.RWMutex
}

// New creates a new Store. Stored games are validated against roster when read back.
func New(db *sql.DB, roster *game.Roster) Store {
	return &store{
		db:     db,
		roster: roster,
	}
}

// SaveGame stores a game under a fresh ID and returns that ID.
func (s *store) SaveGame(ctx context.Context, g game.Game) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	if err := s.insert(ctx, RecordOf(id, g)); err != nil {
		return "", err
	}
	log.Debug("Saved game", "id", id, "date", g.Date().Format(time.DateOnly), "players", g.Len())
	return id, nil
}

// Import validates and stores every record in one transaction. Records
// without an ID get a fresh one; records whose ID already exists are skipped.
func (s *store) Import(ctx context.Context, records []Record) (int, error) {
	for i, r := range records {
		if _, err := r.Game(s.roster); err != nil {
			return 0, fmt.Errorf("record %d: %w", i, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	imported := 0
	for _, r := range records {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		res, err := tx.ExecContext(ctx, "INSERT OR IGNORE INTO games (id, played_on, created_at) VALUES (?, ?, ?)", r.ID, r.Date, time.Now().UnixNano())
		if err != nil {
			return 0, err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			log.Debug("Skipping already imported game", "id", r.ID)
			continue
		}
		if err := insertPlayers(ctx, tx, r); err != nil {
			return 0, err
		}
		imported++
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	log.Info("Imported games", "imported", imported, "total", len(records))
	return imported, nil
}

func (s *store) insert(ctx context.Context, r Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "INSERT INTO games (id, played_on, created_at) VALUES (?, ?, ?)", r.ID, r.Date, time.Now().UnixNano()); err != nil {
		return err
	}
	if err := insertPlayers(ctx, tx, r); err != nil {
		return err
	}
	return tx.Commit()
}

func insertPlayers(ctx context.Context, tx *sql.Tx, r Record) error {
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO game_players (game_id, seat, name, faction, is_winner) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for seat, p := range r.Players {
		if _, err := stmt.ExecContext(ctx, r.ID, seat, p.Name, p.Faction, p.IsWinner); err != nil {
			return err
		}
	}
	return nil
}

// ListRecords returns all stored games ordered by date, then by insertion.
func (s *store) ListRecords(ctx context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.played_on, p.name, p.faction, p.is_winner
		FROM games g
		JOIN game_players p ON p.game_id = g.id
		ORDER BY g.played_on, g.created_at, g.id, p.seat
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var id, date string
		var p PlayerRecord
		if err := rows.Scan(&id, &date, &p.Name, &p.Faction, &p.IsWinner); err != nil {
			return nil, err
		}
		if n := len(records); n == 0 || records[n-1].ID != id {
			records = append(records, Record{ID: id, Date: date})
		}
		last := &records[len(records)-1]
		last.Players = append(last.Players, p)
	}
	return records, rows.Err()
}

// ListGames returns all stored games rebuilt as validated game values.
func (s *store) ListGames(ctx context.Context) ([]game.Game, error) {
	records, err := s.ListRecords(ctx)
	if err != nil {
		return nil, err
	}

	games := make([]game.Game, 0, len(records))
	for _, r := range records {
		g, err := r.Game(s.roster)
		if err != nil {
			return nil, fmt.Errorf("stored game %s: %w", r.ID, err)
		}
		games = append(games, g)
	}
	return games, nil
}

func (s *store) DeleteGame(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM game_players WHERE game_id = ?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM games WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return tx.Commit()
}

func (s *store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM games").Scan(&n)
	return n, err
}

// Clear removes all games. Used by tests and the seeder.
func (s *store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM game_players"); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM games"); err != nil {
		return err
	}
	log.Info("Cleared all games")
	return nil
}
