package ledger

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mauv0809/rootstats/internal/game"
)

var _ Store = (*MockStore)(nil)

// MockStore is an in-memory Store for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu      sync.Mutex
	roster  *game.Roster
	records []Record

	// Injected failure for every call
	Err error
}

// NewMock creates a new mock store that validates against the default roster.
func NewMock() *MockStore {
	return &MockStore{roster: game.DefaultRoster()}
}

func (m *MockStore) SaveGame(_ context.Context, g game.Game) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	id := uuid.NewString()
	m.records = append(m.records, RecordOf(id, g))
	return id, nil
}

func (m *MockStore) Import(_ context.Context, records []Record) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	for i, r := range records {
		if _, err := r.Game(m.roster); err != nil {
			return 0, fmt.Errorf("record %d: %w", i, err)
		}
	}
	imported := 0
	for _, r := range records {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if slices.ContainsFunc(m.records, func(existing Record) bool { return existing.ID == r.ID }) {
			continue
		}
		m.records = append(m.records, r)
		imported++
	}
	return imported, nil
}

func (m *MockStore) ListRecords(context.Context) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := slices.Clone(m.records)
	slices.SortStableFunc(out, func(a, b Record) int { return strings.Compare(a.Date, b.Date) })
	return out, nil
}

func (m *MockStore) ListGames(ctx context.Context) ([]game.Game, error) {
	records, err := m.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	games := make([]game.Game, 0, len(records))
	for _, r := range records {
		g, err := r.Game(m.roster)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, nil
}

func (m *MockStore) DeleteGame(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	i := slices.IndexFunc(m.records, func(r Record) bool { return r.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	m.records = slices.Delete(m.records, i, i+1)
	return nil
}

func (m *MockStore) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.records), nil
}

func (m *MockStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.records = nil
	return nil
}
