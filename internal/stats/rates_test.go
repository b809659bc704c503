package stats

import (
	"testing"

	"github.com/mauv0809/rootstats/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRates(t *testing.T) {
	tests := []struct {
		name    string
		wins    map[game.Name]int
		played  map[game.Name]int
		want    map[game.Name]float64
		wantErr bool
	}{
		{
			name:   "divides wins by games",
			wins:   map[game.Name]int{game.Agrim: 1, game.Tobi: 0},
			played: map[game.Name]int{game.Agrim: 4, game.Tobi: 3},
			want:   map[game.Name]float64{game.Agrim: 0.25, game.Tobi: 0},
		},
		{
			name:    "zero games is undefined",
			wins:    map[game.Name]int{game.Agrim: 0},
			played:  map[game.Name]int{game.Agrim: 0},
			wantErr: true,
		},
		{
			name:    "missing win count",
			wins:    map[game.Name]int{},
			played:  map[game.Name]int{game.Agrim: 2},
			wantErr: true,
		},
		{
			name:    "wins without a game count",
			wins:    map[game.Name]int{game.Agrim: 1, game.Maxi: 1},
			played:  map[game.Name]int{game.Agrim: 2},
			wantErr: true,
		},
		{
			name:   "empty",
			wins:   map[game.Name]int{},
			played: map[game.Name]int{},
			want:   map[game.Name]float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rates(tt.wins, tt.played)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUndefinedRate)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
