package game

import (
	"fmt"
	"slices"
	"strings"
)

// Name identifies a human participant.
type Name string

// Faction identifies a playable side.
type Faction string

const (
	Agrim    Name = "Agrim"
	Munira   Name = "Munira"
	Tobi     Name = "Tobi"
	Alina    Name = "Alina"
	TobiasBl Name = "Tobias Bl."
	Wissal   Name = "Wissal"
	Maxi     Name = "Maxi"
	Georgios Name = "Georgios"
)

const (
	Cats      Faction = "Cats"
	Birds     Faction = "Birds"
	Vagabond  Faction = "Vagabond"
	Woodland  Faction = "Woodland"
	Crows     Faction = "Crows"
	Duchy     Faction = "Duchy"
	Riverfolk Faction = "Riverfolk"
	Lizards   Faction = "Lizards"
)

// Roster is the closed set of names and factions a Player may be built from.
// A Roster is never mutated; With returns an extended copy.
type Roster struct {
	names    map[Name]struct{}
	factions map[Faction]struct{}
}

// NewRoster builds a roster from the given names and factions. Blank entries are ignored.
func NewRoster(names []Name, factions []Faction) *Roster {
	r := &Roster{
		names:    make(map[Name]struct{}, len(names)),
		factions: make(map[Faction]struct{}, len(factions)),
	}
	for _, n := range names {
		if n = Name(strings.TrimSpace(string(n))); n != "" {
			r.names[n] = struct{}{}
		}
	}
	for _, f := range factions {
		if f = Faction(strings.TrimSpace(string(f))); f != "" {
			r.factions[f] = struct{}{}
		}
	}
	return r
}

// DefaultRoster returns the regular group and the base-game plus expansion factions.
func DefaultRoster() *Roster {
	return NewRoster(
		[]Name{Agrim, Munira, Tobi, Alina, TobiasBl, Wissal, Maxi, Georgios},
		[]Faction{Cats, Birds, Vagabond, Woodland, Crows, Duchy, Riverfolk, Lizards},
	)
}

// With returns a new roster containing r plus the extra names and factions.
func (r *Roster) With(names []Name, factions []Faction) *Roster {
	return NewRoster(append(r.Names(), names...), append(r.Factions(), factions...))
}

// Names returns the roster's names in sorted order.
func (r *Roster) Names() []Name {
	out := make([]Name, 0, len(r.names))
	for n := range r.names {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Factions returns the roster's factions in sorted order.
func (r *Roster) Factions() []Faction {
	out := make([]Faction, 0, len(r.factions))
	for f := range r.factions {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// ParseName validates s against the roster. Surrounding whitespace is ignored, case is not.
func (r *Roster) ParseName(s string) (Name, error) {
	n := Name(strings.TrimSpace(s))
	if _, ok := r.names[n]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownName, s)
	}
	return n, nil
}

// ParseFaction validates s against the roster.
func (r *Roster) ParseFaction(s string) (Faction, error) {
	f := Faction(strings.TrimSpace(s))
	if _, ok := r.factions[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFaction, s)
	}
	return f, nil
}

// NewPlayer validates name and faction against the roster and builds a Player.
func (r *Roster) NewPlayer(name, faction string, isWinner bool) (Player, error) {
	n, err := r.ParseName(name)
	if err != nil {
		return Player{}, err
	}
	f, err := r.ParseFaction(faction)
	if err != nil {
		return Player{}, err
	}
	return Player{name: n, faction: f, isWinner: isWinner}, nil
}

var defaultRoster = DefaultRoster()

// NewPlayer builds a Player checked against the default roster.
func NewPlayer(name Name, faction Faction, isWinner bool) (Player, error) {
	return defaultRoster.NewPlayer(string(name), string(faction), isWinner)
}
