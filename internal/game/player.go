package game

// Player is one participant's record in a single game.
// Fields are unexported so a Player cannot change after construction.
type Player struct {
	name     Name
	faction  Faction
	isWinner bool
}

func (p Player) Name() Name {
	return p.name
}

func (p Player) Faction() Faction {
	return p.faction
}

func (p Player) IsWinner() bool {
	return p.isWinner
}
