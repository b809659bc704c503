package game

import "errors"

var (
	// Roster errors
	ErrUnknownName    = errors.New("unknown player name")
	ErrUnknownFaction = errors.New("unknown faction")

	// Game errors
	ErrNoPlayers       = errors.New("game has no players")
	ErrNoWinner        = errors.New("no winner found")
	ErrMultipleWinners = errors.New("game has more than one winner")
	ErrDuplicateName   = errors.New("player name appears more than once in game")
)
