package game

import "errors"

var (
	ErrGameExists      = errors.New("a game already exists in this group")
	ErrNoActiveGame    = errors.New("no active game in this group")
	ErrAlreadyJoined   = errors.New("player already joined")
	ErrRosterFull      = errors.New("player limit reached")
	ErrTooFewPlayers   = errors.New("not enough players to start")
	ErrUnauthorized    = errors.New("only the game creator or an admin may do that")
	ErrNotWaiting      = errors.New("game is not waiting to start")
	ErrNotPlaying      = errors.New("game is not in progress")
	ErrSongUnavailable = errors.New("no song available")
)
