package models

import "errors"

// Transition errors returned by the state-transition methods on RankedMatch
// and MatchRound. Services translate these at the HTTP edge.
var (
	ErrMatchAlreadyPaired = errors.New("match already has a second player")
	ErrMatchNotPlaying    = errors.New("match is not in playing state")
	ErrRoundCompleted     = errors.New("round is already completed")
	ErrInvalidSlot        = errors.New("invalid player slot")
)
