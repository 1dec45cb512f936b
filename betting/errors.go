package betting

import "errors"

var (
	ErrUnknownGame   = errors.New("game-not-found")
	ErrUnknownRound  = errors.New("round-not-found")
	ErrRoundClosed   = errors.New("betting-closed")
	ErrInvalidTarget = errors.New("invalid-target")
)
