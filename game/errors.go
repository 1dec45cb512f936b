package game

import "errors"

var (
	ErrMatchNotFound      = errors.New("match-not-found")
	ErrMatchFull          = errors.New("match-full")
	ErrMatchStarted       = errors.New("match-already-started")
	ErrUnknownParticipant = errors.New("unknown-participant")
	ErrChatClosed         = errors.New("chat-closed")
)
