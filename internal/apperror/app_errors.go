package apperror

import "errors"

var (
	ErrDeckExhausted    = errors.New("the shoe is empty")
	ErrDuplicateAlias   = errors.New("alias is already taken")
	ErrAlreadyJoined    = errors.New("connection is already seated")
	ErrUnknownCaller    = errors.New("caller is not seated at the table")
	ErrOutOfTurn        = errors.New("it's not your turn")
	ErrTableFull        = errors.New("table is full")
	ErrRoundNotActive   = errors.New("round is not active")
	ErrRoundNotComplete = errors.New("round is not complete")
)
