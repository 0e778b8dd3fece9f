// Package apperrors holds the typed failures shared by the engine and its hosts.
package apperrors

import (
	"errors"

	"github.com/palemoky/rubber-bridge/internal/network/protocol"
)

// GameError 游戏错误（引擎和牌桌共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrWrongPhase      = &GameError{Code: protocol.ErrCodeWrongPhase, Message: "wrong phase"}
	ErrNotYourTurn     = &GameError{Code: protocol.ErrCodeNotYourTurn, Message: "not your turn"}
	ErrIllegalBid      = &GameError{Code: protocol.ErrCodeIllegalBid, Message: "illegal bid"}
	ErrIllegalCardPlay = &GameError{Code: protocol.ErrCodeIllegalCardPlay, Message: "illegal card play"}
	ErrParse           = &GameError{Code: protocol.ErrCodeParse, Message: "parse error"}

	ErrTableNotFound = &GameError{Code: protocol.ErrCodeTableNotFound, Message: "table not found"}
	ErrTableFull     = &GameError{Code: protocol.ErrCodeTableFull, Message: "table is full"}
	ErrSeatTaken     = &GameError{Code: protocol.ErrCodeSeatTaken, Message: "seat is taken"}
	ErrNotAtTable    = &GameError{Code: protocol.ErrCodeNotAtTable, Message: "not seated at a table"}
)

// Code extracts the protocol code carried by err, or ErrCodeUnknown.
func Code(err error) int {
	var ge *GameError
	if errors.As(err, &ge) {
		return ge.Code
	}
	return protocol.ErrCodeUnknown
}
