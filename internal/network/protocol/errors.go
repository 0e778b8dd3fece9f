package protocol

// 错误码
const (
	ErrCodeUnknown    = 1000
	ErrCodeInvalidMsg = 1001
	ErrCodeRateLimit  = 1002 // 速率限制

	ErrCodeTableNotFound = 2001
	ErrCodeTableFull     = 2002
	ErrCodeNotAtTable    = 2003
	ErrCodeSeatTaken     = 2004

	ErrCodeWrongPhase      = 3001
	ErrCodeNotYourTurn     = 3002
	ErrCodeIllegalBid      = 3003
	ErrCodeIllegalCardPlay = 3004
	ErrCodeParse           = 3005
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:         "unknown error",
	ErrCodeInvalidMsg:      "invalid message",
	ErrCodeRateLimit:       "too many requests",
	ErrCodeTableNotFound:   "table not found",
	ErrCodeTableFull:       "table is full",
	ErrCodeNotAtTable:      "you are not seated at a table",
	ErrCodeSeatTaken:       "seat is taken",
	ErrCodeWrongPhase:      "action not allowed in the current phase",
	ErrCodeNotYourTurn:     "not your turn",
	ErrCodeIllegalBid:      "illegal bid",
	ErrCodeIllegalCardPlay: "illegal card play",
	ErrCodeParse:           "malformed bid or card",
}
