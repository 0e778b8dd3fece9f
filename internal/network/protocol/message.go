// Package protocol defines the messages exchanged between the table server
// and its clients.
package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	MsgPing MessageType = "ping" // 心跳 ping

	// 牌桌操作
	MsgCreateTable  MessageType = "create_table"   // 创建牌桌
	MsgJoinTable    MessageType = "join_table"     // 入座
	MsgLeaveTable   MessageType = "leave_table"    // 离座
	MsgReady        MessageType = "ready"          // 准备
	MsgCancelReady  MessageType = "cancel_ready"   // 取消准备
	MsgGetTableList MessageType = "get_table_list" // 牌桌列表

	// 牌局操作
	MsgBid      MessageType = "bid"       // 叫牌
	MsgPlayCard MessageType = "play_card" // 出牌
	MsgNextDeal MessageType = "next_deal" // 下一副

	MsgGetLeaderboard MessageType = "get_leaderboard" // 排行榜
)

// 服务端 → 客户端 消息类型
const (
	MsgConnected MessageType = "connected"
	MsgPong      MessageType = "pong"

	MsgTableJoined  MessageType = "table_joined"
	MsgPlayerJoined MessageType = "player_joined"
	MsgPlayerLeft   MessageType = "player_left"
	MsgPlayerReady  MessageType = "player_ready"
	MsgTableList    MessageType = "table_list"

	MsgTableState MessageType = "table_state" // 按座位裁剪的牌桌快照
	MsgDealResult MessageType = "deal_result" // 一副牌计分结果
	MsgRubberOver MessageType = "rubber_over" // 盘局结束

	MsgLeaderboard MessageType = "leaderboard"

	MsgError MessageType = "error"
)

// --- 客户端请求 Payloads ---

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// CreateTablePayload 创建牌桌并入座
type CreateTablePayload struct {
	Seat string `json:"seat,omitempty"` // N/E/S/W，空则自动分配
	Name string `json:"name,omitempty"`
}

// JoinTablePayload 入座请求
type JoinTablePayload struct {
	Code string `json:"code"`
	Seat string `json:"seat,omitempty"`
	Name string `json:"name,omitempty"`
}

// BidPayload 叫牌请求
type BidPayload struct {
	Bid string `json:"bid"` // PASS, X, XX, 1NT ...
}

// PlayCardPayload 出牌请求
type PlayCardPayload struct {
	Card string `json:"card"` // SA, HT ...
}

// GetLeaderboardPayload 排行榜请求
type GetLeaderboardPayload struct {
	Limit  int    `json:"limit"`
	Period string `json:"period,omitempty"` // all / daily / weekly，空为总榜
}

// 排行榜周期
const (
	PeriodAll    = "all"
	PeriodDaily  = "daily"
	PeriodWeekly = "weekly"
)

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功
type ConnectedPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"`
	ServerTimestamp int64 `json:"server_timestamp"`
}

// SeatInfo 座位信息
type SeatInfo struct {
	Seat     string `json:"seat"`
	PlayerID string `json:"player_id,omitempty"`
	Name     string `json:"name,omitempty"`
	Ready    bool   `json:"ready"`
	Online   bool   `json:"online"`
}

// TableJoinedPayload 入座成功
type TableJoinedPayload struct {
	Code    string     `json:"code"`
	Seat    string     `json:"seat"`
	Players []SeatInfo `json:"players"`
}

// PlayerJoinedPayload 其他玩家入座
type PlayerJoinedPayload struct {
	Player SeatInfo `json:"player"`
}

// PlayerLeftPayload 玩家离座
type PlayerLeftPayload struct {
	Seat       string `json:"seat"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// PlayerReadyPayload 准备状态变化
type PlayerReadyPayload struct {
	Seat     string `json:"seat"`
	PlayerID string `json:"player_id"`
	Ready    bool   `json:"ready"`
}

// TableListItem 牌桌列表项
type TableListItem struct {
	Code    string `json:"code"`
	Players int    `json:"players"`
	Phase   string `json:"phase"`
}

// TableListPayload 牌桌列表
type TableListPayload struct {
	Tables []TableListItem `json:"tables"`
}

// CallInfo 一次叫牌
type CallInfo struct {
	Seat string `json:"seat"`
	Bid  string `json:"bid"`
}

// PlayedCardInfo 一张已出的牌
type PlayedCardInfo struct {
	Seat string `json:"seat"`
	Card string `json:"card"`
}

// TrickInfo 已完成的一墩
type TrickInfo struct {
	Cards  []PlayedCardInfo `json:"cards"`
	Winner string           `json:"winner"`
}

// ContractInfo 定约
type ContractInfo struct {
	Level    int    `json:"level"`
	Strain   string `json:"strain"`
	Doubled  int    `json:"doubled"`
	Declarer string `json:"declarer"`
	Text     string `json:"text"` // 4HX N
}

// TeamScoreInfo 一方计分
type TeamScoreInfo struct {
	Name       string `json:"name"`
	GamePoints []int  `json:"game_points"`
	Rubber     int    `json:"rubber"`
	Slam       int    `json:"slam"`
	Overtricks int    `json:"overtricks"`
	Penalty    int    `json:"penalty"`
	Total      int    `json:"total"`
	Vulnerable bool   `json:"vulnerable"`
}

// ScoresInfo 双方计分
type ScoresInfo struct {
	NS TeamScoreInfo `json:"ns"`
	EW TeamScoreInfo `json:"ew"`
}

// TableStatePayload 某个座位看到的牌桌状态
type TableStatePayload struct {
	Code       string     `json:"code"`
	Seat       string     `json:"seat"`
	Phase      string     `json:"phase"`
	DealNumber int        `json:"deal_number"`
	Dealer     string     `json:"dealer"`
	Turn       string     `json:"turn"`
	Controller string     `json:"controller"` // 明手出牌时为庄家
	Players    []SeatInfo `json:"players"`
	HandSizes  []int      `json:"hand_sizes"`

	Hand      []string `json:"hand"`
	Dummy     string   `json:"dummy,omitempty"`
	DummyHand []string `json:"dummy_hand,omitempty"`

	Calls      []CallInfo       `json:"calls"`
	Contract   *ContractInfo    `json:"contract,omitempty"`
	Trick      []PlayedCardInfo `json:"trick"`
	LastTrick  *TrickInfo       `json:"last_trick,omitempty"`
	TricksNS   int              `json:"tricks_ns"`
	TricksEW   int              `json:"tricks_ew"`
	LegalBids  []string         `json:"legal_bids,omitempty"`
	LegalCards []string         `json:"legal_cards,omitempty"`

	Scores ScoresInfo `json:"scores"`
}

// DealResultPayload 一副牌的结果
type DealResultPayload struct {
	Number     int          `json:"number"`
	Contract   ContractInfo `json:"contract"`
	TricksNS   int          `json:"tricks_ns"`
	TricksEW   int          `json:"tricks_ew"`
	Made       bool         `json:"made"`
	Vulnerable bool         `json:"vulnerable"`
	Points     int          `json:"points"`
	RubberOver bool         `json:"rubber_over"`
	Scores     ScoresInfo   `json:"scores"`
}

// RubberOverPayload 盘局结束
type RubberOverPayload struct {
	Winner string     `json:"winner"` // NS / EW，平局为空
	Scores ScoresInfo `json:"scores"`
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Score      int     `json:"score"`
	Rubbers    int     `json:"rubbers"`
	Wins       int     `json:"wins"`
	WinRate    float64 `json:"win_rate"`
}

// LeaderboardPayload 排行榜
type LeaderboardPayload struct {
	Period  string             `json:"period"`
	Entries []LeaderboardEntry `json:"entries"`
}

// ErrorPayload 错误响应
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
