// Package types holds the interfaces shared by the server packages so they
// can depend on each other without import cycles.
package types

import (
	"context"

	"github.com/palemoky/rubber-bridge/internal/network/protocol"
)

// ClientInterface 客户端接口
type ClientInterface interface {
	GetID() string
	GetName() string
	SetName(name string)
	GetTable() string
	SetTable(code string)
	SendMessage(msg *protocol.Message)
	Close()
}

// TableSnapshot 牌桌快照（写入 Redis）
type TableSnapshot struct {
	Code       string   `json:"code"`
	Phase      string   `json:"phase"`
	DealNumber int      `json:"deal_number"`
	Dealer     string   `json:"dealer"`
	Players    []string `json:"players"` // 按座位 N/E/S/W，空位为空串
	Contract   string   `json:"contract,omitempty"`
	ScoreNS    int      `json:"score_ns"`
	ScoreEW    int      `json:"score_ew"`
	CreatedAt  int64    `json:"created_at"`
	UpdatedAt  int64    `json:"updated_at"`
}

// RubberPlayer 一盘结束时某个座位上的玩家
type RubberPlayer struct {
	PlayerID   string
	PlayerName string
	Won        bool
	Points     int // 本方总分减对方总分
}

// StoreInterface 牌桌快照存储
type StoreInterface interface {
	SaveTable(ctx context.Context, snap *TableSnapshot) error
	DeleteTable(ctx context.Context, code string) error
}

// LeaderboardInterface 排行榜接口
type LeaderboardInterface interface {
	RecordRubberResult(ctx context.Context, players []RubberPlayer) error
	GetLeaderboard(ctx context.Context, limit int) ([]protocol.LeaderboardEntry, error)
	GetDailyLeaderboard(ctx context.Context, limit int) ([]protocol.LeaderboardEntry, error)
	GetWeeklyLeaderboard(ctx context.Context, limit int) ([]protocol.LeaderboardEntry, error)
}

// ServerContext 服务器上下文接口 - 避免循环依赖
type ServerContext interface {
	GetStore() StoreInterface
	GetLeaderboard() LeaderboardInterface
	GetTableManager() TableManagerInterface
	GetOnlineCount() int
}

// TableManagerInterface 牌桌管理器接口
type TableManagerInterface interface {
	CreateTable(client ClientInterface, seat string) (*protocol.TableJoinedPayload, error)
	JoinTable(client ClientInterface, code, seat string) (*protocol.TableJoinedPayload, error)
	LeaveTable(client ClientInterface)
	SetReady(client ClientInterface, ready bool) error
	Bid(client ClientInterface, call string) error
	PlayCard(client ClientInterface, card string) error
	NextDeal(client ClientInterface) error
	TableList() []protocol.TableListItem
}
