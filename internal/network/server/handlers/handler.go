// Package handlers dispatches client messages to the table manager.
package handlers

import (
	"log"

	"github.com/palemoky/rubber-bridge/internal/apperrors"
	"github.com/palemoky/rubber-bridge/internal/network/protocol"
	"github.com/palemoky/rubber-bridge/internal/network/protocol/codec"
	"github.com/palemoky/rubber-bridge/internal/network/server/types"
)

// 排行榜最多返回条数
const maxLeaderboardLimit = 100

// Handler 消息处理器
type Handler struct {
	server         types.ServerContext
	leaderboardTop int
}

// NewHandler 创建处理器，leaderboardTop 为排行榜默认条数
func NewHandler(s types.ServerContext, leaderboardTop int) *Handler {
	return &Handler{server: s, leaderboardTop: leaderboardTop}
}

// Handle 处理消息
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgPing:
		h.handlePing(client, msg)

	// 牌桌操作
	case protocol.MsgCreateTable:
		h.handleCreateTable(client, msg)
	case protocol.MsgJoinTable:
		h.handleJoinTable(client, msg)
	case protocol.MsgLeaveTable:
		h.server.GetTableManager().LeaveTable(client)
	case protocol.MsgReady:
		h.reply(client, h.server.GetTableManager().SetReady(client, true))
	case protocol.MsgCancelReady:
		h.reply(client, h.server.GetTableManager().SetReady(client, false))
	case protocol.MsgGetTableList:
		h.handleGetTableList(client)

	// 牌局操作
	case protocol.MsgBid:
		h.handleBid(client, msg)
	case protocol.MsgPlayCard:
		h.handlePlayCard(client, msg)
	case protocol.MsgNextDeal:
		h.reply(client, h.server.GetTableManager().NextDeal(client))

	// 排行榜
	case protocol.MsgGetLeaderboard:
		h.handleGetLeaderboard(client, msg)

	default:
		log.Printf("⚠️  未知消息类型: '%s' (来自玩家: %s, ID: %s)", msg.Type, client.GetName(), client.GetID())
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
	}
}

// reply 在 err 非空时向客户端发送错误
func (h *Handler) reply(client types.ClientInterface, err error) {
	if err == nil {
		return
	}
	client.SendMessage(codec.NewErrorMessageWithText(apperrors.Code(err), err.Error()))
}
