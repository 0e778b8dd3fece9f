package handlers

import (
	"time"

	"github.com/palemoky/rubber-bridge/internal/network/protocol"
	"github.com/palemoky/rubber-bridge/internal/network/protocol/codec"
	"github.com/palemoky/rubber-bridge/internal/network/server/types"
)

// handlePing 处理心跳消息
func (h *Handler) handlePing(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.PingPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: payload.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
}

// handleCreateTable 处理创建牌桌
func (h *Handler) handleCreateTable(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.CreateTablePayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	if payload.Name != "" {
		client.SetName(payload.Name)
	}

	joined, err := h.server.GetTableManager().CreateTable(client, payload.Seat)
	if err != nil {
		h.reply(client, err)
		return
	}
	client.SendMessage(codec.MustNewMessage(protocol.MsgTableJoined, joined))
}

// handleJoinTable 处理入座
func (h *Handler) handleJoinTable(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.JoinTablePayload](msg)
	if err != nil || payload.Code == "" {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	if payload.Name != "" {
		client.SetName(payload.Name)
	}

	joined, err := h.server.GetTableManager().JoinTable(client, payload.Code, payload.Seat)
	if err != nil {
		h.reply(client, err)
		return
	}
	client.SendMessage(codec.MustNewMessage(protocol.MsgTableJoined, joined))
}

// handleGetTableList 返回有空位的牌桌
func (h *Handler) handleGetTableList(client types.ClientInterface) {
	client.SendMessage(codec.MustNewMessage(protocol.MsgTableList, protocol.TableListPayload{
		Tables: h.server.GetTableManager().TableList(),
	}))
}

// handleBid 处理叫牌
func (h *Handler) handleBid(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.BidPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	h.reply(client, h.server.GetTableManager().Bid(client, payload.Bid))
}

// handlePlayCard 处理出牌
func (h *Handler) handlePlayCard(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.PlayCardPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	h.reply(client, h.server.GetTableManager().PlayCard(client, payload.Card))
}
