package client

import (
	"time"

	"github.com/palemoky/rubber-bridge/internal/network/protocol"
	"github.com/palemoky/rubber-bridge/internal/network/protocol/codec"
)

// --- 便捷方法 ---

func (c *Client) do(t protocol.MessageType, payload any) error {
	msg, err := codec.NewMessage(t, payload)
	if err != nil {
		return err
	}
	return c.SendMessage(msg)
}

// CreateTable 创建牌桌并入座，seat 为空时自动分配
func (c *Client) CreateTable(seat, name string) error {
	return c.do(protocol.MsgCreateTable, protocol.CreateTablePayload{Seat: seat, Name: name})
}

// JoinTable 入座
func (c *Client) JoinTable(code, seat, name string) error {
	return c.do(protocol.MsgJoinTable, protocol.JoinTablePayload{Code: code, Seat: seat, Name: name})
}

// LeaveTable 离座
func (c *Client) LeaveTable() error {
	c.mu.Lock()
	c.tableCode, c.seat = "", ""
	c.mu.Unlock()
	return c.do(protocol.MsgLeaveTable, nil)
}

// Ready 准备
func (c *Client) Ready() error {
	return c.do(protocol.MsgReady, nil)
}

// CancelReady 取消准备
func (c *Client) CancelReady() error {
	return c.do(protocol.MsgCancelReady, nil)
}

// Bid 叫牌：PASS, X, XX, 1NT ...
func (c *Client) Bid(call string) error {
	return c.do(protocol.MsgBid, protocol.BidPayload{Bid: call})
}

// PlayCard 出牌
func (c *Client) PlayCard(card string) error {
	return c.do(protocol.MsgPlayCard, protocol.PlayCardPayload{Card: card})
}

// NextDeal 下一副
func (c *Client) NextDeal() error {
	return c.do(protocol.MsgNextDeal, nil)
}

// GetLeaderboard 获取排行榜，period 为空时取总榜
func (c *Client) GetLeaderboard(period string, limit int) error {
	return c.do(protocol.MsgGetLeaderboard, protocol.GetLeaderboardPayload{Limit: limit, Period: period})
}

// GetTableList 获取可入座的牌桌
func (c *Client) GetTableList() error {
	return c.do(protocol.MsgGetTableList, nil)
}

// Ping 发送心跳
func (c *Client) Ping() error {
	return c.do(protocol.MsgPing, protocol.PingPayload{Timestamp: time.Now().UnixMilli()})
}
