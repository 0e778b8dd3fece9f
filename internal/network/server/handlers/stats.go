package handlers

import (
	"context"
	"log"
	"time"

	"github.com/palemoky/rubber-bridge/internal/network/protocol"
	"github.com/palemoky/rubber-bridge/internal/network/protocol/codec"
	"github.com/palemoky/rubber-bridge/internal/network/server/types"
)

// handleGetLeaderboard 处理获取排行榜
func (h *Handler) handleGetLeaderboard(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.GetLeaderboardPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	limit := payload.Limit
	if limit <= 0 {
		limit = h.leaderboardTop
	}
	limit = min(limit, maxLeaderboardLimit)

	period := payload.Period
	if period == "" {
		period = protocol.PeriodAll
	}

	lb := h.server.GetLeaderboard()
	if lb == nil {
		client.SendMessage(codec.MustNewMessage(protocol.MsgLeaderboard, protocol.LeaderboardPayload{Period: period}))
		return
	}

	fetch := lb.GetLeaderboard
	switch period {
	case protocol.PeriodAll:
	case protocol.PeriodDaily:
		fetch = lb.GetDailyLeaderboard
	case protocol.PeriodWeekly:
		fetch = lb.GetWeeklyLeaderboard
	default:
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeInvalidMsg, "unknown leaderboard period"))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	entries, err := fetch(ctx, limit)
	if err != nil {
		log.Printf("获取排行榜失败: %v", err)
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "leaderboard unavailable"))
		return
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgLeaderboard, protocol.LeaderboardPayload{
		Period:  period,
		Entries: entries,
	}))
}
