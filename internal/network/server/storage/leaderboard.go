package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/rubber-bridge/internal/network/protocol"
	"github.com/palemoky/rubber-bridge/internal/network/server/types"
)

const (
	// Redis key
	playerStatsKey    = "player:stats:"
	leaderboardKey    = "leaderboard:score"
	dailyLeaderboard  = "leaderboard:daily:"
	weeklyLeaderboard = "leaderboard:weekly:"
)

// PlayerStats 玩家统计数据
type PlayerStats struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`

	Rubbers int `json:"rubbers"` // 总盘数
	Wins    int `json:"wins"`    // 胜盘
	Losses  int `json:"losses"`  // 负盘（平局不计）

	// 积分：历次盘局本方与对方总分之差的累计
	Score int `json:"score"`

	// 连胜/连败
	CurrentStreak int `json:"current_streak"` // 正数为连胜，负数为连败
	MaxWinStreak  int `json:"max_win_streak"`

	LastPlayedAt int64 `json:"last_played_at"`
	CreatedAt    int64 `json:"created_at"`
}

// LeaderboardManager 排行榜管理器
type LeaderboardManager struct {
	redis *redis.Client
	now   func() time.Time
}

// NewLeaderboardManager 创建排行榜管理器
func NewLeaderboardManager(client *redis.Client) *LeaderboardManager {
	return &LeaderboardManager{redis: client, now: time.Now}
}

// GetPlayerStats 获取玩家统计，不存在时返回 nil, nil
func (lm *LeaderboardManager) GetPlayerStats(ctx context.Context, playerID string) (*PlayerStats, error) {
	data, err := lm.redis.Get(ctx, playerStatsKey+playerID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var stats PlayerStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// SavePlayerStats 保存玩家统计
func (lm *LeaderboardManager) SavePlayerStats(ctx context.Context, stats *PlayerStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return lm.redis.Set(ctx, playerStatsKey+stats.PlayerID, data, 0).Err()
}

func (lm *LeaderboardManager) getOrCreateStats(ctx context.Context, playerID, playerName string) (*PlayerStats, error) {
	stats, err := lm.GetPlayerStats(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = &PlayerStats{
			PlayerID:   playerID,
			PlayerName: playerName,
			CreatedAt:  lm.now().Unix(),
		}
	}
	return stats, nil
}

// updateStreak 更新胜负和连胜/连败
func updateStreak(stats *PlayerStats, won, decided bool) {
	switch {
	case won:
		stats.Wins++
		stats.CurrentStreak = max(1, stats.CurrentStreak+1)
	case decided:
		stats.Losses++
		stats.CurrentStreak = min(-1, stats.CurrentStreak-1)
	default:
		stats.CurrentStreak = 0
	}
	stats.MaxWinStreak = max(stats.MaxWinStreak, stats.CurrentStreak)
}

// RecordRubberResult 记录一盘结束时每位玩家的结果
func (lm *LeaderboardManager) RecordRubberResult(ctx context.Context, players []types.RubberPlayer) error {
	hasWinner := decided(players)
	for _, p := range players {
		if err := lm.recordPlayer(ctx, p, hasWinner); err != nil {
			return fmt.Errorf("record %s: %w", p.PlayerID, err)
		}
	}
	return nil
}

// decided reports whether some side won, rather than a tie.
func decided(players []types.RubberPlayer) bool {
	for _, p := range players {
		if p.Won {
			return true
		}
	}
	return false
}

func (lm *LeaderboardManager) recordPlayer(ctx context.Context, p types.RubberPlayer, hasWinner bool) error {
	stats, err := lm.getOrCreateStats(ctx, p.PlayerID, p.PlayerName)
	if err != nil {
		return err
	}

	stats.PlayerName = p.PlayerName
	stats.Rubbers++
	stats.Score += p.Points
	stats.LastPlayedAt = lm.now().Unix()
	updateStreak(stats, p.Won, hasWinner)

	if err := lm.SavePlayerStats(ctx, stats); err != nil {
		return err
	}
	return lm.UpdateLeaderboard(ctx, stats)
}

func (lm *LeaderboardManager) dailyKey() string {
	return dailyLeaderboard + lm.now().Format("2006-01-02")
}

func (lm *LeaderboardManager) weeklyKey() string {
	year, week := lm.now().ISOWeek()
	return fmt.Sprintf("%s%d-W%02d", weeklyLeaderboard, year, week)
}

// UpdateLeaderboard 更新总榜、日榜和周榜
func (lm *LeaderboardManager) UpdateLeaderboard(ctx context.Context, stats *PlayerStats) error {
	z := redis.Z{Score: float64(stats.Score), Member: stats.PlayerID}

	pipe := lm.redis.TxPipeline()
	pipe.ZAdd(ctx, leaderboardKey, z)
	pipe.ZAdd(ctx, lm.dailyKey(), z)
	pipe.Expire(ctx, lm.dailyKey(), 48*time.Hour)
	pipe.ZAdd(ctx, lm.weeklyKey(), z)
	pipe.Expire(ctx, lm.weeklyKey(), 8*24*time.Hour)
	_, err := pipe.Exec(ctx)
	return err
}

// GetLeaderboard 获取总榜前 limit 名
func (lm *LeaderboardManager) GetLeaderboard(ctx context.Context, limit int) ([]protocol.LeaderboardEntry, error) {
	return lm.leaderboard(ctx, leaderboardKey, limit)
}

// GetDailyLeaderboard 获取今日榜单
func (lm *LeaderboardManager) GetDailyLeaderboard(ctx context.Context, limit int) ([]protocol.LeaderboardEntry, error) {
	return lm.leaderboard(ctx, lm.dailyKey(), limit)
}

// GetWeeklyLeaderboard 获取本周榜单
func (lm *LeaderboardManager) GetWeeklyLeaderboard(ctx context.Context, limit int) ([]protocol.LeaderboardEntry, error) {
	return lm.leaderboard(ctx, lm.weeklyKey(), limit)
}

func (lm *LeaderboardManager) leaderboard(ctx context.Context, key string, limit int) ([]protocol.LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, nil
	}

	// 从高到低
	results, err := lm.redis.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]protocol.LeaderboardEntry, 0, len(results))
	for i, result := range results {
		playerID, _ := result.Member.(string)
		stats, err := lm.GetPlayerStats(ctx, playerID)
		if err != nil || stats == nil {
			continue
		}

		winRate := 0.0
		if stats.Rubbers > 0 {
			winRate = float64(stats.Wins) / float64(stats.Rubbers) * 100
		}

		entries = append(entries, protocol.LeaderboardEntry{
			Rank:       i + 1,
			PlayerID:   playerID,
			PlayerName: stats.PlayerName,
			Score:      int(result.Score),
			Rubbers:    stats.Rubbers,
			Wins:       stats.Wins,
			WinRate:    winRate,
		})
	}
	return entries, nil
}

// GetPlayerRank 获取玩家排名，未上榜返回 -1
func (lm *LeaderboardManager) GetPlayerRank(ctx context.Context, playerID string) (int64, error) {
	rank, err := lm.redis.ZRevRank(ctx, leaderboardKey, playerID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return -1, nil
		}
		return -1, err
	}
	return rank + 1, nil // Redis 排名从 0 开始
}
