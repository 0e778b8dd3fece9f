//go:build !production

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/rubber-bridge/internal/network/protocol"
	"github.com/palemoky/rubber-bridge/internal/network/server/types"
)

// MockLeaderboard 排行榜 mock
type MockLeaderboard struct {
	mock.Mock
}

func (m *MockLeaderboard) RecordRubberResult(ctx context.Context, players []types.RubberPlayer) error {
	args := m.Called(ctx, players)
	return args.Error(0)
}

func (m *MockLeaderboard) GetLeaderboard(ctx context.Context, limit int) ([]protocol.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]protocol.LeaderboardEntry), args.Error(1)
}

func (m *MockLeaderboard) GetDailyLeaderboard(ctx context.Context, limit int) ([]protocol.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]protocol.LeaderboardEntry), args.Error(1)
}

func (m *MockLeaderboard) GetWeeklyLeaderboard(ctx context.Context, limit int) ([]protocol.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]protocol.LeaderboardEntry), args.Error(1)
}

// MockStore 牌桌快照存储 mock
type MockStore struct {
	mock.Mock
}

func (m *MockStore) SaveTable(ctx context.Context, snap *types.TableSnapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}

func (m *MockStore) DeleteTable(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}
