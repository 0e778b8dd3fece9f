package table

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/palemoky/rubber-bridge/internal/apperrors"
	"github.com/palemoky/rubber-bridge/internal/game"
	"github.com/palemoky/rubber-bridge/internal/network/protocol"
	"github.com/palemoky/rubber-bridge/internal/network/server/types"
)

const (
	// 牌桌号长度
	codeLength = 6
	// 牌桌号字符集
	codeChars = "0123456789"

	storeTimeout = 3 * time.Second
)

// Manager 牌桌管理器
type Manager struct {
	store       types.StoreInterface       // 可为 nil
	leaderboard types.LeaderboardInterface // 可为 nil
	idleTimeout time.Duration
	gameOpts    []game.Option

	tables map[string]*Table
	mu     sync.RWMutex
	done   chan struct{}
	once   sync.Once
}

// NewManager creates a manager and starts its idle-table cleanup loop.
// gameOpts are passed to every game the manager's tables create.
func NewManager(store types.StoreInterface, lb types.LeaderboardInterface, idleTimeout time.Duration, gameOpts ...game.Option) *Manager {
	m := &Manager{
		store:       store,
		leaderboard: lb,
		idleTimeout: idleTimeout,
		gameOpts:    gameOpts,
		tables:      make(map[string]*Table),
		done:        make(chan struct{}),
	}

	// 启动牌桌清理协程
	go m.cleanupLoop()

	return m
}

// Close stops the cleanup loop.
func (m *Manager) Close() {
	m.once.Do(func() { close(m.done) })
}

// CreateTable opens a table and seats client at it.
func (m *Manager) CreateTable(client types.ClientInterface, seat string) (*protocol.TableJoinedPayload, error) {
	m.LeaveTable(client)

	m.mu.Lock()
	t := New(m.generateCode(), m.gameOpts...)
	m.tables[t.Code] = t
	m.mu.Unlock()

	joined, err := t.Join(client, seat)
	if err != nil {
		m.mu.Lock()
		delete(m.tables, t.Code)
		m.mu.Unlock()
		return nil, err
	}

	log.Printf("🏠 牌桌 %s 已创建，玩家 %s", t.Code, client.GetName())
	m.save(t)
	return joined, nil
}

// JoinTable seats client at the table with the given code, leaving any
// table it sits at first.
func (m *Manager) JoinTable(client types.ClientInterface, code, seat string) (*protocol.TableJoinedPayload, error) {
	t := m.GetTable(code)
	if t == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrTableNotFound, code)
	}
	if client.GetTable() != code {
		m.LeaveTable(client)
	}

	joined, err := t.Join(client, seat)
	if err != nil {
		return nil, err
	}
	m.save(t)
	return joined, nil
}

// LeaveTable removes client from its table and dissolves the table once
// nobody is left.
func (m *Manager) LeaveTable(client types.ClientInterface) {
	code := client.GetTable()
	if code == "" {
		return
	}
	t := m.GetTable(code)
	if t == nil {
		client.SetTable("")
		return
	}

	if !t.Leave(client) {
		m.save(t)
		return
	}

	m.mu.Lock()
	delete(m.tables, code)
	m.mu.Unlock()
	m.remove(code)
	log.Printf("🏠 牌桌 %s 已解散", code)
}

// SetReady toggles the client's ready flag at its table.
func (m *Manager) SetReady(client types.ClientInterface, ready bool) error {
	t, err := m.tableOf(client)
	if err != nil {
		return err
	}
	if err := t.SetReady(client, ready); err != nil {
		return err
	}
	m.save(t)
	return nil
}

// Bid makes a call for the client at its table.
func (m *Manager) Bid(client types.ClientInterface, call string) error {
	t, err := m.tableOf(client)
	if err != nil {
		return err
	}
	if err := t.Bid(client, call); err != nil {
		return err
	}
	m.save(t)
	return nil
}

// PlayCard plays a card for the client at its table and records the
// rubber on the leaderboard when it ends.
func (m *Manager) PlayCard(client types.ClientInterface, card string) error {
	t, err := m.tableOf(client)
	if err != nil {
		return err
	}
	results, err := t.PlayCard(client, card)
	if err != nil {
		return err
	}
	if results != nil && m.leaderboard != nil {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := m.leaderboard.RecordRubberResult(ctx, results); err != nil {
			log.Printf("⚠️  记录牌桌 %s 盘局结果失败: %v", t.Code, err)
		}
	}
	m.save(t)
	return nil
}

// NextDeal advances the client's table to the next deal or rubber.
func (m *Manager) NextDeal(client types.ClientInterface) error {
	t, err := m.tableOf(client)
	if err != nil {
		return err
	}
	if err := t.NextDeal(client); err != nil {
		return err
	}
	m.save(t)
	return nil
}

// GetTable returns the table with code, or nil.
func (m *Manager) GetTable(code string) *Table {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tables[code]
}

// TableList lists tables with a free seat, ordered by code.
func (m *Manager) TableList() []protocol.TableListItem {
	m.mu.RLock()
	tables := make([]*Table, 0, len(m.tables))
	for _, t := range m.tables {
		tables = append(tables, t)
	}
	m.mu.RUnlock()

	items := make([]protocol.TableListItem, 0, len(tables))
	for _, t := range tables {
		if n := t.PlayerCount(); n < 4 {
			items = append(items, protocol.TableListItem{Code: t.Code, Players: n, Phase: t.Phase()})
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Code < items[j].Code })
	return items
}

// Count returns the number of open tables.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tables)
}

func (m *Manager) tableOf(client types.ClientInterface) (*Table, error) {
	code := client.GetTable()
	if code == "" {
		return nil, apperrors.ErrNotAtTable
	}
	t := m.GetTable(code)
	if t == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrTableNotFound, code)
	}
	return t, nil
}

func (m *Manager) save(t *Table) {
	if m.store == nil {
		return
	}
	snap := t.Snapshot()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := m.store.SaveTable(ctx, snap); err != nil {
			log.Printf("⚠️  保存牌桌 %s 失败: %v", snap.Code, err)
		}
	}()
}

func (m *Manager) remove(code string) {
	if m.store == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		_ = m.store.DeleteTable(ctx, code)
	}()
}

// generateCode 生成牌桌号，调用方持有写锁
func (m *Manager) generateCode() string {
	for {
		code := make([]byte, codeLength)
		for i := range code {
			code[i] = codeChars[rand.IntN(len(codeChars))]
		}
		if _, exists := m.tables[string(code)]; !exists {
			return string(code)
		}
	}
}

// cleanupLoop 定期清理空闲牌桌
func (m *Manager) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanup(time.Now())
		case <-m.done:
			return
		}
	}
}

// cleanup drops tables idle for longer than the idle timeout.
func (m *Manager) cleanup(now time.Time) int {
	if m.idleTimeout <= 0 {
		return 0
	}

	m.mu.Lock()
	var stale []string
	for code, t := range m.tables {
		if now.Sub(t.IdleSince()) > m.idleTimeout {
			stale = append(stale, code)
			delete(m.tables, code)
		}
	}
	m.mu.Unlock()

	for _, code := range stale {
		m.remove(code)
		log.Printf("🧹 清理空闲牌桌 %s", code)
	}
	return len(stale)
}
