// Package server hosts bridge tables over WebSocket.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/palemoky/rubber-bridge/internal/config"
	"github.com/palemoky/rubber-bridge/internal/game"
	"github.com/palemoky/rubber-bridge/internal/network/protocol"
	"github.com/palemoky/rubber-bridge/internal/network/protocol/codec"
	"github.com/palemoky/rubber-bridge/internal/network/server/handlers"
	"github.com/palemoky/rubber-bridge/internal/network/server/storage"
	"github.com/palemoky/rubber-bridge/internal/network/server/table"
	"github.com/palemoky/rubber-bridge/internal/network/server/types"
)

// Server WebSocket 服务器
type Server struct {
	config      *config.Config
	redis       *redis.Client
	store       *storage.RedisStore
	leaderboard *storage.LeaderboardManager
	tables      *table.Manager
	handler     *handlers.Handler
	upgrader    websocket.Upgrader
	httpServer  *http.Server

	clients   map[string]*Client
	clientsMu sync.RWMutex

	// 安全组件
	rateLimiter    *RateLimiter
	originChecker  *OriginChecker
	messageLimiter *MessageRateLimiter

	// 连接控制
	semaphore chan struct{}

	done     chan struct{}
	stopOnce sync.Once
}

// Option 服务器选项
type Option func(*serverOptions)

type serverOptions struct {
	gameOpts []game.Option
}

// WithGameOptions passes options to every game the server's tables create.
func WithGameOptions(opts ...game.Option) Option {
	return func(o *serverOptions) { o.gameOpts = append(o.gameOpts, opts...) }
}

// NewServer 创建服务器实例，Redis 不可用时返回错误
func NewServer(cfg *config.Config, opts ...Option) (*Server, error) {
	var o serverOptions
	for _, opt := range opts {
		opt(&o)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis 连接失败: %w", err)
	}

	s := &Server{
		config:      cfg,
		redis:       rdb,
		store:       storage.NewRedisStore(rdb, cfg.Table.SnapshotTTLDuration()),
		leaderboard: storage.NewLeaderboardManager(rdb),
		clients:     make(map[string]*Client),
		rateLimiter: NewRateLimiter(
			cfg.Security.RateLimit.MaxPerSecond,
			cfg.Security.RateLimit.MaxPerMinute,
			cfg.Security.RateLimit.BanDurationTime(),
		),
		originChecker:  NewOriginChecker(cfg.Security.AllowedOrigins),
		messageLimiter: NewMessageRateLimiter(cfg.Security.MessageLimit.MaxPerSecond),
		semaphore:      make(chan struct{}, cfg.Server.MaxConnections),
		done:           make(chan struct{}),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.originChecker.Check,
	}
	// 牌局只在内存中，上次进程留下的快照无法恢复
	if n, err := s.store.ClearTables(ctx); err != nil {
		log.Printf("⚠️ 清理残留牌桌快照失败: %v", err)
	} else if n > 0 {
		log.Printf("🧹 清理 %d 个残留牌桌快照", n)
	}

	s.tables = table.NewManager(s.store, s.leaderboard, cfg.Table.IdleTimeoutDuration(), o.gameOpts...)
	s.handler = handlers.NewHandler(s, cfg.Table.LeaderboardTop)

	log.Printf("🔒 安全配置: 连接限制=%d/s, 消息限制=%d/s, 最大连接数=%d",
		cfg.Security.RateLimit.MaxPerSecond, cfg.Security.MessageLimit.MaxPerSecond, cfg.Server.MaxConnections)

	return s, nil
}

// Handler returns the HTTP routes: /ws and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start 启动服务器，阻塞直到 Shutdown
func (s *Server) Start() error {
	addr := s.config.Server.Addr()
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go s.monitorStats()

	log.Printf("🚀 服务器启动在 ws://%s/ws (CPU核心数: %d)", addr, runtime.NumCPU())
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 关闭 HTTP 服务、断开所有客户端并释放 Redis
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.stopOnce.Do(func() {
		close(s.done)
		if s.httpServer != nil {
			err = s.httpServer.Shutdown(ctx)
		}

		s.clientsMu.RLock()
		for _, c := range s.clients {
			c.Close()
		}
		s.clientsMu.RUnlock()

		s.tables.Close()
		s.rateLimiter.Stop()
		err = errors.Join(err, s.redis.Close())
		log.Println("👋 服务器已关闭")
	})
	return err
}

// handleWebSocket 处理 WebSocket 连接
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	clientIP := GetClientIP(r)

	// 连接数限制检查
	select {
	case s.semaphore <- struct{}{}:
	default:
		log.Printf("🚫 达到最大连接数限制 (%d), IP: %s", cap(s.semaphore), clientIP)
		http.Error(w, "Server Full", http.StatusServiceUnavailable)
		return
	}

	if !s.rateLimiter.Allow(clientIP) {
		<-s.semaphore
		log.Printf("🚫 IP %s 请求过于频繁", clientIP)
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		return
	}

	// 来源验证由 upgrader.CheckOrigin 完成
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		<-s.semaphore
		log.Printf("WebSocket 升级失败: %v", err)
		return
	}

	client := NewClient(s, conn)
	client.IP = clientIP
	s.RegisterClient(client)

	client.SendMessage(codec.MustNewMessage(protocol.MsgConnected, protocol.ConnectedPayload{
		PlayerID:   client.ID,
		PlayerName: client.GetName(),
	}))
	log.Printf("✅ 玩家 %s (%s) 已连接", client.GetName(), client.ID)

	go client.WritePump()
	go func() {
		defer func() { <-s.semaphore }()
		client.ReadPump()
	}()
}

// handleHealth 健康检查接口
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.store != nil {
		if err := s.store.Ping(r.Context()); err != nil {
			http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// RegisterClient 注册客户端
func (s *Server) RegisterClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[client.ID] = client
}

// UnregisterClient 注销客户端
func (s *Server) UnregisterClient(id string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	if c, ok := s.clients[id]; ok {
		delete(s.clients, id)
		log.Printf("❌ 玩家 %s (%s) 已断开", c.GetName(), id)
	}
}

// --- types.ServerContext ---

func (s *Server) GetStore() types.StoreInterface               { return s.store }
func (s *Server) GetLeaderboard() types.LeaderboardInterface   { return s.leaderboard }
func (s *Server) GetTableManager() types.TableManagerInterface { return s.tables }

// GetOnlineCount 获取在线人数
func (s *Server) GetOnlineCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// monitorStats 定期打印服务器状态
func (s *Server) monitorStats() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			log.Printf("📊 [监控] 在线: %d | 牌桌: %d | Goroutines: %d | 活跃连接: %d/%d | 内存: %.2f MB",
				s.GetOnlineCount(),
				s.tables.Count(),
				runtime.NumGoroutine(),
				len(s.semaphore),
				cap(s.semaphore),
				float64(m.Alloc)/1024/1024)
		case <-s.done:
			return
		}
	}
}
