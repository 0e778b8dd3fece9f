// Package client is the WebSocket client for the bridge table server.
package client

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/palemoky/rubber-bridge/internal/network/protocol"
	"github.com/palemoky/rubber-bridge/internal/network/protocol/codec"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// 心跳检测间隔
	heartbeatInterval = 5 * time.Second
	// 最大重连次数
	maxReconnectAttempts = 5
)

// 首次重连间隔，之后指数退避
var reconnectInterval = 2 * time.Second

var (
	ErrClosed     = errors.New("connection closed")
	ErrBufferFull = errors.New("send buffer full")
	ErrTimeout    = errors.New("receive timeout")
)

// Client WebSocket 客户端
type Client struct {
	ServerURL string
	conn      *websocket.Conn
	send      chan []byte
	receive   chan *protocol.Message
	done      chan struct{}

	PlayerID   string
	PlayerName string

	// 网络延迟（毫秒）
	latency atomic.Int64

	// 回调
	OnMessage      func(*protocol.Message) // 消息回调
	OnError        func(error)             // 错误回调
	OnClose        func()                  // 关闭回调
	OnReconnecting func(attempt, max int)  // 重连中回调
	OnReconnect    func()                  // 重连成功回调

	// 断线后重新入座所需的信息
	tableCode string
	seat      string
	autoSeat  bool

	mu             sync.RWMutex
	closed         bool
	reconnecting   atomic.Bool
	reconnectCount int
}

// NewClient 创建客户端
func NewClient(serverURL string) *Client {
	return &Client{
		ServerURL: serverURL,
		send:      make(chan []byte, 256),
		receive:   make(chan *protocol.Message, 256),
		done:      make(chan struct{}),
	}
}

// EnableReconnect makes the client re-dial after an unexpected disconnect
// and take back the seat it held.
func (c *Client) EnableReconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoSeat = true
}

// Connect 连接服务器
func (c *Client) Connect() error {
	conn, err := dial(c.ServerURL)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	// 启动读写协程
	go c.readPump(conn)
	go c.writePump(conn)
	return nil
}

func dial(url string) (*websocket.Conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, resp, err := dialer.Dial(url, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	return conn, err
}

// SendMessage 发送消息
func (c *Client) SendMessage(msg *protocol.Message) error {
	data, err := codec.Encode(msg)
	if err != nil {
		return err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}

	select {
	case c.send <- data:
		return nil
	default:
		return ErrBufferFull
	}
}

// Receive 接收消息 (阻塞)
func (c *Client) Receive() (*protocol.Message, error) {
	c.mu.RLock()
	receive, done := c.receive, c.done
	c.mu.RUnlock()

	select {
	case msg := <-receive:
		return msg, nil
	case <-done:
		return nil, ErrClosed
	}
}

// ReceiveWithTimeout 带超时接收消息
func (c *Client) ReceiveWithTimeout(timeout time.Duration) (*protocol.Message, error) {
	c.mu.RLock()
	receive, done := c.receive, c.done
	c.mu.RUnlock()

	select {
	case msg := <-receive:
		return msg, nil
	case <-time.After(timeout):
		return nil, ErrTimeout
	case <-done:
		return nil, ErrClosed
	}
}

// Close 关闭连接
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.done)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	}
}

// IsConnected 是否已连接
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.closed && c.conn != nil
}

// Latency 获取当前延迟（毫秒）
func (c *Client) Latency() int64 {
	return c.latency.Load()
}

// IsReconnecting 是否正在重连
func (c *Client) IsReconnecting() bool {
	return c.reconnecting.Load()
}

// TableCode returns the code of the table the client last joined.
func (c *Client) TableCode() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tableCode
}
