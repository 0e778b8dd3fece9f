package client

import (
	"log"
	"time"

	"github.com/palemoky/rubber-bridge/internal/logger"
	"github.com/palemoky/rubber-bridge/internal/network/protocol"
)

// StartHeartbeat 启动心跳检测
func (c *Client) StartHeartbeat() {
	c.mu.RLock()
	done := c.done
	c.mu.RUnlock()

	go func() {
		ticker := time.NewTicker(heartbeatInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if c.IsConnected() {
					_ = c.Ping()
				}
			case <-done:
				return
			}
		}
	}()
}

// tryReconnect 以指数退避重连，成功后回到原牌桌的原座位。
// 服务器在座位空出后保留牌局，因此重新入座即可继续。
func (c *Client) tryReconnect() {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			c.reconnecting.Store(false)
		}
	}()

	if !c.reconnecting.CompareAndSwap(false, true) {
		return
	}

	backoff := reconnectInterval
	for c.reconnectCount < maxReconnectAttempts {
		c.reconnectCount++
		if c.OnReconnecting != nil {
			c.OnReconnecting(c.reconnectCount, maxReconnectAttempts)
		}

		time.Sleep(backoff)
		backoff = min(backoff*2, 30*time.Second)

		conn, err := dial(c.ServerURL)
		if err != nil {
			log.Printf("重连失败: %v", err)
			continue
		}

		c.mu.Lock()
		c.conn = conn
		c.send = make(chan []byte, 256)
		c.receive = make(chan *protocol.Message, 256)
		code, seat, name := c.tableCode, c.seat, c.PlayerName
		c.mu.Unlock()

		go c.readPump(conn)
		go c.writePump(conn)

		// 入座成功由 table_joined 通知
		if err := c.JoinTable(code, seat, name); err != nil {
			_ = conn.Close()
			continue
		}
		return
	}

	log.Printf("❌ 重连失败，已达最大尝试次数")
	c.reconnecting.Store(false)
	c.Close()
	if c.OnClose != nil {
		c.OnClose()
	}
}
