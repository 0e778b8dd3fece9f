package client

import (
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/palemoky/rubber-bridge/internal/logger"
	"github.com/palemoky/rubber-bridge/internal/network/protocol"
	"github.com/palemoky/rubber-bridge/internal/network/protocol/codec"
)

// readPump 从服务器读取消息
func (c *Client) readPump(conn *websocket.Conn) {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
		}
		c.onDisconnect(conn)
	}()

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				if c.OnError != nil {
					c.OnError(err)
				}
			}
			return
		}

		msg, err := codec.Decode(data)
		if err != nil {
			log.Printf("消息解析错误: %v", err)
			continue
		}
		c.track(msg)

		if c.OnMessage != nil {
			c.OnMessage(msg)
		}

		// 同时发送到 channel
		c.mu.RLock()
		receive := c.receive
		c.mu.RUnlock()
		select {
		case receive <- msg:
		default:
		}
	}
}

// track 记录连接、入座与延迟信息
func (c *Client) track(msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgConnected:
		if p, err := codec.ParsePayload[protocol.ConnectedPayload](msg); err == nil {
			c.mu.Lock()
			c.PlayerID, c.PlayerName = p.PlayerID, p.PlayerName
			c.mu.Unlock()
		}

	case protocol.MsgTableJoined:
		if p, err := codec.ParsePayload[protocol.TableJoinedPayload](msg); err == nil {
			c.mu.Lock()
			c.tableCode, c.seat = p.Code, p.Seat
			c.mu.Unlock()
			if c.reconnecting.CompareAndSwap(true, false) {
				c.reconnectCount = 0
				if c.OnReconnect != nil {
					c.OnReconnect()
				}
			}
		}

	case protocol.MsgPong:
		if p, err := codec.ParsePayload[protocol.PongPayload](msg); err == nil {
			c.latency.Store(time.Now().UnixMilli() - p.ClientTimestamp)
		}

	default:
	}
}

// writePump 向服务器写入消息
func (c *Client) writePump(conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
		}
		ticker.Stop()
		_ = conn.Close()
	}()

	c.mu.RLock()
	send, done := c.send, c.done
	c.mu.RUnlock()

	for {
		select {
		case data := <-send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-done:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// onDisconnect 读协程退出：主动关闭则结束，否则按需重连
func (c *Client) onDisconnect(conn *websocket.Conn) {
	c.mu.RLock()
	closed, retry := c.closed, c.autoSeat && c.tableCode != ""
	c.mu.RUnlock()

	if !closed && retry && !c.reconnecting.Load() {
		go c.tryReconnect()
		return
	}
	c.Close()
	if c.OnClose != nil {
		c.OnClose()
	}
}
