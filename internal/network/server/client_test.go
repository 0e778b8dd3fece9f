package server

import (
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/rubber-bridge/internal/network/protocol"
	"github.com/palemoky/rubber-bridge/internal/network/protocol/codec"
)

func TestNewClient(t *testing.T) {
	t.Parallel()

	server := &Server{}
	var conn *websocket.Conn // 真实连接在 e2e 测试中覆盖

	client := NewClient(server, conn)

	assert.NotEmpty(t, client.ID)
	assert.NotEmpty(t, client.GetName())
	assert.Equal(t, server, client.server)
	assert.NotNil(t, client.send)
}

func TestClient_SetGetTable(t *testing.T) {
	t.Parallel()

	client := &Client{}
	for _, code := range []string{"123456", "", "654321"} {
		client.SetTable(code)
		assert.Equal(t, code, client.GetTable())
	}

	client.SetName("Ann")
	assert.Equal(t, "Ann", client.GetName())
}

func TestClient_SendMessage(t *testing.T) {
	t.Parallel()

	client := &Client{send: make(chan []byte, 1)}
	client.SendMessage(codec.MustNewMessage(protocol.MsgPong, protocol.PongPayload{ServerTimestamp: 7}))

	data := <-client.send
	msg, err := codec.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgPong, msg.Type)

	// 编码失败的消息被丢弃
	client.SendMessage(&protocol.Message{})
	assert.Empty(t, client.send)
}

func TestClient_CloseIsIdempotent(t *testing.T) {
	t.Parallel()

	client := &Client{send: make(chan []byte, 1)}

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			client.Close()
		}()
	}
	wg.Wait()

	// 关闭后发送不会 panic
	client.SendMessage(codec.MustNewMessage(protocol.MsgPong, nil))
	_, ok := <-client.send
	assert.False(t, ok)
}
