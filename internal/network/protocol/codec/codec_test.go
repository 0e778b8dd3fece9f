package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/palemoky/rubber-bridge/internal/network/protocol"
)

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		msgType protocol.MessageType
		payload any
	}{
		{"with payload", protocol.MsgJoinTable, protocol.JoinTablePayload{Code: "123456", Seat: "N", Name: "Ann"}},
		{"no payload", protocol.MsgReady, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := Encode(MustNewMessage(tt.msgType, tt.payload))
			require.NoError(t, err)

			msg, err := Decode(data)
			require.NoError(t, err)
			defer PutMessage(msg)
			assert.Equal(t, tt.msgType, msg.Type)
			if tt.payload == nil {
				assert.Empty(t, msg.Payload)
			}
		})
	}
}

func TestParsePayload(t *testing.T) {
	t.Parallel()

	data, err := Encode(MustNewMessage(protocol.MsgBid, protocol.BidPayload{Bid: "1NT"}))
	require.NoError(t, err)
	msg, err := Decode(data)
	require.NoError(t, err)

	p, err := ParsePayload[protocol.BidPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, "1NT", p.Bid)

	empty, err := ParsePayload[protocol.BidPayload](&protocol.Message{Type: protocol.MsgBid})
	require.NoError(t, err)
	assert.Empty(t, empty.Bid)

	_, err = ParsePayload[protocol.BidPayload](&protocol.Message{Type: protocol.MsgBid, Payload: []byte("{")})
	assert.Error(t, err)
}

func TestDecode_SkipsUnknownFields(t *testing.T) {
	t.Parallel()

	var b []byte
	b = protowire.AppendTag(b, 9, protowire.VarintType)
	b = protowire.AppendVarint(b, 42)
	b = protowire.AppendTag(b, fieldType, protowire.BytesType)
	b = protowire.AppendString(b, string(protocol.MsgPing))

	msg, err := Decode(b)
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgPing, msg.Type)
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	_, err := Decode(nil)
	assert.ErrorIs(t, err, ErrMissingType)

	_, err = Decode([]byte{0x0a, 0x05, 'p'}) // 长度越界
	assert.Error(t, err)

	_, err = Encode(&protocol.Message{})
	assert.ErrorIs(t, err, ErrMissingType)
}

func TestNewErrorMessage(t *testing.T) {
	t.Parallel()

	msg := NewErrorMessage(protocol.ErrCodeNotYourTurn)
	assert.Equal(t, protocol.MsgError, msg.Type)

	p, err := ParsePayload[protocol.ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, protocol.ErrCodeNotYourTurn, p.Code)
	assert.Equal(t, protocol.ErrorMessages[protocol.ErrCodeNotYourTurn], p.Message)
}
