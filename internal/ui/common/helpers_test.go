package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short", "Ann", 8, "Ann"},
		{"exact", "Cathrine", 8, "Cathrine"},
		{"long", "Bartholomew", 8, "Barthol…"},
		{"unicode", "北方玩家一号", 4, "北方玩…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, TruncateName(tt.input, tt.maxLen))
		})
	}
}

func TestSeatName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "North", SeatName("N"))
	assert.Equal(t, "West", SeatName("W"))
	assert.Equal(t, "?", SeatName("?"))
}
