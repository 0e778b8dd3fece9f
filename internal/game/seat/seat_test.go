package seat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirection_Rotation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, East, North.Next())
	assert.Equal(t, North, West.Next())
	assert.Equal(t, South, North.Partner())
	assert.Equal(t, West, East.Partner())
	assert.Equal(t, West, North.Offset(-1))
	assert.Equal(t, North, South.Offset(6))

	for _, d := range All {
		assert.Equal(t, d, d.Offset(4))
		assert.Equal(t, d, d.Partner().Partner())
		assert.True(t, d.SameSide(d.Partner()))
		assert.False(t, d.SameSide(d.Next()))
	}
}

func TestDirection_Partnership(t *testing.T) {
	t.Parallel()

	assert.Equal(t, NorthSouth, North.Partnership())
	assert.Equal(t, NorthSouth, South.Partnership())
	assert.Equal(t, EastWest, East.Partnership())
	assert.Equal(t, EastWest, West.Partnership())
	assert.Equal(t, [2]Direction{East, West}, EastWest.Seats())
	assert.Equal(t, NorthSouth, EastWest.Opponents())
}

func TestParseDirection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Direction
	}{
		{"N", North},
		{"e", East},
		{" south ", South},
		{"West", West},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.want.Abbreviation(), got.Abbreviation())
	}

	_, err := ParseDirection("X")
	assert.Error(t, err)
	_, err = ParseDirection("")
	assert.Error(t, err)
}
