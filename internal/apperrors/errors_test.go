package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/rubber-bridge/internal/network/protocol"
)

func TestCode(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("%w: %q", ErrParse, "ZZ")
	assert.Equal(t, protocol.ErrCodeParse, Code(wrapped))
	assert.True(t, errors.Is(wrapped, ErrParse))
	assert.Equal(t, `parse error: "ZZ"`, wrapped.Error())

	assert.Equal(t, protocol.ErrCodeNotYourTurn, Code(ErrNotYourTurn))
	assert.Equal(t, protocol.ErrCodeUnknown, Code(errors.New("boom")))
	assert.Equal(t, protocol.ErrCodeUnknown, Code(nil))
}
