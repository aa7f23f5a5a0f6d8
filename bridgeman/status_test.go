package bridgeman

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/utexo-io/rgb-bridge-go/rgbman"
)

func TestDecodeStatusByte(t *testing.T) {
	assert.Equal(t, StatusPending, DecodeStatusByte("0"))
	assert.Equal(t, StatusProcessing, DecodeStatusByte("1"))
	assert.Equal(t, StatusConfirmed, DecodeStatusByte("2"))
	assert.Equal(t, StatusSettled, DecodeStatusByte("3"))
	assert.Equal(t, StatusFailed, DecodeStatusByte("4"))
	assert.Equal(t, StatusRefunded, DecodeStatusByte("5"))

	// undecodable bytes surface as a distinct value
	assert.Equal(t, StatusUnknown, DecodeStatusByte("9"))
	assert.Equal(t, StatusUnknown, DecodeStatusByte(""))
	assert.Equal(t, StatusUnknown, DecodeStatusByte("x"))
}

func TestLocalStatusMapping(t *testing.T) {
	assert.Equal(t, rgbman.StatusWaitingCounterparty, StatusPending.LocalStatus())
	assert.Equal(t, rgbman.StatusWaitingConfirmations, StatusProcessing.LocalStatus())
	assert.Equal(t, rgbman.StatusWaitingConfirmations, StatusConfirmed.LocalStatus())
	assert.Equal(t, rgbman.StatusSettled, StatusSettled.LocalStatus())
	assert.Equal(t, rgbman.StatusFailed, StatusFailed.LocalStatus())
	assert.Equal(t, rgbman.StatusFailed, StatusRefunded.LocalStatus())
}

func TestTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusProcessing.Terminal())
	assert.True(t, StatusSettled.Terminal())
	assert.True(t, StatusRefunded.Terminal())
	assert.False(t, StatusUnknown.Terminal())
}
