package bridgeman

import (
	"github.com/utexo-io/rgb-bridge-go/rgbman"
)

// BridgeStatus is the bridge service's transfer status vocabulary.
type BridgeStatus string

const (
	StatusPending    BridgeStatus = "PENDING"
	StatusProcessing BridgeStatus = "PROCESSING"
	StatusConfirmed  BridgeStatus = "CONFIRMED"
	StatusSettled    BridgeStatus = "SETTLED"
	StatusFailed     BridgeStatus = "FAILED"
	StatusRefunded   BridgeStatus = "REFUNDED"
	// StatusUnknown flags a status byte outside the table. It is kept
	// distinct instead of defaulting so operators notice protocol drift.
	StatusUnknown BridgeStatus = "UNKNOWN"
)

// History rows encode the status as one ASCII digit. Fragile convention
// inherited from the bridge service, hence the explicit table.
var statusByteTable = map[string]BridgeStatus{
	"0": StatusPending,
	"1": StatusProcessing,
	"2": StatusConfirmed,
	"3": StatusSettled,
	"4": StatusFailed,
	"5": StatusRefunded,
}

// DecodeStatusByte maps a single-character status encoding onto the
// status vocabulary. Anything outside the table is StatusUnknown, never
// silently defaulted.
func DecodeStatusByte(raw string) BridgeStatus {
	if s, ok := statusByteTable[raw]; ok {
		return s
	}
	return StatusUnknown
}

// LocalStatus translates a bridge status into the wallet engine's
// transfer status vocabulary.
func (s BridgeStatus) LocalStatus() rgbman.TransferStatus {
	switch s {
	case StatusPending:
		return rgbman.StatusWaitingCounterparty
	case StatusProcessing, StatusConfirmed:
		return rgbman.StatusWaitingConfirmations
	case StatusSettled:
		return rgbman.StatusSettled
	case StatusFailed, StatusRefunded:
		return rgbman.StatusFailed
	default:
		return rgbman.StatusWaitingCounterparty
	}
}

// Terminal reports whether the bridge will no longer advance this status.
func (s BridgeStatus) Terminal() bool {
	switch s {
	case StatusSettled, StatusFailed, StatusRefunded:
		return true
	}
	return false
}
