// TransferRequest is the caller-held state threaded through
// Begin/Sign/End. The orchestrator keeps nothing between phases, so a
// request begun in one process can be signed in another (hardware
// signer hand-off) and ended in a third. Each phase fills in its part
// and the next phase checks the preceding one actually ran.

package transfermgr

import (
	"crypto/rand"
	"encoding/hex"

	logger "github.com/sirupsen/logrus"

	"github.com/utexo-io/rgb-bridge-go/rgbman"
)

type OperationKind string

const (
	KindAssetSend   OperationKind = "asset-send"
	KindBtcSend     OperationKind = "btc-send"
	KindCreateUtxos OperationKind = "create-utxos"
)

type RouteKind string

const (
	// RouteDirect is a send with no bridge involvement.
	RouteDirect RouteKind = "direct"
	// RouteBridged is a send delivering into a bridge transfer.
	RouteBridged RouteKind = "bridged"
)

type TransferRequest struct {
	// OpId identifies the request across phases and processes.
	OpId string        `json:"op_id"`
	Kind OperationKind `json:"kind"`

	// Begin inputs/results.
	Invoice          string              `json:"invoice,omitempty"`
	Address          string              `json:"address,omitempty"` // btc sends only
	AssetId          string              `json:"asset_id,omitempty"`
	Amount           uint64              `json:"amount,omitempty"`
	Route            RouteKind           `json:"route,omitempty"`
	BridgeTransferId string              `json:"bridge_transfer_id,omitempty"`
	RecipientId      string              `json:"recipient_id,omitempty"`
	WitnessData      *rgbman.WitnessData `json:"witness_data,omitempty"`
	UnsignedPsbt     string              `json:"unsigned_psbt,omitempty"`

	// Sign result.
	SignedPsbt string `json:"signed_psbt,omitempty"`

	// End result.
	Txid             string `json:"txid,omitempty"`
	BatchTransferIdx int32  `json:"batch_transfer_idx,omitempty"`
	UtxosCreated     uint8  `json:"utxos_created,omitempty"`
}

func (r *TransferRequest) Phase() Phase {
	switch {
	case r.Txid != "" || r.UtxosCreated > 0:
		return PhaseEnd
	case r.SignedPsbt != "":
		return PhaseSign
	default:
		return PhaseBegin
	}
}

func newOpId() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		logger.Warnf("cannot draw random op id: %v", err)
	}
	return hex.EncodeToString(b[:])
}
