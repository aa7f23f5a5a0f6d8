// Collaborator boundaries the orchestrator consumes. Concrete
// implementations live in bridgeman, psbtsigner and transferdb; tests
// substitute their own.

package transfermgr

import (
	"context"

	"github.com/utexo-io/rgb-bridge-go/assetregistry"
	"github.com/utexo-io/rgb-bridge-go/bridgeman"
)

// Bridge is the cross-network bridge service. Lookups return nil for
// both "not found" and "unreachable"; absence of a bridge transfer is a
// normal branch condition, never an error.
type Bridge interface {
	FindTransferByInvoice(ctx context.Context, invoice string, network assetregistry.NetworkId) *bridgeman.BridgeTransfer
	WithdrawTransferByInvoice(ctx context.Context, invoice string, network assetregistry.NetworkId) *bridgeman.BridgeTransfer
	DecodeInvoicePayload(payload string) (string, error)
	BridgeIn(ctx context.Context, req *bridgeman.BridgeInRequest) (*bridgeman.BridgeInResponse, error)
	ReceiverInvoice(ctx context.Context, transferId string, network assetregistry.NetworkId) (string, error)
}

// Signer signs one base64 PSBT. Classification and metadata repair are
// its business; the orchestrator just hands packets through.
type Signer interface {
	Sign(psbtB64 string) (string, error)
}

// RequestStore persists in-flight transfer requests for cross-process
// hand-off. Purely advisory: the orchestrator writes snapshots and
// never reads them back to make decisions.
type RequestStore interface {
	Save(req *TransferRequest) error
}
