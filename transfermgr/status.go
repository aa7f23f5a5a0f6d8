// Status queries. The recipientId embedded in an invoice is the sole
// correlation mechanism between bridge-level and wallet-engine-level
// transfer records.

package transfermgr

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/utexo-io/rgb-bridge-go/assetregistry"
	"github.com/utexo-io/rgb-bridge-go/bridgeman"
	"github.com/utexo-io/rgb-bridge-go/rgbman"
)

// StatusReport combines the bridge's view of a transfer with the local
// wallet engine's record, when one exists.
type StatusReport struct {
	BridgeTransferId string                 `json:"bridge_transfer_id"`
	BridgeStatus     bridgeman.BridgeStatus `json:"bridge_status"`
	Status           rgbman.TransferStatus  `json:"status"`
	Local            *rgbman.Transfer       `json:"local,omitempty"`
}

// OnchainSendStatus looks a caller-presented invoice up: primary bridge
// lookup first, withdrawal-history fallback second. Nothing found is a
// valid terminal answer reported as (nil, nil), not an error.
func (o *Orchestrator) OnchainSendStatus(ctx context.Context, invoice string) (*StatusReport, error) {
	if invoice == "" {
		return nil, ErrInvoiceRequired
	}

	transfer := o.bridge.FindTransferByInvoice(ctx, invoice, o.cfg.Network)
	if transfer == nil {
		// transfers initiated from the execution network only show up
		// in the withdrawal history
		transfer = o.bridge.WithdrawTransferByInvoice(ctx, invoice, assetregistry.NetworkSignet)
	}
	if transfer == nil {
		return nil, nil
	}

	report := &StatusReport{
		BridgeTransferId: transfer.Id,
		BridgeStatus:     transfer.Status,
		Status:           transfer.Status.LocalStatus(),
	}

	local := o.findLocalTransfer(ctx, transfer)
	if local != nil {
		report.Local = local
		report.Status = local.Status
	}
	return report, nil
}

// findLocalTransfer matches the bridge transfer's recipient invoice
// against the wallet engine's transfer list via recipientId. Best
// effort: any failure just means no local record is attached.
func (o *Orchestrator) findLocalTransfer(ctx context.Context, transfer *bridgeman.BridgeTransfer) *rgbman.Transfer {
	asset, ok := o.registry.AssetByTokenId(o.cfg.Network, transfer.RecipientToken.TokenId)
	if !ok {
		return nil
	}

	decoded, err := o.wallet.DecodeInvoice(ctx, transfer.Recipient.Address)
	if err != nil {
		logger.Debugf("cannot decode bridge recipient invoice: %v", err)
		return nil
	}

	transfers, err := o.wallet.ListTransfers(ctx, asset.AssetId)
	if err != nil {
		logger.Debugf("cannot list local transfers: %v", err)
		return nil
	}
	for i := range transfers {
		if transfers[i].RecipientId == decoded.RecipientId {
			return &transfers[i]
		}
	}
	return nil
}
