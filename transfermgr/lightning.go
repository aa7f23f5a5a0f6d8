// Lightning-bridged sends. Same two-branch structure as the on-chain
// family, but the caller presents a payment request on the
// payment-channel network; when the bridge knows it, the actual send
// happens locally against the bridge's receiver invoice.

package transfermgr

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/utexo-io/rgb-bridge-go/assetregistry"
	"github.com/utexo-io/rgb-bridge-go/rgbman"
)

// LightningSendBegin resolves a payment request against the bridge and
// builds the unsigned local transaction funding it.
func (o *Orchestrator) LightningSendBegin(ctx context.Context, paymentRequest string) (*TransferRequest, error) {
	if paymentRequest == "" {
		return nil, phaseErr(PhaseBegin, ErrInvoiceRequired)
	}

	transfer := o.bridge.FindTransferByInvoice(ctx, paymentRequest, assetregistry.NetworkLightning)
	if transfer == nil {
		// no bridge involvement: fall back to the direct on-chain path
		return o.OnchainSendBegin(ctx, &SendParams{Invoice: paymentRequest})
	}

	asset, ok := o.registry.AssetByTokenId(o.cfg.Network, transfer.SenderToken.TokenId)
	if !ok {
		return nil, phaseErr(PhaseBegin,
			fmt.Errorf("%w: token %d on %s", ErrUnsupportedAsset, transfer.SenderToken.TokenId, o.cfg.Network))
	}
	units, err := assetregistry.ToBaseUnits(transfer.SenderAmount, transfer.SenderToken.Precision)
	if err != nil {
		return nil, phaseErr(PhaseBegin, err)
	}
	if units <= 0 {
		return nil, phaseErr(PhaseBegin, fmt.Errorf("%w: bridge amount %q", ErrAmountRequired, transfer.SenderAmount))
	}

	// the bridge names the local invoice we fund, hex encoded
	payload, err := o.bridge.ReceiverInvoice(ctx, transfer.Id, o.cfg.Network)
	if err != nil {
		return nil, phaseErr(PhaseBegin, err)
	}
	localInvoice, err := o.bridge.DecodeInvoicePayload(payload)
	if err != nil {
		return nil, phaseErr(PhaseBegin, err)
	}
	decoded, err := o.wallet.DecodeInvoice(ctx, localInvoice)
	if err != nil {
		return nil, phaseErr(PhaseBegin, err)
	}

	if err := o.checkSpendable(ctx, asset.AssetId, uint64(units)); err != nil {
		return nil, phaseErr(PhaseBegin, err)
	}

	psbt, err := o.wallet.SendBegin(ctx, &rgbman.SendRequest{
		Invoice:            localInvoice,
		AssetId:            asset.AssetId,
		Amount:             uint64(units),
		FeeRate:            o.cfg.FeeRate,
		MinConfirmations:   o.cfg.MinConfirmations,
		TransportEndpoints: decoded.TransportEndpoints,
	})
	if err != nil {
		return nil, phaseErr(PhaseBegin, err)
	}

	logger.WithField("bridgeTransfer", transfer.Id).Debug("lightning-bridged send begun")
	req := &TransferRequest{
		OpId:             newOpId(),
		Kind:             KindAssetSend,
		Invoice:          localInvoice,
		AssetId:          asset.AssetId,
		Amount:           uint64(units),
		Route:            RouteBridged,
		BridgeTransferId: transfer.Id,
		RecipientId:      decoded.RecipientId,
		UnsignedPsbt:     psbt,
	}
	o.persist(req)
	return req, nil
}

// LightningSendEnd is OnchainSendEnd under another name; the two-phase
// shape is identical once the route is resolved.
func (o *Orchestrator) LightningSendEnd(ctx context.Context, req *TransferRequest) error {
	return o.OnchainSendEnd(ctx, req)
}

// LightningSend chains Begin, Sign and End.
func (o *Orchestrator) LightningSend(ctx context.Context, paymentRequest string) (*TransferRequest, error) {
	req, err := o.LightningSendBegin(ctx, paymentRequest)
	if err != nil {
		return nil, err
	}
	if err := o.signRequest(req); err != nil {
		return req, err
	}
	if err := o.LightningSendEnd(ctx, req); err != nil {
		return req, err
	}
	return req, nil
}
