// On-chain operation families: asset receive, asset send, BTC send and
// UTXO batch creation.

package transfermgr

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/utexo-io/rgb-bridge-go/bridgeman"
	"github.com/utexo-io/rgb-bridge-go/rgbman"
)

// ReceiveParams describe a bridge-mediated inbound transfer: the sender
// pays TokenId/Amount on SenderNetwork, the bridge delivers to us.
type ReceiveParams struct {
	TokenId         uint32
	Amount          string // decimal, sender-network precision
	SenderNetwork   string
	DurationSeconds uint32
}

type ReceiveResult struct {
	// ExternalInvoice is what the counterparty actually pays; decoded
	// from the bridge's hex payload.
	ExternalInvoice string
	// LocalInvoice is the wallet engine's own invoice the bridge
	// delivers into.
	LocalInvoice     string
	RecipientId      string
	BridgeTransferId string
}

// OnchainReceive requests an "any asset" receive invoice from the
// wallet engine, registers it with the bridge as the delivery address,
// and returns the invoice the bridge issued for the sending side.
func (o *Orchestrator) OnchainReceive(ctx context.Context, params *ReceiveParams) (*ReceiveResult, error) {
	// assetId left empty on purpose: the invoice accepts whatever asset
	// the bridge delivers.
	invoiceData, err := o.wallet.WitnessReceive(ctx, "", 0, params.DurationSeconds, o.cfg.MinConfirmations)
	if err != nil {
		return nil, err
	}

	resp, err := o.bridge.BridgeIn(ctx, &bridgeman.BridgeInRequest{
		Sender:        o.cfg.SenderAddress,
		TokenId:       params.TokenId,
		Amount:        params.Amount,
		SenderNetwork: params.SenderNetwork,
		Destination:   invoiceData.Invoice,
	})
	if err != nil {
		return nil, err
	}

	external, err := o.bridge.DecodeInvoicePayload(resp.Signature)
	if err != nil {
		return nil, err
	}

	logger.WithField("bridgeTransfer", resp.TransferId).Debug("bridge-in registered")
	return &ReceiveResult{
		ExternalInvoice:  external,
		LocalInvoice:     invoiceData.Invoice,
		RecipientId:      invoiceData.RecipientId,
		BridgeTransferId: resp.TransferId,
	}, nil
}

// SendParams are the caller inputs of an on-chain asset send.
type SendParams struct {
	Invoice string
	// AssetIdOverride substitutes the invoice's declared asset on
	// direct sends.
	AssetIdOverride string
}

// OnchainSendBegin resolves the route for a caller-presented invoice
// and builds the unsigned transaction. No chain state changes.
func (o *Orchestrator) OnchainSendBegin(ctx context.Context, params *SendParams) (*TransferRequest, error) {
	route, err := o.resolveSendRoute(ctx, params.Invoice, params.AssetIdOverride, o.cfg.Network)
	if err != nil {
		return nil, phaseErr(PhaseBegin, err)
	}

	req := &TransferRequest{
		OpId:    newOpId(),
		Kind:    KindAssetSend,
		Invoice: params.Invoice,
	}

	sendReq := &rgbman.SendRequest{
		Invoice:          params.Invoice,
		FeeRate:          o.cfg.FeeRate,
		MinConfirmations: o.cfg.MinConfirmations,
	}

	switch r := route.(type) {
	case DirectSend:
		req.Route = RouteDirect
		req.AssetId = r.Asset.AssetId
		req.Amount = r.Amount
		req.RecipientId = r.Decoded.RecipientId
		sendReq.AssetId = r.Asset.AssetId
		sendReq.Amount = r.Amount
		sendReq.TransportEndpoints = r.Decoded.TransportEndpoints
	case BridgedSend:
		req.Route = RouteBridged
		req.AssetId = r.Asset.AssetId
		req.Amount = r.Amount
		req.RecipientId = r.Decoded.RecipientId
		req.BridgeTransferId = r.Transfer.Id
		req.WitnessData = r.Witness
		sendReq.AssetId = r.Asset.AssetId
		sendReq.Amount = r.Amount
		sendReq.TransportEndpoints = r.Decoded.TransportEndpoints
		sendReq.WitnessData = r.Witness
	}

	if err := o.checkSpendable(ctx, req.AssetId, req.Amount); err != nil {
		return nil, phaseErr(PhaseBegin, err)
	}

	psbt, err := o.wallet.SendBegin(ctx, sendReq)
	if err != nil {
		return nil, phaseErr(PhaseBegin, err)
	}
	req.UnsignedPsbt = psbt
	o.persist(req)
	return req, nil
}

// OnchainSendSign signs the unsigned transaction of a begun send.
func (o *Orchestrator) OnchainSendSign(req *TransferRequest) error {
	if req.Kind != KindAssetSend {
		return phaseErr(PhaseSign, ErrWrongRequestKind)
	}
	return o.signRequest(req)
}

// OnchainSendEnd submits the signed transaction; the wallet engine
// broadcasts and records the transfer.
func (o *Orchestrator) OnchainSendEnd(ctx context.Context, req *TransferRequest) error {
	if req.Kind != KindAssetSend {
		return phaseErr(PhaseEnd, ErrWrongRequestKind)
	}
	if req.SignedPsbt == "" {
		return phaseErr(PhaseEnd, ErrPhaseOutOfOrder)
	}
	result, err := o.wallet.SendEnd(ctx, req.SignedPsbt)
	if err != nil {
		return phaseErr(PhaseEnd, err)
	}
	req.Txid = result.Txid
	req.BatchTransferIdx = result.BatchTransferIdx
	o.persist(req)
	return nil
}

// OnchainSend chains Begin, Sign and End for callers that do not need
// to inspect the intermediate unsigned transaction.
func (o *Orchestrator) OnchainSend(ctx context.Context, params *SendParams) (*TransferRequest, error) {
	req, err := o.OnchainSendBegin(ctx, params)
	if err != nil {
		return nil, err
	}
	if err := o.OnchainSendSign(req); err != nil {
		return req, err
	}
	if err := o.OnchainSendEnd(ctx, req); err != nil {
		return req, err
	}
	return req, nil
}

// SendBtcBegin builds an unsigned plain-BTC send.
func (o *Orchestrator) SendBtcBegin(ctx context.Context, address string, amountSat uint64) (*TransferRequest, error) {
	if address == "" {
		return nil, phaseErr(PhaseBegin, ErrAddressRequired)
	}
	if amountSat == 0 {
		return nil, phaseErr(PhaseBegin, ErrAmountRequired)
	}

	psbt, err := o.wallet.SendBtcBegin(ctx, address, amountSat, o.cfg.FeeRate)
	if err != nil {
		return nil, phaseErr(PhaseBegin, err)
	}
	req := &TransferRequest{
		OpId:         newOpId(),
		Kind:         KindBtcSend,
		Address:      address,
		Amount:       amountSat,
		UnsignedPsbt: psbt,
	}
	o.persist(req)
	return req, nil
}

// SendBtcSign signs the unsigned transaction of a begun BTC send.
func (o *Orchestrator) SendBtcSign(req *TransferRequest) error {
	if req.Kind != KindBtcSend {
		return phaseErr(PhaseSign, ErrWrongRequestKind)
	}
	return o.signRequest(req)
}

func (o *Orchestrator) SendBtcEnd(ctx context.Context, req *TransferRequest) error {
	if req.Kind != KindBtcSend {
		return phaseErr(PhaseEnd, ErrWrongRequestKind)
	}
	if req.SignedPsbt == "" {
		return phaseErr(PhaseEnd, ErrPhaseOutOfOrder)
	}
	txid, err := o.wallet.SendBtcEnd(ctx, req.SignedPsbt)
	if err != nil {
		return phaseErr(PhaseEnd, err)
	}
	req.Txid = txid
	o.persist(req)
	return nil
}

// SendBtc is the do-all BTC send.
func (o *Orchestrator) SendBtc(ctx context.Context, address string, amountSat uint64) (*TransferRequest, error) {
	req, err := o.SendBtcBegin(ctx, address, amountSat)
	if err != nil {
		return nil, err
	}
	if err := o.signRequest(req); err != nil {
		return req, err
	}
	if err := o.SendBtcEnd(ctx, req); err != nil {
		return req, err
	}
	return req, nil
}

// CreateUtxosBegin builds the unsigned transaction splitting the wallet
// balance into colorable UTXOs.
func (o *Orchestrator) CreateUtxosBegin(ctx context.Context, upTo bool, num uint8, size uint32) (*TransferRequest, error) {
	psbt, err := o.wallet.CreateUtxosBegin(ctx, upTo, num, size, o.cfg.FeeRate)
	if err != nil {
		return nil, phaseErr(PhaseBegin, err)
	}
	req := &TransferRequest{
		OpId:         newOpId(),
		Kind:         KindCreateUtxos,
		UnsignedPsbt: psbt,
	}
	o.persist(req)
	return req, nil
}

// CreateUtxosSign signs the unsigned transaction of a begun UTXO batch.
func (o *Orchestrator) CreateUtxosSign(req *TransferRequest) error {
	if req.Kind != KindCreateUtxos {
		return phaseErr(PhaseSign, ErrWrongRequestKind)
	}
	return o.signRequest(req)
}

func (o *Orchestrator) CreateUtxosEnd(ctx context.Context, req *TransferRequest) error {
	if req.Kind != KindCreateUtxos {
		return phaseErr(PhaseEnd, ErrWrongRequestKind)
	}
	if req.SignedPsbt == "" {
		return phaseErr(PhaseEnd, ErrPhaseOutOfOrder)
	}
	created, err := o.wallet.CreateUtxosEnd(ctx, req.SignedPsbt)
	if err != nil {
		return phaseErr(PhaseEnd, err)
	}
	req.UtxosCreated = created
	o.persist(req)
	return nil
}

// CreateUtxos is the do-all UTXO batch creation.
func (o *Orchestrator) CreateUtxos(ctx context.Context, upTo bool, num uint8, size uint32) (*TransferRequest, error) {
	req, err := o.CreateUtxosBegin(ctx, upTo, num, size)
	if err != nil {
		return nil, err
	}
	if err := o.signRequest(req); err != nil {
		return req, err
	}
	if err := o.CreateUtxosEnd(ctx, req); err != nil {
		return req, err
	}
	return req, nil
}
