package rgbman

import "context"

// Wallet is the RGB engine consumed as a black box. Every call may do
// network I/O; callers bound them with the context. No call leaves the
// engine half-updated when abandoned, each is one atomic engine
// operation.
type Wallet interface {
	// BlindReceive issues an invoice committing to a blinded UTXO.
	// Empty assetId produces an "any asset" invoice. durationSeconds of
	// zero means the engine default expiry.
	BlindReceive(ctx context.Context, assetId string, amount uint64, durationSeconds uint32, minConfirmations uint8) (*InvoiceData, error)

	// WitnessReceive issues an invoice paid to an actual on-chain output.
	WitnessReceive(ctx context.Context, assetId string, amount uint64, durationSeconds uint32, minConfirmations uint8) (*InvoiceData, error)

	// DecodeInvoice parses an opaque invoice string.
	DecodeInvoice(ctx context.Context, invoice string) (*InvoiceData, error)

	// SendBegin builds the unsigned PSBT for an asset send. No chain
	// state changes until SendEnd.
	SendBegin(ctx context.Context, req *SendRequest) (string, error)

	// SendEnd finalizes, broadcasts and records the signed PSBT.
	SendEnd(ctx context.Context, signedPsbt string) (*SendResult, error)

	// SendBtcBegin/SendBtcEnd are the plain BTC counterparts.
	SendBtcBegin(ctx context.Context, address string, amountSat uint64, feeRate float64) (string, error)
	SendBtcEnd(ctx context.Context, signedPsbt string) (string, error)

	// CreateUtxosBegin/CreateUtxosEnd split the wallet balance into
	// colorable UTXOs. CreateUtxosEnd reports how many were created.
	CreateUtxosBegin(ctx context.Context, upTo bool, num uint8, size uint32, feeRate float64) (string, error)
	CreateUtxosEnd(ctx context.Context, signedPsbt string) (uint8, error)

	// ListTransfers lists the engine's transfer records for an asset.
	ListTransfers(ctx context.Context, assetId string) ([]Transfer, error)

	// GetAssetBalance reports the engine's balance bookkeeping.
	GetAssetBalance(ctx context.Context, assetId string) (*Balance, error)

	// Refresh lets the engine advance its own transfer state machine.
	Refresh(ctx context.Context) error
}
