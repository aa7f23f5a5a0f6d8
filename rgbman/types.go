// Data records crossing the RGB wallet engine boundary.
// The engine itself (UTXO selection, blinding, balance bookkeeping) is a
// black box behind the Wallet interface; these are the shapes it speaks.

package rgbman

// TransferStatus is the wallet engine's transfer state machine. It only
// ever advances; once a transfer leaves WaitingCounterparty it never
// returns there.
type TransferStatus string

const (
	StatusWaitingCounterparty  TransferStatus = "WaitingCounterparty"
	StatusWaitingConfirmations TransferStatus = "WaitingConfirmations"
	StatusSettled              TransferStatus = "Settled"
	StatusFailed               TransferStatus = "Failed"
)

// Pending reports whether the wallet engine may still advance the status.
func (s TransferStatus) Pending() bool {
	return s == StatusWaitingCounterparty || s == StatusWaitingConfirmations
}

type TransferKind string

const (
	KindIssuance       TransferKind = "Issuance"
	KindReceiveBlind   TransferKind = "ReceiveBlind"
	KindReceiveWitness TransferKind = "ReceiveWitness"
	KindSend           TransferKind = "Send"
)

const AssignmentFungible = "Fungible"

// Assignment is the value an invoice asks for. Amount is in the asset's
// base units; zero means "any amount".
type Assignment struct {
	Kind   string `json:"kind"`
	Amount uint64 `json:"amount,omitempty"`
}

// InvoiceData is the decoded form of an opaque invoice string.
// RecipientId is the durable correlation key: a transfer record observed
// later is matched back to the invoice that produced it through this id.
type InvoiceData struct {
	Invoice             string     `json:"invoice"`
	RecipientId         string     `json:"recipient_id"`
	AssetId             string     `json:"asset_id,omitempty"`
	Assignment          Assignment `json:"assignment"`
	Network             string     `json:"network"`
	TransportEndpoints  []string   `json:"transport_endpoints"`
	ExpirationTimestamp int64      `json:"expiration_timestamp,omitempty"`
}

// Transfer is one wallet-engine transfer record. Status is advanced only
// by the engine's own refresh; the coordinator never writes it.
type Transfer struct {
	Idx              int32          `json:"idx"`
	BatchTransferIdx int32          `json:"batch_transfer_idx"`
	RecipientId      string         `json:"recipient_id,omitempty"`
	Status           TransferStatus `json:"status"`
	Amount           uint64         `json:"amount"`
	Kind             TransferKind   `json:"kind"`
	Txid             string         `json:"txid,omitempty"`
	CreatedAt        int64          `json:"created_at"`
	UpdatedAt        int64          `json:"updated_at"`
}

// WitnessData rides along a send when the recipient invoice commits to an
// actual on-chain output value instead of a blinded commitment.
type WitnessData struct {
	AmountSat uint64  `json:"amount_sat"`
	Blinding  *uint64 `json:"blinding,omitempty"`
}

type Balance struct {
	Settled   uint64 `json:"settled"`
	Future    uint64 `json:"future"`
	Spendable uint64 `json:"spendable"`
}

// SendRequest is the input to SendBegin. Either Invoice alone (the engine
// decodes it) or AssetId+Amount with the invoice carried for correlation.
type SendRequest struct {
	Invoice            string       `json:"invoice"`
	AssetId            string       `json:"asset_id,omitempty"`
	Amount             uint64       `json:"amount,omitempty"`
	FeeRate            float64      `json:"fee_rate,omitempty"`
	MinConfirmations   uint8        `json:"min_confirmations,omitempty"`
	TransportEndpoints []string     `json:"transport_endpoints,omitempty"`
	WitnessData        *WitnessData `json:"witness_data,omitempty"`
}

// SendResult is what SendEnd reports after broadcast.
type SendResult struct {
	Txid             string `json:"txid"`
	BatchTransferIdx int32  `json:"batch_transfer_idx"`
}
