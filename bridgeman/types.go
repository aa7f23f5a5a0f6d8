// Records returned by the bridge HTTP service. Their lifecycle is owned
// entirely by the bridge; this side only reads them.

package bridgeman

type NetworkAddress struct {
	// Address on the destination side is itself an invoice string on that
	// network; it is the correlation point between the two networks.
	Address   string `json:"address"`
	NetworkId string `json:"network_id"`
}

type BridgeToken struct {
	Symbol    string `json:"symbol"`
	TokenId   uint32 `json:"token_id"`
	Precision uint8  `json:"precision"`
}

type BridgeTransfer struct {
	Id              string         `json:"id"`
	SenderAmount    string         `json:"sender_amount"`
	RecipientAmount string         `json:"recipient_amount"`
	SenderToken     BridgeToken    `json:"sender_token"`
	RecipientToken  BridgeToken    `json:"recipient_token"`
	Sender          NetworkAddress `json:"sender"`
	Recipient       NetworkAddress `json:"recipient"`
	Status          BridgeStatus   `json:"status"`
	CreatedAt       int64          `json:"created_at"`
}

type BridgeInRequest struct {
	Sender              string   `json:"sender"`
	TokenId             uint32   `json:"token_id"`
	Amount              string   `json:"amount"`
	SenderNetwork       string   `json:"sender_network,omitempty"`
	Destination         string   `json:"destination"`
	AdditionalAddresses []string `json:"additional_addresses,omitempty"`
}

type BridgeInResponse struct {
	// Signature is hex (optionally 0x prefixed); once decoded it is the
	// invoice the bridge presents on the other network.
	Signature       string      `json:"signature"`
	TransferId      string      `json:"transfer_id"`
	RecipientAmount string      `json:"recipient_amount"`
	RecipientToken  BridgeToken `json:"recipient_token"`
}

// historyEntry is the raw shape of /transfers/history rows. Status there
// is a single-character text encoding that must go through the status
// table before use.
type historyEntry struct {
	Id              string         `json:"id"`
	SenderAmount    string         `json:"sender_amount"`
	RecipientAmount string         `json:"recipient_amount"`
	SenderToken     BridgeToken    `json:"sender_token"`
	RecipientToken  BridgeToken    `json:"recipient_token"`
	Sender          NetworkAddress `json:"sender"`
	Recipient       NetworkAddress `json:"recipient"`
	Status          string         `json:"status"`
	CreatedAt       int64          `json:"created_at"`
}

func (h *historyEntry) toTransfer() *BridgeTransfer {
	return &BridgeTransfer{
		Id:              h.Id,
		SenderAmount:    h.SenderAmount,
		RecipientAmount: h.RecipientAmount,
		SenderToken:     h.SenderToken,
		RecipientToken:  h.RecipientToken,
		Sender:          h.Sender,
		Recipient:       h.Recipient,
		Status:          DecodeStatusByte(h.Status),
		CreatedAt:       h.CreatedAt,
	}
}
