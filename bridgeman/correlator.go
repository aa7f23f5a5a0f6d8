// Correlator matches invoices against bridge transfer records.
// Every lookup is best effort: absence of a bridge transfer is a normal
// branch condition for the orchestrator (many transfers never touch the
// bridge), so lookup failures degrade to nil instead of erroring.

package bridgeman

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"

	"github.com/utexo-io/rgb-bridge-go/assetregistry"
	"github.com/utexo-io/rgb-bridge-go/common"
)

var ErrInvoicePayloadNotHex = errors.New("bridge invoice payload is not valid hex")

// historyPageSize bounds one fallback-lookup page. Withdrawals are rare
// enough that a single page covers the pending window.
const historyPageSize = 50

type Correlator struct {
	client *Client
}

func NewCorrelator(client *Client) *Correlator {
	return &Correlator{client: client}
}

// FindTransferByInvoice is the primary lookup. Both "bridge has no such
// transfer" and "bridge unreachable" come back as nil; the two are
// conflated on purpose (the caller treats either as a direct transfer)
// and only the log line tells them apart.
func (c *Correlator) FindTransferByInvoice(ctx context.Context, invoice string, networkId assetregistry.NetworkId) *BridgeTransfer {
	transfer, err := c.client.TransferByMainnetInvoice(ctx, invoice, string(networkId))
	if err != nil {
		logger.WithField("network", networkId).
			Warnf("bridge transfer lookup failed, treating as non-bridge transfer: %v", err)
		return nil
	}
	return transfer
}

// DecodeInvoicePayload turns a bridge-issued hex payload (with or
// without 0x prefix) into the invoice string it encodes.
func (c *Correlator) DecodeInvoicePayload(payload string) (string, error) {
	if !common.IsHexStr(payload) {
		return "", ErrInvoicePayloadNotHex
	}
	return string(common.HexStrToByteSlice(payload)), nil
}

// BridgeIn forwards a bridge-in signature request. Unlike the lookups
// this is a mutating call, so errors surface to the caller.
func (c *Correlator) BridgeIn(ctx context.Context, req *BridgeInRequest) (*BridgeInResponse, error) {
	return c.client.BridgeInSignature(ctx, req)
}

// ReceiverInvoice fetches the invoice the bridge issued on the given
// network for an accepted transfer.
func (c *Correlator) ReceiverInvoice(ctx context.Context, transferId string, networkId assetregistry.NetworkId) (string, error) {
	return c.client.ReceiverInvoice(ctx, transferId, string(networkId))
}

// WithdrawTransferByInvoice is the fallback lookup for transfers
// initiated from the execution network: it scans the transfer history
// for a record delivering to the given invoice. Miss and error both
// yield nil.
func (c *Correlator) WithdrawTransferByInvoice(ctx context.Context, invoice string, networkId assetregistry.NetworkId) *BridgeTransfer {
	offset := 0
	for {
		page, err := c.client.TransfersHistory(ctx, string(networkId), offset, historyPageSize, invoice)
		if err != nil {
			logger.WithField("network", networkId).
				Warnf("bridge history lookup failed, treating as non-bridge transfer: %v", err)
			return nil
		}
		for _, t := range page {
			if t.Recipient.Address == invoice {
				return t
			}
		}
		if len(page) < historyPageSize {
			return nil
		}
		offset += historyPageSize
	}
}
