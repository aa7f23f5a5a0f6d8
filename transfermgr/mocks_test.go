package transfermgr

import (
	"context"
	"encoding/hex"
	"errors"

	"github.com/utexo-io/rgb-bridge-go/assetregistry"
	"github.com/utexo-io/rgb-bridge-go/bridgeman"
	"github.com/utexo-io/rgb-bridge-go/rgbman"
)

// mockWallet records calls and plays back canned responses.
type mockWallet struct {
	invoices  map[string]*rgbman.InvoiceData
	balances  map[string]*rgbman.Balance
	transfers map[string][]rgbman.Transfer

	lastSendReq  *rgbman.SendRequest
	sendBeginErr error
	sendEndErr   error

	receiveInvoice *rgbman.InvoiceData
}

func newMockWallet() *mockWallet {
	return &mockWallet{
		invoices:  make(map[string]*rgbman.InvoiceData),
		balances:  make(map[string]*rgbman.Balance),
		transfers: make(map[string][]rgbman.Transfer),
	}
}

func (m *mockWallet) BlindReceive(_ context.Context, _ string, _ uint64, _ uint32, _ uint8) (*rgbman.InvoiceData, error) {
	return m.receiveInvoice, nil
}

func (m *mockWallet) WitnessReceive(_ context.Context, assetId string, _ uint64, _ uint32, _ uint8) (*rgbman.InvoiceData, error) {
	if assetId != "" {
		return nil, errors.New("receive invoice must be any-asset")
	}
	return m.receiveInvoice, nil
}

func (m *mockWallet) DecodeInvoice(_ context.Context, invoice string) (*rgbman.InvoiceData, error) {
	if data, ok := m.invoices[invoice]; ok {
		return data, nil
	}
	return nil, errors.New("cannot decode invoice")
}

func (m *mockWallet) SendBegin(_ context.Context, req *rgbman.SendRequest) (string, error) {
	if m.sendBeginErr != nil {
		return "", m.sendBeginErr
	}
	m.lastSendReq = req
	return "unsigned-psbt", nil
}

func (m *mockWallet) SendEnd(_ context.Context, signedPsbt string) (*rgbman.SendResult, error) {
	if m.sendEndErr != nil {
		return nil, m.sendEndErr
	}
	return &rgbman.SendResult{Txid: "txid-" + signedPsbt, BatchTransferIdx: 7}, nil
}

func (m *mockWallet) SendBtcBegin(_ context.Context, _ string, _ uint64, _ float64) (string, error) {
	return "unsigned-btc-psbt", nil
}

func (m *mockWallet) SendBtcEnd(_ context.Context, _ string) (string, error) {
	return "btc-txid", nil
}

func (m *mockWallet) CreateUtxosBegin(_ context.Context, _ bool, _ uint8, _ uint32, _ float64) (string, error) {
	return "unsigned-utxos-psbt", nil
}

func (m *mockWallet) CreateUtxosEnd(_ context.Context, _ string) (uint8, error) {
	return 5, nil
}

func (m *mockWallet) ListTransfers(_ context.Context, assetId string) ([]rgbman.Transfer, error) {
	return m.transfers[assetId], nil
}

func (m *mockWallet) GetAssetBalance(_ context.Context, assetId string) (*rgbman.Balance, error) {
	if b, ok := m.balances[assetId]; ok {
		return b, nil
	}
	return &rgbman.Balance{}, nil
}

func (m *mockWallet) Refresh(_ context.Context) error { return nil }

// mockBridge serves canned bridge transfers keyed by invoice.
type mockBridge struct {
	transfers        map[string]*bridgeman.BridgeTransfer
	withdrawals      map[string]*bridgeman.BridgeTransfer
	receiverInvoices map[string]string // transferId -> hex payload

	bridgeInResp  *bridgeman.BridgeInResponse
	bridgeInCalls int
	lastBridgeIn  *bridgeman.BridgeInRequest
	lookupCalls   int
}

func newMockBridge() *mockBridge {
	return &mockBridge{
		transfers:        make(map[string]*bridgeman.BridgeTransfer),
		withdrawals:      make(map[string]*bridgeman.BridgeTransfer),
		receiverInvoices: make(map[string]string),
	}
}

func (m *mockBridge) FindTransferByInvoice(_ context.Context, invoice string, _ assetregistry.NetworkId) *bridgeman.BridgeTransfer {
	m.lookupCalls++
	return m.transfers[invoice]
}

func (m *mockBridge) WithdrawTransferByInvoice(_ context.Context, invoice string, _ assetregistry.NetworkId) *bridgeman.BridgeTransfer {
	return m.withdrawals[invoice]
}

func (m *mockBridge) DecodeInvoicePayload(payload string) (string, error) {
	b, err := hex.DecodeString(payload)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (m *mockBridge) BridgeIn(_ context.Context, req *bridgeman.BridgeInRequest) (*bridgeman.BridgeInResponse, error) {
	m.bridgeInCalls++
	m.lastBridgeIn = req
	if m.bridgeInResp == nil {
		return nil, errors.New("no bridge-in response configured")
	}
	return m.bridgeInResp, nil
}

func (m *mockBridge) ReceiverInvoice(_ context.Context, transferId string, _ assetregistry.NetworkId) (string, error) {
	if p, ok := m.receiverInvoices[transferId]; ok {
		return p, nil
	}
	return "", errors.New("no receiver invoice")
}

// mockSigner echoes the packet with a marker instead of signing.
type mockSigner struct {
	err   error
	calls int
}

func (m *mockSigner) Sign(psbtB64 string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return "signed:" + psbtB64, nil
}

// memStore collects persisted snapshots.
type memStore struct {
	saved []TransferRequest
}

func (s *memStore) Save(req *TransferRequest) error {
	s.saved = append(s.saved, *req)
	return nil
}
