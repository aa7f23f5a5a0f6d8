package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func newTestCoordinatorConfig() *CoordinatorConfig {
	return &CoordinatorConfig{
		Network:        "signet",
		NodeUrl:        "http://127.0.0.1:3001",
		SenderAddress:  "bc1q-test-sender",
		SignerMnemonic: testMnemonic,
		BridgeUrl:      "http://127.0.0.1:3002",
		DbFilePath:     ":memory:",
		HttpIp:         "127.0.0.1",
		HttpPort:       "0",
	}
}

func TestNewCoordinatorServer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, err := NewCoordinatorServer(newTestCoordinatorConfig(), ctx)
	require.NoError(t, err)
	defer server.MyRequestStore.Close()

	assert.NotNil(t, server.MyWallet)
	assert.NotNil(t, server.MyBridge)
	assert.NotNil(t, server.MySigner)
	assert.NotNil(t, server.MyOrchestrator)
}

func TestNewCoordinatorServerRejectsUnknownNetwork(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cc := newTestCoordinatorConfig()
	cc.Network = "testnet4"

	_, err := NewCoordinatorServer(cc, ctx)
	assert.Error(t, err)
}

func TestNewCoordinatorServerRejectsBadMnemonic(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cc := newTestCoordinatorConfig()
	cc.SignerMnemonic = "not a mnemonic"

	_, err := NewCoordinatorServer(cc, ctx)
	assert.Error(t, err)
}
