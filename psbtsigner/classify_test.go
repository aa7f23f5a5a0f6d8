package psbtsigner

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const h = hdkeychain.HardenedKeyStart

func newPacketWithPaths(t *testing.T, paths ...[]uint32) *psbt.Packet {
	tx := wire.NewMsgTx(2)
	for i := range paths {
		prev := wire.OutPoint{Hash: chainhash.HashH([]byte{byte(i)}), Index: uint32(i)}
		tx.AddTxIn(wire.NewTxIn(&prev, nil, nil))
	}
	tx.AddTxOut(wire.NewTxOut(1000, []byte{0x51}))

	packet, err := psbt.NewFromUnsignedTx(tx)
	require.NoError(t, err)
	for i, path := range paths {
		packet.Inputs[i].TaprootBip32Derivation = []*psbt.TaprootBip32Derivation{{
			XOnlyPubKey: make([]byte, 32),
			Bip32Path:   path,
		}}
	}
	return packet
}

func TestClassifyAssetSend(t *testing.T) {
	packet := newPacketWithPaths(t,
		[]uint32{Bip86Purpose + h, 0 + h, 0 + h, 0, 1},
		[]uint32{Bip86Purpose + h, AssetCoinType + h, 0 + h, 0, 7},
	)
	assert.Equal(t, ShapeAssetSend, Classify(packet))
}

func TestClassifyUtxoCreation(t *testing.T) {
	packet := newPacketWithPaths(t,
		[]uint32{Bip86Purpose + h, 0 + h, 0 + h, 0, 1},
		[]uint32{Bip86Purpose + h, 1 + h, 0 + h, 1, 2},
	)
	assert.Equal(t, ShapeUtxoCreation, Classify(packet))

	// no derivation info at all
	packet = newPacketWithPaths(t)
	assert.Equal(t, ShapeUtxoCreation, Classify(packet))
}

func TestClassifyBase64Unparseable(t *testing.T) {
	// malformed input falls back to the simpler shape, never errors
	assert.Equal(t, ShapeUtxoCreation, ClassifyBase64("definitely not a psbt"))
	assert.Equal(t, ShapeUtxoCreation, ClassifyBase64(""))
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "asset-send", ShapeAssetSend.String())
	assert.Equal(t, "utxo-creation", ShapeUtxoCreation.String())
}
