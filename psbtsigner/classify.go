// Unsigned transactions show up here in two shapes the signer must tell
// apart before deriving anything: the account-level shape produced by
// UTXO-creation operations and the asset-keychain shape produced by
// asset sends. The reserved asset coin type in an input's derivation
// path is the marker.

package psbtsigner

import (
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/btcutil/psbt"
)

// AssetCoinType is the reserved BIP-44 coin type of the asset keychain.
// Its hardened form anywhere in a derivation path marks an asset send.
const AssetCoinType uint32 = 827166

// Bip86Purpose is the taproot single-key purpose all wallet keychains
// derive under.
const Bip86Purpose uint32 = 86

type TxShape int

const (
	// ShapeUtxoCreation spends plain account-level outputs.
	ShapeUtxoCreation TxShape = iota
	// ShapeAssetSend spends outputs on the asset keychain and needs
	// per-input metadata reconciliation before signing.
	ShapeAssetSend
)

func (s TxShape) String() string {
	if s == ShapeAssetSend {
		return "asset-send"
	}
	return "utxo-creation"
}

// Classify scans the packet's derivation entries for the reserved asset
// coin type.
func Classify(packet *psbt.Packet) TxShape {
	for i := range packet.Inputs {
		in := &packet.Inputs[i]
		for _, d := range in.TaprootBip32Derivation {
			if pathHasAssetCoinType(d.Bip32Path) {
				return ShapeAssetSend
			}
		}
		for _, d := range in.Bip32Derivation {
			if pathHasAssetCoinType(d.Bip32Path) {
				return ShapeAssetSend
			}
		}
	}
	return ShapeUtxoCreation
}

// ClassifyBase64 classifies a base64-encoded packet. Input that cannot
// be decoded classifies as the structurally simpler utxo-creation shape
// instead of failing; a truly broken packet still fails later, at
// signing, where the error is actionable.
func ClassifyBase64(psbtB64 string) TxShape {
	packet, err := psbt.NewFromRawBytes(strings.NewReader(psbtB64), true)
	if err != nil {
		return ShapeUtxoCreation
	}
	return Classify(packet)
}

func pathHasAssetCoinType(path []uint32) bool {
	for _, elem := range path {
		if elem == AssetCoinType+hdkeychain.HardenedKeyStart {
			return true
		}
	}
	return false
}
