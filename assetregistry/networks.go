// Logical network identifiers and their chain parameters.
// The coordinator spans three networks: the settlement network (utexo),
// the payment-channel network (lightning) and the signet-based execution
// network. Each carries its own asset table (see registry.go).

package assetregistry

import (
	"github.com/btcsuite/btcd/chaincfg"
)

type NetworkId string

const (
	// Settlement network (mainnet-like RGB network).
	NetworkUtexo NetworkId = "utexo"
	// Payment-channel network bridged to the settlement network.
	NetworkLightning NetworkId = "lightning"
	// Sidechain-like execution network, signet based.
	NetworkSignet NetworkId = "signet"
)

// ChainParams maps a logical network onto the BTC chain parameters the
// signer derives keys against. The lightning network anchors on the
// settlement chain, so it shares its params.
func (n NetworkId) ChainParams() *chaincfg.Params {
	switch n {
	case NetworkSignet:
		return &chaincfg.SigNetParams
	default:
		return &chaincfg.MainNetParams
	}
}

// BitcoinCoinType is the BIP-44 coin type used on the given network for
// plain BTC keychains (0 on mainnet, 1 on test networks).
func (n NetworkId) BitcoinCoinType() uint32 {
	if n == NetworkSignet {
		return 1
	}
	return 0
}

func (n NetworkId) Valid() bool {
	switch n {
	case NetworkUtexo, NetworkLightning, NetworkSignet:
		return true
	}
	return false
}
