// Descriptor derivation. The shape from classification decides which
// key material the signing engine is handed:
//   - utxo-creation: one account-level key, expressed as an
//     external/internal descriptor pair,
//   - asset-send: two keychain-level keys, one under the asset coin
//     type and one under the Bitcoin coin type.

package psbtsigner

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// Descriptors is the key material handed to the signing engine,
// pre-shaped for the transaction it is about to sign.
type Descriptors struct {
	Shape TxShape

	// External/Internal are the receive and change branch descriptors.
	// For asset sends External covers the asset keychain and Internal
	// the Bitcoin keychain.
	External string
	Internal string

	// The extended keys behind the descriptors, for engines that derive
	// themselves instead of parsing descriptor strings.
	ExternalKey *hdkeychain.ExtendedKey
	InternalKey *hdkeychain.ExtendedKey
}

// DeriveDescriptors derives the descriptor pair matching the shape. The
// account index is fixed at 0; the wallet engine never allocates others.
func (km *KeyMaterial) DeriveDescriptors(shape TxShape) (*Descriptors, error) {
	btcCoin := km.network.BitcoinCoinType()

	if shape == ShapeAssetSend {
		assetKey, err := km.deriveAccount(AssetCoinType, 0)
		if err != nil {
			return nil, err
		}
		btcKey, err := km.deriveAccount(btcCoin, 0)
		if err != nil {
			return nil, err
		}
		return &Descriptors{
			Shape:       shape,
			External:    fmt.Sprintf("tr(%s/0/*)", assetKey.String()),
			Internal:    fmt.Sprintf("tr(%s/1/*)", btcKey.String()),
			ExternalKey: assetKey,
			InternalKey: btcKey,
		}, nil
	}

	account, err := km.deriveAccount(btcCoin, 0)
	if err != nil {
		return nil, err
	}
	return &Descriptors{
		Shape:       shape,
		External:    fmt.Sprintf("tr(%s/0/*)", account.String()),
		Internal:    fmt.Sprintf("tr(%s/1/*)", account.String()),
		ExternalKey: account,
		InternalKey: account,
	}, nil
}
