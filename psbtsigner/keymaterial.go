// Root key material and the keychain derivation the two transaction
// shapes need. All derivation starts from one BIP-32 master key obtained
// from a seed or a BIP-39 mnemonic.

package psbtsigner

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/tyler-smith/go-bip39"

	"github.com/utexo-io/rgb-bridge-go/assetregistry"
)

var (
	ErrSeedInvalid     = errors.New("seed length outside the BIP-32 bounds")
	ErrMnemonicInvalid = errors.New("mnemonic failed BIP-39 validation")
)

type KeyMaterial struct {
	master  *hdkeychain.ExtendedKey
	network assetregistry.NetworkId
}

// NewKeyMaterialFromSeed builds key material from a raw BIP-32 seed.
// Validation happens before any derivation is attempted.
func NewKeyMaterialFromSeed(seed []byte, network assetregistry.NetworkId) (*KeyMaterial, error) {
	if len(seed) < hdkeychain.MinSeedBytes || len(seed) > hdkeychain.MaxSeedBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrSeedInvalid, len(seed))
	}
	master, err := hdkeychain.NewMaster(seed, network.ChainParams())
	if err != nil {
		return nil, err
	}
	return &KeyMaterial{master: master, network: network}, nil
}

// NewKeyMaterialFromMnemonic builds key material from a BIP-39 mnemonic
// with an optional passphrase.
func NewKeyMaterialFromMnemonic(mnemonic, passphrase string, network assetregistry.NetworkId) (*KeyMaterial, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMnemonicInvalid, err)
	}
	return NewKeyMaterialFromSeed(seed, network)
}

func (km *KeyMaterial) Network() assetregistry.NetworkId {
	return km.network
}

// MasterFingerprint is the BIP-32 fingerprint of the root key, in the
// byte order PSBT derivation entries carry it.
func (km *KeyMaterial) MasterFingerprint() (uint32, error) {
	pub, err := km.master.ECPubKey()
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(btcutil.Hash160(pub.SerializeCompressed())[:4]), nil
}

// derivePath walks a full derivation path from the master key. Hardened
// elements carry the hardened offset already.
func (km *KeyMaterial) derivePath(path []uint32) (*hdkeychain.ExtendedKey, error) {
	key := km.master
	for _, elem := range path {
		var err error
		key, err = key.Derive(elem)
		if err != nil {
			return nil, fmt.Errorf("cannot walk derivation element %d: %w", elem, err)
		}
	}
	return key, nil
}

// deriveAccount derives the m/86'/coin'/account' extended key.
func (km *KeyMaterial) deriveAccount(coinType, account uint32) (*hdkeychain.ExtendedKey, error) {
	return km.derivePath([]uint32{
		Bip86Purpose + hdkeychain.HardenedKeyStart,
		coinType + hdkeychain.HardenedKeyStart,
		account + hdkeychain.HardenedKeyStart,
	})
}
