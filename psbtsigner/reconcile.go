// Per-input metadata repair for asset-send packets.
// The wallet engine and the signing engine disagree on how this shape
// encodes its derivation metadata: paths arrive with their keychain
// prefix duplicated and fingerprints/keys go stale against the actual
// key material. Each input's expected key and output script are
// recomputed from its declared path and any disagreeing field is
// overwritten. Inputs whose path cannot be walked are skipped, not
// fatal; the signing engine's own validation is the final arbiter.

package psbtsigner

import (
	"bytes"

	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/txscript"
	logger "github.com/sirupsen/logrus"
)

// keychainPrefixLen is purpose/coin/account, the part that shows up
// duplicated.
const keychainPrefixLen = 3

// Reconcile repairs every input of an asset-send packet in place and
// reports how many inputs were touched.
func (km *KeyMaterial) Reconcile(packet *psbt.Packet) int {
	fingerprint, err := km.MasterFingerprint()
	if err != nil {
		logger.Warnf("cannot compute master fingerprint, skipping reconciliation: %v", err)
		return 0
	}

	repaired := 0
	for i := range packet.Inputs {
		if km.reconcileInput(&packet.Inputs[i], fingerprint, i) {
			repaired++
		}
	}
	return repaired
}

func (km *KeyMaterial) reconcileInput(in *psbt.PInput, fingerprint uint32, idx int) bool {
	if len(in.TaprootBip32Derivation) == 0 {
		return false
	}
	d := in.TaprootBip32Derivation[0]

	path := normalizePath(d.Bip32Path)
	key, err := km.derivePath(path)
	if err != nil {
		logger.WithField("input", idx).
			Debugf("derivation path cannot be walked, leaving input as is: %v", err)
		return false
	}
	pub, err := key.ECPubKey()
	if err != nil {
		logger.WithField("input", idx).
			Debugf("cannot extract pubkey, leaving input as is: %v", err)
		return false
	}

	xonly := schnorr.SerializePubKey(pub)
	outputKey := txscript.ComputeTaprootKeyNoScript(pub)
	pkScript, err := payToTaprootScript(outputKey)
	if err != nil {
		return false
	}

	touched := false
	if len(d.Bip32Path) != len(path) {
		d.Bip32Path = path
		touched = true
	}
	if d.MasterKeyFingerprint != fingerprint {
		d.MasterKeyFingerprint = fingerprint
		touched = true
	}
	if !bytes.Equal(d.XOnlyPubKey, xonly) {
		d.XOnlyPubKey = xonly
		touched = true
	}
	if !bytes.Equal(in.TaprootInternalKey, xonly) {
		in.TaprootInternalKey = xonly
		touched = true
	}
	if in.WitnessUtxo != nil && !bytes.Equal(in.WitnessUtxo.PkScript, pkScript) {
		in.WitnessUtxo.PkScript = pkScript
		touched = true
	}

	// keep any legacy derivation entry in agreement
	for _, bd := range in.Bip32Derivation {
		if bd.MasterKeyFingerprint != fingerprint {
			bd.MasterKeyFingerprint = fingerprint
			touched = true
		}
		if !bytes.Equal(bd.PubKey, pub.SerializeCompressed()) {
			bd.PubKey = pub.SerializeCompressed()
			touched = true
		}
		if len(bd.Bip32Path) != len(path) {
			bd.Bip32Path = path
			touched = true
		}
	}

	if touched {
		logger.WithField("input", idx).Debug("repaired derivation metadata")
	}
	return touched
}

// normalizePath strips a duplicated keychain prefix, the one encoding
// quirk the wallet engine is known for on this shape.
// [86' 827166' 0' 86' 827166' 0' 0 5] becomes [86' 827166' 0' 0 5].
func normalizePath(path []uint32) []uint32 {
	if len(path) >= 2*keychainPrefixLen {
		dup := true
		for i := 0; i < keychainPrefixLen; i++ {
			if path[i] != path[keychainPrefixLen+i] {
				dup = false
				break
			}
		}
		if dup {
			return path[keychainPrefixLen:]
		}
	}
	return path
}
