package psbtsigner

import (
	"bytes"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utexo-io/rgb-bridge-go/assetregistry"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon " +
	"abandon abandon abandon abandon abandon about"

func newTestKeys(t *testing.T) *KeyMaterial {
	km, err := NewKeyMaterialFromSeed(bytes.Repeat([]byte{0x01}, 32), assetregistry.NetworkUtexo)
	require.NoError(t, err)
	return km
}

func TestKeyMaterialValidation(t *testing.T) {
	_, err := NewKeyMaterialFromSeed([]byte{0x01, 0x02}, assetregistry.NetworkUtexo)
	assert.ErrorIs(t, err, ErrSeedInvalid)

	_, err = NewKeyMaterialFromMnemonic("not a real mnemonic", "", assetregistry.NetworkUtexo)
	assert.ErrorIs(t, err, ErrMnemonicInvalid)

	km, err := NewKeyMaterialFromMnemonic(testMnemonic, "", assetregistry.NetworkSignet)
	require.NoError(t, err)
	assert.Equal(t, assetregistry.NetworkSignet, km.Network())
}

func TestDeriveDescriptors(t *testing.T) {
	km := newTestKeys(t)

	utxo, err := km.DeriveDescriptors(ShapeUtxoCreation)
	require.NoError(t, err)
	assert.Equal(t, ShapeUtxoCreation, utxo.Shape)
	// utxo-creation uses one account key for both branches
	assert.Equal(t, utxo.ExternalKey.String(), utxo.InternalKey.String())
	assert.True(t, strings.HasPrefix(utxo.External, "tr("))
	assert.True(t, strings.HasSuffix(utxo.External, "/0/*)"))
	assert.True(t, strings.HasSuffix(utxo.Internal, "/1/*)"))

	send, err := km.DeriveDescriptors(ShapeAssetSend)
	require.NoError(t, err)
	// asset sends split across the asset and the bitcoin keychains
	assert.NotEqual(t, send.ExternalKey.String(), send.InternalKey.String())
	assert.NotEqual(t, utxo.External, send.External)

	// derivation is deterministic
	again, err := km.DeriveDescriptors(ShapeAssetSend)
	require.NoError(t, err)
	assert.Equal(t, send.External, again.External)
}

func TestReconcileRepairsInput(t *testing.T) {
	km := newTestKeys(t)
	fingerprint, err := km.MasterFingerprint()
	require.NoError(t, err)

	goodPath := []uint32{Bip86Purpose + h, AssetCoinType + h, 0 + h, 0, 5}
	duplicated := append(append([]uint32{}, goodPath[:3]...), goodPath...)

	key, err := km.derivePath(goodPath)
	require.NoError(t, err)
	pub, err := key.ECPubKey()
	require.NoError(t, err)
	wantXOnly := schnorr.SerializePubKey(pub)
	wantScript, err := payToTaprootScript(txscript.ComputeTaprootKeyNoScript(pub))
	require.NoError(t, err)

	packet := newPacketWithPaths(t, duplicated)
	in := &packet.Inputs[0]
	in.TaprootBip32Derivation[0].MasterKeyFingerprint = 0xdeadbeef
	in.TaprootInternalKey = make([]byte, 32)
	in.WitnessUtxo = wire.NewTxOut(10_000, []byte{0x00, 0x14})

	repaired := km.Reconcile(packet)
	assert.Equal(t, 1, repaired)

	d := in.TaprootBip32Derivation[0]
	assert.Equal(t, goodPath, d.Bip32Path)
	assert.Equal(t, fingerprint, d.MasterKeyFingerprint)
	assert.Equal(t, wantXOnly, d.XOnlyPubKey)
	assert.Equal(t, wantXOnly, in.TaprootInternalKey)
	assert.Equal(t, wantScript, in.WitnessUtxo.PkScript)
}

func TestReconcileSkipsBrokenInputs(t *testing.T) {
	km := newTestKeys(t)

	// a path deeper than BIP-32 allows cannot be walked; the input is
	// skipped instead of failing the whole packet
	tooDeep := make([]uint32, 300)
	packet := newPacketWithPaths(t, tooDeep)
	assert.Equal(t, 0, km.Reconcile(packet))

	// no derivation info at all
	packet = newPacketWithPaths(t, nil)
	packet.Inputs[0].TaprootBip32Derivation = nil
	assert.Equal(t, 0, km.Reconcile(packet))
}

func TestNormalizePath(t *testing.T) {
	p := []uint32{1, 2, 3, 1, 2, 3, 0, 9}
	assert.Equal(t, []uint32{1, 2, 3, 0, 9}, normalizePath(p))

	// non-duplicated paths pass through untouched
	q := []uint32{1, 2, 3, 4, 5, 6, 0, 9}
	assert.Equal(t, q, normalizePath(q))
	short := []uint32{1, 2, 3}
	assert.Equal(t, short, normalizePath(short))
}

func TestSignEndToEnd(t *testing.T) {
	km := newTestKeys(t)

	// fund a taproot output of our own account keychain
	path := []uint32{Bip86Purpose + h, 0 + h, 0 + h, 0, 0}
	key, err := km.derivePath(path)
	require.NoError(t, err)
	pub, err := key.ECPubKey()
	require.NoError(t, err)
	pkScript, err := payToTaprootScript(txscript.ComputeTaprootKeyNoScript(pub))
	require.NoError(t, err)

	tx := wire.NewMsgTx(2)
	prev := wire.OutPoint{Hash: chainhash.HashH([]byte("funding")), Index: 1}
	tx.AddTxIn(wire.NewTxIn(&prev, nil, nil))
	tx.AddTxOut(wire.NewTxOut(90_000, pkScript))

	packet, err := psbt.NewFromUnsignedTx(tx)
	require.NoError(t, err)
	packet.Inputs[0].WitnessUtxo = wire.NewTxOut(100_000, pkScript)
	packet.Inputs[0].TaprootBip32Derivation = []*psbt.TaprootBip32Derivation{{
		XOnlyPubKey: schnorr.SerializePubKey(pub),
		Bip32Path:   path,
	}}

	b64, err := packet.B64Encode()
	require.NoError(t, err)

	signer := NewSigner(km, NewLocalKeySpendSigner(km))
	signedB64, err := signer.Sign(b64)
	require.NoError(t, err)
	require.NotEmpty(t, signedB64)

	signed, err := psbt.NewFromRawBytes(strings.NewReader(signedB64), true)
	require.NoError(t, err)
	in := signed.Inputs[0]
	assert.True(t, len(in.TaprootKeySpendSig) > 0 || len(in.FinalScriptWitness) > 0)
}

func TestSignRejectsUndecodable(t *testing.T) {
	km := newTestKeys(t)
	signer := NewSigner(km, NewLocalKeySpendSigner(km))

	_, err := signer.Sign("broken")
	assert.ErrorIs(t, err, ErrPsbtUndecodable)
}
