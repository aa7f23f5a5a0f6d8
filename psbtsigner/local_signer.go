// In-process TxSigner for wallets that hold their own seed. Key-spend
// only: every input must be a taproot output of one of our keychains,
// which is all the wallet engine ever produces. External engines
// (hardware, remote signing services) replace this behind TxSigner.

package psbtsigner

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/txscript"
	logger "github.com/sirupsen/logrus"
)

var (
	ErrInputMissingUtxo       = errors.New("input carries no witness utxo")
	ErrInputMissingDerivation = errors.New("input carries no taproot derivation entry")
)

type LocalKeySpendSigner struct {
	keys *KeyMaterial
}

func NewLocalKeySpendSigner(keys *KeyMaterial) *LocalKeySpendSigner {
	return &LocalKeySpendSigner{keys: keys}
}

// SignPsbt signs every input with a key spend and finalizes the packet.
// Descriptors are not consulted: the per-input derivation paths already
// name the exact keys, and reconciliation has made them trustworthy.
func (l *LocalKeySpendSigner) SignPsbt(packet *psbt.Packet, _ *Descriptors) (*psbt.Packet, error) {
	fetcher := txscript.NewMultiPrevOutFetcher(nil)
	for i, txIn := range packet.UnsignedTx.TxIn {
		if packet.Inputs[i].WitnessUtxo == nil {
			return nil, fmt.Errorf("input %d: %w", i, ErrInputMissingUtxo)
		}
		fetcher.AddPrevOut(txIn.PreviousOutPoint, packet.Inputs[i].WitnessUtxo)
	}
	sigHashes := txscript.NewTxSigHashes(packet.UnsignedTx, fetcher)

	for i := range packet.Inputs {
		if err := l.signInput(packet, i, sigHashes); err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
	}

	if err := psbt.MaybeFinalizeAll(packet); err != nil {
		// Unfinalizable inputs are reported but the signatures stand;
		// the wallet engine finalizes on submission.
		logger.Debugf("packet not finalizable locally: %v", err)
	}
	return packet, nil
}

func (l *LocalKeySpendSigner) signInput(packet *psbt.Packet, idx int, sigHashes *txscript.TxSigHashes) error {
	in := &packet.Inputs[idx]
	if len(in.TaprootBip32Derivation) == 0 {
		return ErrInputMissingDerivation
	}

	key, err := l.keys.derivePath(normalizePath(in.TaprootBip32Derivation[0].Bip32Path))
	if err != nil {
		return err
	}
	priv, err := key.ECPrivKey()
	if err != nil {
		return err
	}

	prevOut := in.WitnessUtxo
	sig, err := txscript.RawTxInTaprootSignature(
		packet.UnsignedTx, sigHashes, idx, prevOut.Value,
		prevOut.PkScript, nil, in.SighashType, priv,
	)
	if err != nil {
		return err
	}
	in.TaprootKeySpendSig = sig
	return nil
}

var _ TxSigner = (*LocalKeySpendSigner)(nil)
