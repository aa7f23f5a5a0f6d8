// Signer drives one signing request through classify -> derive ->
// reconcile -> sign. The cryptographic work itself is delegated to a
// TxSigner, so hardware or remote signing engines plug in behind the
// same interface.

package psbtsigner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/psbt"
	logger "github.com/sirupsen/logrus"
)

var ErrPsbtUndecodable = errors.New("unsigned transaction cannot be decoded")

// TxSigner is the external transaction-construction engine consumed as
// a black box. It finalizes and validates signatures itself; its output
// is returned verbatim.
type TxSigner interface {
	SignPsbt(packet *psbt.Packet, descriptors *Descriptors) (*psbt.Packet, error)
}

type Signer struct {
	keys   *KeyMaterial
	engine TxSigner
}

func NewSigner(keys *KeyMaterial, engine TxSigner) *Signer {
	return &Signer{keys: keys, engine: engine}
}

// Sign takes a base64 PSBT and returns the signed base64 PSBT. The
// input packet is never mutated on failure paths after the engine is
// invoked; a failed call can simply be retried with the same input.
func (s *Signer) Sign(psbtB64 string) (string, error) {
	packet, err := psbt.NewFromRawBytes(strings.NewReader(psbtB64), true)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPsbtUndecodable, err)
	}

	shape := Classify(packet)
	descriptors, err := s.keys.DeriveDescriptors(shape)
	if err != nil {
		return "", err
	}

	if shape == ShapeAssetSend {
		repaired := s.keys.Reconcile(packet)
		if repaired > 0 {
			logger.Debugf("reconciled %d input(s) before signing", repaired)
		}
	}

	signed, err := s.engine.SignPsbt(packet, descriptors)
	if err != nil {
		return "", err
	}
	return signed.B64Encode()
}
