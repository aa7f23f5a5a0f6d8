// Orchestrator is the top-level state driver for asset transfers. Each
// operation family follows the same two-phase shape: Begin builds an
// unsigned transaction without touching chain state, Sign signs it, End
// submits it to the wallet engine which broadcasts and records the
// transfer. Phases are stateless here; callers thread a TransferRequest
// through them and may retry any phase in isolation.

package transfermgr

import (
	logger "github.com/sirupsen/logrus"

	"github.com/utexo-io/rgb-bridge-go/assetregistry"
	"github.com/utexo-io/rgb-bridge-go/rgbman"
)

// defaultWitnessAmountSat is the on-chain output value attached to sends
// whose recipient invoice commits to an actual output instead of a
// blinded one.
const defaultWitnessAmountSat = 1000

// witnessRecipientPrefix marks recipient ids that need witness data.
const witnessRecipientPrefix = "wvout:"

type Config struct {
	// Network is the local network the orchestrator operates on
	// (the settlement network in production).
	Network assetregistry.NetworkId
	// SenderAddress identifies this wallet towards the bridge service.
	SenderAddress string
	// FeeRate is the default fee rate for built transactions.
	FeeRate float64
	// MinConfirmations for receive invoices and sends.
	MinConfirmations uint8
}

type Orchestrator struct {
	cfg      Config
	wallet   rgbman.Wallet
	bridge   Bridge
	signer   Signer
	registry *assetregistry.Registry
	store    RequestStore // nil disables persistence
}

func New(cfg Config, wallet rgbman.Wallet, bridge Bridge, signer Signer, registry *assetregistry.Registry, store RequestStore) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		wallet:   wallet,
		bridge:   bridge,
		signer:   signer,
		registry: registry,
		store:    store,
	}
}

// persist writes an advisory snapshot of the request. Persistence
// failures never fail the transfer; they only cost recoverability.
func (o *Orchestrator) persist(req *TransferRequest) {
	if o.store == nil {
		return
	}
	if err := o.store.Save(req); err != nil {
		logger.WithField("op", req.OpId).Warnf("cannot persist transfer request: %v", err)
	}
}

// signRequest runs the Sign phase shared by every operation family.
func (o *Orchestrator) signRequest(req *TransferRequest) error {
	if req.UnsignedPsbt == "" {
		return phaseErr(PhaseSign, ErrPhaseOutOfOrder)
	}
	signed, err := o.signer.Sign(req.UnsignedPsbt)
	if err != nil {
		return phaseErr(PhaseSign, err)
	}
	req.SignedPsbt = signed
	o.persist(req)
	return nil
}

// SignTransfer signs the unsigned transaction of any begun request.
// Exposed for callers that route the PSBT to an external signer flow
// and for the do-all entry points.
func (o *Orchestrator) SignTransfer(req *TransferRequest) error {
	return o.signRequest(req)
}
