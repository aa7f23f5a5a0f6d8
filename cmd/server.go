// Server = rgb wallet node client + bridge correlator + psbt signer +
// transfer orchestrator + request db + http reporter.
// All components are configured via environment variables (strings!).

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/utexo-io/rgb-bridge-go/assetregistry"
	"github.com/utexo-io/rgb-bridge-go/bridgeman"
	"github.com/utexo-io/rgb-bridge-go/psbtsigner"
	"github.com/utexo-io/rgb-bridge-go/reporter"
	"github.com/utexo-io/rgb-bridge-go/rgbman"
	"github.com/utexo-io/rgb-bridge-go/transferdb"
	"github.com/utexo-io/rgb-bridge-go/transfermgr"
)

// Default params for server.
// More often we don't recommend users to tweak those.
// So we list them here.
const (
	defaultFeeRate          = 1.5
	defaultMinConfirmations = 1
)

// Keep the configuration's fields as "text" as possible.
// Its easier to load it from env vars or a config file.
type CoordinatorConfig struct {
	// local wallet side
	Network        string // "utexo", "lightning" or "signet"
	NodeUrl        string // rgb wallet node REST url
	SenderAddress  string // identifies this wallet towards the bridge
	SignerMnemonic string // BIP-39 mnemonic of the signing wallet

	// bridge side
	BridgeUrl string // bridge service REST url

	// request db side
	DbFilePath string // db file path

	// Http side
	HttpIp   string // eg. 0.0.0.0
	HttpPort string // eg. 8080
}

// CoordinatorServer holds the objects that consists of the coordinator.
type CoordinatorServer struct {
	MyWallet       *rgbman.NodeClient
	MyBridge       *bridgeman.Correlator
	MySigner       *psbtsigner.Signer
	MyRequestStore *transferdb.SQLiteRequestStore
	MyOrchestrator *transfermgr.Orchestrator
}

// NewCoordinatorServer creates a new coordinator server.
// ctx is used for parental context to cancel the operation of the server.
func NewCoordinatorServer(cc *CoordinatorConfig, ctx context.Context) (*CoordinatorServer, error) {
	network := assetregistry.NetworkId(cc.Network)
	if !network.Valid() {
		return nil, fmt.Errorf("unknown network %q", cc.Network)
	}

	// 1) Create the wallet node client.
	myWallet := rgbman.NewNodeClient(cc.NodeUrl)

	// 2) Create the bridge client + correlator on top of it.
	myBridge := bridgeman.NewCorrelator(bridgeman.NewClient(cc.BridgeUrl))

	// 3) Create the psbt signer from the wallet mnemonic.
	keys, err := psbtsigner.NewKeyMaterialFromMnemonic(cc.SignerMnemonic, "", network)
	if err != nil {
		logger.Errorf("cannot create signing keys: %v", err)
		return nil, err
	}
	mySigner := psbtsigner.NewSigner(keys, psbtsigner.NewLocalKeySpendSigner(keys))

	// 4) Create the request store.
	myStore, err := transferdb.NewSQLiteRequestStore(cc.DbFilePath)
	if err != nil {
		logger.Errorf("cannot create request store %v", err)
		return nil, err
	}

	// 5) Create the orchestrator over all of the above.
	myRegistry := assetregistry.NewRegistry(assetregistry.DefaultPresets())
	myOrchestrator := transfermgr.New(
		transfermgr.Config{
			Network:          network,
			SenderAddress:    cc.SenderAddress,
			FeeRate:          defaultFeeRate,
			MinConfirmations: defaultMinConfirmations,
		},
		myWallet,
		myBridge,
		mySigner,
		myRegistry,
		myStore,
	)

	// *** Setup a http server to report status ***
	http_server := reporter.NewHttpReporter(
		cc.HttpIp,
		cc.HttpPort,
		myOrchestrator,
		myStore,
	)
	// Turn on the http server
	go http_server.Run()

	// Give it some time to start the http server
	time.Sleep(1 * time.Second)
	// *** End the setup of http server ***

	return &CoordinatorServer{
		MyWallet:       myWallet,
		MyBridge:       myBridge,
		MySigner:       mySigner,
		MyRequestStore: myStore,
		MyOrchestrator: myOrchestrator,
	}, nil
}

// Create, then start the coordinator server and wait.
// Press Ctrl-C to kill the server.
func StartCoordinatorServerAndWait(cc *CoordinatorConfig) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up a signal channel to listen for Ctrl-C (SIGINT) or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	// Launch a new goroutine to handle the signal
	go func() {
		sig := <-sigCh
		fmt.Printf("Received signal: %v, cancelling context...\n", sig)
		cancel()
	}()

	server, err := NewCoordinatorServer(cc, ctx)
	if err != nil {
		logger.Fatalf("failed to create coordinator server: %v", err)
		return
	}
	defer server.MyRequestStore.Close()

	// block until the context is cancelled
	<-ctx.Done()
}
