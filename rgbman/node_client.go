// HTTP adapter implementing Wallet against a remote RGB node daemon.
// Pure boundary plumbing: JSON in, JSON out, no engine logic here.

package rgbman

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	logger "github.com/sirupsen/logrus"
)

const defaultRequestTimeout = 30 * time.Second

type NodeClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewNodeClient(baseURL string) *NodeClient {
	return &NodeClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}
}

// NodeError is the daemon's own rejection, carried through verbatim.
type NodeError struct {
	StatusCode int
	Message    string `json:"error"`
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("rgb node rejected request (http %d): %s", e.StatusCode, e.Message)
}

func (c *NodeClient) post(ctx context.Context, route string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+route, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		nodeErr := &NodeError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(raw, nodeErr); err != nil || nodeErr.Message == "" {
			nodeErr.Message = string(raw)
		}
		logger.WithField("route", route).Warnf("rgb node error: %v", nodeErr)
		return nodeErr
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

type receiveRequest struct {
	AssetId          string `json:"asset_id,omitempty"`
	Amount           uint64 `json:"amount,omitempty"`
	DurationSeconds  uint32 `json:"duration_seconds,omitempty"`
	MinConfirmations uint8  `json:"min_confirmations,omitempty"`
}

func (c *NodeClient) BlindReceive(ctx context.Context, assetId string, amount uint64, durationSeconds uint32, minConfirmations uint8) (*InvoiceData, error) {
	out := &InvoiceData{}
	err := c.post(ctx, "/blindreceive", &receiveRequest{assetId, amount, durationSeconds, minConfirmations}, out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *NodeClient) WitnessReceive(ctx context.Context, assetId string, amount uint64, durationSeconds uint32, minConfirmations uint8) (*InvoiceData, error) {
	out := &InvoiceData{}
	err := c.post(ctx, "/witnessreceive", &receiveRequest{assetId, amount, durationSeconds, minConfirmations}, out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *NodeClient) DecodeInvoice(ctx context.Context, invoice string) (*InvoiceData, error) {
	out := &InvoiceData{}
	err := c.post(ctx, "/decodergbinvoice", map[string]string{"invoice": invoice}, out)
	if err != nil {
		return nil, err
	}
	if out.Invoice == "" {
		out.Invoice = invoice
	}
	return out, nil
}

func (c *NodeClient) SendBegin(ctx context.Context, req *SendRequest) (string, error) {
	var out struct {
		Psbt string `json:"psbt"`
	}
	if err := c.post(ctx, "/sendbegin", req, &out); err != nil {
		return "", err
	}
	return out.Psbt, nil
}

func (c *NodeClient) SendEnd(ctx context.Context, signedPsbt string) (*SendResult, error) {
	out := &SendResult{}
	err := c.post(ctx, "/sendend", map[string]string{"signed_psbt": signedPsbt}, out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *NodeClient) SendBtcBegin(ctx context.Context, address string, amountSat uint64, feeRate float64) (string, error) {
	payload := map[string]any{
		"address":  address,
		"amount":   amountSat,
		"fee_rate": feeRate,
	}
	var out struct {
		Psbt string `json:"psbt"`
	}
	if err := c.post(ctx, "/sendbtcbegin", payload, &out); err != nil {
		return "", err
	}
	return out.Psbt, nil
}

func (c *NodeClient) SendBtcEnd(ctx context.Context, signedPsbt string) (string, error) {
	var out struct {
		Txid string `json:"txid"`
	}
	if err := c.post(ctx, "/sendbtcend", map[string]string{"signed_psbt": signedPsbt}, &out); err != nil {
		return "", err
	}
	return out.Txid, nil
}

func (c *NodeClient) CreateUtxosBegin(ctx context.Context, upTo bool, num uint8, size uint32, feeRate float64) (string, error) {
	payload := map[string]any{
		"up_to":    upTo,
		"num":      num,
		"size":     size,
		"fee_rate": feeRate,
	}
	var out struct {
		Psbt string `json:"psbt"`
	}
	if err := c.post(ctx, "/createutxosbegin", payload, &out); err != nil {
		return "", err
	}
	return out.Psbt, nil
}

func (c *NodeClient) CreateUtxosEnd(ctx context.Context, signedPsbt string) (uint8, error) {
	var out struct {
		Created uint8 `json:"created"`
	}
	if err := c.post(ctx, "/createutxosend", map[string]string{"signed_psbt": signedPsbt}, &out); err != nil {
		return 0, err
	}
	return out.Created, nil
}

func (c *NodeClient) ListTransfers(ctx context.Context, assetId string) ([]Transfer, error) {
	var out struct {
		Transfers []Transfer `json:"transfers"`
	}
	if err := c.post(ctx, "/listtransfers", map[string]string{"asset_id": assetId}, &out); err != nil {
		return nil, err
	}
	return out.Transfers, nil
}

func (c *NodeClient) GetAssetBalance(ctx context.Context, assetId string) (*Balance, error) {
	out := &Balance{}
	err := c.post(ctx, "/assetbalance", map[string]string{"asset_id": assetId}, out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *NodeClient) Refresh(ctx context.Context) error {
	return c.post(ctx, "/refreshtransfers", map[string]string{}, nil)
}

// compile-time check that the adapter satisfies the engine boundary
var _ Wallet = (*NodeClient)(nil)
