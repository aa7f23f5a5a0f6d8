// HTTP client for the bridge service, base path /bridge.
// Thin request/response plumbing; correlation logic lives in
// correlator.go.

package bridgeman

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultRequestTimeout = 30 * time.Second

type Client struct {
	baseURL    string // e.g. https://bridge.example.com/bridge
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}
}

func (c *Client) do(ctx context.Context, method, route string, payload, out any) (int, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return 0, err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+route, body)
	if err != nil {
		return 0, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, fmt.Errorf("bridge service returned http %d: %s", resp.StatusCode, raw)
	}
	if out == nil {
		return resp.StatusCode, nil
	}
	return resp.StatusCode, json.Unmarshal(raw, out)
}

// BridgeInSignature asks the bridge to admit a transfer into the
// settlement network, delivering to req.Destination.
func (c *Client) BridgeInSignature(ctx context.Context, req *BridgeInRequest) (*BridgeInResponse, error) {
	out := &BridgeInResponse{}
	if _, err := c.do(ctx, http.MethodPost, "/bridge-in-signature", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// TransferByMainnetInvoice is the primary transfer lookup. A 404 is the
// legitimate "no such transfer" outcome and yields (nil, nil).
func (c *Client) TransferByMainnetInvoice(ctx context.Context, invoice, networkId string) (*BridgeTransfer, error) {
	q := url.Values{}
	q.Set("mainnet_invoice", invoice)
	q.Set("network_id", networkId)

	out := &BridgeTransfer{}
	status, err := c.do(ctx, http.MethodGet, "/transfer-by-mainnet-invoice?"+q.Encode(), nil, out)
	if status == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// TransfersHistory lists past transfers touching the given address.
// Status fields of the returned records have already been run through
// the status-byte table.
func (c *Client) TransfersHistory(ctx context.Context, networkId string, offset, limit int, address string) ([]*BridgeTransfer, error) {
	q := url.Values{}
	q.Set("network_id", networkId)
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))
	q.Set("address", address)

	var out struct {
		Transfers []historyEntry `json:"transfers"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/transfers/history?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}

	transfers := make([]*BridgeTransfer, 0, len(out.Transfers))
	for i := range out.Transfers {
		transfers = append(transfers, out.Transfers[i].toTransfer())
	}
	return transfers, nil
}

// ReceiverInvoice fetches the invoice the bridge issued on the receiving
// network for an accepted transfer.
func (c *Client) ReceiverInvoice(ctx context.Context, transferId, networkId string) (string, error) {
	var out struct {
		Invoice string `json:"invoice"`
	}
	route := fmt.Sprintf("/receiver-invoice/%s/%s", url.PathEscape(transferId), url.PathEscape(networkId))
	if _, err := c.do(ctx, http.MethodGet, route, nil, &out); err != nil {
		return "", err
	}
	return out.Invoice, nil
}
