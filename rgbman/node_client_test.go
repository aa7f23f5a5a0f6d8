package rgbman

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNode(t *testing.T, handler http.HandlerFunc) (*NodeClient, func()) {
	srv := httptest.NewServer(handler)
	return NewNodeClient(srv.URL), srv.Close
}

func TestDecodeInvoice(t *testing.T) {
	client, close := newTestNode(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/decodergbinvoice", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "rgb:invoice-xyz", req["invoice"])

		json.NewEncoder(w).Encode(&InvoiceData{
			RecipientId: "r42",
			AssetId:     "rgb:aaa",
			Assignment:  Assignment{Kind: AssignmentFungible, Amount: 100},
			Network:     "utexo",
		})
	})
	defer close()

	data, err := client.DecodeInvoice(context.Background(), "rgb:invoice-xyz")
	require.NoError(t, err)
	assert.Equal(t, "r42", data.RecipientId)
	assert.Equal(t, uint64(100), data.Assignment.Amount)
	// original invoice string is carried when the daemon omits it
	assert.Equal(t, "rgb:invoice-xyz", data.Invoice)
}

func TestNodeErrorSurfaced(t *testing.T) {
	client, close := newTestNode(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "insufficient allocations"})
	})
	defer close()

	_, err := client.SendBegin(context.Background(), &SendRequest{Invoice: "rgb:inv"})
	require.Error(t, err)

	nodeErr, ok := err.(*NodeError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, nodeErr.StatusCode)
	assert.Contains(t, nodeErr.Message, "insufficient allocations")
}

func TestListTransfers(t *testing.T) {
	client, close := newTestNode(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string][]Transfer{
			"transfers": {
				{Idx: 1, RecipientId: "r1", Status: StatusSettled, Kind: KindReceiveBlind},
				{Idx: 2, RecipientId: "r2", Status: StatusWaitingConfirmations, Kind: KindSend},
			},
		})
	})
	defer close()

	transfers, err := client.ListTransfers(context.Background(), "rgb:aaa")
	require.NoError(t, err)
	require.Len(t, transfers, 2)
	assert.True(t, transfers[1].Status.Pending())
	assert.False(t, transfers[0].Status.Pending())
}
