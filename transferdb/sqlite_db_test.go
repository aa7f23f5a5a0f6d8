package transferdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utexo-io/rgb-bridge-go/transfermgr"
)

func newMemoryStore(t *testing.T) *SQLiteRequestStore {
	store, err := NewSQLiteRequestStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndGet(t *testing.T) {
	store := newMemoryStore(t)

	req := &transfermgr.TransferRequest{
		OpId:         "op-1",
		Kind:         transfermgr.KindAssetSend,
		Invoice:      "rgb:inv",
		AssetId:      "rgb:usd-asset",
		Amount:       1500000,
		Route:        transfermgr.RouteBridged,
		RecipientId:  "utxob:r1",
		UnsignedPsbt: "psbt-unsigned",
	}
	require.NoError(t, store.Save(req))

	got, ok, err := store.GetByOpId("op-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, req.Invoice, got.Invoice)
	assert.Equal(t, req.Amount, got.Amount)
	assert.Equal(t, transfermgr.RouteBridged, got.Route)
	assert.Equal(t, transfermgr.PhaseBegin, got.Phase())

	_, ok, err = store.GetByOpId("op-none")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveAdvancesPhase(t *testing.T) {
	store := newMemoryStore(t)

	req := &transfermgr.TransferRequest{
		OpId:         "op-2",
		Kind:         transfermgr.KindAssetSend,
		UnsignedPsbt: "u",
	}
	require.NoError(t, store.Save(req))

	req.SignedPsbt = "s"
	require.NoError(t, store.Save(req))
	got, _, err := store.GetByOpId("op-2")
	require.NoError(t, err)
	assert.Equal(t, transfermgr.PhaseSign, got.Phase())

	req.Txid = "txid"
	require.NoError(t, store.Save(req))
	got, _, err = store.GetByOpId("op-2")
	require.NoError(t, err)
	assert.Equal(t, transfermgr.PhaseEnd, got.Phase())
}

func TestListUnfinished(t *testing.T) {
	store := newMemoryStore(t)

	done := &transfermgr.TransferRequest{OpId: "op-done", Kind: transfermgr.KindBtcSend, SignedPsbt: "s", Txid: "t"}
	pending := &transfermgr.TransferRequest{OpId: "op-pending", Kind: transfermgr.KindAssetSend, UnsignedPsbt: "u"}
	require.NoError(t, store.Save(done))
	require.NoError(t, store.Save(pending))

	unfinished, err := store.ListUnfinished()
	require.NoError(t, err)
	require.Len(t, unfinished, 1)
	assert.Equal(t, "op-pending", unfinished[0].OpId)
}
