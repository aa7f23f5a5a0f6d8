// SQLite persistence of in-flight two-phase transfer requests.
// Snapshots are advisory: they let a request begun in one process be
// picked up, signed and submitted by another, and they survive a crash
// between phases. The orchestrator writes them; it never reads them
// back to make decisions.

package transferdb

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/utexo-io/rgb-bridge-go/transfermgr"
)

type SQLiteRequestStore struct {
	db *sql.DB
}

func NewSQLiteRequestStore(dbPath string) (*SQLiteRequestStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	store := &SQLiteRequestStore{db: db}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteRequestStore) init() error {
	query := `
	CREATE TABLE IF NOT EXISTS transfer_request (
		op_id TEXT PRIMARY KEY,
		kind TEXT,
		invoice TEXT,
		address TEXT,
		asset_id TEXT,
		amount INTEGER,
		route TEXT,
		bridge_transfer_id TEXT,
		recipient_id TEXT,
		unsigned_psbt TEXT,
		signed_psbt TEXT,
		txid TEXT,
		batch_transfer_idx INTEGER,
		utxos_created INTEGER,
		phase TEXT,
		updated_at INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_recipient_id ON transfer_request(recipient_id);
	CREATE INDEX IF NOT EXISTS idx_phase ON transfer_request(phase);
	`
	_, err := s.db.Exec(query)
	return err
}

func (s *SQLiteRequestStore) Close() error {
	return s.db.Close()
}

// Save upserts the latest snapshot of a request, one row per OpId.
func (s *SQLiteRequestStore) Save(req *transfermgr.TransferRequest) error {
	query := `
	INSERT INTO transfer_request (
		op_id, kind, invoice, address, asset_id, amount, route,
		bridge_transfer_id, recipient_id, unsigned_psbt, signed_psbt,
		txid, batch_transfer_idx, utxos_created, phase, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(op_id) DO UPDATE SET
		signed_psbt = excluded.signed_psbt,
		txid = excluded.txid,
		batch_transfer_idx = excluded.batch_transfer_idx,
		utxos_created = excluded.utxos_created,
		phase = excluded.phase,
		updated_at = excluded.updated_at;
	`
	_, err := s.db.Exec(query,
		req.OpId, string(req.Kind), req.Invoice, req.Address, req.AssetId,
		req.Amount, string(req.Route), req.BridgeTransferId, req.RecipientId,
		req.UnsignedPsbt, req.SignedPsbt, req.Txid, req.BatchTransferIdx,
		req.UtxosCreated, string(req.Phase()), time.Now().Unix(),
	)
	return err
}

// GetByOpId restores one request snapshot.
func (s *SQLiteRequestStore) GetByOpId(opId string) (*transfermgr.TransferRequest, bool, error) {
	row := s.db.QueryRow(`
	SELECT op_id, kind, invoice, address, asset_id, amount, route,
		bridge_transfer_id, recipient_id, unsigned_psbt, signed_psbt,
		txid, batch_transfer_idx, utxos_created
	FROM transfer_request WHERE op_id = ?;
	`, opId)

	req, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return req, true, nil
}

// ListUnfinished lists requests that never reached the End phase.
func (s *SQLiteRequestStore) ListUnfinished() ([]*transfermgr.TransferRequest, error) {
	rows, err := s.db.Query(`
	SELECT op_id, kind, invoice, address, asset_id, amount, route,
		bridge_transfer_id, recipient_id, unsigned_psbt, signed_psbt,
		txid, batch_transfer_idx, utxos_created
	FROM transfer_request WHERE phase != ? ORDER BY updated_at;
	`, string(transfermgr.PhaseEnd))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*transfermgr.TransferRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRequest(row scanner) (*transfermgr.TransferRequest, error) {
	req := &transfermgr.TransferRequest{}
	var kind, route string
	err := row.Scan(
		&req.OpId, &kind, &req.Invoice, &req.Address, &req.AssetId,
		&req.Amount, &route, &req.BridgeTransferId, &req.RecipientId,
		&req.UnsignedPsbt, &req.SignedPsbt, &req.Txid,
		&req.BatchTransferIdx, &req.UtxosCreated,
	)
	if err != nil {
		return nil, err
	}
	req.Kind = transfermgr.OperationKind(kind)
	req.Route = transfermgr.RouteKind(route)
	return req, nil
}

var _ transfermgr.RequestStore = (*SQLiteRequestStore)(nil)
