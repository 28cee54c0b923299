package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/duskhelm/hivemind/internal/graph"
)

// Snapshot describes one stored graph export without its payload.
type Snapshot struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	NodeCount int    `json:"nodeCount"`
	EdgeCount int    `json:"edgeCount"`
	CreatedAt int64  `json:"createdAt"`
}

// SaveSnapshot serializes a graph export under the given name. Repeated
// saves under the same name keep history; loads return the newest.
func (db *DB) SaveSnapshot(name string, data *graph.Export) (*Snapshot, error) {
	if data == nil {
		return nil, fmt.Errorf("save snapshot: nil export")
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}

	now := time.Now().UnixMilli()
	result, err := db.Exec(`
		INSERT INTO snapshots (name, payload, node_count, edge_count, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, name, payload, len(data.Nodes), len(data.Edges), now)
	if err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}

	id, _ := result.LastInsertId()
	return &Snapshot{
		ID:        id,
		Name:      name,
		NodeCount: len(data.Nodes),
		EdgeCount: len(data.Edges),
		CreatedAt: now,
	}, nil
}

// LoadSnapshot returns the newest export saved under name, or nil if no
// snapshot with that name exists.
func (db *DB) LoadSnapshot(name string) (*graph.Export, error) {
	var payload []byte
	err := db.QueryRow(`
		SELECT payload FROM snapshots WHERE name = ?
		ORDER BY created_at DESC, id DESC LIMIT 1
	`, name).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var data graph.Export
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot %q: %w", name, err)
	}
	return &data, nil
}

// ListSnapshots returns snapshot metadata, newest first.
func (db *DB) ListSnapshots() ([]Snapshot, error) {
	rows, err := db.Query(`
		SELECT id, name, node_count, edge_count, created_at
		FROM snapshots ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.Name, &s.NodeCount, &s.EdgeCount, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteSnapshots removes all snapshots saved under name and returns the
// number deleted.
func (db *DB) DeleteSnapshots(name string) (int, error) {
	result, err := db.Exec("DELETE FROM snapshots WHERE name = ?", name)
	if err != nil {
		return 0, fmt.Errorf("delete snapshots: %w", err)
	}
	n, _ := result.RowsAffected()
	return int(n), nil
}
