// Package exchange implements the portable import/export formats: JSON
// snapshots, the inventory CSV, and the budget report CSV.
package exchange

import (
	"encoding/json"
	"fmt"
	"time"

	"inventory/internal/core"
)

// Snapshot is the portable JSON export: both collections plus the export
// timestamp.
type Snapshot struct {
	Rooms    []core.Room `json:"rooms"`
	Items    []core.Item `json:"items"`
	Exported time.Time   `json:"exported"`
}

// ExportJSON renders a pretty-printed snapshot of both collections.
func ExportJSON(rooms []core.Room, items []core.Item, now time.Time) ([]byte, error) {
	if rooms == nil {
		rooms = []core.Room{}
	}
	if items == nil {
		items = []core.Item{}
	}
	data, err := json.MarshalIndent(Snapshot{Rooms: rooms, Items: items, Exported: now.UTC()}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// ImportJSON is the inverse of ExportJSON; the exported timestamp is
// ignored.
func ImportJSON(data []byte) ([]core.Room, []core.Item, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, nil, fmt.Errorf("parse snapshot: %w", core.ErrCorruptData)
	}
	return snap.Rooms, snap.Items, nil
}

// JSONFilename names the downloaded snapshot, e.g. inventory-2026-08-28.json.
func JSONFilename(now time.Time) string {
	return "inventory-" + now.Format("2006-01-02") + ".json"
}
