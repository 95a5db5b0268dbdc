// Package storage implements the persistence gateway: a key-value
// snapshot store backed by SQLite. The two collections live under two
// logical keys as JSON arrays, mirroring the layout of the exported
// snapshot format.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"inventory/internal/core"

	_ "modernc.org/sqlite"
)

const (
	KeyRooms = "inventoryRooms"
	KeyItems = "inventoryItems"

	backupKeyPrefix = "inventoryBackup_"
)

type SnapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(dbPath string) (*SnapshotRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SnapshotRepository{db: db}, nil
}

func (r *SnapshotRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load reads both collection keys. A missing key yields an empty
// collection. A payload that fails to parse is replaced by an empty
// collection and reported through an error wrapping core.ErrCorruptData;
// the other key's data is still returned so the application keeps
// running on whatever survived.
func (r *SnapshotRepository) Load(ctx context.Context) ([]core.Room, []core.Item, error) {
	var loadErrs []error

	rooms := []core.Room{}
	if payload, ok, err := r.readKey(ctx, KeyRooms); err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", KeyRooms, errors.Join(core.ErrStorage, err))
	} else if ok {
		if err := json.Unmarshal([]byte(payload), &rooms); err != nil {
			slog.ErrorContext(ctx, "Corrupt rooms snapshot, falling back to empty",
				"key", KeyRooms, "error", err)
			rooms = []core.Room{}
			loadErrs = append(loadErrs, fmt.Errorf("%s: %w", KeyRooms, core.ErrCorruptData))
		}
	}

	items := []core.Item{}
	if payload, ok, err := r.readKey(ctx, KeyItems); err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", KeyItems, errors.Join(core.ErrStorage, err))
	} else if ok {
		if err := json.Unmarshal([]byte(payload), &items); err != nil {
			slog.ErrorContext(ctx, "Corrupt items snapshot, falling back to empty",
				"key", KeyItems, "error", err)
			items = []core.Item{}
			loadErrs = append(loadErrs, fmt.Errorf("%s: %w", KeyItems, core.ErrCorruptData))
		}
	}

	return rooms, items, errors.Join(loadErrs...)
}

// Save overwrites both collection keys in a single transaction, so a
// reader never observes rooms and items from different generations.
func (r *SnapshotRepository) Save(ctx context.Context, rooms []core.Room, items []core.Item) error {
	roomsJSON, err := json.Marshal(rooms)
	if err != nil {
		return fmt.Errorf("marshal rooms: %w", err)
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", errors.Join(core.ErrStorage, err))
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for key, payload := range map[string][]byte{KeyRooms: roomsJSON, KeyItems: itemsJSON} {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO snapshots (key, payload, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
			key, string(payload), now); err != nil {
			return fmt.Errorf("write %s: %w", key, errors.Join(core.ErrStorage, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", errors.Join(core.ErrStorage, err))
	}
	return nil
}

// Backup copies the live keys under a timestamped backup key and returns
// the key name. The live keys are untouched.
func (r *SnapshotRepository) Backup(ctx context.Context) (string, error) {
	rooms, items, err := r.Load(ctx)
	if err != nil && !errors.Is(err, core.ErrCorruptData) {
		return "", fmt.Errorf("backup read: %w", err)
	}

	payload, err := json.Marshal(struct {
		Rooms     []core.Room `json:"rooms"`
		Items     []core.Item `json:"items"`
		Timestamp time.Time   `json:"timestamp"`
	}{rooms, items, time.Now().UTC()})
	if err != nil {
		return "", fmt.Errorf("marshal backup: %w", err)
	}

	key := fmt.Sprintf("%s%d", backupKeyPrefix, time.Now().UnixMilli())
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO snapshots (key, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		key, string(payload), time.Now().UTC()); err != nil {
		return "", fmt.Errorf("write backup: %w", errors.Join(core.ErrStorage, err))
	}

	slog.InfoContext(ctx, "Snapshot backup written", "key", key,
		"rooms", len(rooms), "items", len(items))
	return key, nil
}

func (r *SnapshotRepository) readKey(ctx context.Context, key string) (string, bool, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM snapshots WHERE key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return payload, true, nil
}
