package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"inventory/internal/core"
)

func newTestRepo(t *testing.T) *SnapshotRepository {
	t.Helper()
	repo, err := NewSnapshotRepository(filepath.Join(t.TempDir(), "inventory.db"))
	if err != nil {
		t.Fatalf("open repo: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestLoadEmptyDatabase(t *testing.T) {
	repo := newTestRepo(t)
	rooms, items, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(rooms) != 0 || len(items) != 0 {
		t.Fatalf("expected empty collections, got %d rooms / %d items", len(rooms), len(items))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	rooms := []core.Room{{ID: "r1", Name: "Kitchen", Icon: core.IconStove, Budget: core.Money{Cents: 1000000}}}
	items := []core.Item{{
		ID: "i1", Name: "Oven", Category: core.CategoryAppliances,
		RoomID: "r1", Price: core.Money{Cents: 50000}, Quantity: 2,
		Status: core.StatusOrdered, DeliveryDate: core.NewDate(2026, 9, 1),
	}}

	if err := repo.Save(ctx, rooms, items); err != nil {
		t.Fatalf("save: %v", err)
	}

	gotRooms, gotItems, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(gotRooms) != 1 || gotRooms[0].Budget.Cents != 1000000 {
		t.Fatalf("rooms = %+v", gotRooms)
	}
	if len(gotItems) != 1 {
		t.Fatalf("items = %+v", gotItems)
	}
	got := gotItems[0]
	if got.Price.Cents != 50000 || got.Quantity != 2 || got.DeliveryDate.String() != "2026-09-01" {
		t.Fatalf("item round trip lost fields: %+v", got)
	}
}

func TestSaveOverwrites(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	repo.Save(ctx, []core.Room{{ID: "r1", Name: "A"}}, nil)
	repo.Save(ctx, []core.Room{{ID: "r2", Name: "B"}}, nil)

	rooms, _, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(rooms) != 1 || rooms[0].ID != "r2" {
		t.Fatalf("save is not a full overwrite: %+v", rooms)
	}
}

func TestCorruptPayloadFallsBackEmpty(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, []core.Room{{ID: "r1", Name: "Kitchen"}}, []core.Item{{ID: "i1", Name: "Oven", Category: core.CategoryAppliances, Quantity: 1, Status: core.StatusWishlist}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	// Corrupt only the items key.
	if _, err := repo.db.ExecContext(ctx,
		`UPDATE snapshots SET payload = 'not json{' WHERE key = ?`, KeyItems); err != nil {
		t.Fatalf("corrupt: %v", err)
	}

	rooms, items, err := repo.Load(ctx)
	if !errors.Is(err, core.ErrCorruptData) {
		t.Fatalf("expected ErrCorruptData, got %v", err)
	}
	if len(rooms) != 1 {
		t.Fatalf("healthy key lost: %+v", rooms)
	}
	if len(items) != 0 {
		t.Fatalf("corrupt key should fall back empty, got %+v", items)
	}
}

func TestBackupLeavesLiveKeysUntouched(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	rooms := []core.Room{{ID: "r1", Name: "Office"}}
	repo.Save(ctx, rooms, nil)

	key, err := repo.Backup(ctx)
	if err != nil {
		t.Fatalf("backup: %v", err)
	}
	if key == "" {
		t.Fatalf("empty backup key")
	}

	gotRooms, _, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load after backup: %v", err)
	}
	if len(gotRooms) != 1 || gotRooms[0].ID != "r1" {
		t.Fatalf("live data changed by backup: %+v", gotRooms)
	}

	var count int
	if err := repo.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM snapshots WHERE key = ?`, key).Scan(&count); err != nil {
		t.Fatalf("count backup: %v", err)
	}
	if count != 1 {
		t.Fatalf("backup key missing")
	}
}
