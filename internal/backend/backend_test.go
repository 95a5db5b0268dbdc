package backend

import (
	"context"
	"testing"

	"inventory/internal/config"
	"inventory/internal/core"
	"inventory/internal/log"
	"inventory/internal/storage/memory"
)

func TestFromAppConfig(t *testing.T) {
	cases := []struct {
		backend string
		want    Type
		wantErr bool
	}{
		{"sqlite", SQLiteBackend, false},
		{"memory", MemoryBackend, false},
		{"redis", "", true},
		{"", "", true},
	}

	for i, c := range cases {
		cfg, err := FromAppConfig(&config.Config{
			DataBackend:  c.backend,
			SQLiteDBPath: "/tmp/x.db",
		})
		if c.wantErr {
			if err == nil {
				t.Errorf("case %d: expected error for backend %q", i, c.backend)
			}
			continue
		}
		if err != nil {
			t.Errorf("case %d: unexpected error: %v", i, err)
			continue
		}
		if cfg.Type != c.want {
			t.Errorf("case %d: expected type %s, got %s", i, c.want, cfg.Type)
		}
	}

	if _, err := FromAppConfig(nil); err == nil {
		t.Error("expected error for nil app config")
	}
}

func TestConfigValidate(t *testing.T) {
	if err := (Config{Type: SQLiteBackend}).Validate(); err == nil {
		t.Error("expected error for sqlite backend without db path")
	}
	if err := (Config{Type: MemoryBackend}).Validate(); err != nil {
		t.Errorf("unexpected error for memory backend: %v", err)
	}
	if err := (Config{Type: "sheets"}).Validate(); err == nil {
		t.Error("expected error for unknown backend type")
	}
}

func TestFactoryCreateMemory(t *testing.T) {
	factory := NewFactory(log.New(log.DefaultConfig()))

	result, err := factory.Create(Config{Type: MemoryBackend})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer result.Cleanup()

	if _, ok := result.Snapshotter.(*memory.Store); !ok {
		t.Fatalf("expected memory store, got %T", result.Snapshotter)
	}

	ctx := context.Background()
	rooms := []core.Room{{ID: "r1", Name: "Office", Icon: core.IconDesk}}
	if err := result.Snapshotter.Save(ctx, rooms, nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, _, err := result.Snapshotter.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Office" {
		t.Fatalf("expected saved room back, got %+v", got)
	}
}

func TestFactoryCreateSQLite(t *testing.T) {
	factory := NewFactory(log.New(log.DefaultConfig()))

	result, err := factory.Create(Config{
		Type:         SQLiteBackend,
		SQLiteDBPath: t.TempDir() + "/inventory.db",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer result.Cleanup()

	if _, _, err := result.Snapshotter.Load(context.Background()); err != nil {
		t.Fatalf("load from fresh sqlite backend: %v", err)
	}
}
