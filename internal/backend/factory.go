package backend

import (
	"fmt"

	"inventory/internal/log"
	"inventory/internal/storage"
	"inventory/internal/storage/memory"
)

// Factory creates snapshot backends based on configuration
type Factory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) *Factory {
	return &Factory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// Create builds the snapshotter described by config, along with a
// cleanup function the caller must run on shutdown.
func (f *Factory) Create(config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLite(config)
	case MemoryBackend:
		return f.createMemory(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *Factory) createSQLite(config Config) (*Result, error) {
	repo, err := storage.NewSnapshotRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite snapshot repository: %w", err)
	}

	f.logger.Info("backend initialized",
		log.FieldBackend, SQLiteBackend.String(),
		"db_path", config.SQLiteDBPath)

	return &Result{
		Snapshotter: repo,
		Cleanup:     repo.Close,
	}, nil
}

func (f *Factory) createMemory(config Config) (*Result, error) {
	var snap *memory.Store
	if config.DataDirectory != "" {
		snap = memory.NewFromFiles(config.DataDirectory)
	} else {
		snap = memory.New()
	}

	f.logger.Info("backend initialized",
		log.FieldBackend, MemoryBackend.String(),
		"data_directory", config.DataDirectory)

	return &Result{
		Snapshotter: snap,
		Cleanup:     func() error { return nil },
	}, nil
}
