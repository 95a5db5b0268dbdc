package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"inventory/internal/cli"
	apphttp "inventory/internal/http"
	"inventory/internal/log"
	"inventory/internal/store"
)

// backupper is implemented by snapshot backends that can write
// timestamped backup copies (the sqlite backend).
type backupper interface {
	Backup(ctx context.Context) (string, error)
}

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	result := cli.InitBackend(logger, cfg)
	defer func() {
		if err := result.Cleanup(); err != nil {
			logger.Error("backend cleanup failed", log.FieldError, err)
		}
	}()

	st := store.New(result.Snapshotter)
	if err := st.Load(context.Background()); err != nil {
		// Corrupt snapshot keys fall back to empty; keep running on
		// whatever survived.
		logger.Warn("snapshot load reported errors", log.FieldError, err)
	}

	if cfg.SeedDefaults && len(st.Rooms()) == 0 && len(st.Items()) == 0 {
		seeded, err := st.SeedDefaultRooms(context.Background())
		if err != nil {
			logger.Error("seeding default rooms failed", log.FieldError, err)
			os.Exit(1)
		}
		logger.Info("seeded default rooms", log.FieldCount, seeded)
	}

	srv := apphttp.NewServer(":"+cfg.Port, st, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting inventory server",
			"port", cfg.Port,
			log.FieldBackend, cfg.DataBackend,
			log.FieldOperation, log.OpStartup)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutdown requested", log.FieldOperation, log.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if b, ok := result.Snapshotter.(backupper); ok && cfg.BackupInterval > 0 {
		g.Go(func() error {
			return backupLoop(ctx, b, cfg.BackupInterval, logger)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("server error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("server stopped gracefully")
}

// backupLoop writes a snapshot backup on every tick until ctx is
// cancelled. A failed backup is logged, not fatal.
func backupLoop(ctx context.Context, b backupper, interval time.Duration, logger *log.Logger) error {
	backupLogger := logger.WithComponent(log.ComponentBackup)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			key, err := b.Backup(ctx)
			if err != nil {
				backupLogger.Error("periodic backup failed", log.FieldError, err)
				continue
			}
			backupLogger.Info("periodic backup written", log.FieldSnapshotKey, key)
		case <-ctx.Done():
			return nil
		}
	}
}
