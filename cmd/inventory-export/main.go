// Command inventory-export loads the snapshot store and writes the
// date-stamped JSON snapshot, inventory CSV, and budget report CSV to an
// output directory. Headless counterpart of the export endpoints.
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	"inventory/internal/cli"
	"inventory/internal/exchange"
	"inventory/internal/log"
	"inventory/internal/store"
)

func main() {
	outDir := flag.String("out", ".", "directory to write export files into")
	flag.Parse()

	logger := cli.SetupLogger().WithComponent(log.ComponentExchange)
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	result := cli.InitBackend(logger, cfg)
	defer func() {
		if err := result.Cleanup(); err != nil {
			logger.Error("backend cleanup failed", log.FieldError, err)
		}
	}()

	ctx := context.Background()
	st := store.New(result.Snapshotter)
	if err := st.Load(ctx); err != nil {
		logger.Warn("snapshot load reported errors", log.FieldError, err)
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		logger.Error("create output directory failed", log.FieldError, err, "dir", *outDir)
		os.Exit(1)
	}

	rooms := st.Rooms()
	items := st.Items()
	now := time.Now()

	jsonData, err := exchange.ExportJSON(rooms, items, now)
	if err != nil {
		logger.Error("json export failed", log.FieldError, err)
		os.Exit(1)
	}
	writeFile(logger, filepath.Join(*outDir, exchange.JSONFilename(now)), jsonData)

	writeCSV(logger, filepath.Join(*outDir, exchange.CSVFilename(now)), func(f *os.File) error {
		return exchange.ExportCSV(f, rooms, items)
	})
	writeCSV(logger, filepath.Join(*outDir, exchange.BudgetReportFilename(now)), func(f *os.File) error {
		return exchange.ExportBudgetReport(f, rooms, items)
	})

	logger.Info("export complete",
		log.FieldOperation, log.OpExport,
		"rooms", len(rooms),
		"items", len(items),
		"dir", *outDir)
}

func writeFile(logger *log.Logger, path string, data []byte) {
	if err := os.WriteFile(path, data, 0644); err != nil {
		logger.Error("write export file failed", log.FieldError, err, "path", path)
		os.Exit(1)
	}
	logger.Info("export file written", "path", path)
}

func writeCSV(logger *log.Logger, path string, write func(*os.File) error) {
	f, err := os.Create(path)
	if err != nil {
		logger.Error("create export file failed", log.FieldError, err, "path", path)
		os.Exit(1)
	}
	defer f.Close()

	if err := write(f); err != nil {
		logger.Error("write export file failed", log.FieldError, err, "path", path)
		os.Exit(1)
	}
	logger.Info("export file written", "path", path)
}
