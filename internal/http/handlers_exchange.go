package http

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"inventory/internal/exchange"
	"inventory/internal/log"
)

const maxImportBytes = 10 << 20 // 10 MiB upload cap

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	data, err := exchange.ExportJSON(s.store.Rooms(), s.store.Items(), time.Now())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	serveDownload(w, "application/json", exchange.JSONFilename(time.Now()))
	_, _ = w.Write(data)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := exchange.ExportCSV(&buf, s.store.Rooms(), s.store.Items()); err != nil {
		writeStoreError(w, r, err)
		return
	}

	serveDownload(w, "text/csv", exchange.CSVFilename(time.Now()))
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleExportBudgetReport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := exchange.ExportBudgetReport(&buf, s.store.Rooms(), s.store.Items()); err != nil {
		writeStoreError(w, r, err)
		return
	}

	serveDownload(w, "text/csv", exchange.BudgetReportFilename(time.Now()))
	_, _ = w.Write(buf.Bytes())
}

// handleImportJSON replaces the whole inventory with the uploaded
// snapshot. This mirrors the export format, so export-then-import is a
// full restore.
func (s *Server) handleImportJSON(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "read request body")
		return
	}

	rooms, items, err := exchange.ImportJSON(body)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	if err := s.store.ReplaceAll(r.Context(), rooms, items); err != nil {
		writeStoreError(w, r, err)
		return
	}

	log.FromContext(r.Context()).Info("snapshot imported",
		log.FieldOperation, log.OpImport,
		"rooms", len(rooms),
		"items", len(items))
	writeJSON(w, r, http.StatusOK, map[string]int{
		"rooms": len(rooms),
		"items": len(items),
	})
}

// handleImportCSV appends items from an uploaded CSV. Rows resolve rooms
// by exact name; rows without a name are skipped, not fatal.
func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	file := csvUpload(r)
	defer file.Close()

	items, report, err := exchange.ImportCSV(io.LimitReader(file, maxImportBytes), s.store.Rooms())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	if _, err := s.store.ImportItems(r.Context(), items); err != nil {
		writeStoreError(w, r, err)
		return
	}

	log.FromContext(r.Context()).Info("csv imported",
		log.FieldOperation, log.OpImport,
		"imported", report.Imported,
		"skipped", report.Skipped)
	writeJSON(w, r, http.StatusOK, report)
}

// csvUpload returns the uploaded "file" part when the request is
// multipart, and the raw body otherwise so plain POSTs also work.
func csvUpload(r *http.Request) io.ReadCloser {
	if file, _, err := r.FormFile("file"); err == nil {
		return file
	}
	return r.Body
}

func serveDownload(w http.ResponseWriter, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
}
