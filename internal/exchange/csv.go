package exchange

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"inventory/internal/core"
)

var inventoryHeader = []string{
	"Name", "Category", "Room", "Quantity", "Price", "Total",
	"Status", "Order Date", "Delivery Date", "URL", "Notes",
}

var budgetHeader = []string{"Room", "Budget", "Actual", "Remaining", "Percentage", "Status"}

// ImportReport summarizes a CSV import: rows turned into items and rows
// skipped for lacking a resolvable name.
type ImportReport struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ExportCSV writes one row per item with the room resolved to its display
// name (empty when unassigned or dangling).
func ExportCSV(w io.Writer, rooms []core.Room, items []core.Item) error {
	names := roomNames(rooms)
	cw := csv.NewWriter(w)
	if err := cw.Write(inventoryHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, it := range items {
		row := []string{
			it.Name,
			string(it.Category),
			names[it.RoomID],
			strconv.Itoa(it.Quantity),
			it.Price.String(),
			core.Money{Cents: it.TotalCents()}.String(),
			string(it.Status),
			it.OrderDate.String(),
			it.DeliveryDate.String(),
			it.URL,
			it.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ImportCSV parses an inventory CSV into items. Headers are matched
// case-insensitively, "title" is accepted as an alias for "name", the
// price column tolerates a leading currency symbol, and the room column
// resolves by exact name against the existing rooms (a miss leaves the
// item unassigned). Rows without a name are skipped. The importer is
// deliberately laxer than the create-item validation: category and
// status are kept as given, even empty.
func ImportCSV(r io.Reader, rooms []core.Room) ([]core.Item, ImportReport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, ImportReport{}, fmt.Errorf("read header: %w", err)
	}
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.ToLower(strings.TrimSpace(h))
	}

	byName := make(map[string]string, len(rooms))
	for _, room := range rooms {
		byName[room.Name] = room.ID
	}

	var out []core.Item
	var report ImportReport
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ImportReport{}, fmt.Errorf("read row: %w", err)
		}
		item, ok := itemFromRecord(cols, record, byName)
		if !ok {
			report.Skipped++
			continue
		}
		out = append(out, item)
		report.Imported++
	}
	return out, report, nil
}

func itemFromRecord(cols, record []string, roomsByName map[string]string) (core.Item, bool) {
	item := core.Item{Quantity: 1}
	for i, col := range cols {
		if i >= len(record) {
			break
		}
		value := strings.TrimSpace(record[i])
		if value == "" {
			continue
		}
		switch col {
		case "name", "title":
			item.Name = value
		case "category":
			item.Category = core.Category(strings.ToLower(value))
		case "price":
			if cents, err := core.ParsePrice(value); err == nil {
				item.Price = core.Money{Cents: cents}
			}
		case "quantity":
			if q, err := strconv.Atoi(value); err == nil && q > 0 {
				item.Quantity = q
			}
		case "room":
			if id, ok := roomsByName[value]; ok {
				item.RoomID = id
			}
		case "status":
			item.Status = core.Status(strings.ToLower(value))
		case "order date":
			if d, err := core.ParseDate(value); err == nil {
				item.OrderDate = d
			}
		case "delivery date":
			if d, err := core.ParseDate(value); err == nil {
				item.DeliveryDate = d
			}
		case "url":
			item.URL = value
		case "notes":
			item.Notes = value
		}
	}
	if item.Name == "" {
		return core.Item{}, false
	}
	return item, true
}

// ExportBudgetReport writes one row per room with the four-tier budget
// classification, plus an Unassigned row when unplaced items exist.
func ExportBudgetReport(w io.Writer, rooms []core.Room, items []core.Item) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(budgetHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, room := range rooms {
		s := core.RoomSpend(room, items)
		row := []string{
			room.Name,
			s.Budget.String(),
			s.Spent.String(),
			s.Remaining.String(),
			strconv.Itoa(int(math.Round(s.Percentage))) + "%",
			s.Status.Label,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	if unassigned := core.UnassignedSpend(rooms, items); unassigned.Cents > 0 {
		row := []string{"Unassigned", "0", unassigned.String(), "0", "0%", core.BudgetNone.Label}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVFilename names the inventory download, e.g. home-inventory-2026-08-28.csv.
func CSVFilename(now time.Time) string {
	return "home-inventory-" + now.Format("2006-01-02") + ".csv"
}

// BudgetReportFilename names the budget report download.
func BudgetReportFilename(now time.Time) string {
	return "budget-report-" + now.Format("2006-01-02") + ".csv"
}

func roomNames(rooms []core.Room) map[string]string {
	names := make(map[string]string, len(rooms))
	for _, r := range rooms {
		names[r.ID] = r.Name
	}
	return names
}
