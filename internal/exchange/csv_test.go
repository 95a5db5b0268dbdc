package exchange

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"inventory/internal/core"
)

func TestExportCSV(t *testing.T) {
	rooms := []core.Room{{ID: "r1", Name: "Living Room"}}
	items := []core.Item{
		{ID: "i1", Name: "Sofa", Category: core.CategoryFurniture, RoomID: "r1",
			Price: core.Money{Cents: 129900}, Quantity: 1, Status: core.StatusDelivered,
			OrderDate: core.NewDate(2026, 1, 15), DeliveryDate: core.NewDate(2026, 1, 22),
			URL: "https://example.com/sofa", Notes: "gray"},
		{ID: "i2", Name: "Mystery", Category: core.CategoryOther, RoomID: "gone",
			Price: core.Money{Cents: 1000}, Quantity: 3, Status: core.StatusWishlist},
	}

	var buf bytes.Buffer
	if err := ExportCSV(&buf, rooms, items); err != nil {
		t.Fatalf("export: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(records))
	}
	if strings.Join(records[0], ",") != "Name,Category,Room,Quantity,Price,Total,Status,Order Date,Delivery Date,URL,Notes" {
		t.Fatalf("header = %v", records[0])
	}
	sofa := records[1]
	if sofa[0] != "Sofa" || sofa[2] != "Living Room" || sofa[4] != "1299" || sofa[5] != "1299" {
		t.Fatalf("sofa row = %v", sofa)
	}
	mystery := records[2]
	if mystery[2] != "" {
		t.Fatalf("dangling room should export empty, got %q", mystery[2])
	}
	if mystery[5] != "30" { // 10.00 * 3
		t.Fatalf("total = %q", mystery[5])
	}
}

func TestImportCSV(t *testing.T) {
	rooms := []core.Room{{ID: "lr", Name: "Living Room"}}
	input := strings.Join([]string{
		`"Name","Category","Room","Quantity","Price","Total","Status","Order Date","Delivery Date","URL","Notes"`,
		`"Sofa",,"Living Room",1,"$500",,,,,,"comfy"`,
		`"TV","electronics","Basement",2,"899.99",,"ordered","2026-08-01",,,""`,
		`,,"Living Room",1,"1",,,,,,`,
	}, "\n")

	items, report, err := ImportCSV(strings.NewReader(input), rooms)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Imported != 2 || report.Skipped != 1 {
		t.Fatalf("report = %+v", report)
	}

	sofa := items[0]
	if sofa.Name != "Sofa" {
		t.Fatalf("name = %q", sofa.Name)
	}
	if sofa.Price.Cents != 50000 {
		t.Fatalf("price = %d, want currency symbol stripped", sofa.Price.Cents)
	}
	if sofa.RoomID != "lr" {
		t.Fatalf("room not resolved: %q", sofa.RoomID)
	}
	if sofa.Category != "" {
		t.Fatalf("missing category should stay empty, got %q", sofa.Category)
	}
	if sofa.Notes != "comfy" {
		t.Fatalf("notes = %q", sofa.Notes)
	}
	if sofa.Quantity != 1 {
		t.Fatalf("quantity = %d", sofa.Quantity)
	}

	tv := items[1]
	if tv.RoomID != "" {
		t.Fatalf("unknown room name should leave item unassigned, got %q", tv.RoomID)
	}
	if tv.Price.Cents != 89999 || tv.Quantity != 2 {
		t.Fatalf("tv = %+v", tv)
	}
	if tv.Status != core.StatusOrdered || tv.OrderDate.String() != "2026-08-01" {
		t.Fatalf("tv status/date = %s %s", tv.Status, tv.OrderDate)
	}
}

func TestImportCSVTitleAliasAndCaseInsensitiveHeader(t *testing.T) {
	input := "TITLE,PRICE\nLamp,\"$25\"\n"
	items, report, err := ImportCSV(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Imported != 1 {
		t.Fatalf("report = %+v", report)
	}
	if items[0].Name != "Lamp" || items[0].Price.Cents != 2500 {
		t.Fatalf("item = %+v", items[0])
	}
}

func TestExportThenImportCSV(t *testing.T) {
	rooms := []core.Room{{ID: "r1", Name: "Office"}}
	items := []core.Item{{
		ID: "i1", Name: "Desk", Category: core.CategoryFurniture, RoomID: "r1",
		Price: core.Money{Cents: 45000}, Quantity: 1, Status: core.StatusDelivered,
	}}

	var buf bytes.Buffer
	if err := ExportCSV(&buf, rooms, items); err != nil {
		t.Fatalf("export: %v", err)
	}
	got, report, err := ImportCSV(&buf, rooms)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Imported != 1 {
		t.Fatalf("report = %+v", report)
	}
	d := got[0]
	if d.Name != "Desk" || d.Category != core.CategoryFurniture || d.RoomID != "r1" ||
		d.Price.Cents != 45000 || d.Quantity != 1 || d.Status != core.StatusDelivered {
		t.Fatalf("round trip lost fields: %+v", d)
	}
}

func TestExportBudgetReport(t *testing.T) {
	rooms := []core.Room{
		{ID: "k", Name: "Kitchen", Budget: core.Money{Cents: 100000}},
		{ID: "h", Name: "Hall"},
	}
	items := []core.Item{
		{RoomID: "k", Price: core.Money{Cents: 50000}, Quantity: 2, Status: core.StatusOrdered},
		{RoomID: "gone", Price: core.Money{Cents: 2500}, Quantity: 1, Status: core.StatusWishlist},
	}

	var buf bytes.Buffer
	if err := ExportBudgetReport(&buf, rooms, items); err != nil {
		t.Fatalf("export: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if strings.Join(records[0], ",") != "Room,Budget,Actual,Remaining,Percentage,Status" {
		t.Fatalf("header = %v", records[0])
	}
	kitchen := records[1]
	if kitchen[0] != "Kitchen" || kitchen[1] != "1000" || kitchen[2] != "1000" || kitchen[3] != "0" {
		t.Fatalf("kitchen row = %v", kitchen)
	}
	if kitchen[4] != "100%" || kitchen[5] != core.BudgetNearLimit.Label {
		t.Fatalf("kitchen status = %v", kitchen)
	}
	hall := records[2]
	if hall[5] != core.BudgetNone.Label {
		t.Fatalf("hall status = %v", hall)
	}
	unassigned := records[3]
	if unassigned[0] != "Unassigned" || unassigned[2] != "25" {
		t.Fatalf("unassigned row = %v", unassigned)
	}
}

func TestCSVFilenames(t *testing.T) {
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	if got := CSVFilename(now); got != "home-inventory-2026-08-28.csv" {
		t.Fatalf("inventory filename = %q", got)
	}
	if got := BudgetReportFilename(now); got != "budget-report-2026-08-28.csv" {
		t.Fatalf("report filename = %q", got)
	}
}
