package core

import "testing"

func TestClassifyBudgetBoundaries(t *testing.T) {
	budget := Money{Cents: 100000}
	cases := []struct {
		percentage float64
		want       BudgetStatus
	}{
		{0, BudgetOnTrack},
		{50, BudgetOnTrack},
		{50.01, BudgetWatch},
		{80, BudgetWatch},
		{80.01, BudgetNearLimit},
		{100, BudgetNearLimit},
		{100.01, BudgetOver},
		{250, BudgetOver},
	}
	for i, tc := range cases {
		if got := ClassifyBudget(budget, tc.percentage); got != tc.want {
			t.Fatalf("case %d (%.2f%%): got %q, want %q", i, tc.percentage, got.Label, tc.want.Label)
		}
	}
	if got := ClassifyBudget(Money{}, 0); got != BudgetNone {
		t.Fatalf("zero budget: got %q, want %q", got.Label, BudgetNone.Label)
	}
}

func TestRoomSpendKitchenScenario(t *testing.T) {
	kitchen := Room{ID: "k", Name: "Kitchen", Budget: Money{Cents: 100000}}
	items := []Item{
		{ID: "oven", Name: "Oven", Category: CategoryAppliances, RoomID: "k", Price: Money{Cents: 50000}, Quantity: 2, Status: StatusOrdered},
		{ID: "other", Name: "Rug", Category: CategoryDecor, RoomID: "elsewhere", Price: Money{Cents: 9999}, Quantity: 1, Status: StatusWishlist},
	}
	s := RoomSpend(kitchen, items)
	if s.Spent.Cents != 100000 {
		t.Fatalf("spent = %d, want 100000", s.Spent.Cents)
	}
	if s.Remaining.Cents != 0 {
		t.Fatalf("remaining = %d, want 0", s.Remaining.Cents)
	}
	if s.Percentage != 100 {
		t.Fatalf("percentage = %v, want 100", s.Percentage)
	}
	// Exactly 100% is the boundary case: still Near Limit, not Over.
	if s.Status != BudgetNearLimit {
		t.Fatalf("status = %q, want %q", s.Status.Label, BudgetNearLimit.Label)
	}
}

func TestRoomSpendZeroBudget(t *testing.T) {
	room := Room{ID: "r", Name: "Hall"}
	items := []Item{{RoomID: "r", Price: Money{Cents: 1000}, Quantity: 3}}
	s := RoomSpend(room, items)
	if s.Percentage != 0 {
		t.Fatalf("percentage = %v, want 0 without budget", s.Percentage)
	}
	if s.Status != BudgetNone {
		t.Fatalf("status = %q, want %q", s.Status.Label, BudgetNone.Label)
	}
	if s.Spent.Cents != 3000 {
		t.Fatalf("spent = %d, want 3000", s.Spent.Cents)
	}
}

func TestUnassignedSpendIncludesDanglingRefs(t *testing.T) {
	rooms := []Room{{ID: "r1", Name: "Living Room"}}
	items := []Item{
		{RoomID: "", Price: Money{Cents: 100}, Quantity: 1},
		{RoomID: "deleted-room", Price: Money{Cents: 200}, Quantity: 1},
		{RoomID: "r1", Price: Money{Cents: 400}, Quantity: 1},
	}
	if got := UnassignedSpend(rooms, items); got.Cents != 300 {
		t.Fatalf("unassigned = %d, want 300", got.Cents)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	items := []Item{
		{Category: CategoryFurniture, Price: Money{Cents: 10000}, Quantity: 1},
		{Category: CategoryFurniture, Price: Money{Cents: 20000}, Quantity: 1},
		{Category: CategoryLighting, Price: Money{Cents: 5000}, Quantity: 2},
	}
	got := CategoryBreakdown(items)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (empty categories omitted)", len(got))
	}
	// Canonical order puts furniture before lighting.
	if got[0].Category != CategoryFurniture || got[1].Category != CategoryLighting {
		t.Fatalf("order: %s, %s", got[0].Category, got[1].Category)
	}
	if got[0].Count != 2 || got[0].Spent.Cents != 30000 || got[0].AvgPrice.Cents != 15000 {
		t.Fatalf("furniture = %+v", got[0])
	}
	if got[1].Count != 1 || got[1].Spent.Cents != 10000 || got[1].AvgPrice.Cents != 10000 {
		t.Fatalf("lighting = %+v", got[1])
	}
}

func TestCategoryBreakdownEmpty(t *testing.T) {
	if got := CategoryBreakdown(nil); len(got) != 0 {
		t.Fatalf("expected no summaries, got %d", len(got))
	}
}

func TestOverview(t *testing.T) {
	rooms := []Room{
		{ID: "r1", Budget: Money{Cents: 500000}},
		{ID: "r2", Budget: Money{Cents: 300000}},
	}
	items := []Item{
		{RoomID: "r1", Price: Money{Cents: 129900}, Quantity: 1, Status: StatusDelivered},
		{RoomID: "r1", Price: Money{Cents: 89900}, Quantity: 1, Status: StatusOrdered},
		{Price: Money{Cents: 10000}, Quantity: 2, Status: StatusWishlist},
	}
	o := Overview(rooms, items)
	if o.TotalItems != 3 || o.TotalRooms != 2 {
		t.Fatalf("counts = %d items, %d rooms", o.TotalItems, o.TotalRooms)
	}
	if o.TotalValue.Cents != 239800 {
		t.Fatalf("total value = %d", o.TotalValue.Cents)
	}
	if o.TotalBudget.Cents != 800000 {
		t.Fatalf("total budget = %d", o.TotalBudget.Cents)
	}
	if o.PendingDeliveries != 1 {
		t.Fatalf("pending = %d", o.PendingDeliveries)
	}
	want := float64(239800) / float64(800000) * 100
	if o.BudgetUsedPercent != want {
		t.Fatalf("used = %v, want %v", o.BudgetUsedPercent, want)
	}
}

func TestOverviewNoBudget(t *testing.T) {
	o := Overview(nil, []Item{{Price: Money{Cents: 100}, Quantity: 1}})
	if o.BudgetUsedPercent != 0 {
		t.Fatalf("used = %v, want 0 without budget", o.BudgetUsedPercent)
	}
}
