package core

// RoomSpendSummary holds per-room budget usage. Percentage is the raw
// utilization and may exceed 100; display layers clamp it for progress
// bars but the raw value drives the over-budget classification.
type RoomSpendSummary struct {
	RoomID     string
	RoomName   string
	Spent      Money
	Budget     Money
	Remaining  Money
	Percentage float64
	Status     BudgetStatus
}

// CategorySummary aggregates the items of one category.
type CategorySummary struct {
	Category Category
	Count    int
	Spent    Money
	AvgPrice Money
}

// InventoryOverview is the dashboard headline: totals across the whole
// store.
type InventoryOverview struct {
	TotalItems        int
	TotalRooms        int
	TotalValue        Money
	TotalBudget       Money
	BudgetUsedPercent float64
	PendingDeliveries int
}

// BudgetStatus is the four-tier budget usage classification.
type BudgetStatus struct {
	Label string
	Level string
}

var (
	BudgetNone      = BudgetStatus{Label: "No Budget", Level: "neutral"}
	BudgetOnTrack   = BudgetStatus{Label: "On Track", Level: "good"}
	BudgetWatch     = BudgetStatus{Label: "Watch", Level: "warning"}
	BudgetNearLimit = BudgetStatus{Label: "Near Limit", Level: "warning"}
	BudgetOver      = BudgetStatus{Label: "Over Budget", Level: "danger"}
)

// ClassifyBudget maps a raw utilization percentage onto the budget status
// tiers. The boundaries are inclusive on the low side: exactly 50 is
// still On Track, exactly 100 is still Near Limit.
func ClassifyBudget(budget Money, percentage float64) BudgetStatus {
	if budget.Cents <= 0 {
		return BudgetNone
	}
	switch {
	case percentage <= 50:
		return BudgetOnTrack
	case percentage <= 80:
		return BudgetWatch
	case percentage <= 100:
		return BudgetNearLimit
	default:
		return BudgetOver
	}
}

// RoomSpend computes budget usage for one room over the given items.
// Items referencing other rooms (or no room) are ignored. Percentage is 0
// when no budget is configured.
func RoomSpend(room Room, items []Item) RoomSpendSummary {
	var spent int64
	for _, it := range items {
		if it.RoomID == room.ID {
			spent += it.TotalCents()
		}
	}
	s := RoomSpendSummary{
		RoomID:    room.ID,
		RoomName:  room.Name,
		Spent:     Money{Cents: spent},
		Budget:    room.Budget,
		Remaining: Money{Cents: room.Budget.Cents - spent},
	}
	if room.Budget.Cents > 0 {
		s.Percentage = float64(spent) / float64(room.Budget.Cents) * 100
	}
	s.Status = ClassifyBudget(room.Budget, s.Percentage)
	return s
}

// UnassignedSpend totals the items that belong to no existing room,
// including items whose room reference dangles after a room deletion.
func UnassignedSpend(rooms []Room, items []Item) Money {
	known := make(map[string]struct{}, len(rooms))
	for _, r := range rooms {
		known[r.ID] = struct{}{}
	}
	var spent int64
	for _, it := range items {
		if it.RoomID == "" {
			spent += it.TotalCents()
			continue
		}
		if _, ok := known[it.RoomID]; !ok {
			spent += it.TotalCents()
		}
	}
	return Money{Cents: spent}
}

// CategoryBreakdown groups items by category in the canonical category
// order. Categories with no items are omitted, which also guards the
// average against division by zero.
func CategoryBreakdown(items []Item) []CategorySummary {
	byCat := make(map[Category]*CategorySummary)
	for _, it := range items {
		s, ok := byCat[it.Category]
		if !ok {
			s = &CategorySummary{Category: it.Category}
			byCat[it.Category] = s
		}
		s.Count++
		s.Spent.Cents += it.TotalCents()
	}
	out := make([]CategorySummary, 0, len(byCat))
	for _, c := range Categories() {
		if s, ok := byCat[c]; ok {
			s.AvgPrice = Money{Cents: s.Spent.Cents / int64(s.Count)}
			out = append(out, *s)
		}
	}
	return out
}

// Overview computes the dashboard totals across the whole store.
func Overview(rooms []Room, items []Item) InventoryOverview {
	o := InventoryOverview{
		TotalItems: len(items),
		TotalRooms: len(rooms),
	}
	for _, it := range items {
		o.TotalValue.Cents += it.TotalCents()
		if it.Status == StatusOrdered {
			o.PendingDeliveries++
		}
	}
	for _, r := range rooms {
		o.TotalBudget.Cents += r.Budget.Cents
	}
	if o.TotalBudget.Cents > 0 {
		o.BudgetUsedPercent = float64(o.TotalValue.Cents) / float64(o.TotalBudget.Cents) * 100
	}
	return o
}
