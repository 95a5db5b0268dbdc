package core

import (
	"sort"
	"strings"
	"time"
)

// DeliveryFilter selects which slice of the delivery timeline to show.
type DeliveryFilter string

const (
	DeliveryAll       DeliveryFilter = "all"
	DeliveryToday     DeliveryFilter = "today"
	DeliveryWeek      DeliveryFilter = "week"
	DeliveryPending   DeliveryFilter = "pending"
	DeliveryDelivered DeliveryFilter = "delivered"
)

func (f DeliveryFilter) Valid() bool {
	switch f {
	case DeliveryAll, DeliveryToday, DeliveryWeek, DeliveryPending, DeliveryDelivered:
		return true
	}
	return false
}

// FilterItems returns the items matching every active constraint of f, in
// input order. Search is a case-insensitive substring match against name,
// category and notes.
func FilterItems(items []Item, f Filter) []Item {
	if f.IsEmpty() {
		out := make([]Item, len(items))
		copy(out, items)
		return out
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if search != "" && !matchesSearch(it, search) {
			continue
		}
		if f.Room != "" && it.RoomID != f.Room {
			continue
		}
		if f.Category != "" && it.Category != f.Category {
			continue
		}
		if f.Status != "" && it.Status != f.Status {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matchesSearch(it Item, search string) bool {
	return strings.Contains(strings.ToLower(it.Name), search) ||
		strings.Contains(strings.ToLower(string(it.Category)), search) ||
		strings.Contains(strings.ToLower(it.Notes), search)
}

// DeliveryTimeline selects items that have a delivery or order date,
// applies the delivery filter relative to ref, and sorts ascending by
// delivery date falling back to order date.
func DeliveryTimeline(items []Item, f DeliveryFilter, ref time.Time) []Item {
	day := truncateToDay(ref)
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if !it.DeliveryDate.IsSet() && !it.OrderDate.IsSet() {
			continue
		}
		switch f {
		case DeliveryToday:
			if !it.DeliveryDate.SameDay(day) {
				continue
			}
		case DeliveryWeek:
			if !it.DeliveryDate.IsSet() {
				continue
			}
			d := truncateToDay(it.DeliveryDate.Time)
			if d.Before(day) || d.After(day.AddDate(0, 0, 7)) {
				continue
			}
		case DeliveryPending:
			if it.Status != StatusOrdered {
				continue
			}
		case DeliveryDelivered:
			if it.Status != StatusDelivered {
				continue
			}
		}
		out = append(out, it)
	}
	sort.SliceStable(out, func(a, b int) bool {
		return effectiveDate(out[a]).Before(effectiveDate(out[b]))
	})
	return out
}

// Timeframe bounds the budget view to items ordered within a window.
type Timeframe string

const (
	TimeframeMonth   Timeframe = "month"
	TimeframeQuarter Timeframe = "quarter"
	TimeframeYear    Timeframe = "year"
	TimeframeAll     Timeframe = "all"
)

func (t Timeframe) Valid() bool {
	switch t {
	case TimeframeMonth, TimeframeQuarter, TimeframeYear, TimeframeAll:
		return true
	}
	return false
}

// ItemsInTimeframe returns the items whose order date falls inside the
// window ending at ref. Items without an order date only appear under
// TimeframeAll.
func ItemsInTimeframe(items []Item, tf Timeframe, ref time.Time) []Item {
	if tf == TimeframeAll || tf == "" {
		out := make([]Item, len(items))
		copy(out, items)
		return out
	}
	var start time.Time
	switch tf {
	case TimeframeMonth:
		start = ref.AddDate(0, -1, 0)
	case TimeframeQuarter:
		start = ref.AddDate(0, -3, 0)
	case TimeframeYear:
		start = ref.AddDate(-1, 0, 0)
	}
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if !it.OrderDate.IsSet() {
			continue
		}
		if it.OrderDate.Before(start) || it.OrderDate.After(ref) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func effectiveDate(it Item) time.Time {
	if it.DeliveryDate.IsSet() {
		return it.DeliveryDate.Time
	}
	return it.OrderDate.Time
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
