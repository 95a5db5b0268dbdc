package http

import (
	"fmt"
	"net/http"
	"time"

	"inventory/internal/core"
)

type overviewResponse struct {
	TotalItems        int        `json:"totalItems"`
	TotalRooms        int        `json:"totalRooms"`
	TotalValue        core.Money `json:"totalValue"`
	TotalBudget       core.Money `json:"totalBudget"`
	BudgetUsedPercent float64    `json:"budgetUsedPercent"`
	PendingDeliveries int        `json:"pendingDeliveries"`
}

type roomSpendSummary struct {
	RoomID     string     `json:"roomId"`
	RoomName   string     `json:"roomName"`
	Spent      core.Money `json:"spent"`
	Budget     core.Money `json:"budget"`
	Remaining  core.Money `json:"remaining"`
	Percentage float64    `json:"percentage"`
	Status     string     `json:"status"`
	Level      string     `json:"level"`
}

type budgetResponse struct {
	Rooms      []roomSpendSummary `json:"rooms"`
	Unassigned core.Money         `json:"unassigned"`
}

type categorySummary struct {
	Category core.Category `json:"category"`
	Count    int           `json:"count"`
	Spent    core.Money    `json:"spent"`
	AvgPrice core.Money    `json:"avgPrice"`
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	tf, ok := parseTimeframe(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid timeframe")
		return
	}

	key := fmt.Sprintf("overview:%d:%s", s.store.Revision(), tf)
	if cached, hit := s.overviewCache.Get(key); hit {
		writeJSON(w, r, http.StatusOK, cached)
		return
	}

	items := core.ItemsInTimeframe(s.store.Items(), tf, time.Now())
	ov := core.Overview(s.store.Rooms(), items)
	resp := overviewResponse{
		TotalItems:        ov.TotalItems,
		TotalRooms:        ov.TotalRooms,
		TotalValue:        ov.TotalValue,
		TotalBudget:       ov.TotalBudget,
		BudgetUsedPercent: ov.BudgetUsedPercent,
		PendingDeliveries: ov.PendingDeliveries,
	}

	s.overviewCache.Set(key, resp)
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleBudget(w http.ResponseWriter, r *http.Request) {
	key := fmt.Sprintf("budget:%d", s.store.Revision())
	if cached, hit := s.budgetCache.Get(key); hit {
		writeJSON(w, r, http.StatusOK, cached)
		return
	}

	rooms := s.store.Rooms()
	items := s.store.Items()

	resp := budgetResponse{
		Rooms:      make([]roomSpendSummary, 0, len(rooms)),
		Unassigned: core.UnassignedSpend(rooms, items),
	}
	for _, room := range rooms {
		spend := core.RoomSpend(room, items)
		resp.Rooms = append(resp.Rooms, roomSpendSummary{
			RoomID:     spend.RoomID,
			RoomName:   spend.RoomName,
			Spent:      spend.Spent,
			Budget:     spend.Budget,
			Remaining:  spend.Remaining,
			Percentage: spend.Percentage,
			Status:     spend.Status.Label,
			Level:      spend.Status.Level,
		})
	}

	s.budgetCache.Set(key, resp)
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	tf, ok := parseTimeframe(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid timeframe")
		return
	}

	key := fmt.Sprintf("categories:%d:%s", s.store.Revision(), tf)
	if cached, hit := s.categoryCache.Get(key); hit {
		writeJSON(w, r, http.StatusOK, cached)
		return
	}

	items := core.ItemsInTimeframe(s.store.Items(), tf, time.Now())
	breakdown := core.CategoryBreakdown(items)
	resp := make([]categorySummary, 0, len(breakdown))
	for _, c := range breakdown {
		resp = append(resp, categorySummary{
			Category: c.Category,
			Count:    c.Count,
			Spent:    c.Spent,
			AvgPrice: c.AvgPrice,
		})
	}

	s.categoryCache.Set(key, resp)
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleDeliveries(w http.ResponseWriter, r *http.Request) {
	f := core.DeliveryFilter(r.URL.Query().Get("filter"))
	if f == "" {
		f = core.DeliveryAll
	}
	if !f.Valid() {
		writeError(w, r, http.StatusBadRequest, "invalid delivery filter")
		return
	}

	writeJSON(w, r, http.StatusOK, core.DeliveryTimeline(s.store.Items(), f, time.Now()))
}

// parseTimeframe reads the optional timeframe query parameter; absent
// means all time.
func parseTimeframe(r *http.Request) (core.Timeframe, bool) {
	tf := core.Timeframe(r.URL.Query().Get("timeframe"))
	if tf == "" {
		tf = core.TimeframeAll
	}
	return tf, tf.Valid()
}
