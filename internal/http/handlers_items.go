package http

import (
	"net/http"
	"strings"

	"inventory/internal/core"
	"inventory/internal/log"
	"inventory/internal/store"
)

type itemCreateRequest struct {
	Name           string        `json:"name"`
	Category       core.Category `json:"category"`
	RoomID         string        `json:"roomId"`
	Price          core.Money    `json:"price"`
	Quantity       int           `json:"quantity"`
	Status         core.Status   `json:"status"`
	OrderDate      core.Date     `json:"orderDate"`
	DeliveryDate   core.Date     `json:"deliveryDate"`
	WarrantyExpiry core.Date     `json:"warrantyExpiry"`
	URL            string        `json:"url"`
	Image          string        `json:"image"`
	Notes          string        `json:"notes"`
}

type itemPatchRequest struct {
	Name           *string        `json:"name"`
	Category       *core.Category `json:"category"`
	RoomID         *string        `json:"roomId"`
	Price          *core.Money    `json:"price"`
	Quantity       *int           `json:"quantity"`
	Status         *core.Status   `json:"status"`
	OrderDate      *core.Date     `json:"orderDate"`
	DeliveryDate   *core.Date     `json:"deliveryDate"`
	WarrantyExpiry *core.Date     `json:"warrantyExpiry"`
	URL            *string        `json:"url"`
	Image          *string        `json:"image"`
	Notes          *string        `json:"notes"`
}

type bulkIDsRequest struct {
	IDs []string `json:"ids"`
}

type bulkStatusRequest struct {
	IDs    []string    `json:"ids"`
	Status core.Status `json:"status"`
}

type bulkMoveRequest struct {
	IDs    []string `json:"ids"`
	RoomID string   `json:"roomId"`
}

// handleListItems applies the query-string filter to the full item list.
// Absent parameters mean "no constraint"; order is creation order.
func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := core.Filter{
		Search:   strings.TrimSpace(q.Get("search")),
		Room:     q.Get("room"),
		Category: core.Category(q.Get("category")),
		Status:   core.Status(q.Get("status")),
	}

	writeJSON(w, r, http.StatusOK, core.FilterItems(s.store.Items(), filter))
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req itemCreateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	item, err := s.store.CreateItem(r.Context(), store.ItemDraft{
		Name:           req.Name,
		Category:       req.Category,
		RoomID:         req.RoomID,
		Price:          req.Price,
		Quantity:       req.Quantity,
		Status:         req.Status,
		OrderDate:      req.OrderDate,
		DeliveryDate:   req.DeliveryDate,
		WarrantyExpiry: req.WarrantyExpiry,
		URL:            req.URL,
		Image:          req.Image,
		Notes:          req.Notes,
	})
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	log.FromContext(r.Context()).Info("item created",
		log.FieldOperation, log.OpCreate,
		log.FieldItemID, item.ID,
		log.FieldItemName, item.Name,
		log.FieldAmountCents, item.Price.Cents)
	writeJSON(w, r, http.StatusCreated, item)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.store.Item(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, item)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var req itemPatchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	item, err := s.store.UpdateItem(r.Context(), r.PathValue("id"), store.ItemPatch{
		Name:           req.Name,
		Category:       req.Category,
		RoomID:         req.RoomID,
		Price:          req.Price,
		Quantity:       req.Quantity,
		Status:         req.Status,
		OrderDate:      req.OrderDate,
		DeliveryDate:   req.DeliveryDate,
		WarrantyExpiry: req.WarrantyExpiry,
		URL:            req.URL,
		Image:          req.Image,
		Notes:          req.Notes,
	})
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, item)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteItem(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDuplicateItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.store.DuplicateItem(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	log.FromContext(r.Context()).Info("item duplicated",
		log.FieldOperation, log.OpDuplicate,
		log.FieldItemID, item.ID,
		log.FieldItemName, item.Name)
	writeJSON(w, r, http.StatusCreated, item)
}

func (s *Server) handleBulkStatus(w http.ResponseWriter, r *http.Request) {
	var req bulkStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.store.BulkUpdateStatus(r.Context(), req.IDs, req.Status)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	s.logBulk(r, "bulk status update", result)
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleBulkMove(w http.ResponseWriter, r *http.Request) {
	var req bulkMoveRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.store.BulkMoveToRoom(r.Context(), req.IDs, req.RoomID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	s.logBulk(r, "bulk move", result)
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleBulkDelete(w http.ResponseWriter, r *http.Request) {
	var req bulkIDsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.store.BulkDelete(r.Context(), req.IDs)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	s.logBulk(r, "bulk delete", result)
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) logBulk(r *http.Request, msg string, result store.BulkResult) {
	log.FromContext(r.Context()).Info(msg,
		log.FieldOperation, log.OpBulk,
		"succeeded", result.Succeeded,
		"skipped", result.Skipped)
}
