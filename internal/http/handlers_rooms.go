package http

import (
	"net/http"

	"inventory/internal/core"
	"inventory/internal/log"
	"inventory/internal/store"
)

type roomCreateRequest struct {
	Name   string     `json:"name"`
	Icon   core.Icon  `json:"icon"`
	Budget core.Money `json:"budget"`
}

type roomPatchRequest struct {
	Name   *string     `json:"name"`
	Icon   *core.Icon  `json:"icon"`
	Budget *core.Money `json:"budget"`
}

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.store.Rooms())
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req roomCreateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	room, err := s.store.CreateRoom(r.Context(), store.RoomDraft{
		Name:   req.Name,
		Icon:   req.Icon,
		Budget: req.Budget,
	})
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	log.FromContext(r.Context()).Info("room created",
		log.FieldOperation, log.OpCreate,
		log.FieldRoomID, room.ID,
		log.FieldRoomName, room.Name)
	writeJSON(w, r, http.StatusCreated, room)
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	room, err := s.store.Room(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, room)
}

func (s *Server) handleUpdateRoom(w http.ResponseWriter, r *http.Request) {
	var req roomPatchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	room, err := s.store.UpdateRoom(r.Context(), r.PathValue("id"), store.RoomPatch{
		Name:   req.Name,
		Icon:   req.Icon,
		Budget: req.Budget,
	})
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, room)
}

func (s *Server) handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteRoom(r.Context(), id); err != nil {
		writeStoreError(w, r, err)
		return
	}

	log.FromContext(r.Context()).Info("room deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldRoomID, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAssignUnassigned(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	moved, err := s.store.AssignUnassigned(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	log.FromContext(r.Context()).Info("unassigned items moved",
		log.FieldRoomID, id,
		log.FieldCount, moved)
	writeJSON(w, r, http.StatusOK, map[string]int{"moved": moved})
}

func (s *Server) handleSetBudgets(w http.ResponseWriter, r *http.Request) {
	var req map[string]core.Money
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.store.SetBudgets(r.Context(), req)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]int{"updated": updated})
}
