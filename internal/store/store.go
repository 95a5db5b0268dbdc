// Package store implements the domain store: the single source of truth
// for rooms and items. Every mutation is applied in memory first and then
// mirrored through the Snapshotter; a failed save keeps the mutation and
// surfaces an error wrapping core.ErrStorage so the caller knows
// persistence lagged behind memory.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"inventory/internal/core"
)

// Store owns the room and item collections. All exported methods are safe
// for concurrent use; there is exactly one logical writer, serialized by
// the mutex.
type Store struct {
	mu       sync.Mutex
	snap     Snapshotter
	rooms    []core.Room
	items    []core.Item
	revision uint64

	now func() time.Time
}

// RoomDraft carries the caller-supplied fields for a new room.
type RoomDraft struct {
	Name   string
	Icon   core.Icon
	Budget core.Money
}

// ItemDraft carries the caller-supplied fields for a new item. Zero
// quantity defaults to 1, empty status to core.DefaultStatus.
type ItemDraft struct {
	Name           string
	Category       core.Category
	RoomID         string
	Price          core.Money
	Quantity       int
	Status         core.Status
	OrderDate      core.Date
	DeliveryDate   core.Date
	WarrantyExpiry core.Date
	URL            string
	Image          string
	Notes          string
}

// RoomPatch is a partial update; nil fields are preserved.
type RoomPatch struct {
	Name   *string
	Icon   *core.Icon
	Budget *core.Money
}

// ItemPatch is a partial update; nil fields are preserved.
type ItemPatch struct {
	Name           *string
	Category       *core.Category
	RoomID         *string
	Price          *core.Money
	Quantity       *int
	Status         *core.Status
	OrderDate      *core.Date
	DeliveryDate   *core.Date
	WarrantyExpiry *core.Date
	URL            *string
	Image          *string
	Notes          *string
}

// BulkResult reports the outcome of a best-effort batch operation.
type BulkResult struct {
	Succeeded int `json:"succeeded"`
	Skipped   int `json:"skipped"`
}

func New(snap Snapshotter) *Store {
	return &Store{snap: snap, now: time.Now}
}

// Load restores both collections from the snapshotter. A corrupt payload
// is logged and replaced by an empty collection; the wrapped error is
// returned so the caller can warn the user, but the store stays usable.
func (s *Store) Load(ctx context.Context) error {
	rooms, items, err := s.snap.Load(ctx)
	s.mu.Lock()
	s.rooms = rooms
	s.items = items
	s.mu.Unlock()
	if err != nil {
		slog.WarnContext(ctx, "Snapshot load recovered partially",
			"error", err, "rooms", len(rooms), "items", len(items))
		return fmt.Errorf("load snapshot: %w", err)
	}
	slog.InfoContext(ctx, "Snapshot loaded", "rooms", len(rooms), "items", len(items))
	return nil
}

// Revision increases on every successful in-memory mutation. Derived-view
// caches key on it to stay coherent.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Rooms returns a copy of the room collection in insertion order.
func (s *Store) Rooms() []core.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Room, len(s.rooms))
	copy(out, s.rooms)
	return out
}

// Items returns a copy of the item collection in insertion order.
func (s *Store) Items() []core.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Room looks up a room by id.
func (s *Store) Room(id string) (core.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rooms {
		if r.ID == id {
			return r, nil
		}
	}
	return core.Room{}, fmt.Errorf("room %s: %w", id, core.ErrNotFound)
}

// Item looks up an item by id.
func (s *Store) Item(id string) (core.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID == id {
			return it, nil
		}
	}
	return core.Item{}, fmt.Errorf("item %s: %w", id, core.ErrNotFound)
}

// CreateRoom validates the draft, assigns an id and appends the room.
func (s *Store) CreateRoom(ctx context.Context, d RoomDraft) (core.Room, error) {
	room := core.Room{
		ID:        core.NewID(),
		Name:      strings.TrimSpace(d.Name),
		Icon:      core.NormalizeIcon(d.Icon),
		Budget:    d.Budget,
		CreatedAt: s.now().UTC(),
	}
	if err := room.Validate(); err != nil {
		return core.Room{}, fmt.Errorf("create room: %w", err)
	}
	s.mu.Lock()
	s.rooms = append(s.rooms, room)
	s.revision++
	s.mu.Unlock()
	return room, s.persist(ctx)
}

// UpdateRoom merges the patch into the room matching id.
func (s *Store) UpdateRoom(ctx context.Context, id string, p RoomPatch) (core.Room, error) {
	s.mu.Lock()
	idx := s.roomIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return core.Room{}, fmt.Errorf("update room %s: %w", id, core.ErrNotFound)
	}
	room := s.rooms[idx]
	if p.Name != nil {
		room.Name = strings.TrimSpace(*p.Name)
	}
	if p.Icon != nil {
		room.Icon = core.NormalizeIcon(*p.Icon)
	}
	if p.Budget != nil {
		room.Budget = *p.Budget
	}
	if err := room.Validate(); err != nil {
		s.mu.Unlock()
		return core.Room{}, fmt.Errorf("update room %s: %w", id, err)
	}
	s.rooms[idx] = room
	s.revision++
	s.mu.Unlock()
	return room, s.persist(ctx)
}

// DeleteRoom removes the room and detaches its items instead of deleting
// them. Deleting an absent id is a no-op.
func (s *Store) DeleteRoom(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.roomIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	s.rooms = append(s.rooms[:idx], s.rooms[idx+1:]...)
	detached := 0
	for i := range s.items {
		if s.items[i].RoomID == id {
			s.items[i].RoomID = ""
			s.items[i].UpdatedAt = s.now().UTC()
			detached++
		}
	}
	s.revision++
	s.mu.Unlock()
	slog.InfoContext(ctx, "Room deleted", "room_id", id, "items_detached", detached)
	return s.persist(ctx)
}

// CreateItem validates the draft, applies defaults and appends the item.
func (s *Store) CreateItem(ctx context.Context, d ItemDraft) (core.Item, error) {
	now := s.now().UTC()
	item := core.Item{
		ID:             core.NewID(),
		Name:           strings.TrimSpace(d.Name),
		Category:       d.Category,
		RoomID:         d.RoomID,
		Price:          d.Price,
		Quantity:       d.Quantity,
		Status:         d.Status,
		OrderDate:      d.OrderDate,
		DeliveryDate:   d.DeliveryDate,
		WarrantyExpiry: d.WarrantyExpiry,
		URL:            d.URL,
		Image:          d.Image,
		Notes:          d.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	if item.Status == "" {
		item.Status = core.DefaultStatus
	}
	if err := item.Validate(); err != nil {
		return core.Item{}, fmt.Errorf("create item: %w", err)
	}
	s.mu.Lock()
	s.items = append(s.items, item)
	s.revision++
	s.mu.Unlock()
	return item, s.persist(ctx)
}

// UpdateItem merges the patch into the item matching id and refreshes
// updatedAt.
func (s *Store) UpdateItem(ctx context.Context, id string, p ItemPatch) (core.Item, error) {
	s.mu.Lock()
	idx := s.itemIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return core.Item{}, fmt.Errorf("update item %s: %w", id, core.ErrNotFound)
	}
	item := s.items[idx]
	applyItemPatch(&item, p)
	item.UpdatedAt = s.now().UTC()
	if err := item.Validate(); err != nil {
		s.mu.Unlock()
		return core.Item{}, fmt.Errorf("update item %s: %w", id, err)
	}
	s.items[idx] = item
	s.revision++
	s.mu.Unlock()
	return item, s.persist(ctx)
}

// DeleteItem removes the item unconditionally; absent ids are a no-op.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.itemIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.revision++
	s.mu.Unlock()
	return s.persist(ctx)
}

// DuplicateItem clones an item under a new id with a copy marker and
// fresh timestamps.
func (s *Store) DuplicateItem(ctx context.Context, id string) (core.Item, error) {
	s.mu.Lock()
	idx := s.itemIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return core.Item{}, fmt.Errorf("duplicate item %s: %w", id, core.ErrNotFound)
	}
	now := s.now().UTC()
	clone := s.items[idx]
	clone.ID = core.NewID()
	clone.Name = clone.Name + " (Copy)"
	clone.CreatedAt = now
	clone.UpdatedAt = now
	s.items = append(s.items, clone)
	s.revision++
	s.mu.Unlock()
	return clone, s.persist(ctx)
}

// BulkUpdateStatus sets the status on every listed item. Unknown ids are
// skipped, not fatal.
func (s *Store) BulkUpdateStatus(ctx context.Context, ids []string, status core.Status) (BulkResult, error) {
	if !status.Valid() {
		return BulkResult{}, fmt.Errorf("bulk update status: %w", core.ErrInvalidStatus)
	}
	var res BulkResult
	s.mu.Lock()
	now := s.now().UTC()
	for _, id := range ids {
		idx := s.itemIndex(id)
		if idx < 0 {
			res.Skipped++
			continue
		}
		s.items[idx].Status = status
		s.items[idx].UpdatedAt = now
		res.Succeeded++
	}
	if res.Succeeded > 0 {
		s.revision++
	}
	s.mu.Unlock()
	if res.Succeeded == 0 {
		return res, nil
	}
	return res, s.persist(ctx)
}

// BulkMoveToRoom assigns every listed item to the room. An empty roomID
// unassigns; a nonexistent room fails the whole batch before any change.
func (s *Store) BulkMoveToRoom(ctx context.Context, ids []string, roomID string) (BulkResult, error) {
	s.mu.Lock()
	if roomID != "" && s.roomIndex(roomID) < 0 {
		s.mu.Unlock()
		return BulkResult{}, fmt.Errorf("bulk move to room %s: %w", roomID, core.ErrNotFound)
	}
	var res BulkResult
	now := s.now().UTC()
	for _, id := range ids {
		idx := s.itemIndex(id)
		if idx < 0 {
			res.Skipped++
			continue
		}
		s.items[idx].RoomID = roomID
		s.items[idx].UpdatedAt = now
		res.Succeeded++
	}
	if res.Succeeded > 0 {
		s.revision++
	}
	s.mu.Unlock()
	if res.Succeeded == 0 {
		return res, nil
	}
	return res, s.persist(ctx)
}

// BulkDelete removes every listed item, skipping unknown ids.
func (s *Store) BulkDelete(ctx context.Context, ids []string) (BulkResult, error) {
	var res BulkResult
	s.mu.Lock()
	for _, id := range ids {
		idx := s.itemIndex(id)
		if idx < 0 {
			res.Skipped++
			continue
		}
		s.items = append(s.items[:idx], s.items[idx+1:]...)
		res.Succeeded++
	}
	if res.Succeeded > 0 {
		s.revision++
	}
	s.mu.Unlock()
	if res.Succeeded == 0 {
		return res, nil
	}
	return res, s.persist(ctx)
}

// AssignUnassigned moves every unassigned item into the given room and
// returns how many moved.
func (s *Store) AssignUnassigned(ctx context.Context, roomID string) (int, error) {
	s.mu.Lock()
	if s.roomIndex(roomID) < 0 {
		s.mu.Unlock()
		return 0, fmt.Errorf("assign unassigned to %s: %w", roomID, core.ErrNotFound)
	}
	known := make(map[string]struct{}, len(s.rooms))
	for _, r := range s.rooms {
		known[r.ID] = struct{}{}
	}
	now := s.now().UTC()
	moved := 0
	for i := range s.items {
		if _, ok := known[s.items[i].RoomID]; s.items[i].RoomID == "" || !ok {
			s.items[i].RoomID = roomID
			s.items[i].UpdatedAt = now
			moved++
		}
	}
	if moved > 0 {
		s.revision++
	}
	s.mu.Unlock()
	if moved == 0 {
		return 0, nil
	}
	return moved, s.persist(ctx)
}

// SetBudgets applies the bulk budget editor: unknown room ids are skipped.
func (s *Store) SetBudgets(ctx context.Context, budgets map[string]core.Money) (int, error) {
	s.mu.Lock()
	updated := 0
	for id, budget := range budgets {
		if budget.Cents < 0 {
			continue
		}
		if idx := s.roomIndex(id); idx >= 0 {
			s.rooms[idx].Budget = budget
			updated++
		}
	}
	if updated > 0 {
		s.revision++
	}
	s.mu.Unlock()
	if updated == 0 {
		return 0, nil
	}
	return updated, s.persist(ctx)
}

// ImportItems appends externally sourced items (CSV import). Each item
// gets a fresh id and timestamps; existing items are never replaced.
func (s *Store) ImportItems(ctx context.Context, items []core.Item) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	now := s.now().UTC()
	s.mu.Lock()
	for _, it := range items {
		it.ID = core.NewID()
		it.CreatedAt = now
		it.UpdatedAt = now
		s.items = append(s.items, it)
	}
	s.revision++
	s.mu.Unlock()
	return len(items), s.persist(ctx)
}

// ReplaceAll swaps in a full snapshot (JSON import). Ids from the import
// are kept so room references stay intact.
func (s *Store) ReplaceAll(ctx context.Context, rooms []core.Room, items []core.Item) error {
	s.mu.Lock()
	s.rooms = rooms
	s.items = items
	s.revision++
	s.mu.Unlock()
	return s.persist(ctx)
}

var defaultRooms = []struct {
	name   string
	icon   core.Icon
	budget int64
}{
	{"Living Room", core.IconSofa, 500000},
	{"Bedroom", core.IconBed, 300000},
	{"Kitchen", core.IconStove, 1000000},
	{"Bathroom", core.IconShower, 200000},
	{"Office", core.IconDesk, 200000},
}

// SeedDefaultRooms populates the starter rooms when the store has none.
// Returns how many rooms were created (zero when the store already has
// rooms).
func (s *Store) SeedDefaultRooms(ctx context.Context) (int, error) {
	s.mu.Lock()
	if len(s.rooms) > 0 {
		s.mu.Unlock()
		return 0, nil
	}
	now := s.now().UTC()
	for _, d := range defaultRooms {
		s.rooms = append(s.rooms, core.Room{
			ID:        core.NewID(),
			Name:      d.name,
			Icon:      d.icon,
			Budget:    core.Money{Cents: d.budget},
			CreatedAt: now,
		})
	}
	s.revision++
	seeded := len(s.rooms)
	s.mu.Unlock()
	slog.InfoContext(ctx, "Seeded default rooms", "count", seeded)
	return seeded, s.persist(ctx)
}

func (s *Store) roomIndex(id string) int {
	for i, r := range s.rooms {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) itemIndex(id string) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// persist mirrors the current collections through the snapshotter. The
// in-memory state is already committed; a failure is reported so callers
// can tell the user the last save lagged.
func (s *Store) persist(ctx context.Context) error {
	s.mu.Lock()
	rooms := make([]core.Room, len(s.rooms))
	copy(rooms, s.rooms)
	items := make([]core.Item, len(s.items))
	copy(items, s.items)
	s.mu.Unlock()
	if err := s.snap.Save(ctx, rooms, items); err != nil {
		slog.ErrorContext(ctx, "Snapshot save failed, in-memory state retained", "error", err)
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func applyItemPatch(item *core.Item, p ItemPatch) {
	if p.Name != nil {
		item.Name = strings.TrimSpace(*p.Name)
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.RoomID != nil {
		item.RoomID = *p.RoomID
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.Status != nil {
		item.Status = *p.Status
	}
	if p.OrderDate != nil {
		item.OrderDate = *p.OrderDate
	}
	if p.DeliveryDate != nil {
		item.DeliveryDate = *p.DeliveryDate
	}
	if p.WarrantyExpiry != nil {
		item.WarrantyExpiry = *p.WarrantyExpiry
	}
	if p.URL != nil {
		item.URL = *p.URL
	}
	if p.Image != nil {
		item.Image = *p.Image
	}
	if p.Notes != nil {
		item.Notes = *p.Notes
	}
}
