package core

import (
	"errors"
	"strings"
	"time"
)

const (
	CategoryFurniture   Category = "furniture"
	CategoryElectronics Category = "electronics"
	CategoryAppliances  Category = "appliances"
	CategoryDecor       Category = "decor"
	CategoryLighting    Category = "lighting"
	CategoryOutdoor     Category = "outdoor"
	CategoryOther       Category = "other"
)

const (
	StatusWishlist  Status = "wishlist"
	StatusOrdered   Status = "ordered"
	StatusDelivered Status = "delivered"
	StatusReturned  Status = "returned"
)

// DefaultStatus is applied when an item is created without a status.
const DefaultStatus = StatusWishlist

const (
	IconSofa   Icon = "sofa"
	IconBed    Icon = "bed"
	IconStove  Icon = "stove"
	IconShower Icon = "shower"
	IconDesk   Icon = "desk"
	IconTree   Icon = "tree"
	IconBox    Icon = "box"
)

// DefaultIcon is used for rooms created without an icon and for
// unrecognized icon tokens coming from imports.
const DefaultIcon = IconBox

type (
	Category string
	Status   string
	Icon     string

	// Room is a named container with an optional budget. A budget of zero
	// means no budget is configured.
	Room struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Icon      Icon      `json:"icon"`
		Budget    Money     `json:"budget"`
		CreatedAt time.Time `json:"createdAt"`
	}

	// Item is a tracked possession. RoomID is empty when unassigned; a
	// RoomID pointing at a deleted room is treated as unassigned too.
	Item struct {
		ID             string    `json:"id"`
		Name           string    `json:"name"`
		Category       Category  `json:"category"`
		RoomID         string    `json:"roomId,omitempty"`
		Price          Money     `json:"price"`
		Quantity       int       `json:"quantity"`
		Status         Status    `json:"status"`
		OrderDate      Date      `json:"orderDate,omitempty"`
		DeliveryDate   Date      `json:"deliveryDate,omitempty"`
		WarrantyExpiry Date      `json:"warrantyExpiry,omitempty"`
		URL            string    `json:"url,omitempty"`
		Image          string    `json:"image,omitempty"`
		Notes          string    `json:"notes,omitempty"`
		CreatedAt      time.Time `json:"createdAt"`
		UpdatedAt      time.Time `json:"updatedAt"`
	}

	// Filter is the ephemeral filter state applied to the item list.
	// Zero values mean "no constraint".
	Filter struct {
		Search   string
		Room     string
		Category Category
		Status   Status
	}
)

var (
	ErrEmptyName       = errors.New("empty name")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrNegativeAmount  = errors.New("negative amount")

	ErrNotFound    = errors.New("not found")
	ErrCorruptData = errors.New("corrupt snapshot data")
	ErrStorage     = errors.New("storage failure")
)

// Categories lists every valid item category in display order.
func Categories() []Category {
	return []Category{
		CategoryFurniture, CategoryElectronics, CategoryAppliances,
		CategoryDecor, CategoryLighting, CategoryOutdoor, CategoryOther,
	}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryFurniture, CategoryElectronics, CategoryAppliances,
		CategoryDecor, CategoryLighting, CategoryOutdoor, CategoryOther:
		return true
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusWishlist, StatusOrdered, StatusDelivered, StatusReturned:
		return true
	}
	return false
}

// NormalizeIcon maps unknown icon tokens to DefaultIcon so snapshots and
// imports carrying stray values never fail validation.
func NormalizeIcon(i Icon) Icon {
	switch i {
	case IconSofa, IconBed, IconStove, IconShower, IconDesk, IconTree, IconBox:
		return i
	}
	return DefaultIcon
}

func (r Room) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	if r.Budget.Cents < 0 {
		return ErrNegativeAmount
	}
	return nil
}

func (i Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}
	if !i.Category.Valid() {
		return ErrInvalidCategory
	}
	if !i.Status.Valid() {
		return ErrInvalidStatus
	}
	if i.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if i.Price.Cents < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// TotalCents is the line total for the item (unit price times quantity).
func (i Item) TotalCents() int64 {
	return i.Price.Cents * int64(i.Quantity)
}

// IsEmpty reports whether no filter constraint is active.
func (f Filter) IsEmpty() bool {
	return f.Search == "" && f.Room == "" && f.Category == "" && f.Status == ""
}
