package core

import (
	"errors"
	"testing"
)

func TestRoomValidate(t *testing.T) {
	cases := []struct {
		room Room
		want error
	}{
		{Room{ID: "r1", Name: "Kitchen", Icon: IconStove, Budget: Money{Cents: 100000}}, nil},
		{Room{ID: "r2", Name: "Office"}, nil}, // zero budget means unconfigured
		{Room{ID: "r3", Name: ""}, ErrEmptyName},
		{Room{ID: "r4", Name: "   "}, ErrEmptyName},
		{Room{ID: "r5", Name: "Attic", Budget: Money{Cents: -1}}, ErrNegativeAmount},
	}
	for i, tc := range cases {
		if err := tc.room.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d: got %v, want %v", i, err, tc.want)
		}
	}
}

func TestItemValidate(t *testing.T) {
	good := Item{ID: "i1", Name: "Oven", Category: CategoryAppliances, Quantity: 1, Status: StatusWishlist}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		mutate func(*Item)
		want   error
	}{
		{func(i *Item) { i.Name = "" }, ErrEmptyName},
		{func(i *Item) { i.Category = "gadgets" }, ErrInvalidCategory},
		{func(i *Item) { i.Category = "" }, ErrInvalidCategory},
		{func(i *Item) { i.Status = "lost" }, ErrInvalidStatus},
		{func(i *Item) { i.Quantity = 0 }, ErrInvalidQuantity},
		{func(i *Item) { i.Price = Money{Cents: -100} }, ErrNegativeAmount},
	}
	for i, tc := range cases {
		it := good
		tc.mutate(&it)
		if err := it.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d: got %v, want %v", i, err, tc.want)
		}
	}
}

func TestItemTotalCents(t *testing.T) {
	it := Item{Price: Money{Cents: 50000}, Quantity: 2}
	if got := it.TotalCents(); got != 100000 {
		t.Fatalf("total = %d, want 100000", got)
	}
}

func TestNormalizeIcon(t *testing.T) {
	if got := NormalizeIcon(IconSofa); got != IconSofa {
		t.Fatalf("known icon changed: %s", got)
	}
	if got := NormalizeIcon("sparkles"); got != DefaultIcon {
		t.Fatalf("unknown icon = %s, want %s", got, DefaultIcon)
	}
	if got := NormalizeIcon(""); got != DefaultIcon {
		t.Fatalf("empty icon = %s, want %s", got, DefaultIcon)
	}
}

func TestCategoryAndStatusSets(t *testing.T) {
	for _, c := range Categories() {
		if !c.Valid() {
			t.Fatalf("category %s should be valid", c)
		}
	}
	if Category("gadgets").Valid() {
		t.Fatalf("unexpected valid category")
	}
	for _, s := range []Status{StatusWishlist, StatusOrdered, StatusDelivered, StatusReturned} {
		if !s.Valid() {
			t.Fatalf("status %s should be valid", s)
		}
	}
	if Status("active").Valid() {
		t.Fatalf("unexpected valid status")
	}
}
