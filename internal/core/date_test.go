package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSON(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`"2026-08-28"`, "2026-08-28"},
		{`""`, ""},
		{`null`, ""},
		{`"2026-08-28T10:00:00Z"`, "2026-08-28"}, // timestamp tolerated, date kept
	}
	for i, tc := range cases {
		var d Date
		if err := json.Unmarshal([]byte(tc.in), &d); err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if d.String() != tc.want {
			t.Fatalf("case %d: got %q, want %q", i, d.String(), tc.want)
		}
	}

	b, err := json.Marshal(NewDate(2026, 8, 28))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2026-08-28"` {
		t.Fatalf("marshal = %s", b)
	}
	if b, _ := json.Marshal(Date{}); string(b) != `""` {
		t.Fatalf("zero date marshal = %s", b)
	}
}

func TestDateSameDay(t *testing.T) {
	d := NewDate(2026, 8, 28)
	if !d.SameDay(time.Date(2026, 8, 28, 23, 59, 0, 0, time.UTC)) {
		t.Fatalf("expected same day")
	}
	if d.SameDay(time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected different day")
	}
	if (Date{}).SameDay(time.Now()) {
		t.Fatalf("zero date matches nothing")
	}
}

func TestParseDateInvalid(t *testing.T) {
	if _, err := ParseDate("28/08/2026"); err == nil {
		t.Fatalf("expected error for non ISO input")
	}
}
