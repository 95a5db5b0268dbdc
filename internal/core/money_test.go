package core

import (
	"encoding/json"
	"testing"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
		ok    bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"$500", 50000, true},
		{"$ 500", 50000, true},
		{"€12,34", 1234, true},
		{"1,299.00", 129900, true},
		{"1,299", 129900, true},
		{"0", 0, true},
		{"", 0, true}, // absent price defaults to zero
		{"12.345", 1234, true},
		{"12.346", 1235, true},
		{"-5", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
	}
	for i, tc := range cases {
		cents, err := ParsePrice(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("case %d (%q): unexpected error %v", i, tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d (%q): expected error", i, tc.in)
		}
		if tc.ok && cents != tc.cents {
			t.Fatalf("case %d (%q): cents = %d, want %d", i, tc.in, cents, tc.cents)
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{50000, "500"},
		{1234, "12.34"},
		{1230, "12.30"},
		{5, "0.05"},
		{0, "0"},
		{-1234, "-12.34"},
	}
	for i, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Fatalf("case %d: got %q, want %q", i, got, tc.want)
		}
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 5, 1234, 50000, 129900} {
		b, err := json.Marshal(Money{Cents: cents})
		if err != nil {
			t.Fatalf("marshal %d: %v", cents, err)
		}
		var m Money
		if err := json.Unmarshal(b, &m); err != nil {
			t.Fatalf("unmarshal %s: %v", b, err)
		}
		if m.Cents != cents {
			t.Fatalf("round trip %d -> %s -> %d", cents, b, m.Cents)
		}
	}
	// Quoted values with currency symbols appear in imported data.
	var m Money
	if err := json.Unmarshal([]byte(`"$12.50"`), &m); err != nil {
		t.Fatalf("unmarshal quoted: %v", err)
	}
	if m.Cents != 1250 {
		t.Fatalf("quoted cents = %d, want 1250", m.Cents)
	}
}

func TestMoneyDollars(t *testing.T) {
	if got := (Money{Cents: 1234}).Dollars(); got != 12.34 {
		t.Fatalf("dollars = %v", got)
	}
}
