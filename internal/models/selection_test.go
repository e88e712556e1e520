package models

import "testing"

func TestPayloadRange_Contains(t *testing.T) {
	r := PayloadRange{Low: 0, High: 10000}

	tests := []struct {
		name     string
		kg       float64
		expected bool
	}{
		{"inside", 500, true},
		{"low boundary", 0, false},
		{"high boundary", 10000, false},
		{"above", 12000, false},
		{"below", -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.kg); got != tt.expected {
				t.Errorf("Contains(%v) = %v, want %v", tt.kg, got, tt.expected)
			}
		})
	}
}

func TestPayloadRange_Clamp(t *testing.T) {
	tests := []struct {
		name     string
		in       PayloadRange
		expected PayloadRange
	}{
		{"within bounds", PayloadRange{100, 200}, PayloadRange{100, 200}},
		{"low below min", PayloadRange{-50, 200}, PayloadRange{0, 200}},
		{"high above max", PayloadRange{100, 20000}, PayloadRange{100, 9600}},
		{"both outside", PayloadRange{-1, 99999}, PayloadRange{0, 9600}},
		{"entirely below", PayloadRange{-10, -5}, PayloadRange{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Clamp(0, 9600); got != tt.expected {
				t.Errorf("Clamp() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestSelection_Key(t *testing.T) {
	a := Selection{Site: SiteAll, PayloadRange: PayloadRange{0, 9600}}
	b := Selection{Site: SiteAll, PayloadRange: PayloadRange{0, 9600}}
	c := Selection{Site: "KSC LC-39A", PayloadRange: PayloadRange{0, 9600}}

	if a.Key() != b.Key() {
		t.Error("equal selections should share a key")
	}
	if a.Key() == c.Key() {
		t.Error("different sites should not share a key")
	}
}

func TestSelectionUpdate_Kind(t *testing.T) {
	site := "CCAFS LC-40"
	rng := &PayloadRange{Low: 1, High: 2}

	tests := []struct {
		name     string
		update   SelectionUpdate
		expected string
	}{
		{"site only", SelectionUpdate{Site: &site}, "site"},
		{"range only", SelectionUpdate{PayloadRange: rng}, "range"},
		{"both", SelectionUpdate{Site: &site, PayloadRange: rng}, "site_and_range"},
		{"neither", SelectionUpdate{}, "empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.update.Kind(); got != tt.expected {
				t.Errorf("Kind() = %q, want %q", got, tt.expected)
			}
		})
	}
}
