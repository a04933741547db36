package models

import (
	"errors"
	"testing"
)

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{"NORMAL", VariantNormal, false},
		{"extended art", VariantExtendedArt, false},
		{"Full-Art", VariantFullArt, false},
		{" alt_art ", VariantAltArt, false},
		{"holo", "", true},
	}

	for _, tt := range tests {
		got, err := ParseVariant(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownEnum) {
				t.Errorf("ParseVariant(%q) expected ErrUnknownEnum, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseVariant(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestParseContainerTypes(t *testing.T) {
	if b, err := ParseBinderType("non curated"); err != nil || b != BinderNonCurated {
		t.Errorf("ParseBinderType(non curated) = %q, %v", b, err)
	}
	if _, err := ParseBinderType("vault"); err == nil {
		t.Error("expected error for unknown binder type")
	}
	if d, err := ParseDeckType("sellable"); err != nil || d != DeckSellable {
		t.Errorf("ParseDeckType(sellable) = %q, %v", d, err)
	}
	if r, err := ParseRarity("Legendary"); err != nil || r != RarityLegendary {
		t.Errorf("ParseRarity(Legendary) = %q, %v", r, err)
	}
}

func TestEnumValidity(t *testing.T) {
	for _, b := range AllBinderTypes() {
		if !b.Valid() {
			t.Errorf("%s should be valid", b)
		}
	}
	if BinderType("rares").Valid() {
		t.Error("Valid must be exact, lowercase names are not valid")
	}
	if !DeckSellable.Valid() || DeckType("").Valid() {
		t.Error("deck type validity is wrong")
	}
}

func TestAllEnumsComplete(t *testing.T) {
	if len(AllRarities()) != 4 {
		t.Errorf("AllRarities() returned %d, want 4", len(AllRarities()))
	}
	if len(AllVariants()) != 4 {
		t.Errorf("AllVariants() returned %d, want 4", len(AllVariants()))
	}
	if len(AllBinderTypes()) != 5 {
		t.Errorf("AllBinderTypes() returned %d, want 5", len(AllBinderTypes()))
	}
	if len(AllDeckTypes()) != 2 {
		t.Errorf("AllDeckTypes() returned %d, want 2", len(AllDeckTypes()))
	}
}
