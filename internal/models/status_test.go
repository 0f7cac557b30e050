package models

import "testing"

func TestItemStatusString(t *testing.T) {
	cases := []struct {
		status ItemStatus
		want   string
	}{
		{ItemAvailable, "Available"},
		{ItemAssigned, "Assigned"},
		{ItemExported, "Exported"},
		{ItemStatus(99), "Unknown"},
	}
	for _, c := range cases {
		if got := c.status.String(); got != c.want {
			t.Errorf("ItemStatus(%d).String() = %q, want %q", c.status, got, c.want)
		}
	}
}

func TestBoxStatusString(t *testing.T) {
	cases := []struct {
		status BoxStatus
		want   string
	}{
		{BoxEmpty, "Empty"},
		{BoxSealed, "Sealed"},
		{BoxExported, "Exported"},
		{BoxStatus(-1), "Unknown"},
	}
	for _, c := range cases {
		if got := c.status.String(); got != c.want {
			t.Errorf("BoxStatus(%d).String() = %q, want %q", c.status, got, c.want)
		}
	}
}

func TestPalletStatusString(t *testing.T) {
	cases := []struct {
		status PalletStatus
		want   string
	}{
		{PalletNew, "New"},
		{PalletComplete, "Complete"},
		{PalletExported, "Exported"},
		{PalletStatus(7), "Unknown"},
	}
	for _, c := range cases {
		if got := c.status.String(); got != c.want {
			t.Errorf("PalletStatus(%d).String() = %q, want %q", c.status, got, c.want)
		}
	}
}

func TestStatusTransitions(t *testing.T) {
	if !ItemAvailable.CanTransition(ItemAssigned) || !ItemAssigned.CanTransition(ItemExported) {
		t.Error("forward item transitions must be legal")
	}
	if ItemAvailable.CanTransition(ItemExported) {
		t.Error("skipping a lifecycle step must be illegal")
	}
	if ItemAssigned.CanTransition(ItemAvailable) || ItemExported.CanTransition(ItemAssigned) {
		t.Error("reversing a lifecycle step must be illegal")
	}
	if ItemExported.CanTransition(ItemExported + 1) {
		t.Error("transitions past Exported must be illegal")
	}

	if !BoxEmpty.CanTransition(BoxSealed) || !BoxSealed.CanTransition(BoxExported) {
		t.Error("forward box transitions must be legal")
	}
	if BoxEmpty.CanTransition(BoxExported) {
		t.Error("a box cannot be exported without being sealed")
	}

	if !PalletNew.CanTransition(PalletComplete) || !PalletComplete.CanTransition(PalletExported) {
		t.Error("forward pallet transitions must be legal")
	}
	if PalletNew.CanTransition(PalletExported) {
		t.Error("a pallet cannot be exported without being completed")
	}
}

func TestStatusValuesShareWireCodes(t *testing.T) {
	// The three lifecycles use the same ordinal codes on the wire
	if int16(ItemAvailable) != 0 || int16(BoxEmpty) != 0 || int16(PalletNew) != 0 {
		t.Error("initial status must encode as 0")
	}
	if int16(ItemExported) != 2 || int16(BoxExported) != 2 || int16(PalletExported) != 2 {
		t.Error("exported status must encode as 2")
	}
}

func TestExportModeString(t *testing.T) {
	if BoxExport.String() != "BoxExport" {
		t.Errorf("BoxExport.String() = %q", BoxExport.String())
	}
	if PalletExport.String() != "PalletExport" {
		t.Errorf("PalletExport.String() = %q", PalletExport.String())
	}
	if ExportMode(5).String() != "Unknown" {
		t.Errorf("out-of-range mode String() = %q", ExportMode(5).String())
	}
}
