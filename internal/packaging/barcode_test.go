package packaging

import "testing"

func TestCleanBarcodeTruncatesAtSeparator(t *testing.T) {
	in := "0104600000000000212AAAA\x1d93Zjc4"
	got := CleanBarcode(in)
	want := "0104600000000000212AAAA"
	if got != want {
		t.Errorf("CleanBarcode(%q) = %q, want %q", in, got, want)
	}
}

func TestCleanBarcodeSeparatorWinsOverHeuristic(t *testing.T) {
	// Separator rule applies even if "93" also appears
	in := "ABCDEFGHIJKLMNOPQRSTUV\x1dXX93YY"
	got := CleanBarcode(in)
	want := "ABCDEFGHIJKLMNOPQRSTUV"
	if got != want {
		t.Errorf("CleanBarcode(%q) = %q, want %q", in, got, want)
	}
}

func TestCleanBarcodeHeuristicAtIndex20(t *testing.T) {
	prefix := "ABCDEFGHIJKLMNOPQRST" // 20 chars
	in := prefix + "93Zjc4"
	got := CleanBarcode(in)
	if got != prefix {
		t.Errorf("CleanBarcode(%q) = %q, want %q", in, got, prefix)
	}
}

func TestCleanBarcodeEarlyNinetyThreeUnchanged(t *testing.T) {
	// "93" before index 20 is part of the payload, not a suffix
	in := "0193ABCDEFGHIJKLMNOPQRSTUV"
	if got := CleanBarcode(in); got != in {
		t.Errorf("CleanBarcode(%q) = %q, want unchanged", in, got)
	}
}

func TestCleanBarcodeFirstOccurrenceDecides(t *testing.T) {
	// An early "93" masks a later one; the barcode stays whole
	in := "93ABCDEFGHIJKLMNOPQRST93XY"
	if got := CleanBarcode(in); got != in {
		t.Errorf("CleanBarcode(%q) = %q, want unchanged", in, got)
	}
}

func TestCleanBarcodeEmptyAndPlain(t *testing.T) {
	if got := CleanBarcode(""); got != "" {
		t.Errorf("CleanBarcode(\"\") = %q, want empty", got)
	}
	plain := "BOX-000123"
	if got := CleanBarcode(plain); got != plain {
		t.Errorf("CleanBarcode(%q) = %q, want unchanged", plain, got)
	}
}
