package packaging

import (
	"strings"
	"testing"
)

func TestParseBarcodeListSplitsLines(t *testing.T) {
	content := "AAA\nBBB\nCCC"
	got := ParseBarcodeList(content)
	want := []string{"AAA", "BBB", "CCC"}
	if len(got) != len(want) {
		t.Fatalf("got %d barcodes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("barcode[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseBarcodeListHandlesCRLF(t *testing.T) {
	got := ParseBarcodeList("AAA\r\nBBB\r\n")
	if len(got) != 2 || got[0] != "AAA" || got[1] != "BBB" {
		t.Errorf("ParseBarcodeList(CRLF) = %v", got)
	}
}

func TestParseBarcodeListSkipsBlanksAndTrims(t *testing.T) {
	got := ParseBarcodeList("  AAA  \n\n   \nBBB\n")
	if len(got) != 2 || got[0] != "AAA" || got[1] != "BBB" {
		t.Errorf("ParseBarcodeList = %v, want [AAA BBB]", got)
	}
}

func TestParseBarcodeListPreservesOrder(t *testing.T) {
	got := ParseBarcodeList("Z\nA\nM")
	if got[0] != "Z" || got[1] != "A" || got[2] != "M" {
		t.Errorf("ParseBarcodeList reordered input: %v", got)
	}
}

func TestParseBarcodeListEmpty(t *testing.T) {
	if got := ParseBarcodeList(""); len(got) != 0 {
		t.Errorf("ParseBarcodeList(\"\") = %v, want empty", got)
	}
	if got := ParseBarcodeList("\n\n  \n"); len(got) != 0 {
		t.Errorf("ParseBarcodeList(blank lines) = %v, want empty", got)
	}
}

func TestBuildBatchInsert(t *testing.T) {
	batch := []string{"AAA", "BBB", "CCC"}
	sql, args := buildBatchInsert("items", "imported_at", batch, 7)

	if !strings.HasPrefix(sql, "INSERT INTO items (bar_code, production_line, status, imported_at) VALUES ") {
		t.Errorf("unexpected statement prefix: %s", sql)
	}
	if !strings.HasSuffix(sql, "ON CONFLICT (bar_code) DO NOTHING") {
		t.Errorf("missing conflict clause: %s", sql)
	}
	if got := strings.Count(sql, "(?, ?, 0, NOW())"); got != len(batch) {
		t.Errorf("value tuple count = %d, want %d", got, len(batch))
	}
	if len(args) != len(batch)*2 {
		t.Fatalf("arg count = %d, want %d", len(args), len(batch)*2)
	}
	if args[0] != "AAA" || args[1] != int64(7) {
		t.Errorf("first tuple args = (%v, %v), want (AAA, 7)", args[0], args[1])
	}
	if args[4] != "CCC" || args[5] != int64(7) {
		t.Errorf("last tuple args = (%v, %v), want (CCC, 7)", args[4], args[5])
	}
}

func TestBuildBatchInsertPalletTimestampColumn(t *testing.T) {
	sql, _ := buildBatchInsert("pallets", "created_at", []string{"PAL-1"}, 1)
	if !strings.Contains(sql, "(bar_code, production_line, status, created_at)") {
		t.Errorf("pallet insert should use created_at: %s", sql)
	}
}

func TestImportTargetsCoverAllKinds(t *testing.T) {
	for _, kind := range []ImportKind{ImportItems, ImportBoxes, ImportPallets} {
		target, ok := importTargets[kind]
		if !ok {
			t.Errorf("no import target for kind %q", kind)
			continue
		}
		if target.table == "" || target.timestampCol == "" {
			t.Errorf("incomplete target for kind %q: %+v", kind, target)
		}
	}
	if importTargets[ImportPallets].timestampCol != "created_at" {
		t.Errorf("pallet timestamp column = %q, want created_at", importTargets[ImportPallets].timestampCol)
	}
}
