package printer

import (
	"bytes"
	"testing"
)

func TestGenerateLabelsPDF(t *testing.T) {
	cfg := LabelConfig{
		Barcodes:   []string{"BOX-000001", "BOX-000002", "BOX-000003"},
		Caption:    "BOX",
		Cols:       3,
		Rows:       7,
		MarginTop:  10,
		MarginLeft: 5,
	}

	pdfBytes, err := GenerateLabelsPDF(cfg)
	if err != nil {
		t.Fatalf("Failed to generate PDF: %v", err)
	}
	if len(pdfBytes) == 0 {
		t.Fatal("PDF should not be empty")
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Error("output does not look like a PDF")
	}
}

func TestGenerateLabelsPDFValidation(t *testing.T) {
	if _, err := GenerateLabelsPDF(LabelConfig{Cols: 3, Rows: 7}); err == nil {
		t.Error("empty barcode list should be rejected")
	}
	if _, err := GenerateLabelsPDF(LabelConfig{Barcodes: []string{"A"}, Cols: 0, Rows: 7}); err == nil {
		t.Error("zero-column grid should be rejected")
	}
}
