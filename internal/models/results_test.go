package models

import "testing"

func TestImportResultSuccess(t *testing.T) {
	r := &ImportResult{TotalRecords: 10, ImportedCount: 8, SkippedCount: 2}
	if !r.Success() {
		t.Error("result without errors should be successful")
	}

	r.ErrorCount = 3
	r.Errors = append(r.Errors, "batch insert failed")
	if r.Success() {
		t.Error("result with errors should not be successful")
	}
}

func TestImportResultSummary(t *testing.T) {
	r := &ImportResult{TotalRecords: 100, ImportedCount: 90, SkippedCount: 7, ErrorCount: 3}
	want := "Total: 100, Imported: 90, Skipped: 7, Errors: 3"
	if got := r.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func TestExportResultSummary(t *testing.T) {
	r := &ExportResult{Success: true, DocumentID: 42, ItemsExported: 300, BoxesExported: 12, PalletsExported: 1}
	want := "Document #42 - Items: 300, Boxes: 12, Pallets: 1"
	if got := r.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}

	failed := &ExportResult{Error: "some boxes not found or not sealed"}
	if got := failed.Summary(); got != "Failed: some boxes not found or not sealed" {
		t.Errorf("failed Summary() = %q", got)
	}
}
