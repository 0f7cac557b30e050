package models

import (
	"fmt"
)

// ImportResult summarizes a bulk barcode import run.
// Counts are accumulated per batch as the run progresses; when any batch
// errors the whole transaction is rolled back, so a result with
// ErrorCount > 0 reports the tallies that were recorded even though the
// net database effect is zero.
type ImportResult struct {
	TotalRecords  int      `json:"totalRecords"`
	ImportedCount int      `json:"importedCount"`
	SkippedCount  int      `json:"skippedCount"`
	ErrorCount    int      `json:"errorCount"`
	Errors        []string `json:"errors,omitempty"`
}

// Success reports whether the run committed
func (r *ImportResult) Success() bool {
	return r.ErrorCount == 0 && len(r.Errors) == 0
}

// Summary renders a one-line human-readable result
func (r *ImportResult) Summary() string {
	return fmt.Sprintf("Total: %d, Imported: %d, Skipped: %d, Errors: %d",
		r.TotalRecords, r.ImportedCount, r.SkippedCount, r.ErrorCount)
}

// ExportResult summarizes an export run
type ExportResult struct {
	Success         bool   `json:"success"`
	DocumentID      int64  `json:"documentId,omitempty"`
	Error           string `json:"error,omitempty"`
	ItemsExported   int    `json:"itemsExported"`
	BoxesExported   int    `json:"boxesExported"`
	PalletsExported int    `json:"palletsExported"`
}

// Summary renders a one-line human-readable result
func (r *ExportResult) Summary() string {
	if !r.Success {
		return "Failed: " + r.Error
	}
	return fmt.Sprintf("Document #%d - Items: %d, Boxes: %d, Pallets: %d",
		r.DocumentID, r.ItemsExported, r.BoxesExported, r.PalletsExported)
}

// ProductionStats is a per-status breakdown of the live tables
type ProductionStats struct {
	TotalItems     int `json:"totalItems"`
	AvailableItems int `json:"availableItems"`
	AssignedItems  int `json:"assignedItems"`
	ExportedItems  int `json:"exportedItems"`

	TotalBoxes    int `json:"totalBoxes"`
	EmptyBoxes    int `json:"emptyBoxes"`
	SealedBoxes   int `json:"sealedBoxes"`
	ExportedBoxes int `json:"exportedBoxes"`

	TotalPallets    int `json:"totalPallets"`
	NewPallets      int `json:"newPallets"`
	CompletePallets int `json:"completePallets"`
	ExportedPallets int `json:"exportedPallets"`
}
