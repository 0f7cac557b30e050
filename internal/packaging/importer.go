package packaging

import (
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/packline/packtrace/internal/config"
	"github.com/packline/packtrace/internal/database"
	"github.com/packline/packtrace/internal/models"
)

// importBatchSize is the number of rows bound into one multi-row insert
const importBatchSize = 500

// ImportKind selects the target table of a bulk import
type ImportKind string

const (
	ImportItems   ImportKind = "items"
	ImportBoxes   ImportKind = "boxes"
	ImportPallets ImportKind = "pallets"
)

// pallets carry created_at instead of imported_at
var importTargets = map[ImportKind]struct {
	table        string
	timestampCol string
}{
	ImportItems:   {"items", "imported_at"},
	ImportBoxes:   {"boxes", "imported_at"},
	ImportPallets: {"pallets", "created_at"},
}

// ProgressFunc receives cumulative progress after every batch
type ProgressFunc func(processed, total int)

var lineSplit = regexp.MustCompile(`\r?\n`)

// ParseBarcodeList splits a UTF-8 text blob into candidate barcodes:
// one barcode per line, both line-ending conventions accepted, lines
// trimmed, blank lines dropped. Order is preserved.
func ParseBarcodeList(content string) []string {
	var barcodes []string
	for _, line := range lineSplit.Split(content, -1) {
		if barcode := strings.TrimSpace(line); barcode != "" {
			barcodes = append(barcodes, barcode)
		}
	}
	return barcodes
}

// Importer ingests newline-delimited barcode lists into the items, boxes
// or pallets table. Each run opens its own dedicated connection and wraps
// every batch in one transaction: duplicates are skipped silently, but a
// single failing batch rolls back the entire run.
type Importer struct {
	cfg config.DatabaseConfig
}

// NewImporter creates an Importer bound to an immutable connection config
func NewImporter(cfg config.DatabaseConfig) *Importer {
	return &Importer{cfg: cfg}
}

// Run imports the given text blob into the table selected by kind.
// The returned result keeps the per-batch tallies as recorded during the
// run even when a failing batch caused a full rollback; callers detect
// that case via ErrorCount.
func (im *Importer) Run(kind ImportKind, content string, lineID int64, progress ProgressFunc) (*models.ImportResult, error) {
	target, ok := importTargets[kind]
	if !ok {
		return nil, fmt.Errorf("unknown import kind %q", kind)
	}

	result := &models.ImportResult{}

	barcodes := ParseBarcodeList(content)
	result.TotalRecords = len(barcodes)

	if len(barcodes) == 0 {
		result.Errors = append(result.Errors, "no valid barcodes found")
		return result, ErrNoRecords
	}

	jobDB, err := database.OpenJob(im.cfg)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	defer database.CloseJob(jobDB)

	tx := jobDB.Begin()
	if tx.Error != nil {
		result.Errors = append(result.Errors, tx.Error.Error())
		return result, fmt.Errorf("%w: %v", ErrConnectivity, tx.Error)
	}

	processed := 0
	for start := 0; start < len(barcodes); start += importBatchSize {
		end := start + importBatchSize
		if end > len(barcodes) {
			end = len(barcodes)
		}
		batch := barcodes[start:end]

		sql, args := buildBatchInsert(target.table, target.timestampCol, batch, lineID)
		res := tx.Exec(sql, args...)
		if res.Error != nil {
			result.ErrorCount += len(batch)
			result.Errors = append(result.Errors, res.Error.Error())
		} else {
			result.ImportedCount += int(res.RowsAffected)
			result.SkippedCount += len(batch) - int(res.RowsAffected)
		}

		processed += len(batch)
		if progress != nil {
			progress(processed, result.TotalRecords)
		}
	}

	if result.ErrorCount == 0 {
		tx.Commit()
	} else {
		tx.Rollback()
	}

	log.Printf("📥 Import complete - %s", result.Summary())
	return result, nil
}

// buildBatchInsert produces one parameterized multi-row insert with a
// do-nothing conflict clause on the barcode uniqueness constraint
func buildBatchInsert(table, timestampCol string, batch []string, lineID int64) (string, []interface{}) {
	values := make([]string, len(batch))
	args := make([]interface{}, 0, len(batch)*2)
	for i, barcode := range batch {
		values[i] = "(?, ?, 0, NOW())"
		args = append(args, barcode, lineID)
	}

	sql := fmt.Sprintf(
		"INSERT INTO %s (bar_code, production_line, status, %s) VALUES %s ON CONFLICT (bar_code) DO NOTHING",
		table, timestampCol, strings.Join(values, ", "),
	)
	return sql, args
}
