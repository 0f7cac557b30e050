package packaging

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/packline/packtrace/internal/config"
	"github.com/packline/packtrace/internal/database"
	"github.com/packline/packtrace/internal/models"
	"gorm.io/gorm"
)

// Exporter runs the export pipeline. Each export opens a dedicated
// connection and runs one transaction: eligibility check, audit
// document, barcode snapshots, status transitions, commit. The XML
// document is rendered and persisted afterwards, best-effort: a failure
// there is logged but does not undo the export.
type Exporter struct {
	db  *database.DB
	cfg config.DatabaseConfig
}

// NewExporter creates an Exporter. Document lookups use the shared
// connection; export runs use dedicated ones built from cfg.
func NewExporter(db *database.DB, cfg config.DatabaseConfig) *Exporter {
	return &Exporter{db: db, cfg: cfg}
}

func (ex *Exporter) alive() error {
	if err := ex.db.Alive(); err != nil {
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	return nil
}

// ExportBoxes exports a set of Sealed boxes together with the items
// inside them. A single box that is not Sealed rejects the whole batch.
func (ex *Exporter) ExportBoxes(boxIDs []int64, lpTin string) (*models.ExportResult, error) {
	result := &models.ExportResult{}

	if len(boxIDs) == 0 {
		result.Error = "no boxes to export"
		return result, ErrNoTargets
	}

	jobDB, err := database.OpenJob(ex.cfg)
	if err != nil {
		result.Error = err.Error()
		return result, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	defer database.CloseJob(jobDB)

	var docID int64
	err = jobDB.Transaction(func(tx *gorm.DB) error {
		var eligible int64
		if err := tx.Model(&models.Box{}).
			Where("id IN ? AND status = ?", boxIDs, models.BoxSealed).
			Count(&eligible).Error; err != nil {
			return err
		}
		if eligible != int64(len(boxIDs)) {
			return fmt.Errorf("some boxes not found or not sealed: %w", ErrNotEligible)
		}

		doc := models.ExportDocument{
			Mode:      models.BoxExport,
			LpTin:     lpTin,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.Create(&doc).Error; err != nil {
			return err
		}
		docID = doc.ID

		res := tx.Exec(
			"INSERT INTO export_boxes (document_id, bar_code, created_at) "+
				"SELECT ?, bar_code, NOW() FROM boxes WHERE id IN ?",
			docID, boxIDs)
		if res.Error != nil {
			return res.Error
		}
		result.BoxesExported = int(res.RowsAffected)

		res = tx.Exec(
			"INSERT INTO export_items (document_id, bar_code, created_at) "+
				"SELECT ?, i.bar_code, NOW() FROM items i "+
				"JOIN item_box_assignments iba ON i.id = iba.item_id "+
				"WHERE iba.box_id IN ?",
			docID, boxIDs)
		if res.Error != nil {
			return res.Error
		}
		result.ItemsExported = int(res.RowsAffected)

		if err := tx.Exec("UPDATE boxes SET status = ? WHERE id IN ?",
			models.BoxExported, boxIDs).Error; err != nil {
			return err
		}
		return tx.Exec(
			"UPDATE items SET status = ? WHERE id IN "+
				"(SELECT item_id FROM item_box_assignments WHERE box_id IN ?)",
			models.ItemExported, boxIDs).Error
	})
	if err != nil {
		result.Error = err.Error()
		if errors.Is(err, ErrNotEligible) {
			return result, err
		}
		return result, fmt.Errorf("box export failed: %w", err)
	}

	result.Success = true
	result.DocumentID = docID
	log.Printf("📤 Export complete - %s", result.Summary())

	ex.persistXML(jobDB, docID, lpTin, models.BoxExport)
	return result, nil
}

// ExportPallets exports a set of Complete pallets and, transitively, the
// boxes on them and the items inside those boxes
func (ex *Exporter) ExportPallets(palletIDs []int64, lpTin string) (*models.ExportResult, error) {
	result := &models.ExportResult{}

	if len(palletIDs) == 0 {
		result.Error = "no pallets to export"
		return result, ErrNoTargets
	}

	jobDB, err := database.OpenJob(ex.cfg)
	if err != nil {
		result.Error = err.Error()
		return result, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	defer database.CloseJob(jobDB)

	var docID int64
	err = jobDB.Transaction(func(tx *gorm.DB) error {
		var eligible int64
		if err := tx.Model(&models.Pallet{}).
			Where("id IN ? AND status = ?", palletIDs, models.PalletComplete).
			Count(&eligible).Error; err != nil {
			return err
		}
		if eligible != int64(len(palletIDs)) {
			return fmt.Errorf("some pallets not found or not complete: %w", ErrNotEligible)
		}

		doc := models.ExportDocument{
			Mode:      models.PalletExport,
			LpTin:     lpTin,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.Create(&doc).Error; err != nil {
			return err
		}
		docID = doc.ID

		res := tx.Exec(
			"INSERT INTO export_pallets (document_id, bar_code, created_at) "+
				"SELECT ?, bar_code, NOW() FROM pallets WHERE id IN ?",
			docID, palletIDs)
		if res.Error != nil {
			return res.Error
		}
		result.PalletsExported = int(res.RowsAffected)

		res = tx.Exec(
			"INSERT INTO export_boxes (document_id, bar_code, created_at) "+
				"SELECT ?, b.bar_code, NOW() FROM boxes b "+
				"JOIN pallet_box_assignments pba ON b.id = pba.box_id "+
				"WHERE pba.pallet_id IN ?",
			docID, palletIDs)
		if res.Error != nil {
			return res.Error
		}
		result.BoxesExported = int(res.RowsAffected)

		res = tx.Exec(
			"INSERT INTO export_items (document_id, bar_code, created_at) "+
				"SELECT ?, i.bar_code, NOW() FROM items i "+
				"JOIN item_box_assignments iba ON i.id = iba.item_id "+
				"JOIN pallet_box_assignments pba ON iba.box_id = pba.box_id "+
				"WHERE pba.pallet_id IN ?",
			docID, palletIDs)
		if res.Error != nil {
			return res.Error
		}
		result.ItemsExported = int(res.RowsAffected)

		if err := tx.Exec("UPDATE pallets SET status = ? WHERE id IN ?",
			models.PalletExported, palletIDs).Error; err != nil {
			return err
		}
		if err := tx.Exec(
			"UPDATE boxes SET status = ? WHERE id IN "+
				"(SELECT box_id FROM pallet_box_assignments WHERE pallet_id IN ?)",
			models.BoxExported, palletIDs).Error; err != nil {
			return err
		}
		return tx.Exec(
			"UPDATE items SET status = ? WHERE id IN "+
				"(SELECT iba.item_id FROM item_box_assignments iba "+
				"JOIN pallet_box_assignments pba ON iba.box_id = pba.box_id "+
				"WHERE pba.pallet_id IN ?)",
			models.ItemExported, palletIDs).Error
	})
	if err != nil {
		result.Error = err.Error()
		if errors.Is(err, ErrNotEligible) {
			return result, err
		}
		return result, fmt.Errorf("pallet export failed: %w", err)
	}

	result.Success = true
	result.DocumentID = docID
	log.Printf("📤 Export complete - %s", result.Summary())

	ex.persistXML(jobDB, docID, lpTin, models.PalletExport)
	return result, nil
}

// persistXML renders the document XML from the snapshot rows and stores
// it with its SHA-256 hash. Runs outside the export transaction; failures
// are logged and the export stays successful.
func (ex *Exporter) persistXML(jobDB *gorm.DB, docID int64, lpTin string, mode models.ExportMode) {
	var content string
	var err error

	switch mode {
	case models.BoxExport:
		var packs []PackContent
		packs, err = loadPackContents(jobDB, docID)
		if err == nil {
			content = BuildBoxExportXML(lpTin, packs)
		}
	case models.PalletExport:
		var units []AggregationUnit
		units, err = loadAggregationUnits(jobDB, docID)
		if err == nil {
			content = BuildPalletExportXML(lpTin, units)
		}
	}
	if err != nil {
		log.Printf("⚠️ Failed to render XML for document %d: %v", docID, err)
		return
	}

	sum := sha256.Sum256([]byte(content))
	err = jobDB.Model(&models.ExportDocument{}).
		Where("id = ?", docID).
		Updates(map[string]interface{}{
			"xml_content": []byte(content),
			"xml_hash":    hex.EncodeToString(sum[:]),
		}).Error
	if err != nil {
		log.Printf("⚠️ Failed to persist XML for document %d: %v", docID, err)
	}
}

func loadPackContents(db *gorm.DB, docID int64) ([]PackContent, error) {
	var rows []struct {
		BoxCode  string
		ItemCode *string
	}
	err := db.Raw(
		"SELECT b.bar_code AS box_code, i.bar_code AS item_code "+
			"FROM export_boxes eb "+
			"JOIN boxes b ON b.bar_code = eb.bar_code "+
			"LEFT JOIN item_box_assignments iba ON iba.box_id = b.id "+
			"LEFT JOIN items i ON i.id = iba.item_id "+
			"WHERE eb.document_id = ? "+
			"ORDER BY eb.id, iba.assigned_at",
		docID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	var packs []PackContent
	for _, row := range rows {
		if len(packs) == 0 || packs[len(packs)-1].BoxBarcode != row.BoxCode {
			packs = append(packs, PackContent{BoxBarcode: row.BoxCode})
		}
		if row.ItemCode != nil {
			last := &packs[len(packs)-1]
			last.ItemBarcodes = append(last.ItemBarcodes, *row.ItemCode)
		}
	}
	return packs, nil
}

func loadAggregationUnits(db *gorm.DB, docID int64) ([]AggregationUnit, error) {
	var rows []struct {
		PalletCode string
		BoxCode    *string
	}
	err := db.Raw(
		"SELECT p.bar_code AS pallet_code, b.bar_code AS box_code "+
			"FROM export_pallets ep "+
			"JOIN pallets p ON p.bar_code = ep.bar_code "+
			"LEFT JOIN pallet_box_assignments pba ON pba.pallet_id = p.id "+
			"LEFT JOIN boxes b ON b.id = pba.box_id "+
			"WHERE ep.document_id = ? "+
			"ORDER BY ep.id, pba.assigned_at",
		docID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	var units []AggregationUnit
	for _, row := range rows {
		if len(units) == 0 || units[len(units)-1].PalletBarcode != row.PalletCode {
			units = append(units, AggregationUnit{PalletBarcode: row.PalletCode})
		}
		if row.BoxCode != nil {
			last := &units[len(units)-1]
			last.BoxBarcodes = append(last.BoxBarcodes, *row.BoxCode)
		}
	}
	return units, nil
}

// GetDocument fetches one export document by id
func (ex *Exporter) GetDocument(id int64) (*models.ExportDocument, error) {
	if err := ex.alive(); err != nil {
		return nil, err
	}
	var doc models.ExportDocument
	if err := ex.db.First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("export document")
		}
		return nil, err
	}
	return &doc, nil
}

// ListDocuments lists export documents, newest first
func (ex *Exporter) ListDocuments(limit, offset int) ([]models.ExportDocument, error) {
	if err := ex.alive(); err != nil {
		return nil, err
	}
	var docs []models.ExportDocument
	err := ex.db.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&docs).Error
	return docs, err
}

// DocumentCounts returns the snapshot row counts for a document
func (ex *Exporter) DocumentCounts(id int64) (items, boxes, pallets int, err error) {
	if err = ex.alive(); err != nil {
		return
	}
	var n int64
	if err = ex.db.Model(&models.ExportItem{}).Where("document_id = ?", id).Count(&n).Error; err != nil {
		return
	}
	items = int(n)
	if err = ex.db.Model(&models.ExportBox{}).Where("document_id = ?", id).Count(&n).Error; err != nil {
		return
	}
	boxes = int(n)
	if err = ex.db.Model(&models.ExportPallet{}).Where("document_id = ?", id).Count(&n).Error; err != nil {
		return
	}
	pallets = int(n)
	return
}
