package packaging

import (
	"errors"
	"fmt"
	"time"

	"github.com/packline/packtrace/internal/database"
	"github.com/packline/packtrace/internal/models"
	"gorm.io/gorm"
)

// Engine performs the synchronous assignment operations on the shared
// connection. Every mutating operation runs as one database transaction
// with its status preconditions re-checked inside the transaction;
// correctness under concurrent assignment to the same box or pallet
// relies on the database's row-level locking during that sequence.
type Engine struct {
	db *database.DB
}

// NewEngine creates an Engine on the shared synchronous connection
func NewEngine(db *database.DB) *Engine {
	return &Engine{db: db}
}

func (e *Engine) alive() error {
	if err := e.db.Alive(); err != nil {
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	return nil
}

// AssignItemToBox packs one Available item into one Empty box. The box
// stays Empty until it is explicitly sealed, even with items inside.
func (e *Engine) AssignItemToBox(itemID, boxID int64) error {
	if err := e.alive(); err != nil {
		return err
	}

	return e.db.Transaction(func(tx *gorm.DB) error {
		var box models.Box
		if err := tx.First(&box, boxID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("box")
			}
			return err
		}
		if box.Status != models.BoxEmpty {
			return invalidState("box must be Empty")
		}

		var item models.Item
		if err := tx.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("item")
			}
			return err
		}
		if !item.Status.CanTransition(models.ItemAssigned) {
			return invalidState("item must be Available")
		}

		assignment := models.ItemBoxAssignment{
			ItemID:     itemID,
			BoxID:      boxID,
			AssignedAt: time.Now().UTC(),
		}
		if err := tx.Create(&assignment).Error; err != nil {
			return err
		}

		return tx.Model(&models.Item{}).
			Where("id = ?", itemID).
			Update("status", models.ItemAssigned).Error
	})
}

// AssignItemsToBox applies AssignItemToBox to each id independently and
// returns the number of successes. A failure on one item does not roll
// back the others; callers compare the count with the input size to
// detect partial failure.
func (e *Engine) AssignItemsToBox(itemIDs []int64, boxID int64) int {
	count := 0
	for _, itemID := range itemIDs {
		if err := e.AssignItemToBox(itemID, boxID); err == nil {
			count++
		}
	}
	return count
}

// SealBox transitions a box Empty -> Sealed. The box must contain at
// least one item. The update predicate includes the Empty status, so a
// zero-row update collapses not-found, already-sealed and raced into one
// generic failure.
func (e *Engine) SealBox(boxID int64) error {
	if err := e.alive(); err != nil {
		return err
	}

	return e.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ItemBoxAssignment{}).
			Where("box_id = ?", boxID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return invalidState("box is empty - cannot seal")
		}

		res := tx.Model(&models.Box{}).
			Where("id = ? AND status = ?", boxID, models.BoxEmpty).
			Updates(map[string]interface{}{
				"status":    models.BoxSealed,
				"sealed_at": time.Now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return invalidState("box not found or not Empty")
		}
		return nil
	})
}

// AssignBoxToPallet places one Sealed box onto one New pallet
func (e *Engine) AssignBoxToPallet(boxID, palletID int64) error {
	if err := e.alive(); err != nil {
		return err
	}

	return e.db.Transaction(func(tx *gorm.DB) error {
		var pallet models.Pallet
		if err := tx.First(&pallet, palletID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("pallet")
			}
			return err
		}
		if pallet.Status != models.PalletNew {
			return invalidState("pallet must be New")
		}

		var box models.Box
		if err := tx.First(&box, boxID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("box")
			}
			return err
		}
		if box.Status != models.BoxSealed {
			return invalidState("box must be Sealed")
		}

		assignment := models.PalletBoxAssignment{
			BoxID:      boxID,
			PalletID:   palletID,
			AssignedAt: time.Now().UTC(),
		}
		return tx.Create(&assignment).Error
	})
}

// CompletePallet transitions a pallet New -> Complete. The pallet must
// carry at least one box.
func (e *Engine) CompletePallet(palletID int64) error {
	if err := e.alive(); err != nil {
		return err
	}

	return e.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.PalletBoxAssignment{}).
			Where("pallet_id = ?", palletID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return invalidState("pallet has no boxes")
		}

		res := tx.Model(&models.Pallet{}).
			Where("id = ? AND status = ?", palletID, models.PalletNew).
			Update("status", models.PalletComplete)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return invalidState("pallet not found or not New")
		}
		return nil
	})
}

// GetItem fetches a single item by id
func (e *Engine) GetItem(id int64) (*models.Item, error) {
	if err := e.alive(); err != nil {
		return nil, err
	}
	var item models.Item
	if err := e.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("item")
		}
		return nil, err
	}
	return &item, nil
}

// ItemsByStatus lists items in a status, optionally filtered by
// production line, oldest first
func (e *Engine) ItemsByStatus(status models.ItemStatus, lineID int64, limit int) ([]models.Item, error) {
	if err := e.alive(); err != nil {
		return nil, err
	}
	var items []models.Item
	q := e.db.Where("status = ?", status)
	if lineID > 0 {
		q = q.Where("production_line = ?", lineID)
	}
	err := q.Order("imported_at").Limit(limit).Find(&items).Error
	return items, err
}

// ItemsInBox lists the items assigned to a box in assignment order
func (e *Engine) ItemsInBox(boxID int64) ([]models.Item, error) {
	if err := e.alive(); err != nil {
		return nil, err
	}
	var items []models.Item
	err := e.db.
		Joins("JOIN item_box_assignments iba ON iba.item_id = items.id").
		Where("iba.box_id = ?", boxID).
		Order("iba.assigned_at").
		Find(&items).Error
	return items, err
}

// GetBox fetches a single box by id
func (e *Engine) GetBox(id int64) (*models.Box, error) {
	if err := e.alive(); err != nil {
		return nil, err
	}
	var box models.Box
	if err := e.db.First(&box, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("box")
		}
		return nil, err
	}
	return &box, nil
}

// BoxesByStatus lists boxes in a status, optionally filtered by line
func (e *Engine) BoxesByStatus(status models.BoxStatus, lineID int64, limit int) ([]models.Box, error) {
	if err := e.alive(); err != nil {
		return nil, err
	}
	var boxes []models.Box
	q := e.db.Where("status = ?", status)
	if lineID > 0 {
		q = q.Where("production_line = ?", lineID)
	}
	err := q.Order("imported_at").Limit(limit).Find(&boxes).Error
	return boxes, err
}

// SealedBoxesNotOnPallet lists sealed boxes that have not been placed on
// any pallet yet, the candidates for pallet assignment
func (e *Engine) SealedBoxesNotOnPallet(lineID int64, limit int) ([]models.Box, error) {
	if err := e.alive(); err != nil {
		return nil, err
	}
	var boxes []models.Box
	q := e.db.
		Joins("LEFT JOIN pallet_box_assignments pba ON pba.box_id = boxes.id").
		Where("boxes.status = ? AND pba.box_id IS NULL", models.BoxSealed)
	if lineID > 0 {
		q = q.Where("boxes.production_line = ?", lineID)
	}
	err := q.Order("boxes.imported_at").Limit(limit).Find(&boxes).Error
	return boxes, err
}

// SealedBoxNotOnPalletCount counts the boxes SealedBoxesNotOnPallet
// would return without a limit
func (e *Engine) SealedBoxNotOnPalletCount(lineID int64) (int, error) {
	if err := e.alive(); err != nil {
		return 0, err
	}
	var count int64
	q := e.db.Model(&models.Box{}).
		Joins("LEFT JOIN pallet_box_assignments pba ON pba.box_id = boxes.id").
		Where("boxes.status = ? AND pba.box_id IS NULL", models.BoxSealed)
	if lineID > 0 {
		q = q.Where("boxes.production_line = ?", lineID)
	}
	err := q.Count(&count).Error
	return int(count), err
}

// BoxesOnPallet lists the boxes assigned to a pallet in assignment order
func (e *Engine) BoxesOnPallet(palletID int64) ([]models.Box, error) {
	if err := e.alive(); err != nil {
		return nil, err
	}
	var boxes []models.Box
	err := e.db.
		Joins("JOIN pallet_box_assignments pba ON pba.box_id = boxes.id").
		Where("pba.pallet_id = ?", palletID).
		Order("pba.assigned_at").
		Find(&boxes).Error
	return boxes, err
}

// BoxItemCount returns the number of items assigned to a box
func (e *Engine) BoxItemCount(boxID int64) (int, error) {
	if err := e.alive(); err != nil {
		return 0, err
	}
	var count int64
	err := e.db.Model(&models.ItemBoxAssignment{}).
		Where("box_id = ?", boxID).
		Count(&count).Error
	return int(count), err
}

// GetPallet fetches a single pallet by id
func (e *Engine) GetPallet(id int64) (*models.Pallet, error) {
	if err := e.alive(); err != nil {
		return nil, err
	}
	var pallet models.Pallet
	if err := e.db.First(&pallet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("pallet")
		}
		return nil, err
	}
	return &pallet, nil
}

// PalletsByStatus lists pallets in a status, optionally filtered by line
func (e *Engine) PalletsByStatus(status models.PalletStatus, lineID int64, limit int) ([]models.Pallet, error) {
	if err := e.alive(); err != nil {
		return nil, err
	}
	var pallets []models.Pallet
	q := e.db.Where("status = ?", status)
	if lineID > 0 {
		q = q.Where("production_line = ?", lineID)
	}
	err := q.Order("created_at").Limit(limit).Find(&pallets).Error
	return pallets, err
}

// PalletBoxCount returns the number of boxes assigned to a pallet
func (e *Engine) PalletBoxCount(palletID int64) (int, error) {
	if err := e.alive(); err != nil {
		return 0, err
	}
	var count int64
	err := e.db.Model(&models.PalletBoxAssignment{}).
		Where("pallet_id = ?", palletID).
		Count(&count).Error
	return int(count), err
}

// Stats returns per-status counts across the three live tables,
// optionally restricted to one production line
func (e *Engine) Stats(lineID *int64) (*models.ProductionStats, error) {
	if err := e.alive(); err != nil {
		return nil, err
	}

	stats := &models.ProductionStats{}

	type statusCount struct {
		Status int
		Count  int
	}

	grouped := func(model interface{}) ([]statusCount, error) {
		var rows []statusCount
		q := e.db.Model(model).Select("status, COUNT(*) as count").Group("status")
		if lineID != nil {
			q = q.Where("production_line = ?", *lineID)
		}
		err := q.Scan(&rows).Error
		return rows, err
	}

	itemRows, err := grouped(&models.Item{})
	if err != nil {
		return nil, err
	}
	for _, row := range itemRows {
		stats.TotalItems += row.Count
		switch models.ItemStatus(row.Status) {
		case models.ItemAvailable:
			stats.AvailableItems = row.Count
		case models.ItemAssigned:
			stats.AssignedItems = row.Count
		case models.ItemExported:
			stats.ExportedItems = row.Count
		}
	}

	boxRows, err := grouped(&models.Box{})
	if err != nil {
		return nil, err
	}
	for _, row := range boxRows {
		stats.TotalBoxes += row.Count
		switch models.BoxStatus(row.Status) {
		case models.BoxEmpty:
			stats.EmptyBoxes = row.Count
		case models.BoxSealed:
			stats.SealedBoxes = row.Count
		case models.BoxExported:
			stats.ExportedBoxes = row.Count
		}
	}

	palletRows, err := grouped(&models.Pallet{})
	if err != nil {
		return nil, err
	}
	for _, row := range palletRows {
		stats.TotalPallets += row.Count
		switch models.PalletStatus(row.Status) {
		case models.PalletNew:
			stats.NewPallets = row.Count
		case models.PalletComplete:
			stats.CompletePallets = row.Count
		case models.PalletExported:
			stats.ExportedPallets = row.Count
		}
	}

	return stats, nil
}
