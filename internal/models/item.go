package models

import (
	"time"
)

// Item is a single traceable unit moving through the packaging hierarchy
type Item struct {
	ID             int64      `gorm:"primaryKey" json:"id"`
	Barcode        string     `gorm:"column:bar_code;unique;not null" json:"barcode"`
	Status         ItemStatus `gorm:"not null;default:0;index" json:"status"`
	ProductionLine int64      `gorm:"column:production_line;index" json:"productionLine"`
	ImportedAt     time.Time  `gorm:"column:imported_at" json:"importedAt"`
	ScannedAt      *time.Time `gorm:"column:scanned_at" json:"scannedAt,omitempty"`
}

// TableName specifies the table name for Item model
func (Item) TableName() string {
	return "items"
}

// Box is a container for items; it stays Empty until explicitly sealed
type Box struct {
	ID             int64      `gorm:"primaryKey" json:"id"`
	Barcode        string     `gorm:"column:bar_code;unique;not null" json:"barcode"`
	Status         BoxStatus  `gorm:"not null;default:0;index" json:"status"`
	ProductionLine int64      `gorm:"column:production_line;index" json:"productionLine"`
	ImportedAt     time.Time  `gorm:"column:imported_at" json:"importedAt"`
	SealedAt       *time.Time `gorm:"column:sealed_at" json:"sealedAt,omitempty"`
}

// TableName specifies the table name for Box model
func (Box) TableName() string {
	return "boxes"
}

// Pallet aggregates sealed boxes
type Pallet struct {
	ID             int64        `gorm:"primaryKey" json:"id"`
	Barcode        string       `gorm:"column:bar_code;unique;not null" json:"barcode"`
	Status         PalletStatus `gorm:"not null;default:0;index" json:"status"`
	ProductionLine int64        `gorm:"column:production_line;index" json:"productionLine"`
	CreatedAt      time.Time    `gorm:"column:created_at" json:"createdAt"`
}

// TableName specifies the table name for Pallet model
func (Pallet) TableName() string {
	return "pallets"
}

// ItemBoxAssignment records which box an item was packed into.
// One box per item; the packaging engine enforces this, not a structural constraint.
type ItemBoxAssignment struct {
	ItemID     int64     `gorm:"primaryKey;autoIncrement:false" json:"itemId"`
	BoxID      int64     `gorm:"index" json:"boxId"`
	AssignedAt time.Time `gorm:"column:assigned_at" json:"assignedAt"`
}

// TableName specifies the table name
func (ItemBoxAssignment) TableName() string {
	return "item_box_assignments"
}

// PalletBoxAssignment records which pallet a box was placed on
type PalletBoxAssignment struct {
	BoxID      int64     `gorm:"primaryKey;autoIncrement:false" json:"boxId"`
	PalletID   int64     `gorm:"index" json:"palletId"`
	AssignedAt time.Time `gorm:"column:assigned_at" json:"assignedAt"`
}

// TableName specifies the table name
func (PalletBoxAssignment) TableName() string {
	return "pallet_box_assignments"
}
