package models

import (
	"time"
)

// ExportDocument is the audit record created for every export run.
// XMLContent and XMLHash are filled in after the export transaction commits;
// a failure to persist them does not undo the export.
type ExportDocument struct {
	ID         int64      `gorm:"primaryKey" json:"id"`
	Mode       ExportMode `gorm:"column:export_mode;not null" json:"mode"`
	LpTin      string     `gorm:"column:lp_tin;not null" json:"lpTin"`
	CreatedAt  time.Time  `gorm:"column:created_at" json:"createdAt"`
	XMLContent []byte     `gorm:"column:xml_content" json:"-"`
	XMLHash    string     `gorm:"column:xml_hash" json:"xmlHash,omitempty"`
}

// TableName specifies the table name
func (ExportDocument) TableName() string {
	return "export_documents"
}

// ExportItem is an append-only snapshot of an exported item barcode.
// Snapshot rows survive any later change to the live items table.
type ExportItem struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	DocumentID int64     `gorm:"column:document_id;index;not null" json:"documentId"`
	Barcode    string    `gorm:"column:bar_code;not null" json:"barcode"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"createdAt"`
}

// TableName specifies the table name
func (ExportItem) TableName() string {
	return "export_items"
}

// ExportBox is an append-only snapshot of an exported box barcode
type ExportBox struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	DocumentID int64     `gorm:"column:document_id;index;not null" json:"documentId"`
	Barcode    string    `gorm:"column:bar_code;not null" json:"barcode"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"createdAt"`
}

// TableName specifies the table name
func (ExportBox) TableName() string {
	return "export_boxes"
}

// ExportPallet is an append-only snapshot of an exported pallet barcode
type ExportPallet struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	DocumentID int64     `gorm:"column:document_id;index;not null" json:"documentId"`
	Barcode    string    `gorm:"column:bar_code;not null" json:"barcode"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"createdAt"`
}

// TableName specifies the table name
func (ExportPallet) TableName() string {
	return "export_pallets"
}
