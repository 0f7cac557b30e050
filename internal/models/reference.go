package models

import (
	"time"
)

// ProductionLine is the reference line items/boxes/pallets are imported for
type ProductionLine struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
}

// TableName specifies the table name
func (ProductionLine) TableName() string {
	return "production_lines"
}

// Product is a reference product identified by its GTIN
type Product struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	GTIN        string    `gorm:"column:gtin" json:"gtin"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"createdAt"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// ProductPackaging describes a packaging level of a product (box of N)
type ProductPackaging struct {
	ID               int64     `gorm:"primaryKey" json:"id"`
	ProductID        int64     `gorm:"column:product_id;index" json:"productId"`
	NumberOfProducts int       `gorm:"column:number_of_products" json:"numberOfProducts"`
	GTIN             string    `gorm:"column:gtin" json:"gtin"`
	Name             string    `gorm:"not null" json:"name"`
	Description      string    `json:"description,omitempty"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"createdAt"`
}

// TableName specifies the table name
func (ProductPackaging) TableName() string {
	return "product_packaging"
}
