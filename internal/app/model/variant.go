package model

import (
	"time"

	"gorm.io/gorm"
)

// Variant is the purchasable SKU-level unit of a product. A variant is
// purchasable for a given role iff it is not soft-deleted and a price row
// exists for that role.
type Variant struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	ProductID     uint           `gorm:"index;not null" json:"product_id"`
	SKU           string         `gorm:"uniqueIndex;not null" json:"sku"`
	CatalogCode   string         `gorm:"type:varchar(50);not null;index" json:"catalog_code"`
	OptionLabel   string         `json:"option_label"` // e.g. "Size: L", "Flavor: Citrus"
	StockQuantity int            `gorm:"default:0" json:"stock_quantity"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Product Product        `gorm:"foreignKey:ProductID" json:"-"`
	Prices  []VariantPrice `gorm:"foreignKey:VariantID" json:"prices,omitempty"`
}

func (Variant) TableName() string {
	return "variants"
}

// VariantPrice holds the price of a variant under one pricing role.
type VariantPrice struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	VariantID uint      `gorm:"index:idx_variant_role,unique;not null" json:"variant_id"`
	RoleCode  string    `gorm:"index:idx_variant_role,unique;type:varchar(20);not null" json:"role_code"`
	Price     float64   `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (VariantPrice) TableName() string {
	return "variant_prices"
}
