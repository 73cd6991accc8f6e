package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ProductCategory string

const (
	CategorySupplement ProductCategory = "supplement"
	CategorySkincare   ProductCategory = "skincare"
	CategoryApparel    ProductCategory = "apparel"
	CategoryStarterKit ProductCategory = "starter_kit"
)

type Product struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Category    ProductCategory `gorm:"type:varchar(50)" json:"category"`
	ImageURLs   pq.StringArray  `gorm:"type:text[]" json:"image_urls"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Variants []Variant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
}

func (Product) TableName() string {
	return "products"
}
