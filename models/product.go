package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string  `gorm:"not null" json:"name"`
	Description   string  `json:"description"`
	Price         float64 `gorm:"not null" json:"price"`
	OriginalPrice float64 `json:"original_price"`
	Discount      int     `json:"discount"`
	CategoryID    *uint   `gorm:"index" json:"category_id"`
	Category      *Category
	Images        []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
	Sizes         []SizeVariant  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"sizes"`
	Reviews       []Review       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"reviews"`
	Stock         int            `json:"stock"`
	IsFeatured    bool           `json:"is_featured"`
	IsNew         bool           `json:"is_new"`
	Rating        float64        `json:"rating"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// SizeVariant holds independent stock for one named size of a product.
type SizeVariant struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint   `gorm:"index" json:"product_id"`
	Name      string `gorm:"not null" json:"name"`
	Stock     int    `gorm:"not null;default:0" json:"stock"`
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint   `gorm:"index" json:"product_id"`
	URL       string `gorm:"not null" json:"url"`
	Position  int    `json:"position"`
}

// Review is a customer product review, moderated via the Reported flag.
type Review struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint      `gorm:"index" json:"product_id"`
	UserID    string    `gorm:"not null" json:"user_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"not null" json:"comment"`
	Helpful   int       `json:"helpful"`
	Reported  bool      `json:"reported"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeSave keeps the aggregate stock equal to the sum of size-variant
// stocks whenever variants exist, and derives the discount percentage.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if len(p.Sizes) > 0 {
		total := 0
		for _, s := range p.Sizes {
			total += s.Stock
		}
		p.Stock = total
	}
	if p.OriginalPrice > 0 && p.Price > 0 && p.Price <= p.OriginalPrice {
		p.Discount = int(math.Round((p.OriginalPrice - p.Price) / p.OriginalPrice * 100))
	}
	return nil
}

// FirstImage returns the URL snapshotted onto order line items.
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}

// FindSize returns the index of the named size variant, or -1.
func (p *Product) FindSize(name string) int {
	for i := range p.Sizes {
		if p.Sizes[i].Name == name {
			return i
		}
	}
	return -1
}

type Category struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"unique;not null" json:"name"`
	Image    string `json:"image"`
	Products []Product
}
