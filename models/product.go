package models

import (
	"math"

	"gorm.io/gorm"
)

type Product struct {
	Base
	CustomID    string    `gorm:"uniqueIndex" json:"custom_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	SalePrice   *float64  `json:"sale_price"`
	Stock       int       `gorm:"default:0" json:"stock"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	Image       string    `json:"image"`
	SellerID    string    `gorm:"size:36;not null;index" json:"seller_id"`
	Seller      *User     `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	CategoryID  *string   `gorm:"size:36;index" json:"category_id"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Reviews     []Review  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`

	// Computed per request, never stored.
	AverageRating   float64 `gorm:"-" json:"average_rating"`
	ReviewCount     int64   `gorm:"-" json:"review_count"`
	DiscountPercent int     `gorm:"-" json:"discount_percent"`
}

// UnitPrice is the amount a buyer pays right now: the sale price when one
// is set below the regular price, otherwise the regular price. Checkout
// snapshots this value into order lines.
func (p *Product) UnitPrice() float64 {
	if p.SalePrice != nil && *p.SalePrice < p.Price {
		return *p.SalePrice
	}
	return p.Price
}

func (p *Product) computeDiscountPercent() int {
	if p.SalePrice != nil && *p.SalePrice < p.Price && p.Price > 0 {
		return int(math.Round((p.Price - *p.SalePrice) / p.Price * 100))
	}
	return 0
}

// AttachProductStats fills the computed review and discount fields on each
// product with a single grouped query.
func AttachProductStats(db *gorm.DB, products []*Product) error {
	for _, p := range products {
		p.DiscountPercent = p.computeDiscountPercent()
	}

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	if len(ids) == 0 {
		return nil
	}

	type reviewAgg struct {
		ProductID string
		Avg       float64
		Count     int64
	}
	var aggs []reviewAgg
	if err := db.Model(&Review{}).
		Select("product_id, AVG(rating) AS avg, COUNT(*) AS count").
		Where("product_id IN ?", ids).
		Group("product_id").
		Scan(&aggs).Error; err != nil {
		return err
	}

	byID := make(map[string]reviewAgg, len(aggs))
	for _, a := range aggs {
		byID[a.ProductID] = a
	}
	for _, p := range products {
		if a, ok := byID[p.ID]; ok {
			p.AverageRating = a.Avg
			p.ReviewCount = a.Count
		}
	}
	return nil
}

type Review struct {
	Base
	CustomID  string   `gorm:"uniqueIndex" json:"custom_id"`
	ProductID string   `gorm:"size:36;not null;uniqueIndex:idx_review_product_user" json:"product_id"`
	UserID    string   `gorm:"size:36;not null;uniqueIndex:idx_review_product_user" json:"user_id"`
	User      *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"-"`
	Rating    int      `gorm:"not null" json:"rating"`
	Comment   string   `json:"comment"`
}
