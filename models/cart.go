package models

type Cart struct {
	Base
	UserID string     `gorm:"size:36;uniqueIndex;not null" json:"user_id"` // one cart per user
	Items  []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
}

// CartItem links a cart to a product. Prices are never cached here:
// checkout always reads the live product price.
type CartItem struct {
	Base
	CartID    string   `gorm:"size:36;not null;uniqueIndex:idx_cart_product" json:"cart_id"`
	ProductID string   `gorm:"size:36;not null;uniqueIndex:idx_cart_product" json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int      `gorm:"not null" json:"quantity"`
}
