package models

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	// A second pooled connection would see a different :memory: database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&User{}, &Category{}, &Product{}, &Review{},
		&Cart{}, &CartItem{}, &Order{}, &OrderItem{},
		&WishlistItem{}, &RevokedToken{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newSeller(t *testing.T, db *gorm.DB, email string) *User {
	t.Helper()
	user := &User{CustomID: "USR-" + email, Email: email, PasswordHash: "x", Username: email, Role: RoleSeller}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create seller: %v", err)
	}
	return user
}

func newProduct(t *testing.T, db *gorm.DB, sellerID, customID string, price float64, stock int) *Product {
	t.Helper()
	product := &Product{
		CustomID: customID,
		Name:     "Product " + customID,
		Price:    price,
		Stock:    stock,
		IsActive: true,
		SellerID: sellerID,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}
