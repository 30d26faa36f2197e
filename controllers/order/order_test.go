package orderControllers

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shopora/shopora-api/apperr"
	cartControllers "github.com/shopora/shopora-api/controllers/cart"
	"github.com/shopora/shopora-api/models"
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
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&models.User{}, &models.Product{}, &models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()
	user := models.User{CustomID: "USR-" + email, Email: email, PasswordHash: "x", Role: role}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}

func seedProduct(t *testing.T, db *gorm.DB, sellerID, customID string, price float64, salePrice *float64, stock int) *models.Product {
	t.Helper()
	product := models.Product{
		CustomID:  customID,
		Name:      "Product " + customID,
		Price:     price,
		SalePrice: salePrice,
		Stock:     stock,
		IsActive:  true,
		SellerID:  sellerID,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return &product
}

func floatPtr(f float64) *float64 { return &f }

func TestCheckout_EmptyCart(t *testing.T) {
	db := openTestDB(t)
	buyer := seedUser(t, db, "buyer@example.com", models.RoleBuyer)

	if _, err := Checkout(db, buyer.ID); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected ValidationError for empty cart, got %v", err)
	}

	var count int64
	db.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no orders, got %d", count)
	}
}

func TestCheckout_Succeeds(t *testing.T) {
	db := openTestDB(t)
	buyer := seedUser(t, db, "buyer@example.com", models.RoleBuyer)
	seller := seedUser(t, db, "seller@example.com", models.RoleSeller)
	regular := seedProduct(t, db, seller.ID, "PRD-001", 100, nil, 10)
	onSale := seedProduct(t, db, seller.ID, "PRD-002", 50, floatPtr(40), 5)

	if _, err := cartControllers.AddItem(db, buyer.ID, regular.ID, 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := cartControllers.AddItem(db, buyer.ID, onSale.ID, 3); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	order, err := Checkout(db, buyer.ID)
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if order.Status != models.OrderStatusPending {
		t.Errorf("expected pending status, got %s", order.Status)
	}
	if order.CustomID != "ORD-001" {
		t.Errorf("expected ORD-001, got %s", order.CustomID)
	}
	// 2×100 at regular price plus 3×40 at sale price.
	if order.TotalAmount != 320 {
		t.Errorf("expected total 320, got %v", order.TotalAmount)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(order.Items))
	}

	var cart models.Cart
	if err := db.Preload("Items").Where("user_id = ?", buyer.ID).First(&cart).Error; err != nil {
		t.Fatalf("load cart: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("expected cart cleared after checkout, %d items remain", len(cart.Items))
	}

	var p1, p2 models.Product
	db.First(&p1, "id = ?", regular.ID)
	db.First(&p2, "id = ?", onSale.ID)
	if p1.Stock != 8 {
		t.Errorf("expected stock 8 after selling 2, got %d", p1.Stock)
	}
	if p2.Stock != 2 {
		t.Errorf("expected stock 2 after selling 3, got %d", p2.Stock)
	}
}

func TestCheckout_SnapshotPriceSurvivesRepricing(t *testing.T) {
	db := openTestDB(t)
	buyer := seedUser(t, db, "buyer@example.com", models.RoleBuyer)
	seller := seedUser(t, db, "seller@example.com", models.RoleSeller)
	product := seedProduct(t, db, seller.ID, "PRD-001", 100, nil, 10)

	if _, err := cartControllers.AddItem(db, buyer.ID, product.ID, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	order, err := Checkout(db, buyer.ID)
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Update("price", 50).Error; err != nil {
		t.Fatalf("reprice: %v", err)
	}

	var item models.OrderItem
	if err := db.Where("order_id = ?", order.ID).First(&item).Error; err != nil {
		t.Fatalf("load order item: %v", err)
	}
	if item.PriceAtPurchase != 100 {
		t.Errorf("snapshot price changed: expected 100, got %v", item.PriceAtPurchase)
	}
}

func TestCheckout_InsufficientStockRollsBackEverything(t *testing.T) {
	db := openTestDB(t)
	buyer := seedUser(t, db, "buyer@example.com", models.RoleBuyer)
	seller := seedUser(t, db, "seller@example.com", models.RoleSeller)
	plentiful := seedProduct(t, db, seller.ID, "PRD-001", 10, nil, 100)
	scarce := seedProduct(t, db, seller.ID, "PRD-002", 10, nil, 1)

	if _, err := cartControllers.AddItem(db, buyer.ID, plentiful.ID, 5); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := cartControllers.AddItem(db, buyer.ID, scarce.ID, 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	// The first line's decrement succeeds inside the transaction, then
	// the second line fails, so the whole checkout must roll back.
	if _, err := Checkout(db, buyer.ID); !apperr.IsKind(err, apperr.KindInsufficientStock) {
		t.Fatalf("expected InsufficientStock, got %v", err)
	}

	var orders, items int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderItem{}).Count(&items)
	if orders != 0 || items != 0 {
		t.Errorf("expected no order rows after rollback, got %d orders, %d items", orders, items)
	}

	var p models.Product
	db.First(&p, "id = ?", plentiful.ID)
	if p.Stock != 100 {
		t.Errorf("expected stock restored to 100, got %d", p.Stock)
	}

	var cart models.Cart
	if err := db.Preload("Items").Where("user_id = ?", buyer.ID).First(&cart).Error; err != nil {
		t.Fatalf("load cart: %v", err)
	}
	if len(cart.Items) != 2 {
		t.Errorf("expected cart intact after rollback, got %d items", len(cart.Items))
	}
}

func TestCheckout_CompetingBuyersCannotOversell(t *testing.T) {
	db := openTestDB(t)
	first := seedUser(t, db, "first@example.com", models.RoleBuyer)
	second := seedUser(t, db, "second@example.com", models.RoleBuyer)
	seller := seedUser(t, db, "seller@example.com", models.RoleSeller)
	product := seedProduct(t, db, seller.ID, "PRD-001", 10, nil, 1)

	if _, err := cartControllers.AddItem(db, first.ID, product.ID, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := cartControllers.AddItem(db, second.ID, product.ID, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if _, err := Checkout(db, first.ID); err != nil {
		t.Fatalf("first checkout: %v", err)
	}
	if _, err := Checkout(db, second.ID); !apperr.IsKind(err, apperr.KindInsufficientStock) {
		t.Fatalf("expected InsufficientStock for the losing buyer, got %v", err)
	}

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	if orders != 1 {
		t.Errorf("expected exactly one order, got %d", orders)
	}
	var p models.Product
	db.First(&p, "id = ?", product.ID)
	if p.Stock != 0 {
		t.Errorf("expected stock 0, got %d", p.Stock)
	}
}

func TestGetOwnOrder_ScopesToBuyer(t *testing.T) {
	db := openTestDB(t)
	buyer := seedUser(t, db, "buyer@example.com", models.RoleBuyer)
	other := seedUser(t, db, "other@example.com", models.RoleBuyer)
	seller := seedUser(t, db, "seller@example.com", models.RoleSeller)
	product := seedProduct(t, db, seller.ID, "PRD-001", 10, nil, 5)

	if _, err := cartControllers.AddItem(db, buyer.ID, product.ID, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	order, err := Checkout(db, buyer.ID)
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if _, err := GetOwnOrder(db, buyer.ID, order.ID); err != nil {
		t.Errorf("owner lookup failed: %v", err)
	}
	// Another buyer must see NotFound, never a hint the order exists.
	if _, err := GetOwnOrder(db, other.ID, order.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected NotFound for foreign order, got %v", err)
	}
}
