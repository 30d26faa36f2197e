package cartControllers

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shopora/shopora-api/apperr"
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
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedBuyerAndProduct(t *testing.T, db *gorm.DB) (buyerID, productID string) {
	t.Helper()
	buyer := models.User{CustomID: "USR-001", Email: "buyer@example.com", PasswordHash: "x", Role: models.RoleBuyer}
	if err := db.Create(&buyer).Error; err != nil {
		t.Fatalf("create buyer: %v", err)
	}
	seller := models.User{CustomID: "USR-002", Email: "seller@example.com", PasswordHash: "x", Role: models.RoleSeller}
	if err := db.Create(&seller).Error; err != nil {
		t.Fatalf("create seller: %v", err)
	}
	product := models.Product{CustomID: "PRD-001", Name: "Keyboard", Price: 50, Stock: 10, IsActive: true, SellerID: seller.ID}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return buyer.ID, product.ID
}

func TestGetOrCreateCart_Idempotent(t *testing.T) {
	db := openTestDB(t)
	buyerID, _ := seedBuyerAndProduct(t, db)

	first, err := GetOrCreateCart(db, buyerID)
	if err != nil {
		t.Fatalf("GetOrCreateCart: %v", err)
	}
	second, err := GetOrCreateCart(db, buyerID)
	if err != nil {
		t.Fatalf("GetOrCreateCart: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected one cart per user, got %s and %s", first.ID, second.ID)
	}

	var count int64
	db.Model(&models.Cart{}).Where("user_id = ?", buyerID).Count(&count)
	if count != 1 {
		t.Errorf("expected exactly one cart row, got %d", count)
	}
}

func TestAddItem_AggregatesQuantity(t *testing.T) {
	db := openTestDB(t)
	buyerID, productID := seedBuyerAndProduct(t, db)

	for _, qty := range []int{2, 3, 1} {
		if _, err := AddItem(db, buyerID, productID, qty); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
	}

	cart, err := GetOrCreateCart(db, buyerID)
	if err != nil {
		t.Fatalf("GetOrCreateCart: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected one cart line, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 6 {
		t.Errorf("expected quantity 6, got %d", cart.Items[0].Quantity)
	}
}

func TestAddItem_UnknownOrInactiveProduct(t *testing.T) {
	db := openTestDB(t)
	buyerID, productID := seedBuyerAndProduct(t, db)

	if _, err := AddItem(db, buyerID, "no-such-product", 1); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected NotFound for unknown product, got %v", err)
	}

	db.Model(&models.Product{}).Where("id = ?", productID).Update("is_active", false)
	if _, err := AddItem(db, buyerID, productID, 1); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected NotFound for inactive product, got %v", err)
	}
}

func TestUpdateItem_RejectsBadQuantity(t *testing.T) {
	db := openTestDB(t)
	buyerID, productID := seedBuyerAndProduct(t, db)

	item, err := AddItem(db, buyerID, productID, 2)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if _, err := UpdateItem(db, buyerID, item.ID, 0); !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("expected ValidationError for quantity 0, got %v", err)
	}

	updated, err := UpdateItem(db, buyerID, item.ID, 5)
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if updated.Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", updated.Quantity)
	}
}

func TestUpdateItem_OtherUsersItemIsNotFound(t *testing.T) {
	db := openTestDB(t)
	buyerID, productID := seedBuyerAndProduct(t, db)

	other := models.User{CustomID: "USR-003", Email: "other@example.com", PasswordHash: "x", Role: models.RoleBuyer}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	item, err := AddItem(db, buyerID, productID, 2)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if _, err := UpdateItem(db, other.ID, item.ID, 3); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected NotFound for another user's item, got %v", err)
	}
}

func TestRemoveItem(t *testing.T) {
	db := openTestDB(t)
	buyerID, productID := seedBuyerAndProduct(t, db)

	item, err := AddItem(db, buyerID, productID, 1)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if err := RemoveItem(db, buyerID, item.ID); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if err := RemoveItem(db, buyerID, item.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected NotFound on second removal, got %v", err)
	}
}
