package migrations

import (
	"gorm.io/gorm"

	"github.com/pedalpoint/bikeshop/app/models"
	"github.com/pedalpoint/bikeshop/pkg/migration"
)

func init() {
	migration.Register("20260110000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260110000001_create_products_table", &CreateProductsTable{})
	migration.Register("20260110000002_create_orders_table", &CreateOrdersTable{})
	migration.Register("20260110000003_create_reviews_tables", &CreateReviewsTables{})
	migration.Register("20260110000004_create_cart_wishlist_tables", &CreateCartWishlistTables{})
}

// -------- users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- products, images, attributes --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Product{},
		&models.ProductImage{},
		&models.ProductAttribute{},
	)
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("product_attributes", "product_images", "products")
}

// -------- orders, items, shipping --------

type CreateOrdersTable struct{}

func (m *CreateOrdersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Order{},
		&models.OrderItem{},
		&models.ShippingInfo{},
	)
}

func (m *CreateOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("shipping_infos", "order_items", "orders")
}

// -------- shop and product reviews --------

type CreateReviewsTables struct{}

func (m *CreateReviewsTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.ShopReview{},
		&models.ProductReview{},
	)
}

func (m *CreateReviewsTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("product_reviews", "shop_reviews")
}

// -------- cart and wishlist --------

type CreateCartWishlistTables struct{}

func (m *CreateCartWishlistTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.CartItem{},
		&models.WishlistItem{},
	)
}

func (m *CreateCartWishlistTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("wishlist_items", "cart_items")
}
