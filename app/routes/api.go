// Package routes wires controllers onto the HTTP router.
package routes

import (
	"gorm.io/gorm"

	"github.com/pedalpoint/bikeshop/app/controllers"
	"github.com/pedalpoint/bikeshop/app/repositories"
	"github.com/pedalpoint/bikeshop/app/services"
	"github.com/pedalpoint/bikeshop/pkg/middleware"
	"github.com/pedalpoint/bikeshop/pkg/rbac"
	"github.com/pedalpoint/bikeshop/pkg/router"
)

// RegisterAPI builds the repository/service/controller graph on db and
// mounts every endpoint under /api.
func RegisterAPI(r *router.Router, db *gorm.DB) {
	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	userRepo := repositories.NewUserRepository(db)
	shopReviewRepo := repositories.NewShopReviewRepository(db)
	productReviewRepo := repositories.NewProductReviewRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	wishlistRepo := repositories.NewWishlistRepository(db)
	shippingRepo := repositories.NewShippingRepository(db)
	imageRepo := repositories.NewImageRepository(db)
	attributeRepo := repositories.NewAttributeRepository(db)

	products := controllers.NewProductController(services.NewProductService(productRepo))
	orders := controllers.NewOrderController(services.NewOrderService(orderRepo, productRepo))
	dashboard := controllers.NewDashboardController(services.NewDashboardService(orderRepo, productRepo, userRepo))
	users := controllers.NewUserController(services.NewUserService(userRepo))
	shopReviews := controllers.NewShopReviewController(services.NewShopReviewService(shopReviewRepo))
	productReviews := controllers.NewProductReviewController(services.NewProductReviewService(productReviewRepo, productRepo))
	cart := controllers.NewCartController(services.NewCartService(cartRepo, productRepo))
	wishlist := controllers.NewWishlistController(services.NewWishlistService(wishlistRepo, productRepo))
	shipping := controllers.NewShippingController(services.NewShippingService(shippingRepo))
	images := controllers.NewImageController(services.NewImageService(imageRepo, productRepo, services.DefaultImageStore()))
	attributes := controllers.NewAttributeController(services.NewAttributeService(attributeRepo, productRepo))

	api := r.Group("/api")

	// Catalog. Reads are public, writes are admin-only.
	catalog := api.Group("/all-products")
	catalog.Get("", "products.list", products.List)
	catalog.Get("/filter", "products.filter", products.Filter)
	catalog.Get("/search", "products.search", products.Search)
	catalog.Get("/category/{category}", "products.by_category", products.ByCategory)
	catalog.Get("/{id}", "products.get", products.Get)

	catalogAdmin := api.Group("/all-products", middleware.Auth, rbac.AdminOnly)
	catalogAdmin.Post("", "products.create", products.Create)
	catalogAdmin.Post("/bulk", "products.create_bulk", products.CreateBatch)
	catalogAdmin.Put("/{id}", "products.update", products.Update)
	catalogAdmin.Delete("/{id}", "products.delete", products.Delete)

	// Orders. Creation is open to guests; management is admin territory
	// except a user reading their own history.
	ordersGrp := api.Group("/orders")
	ordersGrp.Post("", "orders.create", orders.Create)

	ordersAuth := api.Group("/orders", middleware.Auth)
	ordersAuth.Get("/mine", "orders.mine", orders.Mine)

	ordersAdmin := api.Group("/orders", middleware.Auth, rbac.AdminOnly)
	ordersAdmin.Get("", "orders.list", orders.List)
	ordersAdmin.Get("/search", "orders.search", orders.Search)
	ordersAdmin.Get("/user/{userId}", "orders.by_user", orders.ByUser)
	ordersAdmin.Get("/user/{userId}/stats", "orders.user_stats", orders.UserStats)
	ordersAdmin.Get("/{id}", "orders.get", orders.Get)
	ordersAdmin.Put("/{id}", "orders.update", orders.Update)
	ordersAdmin.Put("/{id}/status", "orders.update_status", orders.UpdateStatus)
	ordersAdmin.Delete("/{id}", "orders.delete", orders.Delete)

	// Admin dashboard.
	admin := api.Group("/admin", middleware.Auth, rbac.AdminOnly)
	admin.Get("/dashboard", "admin.dashboard", dashboard.Stats)
	admin.Get("/dashboard/revenue", "admin.dashboard_revenue", dashboard.Revenue)

	// Accounts and auth.
	usersGrp := api.Group("/users")
	usersGrp.Post("/register", "users.register", users.Register)
	usersGrp.Post("/login", "users.login", users.Login)
	usersGrp.Post("/logout", "users.logout", users.Logout)

	usersAuth := api.Group("/users", middleware.Auth)
	usersAuth.Get("/me", "users.me", users.Me)
	usersAuth.Put("/me", "users.update_me", users.UpdateMe)

	usersAdmin := api.Group("/users", middleware.Auth, rbac.AdminOnly)
	usersAdmin.Get("", "users.list", users.List)
	usersAdmin.Get("/by-username/{username}", "users.by_username", users.GetByUsername)
	usersAdmin.Put("/{id}", "users.update", users.UpdateUser)
	usersAdmin.Put("/{id}/role", "users.set_role", users.SetRole)

	// Cart and wishlist are always per authenticated user.
	cartGrp := api.Group("/cart", middleware.Auth)
	cartGrp.Get("", "cart.get", cart.Get)
	cartGrp.Post("", "cart.add", cart.Add)
	cartGrp.Put("", "cart.update", cart.UpdateQuantity)
	cartGrp.Post("/sync", "cart.sync", cart.Sync)
	cartGrp.Delete("/clear", "cart.clear", cart.Clear)
	cartGrp.Delete("/{productId}", "cart.remove", cart.Remove)

	wishlistGrp := api.Group("/wishlist", middleware.Auth)
	wishlistGrp.Get("", "wishlist.get", wishlist.Get)
	wishlistGrp.Post("", "wishlist.add", wishlist.Add)
	wishlistGrp.Delete("/{productId}", "wishlist.remove", wishlist.Remove)

	// Shop reviews.
	shopRev := api.Group("/shop-reviews")
	shopRev.Get("", "shop_reviews.list", shopReviews.List)
	shopRev.Get("/average", "shop_reviews.average", shopReviews.Average)
	shopRev.Get("/stats", "shop_reviews.stats", shopReviews.Stats)
	shopRev.Get("/search", "shop_reviews.search", shopReviews.Search)
	shopRev.Get("/user/{userId}", "shop_reviews.by_user", shopReviews.ByUser)

	shopRevAuth := api.Group("/shop-reviews", middleware.Auth)
	shopRevAuth.Post("", "shop_reviews.create", shopReviews.Create)
	shopRevAuth.Get("/mine/reviewed", "shop_reviews.has_reviewed", shopReviews.HasReviewed)
	shopRevAuth.Put("/{id}", "shop_reviews.update", shopReviews.Update)
	shopRevAuth.Delete("/{id}", "shop_reviews.delete", shopReviews.Delete)

	// Product reviews plus the admin answer lifecycle.
	prodRev := api.Group("/product-reviews")
	prodRev.Get("", "product_reviews.list", productReviews.List)
	prodRev.Get("/answered", "product_reviews.answered", productReviews.Answered)
	prodRev.Get("/product/{productId}", "product_reviews.by_product", productReviews.ByProduct)

	prodRevAuth := api.Group("/product-reviews", middleware.Auth)
	prodRevAuth.Post("", "product_reviews.create", productReviews.Create)
	prodRevAuth.Put("/{id}", "product_reviews.update", productReviews.Update)
	prodRevAuth.Delete("/{id}", "product_reviews.delete", productReviews.Delete)

	prodRevAdmin := api.Group("/product-reviews", middleware.Auth, rbac.AdminOnly)
	prodRevAdmin.Put("/{id}/answer", "product_reviews.answer", productReviews.Answer)
	prodRevAdmin.Delete("/{id}/answer", "product_reviews.delete_answer", productReviews.DeleteAnswer)

	// Shipping info.
	shippingAdmin := api.Group("/shipping-info", middleware.Auth, rbac.AdminOnly)
	shippingAdmin.Get("", "shipping.all", shipping.All)
	shippingAdmin.Post("", "shipping.create", shipping.Create)
	shippingAdmin.Get("/order/{orderId}", "shipping.by_order", shipping.ByOrder)
	shippingAdmin.Put("/{id}", "shipping.update", shipping.Update)
	shippingAdmin.Delete("/{id}", "shipping.delete", shipping.Delete)

	// Product images.
	imagesGrp := api.Group("/images")
	imagesGrp.Get("/product/{productId}", "images.by_product", images.ByProduct)

	imagesAdmin := api.Group("/images", middleware.Auth, rbac.AdminOnly)
	imagesAdmin.Post("/product/{productId}", "images.upload", images.Upload)
	imagesAdmin.Delete("/{id}", "images.delete", images.Delete)

	// Product attributes.
	attrGrp := api.Group("/product-attributes")
	attrGrp.Get("/product/{productId}", "attributes.by_product", attributes.ByProduct)

	attrAdmin := api.Group("/product-attributes", middleware.Auth, rbac.AdminOnly)
	attrAdmin.Post("", "attributes.create", attributes.Create)
	attrAdmin.Put("/{id}", "attributes.update", attributes.Update)
	attrAdmin.Delete("/{id}", "attributes.delete", attributes.Delete)
	attrAdmin.Delete("/product/{productId}", "attributes.delete_by_product", attributes.DeleteByProduct)
}
