// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/fashion-store/internal/interfaces/http/handlers"
	"github.com/your-org/fashion-store/internal/interfaces/http/middleware"
)

// Handlers groups every HTTP handler the API serves
type Handlers struct {
	Auth      *handlers.AuthHandler
	Product   *handlers.ProductHandler
	Review    *handlers.ReviewHandler
	Cart      *handlers.CartHandler
	Wishlist  *handlers.WishlistHandler
	Address   *handlers.UserAddressHandler
	Order     *handlers.OrderHandler
	Payment   *handlers.PaymentHandler
	Invoice   *handlers.InvoiceHandler
	Upload    *handlers.UploadHandler
	Feature   *handlers.FeatureHandler
	Analytics *handlers.AnalyticsHandler
}

// SetupRoutes mounts the auth, admin, shop and common groups on api
func SetupRoutes(api *gin.RouterGroup, h *Handlers, authn *middleware.Authenticator) {
	SetupAuthRoutes(api, h, authn)
	SetupAdminRoutes(api, h, authn)
	SetupShopRoutes(api, h, authn)
	SetupCommonRoutes(api, h, authn)
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, h *Handlers, authn *middleware.Authenticator) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)

		protected := auth.Group("")
		protected.Use(authn.AuthMiddleware())
		{
			protected.POST("/logout", h.Auth.Logout)
			protected.GET("/check-auth", h.Auth.CheckAuth)
			protected.GET("/profile", h.Auth.GetProfile)
		}
	}
}

// SetupAdminRoutes sets up the back-office routes
func SetupAdminRoutes(rg *gin.RouterGroup, h *Handlers, authn *middleware.Authenticator) {
	admin := rg.Group("/admin")
	admin.Use(authn.AuthMiddleware(), middleware.AdminMiddleware())

	products := admin.Group("/products")
	{
		products.POST("/upload-image", h.Upload.UploadImage)
		products.DELETE("/image", h.Upload.DeleteImage)
		products.POST("/add", h.Product.AdminCreateProduct)
		products.PUT("/edit/:id", h.Product.AdminUpdateProduct)
		products.DELETE("/delete/:id", h.Product.AdminDeleteProduct)
		products.GET("/get", h.Product.AdminGetProducts)
	}

	orders := admin.Group("/orders")
	{
		orders.GET("/get", h.Order.AdminGetOrders)
		orders.GET("/details/:id", h.Order.AdminGetOrder)
		orders.PUT("/update/:id", h.Order.AdminUpdateOrderStatus)
		orders.PUT("/cancellation/:id", h.Order.AdminReviewCancellation)
		orders.PUT("/return/:id", h.Order.AdminReviewReturn)
		orders.GET("/history/:id", h.Order.AdminGetOrderHistory)
		orders.GET("/invoice/:id", h.Invoice.AdminGenerateInvoice)
		orders.GET("/label/:id", h.Invoice.AdminShippingLabel)
	}

	admin.GET("/dashboard", h.Analytics.GetDashboard)
}

// SetupShopRoutes sets up the storefront routes
func SetupShopRoutes(rg *gin.RouterGroup, h *Handlers, authn *middleware.Authenticator) {
	shop := rg.Group("/shop")

	products := shop.Group("/products")
	{
		products.GET("/get", h.Product.GetProducts)
		products.GET("/get/:id", h.Product.GetProduct)
	}
	shop.GET("/search/:keyword", h.Product.SearchProducts)
	shop.GET("/review/:productId", h.Review.GetProductReviews)

	protected := shop.Group("")
	protected.Use(authn.AuthMiddleware())

	protected.POST("/review/add", h.Review.CreateReview)

	cart := protected.Group("/cart")
	{
		cart.POST("/add", h.Cart.AddToCart)
		cart.GET("/get", h.Cart.GetCart)
		cart.PUT("/update-cart", h.Cart.UpdateCartItem)
		cart.DELETE("/clear", h.Cart.ClearCart)
		cart.DELETE("/:productId", h.Cart.RemoveFromCart)
	}

	wishlist := protected.Group("/wishlist")
	{
		wishlist.GET("/get", h.Wishlist.GetWishlist)
		wishlist.POST("/add", h.Wishlist.AddToWishlist)
		wishlist.POST("/move-to-cart", h.Wishlist.MoveToCart)
		wishlist.DELETE("/:productId", h.Wishlist.RemoveFromWishlist)
	}

	address := protected.Group("/address")
	{
		address.POST("/add", h.Address.CreateAddress)
		address.GET("/get", h.Address.GetAddresses)
		address.PUT("/update/:addressId", h.Address.UpdateAddress)
		address.DELETE("/delete/:addressId", h.Address.DeleteAddress)
	}

	order := protected.Group("/order")
	{
		order.POST("/create", h.Order.CreateOrder)
		order.POST("/capture", h.Payment.CapturePayment)
		order.GET("/list", h.Order.GetOrders)
		order.GET("/details/:id", h.Order.GetOrder)
		order.POST("/cancel/:id", h.Order.RequestCancellation)
		order.POST("/return/:id", h.Order.RequestReturn)
		order.GET("/invoice/:id", h.Invoice.GenerateInvoice)
		order.GET("/invoice/:id/preview", h.Invoice.GetInvoicePreview)
	}
}

// SetupCommonRoutes sets up routes shared by the storefront and admin panel
func SetupCommonRoutes(rg *gin.RouterGroup, h *Handlers, authn *middleware.Authenticator) {
	feature := rg.Group("/common/feature")
	{
		feature.GET("/get", h.Feature.GetFeatureImages)

		admin := feature.Group("")
		admin.Use(authn.AuthMiddleware(), middleware.AdminMiddleware())
		{
			admin.POST("/add", h.Feature.AddFeatureImage)
			admin.DELETE("/delete/:id", h.Feature.DeleteFeatureImage)
		}
	}
}
