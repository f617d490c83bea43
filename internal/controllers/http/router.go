package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shop-api/internal/auth"
	"shop-api/internal/infra/rates"
	"shop-api/internal/services"
)

type Handler struct {
	tokens   *auth.TokenManager
	authSvc  *services.AuthService
	users    *services.UserService
	products *services.ProductService
	carts    *services.CartService
	checkout *services.CheckoutService
	orders   *services.OrderService
	reviews  *services.ReviewService
	pickups  *services.PickupService
	rates    rates.ClientInterface
}

type Services struct {
	Auth     *services.AuthService
	Users    *services.UserService
	Products *services.ProductService
	Carts    *services.CartService
	Checkout *services.CheckoutService
	Orders   *services.OrderService
	Reviews  *services.ReviewService
	Pickups  *services.PickupService
	Rates    rates.ClientInterface
}

func NewHandler(tokens *auth.TokenManager, svcs Services) *Handler {
	return &Handler{
		tokens:   tokens,
		authSvc:  svcs.Auth,
		users:    svcs.Users,
		products: svcs.Products,
		carts:    svcs.Carts,
		checkout: svcs.Checkout,
		orders:   svcs.Orders,
		reviews:  svcs.Reviews,
		pickups:  svcs.Pickups,
		rates:    svcs.Rates,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authRequired := RequireAuth(h.tokens, h.authSvc)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/register-admin", h.RegisterAdmin)
		authGroup.POST("/login", h.Login)
	}

	products := r.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/search", h.SearchProducts)
		products.GET("/recommended", h.RecommendedProducts)
		products.GET("/:id", h.GetProduct)
		products.GET("/:id/reviews", h.ListProductReviews)
		products.POST("", authRequired, h.CreateProduct)
		products.PUT("/:id", authRequired, h.UpdateProduct)
		products.DELETE("/:id", authRequired, h.DeleteProduct)
	}

	cart := r.Group("/cart", authRequired)
	{
		cart.GET("/my", h.GetMyCart)
		cart.POST("/add", h.AddToCart)
		cart.POST("/remove", h.RemoveFromCart)
		cart.POST("/clear", h.ClearCart)
	}

	orders := r.Group("/orders", authRequired)
	{
		orders.POST("/checkout", h.Checkout)
		orders.GET("/my", h.ListMyOrders)
		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id/status", h.UpdateOrderStatus)
		orders.POST("/:id/cancel", h.CancelOrder)
	}

	reviews := r.Group("/reviews")
	{
		reviews.POST("", authRequired, h.AddReview)
		reviews.DELETE("/:id", authRequired, h.DeleteReview)
	}

	r.GET("/pickup-points", h.ListPickupPoints)
	r.GET("/pickup-points/nearby", h.NearbyPickupPoints)
	r.GET("/rates/:target", h.GetExchangeRate)

	users := r.Group("/users", authRequired)
	{
		users.GET("", h.ListUsers)
		users.PUT("/me", h.UpdateProfile)
		users.DELETE("/:id", h.DeleteUser)
	}
}

func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
