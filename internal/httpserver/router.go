package httpserver

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
	ordersvc "storefront/internal/service/order"
	paymentsvc "storefront/internal/service/payment"
	productsvc "storefront/internal/service/product"
	usersvc "storefront/internal/service/user"
)

// Deps carries the services the router wires handlers to.
type Deps struct {
	UserSvc    *usersvc.Service
	ProductSvc *productsvc.Service
	CartSvc    *cartsvc.Service
	OrderSvc   *ordersvc.Service
	PaymentSvc *paymentsvc.Service
}

type authLookup interface {
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(accessLog(logger), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	auth := authRequired(deps.UserSvc)
	admin := adminRequired()

	api := router.Group("/api")

	users := api.Group("/users")
	{
		users.POST("/register", registerHandler(deps.UserSvc))
		users.POST("/login", loginHandler(deps.UserSvc))
		users.GET("/profile", auth, profileHandler(deps.UserSvc))
		users.PUT("/profile", auth, updateProfileHandler(deps.UserSvc))
		users.GET("", auth, admin, listUsersHandler(deps.UserSvc))
		users.DELETE("/:id", auth, admin, deleteUserHandler(deps.UserSvc))
	}

	products := api.Group("/products")
	{
		products.GET("", listProductsHandler(deps.ProductSvc))
		products.GET("/:id", getProductHandler(deps.ProductSvc))
		products.POST("", auth, admin, createProductHandler(deps.ProductSvc))
		products.PUT("/:id", auth, admin, updateProductHandler(deps.ProductSvc))
		products.DELETE("/:id", auth, admin, deleteProductHandler(deps.ProductSvc))
		products.POST("/:id/reviews", auth, createReviewHandler(deps.ProductSvc))
	}

	cart := api.Group("/cart", auth)
	{
		cart.GET("", getCartHandler(deps.CartSvc))
		cart.POST("/items", addCartItemHandler(deps.CartSvc))
		cart.PUT("/items", updateCartItemHandler(deps.CartSvc))
		cart.DELETE("/items/:productId", removeCartItemHandler(deps.CartSvc))
		cart.DELETE("", clearCartHandler(deps.CartSvc))
	}

	orders := api.Group("/orders", auth)
	{
		orders.POST("", createOrderHandler(deps.OrderSvc))
		orders.GET("/myorders", myOrdersHandler(deps.OrderSvc))
		orders.GET("/:id", getOrderHandler(deps.OrderSvc))
		orders.PUT("/:id/pay", payOrderHandler(deps.OrderSvc))
		orders.PUT("/:id/deliver", admin, deliverOrderHandler(deps.OrderSvc))
		orders.GET("", admin, listOrdersHandler(deps.OrderSvc))
	}

	payments := api.Group("/payments")
	{
		payments.POST("/create-payment-intent", auth, createIntentHandler(deps.PaymentSvc))
		payments.GET("/status/:orderId", auth, paymentStatusHandler(deps.PaymentSvc))
		// Webhook is authenticated by signature, not bearer token.
		payments.POST("/webhook", webhookHandler(deps.PaymentSvc))
	}

	return router
}
