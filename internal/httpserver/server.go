package httpserver

import (
	"time"

	"github.com/BartKempa/api-ecommerce-sub000/internal/address"
	"github.com/BartKempa/api-ecommerce-sub000/internal/card"
	"github.com/BartKempa/api-ecommerce-sub000/internal/cart"
	"github.com/BartKempa/api-ecommerce-sub000/internal/category"
	"github.com/BartKempa/api-ecommerce-sub000/internal/delivery"
	"github.com/BartKempa/api-ecommerce-sub000/internal/metrics"
	"github.com/BartKempa/api-ecommerce-sub000/internal/middleware"
	"github.com/BartKempa/api-ecommerce-sub000/internal/order"
	"github.com/BartKempa/api-ecommerce-sub000/internal/product"
	"github.com/BartKempa/api-ecommerce-sub000/internal/stock"
	"github.com/BartKempa/api-ecommerce-sub000/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Deps struct {
	Users      user.Service
	Tokens     *user.TokenManager
	Products   product.Service
	Categories category.Service
	Carts      cart.Service
	Items      cart.ItemService
	Orders     order.Service
	Addresses  address.Service
	Deliveries delivery.Service
	Cards      card.Service
	Ledger     *stock.Ledger
}

type Server struct {
	router  *gin.Engine
	deps    Deps
	metrics *metrics.HTTP
}

func New(deps Deps) *Server {
	s := &Server{
		router:  gin.New(),
		deps:    deps,
		metrics: &metrics.HTTP{},
	}

	limiter := middleware.NewLimiter()

	s.router.Use(gin.Recovery())
	s.router.Use(middleware.Logging(s.metrics))
	s.router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	s.router.Use(middleware.Auth(deps.Tokens))

	s.routes(limiter)
	return s
}

func (s *Server) routes(limiter *middleware.Limiter) {
	r := s.router

	r.GET("/healthz", s.health)

	auth := r.Group("/auth", limiter.Strict())
	{
		auth.POST("/register", s.register)
		auth.POST("/login", s.login)
	}

	products := r.Group("/products", limiter.General())
	{
		products.GET("", s.listProducts)
		products.GET("/:id", s.getProduct)
		products.GET("/:id/stock", s.getProductStock)
		products.POST("", middleware.RequireAdmin(), s.createProduct)
		products.POST("/:id/stock", middleware.RequireAdmin(), s.adjustProductStock)
	}

	categories := r.Group("/categories", limiter.General())
	{
		categories.GET("", s.listCategories)
		categories.POST("", middleware.RequireAdmin(), s.createCategory)
		categories.DELETE("/:id", middleware.RequireAdmin(), s.deleteCategory)
	}

	deliveries := r.Group("/deliveries", limiter.General())
	{
		deliveries.GET("", s.listDeliveries)
		deliveries.POST("", middleware.RequireAdmin(), s.createDelivery)
		deliveries.DELETE("/:id", middleware.RequireAdmin(), s.deleteDelivery)
	}

	carts := r.Group("/cart", limiter.General(), middleware.RequireAuth())
	{
		carts.POST("", s.createCart)
		carts.GET("", s.findCart)
		carts.DELETE("", s.deleteCart)
		carts.POST("/clear", s.clearCart)

		carts.POST("/items", s.addItem)
		carts.GET("/items/:id", s.findItem)
		carts.PATCH("/items/:id", s.setItemQuantity)
		carts.POST("/items/:id/increment", s.incrementItem)
		carts.POST("/items/:id/decrement", s.decrementItem)
		carts.DELETE("/items/:id", s.removeItem)
	}

	orders := r.Group("/orders", middleware.RequireAuth())
	{
		orders.POST("", limiter.Strict(), s.createOrder)
		orders.GET("/:id", limiter.General(), s.findOrder)
		orders.POST("/:id/payment", limiter.Strict(), s.processPayment)
		orders.POST("/:id/cancel", limiter.General(), s.cancelOrder)
		orders.POST("/:id/confirm", limiter.General(), s.confirmOrder)

		orders.GET("", limiter.General(), middleware.RequireAdmin(), s.listOrders)
		orders.DELETE("/:id", limiter.General(), middleware.RequireAdmin(), s.deleteOrder)
	}

	addresses := r.Group("/addresses", limiter.General(), middleware.RequireAuth())
	{
		addresses.POST("", s.createAddress)
		addresses.GET("", s.listAddresses)
		addresses.GET("/:id", s.getAddress)
		addresses.DELETE("/:id", s.deleteAddress)
	}

	cards := r.Group("/cards", limiter.General(), middleware.RequireAuth())
	{
		cards.POST("", s.createCard)
		cards.GET("", s.listCards)
		cards.DELETE("/:id", s.deleteCard)
	}
}

// Handler exposes the router for tests and the main entrypoint.
func (s *Server) Handler() *gin.Engine {
	return s.router
}

func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":        "ok",
		"requests":      s.metrics.Requests.Load(),
		"client_errors": s.metrics.ClientErrors.Load(),
		"server_errors": s.metrics.ServerErrors.Load(),
	})
}
