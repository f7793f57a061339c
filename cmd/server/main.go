package main

import (
	"time"

	"github.com/BartKempa/api-ecommerce-sub000/internal/address"
	"github.com/BartKempa/api-ecommerce-sub000/internal/card"
	"github.com/BartKempa/api-ecommerce-sub000/internal/cart"
	"github.com/BartKempa/api-ecommerce-sub000/internal/category"
	"github.com/BartKempa/api-ecommerce-sub000/internal/config"
	"github.com/BartKempa/api-ecommerce-sub000/internal/db"
	"github.com/BartKempa/api-ecommerce-sub000/internal/delivery"
	"github.com/BartKempa/api-ecommerce-sub000/internal/httpserver"
	"github.com/BartKempa/api-ecommerce-sub000/internal/logger"
	"github.com/BartKempa/api-ecommerce-sub000/internal/order"
	"github.com/BartKempa/api-ecommerce-sub000/internal/payment"
	"github.com/BartKempa/api-ecommerce-sub000/internal/product"
	"github.com/BartKempa/api-ecommerce-sub000/internal/stock"
	"github.com/BartKempa/api-ecommerce-sub000/internal/user"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	ledger := stock.NewLedger(database)
	tokens := user.NewTokenManager(cfg.JWTSecret, 24*time.Hour)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, tokens)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	categoryRepo := category.NewRepository(database)
	categorySvc := category.NewService(categoryRepo)

	cartRepo := cart.NewRepository(database, ledger)
	cartSvc := cart.NewService(cartRepo)
	itemSvc := cart.NewItemService(cartRepo, userRepo, productRepo)

	addressRepo := address.NewRepository(database)
	addressSvc := address.NewService(addressRepo)

	deliveryRepo := delivery.NewRepository(database)
	deliverySvc := delivery.NewService(deliveryRepo)

	cardRepo := card.NewRepository(database)
	cardSvc := card.NewService(cardRepo)

	orderRepo := order.NewRepository(database, ledger)
	orderSvc := order.NewService(
		orderRepo,
		userRepo,
		addressRepo,
		deliveryRepo,
		payment.NewCoinFlip(time.Now().UnixNano()),
	)

	server := httpserver.New(httpserver.Deps{
		Users:      userSvc,
		Tokens:     tokens,
		Products:   productSvc,
		Categories: categorySvc,
		Carts:      cartSvc,
		Items:      itemSvc,
		Orders:     orderSvc,
		Addresses:  addressSvc,
		Deliveries: deliverySvc,
		Cards:      cardSvc,
		Ledger:     ledger,
	})

	logger.L().Info("server listening", zap.String("port", cfg.AppPort))
	if err := server.Run(":" + cfg.AppPort); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
