package httpserver

import (
	"errors"
	"net/http"

	"github.com/BartKempa/api-ecommerce-sub000/internal/address"
	"github.com/BartKempa/api-ecommerce-sub000/internal/card"
	"github.com/BartKempa/api-ecommerce-sub000/internal/cart"
	"github.com/BartKempa/api-ecommerce-sub000/internal/category"
	"github.com/BartKempa/api-ecommerce-sub000/internal/delivery"
	"github.com/BartKempa/api-ecommerce-sub000/internal/logger"
	"github.com/BartKempa/api-ecommerce-sub000/internal/order"
	"github.com/BartKempa/api-ecommerce-sub000/internal/product"
	"github.com/BartKempa/api-ecommerce-sub000/internal/stock"
	"github.com/BartKempa/api-ecommerce-sub000/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var statusByError = map[error]int{
	user.ErrUserNotFound:         http.StatusNotFound,
	product.ErrProductNotFound:   http.StatusNotFound,
	stock.ErrProductNotFound:     http.StatusNotFound,
	cart.ErrCartNotFound:         http.StatusNotFound,
	cart.ErrNoCart:               http.StatusNotFound,
	cart.ErrItemNotFound:         http.StatusNotFound,
	cart.ErrUserNotFound:         http.StatusNotFound,
	cart.ErrProductNotFound:      http.StatusNotFound,
	order.ErrOrderNotFound:       http.StatusNotFound,
	order.ErrUserNotFound:        http.StatusNotFound,
	order.ErrCartNotFound:        http.StatusNotFound,
	order.ErrAddressNotFound:     http.StatusNotFound,
	order.ErrDeliveryNotFound:    http.StatusNotFound,
	address.ErrAddressNotFound:   http.StatusNotFound,
	category.ErrCategoryNotFound: http.StatusNotFound,
	delivery.ErrDeliveryNotFound: http.StatusNotFound,
	card.ErrCardNotFound:         http.StatusNotFound,

	user.ErrEmailExists:        http.StatusConflict,
	cart.ErrCartAlreadyExists:  http.StatusConflict,
	category.ErrCategoryExists: http.StatusConflict,
	stock.ErrOutOfStock:        http.StatusConflict,
	stock.ErrInsufficientStock: http.StatusConflict,
	order.ErrInvalidTransition: http.StatusConflict,

	cart.ErrInvalidQuantity:    http.StatusBadRequest,
	cart.ErrBelowMinimum:       http.StatusBadRequest,
	product.ErrInvalidPrice:    http.StatusBadRequest,
	product.ErrInvalidQuantity: http.StatusBadRequest,
	order.ErrInvalidSortField:  http.StatusBadRequest,
	address.ErrMissingField:    http.StatusBadRequest,
	delivery.ErrInvalidCharge:  http.StatusBadRequest,
	delivery.ErrMissingName:    http.StatusBadRequest,
	category.ErrMissingName:    http.StatusBadRequest,
	card.ErrInvalidNumber:      http.StatusBadRequest,
	card.ErrInvalidExpiry:      http.StatusBadRequest,

	user.ErrInvalidCredentials: http.StatusUnauthorized,

	cart.ErrNotOwned:    http.StatusForbidden,
	order.ErrForbidden:  http.StatusForbidden,
	address.ErrNotOwned: http.StatusForbidden,
	card.ErrNotOwned:    http.StatusForbidden,
}

// respondError translates domain sentinels into the JSON error envelope.
// Anything unmapped is a 500 with the detail kept out of the response.
func respondError(c *gin.Context, err error) {
	for sentinel, status := range statusByError {
		if errors.Is(err, sentinel) {
			c.JSON(status, gin.H{"error": sentinel.Error()})
			return
		}
	}

	logger.FromCtx(c.Request.Context()).Error("unhandled error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
