package httpserver

import (
	"net/http"
	"strconv"

	"github.com/BartKempa/api-ecommerce-sub000/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type createOrderRequest struct {
	AddressID  uuid.UUID `json:"addressId" binding:"required"`
	DeliveryID uuid.UUID `json:"deliveryId" binding:"required"`
}

func (s *Server) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	email := utils.GetUserEmailFromContext(c.Request.Context())
	o, err := s.deps.Orders.CreateOrder(c.Request.Context(), email, req.AddressID, req.DeliveryID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, o)
}

func (s *Server) findOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	email := utils.GetUserEmailFromContext(c.Request.Context())
	o, err := s.deps.Orders.FindOrder(c.Request.Context(), id, email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, o)
}

func (s *Server) listOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	sortField := c.DefaultQuery("sort", "orderDate")
	sortDir := c.DefaultQuery("dir", "DESC")

	orders, err := s.deps.Orders.ListOrders(c.Request.Context(), page, size, sortField, sortDir)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":   page,
		"size":   size,
		"orders": orders,
	})
}

func (s *Server) processPayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	status, err := s.deps.Orders.ProcessPayment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orderId": id, "paymentStatus": status})
}

func (s *Server) cancelOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := s.deps.Orders.CancelOrder(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) confirmOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := s.deps.Orders.MarkSuccess(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) deleteOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := s.deps.Orders.DeleteOrder(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
