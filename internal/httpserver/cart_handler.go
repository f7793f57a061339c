package httpserver

import (
	"net/http"

	"github.com/BartKempa/api-ecommerce-sub000/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *Server) createCart(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	created, err := s.deps.Carts.CreateCart(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (s *Server) findCart(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	detail, err := s.deps.Carts.FindCart(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (s *Server) deleteCart(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	if err := s.deps.Carts.DeleteCart(c.Request.Context(), userID, true); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) clearCart(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	if err := s.deps.Carts.ClearCart(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type addItemRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
}

func (s *Server) addItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	email := utils.GetUserEmailFromContext(c.Request.Context())
	item, err := s.deps.Items.AddItem(c.Request.Context(), email, req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (s *Server) findItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	email := utils.GetUserEmailFromContext(c.Request.Context())
	detail, err := s.deps.Items.FindItem(c.Request.Context(), id, email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

type setQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (s *Server) setItemQuantity(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	email := utils.GetUserEmailFromContext(c.Request.Context())
	if err := s.deps.Items.SetQuantity(c.Request.Context(), id, req.Quantity, email); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) incrementItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	email := utils.GetUserEmailFromContext(c.Request.Context())
	if err := s.deps.Items.IncrementByOne(c.Request.Context(), id, email); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) decrementItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	email := utils.GetUserEmailFromContext(c.Request.Context())
	if err := s.deps.Items.DecrementByOne(c.Request.Context(), id, email); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) removeItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	email := utils.GetUserEmailFromContext(c.Request.Context())
	if err := s.deps.Items.RemoveItem(c.Request.Context(), id, email); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
