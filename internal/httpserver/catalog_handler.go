package httpserver

import (
	"net/http"

	"github.com/BartKempa/api-ecommerce-sub000/internal/address"
	"github.com/BartKempa/api-ecommerce-sub000/internal/card"
	"github.com/BartKempa/api-ecommerce-sub000/internal/delivery"
	"github.com/BartKempa/api-ecommerce-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

type newCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func (s *Server) createCategory(c *gin.Context) {
	var req newCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	created, err := s.deps.Categories.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (s *Server) listCategories(c *gin.Context) {
	categories, err := s.deps.Categories.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (s *Server) deleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := s.deps.Categories.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) createDelivery(c *gin.Context) {
	var req delivery.NewDeliveryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	created, err := s.deps.Deliveries.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (s *Server) listDeliveries(c *gin.Context) {
	deliveries, err := s.deps.Deliveries.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, deliveries)
}

func (s *Server) deleteDelivery(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := s.deps.Deliveries.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) createAddress(c *gin.Context) {
	var req address.NewAddressInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	userID, _ := utils.GetUserIDFromContext(c.Request.Context())
	created, err := s.deps.Addresses.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (s *Server) listAddresses(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	addresses, err := s.deps.Addresses.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, addresses)
}

func (s *Server) getAddress(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	userID, _ := utils.GetUserIDFromContext(c.Request.Context())
	a, err := s.deps.Addresses.Get(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, a)
}

func (s *Server) deleteAddress(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	userID, _ := utils.GetUserIDFromContext(c.Request.Context())
	if err := s.deps.Addresses.Delete(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) createCard(c *gin.Context) {
	var req card.NewCardInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	userID, _ := utils.GetUserIDFromContext(c.Request.Context())
	created, err := s.deps.Cards.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (s *Server) listCards(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	cards, err := s.deps.Cards.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cards)
}

func (s *Server) deleteCard(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	userID, _ := utils.GetUserIDFromContext(c.Request.Context())
	if err := s.deps.Cards.Delete(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
