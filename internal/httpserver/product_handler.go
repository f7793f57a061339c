package httpserver

import (
	"net/http"

	"github.com/BartKempa/api-ecommerce-sub000/internal/product"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type newProductRequest struct {
	Name       string     `json:"name" binding:"required"`
	Price      float64    `json:"price" binding:"required"`
	Quantity   int        `json:"quantity"`
	CategoryID *uuid.UUID `json:"categoryId"`
}

func (s *Server) createProduct(c *gin.Context) {
	var req newProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	p, err := s.deps.Products.Create(c.Request.Context(), product.NewProductInput{
		Name:       req.Name,
		Price:      req.Price,
		Quantity:   req.Quantity,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (s *Server) getProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	p, err := s.deps.Products.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (s *Server) listProducts(c *gin.Context) {
	var categoryID *uuid.UUID
	if raw := c.Query("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondBadRequest(c, "invalid categoryId")
			return
		}
		categoryID = &id
	}

	products, err := s.deps.Products.List(c.Request.Context(), categoryID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

func (s *Server) getProductStock(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	qty, err := s.deps.Ledger.Quantity(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"productId": id, "quantity": qty})
}

type adjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

func (s *Server) adjustProductStock(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := s.deps.Ledger.Adjust(c.Request.Context(), id, req.Delta); err != nil {
		respondError(c, err)
		return
	}

	qty, err := s.deps.Ledger.Quantity(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"productId": id, "quantity": qty})
}
