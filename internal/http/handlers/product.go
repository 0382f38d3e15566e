package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/sportshop-backend/internal/http/response"
	"github.com/yungbote/sportshop-backend/internal/services"
	"github.com/yungbote/sportshop-backend/internal/types"
)

type ProductHandler struct {
	productService services.ProductService
}

func NewProductHandler(productService services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// GET /api/products?category=running
func (ph *ProductHandler) List(c *gin.Context) {
	products, err := ph.productService.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, products)
}

// GET /api/products/:id
func (ph *ProductHandler) Get(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}
	product, err := ph.productService.Get(c.Request.Context(), productID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, product)
}

// POST /api/products
func (ph *ProductHandler) Create(c *gin.Context) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Image       string `json:"image"`
		Category    string `json:"category"`
		PriceCents  int64  `json:"price_cents"`
		InStock     *bool  `json:"in_stock"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	product := types.Product{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Category:    req.Category,
		PriceCents:  req.PriceCents,
		InStock:     true,
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}
	created, err := ph.productService.Create(c.Request.Context(), &product)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, created)
}

// PUT /api/products/:id
func (ph *ProductHandler) Update(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}
	var upd services.ProductUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	product, err := ph.productService.Update(c.Request.Context(), productID, upd)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, product)
}

// DELETE /api/products/:id
func (ph *ProductHandler) Delete(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}
	if err := ph.productService.Delete(c.Request.Context(), productID); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
