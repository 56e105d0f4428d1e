// internal/interfaces/http/handlers/product.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/fashion-store/internal/domain/product"
)

// ProductHandler handles product endpoints
type ProductHandler struct {
	productService *product.Service
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *product.Service) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// GetProducts handles GET /shop/products/get
func (h *ProductHandler) GetProducts(c *gin.Context) {
	var req product.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	products, err := h.productService.GetFilteredProducts(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to retrieve products")
		return
	}

	respondSuccess(c, http.StatusOK, products)
}

// GetProduct handles GET /shop/products/get/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	p, err := h.productService.GetProductDetails(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve product")
		return
	}

	respondSuccess(c, http.StatusOK, p)
}

// SearchProducts handles GET /shop/search/:keyword
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	products, err := h.productService.SearchProducts(c.Request.Context(), c.Param("keyword"))
	if err != nil {
		respondError(c, err, "Failed to search products")
		return
	}

	respondSuccess(c, http.StatusOK, products)
}

// AdminGetProducts handles GET /admin/products/get
func (h *ProductHandler) AdminGetProducts(c *gin.Context) {
	products, err := h.productService.FetchAllProducts(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve products")
		return
	}

	respondSuccess(c, http.StatusOK, products)
}

// AdminCreateProduct handles POST /admin/products/add
func (h *ProductHandler) AdminCreateProduct(c *gin.Context) {
	adminID, ok := currentUser(c)
	if !ok {
		return
	}

	var req product.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	p, err := h.productService.AddProduct(c.Request.Context(), adminID, &req)
	if err != nil {
		respondError(c, err, "Failed to create product")
		return
	}

	respondSuccess(c, http.StatusCreated, p)
}

// AdminUpdateProduct handles PUT /admin/products/edit/:id
func (h *ProductHandler) AdminUpdateProduct(c *gin.Context) {
	adminID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req product.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	p, err := h.productService.EditProduct(c.Request.Context(), adminID, id, &req)
	if err != nil {
		respondError(c, err, "Failed to update product")
		return
	}

	respondSuccess(c, http.StatusOK, p)
}

// AdminDeleteProduct handles DELETE /admin/products/delete/:id
func (h *ProductHandler) AdminDeleteProduct(c *gin.Context) {
	adminID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), adminID, id); err != nil {
		respondError(c, err, "Failed to delete product")
		return
	}

	respondMessage(c, http.StatusOK, "Product deleted successfully", nil)
}
