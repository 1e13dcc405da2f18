package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vintagenote/vn_backend/internal/core/domain"
	portssvc "github.com/vintagenote/vn_backend/internal/core/ports/services"
	"github.com/vintagenote/vn_backend/internal/dto"
	"github.com/vintagenote/vn_backend/internal/middleware"
	"github.com/vintagenote/vn_backend/internal/utils"
)

// productHandler handles HTTP requests related to products.
type productHandler struct {
	productService portssvc.ProductSvcFacade
	userService    portssvc.UserReaderSvc
	exportService  portssvc.ExportSvc
	posthog        *utils.PosthogClientWrapper
	months         monthParser
}

// RegisterProductRoutes registers all product-related routes.
func RegisterProductRoutes(rg *gin.RouterGroup, products portssvc.ProductSvcFacade, users portssvc.UserReaderSvc, export portssvc.ExportSvc, posthog *utils.PosthogClientWrapper, loc *time.Location) {
	mustRegisterValidators()
	h := &productHandler{
		productService: products,
		userService:    users,
		exportService:  export,
		posthog:        posthog,
		months:         newMonthParser(loc),
	}

	productRoutes := rg.Group("/products")
	{
		productRoutes.POST("", h.createProduct)
		productRoutes.GET("", h.listProducts)
		productRoutes.GET("/export", h.exportProducts)
		productRoutes.POST("/bulk-delete", h.bulkDeleteProducts)
		productRoutes.GET("/:productID", h.getProduct)
		productRoutes.PUT("/:productID", h.updateProduct)
		productRoutes.DELETE("/:productID", h.deleteProduct)
		productRoutes.PUT("/:productID/sale-price", h.assignSalePrice)
		productRoutes.POST("/:productID/sold", h.markSold)
		productRoutes.DELETE("/:productID/sold", h.undoSold)
	}
}

// createProduct godoc
// @Summary Record a purchased product
// @Description Normalizes the cost at today's rate and wraps the product in its own package.
// @Tags products
// @Accept json
// @Produce json
// @Param product body dto.CreateProductRequest true "Product to create"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Currency not allowed for the grade"
// @Failure 503 {object} ErrorResponse "No rate available"
// @Security BearerAuth
// @Router /products [post]
func (h *productHandler) createProduct(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	product, err := h.productService.CreateProduct(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create product")
		return
	}
	middleware.PosthogEvent(c, h.posthog, "product_created", map[string]any{"currency": string(product.Cost.Exchange.Code)})
	c.JSON(http.StatusCreated, dto.ToProductResponse(product, domain.KRW))
}

// listProducts godoc
// @Summary List products of a month
// @Description Pages through products newest first.
// @Tags products
// @Produce json
// @Param month query string false "Month as YYYY-MM, defaults to the current month"
// @Param view query string false "View currency" Enums(KRW, USD, JPY)
// @Param status query string false "Lifecycle state" Enums(INTAKE, LISTED, SOLD)
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListProductsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /products [get]
func (h *productHandler) listProducts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListProductsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, err)
		return
	}
	period, err := h.months.parse(params.Month)
	if err != nil {
		respondError(c, err, "Invalid month")
		return
	}
	view, err := resolveView(c, h.userService, userID, params.View)
	if err != nil {
		respondError(c, err, "Invalid view")
		return
	}
	query := portssvc.ProductListQuery{Period: period, Limit: params.Limit, NextToken: params.NextToken}
	if params.Status != "" {
		state, err := domain.ParseProductState(params.Status)
		if err != nil {
			respondError(c, err, "Invalid status")
			return
		}
		query.State = &state
	}

	products, next, err := h.productService.ListProducts(c.Request.Context(), userID, query)
	if err != nil {
		respondError(c, err, "Failed to list products")
		return
	}
	c.JSON(http.StatusOK, dto.ToListProductsResponse(products, view, next))
}

// getProduct godoc
// @Summary Get a product
// @Tags products
// @Produce json
// @Param productID path string true "Product ID"
// @Param view query string false "View currency" Enums(KRW, USD, JPY)
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /products/{productID} [get]
func (h *productHandler) getProduct(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	view, err := resolveView(c, h.userService, userID, c.Query("view"))
	if err != nil {
		respondError(c, err, "Invalid view")
		return
	}
	product, err := h.productService.GetProduct(c.Request.Context(), userID, c.Param("productID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve product")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product, view))
}

// updateProduct godoc
// @Summary Update descriptive fields of a product
// @Tags products
// @Accept json
// @Produce json
// @Param productID path string true "Product ID"
// @Param product body dto.UpdateProductRequest true "Fields to update"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /products/{productID} [put]
func (h *productHandler) updateProduct(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	product, err := h.productService.UpdateProduct(c.Request.Context(), userID, c.Param("productID"), req)
	if err != nil {
		respondError(c, err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product, domain.KRW))
}

// deleteProduct godoc
// @Summary Delete a product
// @Description Products of a package with a registered sale cannot be deleted.
// @Tags products
// @Param productID path string true "Product ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /products/{productID} [delete]
func (h *productHandler) deleteProduct(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.productService.DeleteProduct(c.Request.Context(), userID, c.Param("productID")); err != nil {
		respondError(c, err, "Failed to delete product")
		return
	}
	c.Status(http.StatusNoContent)
}

// bulkDeleteProducts godoc
// @Summary Delete several products
// @Description Deletes in order and reports every id that failed; the others are still deleted.
// @Tags products
// @Accept json
// @Produce json
// @Param request body dto.BulkDeleteRequest true "Products to delete"
// @Success 200 {object} dto.BulkDeleteResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /products/bulk-delete [post]
func (h *productHandler) bulkDeleteProducts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.productService.BulkDeleteProducts(c.Request.Context(), userID, req.ProductIDs))
}

// assignSalePrice godoc
// @Summary Assign a sale price
// @Description Lists the product. Its package must have a registered sale.
// @Tags products
// @Accept json
// @Produce json
// @Param productID path string true "Product ID"
// @Param request body dto.SalePriceRequest true "Sale price in KRW"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /products/{productID}/sale-price [put]
func (h *productHandler) assignSalePrice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.SalePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.SalePrice == nil {
		badRequest(c, errors.New("salePrice is required"))
		return
	}
	product, err := h.productService.AssignSalePrice(c.Request.Context(), userID, c.Param("productID"), *req.SalePrice)
	if err != nil {
		respondError(c, err, "Failed to assign sale price")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product, domain.KRW))
}

// markSold godoc
// @Summary Mark a product as sold
// @Description Freezes the profit. A sale price is required.
// @Tags products
// @Accept json
// @Produce json
// @Param productID path string true "Product ID"
// @Param request body dto.MarkSoldRequest false "Optional sale time"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /products/{productID}/sold [post]
func (h *productHandler) markSold(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.MarkSoldRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	product, err := h.productService.MarkSold(c.Request.Context(), userID, c.Param("productID"), req.SoldAt)
	if err != nil {
		respondError(c, err, "Failed to mark product as sold")
		return
	}
	middleware.PosthogEvent(c, h.posthog, "product_sold", nil)
	c.JSON(http.StatusOK, dto.ToProductResponse(product, domain.KRW))
}

// undoSold godoc
// @Summary Undo a sale
// @Description Returns the product to the listed state. The sale price is kept.
// @Tags products
// @Produce json
// @Param productID path string true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /products/{productID}/sold [delete]
func (h *productHandler) undoSold(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	product, err := h.productService.UndoSold(c.Request.Context(), userID, c.Param("productID"))
	if err != nil {
		respondError(c, err, "Failed to undo sale")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product, domain.KRW))
}

// exportProducts godoc
// @Summary Export a month of products as CSV
// @Description Pro grade only.
// @Tags products
// @Produce text/csv
// @Param month query string false "Month as YYYY-MM, defaults to the current month"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /products/export [get]
func (h *productHandler) exportProducts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	period, err := h.months.parse(c.Query("month"))
	if err != nil {
		respondError(c, err, "Invalid month")
		return
	}

	// Buffered so a failure can still be reported as JSON.
	var buf bytes.Buffer
	if err := h.exportService.ExportProductsCSV(c.Request.Context(), userID, period, &buf); err != nil {
		respondError(c, err, "Failed to export products")
		return
	}
	filename := fmt.Sprintf("products-%s.csv", period.Start.Format("2006-01"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
