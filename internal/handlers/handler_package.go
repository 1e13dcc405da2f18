package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vintagenote/vn_backend/internal/core/domain"
	portssvc "github.com/vintagenote/vn_backend/internal/core/ports/services"
	"github.com/vintagenote/vn_backend/internal/dto"
)

// packageHandler handles HTTP requests related to packages.
type packageHandler struct {
	packageService portssvc.PackageSvcFacade
	userService    portssvc.UserReaderSvc
	months         monthParser
}

// RegisterPackageRoutes registers all package-related routes.
func RegisterPackageRoutes(rg *gin.RouterGroup, packages portssvc.PackageSvcFacade, users portssvc.UserReaderSvc, loc *time.Location) {
	mustRegisterValidators()
	h := &packageHandler{packageService: packages, userService: users, months: newMonthParser(loc)}

	packageRoutes := rg.Group("/packages")
	{
		packageRoutes.POST("", h.createPackage)
		packageRoutes.GET("", h.listPackages)
		packageRoutes.POST("/merge", h.mergePackages)
		packageRoutes.GET("/:packageID", h.getPackage)
		packageRoutes.DELETE("/:packageID", h.deletePackage)
		packageRoutes.POST("/:packageID/sale", h.registerSale)
	}
}

// createPackage godoc
// @Summary Record a shipment of several products
// @Description Every cost and the package shipping and fee are normalized at today's rate.
// @Tags packages
// @Accept json
// @Produce json
// @Param package body dto.CreatePackageRequest true "Package to create"
// @Success 201 {object} dto.PackageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /packages [post]
func (h *packageHandler) createPackage(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	pkg, err := h.packageService.CreatePackage(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create package")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPackageResponse(pkg, domain.KRW))
}

// listPackages godoc
// @Summary List packages of a month
// @Tags packages
// @Produce json
// @Param month query string false "Month as YYYY-MM, defaults to the current month"
// @Param view query string false "View currency" Enums(KRW, USD, JPY)
// @Success 200 {array} dto.PackageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /packages [get]
func (h *packageHandler) listPackages(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListPackagesParams
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
	pkgs, err := h.packageService.ListPackages(c.Request.Context(), userID, period)
	if err != nil {
		respondError(c, err, "Failed to list packages")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPackagesResponse(pkgs, view))
}

// getPackage godoc
// @Summary Get a package with its products
// @Tags packages
// @Produce json
// @Param packageID path string true "Package ID"
// @Param view query string false "View currency" Enums(KRW, USD, JPY)
// @Success 200 {object} dto.PackageDetailResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /packages/{packageID} [get]
func (h *packageHandler) getPackage(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	view, err := resolveView(c, h.userService, userID, c.Query("view"))
	if err != nil {
		respondError(c, err, "Invalid view")
		return
	}
	pkg, products, err := h.packageService.GetPackage(c.Request.Context(), userID, c.Param("packageID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve package")
		return
	}
	c.JSON(http.StatusOK, dto.PackageDetailResponse{
		PackageResponse: dto.ToPackageResponse(pkg, view),
		Products:        dto.ToListProductsResponse(products, view, "").Products,
	})
}

// deletePackage godoc
// @Summary Delete a package and its products
// @Tags packages
// @Param packageID path string true "Package ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /packages/{packageID} [delete]
func (h *packageHandler) deletePackage(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.packageService.DeletePackage(c.Request.Context(), userID, c.Param("packageID")); err != nil {
		respondError(c, err, "Failed to delete package")
		return
	}
	c.Status(http.StatusNoContent)
}

// mergePackages godoc
// @Summary Merge packages
// @Description Bundles the products of the given packages, in order, into a new package.
// @Tags packages
// @Accept json
// @Produce json
// @Param request body dto.MergePackagesRequest true "Packages to merge"
// @Success 201 {object} dto.PackageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /packages/merge [post]
func (h *packageHandler) mergePackages(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.MergePackagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	pkg, err := h.packageService.MergePackages(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to merge packages")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPackageResponse(pkg, domain.KRW))
}

// registerSale godoc
// @Summary Register a package for sale
// @Description Splits shipping and fee evenly over the products and unlocks sale prices.
// @Tags packages
// @Accept json
// @Produce json
// @Param packageID path string true "Package ID"
// @Param request body dto.RegisterSaleRequest false "Optional registration time"
// @Success 200 {object} dto.PackageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /packages/{packageID}/sale [post]
func (h *packageHandler) registerSale(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.RegisterSaleRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	pkg, err := h.packageService.RegisterSale(c.Request.Context(), userID, c.Param("packageID"), req.At)
	if err != nil {
		respondError(c, err, "Failed to register sale")
		return
	}
	c.JSON(http.StatusOK, dto.ToPackageResponse(pkg, domain.KRW))
}
