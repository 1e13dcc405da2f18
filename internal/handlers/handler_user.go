package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vintagenote/vn_backend/internal/apperrors"
	"github.com/vintagenote/vn_backend/internal/core/domain"
	portssvc "github.com/vintagenote/vn_backend/internal/core/ports/services"
	"github.com/vintagenote/vn_backend/internal/dto"
)

// userHandler handles HTTP requests about the signed-in user.
type userHandler struct {
	userService portssvc.UserSvcFacade
	// allowSelfUpgrade lets users promote themselves to pro; downgrades are always allowed.
	allowSelfUpgrade bool
}

// RegisterUserRoutes registers all user-related routes.
func RegisterUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, allowSelfUpgrade bool) {
	mustRegisterValidators()
	h := &userHandler{userService: userService, allowSelfUpgrade: allowSelfUpgrade}

	me := rg.Group("/users/me")
	{
		me.GET("", h.getMe)
		me.PUT("", h.updateMe)
		me.PUT("/grade", h.updateGrade)
	}
}

// getMe godoc
// @Summary Get the current user
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *userHandler) getMe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateMe godoc
// @Summary Update the current user
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me [put]
func (h *userHandler) updateMe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.userService.UpdateUser(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateGrade godoc
// @Summary Switch the grade of the current user
// @Description Free users record and view KRW only; pro unlocks USD/JPY, breakdowns and export.
// @Tags users
// @Accept json
// @Produce json
// @Param grade body dto.UpdateGradeRequest true "New grade"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Self-service upgrades are disabled"
// @Security BearerAuth
// @Router /users/me/grade [put]
func (h *userHandler) updateGrade(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	grade := domain.UserGrade(req.Grade)
	if grade == domain.GradePro && !h.allowSelfUpgrade {
		respondError(c, fmt.Errorf("%w: upgrading to pro is not available", apperrors.ErrForbidden), "Failed to update grade")
		return
	}
	user, err := h.userService.UpdateGrade(c.Request.Context(), userID, grade)
	if err != nil {
		respondError(c, err, "Failed to update grade")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
