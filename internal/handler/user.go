package handler

import (
	"net/http"
	"strconv"

	"github.com/edustack/academy-api/internal/constants"
	"github.com/edustack/academy-api/internal/dto"
	apperrors "github.com/edustack/academy-api/internal/errors"
	"github.com/edustack/academy-api/internal/middleware"
	"github.com/edustack/academy-api/internal/model"
	"github.com/edustack/academy-api/internal/service"
	"github.com/edustack/academy-api/pkg/logger"
	"github.com/edustack/academy-api/pkg/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Me returns the sanitized record of the authenticated subject
func (h *UserHandler) Me(c *gin.Context) {
	userID, _, ok := middleware.SubjectFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(apperrors.ErrUnauthorized.Message, nil))
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		logger.GetLogger().Error("Failed to load current user",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse("Failed to load user", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateMe applies a partial profile update for the authenticated subject
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, _, ok := middleware.SubjectFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(apperrors.ErrUnauthorized.Message, nil))
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(apperrors.ErrMissingField.Message, validation.Translate(err)))
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		logger.GetLogger().Warn("Profile update failed",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse("Update failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListByRole lists users holding a role; routed behind RequireRole(worker)
func (h *UserHandler) ListByRole(c *gin.Context) {
	role, ok := model.ParseRole(c.Query("role"))
	if !ok {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(apperrors.ErrInvalidRole.Message, nil))
		return
	}

	users, err := h.userService.ListByRole(c.Request.Context(), role)
	if err != nil {
		logger.GetLogger().Error("Failed to list users",
			zap.String("role", string(role)),
			zap.Error(err),
		)
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse("Failed to list users", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse("Users retrieved", users))
}

// AllocateCourse attaches a course id to a user; routed behind
// RequireRole(worker)
func (h *UserHandler) AllocateCourse(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid user id", nil))
		return
	}

	var req dto.AllocateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(apperrors.ErrMissingField.Message, validation.Translate(err)))
		return
	}

	user, err := h.userService.AllocateCourse(c.Request.Context(), uint(id), req.CourseID)
	if err != nil {
		logger.GetLogger().Warn("Course allocation failed",
			zap.Uint64("user_id", id),
			zap.String("course_id", req.CourseID),
			zap.Error(err),
		)
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse("Allocation failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse("Course allocated", user))
}
