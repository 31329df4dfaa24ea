package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/builder_crm/internal/core/ports/services"
	"github.com/SscSPs/builder_crm/internal/dto"
	"github.com/SscSPs/builder_crm/internal/middleware"
	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to tenant users.
type userHandler struct {
	authService portssvc.AuthSvcFacade
}

func newUserHandler(as portssvc.AuthSvcFacade) *userHandler {
	return &userHandler{authService: as}
}

// registerUserRoutes registers all user-related routes.
func registerUserRoutes(rg *gin.RouterGroup, authService portssvc.AuthSvcFacade) {
	h := newUserHandler(authService)

	users := rg.Group("/users")
	{
		users.POST("", h.createUser) // Admin only
	}
}

// createUser godoc
// @Summary Create a staff user
// @Description Adds a user to the caller's company. Admins only.
// @Tags users
// @Accept  json
// @Produce  json
// @Param   user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.authService.CreateStaffUser(c.Request.Context(), identity, req)
	if err != nil {
		respondError(c, err, "create user")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User created", slog.String("new_user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}
