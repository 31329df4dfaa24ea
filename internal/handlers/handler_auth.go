package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/builder_crm/internal/core/ports/services"
	"github.com/SscSPs/builder_crm/internal/dto"
	"github.com/SscSPs/builder_crm/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// authHandler handles registration and login.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(as portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: as}
}

// registerAuthRoutes sets up the public authentication routes. Both are rate
// limited per client IP.
func registerAuthRoutes(r *gin.Engine, authService portssvc.AuthSvcFacade, authLimiter *limiter.Limiter) {
	h := newAuthHandler(authService)

	auth := r.Group("/api/v1/auth")
	if authLimiter != nil {
		auth.Use(middleware.RateLimit(authLimiter))
	}
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
	}
}

// register godoc
// @Summary Register a company
// @Description Creates a tenant and its first admin user, and returns a token.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Company and admin details"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "register")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Tenant registered",
		slog.String("tenant_id", resp.User.TenantID), slog.String("user_id", resp.User.UserID))
	c.JSON(http.StatusCreated, resp)
}

// login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "log in")
		return
	}
	c.JSON(http.StatusOK, resp)
}
