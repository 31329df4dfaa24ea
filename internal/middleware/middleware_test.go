package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/builder_crm/internal/core/domain"
	"github.com/SscSPs/builder_crm/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const testSecret = "test-secret"

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(slog.Default()))
	r.GET("/", append(handlers, func(c *gin.Context) {
		identity, _ := GetIdentityFromContext(c)
		c.JSON(http.StatusOK, identity)
	})...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	user := &domain.User{UserID: "u1", TenantID: "t1", Role: domain.RoleStaff}
	valid, err := utils.GenerateJWT(user, testSecret, time.Hour, "test")
	require.NoError(t, err)
	expired, err := utils.GenerateJWT(user, testSecret, -time.Hour, "test")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{name: "valid token", header: "Bearer " + valid, status: http.StatusOK, body: `{"tenantId":"t1","userId":"u1","role":"staff"}`},
		{name: "missing header", status: http.StatusUnauthorized, body: `{"error":"Authorization header required"}`},
		{name: "wrong scheme", header: "Basic abc", status: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expired, status: http.StatusUnauthorized, body: `{"error":"Token has expired"}`},
		{name: "garbage", header: "Bearer nope", status: http.StatusUnauthorized, body: `{"error":"Invalid token"}`},
	}

	r := newRouter(AuthMiddleware(testSecret))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.JSONEq(t, tt.body, w.Body.String())
			}
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestRateLimit(t *testing.T) {
	rate, err := limiter.NewRateFromFormatted("2-M")
	require.NoError(t, err)
	r := newRouter(RateLimit(limiter.New(memory.NewStore(), rate)))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestGetLoggerFromCtxFallsBackToDefault(t *testing.T) {
	assert.Same(t, slog.Default(), GetLoggerFromCtx(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}

func TestNewLimiter(t *testing.T) {
	l, closeFn, err := NewLimiter("3-H", "")
	require.NoError(t, err)
	defer closeFn()
	assert.Equal(t, int64(3), l.Rate.Limit)

	_, _, err = NewLimiter("often", "")
	assert.Error(t, err)

	_, _, err = NewLimiter("3-H", "://not-a-url")
	assert.Error(t, err)
}
