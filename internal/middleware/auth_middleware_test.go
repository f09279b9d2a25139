package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripweaver/booking-backend/pkg/jwt"
)

const testSecret = "test-secret-key"

func testRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	jwtService := jwt.NewService(testSecret)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(jwtService, logger), func(c *gin.Context) {
		userCtx, ok := GetUserContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": userCtx.UserID})
	})
	return router
}

func signAccessToken(t *testing.T, userID uuid.UUID, expiresIn time.Duration) string {
	now := time.Now()
	claims := jwt.Claims{
		UserID:    userID,
		TokenType: jwt.AccessToken,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwtlib.NewNumericDate(now),
			Subject:   userID.String(),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("Missing Header", func(t *testing.T) {
		router := testRouter(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "MISSING_AUTH_HEADER")
	})

	t.Run("Malformed Header", func(t *testing.T) {
		router := testRouter(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc123")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_AUTH_FORMAT")
	})

	t.Run("Expired Token", func(t *testing.T) {
		router := testRouter(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signAccessToken(t, uuid.New(), -time.Hour))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
	})

	t.Run("Valid Token", func(t *testing.T) {
		router := testRouter(t)

		userID := uuid.New()
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signAccessToken(t, userID, time.Hour))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID.String())
	})
}
