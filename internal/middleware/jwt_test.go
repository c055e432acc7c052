package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"

	"qr-system/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newProtectedRouter(cfg config.JWTConfig) *gin.Engine {
	r := gin.New()
	r.GET("/protected", JWT(cfg), func(c *gin.Context) {
		userId, _ := c.Get("userId")
		c.JSON(http.StatusOK, gin.H{"userId": userId})
	})
	return r
}

func expiredToken(t *testing.T, secret string) string {
	t.Helper()
	claims := Claims{
		UserID: 1,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(-time.Hour).Unix(),
			IssuedAt:  time.Now().Add(-2 * time.Hour).Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("签发过期token失败: %v", err)
	}
	return token
}

func TestJWTMiddleware(t *testing.T) {
	cfg := config.JWTConfig{Secret: "test-secret", ExpireTime: 3600}

	validToken, err := GenerateToken(cfg, 42)
	if err != nil {
		t.Fatalf("GenerateToken 失败: %v", err)
	}
	wrongSecretToken, err := GenerateToken(config.JWTConfig{Secret: "other", ExpireTime: 3600}, 42)
	if err != nil {
		t.Fatalf("GenerateToken 失败: %v", err)
	}

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{
			name:           "缺少Authorization头",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "非Bearer格式",
			authHeader:     "Basic abcdef",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "token无法解析",
			authHeader:     "Bearer not-a-token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "签名密钥不匹配",
			authHeader:     "Bearer " + wrongSecretToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "token已过期",
			authHeader:     "Bearer " + expiredToken(t, cfg.Secret),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "有效token",
			authHeader:     "Bearer " + validToken,
			expectedStatus: http.StatusOK,
		},
	}

	r := newProtectedRouter(cfg)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("状态码 = %d, 期望 %d, body: %s", rr.Code, tt.expectedStatus, rr.Body.String())
			}
		})
	}
}

func TestGenerateTokenRoundTrip(t *testing.T) {
	cfg := config.JWTConfig{Secret: "round-trip", ExpireTime: 60}

	token, err := GenerateToken(cfg, 7)
	if err != nil {
		t.Fatalf("GenerateToken 失败: %v", err)
	}

	claims, err := parseToken(token, cfg.Secret)
	if err != nil {
		t.Fatalf("parseToken 失败: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("UserID = %d, 期望 7", claims.UserID)
	}
}
