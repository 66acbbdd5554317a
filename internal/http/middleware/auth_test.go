package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"contest-analytics/internal/auth"
	"contest-analytics/internal/model"
)

func newRouter(parser *auth.Parser, roles ...model.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", Auth(parser), RequireRole(roles...), func(c *gin.Context) {
		principal, _ := MustPrincipal(c)
		c.String(http.StatusOK, string(principal.Role))
	})
	return r
}

func TestAuth(t *testing.T) {
	parser := auth.NewParser("secret")
	other := auth.NewParser("other-secret")
	r := newRouter(parser, model.RoleJudge)

	sign := func(p *auth.Parser, role model.Role, expires time.Duration) string {
		token, err := p.Sign(auth.Claims{
			UserID:           uuid.New(),
			Role:             role,
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(expires))},
		})
		if err != nil {
			t.Fatalf("Sign failed: %v", err)
		}
		return token
	}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"foreign signature", "Bearer " + sign(other, model.RoleJudge, time.Hour), http.StatusUnauthorized},
		{"expired", "Bearer " + sign(parser, model.RoleJudge, -time.Hour), http.StatusUnauthorized},
		{"wrong role", "Bearer " + sign(parser, model.RolePhotographer, time.Hour), http.StatusForbidden},
		{"judge", "Bearer " + sign(parser, model.RoleJudge, time.Hour), http.StatusOK},
		{"lowercase scheme", "bearer " + sign(parser, model.RoleJudge, time.Hour), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d (%s)", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRequireRole_WithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", RequireRole(model.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/private", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
