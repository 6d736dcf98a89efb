package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tutorlink/tutorlink/internal/app/models"
	"github.com/tutorlink/tutorlink/internal/pkg/auth"
)

func newTestRouter(t *testing.T) (*gin.Engine, *AuthMiddleware, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})

	return gin.New(), NewAuthMiddleware(jwtService), jwtService
}

func issueToken(t *testing.T, jwtService *auth.JWTService, role models.RoleType) string {
	t.Helper()
	accessToken, _, _, _, err := jwtService.GenerateTokenPair(&models.User{
		ID:       1,
		Email:    "user@example.com",
		RoleType: role,
	})
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}
	return accessToken
}

func TestJWTAuthRejectsMissingToken(t *testing.T) {
	router, mw, _ := newTestRouter(t)
	router.GET("/secure", mw.JWTAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestJWTAuthRejectsGarbageToken(t *testing.T) {
	router, mw, _ := newTestRouter(t)
	router.GET("/secure", mw.JWTAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	router, mw, _ := newTestRouter(t)

	expiredService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  -time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
	token := issueToken(t, expiredService, models.RoleUser)

	router.GET("/secure", mw.JWTAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestJWTAuthLoadsClaimsIntoContext(t *testing.T) {
	router, mw, jwtService := newTestRouter(t)
	token := issueToken(t, jwtService, models.RoleTutor)

	var gotUserID int64
	var gotRole string
	router.GET("/secure", mw.JWTAuth(), func(c *gin.Context) {
		gotUserID, _ = GetUserID(c)
		gotRole = GetRoleType(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotUserID != 1 {
		t.Fatalf("expected userID 1, got %d", gotUserID)
	}
	if gotRole != "TUTOR" {
		t.Fatalf("expected role TUTOR, got %s", gotRole)
	}
}

func TestJWTAuthAcceptsQueryParameterToken(t *testing.T) {
	router, mw, jwtService := newTestRouter(t)
	token := issueToken(t, jwtService, models.RoleUser)

	router.GET("/ws", mw.JWTAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws?token="+token, nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with query token, got %d", w.Code)
	}
}

func TestRolesRequired(t *testing.T) {
	tests := []struct {
		name     string
		role     models.RoleType
		wantCode int
	}{
		{"staff allowed", models.RoleStaff, http.StatusOK},
		{"admin allowed", models.RoleAdmin, http.StatusOK},
		{"regular user forbidden", models.RoleUser, http.StatusForbidden},
		{"tutor forbidden", models.RoleTutor, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mw, jwtService := newTestRouter(t)
			router.GET("/staff", mw.JWTAuth(), mw.RolesRequired("STAFF", "ADMIN"), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			token := issueToken(t, jwtService, tt.role)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/staff", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			router.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Fatalf("role %s: expected %d, got %d", tt.role, tt.wantCode, w.Code)
			}
		})
	}
}

func TestRolesRequiredIsCaseInsensitiveOnConfig(t *testing.T) {
	router, mw, jwtService := newTestRouter(t)
	router.GET("/staff", mw.JWTAuth(), mw.RolesRequired("staff"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	token := issueToken(t, jwtService, models.RoleStaff)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/staff", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("lowercase role config should still match, got %d", w.Code)
	}
}

func TestRolesRequiredWithoutAuthContext(t *testing.T) {
	router, mw, _ := newTestRouter(t)
	router.GET("/staff", mw.RolesRequired("STAFF"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/staff", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when no claims are loaded, got %d", w.Code)
	}
}
