package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yungbote/sportshop-backend/internal/platform/ctxutil"
	"github.com/yungbote/sportshop-backend/internal/platform/logger"
	"github.com/yungbote/sportshop-backend/internal/services"
)

const testSecret = "middleware-test-secret"

func newTestAuthMiddleware(t *testing.T) *AuthMiddleware {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	authSvc := services.NewAuthService(nil, log, nil, testSecret, time.Hour)
	return NewAuthMiddleware(log, authSvc)
}

// mintToken signs the same claims layout the login flow produces.
func mintToken(t *testing.T, userID uuid.UUID, isAdmin bool, ttl time.Duration) string {
	t.Helper()
	claims := services.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		IsAdmin: isAdmin,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func newTestRouter(am *AuthMiddleware, handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append([]gin.HandlerFunc{am.RequireAuth()}, handlers...)
	chain = append(chain, func(c *gin.Context) {
		rd := ctxutil.GetRequestData(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"user_id": rd.UserID, "is_admin": rd.IsAdmin})
	})
	r.GET("/guarded/:userId", chain...)
	return r
}

func doRequest(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	am := newTestAuthMiddleware(t)
	r := newTestRouter(am)
	userID := uuid.New()
	path := "/guarded/" + userID.String()

	cases := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"malformed token", "not-a-jwt", http.StatusUnauthorized},
		{"expired token", mintToken(t, userID, false, -time.Minute), http.StatusUnauthorized},
		{"valid token", mintToken(t, userID, false, time.Hour), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(r, path, tc.token)
			if w.Code != tc.wantStatus {
				t.Fatalf("status: got=%d want=%d body=%s", w.Code, tc.wantStatus, w.Body.String())
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	am := newTestAuthMiddleware(t)
	r := newTestRouter(am, am.RequireAdmin())
	path := "/guarded/" + uuid.New().String()

	w := doRequest(r, path, mintToken(t, uuid.New(), false, time.Hour))
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-admin: got=%d want=%d", w.Code, http.StatusForbidden)
	}
	w = doRequest(r, path, mintToken(t, uuid.New(), true, time.Hour))
	if w.Code != http.StatusOK {
		t.Fatalf("admin: got=%d want=%d body=%s", w.Code, http.StatusOK, w.Body.String())
	}
}

func TestRequireSelfOrAdmin(t *testing.T) {
	am := newTestAuthMiddleware(t)
	r := newTestRouter(am, am.RequireSelfOrAdmin("userId"))

	self := uuid.New()
	other := uuid.New()

	w := doRequest(r, "/guarded/"+self.String(), mintToken(t, self, false, time.Hour))
	if w.Code != http.StatusOK {
		t.Fatalf("self: got=%d want=%d body=%s", w.Code, http.StatusOK, w.Body.String())
	}

	w = doRequest(r, "/guarded/"+other.String(), mintToken(t, self, false, time.Hour))
	if w.Code != http.StatusForbidden {
		t.Fatalf("other user: got=%d want=%d", w.Code, http.StatusForbidden)
	}

	w = doRequest(r, "/guarded/"+other.String(), mintToken(t, self, true, time.Hour))
	if w.Code != http.StatusOK {
		t.Fatalf("admin for other user: got=%d want=%d", w.Code, http.StatusOK)
	}

	w = doRequest(r, "/guarded/not-a-uuid", mintToken(t, self, false, time.Hour))
	if w.Code != http.StatusForbidden {
		t.Fatalf("bad param: got=%d want=%d", w.Code, http.StatusForbidden)
	}
}
