package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Andtit4/site-database-sub001/internal/interfaces/middleware"
	"github.com/Andtit4/site-database-sub001/pkg/auth"
	"github.com/Andtit4/site-database-sub001/pkg/constants"
	appErrors "github.com/Andtit4/site-database-sub001/pkg/errors"
)

type stubValidator struct {
	session *auth.UserSession
	err     error
	seen    string
}

func (s *stubValidator) ValidateToken(token string) (*auth.UserSession, error) {
	s.seen = token
	return s.session, s.err
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append(handlers, func(c *gin.Context) {
		user, _ := c.Get(constants.ContextKeyUser)
		c.JSON(http.StatusOK, gin.H{"user": user})
	})
	r.GET("/protected", chain...)
	r.OPTIONS("/protected", chain...)
	return r
}

func TestRequireAuth(t *testing.T) {
	t.Run("Missing header", func(t *testing.T) {
		r := newRouter(middleware.RequireAuth(&stubValidator{}))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "No authorization token provided")
	})

	t.Run("Wrong scheme", func(t *testing.T) {
		r := newRouter(middleware.RequireAuth(&stubValidator{}))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(constants.HeaderAuthorization, "Basic abc")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid authorization header format")
	})

	t.Run("Invalid token", func(t *testing.T) {
		v := &stubValidator{err: appErrors.NewUnauthorizedError("token revoked")}
		r := newRouter(middleware.RequireAuth(v))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(constants.HeaderAuthorization, "Bearer bad")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "bad", v.seen)
		assert.Contains(t, w.Body.String(), "unauthorized: token revoked")
	})

	t.Run("Untyped validator failure is masked", func(t *testing.T) {
		v := &stubValidator{err: errors.New("dial tcp 10.0.0.5:6379: connection refused")}
		r := newRouter(middleware.RequireAuth(v))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(constants.HeaderAuthorization, "Bearer bad")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid or expired token")
		assert.NotContains(t, w.Body.String(), "10.0.0.5")
	})

	t.Run("Valid token", func(t *testing.T) {
		v := &stubValidator{session: &auth.UserSession{ID: "u1", Role: constants.RoleUser}}
		r := newRouter(middleware.RequireAuth(v))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(constants.HeaderAuthorization, "Bearer good")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"u1"`)
	})
}

func TestRequireAdmin(t *testing.T) {
	cases := []struct {
		name   string
		role   string
		status int
	}{
		{"Admin", constants.RoleAdmin, http.StatusOK},
		{"Regular user", constants.RoleUser, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := &stubValidator{session: &auth.UserSession{ID: "u1", Role: tc.role}}
			r := newRouter(middleware.RequireAuth(v), middleware.RequireAdmin())
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set(constants.HeaderAuthorization, "Bearer t")
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusForbidden {
				assert.Contains(t, w.Body.String(), `"code":"FORBIDDEN"`)
				assert.Contains(t, w.Body.String(), "permission denied: cannot GET /protected")
			}
		})
	}

	t.Run("Unauthenticated", func(t *testing.T) {
		r := newRouter(middleware.RequireAdmin())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCors(t *testing.T) {
	t.Run("Allowed origin", func(t *testing.T) {
		r := newRouter(middleware.Cors([]string{"https://ops.example.com"}))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Origin", "https://ops.example.com")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://ops.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Foreign origin", func(t *testing.T) {
		r := newRouter(middleware.Cors([]string{"https://ops.example.com"}))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		r.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Wildcard preflight", func(t *testing.T) {
		r := newRouter(middleware.Cors([]string{"*"}))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/protected", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	})
}
