package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/geocoder89/calhub/internal/auth"
	"github.com/geocoder89/calhub/internal/http/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeVerifier struct {
	claims *auth.Claims
	err    error
}

func (f *fakeVerifier) VerifyAccessToken(token string) (*auth.Claims, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

func protectedRouter(v middlewares.TokenVerifier) *gin.Engine {
	r := gin.New()

	m := middlewares.NewAuthMiddleware(v)

	r.GET("/protected", m.RequireAuth(), func(c *gin.Context) {
		id, _ := middlewares.UserIDFromContext(c)
		email, _ := middlewares.EmailFromContext(c)

		c.JSON(http.StatusOK, gin.H{"userId": id, "email": email})
	})

	return r
}

func TestRequireAuthMissingHeader(t *testing.T) {
	r := protectedRouter(&fakeVerifier{})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusForbidden, w.Body.String())
	}
}

func TestRequireAuthEmptyToken(t *testing.T) {
	r := protectedRouter(&fakeVerifier{})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer ")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusForbidden, w.Body.String())
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	r := protectedRouter(&fakeVerifier{err: errors.New("bad signature")})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusUnauthorized, w.Body.String())
	}
}

func TestRequireAuthAttachesIdentity(t *testing.T) {
	claims := &auth.Claims{
		Email: "a@b.co",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "user-123",
		},
	}

	r := protectedRouter(&fakeVerifier{claims: claims})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
	}

	body := w.Body.String()

	if body != `{"email":"a@b.co","userId":"user-123"}` {
		t.Fatalf("unexpected identity payload: %s", body)
	}
}
