package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SmekensRuben/HotelSuite/internal/permission"
)

const testSecret = "middleware-test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	if _, ok := claims["exp"]; !ok {
		claims["exp"] = time.Now().Add(time.Hour).Unix()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func protectedRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuth(testSecret), HotelScope()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/v1/hotels/:hotelUid/ping", handlers...)
	return r
}

func doGet(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_ValidToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"user_id": "u1", "email": "jan@hotel.test", "hotel_uid": "hotel-1",
		"roles": []string{"staff"},
	})

	w := doGet(protectedRouter(), "/v1/hotels/hotel-1/ping", token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuth_MissingOrMalformedHeader(t *testing.T) {
	r := protectedRouter()

	w := doGet(r, "/v1/hotels/hotel-1/ping", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/v1/hotels/hotel-1/ping", nil)
	req.Header.Set("Authorization", "Basic abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_WrongSignature(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u1", "hotel_uid": "hotel-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	w := doGet(protectedRouter(), "/v1/hotels/hotel-1/ping", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"user_id": "u1", "hotel_uid": "hotel-1",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})

	w := doGet(protectedRouter(), "/v1/hotels/hotel-1/ping", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHotelScope_CrossTenantRejected(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"user_id": "u1", "hotel_uid": "hotel-1",
		"roles": []string{"administrator"},
	})

	w := doGet(protectedRouter(), "/v1/hotels/hotel-2/ping", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// stubProvider returns a fixed resolver or error for any hotel.
type stubProvider struct {
	resolver permission.Resolver
	err      error
}

func (s stubProvider) ResolverFor(context.Context, string) (permission.Resolver, error) {
	return s.resolver, s.err
}

func TestRequirePermission_RoleGrant(t *testing.T) {
	provider := stubProvider{resolver: permission.NewRoleResolver(nil)}
	r := protectedRouter(RequirePermission(provider, "orders", "read"))

	staff := signToken(t, jwt.MapClaims{
		"user_id": "u1", "hotel_uid": "hotel-1", "roles": []string{"staff"},
	})
	w := doGet(r, "/v1/hotels/hotel-1/ping", staff)
	assert.Equal(t, http.StatusOK, w.Code)

	noRoles := signToken(t, jwt.MapClaims{
		"user_id": "u2", "hotel_uid": "hotel-1",
	})
	w = doGet(r, "/v1/hotels/hotel-1/ping", noRoles)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequirePermission_FlatGrantsWin(t *testing.T) {
	provider := stubProvider{resolver: permission.NewRoleResolver(nil)}
	r := protectedRouter(RequirePermission(provider, "users", "delete"))

	// Administrator role would allow users.delete, but the flat grant list on
	// the token narrows the principal down to orders only.
	token := signToken(t, jwt.MapClaims{
		"user_id": "u1", "hotel_uid": "hotel-1",
		"roles":       []string{"administrator"},
		"permissions": []string{"orders.read"},
	})
	w := doGet(r, "/v1/hotels/hotel-1/ping", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequirePermission_ResolverError(t *testing.T) {
	provider := stubProvider{err: assert.AnError}
	r := protectedRouter(RequirePermission(provider, "orders", "read"))

	token := signToken(t, jwt.MapClaims{
		"user_id": "u1", "hotel_uid": "hotel-1", "roles": []string{"staff"},
	})
	w := doGet(r, "/v1/hotels/hotel-1/ping", token)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
