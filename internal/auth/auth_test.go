package auth

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
	"golang.org/x/crypto/bcrypt"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, issued, err := m.GenerateAdminToken()
	require.NoError(t, err)
	require.NotEmpty(t, issued.TokenID())

	claims, err := m.ParseAndValidate(token)
	require.NoError(t, err)
	assert.Equal(t, issued.TokenID(), claims.TokenID())
	assert.Equal(t, AdminSubject, claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.Expiry(), 2*time.Second)
}

func TestJWTManager_Rejects(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	t.Run("wrong secret", func(t *testing.T) {
		token, _, err := NewJWTManager("other", time.Hour).GenerateAdminToken()
		require.NoError(t, err)

		_, err = m.ParseAndValidate(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		old := NewJWTManager("secret", time.Minute)
		old.now = func() time.Time { return time.Now().Add(-time.Hour) }
		token, _, err := old.GenerateAdminToken()
		require.NoError(t, err)

		_, err = m.ParseAndValidate(token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("other subject", func(t *testing.T) {
		claims := jwt.RegisteredClaims{
			ID:        "abc",
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = m.ParseAndValidate(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.ParseAndValidate("not-a-token")
		assert.Error(t, err)
	})
}

func TestMemoryRevoker(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRevoker()
	now := time.Now()
	r.now = func() time.Time { return now }

	revoked, err := r.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, "a", now.Add(time.Minute)))
	require.NoError(t, r.Revoke(ctx, "stale", now.Add(-time.Minute)))

	revoked, err = r.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = r.IsRevoked(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, err = r.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.False(t, revoked, "revocation lapses with the token")
	assert.Empty(t, r.revoked)
}

func TestNewRedisRevoker_BadURL(t *testing.T) {
	_, err := NewRedisRevoker(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestAdminPasswordHash(t *testing.T) {
	hasher := NewBcryptPasswordHasherWithCost(bcrypt.MinCost)

	hash, err := AdminPasswordHash(hasher, "", "hunter2")
	require.NoError(t, err)
	assert.NoError(t, hasher.Compare(hash, "hunter2"))

	kept, err := AdminPasswordHash(hasher, hash, "ignored")
	require.NoError(t, err)
	assert.Equal(t, hash, kept)

	_, err = AdminPasswordHash(hasher, "plaintext-not-a-hash", "")
	assert.Error(t, err)

	_, err = AdminPasswordHash(hasher, "", "")
	assert.Error(t, err)
}

func newTestService(t *testing.T) (Service, *JWTManager, *MemoryRevoker) {
	t.Helper()
	hasher := NewBcryptPasswordHasherWithCost(bcrypt.MinCost)
	hash, err := hasher.Hash("open-sesame")
	require.NoError(t, err)

	m := NewJWTManager("secret", time.Hour)
	r := NewMemoryRevoker()
	return NewService(hasher, hash, m, r), m, r
}

func TestService_Login(t *testing.T) {
	svc, m, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	session, err := svc.Login(ctx, "open-sesame")
	require.NoError(t, err)
	assert.False(t, session.ExpiresAt.IsZero())

	_, err = m.ParseAndValidate(session.AccessToken)
	assert.NoError(t, err)
}

func TestAdminRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, m, r := newTestService(t)

	router := gin.New()
	router.GET("/admin/ping", AdminRequired(m, r), func(c *gin.Context) {
		c.String(http.StatusOK, GetTokenID(c))
	})
	router.POST("/admin/logout", AdminRequired(m, r), func(c *gin.Context) {
		require.NoError(t, svc.Logout(c.Request.Context(), GetTokenID(c), GetTokenExpiry(c)))
		c.Status(http.StatusNoContent)
	})

	do := func(method, header string) *httptest.ResponseRecorder {
		path := "/admin/ping"
		if method == http.MethodPost {
			path = "/admin/logout"
		}
		req := httptest.NewRequest(method, path, nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusUnauthorized, do(http.MethodGet, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(http.MethodGet, "Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, do(http.MethodGet, "Bearer nope").Code)

	session, err := svc.Login(context.Background(), "open-sesame")
	require.NoError(t, err)
	bearer := "Bearer " + session.AccessToken

	w := do(http.MethodGet, bearer)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.String())

	assert.Equal(t, http.StatusNoContent, do(http.MethodPost, bearer).Code)
	assert.Equal(t, http.StatusUnauthorized, do(http.MethodGet, bearer).Code, "logged-out token is refused")
}
