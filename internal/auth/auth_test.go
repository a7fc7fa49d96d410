package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/charity-api/internal/apperr"
	"github.com/gdg-garage/charity-api/internal/config"
	"github.com/gdg-garage/charity-api/internal/database"
	"github.com/gdg-garage/charity-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *AuthHandler {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	cfg := &config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour}
	return NewAuthHandler(cfg, db, zerolog.Nop())
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	require.ErrorAs(t, err, &se)
	return se.GetStatus()
}

func TestSignupAndLogin(t *testing.T) {
	h := newTestHandler(t)
	ctx := context.Background()

	signup := &SignupRequest{}
	signup.Body.Email = "ann@example.com"
	signup.Body.Password = "hunter2"
	signup.Body.Name = "Ann"

	resp, err := h.HandleSignup(ctx, signup)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, resp.Body.User.Role)
	assert.NotEmpty(t, resp.Body.User.ID)

	t.Run("DuplicateEmail", func(t *testing.T) {
		_, err := h.HandleSignup(ctx, signup)
		assert.Equal(t, 409, statusOf(t, err))
	})

	t.Run("MissingPassword", func(t *testing.T) {
		req := &SignupRequest{}
		req.Body.Email = "bob@example.com"
		_, err := h.HandleSignup(ctx, req)
		assert.Equal(t, 400, statusOf(t, err))
	})

	t.Run("LoginIssuesResolvableToken", func(t *testing.T) {
		login := &LoginRequest{}
		login.Body.Email = "ann@example.com"
		login.Body.Password = "hunter2"
		out, err := h.HandleLogin(ctx, login)
		require.NoError(t, err)

		p, err := h.Resolve(out.Body.Token)
		require.NoError(t, err)
		assert.Equal(t, resp.Body.User.ID, p.ID)
		assert.Equal(t, "ann@example.com", p.Email)
		assert.False(t, p.IsAdmin())
	})

	t.Run("WrongPassword", func(t *testing.T) {
		login := &LoginRequest{}
		login.Body.Email = "ann@example.com"
		login.Body.Password = "nope"
		_, err := h.HandleLogin(ctx, login)
		assert.Equal(t, 401, statusOf(t, err))
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		login := &LoginRequest{}
		login.Body.Email = "ghost@example.com"
		login.Body.Password = "x"
		_, err := h.HandleLogin(ctx, login)
		assert.Equal(t, 401, statusOf(t, err))
	})
}

func TestAuthorize(t *testing.T) {
	h := newTestHandler(t)
	ctx := context.Background()
	token, err := h.GenerateToken(models.User{ID: "u-1", Role: "Admin", Email: "a@example.com"})
	require.NoError(t, err)

	t.Run("BearerHeader", func(t *testing.T) {
		p, err := h.Authorize(ctx, AuthInput{Authorization: "Bearer " + token})
		require.NoError(t, err)
		assert.Equal(t, "u-1", p.ID)
		assert.True(t, p.IsAdmin())
	})

	t.Run("CookieFallback", func(t *testing.T) {
		p, err := h.Authorize(ctx, AuthInput{Cookie: "theme=dark; auth_token=" + token})
		require.NoError(t, err)
		assert.Equal(t, "u-1", p.ID)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := h.Authorize(ctx, AuthInput{})
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("WrongScheme", func(t *testing.T) {
		_, err := h.Authorize(ctx, AuthInput{Authorization: "Basic " + token})
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		claims := jwt.MapClaims{"id": "u-1", "role": "admin", "exp": time.Now().Add(time.Hour).Unix()}
		forged, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other"))
		_, err := h.Authorize(ctx, AuthInput{Authorization: "Bearer " + forged})
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("Expired", func(t *testing.T) {
		claims := jwt.MapClaims{"id": "u-1", "role": "user", "exp": time.Now().Add(-time.Minute).Unix()}
		old, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		_, err := h.Authorize(ctx, AuthInput{Authorization: "Bearer " + old})
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})
}

func TestAuthorizeAdmin(t *testing.T) {
	h := newTestHandler(t)
	ctx := context.Background()

	userToken, _ := h.GenerateToken(models.User{ID: "u-1", Role: models.RoleUser})
	_, err := h.AuthorizeAdmin(ctx, AuthInput{Authorization: "Bearer " + userToken})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	adminToken, _ := h.GenerateToken(models.User{ID: "u-2", Role: models.RoleAdmin})
	p, err := h.AuthorizeAdmin(ctx, AuthInput{Authorization: "Bearer " + adminToken})
	require.NoError(t, err)
	assert.Equal(t, "u-2", p.ID)
}

func TestHandleMe(t *testing.T) {
	h := newTestHandler(t)
	token, _ := h.GenerateToken(models.User{ID: "u-9", Role: models.RoleUser, Email: "me@example.com"})

	resp, err := h.HandleMe(context.Background(), &AuthInput{Authorization: "Bearer " + token})
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", resp.Body.Email)

	_, err = h.HandleMe(context.Background(), &AuthInput{})
	assert.Equal(t, 401, statusOf(t, err))
}

func TestSeedAdmin(t *testing.T) {
	h := newTestHandler(t)
	ctx := context.Background()

	created, err := h.SeedAdmin(ctx, "admin@example.com", "admin123", "Admin")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = h.SeedAdmin(ctx, "admin@example.com", "admin123", "Admin")
	require.NoError(t, err)
	assert.False(t, created)

	var user models.User
	require.NoError(t, h.db.Where("email = ?", "admin@example.com").First(&user).Error)
	assert.Equal(t, models.RoleAdmin, user.Role)
}
