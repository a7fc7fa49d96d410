package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/charity-api/internal/apperr"
	"github.com/gdg-garage/charity-api/internal/config"
	"github.com/gdg-garage/charity-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const CookieName = "auth_token"

// Principal is the verified caller behind a request.
type Principal struct {
	ID    string `json:"id"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

func (p Principal) IsAdmin() bool {
	return strings.EqualFold(p.Role, models.RoleAdmin)
}

type AuthHandler struct {
	db  *gorm.DB
	cfg *config.Config
	log zerolog.Logger
}

func NewAuthHandler(cfg *config.Config, db *gorm.DB, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, log: log}
}

func (h *AuthHandler) tokenTTL() time.Duration {
	if h.cfg.TokenTTL > 0 {
		return h.cfg.TokenTTL
	}
	return 8 * time.Hour
}

func (h *AuthHandler) GenerateToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"role":  user.Role,
		"email": user.Email,
		"exp":   time.Now().Add(h.tokenTTL()).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// Resolve validates a bearer token and returns the principal it names.
func (h *AuthHandler) Resolve(tokenString string) (Principal, error) {
	if tokenString == "" {
		return Principal{}, fmt.Errorf("%w: no token", apperr.ErrUnauthenticated)
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		h.log.Debug().Err(err).Msg("rejected token")
		return Principal{}, fmt.Errorf("%w: bad token", apperr.ErrUnauthenticated)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, fmt.Errorf("%w: bad token", apperr.ErrUnauthenticated)
	}
	id, _ := claims["id"].(string)
	if id == "" {
		return Principal{}, fmt.Errorf("%w: invalid token claims", apperr.ErrUnauthenticated)
	}
	role, _ := claims["role"].(string)
	if role == "" {
		role = models.RoleUser
	}
	email, _ := claims["email"].(string)

	return Principal{ID: id, Role: role, Email: email}, nil
}

// AuthInput is embedded by every protected operation.
type AuthInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Cookie        string `header:"Cookie" doc:"auth_token cookie, used when no Authorization header is sent"`
}

// Authorize resolves the caller from the Authorization header, falling back to
// the auth_token cookie.
func (h *AuthHandler) Authorize(ctx context.Context, in AuthInput) (Principal, error) {
	return h.Resolve(credential(in))
}

// AuthorizeAdmin is Authorize plus the admin role check.
func (h *AuthHandler) AuthorizeAdmin(ctx context.Context, in AuthInput) (Principal, error) {
	p, err := h.Authorize(ctx, in)
	if err != nil {
		return Principal{}, err
	}
	if !p.IsAdmin() {
		h.log.Info().Str("user_id", p.ID).Msg("blocked non-admin")
		return Principal{}, fmt.Errorf("%w: admin only", apperr.ErrForbidden)
	}
	return p, nil
}

func credential(in AuthInput) string {
	if in.Authorization != "" {
		scheme, token, found := strings.Cut(strings.TrimSpace(in.Authorization), " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if in.Cookie != "" {
		cookies, err := http.ParseCookie(in.Cookie)
		if err != nil {
			return ""
		}
		for _, c := range cookies {
			if c.Name == CookieName {
				return c.Value
			}
		}
	}
	return ""
}

type SignupRequest struct {
	Body struct {
		Email    string `json:"email,omitempty" doc:"Login email"`
		Password string `json:"password,omitempty" doc:"Plain text password"`
		Name     string `json:"name,omitempty" doc:"Display name"`
	}
}

type UserView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type SignupResponse struct {
	Body struct {
		User UserView `json:"user"`
	}
}

func (h *AuthHandler) HandleSignup(ctx context.Context, input *SignupRequest) (*SignupResponse, error) {
	user, err := h.CreateUser(ctx, input.Body.Email, input.Body.Password, input.Body.Name, models.RoleUser)
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return nil, huma.Error400BadRequest("email and password required")
	case errors.Is(err, apperr.ErrConflict):
		return nil, huma.Error409Conflict("email already exists")
	case err != nil:
		h.log.Error().Err(err).Msg("signup failed")
		return nil, huma.Error500InternalServerError("registration failed")
	}

	res := &SignupResponse{}
	res.Body.User = viewOf(user)
	return res, nil
}

type LoginRequest struct {
	Body struct {
		Email    string `json:"email,omitempty"`
		Password string `json:"password,omitempty"`
	}
}

type LoginResponse struct {
	Body struct {
		Token string   `json:"token"`
		User  UserView `json:"user"`
	}
}

func (h *AuthHandler) HandleLogin(ctx context.Context, input *LoginRequest) (*LoginResponse, error) {
	if input.Body.Email == "" || input.Body.Password == "" {
		return nil, huma.Error400BadRequest("email and password required")
	}

	var user models.User
	err := h.db.WithContext(ctx).Where("email = ?", strings.TrimSpace(input.Body.Email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, huma.Error401Unauthorized("invalid")
	}
	if err != nil {
		h.log.Error().Err(err).Msg("login lookup failed")
		return nil, huma.Error500InternalServerError("login failed")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Body.Password)) != nil {
		return nil, huma.Error401Unauthorized("invalid")
	}

	token, err := h.GenerateToken(user)
	if err != nil {
		h.log.Error().Err(err).Msg("token signing failed")
		return nil, huma.Error500InternalServerError("login failed")
	}

	res := &LoginResponse{}
	res.Body.Token = token
	res.Body.User = viewOf(user)
	return res, nil
}

type MeResponse struct {
	Body Principal
}

func (h *AuthHandler) HandleMe(ctx context.Context, input *AuthInput) (*MeResponse, error) {
	p, err := h.Authorize(ctx, *input)
	if err != nil {
		return nil, huma.Error401Unauthorized(err.Error())
	}
	return &MeResponse{Body: p}, nil
}

// CreateUser hashes the password and inserts a user with the given role.
func (h *AuthHandler) CreateUser(ctx context.Context, email, password, name, role string) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.User{}, fmt.Errorf("%w: email and password required", apperr.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
	}
	err = h.db.WithContext(ctx).Create(&user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.User{}, fmt.Errorf("%w: email already exists", apperr.ErrConflict)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", apperr.ErrStorage, err)
	}
	return user, nil
}

// SeedAdmin creates an admin account unless one with that email exists.
func (h *AuthHandler) SeedAdmin(ctx context.Context, email, password, name string) (bool, error) {
	var count int64
	if err := h.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("%w: %w", apperr.ErrStorage, err)
	}
	if count > 0 {
		return false, nil
	}
	if _, err := h.CreateUser(ctx, email, password, name, models.RoleAdmin); err != nil {
		return false, err
	}
	return true, nil
}

func viewOf(u models.User) UserView {
	return UserView{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}
