// Package registrations stores event sign-ups. Payloads are opaque to the
// service; the store only scopes them by owner.
package registrations

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gdg-garage/charity-api/internal/apperr"
	"github.com/gdg-garage/charity-api/internal/auth"
	"github.com/gdg-garage/charity-api/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Filter narrows List. Email is a substring match on the owner's email.
type Filter struct {
	Email string
}

func (s *Store) Create(ctx context.Context, ownerID string, payload json.RawMessage) (string, error) {
	if len(payload) == 0 || string(payload) == "null" {
		payload = json.RawMessage(`{}`)
	}
	if !json.Valid(payload) {
		return "", fmt.Errorf("%w: data must be valid JSON", apperr.ErrValidation)
	}

	reg := models.Registration{UserID: ownerID, Data: datatypes.JSON(payload)}
	if err := s.db.WithContext(ctx).Create(&reg).Error; err != nil {
		return "", fmt.Errorf("%w: %w", apperr.ErrStorage, err)
	}
	return reg.ID, nil
}

// List returns registrations newest first. Non-admins only ever see their own.
func (s *Store) List(ctx context.Context, p auth.Principal, f Filter) ([]models.Registration, error) {
	q := s.db.WithContext(ctx).Model(&models.Registration{}).Select("registrations.*")

	if !p.IsAdmin() {
		q = q.Where("registrations.user_id = ?", p.ID)
	}
	if f.Email != "" {
		q = q.Joins("JOIN users ON users.id = registrations.user_id").
			Where("users.email LIKE ?", "%"+f.Email+"%")
	}

	var rows []models.Registration
	if err := q.Order("registrations.created_at DESC").Order("registrations.rowid ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrStorage, err)
	}
	return rows, nil
}

// All returns every registration oldest first, for exports.
func (s *Store) All(ctx context.Context) ([]models.Registration, error) {
	var rows []models.Registration
	if err := s.db.WithContext(ctx).Order("created_at ASC").Order("rowid ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrStorage, err)
	}
	return rows, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Registration{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("%w: %w", apperr.ErrStorage, err)
	}
	return n, nil
}
