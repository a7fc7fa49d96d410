// Package ledger owns donations and their payment attempt audit trail.
//
// Every write happens inside a single transaction so a donation is never
// visible without the attempt that explains its current status.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gdg-garage/charity-api/internal/apperr"
	"github.com/gdg-garage/charity-api/internal/auth"
	"github.com/gdg-garage/charity-api/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Ledger struct {
	db  *gorm.DB
	log zerolog.Logger
}

func New(db *gorm.DB, log zerolog.Logger) *Ledger {
	return &Ledger{db: db, log: log.With().Str("component", "ledger").Logger()}
}

type CreateInput struct {
	AmountCents    int64
	RegistrationID *string
	Metadata       json.RawMessage
}

type Receipt struct {
	DonationID       string
	GatewayReference string
}

// CreateDonation records a pending donation for p together with its
// "initiated" attempt. The registration is not checked for ownership.
func (l *Ledger) CreateDonation(ctx context.Context, p auth.Principal, in CreateInput) (Receipt, error) {
	if in.AmountCents <= 0 {
		return Receipt{}, fmt.Errorf("%w: valid amount required", apperr.ErrValidation)
	}

	metadata := in.Metadata
	if len(metadata) == 0 || string(metadata) == "null" {
		metadata = json.RawMessage(`{}`)
	}
	if !json.Valid(metadata) {
		return Receipt{}, fmt.Errorf("%w: metadata must be valid JSON", apperr.ErrValidation)
	}

	registrationID := in.RegistrationID
	if registrationID != nil && *registrationID == "" {
		registrationID = nil
	}

	now := time.Now().UTC()
	ref, err := NewReference(now)
	if err != nil {
		return Receipt{}, err
	}

	donation := models.Donation{
		UserID:           p.ID,
		RegistrationID:   registrationID,
		AmountCents:      in.AmountCents,
		Status:           models.DonationPending,
		GatewayReference: ref,
		Metadata:         datatypes.JSON(metadata),
	}

	err = l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&donation).Error; err != nil {
			return err
		}

		raw, err := json.Marshal(map[string]string{"created_at": now.Format(time.RFC3339Nano)})
		if err != nil {
			return err
		}
		attempt := models.PaymentAttempt{
			DonationID:  donation.ID,
			Status:      models.AttemptInitiated,
			RawResponse: datatypes.JSON(raw),
		}
		return tx.Create(&attempt).Error
	})
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return Receipt{}, fmt.Errorf("%w: unknown registration_id", apperr.ErrValidation)
	}
	if err != nil {
		l.log.Error().Err(err).Str("user_id", p.ID).Msg("donation creation failed")
		return Receipt{}, fmt.Errorf("%w: %w", apperr.ErrStorage, err)
	}

	l.log.Info().
		Str("donation_id", donation.ID).
		Str("user_id", p.ID).
		Int64("amount_cents", donation.AmountCents).
		Msg("donation created")

	return Receipt{DonationID: donation.ID, GatewayReference: ref}, nil
}

// ListDonations returns donations newest first with their attempts attached.
// A non-admin principal is always restricted to their own rows.
func (l *Ledger) ListDonations(ctx context.Context, p auth.Principal, f Filter) ([]models.Donation, error) {
	q := l.scoped(ctx, p)

	q, err := f.apply(q)
	if err != nil {
		return nil, err
	}

	var rows []models.Donation
	err = q.Preload("Attempts", orderAttempts).
		Order("created_at DESC").
		Order("rowid ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrStorage, err)
	}
	return rows, nil
}

// GetDonation returns one donation visible to p. Donations owned by someone
// else are reported as not found.
func (l *Ledger) GetDonation(ctx context.Context, p auth.Principal, id string) (models.Donation, error) {
	var donation models.Donation
	err := l.scoped(ctx, p).Preload("Attempts", orderAttempts).Where("id = ?", id).First(&donation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Donation{}, fmt.Errorf("%w: donation %s", apperr.ErrNotFound, id)
	}
	if err != nil {
		return models.Donation{}, fmt.Errorf("%w: %w", apperr.ErrStorage, err)
	}
	return donation, nil
}

// Transition appends an attempt with the given outcome and moves the donation
// identified by ref to that status. Replays are applied, not rejected.
func (l *Ledger) Transition(ctx context.Context, ref, outcome string, raw json.RawMessage) (models.Donation, error) {
	var donation models.Donation
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("gateway_reference = ?", ref).First(&donation).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		if err != nil {
			return err
		}

		attempt := models.PaymentAttempt{
			DonationID:  donation.ID,
			Status:      outcome,
			RawResponse: datatypes.JSON(raw),
		}
		if err := tx.Create(&attempt).Error; err != nil {
			return err
		}

		if err := tx.Model(&donation).Update("status", outcome).Error; err != nil {
			return err
		}
		donation.Status = outcome
		return nil
	})
	if errors.Is(err, apperr.ErrNotFound) {
		return models.Donation{}, fmt.Errorf("%w: unknown gateway reference", apperr.ErrNotFound)
	}
	if err != nil {
		l.log.Error().Err(err).Str("ref", ref).Msg("transition failed")
		return models.Donation{}, fmt.Errorf("%w: %w", apperr.ErrStorage, err)
	}

	l.log.Info().
		Str("donation_id", donation.ID).
		Str("status", outcome).
		Msg("donation transitioned")

	return donation, nil
}

func (l *Ledger) scoped(ctx context.Context, p auth.Principal) *gorm.DB {
	q := l.db.WithContext(ctx).Model(&models.Donation{})
	if !p.IsAdmin() {
		q = q.Where("user_id = ?", p.ID)
	}
	return q
}

func orderAttempts(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("rowid ASC")
}
