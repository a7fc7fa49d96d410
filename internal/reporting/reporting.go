// Package reporting computes admin aggregates over donations and
// registrations. It never writes.
package reporting

import (
	"context"
	"fmt"

	"github.com/gdg-garage/charity-api/internal/apperr"
	"github.com/gdg-garage/charity-api/internal/auth"
	"github.com/gdg-garage/charity-api/internal/models"
	"github.com/gdg-garage/charity-api/internal/registrations"
	"gorm.io/gorm"
)

type Engine struct {
	db            *gorm.DB
	registrations *registrations.Store
}

func NewEngine(db *gorm.DB, regs *registrations.Store) *Engine {
	return &Engine{db: db, registrations: regs}
}

// Stats is a snapshot of the whole ledger. TotalAmountCents includes
// donations in every status, pending and failed ones too. ByStatus only has
// keys for statuses that currently have donations.
type Stats struct {
	RegistrationCount int64            `json:"registration_count"`
	DonationCount     int64            `json:"donation_count"`
	TotalAmountCents  int64            `json:"total_amount_cents"`
	ByStatus          map[string]int64 `json:"by_status"`
}

func (e *Engine) Stats(ctx context.Context, p auth.Principal) (Stats, error) {
	if !p.IsAdmin() {
		return Stats{}, fmt.Errorf("%w: admin only", apperr.ErrForbidden)
	}

	var stats Stats
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Registration{}).Count(&stats.RegistrationCount).Error; err != nil {
			return err
		}

		var totals struct {
			Count int64
			Sum   int64
		}
		err := tx.Model(&models.Donation{}).
			Select("COUNT(*) AS count, COALESCE(SUM(amount_cents), 0) AS sum").
			Scan(&totals).Error
		if err != nil {
			return err
		}
		stats.DonationCount = totals.Count
		stats.TotalAmountCents = totals.Sum

		var groups []struct {
			Status string
			Count  int64
		}
		err = tx.Model(&models.Donation{}).
			Select("status, COUNT(*) AS count").
			Group("status").
			Scan(&groups).Error
		if err != nil {
			return err
		}
		stats.ByStatus = make(map[string]int64, len(groups))
		for _, g := range groups {
			stats.ByStatus[g.Status] = g.Count
		}
		return nil
	})
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %w", apperr.ErrStorage, err)
	}
	return stats, nil
}
