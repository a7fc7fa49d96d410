// Package gateway stands in for the external payment processor. It accepts
// outcome callbacks keyed by gateway reference and drives the ledger.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gdg-garage/charity-api/internal/apperr"
	"github.com/gdg-garage/charity-api/internal/ledger"
	"github.com/rs/zerolog"
)

const PayPath = "/fake/pay"

type Bridge struct {
	ledger *ledger.Ledger
	log    zerolog.Logger
	now    func() time.Time
}

func NewBridge(l *ledger.Ledger, log zerolog.Logger) *Bridge {
	return &Bridge{
		ledger: l,
		log:    log.With().Str("component", "gateway").Logger(),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CheckoutURL is where a donor is sent to complete payment for ref.
func CheckoutURL(ref string) string {
	return PayPath + "?ref=" + url.QueryEscape(ref)
}

// Confirm applies the outcome reported for ref. Any non-empty outcome label
// is accepted and stored as the donation's new status.
func (b *Bridge) Confirm(ctx context.Context, ref, outcome string) error {
	ref = strings.TrimSpace(ref)
	outcome = strings.TrimSpace(outcome)
	if ref == "" || outcome == "" {
		return fmt.Errorf("%w: ref and status required", apperr.ErrValidation)
	}

	raw, err := json.Marshal(map[string]string{
		"ref":         ref,
		"status":      outcome,
		"received_at": b.now().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}

	donation, err := b.ledger.Transition(ctx, ref, outcome, raw)
	if err != nil {
		b.log.Warn().Err(err).Str("ref", ref).Str("status", outcome).Msg("confirmation rejected")
		return err
	}

	b.log.Info().Str("donation_id", donation.ID).Str("status", outcome).Msg("payment confirmed")
	return nil
}
