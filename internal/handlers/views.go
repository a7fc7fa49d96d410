package handlers

import (
	"encoding/json"
	"time"

	"github.com/gdg-garage/charity-api/internal/models"
)

type AttemptView struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	RawResponse json.RawMessage `json:"raw_response"`
	CreatedAt   time.Time       `json:"created_at"`
}

type DonationView struct {
	ID               string          `json:"id"`
	UserID           string          `json:"user_id"`
	RegistrationID   *string         `json:"registration_id"`
	AmountCents      int64           `json:"amount_cents"`
	Status           string          `json:"status"`
	GatewayReference string          `json:"gateway_reference"`
	Metadata         json.RawMessage `json:"metadata"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	Attempts         []AttemptView   `json:"attempts"`
}

type RegistrationView struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
}

func rawOrEmpty(b []byte) json.RawMessage {
	if len(b) == 0 {
		return json.RawMessage(`{}`)
	}
	return json.RawMessage(b)
}

func donationViews(rows []models.Donation) []DonationView {
	out := make([]DonationView, 0, len(rows))
	for _, d := range rows {
		out = append(out, donationView(d))
	}
	return out
}

func donationView(d models.Donation) DonationView {
	attempts := make([]AttemptView, 0, len(d.Attempts))
	for _, a := range d.Attempts {
		attempts = append(attempts, AttemptView{
			ID:          a.ID,
			Status:      a.Status,
			RawResponse: rawOrEmpty(a.RawResponse),
			CreatedAt:   a.CreatedAt,
		})
	}
	return DonationView{
		ID:               d.ID,
		UserID:           d.UserID,
		RegistrationID:   d.RegistrationID,
		AmountCents:      d.AmountCents,
		Status:           d.Status,
		GatewayReference: d.GatewayReference,
		Metadata:         rawOrEmpty(d.Metadata),
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
		Attempts:         attempts,
	}
}

func registrationViews(rows []models.Registration) []RegistrationView {
	out := make([]RegistrationView, 0, len(rows))
	for _, r := range rows {
		out = append(out, RegistrationView{
			ID:        r.ID,
			UserID:    r.UserID,
			Data:      rawOrEmpty(r.Data),
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}
