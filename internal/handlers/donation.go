package handlers

import (
	"context"
	"encoding/json"

	"github.com/gdg-garage/charity-api/internal/auth"
	"github.com/gdg-garage/charity-api/internal/gateway"
	"github.com/gdg-garage/charity-api/internal/ledger"
	"github.com/rs/zerolog"
)

type DonationHandler struct {
	ledger      *ledger.Ledger
	authHandler *auth.AuthHandler
	log         zerolog.Logger
}

func NewDonationHandler(l *ledger.Ledger, authHandler *auth.AuthHandler, log zerolog.Logger) *DonationHandler {
	return &DonationHandler{ledger: l, authHandler: authHandler, log: log}
}

type CreateDonationRequest struct {
	auth.AuthInput
	Body struct {
		AmountCents    int64          `json:"amount_cents,omitempty" doc:"Amount in minor currency units, must be positive"`
		RegistrationID *string        `json:"registration_id,omitempty" doc:"Registration the donation is attached to"`
		Metadata       map[string]any `json:"metadata,omitempty" doc:"Free-form data stored with the donation"`
	}
}

type CreateDonationResponse struct {
	Body struct {
		DonationID       string `json:"donation_id"`
		GatewayReference string `json:"gateway_reference"`
		CheckoutURL      string `json:"checkout_url"`
	}
}

func (h *DonationHandler) HandleCreate(ctx context.Context, input *CreateDonationRequest) (*CreateDonationResponse, error) {
	p, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, httpError(h.log, err, "authorize")
	}

	var metadata json.RawMessage
	if input.Body.Metadata != nil {
		if metadata, err = json.Marshal(input.Body.Metadata); err != nil {
			return nil, httpError(h.log, err, "donation creation")
		}
	}

	receipt, err := h.ledger.CreateDonation(ctx, p, ledger.CreateInput{
		AmountCents:    input.Body.AmountCents,
		RegistrationID: input.Body.RegistrationID,
		Metadata:       metadata,
	})
	if err != nil {
		return nil, httpError(h.log, err, "donation creation")
	}

	res := &CreateDonationResponse{}
	res.Body.DonationID = receipt.DonationID
	res.Body.GatewayReference = receipt.GatewayReference
	res.Body.CheckoutURL = gateway.CheckoutURL(receipt.GatewayReference)
	return res, nil
}

type ListDonationsRequest struct {
	auth.AuthInput
	Status string `query:"status" doc:"Only donations currently in this status"`
	From   string `query:"from" doc:"Inclusive lower bound on created_at (RFC3339 or YYYY-MM-DD)"`
	To     string `query:"to" doc:"Inclusive upper bound on created_at (RFC3339 or YYYY-MM-DD)"`
}

func (r *ListDonationsRequest) filter() ledger.Filter {
	return ledger.Filter{Status: r.Status, From: r.From, To: r.To}
}

type ListDonationsResponse struct {
	Body []DonationView
}

// HandleList scopes the listing to the caller unless they are an admin.
func (h *DonationHandler) HandleList(ctx context.Context, input *ListDonationsRequest) (*ListDonationsResponse, error) {
	p, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, httpError(h.log, err, "authorize")
	}

	rows, err := h.ledger.ListDonations(ctx, p, input.filter())
	if err != nil {
		return nil, httpError(h.log, err, "fetch donations")
	}
	return &ListDonationsResponse{Body: donationViews(rows)}, nil
}

type GetDonationRequest struct {
	auth.AuthInput
	ID string `path:"id"`
}

type GetDonationResponse struct {
	Body DonationView
}

func (h *DonationHandler) HandleGet(ctx context.Context, input *GetDonationRequest) (*GetDonationResponse, error) {
	p, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, httpError(h.log, err, "authorize")
	}

	d, err := h.ledger.GetDonation(ctx, p, input.ID)
	if err != nil {
		return nil, httpError(h.log, err, "fetch donation")
	}
	return &GetDonationResponse{Body: donationView(d)}, nil
}
