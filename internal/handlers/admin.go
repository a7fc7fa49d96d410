package handlers

import (
	"bytes"
	"context"

	"github.com/gdg-garage/charity-api/internal/auth"
	"github.com/gdg-garage/charity-api/internal/ledger"
	"github.com/gdg-garage/charity-api/internal/reporting"
	"github.com/rs/zerolog"
)

type AdminHandler struct {
	ledger      *ledger.Ledger
	reporting   *reporting.Engine
	authHandler *auth.AuthHandler
	log         zerolog.Logger
}

func NewAdminHandler(l *ledger.Ledger, engine *reporting.Engine, authHandler *auth.AuthHandler, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{ledger: l, reporting: engine, authHandler: authHandler, log: log}
}

type StatsRequest struct {
	auth.AuthInput
}

type StatsResponse struct {
	Body reporting.Stats
}

func (h *AdminHandler) HandleStats(ctx context.Context, input *StatsRequest) (*StatsResponse, error) {
	p, err := h.authHandler.AuthorizeAdmin(ctx, input.AuthInput)
	if err != nil {
		return nil, httpError(h.log, err, "authorize")
	}

	stats, err := h.reporting.Stats(ctx, p)
	if err != nil {
		return nil, httpError(h.log, err, "fetch stats")
	}
	return &StatsResponse{Body: stats}, nil
}

// HandleListDonations is the unscoped listing; only admins get here.
func (h *AdminHandler) HandleListDonations(ctx context.Context, input *ListDonationsRequest) (*ListDonationsResponse, error) {
	p, err := h.authHandler.AuthorizeAdmin(ctx, input.AuthInput)
	if err != nil {
		return nil, httpError(h.log, err, "authorize")
	}

	rows, err := h.ledger.ListDonations(ctx, p, input.filter())
	if err != nil {
		return nil, httpError(h.log, err, "fetch donations")
	}
	return &ListDonationsResponse{Body: donationViews(rows)}, nil
}

type ExportRequest struct {
	auth.AuthInput
}

type ExportResponse struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

func (h *AdminHandler) HandleExportRegistrations(ctx context.Context, input *ExportRequest) (*ExportResponse, error) {
	p, err := h.authHandler.AuthorizeAdmin(ctx, input.AuthInput)
	if err != nil {
		return nil, httpError(h.log, err, "authorize")
	}

	records, err := h.reporting.ExportRegistrations(ctx, p)
	if err != nil {
		return nil, httpError(h.log, err, "export")
	}

	var buf bytes.Buffer
	if err := reporting.WriteCSV(&buf, records); err != nil {
		return nil, httpError(h.log, err, "export")
	}

	return &ExportResponse{
		ContentType:        "text/csv",
		ContentDisposition: `attachment; filename="registrations.csv"`,
		Body:               buf.Bytes(),
	}, nil
}
