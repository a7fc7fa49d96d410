package handlers

import (
	"context"
	"net/http"

	"github.com/gdg-garage/charity-api/internal/gateway"
	"github.com/rs/zerolog"
)

type GatewayHandler struct {
	bridge *gateway.Bridge
	log    zerolog.Logger
}

func NewGatewayHandler(bridge *gateway.Bridge, log zerolog.Logger) *GatewayHandler {
	return &GatewayHandler{bridge: bridge, log: log}
}

// ConfirmRequest carries no credentials; the reference itself is the secret.
type ConfirmRequest struct {
	Body struct {
		Ref    string `json:"ref,omitempty" doc:"Gateway reference issued at donation creation"`
		Status string `json:"status,omitempty" doc:"Outcome reported by the gateway"`
	}
}

type ConfirmResponse struct {
	Body struct {
		OK bool `json:"ok"`
	}
}

func (h *GatewayHandler) HandleConfirm(ctx context.Context, input *ConfirmRequest) (*ConfirmResponse, error) {
	if err := h.bridge.Confirm(ctx, input.Body.Ref, input.Body.Status); err != nil {
		return nil, httpError(h.log, err, "payment confirmation")
	}

	res := &ConfirmResponse{}
	res.Body.OK = true
	return res, nil
}

func (h *GatewayHandler) HandlePayPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := gateway.RenderPayPage(w, r.URL.Query().Get("ref")); err != nil {
		h.log.Error().Err(err).Msg("render pay page")
	}
}
