package handlers

import (
	"context"
	"encoding/json"

	"github.com/gdg-garage/charity-api/internal/auth"
	"github.com/gdg-garage/charity-api/internal/registrations"
	"github.com/rs/zerolog"
)

type RegistrationHandler struct {
	store       *registrations.Store
	authHandler *auth.AuthHandler
	log         zerolog.Logger
}

func NewRegistrationHandler(store *registrations.Store, authHandler *auth.AuthHandler, log zerolog.Logger) *RegistrationHandler {
	return &RegistrationHandler{store: store, authHandler: authHandler, log: log}
}

type RegistrationRequest struct {
	auth.AuthInput
	Body struct {
		Data map[string]any `json:"data,omitempty" doc:"Registration form contents"`
	}
}

type RegistrationResponse struct {
	Body struct {
		ID string `json:"id"`
	}
}

func (h *RegistrationHandler) HandleRegister(ctx context.Context, input *RegistrationRequest) (*RegistrationResponse, error) {
	p, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, httpError(h.log, err, "authorize")
	}

	var payload json.RawMessage
	if input.Body.Data != nil {
		if payload, err = json.Marshal(input.Body.Data); err != nil {
			return nil, httpError(h.log, err, "registration creation")
		}
	}

	id, err := h.store.Create(ctx, p.ID, payload)
	if err != nil {
		return nil, httpError(h.log, err, "registration creation")
	}

	res := &RegistrationResponse{}
	res.Body.ID = id
	return res, nil
}

type ListRegistrationsRequest struct {
	auth.AuthInput
	Email string `query:"email" doc:"Substring of the owner's email"`
}

type ListRegistrationsResponse struct {
	Body []RegistrationView
}

func (h *RegistrationHandler) HandleList(ctx context.Context, input *ListRegistrationsRequest) (*ListRegistrationsResponse, error) {
	p, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, httpError(h.log, err, "authorize")
	}

	rows, err := h.store.List(ctx, p, registrations.Filter{Email: input.Email})
	if err != nil {
		return nil, httpError(h.log, err, "fetch registrations")
	}
	return &ListRegistrationsResponse{Body: registrationViews(rows)}, nil
}
