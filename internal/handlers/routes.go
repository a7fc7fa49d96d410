package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/gdg-garage/charity-api/internal/auth"
	"github.com/gdg-garage/charity-api/internal/config"
	"github.com/gdg-garage/charity-api/internal/gateway"
	"github.com/gdg-garage/charity-api/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type Handlers struct {
	Auth          *auth.AuthHandler
	Registrations *RegistrationHandler
	Donations     *DonationHandler
	Admin         *AdminHandler
	Gateway       *GatewayHandler
}

type HealthResponse struct {
	Body struct {
		OK bool `json:"ok"`
	}
}

func RegisterRoutes(r *chi.Mux, cfg *config.Config, log zerolog.Logger, h Handlers) huma.API {
	r.Use(middleware.RequestID)
	r.Use(logging.Requests(log))
	r.Use(middleware.Recoverer)
	if cfg.EnableCORS {
		r.Use(cors(cfg.CORSOrigins))
	}

	// Initialize Huma API
	humaConfig := huma.DefaultConfig("Charity Donations API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearerAuth": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
	api := humachi.New(r, humaConfig)

	secured := func(o *huma.Operation) {
		o.Security = []map[string][]string{{"bearerAuth": {}}}
	}

	// Public routes
	huma.Get(api, "/health", func(ctx context.Context, _ *struct{}) (*HealthResponse, error) {
		res := &HealthResponse{}
		res.Body.OK = true
		return res, nil
	})
	huma.Post(api, "/auth/register", h.Auth.HandleSignup)
	huma.Post(api, "/auth/login", h.Auth.HandleLogin)

	// Gateway callbacks, authenticated by the reference itself
	r.Get(gateway.PayPath, h.Gateway.HandlePayPage)
	huma.Post(api, "/fake/confirm", h.Gateway.HandleConfirm)

	// Protected routes
	huma.Get(api, "/me", h.Auth.HandleMe, secured)
	huma.Post(api, "/registrations", h.Registrations.HandleRegister, secured)
	huma.Get(api, "/registrations", h.Registrations.HandleList, secured)
	huma.Post(api, "/donations", h.Donations.HandleCreate, secured)
	huma.Get(api, "/donations", h.Donations.HandleList, secured)
	huma.Get(api, "/donations/{id}", h.Donations.HandleGet, secured)

	// Admin routes
	huma.Get(api, "/admin/stats", h.Admin.HandleStats, secured)
	huma.Get(api, "/admin/donations", h.Admin.HandleListDonations, secured)
	huma.Get(api, "/admin/registrations/export", h.Admin.HandleExportRegistrations, secured)

	return api
}
