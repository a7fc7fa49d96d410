package handlers

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/charity-api/internal/apperr"
	"github.com/rs/zerolog"
)

// httpError maps a component error onto the huma error returned to the
// client. Storage causes are logged and never echoed back.
func httpError(log zerolog.Logger, err error, op string) error {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, apperr.ErrUnauthenticated):
		return huma.Error401Unauthorized(err.Error())
	case errors.Is(err, apperr.ErrForbidden):
		return huma.Error403Forbidden(err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		return huma.Error404NotFound("not found")
	case errors.Is(err, apperr.ErrConflict):
		return huma.Error409Conflict(err.Error())
	}
	log.Error().Err(err).Str("op", op).Msg("request failed")
	return huma.Error500InternalServerError(op + " failed")
}
