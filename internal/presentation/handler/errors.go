package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"assetpipe/internal/domain"
	"assetpipe/internal/presentation"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrMissingCredential):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrUnreachable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// failWith answers with the status mapped from err. A partial report, when the
// operation produced one, is still sent as the body.
func failWith(c echo.Context, err error, partial any) error {
	c.Response().Header().Set(presentation.ReasonTag, err.Error())
	if partial == nil {
		return c.NoContent(statusFor(err))
	}

	return c.JSON(statusFor(err), partial)
}

func badRequest(c echo.Context, reason string) error {
	c.Response().Header().Set(presentation.ReasonTag, reason)

	return c.NoContent(http.StatusBadRequest)
}
