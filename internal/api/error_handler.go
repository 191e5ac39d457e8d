package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/decision-service/internal/core/domain"
)

// Client-facing messages. The wire format is shared with an existing frontend.
const (
	msgInvalidCredentials = "Credenciales incorrectas"
	msgUnauthenticated    = "No autenticado"
	msgForbidden          = "Acceso denegado"
	msgDecisionNotFound   = "Decisión no encontrada"
	msgRouteNotFound      = "Recurso no encontrado"
	msgServerError        = "Error en el servidor"
	msgBadRequest         = "Error en la petición"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes and fixed messages.
//   - Logs store failures and unexpected errors without leaking details.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var inErr *domain.InputError
	if errors.As(err, &inErr) {
		return http.StatusBadRequest, inErr.Message
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, msgInvalidCredentials
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, msgUnauthenticated
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, msgForbidden
	case errors.Is(err, domain.ErrDecisionNotFound):
		return http.StatusNotFound, msgDecisionNotFound
	case errors.Is(err, domain.ErrStoreFailure):
		logFailure(log.Error(), err, c, "store failure")
		return http.StatusInternalServerError, msgServerError
	case errors.Is(err, domain.ErrBadRequest):
		logFailure(log.Warn(), err, c, "malformed request")
		return http.StatusBadRequest, msgBadRequest
	}

	// Echo's own errors (router misses, guards, middleware).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch {
		case he.Code == http.StatusNotFound, he.Code == http.StatusMethodNotAllowed:
			return http.StatusNotFound, msgRouteNotFound
		case he.Code == http.StatusBadRequest:
			return http.StatusBadRequest, msgBadRequest
		case he.Code >= http.StatusInternalServerError:
			logFailure(log.Error(), err, c, "server error")
			return he.Code, msgServerError
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Anything else escaped a handler: log the real cause and answer 400.
	logFailure(log.Error(), err, c, "unhandled error")
	return http.StatusBadRequest, msgBadRequest
}

func logFailure(ev *zerolog.Event, err error, c echo.Context, msg string) {
	ev.Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg(msg)
}
