package errors

import (
	"fmt"
	"net/http"
)

var (
	ErrInvalidThresholds = New(
		KindParse,
		"INVALID_THRESHOLDS",
		"Travel times must be a comma-separated list of positive integers",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		KindParse,
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		KindParse,
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrRoutingProvider = New(
		KindTransport,
		"ROUTING_PROVIDER_ERROR",
		"Routing provider returned an error",
		http.StatusBadGateway,
	)

	ErrRoutingUnavailable = New(
		KindTransport,
		"ROUTING_PROVIDER_UNAVAILABLE",
		"Routing provider request failed",
		http.StatusBadGateway,
	)

	ErrInvalidGeometry = New(
		KindRender,
		"INVALID_GEOMETRY",
		"Routing provider returned malformed geometry",
		http.StatusInternalServerError,
	)

	ErrRenderFailed = New(
		KindRender,
		"RENDER_FAILED",
		"Failed to render map",
		http.StatusInternalServerError,
	)

	ErrExportFailed = New(
		KindRender,
		"EXPORT_FAILED",
		"Failed to export map document",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		KindInternal,
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)

// NewProviderError - ошибка провайдера с HTTP статусом и телом ответа
func NewProviderError(status int, body string, err error) *AppError {
	return ErrRoutingProvider.
		WithMessage(fmt.Sprintf("Routing provider returned status %d", status)).
		WithDetails(map[string]interface{}{
			"provider_status": status,
			"provider_body":   body,
		}).
		Wrap(err)
}
