package errors

import "net/http"

var (
	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	// ErrNoPaidZones - для точки назначения не существует ни одной платной
	// зоны-кандидата; терминальный отказ, не ретраится
	ErrNoPaidZones = New(
		"NO_PAID_ZONES",
		"No paid parking zones found for destination",
		http.StatusUnprocessableEntity,
	)

	// ErrDestinationTooFar - ближайшая платная зона дальше порога downtown;
	// возвращается только когда вызывающий выбрал жёсткий отказ
	ErrDestinationTooFar = New(
		"DESTINATION_TOO_FAR",
		"Destination is too far from paid parking zones",
		http.StatusUnprocessableEntity,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
