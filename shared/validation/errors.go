package validation

import (
	"net/http"

	internal_errors "github.com/kopdar-dev/kopdar/shared/errors"
)

// ErrPayloadTooLarge is returned when the request body exceeds size limits
var ErrPayloadTooLarge = &internal_errors.ErrorWithStatusCode{Message: "Payload too large", StatusCode: http.StatusRequestEntityTooLarge}
