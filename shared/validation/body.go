package validation

import (
	"errors"
	"net/http"
)

// DefaultMaxBodySize covers the longest content plus JSON overhead.
const DefaultMaxBodySize int64 = 128 << 10

// LimitBody caps how much of the request body a handler may read. A decoder
// reading past the cap gets an error that IsTooLarge recognises.
func LimitBody(w http.ResponseWriter, r *http.Request, maxSize int64) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)
}

func IsTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
