package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kopdar-dev/kopdar/shared/domain"
	internal_errors "github.com/kopdar-dev/kopdar/shared/errors"
	mw "github.com/kopdar-dev/kopdar/shared/middleware"
	"github.com/kopdar-dev/kopdar/shared/utils"
	"github.com/kopdar-dev/kopdar/shared/validation"
)

// decodeBody caps the body size and then decodes and validates it into T.
func decodeBody[T any](w http.ResponseWriter, r *http.Request) (T, error) {
	var body T
	validation.LimitBody(w, r, validation.DefaultMaxBodySize)
	err := utils.DecodeValidate(r.Body, &body)
	return body, err
}

// requireUser returns the authenticated caller. Routes behind NeedAuth always
// have one; the check keeps handlers safe if they get mounted elsewhere.
func requireUser(r *http.Request) (*domain.Identity, error) {
	user := mw.GetUserFromContext(r)
	if user == nil || user.Id == "" {
		return nil, internal_errors.Unauthenticated()
	}
	return user, nil
}

func pathParam(r *http.Request, name string) (string, error) {
	value := chi.URLParam(r, name)
	if value == "" {
		return "", internal_errors.Validation("Missing " + name + " in path")
	}
	return value, nil
}
