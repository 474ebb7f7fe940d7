package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"vt-tradesim/internal/errs"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ReadJSON decodes the request body into v and applies validator tags.
func ReadJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.New("invalid json body")
	}
	if err := validate.Struct(v); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return err
		}
		return errors.New("validation failed: " + err.Error())
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps tagged error kinds to HTTP statuses. Untagged errors
// surface as 500 with a generic message.
func WriteError(w http.ResponseWriter, err error) {
	kind, ok := errs.KindOf(err)
	if !ok {
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		return
	}
	status := http.StatusInternalServerError
	switch kind {
	case errs.KindNotFound:
		status = http.StatusNotFound
	case errs.KindInvalidState, errs.KindMismatch, errs.KindConflict:
		status = http.StatusConflict
	case errs.KindInsufficientFunds, errs.KindPriceTooLow:
		status = http.StatusUnprocessableEntity
	case errs.KindUnauthorized:
		status = http.StatusForbidden
	case errs.KindInvalid:
		status = http.StatusBadRequest
	}
	WriteJSON(w, status, ErrorResponse{Error: err.Error()})
}
