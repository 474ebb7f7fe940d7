package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vt-tradesim/internal/errs"

	"github.com/stretchr/testify/require"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		body   string
	}{
		{errs.NotFound("trade not found"), http.StatusNotFound, "trade not found"},
		{errs.InvalidState("trade already closed"), http.StatusConflict, "trade already closed"},
		{errs.Mismatch("trader does not match signal trader"), http.StatusConflict, "trader does not match signal trader"},
		{errs.Conflict("email or username already exists"), http.StatusConflict, "email or username already exists"},
		{errs.InsufficientFunds("insufficient virtual balance"), http.StatusUnprocessableEntity, "insufficient virtual balance"},
		{errs.PriceTooLow("price paid is less than trader subscription price"), http.StatusUnprocessableEntity, "price paid is less than trader subscription price"},
		{errs.Unauthorized("no active subscription"), http.StatusForbidden, "no active subscription"},
		{errs.Invalid("quantity must be positive"), http.StatusBadRequest, "quantity must be positive"},
		{errors.New("pq: connection refused"), http.StatusInternalServerError, "internal error"},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		WriteError(rec, tt.err)
		require.Equal(t, tt.status, rec.Code)
		require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, tt.body, resp.Error)
	}
}

func TestReadJSONValidation(t *testing.T) {
	type payload struct {
		Email string `json:"email" validate:"required,email"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@example.com"}`))
	var p payload
	require.NoError(t, ReadJSON(req, &p))
	require.Equal(t, "a@example.com", p.Email)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope"}`))
	err := ReadJSON(req, &payload{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "validation failed")

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@example.com","extra":1}`))
	err = ReadJSON(req, &payload{})
	require.EqualError(t, err, "invalid json body")

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{bad`))
	err = ReadJSON(req, &payload{})
	require.EqualError(t, err, "invalid json body")
}
