package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yusufkecer/fittrack-backend/internal/domain"
)

func TestFailMapsErrors(t *testing.T) {
	tests := []struct {
		name        string
		development bool
		err         error
		status      int
		code        string
		message     string
	}{
		{"app error", false, domain.NewInvalidState("timer is not running"), http.StatusConflict, domain.CodeInvalidState, "timer is not running"},
		{"wrapped not found", false, fmt.Errorf("lookup: %w", domain.ErrNotFound), http.StatusNotFound, domain.CodeNotFound, "resource not found"},
		{"internal in production", false, errors.New("dial tcp: connection refused"), http.StatusInternalServerError, domain.CodeInternal, "internal server error"},
		{"internal in development", true, errors.New("dial tcp: connection refused"), http.StatusInternalServerError, domain.CodeInternal, "dial tcp: connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testBase()
			b.Development = tt.development
			rec := httptest.NewRecorder()
			b.fail(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			var body errorBody
			decodeBody(t, rec, &body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.message, body.Error)
		})
	}
}

func TestDecodeReportsValidationDetails(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", jsonReader(`{"email":"not-an-email","name":"A"}`))
	err := decode(req, &domain.RegisterRequest{})

	appErr, ok := domain.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, domain.CodeValidation, appErr.Code)

	details, ok := appErr.Details.([]FieldError)
	require.True(t, ok)
	rules := map[string]string{}
	for _, d := range details {
		rules[d.Field] = d.Rule
	}
	assert.Equal(t, map[string]string{"email": "email", "password": "required", "name": "min"}, rules)
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", jsonReader(`{"email":`))
	err := decode(req, &domain.LoginRequest{})

	appErr, ok := domain.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeValidation, appErr.Code)
	assert.Equal(t, "invalid request body", appErr.Message)
}

func TestReminderCustomFrequencyRequired(t *testing.T) {
	err := validateStruct(&domain.ReminderRequest{Title: "Stretch", Type: "workout", Frequency: "custom"})
	appErr, ok := domain.AsAppError(err)
	require.True(t, ok)
	details := appErr.Details.([]FieldError)
	require.Len(t, details, 1)
	assert.Equal(t, "customFrequency", details[0].Field)
	assert.Equal(t, "required_if", details[0].Rule)
}
