package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/yusufkecer/fittrack-backend/internal/domain"
	"github.com/yusufkecer/fittrack-backend/internal/middleware"
	"go.uber.org/zap"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError is one entry of a VALIDATION_ERROR details list.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// Base carries what every handler needs to report errors.
type Base struct {
	Log         *zap.Logger
	Development bool
	Now         func() time.Time
}

func NewBase(log *zap.Logger, development bool) Base {
	return Base{Log: log, Development: development, Now: time.Now}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, domain.AppError{Code: code, Message: message})
}

// fail maps err to a response. Domain errors keep their status and code;
// anything else is a 500 whose message is only revealed in development.
func (b Base) fail(w http.ResponseWriter, r *http.Request, err error) {
	if appErr, ok := domain.AsAppError(err); ok {
		writeJSON(w, appErr.Status, appErr)
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, domain.CodeNotFound, "resource not found")
		return
	}

	b.Log.Error("request failed",
		zap.String("request_id", middleware.RequestIDFromContext(r.Context())),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	msg := "internal server error"
	if b.Development {
		msg = err.Error()
	}
	writeError(w, http.StatusInternalServerError, domain.CodeInternal, msg)
}

// decode reads a JSON body into dst and runs struct validation on it.
func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.NewValidationError("invalid request body", []FieldError{{Field: "body", Rule: "json", Param: err.Error()}})
	}
	return validateStruct(dst)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.NewValidationError("invalid request", nil)
	}
	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		details = append(details, FieldError{Field: field, Rule: fe.Tag(), Param: fe.Param()})
	}
	return domain.NewValidationError("validation failed", details)
}

func (b Base) userID(r *http.Request) (int64, error) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		return 0, domain.NewUnauthorized("authentication required")
	}
	return id, nil
}

func pathInt(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id < 0 {
		return 0, domain.NewValidationError("invalid "+name, []FieldError{{Field: name, Rule: "numeric"}})
	}
	return id, nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := pathInt(r, "id")
	if err == nil && id == 0 {
		return 0, domain.NewValidationError("invalid id", []FieldError{{Field: "id", Rule: "gt", Param: "0"}})
	}
	return id, err
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, domain.NewValidationError("invalid "+name, []FieldError{{Field: name, Rule: "numeric"}})
	}
	return n, nil
}

// queryTime accepts RFC 3339 timestamps or plain dates.
func queryTime(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, domain.NewValidationError("invalid "+name, []FieldError{{Field: name, Rule: "datetime", Param: time.RFC3339}})
}

func noContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
