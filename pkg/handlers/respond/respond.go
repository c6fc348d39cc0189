package respond

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/chris/twogether-backend/pkg/api"
	"github.com/chris/twogether-backend/pkg/auth"
	"github.com/chris/twogether-backend/pkg/stats"
	"github.com/chris/twogether-backend/pkg/storage"
)

// ValidationError is a request that is well-formed but semantically invalid.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Invalid returns a ValidationError.
func Invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// BadRequestError is a request that could not be parsed.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string { return e.Message }

// BadRequest returns a BadRequestError.
func BadRequest(msg string) error {
	return &BadRequestError{Message: msg}
}

type mapping struct {
	err    error
	status int
	code   string
}

// errorTable is checked in order with errors.Is.
var errorTable = []mapping{
	{storage.ErrInvalidAmount, http.StatusUnprocessableEntity, api.CodeValidation},
	{storage.ErrInvalidKind, http.StatusUnprocessableEntity, api.CodeValidation},
	{auth.ErrInvalidEmail, http.StatusUnprocessableEntity, api.CodeValidation},
	{auth.ErrWeakPassword, http.StatusUnprocessableEntity, api.CodeValidation},
	{auth.ErrInvalidDisplayName, http.StatusUnprocessableEntity, api.CodeValidation},
	{stats.ErrInvalidOrder, http.StatusUnprocessableEntity, api.CodeValidation},
	{storage.ErrPhotoNotFound, http.StatusUnprocessableEntity, api.CodeValidation},
	{storage.ErrInsufficientBalance, http.StatusBadRequest, api.CodeInsufficientBalance},
	{auth.ErrInvalidCredentials, http.StatusUnauthorized, api.CodeInvalidCredentials},
	{auth.ErrInvalidToken, http.StatusUnauthorized, api.CodeUnauthorized},
	{storage.ErrAccountNotFound, http.StatusNotFound, api.CodeNotFound},
	{storage.ErrCoupleNotFound, http.StatusNotFound, api.CodeCoupleNotFound},
	{storage.ErrCodeNotFound, http.StatusNotFound, api.CodeCodeNotFound},
	{storage.ErrMomentNotFound, http.StatusNotFound, api.CodeNotFound},
	{storage.ErrAlreadyPaired, http.StatusConflict, api.CodeAlreadyPaired},
	{storage.ErrAlreadyInCouple, http.StatusConflict, api.CodeAlreadyInCouple},
	{storage.ErrCodeAlreadyActive, http.StatusConflict, api.CodeCodeAlreadyActive},
	{storage.ErrSelfPairing, http.StatusConflict, api.CodeSelfPairing},
	{storage.ErrEmailTaken, http.StatusConflict, api.CodeEmailTaken},
}

// Classify returns the status, code and client-safe message for err.
func Classify(err error) (int, api.ErrorDetail) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, api.ErrorDetail{Code: api.CodeValidation, Message: ve.Message}
	}
	var be *BadRequestError
	if errors.As(err, &be) {
		return http.StatusBadRequest, api.ErrorDetail{Code: api.CodeBadRequest, Message: be.Message}
	}
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return http.StatusRequestEntityTooLarge, api.ErrorDetail{Code: api.CodePayloadTooLarge, Message: "request body too large"}
	}
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			return m.status, api.ErrorDetail{Code: m.code, Message: m.err.Error()}
		}
	}
	return http.StatusInternalServerError, api.ErrorDetail{Code: api.CodeInternal, Message: "internal server error"}
}

// Error writes the error envelope. Unclassified errors are logged and reported as an opaque 500.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := Classify(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	JSON(w, status, api.ErrorBody{Error: detail})
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// Decode reads a JSON body into v, rejecting unknown fields. An empty body leaves v untouched.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return err
		}
		return BadRequest("invalid request body: " + err.Error())
	}
	return nil
}
