package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/evcraddock/realstate-api/internal/apperr"
	"github.com/evcraddock/realstate-api/internal/logging"
	"github.com/evcraddock/realstate-api/internal/validate"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error   string              `json:"error"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// apiError writes a JSON error response.
func apiError(c *gin.Context, msg string, code int) {
	c.AbortWithStatusJSON(code, errorBody{Error: msg})
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(c *gin.Context, data interface{}, code int) {
	c.JSON(code, data)
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation), errors.Is(err, apperr.ErrInvalidIdentifier):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperr.ErrUnsupportedFileType):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	}
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

// writeError logs err with the failing operation and writes the matching
// error response. Server errors are reported to the client without detail.
func writeError(c *gin.Context, op string, err error) {
	code := statusFor(err)
	ctx := c.Request.Context()

	level := slog.LevelWarn
	if code >= 500 {
		level = slog.LevelError
	}
	slog.Log(ctx, level, "request failed",
		"op", op,
		"status", code,
		"error", err,
		"request_id", logging.RequestID(ctx),
	)

	body := errorBody{Error: err.Error(), Details: apperr.Fields(err)}
	if code >= 500 {
		body = errorBody{Error: "internal server error"}
	}
	c.AbortWithStatusJSON(code, body)
}

// bindError turns a JSON decoding or binding failure into an apperr error.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return validate.Translate(err)
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return apperr.Invalid(typeErr.Field, "must be of type "+typeErr.Type.String())
	}
	if errors.Is(err, apperr.ErrInvalidIdentifier) {
		return err
	}
	return apperr.Invalid("body", "must be a valid JSON object")
}

// renameField reports validation failures on field under name instead, so
// details match the parameter the client sent.
func renameField(err error, field, name string) error {
	var verr *apperr.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	out := &apperr.ValidationError{Fields: make([]apperr.FieldError, len(verr.Fields))}
	for i, fe := range verr.Fields {
		if fe.Field == field {
			fe.Field = name
		}
		out.Fields[i] = fe
	}
	return out
}
