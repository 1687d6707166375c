package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"evalgo.org/vlanreg/internal/registry"
)

// APIError represents a structured API error with HTTP status code.
// It serializes as {"error": Message, "details": Details, ...Fields}.
type APIError struct {
	Code    int
	Message string
	Details string
	Fields  map[string]interface{}
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

// MarshalJSON flattens Fields next to the error message.
func (e *APIError) MarshalJSON() ([]byte, error) {
	body := make(map[string]interface{}, len(e.Fields)+2)
	for k, v := range e.Fields {
		body[k] = v
	}
	body["error"] = e.Message
	if e.Details != "" {
		body["details"] = e.Details
	}
	return json.Marshal(body)
}

// With adds a detail field to the error body.
func (e *APIError) With(key string, value interface{}) *APIError {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// NewAPIError creates a new API error.
func NewAPIError(code int, message string, details string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Common error constructors
func BadRequestError(message, details string) *APIError {
	return NewAPIError(http.StatusBadRequest, message, details)
}

func UnsupportedMediaTypeError(message, details string) *APIError {
	return NewAPIError(http.StatusUnsupportedMediaType, message, details)
}

func NotFoundError(resource, id string) *APIError {
	return NewAPIError(http.StatusNotFound, fmt.Sprintf("%s not found", resource), "").With("id", id)
}

func InternalError(message, details string) *APIError {
	return NewAPIError(http.StatusInternalServerError, message, details)
}

func ConflictError(message, details string) *APIError {
	return NewAPIError(http.StatusConflict, message, details)
}

// registryError maps a registry failure onto its HTTP representation.
func registryError(err error) *APIError {
	var (
		fieldErr    *registry.FieldError
		rangeErr    *registry.RangeError
		conflictErr *registry.ConflictError
	)

	switch {
	case errors.Is(err, registry.ErrInvalidRequest):
		return UnsupportedMediaTypeError("Invalid request", "request body must be a JSON object")
	case errors.As(err, &fieldErr) && errors.Is(err, registry.ErrMissingField):
		return BadRequestError(fmt.Sprintf("Field '%s' is required", fieldErr.Field), "").
			With("field", fieldErr.Field)
	case errors.As(err, &fieldErr) && errors.Is(err, registry.ErrInvalidType):
		return BadRequestError(fmt.Sprintf("Invalid value for '%s'", fieldErr.Field), fieldErr.Reason).
			With("field", fieldErr.Field)
	case errors.As(err, &rangeErr):
		return BadRequestError(
			"VLAN ID out of range",
			fmt.Sprintf("VLAN ID must be between %d and %d", rangeErr.Min, rangeErr.Max),
		).With("min", rangeErr.Min).With("max", rangeErr.Max)
	case errors.As(err, &conflictErr):
		return ConflictError(
			"VLAN already exists",
			fmt.Sprintf("VLAN %d is already registered", conflictErr.Existing.ID),
		).With("vlan", conflictErr.Existing)
	case errors.Is(err, registry.ErrNotFound):
		return NewAPIError(http.StatusNotFound, "VLAN not found", "")
	default:
		return InternalError("Internal server error", err.Error())
	}
}

// HTTPErrorHandler is a custom error handler for Echo.
func HTTPErrorHandler(err error, c echo.Context) {
	// Don't send response if already sent
	if c.Response().Committed {
		return
	}

	var apiErr *APIError
	var he *echo.HTTPError

	switch {
	case errors.As(err, &apiErr):
	case errors.As(err, &he):
		apiErr = &APIError{
			Code:    he.Code,
			Message: getHTTPMessage(he.Code),
			Details: fmt.Sprintf("%v", he.Message),
		}
	default:
		apiErr = InternalError("Internal server error", err.Error())
	}

	// Don't expose internal errors in production
	if apiErr.Code == http.StatusInternalServerError && !c.Echo().Debug {
		apiErr = InternalError(apiErr.Message, "An internal error occurred. Please try again later.")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(apiErr.Code)
	} else {
		err = c.JSON(apiErr.Code, apiErr)
	}
	if err != nil {
		c.Logger().Error(err)
	}
}

// getHTTPMessage returns a user-friendly message for HTTP status codes.
func getHTTPMessage(code int) string {
	messages := map[int]string{
		http.StatusBadRequest:            "Bad request",
		http.StatusNotFound:              "Resource not found",
		http.StatusMethodNotAllowed:      "Method not allowed",
		http.StatusNotAcceptable:         "Not acceptable",
		http.StatusConflict:              "Conflict",
		http.StatusRequestEntityTooLarge: "Request entity too large",
		http.StatusUnsupportedMediaType:  "Unsupported media type",
		http.StatusTooManyRequests:       "Too many requests",
		http.StatusInternalServerError:   "Internal server error",
		http.StatusServiceUnavailable:    "Service unavailable",
	}

	if msg, ok := messages[code]; ok {
		return msg
	}
	return http.StatusText(code)
}
