package apperrors

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrValidation is returned for missing or malformed input.
	ErrValidation = errors.New("validation failed")
	// ErrEmailTaken is returned when registering an email that already has an account.
	ErrEmailTaken = wrap(ErrValidation, "user already exists")
	// ErrInvalidCredentials is returned for an unknown email and for a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated is returned when the bearer token is missing, invalid or expired.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrUnauthorized is returned when the caller does not own the resource.
	ErrUnauthorized = errors.New("user not authorized")
	// ErrNotFound is returned when a user, post or comment does not exist.
	ErrNotFound = errors.New("not found")

	ErrAlreadyLiked     = errors.New("post already liked")
	ErrNotLiked         = errors.New("post not liked yet")
	ErrNoLikes          = errors.New("post has no likes")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("you are not following this user")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Error   string `json:"error,omitempty"`
}

type mapping struct {
	target error
	status int
	code   string
}

// Order matters: ErrEmailTaken must be checked before ErrValidation.
var mappings = []mapping{
	{ErrEmailTaken, http.StatusBadRequest, "USER_ALREADY_EXISTS"},
	{ErrValidation, http.StatusBadRequest, "VALIDATION_ERROR"},
	{ErrInvalidCredentials, http.StatusBadRequest, "INVALID_CREDENTIALS"},
	{ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"},
	{ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
	{ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{ErrAlreadyLiked, http.StatusBadRequest, "ALREADY_LIKED"},
	{ErrNotLiked, http.StatusBadRequest, "NOT_LIKED"},
	{ErrNoLikes, http.StatusBadRequest, "NO_LIKES"},
	{ErrAlreadyFollowing, http.StatusBadRequest, "ALREADY_FOLLOWING"},
	{ErrNotFollowing, http.StatusBadRequest, "NOT_FOLLOWING"},
}

// ToHTTP maps a service error to an Echo HTTP error. A passed deadline becomes 408.
// Unclassified errors become 500 with the underlying message attached for diagnostics.
func ToHTTP(err error) *echo.HTTPError {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	if IsTimeout(err) {
		return echo.NewHTTPError(http.StatusRequestTimeout, ErrorResponse{
			Message: "Request timed out",
			Code:    "REQUEST_TIMEOUT",
		}).SetInternal(err)
	}
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			return echo.NewHTTPError(m.status, ErrorResponse{Message: err.Error(), Code: m.code}).SetInternal(err)
		}
	}
	return echo.NewHTTPError(http.StatusInternalServerError, ErrorResponse{
		Message: "internal server error",
		Code:    "INTERNAL_ERROR",
		Error:   err.Error(),
	}).SetInternal(err)
}

// IsTimeout reports whether err comes from a passed request deadline or a driver timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err)
}

// Validation wraps ErrValidation with a human readable reason.
func Validation(reason string) error {
	return wrap(ErrValidation, reason)
}

type wrapped struct {
	base   error
	reason string
}

func (w *wrapped) Error() string { return w.reason }
func (w *wrapped) Unwrap() error { return w.base }

func wrap(base error, reason string) error {
	return &wrapped{base: base, reason: reason}
}
