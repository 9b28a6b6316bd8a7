package core

import (
	"net/http"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ErrCodeAuthentication   = "AUTHENTICATION_ERROR"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeRateLimit        = "RATE_LIMIT_EXCEEDED"
	ErrCodeNetwork          = "NETWORK_ERROR"
	ErrCodeAPI              = "API_ERROR"
	ErrCodeInvalidSignature = "INVALID_SIGNATURE"
	ErrCodeInvalidPayload   = "INVALID_PAYLOAD"
)

const metadataRetryAfterSeconds = "retry_after_s"

func NewAuthenticationError(message string) *goerrors.Error {
	if strings.TrimSpace(message) == "" {
		message = "Authentication failed"
	}
	return goerrors.New(message, goerrors.CategoryAuth).
		WithCode(http.StatusUnauthorized).
		WithTextCode(ErrCodeAuthentication)
}

func NewValidationError(message string) *goerrors.Error {
	if strings.TrimSpace(message) == "" {
		message = "Bad request"
	}
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrCodeValidation)
}

func NewNotFoundError(message string) *goerrors.Error {
	if strings.TrimSpace(message) == "" {
		message = "Resource not found"
	}
	return goerrors.New(message, goerrors.CategoryNotFound).
		WithCode(http.StatusNotFound).
		WithTextCode(ErrCodeNotFound)
}

// NewRateLimitError carries the server's Retry-After hint, when present, as
// whole seconds in error metadata. Use RetryAfter to read it back.
func NewRateLimitError(message string, retryAfter *time.Duration) *goerrors.Error {
	if strings.TrimSpace(message) == "" {
		message = "Rate limit exceeded"
	}
	err := goerrors.New(message, goerrors.CategoryRateLimit).
		WithCode(http.StatusTooManyRequests).
		WithTextCode(ErrCodeRateLimit)
	if retryAfter != nil && *retryAfter > 0 {
		err.WithMetadata(map[string]any{
			metadataRetryAfterSeconds: int64(retryAfter.Seconds()),
		})
	}
	return err
}

// NewNetworkError wraps a transport-level failure (connection, DNS, timeout).
// Network errors carry no HTTP status; no response was received.
func NewNetworkError(message string, cause error) *goerrors.Error {
	if strings.TrimSpace(message) == "" {
		message = "Network request failed"
	}
	if cause == nil {
		return goerrors.New(message, goerrors.CategoryExternal).
			WithTextCode(ErrCodeNetwork)
	}
	return goerrors.Wrap(cause, goerrors.CategoryExternal, message).
		WithTextCode(ErrCodeNetwork)
}

// NewAPIError covers every remaining non-2xx status. remoteCode is the
// machine code the API included in its error body, when it did.
func NewAPIError(message string, remoteCode string, statusCode int) *goerrors.Error {
	if strings.TrimSpace(message) == "" {
		message = "API request failed"
	}
	err := goerrors.New(message, goerrors.CategoryExternal).
		WithTextCode(ErrCodeAPI)
	if statusCode > 0 {
		err = err.WithCode(statusCode)
	}
	if strings.TrimSpace(remoteCode) != "" {
		err.WithMetadata(map[string]any{"remote_code": strings.TrimSpace(remoteCode)})
	}
	return err
}

func NewInvalidSignatureError() *goerrors.Error {
	return goerrors.New("Invalid webhook signature", goerrors.CategoryAuth).
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrCodeInvalidSignature)
}

func NewInvalidPayloadError(message string, cause error) *goerrors.Error {
	if strings.TrimSpace(message) == "" {
		message = "Invalid webhook payload"
	}
	if cause == nil {
		return goerrors.New(message, goerrors.CategoryBadInput).
			WithCode(http.StatusBadRequest).
			WithTextCode(ErrCodeInvalidPayload)
	}
	return goerrors.Wrap(cause, goerrors.CategoryBadInput, message).
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrCodeInvalidPayload)
}

func IsAuthentication(err error) bool { return hasTextCode(err, ErrCodeAuthentication) }
func IsValidation(err error) bool     { return hasTextCode(err, ErrCodeValidation) }
func IsNotFound(err error) bool       { return hasTextCode(err, ErrCodeNotFound) }
func IsRateLimit(err error) bool      { return hasTextCode(err, ErrCodeRateLimit) }
func IsNetwork(err error) bool        { return hasTextCode(err, ErrCodeNetwork) }

func IsInvalidSignature(err error) bool { return hasTextCode(err, ErrCodeInvalidSignature) }
func IsInvalidPayload(err error) bool   { return hasTextCode(err, ErrCodeInvalidPayload) }

// RetryAfter reports the Retry-After hint attached to a rate-limit error.
// The second return is false when the server sent no hint.
func RetryAfter(err error) (time.Duration, bool) {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return 0, false
	}
	raw, ok := richErr.Metadata[metadataRetryAfterSeconds]
	if !ok {
		return 0, false
	}
	switch seconds := raw.(type) {
	case int64:
		return time.Duration(seconds) * time.Second, true
	case int:
		return time.Duration(seconds) * time.Second, true
	case float64:
		return time.Duration(seconds) * time.Second, true
	}
	return 0, false
}

// ErrorMessage extracts the human-readable message regardless of whether the
// error went through the SDK taxonomy.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && strings.TrimSpace(richErr.Message) != "" {
		return richErr.Message
	}
	return err.Error()
}

func hasTextCode(err error, textCode string) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == textCode
}
