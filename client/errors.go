package client

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/Anshulmehra001/BitFlow/core"
)

// remoteErrorBody is the error envelope the API wraps non-2xx responses in.
type remoteErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// errorFromResponse maps a non-2xx response to the SDK error taxonomy.
func errorFromResponse(res core.TransportResponse) error {
	switch res.StatusCode {
	case http.StatusUnauthorized:
		return core.NewAuthenticationError("Invalid API key")
	case http.StatusBadRequest:
		message, _ := remoteErrorDetails(res.Body)
		return core.NewValidationError(message)
	case http.StatusNotFound:
		message, _ := remoteErrorDetails(res.Body)
		return core.NewNotFoundError(message)
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(res.Headers)
		return core.NewRateLimitError("Rate limit exceeded", retryAfter)
	default:
		message, code := remoteErrorDetails(res.Body)
		return core.NewAPIError(message, code, res.StatusCode)
	}
}

// wrapTransportFailure classifies adapter errors: request-shaping failures
// stay validation errors, everything else surfaces as a network failure.
func wrapTransportFailure(err error) error {
	if err == nil {
		return nil
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		switch richErr.TextCode {
		case core.ErrCodeValidation, core.ErrCodeNetwork:
			return richErr
		}
	}
	return core.NewNetworkError("Network request failed", err)
}

func remoteErrorDetails(body []byte) (string, string) {
	if len(body) == 0 {
		return "", ""
	}
	var envelope remoteErrorBody
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", ""
	}
	return strings.TrimSpace(envelope.Error.Message), strings.TrimSpace(envelope.Error.Code)
}

// parseRetryAfter reads the Retry-After header as either delta-seconds or an
// HTTP date. Absent, unparseable, or non-positive values yield nil.
func parseRetryAfter(headers map[string]string) *time.Duration {
	raw := headerValue(headers, "Retry-After")
	if raw == "" {
		return nil
	}
	if seconds, err := strconv.Atoi(raw); err == nil {
		if seconds <= 0 {
			return nil
		}
		retryAfter := time.Duration(seconds) * time.Second
		return &retryAfter
	}
	retryAt, err := httpDate(raw)
	if err != nil {
		return nil
	}
	now := time.Now().UTC()
	if !retryAt.After(now) {
		return nil
	}
	retryAfter := retryAt.Sub(now)
	return &retryAfter
}

func httpDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if parsed, err := time.Parse(time.RFC1123, value); err == nil {
		return parsed.UTC(), nil
	}
	parsed, err := time.Parse(time.RFC1123Z, value)
	if err != nil {
		return time.Time{}, err
	}
	return parsed.UTC(), nil
}

func headerValue(headers map[string]string, key string) string {
	if len(headers) == 0 {
		return ""
	}
	for existing, value := range headers {
		if strings.EqualFold(strings.TrimSpace(existing), strings.TrimSpace(key)) {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
