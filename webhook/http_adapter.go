package webhook

import (
	"encoding/json"
	"io"
	"net/http"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/Anshulmehra001/BitFlow/core"
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw request body.
const SignatureHeader = "X-BitFlow-Signature"

const maxWebhookBodyBytes int64 = 1 << 20

type HTTPOption func(*httpAdapter)

func WithLogger(logger core.Logger) HTTPOption {
	return func(a *httpAdapter) {
		a.logger = logger
	}
}

type httpAdapter struct {
	handler *Handler
	logger  core.Logger
}

// HTTPHandler is the one neutral framework binding: extract the signature
// header and raw body, call Process, and translate the outcome.
//
//	success                  -> 200 {"received": true}
//	missing signature header -> 400
//	verification/parse error -> 400 with the error message
//	callback panic           -> 500
//
// Other frameworks should be thin translations of the same Process call,
// not additional bindings here.
func HTTPHandler(handler *Handler, options ...HTTPOption) http.Handler {
	adapter := &httpAdapter{handler: handler}
	for _, option := range options {
		if option == nil {
			continue
		}
		option(adapter)
	}
	_, logger := glog.Resolve("bitflow.webhook", nil, adapter.logger)
	adapter.logger = glog.Ensure(logger)
	return adapter
}

func (a *httpAdapter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "Method not allowed"})
		return
	}

	signature := r.Header.Get(SignatureHeader)
	if signature == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Missing signature header"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodyBytes+1))
	if err != nil {
		a.logger.Error("webhook body read failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Internal server error"})
		return
	}
	if int64(len(body)) > maxWebhookBodyBytes {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Payload too large"})
		return
	}

	defer func() {
		if cause := recover(); cause != nil {
			a.logger.Error("webhook callback panicked", "cause", cause)
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Internal server error"})
		}
	}()

	payload, err := a.handler.Process(body, signature)
	if err != nil {
		a.logger.Info("webhook rejected", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": core.ErrorMessage(err)})
		return
	}

	a.logger.Info("webhook processed", "event", payload.Event.String(), "id", payload.ID)
	writeJSON(w, http.StatusOK, map[string]any{"received": true})
}

func writeJSON(w http.ResponseWriter, statusCode int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
