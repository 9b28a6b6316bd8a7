package webhook

import (
	"encoding/json"
	"fmt"

	"github.com/Anshulmehra001/BitFlow/core"
)

// EventCallback receives the event's data map plus the full envelope.
type EventCallback func(data map[string]any, payload core.WebhookPayload)

// PayloadCallback receives every successfully parsed envelope.
type PayloadCallback func(payload core.WebhookPayload)

const eventSlotCount = 6

// Handler verifies inbound webhooks and dispatches them to registered
// callbacks. One slot per event type plus one generic slot; registering
// twice for the same slot keeps only the last callback. Register everything
// before serving traffic: dispatch does not lock the table.
type Handler struct {
	secret  string
	slots   [eventSlotCount]EventCallback
	generic PayloadCallback
}

func NewHandler(secret string) *Handler {
	return &Handler{secret: secret}
}

// Verify checks signature against the raw body exactly as received; see
// the package Verify for the fail-closed contract.
func (h *Handler) Verify(payload []byte, signature string) bool {
	if h == nil {
		return false
	}
	return Verify(h.secret, payload, signature)
}

// Process verifies, parses, and dispatches one webhook delivery.
//
// An invalid signature fails before any parsing and no callback runs. A
// body that does not parse into a complete envelope with a recognized
// event fails as an invalid payload, again with no dispatch. Otherwise the
// event's callback (if registered) fires with (data, envelope), and the
// generic callback (if registered) fires with the envelope regardless of
// whether a specific callback was present. Callback panics are not
// recovered here; the HTTP adapter is the recovery boundary.
func (h *Handler) Process(payload []byte, signature string) (core.WebhookPayload, error) {
	if h == nil {
		return core.WebhookPayload{}, core.NewInvalidSignatureError()
	}
	if !h.Verify(payload, signature) {
		return core.WebhookPayload{}, core.NewInvalidSignatureError()
	}

	envelope, err := parseEnvelope(payload)
	if err != nil {
		return core.WebhookPayload{}, core.NewInvalidPayloadError("Invalid webhook payload", err)
	}

	if index := slotIndex(envelope.Event); index >= 0 {
		if callback := h.slots[index]; callback != nil {
			callback(envelope.Data, envelope)
		}
	}
	if h.generic != nil {
		h.generic(envelope)
	}
	return envelope, nil
}

// OnEvent registers callback for one event type, replacing any previous
// registration for that type. Unrecognized event values are ignored; the
// typed constants in core are the only valid keys.
func (h *Handler) OnEvent(event core.EventType, callback EventCallback) {
	index := slotIndex(event)
	if index < 0 {
		return
	}
	h.slots[index] = callback
}

// OnWebhook registers the generic callback, which fires for every
// successfully processed event. The slot is independent of OnEvent.
func (h *Handler) OnWebhook(callback PayloadCallback) {
	h.generic = callback
}

func (h *Handler) OnStreamCreated(callback EventCallback) {
	h.OnEvent(core.EventStreamCreated, callback)
}

func (h *Handler) OnStreamCancelled(callback EventCallback) {
	h.OnEvent(core.EventStreamCancelled, callback)
}

func (h *Handler) OnStreamCompleted(callback EventCallback) {
	h.OnEvent(core.EventStreamCompleted, callback)
}

func (h *Handler) OnSubscriptionCreated(callback EventCallback) {
	h.OnEvent(core.EventSubscriptionCreated, callback)
}

func (h *Handler) OnSubscriptionCancelled(callback EventCallback) {
	h.OnEvent(core.EventSubscriptionCancelled, callback)
}

func (h *Handler) OnPaymentReceived(callback EventCallback) {
	h.OnEvent(core.EventPaymentReceived, callback)
}

// parseEnvelope extracts {id, event, data, timestamp}, requiring every key
// to be present and the event to belong to the closed set.
func parseEnvelope(payload []byte) (core.WebhookPayload, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return core.WebhookPayload{}, fmt.Errorf("webhook: parse body: %w", err)
	}
	for _, key := range []string{"id", "event", "data", "timestamp"} {
		if _, ok := fields[key]; !ok {
			return core.WebhookPayload{}, fmt.Errorf("webhook: missing %q field", key)
		}
	}

	var envelope core.WebhookPayload
	if err := json.Unmarshal(fields["id"], &envelope.ID); err != nil {
		return core.WebhookPayload{}, fmt.Errorf("webhook: parse id: %w", err)
	}
	var rawEvent string
	if err := json.Unmarshal(fields["event"], &rawEvent); err != nil {
		return core.WebhookPayload{}, fmt.Errorf("webhook: parse event: %w", err)
	}
	event, err := core.ParseEventType(rawEvent)
	if err != nil {
		return core.WebhookPayload{}, err
	}
	envelope.Event = event
	if err := json.Unmarshal(fields["data"], &envelope.Data); err != nil {
		return core.WebhookPayload{}, fmt.Errorf("webhook: parse data: %w", err)
	}
	if err := json.Unmarshal(fields["timestamp"], &envelope.Timestamp); err != nil {
		return core.WebhookPayload{}, fmt.Errorf("webhook: parse timestamp: %w", err)
	}
	return envelope, nil
}

func slotIndex(event core.EventType) int {
	switch event {
	case core.EventStreamCreated:
		return 0
	case core.EventStreamCancelled:
		return 1
	case core.EventStreamCompleted:
		return 2
	case core.EventSubscriptionCreated:
		return 3
	case core.EventSubscriptionCancelled:
		return 4
	case core.EventPaymentReceived:
		return 5
	}
	return -1
}
