package core

import (
	"fmt"
	"strings"
)

// EventType is the closed set of webhook event names BitFlow emits.
type EventType string

const (
	EventStreamCreated         EventType = "stream.created"
	EventStreamCancelled       EventType = "stream.cancelled"
	EventStreamCompleted       EventType = "stream.completed"
	EventSubscriptionCreated   EventType = "subscription.created"
	EventSubscriptionCancelled EventType = "subscription.cancelled"
	EventPaymentReceived       EventType = "payment.received"
)

func EventTypes() []EventType {
	return []EventType{
		EventStreamCreated,
		EventStreamCancelled,
		EventStreamCompleted,
		EventSubscriptionCreated,
		EventSubscriptionCancelled,
		EventPaymentReceived,
	}
}

func (e EventType) Valid() bool {
	switch e {
	case EventStreamCreated,
		EventStreamCancelled,
		EventStreamCompleted,
		EventSubscriptionCreated,
		EventSubscriptionCancelled,
		EventPaymentReceived:
		return true
	}
	return false
}

func (e EventType) String() string {
	return string(e)
}

func ParseEventType(value string) (EventType, error) {
	event := EventType(strings.TrimSpace(value))
	if !event.Valid() {
		return "", fmt.Errorf("core: unrecognized event type %q", value)
	}
	return event, nil
}

type StreamStatus string

const (
	StreamStatusActive    StreamStatus = "active"
	StreamStatusCompleted StreamStatus = "completed"
	StreamStatusCancelled StreamStatus = "cancelled"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
)

// Stream mirrors a server-side payment stream. The SDK never computes stream
// state locally; every field is a snapshot of what the API returned.
// Monetary fields are decimal strings end to end.
type Stream struct {
	ID              string `json:"id"`
	Sender          string `json:"sender"`
	Recipient       string `json:"recipient"`
	TotalAmount     string `json:"totalAmount"`
	RatePerSecond   string `json:"ratePerSecond"`
	StartTime       int64  `json:"startTime"`
	EndTime         int64  `json:"endTime"`
	WithdrawnAmount string `json:"withdrawnAmount"`
	IsActive        bool   `json:"isActive"`
}

type SubscriptionPlan struct {
	ID             string  `json:"id"`
	Provider       string  `json:"provider"`
	Name           string  `json:"name"`
	Description    *string `json:"description,omitempty"`
	Price          string  `json:"price"`
	Interval       int     `json:"interval"`
	MaxSubscribers int     `json:"maxSubscribers"`
}

type Subscription struct {
	ID         string             `json:"id"`
	PlanID     string             `json:"planId"`
	Subscriber string             `json:"subscriber"`
	Provider   string             `json:"provider"`
	StreamID   string             `json:"streamId"`
	StartTime  int64              `json:"startTime"`
	EndTime    int64              `json:"endTime"`
	AutoRenew  bool               `json:"autoRenew"`
	Status     SubscriptionStatus `json:"status"`
}

type WebhookEndpoint struct {
	ID          string      `json:"id"`
	URL         string      `json:"url"`
	Events      []EventType `json:"events"`
	Description *string     `json:"description,omitempty"`
	Secret      string      `json:"secret"`
	IsActive    bool        `json:"isActive"`
	CreatedAt   string      `json:"createdAt"`
}

// WebhookPayload is the envelope BitFlow POSTs to a registered endpoint.
// It is only ever constructed by deserializing a verified request body.
type WebhookPayload struct {
	ID        string         `json:"id"`
	Event     EventType      `json:"event"`
	Data      map[string]any `json:"data"`
	Timestamp string         `json:"timestamp"`
}

type CreateStreamRequest struct {
	Recipient string `json:"recipient" validate:"required"`
	Amount    string `json:"amount" validate:"required"`
	Rate      string `json:"rate" validate:"required"`
	Duration  int    `json:"duration" validate:"gt=0"`
}

type CreateSubscriptionPlanRequest struct {
	Name           string  `json:"name" validate:"required"`
	Description    *string `json:"description,omitempty"`
	Price          string  `json:"price" validate:"required"`
	Interval       int     `json:"interval" validate:"gt=0"`
	MaxSubscribers *int    `json:"maxSubscribers,omitempty"`
}

type CreateSubscriptionRequest struct {
	PlanID    string `json:"planId" validate:"required"`
	Duration  int    `json:"duration" validate:"gt=0"`
	AutoRenew *bool  `json:"autoRenew,omitempty"`
}

type CreateWebhookRequest struct {
	URL         string      `json:"url" validate:"required,url"`
	Events      []EventType `json:"events" validate:"required,min=1"`
	Description *string     `json:"description,omitempty"`
}

// UpdateWebhookRequest carries a partial update; nil fields are left
// untouched server-side and omitted from the request body entirely.
type UpdateWebhookRequest struct {
	URL      *string     `json:"url,omitempty"`
	Events   []EventType `json:"events,omitempty"`
	IsActive *bool       `json:"isActive,omitempty"`
}

// StreamFilters narrows GetStreams results. Unset fields are omitted from
// the query string, not sent as empty values.
type StreamFilters struct {
	Status *StreamStatus
	Limit  *int
	Offset *int
}

type StreamsPage struct {
	Streams    []Stream       `json:"streams"`
	Pagination map[string]int `json:"pagination"`
}
