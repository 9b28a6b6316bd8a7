package core

import (
	"encoding/json"
	"testing"
)

func TestStream_JSONRoundTrip(t *testing.T) {
	body := []byte(`{
		"id": "stream_1",
		"sender": "0xsender",
		"recipient": "0xrecipient",
		"totalAmount": "1000",
		"ratePerSecond": "0.01",
		"startTime": 1700000000,
		"endTime": 1700100000,
		"withdrawnAmount": "250",
		"isActive": true
	}`)

	var stream Stream
	if err := json.Unmarshal(body, &stream); err != nil {
		t.Fatalf("unmarshal stream: %v", err)
	}
	if stream.ID != "stream_1" {
		t.Fatalf("expected id stream_1, got %q", stream.ID)
	}
	if stream.Sender != "0xsender" || stream.Recipient != "0xrecipient" {
		t.Fatalf("unexpected parties: %q -> %q", stream.Sender, stream.Recipient)
	}
	if stream.TotalAmount != "1000" || stream.RatePerSecond != "0.01" || stream.WithdrawnAmount != "250" {
		t.Fatalf("amounts must stay decimal strings, got %+v", stream)
	}
	if stream.StartTime != 1700000000 || stream.EndTime != 1700100000 {
		t.Fatalf("unexpected times: %d -> %d", stream.StartTime, stream.EndTime)
	}
	if !stream.IsActive {
		t.Fatalf("expected active stream")
	}

	encoded, err := json.Marshal(stream)
	if err != nil {
		t.Fatalf("marshal stream: %v", err)
	}
	var again Stream
	if err := json.Unmarshal(encoded, &again); err != nil {
		t.Fatalf("unmarshal re-encoded stream: %v", err)
	}
	if again != stream {
		t.Fatalf("round trip changed values: %+v vs %+v", again, stream)
	}
}

func TestParseEventType(t *testing.T) {
	for _, event := range EventTypes() {
		parsed, err := ParseEventType(string(event))
		if err != nil {
			t.Fatalf("parse %q: %v", event, err)
		}
		if parsed != event {
			t.Fatalf("expected %q, got %q", event, parsed)
		}
	}

	if _, err := ParseEventType("stream.exploded"); err == nil {
		t.Fatalf("expected unrecognized event to fail")
	}
	if _, err := ParseEventType(""); err == nil {
		t.Fatalf("expected empty event to fail")
	}
}

func TestEventType_Valid(t *testing.T) {
	if EventType("payment.received") != EventPaymentReceived {
		t.Fatalf("expected literal to match constant")
	}
	if EventType("Stream.Created").Valid() {
		t.Fatalf("event names are case sensitive")
	}
}

func TestValidateRequest_CreateStream(t *testing.T) {
	valid := CreateStreamRequest{
		Recipient: "0xrecipient",
		Amount:    "1000",
		Rate:      "0.01",
		Duration:  3600,
	}
	if err := ValidateRequest(valid); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	missing := CreateStreamRequest{Amount: "1000", Rate: "0.01", Duration: 3600}
	err := ValidateRequest(missing)
	if err == nil {
		t.Fatalf("expected missing recipient to fail validation")
	}
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	zeroDuration := valid
	zeroDuration.Duration = 0
	if err := ValidateRequest(zeroDuration); err == nil {
		t.Fatalf("expected zero duration to fail validation")
	}
}
