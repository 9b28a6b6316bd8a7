package client

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Anshulmehra001/BitFlow/core"
)

func TestCreateSubscriptionPlan(t *testing.T) {
	adapter := &fakeAdapter{Scripts: []fakeScript{
		scriptJSON(201, `{
			"data": {
				"plan": {
					"id": "plan_1",
					"provider": "0xprovider",
					"name": "Pro",
					"price": "9.99",
					"interval": 2592000,
					"maxSubscribers": 100
				}
			}
		}`),
	}}
	c := newTestClient(t, adapter)

	description := "Monthly pro tier"
	plan, err := c.CreateSubscriptionPlan(context.Background(), core.CreateSubscriptionPlanRequest{
		Name:        "Pro",
		Description: &description,
		Price:       "9.99",
		Interval:    2592000,
	})
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}
	if plan.ID != "plan_1" || plan.Price != "9.99" {
		t.Fatalf("unexpected plan %+v", plan)
	}

	var body map[string]any
	if err := json.Unmarshal(adapter.Requests[0].Body, &body); err != nil {
		t.Fatalf("decode request body: %v", err)
	}
	if body["description"] != "Monthly pro tier" {
		t.Fatalf("expected description to be sent, got %v", body)
	}
	if _, present := body["maxSubscribers"]; present {
		t.Fatalf("unset maxSubscribers must be omitted, got %v", body)
	}
}

func TestCreateSubscriptionPlan_RequiresName(t *testing.T) {
	adapter := &fakeAdapter{}
	c := newTestClient(t, adapter)

	_, err := c.CreateSubscriptionPlan(context.Background(), core.CreateSubscriptionPlanRequest{
		Price:    "9.99",
		Interval: 2592000,
	})
	if !core.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(adapter.Requests) != 0 {
		t.Fatalf("invalid request must not reach the transport")
	}
}

func TestGetSubscriptionPlans_ProviderFilter(t *testing.T) {
	adapter := &fakeAdapter{Scripts: []fakeScript{
		scriptJSON(200, `{"data":{"plans":[{"id":"plan_1"},{"id":"plan_2"}]}}`),
		scriptJSON(200, `{"data":{"plans":[]}}`),
	}}
	c := newTestClient(t, adapter)

	plans, err := c.GetSubscriptionPlans(context.Background(), "0xprovider")
	if err != nil {
		t.Fatalf("get plans: %v", err)
	}
	if len(plans) != 2 {
		t.Fatalf("expected 2 plans, got %d", len(plans))
	}
	if got := adapter.Requests[0].Query["provider"]; got != "0xprovider" {
		t.Fatalf("expected provider filter, got %v", adapter.Requests[0].Query)
	}

	if _, err := c.GetSubscriptionPlans(context.Background(), "  "); err != nil {
		t.Fatalf("get plans: %v", err)
	}
	if query := adapter.Requests[1].Query; len(query) != 0 {
		t.Fatalf("blank provider must not be sent, got %v", query)
	}
}

func TestSubscribe(t *testing.T) {
	adapter := &fakeAdapter{Scripts: []fakeScript{
		scriptJSON(201, `{"data":{"subscriptionId":"sub_1"}}`),
	}}
	c := newTestClient(t, adapter)

	autoRenew := true
	subscriptionID, err := c.Subscribe(context.Background(), core.CreateSubscriptionRequest{
		PlanID:    "plan_1",
		Duration:  2592000,
		AutoRenew: &autoRenew,
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if subscriptionID != "sub_1" {
		t.Fatalf("unexpected subscription id %q", subscriptionID)
	}

	var body map[string]any
	if err := json.Unmarshal(adapter.Requests[0].Body, &body); err != nil {
		t.Fatalf("decode request body: %v", err)
	}
	if body["planId"] != "plan_1" || body["autoRenew"] != true {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestGetSubscriptions(t *testing.T) {
	adapter := &fakeAdapter{Scripts: []fakeScript{
		scriptJSON(200, `{
			"data": {
				"subscriptions": [{
					"id": "sub_1",
					"planId": "plan_1",
					"status": "active",
					"autoRenew": true
				}]
			}
		}`),
	}}
	c := newTestClient(t, adapter)

	subscriptions, err := c.GetSubscriptions(context.Background())
	if err != nil {
		t.Fatalf("get subscriptions: %v", err)
	}
	if len(subscriptions) != 1 {
		t.Fatalf("expected 1 subscription, got %d", len(subscriptions))
	}
	if subscriptions[0].Status != core.SubscriptionStatusActive || !subscriptions[0].AutoRenew {
		t.Fatalf("unexpected subscription %+v", subscriptions[0])
	}
}

func TestCancelSubscription(t *testing.T) {
	adapter := &fakeAdapter{Scripts: []fakeScript{
		scriptJSON(200, `{}`),
	}}
	c := newTestClient(t, adapter)

	if err := c.CancelSubscription(context.Background(), "sub_1"); err != nil {
		t.Fatalf("cancel subscription: %v", err)
	}
	sent := adapter.Requests[0]
	if sent.Method != "POST" || sent.URL != "https://api.bitflow.dev/api/subscriptions/sub_1/cancel" {
		t.Fatalf("unexpected request %s %s", sent.Method, sent.URL)
	}
}
