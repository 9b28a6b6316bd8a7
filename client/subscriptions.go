package client

import (
	"context"
	"net/http"
	"strings"

	"github.com/Anshulmehra001/BitFlow/core"
)

func (c *Client) CreateSubscriptionPlan(
	ctx context.Context,
	req core.CreateSubscriptionPlanRequest,
) (core.SubscriptionPlan, error) {
	if err := core.ValidateRequest(req); err != nil {
		return core.SubscriptionPlan{}, err
	}
	var out struct {
		Data struct {
			Plan core.SubscriptionPlan `json:"plan"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/subscriptions/plans", nil, req, &out); err != nil {
		return core.SubscriptionPlan{}, err
	}
	return out.Data.Plan, nil
}

// GetSubscriptionPlans lists plans, optionally filtered to one provider.
// An empty provider lists every plan.
func (c *Client) GetSubscriptionPlans(ctx context.Context, provider string) ([]core.SubscriptionPlan, error) {
	query := map[string]string{}
	if provider = strings.TrimSpace(provider); provider != "" {
		query["provider"] = provider
	}
	var out struct {
		Data struct {
			Plans []core.SubscriptionPlan `json:"plans"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/subscriptions/plans", query, nil, &out); err != nil {
		return nil, err
	}
	return out.Data.Plans, nil
}

// Subscribe enrolls the caller in a plan and returns the new subscription id.
func (c *Client) Subscribe(ctx context.Context, req core.CreateSubscriptionRequest) (string, error) {
	if err := core.ValidateRequest(req); err != nil {
		return "", err
	}
	var out struct {
		Data struct {
			SubscriptionID string `json:"subscriptionId"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/subscriptions", nil, req, &out); err != nil {
		return "", err
	}
	return out.Data.SubscriptionID, nil
}

func (c *Client) GetSubscriptions(ctx context.Context) ([]core.Subscription, error) {
	var out struct {
		Data struct {
			Subscriptions []core.Subscription `json:"subscriptions"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/subscriptions", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data.Subscriptions, nil
}

func (c *Client) CancelSubscription(ctx context.Context, subscriptionID string) error {
	return c.do(ctx, http.MethodPost, "/api/subscriptions/"+pathID(subscriptionID)+"/cancel", nil, nil, nil)
}
