package client

import (
	"context"
	"net/http"

	"github.com/Anshulmehra001/BitFlow/core"
)

type endpointEnvelope struct {
	Data struct {
		Endpoint core.WebhookEndpoint `json:"endpoint"`
	} `json:"data"`
}

// CreateWebhook registers a callback URL for a set of events. The response
// carries the signing secret exactly once; store it, the list call redacts it.
func (c *Client) CreateWebhook(ctx context.Context, req core.CreateWebhookRequest) (core.WebhookEndpoint, error) {
	if err := core.ValidateRequest(req); err != nil {
		return core.WebhookEndpoint{}, err
	}
	var out endpointEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/webhooks/endpoints", nil, req, &out); err != nil {
		return core.WebhookEndpoint{}, err
	}
	return out.Data.Endpoint, nil
}

func (c *Client) GetWebhooks(ctx context.Context) ([]core.WebhookEndpoint, error) {
	var out struct {
		Data struct {
			Endpoints []core.WebhookEndpoint `json:"endpoints"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/webhooks/endpoints", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data.Endpoints, nil
}

// UpdateWebhook applies a partial update; nil fields in req are omitted from
// the request body and left untouched.
func (c *Client) UpdateWebhook(
	ctx context.Context,
	endpointID string,
	req core.UpdateWebhookRequest,
) (core.WebhookEndpoint, error) {
	var out endpointEnvelope
	if err := c.do(ctx, http.MethodPut, "/api/webhooks/endpoints/"+pathID(endpointID), nil, req, &out); err != nil {
		return core.WebhookEndpoint{}, err
	}
	return out.Data.Endpoint, nil
}

func (c *Client) DeleteWebhook(ctx context.Context, endpointID string) error {
	return c.do(ctx, http.MethodDelete, "/api/webhooks/endpoints/"+pathID(endpointID), nil, nil, nil)
}

// TestWebhook asks the API to fire a test delivery at the endpoint and
// returns the server's delivery report.
func (c *Client) TestWebhook(ctx context.Context, endpointID string) (map[string]any, error) {
	payload := map[string]string{"endpointId": endpointID}
	var out struct {
		Data struct {
			Result map[string]any `json:"result"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/webhooks/test", nil, payload, &out); err != nil {
		return nil, err
	}
	return out.Data.Result, nil
}
