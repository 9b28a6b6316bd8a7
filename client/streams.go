package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Anshulmehra001/BitFlow/core"
)

type streamEnvelope struct {
	Data struct {
		Stream core.Stream `json:"stream"`
	} `json:"data"`
}

// CreateStream opens a new payment stream from the authenticated sender.
func (c *Client) CreateStream(ctx context.Context, req core.CreateStreamRequest) (core.Stream, error) {
	if err := core.ValidateRequest(req); err != nil {
		return core.Stream{}, err
	}
	var out streamEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/streams", nil, req, &out); err != nil {
		return core.Stream{}, err
	}
	return out.Data.Stream, nil
}

// GetStreams lists the caller's streams. A nil filter returns everything the
// API pages by default; set fields are serialized, unset fields are omitted.
func (c *Client) GetStreams(ctx context.Context, filters *core.StreamFilters) (core.StreamsPage, error) {
	query := map[string]string{}
	if filters != nil {
		if filters.Status != nil {
			query["status"] = string(*filters.Status)
		}
		if filters.Limit != nil {
			query["limit"] = strconv.Itoa(*filters.Limit)
		}
		if filters.Offset != nil {
			query["offset"] = strconv.Itoa(*filters.Offset)
		}
	}
	var out core.StreamsPage
	if err := c.do(ctx, http.MethodGet, "/api/streams", query, nil, &out); err != nil {
		return core.StreamsPage{}, err
	}
	return out, nil
}

func (c *Client) GetStream(ctx context.Context, streamID string) (core.Stream, error) {
	var out streamEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/streams/"+pathID(streamID), nil, nil, &out); err != nil {
		return core.Stream{}, err
	}
	return out.Data.Stream, nil
}

func (c *Client) CancelStream(ctx context.Context, streamID string) error {
	return c.do(ctx, http.MethodPost, "/api/streams/"+pathID(streamID)+"/cancel", nil, nil, nil)
}

// WithdrawFromStream withdraws the accrued balance and returns the amount
// the server released, as a decimal string.
func (c *Client) WithdrawFromStream(ctx context.Context, streamID string) (string, error) {
	var out struct {
		Data struct {
			WithdrawnAmount string `json:"withdrawnAmount"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/streams/"+pathID(streamID)+"/withdraw", nil, nil, &out); err != nil {
		return "", err
	}
	return out.Data.WithdrawnAmount, nil
}
