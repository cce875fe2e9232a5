// Package clover is a thin client for the POS merchant API.
package clover

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"installbay/internal/domain"
	"installbay/internal/upstream"
)

// Page is the POS list envelope.
type Page[T any] struct {
	Elements []T   `json:"elements"`
	Href     string `json:"href,omitempty"`
}

type Client struct {
	api *upstream.Client
}

// New builds a client for one merchant: <baseURL>/v3/merchants/<merchantID>.
func New(baseURL, token, merchantID string, timeout time.Duration) *Client {
	return &Client{api: &upstream.Client{
		Name:    "clover",
		BaseURL: baseURL + "/v3/merchants/" + url.PathEscape(merchantID),
		Token:   token,
		Timeout: timeout,
	}}
}

func (c *Client) ListCategories(ctx context.Context) (Page[domain.Category], error) {
	var out Page[domain.Category]
	err := c.api.GetJSON(ctx, "categories", nil, &out)
	return out, err
}

func (c *Client) ListCustomers(ctx context.Context, limit, offset int) (Page[domain.Customer], error) {
	q := url.Values{
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
		"expand": {"emailAddresses,phoneNumbers"},
	}
	var out Page[domain.Customer]
	err := c.api.GetJSON(ctx, "customers", q, &out)
	return out, err
}

func (c *Client) ListItems(ctx context.Context, limit, offset int) (Page[domain.Item], error) {
	q := url.Values{
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
	}
	var out Page[domain.Item]
	err := c.api.GetJSON(ctx, "items", q, &out)
	return out, err
}
