// Package commerce reads the storefront catalog from the hosted commerce API.
package commerce

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"installbay/internal/domain"
	"installbay/internal/upstream"
)

type Pagination struct {
	Total       int `json:"total"`
	Count       int `json:"count"`
	PerPage     int `json:"per_page"`
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
}

type ProductPage struct {
	Data []domain.Product `json:"data"`
	Meta struct {
		Pagination Pagination `json:"pagination"`
	} `json:"meta"`
}

type ProductQuery struct {
	Keyword  string
	Featured bool
	Page     int
	Limit    int
}

type Client struct {
	api *upstream.Client
}

// New builds a client rooted at <baseURL>/stores/<storeID>/v3.
func New(baseURL, token, storeID string, timeout time.Duration) *Client {
	return &Client{api: &upstream.Client{
		Name:    "commerce",
		BaseURL: baseURL + "/stores/" + url.PathEscape(storeID) + "/v3",
		Token:   token,
		Timeout: timeout,
	}}
}

func (c *Client) ListProducts(ctx context.Context, pq ProductQuery) (ProductPage, error) {
	q := url.Values{
		"is_visible": {"true"},
		"include":    {"primary_image"},
	}
	if pq.Keyword != "" {
		q.Set("keyword", pq.Keyword)
	}
	if pq.Featured {
		q.Set("is_featured", "true")
	}
	if pq.Page > 0 {
		q.Set("page", strconv.Itoa(pq.Page))
	}
	if pq.Limit > 0 {
		q.Set("limit", strconv.Itoa(pq.Limit))
	}
	var out ProductPage
	err := c.api.GetJSON(ctx, "catalog/products", q, &out)
	return out, err
}

func (c *Client) GetProduct(ctx context.Context, id int) (domain.Product, error) {
	var out struct {
		Data domain.Product `json:"data"`
	}
	q := url.Values{"include": {"variants,primary_image"}}
	err := c.api.GetJSON(ctx, "catalog/products/"+strconv.Itoa(id), q, &out)
	return out.Data, err
}
