// Package supabase talks to the hosted database project: the PostgREST data
// API under /rest/v1 and the auth API under /auth/v1.
package supabase

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"installbay/internal/upstream"
)

// REST is the data API client. It authenticates with the service-role key,
// so it must only be used server side.
type REST struct {
	api *upstream.Client
}

func NewREST(projectURL, serviceRoleKey string, timeout time.Duration) *REST {
	return &REST{api: &upstream.Client{
		Name:    "supabase",
		BaseURL: projectURL + "/rest/v1",
		Token:   serviceRoleKey,
		Headers: map[string]string{"apikey": serviceRoleKey},
		Timeout: timeout,
	}}
}

// Select reads rows from table into out (a pointer to a slice).
func (r *REST) Select(ctx context.Context, table string, q url.Values, out any) error {
	return r.api.GetJSON(ctx, table, q, out)
}

// Insert creates one row and decodes the stored representation into out.
func (r *REST) Insert(ctx context.Context, table string, row any, out any) error {
	return r.api.Do(ctx, upstream.Request{
		Method:  http.MethodPost,
		Path:    table,
		Body:    row,
		Headers: map[string]string{"Prefer": "return=representation"},
	}, out)
}

// Update patches the rows matching match and decodes them into out.
func (r *REST) Update(ctx context.Context, table string, match url.Values, patch any, out any) error {
	return r.api.Do(ctx, upstream.Request{
		Method:  http.MethodPatch,
		Path:    table,
		Query:   match,
		Body:    patch,
		Headers: map[string]string{"Prefer": "return=representation"},
	}, out)
}

// Eq builds a PostgREST equality filter value.
func Eq(v string) string { return "eq." + v }
