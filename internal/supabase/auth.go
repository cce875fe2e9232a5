package supabase

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"installbay/internal/upstream"
)

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session is the token pair issued by the auth service.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	User         User   `json:"user"`
}

// Auth is the hosted-auth client. Calls on behalf of a user pass the user's
// access token; everything else carries the public anon key.
type Auth struct {
	api *upstream.Client
}

func NewAuth(projectURL, anonKey string, timeout time.Duration) *Auth {
	return &Auth{api: &upstream.Client{
		Name:    "supabase-auth",
		BaseURL: projectURL + "/auth/v1",
		Token:   anonKey,
		Headers: map[string]string{"apikey": anonKey},
		Timeout: timeout,
	}}
}

func (a *Auth) SignIn(ctx context.Context, email, password string) (Session, error) {
	var out Session
	err := a.api.Do(ctx, upstream.Request{
		Method: http.MethodPost,
		Path:   "token",
		Query:  url.Values{"grant_type": {"password"}},
		Body:   map[string]string{"email": email, "password": password},
	}, &out)
	return out, err
}

func (a *Auth) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	var out Session
	err := a.api.Do(ctx, upstream.Request{
		Method: http.MethodPost,
		Path:   "token",
		Query:  url.Values{"grant_type": {"refresh_token"}},
		Body:   map[string]string{"refresh_token": refreshToken},
	}, &out)
	return out, err
}

func (a *Auth) User(ctx context.Context, accessToken string) (User, error) {
	var out User
	err := a.api.Do(ctx, upstream.Request{
		Method:  http.MethodGet,
		Path:    "user",
		Headers: map[string]string{"Authorization": "Bearer " + accessToken},
	}, &out)
	return out, err
}

func (a *Auth) SignOut(ctx context.Context, accessToken string) error {
	return a.api.Do(ctx, upstream.Request{
		Method:  http.MethodPost,
		Path:    "logout",
		Headers: map[string]string{"Authorization": "Bearer " + accessToken},
	}, nil)
}
