package services

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"installbay/internal/supabase"
	"installbay/internal/upstream"
	"installbay/internal/validate"
)

// AuthClient is the hosted auth API; *supabase.Auth satisfies it.
type AuthClient interface {
	SignIn(ctx context.Context, email, password string) (supabase.Session, error)
	Refresh(ctx context.Context, refreshToken string) (supabase.Session, error)
	User(ctx context.Context, accessToken string) (supabase.User, error)
	SignOut(ctx context.Context, accessToken string) error
}

// Session is a resolved admin session. Refreshed is set when the tokens
// were rotated and the new pair must be written back to the client.
type Session struct {
	User      supabase.User
	Refreshed *supabase.Session
}

type AuthService struct {
	auth AuthClient
	now  func() time.Time
	skew time.Duration
}

func NewAuthService(auth AuthClient) *AuthService {
	return &AuthService{auth: auth, now: time.Now, skew: 30 * time.Second}
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (supabase.Session, error) {
	email, ok := validate.Email(email)
	if !ok || !validate.Password(password) {
		return supabase.Session{}, ErrBadCreds
	}
	sess, err := s.auth.SignIn(ctx, email, password)
	if rejected(err) {
		return supabase.Session{}, ErrBadCreds
	}
	return sess, err
}

func (s *AuthService) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}
	err := s.auth.SignOut(ctx, accessToken)
	if rejected(err) {
		// already invalid upstream
		return nil
	}
	return err
}

// Resolve turns the cookie pair into a session. (nil, nil) means there is
// no usable session. A non-nil error means the auth service could not be
// asked; callers treat that as no session as well.
func (s *AuthService) Resolve(ctx context.Context, access, refresh string) (*Session, error) {
	if access != "" && !s.expired(access) {
		u, err := s.auth.User(ctx, access)
		switch {
		case err == nil:
			return &Session{User: u}, nil
		case !rejected(err):
			return nil, err
		}
		// rejected: fall through to the refresh token
	}
	if refresh == "" {
		return nil, nil
	}
	ns, err := s.auth.Refresh(ctx, refresh)
	if rejected(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u := ns.User
	if u.ID == "" {
		if u, err = s.auth.User(ctx, ns.AccessToken); err != nil {
			if rejected(err) {
				return nil, nil
			}
			return nil, err
		}
	}
	return &Session{User: u, Refreshed: &ns}, nil
}

// expired reads exp without verifying the signature; the auth service
// verifies the token on every lookup.
func (s *AuthService) expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !s.now().Add(s.skew).Before(exp.Time)
}

func rejected(err error) bool {
	switch upstream.StatusOf(err) {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusUnprocessableEntity:
		return true
	}
	return false
}
