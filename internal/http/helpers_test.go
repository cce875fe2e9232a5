package handlers_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"installbay/internal/clover"
	"installbay/internal/commerce"
	"installbay/internal/http/handlers"
	applog "installbay/internal/log"
	"installbay/internal/repos"
	"installbay/internal/services"
	"installbay/internal/supabase"
	"installbay/internal/upstream"
)

// stubAuth is an in-process hosted auth service. Access tokens map to users;
// refresh tokens map to the session a refresh returns.
type stubAuth struct {
	mu       sync.Mutex
	users    map[string]supabase.User
	sessions map[string]supabase.Session
	down     bool
	calls    int
}

func newStubAuth() *stubAuth {
	return &stubAuth{users: map[string]supabase.User{}, sessions: map[string]supabase.Session{}}
}

func (s *stubAuth) outage() error {
	return &upstream.APIError{Vendor: "supabase-auth", Method: "GET", Path: "user", Err: context.DeadlineExceeded}
}

func (s *stubAuth) SignIn(_ context.Context, email, password string) (supabase.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.down {
		return supabase.Session{}, s.outage()
	}
	if email != "admin@shop.test" || password != "correct-horse" {
		return supabase.Session{}, &upstream.APIError{Vendor: "supabase-auth", Status: http.StatusBadRequest, Body: `{"error":"invalid_grant"}`}
	}
	u := supabase.User{ID: "u-admin", Email: email}
	s.users["good-token"] = u
	return supabase.Session{AccessToken: "good-token", RefreshToken: "good-refresh", ExpiresIn: 3600, User: u}, nil
}

func (s *stubAuth) Refresh(_ context.Context, refresh string) (supabase.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.down {
		return supabase.Session{}, s.outage()
	}
	sess, ok := s.sessions[refresh]
	if !ok {
		return supabase.Session{}, &upstream.APIError{Vendor: "supabase-auth", Status: http.StatusBadRequest}
	}
	return sess, nil
}

func (s *stubAuth) User(_ context.Context, access string) (supabase.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.down {
		return supabase.User{}, s.outage()
	}
	u, ok := s.users[access]
	if !ok {
		return supabase.User{}, &upstream.APIError{Vendor: "supabase-auth", Status: http.StatusUnauthorized}
	}
	return u, nil
}

func (s *stubAuth) SignOut(context.Context, string) error { return nil }

func (s *stubAuth) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type testEnv struct {
	app      *fiber.App
	auth     *stubAuth
	bookings *repos.SQLBookingRepo
	inquiry  *repos.SQLInquiryRepo
}

type envOpt func(*handlers.Sources)

func withPOS(srv *httptest.Server) envOpt {
	return func(s *handlers.Sources) {
		s.POS = upstream.Ready[services.POS](clover.New(srv.URL, "tok", "M1", 2*time.Second))
	}
}

func withCatalog(srv *httptest.Server) envOpt {
	return func(s *handlers.Sources) {
		s.Catalog = upstream.Ready[services.Catalog](commerce.New(srv.URL, "tok", "store1", 2*time.Second))
	}
}

func newEnv(t *testing.T, opts ...envOpt) *testEnv {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	env := &testEnv{
		auth:     newStubAuth(),
		bookings: repos.NewSQLBookingRepo(db),
		inquiry:  repos.NewSQLInquiryRepo(db),
	}
	src := handlers.Sources{
		POS:       upstream.Unavailable[services.POS]("CLOVER_API_TOKEN, CLOVER_MERCHANT_ID not set"),
		Catalog:   upstream.Unavailable[services.Catalog]("COMMERCE_STORE_ID, COMMERCE_API_TOKEN not set"),
		Bookings:  env.bookings,
		Inquiries: env.inquiry,
		Auth:      env.auth,
	}
	for _, o := range opts {
		o(&src)
	}
	env.app = handlers.NewApp(handlers.NewDeps(src, false), handlers.Options{
		Views:     handlers.NewViews("../../web/templates", false),
		GlobalMax: 1000,
	})
	return env
}

func (e *testEnv) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL, err)
	}
	b, _ := io.ReadAll(resp.Body)
	return resp, string(b)
}

func (e *testEnv) get(t *testing.T, path string, cookies ...*http.Cookie) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return e.do(t, req)
}

// csrf fetches a page to obtain the csrf cookie for the next form post.
func (e *testEnv) csrf(t *testing.T, page string, cookies ...*http.Cookie) string {
	t.Helper()
	resp, _ := e.get(t, page, cookies...)
	tok := cookieValue(resp, "csrf_")
	if tok == "" {
		t.Fatalf("csrf token missing on %s", page)
	}
	return tok
}

func (e *testEnv) post(t *testing.T, path, csrfTok string, form url.Values, cookies ...*http.Cookie) (*http.Response, string) {
	t.Helper()
	form.Set("csrf", csrfTok)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return e.do(t, req)
}

func cookieValue(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func session(token string) *http.Cookie {
	return &http.Cookie{Name: "sb-access-token", Value: token}
}

// captureLogs swaps the process logger for an observer for the test.
func captureLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	restore := applog.Use(zap.New(core))
	t.Cleanup(restore)
	return logs
}

var envAdmin = supabase.User{ID: "u-admin", Email: "admin@shop.test"}
