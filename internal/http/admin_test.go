package handlers_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"installbay/internal/domain"
)

func seedBooking(t *testing.T, env *testEnv, id string) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, env.bookings.Create(context.Background(), &domain.Booking{
		ID: id, CustomerName: "Dana", CustomerEmail: "dana@example.com",
		ServiceType: "Speaker replacement", ServicePrice: 9999, ServiceDuration: 60,
		ScheduledDate: "2026-11-02", ScheduledTime: "10:30",
		Status: domain.BookingPending, CreatedAt: now, UpdatedAt: now,
	}))
}

func signedIn(env *testEnv) *http.Cookie {
	env.auth.users["good-token"] = envAdmin
	return session("good-token")
}

func TestLoginSuccessFailAndThrottle(t *testing.T) {
	logs := captureLogs(t)
	env := newEnv(t)
	tok := env.csrf(t, "/admin/login")

	resp, body := env.post(t, "/admin/login", tok, url.Values{"email": {"admin@shop.test"}, "password": {"wrong-pass"}})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Invalid email or password")
	assert.Equal(t, 1, logs.FilterMessage("auth.login.fail").Len())

	resp, _ = env.post(t, "/admin/login", tok, url.Values{"email": {"admin@shop.test"}, "password": {"correct-horse"}})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin", resp.Header.Get("Location"))
	assert.Equal(t, "good-token", cookieValue(resp, "sb-access-token"))
	assert.Equal(t, "good-refresh", cookieValue(resp, "sb-refresh-token"))
	assert.Equal(t, 1, logs.FilterMessage("auth.login.success").Len())

	var last int
	for i := 0; i < 5; i++ {
		resp, _ = env.post(t, "/admin/login", tok, url.Values{"email": {"admin@shop.test"}, "password": {"wrong-pass"}})
		last = resp.StatusCode
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestLoginWhenAuthIsDown(t *testing.T) {
	env := newEnv(t)
	env.auth.down = true
	tok := env.csrf(t, "/admin/login")

	resp, body := env.post(t, "/admin/login", tok, url.Values{"email": {"admin@shop.test"}, "password": {"correct-horse"}})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, body, "Sign-in is unavailable")
}

func TestLogoutClearsSession(t *testing.T) {
	env := newEnv(t)
	sess := signedIn(env)
	tok := env.csrf(t, "/admin", sess)

	resp, _ := env.post(t, "/admin/logout", tok, url.Values{}, sess)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/login", resp.Header.Get("Location"))
	assert.Empty(t, cookieValue(resp, "sb-access-token"))
}

func TestAdminUpdatesBookingStatus(t *testing.T) {
	logs := captureLogs(t)
	env := newEnv(t)
	sess := signedIn(env)
	seedBooking(t, env, "b-1")
	tok := env.csrf(t, "/admin/bookings/b-1", sess)

	resp, _ := env.post(t, "/admin/bookings/b-1/status", tok, url.Values{"status": {"confirmed"}}, sess)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/bookings/b-1", resp.Header.Get("Location"))

	b, err := env.bookings.Get(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	assert.Equal(t, 1, logs.FilterMessage("admin.bookings.update").Len())

	resp, _ = env.post(t, "/admin/bookings/b-1/status", tok, url.Values{"status": {"archived"}}, sess)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = env.post(t, "/admin/bookings/nope/status", tok, url.Values{"status": {"confirmed"}}, sess)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminPagesListAndFilter(t *testing.T) {
	env := newEnv(t)
	sess := signedIn(env)
	seedBooking(t, env, "b-1")

	resp, body := env.get(t, "/admin/bookings?status=pending", sess)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "/admin/bookings/b-1")
	assert.Contains(t, body, "$99.99")

	resp, body = env.get(t, "/admin/bookings?status=confirmed", sess)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, "/admin/bookings/b-1")

	resp, body = env.get(t, "/admin/bookings/b-1", sess)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Speaker replacement")

	resp, _ = env.get(t, "/admin/bookings/missing", sess)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminTriagesInquiry(t *testing.T) {
	env := newEnv(t)
	sess := signedIn(env)
	now := time.Now().UTC()
	require.NoError(t, env.inquiry.Create(context.Background(), &domain.Inquiry{
		ID: "q-1", ProductID: "7", ProductName: "10in Sub", ProductPrice: decimal.RequireFromString("179.00"),
		RequestType: domain.RequestBackorder, CustomerName: "Sam", CustomerEmail: "sam@example.com",
		Status: domain.InquiryPending, CreatedAt: now, UpdatedAt: now,
	}))

	resp, body := env.get(t, "/admin/inquiries", sess)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "10in Sub")

	tok := env.csrf(t, "/admin/inquiries", sess)
	resp, _ = env.post(t, "/admin/inquiries/q-1", tok, url.Values{"status": {"contacted"}, "note": {"left voicemail"}}, sess)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	q, err := env.inquiry.Get(context.Background(), "q-1")
	require.NoError(t, err)
	assert.Equal(t, domain.InquiryContacted, q.Status)
	require.NotNil(t, q.AdminNote)
	assert.Equal(t, "left voicemail", *q.AdminNote)
}
