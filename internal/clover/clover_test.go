package clover_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"installbay/internal/clover"
	"installbay/internal/upstream"
)

func TestListCustomersPassesPaging(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/merchants/MERCH1/customers", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "20", r.URL.Query().Get("offset"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"elements":[{"id":"C1","firstName":"Ana"}],"href":"https://api/customers?limit=10"}`)
	}))
	defer srv.Close()

	c := clover.New(srv.URL, "tok", "MERCH1", time.Second)
	page, err := c.ListCustomers(context.Background(), 10, 20)
	require.NoError(t, err)
	require.Len(t, page.Elements, 1)
	assert.Equal(t, "Ana", page.Elements[0].FirstName)
	assert.Equal(t, "https://api/customers?limit=10", page.Href)
}

func TestListCategoriesVendorFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := clover.New(srv.URL, "bad", "M", time.Second)
	_, err := c.ListCategories(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, upstream.StatusOf(err))
}
