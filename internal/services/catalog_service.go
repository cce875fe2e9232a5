package services

import (
	"context"
	"net/http"

	"installbay/internal/commerce"
	"installbay/internal/domain"
	"installbay/internal/upstream"
)

// Catalog is the commerce product API; *commerce.Client satisfies it.
type Catalog interface {
	ListProducts(ctx context.Context, q commerce.ProductQuery) (commerce.ProductPage, error)
	GetProduct(ctx context.Context, id int) (domain.Product, error)
}

type CatalogService struct {
	catalog upstream.Integration[Catalog]
}

func NewCatalogService(catalog upstream.Integration[Catalog]) *CatalogService {
	return &CatalogService{catalog: catalog}
}

func (s *CatalogService) Products(ctx context.Context, q commerce.ProductQuery) (commerce.ProductPage, error) {
	c, ok := s.catalog.Get()
	if !ok {
		return commerce.ProductPage{Data: []domain.Product{}}, unavailable(s.catalog.Reason())
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 24
	}
	page, err := c.ListProducts(ctx, q)
	if page.Data == nil {
		page.Data = []domain.Product{}
	}
	return page, err
}

// Featured is the home page shelf.
func (s *CatalogService) Featured(ctx context.Context, n int) ([]domain.Product, error) {
	page, err := s.Products(ctx, commerce.ProductQuery{Featured: true, Limit: n})
	return page.Data, err
}

func (s *CatalogService) Search(ctx context.Context, keyword string, page int) (commerce.ProductPage, error) {
	return s.Products(ctx, commerce.ProductQuery{Keyword: keyword, Page: page})
}

// Product maps a vendor 404 to ErrNotFound.
func (s *CatalogService) Product(ctx context.Context, id int) (domain.Product, error) {
	c, ok := s.catalog.Get()
	if !ok {
		return domain.Product{}, unavailable(s.catalog.Reason())
	}
	p, err := c.GetProduct(ctx, id)
	if upstream.StatusOf(err) == http.StatusNotFound {
		return domain.Product{}, ErrNotFound
	}
	return p, err
}
