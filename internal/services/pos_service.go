package services

import (
	"context"

	"installbay/internal/clover"
	"installbay/internal/domain"
	"installbay/internal/upstream"
)

// POS is the point-of-sale API the shop uses; *clover.Client satisfies it.
type POS interface {
	ListCategories(ctx context.Context) (clover.Page[domain.Category], error)
	ListCustomers(ctx context.Context, limit, offset int) (clover.Page[domain.Customer], error)
	ListItems(ctx context.Context, limit, offset int) (clover.Page[domain.Item], error)
}

type POSService struct {
	pos upstream.Integration[POS]
}

func NewPOSService(pos upstream.Integration[POS]) *POSService {
	return &POSService{pos: pos}
}

// Categories returns the visible categories in display order.
func (s *POSService) Categories(ctx context.Context) ([]domain.Category, error) {
	pos, ok := s.pos.Get()
	if !ok {
		return nil, unavailable(s.pos.Reason())
	}
	page, err := pos.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return domain.VisibleCategories(page.Elements), nil
}

func (s *POSService) Customers(ctx context.Context, limit, offset int) (clover.Page[domain.Customer], error) {
	pos, ok := s.pos.Get()
	if !ok {
		return clover.Page[domain.Customer]{}, unavailable(s.pos.Reason())
	}
	page, err := pos.ListCustomers(ctx, limit, offset)
	if page.Elements == nil {
		page.Elements = []domain.Customer{}
	}
	return page, err
}

func (s *POSService) Items(ctx context.Context, limit, offset int) (clover.Page[domain.Item], error) {
	pos, ok := s.pos.Get()
	if !ok {
		return clover.Page[domain.Item]{}, unavailable(s.pos.Reason())
	}
	page, err := pos.ListItems(ctx, limit, offset)
	if page.Elements == nil {
		page.Elements = []domain.Item{}
	}
	return page, err
}
