package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"installbay/internal/domain"
	"installbay/internal/events"
	"installbay/internal/metrics"
	"installbay/internal/repos"
	"installbay/internal/validate"
)

type InquiryRequest struct {
	ProductID string
	Name      string
	Email     string
	Phone     string
	Message   string
}

type InquiryService struct {
	repo    repos.InquiryRepo
	catalog *CatalogService
	events  events.Publisher
	now     func() time.Time
}

func NewInquiryService(repo repos.InquiryRepo, catalog *CatalogService, pub events.Publisher) *InquiryService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &InquiryService{repo: repo, catalog: catalog, events: pub, now: time.Now}
}

// Create snapshots the product and stores a pending inquiry. Out-of-stock
// products turn the request into a backorder.
func (s *InquiryService) Create(ctx context.Context, in InquiryRequest) (domain.Inquiry, error) {
	pid, err := strconv.Atoi(in.ProductID)
	if err != nil || pid <= 0 {
		return domain.Inquiry{}, invalid("product")
	}
	name, ok := validate.Name(in.Name)
	if !ok {
		return domain.Inquiry{}, invalid("name")
	}
	email, ok := validate.Email(in.Email)
	if !ok {
		return domain.Inquiry{}, invalid("email")
	}
	phone, ok := validate.Phone(in.Phone)
	if !ok {
		return domain.Inquiry{}, invalid("phone")
	}
	msg, ok := validate.Text(in.Message, 2000)
	if !ok {
		return domain.Inquiry{}, invalid("message")
	}

	p, err := s.catalog.Product(ctx, pid)
	if err != nil {
		return domain.Inquiry{}, err
	}
	kind := domain.RequestInquiry
	if !p.InStock() {
		kind = domain.RequestBackorder
	}

	now := s.now().UTC()
	q := domain.Inquiry{
		ID:            uuid.NewString(),
		ProductID:     strconv.Itoa(p.ID),
		ProductName:   p.Name,
		ProductPrice:  p.EffectivePrice(),
		RequestType:   kind,
		CustomerName:  name,
		CustomerEmail: email,
		CustomerPhone: phone,
		Message:       msg,
		Status:        domain.InquiryPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, &q); err != nil {
		return domain.Inquiry{}, fmt.Errorf("create inquiry: %w", err)
	}
	metrics.InquiriesCreatedTotal.WithLabelValues(string(q.RequestType)).Inc()
	if err := s.events.Publish(ctx, events.New(events.InquiryCreated, q.ID, q)); err != nil {
		return q, &PublishError{Err: err}
	}
	return q, nil
}

func (s *InquiryService) List(ctx context.Context, f domain.InquiryFilter) ([]domain.Inquiry, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, invalid("status")
	}
	return s.repo.List(ctx, f)
}

// Triage sets the status and, when note is non-nil, replaces the admin note.
func (s *InquiryService) Triage(ctx context.Context, id string, status domain.InquiryStatus, note *string) (domain.Inquiry, error) {
	if !status.Valid() {
		return domain.Inquiry{}, invalid("status")
	}
	if note != nil {
		n, ok := validate.Text(*note, 2000)
		if !ok {
			return domain.Inquiry{}, invalid("note")
		}
		note = &n
	}
	q, err := s.repo.Update(ctx, id, status, note, s.now().UTC())
	if errors.Is(err, repos.ErrNotFound) {
		return domain.Inquiry{}, ErrNotFound
	}
	if err != nil {
		return domain.Inquiry{}, fmt.Errorf("update inquiry %s: %w", id, err)
	}
	if err := s.events.Publish(ctx, events.New(events.InquiryStatusChanged, q.ID, map[string]any{"status": q.Status})); err != nil {
		return q, &PublishError{Err: err}
	}
	return q, nil
}

func (s *InquiryService) Counts(ctx context.Context) (map[domain.InquiryStatus]int, error) {
	got, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[domain.InquiryStatus]int, len(domain.InquiryStatuses))
	for _, st := range domain.InquiryStatuses {
		out[st] = got[st]
	}
	return out, nil
}
