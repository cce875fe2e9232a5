package handlers

import (
	"installbay/internal/events"
	"installbay/internal/repos"
	"installbay/internal/services"
	"installbay/internal/upstream"
)

// Sources are the external systems the site talks to.
type Sources struct {
	POS       upstream.Integration[services.POS]
	Catalog   upstream.Integration[services.Catalog]
	Bookings  repos.BookingRepo
	Inquiries repos.InquiryRepo
	Auth      services.AuthClient
	Events    events.Publisher
}

type Deps struct {
	AuthSvc      *services.AuthService
	CookieSecure bool

	POSHandler     *POSHandler
	ProductHandler *ProductHandler
	SearchHandler  *SearchHandler
	BookingHandler *BookingHandler
	InquiryHandler *InquiryHandler
	AuthHandler    *AuthHandler
	AdminHandler   *AdminHandler
}

func NewDeps(src Sources, cookieSecure bool) *Deps {
	posSvc := services.NewPOSService(src.POS)
	catalogSvc := services.NewCatalogService(src.Catalog)
	bookingSvc := services.NewBookingService(src.Bookings, src.Events)
	inquirySvc := services.NewInquiryService(src.Inquiries, catalogSvc, src.Events)
	authSvc := services.NewAuthService(src.Auth)

	return &Deps{
		AuthSvc:      authSvc,
		CookieSecure: cookieSecure,

		POSHandler:     &POSHandler{POS: posSvc},
		ProductHandler: &ProductHandler{Catalog: catalogSvc, POS: posSvc},
		SearchHandler:  &SearchHandler{Catalog: catalogSvc},
		BookingHandler: &BookingHandler{Bookings: bookingSvc},
		InquiryHandler: &InquiryHandler{Catalog: catalogSvc, Inquiries: inquirySvc},
		AuthHandler:    &AuthHandler{Auth: authSvc, CookieSecure: cookieSecure},
		AdminHandler:   &AdminHandler{Bookings: bookingSvc, Inquiries: inquirySvc},
	}
}
