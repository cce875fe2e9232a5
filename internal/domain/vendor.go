package domain

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
)

// Category is a POS category. SortOrder is optional on the vendor side.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SortOrder *int   `json:"sortOrder,omitempty"`
	Deleted   bool   `json:"deleted,omitempty"`
}

func (c Category) order() int {
	if c.SortOrder == nil {
		return 0
	}
	return *c.SortOrder
}

// VisibleCategories drops deleted categories and orders the rest by
// SortOrder ascending (missing counts as 0). Ties keep vendor order.
func VisibleCategories(in []Category) []Category {
	out := make([]Category, 0, len(in))
	for _, c := range in {
		if !c.Deleted {
			out = append(out, c)
		}
	}
	slices.SortStableFunc(out, func(a, b Category) int {
		return cmp.Compare(a.order(), b.order())
	})
	return out
}

type EmailAddress struct {
	ID           string `json:"id,omitempty"`
	EmailAddress string `json:"emailAddress"`
}

type PhoneNumber struct {
	ID          string `json:"id,omitempty"`
	PhoneNumber string `json:"phoneNumber"`
}

// Customer is a POS customer record.
type Customer struct {
	ID               string `json:"id"`
	FirstName        string `json:"firstName,omitempty"`
	LastName         string `json:"lastName,omitempty"`
	MarketingAllowed bool   `json:"marketingAllowed"`
	CustomerSince    int64  `json:"customerSince,omitempty"` // epoch millis
	EmailAddresses   *struct {
		Elements []EmailAddress `json:"elements"`
	} `json:"emailAddresses,omitempty"`
	PhoneNumbers *struct {
		Elements []PhoneNumber `json:"elements"`
	} `json:"phoneNumbers,omitempty"`
}

// Item is a POS inventory item. Price is in cents.
type Item struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	SKU        string `json:"sku,omitempty"`
	Code       string `json:"code,omitempty"`
	Hidden     bool   `json:"hidden"`
	Available  bool   `json:"available"`
	StockCount *int64 `json:"stockCount,omitempty"`
}

// Product is a commerce catalog product.
type Product struct {
	ID                int             `json:"id"`
	Name              string          `json:"name"`
	SKU               string          `json:"sku"`
	Description       string          `json:"description"`
	Brand             string          `json:"brand_name,omitempty"`
	Price             decimal.Decimal `json:"price"`
	SalePrice         decimal.Decimal `json:"sale_price"`
	IsVisible         bool            `json:"is_visible"`
	IsFeatured        bool            `json:"is_featured"`
	Availability      string          `json:"availability"`       // available | disabled | preorder
	InventoryTracking string          `json:"inventory_tracking"` // none | product | variant
	InventoryLevel    int             `json:"inventory_level"`
	PrimaryImage      *Image          `json:"primary_image,omitempty"`
	Variants          []Variant       `json:"variants,omitempty"`
}

// InStock reports whether the product can be sold now. Untracked products
// report a level of zero, so availability alone decides for them.
func (p Product) InStock() bool {
	if p.Availability != "" && p.Availability != "available" {
		return false
	}
	if p.InventoryTracking == "none" {
		return true
	}
	if p.InventoryLevel > 0 {
		return true
	}
	for _, v := range p.Variants {
		if v.InventoryLevel > 0 {
			return true
		}
	}
	return false
}

// EffectivePrice prefers a non-zero sale price.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice.IsPositive() {
		return p.SalePrice
	}
	return p.Price
}

type Image struct {
	URLStandard  string `json:"url_standard"`
	URLThumbnail string `json:"url_thumbnail"`
}

// ImageURL is the standard-size image or "".
func (p Product) ImageURL() string {
	if p.PrimaryImage == nil {
		return ""
	}
	return p.PrimaryImage.URLStandard
}

type Variant struct {
	ID             int              `json:"id"`
	ProductID      int              `json:"product_id"`
	SKU            string           `json:"sku"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	InventoryLevel int              `json:"inventory_level"`
	OptionValues   []OptionValue    `json:"option_values,omitempty"`
}

type OptionValue struct {
	Label             string `json:"label"`
	OptionDisplayName string `json:"option_display_name"`
}
