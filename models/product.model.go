package models

import (
	"github.com/shopspring/decimal"
)

// Category groups products on the storefront
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Product is an immutable catalog entry
type Product struct {
	ID            int              `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Image         string           `json:"image"`
	Category      string           `json:"category"`
	Subcategory   string           `json:"subcategory,omitempty"`
	Size          string           `json:"size"`
	Material      string           `json:"material"`
	Colors        []string         `json:"colors"`
	InStock       bool             `json:"inStock"`
	Rating        float64          `json:"rating"`
	Reviews       int              `json:"reviews"`
	Featured      bool             `json:"featured,omitempty"`
	Bestseller    bool             `json:"bestseller,omitempty"`
}

// Discount returns the whole percentage saved against OriginalPrice, or zero
// when the product is not discounted.
func (p Product) Discount() int {
	if p.OriginalPrice == nil || !p.OriginalPrice.IsPositive() || !p.OriginalPrice.GreaterThan(p.Price) {
		return 0
	}
	saved := p.OriginalPrice.Sub(p.Price).Div(*p.OriginalPrice).Mul(decimal.NewFromInt(100))
	return int(saved.Round(0).IntPart())
}

// Clone copies the slice and pointer fields so the copy can be handed out freely.
func (p Product) Clone() Product {
	if p.OriginalPrice != nil {
		op := *p.OriginalPrice
		p.OriginalPrice = &op
	}
	p.Colors = append([]string(nil), p.Colors...)
	return p
}
