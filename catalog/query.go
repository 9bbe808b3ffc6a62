package catalog

import (
	"sort"
	"strings"

	"go-storefront/models"

	"github.com/shopspring/decimal"
)

// SortOrder names a listing order.
type SortOrder string

const (
	SortFeatured  SortOrder = "featured"
	SortNewest    SortOrder = "newest"
	SortPriceAsc  SortOrder = "price-asc"
	SortPriceDesc SortOrder = "price-desc"
	SortRating    SortOrder = "rating"
)

// ParseSort maps a ?sort= value to a SortOrder. Empty means SortFeatured.
func ParseSort(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return SortFeatured, nil
	case SortFeatured, SortNewest, SortPriceAsc, SortPriceDesc, SortRating:
		return o, nil
	}
	return "", models.NewValidationError("unknown sort order "+s, "sort")
}

// ParsePriceRange reads "min-max" with both bounds inclusive. The upper bound
// may be left off ("1000-"). "" and "all" mean no bound.
func ParsePriceRange(s string) (lower, upper *decimal.Decimal, err error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "all" {
		return nil, nil, nil
	}
	invalid := models.NewValidationError("price range must look like 200-500", "price")

	lo, hi, ok := strings.Cut(s, "-")
	if !ok {
		return nil, nil, invalid
	}
	minV, err := decimal.NewFromString(strings.TrimSpace(lo))
	if err != nil || minV.IsNegative() {
		return nil, nil, invalid
	}
	lower = &minV

	if hi = strings.TrimSpace(hi); hi != "" {
		maxV, err := decimal.NewFromString(hi)
		if err != nil || maxV.LessThan(minV) {
			return nil, nil, invalid
		}
		upper = &maxV
	}
	return lower, upper, nil
}

// Query narrows and orders a product listing. Zero values match everything.
type Query struct {
	Category   string
	Featured   bool
	Bestseller bool
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Sort       SortOrder
}

func (q Query) matches(p models.Product) bool {
	switch {
	case q.Category != "" && p.Category != q.Category:
		return false
	case q.Featured && !p.Featured:
		return false
	case q.Bestseller && !p.Bestseller:
		return false
	case q.MinPrice != nil && p.Price.LessThan(*q.MinPrice):
		return false
	case q.MaxPrice != nil && p.Price.GreaterThan(*q.MaxPrice):
		return false
	}
	return true
}

// Search returns the products matching q. Ties keep catalog order.
func (c *Catalog) Search(q Query) []models.Product {
	out := c.filter(q.matches)

	var less func(a, b models.Product) bool
	switch q.Sort {
	case SortNewest:
		less = func(a, b models.Product) bool { return a.ID > b.ID }
	case SortPriceAsc:
		less = func(a, b models.Product) bool { return a.Price.LessThan(b.Price) }
	case SortPriceDesc:
		less = func(a, b models.Product) bool { return a.Price.GreaterThan(b.Price) }
	case SortRating:
		less = func(a, b models.Product) bool { return a.Rating > b.Rating }
	default:
		less = func(a, b models.Product) bool { return a.Featured && !b.Featured }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
