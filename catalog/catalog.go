// Package catalog holds the static, read-only product catalog.
package catalog

import (
	_ "embed"
	"fmt"

	"go-storefront/models"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultData []byte

type productRecord struct {
	ID            int      `yaml:"id"`
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description"`
	Price         string   `yaml:"price"`
	OriginalPrice string   `yaml:"originalPrice"`
	Image         string   `yaml:"image"`
	Category      string   `yaml:"category"`
	Subcategory   string   `yaml:"subcategory"`
	Size          string   `yaml:"size"`
	Material      string   `yaml:"material"`
	Colors        []string `yaml:"colors"`
	InStock       bool     `yaml:"inStock"`
	Rating        float64  `yaml:"rating"`
	Reviews       int      `yaml:"reviews"`
	Featured      bool     `yaml:"featured"`
	Bestseller    bool     `yaml:"bestseller"`
}

type categoryRecord struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Icon string `yaml:"icon"`
}

type document struct {
	Categories []categoryRecord `yaml:"categories"`
	Products   []productRecord  `yaml:"products"`
}

// Catalog is an immutable product list. All accessors return copies.
type Catalog struct {
	categories []models.Category
	products   []models.Product
	byID       map[int]int
}

// New loads the catalog bundled with the binary.
func New() (*Catalog, error) {
	return Parse(defaultData)
}

// Parse builds a catalog from YAML and validates every product.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{byID: make(map[int]int, len(doc.Products))}
	known := make(map[string]bool, len(doc.Categories))
	for _, rec := range doc.Categories {
		if rec.ID == "" {
			return nil, fmt.Errorf("category %q has no id", rec.Name)
		}
		known[rec.ID] = true
		c.categories = append(c.categories, models.Category{ID: rec.ID, Name: rec.Name, Icon: rec.Icon})
	}

	for _, rec := range doc.Products {
		p, err := rec.toProduct()
		if err != nil {
			return nil, err
		}
		if !known[p.Category] {
			return nil, fmt.Errorf("product %d: unknown category %q", p.ID, p.Category)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("product %d: duplicate id", p.ID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

func (r productRecord) toProduct() (models.Product, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return models.Product{}, fmt.Errorf("product %d: price: %w", r.ID, err)
	}
	p := models.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       price,
		Image:       r.Image,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		Size:        r.Size,
		Material:    r.Material,
		Colors:      r.Colors,
		InStock:     r.InStock,
		Rating:      r.Rating,
		Reviews:     r.Reviews,
		Featured:    r.Featured,
		Bestseller:  r.Bestseller,
	}
	if r.OriginalPrice != "" {
		op, err := decimal.NewFromString(r.OriginalPrice)
		if err != nil {
			return models.Product{}, fmt.Errorf("product %d: original price: %w", r.ID, err)
		}
		p.OriginalPrice = &op
	}
	return p, validate(p)
}

func validate(p models.Product) error {
	switch {
	case p.ID <= 0:
		return fmt.Errorf("product %q: id must be positive", p.Name)
	case p.Name == "":
		return fmt.Errorf("product %d: name is required", p.ID)
	case p.Price.IsNegative():
		return fmt.Errorf("product %d: price must not be negative", p.ID)
	case p.OriginalPrice != nil && p.OriginalPrice.LessThan(p.Price):
		return fmt.Errorf("product %d: original price below price", p.ID)
	case len(p.Colors) == 0:
		return fmt.Errorf("product %d: at least one color is required", p.ID)
	case p.Rating < 0 || p.Rating > 5:
		return fmt.Errorf("product %d: rating %.1f out of range", p.ID, p.Rating)
	case p.Reviews < 0:
		return fmt.Errorf("product %d: negative review count", p.ID)
	}
	return nil
}

// List returns every product in catalog order.
func (c *Catalog) List() []models.Product {
	return c.filter(func(models.Product) bool { return true })
}

// Product looks a product up by id.
func (c *Catalog) Product(id int) (models.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return models.Product{}, fmt.Errorf("product %d: %w", id, models.ErrNotFound)
	}
	return c.products[i].Clone(), nil
}

// ByCategory returns the products whose category id matches exactly.
func (c *Catalog) ByCategory(category string) []models.Product {
	return c.filter(func(p models.Product) bool { return p.Category == category })
}

func (c *Catalog) Featured() []models.Product {
	return c.filter(func(p models.Product) bool { return p.Featured })
}

func (c *Catalog) Bestsellers() []models.Product {
	return c.filter(func(p models.Product) bool { return p.Bestseller })
}

// Related returns up to limit other products from the same category.
func (c *Catalog) Related(id, limit int) []models.Product {
	i, ok := c.byID[id]
	if !ok || limit <= 0 {
		return []models.Product{}
	}
	category := c.products[i].Category
	related := c.filter(func(p models.Product) bool { return p.Category == category && p.ID != id })
	if len(related) > limit {
		related = related[:limit]
	}
	return related
}

func (c *Catalog) Categories() []models.Category {
	out := make([]models.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// HasCategory reports whether id names a catalog category.
func (c *Catalog) HasCategory(id string) bool {
	for _, cat := range c.categories {
		if cat.ID == id {
			return true
		}
	}
	return false
}

func (c *Catalog) filter(keep func(models.Product) bool) []models.Product {
	out := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}
