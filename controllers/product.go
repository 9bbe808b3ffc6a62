package controllers

import (
	"fmt"
	"net/http"

	"go-storefront/catalog"
	"go-storefront/models"

	"go.uber.org/zap"
)

// RelatedLimit caps the "you may also like" list on the product page
const RelatedLimit = 4

// ProductController handles catalog requests
type ProductController struct {
	Catalog *catalog.Catalog
	Logger  *zap.Logger
}

// NewProductController creates a new ProductController
func NewProductController(c *catalog.Catalog, logger *zap.Logger) *ProductController {
	return &ProductController{Catalog: c, Logger: loggerOrNop(logger)}
}

// GetCategories lists every category
func (pc *ProductController) GetCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pc.Catalog.Categories())
}

// GetProducts lists the catalog. It accepts ?category=, ?featured=true,
// ?bestseller=true, ?price=min-max and ?sort=
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	q := catalog.Query{
		Category:   params.Get("category"),
		Featured:   params.Get("featured") == "true",
		Bestseller: params.Get("bestseller") == "true",
	}
	if q.Category == "all" {
		q.Category = ""
	}
	if q.Category != "" && !pc.Catalog.HasCategory(q.Category) {
		writeError(w, pc.Logger, fmt.Errorf("category %q: %w", q.Category, models.ErrNotFound))
		return
	}

	var err error
	if q.MinPrice, q.MaxPrice, err = catalog.ParsePriceRange(params.Get("price")); err != nil {
		writeError(w, pc.Logger, err)
		return
	}
	if q.Sort, err = catalog.ParseSort(params.Get("sort")); err != nil {
		writeError(w, pc.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, pc.Catalog.Search(q))
}

func (pc *ProductController) GetFeatured(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pc.Catalog.Featured())
}

func (pc *ProductController) GetBestsellers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pc.Catalog.Bestsellers())
}

type productDetail struct {
	Product  models.Product   `json:"product"`
	Discount int              `json:"discount,omitempty"`
	Related  []models.Product `json:"related"`
}

// GetProductByID returns a single product together with related products
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := intVar(r, "id")
	if err != nil {
		writeError(w, pc.Logger, err)
		return
	}

	product, err := pc.Catalog.Product(id)
	if err != nil {
		writeError(w, pc.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, productDetail{
		Product:  product,
		Discount: product.Discount(),
		Related:  pc.Catalog.Related(id, RelatedLimit),
	})
}
