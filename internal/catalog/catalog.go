package catalog

import (
	"fmt"

	"github.com/angelmondragon/freezerplan-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/freezerplan-backend/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// Catalog is an immutable, ordered product index. Iteration order is the order
// products were supplied in and is relied on for deterministic tie-breaks.
type Catalog struct {
	products []Product
	byID     map[uuid.UUID]int
}

// NewCatalog indexes the provided products. Duplicate or nil identifiers are rejected.
func NewCatalog(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[uuid.UUID]int, len(products)),
	}
	var errs error
	for i, p := range products {
		if p.ID == uuid.Nil {
			errs = multierr.Append(errs, fmt.Errorf("product %d: id is required", i))
			continue
		}
		if _, dup := c.byID[p.ID]; dup {
			errs = multierr.Append(errs, fmt.Errorf("product %d: duplicate id %s", i, p.ID))
			continue
		}
		if p.Category != "" && !p.Category.IsValid() {
			errs = multierr.Append(errs, fmt.Errorf("product %d: invalid category %q", i, p.Category))
			continue
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	if errs != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "invalid catalog")
	}
	return c, nil
}

// MustCatalog is NewCatalog for fixtures; it panics on invalid input.
func MustCatalog(products ...Product) *Catalog {
	c, err := NewCatalog(products)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.products)
}

// Get looks up a product by id.
func (c *Catalog) Get(id uuid.UUID) (Product, bool) {
	if c == nil {
		return Product{}, false
	}
	idx, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[idx], true
}

// Products returns a copy of every product in catalog order.
func (c *Catalog) Products() []Product {
	if c == nil {
		return nil
	}
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// ByCategory returns products of the given categories in catalog order.
func (c *Catalog) ByCategory(categories ...enums.ProductCategory) []Product {
	if c == nil {
		return nil
	}
	wanted := make(map[enums.ProductCategory]struct{}, len(categories))
	for _, cat := range categories {
		wanted[cat] = struct{}{}
	}
	out := make([]Product, 0)
	for _, p := range c.products {
		if _, ok := wanted[p.Category]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Require returns a validation error for a nil catalog reference.
func Require(c *Catalog) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "catalog is required")
	}
	return nil
}
