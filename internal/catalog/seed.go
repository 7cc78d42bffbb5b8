package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"

	pkgerrors "github.com/angelmondragon/freezerplan-backend/pkg/errors"
)

//go:embed seed/products.json
var defaultSeed []byte

// DecodeProducts reads a JSON array of products. Unknown fields are rejected.
func DecodeProducts(r io.Reader) ([]Product, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var products []Product
	if err := dec.Decode(&products); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("decode products: %v", err))
	}
	return products, nil
}

// DefaultProducts returns the bundled product list.
func DefaultProducts() ([]Product, error) {
	return DecodeProducts(bytes.NewReader(defaultSeed))
}

// Default returns the bundled catalog.
func Default() (*Catalog, error) {
	products, err := DefaultProducts()
	if err != nil {
		return nil, err
	}
	return NewCatalog(products)
}

// Seed upserts products into the repository. With onlyIfEmpty set, a catalog
// that already holds rows is left alone. It returns the number of rows written.
func Seed(ctx context.Context, repo *Repository, products []Product, onlyIfEmpty bool) (int, error) {
	if onlyIfEmpty {
		count, err := repo.Count(ctx)
		if err != nil {
			return 0, err
		}
		if count > 0 {
			return 0, nil
		}
	}
	if _, err := NewCatalog(products); err != nil {
		return 0, err
	}
	if err := repo.Upsert(ctx, products); err != nil {
		return 0, err
	}
	return len(products), nil
}
