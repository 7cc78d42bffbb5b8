package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/freezerplan-backend/api/responses"
	"github.com/angelmondragon/freezerplan-backend/api/validators"
	"github.com/angelmondragon/freezerplan-backend/internal/catalog"
	"github.com/angelmondragon/freezerplan-backend/internal/freezer"
	"github.com/angelmondragon/freezerplan-backend/internal/persona"
	"github.com/angelmondragon/freezerplan-backend/internal/planner"
	"github.com/angelmondragon/freezerplan-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/freezerplan-backend/pkg/errors"
	"github.com/angelmondragon/freezerplan-backend/pkg/logger"
	"github.com/angelmondragon/freezerplan-backend/pkg/pagination"
)

const (
	maxCategoryFilter = 256
	maxCursor         = 128
)

type catalogItem struct {
	catalog.Product
	Position       int     `json:"position"`
	EffectivePrice string  `json:"effectivePrice"`
	PricePerKg     string  `json:"pricePerKg"`
	UnitVolumeCuFt float64 `json:"unitVolumeCuFt"`
}

// CatalogList returns catalog products in catalog order, optionally filtered by
// category, with cursor pagination.
func CatalogList(svc planner.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "planner service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var categories []enums.ProductCategory
		for _, part := range validators.ParseQueryList(r, "category", maxCategoryFilter) {
			category, err := enums.ParseProductCategory(part)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category").
					WithDetails(map[string]any{"field": "category", "value": part}))
				return
			}
			categories = append(categories, category)
		}

		cat, err := svc.Catalog(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]catalogItem, 0, cat.Len())
		for i, p := range cat.Products() {
			if len(categories) > 0 && !containsCategory(categories, p.Category) {
				continue
			}
			items = append(items, catalogItem{
				Product:        p,
				Position:       i,
				EffectivePrice: p.EffectivePrice().StringFixed(2),
				PricePerKg:     p.PricePerKg().StringFixed(2),
				UnitVolumeCuFt: freezer.UnitVolume(p),
			})
		}

		page, err := pagination.Paginate(items, pagination.Params{Limit: limit, Cursor: validators.SanitizeString(r.URL.Query().Get("cursor"), maxCursor)},
			func(it catalogItem) int { return it.Position },
			func(it catalogItem) uuid.UUID { return it.ID },
		)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor"))
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func containsCategory(categories []enums.ProductCategory, c enums.ProductCategory) bool {
	for _, candidate := range categories {
		if candidate == c {
			return true
		}
	}
	return false
}

// PersonaList returns the persona templates.
func PersonaList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, persona.Templates())
	}
}
