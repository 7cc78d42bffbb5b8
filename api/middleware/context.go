package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/freezerplan-backend/api/responses"
	pkgerrors "github.com/angelmondragon/freezerplan-backend/pkg/errors"
	"github.com/angelmondragon/freezerplan-backend/pkg/logger"
)

type contextKey string

const (
	ctxHouseholdID contextKey = "household_id"

	// HouseholdParam is the route parameter carrying the household id.
	HouseholdParam = "householdId"
)

// HouseholdIDFromContext returns the household resolved by Household, if any.
func HouseholdIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	if ctx == nil {
		return uuid.Nil, false
	}
	id, ok := ctx.Value(ctxHouseholdID).(uuid.UUID)
	return id, ok
}

// WithHouseholdID injects the household identifier into the context.
func WithHouseholdID(ctx context.Context, id uuid.UUID) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxHouseholdID, id)
}

// Household parses the {householdId} route parameter and scopes the request to it.
func Household(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(chi.URLParam(r, HouseholdParam))
			id, err := uuid.Parse(raw)
			if err != nil || id == uuid.Nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "invalid household id").WithDetails(map[string]any{"householdId": raw}))
				return
			}

			ctx := WithHouseholdID(r.Context(), id)
			if logg != nil {
				ctx = logg.WithHouseholdID(ctx, id.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
