package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/freezerplan-backend/api/middleware"
	"github.com/angelmondragon/freezerplan-backend/api/responses"
	"github.com/angelmondragon/freezerplan-backend/api/validators"
	"github.com/angelmondragon/freezerplan-backend/internal/cart"
	"github.com/angelmondragon/freezerplan-backend/internal/household"
	"github.com/angelmondragon/freezerplan-backend/internal/planner"
	"github.com/angelmondragon/freezerplan-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/freezerplan-backend/pkg/errors"
	"github.com/angelmondragon/freezerplan-backend/pkg/logger"
)

// householdHandler resolves the planner and household id shared by every
// household route before calling fn.
func householdHandler(svc planner.Service, logg *logger.Logger, fn func(w http.ResponseWriter, r *http.Request, id uuid.UUID)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "planner service unavailable"))
			return
		}
		id, ok := middleware.HouseholdIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "household id missing"))
			return
		}
		fn(w, r, id)
	}
}

func HouseholdSession(svc planner.Service, logg *logger.Logger) http.HandlerFunc {
	return householdHandler(svc, logg, func(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
		session, err := svc.GetSession(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, session)
	})
}

func HouseholdSaveProfile(svc planner.Service, logg *logger.Logger) http.HandlerFunc {
	return householdHandler(svc, logg, func(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
		profile := household.NewProfile()
		if err := validators.DecodeJSONBody(r, &profile); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		session, err := svc.SaveProfile(r.Context(), id, profile)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, session)
	})
}

func HouseholdSaveFreezer(svc planner.Service, logg *logger.Logger) http.HandlerFunc {
	return householdHandler(svc, logg, func(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
		fz := household.DefaultFreezer()
		if err := validators.DecodeJSONBody(r, &fz); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		session, err := svc.SaveFreezer(r.Context(), id, fz)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, session)
	})
}

func HouseholdDemand(svc planner.Service, logg *logger.Logger) http.HandlerFunc {
	return householdHandler(svc, logg, func(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
		res, err := svc.Demand(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, res)
	})
}

func HouseholdCustomizations(svc planner.Service, logg *logger.Logger) http.HandlerFunc {
	return householdHandler(svc, logg, func(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
		has, err := svc.HasExistingCustomizations(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"hasExistingCustomizations": has})
	})
}

type applyPersonaRequest struct {
	PersonaID string `json:"personaId" validate:"required"`
	Confirm   bool   `json:"confirm"`
}

func HouseholdApplyPersona(svc planner.Service, logg *logger.Logger) http.HandlerFunc {
	return householdHandler(svc, logg, func(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
		var payload applyPersonaRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		personaID, err := enums.ParsePersonaID(strings.TrimSpace(payload.PersonaID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid persona").
				WithDetails(map[string]any{"field": "personaId"}))
			return
		}
		res, err := svc.ApplyPersona(r.Context(), id, personaID, payload.Confirm)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, res)
	})
}

type autoScaleRequest struct {
	WeeklyBudget *decimal.Decimal `json:"weeklyBudget" validate:"required"`
	Iterative    bool             `json:"iterative"`
}

func HouseholdAutoScale(svc planner.Service, logg *logger.Logger) http.HandlerFunc {
	return householdHandler(svc, logg, func(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
		var payload autoScaleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		res, err := svc.AutoScale(r.Context(), id, planner.AutoScaleInput{
			WeeklyBudget: *payload.WeeklyBudget,
			Iterative:    payload.Iterative,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, res)
	})
}

func HouseholdBuildPlan(svc planner.Service, logg *logger.Logger) http.HandlerFunc {
	return householdHandler(svc, logg, func(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
		res, err := svc.BuildPlan(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, res)
	})
}

type manualLineRequest struct {
	ProductID  string          `json:"productId" validate:"required,uuid"`
	Quantities cart.Quantities `json:"quantities"`
}

func HouseholdSetManualLine(svc planner.Service, logg *logger.Logger) http.HandlerFunc {
	return householdHandler(svc, logg, func(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
		var payload manualLineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := uuid.Parse(payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}
		session, err := svc.SetManualLine(r.Context(), id, productID, payload.Quantities)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, session)
	})
}

func HouseholdFreezerSimulation(svc planner.Service, logg *logger.Logger) http.HandlerFunc {
	return householdHandler(svc, logg, func(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
		res, err := svc.SimulateFreezer(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, res)
	})
}

func HouseholdCalendar(svc planner.Service, logg *logger.Logger) http.HandlerFunc {
	return householdHandler(svc, logg, func(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
		view, err := svc.Calendar(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	})
}

type swapDaysRequest struct {
	A *int `json:"a" validate:"required,min=0"`
	B *int `json:"b" validate:"required,min=0"`
}

func HouseholdSwapDays(svc planner.Service, logg *logger.Logger) http.HandlerFunc {
	return householdHandler(svc, logg, func(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
		var payload swapDaysRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view, err := svc.SwapDays(r.Context(), id, *payload.A, *payload.B)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	})
}

func HouseholdResetCalendar(svc planner.Service, logg *logger.Logger) http.HandlerFunc {
	return householdHandler(svc, logg, func(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
		view, err := svc.ResetCalendar(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	})
}
