package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/angelmondragon/freezerplan-backend/internal/budget"
	"github.com/angelmondragon/freezerplan-backend/internal/calendar"
	"github.com/angelmondragon/freezerplan-backend/internal/cart"
	"github.com/angelmondragon/freezerplan-backend/internal/catalog"
	"github.com/angelmondragon/freezerplan-backend/internal/demand"
	"github.com/angelmondragon/freezerplan-backend/internal/freezer"
	"github.com/angelmondragon/freezerplan-backend/internal/household"
	"github.com/angelmondragon/freezerplan-backend/internal/persona"
	"github.com/angelmondragon/freezerplan-backend/internal/purchase"
	"github.com/angelmondragon/freezerplan-backend/pkg/config"
	"github.com/angelmondragon/freezerplan-backend/pkg/db"
	"github.com/angelmondragon/freezerplan-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/freezerplan-backend/pkg/errors"
	"github.com/angelmondragon/freezerplan-backend/pkg/logger"
	"github.com/angelmondragon/freezerplan-backend/pkg/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service runs the planning engine against stored household sessions.
type Service interface {
	Catalog(ctx context.Context) (*catalog.Catalog, error)
	GetSession(ctx context.Context, householdID uuid.UUID) (*Session, error)
	SaveProfile(ctx context.Context, householdID uuid.UUID, profile household.Profile) (*Session, error)
	SaveFreezer(ctx context.Context, householdID uuid.UUID, fz household.Freezer) (*Session, error)
	Demand(ctx context.Context, householdID uuid.UUID) (demand.Result, error)
	HasExistingCustomizations(ctx context.Context, householdID uuid.UUID) (bool, error)
	ApplyPersona(ctx context.Context, householdID uuid.UUID, personaID enums.PersonaID, confirm bool) (*PersonaResult, error)
	AutoScale(ctx context.Context, householdID uuid.UUID, input AutoScaleInput) (*AutoScaleResult, error)
	SetManualLine(ctx context.Context, householdID, productID uuid.UUID, quantities cart.Quantities) (*Session, error)
	BuildPlan(ctx context.Context, householdID uuid.UUID) (*BuildResult, error)
	SimulateFreezer(ctx context.Context, householdID uuid.UUID) (freezer.Result, error)
	Calendar(ctx context.Context, householdID uuid.UUID) (*CalendarView, error)
	SwapDays(ctx context.Context, householdID uuid.UUID, a, b int) (*CalendarView, error)
	ResetCalendar(ctx context.Context, householdID uuid.UUID) (*CalendarView, error)
}

// CatalogSource loads the product catalog.
type CatalogSource interface {
	Load(ctx context.Context) (*catalog.Catalog, error)
}

// CalendarCache memoises generated calendars by input digest.
type CalendarCache interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Store(ctx context.Context, key string, value []byte, ttl time.Duration) error
	CalendarKey(digest string) string
}

// Session is everything stored for a household.
type Session struct {
	HouseholdID uuid.UUID         `json:"householdId"`
	Profile     household.Profile `json:"profile"`
	Freezer     household.Freezer `json:"freezer"`
	UsableCuFt  float64           `json:"usableCuFt"`
	PersonaID   *enums.PersonaID  `json:"personaId,omitempty"`
	Plan        cart.Plan         `json:"plan"`
	Pickup      cart.PickupList   `json:"pickup"`
	Calendar    *CalendarView     `json:"calendar,omitempty"`
	Persisted   bool              `json:"persisted"`
}

// CalendarView is a calendar with its tallies.
type CalendarView struct {
	StartDate string           `json:"startDate"`
	Days      []calendar.Day   `json:"days"`
	Summary   calendar.Summary `json:"summary"`
	Stored    bool             `json:"stored"`
}

// PersonaResult is the saved profile after a persona was applied.
type PersonaResult struct {
	persona.Result
	Session *Session `json:"session"`
}

// AutoScaleInput selects the scaling target and mode.
type AutoScaleInput struct {
	WeeklyBudget decimal.Decimal
	Iterative    bool
}

// AutoScaleResult reports the new frequencies and their cost.
type AutoScaleResult struct {
	Frequencies household.Frequencies `json:"frequencies"`
	AnnualCost  decimal.Decimal       `json:"annualCost"`
	TargetCost  decimal.Decimal       `json:"targetCost"`
	Passes      int                   `json:"passes"`
	Demand      demand.Result         `json:"demand"`
}

// BuildResult is a rebuilt plan after the freezer pass.
type BuildResult struct {
	Plan              cart.Plan              `json:"plan"`
	TotalCost         decimal.Decimal        `json:"totalCost"`
	Lines             []purchase.LineSummary `json:"lines"`
	Simulation        freezer.Result         `json:"simulation"`
	CalendarRebuilt   bool                   `json:"calendarRebuilt"`
	PlanFingerprint   string                 `json:"planFingerprint"`
	PickupUnits       int                    `json:"pickupUnits"`
	PendingDeliveries []int                  `json:"pendingDeliveries,omitempty"`
}

// ServiceParams wires the planner dependencies. Cache and Metrics are optional.
type ServiceParams struct {
	DB         *db.Client
	Catalog    CatalogSource
	Households *household.Repository
	Plans      *cart.Repository
	Calendars  *calendar.Repository
	Cache      CalendarCache
	Metrics    *metrics.PlannerMetrics
	Logger     *logger.Logger
	Config     config.PlannerConfig
	Generator  *calendar.Generator
	Now        func() time.Time
}

type service struct {
	db         *db.Client
	catalog    CatalogSource
	households *household.Repository
	plans      *cart.Repository
	calendars  *calendar.Repository
	cache      CalendarCache
	metrics    *metrics.PlannerMetrics
	logg       *logger.Logger
	cfg        config.PlannerConfig
	generator  *calendar.Generator
	now        func() time.Time
}

// NewService constructs a planner service instance.
func NewService(p ServiceParams) (Service, error) {
	if p.DB == nil {
		return nil, fmt.Errorf("db client required")
	}
	if p.Catalog == nil {
		return nil, fmt.Errorf("catalog source required")
	}
	if p.Households == nil {
		return nil, fmt.Errorf("household repository required")
	}
	if p.Plans == nil {
		return nil, fmt.Errorf("plan repository required")
	}
	if p.Calendars == nil {
		return nil, fmt.Errorf("calendar repository required")
	}
	if p.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if p.Config.BudgetFitPasses < 1 {
		p.Config.BudgetFitPasses = 1
	}
	if p.Generator == nil {
		p.Generator = calendar.NewGenerator(nil)
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	return &service{
		db:         p.DB,
		catalog:    p.Catalog,
		households: p.Households,
		plans:      p.Plans,
		calendars:  p.Calendars,
		cache:      p.Cache,
		metrics:    p.Metrics,
		logg:       p.Logger,
		cfg:        p.Config,
		generator:  p.Generator,
		now:        p.Now,
	}, nil
}

// track scopes the context logger and records the operation outcome.
func (s *service) track(ctx context.Context, householdID uuid.UUID, op string) (context.Context, func(*error)) {
	ctx = s.logg.WithFields(ctx, map[string]any{"household_id": householdID.String(), "operation": op})
	started := time.Now()
	return ctx, func(errp *error) {
		var err error
		if errp != nil {
			err = *errp
		}
		s.metrics.Observe(op, time.Since(started), err)
		if err == nil {
			s.logg.Debug(ctx, "planner operation completed")
			return
		}
		if pkgerrors.As(err) != nil && pkgerrors.As(err).Code() != pkgerrors.CodeInternal {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "planner operation rejected")
			return
		}
		s.logg.Error(ctx, "planner operation failed", err)
	}
}

func (s *service) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	cat, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load catalog")
	}
	return cat, nil
}

// state is the stored session plus the loaded catalog.
type state struct {
	record    household.Record
	persisted bool
	plan      *cart.Stored
	calendar  *calendar.Stored
}

func (s *service) load(ctx context.Context, householdID uuid.UUID) (*state, error) {
	st := &state{}
	rec, err := s.households.Find(ctx, householdID)
	switch {
	case err == nil:
		st.record = *rec
		st.persisted = true
	case db.IsNotFound(err):
		st.record = household.NewRecord(householdID)
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load household")
	}
	if !st.persisted {
		return st, nil
	}

	stored, err := s.plans.Find(ctx, householdID)
	switch {
	case err == nil:
		st.plan = stored
	case !db.IsNotFound(err):
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load plan")
	}

	cal, err := s.calendars.Find(ctx, householdID)
	switch {
	case err == nil:
		st.calendar = cal
	case !db.IsNotFound(err):
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load calendar")
	}
	return st, nil
}

func (st *state) currentPlan() cart.Plan {
	if st.plan == nil {
		return cart.Plan{}
	}
	return st.plan.Plan
}

func (st *state) currentPickup() cart.PickupList {
	if st.plan == nil || st.plan.Pickup == nil {
		return cart.PickupList{}
	}
	return st.plan.Pickup
}

func (st *state) session() *Session {
	out := &Session{
		HouseholdID: st.record.ID,
		Profile:     st.record.Profile,
		Freezer:     st.record.Freezer,
		UsableCuFt:  st.record.Freezer.UsableCuFt(),
		PersonaID:   st.record.PersonaID,
		Plan:        st.currentPlan(),
		Pickup:      st.currentPickup(),
		Persisted:   st.persisted,
	}
	if out.Plan.Lines == nil {
		out.Plan.Lines = []cart.Line{}
	}
	if st.calendar != nil {
		out.Calendar = viewOf(st.calendar.StartDate, st.calendar.Days, true)
	}
	return out
}

func viewOf(start time.Time, days []calendar.Day, stored bool) *CalendarView {
	return &CalendarView{
		StartDate: start.UTC().Format("2006-01-02"),
		Days:      days,
		Summary:   calendar.Summarize(days),
		Stored:    stored,
	}
}

func (s *service) GetSession(ctx context.Context, householdID uuid.UUID) (_ *Session, err error) {
	ctx, done := s.track(ctx, householdID, "get_session")
	defer done(&err)

	st, err := s.load(ctx, householdID)
	if err != nil {
		return nil, err
	}
	return st.session(), nil
}

func (s *service) SaveProfile(ctx context.Context, householdID uuid.UUID, profile household.Profile) (_ *Session, err error) {
	ctx, done := s.track(ctx, householdID, "save_profile")
	defer done(&err)

	if err = profile.Validate(); err != nil {
		return nil, err
	}
	st, err := s.load(ctx, householdID)
	if err != nil {
		return nil, err
	}
	st.record.Profile = profile.Clone()
	if err = s.saveRecord(ctx, st); err != nil {
		return nil, err
	}
	return st.session(), nil
}

func (s *service) SaveFreezer(ctx context.Context, householdID uuid.UUID, fz household.Freezer) (_ *Session, err error) {
	ctx, done := s.track(ctx, householdID, "save_freezer")
	defer done(&err)

	if err = validateFreezer(fz); err != nil {
		return nil, err
	}
	st, err := s.load(ctx, householdID)
	if err != nil {
		return nil, err
	}
	st.record.Freezer = fz
	if err = s.saveRecord(ctx, st); err != nil {
		return nil, err
	}
	return st.session(), nil
}

func validateFreezer(fz household.Freezer) error {
	bad := map[string]any{}
	if fz.FridgeCuFt < 0 {
		bad["fridgeCuFt"] = fz.FridgeCuFt
	}
	if fz.ChestCuFt < 0 {
		bad["chestCuFt"] = fz.ChestCuFt
	}
	if fz.FridgeEfficiency < 0 || fz.FridgeEfficiency > 1 {
		bad["fridgeEfficiency"] = fz.FridgeEfficiency
	}
	if fz.ChestEfficiency < 0 || fz.ChestEfficiency > 1 {
		bad["chestEfficiency"] = fz.ChestEfficiency
	}
	if len(bad) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid freezer").WithDetails(bad)
}

func (s *service) saveRecord(ctx context.Context, st *state) error {
	st.record.UpdatedAt = s.now().UTC()
	if err := s.households.Save(ctx, st.record); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save household")
	}
	st.persisted = true
	return nil
}

func (s *service) Demand(ctx context.Context, householdID uuid.UUID) (_ demand.Result, err error) {
	ctx, done := s.track(ctx, householdID, "demand")
	defer done(&err)

	cat, err := s.Catalog(ctx)
	if err != nil {
		return demand.Result{}, err
	}
	st, err := s.load(ctx, householdID)
	if err != nil {
		return demand.Result{}, err
	}
	return demand.Calculate(st.record.Profile, cat)
}

func (s *service) HasExistingCustomizations(ctx context.Context, householdID uuid.UUID) (_ bool, err error) {
	ctx, done := s.track(ctx, householdID, "customizations")
	defer done(&err)

	st, err := s.load(ctx, householdID)
	if err != nil {
		return false, err
	}
	return household.HasExistingCustomizations(st.record.Profile), nil
}

func (s *service) ApplyPersona(ctx context.Context, householdID uuid.UUID, personaID enums.PersonaID, confirm bool) (_ *PersonaResult, err error) {
	ctx, done := s.track(ctx, householdID, "apply_persona")
	defer done(&err)

	cat, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	st, err := s.load(ctx, householdID)
	if err != nil {
		return nil, err
	}
	if !confirm && household.HasExistingCustomizations(st.record.Profile) {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "profile has customizations; confirm to overwrite").
			WithDetails(map[string]any{"personaId": personaID})
	}

	res, err := persona.Apply(personaID, cat, st.record.Profile)
	if err != nil {
		return nil, err
	}
	id := res.Persona
	st.record.Profile = res.Profile
	st.record.PersonaID = &id
	if err = s.saveRecord(ctx, st); err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithField(ctx, "persona_id", string(id)), "persona applied")
	return &PersonaResult{Result: res, Session: st.session()}, nil
}

func (s *service) AutoScale(ctx context.Context, householdID uuid.UUID, input AutoScaleInput) (_ *AutoScaleResult, err error) {
	ctx, done := s.track(ctx, householdID, "auto_scale")
	defer done(&err)

	if input.WeeklyBudget.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "weekly budget must not be negative")
	}
	cat, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	st, err := s.load(ctx, householdID)
	if err != nil {
		return nil, err
	}

	out := &AutoScaleResult{Passes: 1}
	profile := st.record.Profile.Clone()
	if input.Iterative {
		fit, err := budget.Fit(profile, cat, input.WeeklyBudget, s.cfg.BudgetFitPasses)
		if err != nil {
			return nil, err
		}
		profile.Frequencies = fit.Frequencies
		out.Passes = fit.Passes
	} else {
		freqs, err := budget.AutoScaleToBudget(profile, cat, input.WeeklyBudget)
		if err != nil {
			return nil, err
		}
		profile.Frequencies = freqs
	}
	profile.WeeklyBudget = input.WeeklyBudget

	res, err := demand.Calculate(profile, cat)
	if err != nil {
		return nil, err
	}
	st.record.Profile = profile
	if err = s.saveRecord(ctx, st); err != nil {
		return nil, err
	}

	out.Frequencies = profile.Frequencies
	out.AnnualCost = res.TotalCost
	out.TargetCost = input.WeeklyBudget.Mul(decimal.NewFromInt(52))
	out.Demand = res
	return out, nil
}

func (s *service) SetManualLine(ctx context.Context, householdID, productID uuid.UUID, quantities cart.Quantities) (_ *Session, err error) {
	ctx, done := s.track(ctx, householdID, "set_manual_line")
	defer done(&err)

	cat, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := cat.Get(productID); !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %s not found", productID))
	}
	st, err := s.load(ctx, householdID)
	if err != nil {
		return nil, err
	}

	plan := st.currentPlan().Clone()
	plan.SetManual(productID, quantities)
	plan.Cleanup()
	if err = plan.Validate(); err != nil {
		return nil, err
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if !st.persisted {
			st.record.UpdatedAt = s.now().UTC()
			if err := s.households.WithTx(tx).Save(ctx, st.record); err != nil {
				return err
			}
		}
		stored, err := s.plans.WithTx(tx).Save(ctx, householdID, plan, st.currentPickup())
		if err != nil {
			return err
		}
		st.plan = stored
		return nil
	})
	if err != nil {
		return nil, asInternal(err, "save plan")
	}
	st.persisted = true
	return st.session(), nil
}

func (s *service) BuildPlan(ctx context.Context, householdID uuid.UUID) (_ *BuildResult, err error) {
	ctx, done := s.track(ctx, householdID, "build_plan")
	defer done(&err)

	cat, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	st, err := s.load(ctx, householdID)
	if err != nil {
		return nil, err
	}

	built, err := purchase.BuildInto(st.currentPlan().ManualPart(), st.record.Profile, cat)
	if err != nil {
		return nil, err
	}
	sim, err := freezer.Simulate(built.Plan, cat, st.record.Freezer.UsableCuFt())
	if err != nil {
		return nil, err
	}

	final := sim.Plan
	fingerprint := final.Fingerprint()
	profileDigest := calendar.ProfileDigest(st.record.Profile)
	rebuild := st.calendar == nil ||
		st.calendar.PlanFingerprint != fingerprint ||
		st.calendar.ProfileHash != profileDigest

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if !st.persisted {
			st.record.UpdatedAt = s.now().UTC()
			if err := s.households.WithTx(tx).Save(ctx, st.record); err != nil {
				return err
			}
		}
		stored, err := s.plans.WithTx(tx).Save(ctx, householdID, final, sim.Pickup)
		if err != nil {
			return err
		}
		st.plan = stored
		if !rebuild {
			return nil
		}

		cal, err := s.regenerate(ctx, st, final, cat, fingerprint, profileDigest)
		if err != nil {
			return err
		}
		if err := s.calendars.WithTx(tx).Save(ctx, *cal); err != nil {
			return err
		}
		st.calendar = cal
		return nil
	})
	if err != nil {
		return nil, asInternal(err, "save plan")
	}
	st.persisted = true

	s.metrics.AddPickupUnits(len(sim.Pickup))
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"plan_fingerprint": fingerprint,
		"pickup_units":     len(sim.Pickup),
		"calendar_rebuilt": rebuild,
	}), "plan built")

	return &BuildResult{
		Plan:              final,
		TotalCost:         built.TotalCost,
		Lines:             built.Lines,
		Simulation:        sim,
		CalendarRebuilt:   rebuild,
		PlanFingerprint:   fingerprint,
		PickupUnits:       len(sim.Pickup),
		PendingDeliveries: sim.PendingDeliveries,
	}, nil
}

// regenerate produces a new calendar for st, keeping the stored start date and locks.
func (s *service) regenerate(ctx context.Context, st *state, plan cart.Plan, cat *catalog.Catalog, fingerprint, profileDigest string) (*calendar.Stored, error) {
	start := calendar.StartDateAfter(s.now(), s.cfg.StartLeadDays)
	var previous []calendar.Day
	if st.calendar != nil {
		start = st.calendar.StartDate
		previous = st.calendar.Days
	}
	days, err := s.generate(ctx, plan, cat, st.record.Profile, start, fingerprint, profileDigest)
	if err != nil {
		return nil, err
	}
	return &calendar.Stored{
		HouseholdID:     st.record.ID,
		PlanFingerprint: fingerprint,
		ProfileHash:     profileDigest,
		StartDate:       start,
		GeneratedAt:     s.now().UTC(),
		Days:            calendar.OverlayLocked(previous, days),
	}, nil
}

// generate returns the unlocked calendar for the inputs, through the cache when wired.
// Cache failures fall back to generation.
func (s *service) generate(ctx context.Context, plan cart.Plan, cat *catalog.Catalog, profile household.Profile, start time.Time, fingerprint, profileDigest string) ([]calendar.Day, error) {
	if s.cache == nil {
		return s.generator.Generate(plan, cat, profile, start)
	}

	key := s.cache.CalendarKey(calendar.CacheDigest(fingerprint, profileDigest, start))
	raw, ok, err := s.cache.Load(ctx, key)
	switch {
	case err != nil:
		s.metrics.CacheResult("error")
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "calendar cache read failed")
	case ok:
		var days []calendar.Day
		if err := json.Unmarshal(raw, &days); err == nil {
			s.metrics.CacheResult("hit")
			return days, nil
		}
		s.metrics.CacheResult("error")
		s.logg.Warn(ctx, "calendar cache entry unreadable")
	default:
		s.metrics.CacheResult("miss")
	}

	days, err := s.generator.Generate(plan, cat, profile, start)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(days); err == nil {
		if err := s.cache.Store(ctx, key, payload, s.cfg.CalendarCacheTTL); err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "calendar cache write failed")
		}
	}
	return days, nil
}

func (s *service) SimulateFreezer(ctx context.Context, householdID uuid.UUID) (_ freezer.Result, err error) {
	ctx, done := s.track(ctx, householdID, "simulate_freezer")
	defer done(&err)

	cat, err := s.Catalog(ctx)
	if err != nil {
		return freezer.Result{}, err
	}
	st, err := s.load(ctx, householdID)
	if err != nil {
		return freezer.Result{}, err
	}
	return freezer.Simulate(st.currentPlan(), cat, st.record.Freezer.UsableCuFt())
}

func (s *service) Calendar(ctx context.Context, householdID uuid.UUID) (_ *CalendarView, err error) {
	ctx, done := s.track(ctx, householdID, "calendar")
	defer done(&err)

	st, err := s.load(ctx, householdID)
	if err != nil {
		return nil, err
	}
	plan := st.currentPlan()
	fingerprint := plan.Fingerprint()
	profileDigest := calendar.ProfileDigest(st.record.Profile)
	if st.calendar != nil && st.calendar.PlanFingerprint == fingerprint && st.calendar.ProfileHash == profileDigest {
		return viewOf(st.calendar.StartDate, st.calendar.Days, true), nil
	}

	cat, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	if plan.IsEmpty() {
		if st.calendar != nil {
			if err = s.calendars.Delete(ctx, householdID); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete calendar")
			}
			st.calendar = nil
		}
		return s.freeCalendar(plan, cat, st.record.Profile)
	}

	cal, err := s.regenerate(ctx, st, plan, cat, fingerprint, profileDigest)
	if err != nil {
		return nil, err
	}
	if err = s.calendars.Save(ctx, *cal); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save calendar")
	}
	return viewOf(cal.StartDate, cal.Days, true), nil
}

// freeCalendar is the unsaved all-free year shown before any plan exists.
func (s *service) freeCalendar(plan cart.Plan, cat *catalog.Catalog, profile household.Profile) (*CalendarView, error) {
	start := calendar.StartDateAfter(s.now(), s.cfg.StartLeadDays)
	days, err := s.generator.Generate(plan, cat, profile, start)
	if err != nil {
		return nil, err
	}
	return viewOf(start, days, false), nil
}

// ResetCalendar drops the stored calendar with its locks and starts a fresh
// year from the next start date.
func (s *service) ResetCalendar(ctx context.Context, householdID uuid.UUID) (_ *CalendarView, err error) {
	ctx, done := s.track(ctx, householdID, "reset_calendar")
	defer done(&err)

	cat, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	st, err := s.load(ctx, householdID)
	if err != nil {
		return nil, err
	}
	plan := st.currentPlan()
	st.calendar = nil

	var cal *calendar.Stored
	if !plan.IsEmpty() {
		cal, err = s.regenerate(ctx, st, plan, cat, plan.Fingerprint(), calendar.ProfileDigest(st.record.Profile))
		if err != nil {
			return nil, err
		}
	}

	if st.persisted {
		err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
			repo := s.calendars.WithTx(tx)
			if err := repo.Delete(ctx, householdID); err != nil {
				return err
			}
			if cal == nil {
				return nil
			}
			return repo.Save(ctx, *cal)
		})
		if err != nil {
			return nil, asInternal(err, "reset calendar")
		}
	}
	if cal == nil {
		return s.freeCalendar(plan, cat, st.record.Profile)
	}
	s.logg.Info(s.logg.WithField(ctx, "start_date", cal.StartDate.Format("2006-01-02")), "calendar reset")
	return viewOf(cal.StartDate, cal.Days, true), nil
}

func (s *service) SwapDays(ctx context.Context, householdID uuid.UUID, a, b int) (_ *CalendarView, err error) {
	ctx, done := s.track(ctx, householdID, "swap_days")
	defer done(&err)

	st, err := s.load(ctx, householdID)
	if err != nil {
		return nil, err
	}
	if st.calendar == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no calendar stored for household")
	}
	days, err := calendar.Swap(st.calendar.Days, a, b)
	if err != nil {
		return nil, err
	}
	updated := *st.calendar
	updated.Days = days
	if err = s.calendars.Save(ctx, updated); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save calendar")
	}
	return viewOf(updated.StartDate, updated.Days, true), nil
}

// asInternal keeps typed errors and wraps the rest.
func asInternal(err error, message string) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, message)
}
