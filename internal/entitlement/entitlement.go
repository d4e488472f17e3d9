// Package entitlement decides which access plan is active and whether gated
// content is reachable. The record lives apart from user data so that wiping
// wellness data never grants or revokes access.
package entitlement

import (
	"context"
	"math"
	"slices"
	"time"

	"github.com/julianstephens/vitalit/internal/catalog"
	"github.com/julianstephens/vitalit/internal/logger"
	"github.com/julianstephens/vitalit/internal/models"
	"github.com/julianstephens/vitalit/internal/utils"
)

// RecordStore persists the single plan record. LoadPlan returns nil when no
// plan has been activated.
type RecordStore interface {
	LoadPlan() (*models.PlanRecord, error)
	SavePlan(models.PlanRecord) error
	ClearPlan() error
}

// Plans looks up access plans by id.
type Plans interface {
	Plan(id int) (catalog.Plan, bool)
}

// UnlimitedExpiry is the expiration stamped on plans without a time limit.
func UnlimitedExpiry(loc *time.Location) time.Time {
	return time.Date(2099, time.December, 31, 0, 0, 0, 0, loc)
}

// Store answers access questions against the persisted plan record. Every
// query re-reads the record so callers never act on a stale answer.
type Store struct {
	records RecordStore
	plans   Plans
	clock   utils.Clock
}

func New(records RecordStore, plans Plans, clock utils.Clock) *Store {
	return &Store{records: records, plans: plans, clock: clock}
}

func (s *Store) record() *models.PlanRecord {
	rec, err := s.records.LoadPlan()
	if err != nil {
		logger.Warn("Failed to load plan record, treating as no plan", "error", err)
		return nil
	}
	if rec == nil || !rec.IsActive {
		return nil
	}
	return rec
}

// Activate checks password against plan planID and, on a match, replaces any
// existing record with a fresh one starting now. It returns false and leaves
// the record untouched on an unknown plan or wrong password.
func (s *Store) Activate(planID int, password string) bool {
	plan, ok := s.plans.Plan(planID)
	if !ok || !plan.CheckPassword(password) {
		logger.Info("Plan activation rejected", "plan", planID)
		return false
	}

	now := s.clock.Now()
	expires := UnlimitedExpiry(now.Location())
	if !plan.Unlimited() {
		expires = now.Add(time.Duration(plan.DurationDays) * 24 * time.Hour)
	}
	rec := models.PlanRecord{
		PlanID:         planID,
		StartDate:      now,
		ExpirationDate: expires,
		IsActive:       true,
	}
	if err := s.records.SavePlan(rec); err != nil {
		logger.Error("Failed to save plan record", "plan", planID, "error", err)
		return false
	}
	logger.Info("Plan activated", "plan", planID, "expires", expires.Format(time.RFC3339))
	return true
}

// Deactivate removes the plan record entirely.
func (s *Store) Deactivate() error {
	return s.records.ClearPlan()
}

func (s *Store) expired(rec *models.PlanRecord) bool {
	return rec == nil || s.clock.Now().After(rec.ExpirationDate)
}

// IsExpired reports whether there is no active plan or its expiration has
// passed.
func (s *Store) IsExpired() bool {
	return s.expired(s.record())
}

// HasAccess reports whether content gated on required plan ids is reachable.
// Ungated content still needs an unexpired plan.
func (s *Store) HasAccess(required []int) bool {
	rec := s.record()
	if s.expired(rec) {
		return false
	}
	if len(required) == 0 {
		return true
	}
	return slices.Contains(required, rec.PlanID)
}

// CurrentPlan returns the catalog entry of the active plan, expired or not.
func (s *Store) CurrentPlan() (catalog.Plan, bool) {
	rec := s.record()
	if rec == nil {
		return catalog.Plan{}, false
	}
	return s.plans.Plan(rec.PlanID)
}

// RemainingDays returns whole days left rounded up, -1 for an unlimited
// plan, or 0 when there is no plan or it has run out.
func (s *Store) RemainingDays() int {
	return s.remaining(s.record())
}

func (s *Store) remaining(rec *models.PlanRecord) int {
	if rec == nil {
		return 0
	}
	if plan, ok := s.plans.Plan(rec.PlanID); !ok || plan.Unlimited() {
		return -1
	}
	left := rec.ExpirationDate.Sub(s.clock.Now())
	days := int(math.Ceil(left.Hours() / 24))
	return max(0, days)
}

// Status snapshots every access fact at once.
func (s *Store) Status() models.PlanStatus {
	rec := s.record()
	if rec == nil {
		return models.PlanStatus{Expired: true}
	}
	st := models.PlanStatus{
		Active:        true,
		PlanID:        rec.PlanID,
		RemainingDays: s.remaining(rec),
		Expired:       s.expired(rec),
		ExpiresAt:     rec.ExpirationDate,
	}
	st.Unlimited = st.RemainingDays == -1
	if plan, ok := s.plans.Plan(rec.PlanID); ok {
		st.PlanName = plan.Name.String()
	}
	return st
}

// Watch calls fn with a fresh Status immediately and then on every tick of
// interval until ctx is done. It only reads; a missed tick changes nothing.
func (s *Store) Watch(ctx context.Context, interval time.Duration, fn func(models.PlanStatus)) {
	fn(s.Status())
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(s.Status())
		}
	}
}
