package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/vitalit/internal/constants"
	"github.com/julianstephens/vitalit/internal/logger"
	"github.com/julianstephens/vitalit/internal/models"
)

// Repository maps the application's typed documents onto provider keys.
type Repository struct {
	p Provider
}

func NewRepository(p Provider) *Repository {
	return &Repository{p: p}
}

// Provider returns the underlying provider.
func (r *Repository) Provider() Provider {
	return r.p
}

func (r *Repository) getJSON(key string, dest any) error {
	data, err := r.p.Get(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return nil
}

func (r *Repository) putJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}
	if err := r.p.Put(key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func (r *Repository) delete(key string) error {
	if err := r.p.Delete(key); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// LoadUserData returns the saved snapshot. A missing or unreadable document
// yields a fresh snapshot; unreadable data is also logged.
func (r *Repository) LoadUserData() models.UserData {
	var u models.UserData
	if err := r.getJSON(constants.KeyUserData, &u); err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn("Failed to load user data, starting empty", "error", err)
		}
		return models.NewUserData()
	}
	return u.Normalize()
}

// SaveUserData writes the whole snapshot.
func (r *Repository) SaveUserData(u models.UserData) error {
	return r.putJSON(constants.KeyUserData, u)
}

// ClearUserData removes the snapshot.
func (r *Repository) ClearUserData() error {
	return r.delete(constants.KeyUserData)
}

// LoadPlan returns the entitlement record, or nil when none is stored.
func (r *Repository) LoadPlan() (*models.PlanRecord, error) {
	var rec models.PlanRecord
	if err := r.getJSON(constants.KeyUserPlan, &rec); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// SavePlan replaces the entitlement record.
func (r *Repository) SavePlan(rec models.PlanRecord) error {
	return r.putJSON(constants.KeyUserPlan, rec)
}

// ClearPlan removes the entitlement record.
func (r *Repository) ClearPlan() error {
	return r.delete(constants.KeyUserPlan)
}

// loadCache reads a calculator cache, reporting whether one was found.
func loadCache[T any](r *Repository, key string) (T, bool) {
	var v T
	if err := r.getJSON(key, &v); err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn("Failed to load calculator cache", "key", key, "error", err)
		}
		var zero T
		return zero, false
	}
	return v, true
}

func (r *Repository) LoadWaterIntake() (models.WaterIntakeData, bool) {
	return loadCache[models.WaterIntakeData](r, constants.KeyWaterIntake)
}

func (r *Repository) SaveWaterIntake(d models.WaterIntakeData) error {
	return r.putJSON(constants.KeyWaterIntake, d)
}

func (r *Repository) LoadDailyCalories() (models.DailyCaloriesData, bool) {
	return loadCache[models.DailyCaloriesData](r, constants.KeyDailyCalories)
}

func (r *Repository) SaveDailyCalories(d models.DailyCaloriesData) error {
	return r.putJSON(constants.KeyDailyCalories, d)
}

func (r *Repository) LoadBodyComposition() (models.BodyCompositionData, bool) {
	return loadCache[models.BodyCompositionData](r, constants.KeyBodyComposition)
}

func (r *Repository) SaveBodyComposition(d models.BodyCompositionData) error {
	return r.putJSON(constants.KeyBodyComposition, d)
}

// ResetCalculators removes all three calculator caches.
func (r *Repository) ResetCalculators() error {
	for _, key := range []string{constants.KeyWaterIntake, constants.KeyDailyCalories, constants.KeyBodyComposition} {
		if err := r.delete(key); err != nil {
			return err
		}
	}
	return nil
}

// Language returns the saved UI language, or the default locale.
func (r *Repository) Language() string {
	var lang string
	if err := r.getJSON(constants.KeyLanguage, &lang); err != nil || lang == "" {
		return constants.DefaultLocale
	}
	return lang
}

// SetLanguage saves the UI language.
func (r *Repository) SetLanguage(lang string) error {
	return r.putJSON(constants.KeyLanguage, lang)
}

// PreviousUserData returns the most recent snapshot that was overwritten, if
// the provider keeps history.
func (r *Repository) PreviousUserData() (models.UserData, bool, error) {
	h, ok := r.p.(Historian)
	if !ok {
		return models.UserData{}, false, nil
	}
	revs, err := h.History(constants.KeyUserData, 1)
	if err != nil || len(revs) == 0 {
		return models.UserData{}, false, err
	}
	var u models.UserData
	if err := json.Unmarshal(revs[0].Value, &u); err != nil {
		return models.UserData{}, false, fmt.Errorf("failed to parse previous user data: %w", err)
	}
	return u.Normalize(), true, nil
}
