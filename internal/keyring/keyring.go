// Package keyring keeps secrets and the entitlement record in the OS keyring.
package keyring

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/vitalit/internal/constants"
	"github.com/julianstephens/vitalit/internal/models"
)

var (
	// ErrNotFound is returned when the keyring holds no entry for the user
	ErrNotFound = errors.New("entry not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

func get(user string) (string, error) {
	v, err := keyring.Get(constants.AppName, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return v, nil
}

func set(user, value string) error {
	if err := keyring.Set(constants.AppName, user, value); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", user, err)
	}
	return nil
}

func remove(user string) error {
	err := keyring.Delete(constants.AppName, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s from keyring: %w", user, err)
	}
	return nil
}

// GetConnectionString returns the stored PostgreSQL connection string.
func GetConnectionString() (string, error) {
	return get(constants.DefaultKeyringUser)
}

// SetConnectionString stores the PostgreSQL connection string.
func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	return set(constants.DefaultKeyringUser, connStr)
}

// DeleteConnectionString removes the PostgreSQL connection string.
func DeleteConnectionString() error {
	return remove(constants.DefaultKeyringUser)
}

// IsAvailable is a best-effort probe of the OS keyring.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

// PlanStore keeps the entitlement record in the keyring so it is not
// wiped along with the data file.
type PlanStore struct{}

func NewPlanStore() PlanStore {
	return PlanStore{}
}

func (PlanStore) LoadPlan() (*models.PlanRecord, error) {
	raw, err := get(constants.PlanKeyringUser)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rec models.PlanRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("failed to parse plan record: %w", err)
	}
	return &rec, nil
}

func (PlanStore) SavePlan(rec models.PlanRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to serialize plan record: %w", err)
	}
	return set(constants.PlanKeyringUser, string(data))
}

func (PlanStore) ClearPlan() error {
	if err := remove(constants.PlanKeyringUser); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}
