package models

import "time"

// PlanRecord is the single active entitlement. It is stored apart from
// UserData so wiping wellness data leaves access untouched.
type PlanRecord struct {
	PlanID         int       `json:"planId"`
	StartDate      time.Time `json:"startDate"`
	ExpirationDate time.Time `json:"expirationDate"`
	IsActive       bool      `json:"isActive"`
}

// PlanStatus is a read-only view of the entitlement at a point in time.
type PlanStatus struct {
	Active        bool
	PlanID        int
	PlanName      string
	RemainingDays int
	Unlimited     bool
	Expired       bool
	ExpiresAt     time.Time
}
