package catalog

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/vitalit/internal/constants"
	"github.com/julianstephens/vitalit/internal/models"
)

// Plan is an access plan that can be activated with its password.
type Plan struct {
	ID           int             `yaml:"id" validate:"gte=1"`
	Name         models.Text     `yaml:"name"`
	Description  models.Text     `yaml:"description"`
	DurationDays int             `yaml:"durationDays" validate:"eq=-1|gte=1"`
	Password     string          `yaml:"password" validate:"required"`
	Features     models.TextList `yaml:"features"`

	hash []byte
}

// Unlimited reports whether the plan never expires.
func (p Plan) Unlimited() bool {
	return p.DurationDays == constants.UnlimitedPlanDays
}

// CheckPassword reports whether password unlocks the plan.
func (p Plan) CheckPassword(password string) bool {
	if len(p.hash) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(p.hash, []byte(password)) == nil
}

// seal hashes the password and drops the plaintext so only the hash stays
// in memory after load.
func (p *Plan) seal() error {
	if p.Name.IsZero() {
		return fmt.Errorf("plan has no name")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	p.hash = hash
	p.Password = ""
	return nil
}

// NewPlan builds a sealed plan outside of a catalog file.
func NewPlan(id int, name string, durationDays int, password string) (Plan, error) {
	p := Plan{ID: id, Name: models.Plain(name), DurationDays: durationDays, Password: password}
	if err := p.seal(); err != nil {
		return Plan{}, err
	}
	return p, nil
}
