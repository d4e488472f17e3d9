package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/vitalit/internal/backup"
	"github.com/julianstephens/vitalit/internal/badges"
	"github.com/julianstephens/vitalit/internal/catalog"
	"github.com/julianstephens/vitalit/internal/entitlement"
	"github.com/julianstephens/vitalit/internal/errors"
	"github.com/julianstephens/vitalit/internal/logger"
	"github.com/julianstephens/vitalit/internal/models"
	"github.com/julianstephens/vitalit/internal/state"
	"github.com/julianstephens/vitalit/internal/storage"
	"github.com/julianstephens/vitalit/internal/utils"
)

// Context carries everything a command needs. Build it with NewContext.
type Context struct {
	Store       storage.Provider
	Repo        *storage.Repository
	Catalog     *catalog.Catalog
	Clock       utils.Clock
	Location    *time.Location
	Entitlement *entitlement.Store

	// OnUnlock is told about every badge earned while a command runs.
	OnUnlock func(models.Badge)

	state *state.Store
}

// NewContext wires the repository and entitlement store around p. When
// plans is nil the plan record is kept in p next to the user data.
func NewContext(p storage.Provider, cat *catalog.Catalog, loc *time.Location, plans entitlement.RecordStore) *Context {
	if loc == nil {
		loc = time.Local
	}
	repo := storage.NewRepository(p)
	if plans == nil {
		plans = repo
	}
	clock := utils.SystemClock{Location: loc}
	return &Context{
		Store:       p,
		Repo:        repo,
		Catalog:     cat,
		Clock:       clock,
		Location:    loc,
		Entitlement: entitlement.New(plans, cat, clock),
		OnUnlock: func(b models.Badge) {
			fmt.Printf("🏅 Badge unlocked: %s %s\n", b.Icon, b.Name)
		},
	}
}

// State returns the snapshot store, loading user data on first use. Every
// commit is persisted and re-evaluated for badges.
func (c *Context) State() *state.Store {
	if c.state != nil {
		return c.state
	}
	s := state.NewStore(state.NewReducer(c.Catalog, c.Clock), c.Repo.LoadUserData())
	s.Subscribe(state.PersistHook(c.Repo))
	s.Subscribe(state.BadgeHook(badges.NewEngine(c.Clock), s))
	s.Subscribe(state.UnlockNotifier(func(b models.Badge) {
		if c.OnUnlock != nil {
			c.OnUnlock(b)
		}
	}))
	c.state = s
	return s
}

// Dispatch applies a to the snapshot and reports whether it changed.
func (c *Context) Dispatch(a state.Action) bool {
	return c.State().Dispatch(a)
}

// Today is the current calendar date in the configured location.
func (c *Context) Today() string {
	return utils.Today(c.Clock)
}

// Locale is the language catalog text is rendered in.
func (c *Context) Locale() string {
	return c.Repo.Language()
}

// CanAccess reports whether catalog content gated on plans is reachable.
// Content without access plans is open to everyone, plan or not.
func (c *Context) CanAccess(plans []int) bool {
	return len(plans) == 0 || c.Entitlement.HasAccess(plans)
}

// RequireAccess fails with ErrAccessDenied unless CanAccess(plans).
func (c *Context) RequireAccess(plans []int) error {
	if c.CanAccess(plans) {
		return nil
	}
	return errors.ErrAccessDenied
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr, err := backup.NewManager(c.Store.GetConfigPath())
	if err != nil {
		logger.Debug("Automatic backup skipped", "reason", err)
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}
