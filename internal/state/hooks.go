package state

import (
	"github.com/julianstephens/vitalit/internal/logger"
	"github.com/julianstephens/vitalit/internal/models"
)

// Evaluator reports the badges a snapshot newly qualifies for.
type Evaluator interface {
	Evaluate(models.UserData) []string
}

// Saver persists a snapshot.
type Saver interface {
	SaveUserData(models.UserData) error
}

// BadgeHook re-evaluates badges against every new snapshot and queues an
// UnlockBadge for each one earned. Unlock commits are skipped so the hook
// does not feed on its own output.
func BadgeHook(engine Evaluator, d Dispatcher) Listener {
	return func(c Commit) {
		if _, ok := c.Action.(UnlockBadge); ok {
			return
		}
		for _, id := range engine.Evaluate(c.Next) {
			d.Dispatch(UnlockBadge{ID: id})
		}
	}
}

// PersistHook saves every new snapshot. A failed save is logged and the
// in-memory snapshot stays authoritative.
func PersistHook(saver Saver) Listener {
	return func(c Commit) {
		if err := saver.SaveUserData(c.Next); err != nil {
			logger.Warn("Failed to persist user data", "action", c.Action.Kind(), "error", err)
		}
	}
}

// UnlockNotifier calls fn with each badge as it is unlocked.
func UnlockNotifier(fn func(models.Badge)) Listener {
	return func(c Commit) {
		a, ok := c.Action.(UnlockBadge)
		if !ok {
			return
		}
		for _, b := range c.Next.Badges {
			if b.ID == a.ID {
				logger.Info("Badge unlocked", "badge", b.ID)
				fn(b)
				return
			}
		}
	}
}
