package cli

import (
	"math"

	"github.com/julianstephens/vitalit/internal/logger"
	"github.com/julianstephens/vitalit/internal/models"
	"github.com/julianstephens/vitalit/internal/progress"
	"github.com/julianstephens/vitalit/internal/state"
)

// WaterToday returns the water calculator cache as it reads today. The
// logged amount restarts at zero on a new day.
func (c *Context) WaterToday() (models.WaterIntakeData, bool) {
	d, ok := c.Repo.LoadWaterIntake()
	if !ok {
		return d, false
	}
	return progress.RolloverWater(d, c.Today()), true
}

// LogWater records liters in the journal and adds them to today's total in
// the water calculator cache, when one exists.
func (c *Context) LogWater(liters float64) bool {
	if !c.Dispatch(state.LogWater{Liters: liters}) {
		return false
	}
	if d, ok := c.WaterToday(); ok {
		d.LoggedMLToday += int(math.Round(liters * 1000))
		if err := c.Repo.SaveWaterIntake(d); err != nil {
			logger.Warn("Failed to update water intake cache", "error", err)
		}
	}
	return true
}
