package progress

import (
	"slices"

	"github.com/julianstephens/vitalit/internal/models"
	"github.com/julianstephens/vitalit/internal/utils"
)

// distinctDates returns the valid YYYY-MM-DD dates in dates, deduplicated and
// sorted newest first. Timestamps are cut to their date part.
func distinctDates(dates []string) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if len(d) > 10 {
			d = d[:10]
		}
		if !utils.ValidateDate(d) || slices.Contains(out, d) {
			continue
		}
		out = append(out, d)
	}
	slices.Sort(out)
	slices.Reverse(out)
	return out
}

// Streak counts consecutive calendar days back from the most recent date in
// dates. The first gap of more than one day ends the count.
func Streak(dates []string) int {
	sorted := distinctDates(dates)
	if len(sorted) == 0 {
		return 0
	}
	streak := 1
	for i := 1; i < len(sorted); i++ {
		gap, err := utils.DaysBetween(sorted[i], sorted[i-1])
		if err != nil || gap != 1 {
			break
		}
		streak++
	}
	return streak
}

// LongestStreak is the longest run of consecutive calendar days anywhere in
// dates.
func LongestStreak(dates []string) int {
	sorted := distinctDates(dates)
	if len(sorted) == 0 {
		return 0
	}
	best, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		gap, err := utils.DaysBetween(sorted[i], sorted[i-1])
		if err == nil && gap == 1 {
			run++
		} else {
			run = 1
		}
		best = max(best, run)
	}
	return best
}

// Point is one dated sample for averaging.
type Point struct {
	Date  string
	Value float64
}

// AverageSince averages the points dated on or after cutoff. Returns 0 when
// nothing qualifies.
func AverageSince(points []Point, cutoff string) float64 {
	var sum float64
	n := 0
	for _, p := range points {
		if p.Date >= cutoff && utils.ValidateDate(p.Date) {
			sum += p.Value
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// WeeklyAverage averages the points of the last weeks weeks before today.
func WeeklyAverage(points []Point, today string, weeks int) float64 {
	cutoff, err := utils.AddDays(today, -7*weeks)
	if err != nil {
		return 0
	}
	return AverageSince(points, cutoff)
}

// MonthlyAverage averages the points of the last months calendar months
// before today.
func MonthlyAverage(points []Point, today string, months int) float64 {
	t, err := utils.ParseDate(today)
	if err != nil {
		return 0
	}
	return AverageSince(points, utils.FormatDate(t.AddDate(0, -months, 0)))
}

// WeightPoints converts a weight log into averaging points.
func WeightPoints(logs []models.WeightLog) []Point {
	out := make([]Point, len(logs))
	for i, w := range logs {
		out[i] = Point{Date: w.Date, Value: w.Weight}
	}
	return out
}

// IsNewDay reports whether a cache stamped lastUpdated belongs to an earlier
// day than today.
func IsNewDay(lastUpdated, today string) bool {
	return lastUpdated != today
}

// RolloverWater returns d as it should read on today: the logged amount
// resets to 0 once the cache is from an earlier day.
func RolloverWater(d models.WaterIntakeData, today string) models.WaterIntakeData {
	if IsNewDay(d.LastUpdated, today) {
		d.LoggedMLToday = 0
		d.LastUpdated = today
	}
	return d
}
