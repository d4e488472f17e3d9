// Package progress holds the pure health calculators. Every function takes
// its inputs explicitly and guards degenerate denominators so no NaN or Inf
// can leak into saved state.
package progress

import (
	"fmt"
	"math"

	"github.com/julianstephens/vitalit/internal/models"
)

// Assessment is a computed metric together with its qualitative reading.
type Assessment struct {
	Value    float64
	Category string
	Message  string
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// BMI returns weight / height² rounded to two places. Height is in
// centimetres. Non-positive height yields 0.
func BMI(weightKg, heightCm float64) float64 {
	if heightCm <= 0 || weightKg <= 0 {
		return 0
	}
	m := heightCm / 100
	return round(finite(weightKg/(m*m)), 2)
}

const (
	BMIUnderweight = "Underweight"
	BMINormal      = "Normal weight"
	BMIOverweight  = "Overweight"
	BMIObese       = "Obese"
)

// BMICategory buckets a BMI value.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}

// BMIMessage is the advice shown next to a BMI value.
func BMIMessage(bmi float64) string {
	switch BMICategory(bmi) {
	case BMIUnderweight:
		return "⚠️ Your BMI suggests you may be underweight. Consider consulting a healthcare provider."
	case BMINormal:
		return "✅ Your BMI is within the healthy range. Keep up the good work!"
	case BMIOverweight:
		return "⚡ Your BMI suggests you may benefit from a healthy weight loss plan."
	default:
		return "🏥 Your BMI suggests consulting a healthcare provider for a personalized plan."
	}
}

// AssessBMI computes BMI with its category and message.
func AssessBMI(weightKg, heightCm float64) Assessment {
	bmi := BMI(weightKg, heightCm)
	return Assessment{Value: bmi, Category: BMICategory(bmi), Message: BMIMessage(bmi)}
}

// BMR is the Mifflin-St Jeor basal metabolic rate. Weight in kg, height in
// cm, age in years. Anything other than male uses the female constant.
func BMR(weightKg, heightCm float64, age int, sex models.Sex) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if sex == models.SexMale {
		return base + 5
	}
	return base - 161
}

var activityMultipliers = map[models.ActivityLevel]float64{
	models.ActivitySedentary:  1.2,
	models.ActivityLight:      1.375,
	models.ActivityModerate:   1.55,
	models.ActivityActive:     1.725,
	models.ActivityVeryActive: 1.9,
}

// ActivityMultiplier returns the TDEE factor for level, 1.2 when unknown.
func ActivityMultiplier(level models.ActivityLevel) float64 {
	if m, ok := activityMultipliers[level]; ok {
		return m
	}
	return 1.2
}

// DailyCalories is BMR scaled by activity and shifted by 500 kcal for a
// lose or gain goal, rounded to the nearest integer.
func DailyCalories(weightKg, heightCm float64, age int, sex models.Sex, activity models.ActivityLevel, goal models.Goal) int {
	maintenance := BMR(weightKg, heightCm, age, sex) * ActivityMultiplier(activity)
	switch goal {
	case models.GoalLose:
		maintenance -= 500
	case models.GoalGain:
		maintenance += 500
	}
	return int(math.Round(finite(maintenance)))
}

// CalorieMessage describes a calorie target for goal.
func CalorieMessage(calories int, goal models.Goal) string {
	switch goal {
	case models.GoalLose:
		return fmt.Sprintf("🔥 To lose weight steadily, aim for %d calories per day.", calories)
	case models.GoalGain:
		return fmt.Sprintf("💪 To gain weight healthily, aim for %d calories per day.", calories)
	case models.GoalMaintain:
		return fmt.Sprintf("⚖️ To maintain your current weight, aim for %d calories per day.", calories)
	default:
		return fmt.Sprintf("🎯 Your daily calorie target is %d calories.", calories)
	}
}

// WaterIntakeML is the additive water target: 35 ml per kg, plus 500 ml for
// moderate or 1000 ml for active, plus 500 ml when losing weight.
func WaterIntakeML(weightKg float64, activity models.ActivityLevel, goal models.Goal) int {
	if weightKg <= 0 {
		return 0
	}
	ml := 35 * weightKg
	switch activity {
	case models.ActivityModerate:
		ml += 500
	case models.ActivityActive:
		ml += 1000
	}
	if goal == models.GoalLose {
		ml += 500
	}
	return int(math.Round(ml))
}

// WaterNeedsLiters is the older multiplicative water estimate used by the
// profile screen: 0.035 L per kg scaled 1.1 to 1.4 by activity. It does not
// agree with WaterIntakeML and is kept as its own calculator.
func WaterNeedsLiters(weightKg float64, activity models.ActivityLevel) float64 {
	if weightKg <= 0 {
		return 0
	}
	base := weightKg * 0.035
	switch activity {
	case models.ActivityLight:
		return base * 1.1
	case models.ActivityModerate:
		return base * 1.2
	case models.ActivityActive:
		return base * 1.3
	case models.ActivityVeryActive:
		return base * 1.4
	default:
		return base
	}
}

// WaterIntakeMessage grades progress towards the daily water target.
func WaterIntakeMessage(loggedML, recommendedML int) string {
	pct := 0
	if recommendedML > 0 {
		pct = int(math.Round(float64(loggedML) / float64(recommendedML) * 100))
	}
	switch {
	case pct >= 100:
		return fmt.Sprintf("🎉 Excellent! You've reached %d%% of your daily water goal!", pct)
	case pct >= 75:
		return fmt.Sprintf("💧 Great job! You've reached %d%% of your daily goal.", pct)
	case pct >= 50:
		return fmt.Sprintf("👍 Good progress! You've reached %d%% of your daily goal.", pct)
	case pct >= 25:
		return fmt.Sprintf("💪 Keep going! You've reached %d%% of your daily goal.", pct)
	default:
		return fmt.Sprintf("🚰 Let's hydrate! You've reached %d%% of your daily goal.", pct)
	}
}

// WaistToHipRatio returns waist / hip to three places, 0 when hip is not
// positive.
func WaistToHipRatio(waist, hip float64) float64 {
	if hip <= 0 || waist <= 0 {
		return 0
	}
	return round(finite(waist/hip), 3)
}

const (
	RiskLow      = "Low risk"
	RiskModerate = "Moderate risk"
	RiskHigh     = "High risk"
)

// WaistToHipRisk grades a ratio with the calculator thresholds
// (male <0.95 / ≤1.0, female <0.80 / ≤0.85).
func WaistToHipRisk(ratio float64, sex models.Sex) string {
	if sex == models.SexMale {
		switch {
		case ratio < 0.95:
			return RiskLow
		case ratio <= 1.0:
			return RiskModerate
		}
		return RiskHigh
	}
	switch {
	case ratio < 0.80:
		return RiskLow
	case ratio <= 0.85:
		return RiskModerate
	}
	return RiskHigh
}

// BodyPageWaistToHipRisk grades a ratio with the body page thresholds
// (male <0.9 / <1.0, female <0.8 / <0.85). These differ from
// WaistToHipRisk and both are in use.
func BodyPageWaistToHipRisk(ratio float64, sex models.Sex) string {
	if sex == models.SexMale {
		switch {
		case ratio < 0.9:
			return "Low"
		case ratio < 1.0:
			return "Moderate"
		}
		return "High"
	}
	switch {
	case ratio < 0.8:
		return "Low"
	case ratio < 0.85:
		return "Moderate"
	}
	return "High"
}

// WaistToHipMessage explains the calculator risk band.
func WaistToHipMessage(ratio float64, sex models.Sex) string {
	switch WaistToHipRisk(ratio, sex) {
	case RiskLow:
		return "✅ Your waist-to-hip ratio suggests a low health risk."
	case RiskModerate:
		return "⚠️ Your waist-to-hip ratio suggests moderate health risk."
	default:
		return "🚨 Your waist-to-hip ratio suggests higher health risk. Consider consulting a healthcare provider."
	}
}

// AssessWaistToHip computes the ratio with its calculator risk band.
func AssessWaistToHip(waist, hip float64, sex models.Sex) Assessment {
	r := WaistToHipRatio(waist, hip)
	return Assessment{Value: r, Category: WaistToHipRisk(r, sex), Message: WaistToHipMessage(r, sex)}
}

// BodyFatNavy estimates body fat with the US Navy tape method, clamped to
// [0, 50] and rounded to one place. Inputs are centimetres. Measurements
// that make a logarithm undefined yield 0.
func BodyFatNavy(waist, hip, neck, height float64, sex models.Sex) float64 {
	if height <= 0 {
		return 0
	}
	var denom float64
	if sex == models.SexMale {
		girth := waist - neck
		if girth <= 0 {
			return 0
		}
		denom = 1.0324 - 0.19077*math.Log10(girth) + 0.15456*math.Log10(height)
	} else {
		girth := waist + hip - neck
		if girth <= 0 {
			return 0
		}
		denom = 1.29579 - 0.35004*math.Log10(girth) + 0.221*math.Log10(height)
	}
	if denom == 0 {
		return 0
	}
	bf := finite(495/denom - 450)
	return round(math.Max(0, math.Min(50, bf)), 1)
}

// BodyFatMessage describes a body fat percentage for sex.
func BodyFatMessage(bodyFat float64, sex models.Sex) string {
	bands := [4]float64{16, 20, 25, 32}
	if sex == models.SexMale {
		bands = [4]float64{6, 14, 18, 25}
	}
	switch {
	case bodyFat < bands[0]:
		return "⚠️ Very low body fat. This may not be healthy."
	case bodyFat < bands[1]:
		return "🏃 Athletic body fat range. Excellent fitness level!"
	case bodyFat < bands[2]:
		return "💪 Good body fat range. You're in great shape!"
	case bodyFat < bands[3]:
		return "👍 Average body fat range. Room for improvement."
	default:
		return "🎯 Higher body fat range. Consider a fitness plan."
	}
}

// BodyFatDeurenberg is the rough BMI-based body fat estimate, rounded and
// floored at 0.
func BodyFatDeurenberg(bmi float64, age int, sex models.Sex) int {
	bf := 1.20*bmi + 0.23*float64(age) - 5.4
	if sex == models.SexMale {
		bf = 1.20*bmi + 0.23*float64(age) - 16.2
	}
	return int(math.Max(0, math.Round(bf)))
}

// WeightLossDailyDeficit is the daily kcal deficit needed to go from current
// to target weight in weeks, at 7700 kcal per kg.
func WeightLossDailyDeficit(currentKg, targetKg float64, weeks int) int {
	if weeks <= 0 {
		return 0
	}
	total := (currentKg - targetKg) * 7700
	return int(math.Round(total / float64(weeks*7)))
}

// GoalProgress is the percentage of the distance from start to target that
// current has covered, capped at 100.
func GoalProgress(current, start, target float64) int {
	if start == target {
		return 100
	}
	pct := math.Abs(current-start) / math.Abs(target-start) * 100
	return int(math.Min(100, math.Round(pct)))
}
