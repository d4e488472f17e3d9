package models

// WaterIntakeData is the saved state of the water calculator.
type WaterIntakeData struct {
	Weight        float64       `json:"weight"`
	Activity      ActivityLevel `json:"activity"`
	Goal          Goal          `json:"goal"`
	RecommendedML int           `json:"recommendedMl"`
	LoggedMLToday int           `json:"loggedMlToday"`
	LastUpdated   string        `json:"lastUpdated"`
}

// DailyCaloriesData is the saved state of the calorie calculator.
type DailyCaloriesData struct {
	Weight              float64       `json:"weight"`
	Height              float64       `json:"height"`
	Age                 int           `json:"age"`
	Sex                 Sex           `json:"sex"`
	Activity            ActivityLevel `json:"activity"`
	Goal                Goal          `json:"goal"`
	BMI                 float64       `json:"BMI"`
	RecommendedCalories int           `json:"recommendedCalories"`
	LastUpdated         string        `json:"lastUpdated"`
}

// BodyCompositionData is the saved state of the body composition calculator.
type BodyCompositionData struct {
	Waist             float64 `json:"waist"`
	Hip               float64 `json:"hip"`
	Neck              float64 `json:"neck"`
	Height            float64 `json:"height"`
	Sex               Sex     `json:"sex"`
	WaistToHipRatio   float64 `json:"waistToHipRatio"`
	BodyFatPercentage float64 `json:"bodyFatPercentage"`
	LastUpdated       string  `json:"lastUpdated"`
}
