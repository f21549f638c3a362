package service

// GrowthClassifier assigns status labels and recommendations for a
// measurement. The real classifier is an external model; the lifecycle
// services only store whatever it returns.
type GrowthClassifier interface {
	Classify(weightKg, heightCm float64) ClassifierResult
}

// ClassifierResult is the classifier output stored on the child document.
type ClassifierResult struct {
	StuntingStatus          string
	BMIStatus               string
	FoodRecommendations     []string
	ActivityRecommendations []string
}

// ThresholdClassifier is a coarse stand-in used until the model endpoint is
// wired in: it only separates clearly-low measurements from the rest.
type ThresholdClassifier struct{}

func (ThresholdClassifier) Classify(weightKg, heightCm float64) ClassifierResult {
	result := ClassifierResult{
		StuntingStatus: "normal",
		BMIStatus:      "normal",
	}
	if heightCm > 0 && heightCm < 65 {
		result.StuntingStatus = "at_risk"
		result.ActivityRecommendations = []string{"Schedule a growth consultation"}
	}
	if heightCm > 0 {
		hm := heightCm / 100
		bmi := weightKg / (hm * hm)
		switch {
		case bmi < 14:
			result.BMIStatus = "underweight"
			result.FoodRecommendations = []string{"Increase protein intake", "Add a daily snack"}
		case bmi > 18:
			result.BMIStatus = "overweight"
			result.FoodRecommendations = []string{"Reduce sugary drinks"}
		}
	}
	return result
}
