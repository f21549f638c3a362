package models

import "time"

// Child represents a tracked child. ParentID is a plain foreign-key id into
// the parent collection, resolved explicitly before any dependent write.
type Child struct {
	ID          string  `json:"id" dynamodbav:"id"`
	ParentID    string  `json:"parent_id" dynamodbav:"parent_id"`
	Name        string  `json:"name" dynamodbav:"name"`
	Gender      string  `json:"gender" dynamodbav:"gender"`
	BirthDay    string  `json:"birth_day" dynamodbav:"birth_day"`
	BirthWeight float64 `json:"birth_weight" dynamodbav:"birth_weight"`
	BirthHeight float64 `json:"birth_height" dynamodbav:"birth_height"`

	// Latest measurements; every update that changes them also appends a
	// GrowthHistory record.
	Weight float64 `json:"weight" dynamodbav:"weight"`
	Height float64 `json:"height" dynamodbav:"height"`

	// Populated by an external classifier; opaque to the lifecycle services.
	StuntingStatus string `json:"stunting_status" dynamodbav:"stunting_status"`
	BMIStatus      string `json:"bmi_status" dynamodbav:"bmi_status"`

	FoodRecommendations     []string `json:"food_recommendations" dynamodbav:"food_recommendations"`
	ActivityRecommendations []string `json:"activity_recommendations" dynamodbav:"activity_recommendations"`

	ImageURL string `json:"image_url" dynamodbav:"image_url"`

	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

// GrowthHistory is an append-only measurement record owned by a child. It is
// never deleted directly, only as a cascade side effect of child deletion.
type GrowthHistory struct {
	ID      string  `json:"id" dynamodbav:"id"`
	ChildID string  `json:"child_id" dynamodbav:"child_id"`
	Weight  float64 `json:"weight" dynamodbav:"weight"`
	Height  float64 `json:"height" dynamodbav:"height"`

	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}
