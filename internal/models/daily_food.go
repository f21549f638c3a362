package models

import "time"

// DailyFood is a food diary entry owned by a child.
type DailyFood struct {
	ID       string `json:"id" dynamodbav:"id"`
	ChildID  string `json:"child_id" dynamodbav:"child_id"`
	Schedule string `json:"schedule" dynamodbav:"schedule"`
	FoodName string `json:"food_name" dynamodbav:"food_name"`
	ImageURL string `json:"image_url,omitempty" dynamodbav:"image_url"`

	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}
