package models

import "time"

// Parent represents a registered parent account. Each parent is paired 1:1
// with an auth subject (AuthUID) created at registration.
type Parent struct {
	ID       string `json:"id" dynamodbav:"id"`
	Email    string `json:"email" dynamodbav:"email"`
	Name     string `json:"name" dynamodbav:"name"`
	Address  string `json:"address" dynamodbav:"address"`
	Gender   string `json:"gender" dynamodbav:"gender"`
	BirthDay string `json:"birth_day" dynamodbav:"birth_day"`
	Phone    string `json:"phone" dynamodbav:"phone"`
	Status   string `json:"status" dynamodbav:"status"`
	ImageURL string `json:"image_url" dynamodbav:"image_url"`
	AuthUID  string `json:"-" dynamodbav:"auth_uid"`

	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated_at" dynamodbav:"updated_at"`
}
