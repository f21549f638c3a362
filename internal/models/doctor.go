package models

// Doctor is a read-only listing entry; doctors are provisioned out of band.
type Doctor struct {
	ID         string `json:"id" dynamodbav:"id"`
	Name       string `json:"name" dynamodbav:"name"`
	Specialist string `json:"specialist" dynamodbav:"specialist"`
	Hospital   string `json:"hospital" dynamodbav:"hospital"`
	ImageURL   string `json:"image_url" dynamodbav:"image_url"`
}
