package models

import "time"

// Article is an editorial entry. AuthorName is a denormalized snapshot taken
// at creation time so the listing does not fan out to the parent collection.
type Article struct {
	ID          string `json:"id" dynamodbav:"id"`
	Title       string `json:"title" dynamodbav:"title"`
	Description string `json:"description" dynamodbav:"description"`
	AuthorID    string `json:"author_id" dynamodbav:"author_id"`
	AuthorName  string `json:"author" dynamodbav:"author_name"`
	Likes       int    `json:"likes" dynamodbav:"likes"`
	ImageURL    string `json:"image_url" dynamodbav:"image_url"`

	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated_at" dynamodbav:"updated_at"`
}
