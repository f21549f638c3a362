// Package storage defines the document store capability interface used by the
// repositories, plus its DynamoDB implementation.
package storage

import (
	"context"
	"errors"
)

// Kind names a document collection.
type Kind string

// Document collections.
const (
	KindParent        Kind = "parent"
	KindChild         Kind = "child"
	KindGrowthHistory Kind = "growth_history"
	KindDailyFood     Kind = "daily_food"
	KindArticle       Kind = "articles"
	KindDoctor        Kind = "doctors"
	KindCredential    Kind = "credentials"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// EntityStore is the capability interface over the managed document database.
// Documents are addressed by kind and id; Query matches equality on a single
// top-level string field (an owning-reference field in practice).
type EntityStore interface {
	// Get loads the document with the given id into out (a struct pointer).
	Get(ctx context.Context, kind Kind, id string, out any) error

	// Query loads every document whose field equals value into out
	// (a pointer to a slice of structs). An empty result is not an error.
	Query(ctx context.Context, kind Kind, field, value string, out any) error

	// List loads every document of a kind into out (a pointer to a slice of
	// structs). Only used for the small curated collections.
	List(ctx context.Context, kind Kind, out any) error

	// Put writes doc under id, replacing any existing document. Creation ids
	// are minted by the caller before the first write, so a retried create
	// lands on the same document.
	Put(ctx context.Context, kind Kind, id string, doc any) error

	// Update applies a partial field update to an existing document.
	// Returns ErrNotFound if the document does not exist.
	Update(ctx context.Context, kind Kind, id string, fields map[string]any) error

	// Delete removes the document with the given id. Deleting a missing
	// document is not an error.
	Delete(ctx context.Context, kind Kind, id string) error

	// BatchDelete removes all listed documents of a kind.
	BatchDelete(ctx context.Context, kind Kind, ids []string) error
}
