// Package testutil provides shared test doubles and fixtures for backend tests.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"stuntcare/internal/storage"
)

// MemStore is an in-memory EntityStore. Documents go through the same
// attributevalue codec as the real store, so field names in Query match the
// dynamodbav tags rather than struct field names.
//
// FailNext injects one error per (operation, kind) pair; keys look like
// "delete:child" or "batch_delete:growth_history".
type MemStore struct {
	mu       sync.Mutex
	docs     map[storage.Kind]map[string]map[string]types.AttributeValue
	FailNext map[string]error
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		docs:     make(map[storage.Kind]map[string]map[string]types.AttributeValue),
		FailNext: make(map[string]error),
	}
}

func (m *MemStore) failure(op string, kind storage.Kind) error {
	key := fmt.Sprintf("%s:%s", op, kind)
	if err, ok := m.FailNext[key]; ok {
		delete(m.FailNext, key)
		return err
	}
	return nil
}

func (m *MemStore) collection(kind storage.Kind) map[string]map[string]types.AttributeValue {
	if m.docs[kind] == nil {
		m.docs[kind] = make(map[string]map[string]types.AttributeValue)
	}
	return m.docs[kind]
}

// Count returns the number of stored documents of a kind.
func (m *MemStore) Count(kind storage.Kind) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs[kind])
}

// Has reports whether a document exists.
func (m *MemStore) Has(kind storage.Kind, id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.docs[kind][id]
	return ok
}

func (m *MemStore) Get(_ context.Context, kind storage.Kind, id string, out any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure("get", kind); err != nil {
		return err
	}
	item, ok := m.docs[kind][id]
	if !ok {
		return storage.ErrNotFound
	}
	return attributevalue.UnmarshalMap(item, out)
}

func (m *MemStore) Query(_ context.Context, kind storage.Kind, field, value string, out any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure("query", kind); err != nil {
		return err
	}
	var items []map[string]types.AttributeValue
	for _, item := range m.docs[kind] {
		if s, ok := item[field].(*types.AttributeValueMemberS); ok && s.Value == value {
			items = append(items, item)
		}
	}
	return attributevalue.UnmarshalListOfMaps(items, out)
}

func (m *MemStore) List(_ context.Context, kind storage.Kind, out any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure("list", kind); err != nil {
		return err
	}
	var items []map[string]types.AttributeValue
	for _, item := range m.docs[kind] {
		items = append(items, item)
	}
	return attributevalue.UnmarshalListOfMaps(items, out)
}

func (m *MemStore) Put(_ context.Context, kind storage.Kind, id string, doc any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure("put", kind); err != nil {
		return err
	}
	item, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return err
	}
	m.collection(kind)[id] = item
	return nil
}

func (m *MemStore) Update(_ context.Context, kind storage.Kind, id string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure("update", kind); err != nil {
		return err
	}
	item, ok := m.docs[kind][id]
	if !ok {
		return storage.ErrNotFound
	}
	for key, value := range fields {
		av, err := attributevalue.Marshal(value)
		if err != nil {
			return err
		}
		item[key] = av
	}
	return nil
}

func (m *MemStore) Delete(_ context.Context, kind storage.Kind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure("delete", kind); err != nil {
		return err
	}
	delete(m.docs[kind], id)
	return nil
}

func (m *MemStore) BatchDelete(_ context.Context, kind storage.Kind, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure("batch_delete", kind); err != nil {
		return err
	}
	for _, id := range ids {
		delete(m.docs[kind], id)
	}
	return nil
}
