package testutil

import (
	"context"
	"io"
	"sync"
)

// MemBlob is an in-memory blob store. UploadErr and DeleteErr, when set, fail
// the next matching call once.
type MemBlob struct {
	mu        sync.Mutex
	objects   map[string][]byte
	Deleted   []string
	UploadErr error
	DeleteErr error
}

// NewMemBlob creates an empty MemBlob.
func NewMemBlob() *MemBlob {
	return &MemBlob{objects: make(map[string][]byte)}
}

func (b *MemBlob) Upload(_ context.Context, name, _ string, body io.Reader) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.UploadErr != nil {
		err := b.UploadErr
		b.UploadErr = nil
		return err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	b.objects[name] = data
	return nil
}

func (b *MemBlob) Delete(_ context.Context, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.DeleteErr != nil {
		err := b.DeleteErr
		b.DeleteErr = nil
		return err
	}
	delete(b.objects, name)
	b.Deleted = append(b.Deleted, name)
	return nil
}

func (b *MemBlob) PublicURL(name string) string {
	return "https://media.test/" + name
}

// Count returns the number of stored objects.
func (b *MemBlob) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.objects)
}

// Has reports whether an object exists.
func (b *MemBlob) Has(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.objects[name]
	return ok
}

// Names returns the stored object names.
func (b *MemBlob) Names() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	names := make([]string, 0, len(b.objects))
	for name := range b.objects {
		names = append(names, name)
	}
	return names
}
