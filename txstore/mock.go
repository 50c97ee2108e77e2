package txstore

import (
	"context"
	"sort"
	"strings"
)

// MockStorage implements the Storage interface but just holds the data in
// memory.
type MockStorage struct {
	Data map[string][]byte
}

// NewMockStorage creates a new mock storage.
func NewMockStorage() *MockStorage {
	return &MockStorage{
		Data: make(map[string][]byte),
	}
}

// Write will write the data to the key in memory.
func (s *MockStorage) Write(ctx context.Context, key string, body []byte, options *Options) error {
	b := make([]byte, len(body))
	copy(b, body)
	s.Data[key] = b
	return nil
}

// Read reads the data from memory.
func (s *MockStorage) Read(ctx context.Context, key string) ([]byte, error) {
	result, exists := s.Data[key]
	if !exists {
		return nil, ErrNotFound
	}
	return result, nil
}

// Remove removes the object stored at key.
func (s *MockStorage) Remove(ctx context.Context, key string) error {
	if _, exists := s.Data[key]; !exists {
		return ErrNotFound
	}
	delete(s.Data, key)
	return nil
}

// List returns the keys of all objects under path.
func (s *MockStorage) List(ctx context.Context, path string) ([]string, error) {
	result := make([]string, 0)

	for key := range s.Data {
		if !strings.HasPrefix(key, path) {
			continue
		}

		result = append(result, key)
	}

	sort.Strings(result)

	return result, nil
}
