package infrastructure

import (
	"context"
	"sync"

	"github.com/sebuszqo/BeBetterWeb/internal/reference/domain"
)

type MockCategoryRepository struct {
	mu         sync.Mutex
	Categories []domain.Category
	Err        error
	Calls      int
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]domain.Category, len(m.Categories))
	copy(out, m.Categories)
	return out, nil
}

func (m *MockCategoryRepository) Set(categories []domain.Category, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Categories = categories
	m.Err = err
}

func (m *MockCategoryRepository) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

type MockTagRepository struct {
	mu    sync.Mutex
	Tags  []domain.Tag
	Err   error
	Calls int
}

func (m *MockTagRepository) FindAll(ctx context.Context) ([]domain.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]domain.Tag, len(m.Tags))
	copy(out, m.Tags)
	return out, nil
}

func (m *MockTagRepository) Set(tags []domain.Tag, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Tags = tags
	m.Err = err
}

func (m *MockTagRepository) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}
