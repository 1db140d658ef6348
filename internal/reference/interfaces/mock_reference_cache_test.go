package interfaces

import (
	"context"

	"github.com/sebuszqo/BeBetterWeb/internal/reference/application"
	"github.com/sebuszqo/BeBetterWeb/internal/reference/domain"
)

type MockReferenceCache struct {
	categories   []domain.Category
	tags         []domain.Tag
	refreshErr   error
	refreshCalls int
	status       application.Status
}

func (m *MockReferenceCache) Categories() []domain.Category {
	return m.categories
}

func (m *MockReferenceCache) CategoryByID(id string) (domain.Category, bool) {
	for _, c := range m.categories {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Category{}, false
}

func (m *MockReferenceCache) CategoriesByIDs(ids []string) []domain.Category {
	found, _ := m.ResolveCategories(ids)
	return found
}

func (m *MockReferenceCache) ResolveCategories(ids []string) ([]domain.Category, []string) {
	found := []domain.Category{}
	var missing []string
	for _, id := range ids {
		if c, ok := m.CategoryByID(id); ok {
			found = append(found, c)
		} else {
			missing = append(missing, id)
		}
	}
	return found, missing
}

func (m *MockReferenceCache) Tags() []domain.Tag {
	return m.tags
}

func (m *MockReferenceCache) TagByID(id string) (domain.Tag, bool) {
	for _, t := range m.tags {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Tag{}, false
}

func (m *MockReferenceCache) TagsByIDs(ids []string) []domain.Tag {
	found, _ := m.ResolveTags(ids)
	return found
}

func (m *MockReferenceCache) ResolveTags(ids []string) ([]domain.Tag, []string) {
	found := []domain.Tag{}
	var missing []string
	for _, id := range ids {
		if t, ok := m.TagByID(id); ok {
			found = append(found, t)
		} else {
			missing = append(missing, id)
		}
	}
	return found, missing
}

func (m *MockReferenceCache) Refresh(ctx context.Context) error {
	m.refreshCalls++
	return m.refreshErr
}

func (m *MockReferenceCache) Status() application.Status {
	return m.status
}

func newMockCache() *MockReferenceCache {
	return &MockReferenceCache{
		categories: []domain.Category{
			{ID: "1", Name: "Tech", Color: "#3366ff"},
			{ID: "2", Name: "Life"},
		},
		tags: []domain.Tag{
			{ID: "t1", Name: "focus"},
			{ID: "t2", Name: "golang"},
		},
		status: application.Status{IsInitialized: true, CategoriesCount: 2, TagsCount: 2},
	}
}
