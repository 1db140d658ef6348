package domain

import (
	"context"
	"time"
)

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryRepository returns every category ordered by name ascending.
type CategoryRepository interface {
	FindAll(ctx context.Context) ([]Category, error)
}

func CategoryID(c Category) string {
	return c.ID
}
