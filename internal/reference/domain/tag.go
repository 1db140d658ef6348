package domain

import (
	"context"
	"time"
)

type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TagRepository returns every tag ordered by name ascending.
type TagRepository interface {
	FindAll(ctx context.Context) ([]Tag, error)
}

func TagID(t Tag) string {
	return t.ID
}
