package infrastructure

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sebuszqo/BeBetterWeb/internal/reference/domain"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, description, color, created_at
        FROM categories
        ORDER BY name ASC
    `)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var category domain.Category
		var description, color sql.NullString
		if err := rows.Scan(&category.ID, &category.Name, &description, &color, &category.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		category.Description = description.String
		category.Color = color.String
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return categories, nil
}
