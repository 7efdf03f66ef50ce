package services

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/burg1337/expense-tracker/cache"
	"github.com/burg1337/expense-tracker/models"
)

type CategoryService struct {
	db    *sql.DB
	cache cache.Store
}

func NewCategoryService(db *sql.DB, cacheStore cache.Store) *CategoryService {
	return &CategoryService{db: db, cache: cacheStore}
}

func (s *CategoryService) Create(ctx context.Context, userID string, req models.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{
		ID:     uuid.New().String(),
		UserID: userID,
		Name:   req.Name,
		Type:   req.Type,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (id, user_id, name, type) VALUES ($1, $2, $3, $4)`,
		category.ID, category.UserID, category.Name, category.Type,
	)
	if err != nil {
		return nil, err
	}

	invalidateAfterWrite(s.cache, "categories", userID)
	return category, nil
}

// List returns all of the user's categories, cached under the resource
// prefix.
func (s *CategoryService) List(ctx context.Context, userID string) ([]models.Category, error) {
	key := resourceKey("categories", userID, "list")

	return cache.Fetch(s.cache, key, listCacheTTL, func() ([]models.Category, error) {
		rows, err := s.db.QueryContext(ctx,
			`SELECT id, user_id, name, type FROM categories WHERE user_id = $1 ORDER BY name`,
			userID,
		)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		categories := []models.Category{}
		for rows.Next() {
			var category models.Category
			if err := rows.Scan(&category.ID, &category.UserID, &category.Name, &category.Type); err != nil {
				return nil, err
			}
			categories = append(categories, category)
		}

		return categories, rows.Err()
	})
}

func (s *CategoryService) GetByID(ctx context.Context, userID, id string) (*models.Category, error) {
	var category models.Category
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, type FROM categories WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&category.ID, &category.UserID, &category.Name, &category.Type)
	if err != nil {
		return nil, err
	}

	return &category, nil
}

func (s *CategoryService) Update(ctx context.Context, userID, id string, req models.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Type != nil {
		category.Type = *req.Type
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE categories SET name = $1, type = $2 WHERE id = $3 AND user_id = $4`,
		category.Name, category.Type, id, userID,
	)
	if err != nil {
		return nil, err
	}

	invalidateAfterWrite(s.cache, "categories", userID)
	return category, nil
}

// Delete removes a category. A category still referenced by transactions
// or budgets is refused with ErrCategoryInUse rather than cascading.
func (s *CategoryService) Delete(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrCategoryInUse
		}
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	invalidateAfterWrite(s.cache, "categories", userID)
	return nil
}
