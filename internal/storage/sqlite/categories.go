package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/vsukhanov/tracker/internal/errors"
	"github.com/vsukhanov/tracker/internal/models"
)

func (s *Store) AddCategory(category models.Category) error {
	_, err := s.db.Exec(`
		INSERT INTO categories (id, name, created_at)
		VALUES (?, ?, ?)`,
		category.ID, category.Name, category.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	s.hub.Notify()
	return nil
}

func (s *Store) GetCategory(id string) (models.Category, error) {
	row := s.db.QueryRow(`SELECT id, name, created_at FROM categories WHERE id = ?`, id)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Category{}, apperrors.ErrUnknownCategory
	}
	return c, err
}

func (s *Store) GetAllCategories() ([]models.Category, error) {
	rows, err := s.db.Query(`SELECT id, name, created_at FROM categories ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Store) RenameCategory(id, name string) error {
	result, err := s.db.Exec(`UPDATE categories SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("rename category: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.ErrUnknownCategory
	}
	s.hub.Notify()
	return nil
}

func (s *Store) DeleteCategory(id string) error {
	var habits int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM habits WHERE category_id = ?`, id).Scan(&habits); err != nil {
		return err
	}
	if habits > 0 {
		return apperrors.ErrCategoryNotEmpty
	}

	result, err := s.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.ErrUnknownCategory
	}
	s.hub.Notify()
	return nil
}

func scanCategory(row rowScanner) (models.Category, error) {
	var c models.Category
	var createdAt string

	if err := row.Scan(&c.ID, &c.Name, &createdAt); err != nil {
		return models.Category{}, err
	}

	var err error
	c.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Category{}, fmt.Errorf("parse created_at for category %s: %w", c.ID, err)
	}
	return c, nil
}
