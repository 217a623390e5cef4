package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amoghbhat/spence/internal/model"
)

// Categories returns all categories in stored order. The order is part of
// the matching contract: earlier categories win keyword-count ties.
func (s *SQLiteStorage) Categories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, keywords, is_default FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

// CategoryByName returns a category by name, case-insensitively, or nil
// when none matches.
func (s *SQLiteStorage) CategoryByName(ctx context.Context, name string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, keywords, is_default FROM categories WHERE name = ? COLLATE NOCASE`, name)
	cat, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// AddCategory inserts or replaces a category. Replacement keeps the
// original row id, so list order is stable across keyword updates.
func (s *SQLiteStorage) AddCategory(ctx context.Context, category model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(category.Name, "category.Name"); err != nil {
		return err
	}

	keywords, err := json.Marshal(category.Keywords)
	if err != nil {
		return fmt.Errorf("failed to encode keywords: %w", err)
	}

	existing, err := s.CategoryByName(ctx, category.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		if _, err := s.db.ExecContext(ctx,
			`UPDATE categories SET keywords = ? WHERE id = ?`,
			string(keywords), existing.ID); err != nil {
			return fmt.Errorf("failed to update category %s: %w", category.Name, err)
		}
		slog.Debug("updated category", "name", category.Name)
		return nil
	}

	isDefault := 0
	if category.IsDefault {
		isDefault = 1
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (name, keywords, is_default) VALUES (?, ?, ?)`,
		category.Name, string(keywords), isDefault); err != nil {
		return fmt.Errorf("failed to insert category %s: %w", category.Name, err)
	}

	slog.Debug("added category", "name", category.Name)
	return nil
}

// DeleteCategory removes a user-added category by name. Built-in default
// categories are protected and cannot be deleted.
func (s *SQLiteStorage) DeleteCategory(ctx context.Context, name string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}

	cat, err := s.CategoryByName(ctx, name)
	if err != nil {
		return err
	}
	if cat == nil {
		return fmt.Errorf("%w: category %s", ErrNotFound, name)
	}
	if cat.IsDefault {
		return fmt.Errorf("%w: %s", ErrDefaultCategory, name)
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, cat.ID); err != nil {
		return fmt.Errorf("failed to delete category %s: %w", name, err)
	}

	slog.Debug("deleted category", "name", name)
	return nil
}

// UpdateCategoryKeywords replaces a category's keyword set.
func (s *SQLiteStorage) UpdateCategoryKeywords(ctx context.Context, name string, keywords []string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}

	cat, err := s.CategoryByName(ctx, name)
	if err != nil {
		return err
	}
	if cat == nil {
		return fmt.Errorf("%w: category %s", ErrNotFound, name)
	}

	encoded, err := json.Marshal(keywords)
	if err != nil {
		return fmt.Errorf("failed to encode keywords: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE categories SET keywords = ? WHERE id = ?`, string(encoded), cat.ID); err != nil {
		return fmt.Errorf("failed to update keywords for %s: %w", name, err)
	}
	return nil
}

// SearchCategoriesByKeyword returns categories whose keyword sets contain
// the given substring, case-insensitively.
func (s *SQLiteStorage) SearchCategoriesByKeyword(ctx context.Context, keyword string) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(keyword, "keyword"); err != nil {
		return nil, err
	}

	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(keyword)
	var matched []model.Category
	for _, cat := range categories {
		for _, kw := range cat.Keywords {
			if strings.Contains(strings.ToLower(kw), needle) {
				matched = append(matched, cat)
				break
			}
		}
	}
	return matched, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (*model.Category, error) {
	var cat model.Category
	var keywords string
	var isDefault int
	if err := row.Scan(&cat.ID, &cat.Name, &keywords, &isDefault); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan category: %w", err)
	}
	if err := json.Unmarshal([]byte(keywords), &cat.Keywords); err != nil {
		return nil, fmt.Errorf("failed to decode keywords for %s: %w", cat.Name, err)
	}
	cat.IsDefault = isDefault == 1
	return &cat, nil
}
