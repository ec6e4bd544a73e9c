package db

import (
	"context"

	"ms-booths/internal/models"

	"github.com/uptrace/bun"
)

type DB struct {
	Bun *bun.DB
}

const boothCountExpr = "(SELECT count(*) FROM booths WHERE booths.category_id = category.id) AS booth_count"

// ListCategories returns every category, newest first, with its booth count.
func (d *DB) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	err := d.Bun.NewSelect().
		Model(&categories).
		ColumnExpr("category.*").
		ColumnExpr(boothCountExpr).
		Order("created_at DESC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (d *DB) GetCategoryByID(id string) (*models.Category, error) {
	var category models.Category
	err := d.Bun.NewSelect().
		Model(&category).
		ColumnExpr("category.*").
		ColumnExpr(boothCountExpr).
		Where("category.id = ?", id).
		Limit(1).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (d *DB) GetCategoryByName(name string) (*models.Category, error) {
	var category models.Category
	err := d.Bun.NewSelect().
		Model(&category).
		Where("name = ?", name).
		Limit(1).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetBoothRefs returns the id/name/number/status of every booth referencing
// the category.
func (d *DB) GetBoothRefs(categoryID string) ([]models.BoothRef, error) {
	var refs []models.BoothRef
	err := d.Bun.NewSelect().
		Model(&refs).
		Column("id", "name", "number", "status").
		Where("category_id = ?", categoryID).
		Order("number ASC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return refs, nil
}

func (d *DB) CountBooths(categoryID string) (int, error) {
	return d.Bun.NewSelect().
		Model((*models.Booth)(nil)).
		Where("category_id = ?", categoryID).
		Count(context.Background())
}

func (d *DB) CreateCategory(category *models.Category) error {
	_, err := d.Bun.NewInsert().Model(category).Exec(context.Background())
	return err
}

func (d *DB) UpdateCategory(category *models.Category) error {
	_, err := d.Bun.NewUpdate().
		Model(category).
		Column("name", "description", "dimensions", "price_without_addons", "addons", "image").
		Where("id = ?", category.ID).
		Exec(context.Background())
	return err
}

func (d *DB) DeleteCategory(id string) error {
	_, err := d.Bun.NewDelete().
		Model((*models.Category)(nil)).
		Where("id = ?", id).
		Exec(context.Background())
	return err
}
