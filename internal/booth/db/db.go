package db

import (
	"context"
	"time"

	"ms-booths/internal/models"

	"github.com/uptrace/bun"
)

type DB struct {
	Bun *bun.DB
}

func withRelations(q *bun.SelectQuery) *bun.SelectQuery {
	return q.
		Relation("Enterprise", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Column("company_name", "email")
		}).
		Relation("Category", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Column("id", "name", "description")
		})
}

// ListBooths returns every booth ordered by number, with its enterprise and
// category summaries attached.
func (d *DB) ListBooths() ([]models.Booth, error) {
	var booths []models.Booth
	err := withRelations(d.Bun.NewSelect().Model(&booths)).
		Order("booth.number ASC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return booths, nil
}

func (d *DB) GetBoothByID(id string) (*models.Booth, error) {
	var booth models.Booth
	err := withRelations(d.Bun.NewSelect().Model(&booth)).
		Where("booth.id = ?", id).
		Limit(1).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return &booth, nil
}

func (d *DB) GetBoothByNumber(number int) (*models.Booth, error) {
	var booth models.Booth
	err := d.Bun.NewSelect().
		Model(&booth).
		Where("number = ?", number).
		Limit(1).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return &booth, nil
}

func (d *DB) CreateBooth(booth *models.Booth) error {
	_, err := d.Bun.NewInsert().Model(booth).Exec(context.Background())
	return err
}

func (d *DB) UpdateBooth(booth *models.Booth) error {
	_, err := d.Bun.NewUpdate().
		Model(booth).
		Column("name", "description", "number", "dimensions", "price_without_addons",
			"final_price", "status", "addons", "image", "category_id", "enterprise_id",
			"reservation_accepted_at", "updated_at").
		Where("id = ?", booth.ID).
		Exec(context.Background())
	return err
}

func (d *DB) DeleteBooth(id string) error {
	_, err := d.Bun.NewDelete().
		Model((*models.Booth)(nil)).
		Where("id = ?", id).
		Exec(context.Background())
	return err
}

// BulkSetCategory assigns (or clears, when categoryID is nil) the category on
// every matching booth in one statement and reports the rows touched.
func (d *DB) BulkSetCategory(boothIDs []string, categoryID *string) (int64, error) {
	res, err := d.Bun.NewUpdate().
		Model((*models.Booth)(nil)).
		Set("category_id = ?", categoryID).
		Set("updated_at = ?", time.Now()).
		Where("id IN (?)", bun.In(boothIDs)).
		Exec(context.Background())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CategoryExists reports whether a category row with the given id is present.
func (d *DB) CategoryExists(id string) (bool, error) {
	return d.Bun.NewSelect().
		Model((*models.Category)(nil)).
		Where("id = ?", id).
		Exists(context.Background())
}

// ListAvailableBooths returns booths an enterprise may book: unassigned ones,
// plus previously rejected ones that become bookable again.
func (d *DB) ListAvailableBooths() ([]models.Booth, error) {
	var booths []models.Booth
	err := d.Bun.NewSelect().
		Model(&booths).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("enterprise_id IS NULL").
				WhereOr("status = ?", models.StatusRejected)
		}).
		Order("number ASC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return booths, nil
}

func (d *DB) GetBoothByEnterprise(enterpriseID string) (*models.Booth, error) {
	var booth models.Booth
	err := d.Bun.NewSelect().
		Model(&booth).
		Relation("Enterprise", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Column("company_name", "email")
		}).
		Where("booth.enterprise_id = ?", enterpriseID).
		Limit(1).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return &booth, nil
}

// ReserveBooth assigns the booth to the enterprise and moves it to Pending in
// a single conditional update. It succeeds only while the booth is unassigned
// or its previous reservation was rejected, so two concurrent bookings cannot
// both win.
func (d *DB) ReserveBooth(boothID, enterpriseID string) (bool, error) {
	res, err := d.Bun.NewUpdate().
		Model((*models.Booth)(nil)).
		Set("enterprise_id = ?", enterpriseID).
		Set("status = ?", models.StatusPending).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", boothID).
		WhereGroup(" AND ", func(q *bun.UpdateQuery) *bun.UpdateQuery {
			return q.
				Where("enterprise_id IS NULL").
				WhereOr("status = ?", models.StatusRejected)
		}).
		Exec(context.Background())
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
