package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jmoiron/sqlx"

	"github.com/stockroom/stockroom-service/internal/item"
	"github.com/stockroom/stockroom-service/internal/model"
	"github.com/stockroom/stockroom-service/internal/pgerr"
)

var dialect = goqu.Dialect("postgres")

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, name, sn string, description *string) (model.ItemID, error) {
	var id model.ItemID
	query := `INSERT INTO items (name, sn, description) VALUES ($1, $2, $3) RETURNING item_id`
	if err := r.DB.QueryRowxContext(ctx, query, name, sn, description).Scan(&id); err != nil {
		if pgerr.IsUnique(err) {
			return 0, item.ErrDuplicateSN
		}
		return 0, fmt.Errorf("insert item: %w", err)
	}
	return id, nil
}

func (r *PGRepository) GetByID(ctx context.Context, itemID model.ItemID) (*model.Item, error) {
	var it model.Item
	query := `SELECT item_id, name, description, sn, created_at, updated_at FROM items WHERE item_id = $1`
	err := r.DB.GetContext(ctx, &it, query, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, item.ErrItemNotFound
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

func (r *PGRepository) List(ctx context.Context, spec model.ListingSpec) (*model.Listing[model.Item], error) {
	var total int64
	if err := r.DB.GetContext(ctx, &total, `SELECT count(*) FROM items`); err != nil {
		return nil, fmt.Errorf("count items: %w", err)
	}

	orderCol := goqu.C("item_id")
	if spec.Sort.ByName() {
		orderCol = goqu.C("name")
	}
	order := orderCol.Asc()
	if spec.Sort.Descending() {
		order = orderCol.Desc()
	}

	listSQL, _, err := dialect.From("items").
		Select(goqu.C("item_id"), goqu.C("name"), goqu.C("description"), goqu.C("sn"), goqu.C("created_at"), goqu.C("updated_at")).
		Order(order).
		Limit(uint(spec.Limit)).
		Offset(uint(spec.Offset)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build items listing query: %w", err)
	}

	data := []model.Item{}
	if err := r.DB.SelectContext(ctx, &data, listSQL); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return &model.Listing[model.Item]{Total: total, Data: data}, nil
}

func (r *PGRepository) UpdateName(ctx context.Context, itemID model.ItemID, name string) error {
	return r.exec(ctx, `UPDATE items SET name = $2, updated_at = now() WHERE item_id = $1`, itemID, name)
}

func (r *PGRepository) UpdateDescription(ctx context.Context, itemID model.ItemID, description string) error {
	return r.exec(ctx, `UPDATE items SET description = $2, updated_at = now() WHERE item_id = $1`, itemID, description)
}

func (r *PGRepository) UpdateSN(ctx context.Context, itemID model.ItemID, sn string) error {
	return r.exec(ctx, `UPDATE items SET sn = $2, updated_at = now() WHERE item_id = $1`, itemID, sn)
}

func (r *PGRepository) Delete(ctx context.Context, itemID model.ItemID) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM items WHERE item_id = $1`, itemID)
	if err != nil {
		if pgerr.IsForeignKey(err, "") {
			return item.ErrItemInUse
		}
		return fmt.Errorf("delete item: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return item.ErrItemNotFound
	}
	return nil
}

func (r *PGRepository) exec(ctx context.Context, query string, itemID model.ItemID, arg interface{}) error {
	res, err := r.DB.ExecContext(ctx, query, itemID, arg)
	if err != nil {
		if pgerr.IsUnique(err) {
			return item.ErrDuplicateSN
		}
		return fmt.Errorf("update item: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return item.ErrItemNotFound
	}
	return nil
}
