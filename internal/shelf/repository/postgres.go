package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jmoiron/sqlx"

	"github.com/stockroom/stockroom-service/internal/model"
	"github.com/stockroom/stockroom-service/internal/pgerr"
	"github.com/stockroom/stockroom-service/internal/shelf"
)

var dialect = goqu.Dialect("postgres")

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, name string, layer int64, roomID model.RoomID) (model.ShelfID, error) {
	var id model.ShelfID
	query := `INSERT INTO shelves (name, layer, room_id) VALUES ($1, $2, $3) RETURNING shelf_id`
	if err := r.DB.QueryRowxContext(ctx, query, name, layer, roomID).Scan(&id); err != nil {
		if pgerr.IsForeignKey(err, "room") {
			return 0, shelf.ErrRoomNotFound
		}
		return 0, fmt.Errorf("insert shelf: %w", err)
	}
	return id, nil
}

func (r *PGRepository) GetByID(ctx context.Context, shelfID model.ShelfID) (*model.Shelf, error) {
	var sh model.Shelf
	query := `SELECT shelf_id, name, layer, room_id FROM shelves WHERE shelf_id = $1`
	err := r.DB.GetContext(ctx, &sh, query, shelfID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shelf.ErrShelfNotFound
		}
		return nil, fmt.Errorf("get shelf: %w", err)
	}
	return &sh, nil
}

func (r *PGRepository) List(ctx context.Context, spec model.ListingSpec) (*model.Listing[model.Shelf], error) {
	return r.list(ctx, spec, nil)
}

func (r *PGRepository) ListInRoom(ctx context.Context, spec model.ListingSpec, roomID model.RoomID) (*model.Listing[model.Shelf], error) {
	return r.list(ctx, spec, &roomID)
}

func (r *PGRepository) list(ctx context.Context, spec model.ListingSpec, roomID *model.RoomID) (*model.Listing[model.Shelf], error) {
	base := dialect.From("shelves")
	if roomID != nil {
		base = base.Where(goqu.C("room_id").Eq(*roomID))
	}

	countSQL, _, err := base.Select(goqu.COUNT(goqu.Star())).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build shelves count query: %w", err)
	}
	var total int64
	if err := r.DB.GetContext(ctx, &total, countSQL); err != nil {
		return nil, fmt.Errorf("count shelves: %w", err)
	}

	orderCol := goqu.C("shelf_id")
	if spec.Sort.ByName() {
		orderCol = goqu.C("name")
	}
	order := orderCol.Asc()
	if spec.Sort.Descending() {
		order = orderCol.Desc()
	}

	listSQL, _, err := base.
		Select(goqu.C("shelf_id"), goqu.C("name"), goqu.C("layer"), goqu.C("room_id")).
		Order(order).
		Limit(uint(spec.Limit)).
		Offset(uint(spec.Offset)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build shelves listing query: %w", err)
	}

	data := []model.Shelf{}
	if err := r.DB.SelectContext(ctx, &data, listSQL); err != nil {
		return nil, fmt.Errorf("list shelves: %w", err)
	}
	return &model.Listing[model.Shelf]{Total: total, Data: data}, nil
}

func (r *PGRepository) UpdateName(ctx context.Context, shelfID model.ShelfID, name string) error {
	return r.exec(ctx, `UPDATE shelves SET name = $2 WHERE shelf_id = $1`, shelfID, name)
}

func (r *PGRepository) UpdateLayer(ctx context.Context, shelfID model.ShelfID, layer int64) error {
	return r.exec(ctx, `UPDATE shelves SET layer = $2 WHERE shelf_id = $1`, shelfID, layer)
}

func (r *PGRepository) UpdateRoom(ctx context.Context, shelfID model.ShelfID, roomID model.RoomID) error {
	return r.exec(ctx, `UPDATE shelves SET room_id = $2 WHERE shelf_id = $1`, shelfID, roomID)
}

func (r *PGRepository) Delete(ctx context.Context, shelfID model.ShelfID) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM shelves WHERE shelf_id = $1`, shelfID)
	if err != nil {
		if pgerr.IsForeignKey(err, "") {
			return shelf.ErrShelfInUse
		}
		return fmt.Errorf("delete shelf: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return shelf.ErrShelfNotFound
	}
	return nil
}

func (r *PGRepository) exec(ctx context.Context, query string, shelfID model.ShelfID, arg interface{}) error {
	res, err := r.DB.ExecContext(ctx, query, shelfID, arg)
	if err != nil {
		if pgerr.IsForeignKey(err, "room") {
			return shelf.ErrRoomNotFound
		}
		return fmt.Errorf("update shelf: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return shelf.ErrShelfNotFound
	}
	return nil
}
