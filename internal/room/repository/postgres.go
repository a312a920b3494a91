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
	"github.com/stockroom/stockroom-service/internal/room"
)

var dialect = goqu.Dialect("postgres")

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, name string, description *string) (model.RoomID, error) {
	var id model.RoomID
	query := `INSERT INTO rooms (name, description) VALUES ($1, $2) RETURNING room_id`
	if err := r.DB.QueryRowxContext(ctx, query, name, description).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert room: %w", err)
	}
	return id, nil
}

func (r *PGRepository) GetByID(ctx context.Context, roomID model.RoomID) (*model.Room, error) {
	var rm model.Room
	query := `SELECT room_id, name, description, created_at FROM rooms WHERE room_id = $1`
	err := r.DB.GetContext(ctx, &rm, query, roomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, room.ErrRoomNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return &rm, nil
}

func (r *PGRepository) List(ctx context.Context, spec model.ListingSpec) (*model.Listing[model.Room], error) {
	var total int64
	if err := r.DB.GetContext(ctx, &total, `SELECT count(*) FROM rooms`); err != nil {
		return nil, fmt.Errorf("count rooms: %w", err)
	}

	orderCol := goqu.C("room_id")
	if spec.Sort.ByName() {
		orderCol = goqu.C("name")
	}
	order := orderCol.Asc()
	if spec.Sort.Descending() {
		order = orderCol.Desc()
	}

	listSQL, _, err := dialect.From("rooms").
		Select(goqu.C("room_id"), goqu.C("name"), goqu.C("description"), goqu.C("created_at")).
		Order(order).
		Limit(uint(spec.Limit)).
		Offset(uint(spec.Offset)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build rooms listing query: %w", err)
	}

	data := []model.Room{}
	if err := r.DB.SelectContext(ctx, &data, listSQL); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return &model.Listing[model.Room]{Total: total, Data: data}, nil
}

func (r *PGRepository) UpdateName(ctx context.Context, roomID model.RoomID, name string) error {
	return r.exec(ctx, `UPDATE rooms SET name = $2 WHERE room_id = $1`, roomID, name)
}

func (r *PGRepository) UpdateDescription(ctx context.Context, roomID model.RoomID, description string) error {
	return r.exec(ctx, `UPDATE rooms SET description = $2 WHERE room_id = $1`, roomID, description)
}

func (r *PGRepository) Delete(ctx context.Context, roomID model.RoomID) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM rooms WHERE room_id = $1`, roomID)
	if err != nil {
		if pgerr.IsForeignKey(err, "") {
			return room.ErrRoomInUse
		}
		return fmt.Errorf("delete room: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return room.ErrRoomNotFound
	}
	return nil
}

func (r *PGRepository) exec(ctx context.Context, query string, roomID model.RoomID, arg interface{}) error {
	res, err := r.DB.ExecContext(ctx, query, roomID, arg)
	if err != nil {
		return fmt.Errorf("update room: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return room.ErrRoomNotFound
	}
	return nil
}
