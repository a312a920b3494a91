package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/stockroom/stockroom-service/internal/model"
	"github.com/stockroom/stockroom-service/internal/pgerr"
	"github.com/stockroom/stockroom-service/internal/stock"
	"github.com/stockroom/stockroom-service/internal/stock/dto"
)

var dialect = goqu.Dialect("postgres")

// PGRepository implements the stock ledger against Postgres. The invariant
// "every stored count is strictly positive" is enforced in the statements
// themselves: deposits are additive upserts, withdrawals are conditional
// updates checked via their RETURNING row, so concurrent callers cannot race a
// balance below one.
type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const depositQuery = `
    INSERT INTO stock_entries (item_id, shelf_id, count)
    VALUES ($1, $2, $3)
    ON CONFLICT (item_id, shelf_id)
    DO UPDATE SET count = stock_entries.count + EXCLUDED.count
    RETURNING count
`

// withdrawQuery only matches while the balance stays strictly positive, so a
// zero-row result means insufficient stock (or no row at all, which is the
// same thing).
const withdrawQuery = `
    UPDATE stock_entries
    SET count = count - $3
    WHERE item_id = $1 AND shelf_id = $2 AND count > $3
    RETURNING count
`

const insertMovementQuery = `
    INSERT INTO stock_movements (id, op, item_id, shelf_id, delta, count_after, created_by, created_at)
    VALUES (:id, :op, :item_id, :shelf_id, :delta, :count_after, :created_by, :created_at)
`

func (r *PGRepository) Deposit(ctx context.Context, itemID model.ItemID, shelfID model.ShelfID, count int64, actorID string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin deposit: %w", err)
	}
	defer tx.Rollback()

	if err := depositLeg(ctx, tx, model.OpDeposit, itemID, shelfID, count, actorID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PGRepository) Withdraw(ctx context.Context, itemID model.ItemID, shelfID model.ShelfID, count int64, actorID string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin withdraw: %w", err)
	}
	defer tx.Rollback()

	if err := withdrawLeg(ctx, tx, model.OpWithdraw, itemID, shelfID, count, actorID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PGRepository) Transfer(ctx context.Context, itemID model.ItemID, count int64, shelfFrom, shelfTo model.ShelfID, actorID string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transfer: %w", err)
	}
	defer tx.Rollback()

	if err := withdrawLeg(ctx, tx, model.OpTransferOut, itemID, shelfFrom, count, actorID); err != nil {
		return err
	}
	if err := depositLeg(ctx, tx, model.OpTransferIn, itemID, shelfTo, count, actorID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PGRepository) Convert(ctx context.Context, from, into []model.ItemXShelf, actorID string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin convert: %w", err)
	}
	defer tx.Rollback()

	for _, leg := range from {
		if err := withdrawLeg(ctx, tx, model.OpConvertOut, leg.ItemID, leg.ShelfID, leg.Count, actorID); err != nil {
			return err
		}
	}
	for _, leg := range into {
		if err := depositLeg(ctx, tx, model.OpConvertIn, leg.ItemID, leg.ShelfID, leg.Count, actorID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func depositLeg(ctx context.Context, tx *sqlx.Tx, op string, itemID model.ItemID, shelfID model.ShelfID, count int64, actorID string) error {
	var after int64
	if err := tx.QueryRowxContext(ctx, depositQuery, itemID, shelfID, count).Scan(&after); err != nil {
		return mapWriteError(err)
	}
	return journalLeg(ctx, tx, op, itemID, shelfID, count, after, actorID)
}

func withdrawLeg(ctx context.Context, tx *sqlx.Tx, op string, itemID model.ItemID, shelfID model.ShelfID, count int64, actorID string) error {
	var after int64
	err := tx.QueryRowxContext(ctx, withdrawQuery, itemID, shelfID, count).Scan(&after)
	if errors.Is(err, sql.ErrNoRows) {
		return stock.ErrInsufficientStock
	}
	if err != nil {
		return mapWriteError(err)
	}
	return journalLeg(ctx, tx, op, itemID, shelfID, -count, after, actorID)
}

func journalLeg(ctx context.Context, tx *sqlx.Tx, op string, itemID model.ItemID, shelfID model.ShelfID, delta, after int64, actorID string) error {
	var createdBy *string
	if actorID != "" {
		createdBy = &actorID
	}
	m := &model.StockMovement{
		ID:         uuid.New().String(),
		Op:         op,
		ItemID:     itemID,
		ShelfID:    shelfID,
		Delta:      delta,
		CountAfter: after,
		CreatedBy:  createdBy,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := tx.NamedExecContext(ctx, insertMovementQuery, m); err != nil {
		return fmt.Errorf("journal %s leg: %w", op, err)
	}
	return nil
}

func mapWriteError(err error) error {
	switch {
	case pgerr.IsForeignKey(err, "item"):
		return stock.ErrItemNotFound
	case pgerr.IsForeignKey(err, "shelf"):
		return stock.ErrShelfNotFound
	case pgerr.IsCheck(err):
		// The count > 0 check constraint is a backstop; the statements should
		// never trip it.
		return stock.ErrInsufficientStock
	default:
		return fmt.Errorf("stock write: %w", err)
	}
}

func (r *PGRepository) GetEntry(ctx context.Context, itemID model.ItemID, shelfID model.ShelfID) (*model.StockEntry, error) {
	var entry model.StockEntry
	query := `SELECT item_id, shelf_id, count FROM stock_entries WHERE item_id = $1 AND shelf_id = $2`
	err := r.DB.GetContext(ctx, &entry, query, itemID, shelfID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock entry: %w", err)
	}
	return &entry, nil
}

func (r *PGRepository) GetStockOnShelf(ctx context.Context, spec model.ListingSpec, shelfID model.ShelfID) (*model.Listing[model.ItemOnShelf], error) {
	base := dialect.From(goqu.T("stock_entries").As("st")).
		Join(goqu.T("items").As("i"), goqu.On(goqu.I("i.item_id").Eq(goqu.I("st.item_id")))).
		Join(goqu.T("shelves").As("s"), goqu.On(goqu.I("s.shelf_id").Eq(goqu.I("st.shelf_id")))).
		Where(goqu.I("st.shelf_id").Eq(shelfID))

	countSQL, _, err := base.Select(goqu.COUNT(goqu.Star())).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build shelf count query: %w", err)
	}
	var total int64
	if err := r.DB.GetContext(ctx, &total, countSQL); err != nil {
		return nil, fmt.Errorf("count stock on shelf: %w", err)
	}

	orderCol := goqu.I("st.item_id")
	if spec.Sort.ByName() {
		orderCol = goqu.I("i.name")
	}
	order := orderCol.Asc()
	if spec.Sort.Descending() {
		order = orderCol.Desc()
	}

	listSQL, _, err := base.
		Select(
			goqu.I("st.item_id"),
			goqu.I("i.name").As("item_name"),
			goqu.I("st.shelf_id"),
			goqu.I("s.name").As("shelf_name"),
			goqu.I("st.count"),
			goqu.I("i.sn"),
		).
		Order(order).
		Limit(uint(spec.Limit)).
		Offset(uint(spec.Offset)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build shelf listing query: %w", err)
	}

	data := []model.ItemOnShelf{}
	if err := r.DB.SelectContext(ctx, &data, listSQL); err != nil {
		return nil, fmt.Errorf("list stock on shelf: %w", err)
	}
	return &model.Listing[model.ItemOnShelf]{Total: total, Data: data}, nil
}

func (r *PGRepository) GetStockInRoom(ctx context.Context, spec model.ListingSpec, roomID model.RoomID) (*model.Listing[model.ItemInRoom], error) {
	base := dialect.From(goqu.T("stock_entries").As("st")).
		Join(goqu.T("items").As("i"), goqu.On(goqu.I("i.item_id").Eq(goqu.I("st.item_id")))).
		Join(goqu.T("shelves").As("s"), goqu.On(goqu.I("s.shelf_id").Eq(goqu.I("st.shelf_id")))).
		Join(goqu.T("rooms").As("r"), goqu.On(goqu.I("r.room_id").Eq(goqu.I("s.room_id")))).
		Where(goqu.I("r.room_id").Eq(roomID))

	countSQL, _, err := base.Select(goqu.COUNT(goqu.DISTINCT(goqu.I("st.item_id")))).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build room count query: %w", err)
	}
	var total int64
	if err := r.DB.GetContext(ctx, &total, countSQL); err != nil {
		return nil, fmt.Errorf("count stock in room: %w", err)
	}

	orderCol := goqu.I("st.item_id")
	if spec.Sort.ByName() {
		orderCol = goqu.I("i.name")
	}
	order := orderCol.Asc()
	if spec.Sort.Descending() {
		order = orderCol.Desc()
	}

	listSQL, _, err := base.
		Select(
			goqu.I("st.item_id"),
			goqu.I("i.name").As("item_name"),
			goqu.I("r.room_id"),
			goqu.I("r.name").As("room_name"),
			goqu.SUM(goqu.I("st.count")).As("count"),
		).
		GroupBy(goqu.I("st.item_id"), goqu.I("i.name"), goqu.I("r.room_id"), goqu.I("r.name")).
		Order(order).
		Limit(uint(spec.Limit)).
		Offset(uint(spec.Offset)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build room listing query: %w", err)
	}

	data := []model.ItemInRoom{}
	if err := r.DB.SelectContext(ctx, &data, listSQL); err != nil {
		return nil, fmt.Errorf("list stock in room: %w", err)
	}
	return &model.Listing[model.ItemInRoom]{Total: total, Data: data}, nil
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) (*model.Listing[model.StockMovement], error) {
	base := dialect.From(goqu.T("stock_movements"))
	if f.ItemID != 0 {
		base = base.Where(goqu.C("item_id").Eq(f.ItemID))
	}
	if f.ShelfID != 0 {
		base = base.Where(goqu.C("shelf_id").Eq(f.ShelfID))
	}
	if f.Op != "" {
		base = base.Where(goqu.C("op").Eq(f.Op))
	}

	countSQL, _, err := base.Select(goqu.COUNT(goqu.Star())).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build movements count query: %w", err)
	}
	var total int64
	if err := r.DB.GetContext(ctx, &total, countSQL); err != nil {
		return nil, fmt.Errorf("count movements: %w", err)
	}

	listSQL, _, err := base.
		Select(goqu.Star()).
		Order(goqu.C("created_at").Desc()).
		Limit(uint(f.Spec.Limit)).
		Offset(uint(f.Spec.Offset)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build movements listing query: %w", err)
	}

	data := []model.StockMovement{}
	if err := r.DB.SelectContext(ctx, &data, listSQL); err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return &model.Listing[model.StockMovement]{Total: total, Data: data}, nil
}
