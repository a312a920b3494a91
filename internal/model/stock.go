package model

import "time"

// StockEntry is the ledger's only mutable row: the quantity of one item on one
// shelf. A row exists only while Count > 0; absence means zero stock.
type StockEntry struct {
	ItemID  ItemID  `db:"item_id" json:"item_id"`
	ShelfID ShelfID `db:"shelf_id" json:"shelf_id"`
	Count   int64   `db:"count" json:"count"`
}

// ItemXShelf is one operand of a convert call: a requested delta against an
// (item, shelf) pair.
type ItemXShelf struct {
	ItemID  ItemID  `db:"item_id" json:"item_id"`
	ShelfID ShelfID `db:"shelf_id" json:"shelf_id"`
	Count   int64   `db:"count" json:"count"`
}

// ItemOnShelf is the stock-on-shelf listing projection.
type ItemOnShelf struct {
	ItemID    ItemID  `db:"item_id" json:"item_id"`
	ItemName  string  `db:"item_name" json:"item_name"`
	ShelfID   ShelfID `db:"shelf_id" json:"shelf_id"`
	ShelfName string  `db:"shelf_name" json:"shelf_name"`
	Count     int64   `db:"count" json:"count"`
	SN        string  `db:"sn" json:"sn"`
}

// ItemInRoom is the stock-in-room aggregation projection: item quantity summed
// over every shelf of one room.
type ItemInRoom struct {
	ItemID   ItemID `db:"item_id" json:"item_id"`
	ItemName string `db:"item_name" json:"item_name"`
	RoomID   RoomID `db:"room_id" json:"room_id"`
	RoomName string `db:"room_name" json:"room_name"`
	Count    int64  `db:"count" json:"count"`
}

// StockMovement is one journal row: a single signed leg of a committed ledger
// operation.
type StockMovement struct {
	ID         string    `db:"id" json:"id"`
	Op         string    `db:"op" json:"op"`
	ItemID     ItemID    `db:"item_id" json:"item_id"`
	ShelfID    ShelfID   `db:"shelf_id" json:"shelf_id"`
	Delta      int64     `db:"delta" json:"delta"`
	CountAfter int64     `db:"count_after" json:"count_after"`
	CreatedBy  *string   `db:"created_by" json:"created_by"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Movement ops, one per ledger leg.
const (
	OpDeposit     = "deposit"
	OpWithdraw    = "withdraw"
	OpTransferOut = "transfer_out"
	OpTransferIn  = "transfer_in"
	OpConvertOut  = "convert_out"
	OpConvertIn   = "convert_in"
)

// Listing is the paged response shape shared by every list query.
type Listing[T any] struct {
	Total int64 `json:"total"`
	Data  []T   `json:"data"`
}
