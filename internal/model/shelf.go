package model

type ShelfID = int64

type Shelf struct {
	ShelfID ShelfID `db:"shelf_id" json:"shelf_id"`
	Name    string  `db:"name" json:"name"`
	Layer   int64   `db:"layer" json:"layer"`
	RoomID  RoomID  `db:"room_id" json:"room_id"`
}
