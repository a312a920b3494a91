package model

import "time"

type RoomID = int64

type Room struct {
	RoomID      RoomID    `db:"room_id" json:"room_id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
