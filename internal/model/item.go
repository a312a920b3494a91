package model

import "time"

type ItemID = int64

type Item struct {
	ItemID      ItemID     `db:"item_id" json:"item_id"`
	Name        string     `db:"name" json:"name"`
	Description *string    `db:"description" json:"description"`
	SN          string     `db:"sn" json:"sn"` // serial / catalog number
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at" json:"updated_at"`
}
