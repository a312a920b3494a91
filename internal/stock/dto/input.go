package dto

import "github.com/stockroom/stockroom-service/internal/model"

// MoveInput is the operand of a deposit or withdraw call.
type MoveInput struct {
	ItemID  model.ItemID
	ShelfID model.ShelfID
	Count   int64
	ActorID string
}

type TransferInput struct {
	ItemID    model.ItemID
	Count     int64
	ShelfFrom model.ShelfID
	ShelfTo   model.ShelfID
	ActorID   string
}

type ConvertInput struct {
	From    []model.ItemXShelf
	Into    []model.ItemXShelf
	ActorID string
}

// MovementFilters narrows the movement journal listing. Zero values mean "any".
type MovementFilters struct {
	ItemID  model.ItemID
	ShelfID model.ShelfID
	Op      string
	Spec    model.ListingSpec
}
