package dto

import "github.com/stockroom/stockroom-service/internal/model"

type CreateShelfInput struct {
	Name   string
	Layer  int64
	RoomID model.RoomID
}

// UpdateShelfInput carries only the fields the caller wants changed.
type UpdateShelfInput struct {
	Name   *string
	Layer  *int64
	RoomID *model.RoomID
}
