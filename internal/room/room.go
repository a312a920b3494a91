package room

import (
	"context"
	"errors"

	"github.com/stockroom/stockroom-service/internal/model"
	"github.com/stockroom/stockroom-service/internal/room/dto"
)

var (
	ErrRoomNotFound = errors.New("room: not found")
	// ErrRoomInUse rejects deleting a room that still has shelves.
	ErrRoomInUse = errors.New("room: still has shelves")
	ErrNameEmpty = errors.New("room: name must not be empty")
)

type Repository interface {
	Create(ctx context.Context, name string, description *string) (model.RoomID, error)
	GetByID(ctx context.Context, roomID model.RoomID) (*model.Room, error)
	List(ctx context.Context, spec model.ListingSpec) (*model.Listing[model.Room], error)
	UpdateName(ctx context.Context, roomID model.RoomID, name string) error
	UpdateDescription(ctx context.Context, roomID model.RoomID, description string) error
	Delete(ctx context.Context, roomID model.RoomID) error
}

type UseCase interface {
	CreateRoom(ctx context.Context, input *dto.CreateRoomInput) (*model.Room, error)
	GetRoom(ctx context.Context, roomID model.RoomID) (*model.Room, error)
	ListRooms(ctx context.Context, spec model.ListingSpec) (*model.Listing[model.Room], error)
	UpdateRoom(ctx context.Context, roomID model.RoomID, input *dto.UpdateRoomInput) (*model.Room, error)
	DeleteRoom(ctx context.Context, roomID model.RoomID) error
}
