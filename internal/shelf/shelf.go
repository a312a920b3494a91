package shelf

import (
	"context"
	"errors"

	"github.com/stockroom/stockroom-service/internal/model"
	"github.com/stockroom/stockroom-service/internal/shelf/dto"
)

var (
	ErrShelfNotFound = errors.New("shelf: not found")
	ErrRoomNotFound  = errors.New("shelf: room not found")
	// ErrShelfInUse rejects deleting a shelf that still holds stock.
	ErrShelfInUse = errors.New("shelf: still holds stock")
	ErrNameEmpty  = errors.New("shelf: name must not be empty")
)

type Repository interface {
	Create(ctx context.Context, name string, layer int64, roomID model.RoomID) (model.ShelfID, error)
	GetByID(ctx context.Context, shelfID model.ShelfID) (*model.Shelf, error)
	List(ctx context.Context, spec model.ListingSpec) (*model.Listing[model.Shelf], error)
	ListInRoom(ctx context.Context, spec model.ListingSpec, roomID model.RoomID) (*model.Listing[model.Shelf], error)
	UpdateName(ctx context.Context, shelfID model.ShelfID, name string) error
	UpdateLayer(ctx context.Context, shelfID model.ShelfID, layer int64) error
	UpdateRoom(ctx context.Context, shelfID model.ShelfID, roomID model.RoomID) error
	Delete(ctx context.Context, shelfID model.ShelfID) error
}

type UseCase interface {
	CreateShelf(ctx context.Context, input *dto.CreateShelfInput) (*model.Shelf, error)
	GetShelf(ctx context.Context, shelfID model.ShelfID) (*model.Shelf, error)
	ListShelves(ctx context.Context, spec model.ListingSpec) (*model.Listing[model.Shelf], error)
	ListShelvesInRoom(ctx context.Context, roomID model.RoomID, spec model.ListingSpec) (*model.Listing[model.Shelf], error)
	UpdateShelf(ctx context.Context, shelfID model.ShelfID, input *dto.UpdateShelfInput) (*model.Shelf, error)
	DeleteShelf(ctx context.Context, shelfID model.ShelfID) error
}
