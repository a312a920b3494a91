package item

import (
	"context"
	"errors"

	"github.com/stockroom/stockroom-service/internal/item/dto"
	"github.com/stockroom/stockroom-service/internal/model"
)

var (
	ErrItemNotFound = errors.New("item: not found")
	// ErrDuplicateSN rejects a serial number already registered.
	ErrDuplicateSN = errors.New("item: serial number already exists")
	// ErrItemInUse rejects deleting an item that still has stock on some shelf.
	ErrItemInUse = errors.New("item: still stocked")
	ErrNameEmpty = errors.New("item: name must not be empty")
	ErrSNEmpty   = errors.New("item: serial number must not be empty")
)

type Repository interface {
	Create(ctx context.Context, name, sn string, description *string) (model.ItemID, error)
	GetByID(ctx context.Context, itemID model.ItemID) (*model.Item, error)
	List(ctx context.Context, spec model.ListingSpec) (*model.Listing[model.Item], error)
	UpdateName(ctx context.Context, itemID model.ItemID, name string) error
	UpdateDescription(ctx context.Context, itemID model.ItemID, description string) error
	UpdateSN(ctx context.Context, itemID model.ItemID, sn string) error
	Delete(ctx context.Context, itemID model.ItemID) error
}

type UseCase interface {
	CreateItem(ctx context.Context, input *dto.CreateItemInput) (*model.Item, error)
	GetItem(ctx context.Context, itemID model.ItemID) (*model.Item, error)
	ListItems(ctx context.Context, spec model.ListingSpec) (*model.Listing[model.Item], error)
	UpdateItem(ctx context.Context, itemID model.ItemID, input *dto.UpdateItemInput) (*model.Item, error)
	DeleteItem(ctx context.Context, itemID model.ItemID) error
}
