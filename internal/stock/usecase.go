package stock

import (
	"context"
	"time"

	"github.com/stockroom/stockroom-service/internal/model"
	"github.com/stockroom/stockroom-service/internal/stock/dto"
)

type UseCase interface {
	Deposit(ctx context.Context, input *dto.MoveInput) error
	Withdraw(ctx context.Context, input *dto.MoveInput) error
	Transfer(ctx context.Context, input *dto.TransferInput) error
	Convert(ctx context.Context, input *dto.ConvertInput) error

	GetStockOnShelf(ctx context.Context, shelfID model.ShelfID, spec model.ListingSpec) (*model.Listing[model.ItemOnShelf], error)
	GetStockInRoom(ctx context.Context, roomID model.RoomID, spec model.ListingSpec) (*model.Listing[model.ItemInRoom], error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) (*model.Listing[model.StockMovement], error)
}

// EventPublisher emits movement events after a commit. Satisfied by the kafka
// producer wrapper.
type EventPublisher interface {
	Publish(ctx context.Context, key, value []byte) error
}

// ListingCache is the read-side cache for stock listings. Satisfied by the
// redis client wrapper.
type ListingCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeletePattern(ctx context.Context, pattern string) error
}
