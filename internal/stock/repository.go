package stock

import (
	"context"

	"github.com/stockroom/stockroom-service/internal/model"
	"github.com/stockroom/stockroom-service/internal/stock/dto"
)

// Repository is the stock entry store plus the four atomic ledger operations.
// Every mutating call runs in its own transaction: it either commits all of
// its legs and their journal rows, or leaves no trace.
type Repository interface {
	// Ledger operations
	Deposit(ctx context.Context, itemID model.ItemID, shelfID model.ShelfID, count int64, actorID string) error
	Withdraw(ctx context.Context, itemID model.ItemID, shelfID model.ShelfID, count int64, actorID string) error
	Transfer(ctx context.Context, itemID model.ItemID, count int64, shelfFrom, shelfTo model.ShelfID, actorID string) error
	Convert(ctx context.Context, from, into []model.ItemXShelf, actorID string) error

	// Reads. GetEntry returns nil when the pair holds no stock.
	GetEntry(ctx context.Context, itemID model.ItemID, shelfID model.ShelfID) (*model.StockEntry, error)
	GetStockOnShelf(ctx context.Context, spec model.ListingSpec, shelfID model.ShelfID) (*model.Listing[model.ItemOnShelf], error)
	GetStockInRoom(ctx context.Context, spec model.ListingSpec, roomID model.RoomID) (*model.Listing[model.ItemInRoom], error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) (*model.Listing[model.StockMovement], error)
}
