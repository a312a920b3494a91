package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stockroom/stockroom-service/internal/model"
	"github.com/stockroom/stockroom-service/internal/stock"
	"github.com/stockroom/stockroom-service/internal/stock/dto"
	"github.com/stockroom/stockroom-service/pkg/logger"
)

const cacheKeyPrefix = "stock:listing:"

type stockUseCase struct {
	repo       stock.Repository
	cache      stock.ListingCache
	publisher  stock.EventPublisher
	listingTTL time.Duration
	logger     logger.ZapLogger
}

// NewStockUseCase builds the facade over the ledger. cache and publisher may
// be nil; the related side effects are then skipped.
func NewStockUseCase(repo stock.Repository, cache stock.ListingCache, publisher stock.EventPublisher, listingTTL time.Duration, log logger.ZapLogger) stock.UseCase {
	return &stockUseCase{
		repo:       repo,
		cache:      cache,
		publisher:  publisher,
		listingTTL: listingTTL,
		logger:     log,
	}
}

func (uc *stockUseCase) Deposit(ctx context.Context, input *dto.MoveInput) error {
	if input.Count <= 0 {
		return stock.ErrCountMustBePositive
	}
	if err := uc.repo.Deposit(ctx, input.ItemID, input.ShelfID, input.Count, input.ActorID); err != nil {
		return err
	}
	uc.afterMutation(ctx, model.OpDeposit, input.ActorID, stock.EventLeg{
		ItemID: input.ItemID, ShelfID: input.ShelfID, Delta: input.Count,
	})
	return nil
}

func (uc *stockUseCase) Withdraw(ctx context.Context, input *dto.MoveInput) error {
	if input.Count <= 0 {
		return stock.ErrCountMustBePositive
	}
	if err := uc.repo.Withdraw(ctx, input.ItemID, input.ShelfID, input.Count, input.ActorID); err != nil {
		return err
	}
	uc.afterMutation(ctx, model.OpWithdraw, input.ActorID, stock.EventLeg{
		ItemID: input.ItemID, ShelfID: input.ShelfID, Delta: -input.Count,
	})
	return nil
}

func (uc *stockUseCase) Transfer(ctx context.Context, input *dto.TransferInput) error {
	if input.Count <= 0 {
		return stock.ErrCountMustBePositive
	}
	if err := uc.repo.Transfer(ctx, input.ItemID, input.Count, input.ShelfFrom, input.ShelfTo, input.ActorID); err != nil {
		return err
	}
	uc.afterMutation(ctx, "transfer", input.ActorID,
		stock.EventLeg{ItemID: input.ItemID, ShelfID: input.ShelfFrom, Delta: -input.Count},
		stock.EventLeg{ItemID: input.ItemID, ShelfID: input.ShelfTo, Delta: input.Count},
	)
	return nil
}

func (uc *stockUseCase) Convert(ctx context.Context, input *dto.ConvertInput) error {
	if len(input.From) == 0 {
		return stock.ErrSourceMustBePositive
	}
	if len(input.Into) == 0 {
		return stock.ErrTargetMustBePositive
	}
	for _, leg := range append(append([]model.ItemXShelf{}, input.From...), input.Into...) {
		if leg.Count <= 0 {
			return stock.ErrCountMustBePositive
		}
	}

	if err := uc.repo.Convert(ctx, input.From, input.Into, input.ActorID); err != nil {
		return err
	}

	legs := make([]stock.EventLeg, 0, len(input.From)+len(input.Into))
	for _, leg := range input.From {
		legs = append(legs, stock.EventLeg{ItemID: leg.ItemID, ShelfID: leg.ShelfID, Delta: -leg.Count})
	}
	for _, leg := range input.Into {
		legs = append(legs, stock.EventLeg{ItemID: leg.ItemID, ShelfID: leg.ShelfID, Delta: leg.Count})
	}
	uc.afterMutation(ctx, "convert", input.ActorID, legs...)
	return nil
}

// afterMutation runs the post-commit side effects: listing cache invalidation
// and event publication. Failures here are logged, never surfaced; the ledger
// write has already committed.
func (uc *stockUseCase) afterMutation(ctx context.Context, op, actorID string, legs ...stock.EventLeg) {
	if uc.cache != nil {
		if err := uc.cache.DeletePattern(ctx, cacheKeyPrefix+"*"); err != nil {
			uc.logger.Warn("failed to invalidate stock listing cache", zap.Error(err))
		}
	}

	if uc.publisher == nil {
		return
	}
	event := stock.StockMovedEvent{
		EventID:   uuid.New().String(),
		EventType: stock.EventTypeStockMoved,
		Payload:   stock.StockMovedPayload{Op: op, ActorID: actorID, Legs: legs},
		Timestamp: time.Now().UTC(),
	}
	value, err := json.Marshal(event)
	if err != nil {
		uc.logger.Error("failed to marshal stock event", zap.Error(err))
		return
	}
	key := fmt.Sprintf("%d", legs[0].ItemID)
	if err := uc.publisher.Publish(ctx, []byte(key), value); err != nil {
		uc.logger.Error("failed to publish stock event",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

func (uc *stockUseCase) GetStockOnShelf(ctx context.Context, shelfID model.ShelfID, spec model.ListingSpec) (*model.Listing[model.ItemOnShelf], error) {
	key := uc.listingKey("shelf", shelfID, spec)
	if listing, ok := cachedListing[model.ItemOnShelf](ctx, uc, key); ok {
		return listing, nil
	}

	listing, err := uc.repo.GetStockOnShelf(ctx, spec, shelfID)
	if err != nil {
		return nil, err
	}
	uc.storeListing(ctx, key, listing)
	return listing, nil
}

func (uc *stockUseCase) GetStockInRoom(ctx context.Context, roomID model.RoomID, spec model.ListingSpec) (*model.Listing[model.ItemInRoom], error) {
	key := uc.listingKey("room", roomID, spec)
	if listing, ok := cachedListing[model.ItemInRoom](ctx, uc, key); ok {
		return listing, nil
	}

	listing, err := uc.repo.GetStockInRoom(ctx, spec, roomID)
	if err != nil {
		return nil, err
	}
	uc.storeListing(ctx, key, listing)
	return listing, nil
}

func (uc *stockUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) (*model.Listing[model.StockMovement], error) {
	return uc.repo.ListMovements(ctx, filters)
}

func (uc *stockUseCase) listingKey(scope string, id int64, spec model.ListingSpec) string {
	raw := fmt.Sprintf("%s:%d:%d:%d:%s", scope, id, spec.Offset, spec.Limit, spec.Sort)
	return cacheKeyPrefix + fmt.Sprintf("%x", md5.Sum([]byte(raw)))
}

func cachedListing[T any](ctx context.Context, uc *stockUseCase, key string) (*model.Listing[T], bool) {
	if uc.cache == nil {
		return nil, false
	}
	var listing model.Listing[T]
	if err := uc.cache.Get(ctx, key, &listing); err != nil {
		return nil, false
	}
	return &listing, true
}

func (uc *stockUseCase) storeListing(ctx context.Context, key string, value interface{}) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Set(ctx, key, value, uc.listingTTL); err != nil {
		uc.logger.Warn("failed to cache stock listing", zap.Error(err))
	}
}
