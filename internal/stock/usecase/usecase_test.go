package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/stockroom-service/internal/model"
	"github.com/stockroom/stockroom-service/internal/stock"
	"github.com/stockroom/stockroom-service/internal/stock/dto"
	"github.com/stockroom/stockroom-service/internal/stock/repository"
	"github.com/stockroom/stockroom-service/pkg/logger"
)

type fakePublisher struct {
	mu     sync.Mutex
	events []stock.StockMovedEvent
	err    error
}

func (p *fakePublisher) Publish(ctx context.Context, key, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	var event stock.StockMovedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return err
	}
	p.events = append(p.events, event)
	return nil
}

type fakeCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (c *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return errors.New("cache miss")
	}
	return json.Unmarshal(raw, dest)
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *fakeCache) DeletePattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.deletes++
	return nil
}

func newTestUseCase(t *testing.T, cache stock.ListingCache, publisher stock.EventPublisher) (stock.UseCase, *repository.MemoryRepository) {
	t.Helper()

	repo := repository.NewMemoryRepository()
	repo.SeedRoom(1, "storage room")
	repo.SeedShelf(10, "shelf A", 1)
	repo.SeedShelf(20, "shelf B", 1)
	repo.SeedItem(1, "bolt", "SN-0001")
	repo.SeedItem(2, "bracket", "SN-0002")
	return NewStockUseCase(repo, cache, publisher, time.Minute, logger.NewNopLogger()), repo
}

func TestDepositRejectsNonPositiveCount(t *testing.T) {
	uc, _ := newTestUseCase(t, nil, nil)

	for _, count := range []int64{0, -3} {
		err := uc.Deposit(context.Background(), &dto.MoveInput{ItemID: 1, ShelfID: 10, Count: count})
		assert.ErrorIs(t, err, stock.ErrCountMustBePositive)
	}
}

func TestWithdrawRejectsNonPositiveCount(t *testing.T) {
	uc, _ := newTestUseCase(t, nil, nil)

	err := uc.Withdraw(context.Background(), &dto.MoveInput{ItemID: 1, ShelfID: 10, Count: 0})
	assert.ErrorIs(t, err, stock.ErrCountMustBePositive)
}

func TestConvertRejectsEmptyOperands(t *testing.T) {
	uc, _ := newTestUseCase(t, nil, nil)
	ctx := context.Background()

	err := uc.Convert(ctx, &dto.ConvertInput{
		Into: []model.ItemXShelf{{ItemID: 2, ShelfID: 10, Count: 1}},
	})
	assert.ErrorIs(t, err, stock.ErrSourceMustBePositive)

	err = uc.Convert(ctx, &dto.ConvertInput{
		From: []model.ItemXShelf{{ItemID: 1, ShelfID: 10, Count: 1}},
	})
	assert.ErrorIs(t, err, stock.ErrTargetMustBePositive)
}

func TestConvertRejectsNonPositiveLeg(t *testing.T) {
	uc, _ := newTestUseCase(t, nil, nil)

	err := uc.Convert(context.Background(), &dto.ConvertInput{
		From: []model.ItemXShelf{{ItemID: 1, ShelfID: 10, Count: 3}},
		Into: []model.ItemXShelf{{ItemID: 2, ShelfID: 10, Count: 0}},
	})
	assert.ErrorIs(t, err, stock.ErrCountMustBePositive)
}

func TestDepositPublishesEvent(t *testing.T) {
	publisher := &fakePublisher{}
	uc, _ := newTestUseCase(t, nil, publisher)

	err := uc.Deposit(context.Background(), &dto.MoveInput{ItemID: 1, ShelfID: 10, Count: 5, ActorID: "alice"})
	require.NoError(t, err)

	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.Equal(t, stock.EventTypeStockMoved, event.EventType)
	assert.Equal(t, model.OpDeposit, event.Payload.Op)
	assert.Equal(t, "alice", event.Payload.ActorID)
	require.Len(t, event.Payload.Legs, 1)
	assert.Equal(t, int64(5), event.Payload.Legs[0].Delta)
}

func TestTransferPublishesBothLegs(t *testing.T) {
	publisher := &fakePublisher{}
	uc, _ := newTestUseCase(t, nil, publisher)
	ctx := context.Background()
	require.NoError(t, uc.Deposit(ctx, &dto.MoveInput{ItemID: 1, ShelfID: 10, Count: 10}))

	require.NoError(t, uc.Transfer(ctx, &dto.TransferInput{ItemID: 1, Count: 4, ShelfFrom: 10, ShelfTo: 20}))

	require.Len(t, publisher.events, 2)
	legs := publisher.events[1].Payload.Legs
	require.Len(t, legs, 2)
	assert.Equal(t, int64(-4), legs[0].Delta)
	assert.Equal(t, int64(4), legs[1].Delta)
	assert.Equal(t, int64(0), legs[0].Delta+legs[1].Delta)
}

func TestFailedWithdrawPublishesNothing(t *testing.T) {
	publisher := &fakePublisher{}
	uc, _ := newTestUseCase(t, nil, publisher)

	err := uc.Withdraw(context.Background(), &dto.MoveInput{ItemID: 1, ShelfID: 10, Count: 3})
	assert.ErrorIs(t, err, stock.ErrInsufficientStock)
	assert.Empty(t, publisher.events)
}

func TestPublishFailureDoesNotFailOperation(t *testing.T) {
	publisher := &fakePublisher{err: errors.New("broker down")}
	uc, repo := newTestUseCase(t, nil, publisher)

	err := uc.Deposit(context.Background(), &dto.MoveInput{ItemID: 1, ShelfID: 10, Count: 5})
	require.NoError(t, err)

	entry, err := repo.GetEntry(context.Background(), 1, 10)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, int64(5), entry.Count)
}

func TestListingServedFromCache(t *testing.T) {
	cache := newFakeCache()
	uc, repo := newTestUseCase(t, cache, nil)
	ctx := context.Background()
	require.NoError(t, uc.Deposit(ctx, &dto.MoveInput{ItemID: 1, ShelfID: 10, Count: 5}))

	spec := model.NormalizeListingSpec(0, 10, "")
	first, err := uc.GetStockOnShelf(ctx, 10, spec)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Total)

	// Write behind the cache's back; the cached listing must still be served.
	require.NoError(t, repo.Deposit(ctx, 2, 10, 2, ""))
	second, err := uc.GetStockOnShelf(ctx, 10, spec)
	require.NoError(t, err)
	assert.Equal(t, int64(1), second.Total)
}

func TestMutationInvalidatesListingCache(t *testing.T) {
	cache := newFakeCache()
	uc, _ := newTestUseCase(t, cache, nil)
	ctx := context.Background()
	require.NoError(t, uc.Deposit(ctx, &dto.MoveInput{ItemID: 1, ShelfID: 10, Count: 5}))

	spec := model.NormalizeListingSpec(0, 10, "")
	_, err := uc.GetStockOnShelf(ctx, 10, spec)
	require.NoError(t, err)

	require.NoError(t, uc.Deposit(ctx, &dto.MoveInput{ItemID: 2, ShelfID: 10, Count: 2}))

	listing, err := uc.GetStockOnShelf(ctx, 10, spec)
	require.NoError(t, err)
	assert.Equal(t, int64(2), listing.Total)
	assert.GreaterOrEqual(t, cache.deletes, 2)
}

func TestConvertEndToEnd(t *testing.T) {
	uc, repo := newTestUseCase(t, nil, nil)
	ctx := context.Background()
	require.NoError(t, uc.Deposit(ctx, &dto.MoveInput{ItemID: 1, ShelfID: 10, Count: 5}))

	err := uc.Convert(ctx, &dto.ConvertInput{
		From: []model.ItemXShelf{{ItemID: 1, ShelfID: 10, Count: 3}},
		Into: []model.ItemXShelf{{ItemID: 2, ShelfID: 20, Count: 1}},
	})
	require.NoError(t, err)

	entry, err := repo.GetEntry(ctx, 2, 20)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, int64(1), entry.Count)
}
