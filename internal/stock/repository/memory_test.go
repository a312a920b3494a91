package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/stockroom-service/internal/model"
	"github.com/stockroom/stockroom-service/internal/stock"
	"github.com/stockroom/stockroom-service/internal/stock/dto"
)

func seededRepo(t *testing.T) *MemoryRepository {
	t.Helper()

	repo := NewMemoryRepository()
	repo.SeedRoom(1, "storage room")
	repo.SeedRoom(2, "workshop")
	repo.SeedShelf(10, "shelf A", 1)
	repo.SeedShelf(20, "shelf B", 1)
	repo.SeedShelf(30, "bench", 2)
	repo.SeedItem(1, "bolt", "SN-0001")
	repo.SeedItem(2, "bracket", "SN-0002")
	return repo
}

func mustCount(t *testing.T, repo *MemoryRepository, itemID model.ItemID, shelfID model.ShelfID) int64 {
	t.Helper()

	entry, err := repo.GetEntry(context.Background(), itemID, shelfID)
	require.NoError(t, err)
	if entry == nil {
		return 0
	}
	return entry.Count
}

func TestDepositCreatesAndAccumulates(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Deposit(ctx, 1, 10, 5, "alice"))
	assert.Equal(t, int64(5), mustCount(t, repo, 1, 10))

	require.NoError(t, repo.Deposit(ctx, 1, 10, 3, "alice"))
	assert.Equal(t, int64(8), mustCount(t, repo, 1, 10))
}

func TestDepositUnknownIdentities(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	err := repo.Deposit(ctx, 99, 10, 5, "")
	assert.ErrorIs(t, err, stock.ErrItemNotFound)

	err = repo.Deposit(ctx, 1, 99, 5, "")
	assert.ErrorIs(t, err, stock.ErrShelfNotFound)
}

func TestWithdrawRejectsDrainingToZero(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Deposit(ctx, 1, 10, 5, ""))

	// Withdrawing the full balance must fail: a stored count is never zero.
	err := repo.Withdraw(ctx, 1, 10, 5, "")
	assert.ErrorIs(t, err, stock.ErrInsufficientStock)
	assert.Equal(t, int64(5), mustCount(t, repo, 1, 10))
}

func TestWithdrawLeavesPositiveBalance(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Deposit(ctx, 1, 10, 5, ""))

	require.NoError(t, repo.Withdraw(ctx, 1, 10, 3, ""))
	assert.Equal(t, int64(2), mustCount(t, repo, 1, 10))
}

func TestWithdrawFromEmptyShelf(t *testing.T) {
	repo := seededRepo(t)

	err := repo.Withdraw(context.Background(), 1, 10, 1, "")
	assert.ErrorIs(t, err, stock.ErrInsufficientStock)
}

func TestTransferCreatesDestinationRow(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Deposit(ctx, 1, 10, 10, ""))

	require.NoError(t, repo.Transfer(ctx, 1, 4, 10, 20, ""))
	assert.Equal(t, int64(6), mustCount(t, repo, 1, 10))
	assert.Equal(t, int64(4), mustCount(t, repo, 1, 20))
}

func TestTransferIsZeroSum(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Deposit(ctx, 1, 10, 7, ""))
	require.NoError(t, repo.Deposit(ctx, 1, 20, 3, ""))

	before := mustCount(t, repo, 1, 10) + mustCount(t, repo, 1, 20)
	require.NoError(t, repo.Transfer(ctx, 1, 5, 10, 20, ""))
	after := mustCount(t, repo, 1, 10) + mustCount(t, repo, 1, 20)
	assert.Equal(t, before, after)
}

func TestTransferInsufficientLeavesSourceUntouched(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Deposit(ctx, 1, 10, 3, ""))

	err := repo.Transfer(ctx, 1, 3, 10, 20, "")
	assert.ErrorIs(t, err, stock.ErrInsufficientStock)
	assert.Equal(t, int64(3), mustCount(t, repo, 1, 10))
	assert.Equal(t, int64(0), mustCount(t, repo, 1, 20))
}

func TestConvertSubstitutesItems(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Deposit(ctx, 1, 10, 5, ""))

	err := repo.Convert(ctx,
		[]model.ItemXShelf{{ItemID: 1, ShelfID: 10, Count: 3}},
		[]model.ItemXShelf{{ItemID: 2, ShelfID: 10, Count: 3}},
		"")
	require.NoError(t, err)
	assert.Equal(t, int64(2), mustCount(t, repo, 1, 10))
	assert.Equal(t, int64(3), mustCount(t, repo, 2, 10))
}

func TestConvertRollsBackOnFailedLeg(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Deposit(ctx, 1, 10, 5, ""))
	require.NoError(t, repo.Deposit(ctx, 1, 20, 2, ""))

	// Second from-leg cannot be satisfied; the first one must not persist.
	err := repo.Convert(ctx,
		[]model.ItemXShelf{
			{ItemID: 1, ShelfID: 10, Count: 3},
			{ItemID: 1, ShelfID: 20, Count: 2},
		},
		[]model.ItemXShelf{{ItemID: 2, ShelfID: 30, Count: 5}},
		"")
	assert.ErrorIs(t, err, stock.ErrInsufficientStock)
	assert.Equal(t, int64(5), mustCount(t, repo, 1, 10))
	assert.Equal(t, int64(2), mustCount(t, repo, 1, 20))
	assert.Equal(t, int64(0), mustCount(t, repo, 2, 30))
}

func TestConvertRollsBackOnUnknownTarget(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Deposit(ctx, 1, 10, 5, ""))

	err := repo.Convert(ctx,
		[]model.ItemXShelf{{ItemID: 1, ShelfID: 10, Count: 3}},
		[]model.ItemXShelf{{ItemID: 2, ShelfID: 99, Count: 3}},
		"")
	assert.ErrorIs(t, err, stock.ErrShelfNotFound)
	assert.Equal(t, int64(5), mustCount(t, repo, 1, 10))
}

func TestConcurrentWithdrawalsNeverBothSucceed(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Deposit(ctx, 1, 10, 6, ""))

	var wg sync.WaitGroup
	results := make([]error, 2)
	counts := []int64{5, 4}
	for i := range counts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = repo.Withdraw(ctx, 1, 10, counts[i], "")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, stock.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Greater(t, mustCount(t, repo, 1, 10), int64(0))
}

func TestMovementJournal(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Deposit(ctx, 1, 10, 10, "alice"))
	require.NoError(t, repo.Transfer(ctx, 1, 4, 10, 20, "bob"))

	listing, err := repo.ListMovements(ctx, &dto.MovementFilters{
		Spec: model.NormalizeListingSpec(0, 10, ""),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), listing.Total)

	outs, err := repo.ListMovements(ctx, &dto.MovementFilters{
		Op:   model.OpTransferOut,
		Spec: model.NormalizeListingSpec(0, 10, ""),
	})
	require.NoError(t, err)
	require.Len(t, outs.Data, 1)
	assert.Equal(t, int64(-4), outs.Data[0].Delta)
	assert.Equal(t, int64(6), outs.Data[0].CountAfter)
	require.NotNil(t, outs.Data[0].CreatedBy)
	assert.Equal(t, "bob", *outs.Data[0].CreatedBy)
}

func TestGetStockOnShelfListing(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Deposit(ctx, 1, 10, 5, ""))
	require.NoError(t, repo.Deposit(ctx, 2, 10, 2, ""))
	require.NoError(t, repo.Deposit(ctx, 1, 20, 9, ""))

	listing, err := repo.GetStockOnShelf(ctx, model.NormalizeListingSpec(0, 10, "name_asc"), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), listing.Total)
	require.Len(t, listing.Data, 2)
	assert.Equal(t, "bolt", listing.Data[0].ItemName)
	assert.Equal(t, "bracket", listing.Data[1].ItemName)
	assert.Equal(t, "SN-0001", listing.Data[0].SN)
	assert.Equal(t, "shelf A", listing.Data[0].ShelfName)

	// Idempotent read: same query, same result.
	again, err := repo.GetStockOnShelf(ctx, model.NormalizeListingSpec(0, 10, "name_asc"), 10)
	require.NoError(t, err)
	assert.Equal(t, listing, again)
}

func TestGetStockInRoomAggregates(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Deposit(ctx, 1, 10, 5, ""))
	require.NoError(t, repo.Deposit(ctx, 1, 20, 7, ""))
	require.NoError(t, repo.Deposit(ctx, 1, 30, 100, "")) // other room
	require.NoError(t, repo.Deposit(ctx, 2, 10, 1, ""))

	listing, err := repo.GetStockInRoom(ctx, model.NormalizeListingSpec(0, 10, "id_asc"), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), listing.Total)
	require.Len(t, listing.Data, 2)
	assert.Equal(t, int64(12), listing.Data[0].Count)
	assert.Equal(t, "storage room", listing.Data[0].RoomName)
}
