package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stockroom/stockroom-service/internal/model"
	"github.com/stockroom/stockroom-service/internal/stock"
	"github.com/stockroom/stockroom-service/internal/stock/dto"
)

type pairKey struct {
	itemID  model.ItemID
	shelfID model.ShelfID
}

type itemMeta struct {
	name string
	sn   string
}

type shelfMeta struct {
	name   string
	roomID model.RoomID
}

// MemoryRepository keeps the ledger in process memory with the same semantics
// as the Postgres repository: conditional decrements under one lock, all legs
// of an operation applied to a staged copy and swapped in on success. Used by
// tests and as a throwaway dev backend.
type MemoryRepository struct {
	mu        sync.Mutex
	entries   map[pairKey]int64
	movements []model.StockMovement
	items     map[model.ItemID]itemMeta
	shelves   map[model.ShelfID]shelfMeta
	rooms     map[model.RoomID]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		entries: make(map[pairKey]int64),
		items:   make(map[model.ItemID]itemMeta),
		shelves: make(map[model.ShelfID]shelfMeta),
		rooms:   make(map[model.RoomID]string),
	}
}

// SeedRoom, SeedShelf and SeedItem register metadata rows the ledger's foreign
// keys would otherwise reference in Postgres.
func (r *MemoryRepository) SeedRoom(roomID model.RoomID, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[roomID] = name
}

func (r *MemoryRepository) SeedShelf(shelfID model.ShelfID, name string, roomID model.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shelves[shelfID] = shelfMeta{name: name, roomID: roomID}
}

func (r *MemoryRepository) SeedItem(itemID model.ItemID, name, sn string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[itemID] = itemMeta{name: name, sn: sn}
}

func (r *MemoryRepository) Deposit(ctx context.Context, itemID model.ItemID, shelfID model.ShelfID, count int64, actorID string) error {
	return r.apply(nil, []model.ItemXShelf{{ItemID: itemID, ShelfID: shelfID, Count: count}},
		model.OpWithdraw, model.OpDeposit, actorID)
}

func (r *MemoryRepository) Withdraw(ctx context.Context, itemID model.ItemID, shelfID model.ShelfID, count int64, actorID string) error {
	return r.apply([]model.ItemXShelf{{ItemID: itemID, ShelfID: shelfID, Count: count}}, nil,
		model.OpWithdraw, model.OpDeposit, actorID)
}

func (r *MemoryRepository) Transfer(ctx context.Context, itemID model.ItemID, count int64, shelfFrom, shelfTo model.ShelfID, actorID string) error {
	return r.apply(
		[]model.ItemXShelf{{ItemID: itemID, ShelfID: shelfFrom, Count: count}},
		[]model.ItemXShelf{{ItemID: itemID, ShelfID: shelfTo, Count: count}},
		model.OpTransferOut, model.OpTransferIn, actorID)
}

func (r *MemoryRepository) Convert(ctx context.Context, from, into []model.ItemXShelf, actorID string) error {
	return r.apply(from, into, model.OpConvertOut, model.OpConvertIn, actorID)
}

// apply stages every withdraw leg then every deposit leg against a copy of the
// ledger and swaps the copy in only if all legs succeed.
func (r *MemoryRepository) apply(from, into []model.ItemXShelf, outOp, inOp, actorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	staged := make(map[pairKey]int64, len(r.entries))
	for k, v := range r.entries {
		staged[k] = v
	}
	var journal []model.StockMovement

	for _, leg := range from {
		key := pairKey{leg.ItemID, leg.ShelfID}
		current, ok := staged[key]
		if !ok || current-leg.Count <= 0 {
			return stock.ErrInsufficientStock
		}
		staged[key] = current - leg.Count
		journal = append(journal, r.newMovement(outOp, leg, -leg.Count, staged[key], actorID))
	}

	for _, leg := range into {
		if _, ok := r.items[leg.ItemID]; !ok {
			return stock.ErrItemNotFound
		}
		if _, ok := r.shelves[leg.ShelfID]; !ok {
			return stock.ErrShelfNotFound
		}
		key := pairKey{leg.ItemID, leg.ShelfID}
		staged[key] += leg.Count
		journal = append(journal, r.newMovement(inOp, leg, leg.Count, staged[key], actorID))
	}

	r.entries = staged
	r.movements = append(r.movements, journal...)
	return nil
}

func (r *MemoryRepository) newMovement(op string, leg model.ItemXShelf, delta, after int64, actorID string) model.StockMovement {
	var createdBy *string
	if actorID != "" {
		createdBy = &actorID
	}
	return model.StockMovement{
		ID:         uuid.New().String(),
		Op:         op,
		ItemID:     leg.ItemID,
		ShelfID:    leg.ShelfID,
		Delta:      delta,
		CountAfter: after,
		CreatedBy:  createdBy,
		CreatedAt:  time.Now().UTC(),
	}
}

func (r *MemoryRepository) GetEntry(ctx context.Context, itemID model.ItemID, shelfID model.ShelfID) (*model.StockEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count, ok := r.entries[pairKey{itemID, shelfID}]
	if !ok {
		return nil, nil
	}
	return &model.StockEntry{ItemID: itemID, ShelfID: shelfID, Count: count}, nil
}

func (r *MemoryRepository) GetStockOnShelf(ctx context.Context, spec model.ListingSpec, shelfID model.ShelfID) (*model.Listing[model.ItemOnShelf], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	shelf := r.shelves[shelfID]
	rows := []model.ItemOnShelf{}
	for key, count := range r.entries {
		if key.shelfID != shelfID {
			continue
		}
		item := r.items[key.itemID]
		rows = append(rows, model.ItemOnShelf{
			ItemID:    key.itemID,
			ItemName:  item.name,
			ShelfID:   shelfID,
			ShelfName: shelf.name,
			Count:     count,
			SN:        item.sn,
		})
	}

	sortRows(rows, spec.Sort,
		func(a, b model.ItemOnShelf) bool { return a.ItemName < b.ItemName },
		func(a, b model.ItemOnShelf) bool { return a.ItemID < b.ItemID })
	total := int64(len(rows))
	return &model.Listing[model.ItemOnShelf]{Total: total, Data: page(rows, spec)}, nil
}

func (r *MemoryRepository) GetStockInRoom(ctx context.Context, spec model.ListingSpec, roomID model.RoomID) (*model.Listing[model.ItemInRoom], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sums := make(map[model.ItemID]int64)
	for key, count := range r.entries {
		if shelf, ok := r.shelves[key.shelfID]; ok && shelf.roomID == roomID {
			sums[key.itemID] += count
		}
	}

	rows := []model.ItemInRoom{}
	for itemID, count := range sums {
		item := r.items[itemID]
		rows = append(rows, model.ItemInRoom{
			ItemID:   itemID,
			ItemName: item.name,
			RoomID:   roomID,
			RoomName: r.rooms[roomID],
			Count:    count,
		})
	}

	sortRows(rows, spec.Sort,
		func(a, b model.ItemInRoom) bool { return a.ItemName < b.ItemName },
		func(a, b model.ItemInRoom) bool { return a.ItemID < b.ItemID })
	total := int64(len(rows))
	return &model.Listing[model.ItemInRoom]{Total: total, Data: page(rows, spec)}, nil
}

func (r *MemoryRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) (*model.Listing[model.StockMovement], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := []model.StockMovement{}
	for _, m := range r.movements {
		if f.ItemID != 0 && m.ItemID != f.ItemID {
			continue
		}
		if f.ShelfID != 0 && m.ShelfID != f.ShelfID {
			continue
		}
		if f.Op != "" && m.Op != f.Op {
			continue
		}
		rows = append(rows, m)
	}

	// Newest first, like the Postgres listing.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	total := int64(len(rows))
	return &model.Listing[model.StockMovement]{Total: total, Data: page(rows, f.Spec)}, nil
}

func sortRows[T any](rows []T, s model.Sorting, byName, byID func(a, b T) bool) {
	less := byID
	if s.ByName() {
		less = byName
	}
	if s.Descending() {
		inner := less
		less = func(a, b T) bool { return inner(b, a) }
	}
	sort.SliceStable(rows, func(i, j int) bool { return less(rows[i], rows[j]) })
}

func page[T any](rows []T, spec model.ListingSpec) []T {
	start := spec.Offset
	if start > int64(len(rows)) {
		start = int64(len(rows))
	}
	end := start + int64(spec.Limit)
	if spec.Limit <= 0 || end > int64(len(rows)) {
		end = int64(len(rows))
	}
	return rows[start:end]
}
