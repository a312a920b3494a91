package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/stockroom-service/internal/item"
	"github.com/stockroom/stockroom-service/internal/item/dto"
	"github.com/stockroom/stockroom-service/internal/model"
	"github.com/stockroom/stockroom-service/pkg/logger"
)

type stubRepo struct {
	items  map[model.ItemID]*model.Item
	nextID model.ItemID
}

func newStubRepo() *stubRepo {
	return &stubRepo{items: make(map[model.ItemID]*model.Item), nextID: 1}
}

func (r *stubRepo) Create(ctx context.Context, name, sn string, description *string) (model.ItemID, error) {
	for _, it := range r.items {
		if it.SN == sn {
			return 0, item.ErrDuplicateSN
		}
	}
	id := r.nextID
	r.nextID++
	r.items[id] = &model.Item{ItemID: id, Name: name, SN: sn, Description: description}
	return id, nil
}

func (r *stubRepo) GetByID(ctx context.Context, itemID model.ItemID) (*model.Item, error) {
	it, ok := r.items[itemID]
	if !ok {
		return nil, item.ErrItemNotFound
	}
	return it, nil
}

func (r *stubRepo) List(ctx context.Context, spec model.ListingSpec) (*model.Listing[model.Item], error) {
	data := []model.Item{}
	for _, it := range r.items {
		data = append(data, *it)
	}
	return &model.Listing[model.Item]{Total: int64(len(data)), Data: data}, nil
}

func (r *stubRepo) UpdateName(ctx context.Context, itemID model.ItemID, name string) error {
	it, ok := r.items[itemID]
	if !ok {
		return item.ErrItemNotFound
	}
	it.Name = name
	return nil
}

func (r *stubRepo) UpdateDescription(ctx context.Context, itemID model.ItemID, description string) error {
	it, ok := r.items[itemID]
	if !ok {
		return item.ErrItemNotFound
	}
	it.Description = &description
	return nil
}

func (r *stubRepo) UpdateSN(ctx context.Context, itemID model.ItemID, sn string) error {
	it, ok := r.items[itemID]
	if !ok {
		return item.ErrItemNotFound
	}
	it.SN = sn
	return nil
}

func (r *stubRepo) Delete(ctx context.Context, itemID model.ItemID) error {
	if _, ok := r.items[itemID]; !ok {
		return item.ErrItemNotFound
	}
	delete(r.items, itemID)
	return nil
}

func TestCreateItemValidation(t *testing.T) {
	uc := NewItemUseCase(newStubRepo(), logger.NewNopLogger())
	ctx := context.Background()

	_, err := uc.CreateItem(ctx, &dto.CreateItemInput{Name: "  ", SN: "SN-1"})
	assert.ErrorIs(t, err, item.ErrNameEmpty)

	_, err = uc.CreateItem(ctx, &dto.CreateItemInput{Name: "bolt", SN: ""})
	assert.ErrorIs(t, err, item.ErrSNEmpty)
}

func TestCreateItemReturnsCreated(t *testing.T) {
	uc := NewItemUseCase(newStubRepo(), logger.NewNopLogger())

	created, err := uc.CreateItem(context.Background(), &dto.CreateItemInput{Name: "bolt", SN: "SN-1"})
	require.NoError(t, err)
	assert.Equal(t, "bolt", created.Name)
	assert.Equal(t, "SN-1", created.SN)
}

func TestCreateItemDuplicateSN(t *testing.T) {
	uc := NewItemUseCase(newStubRepo(), logger.NewNopLogger())
	ctx := context.Background()

	_, err := uc.CreateItem(ctx, &dto.CreateItemInput{Name: "bolt", SN: "SN-1"})
	require.NoError(t, err)

	_, err = uc.CreateItem(ctx, &dto.CreateItemInput{Name: "nut", SN: "SN-1"})
	assert.ErrorIs(t, err, item.ErrDuplicateSN)
}

func TestUpdateItemPartial(t *testing.T) {
	uc := NewItemUseCase(newStubRepo(), logger.NewNopLogger())
	ctx := context.Background()

	created, err := uc.CreateItem(ctx, &dto.CreateItemInput{Name: "bolt", SN: "SN-1"})
	require.NoError(t, err)

	name := "hex bolt"
	updated, err := uc.UpdateItem(ctx, created.ItemID, &dto.UpdateItemInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "hex bolt", updated.Name)
	assert.Equal(t, "SN-1", updated.SN)

	empty := " "
	_, err = uc.UpdateItem(ctx, created.ItemID, &dto.UpdateItemInput{SN: &empty})
	assert.ErrorIs(t, err, item.ErrSNEmpty)
}

func TestDeleteItemMissing(t *testing.T) {
	uc := NewItemUseCase(newStubRepo(), logger.NewNopLogger())

	err := uc.DeleteItem(context.Background(), 42)
	assert.ErrorIs(t, err, item.ErrItemNotFound)
}
