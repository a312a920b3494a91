package usecase

import (
	"context"
	"strings"

	"github.com/stockroom/stockroom-service/internal/item"
	"github.com/stockroom/stockroom-service/internal/item/dto"
	"github.com/stockroom/stockroom-service/internal/model"
	"github.com/stockroom/stockroom-service/pkg/logger"
)

type itemUseCase struct {
	repo   item.Repository
	logger logger.ZapLogger
}

func NewItemUseCase(repo item.Repository, log logger.ZapLogger) item.UseCase {
	return &itemUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *itemUseCase) CreateItem(ctx context.Context, input *dto.CreateItemInput) (*model.Item, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, item.ErrNameEmpty
	}
	if strings.TrimSpace(input.SN) == "" {
		return nil, item.ErrSNEmpty
	}

	id, err := uc.repo.Create(ctx, input.Name, input.SN, input.Description)
	if err != nil {
		return nil, err
	}
	return uc.repo.GetByID(ctx, id)
}

func (uc *itemUseCase) GetItem(ctx context.Context, itemID model.ItemID) (*model.Item, error) {
	return uc.repo.GetByID(ctx, itemID)
}

func (uc *itemUseCase) ListItems(ctx context.Context, spec model.ListingSpec) (*model.Listing[model.Item], error) {
	return uc.repo.List(ctx, spec)
}

func (uc *itemUseCase) UpdateItem(ctx context.Context, itemID model.ItemID, input *dto.UpdateItemInput) (*model.Item, error) {
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, item.ErrNameEmpty
		}
		if err := uc.repo.UpdateName(ctx, itemID, *input.Name); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		if err := uc.repo.UpdateDescription(ctx, itemID, *input.Description); err != nil {
			return nil, err
		}
	}
	if input.SN != nil {
		if strings.TrimSpace(*input.SN) == "" {
			return nil, item.ErrSNEmpty
		}
		if err := uc.repo.UpdateSN(ctx, itemID, *input.SN); err != nil {
			return nil, err
		}
	}
	return uc.repo.GetByID(ctx, itemID)
}

func (uc *itemUseCase) DeleteItem(ctx context.Context, itemID model.ItemID) error {
	return uc.repo.Delete(ctx, itemID)
}
