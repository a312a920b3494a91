package usecase

import (
	"context"
	"strings"

	"github.com/stockroom/stockroom-service/internal/model"
	"github.com/stockroom/stockroom-service/internal/shelf"
	"github.com/stockroom/stockroom-service/internal/shelf/dto"
	"github.com/stockroom/stockroom-service/pkg/logger"
)

type shelfUseCase struct {
	repo   shelf.Repository
	logger logger.ZapLogger
}

func NewShelfUseCase(repo shelf.Repository, log logger.ZapLogger) shelf.UseCase {
	return &shelfUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *shelfUseCase) CreateShelf(ctx context.Context, input *dto.CreateShelfInput) (*model.Shelf, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, shelf.ErrNameEmpty
	}

	id, err := uc.repo.Create(ctx, input.Name, input.Layer, input.RoomID)
	if err != nil {
		return nil, err
	}
	return uc.repo.GetByID(ctx, id)
}

func (uc *shelfUseCase) GetShelf(ctx context.Context, shelfID model.ShelfID) (*model.Shelf, error) {
	return uc.repo.GetByID(ctx, shelfID)
}

func (uc *shelfUseCase) ListShelves(ctx context.Context, spec model.ListingSpec) (*model.Listing[model.Shelf], error) {
	return uc.repo.List(ctx, spec)
}

func (uc *shelfUseCase) ListShelvesInRoom(ctx context.Context, roomID model.RoomID, spec model.ListingSpec) (*model.Listing[model.Shelf], error) {
	return uc.repo.ListInRoom(ctx, spec, roomID)
}

func (uc *shelfUseCase) UpdateShelf(ctx context.Context, shelfID model.ShelfID, input *dto.UpdateShelfInput) (*model.Shelf, error) {
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, shelf.ErrNameEmpty
		}
		if err := uc.repo.UpdateName(ctx, shelfID, *input.Name); err != nil {
			return nil, err
		}
	}
	if input.Layer != nil {
		if err := uc.repo.UpdateLayer(ctx, shelfID, *input.Layer); err != nil {
			return nil, err
		}
	}
	if input.RoomID != nil {
		if err := uc.repo.UpdateRoom(ctx, shelfID, *input.RoomID); err != nil {
			return nil, err
		}
	}
	return uc.repo.GetByID(ctx, shelfID)
}

func (uc *shelfUseCase) DeleteShelf(ctx context.Context, shelfID model.ShelfID) error {
	return uc.repo.Delete(ctx, shelfID)
}
