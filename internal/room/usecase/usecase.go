package usecase

import (
	"context"
	"strings"

	"github.com/stockroom/stockroom-service/internal/model"
	"github.com/stockroom/stockroom-service/internal/room"
	"github.com/stockroom/stockroom-service/internal/room/dto"
	"github.com/stockroom/stockroom-service/pkg/logger"
)

type roomUseCase struct {
	repo   room.Repository
	logger logger.ZapLogger
}

func NewRoomUseCase(repo room.Repository, log logger.ZapLogger) room.UseCase {
	return &roomUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *roomUseCase) CreateRoom(ctx context.Context, input *dto.CreateRoomInput) (*model.Room, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, room.ErrNameEmpty
	}

	id, err := uc.repo.Create(ctx, input.Name, input.Description)
	if err != nil {
		return nil, err
	}
	return uc.repo.GetByID(ctx, id)
}

func (uc *roomUseCase) GetRoom(ctx context.Context, roomID model.RoomID) (*model.Room, error) {
	return uc.repo.GetByID(ctx, roomID)
}

func (uc *roomUseCase) ListRooms(ctx context.Context, spec model.ListingSpec) (*model.Listing[model.Room], error) {
	return uc.repo.List(ctx, spec)
}

func (uc *roomUseCase) UpdateRoom(ctx context.Context, roomID model.RoomID, input *dto.UpdateRoomInput) (*model.Room, error) {
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, room.ErrNameEmpty
		}
		if err := uc.repo.UpdateName(ctx, roomID, *input.Name); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		if err := uc.repo.UpdateDescription(ctx, roomID, *input.Description); err != nil {
			return nil, err
		}
	}
	return uc.repo.GetByID(ctx, roomID)
}

func (uc *roomUseCase) DeleteRoom(ctx context.Context, roomID model.RoomID) error {
	return uc.repo.Delete(ctx, roomID)
}
