package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/stockroom/stockroom-service/internal/model"
	"github.com/stockroom/stockroom-service/internal/shelf"
	"github.com/stockroom/stockroom-service/internal/shelf/dto"
	"github.com/stockroom/stockroom-service/internal/web"
	"github.com/stockroom/stockroom-service/pkg/logger"
)

type ShelfHandler struct {
	uc     shelf.UseCase
	logger logger.ZapLogger
}

func NewShelfHandler(uc shelf.UseCase, log logger.ZapLogger) *ShelfHandler {
	return &ShelfHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ShelfHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/shelf", h.Create)
	mux.HandleFunc("GET /api/v1/shelf", h.List)
	mux.HandleFunc("GET /api/v1/shelf/{id}", h.Get)
	mux.HandleFunc("PATCH /api/v1/shelf/{id}", h.Update)
	mux.HandleFunc("DELETE /api/v1/shelf/{id}", h.Delete)
}

type shelfForm struct {
	Name   *string       `json:"name"`
	Layer  *int64        `json:"layer"`
	RoomID *model.RoomID `json:"room_id"`
}

func (h *ShelfHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form shelfForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		web.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if form.RoomID == nil {
		web.WriteError(w, http.StatusBadRequest, "room_id is required")
		return
	}

	input := &dto.CreateShelfInput{RoomID: *form.RoomID}
	if form.Name != nil {
		input.Name = *form.Name
	}
	if form.Layer != nil {
		input.Layer = *form.Layer
	}

	created, err := h.uc.CreateShelf(r.Context(), input)
	if err != nil {
		h.writeShelfError(w, err)
		return
	}
	web.WriteData(w, http.StatusCreated, created)
}

func (h *ShelfHandler) Get(w http.ResponseWriter, r *http.Request) {
	shelfID, err := web.PathID(r, "id")
	if err != nil {
		web.WriteError(w, http.StatusBadRequest, "invalid shelf id")
		return
	}

	sh, err := h.uc.GetShelf(r.Context(), shelfID)
	if err != nil {
		h.writeShelfError(w, err)
		return
	}
	web.WriteData(w, http.StatusOK, sh)
}

func (h *ShelfHandler) List(w http.ResponseWriter, r *http.Request) {
	listing, err := h.uc.ListShelves(r.Context(), web.ListingSpecFromQuery(r))
	if err != nil {
		h.writeShelfError(w, err)
		return
	}
	web.WriteData(w, http.StatusOK, listing)
}

func (h *ShelfHandler) Update(w http.ResponseWriter, r *http.Request) {
	shelfID, err := web.PathID(r, "id")
	if err != nil {
		web.WriteError(w, http.StatusBadRequest, "invalid shelf id")
		return
	}

	var form shelfForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		web.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.uc.UpdateShelf(r.Context(), shelfID, &dto.UpdateShelfInput{
		Name:   form.Name,
		Layer:  form.Layer,
		RoomID: form.RoomID,
	})
	if err != nil {
		h.writeShelfError(w, err)
		return
	}
	web.WriteData(w, http.StatusOK, updated)
}

func (h *ShelfHandler) Delete(w http.ResponseWriter, r *http.Request) {
	shelfID, err := web.PathID(r, "id")
	if err != nil {
		web.WriteError(w, http.StatusBadRequest, "invalid shelf id")
		return
	}

	if err := h.uc.DeleteShelf(r.Context(), shelfID); err != nil {
		h.writeShelfError(w, err)
		return
	}
	web.WriteData(w, http.StatusOK, "ok")
}

func (h *ShelfHandler) writeShelfError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shelf.ErrNameEmpty):
		web.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, shelf.ErrShelfNotFound), errors.Is(err, shelf.ErrRoomNotFound):
		web.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, shelf.ErrShelfInUse):
		web.WriteError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("shelf operation failed", zap.Error(err))
		web.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
