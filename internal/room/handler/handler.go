package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/stockroom/stockroom-service/internal/room"
	"github.com/stockroom/stockroom-service/internal/room/dto"
	"github.com/stockroom/stockroom-service/internal/shelf"
	"github.com/stockroom/stockroom-service/internal/web"
	"github.com/stockroom/stockroom-service/pkg/logger"
)

type RoomHandler struct {
	uc      room.UseCase
	shelves shelf.UseCase
	logger  logger.ZapLogger
}

func NewRoomHandler(uc room.UseCase, shelves shelf.UseCase, log logger.ZapLogger) *RoomHandler {
	return &RoomHandler{
		uc:      uc,
		shelves: shelves,
		logger:  log,
	}
}

func (h *RoomHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/rooms", h.Create)
	mux.HandleFunc("GET /api/v1/rooms", h.List)
	mux.HandleFunc("GET /api/v1/rooms/{id}", h.Get)
	mux.HandleFunc("PATCH /api/v1/rooms/{id}", h.Update)
	mux.HandleFunc("DELETE /api/v1/rooms/{id}", h.Delete)
	mux.HandleFunc("GET /api/v1/rooms/{id}/shelves", h.ListShelves)
}

type roomForm struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form roomForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		web.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name := ""
	if form.Name != nil {
		name = *form.Name
	}

	created, err := h.uc.CreateRoom(r.Context(), &dto.CreateRoomInput{
		Name:        name,
		Description: form.Description,
	})
	if err != nil {
		h.writeRoomError(w, err)
		return
	}
	web.WriteData(w, http.StatusCreated, created)
}

func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	roomID, err := web.PathID(r, "id")
	if err != nil {
		web.WriteError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	rm, err := h.uc.GetRoom(r.Context(), roomID)
	if err != nil {
		h.writeRoomError(w, err)
		return
	}
	web.WriteData(w, http.StatusOK, rm)
}

func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	listing, err := h.uc.ListRooms(r.Context(), web.ListingSpecFromQuery(r))
	if err != nil {
		h.writeRoomError(w, err)
		return
	}
	web.WriteData(w, http.StatusOK, listing)
}

func (h *RoomHandler) Update(w http.ResponseWriter, r *http.Request) {
	roomID, err := web.PathID(r, "id")
	if err != nil {
		web.WriteError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	var form roomForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		web.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.uc.UpdateRoom(r.Context(), roomID, &dto.UpdateRoomInput{
		Name:        form.Name,
		Description: form.Description,
	})
	if err != nil {
		h.writeRoomError(w, err)
		return
	}
	web.WriteData(w, http.StatusOK, updated)
}

func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	roomID, err := web.PathID(r, "id")
	if err != nil {
		web.WriteError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	if err := h.uc.DeleteRoom(r.Context(), roomID); err != nil {
		h.writeRoomError(w, err)
		return
	}
	web.WriteData(w, http.StatusOK, "ok")
}

func (h *RoomHandler) ListShelves(w http.ResponseWriter, r *http.Request) {
	roomID, err := web.PathID(r, "id")
	if err != nil {
		web.WriteError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	listing, err := h.shelves.ListShelvesInRoom(r.Context(), roomID, web.ListingSpecFromQuery(r))
	if err != nil {
		if errors.Is(err, shelf.ErrRoomNotFound) {
			web.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		h.writeRoomError(w, err)
		return
	}
	web.WriteData(w, http.StatusOK, listing)
}

func (h *RoomHandler) writeRoomError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, room.ErrNameEmpty):
		web.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, room.ErrRoomNotFound):
		web.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, room.ErrRoomInUse):
		web.WriteError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("room operation failed", zap.Error(err))
		web.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
