package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/stockroom/stockroom-service/internal/item"
	"github.com/stockroom/stockroom-service/internal/item/dto"
	"github.com/stockroom/stockroom-service/internal/web"
	"github.com/stockroom/stockroom-service/pkg/logger"
)

type ItemHandler struct {
	uc     item.UseCase
	logger logger.ZapLogger
}

func NewItemHandler(uc item.UseCase, log logger.ZapLogger) *ItemHandler {
	return &ItemHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ItemHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/items", h.Create)
	mux.HandleFunc("GET /api/v1/items", h.List)
	mux.HandleFunc("GET /api/v1/items/{id}", h.Get)
	mux.HandleFunc("PATCH /api/v1/items/{id}", h.Update)
	mux.HandleFunc("DELETE /api/v1/items/{id}", h.Delete)
}

type itemForm struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	SN          *string `json:"sn"`
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form itemForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		web.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := &dto.CreateItemInput{Description: form.Description}
	if form.Name != nil {
		input.Name = *form.Name
	}
	if form.SN != nil {
		input.SN = *form.SN
	}

	created, err := h.uc.CreateItem(r.Context(), input)
	if err != nil {
		h.writeItemError(w, err)
		return
	}
	web.WriteData(w, http.StatusCreated, created)
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	itemID, err := web.PathID(r, "id")
	if err != nil {
		web.WriteError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	it, err := h.uc.GetItem(r.Context(), itemID)
	if err != nil {
		h.writeItemError(w, err)
		return
	}
	web.WriteData(w, http.StatusOK, it)
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	listing, err := h.uc.ListItems(r.Context(), web.ListingSpecFromQuery(r))
	if err != nil {
		h.writeItemError(w, err)
		return
	}
	web.WriteData(w, http.StatusOK, listing)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	itemID, err := web.PathID(r, "id")
	if err != nil {
		web.WriteError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var form itemForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		web.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.uc.UpdateItem(r.Context(), itemID, &dto.UpdateItemInput{
		Name:        form.Name,
		Description: form.Description,
		SN:          form.SN,
	})
	if err != nil {
		h.writeItemError(w, err)
		return
	}
	web.WriteData(w, http.StatusOK, updated)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	itemID, err := web.PathID(r, "id")
	if err != nil {
		web.WriteError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.uc.DeleteItem(r.Context(), itemID); err != nil {
		h.writeItemError(w, err)
		return
	}
	web.WriteData(w, http.StatusOK, "ok")
}

func (h *ItemHandler) writeItemError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, item.ErrNameEmpty), errors.Is(err, item.ErrSNEmpty):
		web.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, item.ErrItemNotFound):
		web.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, item.ErrDuplicateSN), errors.Is(err, item.ErrItemInUse):
		web.WriteError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("item operation failed", zap.Error(err))
		web.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
