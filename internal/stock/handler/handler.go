package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/stockroom/stockroom-service/internal/auth"
	"github.com/stockroom/stockroom-service/internal/model"
	"github.com/stockroom/stockroom-service/internal/stock"
	"github.com/stockroom/stockroom-service/internal/stock/dto"
	"github.com/stockroom/stockroom-service/internal/web"
	"github.com/stockroom/stockroom-service/pkg/logger"
)

type StockHandler struct {
	uc     stock.UseCase
	logger logger.ZapLogger
}

func NewStockHandler(uc stock.UseCase, log logger.ZapLogger) *StockHandler {
	return &StockHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *StockHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/stock/deposit", h.Deposit)
	mux.HandleFunc("DELETE /api/v1/stock/withdraw", h.Withdraw)
	mux.HandleFunc("PATCH /api/v1/stock/transfer", h.Transfer)
	mux.HandleFunc("PATCH /api/v1/stock/convert", h.Convert)
	mux.HandleFunc("GET /api/v1/stock/shelf/{id}", h.StockOnShelf)
	mux.HandleFunc("GET /api/v1/stock/room/{id}", h.StockInRoom)
	mux.HandleFunc("GET /api/v1/stock/movements", h.Movements)
}

type itemOnShelfForm struct {
	ItemID  model.ItemID  `json:"item_id"`
	ShelfID model.ShelfID `json:"shelf_id"`
	Count   int64         `json:"count"`
}

type transferForm struct {
	ItemID    model.ItemID  `json:"item_id"`
	ShelfFrom model.ShelfID `json:"shelf_from"`
	ShelfTo   model.ShelfID `json:"shelf_to"`
	Count     int64         `json:"count"`
}

type convertForm struct {
	From []model.ItemXShelf `json:"from"`
	Into []model.ItemXShelf `json:"into"`
}

func (h *StockHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var form itemOnShelfForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		web.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.uc.Deposit(r.Context(), &dto.MoveInput{
		ItemID:  form.ItemID,
		ShelfID: form.ShelfID,
		Count:   form.Count,
		ActorID: auth.ActorID(r.Context()),
	})
	if err != nil {
		h.writeStockError(w, r, err)
		return
	}
	web.WriteData(w, http.StatusOK, "ok")
}

func (h *StockHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var form itemOnShelfForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		web.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.uc.Withdraw(r.Context(), &dto.MoveInput{
		ItemID:  form.ItemID,
		ShelfID: form.ShelfID,
		Count:   form.Count,
		ActorID: auth.ActorID(r.Context()),
	})
	if err != nil {
		h.writeStockError(w, r, err)
		return
	}
	web.WriteData(w, http.StatusOK, "ok")
}

func (h *StockHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var form transferForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		web.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.uc.Transfer(r.Context(), &dto.TransferInput{
		ItemID:    form.ItemID,
		Count:     form.Count,
		ShelfFrom: form.ShelfFrom,
		ShelfTo:   form.ShelfTo,
		ActorID:   auth.ActorID(r.Context()),
	})
	if err != nil {
		h.writeStockError(w, r, err)
		return
	}
	web.WriteData(w, http.StatusOK, "ok")
}

func (h *StockHandler) Convert(w http.ResponseWriter, r *http.Request) {
	var form convertForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		web.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.uc.Convert(r.Context(), &dto.ConvertInput{
		From:    form.From,
		Into:    form.Into,
		ActorID: auth.ActorID(r.Context()),
	})
	if err != nil {
		h.writeStockError(w, r, err)
		return
	}
	web.WriteData(w, http.StatusOK, "ok")
}

func (h *StockHandler) StockOnShelf(w http.ResponseWriter, r *http.Request) {
	shelfID, err := web.PathID(r, "id")
	if err != nil {
		web.WriteError(w, http.StatusBadRequest, "invalid shelf id")
		return
	}

	listing, err := h.uc.GetStockOnShelf(r.Context(), shelfID, web.ListingSpecFromQuery(r))
	if err != nil {
		h.writeStockError(w, r, err)
		return
	}
	web.WriteData(w, http.StatusOK, listing)
}

func (h *StockHandler) StockInRoom(w http.ResponseWriter, r *http.Request) {
	roomID, err := web.PathID(r, "id")
	if err != nil {
		web.WriteError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	listing, err := h.uc.GetStockInRoom(r.Context(), roomID, web.ListingSpecFromQuery(r))
	if err != nil {
		h.writeStockError(w, r, err)
		return
	}
	web.WriteData(w, http.StatusOK, listing)
}

func (h *StockHandler) Movements(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := &dto.MovementFilters{
		Op:   q.Get("op"),
		Spec: web.ListingSpecFromQuery(r),
	}
	if raw := q.Get("item_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			web.WriteError(w, http.StatusBadRequest, "invalid item id")
			return
		}
		filters.ItemID = id
	}
	if raw := q.Get("shelf_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			web.WriteError(w, http.StatusBadRequest, "invalid shelf id")
			return
		}
		filters.ShelfID = id
	}

	listing, err := h.uc.ListMovements(r.Context(), filters)
	if err != nil {
		h.writeStockError(w, r, err)
		return
	}
	web.WriteData(w, http.StatusOK, listing)
}

// writeStockError is the total domain-error → HTTP status mapping for the
// ledger. Anything unrecognized is a storage failure and stays opaque.
func (h *StockHandler) writeStockError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, stock.ErrCountMustBePositive),
		errors.Is(err, stock.ErrSourceMustBePositive),
		errors.Is(err, stock.ErrTargetMustBePositive),
		errors.Is(err, stock.ErrInsufficientStock):
		web.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, stock.ErrItemNotFound),
		errors.Is(err, stock.ErrShelfNotFound):
		web.WriteError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error("stock operation failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		web.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
