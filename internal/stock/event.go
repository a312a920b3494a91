package stock

import (
	"time"

	"github.com/stockroom/stockroom-service/internal/model"
)

const EventTypeStockMoved = "StockMoved"

// StockMovedEvent is published to the movements topic after each committed
// ledger operation.
type StockMovedEvent struct {
	EventID   string            `json:"event_id"`
	EventType string            `json:"event_type"`
	Payload   StockMovedPayload `json:"payload"`
	Timestamp time.Time         `json:"timestamp"`
}

type StockMovedPayload struct {
	Op      string     `json:"op"`
	ActorID string     `json:"actor_id,omitempty"`
	Legs    []EventLeg `json:"legs"`
}

// EventLeg is one signed (item, shelf, delta) effect of the operation.
type EventLeg struct {
	ItemID  model.ItemID  `json:"item_id"`
	ShelfID model.ShelfID `json:"shelf_id"`
	Delta   int64         `json:"delta"`
}
