package kafka

import "time"

// StockMovementRecordedEvent is emitted after a ledger entry is committed
type StockMovementRecordedEvent struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	MovementID   uint      `json:"movement_id"`
	ProductID    uint      `json:"product_id"`
	MovementType string    `json:"movement_type"`
	Quantity     int       `json:"quantity"`
	NewQuantity  int       `json:"new_quantity"`
	AppliedDelta int       `json:"applied_delta"`
	Reference    string    `json:"reference"`
	Timestamp    time.Time `json:"timestamp"`
}

// LowStockAlertEvent is emitted when a movement drops a product to or below
// its reorder threshold
type LowStockAlertEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	ProductID uint      `json:"product_id"`
	SKU       string    `json:"sku"`
	Quantity  int       `json:"quantity"`
	MinStock  int       `json:"min_stock"`
	Timestamp time.Time `json:"timestamp"`
}

// ImportCompletedEvent is emitted once a bulk import run finishes
type ImportCompletedEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	RunID      string    `json:"run_id"`
	Successful int       `json:"successful"`
	Failed     int       `json:"failed"`
	Skipped    int       `json:"skipped"`
	Timestamp  time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeStockMovementRecorded = "stock.movement.recorded"
	EventTypeLowStockAlert         = "stock.low"
	EventTypeImportCompleted       = "import.completed"
)

// Kafka topics
const (
	TopicStockMovements = "stock-movements"
	TopicStockAlerts    = "stock-alerts"
	TopicImports        = "inventory-imports"
)
