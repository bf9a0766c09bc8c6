package service

// Inventory event names pushed to dashboard clients
const (
	EventProductCreated  = "product.created"
	EventProductUpdated  = "product.updated"
	EventProductDeleted  = "product.deleted"
	EventProductLowStock = "product.low_stock"
)

// EventEmitter publishes inventory events to connected dashboard
// clients. Services depend on this interface so they stay decoupled
// from the websocket hub.
type EventEmitter interface {
	Emit(event string, payload interface{})
}

// NopEmitter discards all events
type NopEmitter struct{}

func (NopEmitter) Emit(string, interface{}) {}
