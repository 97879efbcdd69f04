package messaging

import (
	"time"

	"example.com/westo/services/garment/internal/models"
)

// Event types carried on the garment events queue
const (
	EventOrderCompleted = "order.completed"
	EventQRDeleted      = "qr.deleted"
)

// Event is the envelope for all messages on the queue
type Event struct {
	Type       string                 `json:"type"`
	OccurredAt time.Time              `json:"occurred_at"`
	Order      *OrderCompletedPayload `json:"order,omitempty"`
}

// OrderCompletedPayload carries the data downstream consumers need to
// index or print the QR-labeled batch
type OrderCompletedPayload struct {
	ManufacturingID string      `json:"manufacturing_id"`
	CuttingID       string      `json:"cutting_id"`
	ProductName     string      `json:"product_name"`
	Color           string      `json:"color"`
	Size            models.Size `json:"size"`
	Quantity        int         `json:"quantity"`
	TailorName      string      `json:"tailor_name"`
}

// NewOrderCompletedEvent builds the event published when a
// manufacturing order reaches Completed
func NewOrderCompletedEvent(order *models.ManufacturingOrder) Event {
	return Event{
		Type:       EventOrderCompleted,
		OccurredAt: time.Now().UTC(),
		Order: &OrderCompletedPayload{
			ManufacturingID: order.ManufacturingID,
			CuttingID:       order.CuttingID,
			ProductName:     order.ProductName,
			Color:           order.FabricColor,
			Size:            order.Size,
			Quantity:        order.Quantity,
			TailorName:      order.TailorName,
		},
	}
}
