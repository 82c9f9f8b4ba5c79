// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderCreatedEvent is published when an order and its tickets commit.
// It carries enough context for downstream consumers to log, notify, or
// feed analytics without querying the primary database.
type OrderCreatedEvent struct {
	OrderID       uint64   `json:"order_id"`
	UserID        uint64   `json:"user_id"`
	EventID       uint64   `json:"event_id"`
	EventName     string   `json:"event_name"`
	PaymentMethod string   `json:"payment_method"`
	TotalAmount   float64  `json:"total_amount"`
	TicketCount   int      `json:"ticket_count"`
	SeatLabels    []string `json:"seats"`
	CreatedAt     string   `json:"created_at"`
}
