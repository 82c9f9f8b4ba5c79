package queue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderCreatedEventJSON(t *testing.T) {
	ev := OrderCreatedEvent{
		OrderID:       11,
		UserID:        3,
		EventID:       7,
		EventName:     "Summer Fest",
		PaymentMethod: "VNPAY",
		TotalAmount:   250.5,
		TicketCount:   2,
		SeatLabels:    []string{"A1", "A2"},
		CreatedAt:     "2026-08-30T10:00:00Z",
	}
	body, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"order_id":11`)
	assert.Contains(t, string(body), `"seats":["A1","A2"]`)

	var got OrderCreatedEvent
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, ev, got)
}

func TestFormatOrderLine(t *testing.T) {
	line := FormatOrderLine(OrderCreatedEvent{
		OrderID:       11,
		UserID:        3,
		EventID:       7,
		EventName:     "Summer Fest",
		PaymentMethod: "VNPAY",
		TotalAmount:   250.5,
		TicketCount:   2,
		SeatLabels:    []string{"A1", "A2"},
		CreatedAt:     "2026-08-30T10:00:00Z",
	})
	assert.Equal(t,
		"[2026-08-30T10:00:00Z] Order created | order_id=11 | user_id=3 | event_id=7 | event=\"Summer Fest\" | payment=\"VNPAY\" | total=250.50 | tickets=2 | seats=[A1,A2]\n",
		line)
}

func TestFormatOrderLineNoSeats(t *testing.T) {
	line := FormatOrderLine(OrderCreatedEvent{CreatedAt: "t", TotalAmount: 10})
	assert.Contains(t, line, "seats=[]")
}
