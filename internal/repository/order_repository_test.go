package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTicketsPositionalSeats(t *testing.T) {
	five, seven := uint64(5), uint64(7)
	tickets := BuildTickets(100, 9, 3, 3, []*uint64{&five, nil, &seven})
	require.Len(t, tickets, 3)

	for _, tk := range tickets {
		assert.Equal(t, uint64(100), tk.OrderID)
		assert.Equal(t, uint64(9), tk.UserID)
		assert.Equal(t, uint64(3), tk.TicketClassID)
	}
	require.True(t, tickets[0].SeatID.Valid)
	assert.Equal(t, int64(5), tickets[0].SeatID.Int64)
	assert.False(t, tickets[1].SeatID.Valid)
	require.True(t, tickets[2].SeatID.Valid)
	assert.Equal(t, int64(7), tickets[2].SeatID.Int64)
}

func TestBuildTicketsFewerSeatsThanQuantity(t *testing.T) {
	one := uint64(1)
	tickets := BuildTickets(1, 2, 3, 4, []*uint64{&one})
	require.Len(t, tickets, 4)

	assert.True(t, tickets[0].SeatID.Valid)
	for _, tk := range tickets[1:] {
		assert.False(t, tk.SeatID.Valid, "units past the seat list stay unseated")
	}
}

func TestBuildTicketsNoSeats(t *testing.T) {
	tickets := BuildTickets(1, 2, 3, 2, nil)
	require.Len(t, tickets, 2)
	for _, tk := range tickets {
		assert.False(t, tk.SeatID.Valid)
	}
}
