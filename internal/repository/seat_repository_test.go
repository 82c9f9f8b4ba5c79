package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSeatGrid(t *testing.T) {
	seats := GenerateSeatGrid(12)
	require.Len(t, seats, 70) // rows A..G x 10

	assert.Equal(t, "A1", seats[0].SeatNumber)
	assert.Equal(t, "A10", seats[9].SeatNumber)
	assert.Equal(t, "B1", seats[10].SeatNumber)
	assert.Equal(t, "G10", seats[69].SeatNumber)

	labels := make(map[string]bool, len(seats))
	for _, s := range seats {
		assert.Equal(t, uint64(12), s.EventID)
		assert.Equal(t, "available", s.Status)
		assert.False(t, s.UserID.Valid, "generated seats must be unassigned")
		assert.False(t, labels[s.SeatNumber], "duplicate label %s", s.SeatNumber)
		labels[s.SeatNumber] = true
	}
}
