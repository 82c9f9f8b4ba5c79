package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaginationDefaults(t *testing.T) {
	order, page, size, err := parsePagination("", "", "")
	require.NoError(t, err)
	assert.Equal(t, "asc", order)
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, size)
}

func TestParsePaginationExplicit(t *testing.T) {
	order, page, size, err := parsePagination("desc", "3", "25")
	require.NoError(t, err)
	assert.Equal(t, "desc", order)
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, size)
}

func TestParsePaginationRejects(t *testing.T) {
	cases := []struct {
		name                  string
		order, page, pageSize string
	}{
		{"bad order", "sideways", "1", "10"},
		{"zero page", "asc", "0", "10"},
		{"negative page", "asc", "-1", "10"},
		{"non-numeric page", "asc", "x", "10"},
		{"zero page_size", "asc", "1", "0"},
		{"non-numeric page_size", "asc", "1", "ten"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := parsePagination(tc.order, tc.page, tc.pageSize)
			assert.Error(t, err)
		})
	}
}

func TestValidateSearchQueryBounds(t *testing.T) {
	assert.Error(t, validateSearchQuery(""))
	assert.Error(t, validateSearchQuery("ab"))
	assert.NoError(t, validateSearchQuery("abc"))
	assert.NoError(t, validateSearchQuery(strings.Repeat("x", 255)))
	assert.Error(t, validateSearchQuery(strings.Repeat("x", 256)))
}

func TestValidateEventDates(t *testing.T) {
	assert.Error(t, validateEventDates("", "2026-09-01"))
	assert.Error(t, validateEventDates("2026-09-01", ""))
	assert.Error(t, validateEventDates("2026-09-02", "2026-09-01"))
	assert.NoError(t, validateEventDates("2026-09-01", "2026-09-01"))
	assert.NoError(t, validateEventDates("2026-09-01", "2026-09-02"))
}
