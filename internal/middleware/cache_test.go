package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticket-booking/internal/config"
)

func TestEncodeDecodePayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": []string{"application/json"}}
	body := []byte(`{"ok":true}`)

	bs, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsShortInput(t *testing.T) {
	_, _, _, ok := decodePayload([]byte{1, 2, 3})
	assert.False(t, ok)
}

func TestCacheKeyStableAndQuerySensitive(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "catalog", KeyStrategy: "route_query"}
	e := echo.New()

	ctx := func(target string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/customers/")
		return c
	}

	k1 := cacheKeyFrom(cfg, ctx("/customers/?page=1"))
	k2 := cacheKeyFrom(cfg, ctx("/customers/?page=1"))
	k3 := cacheKeyFrom(cfg, ctx("/customers/?page=2"))

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.Contains(t, k1, "catalog:")
}

func TestNewRedisCacheNoopWithoutClient(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: true}, nil)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/customers/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := mw(func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}
