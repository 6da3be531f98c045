package console

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartCacheMemoizesRenders(t *testing.T) {
	cache := NewChartCache(time.Minute)
	renders := 0
	render := func() (string, error) {
		renders++
		return "<div>chart</div>", nil
	}

	html, err := cache.GetOrRender("orders", render)
	require.NoError(t, err)
	assert.Equal(t, "<div>chart</div>", html)

	_, err = cache.GetOrRender("orders", render)
	require.NoError(t, err)
	assert.Equal(t, 1, renders)

	_, err = cache.GetOrRender("revenue", render)
	require.NoError(t, err)
	assert.Equal(t, 2, renders)
}

func TestChartCacheDoesNotStoreFailures(t *testing.T) {
	cache := NewChartCache(time.Minute)
	calls := 0
	render := func() (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("renderer exploded")
		}
		return "ok", nil
	}

	_, err := cache.GetOrRender("orders", render)
	require.Error(t, err)

	html, err := cache.GetOrRender("orders", render)
	require.NoError(t, err)
	assert.Equal(t, "ok", html)
	assert.Equal(t, 2, calls)
}

func TestChartCacheZeroTTLDisablesCaching(t *testing.T) {
	cache := NewChartCache(0)
	renders := 0
	render := func() (string, error) {
		renders++
		return "fresh", nil
	}

	for i := 0; i < 3; i++ {
		_, err := cache.GetOrRender("orders", render)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, renders)
}

func TestSeriesHashIsDeterministic(t *testing.T) {
	labels := []string{"Mar 1", "Mar 2"}
	points := []SeriesPoint{{Label: "Mar 1", Value: 3}}

	assert.Equal(t, seriesHash(labels, points), seriesHash(labels, points))
	assert.NotEqual(t, seriesHash(labels, points), seriesHash(labels, []SeriesPoint{{Label: "Mar 1", Value: 4}}))
}
