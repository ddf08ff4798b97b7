package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newFakeGeocoder(t *testing.T, hits *atomic.Int64, results []gin.H) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/search", func(c *gin.Context) {
		if hits != nil {
			hits.Add(1)
		}
		c.JSON(http.StatusOK, results)
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(baseURL string, limit int) *Client {
	return NewClient(zap.NewNop().Sugar(), baseURL, limit, time.Second, time.Minute)
}

func TestSearchParsesSuggestions(t *testing.T) {
	server := newFakeGeocoder(t, nil, []gin.H{
		{"display_name": "Paris, France", "lat": "48.8566", "lon": "2.3522"},
		{"display_name": "Paris, Texas", "lat": "33.6609", "lon": "-95.5555"},
	})

	client := newTestClient(server.URL, 5)
	suggestions, err := client.Search(context.Background(), "Paris")
	require.NoError(t, err)

	require.Len(t, suggestions, 2)
	assert.Equal(t, "Paris, France", suggestions[0].Name)
	assert.InDelta(t, 48.8566, suggestions[0].Lat, 0.0001)
	assert.InDelta(t, 2.3522, suggestions[0].Lng, 0.0001)
}

func TestSearchReturnsEmptyListForZeroMatches(t *testing.T) {
	server := newFakeGeocoder(t, nil, []gin.H{})

	client := newTestClient(server.URL, 5)
	suggestions, err := client.Search(context.Background(), "Nowhereville")

	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestSearchCapsSuggestionCount(t *testing.T) {
	results := make([]gin.H, 0, 8)
	for i := 0; i < 8; i++ {
		results = append(results, gin.H{"display_name": "Somewhere", "lat": "1.0", "lon": "2.0"})
	}
	server := newFakeGeocoder(t, nil, results)

	client := newTestClient(server.URL, 5)
	suggestions, err := client.Search(context.Background(), "Somewhere")

	require.NoError(t, err)
	assert.Len(t, suggestions, 5)
}

func TestSearchSkipsMalformedEntries(t *testing.T) {
	server := newFakeGeocoder(t, nil, []gin.H{
		{"display_name": "Broken", "lat": "not-a-number", "lon": "2.0"},
		{"display_name": "Fine", "lat": "1.0", "lon": "2.0"},
	})

	client := newTestClient(server.URL, 5)
	suggestions, err := client.Search(context.Background(), "query")

	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Fine", suggestions[0].Name)
}

func TestSearchFailsOnBadStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/search", func(c *gin.Context) {
		c.String(http.StatusInternalServerError, "boom")
	})
	server := httptest.NewServer(router)
	defer server.Close()

	client := newTestClient(server.URL, 5)
	_, err := client.Search(context.Background(), "Paris")

	assert.Error(t, err)
}

func TestSearchUsesCacheForRepeatedQueries(t *testing.T) {
	var hits atomic.Int64
	server := newFakeGeocoder(t, &hits, []gin.H{
		{"display_name": "Paris, France", "lat": "48.8566", "lon": "2.3522"},
	})

	client := newTestClient(server.URL, 5)

	first, err := client.Search(context.Background(), "Paris")
	require.NoError(t, err)
	second, err := client.Search(context.Background(), "Paris")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), hits.Load())
}
