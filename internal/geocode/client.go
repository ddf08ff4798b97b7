package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// userAgent identifies the client to the place-search service, which
// rejects anonymous callers.
const userAgent = "wayfare-client/0.1 (travel journal)"

// Suggestion is a single candidate location returned by the place-search
// service.
type Suggestion struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// searchResult mirrors the upstream wire format, which encodes
// coordinates as strings.
type searchResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Client issues text queries against a Nominatim-compatible place-search
// service. It is stateless per call; a small TTL cache in front of the
// upstream keeps retyping a just-queried string from re-hitting it.
type Client struct {
	logger     *zap.SugaredLogger
	httpClient *http.Client
	baseURL    string
	limit      int
	cache      *cache.Cache
}

// NewClient creates a place-search client. The limit caps the number of
// suggestions returned per query.
func NewClient(logger *zap.SugaredLogger, baseURL string, limit int, timeout, cacheTTL time.Duration) *Client {
	return &Client{
		logger:     logger,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		limit:      limit,
		cache:      cache.New(cacheTTL, 2*cacheTTL),
	}
}

// Search returns ranked candidate locations for the given text. A query
// with zero matches yields an empty slice, not an error. The caller owns
// the minimum-length policy; the client fires for whatever it is given.
func (c *Client) Search(ctx context.Context, query string) ([]Suggestion, error) {
	if cached, found := c.cache.Get(query); found {
		return cached.([]Suggestion), nil
	}

	searchURL := fmt.Sprintf("%s/search?format=json&limit=%d&q=%s", c.baseURL, c.limit, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building geocoder request")
	}
	req.Header.Set("User-Agent", userAgent)

	searchCtr.Inc()
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		searchFailureCtr.Inc()
		return nil, errors.Wrap(err, "contacting geocoder")
	}
	defer resp.Body.Close()
	searchLatHist.Observe(float64(time.Since(start).Milliseconds()))

	if resp.StatusCode != http.StatusOK {
		searchFailureCtr.Inc()
		return nil, errors.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		searchFailureCtr.Inc()
		return nil, errors.Wrap(err, "decoding geocoder response")
	}

	suggestions := make([]Suggestion, 0, len(results))
	for _, result := range results {
		lat, latErr := strconv.ParseFloat(result.Lat, 64)
		lng, lngErr := strconv.ParseFloat(result.Lon, 64)
		if latErr != nil || lngErr != nil {
			c.logger.Warnw("Skipping malformed geocoder entry", "name", result.DisplayName)
			continue
		}
		suggestions = append(suggestions, Suggestion{Name: result.DisplayName, Lat: lat, Lng: lng})
		if len(suggestions) == c.limit {
			break
		}
	}

	c.cache.Set(query, suggestions, cache.DefaultExpiration)
	return suggestions, nil
}
