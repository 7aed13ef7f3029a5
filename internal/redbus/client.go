// Package redbus provides the search client for the redBus Colombia API.
package redbus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/LUANPELO/buscador-buses-colombia/internal/cities"
	"github.com/LUANPELO/buscador-buses-colombia/internal/logger"
	"github.com/LUANPELO/buscador-buses-colombia/internal/models"
)

const (
	defaultPageSize = 100
	defaultMaxPages = 5
)

// Client queries redBus SearchV4Results for scheduled departures.
type Client struct {
	searchURL  string
	httpClient *http.Client
	pageSize   int
	maxPages   int
}

// NewClient creates a search client. Zero pageSize or maxPages fall back to
// the defaults (100 departures per page, 5 pages).
func NewClient(searchURL string, timeout time.Duration, pageSize, maxPages int) *Client {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	return &Client{
		searchURL: searchURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		pageSize: pageSize,
		maxPages: maxPages,
	}
}

// emptyFilters is the filter payload SearchV4Results requires even for an
// unfiltered search.
var emptyFilters = map[string][]any{
	"AcType": {}, "CampaignFilter": {}, "SeaterType": {}, "amtList": {},
	"at": {}, "bcf": {}, "bpIdentifier": {}, "bpList": {}, "dpList": {},
	"dt": {}, "onlyShow": {}, "opBusTypeFilterList": {}, "persuasionList": {},
	"rtcBusTypeList": {}, "travelsList": {},
}

// Search fetches all departures for a resolved route and provider-formatted
// date, exhausting pagination until an empty page or the page cap. A failed
// page after the first aborts pagination and returns what was already
// gathered; a failed first page reports the provider as unavailable.
func (c *Client) Search(ctx context.Context, from, to cities.City, doj string) ([]models.Departure, error) {
	var departures []models.Departure

	for page := 0; page < c.maxPages; page++ {
		batch, err := c.fetchPage(ctx, from, to, doj, page*c.pageSize)
		if err != nil {
			if page == 0 {
				return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
			}
			logger.Warn("Search %s -> %s page %d failed, returning %d partial results: %v",
				from.Name, to.Name, page, len(departures), err)
			return departures, nil
		}
		if len(batch) == 0 {
			break
		}
		departures = append(departures, batch...)
	}

	return departures, nil
}

func (c *Client) fetchPage(ctx context.Context, from, to cities.City, doj string, offset int) ([]models.Departure, error) {
	u, err := url.Parse(c.searchURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search URL: %w", err)
	}

	q := u.Query()
	q.Set("fromCity", from.ID)
	q.Set("toCity", to.ID)
	q.Set("src", from.Name)
	q.Set("dst", to.Name)
	q.Set("DOJ", doj)
	q.Set("sectionId", "0")
	q.Set("groupId", "0")
	q.Set("limit", fmt.Sprintf("%d", c.pageSize))
	q.Set("offset", fmt.Sprintf("%d", offset))
	q.Set("sort", "0")
	q.Set("sortOrder", "0")
	q.Set("meta", "true")
	q.Set("returnSearch", "0")
	u.RawQuery = q.Encode()

	body, err := json.Marshal(emptyFilters)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal filter payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://www.redbus.co")
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	return normalizeInventories(payload.Inventories), nil
}
