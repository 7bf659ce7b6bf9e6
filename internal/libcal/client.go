// Package libcal fetches and normalizes availability data from the LibCal
// spaces grid API.
package libcal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/zzz403/Better-Robarts-Timetable/internal/storage/models"
)

const (
	// DefaultBaseURL is the production LibCal instance.
	DefaultBaseURL = "https://libcal.library.utoronto.ca"

	// libraryID is the fixed lid for all grid requests.
	libraryID = "3446"

	// pageSize is the fixed paging window the grid endpoint expects.
	pageSize = "18"

	// DefaultThrottle is the pause enforced after each successful call to
	// stay under the upstream's implicit rate limit.
	DefaultThrottle = 500 * time.Millisecond
)

// Client issues availability grid requests. One request per (room, date
// range), single attempt, no internal retry.
type Client struct {
	httpClient *http.Client
	baseURL    string
	throttle   time.Duration
	sleep      func(time.Duration)
}

// NewClient creates a grid API client against the given base URL. An empty
// baseURL selects the production instance; a non-positive throttle selects
// the default.
func NewClient(baseURL string, throttle time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if throttle <= 0 {
		throttle = DefaultThrottle
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:  strings.TrimRight(baseURL, "/"),
		throttle: throttle,
		sleep:    time.Sleep,
	}
}

// FetchGrid requests the availability grid for one room over [startDate,
// endDate] (ISO dates, inclusive). Transport errors, non-2xx statuses, and
// undecodable bodies all collapse to a single returned error; the caller
// only needs "could not obtain data". After a successful call the client
// sleeps the throttle interval before returning; failures return
// immediately.
func (c *Client) FetchGrid(ctx context.Context, spaceID, groupID int, startDate, endDate string) (*models.GridResponse, error) {
	form := url.Values{
		"lid":       {libraryID},
		"gid":       {strconv.Itoa(groupID)},
		"eid":       {strconv.Itoa(spaceID)},
		"seat":      {"0"},
		"seatId":    {"0"},
		"zone":      {"0"},
		"start":     {startDate},
		"end":       {endDate},
		"pageIndex": {"0"},
		"pageSize":  {pageSize},
	}

	endpoint := c.baseURL + "/spaces/availability/grid"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("building grid request: %w", err)
	}

	// The grid endpoint rejects requests that don't look like the booking
	// page's own XHR.
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/128.0.0.0 Safari/537.36")
	req.Header.Set("Referer", fmt.Sprintf("%s/space/%d", c.baseURL, spaceID))
	req.Header.Set("Origin", c.baseURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching grid for room %d: %w", spaceID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("grid request for room %d returned status %d", spaceID, resp.StatusCode)
	}

	var grid models.GridResponse
	if err := json.NewDecoder(resp.Body).Decode(&grid); err != nil {
		return nil, fmt.Errorf("decoding grid response for room %d: %w", spaceID, err)
	}
	// A body without a slots array is not a grid response. An empty grid
	// decodes to a non-nil empty slice.
	if grid.Slots == nil {
		return nil, fmt.Errorf("grid response for room %d is missing slots", spaceID)
	}

	c.sleep(c.throttle)

	return &grid, nil
}
