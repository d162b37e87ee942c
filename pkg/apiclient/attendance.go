package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Location is a registered check-in place with its geofence radius in meters.
type Location struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius"`
	AddedAt   string  `json:"dateAjout,omitempty"`
	Stats     *struct {
		TotalCheckIns int    `json:"totalPointages"`
		Label         string `json:"label"`
	} `json:"stats,omitempty"`
}

// LocationInput is the payload for creating a location.
type LocationInput struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius"`
}

// LocationPatch carries a partial update; nil fields are left untouched.
type LocationPatch struct {
	Name      *string  `json:"name,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Radius    *float64 `json:"radius,omitempty"`
}

// Attendance is one check-in/check-out entry in a user's history. Location
// arrives either as a plain name or as an embedded {id,name} object
// depending on the API revision; LocationName flattens both.
type Attendance struct {
	ID           string          `json:"id"`
	ClockInDate  string          `json:"clockInDate"`
	ClockInTime  string          `json:"clockInTime"`
	ClockOutDate string          `json:"clockOutDate"`
	ClockOutTime string          `json:"clockOutTime"`
	LocationID   string          `json:"locationId,omitempty"`
	Location     json.RawMessage `json:"location,omitempty"`
	Coordinates  *struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"coordinates,omitempty"`
}

// LocationName returns the location however the API chose to encode it.
func (a Attendance) LocationName() string {
	if len(a.Location) == 0 {
		return ""
	}
	var name string
	if err := json.Unmarshal(a.Location, &name); err == nil {
		return name
	}
	var embedded struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(a.Location, &embedded); err == nil {
		return embedded.Name
	}
	return ""
}

// UserHistory is one user's attendance history as returned by
// /attendance/history: the account fields plus its entries.
type UserHistory struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Photo       string       `json:"photo,omitempty"`
	Attendances []Attendance `json:"attendances"`
}

// RecentCheckIn is a flattened entry from /attendance/recent, pre-formatted
// by the API for the dashboard feed.
type RecentCheckIn struct {
	ID        string `json:"id"`
	UserName  string `json:"userName"`
	UserPhoto string `json:"userPhoto"`
	Location  string `json:"location"`
	ClockIn   struct {
		Date string `json:"date"`
		Time string `json:"time"`
	} `json:"clockIn"`
	ClockOut struct {
		Date string `json:"date"`
		Time string `json:"time"`
	} `json:"clockOut"`
	Status   string `json:"status"`
	Duration string `json:"duration"`
}

// TodayCount is the /attendance/today-count payload: how many check-ins
// happened today, split by completion.
type TodayCount struct {
	Total   int    `json:"total"`
	Label   string `json:"label"`
	Details struct {
		Completed  StatBucket `json:"completed"`
		InProgress StatBucket `json:"inProgress"`
	} `json:"details"`
}

// HistoryFilter narrows attendance history queries. Zero values mean "all".
type HistoryFilter struct {
	UserID string
	Date   string // YYYY-MM-DD
}

func (f HistoryFilter) query() string {
	q := url.Values{}
	if f.UserID != "" {
		q.Set("userId", f.UserID)
	}
	if f.Date != "" {
		q.Set("date", f.Date)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ListLocations returns all registered check-in locations.
func (c *Client) ListLocations(ctx context.Context) ([]Location, error) {
	var locations []Location
	if err := c.do(ctx, http.MethodGet, "/attendance/locations", nil, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// CreateLocation registers a new check-in location.
func (c *Client) CreateLocation(ctx context.Context, input LocationInput) (*Location, error) {
	var location Location
	if err := c.do(ctx, http.MethodPost, "/attendance/location", input, &location); err != nil {
		return nil, err
	}
	return &location, nil
}

// UpdateLocation applies a partial update to a location.
func (c *Client) UpdateLocation(ctx context.Context, id string, patch LocationPatch) error {
	return c.do(ctx, http.MethodPatch, "/attendance/locations/"+url.PathEscape(id), patch, nil)
}

// DeleteLocation removes a check-in location.
func (c *Client) DeleteLocation(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/attendance/locations/"+url.PathEscape(id), nil, nil)
}

// AttendanceHistory returns per-user attendance history, optionally filtered
// by user and/or date.
func (c *Client) AttendanceHistory(ctx context.Context, filter HistoryFilter) ([]UserHistory, error) {
	var history []UserHistory
	if err := c.do(ctx, http.MethodGet, "/attendance/history"+filter.query(), nil, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// CreateCheckIn records a manual attendance entry.
func (c *Client) CreateCheckIn(ctx context.Context, entry map[string]any) error {
	return c.do(ctx, http.MethodPost, "/attendance/history", entry, nil)
}

// DeleteHistory removes attendance entries matching the filter. An empty
// filter is refused; use DeleteAllHistory to wipe everything.
func (c *Client) DeleteHistory(ctx context.Context, filter HistoryFilter) error {
	q := filter.query()
	if q == "" {
		return fmt.Errorf("apiclient: refusing unfiltered history delete, use DeleteAllHistory")
	}
	return c.do(ctx, http.MethodDelete, "/attendance/history"+q, nil, nil)
}

// DeleteAllHistory wipes the entire attendance history.
func (c *Client) DeleteAllHistory(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/attendance/history/all", nil, nil)
}

// RecentCheckIns returns the latest check-ins for the dashboard feed.
func (c *Client) RecentCheckIns(ctx context.Context, limit int) ([]RecentCheckIn, error) {
	endpoint := "/attendance/recent"
	if limit > 0 {
		endpoint += fmt.Sprintf("?limit=%d", limit)
	}
	var recent []RecentCheckIn
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &recent); err != nil {
		return nil, err
	}
	return recent, nil
}

// TodayCheckInCount returns today's check-in counters.
func (c *Client) TodayCheckInCount(ctx context.Context) (*TodayCount, error) {
	var count TodayCount
	if err := c.do(ctx, http.MethodGet, "/attendance/today-count", nil, &count); err != nil {
		return nil, err
	}
	return &count, nil
}
