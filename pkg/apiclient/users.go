package apiclient

import (
	"context"
	"net/http"
	"net/url"
)

// StatBucket is a labeled counter as the API renders it for dashboard cards.
type StatBucket struct {
	Count int    `json:"count"`
	Label string `json:"label"`
}

// UserStats is the /users/stats payload backing the dashboard stat cards.
type UserStats struct {
	Total          int        `json:"total"`
	Employees      StatBucket `json:"employees"`
	Administrators StatBucket `json:"administrators"`
}

// ListUsers returns all registered accounts.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	for i := range users {
		users[i] = NormalizeUser(users[i], c.Origin())
	}
	return users, nil
}

// GetUser returns a single account by ID.
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, &user); err != nil {
		return nil, err
	}
	normalized := NormalizeUser(user, c.Origin())
	return &normalized, nil
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil)
}

// UserStats returns the aggregate account counters.
func (c *Client) UserStats(ctx context.Context) (*UserStats, error) {
	var stats UserStats
	if err := c.do(ctx, http.MethodGet, "/users/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
