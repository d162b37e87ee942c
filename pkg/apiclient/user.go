package apiclient

import "strings"

// User is the normalized representation of a portal account as returned by
// the API. Role is an open set of string tags ("USER", "ADMIN", ...)
// interpreted by consumers for access-gated display only; enforcement lives
// on the server.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Photo  string `json:"photo,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// IsAdmin reports whether the record carries an administrator role tag.
func (u User) IsAdmin() bool {
	return strings.EqualFold(u.Role, "admin") || strings.EqualFold(u.Role, "administrator")
}

// NormalizeUser returns a copy of u with image paths resolved: the avatar
// defaults to the photo, and relative paths are resolved against the API
// origin. Every user record crossing the client boundary goes through this
// one function; consumers must not re-implement the fallback chain.
func NormalizeUser(u User, origin string) User {
	if u.Avatar == "" && u.Photo != "" {
		u.Avatar = u.Photo
	}
	u.Photo = normalizeAssetPath(u.Photo, origin)
	u.Avatar = normalizeAssetPath(u.Avatar, origin)
	return u
}

func normalizeAssetPath(p, origin string) string {
	if p == "" || strings.HasPrefix(p, "http") {
		return p
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return origin + p
}
