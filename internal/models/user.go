package models

import "time"

// User represents a parent account in the system
type User struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Name          string    `json:"name"`
	FamilyCode    string    `json:"family_code"`
	AvatarEmoji   string    `json:"avatar_emoji"`
	OAuthProvider string    `json:"-"`
	OAuthSubject  string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Session represents an authenticated parent session
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// KidSession is the claims payload carried in a kid session token. Kid
// sessions are client-asserted and lower trust than parent sessions: they
// are only ever used to scope requests to their own child id, never for
// parent-level authorization.
type KidSession struct {
	ChildID     int64     `json:"child_id"`
	ChildName   string    `json:"child_name"`
	AvatarEmoji string    `json:"avatar_emoji"`
	ParentID    int64     `json:"parent_id"`
	LoggedInAt  time.Time `json:"logged_in_at"`
}
