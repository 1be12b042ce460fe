package models

import "time"

// Child represents a kid profile owned by a parent account
type Child struct {
	ID          int64     `json:"id"`
	ParentID    int64     `json:"parent_id"`
	Name        string    `json:"name"`
	Age         int       `json:"age"`
	Grade       string    `json:"grade"`
	AvatarEmoji string    `json:"avatar_emoji"`
	PinHash     string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ChildWithProgress combines a child with the dashboard aggregates
type ChildWithProgress struct {
	Child
	Streak        *Streak         `json:"streak"`
	DailyProgress []DailyProgress `json:"daily_progress"`
	TotalPoints   int             `json:"total_points"`
}
