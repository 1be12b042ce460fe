package models

import (
	"fmt"
	"strings"
	"time"
)

// Ring types
const (
	RingTypeCurriculum  = "curriculum"
	RingTypeCustomTimed = "custom_timed"
)

// RingSlotCount is the fixed number of ring slots per child
const RingSlotCount = 3

// DefaultGoalMinutes is the daily goal applied when none is configured
const DefaultGoalMinutes = 30

// RingAssignment is one of the 3 configurable daily-goal trackers per
// child. A curriculum ring is bound to a catalog module and subject; a
// custom_timed ring carries a free-text label and icon instead.
type RingAssignment struct {
	ID               int64     `json:"id"`
	ChildID          int64     `json:"child_id"`
	RingSlot         int       `json:"ring_slot"`
	RingType         string    `json:"ring_type"`
	ModuleID         *int      `json:"module_id"`
	Subject          *string   `json:"subject"`
	CustomLabel      *string   `json:"custom_label"`
	CustomIcon       *string   `json:"custom_icon"`
	Color            string    `json:"color"`
	DailyGoalMinutes int       `json:"daily_goal_minutes"`
	AutoAssigned     bool      `json:"auto_assigned"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

var subjectIcons = map[string]string{
	"math":    "📐",
	"reading": "📖",
	"science": "🔬",
}

// Label returns the display label for the ring
func (r *RingAssignment) Label() string {
	if r.RingType == RingTypeCustomTimed {
		if r.CustomLabel != nil && *r.CustomLabel != "" {
			return *r.CustomLabel
		}
		return "Activity"
	}
	if r.Subject != nil && *r.Subject != "" {
		s := *r.Subject
		return strings.ToUpper(s[:1]) + s[1:]
	}
	return "Subject"
}

// Icon returns the display icon for the ring
func (r *RingAssignment) Icon() string {
	if r.RingType == RingTypeCustomTimed {
		if r.CustomIcon != nil && *r.CustomIcon != "" {
			return *r.CustomIcon
		}
		return "⏱️"
	}
	if r.Subject != nil {
		if icon, ok := subjectIcons[*r.Subject]; ok {
			return icon
		}
	}
	return "📚"
}

// ActivityKey returns the slot-scoped activity type key for the ring
func (r *RingAssignment) ActivityKey() string {
	return fmt.Sprintf("ring_%d", r.RingSlot)
}

// MatchKeys returns the set of activity-type keys that count toward this
// ring. Historical rows may carry the ring's bound subject (or the
// lowercased custom label) instead of the slot key, so both schemes match.
func (r *RingAssignment) MatchKeys() map[string]bool {
	keys := map[string]bool{r.ActivityKey(): true}
	if r.Subject != nil && *r.Subject != "" {
		keys[*r.Subject] = true
	}
	if r.CustomLabel != nil && *r.CustomLabel != "" {
		keys[strings.ToLower(*r.CustomLabel)] = true
	}
	return keys
}

// RingDescriptor is the per-slot input to the ring configuration save
type RingDescriptor struct {
	Slot             int     `json:"slot"`
	RingType         string  `json:"ring_type"`
	ModuleID         *int    `json:"module_id"`
	Subject          *string `json:"subject"`
	CustomLabel      *string `json:"custom_label"`
	CustomIcon       *string `json:"custom_icon"`
	Color            string  `json:"color"`
	DailyGoalMinutes int     `json:"daily_goal_minutes"`
}

// SlotResult reports the outcome of one slot's upsert during a ring
// configuration save. Slots succeed or fail independently.
type SlotResult struct {
	Slot  int             `json:"slot"`
	Ring  *RingAssignment `json:"ring,omitempty"`
	Error string          `json:"error,omitempty"`
}

// DailyProgress is the per-ring completion tuple for one day
type DailyProgress struct {
	RingSlot     int    `json:"ring_slot"`
	RingLabel    string `json:"ring_label"`
	RingColor    string `json:"ring_color"`
	RingIcon     string `json:"ring_icon"`
	ActivityType string `json:"activity_type"`
	TotalMinutes int    `json:"total_minutes"`
	GoalMinutes  int    `json:"goal_minutes"`
	Percentage   int    `json:"percentage"`
}

// WeeklyRing is one day's ring percentages within a trailing 7-day window
type WeeklyRing struct {
	Date  string      `json:"date"`
	Rings []RingSlice `json:"rings"`
}

// RingSlice is a single ring's completion for one day of a weekly view
type RingSlice struct {
	Slot       int    `json:"slot"`
	Percentage int    `json:"percentage"`
	Color      string `json:"color"`
}
