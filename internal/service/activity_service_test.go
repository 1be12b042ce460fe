package service

import (
	"testing"
	"time"

	"learnloop/internal/models"
)

func TestPointsFor(t *testing.T) {
	tests := []struct {
		name         string
		activityType string
		minutes      int
		expected     int
	}{
		{"math full rate", "math", 30, 30},
		{"reading rate", "reading", 30, 24},
		{"chores rate", "chores", 30, 15},
		{"slot 1 matches math rate", "ring_1", 30, 30},
		{"slot 2 matches reading rate", "ring_2", 30, 24},
		{"slot 3 matches chores rate", "ring_3", 30, 15},
		{"unknown type uses default rate", "piano", 30, 18},
		{"truncates fractional points", "math", 7, 7},
		{"truncates default rate", "piano", 5, 3},
		{"zero minutes", "math", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PointsFor(tt.activityType, tt.minutes)
			if result != tt.expected {
				t.Errorf("PointsFor(%q, %d) = %d, want %d", tt.activityType, tt.minutes, result, tt.expected)
			}
		})
	}
}

func TestGoalPercentage(t *testing.T) {
	tests := []struct {
		name     string
		minutes  int
		goal     int
		expected int
	}{
		{"zero minutes", 0, 30, 0},
		{"half goal", 15, 30, 50},
		{"exact goal", 30, 30, 100},
		{"over goal capped at 100", 45, 30, 100},
		{"rounds half up", 10, 60, 17},
		{"rounds to nearest", 7, 45, 16},
		{"zero goal reports zero", 30, 0, 0},
		{"negative goal reports zero", 30, -5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GoalPercentage(tt.minutes, tt.goal)
			if result != tt.expected {
				t.Errorf("GoalPercentage(%d, %d) = %d, want %d", tt.minutes, tt.goal, result, tt.expected)
			}
		})
	}
}

func TestAggregateDaily(t *testing.T) {
	mathSubject := "math"
	piano := "Piano"
	rings := []models.RingAssignment{
		{RingSlot: 1, RingType: models.RingTypeCurriculum, Subject: &mathSubject, Color: "#FF6B6B", DailyGoalMinutes: 30},
		{RingSlot: 2, RingType: models.RingTypeCustomTimed, CustomLabel: &piano, Color: "#4ECDC4", DailyGoalMinutes: 20},
	}

	logs := []models.ActivityLog{
		{ActivityType: "ring_1", Minutes: 10},
		{ActivityType: "math", Minutes: 5},     // legacy subject key counts toward slot 1
		{ActivityType: "piano", Minutes: 20},   // lowercased label counts toward slot 2
		{ActivityType: "reading", Minutes: 15}, // matches no ring, ignored
	}

	progress := AggregateDaily(rings, logs)
	if len(progress) != 2 {
		t.Fatalf("expected 2 rings, got %d", len(progress))
	}

	if progress[0].TotalMinutes != 15 {
		t.Errorf("slot 1 minutes = %d, want 15", progress[0].TotalMinutes)
	}
	if progress[0].Percentage != 50 {
		t.Errorf("slot 1 percentage = %d, want 50", progress[0].Percentage)
	}
	if progress[1].TotalMinutes != 20 {
		t.Errorf("slot 2 minutes = %d, want 20", progress[1].TotalMinutes)
	}
	if progress[1].Percentage != 100 {
		t.Errorf("slot 2 percentage = %d, want 100", progress[1].Percentage)
	}
	if progress[1].RingLabel != "Piano" {
		t.Errorf("slot 2 label = %q, want Piano", progress[1].RingLabel)
	}
}

func TestAggregateDailyDefaultsGoal(t *testing.T) {
	reading := "reading"
	rings := []models.RingAssignment{
		{RingSlot: 1, RingType: models.RingTypeCurriculum, Subject: &reading, DailyGoalMinutes: 0},
	}

	progress := AggregateDaily(rings, nil)
	if progress[0].GoalMinutes != models.DefaultGoalMinutes {
		t.Errorf("goal = %d, want default %d", progress[0].GoalMinutes, models.DefaultGoalMinutes)
	}
	if progress[0].TotalMinutes != 0 || progress[0].Percentage != 0 {
		t.Errorf("empty day should report zero progress, got %d min %d%%", progress[0].TotalMinutes, progress[0].Percentage)
	}
}

func TestDefaultRings(t *testing.T) {
	rings := DefaultRings(7)
	if len(rings) != models.RingSlotCount {
		t.Fatalf("expected %d default rings, got %d", models.RingSlotCount, len(rings))
	}

	labels := []string{"Math", "Reading", "Chores"}
	colors := []string{"#FF6B6B", "#4ECDC4", "#6BCF7F"}
	for i, ring := range rings {
		if ring.RingSlot != i+1 {
			t.Errorf("ring %d slot = %d", i, ring.RingSlot)
		}
		if ring.Label() != labels[i] {
			t.Errorf("ring %d label = %q, want %q", i, ring.Label(), labels[i])
		}
		if ring.Color != colors[i] {
			t.Errorf("ring %d color = %q, want %q", i, ring.Color, colors[i])
		}
		if ring.DailyGoalMinutes != models.DefaultGoalMinutes {
			t.Errorf("ring %d goal = %d", i, ring.DailyGoalMinutes)
		}
	}

	// The chores ring should count legacy "chores" rows.
	if !rings[2].MatchKeys()["chores"] {
		t.Error("slot 3 should match legacy chores logs")
	}
}

func TestAdvanceStreak(t *testing.T) {
	today := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		streak          models.Streak
		wantChanged     bool
		wantCurrent     int
		wantLongest     int
		wantActiveToday bool
	}{
		{
			name:        "same day is a no-op",
			streak:      models.Streak{CurrentStreak: 3, LongestStreak: 5, LastActiveDate: "2026-03-10"},
			wantChanged: false,
			wantCurrent: 3,
			wantLongest: 5,
		},
		{
			name:            "consecutive day extends",
			streak:          models.Streak{CurrentStreak: 3, LongestStreak: 5, LastActiveDate: "2026-03-09"},
			wantChanged:     true,
			wantCurrent:     4,
			wantLongest:     5,
			wantActiveToday: true,
		},
		{
			name:            "extension past longest raises longest",
			streak:          models.Streak{CurrentStreak: 5, LongestStreak: 5, LastActiveDate: "2026-03-09"},
			wantChanged:     true,
			wantCurrent:     6,
			wantLongest:     6,
			wantActiveToday: true,
		},
		{
			name:            "gap resets to one",
			streak:          models.Streak{CurrentStreak: 7, LongestStreak: 9, LastActiveDate: "2026-03-07"},
			wantChanged:     true,
			wantCurrent:     1,
			wantLongest:     9,
			wantActiveToday: true,
		},
		{
			name:            "first activity ever",
			streak:          models.Streak{},
			wantChanged:     true,
			wantCurrent:     1,
			wantLongest:     1,
			wantActiveToday: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			streak := tt.streak
			changed := AdvanceStreak(&streak, today)
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}
			if streak.CurrentStreak != tt.wantCurrent {
				t.Errorf("current = %d, want %d", streak.CurrentStreak, tt.wantCurrent)
			}
			if streak.LongestStreak != tt.wantLongest {
				t.Errorf("longest = %d, want %d", streak.LongestStreak, tt.wantLongest)
			}
			if tt.wantActiveToday && streak.LastActiveDate != "2026-03-10" {
				t.Errorf("last active = %q, want today", streak.LastActiveDate)
			}
			if streak.LongestStreak < streak.CurrentStreak {
				t.Error("longest streak fell below current")
			}
		})
	}
}

func TestAdvanceStreakAcrossMonthBoundary(t *testing.T) {
	streak := models.Streak{CurrentStreak: 2, LongestStreak: 2, LastActiveDate: "2026-02-28"}
	today := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	if !AdvanceStreak(&streak, today) {
		t.Fatal("expected streak to change")
	}
	if streak.CurrentStreak != 3 {
		t.Errorf("current = %d, want 3", streak.CurrentStreak)
	}
}
