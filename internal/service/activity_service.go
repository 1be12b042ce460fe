package service

import (
	"fmt"
	"math"
	"time"

	"learnloop/internal/models"
	"learnloop/internal/repository"
	"learnloop/internal/utils"
)

// DateFormat is the calendar-day key used for activity logs and streaks.
// Days are evaluated in server-local time.
const DateFormat = "2006-01-02"

// pointRates maps activity types to points per 10 minutes. Slot keys and
// legacy subject literals both appear so historical rows score the same.
var pointRates = map[string]int{
	"math":    10,
	"reading": 8,
	"chores":  5,
	"ring_1":  10,
	"ring_2":  8,
	"ring_3":  5,
}

const defaultPointRate = 6

// PointsFor computes the points earned for a session: rate per 10 minutes,
// scaled linearly and truncated. Unknown activity types use the default
// rate rather than failing.
func PointsFor(activityType string, minutes int) int {
	rate, ok := pointRates[activityType]
	if !ok {
		rate = defaultPointRate
	}
	return minutes * rate / 10
}

// GoalPercentage converts minutes against a daily goal to a 0-100 integer.
// Values are rounded half-up and capped at 100; a non-positive goal
// reports 0 rather than dividing by zero.
func GoalPercentage(minutes, goalMinutes int) int {
	if goalMinutes <= 0 {
		return 0
	}
	pct := int(math.Round(float64(minutes) * 100 / float64(goalMinutes)))
	if pct > 100 {
		pct = 100
	}
	return pct
}

// DefaultRings returns the three starter rings shown before a parent has
// configured any. They are presentation-only and never written to the
// database.
func DefaultRings(childID int64) []models.RingAssignment {
	mathSubject := "math"
	reading := "reading"
	chores := "Chores"
	broom := "🧹"
	return []models.RingAssignment{
		{ChildID: childID, RingSlot: 1, RingType: models.RingTypeCurriculum, Subject: &mathSubject, Color: "#FF6B6B", DailyGoalMinutes: models.DefaultGoalMinutes},
		{ChildID: childID, RingSlot: 2, RingType: models.RingTypeCurriculum, Subject: &reading, Color: "#4ECDC4", DailyGoalMinutes: models.DefaultGoalMinutes},
		{ChildID: childID, RingSlot: 3, RingType: models.RingTypeCustomTimed, CustomLabel: &chores, CustomIcon: &broom, Color: "#6BCF7F", DailyGoalMinutes: models.DefaultGoalMinutes},
	}
}

// AggregateDaily sums a day's logs into per-ring completion tuples. Each
// ring matches logs by its slot key plus any legacy subject or label keys;
// minutes that match no ring are ignored.
func AggregateDaily(rings []models.RingAssignment, logs []models.ActivityLog) []models.DailyProgress {
	progress := make([]models.DailyProgress, 0, len(rings))
	for i := range rings {
		ring := &rings[i]
		keys := ring.MatchKeys()

		total := 0
		for _, entry := range logs {
			if keys[entry.ActivityType] {
				total += entry.Minutes
			}
		}

		goal := ring.DailyGoalMinutes
		if goal <= 0 {
			goal = models.DefaultGoalMinutes
		}

		progress = append(progress, models.DailyProgress{
			RingSlot:     ring.RingSlot,
			RingLabel:    ring.Label(),
			RingColor:    ring.Color,
			RingIcon:     ring.Icon(),
			ActivityType: ring.ActivityKey(),
			TotalMinutes: total,
			GoalMinutes:  goal,
			Percentage:   GoalPercentage(total, goal),
		})
	}
	return progress
}

// AdvanceStreak applies one day of activity to a streak in place and
// reports whether anything changed. A second activity on the same day is
// a no-op; activity the day after the last active date extends the run;
// any longer gap resets it to 1. LongestStreak never decreases.
func AdvanceStreak(streak *models.Streak, today time.Time) bool {
	todayStr := today.Format(DateFormat)
	if streak.LastActiveDate == todayStr {
		return false
	}

	yesterdayStr := today.AddDate(0, 0, -1).Format(DateFormat)
	if streak.LastActiveDate == yesterdayStr {
		streak.CurrentStreak++
	} else {
		streak.CurrentStreak = 1
	}
	if streak.CurrentStreak > streak.LongestStreak {
		streak.LongestStreak = streak.CurrentStreak
	}
	streak.LastActiveDate = todayStr
	return true
}

// ActivityService handles activity logging, ring progress aggregation,
// points and streaks.
type ActivityService struct {
	activityRepo *repository.ActivityRepository
	ringRepo     *repository.RingRepository
	now          func() time.Time
}

// NewActivityService creates a new activity service
func NewActivityService(activityRepo *repository.ActivityRepository, ringRepo *repository.RingRepository) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		ringRepo:     ringRepo,
		now:          time.Now,
	}
}

// LogActivity records a session against an activity type, awards points
// and advances the streak. Returns the stored log entry.
func (s *ActivityService) LogActivity(childID int64, activityType string, minutes int, lessonID *int64) (*models.ActivityLog, error) {
	if activityType == "" {
		return nil, utils.ValidationError{Field: "activity_type", Message: "activity type is required"}
	}
	if err := utils.ValidateMinutes(minutes); err != nil {
		return nil, err
	}

	today := s.now()
	entry := &models.ActivityLog{
		ChildID:      childID,
		ActivityType: activityType,
		Minutes:      minutes,
		PointsEarned: PointsFor(activityType, minutes),
		LessonID:     lessonID,
		LoggedDate:   today.Format(DateFormat),
	}

	id, err := s.activityRepo.InsertLog(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to insert activity log: %w", err)
	}
	entry.ID = id

	if err := s.advanceStreakNow(childID, today); err != nil {
		return nil, err
	}
	return entry, nil
}

// LogRingActivity records a timed session against a ring slot
func (s *ActivityService) LogRingActivity(childID int64, ringSlot, minutes int) (*models.ActivityLog, error) {
	if ringSlot < 1 || ringSlot > models.RingSlotCount {
		return nil, utils.ValidationError{Field: "ring_slot", Message: fmt.Sprintf("ring slot must be between 1 and %d", models.RingSlotCount)}
	}
	return s.LogActivity(childID, fmt.Sprintf("ring_%d", ringSlot), minutes, nil)
}

func (s *ActivityService) advanceStreakNow(childID int64, today time.Time) error {
	streak, err := s.activityRepo.GetStreak(childID)
	if err != nil {
		return fmt.Errorf("failed to get streak: %w", err)
	}
	if streak == nil {
		// Streak rows are provisioned with the child; a missing row
		// means the child is gone.
		return ErrChildNotFound
	}

	if AdvanceStreak(streak, today) {
		if err := s.activityRepo.SaveStreak(streak); err != nil {
			return fmt.Errorf("failed to save streak: %w", err)
		}
	}
	return nil
}

// ringsForChild loads a child's configured rings, falling back to the
// starter set when none exist.
func (s *ActivityService) ringsForChild(childID int64) ([]models.RingAssignment, error) {
	rings, err := s.ringRepo.GetRingAssignments(childID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ring assignments: %w", err)
	}
	if len(rings) == 0 {
		rings = DefaultRings(childID)
	}
	return rings, nil
}

// DailyProgress returns today's per-ring completion for a child
func (s *ActivityService) DailyProgress(childID int64) ([]models.DailyProgress, error) {
	rings, err := s.ringsForChild(childID)
	if err != nil {
		return nil, err
	}

	today := s.now().Format(DateFormat)
	logs, err := s.activityRepo.GetLogsByDate(childID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity logs: %w", err)
	}

	return AggregateDaily(rings, logs), nil
}

// WeeklyProgress returns per-ring completion for the trailing 7 days
// (oldest first, today last).
func (s *ActivityService) WeeklyProgress(childID int64) ([]models.WeeklyRing, error) {
	rings, err := s.ringsForChild(childID)
	if err != nil {
		return nil, err
	}

	today := s.now()
	from := today.AddDate(0, 0, -6).Format(DateFormat)
	to := today.Format(DateFormat)

	logs, err := s.activityRepo.GetLogsByDateRange(childID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity logs: %w", err)
	}

	byDate := make(map[string][]models.ActivityLog)
	for _, entry := range logs {
		byDate[entry.LoggedDate] = append(byDate[entry.LoggedDate], entry)
	}

	week := make([]models.WeeklyRing, 0, 7)
	for offset := -6; offset <= 0; offset++ {
		date := today.AddDate(0, 0, offset).Format(DateFormat)
		daily := AggregateDaily(rings, byDate[date])

		slices := make([]models.RingSlice, 0, len(daily))
		for _, d := range daily {
			slices = append(slices, models.RingSlice{
				Slot:       d.RingSlot,
				Percentage: d.Percentage,
				Color:      d.RingColor,
			})
		}
		week = append(week, models.WeeklyRing{Date: date, Rings: slices})
	}
	return week, nil
}

// Streak returns a child's streak counters, zeroed when none exist yet
func (s *ActivityService) Streak(childID int64) (*models.Streak, error) {
	streak, err := s.activityRepo.GetStreak(childID)
	if err != nil {
		return nil, fmt.Errorf("failed to get streak: %w", err)
	}
	if streak == nil {
		return &models.Streak{ChildID: childID}, nil
	}
	return streak, nil
}

// TotalPoints returns all points a child has earned
func (s *ActivityService) TotalPoints(childID int64) (int, error) {
	total, err := s.activityRepo.TotalPoints(childID)
	if err != nil {
		return 0, fmt.Errorf("failed to total points: %w", err)
	}
	return total, nil
}
