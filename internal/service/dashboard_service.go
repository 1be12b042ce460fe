package service

import (
	"fmt"
	"time"

	"learnloop/internal/models"
	"learnloop/internal/repository"
)

// Achievements is the all-time award summary shown on a child's profile
type Achievements struct {
	TotalPoints      int `json:"total_points"`
	TotalMinutes     int `json:"total_minutes"`
	CurrentStreak    int `json:"current_streak"`
	LongestStreak    int `json:"longest_streak"`
	ModulesCompleted int `json:"modules_completed"`
	LessonsCompleted int `json:"lessons_completed"`
}

// DashboardService assembles the aggregate views parents see: children
// with rings and streaks, achievements, and the weekly summary digest.
type DashboardService struct {
	childRepo    *repository.ChildRepository
	activityRepo *repository.ActivityRepository
	progressRepo *repository.ProgressRepository
	lessonRepo   *repository.LessonRepository
	activity     *ActivityService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	childRepo *repository.ChildRepository,
	activityRepo *repository.ActivityRepository,
	progressRepo *repository.ProgressRepository,
	lessonRepo *repository.LessonRepository,
	activity *ActivityService,
) *DashboardService {
	return &DashboardService{
		childRepo:    childRepo,
		activityRepo: activityRepo,
		progressRepo: progressRepo,
		lessonRepo:   lessonRepo,
		activity:     activity,
	}
}

// ChildrenWithProgress returns a parent's children with today's ring
// progress, streaks and lifetime points attached.
func (s *DashboardService) ChildrenWithProgress(parentID int64) ([]models.ChildWithProgress, error) {
	children, err := s.childRepo.GetChildrenByParent(parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get children: %w", err)
	}

	result := make([]models.ChildWithProgress, 0, len(children))
	for _, child := range children {
		daily, err := s.activity.DailyProgress(child.ID)
		if err != nil {
			return nil, err
		}
		streak, err := s.activity.Streak(child.ID)
		if err != nil {
			return nil, err
		}
		points, err := s.activity.TotalPoints(child.ID)
		if err != nil {
			return nil, err
		}

		result = append(result, models.ChildWithProgress{
			Child:         child,
			Streak:        streak,
			DailyProgress: daily,
			TotalPoints:   points,
		})
	}
	return result, nil
}

// ChildAchievements returns a child's all-time award summary
func (s *DashboardService) ChildAchievements(childID int64) (*Achievements, error) {
	points, err := s.activity.TotalPoints(childID)
	if err != nil {
		return nil, err
	}
	streak, err := s.activity.Streak(childID)
	if err != nil {
		return nil, err
	}
	completed, err := s.progressRepo.GetCompletedModuleIDs(childID)
	if err != nil {
		return nil, fmt.Errorf("failed to get completed modules: %w", err)
	}
	lessons, err := s.lessonRepo.GetCompletionsByChild(childID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson completions: %w", err)
	}

	// Lifetime minutes come from the whole activity log history.
	logs, err := s.activityRepo.GetLogsByDateRange(childID, "0000-01-01", "9999-12-31")
	if err != nil {
		return nil, fmt.Errorf("failed to get activity logs: %w", err)
	}
	totalMinutes := 0
	for _, entry := range logs {
		totalMinutes += entry.Minutes
	}

	lessonsDone := 0
	for _, lp := range lessons {
		if lp.CompletedAt != nil {
			lessonsDone++
		}
	}

	return &Achievements{
		TotalPoints:      points,
		TotalMinutes:     totalMinutes,
		CurrentStreak:    streak.CurrentStreak,
		LongestStreak:    streak.LongestStreak,
		ModulesCompleted: len(completed),
		LessonsCompleted: lessonsDone,
	}, nil
}

// WeeklySummaries builds the per-child digest lines for a parent's
// weekly email, covering the trailing 7 days.
func (s *DashboardService) WeeklySummaries(parentID int64) ([]ChildSummary, error) {
	children, err := s.childRepo.GetChildrenByParent(parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get children: %w", err)
	}

	today := time.Now()
	from := today.AddDate(0, 0, -6).Format(DateFormat)
	to := today.Format(DateFormat)

	summaries := make([]ChildSummary, 0, len(children))
	for _, child := range children {
		logs, err := s.activityRepo.GetLogsByDateRange(child.ID, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to get activity logs: %w", err)
		}

		minutes, points := 0, 0
		for _, entry := range logs {
			minutes += entry.Minutes
			points += entry.PointsEarned
		}

		streak, err := s.activity.Streak(child.ID)
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, ChildSummary{
			Child:         child,
			MinutesLogged: minutes,
			PointsEarned:  points,
			CurrentStreak: streak.CurrentStreak,
		})
	}
	return summaries, nil
}
