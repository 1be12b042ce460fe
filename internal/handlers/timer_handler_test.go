package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"learnloop/internal/repository"
	"learnloop/internal/service"
)

func TestTimerLogAwardsPointsAndMovesRing(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newQuizTestEnv(t)
	env.seedRing(t, 1, 2)

	activityRepo := repository.NewActivityRepository(env.db)
	activityService := service.NewActivityService(activityRepo, env.ringRepo)
	handler := NewTimerHandler(activityService, env.family)

	body := `{"childId":` + itoa(env.childID) + `,"ringSlot":1,"minutes":20}`
	req := httptest.NewRequest(http.MethodPost, "/api/timer-log", strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), KidSessionContextKey, &env.kidSession))
	recorder := httptest.NewRecorder()

	handler.Log(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var resp struct {
		Success      bool `json:"success"`
		PointsEarned int  `json:"pointsEarned"`
	}
	if err := json.NewDecoder(recorder.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	// ring_1 earns 10 points per 10 minutes.
	if !resp.Success || resp.PointsEarned != 20 {
		t.Fatalf("expected 20 points, got %+v", resp)
	}

	// The day's ring now shows the logged minutes against its goal.
	daily := httptest.NewRequest(http.MethodGet, "/api/daily-progress?childId="+itoa(env.childID), nil)
	daily = daily.WithContext(context.WithValue(daily.Context(), KidSessionContextKey, &env.kidSession))
	recorder = httptest.NewRecorder()

	handler.Daily(recorder, daily)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", recorder.Code)
	}

	var progress struct {
		Rings []struct {
			RingSlot     int `json:"ring_slot"`
			TotalMinutes int `json:"total_minutes"`
			Percentage   int `json:"percentage"`
		} `json:"rings"`
		Streak struct {
			CurrentStreak int `json:"current_streak"`
		} `json:"streak"`
		TotalPoints int `json:"totalPoints"`
	}
	if err := json.NewDecoder(recorder.Body).Decode(&progress); err != nil {
		t.Fatalf("failed to decode progress: %v", err)
	}

	var slot1Minutes, slot1Pct int
	for _, ring := range progress.Rings {
		if ring.RingSlot == 1 {
			slot1Minutes = ring.TotalMinutes
			slot1Pct = ring.Percentage
		}
	}
	// 20 of the 30 minute goal is 67%.
	if slot1Minutes != 20 || slot1Pct != 67 {
		t.Fatalf("expected slot 1 at 20 minutes / 67%%, got %d / %d", slot1Minutes, slot1Pct)
	}
	if progress.Streak.CurrentStreak != 1 {
		t.Fatalf("expected streak 1 after first log, got %d", progress.Streak.CurrentStreak)
	}
	if progress.TotalPoints != 20 {
		t.Fatalf("expected 20 total points, got %d", progress.TotalPoints)
	}
}

func TestTimerLogRejectsOutOfRangeMinutes(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newQuizTestEnv(t)

	activityRepo := repository.NewActivityRepository(env.db)
	activityService := service.NewActivityService(activityRepo, env.ringRepo)
	handler := NewTimerHandler(activityService, env.family)

	for _, minutes := range []string{"0", "481"} {
		body := `{"childId":` + itoa(env.childID) + `,"ringSlot":1,"minutes":` + minutes + `}`
		req := httptest.NewRequest(http.MethodPost, "/api/timer-log", strings.NewReader(body))
		req = req.WithContext(context.WithValue(req.Context(), KidSessionContextKey, &env.kidSession))
		recorder := httptest.NewRecorder()

		handler.Log(recorder, req)

		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("minutes=%s: expected status 400, got %d", minutes, recorder.Code)
		}
	}
}
