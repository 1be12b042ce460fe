package handlers

import (
	"net/http"

	"learnloop/internal/service"
)

// TimerHandler records timed activity against a ring slot
type TimerHandler struct {
	activityService *service.ActivityService
	familyService   *service.FamilyService
}

// NewTimerHandler creates a new timer handler
func NewTimerHandler(activityService *service.ActivityService, familyService *service.FamilyService) *TimerHandler {
	return &TimerHandler{activityService: activityService, familyService: familyService}
}

// Log handles POST /api/timer-log
func (h *TimerHandler) Log(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChildID  int64 `json:"childId"`
		RingSlot int   `json:"ringSlot"`
		Minutes  int   `json:"minutes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if !authorizeChildAccess(w, r, h.familyService, req.ChildID) {
		return
	}

	entry, err := h.activityService.LogRingActivity(req.ChildID, req.RingSlot, req.Minutes)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"log":          entry,
		"pointsEarned": entry.PointsEarned,
	})
}

// Daily handles GET /api/daily-progress?childId=N
func (h *TimerHandler) Daily(w http.ResponseWriter, r *http.Request) {
	childID, ok := queryChildID(w, r)
	if !ok {
		return
	}
	if !authorizeChildAccess(w, r, h.familyService, childID) {
		return
	}

	progress, err := h.activityService.DailyProgress(childID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	streak, err := h.activityService.Streak(childID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	points, err := h.activityService.TotalPoints(childID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"rings":       progress,
		"streak":      streak,
		"totalPoints": points,
	})
}

// Weekly handles GET /api/weekly-progress?childId=N
func (h *TimerHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	childID, ok := queryChildID(w, r)
	if !ok {
		return
	}
	if !authorizeChildAccess(w, r, h.familyService, childID) {
		return
	}

	days, err := h.activityService.WeeklyProgress(childID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true, "days": days})
}
