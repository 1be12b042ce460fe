package handlers

import (
	"net/http"
	"strconv"
	"time"

	"learnloop/internal/models"
	"learnloop/internal/repository"
	"learnloop/internal/service"
)

// LessonHandler serves lesson catalogs and records lesson completions
type LessonHandler struct {
	lessonRepo      *repository.LessonRepository
	activityService *service.ActivityService
	familyService   *service.FamilyService
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(lessonRepo *repository.LessonRepository, activityService *service.ActivityService, familyService *service.FamilyService) *LessonHandler {
	return &LessonHandler{lessonRepo: lessonRepo, activityService: activityService, familyService: familyService}
}

// List handles GET /api/lessons?moduleId=N or ?subject=X&grade=Y
func (h *LessonHandler) List(w http.ResponseWriter, r *http.Request) {
	if moduleParam := r.URL.Query().Get("moduleId"); moduleParam != "" {
		moduleID, err := strconv.Atoi(moduleParam)
		if err != nil || moduleID <= 0 {
			respondError(w, http.StatusBadRequest, "invalid moduleId", err)
			return
		}
		lessons, err := h.lessonRepo.GetLessonsByModule(moduleID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"success": true, "lessons": lessons})
		return
	}

	subject := r.URL.Query().Get("subject")
	grade := r.URL.Query().Get("grade")
	if subject == "" || grade == "" {
		respondError(w, http.StatusBadRequest, "moduleId or subject+grade is required", nil)
		return
	}

	lessons, err := h.lessonRepo.GetLessonsBySubjectGrade(subject, grade)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "lessons": lessons})
}

// Complete handles POST /api/lesson-complete. It records the completion
// row and logs the lesson's minutes so the day's rings and streak move.
func (h *LessonHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChildID          int64 `json:"childId"`
		LessonID         int64 `json:"lessonId"`
		TimeSpentSeconds int   `json:"timeSpentSeconds"`
		Score            *int  `json:"score"`
		ProblemsCorrect  int   `json:"problemsCorrect"`
		ProblemsTotal    int   `json:"problemsTotal"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if !authorizeChildAccess(w, r, h.familyService, req.ChildID) {
		return
	}

	lesson, err := h.lessonRepo.GetLessonByID(req.LessonID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if lesson == nil {
		respondError(w, http.StatusNotFound, "lesson not found", nil)
		return
	}

	now := time.Now()
	progress := &models.LessonProgress{
		ChildID:          req.ChildID,
		LessonID:         req.LessonID,
		StartedAt:        now.Add(-time.Duration(req.TimeSpentSeconds) * time.Second),
		CompletedAt:      &now,
		TimeSpentSeconds: req.TimeSpentSeconds,
		Score:            req.Score,
		ProblemsCorrect:  req.ProblemsCorrect,
		ProblemsTotal:    req.ProblemsTotal,
	}
	if _, err := h.lessonRepo.RecordCompletion(progress); err != nil {
		respondServiceError(w, err)
		return
	}

	minutes := req.TimeSpentSeconds / 60
	if minutes < 1 {
		minutes = 1
	}
	entry, err := h.activityService.LogActivity(req.ChildID, lesson.Subject, minutes, &req.LessonID)
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
