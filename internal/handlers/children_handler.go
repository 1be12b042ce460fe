package handlers

import (
	"net/http"
	"strconv"

	"learnloop/internal/service"
)

// ChildrenHandler manages child profiles and the parent dashboard views
type ChildrenHandler struct {
	familyService    *service.FamilyService
	dashboardService *service.DashboardService
}

// NewChildrenHandler creates a new children handler
func NewChildrenHandler(familyService *service.FamilyService, dashboardService *service.DashboardService) *ChildrenHandler {
	return &ChildrenHandler{familyService: familyService, dashboardService: dashboardService}
}

// Create handles POST /api/children
func (h *ChildrenHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	var req struct {
		Name        string `json:"name"`
		Age         int    `json:"age"`
		Grade       string `json:"grade"`
		AvatarEmoji string `json:"avatar_emoji"`
		KidPin      string `json:"kid_pin"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	child, pin, err := h.familyService.CreateChild(user.ID, req.Name, req.Age, req.Grade, req.AvatarEmoji, req.KidPin)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"child":   child,
		"kid_pin": pin,
	})
}

// List handles GET /api/children
func (h *ChildrenHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	children, err := h.familyService.GetChildren(user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true, "children": children})
}

// Update handles PUT /api/children/{id}
func (h *ChildrenHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	childID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid child id", err)
		return
	}

	var req struct {
		Name        string `json:"name"`
		Age         int    `json:"age"`
		Grade       string `json:"grade"`
		AvatarEmoji string `json:"avatar_emoji"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.familyService.UpdateChild(user.ID, childID, req.Name, req.Age, req.Grade, req.AvatarEmoji); err != nil {
		respondServiceError(w, err)
		return
	}

	child, err := h.familyService.GetChild(childID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true, "child": child})
}

// Delete handles DELETE /api/children/{id}
func (h *ChildrenHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	childID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid child id", err)
		return
	}

	if err := h.familyService.DeleteChild(user.ID, childID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

// RegeneratePin handles POST /api/children/{id}/pin
func (h *ChildrenHandler) RegeneratePin(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	childID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid child id", err)
		return
	}

	pin, err := h.familyService.RegenerateChildPin(user.ID, childID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true, "kid_pin": pin})
}

// Progress handles GET /api/progress
func (h *ChildrenHandler) Progress(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	children, err := h.dashboardService.ChildrenWithProgress(user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true, "children": children})
}

// Achievements handles GET /api/children/{id}/achievements
func (h *ChildrenHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	childID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid child id", err)
		return
	}

	if _, err := h.familyService.GetOwnedChild(user.ID, childID); err != nil {
		respondServiceError(w, err)
		return
	}

	achievements, err := h.dashboardService.ChildAchievements(childID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true, "achievements": achievements})
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}

// queryChildID parses a required childId query parameter, writing the
// error response itself when missing or malformed.
func queryChildID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	childID, err := strconv.ParseInt(r.URL.Query().Get("childId"), 10, 64)
	if err != nil || childID <= 0 {
		respondError(w, http.StatusBadRequest, "childId is required", err)
		return 0, false
	}
	return childID, true
}
