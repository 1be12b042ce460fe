package handlers

import (
	"net/http"

	"learnloop/internal/models"
	"learnloop/internal/service"
)

// RingHandler reads and saves per-child ring configuration
type RingHandler struct {
	ringService   *service.RingService
	familyService *service.FamilyService
}

// NewRingHandler creates a new ring handler
func NewRingHandler(ringService *service.RingService, familyService *service.FamilyService) *RingHandler {
	return &RingHandler{ringService: ringService, familyService: familyService}
}

// Get handles GET /api/ring-assignments?childId=N
func (h *RingHandler) Get(w http.ResponseWriter, r *http.Request) {
	childID, ok := queryChildID(w, r)
	if !ok {
		return
	}

	if !authorizeChildAccess(w, r, h.familyService, childID) {
		return
	}

	rings, err := h.ringService.GetRings(childID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"rings": rings})
}

// Save handles PUT /api/ring-assignments. Slots are saved independently;
// a response with failures still reports the slots that succeeded.
func (h *RingHandler) Save(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	var req struct {
		ChildID int64                   `json:"childId"`
		Rings   []models.RingDescriptor `json:"rings"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if len(req.Rings) == 0 {
		respondError(w, http.StatusBadRequest, "rings is required", nil)
		return
	}

	child, err := h.familyService.GetOwnedChild(user.ID, req.ChildID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	results := h.ringService.SaveRingConfig(child, req.Rings)

	rings := make([]models.RingAssignment, 0, len(results))
	details := make([]models.SlotResult, 0)
	for _, res := range results {
		if res.Error != "" {
			details = append(details, res)
			continue
		}
		rings = append(rings, *res.Ring)
	}

	// Any failed slot makes the save an error response; the succeeded
	// slots and the per-slot details stay visible to the caller.
	status := http.StatusOK
	if len(details) > 0 {
		status = http.StatusInternalServerError
	}

	resp := map[string]any{
		"success": len(details) == 0,
		"rings":   rings,
	}
	if len(details) > 0 {
		resp["errors"] = details
	}
	respondJSON(w, status, resp)
}
