package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"learnloop/internal/models"
)

func TestRingSaveCollectsPerSlotErrors(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newQuizTestEnv(t)
	handler := NewRingHandler(env.ringService, env.family)

	// Slot 1 is valid; slot 2 is a curriculum ring with no subject or
	// module and must fail without blocking slot 1.
	body := `{"childId":` + itoa(env.childID) + `,"rings":[
		{"slot":1,"ring_type":"curriculum","subject":"math","daily_goal_minutes":25},
		{"slot":2,"ring_type":"curriculum","daily_goal_minutes":30}
	]}`

	req := httptest.NewRequest(http.MethodPut, "/api/ring-assignments", strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), UserContextKey, env.parent))
	recorder := httptest.NewRecorder()

	handler.Save(recorder, req)

	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500 on partial failure, got %d", recorder.Code)
	}

	var resp struct {
		Success bool                    `json:"success"`
		Rings   []models.RingAssignment `json:"rings"`
		Errors  []models.SlotResult     `json:"errors"`
	}
	if err := json.NewDecoder(recorder.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Success {
		t.Fatal("expected success false when a slot fails")
	}
	if len(resp.Rings) != 1 || resp.Rings[0].RingSlot != 1 {
		t.Fatalf("expected slot 1 saved, got %+v", resp.Rings)
	}
	if len(resp.Errors) != 1 || resp.Errors[0].Slot != 2 || resp.Errors[0].Error == "" {
		t.Fatalf("expected slot 2 error detail, got %+v", resp.Errors)
	}

	// Valid slot really persisted.
	ring, err := env.ringRepo.GetRingBySlot(env.childID, 1)
	if err != nil {
		t.Fatalf("failed to read ring: %v", err)
	}
	if ring == nil || ring.DailyGoalMinutes != 25 {
		t.Fatalf("expected slot 1 stored with 25 minute goal, got %+v", ring)
	}
}

func TestRingGetReturnsEmptyListWhenUnconfigured(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newQuizTestEnv(t)
	handler := NewRingHandler(env.ringService, env.family)

	req := httptest.NewRequest(http.MethodGet, "/api/ring-assignments?childId="+itoa(env.childID), nil)
	req = req.WithContext(context.WithValue(req.Context(), UserContextKey, env.parent))
	recorder := httptest.NewRecorder()

	handler.Get(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", recorder.Code)
	}

	var resp struct {
		Rings []models.RingAssignment `json:"rings"`
	}
	if err := json.NewDecoder(recorder.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	// Unconfigured children see an empty list, not synthesized defaults.
	if resp.Rings == nil || len(resp.Rings) != 0 {
		t.Fatalf("expected empty rings list, got %+v", resp.Rings)
	}

	env.seedRing(t, 1, 2)
	recorder = httptest.NewRecorder()
	handler.Get(recorder, req)

	if err := json.NewDecoder(recorder.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Rings) != 1 || resp.Rings[0].RingSlot != 1 {
		t.Fatalf("expected the saved ring only, got %+v", resp.Rings)
	}
}

func TestRingSaveRejectsUnownedChild(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newQuizTestEnv(t)
	handler := NewRingHandler(env.ringService, env.family)

	body := `{"childId":` + itoa(env.childID+99) + `,"rings":[{"slot":1,"ring_type":"curriculum","subject":"math"}]}`

	req := httptest.NewRequest(http.MethodPut, "/api/ring-assignments", strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), UserContextKey, env.parent))
	recorder := httptest.NewRecorder()

	handler.Save(recorder, req)

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", recorder.Code)
	}
}
