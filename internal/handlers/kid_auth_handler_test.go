package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"learnloop/internal/security"
)

func TestKidLoginIssuesToken(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newQuizTestEnv(t)

	child, pin, err := env.family.CreateChild(env.parent.ID, "Leo", 9, "Grade 3", "🐯", "")
	if err != nil {
		t.Fatalf("failed to create child: %v", err)
	}

	kidTokens := security.NewKidTokenIssuer("test-secret", time.Hour)
	handler := NewKidAuthHandler(env.family, kidTokens, time.Hour, nil)

	body := `{"familyCode":"abc123","kidPin":"` + pin + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/kid-auth", strings.NewReader(body))
	recorder := httptest.NewRecorder()

	handler.Login(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var resp struct {
		Success   bool   `json:"success"`
		Token     string `json:"token"`
		ChildID   int64  `json:"child_id"`
		ChildName string `json:"child_name"`
	}
	if err := json.NewDecoder(recorder.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success || resp.ChildID != child.ID || resp.ChildName != "Leo" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	// The token must verify and carry the child's identity.
	session, err := kidTokens.Verify(resp.Token)
	if err != nil {
		t.Fatalf("token failed verification: %v", err)
	}
	if session.ChildID != child.ID || session.ParentID != env.parent.ID {
		t.Fatalf("unexpected session claims: %+v", session)
	}

	foundCookie := false
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == security.KidTokenCookieName && cookie.Value != "" {
			foundCookie = true
		}
	}
	if !foundCookie {
		t.Fatal("expected kid token cookie to be set")
	}
}

func TestKidLoginRejectsWrongPin(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newQuizTestEnv(t)

	_, pin, err := env.family.CreateChild(env.parent.ID, "Leo", 9, "Grade 3", "🐯", "")
	if err != nil {
		t.Fatalf("failed to create child: %v", err)
	}

	wrongPin := "0000"
	if pin == wrongPin {
		wrongPin = "1111"
	}

	kidTokens := security.NewKidTokenIssuer("test-secret", time.Hour)
	handler := NewKidAuthHandler(env.family, kidTokens, time.Hour, nil)

	body := `{"familyCode":"ABC123","kidPin":"` + wrongPin + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/kid-auth", strings.NewReader(body))
	recorder := httptest.NewRecorder()

	handler.Login(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", recorder.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(recorder.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["error"] != "invalid credentials" {
		t.Fatalf("expected generic credentials error, got %q", resp["error"])
	}
}
