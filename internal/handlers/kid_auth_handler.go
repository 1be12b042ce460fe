package handlers

import (
	"net/http"
	"time"

	"learnloop/internal/security"
	"learnloop/internal/service"
)

// KidAuthHandler handles family-code + PIN sign-in for kid mode
type KidAuthHandler struct {
	familyService *service.FamilyService
	kidTokens     *security.KidTokenIssuer
	tokenTTL      time.Duration
	limiter       *security.RateLimiter
}

// NewKidAuthHandler creates a new kid auth handler
func NewKidAuthHandler(familyService *service.FamilyService, kidTokens *security.KidTokenIssuer, tokenTTL time.Duration, limiter *security.RateLimiter) *KidAuthHandler {
	return &KidAuthHandler{familyService: familyService, kidTokens: kidTokens, tokenTTL: tokenTTL, limiter: limiter}
}

// Login handles POST /api/kid-auth
func (h *KidAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.limiter != nil && !h.limiter.Allow(security.ClientIP(r)) {
		respondError(w, http.StatusTooManyRequests, "too many attempts, try again later", nil)
		return
	}

	var req struct {
		FamilyCode string `json:"familyCode"`
		KidPin     string `json:"kidPin"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	session, err := h.familyService.KidLogin(req.FamilyCode, req.KidPin)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	token, err := h.kidTokens.Issue(*session)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		return
	}

	http.SetCookie(w, security.NewSessionCookie(r, security.KidTokenCookieName, token, time.Now().Add(h.tokenTTL)))

	respondJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"token":        token,
		"child_id":     session.ChildID,
		"child_name":   session.ChildName,
		"avatar_emoji": session.AvatarEmoji,
		"parent_id":    session.ParentID,
	})
}

// Logout handles POST /api/kid-auth/logout
func (h *KidAuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, security.ExpiredCookie(r, security.KidTokenCookieName))
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}
