package handlers

import (
	"net/http"

	"learnloop/internal/service"
)

// VocabHandler serves vocabulary game word sets
type VocabHandler struct {
	vocabService *service.VocabularyService
}

// NewVocabHandler creates a new vocabulary handler
func NewVocabHandler(vocabService *service.VocabularyService) *VocabHandler {
	return &VocabHandler{vocabService: vocabService}
}

// WordSet handles GET /api/vocabulary?level=easy|medium|hard. The game
// must always start, so this never fails: API trouble degrades to the
// built-in word pool and still returns 200.
func (h *VocabHandler) WordSet(w http.ResponseWriter, r *http.Request) {
	level := r.URL.Query().Get("level")
	set := h.vocabService.WordSetForLevel(r.Context(), level)
	respondJSON(w, http.StatusOK, map[string]any{
		"words":  set.Words,
		"source": set.Source,
	})
}
