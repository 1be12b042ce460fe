package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"learnloop/internal/models"
)

func TestMakeBlankSentence(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		word     string
		expected string
	}{
		{
			name:     "simple replacement",
			sentence: "The brave mouse stood tall.",
			word:     "brave",
			expected: "The ________ mouse stood tall.",
		},
		{
			name:     "case insensitive",
			sentence: "Journey of a lifetime: the journey begins.",
			word:     "JOURNEY",
			expected: "________ of a lifetime: the ________ begins.",
		},
		{
			name:     "word absent leaves sentence alone",
			sentence: "Nothing to see here.",
			word:     "treasure",
			expected: "Nothing to see here.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MakeBlankSentence(tt.sentence, tt.word)
			if result != tt.expected {
				t.Errorf("MakeBlankSentence() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestEmojiForWord(t *testing.T) {
	tests := []struct {
		name       string
		word       string
		definition string
		expected   string
	}{
		{"ocean theme", "tide", "the rise and fall of the sea", "🌊"},
		{"mountain theme", "summit", "the top of a mountain", "🏔️"},
		{"definition match", "vessel", "a boat used for a long journey", "🧭"},
		{"no theme falls back to book", "abstract", "existing in thought only", "📚"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EmojiForWord(tt.word, tt.definition)
			if result != tt.expected {
				t.Errorf("EmojiForWord(%q, %q) = %q, want %q", tt.word, tt.definition, result, tt.expected)
			}
		})
	}
}

func TestFilterCandidates(t *testing.T) {
	words := []datamuseWord{
		{Word: "journey", Tags: []string{"f:20.5"}},
		{Word: "rare", Tags: []string{"f:1.2"}},
		{Word: "no-tags"},
		{Word: "hyphen-ated", Tags: []string{"f:20"}},
		{Word: "ox", Tags: []string{"f:18"}},                // too short
		{Word: "extraordinarily", Tags: []string{"f:16"}},   // too long
		{Word: "Capitalized", Tags: []string{"f:17"}},       // not lowercase
		{Word: "mountain", Tags: []string{"d:noise", "f:30"}}, // frequency tag not first
	}

	easy := filterCandidates(words, levelBands["easy"])
	want := []string{"journey", "mountain"}
	if len(easy) != len(want) {
		t.Fatalf("easy candidates = %v, want %v", easy, want)
	}
	for i, w := range want {
		if easy[i] != w {
			t.Errorf("easy[%d] = %q, want %q", i, easy[i], w)
		}
	}

	hard := filterCandidates(words, levelBands["hard"])
	if len(hard) != 1 || hard[0] != "rare" {
		t.Errorf("hard candidates = %v, want [rare]", hard)
	}
}

func TestWordSetFallsBackWhenAPIDown(t *testing.T) {
	// A server that always fails stands in for an unreachable Datamuse.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewVocabularyService(server.URL, server.URL)
	set := svc.WordSetForLevel(context.Background(), "easy")

	if set.Source != models.WordSourceFallback {
		t.Fatalf("source = %q, want %q", set.Source, models.WordSourceFallback)
	}
	if len(set.Words) != WordSetSize {
		t.Fatalf("expected %d words, got %d", WordSetSize, len(set.Words))
	}

	for _, w := range set.Words {
		if w.Word == "" || w.Definition == "" || w.Sentence == "" {
			t.Errorf("incomplete word entry: %+v", w)
		}
		if !strings.Contains(w.BlankSentence, "________") {
			t.Errorf("blank sentence for %q has no blank: %q", w.Word, w.BlankSentence)
		}
		if strings.Contains(strings.ToLower(w.BlankSentence), strings.ToLower(w.Word)) {
			t.Errorf("blank sentence for %q still contains the word", w.Word)
		}
	}
}

func TestWordSetUnknownLevelUsesMedium(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svc := NewVocabularyService(server.URL, server.URL)
	set := svc.WordSetForLevel(context.Background(), "impossible")

	if len(set.Words) != WordSetSize {
		t.Fatalf("expected %d words, got %d", WordSetSize, len(set.Words))
	}

	pool := map[string]bool{}
	for _, fw := range fallbackPools["medium"] {
		pool[fw.Word] = true
	}
	for _, w := range set.Words {
		if !pool[w.Word] {
			t.Errorf("word %q not from the medium fallback pool", w.Word)
		}
	}
}

func TestWordSetFromLiveAPIs(t *testing.T) {
	datamuse := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("md") != "f" {
			t.Errorf("expected md=f, got %q", r.URL.Query().Get("md"))
		}
		w.Header().Set("Content-Type", "application/json")
		// 12 valid easy-band candidates
		var sb strings.Builder
		sb.WriteString("[")
		words := []string{"journey", "mountain", "forest", "treasure", "bridge", "stream", "island", "shelter", "meadow", "valley", "garden", "harbor"}
		for i, word := range words {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString(`{"word":"` + word + `","tags":["f:20.0"]}`)
		}
		sb.WriteString("]")
		w.Write([]byte(sb.String()))
	}))
	defer datamuse.Close()

	dictionary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.URL.Path, "/")
		word := parts[len(parts)-1]
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"meanings":[{"definitions":[{"definition":"a test meaning","example":"Every ` + word + ` tells a story."}]}]}]`))
	}))
	defer dictionary.Close()

	svc := NewVocabularyService(datamuse.URL, dictionary.URL)
	set := svc.WordSetForLevel(context.Background(), "easy")

	if set.Source != models.WordSourceAPI {
		t.Fatalf("source = %q, want %q", set.Source, models.WordSourceAPI)
	}
	if len(set.Words) != WordSetSize {
		t.Fatalf("expected %d words, got %d", WordSetSize, len(set.Words))
	}
	for _, w := range set.Words {
		if w.Word != strings.ToUpper(w.Word) {
			t.Errorf("word %q not uppercased", w.Word)
		}
		if !strings.Contains(w.BlankSentence, "________") {
			t.Errorf("blank sentence missing blank: %q", w.BlankSentence)
		}
	}
}
