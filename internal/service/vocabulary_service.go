package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"learnloop/internal/models"
)

// WordSetSize is the number of words in one vocabulary game round
const WordSetSize = 10

// minAPIWords is the threshold below which API results get topped up from
// the fallback pool.
const minAPIWords = 5

const wordAPITimeout = 10 * time.Second

// wordPattern accepts plain lowercase words suitable for a blanking game
var wordPattern = regexp.MustCompile(`^[a-z]+$`)

var errNotEnoughWords = errors.New("not enough candidate words")

// freqBand is a Datamuse word-frequency range (occurrences per million)
type freqBand struct {
	Min, Max float64
}

// levelBands maps game difficulty to a frequency band: common words are
// easy, rare words are hard.
var levelBands = map[string]freqBand{
	"easy":   {Min: 15, Max: 9999},
	"medium": {Min: 4, Max: 15},
	"hard":   {Min: 0, Max: 4},
}

// levelTopics seeds the Datamuse topic query per difficulty
var levelTopics = map[string]string{
	"easy":   "adventure,animals,nature,home",
	"medium": "adventure,nature,science,exploration",
	"hard":   "exploration,science,geography,survival",
}

// MakeBlankSentence replaces every occurrence of word in the sentence
// with a blank marker, ignoring case.
func MakeBlankSentence(sentence, word string) string {
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(word))
	return re.ReplaceAllString(sentence, "________")
}

// WordSet is one round of the vocabulary game plus its provenance
type WordSet struct {
	Words  []models.VocabularyWord `json:"words"`
	Source string                  `json:"source"`
}

// VocabularyService builds fill-in-the-blank word sets from the Datamuse
// and dictionaryapi.dev word APIs, with a curated fallback pool so the
// game always works offline.
type VocabularyService struct {
	datamuseBaseURL   string
	dictionaryBaseURL string
	client            *http.Client
	rand              *rand.Rand
}

// NewVocabularyService creates a new vocabulary service
func NewVocabularyService(datamuseBaseURL, dictionaryBaseURL string) *VocabularyService {
	return &VocabularyService{
		datamuseBaseURL:   datamuseBaseURL,
		dictionaryBaseURL: dictionaryBaseURL,
		client:            &http.Client{Timeout: wordAPITimeout},
		rand:              rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WordSetForLevel returns a 10-word game round for a difficulty level.
// API failures are absorbed: the caller always gets a full set, with
// Source reporting whether the live APIs contributed.
func (s *VocabularyService) WordSetForLevel(ctx context.Context, level string) *WordSet {
	if _, ok := levelBands[level]; !ok {
		level = "medium"
	}

	words, err := s.fetchFromAPIs(ctx, level)
	if err != nil {
		return &WordSet{
			Words:  s.fallbackWords(level, WordSetSize),
			Source: models.WordSourceFallback,
		}
	}
	return &WordSet{Words: words, Source: models.WordSourceAPI}
}

// datamuseWord is one entry of a Datamuse /words response
type datamuseWord struct {
	Word string   `json:"word"`
	Tags []string `json:"tags"`
}

// frequency extracts the "f:<per-million>" metadata tag, 0 when absent
func (w datamuseWord) frequency() float64 {
	for _, tag := range w.Tags {
		if strings.HasPrefix(tag, "f:") {
			if f, err := strconv.ParseFloat(tag[2:], 64); err == nil {
				return f
			}
		}
	}
	return 0
}

// filterCandidates keeps plain 3-14 letter words inside the level's
// frequency band.
func filterCandidates(words []datamuseWord, band freqBand) []string {
	var candidates []string
	for _, w := range words {
		freq := w.frequency()
		if freq < band.Min || freq > band.Max {
			continue
		}
		if !wordPattern.MatchString(w.Word) {
			continue
		}
		if len(w.Word) < 3 || len(w.Word) > 14 {
			continue
		}
		candidates = append(candidates, w.Word)
	}
	return candidates
}

func (s *VocabularyService) fetchFromAPIs(ctx context.Context, level string) ([]models.VocabularyWord, error) {
	candidates, err := s.fetchCandidates(ctx, level)
	if err != nil {
		return nil, err
	}

	s.rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	// Dictionary lookups are the slow part; cap attempts rather than
	// walking the whole candidate list.
	maxAttempts := 30
	if len(candidates) < maxAttempts {
		maxAttempts = len(candidates)
	}

	var results []models.VocabularyWord
	for _, candidate := range candidates[:maxAttempts] {
		if len(results) >= WordSetSize {
			break
		}
		word, ok := s.lookupWord(ctx, candidate)
		if !ok {
			continue
		}
		results = append(results, word)
	}

	if len(results) < minAPIWords {
		results = append(results, s.fallbackWords(level, WordSetSize-len(results))...)
	}
	if len(results) > WordSetSize {
		results = results[:WordSetSize]
	}
	return results, nil
}

func (s *VocabularyService) fetchCandidates(ctx context.Context, level string) ([]string, error) {
	params := url.Values{}
	params.Set("topics", levelTopics[level])
	params.Set("max", "80")
	params.Set("md", "f")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.datamuseBaseURL+"/words?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("datamuse request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("datamuse returned status %d", resp.StatusCode)
	}

	var words []datamuseWord
	if err := json.NewDecoder(resp.Body).Decode(&words); err != nil {
		return nil, fmt.Errorf("failed to decode datamuse response: %w", err)
	}

	candidates := filterCandidates(words, levelBands[level])
	if len(candidates) < WordSetSize {
		return nil, errNotEnoughWords
	}
	return candidates, nil
}

// dictionaryEntry is the subset of a dictionaryapi.dev response we read
type dictionaryEntry struct {
	Meanings []struct {
		Definitions []struct {
			Definition string `json:"definition"`
			Example    string `json:"example"`
		} `json:"definitions"`
	} `json:"meanings"`
}

// lookupWord fetches a definition and example sentence for a candidate.
// Candidates without a usable example sentence containing the word are
// skipped; lookup failures just mean trying the next candidate.
func (s *VocabularyService) lookupWord(ctx context.Context, candidate string) (models.VocabularyWord, bool) {
	var zero models.VocabularyWord

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.dictionaryBaseURL+"/api/v2/entries/en/"+url.PathEscape(candidate), nil)
	if err != nil {
		return zero, false
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return zero, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return zero, false
	}

	var entries []dictionaryEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil || len(entries) == 0 {
		return zero, false
	}

	var definition, example string
	for _, meaning := range entries[0].Meanings {
		for _, def := range meaning.Definitions {
			if definition == "" && def.Definition != "" {
				definition = def.Definition
			}
			if example == "" && def.Example != "" {
				example = def.Example
			}
			if definition != "" && example != "" {
				break
			}
		}
		if definition != "" && example != "" {
			break
		}
	}
	if definition == "" || example == "" {
		return zero, false
	}

	// The sentence must actually contain the word or there is nothing
	// to blank out.
	if !strings.Contains(strings.ToLower(example), candidate) {
		return zero, false
	}

	return models.VocabularyWord{
		Word:          strings.ToUpper(candidate),
		Definition:    definition,
		Sentence:      example,
		BlankSentence: MakeBlankSentence(example, candidate),
		Emoji:         EmojiForWord(candidate, definition),
	}, true
}
