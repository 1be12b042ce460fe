package models

// Vocabulary word sources
const (
	WordSourceAPI      = "api"
	WordSourceFallback = "fallback"
)

// VocabularyWord is one fill-in-the-blank word for the vocabulary game.
// BlankSentence is Sentence with every occurrence of Word replaced by a
// blank marker.
type VocabularyWord struct {
	Word          string `json:"word"`
	Definition    string `json:"definition"`
	Sentence      string `json:"sentence"`
	BlankSentence string `json:"blankSentence"`
	Emoji         string `json:"emoji"`
}
