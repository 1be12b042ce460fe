package service

import (
	"strings"

	"learnloop/internal/models"
)

// fallbackWord is a curated entry served when the word APIs are down
type fallbackWord struct {
	Word       string
	Definition string
	Sentence   string
	Emoji      string
}

// fallbackPools are curated adventure-themed word sets per difficulty
var fallbackPools = map[string][]fallbackWord{
	"easy": {
		{"JOURNEY", "A long trip from one place to another.", "The brave adventurer set off on a long journey through the mountains.", "🗺️"},
		{"SUMMIT", "The very top of a mountain.", "After hours of climbing, they finally reached the summit of the hill.", "🏔️"},
		{"VANISH", "To disappear suddenly.", "The magician made the coin vanish right before everyone's eyes.", "✨"},
		{"ISLAND", "Land with water all around it.", "The tiny island was surrounded by sparkling blue water.", "🏝️"},
		{"TREASURE", "Very valuable things like gold or gems.", "The pirates buried their treasure deep under the old oak tree.", "💎"},
		{"SWIFT", "Moving very, very fast.", "The swift falcon dove toward the ground to catch its meal.", "🦅"},
		{"FOREST", "A large area filled with many trees.", "The children explored the dark and mysterious forest near their village.", "🌲"},
		{"BRIDGE", "Something built to go over a river or road.", "They crossed the old wooden bridge to reach the other side of the river.", "🌉"},
		{"QUEST", "A long search for something special.", "The young hero began her quest to find the magical golden key.", "⚔️"},
		{"CAVE", "A large hole in the side of a hill or underground.", "The explorers found ancient paintings inside the dark cave.", "🦇"},
		{"STREAM", "A small, narrow river.", "They followed the babbling stream through the meadow to find their camp.", "💧"},
		{"GLOW", "To give off a soft, steady light.", "The fireflies began to glow softly as the sun went down.", "✨"},
		{"HIDDEN", "Kept out of sight.", "A hidden door behind the bookcase led to a secret room.", "🚪"},
		{"MAP", "A drawing that shows where places are.", "She unfolded the old map to find the path to the waterfall.", "🗺️"},
		{"BRAVE", "Being ready to face something scary.", "The brave little mouse stood up to the much bigger cat.", "🦁"},
	},
	"medium": {
		{"ANCIENT", "Something from a very, very long time ago.", "The ancient temple had stood for thousands of years in the jungle.", "🏛️"},
		{"LUMINOUS", "Shining brightly in the dark.", "The luminous jellyfish looked like floating lanterns in the deep sea.", "🪼"},
		{"VENTURE", "To go somewhere new or a bit dangerous.", "They decided to venture into the unknown forest beyond the village.", "🧭"},
		{"NAVIGATE", "Finding the right way to travel somewhere.", "The captain used the stars to navigate across the wide ocean.", "⭐"},
		{"TERRAIN", "The type of land, like rocky, sandy, or muddy ground.", "The rocky terrain made the hike much harder than expected.", "🪨"},
		{"COURAGE", "The strength to do something difficult or scary.", "It took a lot of courage to speak in front of the whole school.", "🦁"},
		{"DISCOVER", "To find something for the very first time.", "The children were thrilled to discover a nest of baby robins in the garden.", "🔍"},
		{"HORIZON", "The line where the earth meets the sky in the distance.", "They watched the sun slowly sink below the horizon at the beach.", "🌅"},
		{"FRAGILE", "Something that is easily broken or damaged.", "The fragile glass ornament shattered when it fell off the shelf.", "🏺"},
		{"OBSERVE", "To watch something very carefully and closely.", "The scientist used a magnifying glass to observe the tiny insects.", "🔬"},
		{"SHELTER", "A place that keeps you safe from the weather.", "The hikers quickly built a shelter to stay dry during the rainstorm.", "⛺"},
		{"THRIVE", "To grow strong and healthy over time.", "With plenty of sunlight and water, the plants began to thrive in the garden.", "🌱"},
		{"REMOTE", "A place far away from other people or cities.", "The remote cabin in the mountains had no electricity or running water.", "🏚️"},
		{"VIBRANT", "Full of energy and very bright colors.", "The vibrant market was filled with colorful stalls and lively music.", "🎨"},
		{"ENDURE", "To keep going even when things are very hard.", "The team had to endure three days of rain before reaching the summit.", "💪"},
		{"WILDERNESS", "A wild place where no people live, full of nature.", "The wilderness stretched for hundreds of miles without a single road.", "🌿"},
		{"CURIOUS", "Wanting to learn about or know more about something.", "The curious puppy sniffed every corner of the new backyard.", "🐾"},
	},
	"hard": {
		{"PRECARIOUS", "Not safe; likely to fall or collapse at any moment.", "The hiker stood in a precarious position on the edge of the crumbly cliff.", "🪨"},
		{"RESILIENT", "Able to bounce back quickly after a tough time.", "The resilient little flower grew right through the crack in the cold pavement.", "🌸"},
		{"TREACHEROUS", "Very dangerous, usually because of ice, mud, or hidden traps.", "The icy mountain path became treacherous as the sun began to set.", "⚠️"},
		{"LABYRINTH", "A complicated maze that is very hard to exit.", "The explorer got lost for hours inside the stone labyrinth beneath the castle.", "🌀"},
		{"EXPEDITION", "A journey made for a specific and important purpose, like science.", "The scientists began their underwater expedition to find the sunken ship.", "🚢"},
		{"FORAGE", "To search widely for food or useful supplies.", "The bear began to forage for berries along the riverbank every morning.", "🐻"},
		{"SOLITUDE", "The peaceful state of being completely alone.", "The explorer cherished the solitude of the mountain peak at dawn.", "🧘"},
		{"UNCHARTED", "A place that has never been explored or put on any map.", "The sailors steered their boat into uncharted waters, hoping to find a new island.", "🗺️"},
		{"SPECTACULAR", "Something so beautiful or impressive it takes your breath away.", "The view from the top of the waterfall was absolutely spectacular.", "🌊"},
		{"VIGILANT", "Keeping a very careful watch for any sign of danger.", "The owl remained vigilant, scanning the dark forest for any movement.", "🦉"},
		{"PERILOUS", "Full of great danger or serious risk.", "The mountain climbers faced a perilous crossing over the icy ridge.", "🏔️"},
		{"OBSCURE", "Hard to see, find, or understand because it is hidden away.", "The treasure was hidden in an obscure corner of the ancient ruins.", "🔍"},
		{"FORMIDABLE", "Something that inspires awe or fear because it is so powerful.", "The giant snow-covered peak was a formidable challenge for the climbers.", "❄️"},
		{"PIONEER", "The very first person to explore or settle in a new place.", "The pioneer carved a new path through the dense jungle for others to follow.", "🪓"},
		{"DECIPHER", "To figure out a secret code or very difficult writing.", "It took the team days to decipher the symbols carved into the cave wall.", "🔑"},
		{"ENDURANCE", "The power to last through a long and difficult struggle.", "Crossing the desert required incredible endurance from every member of the team.", "💪"},
		{"VAST", "Extremely large or wide, almost impossible to measure.", "The vast ocean seemed to stretch on forever in every direction.", "🌊"},
	},
}

// emojiKeywords maps themes to a decorative emoji. First match wins.
var emojiKeywords = []struct {
	Keywords []string
	Emoji    string
}{
	{[]string{"ocean", "sea", "water", "fish", "wave", "swim"}, "🌊"},
	{[]string{"mountain", "hill", "summit", "peak", "climb"}, "🏔️"},
	{[]string{"forest", "tree", "wood", "jungle", "leaf"}, "🌲"},
	{[]string{"star", "space", "sky", "moon", "sun", "light", "glow", "luminous"}, "⭐"},
	{[]string{"fire", "flame", "burn", "hot"}, "🔥"},
	{[]string{"animal", "bird", "beast", "creature", "wildlife"}, "🦁"},
	{[]string{"treasure", "gold", "gem", "jewel", "riches"}, "💎"},
	{[]string{"map", "path", "route", "direction", "navigate"}, "🗺️"},
	{[]string{"brave", "courage", "hero", "bold"}, "🦸"},
	{[]string{"ancient", "old", "history", "ruin", "temple"}, "🏛️"},
	{[]string{"danger", "risk", "peril", "treacherous", "precarious"}, "⚠️"},
	{[]string{"plant", "flower", "grow", "nature", "garden"}, "🌸"},
	{[]string{"cave", "dark", "underground", "tunnel"}, "🦇"},
	{[]string{"journey", "travel", "trip", "adventure", "expedition"}, "🧭"},
	{[]string{"maze", "labyrinth", "puzzle", "mystery"}, "🌀"},
	{[]string{"rain", "storm", "weather", "snow", "ice"}, "⛈️"},
}

// EmojiForWord picks a thematic emoji based on the word and its definition
func EmojiForWord(word, definition string) string {
	text := strings.ToLower(word + " " + definition)
	for _, group := range emojiKeywords {
		for _, kw := range group.Keywords {
			if strings.Contains(text, kw) {
				return group.Emoji
			}
		}
	}
	return "📚"
}

// fallbackWords converts n shuffled pool entries into game words
func (s *VocabularyService) fallbackWords(level string, n int) []models.VocabularyWord {
	pool, ok := fallbackPools[level]
	if !ok {
		pool = fallbackPools["medium"]
	}

	shuffled := make([]fallbackWord, len(pool))
	copy(shuffled, pool)
	s.rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if n > len(shuffled) {
		n = len(shuffled)
	}
	words := make([]models.VocabularyWord, 0, n)
	for _, w := range shuffled[:n] {
		words = append(words, models.VocabularyWord{
			Word:          w.Word,
			Definition:    w.Definition,
			Sentence:      w.Sentence,
			BlankSentence: MakeBlankSentence(w.Sentence, w.Word),
			Emoji:         w.Emoji,
		})
	}
	return words
}
