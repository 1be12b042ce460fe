package curriculum

import (
	"regexp"
	"strconv"
	"strings"
)

// Module is a unit of curriculum content: a named sequence of chapters
// belonging to a subject and grade band. The catalog is static reference
// data; module ids are stable and ordering within a subject is by
// ascending id.
type Module struct {
	ID         int      `json:"id"`
	Title      string   `json:"title"`
	Subject    string   `json:"subject"`
	Grades     string   `json:"grades"`
	Icon       string   `json:"icon"`
	Duration   string   `json:"duration"`
	Activities int      `json:"activities"`
	Chapters   []string `json:"chapters"`
}

// Known subjects with curriculum content.
const (
	SubjectMath    = "math"
	SubjectReading = "reading"
)

// Catalog holds every published curriculum module. Reading modules start at
// id 16 to leave room for additional math modules.
var Catalog = []Module{
	{
		ID: 1, Title: "Number Explorers", Subject: SubjectMath, Grades: "K",
		Icon: "🔢", Duration: "4 weeks", Activities: 20,
		Chapters: []string{
			"Counting 1-20",
			"Number Recognition",
			"One-to-One Correspondence",
			"Counting Treasure Hunt",
			"Number Matching Games",
		},
	},
	{
		ID: 2, Title: "Addition Adventures", Subject: SubjectMath, Grades: "Grade 1",
		Icon: "➕", Duration: "6 weeks", Activities: 25,
		Chapters: []string{
			"Addition Facts to 10",
			"Addition Facts to 20",
			"Number Bonds",
			"Word Problems",
			"Real-World Shopping Scenarios",
		},
	},
	{
		ID: 3, Title: "Subtraction Safari", Subject: SubjectMath, Grades: "Grade 1-2",
		Icon: "➖", Duration: "6 weeks", Activities: 25,
		Chapters: []string{
			"Subtraction Facts to 10",
			"Subtraction Facts to 20",
			"Comparing Numbers",
			"Fact Families",
			"Mystery Number Challenges",
		},
	},
	{
		ID: 4, Title: "Multiplication Masters", Subject: SubjectMath, Grades: "Grade 3",
		Icon: "✖️", Duration: "8 weeks", Activities: 30,
		Chapters: []string{
			"Times Tables 1-6",
			"Times Tables 7-12",
			"Arrays",
			"Word Problems",
			"Real-World Multiplication",
		},
	},
	{
		ID: 5, Title: "Fraction Fundamentals", Subject: SubjectMath, Grades: "Grade 3-4",
		Icon: "🍕", Duration: "10 weeks", Activities: 35,
		Chapters: []string{
			"Part-Whole Relationships",
			"Equivalent Fractions",
			"Comparing Fractions",
			"Pizza Fraction Games",
			"Fraction Number Line",
		},
	},
	{
		ID: 6, Title: "Decimal Discoveries", Subject: SubjectMath, Grades: "Grade 4-5",
		Icon: "📐", Duration: "8 weeks", Activities: 30,
		Chapters: []string{
			"Understanding Decimal Place Value",
			"Comparing and Ordering Decimals",
			"Adding Decimals",
			"Subtracting Decimals",
			"Multiplying Decimals",
		},
	},
	{
		ID: 7, Title: "Geometry Genius", Subject: SubjectMath, Grades: "Grade 4-6",
		Icon: "📏", Duration: "10 weeks", Activities: 35,
		Chapters: []string{
			"Shapes and Angles",
			"Area and Perimeter",
			"Volume",
			"3D Shape Explorations",
			"Shape Building Challenges",
		},
	},
	{
		ID: 16, Title: "Phonics Foundations", Subject: SubjectReading, Grades: "K",
		Icon: "🔤", Duration: "12 weeks", Activities: 40,
		Chapters: []string{
			"Letter Sounds",
			"Blending",
			"CVC Words",
			"Rhyming Challenges",
			"Word Building Games",
		},
	},
	{
		ID: 17, Title: "Beginning Readers", Subject: SubjectReading, Grades: "Grade 1",
		Icon: "📖", Duration: "10 weeks", Activities: 35,
		Chapters: []string{
			"Sight Words",
			"Simple Sentences",
			"Fluency Practice",
			"Sight Word Treasure Hunt",
			"Sentence Building",
		},
	},
	{
		ID: 18, Title: "Reading Comprehension Basics", Subject: SubjectReading, Grades: "Grade 1-2",
		Icon: "📚", Duration: "8 weeks", Activities: 30,
		Chapters: []string{
			"Main Idea",
			"Sequencing",
			"Making Predictions",
			"Story Sequencing Puzzles",
			"Main Idea Detectives",
		},
	},
	{
		ID: 19, Title: "Reading Detectives", Subject: SubjectReading, Grades: "Grade 3",
		Icon: "🕵️", Duration: "10 weeks", Activities: 35,
		Chapters: []string{
			"Text Evidence",
			"Making Inferences",
			"Author's Purpose",
			"Evidence Hunting",
			"Inference Mysteries",
		},
	},
	{
		ID: 20, Title: "Vocabulary Builders", Subject: SubjectReading, Grades: "Grade 3-5",
		Icon: "📝", Duration: "8 weeks", Activities: 30,
		Chapters: []string{
			"Context Clues",
			"Word Parts",
			"Synonyms and Antonyms",
			"Word Part Puzzles",
			"Context Clue Challenges",
		},
	},
	{
		ID: 21, Title: "Fiction Analysis", Subject: SubjectReading, Grades: "Grade 4-5",
		Icon: "📕", Duration: "10 weeks", Activities: 35,
		Chapters: []string{
			"Character Analysis",
			"Plot Structure",
			"Theme",
			"Point of View",
			"Character Trait Detectives",
		},
	},
}

var gradeRangeRegex = regexp.MustCompile(`(\d+)\s*-\s*(\d+)`)
var digitsRegex = regexp.MustCompile(`[^0-9]`)

// GradeNumber maps a grade string to a numeric value for comparison.
// "K" and "Pre-K" map to 0.
func GradeNumber(grade string) int {
	g := strings.ToLower(strings.TrimSpace(grade))
	if g == "k" || g == "pre-k" {
		return 0
	}
	num, err := strconv.Atoi(digitsRegex.ReplaceAllString(g, ""))
	if err != nil {
		return 0
	}
	return num
}

// MatchesGrade reports whether a module's grade band covers a child's grade.
// Range bands like "Grade 1-2" match any grade within the range. Single
// bands match the grade itself or one above, so a child can pick a module
// one level below for review.
func MatchesGrade(moduleGrades, childGrade string) bool {
	childNum := GradeNumber(childGrade)

	if m := gradeRangeRegex.FindStringSubmatch(moduleGrades); m != nil {
		low, _ := strconv.Atoi(m[1])
		high, _ := strconv.Atoi(m[2])
		return childNum >= low && childNum <= high
	}

	moduleNum := GradeNumber(moduleGrades)
	return childNum >= moduleNum && childNum <= moduleNum+1
}

// ModulesForGrade returns all catalog modules matching a grade, optionally
// filtered by subject (empty subject matches all).
func ModulesForGrade(grade, subject string) []Module {
	var matches []Module
	for _, m := range Catalog {
		if !MatchesGrade(m.Grades, grade) {
			continue
		}
		if subject != "" && m.Subject != subject {
			continue
		}
		matches = append(matches, m)
	}
	return matches
}

// ModuleByID looks up a catalog module by id.
func ModuleByID(moduleID int) (Module, bool) {
	for _, m := range Catalog {
		if m.ID == moduleID {
			return m, true
		}
	}
	return Module{}, false
}

// NextModule returns the module that follows currentModuleID in the
// subject's catalog ordering, or false when the current module is the last
// in its subject (or unknown).
func NextModule(currentModuleID int, subject string) (Module, bool) {
	var subjectModules []Module
	for _, m := range Catalog {
		if m.Subject == subject {
			subjectModules = append(subjectModules, m)
		}
	}
	for i, m := range subjectModules {
		if m.ID == currentModuleID && i < len(subjectModules)-1 {
			return subjectModules[i+1], true
		}
	}
	return Module{}, false
}

// AutoAssignModule picks the first grade-appropriate module for a subject,
// excluding modules the child has already completed.
func AutoAssignModule(grade, subject string, completedModuleIDs []int) (Module, bool) {
	completed := make(map[int]bool, len(completedModuleIDs))
	for _, id := range completedModuleIDs {
		completed[id] = true
	}

	for _, m := range ModulesForGrade(grade, subject) {
		if !completed[m.ID] {
			return m, true
		}
	}
	return Module{}, false
}
