package curriculum

import "testing"

func TestGradeNumber(t *testing.T) {
	tests := []struct {
		name     string
		grade    string
		expected int
	}{
		{name: "kindergarten", grade: "K", expected: 0},
		{name: "lowercase k", grade: "k", expected: 0},
		{name: "pre-k", grade: "Pre-K", expected: 0},
		{name: "grade 1", grade: "Grade 1", expected: 1},
		{name: "bare number", grade: "3", expected: 3},
		{name: "padded", grade: "  Grade 5  ", expected: 5},
		{name: "garbage", grade: "unknown", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GradeNumber(tt.grade); got != tt.expected {
				t.Errorf("GradeNumber(%q) = %d, want %d", tt.grade, got, tt.expected)
			}
		})
	}
}

func TestMatchesGrade(t *testing.T) {
	tests := []struct {
		name         string
		moduleGrades string
		childGrade   string
		expected     bool
	}{
		{name: "range match low", moduleGrades: "Grade 1-2", childGrade: "Grade 1", expected: true},
		{name: "range match high", moduleGrades: "Grade 1-2", childGrade: "Grade 2", expected: true},
		{name: "range miss above", moduleGrades: "Grade 1-2", childGrade: "Grade 3", expected: false},
		{name: "range miss below", moduleGrades: "Grade 3-4", childGrade: "Grade 2", expected: false},
		{name: "exact single grade", moduleGrades: "Grade 3", childGrade: "Grade 3", expected: true},
		{name: "one above for review", moduleGrades: "Grade 3", childGrade: "Grade 4", expected: true},
		{name: "two above", moduleGrades: "Grade 3", childGrade: "Grade 5", expected: false},
		{name: "kindergarten module", moduleGrades: "K", childGrade: "K", expected: true},
		{name: "grade 1 child on K module", moduleGrades: "K", childGrade: "Grade 1", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesGrade(tt.moduleGrades, tt.childGrade); got != tt.expected {
				t.Errorf("MatchesGrade(%q, %q) = %v, want %v",
					tt.moduleGrades, tt.childGrade, got, tt.expected)
			}
		})
	}
}

func TestModuleByID(t *testing.T) {
	m, ok := ModuleByID(1)
	if !ok {
		t.Fatal("module 1 should exist")
	}
	if m.Title != "Number Explorers" || m.Subject != SubjectMath {
		t.Errorf("unexpected module: %+v", m)
	}

	if _, ok := ModuleByID(999); ok {
		t.Error("module 999 should not exist")
	}
}

func TestNextModule(t *testing.T) {
	tests := []struct {
		name      string
		currentID int
		subject   string
		wantID    int
		wantOK    bool
	}{
		{name: "math sequence", currentID: 1, subject: SubjectMath, wantID: 2, wantOK: true},
		{name: "math middle", currentID: 4, subject: SubjectMath, wantID: 5, wantOK: true},
		{name: "last math module", currentID: 7, subject: SubjectMath, wantOK: false},
		{name: "reading sequence", currentID: 16, subject: SubjectReading, wantID: 17, wantOK: true},
		{name: "last reading module", currentID: 21, subject: SubjectReading, wantOK: false},
		{name: "unknown module", currentID: 999, subject: SubjectMath, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ok := NextModule(tt.currentID, tt.subject)
			if ok != tt.wantOK {
				t.Fatalf("NextModule(%d, %s) ok = %v, want %v", tt.currentID, tt.subject, ok, tt.wantOK)
			}
			if ok && next.ID != tt.wantID {
				t.Errorf("NextModule(%d, %s) = %d, want %d", tt.currentID, tt.subject, next.ID, tt.wantID)
			}
		})
	}
}

func TestAutoAssignModule(t *testing.T) {
	// Grade 1 math candidates are Addition Adventures (2) then Subtraction
	// Safari (3), plus Number Explorers (1) for review.
	m, ok := AutoAssignModule("Grade 1", SubjectMath, nil)
	if !ok {
		t.Fatal("expected a module for Grade 1 math")
	}
	if m.ID != 1 {
		t.Errorf("first candidate = %d, want 1", m.ID)
	}

	// Completing the first candidate moves to the next.
	m, ok = AutoAssignModule("Grade 1", SubjectMath, []int{1})
	if !ok || m.ID != 2 {
		t.Errorf("after completing 1, got %d (ok=%v), want 2", m.ID, ok)
	}

	// All candidates complete: no module available.
	if _, ok := AutoAssignModule("Grade 1", SubjectMath, []int{1, 2, 3}); ok {
		t.Error("expected no module when all candidates are completed")
	}
}

func TestCatalogOrderedWithinSubject(t *testing.T) {
	lastID := map[string]int{}
	for _, m := range Catalog {
		if prev, ok := lastID[m.Subject]; ok && m.ID <= prev {
			t.Errorf("catalog ids not ascending within %s: %d after %d", m.Subject, m.ID, prev)
		}
		lastID[m.Subject] = m.ID
		if len(m.Chapters) == 0 {
			t.Errorf("module %d has no chapters", m.ID)
		}
	}
}
