package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
var pinRegex = regexp.MustCompile(`^[0-9]{4}$`)

// Minutes accepted for a single logged activity
const (
	MinActivityMinutes = 1
	MaxActivityMinutes = 480
)

// ValidationError represents a validation error on a single field
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateName checks if a name is valid
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) < 2 {
		return ValidationError{Field: "name", Message: "name must be at least 2 characters"}
	}
	return nil
}

// ValidateAge checks a child's age
func ValidateAge(age int) error {
	if age < 3 || age > 18 {
		return ValidationError{Field: "age", Message: "age must be between 3 and 18"}
	}
	return nil
}

// ValidateGrade checks a child's grade string ("K", "Pre-K", "Grade 1"..)
func ValidateGrade(grade string) error {
	g := strings.ToLower(strings.TrimSpace(grade))
	if g == "" {
		return ValidationError{Field: "grade", Message: "grade is required"}
	}
	if g == "k" || g == "pre-k" {
		return nil
	}
	if matched, _ := regexp.MatchString(`^(grade )?([1-9]|1[0-2])$`, g); !matched {
		return ValidationError{Field: "grade", Message: "invalid grade"}
	}
	return nil
}

// ValidatePin checks a kid PIN (exactly 4 digits)
func ValidatePin(pin string) error {
	if !pinRegex.MatchString(pin) {
		return ValidationError{Field: "kid_pin", Message: "PIN must be exactly 4 digits"}
	}
	return nil
}

// ValidateMinutes checks a logged activity duration
func ValidateMinutes(minutes int) error {
	if minutes < MinActivityMinutes || minutes > MaxActivityMinutes {
		return ValidationError{
			Field:   "minutes",
			Message: fmt.Sprintf("minutes must be between %d and %d", MinActivityMinutes, MaxActivityMinutes),
		}
	}
	return nil
}
