package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid", email: "parent@example.com", wantErr: false},
		{name: "subdomain", email: "a@mail.example.co.uk", wantErr: false},
		{name: "empty", email: "", wantErr: true},
		{name: "missing at", email: "parentexample.com", wantErr: true},
		{name: "missing tld", email: "parent@example", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidateGrade(t *testing.T) {
	tests := []struct {
		name    string
		grade   string
		wantErr bool
	}{
		{name: "kindergarten", grade: "K", wantErr: false},
		{name: "pre-k", grade: "Pre-K", wantErr: false},
		{name: "grade prefix", grade: "Grade 3", wantErr: false},
		{name: "bare number", grade: "7", wantErr: false},
		{name: "grade 12", grade: "Grade 12", wantErr: false},
		{name: "empty", grade: "", wantErr: true},
		{name: "grade 13", grade: "Grade 13", wantErr: true},
		{name: "garbage", grade: "blue", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGrade(tt.grade)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGrade(%q) error = %v, wantErr %v", tt.grade, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePin(t *testing.T) {
	tests := []struct {
		name    string
		pin     string
		wantErr bool
	}{
		{name: "valid", pin: "0412", wantErr: false},
		{name: "too short", pin: "123", wantErr: true},
		{name: "too long", pin: "12345", wantErr: true},
		{name: "letters", pin: "12a4", wantErr: true},
		{name: "empty", pin: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePin(tt.pin)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePin(%q) error = %v, wantErr %v", tt.pin, err, tt.wantErr)
			}
		})
	}
}

func TestValidateMinutes(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		wantErr bool
	}{
		{name: "one minute", minutes: 1, wantErr: false},
		{name: "upper bound", minutes: 480, wantErr: false},
		{name: "zero", minutes: 0, wantErr: true},
		{name: "negative", minutes: -5, wantErr: true},
		{name: "over a day of logging", minutes: 481, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMinutes(tt.minutes)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMinutes(%d) error = %v, wantErr %v", tt.minutes, err, tt.wantErr)
			}
		})
	}
}
