package models

import (
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestRingLabel(t *testing.T) {
	tests := []struct {
		name     string
		ring     RingAssignment
		expected string
	}{
		{
			name:     "curriculum ring capitalizes subject",
			ring:     RingAssignment{RingType: RingTypeCurriculum, Subject: strPtr("math")},
			expected: "Math",
		},
		{
			name:     "curriculum ring without subject",
			ring:     RingAssignment{RingType: RingTypeCurriculum},
			expected: "Subject",
		},
		{
			name:     "custom ring uses label",
			ring:     RingAssignment{RingType: RingTypeCustomTimed, CustomLabel: strPtr("Piano")},
			expected: "Piano",
		},
		{
			name:     "custom ring without label",
			ring:     RingAssignment{RingType: RingTypeCustomTimed},
			expected: "Activity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ring.Label(); got != tt.expected {
				t.Errorf("Label() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRingIcon(t *testing.T) {
	tests := []struct {
		name     string
		ring     RingAssignment
		expected string
	}{
		{
			name:     "math icon",
			ring:     RingAssignment{RingType: RingTypeCurriculum, Subject: strPtr("math")},
			expected: "📐",
		},
		{
			name:     "unknown subject falls back",
			ring:     RingAssignment{RingType: RingTypeCurriculum, Subject: strPtr("history")},
			expected: "📚",
		},
		{
			name:     "custom icon",
			ring:     RingAssignment{RingType: RingTypeCustomTimed, CustomIcon: strPtr("🎹")},
			expected: "🎹",
		},
		{
			name:     "custom default",
			ring:     RingAssignment{RingType: RingTypeCustomTimed},
			expected: "⏱️",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ring.Icon(); got != tt.expected {
				t.Errorf("Icon() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRingMatchKeys(t *testing.T) {
	ring := RingAssignment{
		RingSlot: 2,
		RingType: RingTypeCurriculum,
		Subject:  strPtr("reading"),
	}

	keys := ring.MatchKeys()
	if !keys["ring_2"] {
		t.Error("slot key ring_2 should match")
	}
	if !keys["reading"] {
		t.Error("legacy subject key should match")
	}
	if keys["ring_1"] || keys["math"] {
		t.Error("unrelated keys should not match")
	}

	custom := RingAssignment{
		RingSlot:    3,
		RingType:    RingTypeCustomTimed,
		CustomLabel: strPtr("Chores"),
	}
	keys = custom.MatchKeys()
	if !keys["ring_3"] || !keys["chores"] {
		t.Errorf("custom ring should match slot key and lowercased label, got %v", keys)
	}
}

func TestSessionIsExpired(t *testing.T) {
	expired := Session{ExpiresAt: time.Now().Add(-time.Minute)}
	if !expired.IsExpired() {
		t.Error("past session should be expired")
	}

	active := Session{ExpiresAt: time.Now().Add(time.Hour)}
	if active.IsExpired() {
		t.Error("future session should not be expired")
	}
}
