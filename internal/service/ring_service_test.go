package service

import (
	"testing"

	"learnloop/internal/models"
)

func TestValidateDescriptor(t *testing.T) {
	mathSubject := "math"
	piano := "Piano"
	empty := ""
	moduleID := 3

	tests := []struct {
		name    string
		desc    models.RingDescriptor
		wantErr bool
	}{
		{
			name: "curriculum ring with subject",
			desc: models.RingDescriptor{Slot: 1, RingType: models.RingTypeCurriculum, Subject: &mathSubject},
		},
		{
			name: "curriculum ring with module only",
			desc: models.RingDescriptor{Slot: 2, RingType: models.RingTypeCurriculum, ModuleID: &moduleID},
		},
		{
			name: "custom ring with label",
			desc: models.RingDescriptor{Slot: 3, RingType: models.RingTypeCustomTimed, CustomLabel: &piano},
		},
		{
			name:    "slot zero rejected",
			desc:    models.RingDescriptor{Slot: 0, RingType: models.RingTypeCurriculum, Subject: &mathSubject},
			wantErr: true,
		},
		{
			name:    "slot four rejected",
			desc:    models.RingDescriptor{Slot: 4, RingType: models.RingTypeCurriculum, Subject: &mathSubject},
			wantErr: true,
		},
		{
			name:    "curriculum ring without subject or module",
			desc:    models.RingDescriptor{Slot: 1, RingType: models.RingTypeCurriculum},
			wantErr: true,
		},
		{
			name:    "curriculum ring with empty subject",
			desc:    models.RingDescriptor{Slot: 1, RingType: models.RingTypeCurriculum, Subject: &empty},
			wantErr: true,
		},
		{
			name:    "custom ring without label",
			desc:    models.RingDescriptor{Slot: 3, RingType: models.RingTypeCustomTimed},
			wantErr: true,
		},
		{
			name:    "unknown ring type",
			desc:    models.RingDescriptor{Slot: 1, RingType: "weekly", Subject: &mathSubject},
			wantErr: true,
		},
		{
			name:    "negative goal rejected",
			desc:    models.RingDescriptor{Slot: 1, RingType: models.RingTypeCurriculum, Subject: &mathSubject, DailyGoalMinutes: -10},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDescriptor(tt.desc)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateDescriptor() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
