package models

import (
	"testing"
)

func TestAvailabilityRuleValidate(t *testing.T) {
	tests := []struct {
		name    string
		rule    AvailabilityRule
		wantErr bool
	}{
		{
			name:    "valid window",
			rule:    AvailabilityRule{DayOfWeek: Monday, StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
			wantErr: false,
		},
		{
			name:    "start equals end",
			rule:    AvailabilityRule{DayOfWeek: Monday, StartTime: "09:00", EndTime: "09:00", IsAvailable: true},
			wantErr: true,
		},
		{
			name:    "start after end",
			rule:    AvailabilityRule{DayOfWeek: Monday, StartTime: "17:00", EndTime: "09:00", IsAvailable: true},
			wantErr: true,
		},
		{
			name:    "bad time format",
			rule:    AvailabilityRule{DayOfWeek: Monday, StartTime: "9am", EndTime: "17:00", IsAvailable: true},
			wantErr: true,
		},
		{
			name:    "weekday out of range",
			rule:    AvailabilityRule{DayOfWeek: 7, StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
			wantErr: true,
		},
		{
			name:    "unavailable day skips window checks",
			rule:    AvailabilityRule{DayOfWeek: Sunday, IsAvailable: false},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultRule(t *testing.T) {
	rule := DefaultRule(42, Wednesday)
	if rule.StartTime != DefaultStartTime || rule.EndTime != DefaultEndTime {
		t.Errorf("default window = %s-%s, want %s-%s",
			rule.StartTime, rule.EndTime, DefaultStartTime, DefaultEndTime)
	}
	if !rule.IsAvailable {
		t.Error("default rule should be available")
	}
	if err := rule.Validate(); err != nil {
		t.Errorf("default rule should validate: %v", err)
	}
}
