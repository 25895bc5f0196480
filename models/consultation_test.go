package models

import (
	"testing"
)

func TestValidateNotes(t *testing.T) {
	tests := []struct {
		name    string
		notes   string
		wantErr bool
	}{
		{"empty", "", true},
		{"too short", "short", true},
		{"whitespace only", "             ", true},
		{"padded short note", "   short    ", true},
		{"exactly minimum", "ten chars!", false},
		{"normal note", "Patient presented with mild fever, prescribed rest.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNotes(tt.notes)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNotes(%q) error = %v, wantErr %v", tt.notes, err, tt.wantErr)
			}
		})
	}
}

func TestConsultationRecordTotalAmount(t *testing.T) {
	record := ConsultationRecord{
		Items: []TreatmentLineItem{
			{ServiceCode: "DENT-CLN", Name: "Dental Cleaning", ActualPrice: 1500},
			{ServiceCode: "DENT-FIL", Name: "Dental Filling", ActualPrice: 800},
		},
	}
	if got := record.TotalAmount(); got != 2300 {
		t.Errorf("TotalAmount = %v, want 2300", got)
	}

	// Consultation-only visits invoice at zero.
	empty := ConsultationRecord{}
	if got := empty.TotalAmount(); got != 0 {
		t.Errorf("TotalAmount of empty record = %v, want 0", got)
	}
}
