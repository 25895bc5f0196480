package models

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// MinNotesLength is the shortest consultation note accepted on completion.
const MinNotesLength = 10

// ConsultationRecord is written once when a doctor completes an appointment
// and never modified afterwards. Line item prices are frozen here and later
// copied into the invoice, so catalogue price changes never leak backwards.
type ConsultationRecord struct {
	gorm.Model
	AppointmentID uint                `json:"appointment_id" gorm:"uniqueIndex"`
	Notes         string              `json:"notes"`
	AttachmentURL string              `json:"attachment_url,omitempty"`
	Items         []TreatmentLineItem `json:"items" gorm:"foreignKey:ConsultationRecordID"`
}

// TreatmentLineItem freezes what was prescribed and at what price. The
// actual price may diverge from the catalogue price at the doctor's
// discretion.
type TreatmentLineItem struct {
	gorm.Model
	ConsultationRecordID uint    `json:"consultation_record_id"`
	ServiceCode          string  `json:"service_code"`
	Name                 string  `json:"name"`
	ActualPrice          float64 `json:"actual_price"`
	Notes                string  `json:"notes,omitempty"`
}

// TotalAmount sums the frozen line prices. Zero for a consultation-only
// record, which is still invoiceable.
func (r *ConsultationRecord) TotalAmount() float64 {
	var total float64
	for _, item := range r.Items {
		total += item.ActualPrice
	}
	return total
}

// ValidateNotes enforces the minimum consultation note length.
func ValidateNotes(notes string) error {
	if len(strings.TrimSpace(notes)) < MinNotesLength {
		return fmt.Errorf("consultation notes must be at least %d characters", MinNotesLength)
	}
	return nil
}
