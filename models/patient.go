package models

import (
	"time"

	"gorm.io/gorm"
)

// Patient is the clinic's patient directory record. Billing only cares about
// the insurance fields; everything else is plain contact data.
type Patient struct {
	gorm.Model
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	PhoneNumber         string     `json:"phone_number"`
	DateOfBirth         *time.Time `json:"date_of_birth"`
	Address             string     `json:"address"`
	InsuranceProviderID *uint      `json:"insurance_provider_id"`
	InsuranceNumber     string     `json:"insurance_number"`
}

// HasInsurance reports whether the patient has an insurance provider on file.
// Invoices may only carry an insurance coverage amount when this is true.
func (p *Patient) HasInsurance() bool {
	return p.InsuranceProviderID != nil && *p.InsuranceProviderID != 0
}
