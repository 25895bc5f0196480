package models

import (
	"time"

	"gorm.io/gorm"
)

type InvoiceStatus string

const (
	InvoicePending       InvoiceStatus = "Pending"
	InvoicePartiallyPaid InvoiceStatus = "Partially Paid"
	InvoicePaid          InvoiceStatus = "Paid"
	InvoiceOverdue       InvoiceStatus = "Overdue"
)

// Invoice is the financial record of one completed appointment. Exactly one
// invoice may exist per appointment. DueAmount and Status are derived from
// the totals and the payment history; every mutation recomputes them in the
// same transaction via Recompute, and a nightly job re-derives Overdue.
type Invoice struct {
	gorm.Model
	Number            string        `json:"number" gorm:"uniqueIndex"`
	AppointmentID     uint          `json:"appointment_id" gorm:"uniqueIndex"`
	PatientID         uint          `json:"patient_id"`
	Patient           Patient       `json:"patient" gorm:"foreignKey:PatientID"`
	TotalAmount       float64       `json:"total_amount"`
	InsuranceCoverage float64       `json:"insurance_coverage_amount"`
	DueAmount         float64       `json:"due_amount"`
	Status            InvoiceStatus `json:"status"`
	IssuedDate        time.Time     `json:"issued_date"`
	DueDate           time.Time     `json:"due_date"`
	Payments          []Payment     `json:"payments,omitempty" gorm:"foreignKey:InvoiceID"`
}

// Payment is append-only: rows are never updated or deleted, and their sum
// can never exceed total_amount - insurance_coverage_amount.
type Payment struct {
	gorm.Model
	InvoiceID     uint      `json:"invoice_id"`
	ReceiptNumber string    `json:"receipt_number" gorm:"uniqueIndex"`
	Amount        float64   `json:"paid_amount"`
	Method        string    `json:"method_of_payment"`
	PaymentDate   time.Time `json:"payment_date"`
}

// PatientShare is the out-of-pocket portion of the invoice.
func (inv *Invoice) PatientShare() float64 {
	return inv.TotalAmount - inv.InsuranceCoverage
}

// PaidSum totals the loaded payment rows.
func (inv *Invoice) PaidSum() float64 {
	var sum float64
	for _, p := range inv.Payments {
		sum += p.Amount
	}
	return sum
}

// DeriveInvoiceStatus is the single source of truth for invoice status:
//
//	Paid           when nothing is left to pay
//	Overdue        when something is left and the due date has passed
//	Partially Paid when some but not all of the patient share is paid
//	Pending        otherwise
//
// Status is never set directly anywhere else.
func DeriveInvoiceStatus(total, insurance, paid float64, dueDate, today time.Time) InvoiceStatus {
	due := total - insurance - paid
	if due <= 0 {
		return InvoicePaid
	}
	if today.After(dueDate) && !sameDate(today, dueDate) {
		return InvoiceOverdue
	}
	if paid > 0 {
		return InvoicePartiallyPaid
	}
	return InvoicePending
}

// Recompute refreshes DueAmount and Status from the invariant
// due = total - insurance - paid.
func (inv *Invoice) Recompute(paid float64, today time.Time) {
	inv.DueAmount = inv.TotalAmount - inv.InsuranceCoverage - paid
	if inv.DueAmount < 0 {
		inv.DueAmount = 0
	}
	inv.Status = DeriveInvoiceStatus(inv.TotalAmount, inv.InsuranceCoverage, paid, inv.DueDate, today)
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
