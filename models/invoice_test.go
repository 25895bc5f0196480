package models

import (
	"testing"
	"time"

	"github.com/clinicore/clinic-backend/utils"
)

var (
	issued  = time.Date(2025, 6, 2, 0, 0, 0, 0, time.Local)
	dueDate = issued.AddDate(0, 0, 14)
)

func TestDeriveInvoiceStatus(t *testing.T) {
	tests := []struct {
		name      string
		total     float64
		insurance float64
		paid      float64
		today     time.Time
		want      InvoiceStatus
	}{
		{"fresh invoice", 2300, 1000, 0, issued, InvoicePending},
		{"partial payment", 2300, 1000, 500, issued, InvoicePartiallyPaid},
		{"settled", 2300, 1000, 1300, issued, InvoicePaid},
		{"settled stays paid past due date", 2300, 1000, 1300, dueDate.AddDate(0, 0, 5), InvoicePaid},
		{"unpaid past due date", 2300, 1000, 0, dueDate.AddDate(0, 0, 1), InvoiceOverdue},
		{"partially paid past due date", 2300, 1000, 500, dueDate.AddDate(0, 0, 1), InvoiceOverdue},
		{"on the due date itself still pending", 2300, 1000, 0, dueDate.Add(10 * time.Hour), InvoicePending},
		{"zero-total invoice is immediately paid", 0, 0, 0, issued, InvoicePaid},
		{"fully insured invoice is immediately paid", 2300, 2300, 0, issued, InvoicePaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveInvoiceStatus(tt.total, tt.insurance, tt.paid, dueDate, tt.today)
			if got != tt.want {
				t.Errorf("DeriveInvoiceStatus(%v, %v, %v) = %s, want %s",
					tt.total, tt.insurance, tt.paid, got, tt.want)
			}
		})
	}
}

// The nightly sweep marks invoices overdue with `due_date < start of
// today`; that cutoff has to agree with DeriveInvoiceStatus, which
// compares local calendar days.
func TestOverdueAgreesWithDayCutoff(t *testing.T) {
	now := time.Date(2025, 6, 20, 3, 0, 0, 0, time.Local)
	startOfToday, _ := utils.DayBounds(now)

	tests := []struct {
		name    string
		dueDate time.Time
		overdue bool
	}{
		{"due before midnight yesterday", startOfToday.Add(-time.Minute), true},
		{"due at midnight today", startOfToday, false},
		{"due later today", now.Add(2 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveInvoiceStatus(100, 0, 0, tt.dueDate, now)
			if (got == InvoiceOverdue) != tt.overdue {
				t.Errorf("DeriveInvoiceStatus = %s, overdue want %v", got, tt.overdue)
			}
			if tt.dueDate.Before(startOfToday) != tt.overdue {
				t.Errorf("sweep cutoff disagrees with derived status for %v", tt.dueDate)
			}
		})
	}
}

func TestRecomputeKeepsInvariant(t *testing.T) {
	inv := Invoice{
		TotalAmount:       2300,
		InsuranceCoverage: 1000,
		IssuedDate:        issued,
		DueDate:           dueDate,
	}

	inv.Recompute(0, issued)
	if inv.DueAmount != 1300 {
		t.Fatalf("due = %v, want 1300", inv.DueAmount)
	}
	if inv.Status != InvoicePending {
		t.Fatalf("status = %s, want Pending", inv.Status)
	}

	// Payments strictly reduce the balance.
	inv.Recompute(500, issued)
	if inv.DueAmount != 800 {
		t.Fatalf("due = %v, want 800", inv.DueAmount)
	}
	if inv.Status != InvoicePartiallyPaid {
		t.Fatalf("status = %s, want Partially Paid", inv.Status)
	}

	inv.Recompute(1300, issued)
	if inv.DueAmount != 0 {
		t.Fatalf("due = %v, want 0", inv.DueAmount)
	}
	if inv.Status != InvoicePaid {
		t.Fatalf("status = %s, want Paid", inv.Status)
	}
}

func TestRecomputeNeverNegative(t *testing.T) {
	inv := Invoice{TotalAmount: 100, InsuranceCoverage: 0, DueDate: dueDate}
	inv.Recompute(150, issued)
	if inv.DueAmount != 0 {
		t.Fatalf("due = %v, want floor at 0", inv.DueAmount)
	}
}

func TestPatientShareAndPaidSum(t *testing.T) {
	inv := Invoice{
		TotalAmount:       2300,
		InsuranceCoverage: 1000,
		Payments: []Payment{
			{Amount: 500},
			{Amount: 800},
		},
	}

	if got := inv.PatientShare(); got != 1300 {
		t.Errorf("PatientShare = %v, want 1300", got)
	}
	if got := inv.PaidSum(); got != 1300 {
		t.Errorf("PaidSum = %v, want 1300", got)
	}
}
