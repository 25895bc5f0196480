package controllers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "idx_appointments_doctor_slot"}

	if !isUniqueViolation(dup) {
		t.Error("unique violation not recognized")
	}
	if !isUniqueViolation(fmt.Errorf("create appointment: %w", dup)) {
		t.Error("wrapped unique violation not recognized")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("foreign key violation misclassified as unique violation")
	}
	if isUniqueViolation(errors.New("connection refused")) {
		t.Error("plain error misclassified as unique violation")
	}
	if isUniqueViolation(nil) {
		t.Error("nil misclassified as unique violation")
	}
}
