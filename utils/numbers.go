package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewInvoiceNumber generates a short unique invoice number.
func NewInvoiceNumber() string {
	return "INV-" + shortID()
}

// NewReceiptNumber generates a short unique payment receipt number.
func NewReceiptNumber() string {
	return "RCT-" + shortID()
}

func shortID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}
