package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clinicore/clinic-backend/db"
	"github.com/clinicore/clinic-backend/models"
	"github.com/clinicore/clinic-backend/utils"
)

type createInvoiceInput struct {
	AppointmentID     uint     `json:"appointment_id"`
	InsuranceCoverage float64  `json:"insurance_coverage"`
	InitialPayment    *float64 `json:"initial_payment"`
	PaymentMethod     string   `json:"method_of_payment"`
	IssuedDate        string   `json:"issued_date"`
	DueDate           string   `json:"due_date"`
}

type recordPaymentInput struct {
	InvoiceID   uint    `json:"invoice_id"`
	PaidAmount  float64 `json:"paid_amount"`
	Method      string  `json:"method_of_payment"`
	PaymentDate string  `json:"payment_date"`
}

// CreateInvoice issues the one invoice a completed appointment may carry.
// The total comes from the consultation record's frozen line prices; the
// insurance split is validated against the patient's file; an optional
// initial payment lands in the same transaction as the invoice itself.
func CreateInvoice(c *fiber.Ctx) error {
	var input createInvoiceInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var appointment models.Appointment
	err := db.DB.Preload("Consultation.Items").Preload("Invoice").First(&appointment, input.AppointmentID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	if appointment.Status != models.StatusCompleted || appointment.Consultation == nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "Only completed appointments with a consultation record can be invoiced",
		})
	}
	if appointment.Invoice != nil {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "DuplicateInvoice",
			Error:   "this appointment already has an invoice",
		})
	}

	patient, ok := loadPatient(c, appointment.PatientID)
	if !ok {
		return nil
	}

	issuedDate, err := utils.ParseDate(input.IssuedDate)
	if err != nil {
		issuedDate = time.Now()
	}
	dueDate, err := utils.ParseDate(input.DueDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "due_date is required",
			Error:   err.Error(),
		})
	}

	total := appointment.Consultation.TotalAmount()

	insurance := input.InsuranceCoverage
	if insurance < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "insurance_coverage cannot be negative",
		})
	}
	// Coverage only applies when the patient actually has an insurer on
	// file; otherwise the whole amount is out-of-pocket.
	if !patient.HasInsurance() {
		insurance = 0
	}
	if insurance > total {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "insurance_coverage cannot exceed the invoice total",
		})
	}

	var initial float64
	if input.InitialPayment != nil {
		initial = *input.InitialPayment
		if initial < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "initial_payment cannot be negative",
			})
		}
		if initial > total-insurance {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
				Message: "initial_payment cannot exceed the patient share",
			})
		}
	}

	invoice := models.Invoice{
		Number:            utils.NewInvoiceNumber(),
		AppointmentID:     appointment.ID,
		PatientID:         appointment.PatientID,
		TotalAmount:       total,
		InsuranceCoverage: insurance,
		IssuedDate:        issuedDate,
		DueDate:           dueDate,
	}
	invoice.Recompute(0, time.Now())

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}
		if initial > 0 {
			payment := models.Payment{
				InvoiceID:     invoice.ID,
				ReceiptNumber: utils.NewReceiptNumber(),
				Amount:        initial,
				Method:        input.PaymentMethod,
				PaymentDate:   issuedDate,
			}
			if err := tx.Create(&payment).Error; err != nil {
				return err
			}
			invoice.Payments = append(invoice.Payments, payment)
			invoice.Recompute(initial, time.Now())
			if err := tx.Model(&invoice).Updates(map[string]interface{}{
				"due_amount": invoice.DueAmount,
				"status":     invoice.Status,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// Two concurrent submissions both pass the pre-transaction check;
		// the loser hits the unique index on appointment_id.
		if isUniqueViolation(err) {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: "DuplicateInvoice",
				Error:   "this appointment already has an invoice",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create invoice",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// RecordPayment appends a payment to an invoice and recomputes its balance
// in one transaction. Overpayment and payments against a settled invoice
// are rejected outright.
func RecordPayment(c *fiber.Ctx) error {
	var input recordPaymentInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if input.PaidAmount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "paid_amount must be greater than zero",
		})
	}

	paymentDate, err := utils.ParseDate(input.PaymentDate)
	if err != nil {
		paymentDate = time.Now()
	}

	var payment models.Payment
	var notFound bool
	var rejection *utils.ErrorResponse
	var rejectionStatus int

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&invoice, input.InvoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				notFound = true
			}
			return err
		}

		var paid float64
		if err := tx.Model(&models.Payment{}).
			Where("invoice_id = ?", invoice.ID).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&paid).Error; err != nil {
			return err
		}

		due := invoice.TotalAmount - invoice.InsuranceCoverage - paid
		if due <= 0 {
			rejection = &utils.ErrorResponse{
				Message: "InvoiceClosed",
				Error:   "this invoice is fully paid",
			}
			rejectionStatus = fiber.StatusConflict
			return fmt.Errorf("invoice closed")
		}
		if input.PaidAmount > due {
			rejection = &utils.ErrorResponse{
				Message: "Overpayment",
				Error:   fmt.Sprintf("paid_amount %.2f exceeds due amount %.2f", input.PaidAmount, due),
			}
			rejectionStatus = fiber.StatusUnprocessableEntity
			return fmt.Errorf("overpayment")
		}

		payment = models.Payment{
			InvoiceID:     invoice.ID,
			ReceiptNumber: utils.NewReceiptNumber(),
			Amount:        input.PaidAmount,
			Method:        input.Method,
			PaymentDate:   paymentDate,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		invoice.Recompute(paid+input.PaidAmount, time.Now())
		return tx.Model(&invoice).Updates(map[string]interface{}{
			"due_amount": invoice.DueAmount,
			"status":     invoice.Status,
		}).Error
	})
	if err != nil {
		if notFound {
			return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
				Message: "Invoice not found",
			})
		}
		if rejection != nil {
			return c.Status(rejectionStatus).JSON(rejection)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to record payment",
			Error:   err.Error(),
		})
	}

	sendReceiptEmail(input.InvoiceID, &payment)

	return c.Status(fiber.StatusCreated).JSON(payment)
}

// GetInvoice returns one invoice with its payment history.
func GetInvoice(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}

	var invoice models.Invoice
	err := db.DB.Preload("Payments").Preload("Patient").First(&invoice, id).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Invoice not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(invoice)
}

// ListPatientInvoices returns all invoices for one patient, newest first.
func ListPatientInvoices(c *fiber.Ctx) error {
	patientID, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	if _, ok := loadPatient(c, patientID); !ok {
		return nil
	}

	var invoices []models.Invoice
	err := db.DB.Preload("Payments").
		Where("patient_id = ?", patientID).
		Order("issued_date desc").
		Find(&invoices).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch invoices",
			Error:   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"invoices": invoices, "count": len(invoices)})
}

func sendReceiptEmail(invoiceID uint, payment *models.Payment) {
	var invoice models.Invoice
	if err := db.DB.Preload("Patient").First(&invoice, invoiceID).Error; err != nil {
		return
	}
	if invoice.Patient.Email == "" {
		return
	}

	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We received your payment.</p>
		<ul>
			<li><strong>Receipt:</strong> %s</li>
			<li><strong>Amount:</strong> %.2f</li>
			<li><strong>Invoice:</strong> %s</li>
			<li><strong>Outstanding balance:</strong> %.2f</li>
		</ul>
		<p>Best regards,</p>
		<p>The Clinic Team</p>
	`, invoice.Patient.Name, payment.ReceiptNumber, payment.Amount, invoice.Number, invoice.DueAmount)

	utils.SendEmailAsync(invoice.Patient.Email, "Payment received - "+invoice.Number, body)
}
