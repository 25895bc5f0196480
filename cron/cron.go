package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/clinicore/clinic-backend/db"
	"github.com/clinicore/clinic-backend/models"
	"github.com/clinicore/clinic-backend/utils"
)

// StartCronJobs initializes and starts the cron scheduler for appointment
// reminders and the nightly overdue-invoice sweep.
func StartCronJobs() {
	c := cron.New()

	// Run every minute to check for appointments in the next hour
	_, err := c.AddFunc("* * * * *", sendAppointmentReminders)
	if err != nil {
		log.Fatalf("Failed to add reminder cron job: %v", err)
	}

	// Just after midnight, flip unpaid invoices past their due date
	_, err = c.AddFunc("5 0 * * *", markOverdueInvoices)
	if err != nil {
		log.Fatalf("Failed to add overdue cron job: %v", err)
	}

	c.Start()
	log.Println("Cron job scheduler started")
}

// sendAppointmentReminders checks for appointments and sends reminders
func sendAppointmentReminders() {
	var appointments []models.Appointment
	now := time.Now()
	// Look for appointments starting in the next hour
	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	err := db.DB.Preload("Patient").Preload("Doctor").
		Where("status IN ? AND schedule_time BETWEEN ? AND ?",
			[]models.AppointmentStatus{models.StatusScheduled, models.StatusRescheduled},
			startWindow, endWindow).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		if appointment.Patient.Email == "" {
			continue
		}
		if err := sendReminderEmail(&appointment); err != nil {
			log.Printf("Failed to send reminder for appointment %d: %v", appointment.ID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %d to %s", appointment.ID, appointment.Patient.Email)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(appointment *models.Appointment) error {
	subject := "Reminder: Upcoming Appointment"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your appointment in one hour.</p>
		<ul>
			<li><strong>Doctor:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
		</ul>
		<p>Please arrive on time. If you need to reschedule or cancel, contact us as soon as possible.</p>
		<p>Best regards,</p>
		<p>The Clinic Team</p>
	`, appointment.Patient.Name, appointment.Doctor.Name,
		appointment.ScheduleTime.Format("2006-01-02 15:04"))

	return utils.SendEmail(appointment.Patient.Email, subject, body)
}

// markOverdueInvoices re-derives the stored status of unpaid invoices whose
// due date has passed. Status stays a pure function of the ledger; this job
// only refreshes the stored copy so list queries stay honest overnight.
func markOverdueInvoices() {
	// Cut off at local midnight so the stored status agrees with
	// DeriveInvoiceStatus, which compares local calendar days.
	startOfToday, _ := utils.DayBounds(time.Now())

	result := db.DB.Model(&models.Invoice{}).
		Where("due_amount > 0").
		Where("due_date < ?", startOfToday).
		Where("status IN ?", []models.InvoiceStatus{models.InvoicePending, models.InvoicePartiallyPaid}).
		Update("status", models.InvoiceOverdue)
	if result.Error != nil {
		log.Printf("Error marking overdue invoices: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Marked %d invoices overdue", result.RowsAffected)
	}
}
