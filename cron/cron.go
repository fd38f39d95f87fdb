package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sahtee/clinic-booking/db"
	"github.com/sahtee/clinic-booking/models"
	"github.com/sahtee/clinic-booking/utils"
)

// StartCronJobs initializes and starts the cron scheduler for
// appointment reminders and the nightly no-show sweep.
func StartCronJobs() {
	fmt.Println("Starting cron job scheduler...")
	c := cron.New(cron.WithLocation(utils.ClinicLocation()))

	// Run every minute to check for appointments in the next hour
	_, err := c.AddFunc("* * * * *", sendAppointmentReminders)
	if err != nil {
		log.Fatalf("Failed to add reminder cron job: %v", err)
	}

	// Nightly sweep: confirmed appointments whose date has passed
	// without completion are marked as no-shows.
	_, err = c.AddFunc("30 0 * * *", sweepNoShows)
	if err != nil {
		log.Fatalf("Failed to add no-show cron job: %v", err)
	}

	c.Start()
	log.Println("Cron job scheduler started")
}

// reminderWindow is a date-scoped clock range for the reminder query.
type reminderWindow struct {
	date string
	from string
	to   string
}

// reminderWindows covers [now+55m, now+65m] as date-scoped clock
// ranges, split in two when the hour ahead crosses midnight so that
// appointments starting shortly after 00:00 still get reminders.
func reminderWindows(now time.Time) []reminderWindow {
	start := now.Add(55 * time.Minute)
	end := now.Add(65 * time.Minute)

	if start.Format("2006-01-02") == end.Format("2006-01-02") {
		return []reminderWindow{
			{start.Format("2006-01-02"), start.Format("15:04"), end.Format("15:04")},
		}
	}
	return []reminderWindow{
		{start.Format("2006-01-02"), start.Format("15:04"), "23:59"},
		{end.Format("2006-01-02"), "00:00", end.Format("15:04")},
	}
}

// sendAppointmentReminders checks for appointments and sends reminders
func sendAppointmentReminders() {
	var appointments []models.Appointment
	for _, w := range reminderWindows(utils.ClinicNow()) {
		var batch []models.Appointment
		err := db.DB.Preload("User").Preload("Child").Preload("ProviderProfile.User").
			Where("status = ? AND appointment_date = ? AND start_time BETWEEN ? AND ?",
				models.StatusConfirmed, w.date, w.from, w.to).
			Find(&batch).Error
		if err != nil {
			log.Printf("Error fetching appointments for reminders: %v", err)
			return
		}
		appointments = append(appointments, batch...)
	}

	for _, appointment := range appointments {
		if err := sendReminderEmail(&appointment); err != nil {
			log.Printf("Failed to send reminder for appointment %s: %v", appointment.Reference, err)
			continue
		}
		log.Printf("Sent reminder for appointment %s to %s", appointment.Reference, appointment.User.Email)
	}
}

// sweepNoShows marks confirmed appointments from past dates as no_show.
// Pending appointments from past dates are cancelled instead, since the
// provider never confirmed them.
func sweepNoShows() {
	today := utils.ClinicNow().Format("2006-01-02")

	var stale []models.Appointment
	err := db.DB.
		Where("appointment_date < ? AND status IN ?", today,
			[]models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
		Find(&stale).Error
	if err != nil {
		log.Printf("Error fetching stale appointments: %v", err)
		return
	}

	for _, appointment := range stale {
		target := models.StatusNoShow
		if appointment.Status == models.StatusPending {
			target = models.StatusCancelled
		}
		if err := appointment.UpdateStatus(db.DB, target); err != nil {
			log.Printf("Failed to sweep appointment %s: %v", appointment.Reference, err)
			continue
		}
	}

	if len(stale) > 0 {
		log.Printf("Swept %d stale appointments", len(stale))
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(appointment *models.Appointment) error {
	patient := appointment.User.Name
	if appointment.Child != nil {
		patient = appointment.Child.Name
	}

	subject := "Reminder: Upcoming Appointment"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming appointment scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Patient:</strong> %s</li>
			<li><strong>Provider:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s - %s</li>
			<li><strong>Reference:</strong> %s</li>
		</ul>
		<p>Please arrive on time. If you need to cancel, do so as soon as possible.</p>
		<p>Best regards,</p>
		<p>Your Clinic Team</p>
	`, appointment.User.Name, patient, appointment.ProviderProfile.User.Name,
		appointment.AppointmentDate.Format("2006-01-02"),
		appointment.StartTime, appointment.EndTime,
		appointment.Reference)

	return utils.SendEmail(appointment.User.Email, subject, body)
}
