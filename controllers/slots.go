package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sahtee/clinic-booking/db"
	"github.com/sahtee/clinic-booking/models"
	"github.com/sahtee/clinic-booking/redis"
	"github.com/sahtee/clinic-booking/scheduling"
	"github.com/sahtee/clinic-booking/utils"
)

// resolveProviderSlots fetches the three availability sources for a
// provider and date (weekly template, date overrides, booked windows)
// and runs the resolver over them. The result is advisory: the unique
// index on appointments is what finally arbitrates concurrent bookings.
func resolveProviderSlots(profile *models.ProviderProfile, date time.Time) ([]scheduling.Interval, error) {
	dateStr := date.Format("2006-01-02")
	dayOfWeek := int(date.Weekday())

	var schedules []models.ProviderSchedule
	if err := db.DB.
		Where("provider_profile_id = ? AND day_of_week = ? AND is_active = ?", profile.ID, dayOfWeek, true).
		Order("start_time").
		Find(&schedules).Error; err != nil {
		return nil, fmt.Errorf("fetch schedule: %w", err)
	}

	var overrides []models.ProviderAvailability
	if err := db.DB.
		Where("provider_profile_id = ? AND date = ?", profile.ID, dateStr).
		Find(&overrides).Error; err != nil {
		return nil, fmt.Errorf("fetch availability overrides: %w", err)
	}

	var booked []models.Appointment
	if err := db.DB.
		Where("provider_profile_id = ? AND appointment_date = ? AND status <> ?", profile.ID, dateStr, models.StatusCancelled).
		Find(&booked).Error; err != nil {
		return nil, fmt.Errorf("fetch appointments: %w", err)
	}

	in := scheduling.DayInput{DefaultSlotDuration: profile.SlotDuration}

	for _, s := range schedules {
		iv, err := scheduling.NewInterval(s.StartTime, s.EndTime)
		if err != nil {
			continue // malformed rows never block the rest of the day
		}
		in.Template = append(in.Template, scheduling.Window{Interval: iv, SlotDuration: s.SlotDuration})
	}

	for _, o := range overrides {
		if o.WholeDay() {
			in.Excluded = append(in.Excluded, scheduling.Exclusion{WholeDay: true})
			continue
		}
		iv, err := scheduling.NewInterval(o.StartTime, o.EndTime)
		if err != nil {
			continue
		}
		if o.IsAvailable {
			in.Added = append(in.Added, scheduling.Window{Interval: iv})
		} else {
			in.Excluded = append(in.Excluded, scheduling.Exclusion{Interval: iv})
		}
	}

	for _, a := range booked {
		iv, err := scheduling.NewInterval(a.StartTime, a.EndTime)
		if err != nil {
			continue
		}
		in.Booked = append(in.Booked, iv)
	}

	return scheduling.ResolveSlots(date, utils.ClinicNow(), in), nil
}

// availableDatesForMonth lists the dates in a month with at least one
// open slot. Results are cached in redis for a few minutes and
// invalidated whenever schedules, overrides or bookings change.
func availableDatesForMonth(profile *models.ProviderProfile, year, month int) ([]string, error) {
	if cached := redis.GetAvailableDates(profile.ID, year, month); cached != nil {
		return cached, nil
	}

	loc := utils.ClinicLocation()
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)

	dates := []string{}
	for d := first; d.Month() == time.Month(month); d = d.AddDate(0, 0, 1) {
		slots, err := resolveProviderSlots(profile, d)
		if err != nil {
			return nil, err
		}
		if len(slots) > 0 {
			dates = append(dates, d.Format("2006-01-02"))
		}
	}

	redis.SetAvailableDates(profile.ID, year, month, dates)
	return dates, nil
}

// parseYearMonth validates month-listing query parameters. The year is
// bounded relative to the clinic clock: one year back for history,
// five years forward.
func parseYearMonth(yearStr, monthStr string) (int, int, error) {
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year %q", yearStr)
	}
	current := utils.ClinicNow().Year()
	if year < current-1 || year > current+5 {
		return 0, 0, fmt.Errorf("year must be between %d and %d", current-1, current+5)
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month must be between 1 and 12")
	}
	return year, month, nil
}

// slotResponse renders resolver output for the API.
type slotResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func toSlotResponses(slots []scheduling.Interval) []slotResponse {
	out := make([]slotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, slotResponse{StartTime: s.StartClock(), EndTime: s.EndClock()})
	}
	return out
}
