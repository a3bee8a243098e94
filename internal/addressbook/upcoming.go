package addressbook

import (
	"time"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// UpcomingBirthday is one line of the birthdays report.
type UpcomingBirthday struct {
	Name Name
	// Date is the congratulation date, already moved off weekends.
	Date time.Time
}

// FormattedDate renders Date as DD.MM.YYYY.
func (u UpcomingBirthday) FormattedDate() string {
	return u.Date.Format(config.DateFormatBirthday)
}

// Upcoming returns the contacts whose birthday falls within the next seven days
// of reference (inclusive), in Book order. An occurrence earlier than reference
// is moved to the following year before the window check, so birthdays that
// passed a few days ago are not reported.
func Upcoming(b *Book, reference time.Time) []UpcomingBirthday {
	today := dateOf(reference)
	var result []UpcomingBirthday

	for _, r := range b.All() {
		bday, ok := r.Birthday()
		if !ok {
			continue
		}

		occurrence := NextOccurrence(today, bday.Date())
		if occurrence.Sub(today) > config.UpcomingWindow {
			continue
		}

		result = append(result, UpcomingBirthday{
			Name: r.Name(),
			Date: skipWeekend(occurrence),
		})
	}
	return result
}

// NextOccurrence returns the birthday's date in today's year, or in the next
// year when that date is strictly before today. Go's time.Date normalizes
// 29 February to 1 March in non-leap years.
func NextOccurrence(today, birthDate time.Time) time.Time {
	today = dateOf(today)
	candidate := time.Date(today.Year(), birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, time.UTC)
	if candidate.Before(today) {
		candidate = time.Date(today.Year()+1, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, time.UTC)
	}
	return candidate
}

// skipWeekend moves Saturday and Sunday to the following Monday.
func skipWeekend(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, config.SaturdayShiftDays)
	case time.Sunday:
		return d.AddDate(0, 0, config.SundayShiftDays)
	default:
		return d
	}
}

// dateOf drops the clock part of t, keeping its calendar date in UTC so that
// day arithmetic is free of DST shifts.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
