package addressbook_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
)

type upcomingLine struct {
	Name string
	Date string
}

func upcoming(t *testing.T, reference time.Time, birthdays map[string]string, order ...string) []upcomingLine {
	t.Helper()
	b := addressbook.New()
	for _, name := range order {
		r := newRecord(t, name)
		if raw := birthdays[name]; raw != "" {
			require.NoError(t, r.AddBirthday(raw))
		}
		require.NoError(t, b.AddRecord(r))
	}

	var out []upcomingLine
	for _, u := range addressbook.Upcoming(b, reference) {
		out = append(out, upcomingLine{u.Name.String(), u.FormattedDate()})
	}
	return out
}

// TestUpcoming verifies the seven-day window, the weekend roll-forward and the
// year wrap. 2024-06-10 is a Monday.
func TestUpcoming(t *testing.T) {
	monday := time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		reference time.Time
		birthday  string
		want      string // empty means excluded
	}{
		{"Saturday rolls to Monday", monday, "15.06.2020", "17.06.2024"},
		{"Sunday rolls to Monday", monday, "16.06.1985", "17.06.2024"},
		{"Weekday kept", monday, "12.06.2001", "12.06.2024"},
		{"Today included", monday, "10.06.1990", "10.06.2024"},
		{"Exactly seven days ahead", monday, "17.06.1990", "17.06.2024"},
		{"Eight days ahead excluded", monday, "18.06.1990", ""},
		{"Passed two days ago excluded", monday, "08.06.2019", ""},
		{"Passed yesterday excluded", monday, "09.06.2019", ""},
		{"Far future excluded", monday, "01.12.1990", ""},
		{"Year wrap", time.Date(2024, 12, 28, 0, 0, 0, 0, time.UTC), "02.01.1990", "02.01.2025"},
		{"Year wrap onto Sunday", time.Date(2024, 12, 28, 0, 0, 0, 0, time.UTC), "29.12.1990", "30.12.2024"},
		{"Leapling in non-leap year", time.Date(2025, 2, 25, 0, 0, 0, 0, time.UTC), "29.02.2000", "03.03.2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := upcoming(t, tt.reference, map[string]string{"Ivan": tt.birthday}, "Ivan")
			if tt.want == "" {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, []upcomingLine{{"ivan", tt.want}}, got)
		})
	}
}

func TestUpcoming_BookOrderAndMissingBirthdays(t *testing.T) {
	monday := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	got := upcoming(t, monday, map[string]string{
		"Zoe":  "14.06.1990",
		"Adam": "11.06.1990",
		"Kim":  "",
	}, "Zoe", "Kim", "Adam")

	assert.Equal(t, []upcomingLine{
		{"zoe", "14.06.2024"},
		{"adam", "11.06.2024"},
	}, got)
}

func TestUpcoming_UsesCalendarDateOfReference(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	// Late evening in a non-UTC zone still counts as 10 June.
	reference := time.Date(2024, 6, 10, 23, 59, 0, 0, loc)
	got := upcoming(t, reference, map[string]string{"Ivan": "10.06.1990"}, "Ivan")
	assert.Equal(t, []upcomingLine{{"ivan", "10.06.2024"}}, got)
}

// TestNextOccurrence mirrors the leap year handling of the contact list sorter.
func TestNextOccurrence(t *testing.T) {
	leapling := time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC)

	next := addressbook.NextOccurrence(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), leapling)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), next, "Feb 29 is kept in a leap year")

	next = addressbook.NextOccurrence(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), leapling)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), next)
}
