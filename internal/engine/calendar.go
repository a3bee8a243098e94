package engine

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// CalendarGenerator renders the birthdays of an address book as iCalendar.
type CalendarGenerator struct {
	Clock addressbook.Clock

	// FormatSummary allows the CLI to inject localized strings into the logic layer.
	// Age 0 is the year of birth.
	FormatSummary func(name string, age int) string
}

// Generate returns the ICS document and the number of events it contains.
// Each contact with a birthday gets one all-day event for the previous, the
// current and the next year, skipping years before the contact was born.
func (g *CalendarGenerator) Generate(ctx context.Context, book *addressbook.Book) ([]byte, int, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// Birthdays are local calendar dates; only DTSTAMP is an absolute UTC instant.
	now := g.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for _, r := range book.All() {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		bday, ok := r.Birthday()
		if !ok {
			continue
		}
		for _, e := range g.createEvents(r, bday.Date(), now) {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	count := len(cal.Children)
	if count == 0 {
		// A valid but empty VCALENDAR keeps calendar clients from flagging the file.
		return []byte(config.StubVCalendar), 0, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Info(config.MsgCalendarDone,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyCount, count,
	)
	return buf.Bytes(), count, nil
}

func (g *CalendarGenerator) createEvents(r *addressbook.Record, birthDate, now time.Time) []*ical.Event {
	currentYear := now.Year()
	name := r.Name().Display()
	var events []*ical.Event

	for _, y := range []int{currentYear - 1, currentYear, currentYear + 1} {
		if y < birthDate.Year() {
			continue
		}
		age := y - birthDate.Year()

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, r.ID(), y, config.ICalDomain))
		event.Props.SetText(config.PropSummary, g.summary(name, age))

		// time.Date moves 29 February to 1 March in non-leap years.
		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(time.Date(y, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, now.Location()))
		event.Props.Set(dtStartProp)

		events = append(events, event)
	}
	return events
}

func (g *CalendarGenerator) summary(name string, age int) string {
	if g.FormatSummary != nil {
		if s := g.FormatSummary(name, age); s != "" {
			return s
		}
	}
	if age == 0 {
		return fmt.Sprintf(config.FallbackSummaryBirth, name)
	}
	return fmt.Sprintf(config.FallbackSummaryAge, name, age)
}
