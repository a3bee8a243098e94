package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/google/uuid"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/config"
)

const uuidURNPrefix = "urn:uuid:"

// ImportStats summarises one vCard import.
type ImportStats struct {
	Processed int
	Added     int
	Updated   int
	Skipped   int
}

// ImportVCards merges every card of r into book. Unknown contacts are added when
// they carry a valid name and at least one valid phone; known contacts receive
// their missing phones and, if unset, the birthday. Cards without a usable name
// or phone are logged and skipped. The whole stream is decoded before the book
// is touched, so a syntax error leaves the book unchanged.
func ImportVCards(ctx context.Context, r io.Reader, book *addressbook.Book) (ImportStats, error) {
	start := time.Now()
	log := slog.With(config.LogKeyComponent, config.CompEngine)
	decoder := vcard.NewDecoder(r)
	var cards []vcard.Card

	for {
		if err := ctx.Err(); err != nil {
			return ImportStats{}, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return ImportStats{}, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
		}
		cards = append(cards, card)
	}

	stats := ImportStats{Processed: len(cards)}
	for _, card := range cards {
		switch mergeCard(card, book) {
		case outcomeAdded:
			stats.Added++
		case outcomeUpdated:
			stats.Updated++
		case outcomeSkipped:
			stats.Skipped++
		}
	}

	log.Info(config.MsgImportDone,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.Processed),
			slog.Int(config.LogKeyAdded, stats.Added),
			slog.Int(config.LogKeyUpdated, stats.Updated),
			slog.Int(config.LogKeySkipped, stats.Skipped),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return stats, nil
}

type mergeOutcome int

const (
	outcomeUnchanged mergeOutcome = iota
	outcomeAdded
	outcomeUpdated
	outcomeSkipped
)

func mergeCard(card vcard.Card, book *addressbook.Book) mergeOutcome {
	name, ok := cardName(card)
	if !ok {
		slog.Warn(config.MsgSkippedName,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyValue, card.PreferredValue(vcard.FieldFormattedName))
		return outcomeSkipped
	}

	phones := cardPhones(card)
	birthday, hasBirthday := cardBirthday(card)

	if existing, found := book.Find(name); found {
		changed := false
		for _, p := range phones {
			if existing.AddPhone(p) == nil {
				changed = true
			}
		}
		if hasBirthday {
			if _, set := existing.Birthday(); !set && existing.AddBirthday(birthday) == nil {
				changed = true
			}
		}
		if changed {
			return outcomeUpdated
		}
		return outcomeUnchanged
	}

	if len(phones) == 0 {
		slog.Warn(config.MsgSkippedPhone,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyName, name)
		return outcomeSkipped
	}

	record, err := newRecordFromCard(card, name)
	if err != nil {
		return outcomeSkipped
	}
	for _, p := range phones {
		// Duplicates inside one card are silently collapsed.
		_ = record.AddPhone(p)
	}
	if hasBirthday {
		_ = record.AddBirthday(birthday)
	}
	if err := book.AddRecord(record); err != nil {
		return outcomeSkipped
	}
	return outcomeAdded
}

// newRecordFromCard keeps the card UID as the record id when it is a UUID.
func newRecordFromCard(card vcard.Card, name string) (*addressbook.Record, error) {
	uid := strings.TrimPrefix(card.Value(vcard.FieldUID), uuidURNPrefix)
	if _, err := uuid.Parse(uid); err == nil {
		return addressbook.RestoreRecord(uid, name)
	}
	return addressbook.NewRecord(name)
}

// cardName picks the first candidate that is a valid Name:
// FN (Formatted) > N given name > N family name.
func cardName(card vcard.Card) (string, bool) {
	candidates := []string{card.PreferredValue(vcard.FieldFormattedName)}
	if n := card.Name(); n != nil {
		candidates = append(candidates, n.GivenName, n.FamilyName)
	}
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if _, err := addressbook.NewName(c); err == nil {
			return c, true
		}
	}
	return "", false
}

// cardPhones reduces every TEL value to its digits ("+38 (050) 123-45-67" and
// "tel:050-123-4567" both work) and keeps the ones forming a valid Phone.
func cardPhones(card vcard.Card) []string {
	var phones []string
	for _, raw := range card.Values(vcard.FieldTelephone) {
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, raw)
		if _, err := addressbook.NewPhone(digits); err != nil {
			slog.Debug(config.MsgSkippedPhone,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyValue, raw)
			continue
		}
		phones = append(phones, digits)
	}
	return phones
}

// cardBirthday converts BDAY to the DD.MM.YYYY form. Truncated dates without a
// year cannot be represented and are ignored.
func cardBirthday(card vcard.Card) (string, bool) {
	value := card.Value(vcard.FieldBirthday)
	if value == "" {
		return "", false
	}
	d, err := parseDate(value)
	if err != nil {
		slog.Debug(config.MsgSkippedDate,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyValue, value)
		return "", false
	}
	return d.Format(config.DateFormatBirthday), true
}

// parseDate handles the vCard date formats that carry a year.
func parseDate(value string) (time.Time, error) {
	layouts := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
		config.DateFormatBirthday,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New(config.ErrDateParse)
}

// ExportVCards writes one vCard 4.0 per record in book order and returns the
// number of cards written.
func ExportVCards(w io.Writer, book *addressbook.Book) (int, error) {
	enc := vcard.NewEncoder(w)
	count := 0

	for _, r := range book.All() {
		card := make(vcard.Card)
		card.SetValue(vcard.FieldVersion, config.VCardVersion)
		card.SetValue(vcard.FieldUID, uuidURNPrefix+r.ID())
		card.SetValue(vcard.FieldFormattedName, r.Name().Display())
		for _, p := range r.Phones() {
			card.AddValue(vcard.FieldTelephone, p.String())
		}
		if b, ok := r.Birthday(); ok {
			card.SetValue(vcard.FieldBirthday, b.Date().Format(config.DateFormatFullDash))
		}

		if err := enc.Encode(card); err != nil {
			return count, fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
		count++
	}

	slog.Info(config.MsgExportDone,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyCount, count)
	return count, nil
}
