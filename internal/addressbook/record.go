package addressbook

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// Record aggregates one contact: a fixed Name, an ordered list of unique phones
// and an optional birthday. Every mutating method validates its input before
// touching state, so a failed call leaves the Record unchanged.
type Record struct {
	id       string
	name     Name
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates an empty Record with a fresh identifier.
func NewRecord(rawName string) (*Record, error) {
	return RestoreRecord(uuid.NewString(), rawName)
}

// RestoreRecord recreates a Record with a known identifier (storage, vCard UID).
func RestoreRecord(id, rawName string) (*Record, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("record id %q: %w", id, err)
	}
	name, err := NewName(rawName)
	if err != nil {
		return nil, err
	}
	return &Record{id: parsed.String(), name: name}, nil
}

// ID returns the stable identifier of the contact.
func (r *Record) ID() string { return r.id }

// Name returns the contact name.
func (r *Record) Name() Name { return r.name }

// Phones returns a copy of the phone list in insertion order.
func (r *Record) Phones() []Phone { return slices.Clone(r.phones) }

// Birthday returns the birthday and whether one is set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// AddPhone appends a new phone.
func (r *Record) AddPhone(raw string) error {
	p, err := NewPhone(raw)
	if err != nil {
		return err
	}
	if r.indexOf(raw) >= 0 {
		return &DuplicatePhoneError{Name: r.name, Phone: raw}
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone deletes an existing phone.
func (r *Record) RemovePhone(raw string) error {
	i := r.indexOf(raw)
	if i < 0 {
		return &NotFoundError{Entity: EntityPhone, Key: raw}
	}
	r.phones = slices.Delete(r.phones, i, i+1)
	return nil
}

// EditPhone replaces oldRaw with newRaw. The replacement goes to the end of the list.
func (r *Record) EditPhone(oldRaw, newRaw string) error {
	i := r.indexOf(oldRaw)
	if i < 0 {
		return &NotFoundError{Entity: EntityPhone, Key: oldRaw}
	}
	p, err := NewPhone(newRaw)
	if err != nil {
		return err
	}
	if j := r.indexOf(newRaw); j >= 0 && j != i {
		return &DuplicatePhoneError{Name: r.name, Phone: newRaw}
	}
	r.phones = append(slices.Delete(r.phones, i, i+1), p)
	return nil
}

// FindPhone looks up a phone by exact value.
func (r *Record) FindPhone(raw string) (Phone, bool) {
	if i := r.indexOf(raw); i >= 0 {
		return r.phones[i], true
	}
	return Phone{}, false
}

func (r *Record) indexOf(raw string) int {
	return slices.IndexFunc(r.phones, func(p Phone) bool { return p.value == raw })
}

// AddBirthday sets the birthday once. Use ChangeBirthday to overwrite.
func (r *Record) AddBirthday(raw string) error {
	if r.birthday != nil {
		return &BirthdayAlreadyExistsError{Name: r.name}
	}
	return r.ChangeBirthday(raw)
}

// ChangeBirthday replaces the birthday unconditionally.
func (r *Record) ChangeBirthday(raw string) error {
	b, err := NewBirthday(raw)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// ShowBirthday returns the birthday or a BirthdayNotSetError.
func (r *Record) ShowBirthday() (Birthday, error) {
	b, ok := r.Birthday()
	if !ok {
		return Birthday{}, &BirthdayNotSetError{Name: r.name}
	}
	return b, nil
}

// PhoneList joins the phone digits for display.
func (r *Record) PhoneList() string {
	values := make([]string, len(r.phones))
	for i, p := range r.phones {
		values[i] = p.value
	}
	return strings.Join(values, config.PhoneListSeparator)
}

func (r *Record) String() string {
	if len(r.phones) == 0 {
		return fmt.Sprintf("There are no phones in %s's record", r.name.Display())
	}
	return fmt.Sprintf("Contact name: %s, phones: %s", r.name.Display(), r.PhoneList())
}
