package addressbook

import (
	"errors"
	"fmt"
)

// Error kinds. Every typed error below unwraps to exactly one of these, so callers
// can branch with errors.Is and extract data with errors.As.
var (
	ErrValidation     = errors.New("validation failed")
	ErrNotFound       = errors.New("not found")
	ErrDuplicate      = errors.New("already exists")
	ErrBirthdayNotSet = errors.New("birthday not set")
	ErrArgumentCount  = errors.New("too few arguments")
	ErrEmptyBook      = errors.New("address book is empty")
)

// Field identifies the value object a ValidationError refers to.
type Field string

const (
	FieldName     Field = "name"
	FieldPhone    Field = "phone"
	FieldBirthday Field = "birthday"
)

// Reason is the machine-readable cause of a ValidationError.
type Reason string

const (
	ReasonNotAlphabetic Reason = "not_alphabetic"
	ReasonNotDigits     Reason = "not_digits"
	ReasonWrongLength   Reason = "wrong_length"
	ReasonBadDate       Reason = "bad_date"
)

// ValidationError reports malformed Name, Phone or Birthday input.
type ValidationError struct {
	Field  Field
	Reason Reason
	Value  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Entity identifies what a NotFoundError was looking for.
type Entity string

const (
	EntityContact Entity = "contact"
	EntityPhone   Entity = "phone"
)

// NotFoundError reports a contact or phone that had to exist but does not.
type NotFoundError struct {
	Entity Entity
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// DuplicatePhoneError is returned when a Record already holds the phone.
type DuplicatePhoneError struct {
	Name  Name
	Phone string
}

func (e *DuplicatePhoneError) Error() string {
	return fmt.Sprintf("phone %s is already in %s's record", e.Phone, e.Name.Display())
}

func (e *DuplicatePhoneError) Unwrap() error { return ErrDuplicate }

// DuplicateNameError is returned when the Book already holds a Record with the same name.
type DuplicateNameError struct {
	Name Name
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("name %s is already in address book", e.Name.Display())
}

func (e *DuplicateNameError) Unwrap() error { return ErrDuplicate }

// BirthdayAlreadyExistsError is returned by AddBirthday when a birthday is set.
type BirthdayAlreadyExistsError struct {
	Name Name
}

func (e *BirthdayAlreadyExistsError) Error() string {
	return fmt.Sprintf("%s's birthday is already set", e.Name.Display())
}

func (e *BirthdayAlreadyExistsError) Unwrap() error { return ErrDuplicate }

// BirthdayNotSetError is returned when a birthday is read from a Record without one.
type BirthdayNotSetError struct {
	Name Name
}

func (e *BirthdayNotSetError) Error() string {
	return fmt.Sprintf("%s does not have a birthday date set", e.Name.Display())
}

func (e *BirthdayNotSetError) Unwrap() error { return ErrBirthdayNotSet }

// ArgumentCountError is returned when an operation receives fewer positional
// arguments than it requires.
type ArgumentCountError struct {
	Command string
	Want    int
	Got     int
}

func (e *ArgumentCountError) Error() string {
	return fmt.Sprintf("%s: want at least %d arguments, got %d", e.Command, e.Want, e.Got)
}

func (e *ArgumentCountError) Unwrap() error { return ErrArgumentCount }

// EmptyCollectionError is returned by listing operations on a Book without records.
type EmptyCollectionError struct {
	Command string
}

func (e *EmptyCollectionError) Error() string {
	return fmt.Sprintf("%s: address book is empty", e.Command)
}

func (e *EmptyCollectionError) Unwrap() error { return ErrEmptyBook }

// RequireArgs returns an ArgumentCountError when args holds fewer than want items.
func RequireArgs(command string, args []string, want int) error {
	if len(args) < want {
		return &ArgumentCountError{Command: command, Want: want, Got: len(args)}
	}
	return nil
}
