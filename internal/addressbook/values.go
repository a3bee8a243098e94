package addressbook

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tartampluch/go-addressbook/internal/config"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// validate is shared by all value constructors; it is safe for concurrent use.
var validate = newValidator()

var namePattern = regexp.MustCompile(config.ValidateNamePattern)

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation(config.ValidateNameTag, func(fl validator.FieldLevel) bool {
		return namePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Name is a case-folded, alphabetic contact identifier. NewName(n.String())
// always succeeds and yields n, which storage and vCard round trips rely on.
// The zero value is not a valid Name; use NewName.
type Name struct {
	value string
}

// NewName validates raw and stores its case-folded form.
func NewName(raw string) (Name, error) {
	if err := validate.Var(raw, config.ValidateName); err != nil {
		return Name{}, &ValidationError{Field: FieldName, Reason: ReasonNotAlphabetic, Value: raw}
	}
	return Name{value: Fold(raw)}, nil
}

// String returns the canonical (folded) form used as the Book key.
func (n Name) String() string { return n.value }

// Display returns the name with its first letter upper-cased.
func (n Name) Display() string {
	return cases.Title(language.Und).String(n.value)
}

// Fold returns the canonical lowercase form used to compare names.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// Phone is a string of exactly ten decimal digits.
type Phone struct {
	value string
}

// NewPhone validates raw. Non-digit input and wrong length are reported with
// distinct reasons; the digit check runs first.
func NewPhone(raw string) (Phone, error) {
	if err := validate.Var(raw, config.ValidatePhoneDigits); err != nil {
		return Phone{}, &ValidationError{Field: FieldPhone, Reason: ReasonNotDigits, Value: raw}
	}
	if err := validate.Var(raw, config.ValidatePhoneLength); err != nil {
		return Phone{}, &ValidationError{Field: FieldPhone, Reason: ReasonWrongLength, Value: raw}
	}
	return Phone{value: raw}, nil
}

func (p Phone) String() string { return p.value }

// Birthday keeps the user-entered DD.MM.YYYY text next to the parsed date.
type Birthday struct {
	text string
	date time.Time
}

// NewBirthday parses raw with the exact DD.MM.YYYY layout. Impossible calendar
// dates such as 31.02.2020 are rejected.
func NewBirthday(raw string) (Birthday, error) {
	d, err := time.Parse(config.DateFormatBirthday, raw)
	if err != nil {
		return Birthday{}, &ValidationError{Field: FieldBirthday, Reason: ReasonBadDate, Value: raw}
	}
	return Birthday{text: raw, date: d}, nil
}

// String returns the original DD.MM.YYYY text.
func (b Birthday) String() string { return b.text }

// Date returns the parsed date at midnight UTC.
func (b Birthday) Date() time.Time { return b.date }
