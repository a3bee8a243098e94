package addressbook_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/config"
)

func TestNewName(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		display string
	}{
		{"Ivan", "ivan", "Ivan"},
		{"IVAN", "ivan", "Ivan"},
		{"olena", "olena", "Olena"},
		{"Олена", "олена", "Олена"},
		{"İlker", "i\u0307lker", "I\u0307lker"},
		{"ΐ", "\u03b9\u0308\u0301", "\u0399\u0308\u0301"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			n, err := addressbook.NewName(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.String())
			assert.Equal(t, tt.display, n.Display())

			// Stored keys and displayed names are parsed back on load and import.
			again, err := addressbook.NewName(n.String())
			require.NoError(t, err)
			assert.Equal(t, n, again)
			again, err = addressbook.NewName(n.Display())
			require.NoError(t, err)
			assert.Equal(t, n, again)
		})
	}

	assert.Equal(t, mustName(t, "ANNA"), mustName(t, "anna"), "names compare on their folded value")
}

func mustName(t *testing.T, raw string) addressbook.Name {
	t.Helper()
	n, err := addressbook.NewName(raw)
	require.NoError(t, err)
	return n
}

func TestNewName_RejectsNonAlphabetic(t *testing.T) {
	for _, raw := range []string{"", "Ivan1", "Ivan Petrov", "O'Neil", "ivan!", "42", " ", "\u0301ivan"} {
		t.Run(raw, func(t *testing.T) {
			_, err := addressbook.NewName(raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, addressbook.ErrValidation)

			var verr *addressbook.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, addressbook.FieldName, verr.Field)
			assert.Equal(t, addressbook.ReasonNotAlphabetic, verr.Reason)
		})
	}
}

func TestNewPhone(t *testing.T) {
	tests := []struct {
		raw    string
		reason addressbook.Reason
	}{
		{"0501234567", ""},
		{"9999999999", ""},
		{"050123456", addressbook.ReasonWrongLength},
		{"05012345678", addressbook.ReasonWrongLength},
		{"050-123-4567", addressbook.ReasonNotDigits},
		{"+380501234", addressbook.ReasonNotDigits},
		{"abcdefghij", addressbook.ReasonNotDigits},
		{"", addressbook.ReasonNotDigits},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			p, err := addressbook.NewPhone(tt.raw)
			if tt.reason == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.raw, p.String())
				other, _ := addressbook.NewPhone(tt.raw)
				assert.Equal(t, p, other)
				return
			}
			var verr *addressbook.ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, addressbook.FieldPhone, verr.Field)
			assert.Equal(t, tt.reason, verr.Reason)
		})
	}
}

func TestNewBirthday_RoundTrip(t *testing.T) {
	for _, raw := range []string{"15.06.2020", "01.01.1990", "29.02.2000", "31.12.1999"} {
		t.Run(raw, func(t *testing.T) {
			b, err := addressbook.NewBirthday(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, b.String())
			assert.Equal(t, raw, b.Date().Format(config.DateFormatBirthday))
		})
	}
}

func TestNewBirthday_Invalid(t *testing.T) {
	for _, raw := range []string{"31.02.2020", "29.02.2019", "2020-06-15", "1.6.2020", "15/06/2020", "15.13.2020", "", "15.06.2020 "} {
		t.Run(raw, func(t *testing.T) {
			_, err := addressbook.NewBirthday(raw)
			var verr *addressbook.ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError for %q", raw)
			assert.Equal(t, addressbook.FieldBirthday, verr.Field)
			assert.Equal(t, addressbook.ReasonBadDate, verr.Reason)
		})
	}
}
