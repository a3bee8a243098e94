package cli_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/cli"
	"github.com/tartampluch/go-addressbook/internal/session"
	"github.com/tartampluch/go-addressbook/internal/storage"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func newREPL(t *testing.T, input io.Reader, lang string) (*cli.REPL, *bytes.Buffer, *storage.FileStore) {
	t.Helper()
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "book.cbor"))
	s, err := session.Open(store, MockClock{CurrentTime: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)}, nil)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	return cli.NewREPL(s, cli.NewRenderer(lang), input, out), out, store
}

func TestREPL_Session(t *testing.T) {
	input := strings.Join([]string{
		"hello",
		"",
		"ADD ivan 0501234567",
		"add ivan 0671112233",
		"add olena 12",
		"phone ivan",
		"add-birthday ivan 15.06.1990",
		"add-birthday ivan 15.06.1990",
		"show-birthday ivan",
		"birthdays",
		"all",
		"phone petro",
		"fly away",
		"exit",
		"all",
	}, "\n") + "\n"

	repl, out, store := newREPL(t, strings.NewReader(input), "en")
	require.NoError(t, repl.Run(context.Background()))

	text := out.String()
	for _, want := range []string{
		"Welcome to the assistant bot!",
		"How can I help you?",
		"Too few arguments were given.",
		"Contact added.",
		"Contact updated.",
		"Phone number must consist of 10 digits.",
		"Contact name: Ivan, phones: 0501234567; 0671112233",
		"Birthday added to Ivan's record.",
		"Ivan's birthday is already set.",
		"Ivan's birthday is on 15.06.1990",
		"Upcoming birthdays in your address book:\n - Ivan: 17.06.2024",
		"Given username was not found in the contact list.",
		"Unknown command was given.",
		"Goodbye!",
	} {
		assert.Contains(t, text, want)
	}
	assert.Equal(t, 2, strings.Count(text, "Contact name: Ivan"), "phone and all, nothing after exit")

	saved, err := store.Load()
	require.NoError(t, err)
	ivan, ok := saved.Find("ivan")
	require.True(t, ok)
	assert.Len(t, ivan.Phones(), 2)
}

func TestREPL_EndOfInputSaves(t *testing.T) {
	repl, out, store := newREPL(t, strings.NewReader("add ivan 0501234567"), "en")
	require.NoError(t, repl.Run(context.Background()))

	assert.NotContains(t, out.String(), "Goodbye!")
	saved, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, saved.Len())
}

func TestREPL_CancellationSaves(t *testing.T) {
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()

	repl, _, store := newREPL(t, pr, "en")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, repl.Run(ctx))
	_, err := store.Load()
	require.NoError(t, err)
	assert.FileExists(t, store.Path)
}

func TestREPL_HelpListsEveryCommand(t *testing.T) {
	repl, out, _ := newREPL(t, strings.NewReader("help\nclose\n"), "en")
	require.NoError(t, repl.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "The following commands are available:")
	for _, name := range commandNames {
		assert.Contains(t, text, "* "+name)
	}
	assert.Contains(t, text, "merge contacts from a vCard file or http(s) URL")
}

func TestREPL_Ukrainian(t *testing.T) {
	repl, out, _ := newREPL(t, strings.NewReader("all\nadd ivan 0501234567\nexit\n"), "uk")
	require.NoError(t, repl.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Адресна книга порожня.")
	assert.Contains(t, text, "Контакт додано.")
	assert.Contains(t, text, "До побачення!")
}

func TestRenderer_Error(t *testing.T) {
	r := cli.NewRenderer("en")
	ivan, err := addressbook.NewName("ivan")
	require.NoError(t, err)

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"name", &addressbook.ValidationError{Field: addressbook.FieldName, Reason: addressbook.ReasonNotAlphabetic}, "Name must be alphabetic."},
		{"digits", &addressbook.ValidationError{Field: addressbook.FieldPhone, Reason: addressbook.ReasonNotDigits}, "Phone number must consist of digits."},
		{"date", &addressbook.ValidationError{Field: addressbook.FieldBirthday, Reason: addressbook.ReasonBadDate}, "Invalid date format. Use DD.MM.YYYY"},
		{"contact", &addressbook.NotFoundError{Entity: addressbook.EntityContact, Key: "x"}, "Given username was not found in the contact list."},
		{"phone", &addressbook.NotFoundError{Entity: addressbook.EntityPhone, Key: "1"}, "Phone number not found."},
		{"dup phone", &addressbook.DuplicatePhoneError{Name: ivan, Phone: "0501234567"}, "Given phone number is already in Ivan's record."},
		{"dup name", &addressbook.DuplicateNameError{Name: ivan}, "Ivan is already in the address book."},
		{"not set", &addressbook.BirthdayNotSetError{Name: ivan}, "Ivan does not have a birthday date set."},
		{"empty", &addressbook.EmptyCollectionError{Command: "all"}, "Address book is empty."},
		{"storage", &session.OperationError{Kind: session.ErrStorage, Err: errors.New("disk full")}, "Storage error: disk full"},
		{"interchange", &session.OperationError{Kind: session.ErrInterchange, Err: errors.New("bad card")}, "Import/export error: bad card"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, r.Error(tt.err), tt.want)
		})
	}
}

func TestRenderer_Msg(t *testing.T) {
	r := cli.NewRenderer("uk")
	assert.ElementsMatch(t, []string{"en", "uk"}, r.Languages)
	assert.Equal(t, "missing_key", r.Msg("missing_key", nil))

	assert.Equal(t, "День народження: Ivan (34)", r.EventSummary("Ivan", 34))
	r.SetLanguage("en")
	assert.Equal(t, "Birthday: Ivan (birth)", r.EventSummary("Ivan", 0))

	r.SetLanguage("fr")
	assert.Equal(t, "Goodbye!", r.Msg("msg_goodbye", nil), "unknown languages fall back to English")
}
