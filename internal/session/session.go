// Package session holds the state of one interactive run: the address book, the
// store it is persisted to and the collaborators the commands need. Every command
// is a method returning either a Reply for the presentation layer or an error.
package session

import (
	"errors"
	"log/slog"

	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/engine"
	"github.com/tartampluch/go-addressbook/internal/storage"
	"github.com/zalando/go-keyring"
)

// Failure kinds for errors that do not come from the address book itself.
var (
	ErrStorage     = errors.New("storage failure")
	ErrInterchange = errors.New("interchange failure")
)

// OperationError wraps an infrastructure error with its kind. Error() keeps the
// underlying message so it can be shown as is.
type OperationError struct {
	Kind error
	Err  error
}

func (e *OperationError) Error() string { return e.Err.Error() }

func (e *OperationError) Unwrap() []error { return []error{e.Kind, e.Err} }

// Reply is the structured result of a successful command. Key is a translation
// key rendered with Data; Items are rendered one per line after it.
type Reply struct {
	Key   string
	Data  map[string]any
	Items []Reply
}

// Session owns the address book for the lifetime of the program.
type Session struct {
	Book    *addressbook.Book
	Store   storage.Store
	Clock   addressbook.Clock
	Fetcher engine.VCardFetcher

	// ImportUser is the HTTP user for remote imports. The password is read
	// from the OS keyring under config.KeyringService.
	ImportUser string

	// FormatSummary localizes calendar event titles.
	FormatSummary func(name string, age int) string
}

// New creates a session around an already loaded book.
func New(book *addressbook.Book, store storage.Store, clock addressbook.Clock, fetcher engine.VCardFetcher) *Session {
	if book == nil {
		book = addressbook.New()
	}
	return &Session{
		Book:    book,
		Store:   store,
		Clock:   clock,
		Fetcher: fetcher,
	}
}

// Open loads the book from store and creates a session around it.
func Open(store storage.Store, clock addressbook.Clock, fetcher engine.VCardFetcher) (*Session, error) {
	book, err := store.Load()
	if err != nil {
		return nil, &OperationError{Kind: ErrStorage, Err: err}
	}
	return New(book, store, clock, fetcher), nil
}

// Save persists the whole book.
func (s *Session) Save() error {
	if s.Store == nil {
		return nil
	}
	if err := s.Store.Save(s.Book); err != nil {
		return &OperationError{Kind: ErrStorage, Err: err}
	}
	return nil
}

// credentials builds the basic auth pair for remote imports. A missing keyring
// entry is not an error; the request then goes out with the user only.
func (s *Session) credentials() engine.Credentials {
	creds := engine.Credentials{User: s.ImportUser}
	if s.ImportUser == "" {
		return creds
	}

	pass, err := keyring.Get(config.KeyringService, s.ImportUser)
	if err != nil {
		slog.Debug(config.MsgPassFail,
			config.LogKeyComponent, config.CompSession,
			config.LogKeyUser, s.ImportUser,
			config.LogKeyError, err,
		)
		return creds
	}
	creds.Pass = pass
	return creds
}

func reply(key string, data map[string]any) Reply {
	return Reply{Key: key, Data: data}
}
