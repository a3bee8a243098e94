// Package storage persists the address book between sessions as a single CBOR
// document. The file is replaced atomically on every save.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// Store is the load/save contract used by the session.
type Store interface {
	Load() (*addressbook.Book, error)
	Save(book *addressbook.Book) error
}

// document is the on-disk layout. Field keys are short integers to keep the
// blob compact and stable across renames.
type document struct {
	Version int           `cbor:"1,keyasint"`
	Records []recordEntry `cbor:"2,keyasint"`
}

type recordEntry struct {
	ID       string   `cbor:"1,keyasint"`
	Name     string   `cbor:"2,keyasint"`
	Phones   []string `cbor:"3,keyasint,omitempty"`
	Birthday string   `cbor:"4,keyasint,omitempty"`
}

// FileStore keeps the book in one file on the local disk.
type FileStore struct {
	Path string
}

// NewFileStore creates a FileStore for path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the book. A missing file yields an empty book, not an error.
func (s *FileStore) Load() (*addressbook.Book, error) {
	log := slog.With(config.LogKeyComponent, config.CompStorage, config.LogKeyPath, s.Path)

	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info(config.MsgStoreMissing)
		return addressbook.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreRead, err)
	}

	book, err := Decode(data)
	if err != nil {
		return nil, err
	}

	log.Info(config.MsgStoreLoaded, config.LogKeyCount, book.Len())
	return book, nil
}

// Save writes the book to a temporary file in the same directory and renames
// it over the previous store, so a crash never leaves a truncated file behind.
func (s *FileStore) Save(book *addressbook.Book) error {
	data, err := Encode(book)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }() // No-op after a successful rename.

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	if err := tmp.Chmod(config.FilePermUserRW); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}

	slog.Info(config.MsgStoreSaved,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyPath, s.Path,
		config.LogKeyCount, book.Len(),
		config.LogKeyBytes, len(data),
	)
	return nil
}

// Encode serializes every record of book in iteration order.
func Encode(book *addressbook.Book) ([]byte, error) {
	doc := document{Version: config.StoreFormatVersion}
	for _, r := range book.All() {
		entry := recordEntry{ID: r.ID(), Name: r.Name().String()}
		for _, p := range r.Phones() {
			entry.Phones = append(entry.Phones, p.String())
		}
		if b, ok := r.Birthday(); ok {
			entry.Birthday = b.String()
		}
		doc.Records = append(doc.Records, entry)
	}

	data, err := cbor.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreEncode, err)
	}
	return data, nil
}

// Decode rebuilds a book from Encode output. Every value goes through the
// regular constructors, so a tampered file cannot break the book invariants.
func Decode(data []byte) (*addressbook.Book, error) {
	var doc document
	if err := cbor.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreDecode, err)
	}
	if doc.Version != config.StoreFormatVersion {
		return nil, fmt.Errorf("%s: %d", config.ErrStoreVersion, doc.Version)
	}

	book := addressbook.New()
	for i, entry := range doc.Records {
		r, err := restore(entry)
		if err == nil {
			err = book.AddRecord(r)
		}
		if err != nil {
			return nil, fmt.Errorf("%s #%d: %w", config.ErrStoreRecord, i, err)
		}
	}
	return book, nil
}

func restore(entry recordEntry) (*addressbook.Record, error) {
	r, err := addressbook.RestoreRecord(entry.ID, entry.Name)
	if err != nil {
		return nil, err
	}
	for _, p := range entry.Phones {
		if err := r.AddPhone(p); err != nil {
			return nil, err
		}
	}
	if entry.Birthday != "" {
		if err := r.AddBirthday(entry.Birthday); err != nil {
			return nil, err
		}
	}
	return r, nil
}
