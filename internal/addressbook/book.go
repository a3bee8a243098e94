package addressbook

import (
	"errors"
	"iter"
	"slices"
	"strings"
)

var errNilRecord = errors.New("record must not be nil")

// Book is the keyed collection of Records. Keys are folded names; iteration
// follows insertion order. The underlying map is never exposed.
type Book struct {
	records map[string]*Record
	order   []string
}

// New returns an empty Book.
func New() *Book {
	return &Book{records: make(map[string]*Record)}
}

// AddRecord inserts r keyed by its folded name.
func (b *Book) AddRecord(r *Record) error {
	if r == nil {
		return errNilRecord
	}
	key := r.Name().String()
	if _, exists := b.records[key]; exists {
		return &DuplicateNameError{Name: r.Name()}
	}
	b.records[key] = r
	b.order = append(b.order, key)
	return nil
}

// Find returns the Record for rawName. A miss is not an error.
func (b *Book) Find(rawName string) (*Record, bool) {
	r, ok := b.records[Fold(rawName)]
	return r, ok
}

// Delete removes the Record for rawName and reports whether one was present.
func (b *Book) Delete(rawName string) bool {
	key := Fold(rawName)
	if _, ok := b.records[key]; !ok {
		return false
	}
	delete(b.records, key)
	b.order = slices.DeleteFunc(b.order, func(k string) bool { return k == key })
	return true
}

// All yields (folded name, Record) pairs in insertion order.
func (b *Book) All() iter.Seq2[string, *Record] {
	return func(yield func(string, *Record) bool) {
		for _, key := range b.order {
			if !yield(key, b.records[key]) {
				return
			}
		}
	}
}

// Len returns the number of Records.
func (b *Book) Len() int { return len(b.order) }

// IsEmpty reports whether the Book holds no Records.
func (b *Book) IsEmpty() bool { return b.Len() == 0 }

func (b *Book) String() string {
	lines := make([]string, 0, b.Len())
	for _, r := range b.All() {
		lines = append(lines, r.String())
	}
	return strings.Join(lines, "\n")
}
