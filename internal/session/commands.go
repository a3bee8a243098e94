package session

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/engine"
)

// AddContact creates a contact with one phone, or appends the phone when the
// contact already exists. Args: name, phone.
func (s *Session) AddContact(args []string) (Reply, error) {
	if err := addressbook.RequireArgs(config.CmdAdd, args, config.ArgsAdd); err != nil {
		return Reply{}, err
	}
	name, phone := args[0], args[1]

	if r, ok := s.Book.Find(name); ok {
		if err := r.AddPhone(phone); err != nil {
			return Reply{}, err
		}
		return reply(config.TKeyContactUpdated, map[string]any{config.TemplateKeyName: r.Name().Display()}), nil
	}

	// The record only reaches the book once both fields are valid.
	r, err := addressbook.NewRecord(name)
	if err != nil {
		return Reply{}, err
	}
	if err := r.AddPhone(phone); err != nil {
		return Reply{}, err
	}
	if err := s.Book.AddRecord(r); err != nil {
		return Reply{}, err
	}
	return reply(config.TKeyContactAdded, map[string]any{config.TemplateKeyName: r.Name().Display()}), nil
}

// ChangeContact replaces one phone of a contact. Args: name, old phone, new phone.
func (s *Session) ChangeContact(args []string) (Reply, error) {
	if err := addressbook.RequireArgs(config.CmdChange, args, config.ArgsChange); err != nil {
		return Reply{}, err
	}
	r, err := s.find(args[0])
	if err != nil {
		return Reply{}, err
	}
	if err := r.EditPhone(args[1], args[2]); err != nil {
		return Reply{}, err
	}
	return reply(config.TKeyContactUpdated, map[string]any{config.TemplateKeyName: r.Name().Display()}), nil
}

// ShowPhone renders the phones of one contact. Args: name.
func (s *Session) ShowPhone(args []string) (Reply, error) {
	if err := addressbook.RequireArgs(config.CmdPhone, args, config.ArgsPhone); err != nil {
		return Reply{}, err
	}
	r, err := s.find(args[0])
	if err != nil {
		return Reply{}, err
	}
	return contactReply(r), nil
}

// All renders every contact in insertion order.
func (s *Session) All() (Reply, error) {
	if s.Book.IsEmpty() {
		return Reply{}, &addressbook.EmptyCollectionError{Command: config.CmdAll}
	}
	var out Reply
	for _, r := range s.Book.All() {
		out.Items = append(out.Items, contactReply(r))
	}
	return out, nil
}

// AddBirthday sets the birthday of a contact that has none. Args: name, date.
func (s *Session) AddBirthday(args []string) (Reply, error) {
	if err := addressbook.RequireArgs(config.CmdAddBirthday, args, config.ArgsAddBirthday); err != nil {
		return Reply{}, err
	}
	r, err := s.find(args[0])
	if err != nil {
		return Reply{}, err
	}
	if err := r.AddBirthday(args[1]); err != nil {
		return Reply{}, err
	}
	return reply(config.TKeyBirthdayAdded, map[string]any{config.TemplateKeyName: r.Name().Display()}), nil
}

// ChangeBirthday overwrites the birthday of a contact. Args: name, date.
func (s *Session) ChangeBirthday(args []string) (Reply, error) {
	if err := addressbook.RequireArgs(config.CmdChangeBirthday, args, config.ArgsChangeBirthday); err != nil {
		return Reply{}, err
	}
	r, err := s.find(args[0])
	if err != nil {
		return Reply{}, err
	}
	if err := r.ChangeBirthday(args[1]); err != nil {
		return Reply{}, err
	}
	return reply(config.TKeyBirthdayUpdated, map[string]any{config.TemplateKeyName: r.Name().Display()}), nil
}

// ShowBirthday renders the birthday of a contact. Args: name.
func (s *Session) ShowBirthday(args []string) (Reply, error) {
	if err := addressbook.RequireArgs(config.CmdShowBirthday, args, config.ArgsShowBirthday); err != nil {
		return Reply{}, err
	}
	r, err := s.find(args[0])
	if err != nil {
		return Reply{}, err
	}
	b, err := r.ShowBirthday()
	if err != nil {
		return Reply{}, err
	}
	return reply(config.TKeyBirthdayShow, map[string]any{
		config.TemplateKeyName: r.Name().Display(),
		config.TemplateKeyDate: b.String(),
	}), nil
}

// Birthdays renders the contacts to congratulate during the coming week.
func (s *Session) Birthdays() (Reply, error) {
	if s.Book.IsEmpty() {
		return Reply{}, &addressbook.EmptyCollectionError{Command: config.CmdBirthdays}
	}

	upcoming := addressbook.Upcoming(s.Book, s.Clock.Now())
	slog.Debug(config.MsgUpcomingDone,
		config.LogKeyComponent, config.CompSession,
		config.LogKeyCount, len(upcoming),
	)
	if len(upcoming) == 0 {
		return reply(config.TKeyBirthdaysNone, nil), nil
	}

	out := reply(config.TKeyBirthdaysHeading, nil)
	for _, u := range upcoming {
		out.Items = append(out.Items, reply(config.TKeyBirthdaysLine, map[string]any{
			config.TemplateKeyName: u.Name.Display(),
			config.TemplateKeyDate: u.FormattedDate(),
		}))
	}
	return out, nil
}

// Delete removes a contact. Args: name.
func (s *Session) Delete(args []string) (Reply, error) {
	if err := addressbook.RequireArgs(config.CmdDelete, args, config.ArgsDelete); err != nil {
		return Reply{}, err
	}
	r, err := s.find(args[0])
	if err != nil {
		return Reply{}, err
	}
	s.Book.Delete(args[0])
	return reply(config.TKeyContactDeleted, map[string]any{config.TemplateKeyName: r.Name().Display()}), nil
}

// RemovePhone removes one phone from a contact. Args: name, phone.
func (s *Session) RemovePhone(args []string) (Reply, error) {
	if err := addressbook.RequireArgs(config.CmdRemovePhone, args, config.ArgsRemovePhone); err != nil {
		return Reply{}, err
	}
	r, err := s.find(args[0])
	if err != nil {
		return Reply{}, err
	}
	if err := r.RemovePhone(args[1]); err != nil {
		return Reply{}, err
	}
	return reply(config.TKeyPhoneRemoved, map[string]any{config.TemplateKeyName: r.Name().Display()}), nil
}

// Import merges a vCard file or URL into the book. Args: source.
func (s *Session) Import(ctx context.Context, args []string) (Reply, error) {
	if err := addressbook.RequireArgs(config.CmdImport, args, config.ArgsImport); err != nil {
		return Reply{}, err
	}
	source := args[0]

	var creds engine.Credentials
	if engine.IsRemote(source) {
		creds = s.credentials()
	}

	rc, err := engine.OpenSource(ctx, source, creds, s.Fetcher)
	if err != nil {
		return Reply{}, &OperationError{Kind: ErrInterchange, Err: err}
	}
	defer func() { _ = rc.Close() }()

	stats, err := engine.ImportVCards(ctx, rc, s.Book)
	if err != nil {
		return Reply{}, &OperationError{Kind: ErrInterchange, Err: err}
	}
	return reply(config.TKeyImportDone, map[string]any{
		config.TemplateKeyAdded:   stats.Added,
		config.TemplateKeyUpdated: stats.Updated,
		config.TemplateKeySkipped: stats.Skipped,
	}), nil
}

// Export writes every contact to a vCard file. Args: path.
func (s *Session) Export(args []string) (Reply, error) {
	if err := addressbook.RequireArgs(config.CmdExport, args, config.ArgsExport); err != nil {
		return Reply{}, err
	}
	path := args[0]

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, config.FilePermUserRW)
	if err != nil {
		return Reply{}, &OperationError{Kind: ErrInterchange, Err: fmt.Errorf("%s: %w", config.ErrExportWrite, err)}
	}

	count, err := engine.ExportVCards(f, s.Book)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("%s: %w", config.ErrExportWrite, closeErr)
	}
	if err != nil {
		return Reply{}, &OperationError{Kind: ErrInterchange, Err: err}
	}
	return reply(config.TKeyExportDone, map[string]any{
		config.TemplateKeyCount: count,
		config.TemplateKeyPath:  path,
	}), nil
}

// Calendar writes the birthdays as an iCalendar file. Args: path.
func (s *Session) Calendar(ctx context.Context, args []string) (Reply, error) {
	if err := addressbook.RequireArgs(config.CmdCalendar, args, config.ArgsCalendar); err != nil {
		return Reply{}, err
	}
	path := args[0]

	gen := &engine.CalendarGenerator{Clock: s.Clock, FormatSummary: s.FormatSummary}
	data, count, err := gen.Generate(ctx, s.Book)
	if err != nil {
		return Reply{}, &OperationError{Kind: ErrInterchange, Err: err}
	}
	if err := os.WriteFile(path, data, config.FilePermUserRW); err != nil {
		return Reply{}, &OperationError{Kind: ErrInterchange, Err: fmt.Errorf("%s: %w", config.ErrExportWrite, err)}
	}
	return reply(config.TKeyCalendarDone, map[string]any{
		config.TemplateKeyCount: count,
		config.TemplateKeyPath:  path,
	}), nil
}

func (s *Session) find(name string) (*addressbook.Record, error) {
	r, ok := s.Book.Find(name)
	if !ok {
		return nil, &addressbook.NotFoundError{Entity: addressbook.EntityContact, Key: name}
	}
	return r, nil
}

func contactReply(r *addressbook.Record) Reply {
	if len(r.Phones()) == 0 {
		return reply(config.TKeyContactNoPhones, map[string]any{config.TemplateKeyName: r.Name().Display()})
	}
	return reply(config.TKeyContactLine, map[string]any{
		config.TemplateKeyName:   r.Name().Display(),
		config.TemplateKeyPhones: r.PhoneList(),
	})
}
