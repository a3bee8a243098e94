package cli

import (
	"errors"

	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/session"
)

// validationKeys maps a validation failure to its message.
var validationKeys = map[addressbook.Reason]string{
	addressbook.ReasonNotAlphabetic: config.TKeyErrName,
	addressbook.ReasonNotDigits:     config.TKeyErrPhoneDigits,
	addressbook.ReasonWrongLength:   config.TKeyErrPhoneLength,
	addressbook.ReasonBadDate:       config.TKeyErrBirthday,
}

// Error renders err for the user. Domain errors get a dedicated message;
// anything else is reported as a storage or interchange failure.
func (r *Renderer) Error(err error) string {
	var (
		validation *addressbook.ValidationError
		notFound   *addressbook.NotFoundError
		dupPhone   *addressbook.DuplicatePhoneError
		dupName    *addressbook.DuplicateNameError
		bdayExists *addressbook.BirthdayAlreadyExistsError
		bdayNotSet *addressbook.BirthdayNotSetError
	)

	switch {
	case errors.As(err, &validation):
		if key, ok := validationKeys[validation.Reason]; ok {
			return r.Msg(key, nil)
		}
		return r.Msg(config.TKeyErrName, nil)
	case errors.As(err, &notFound):
		if notFound.Entity == addressbook.EntityPhone {
			return r.Msg(config.TKeyErrPhoneNF, nil)
		}
		return r.Msg(config.TKeyErrContactNF, nil)
	case errors.As(err, &dupPhone):
		return r.Msg(config.TKeyErrDupPhone, nameData(dupPhone.Name))
	case errors.As(err, &dupName):
		return r.Msg(config.TKeyErrDupName, nameData(dupName.Name))
	case errors.As(err, &bdayExists):
		return r.Msg(config.TKeyErrBdayExists, nameData(bdayExists.Name))
	case errors.As(err, &bdayNotSet):
		return r.Msg(config.TKeyErrBdayNotSet, nameData(bdayNotSet.Name))
	case errors.Is(err, addressbook.ErrArgumentCount):
		return r.Msg(config.TKeyErrTooFewArgs, nil)
	case errors.Is(err, addressbook.ErrEmptyBook):
		return r.Msg(config.TKeyErrEmptyBook, nil)
	case errors.Is(err, session.ErrStorage):
		return r.Msg(config.TKeyErrStorage, map[string]any{config.TemplateKeyError: err.Error()})
	default:
		return r.Msg(config.TKeyErrInterchange, map[string]any{config.TemplateKeyError: err.Error()})
	}
}

func nameData(n addressbook.Name) map[string]any {
	return map[string]any{config.TemplateKeyName: n.Display()}
}
