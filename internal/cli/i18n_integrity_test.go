package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/config"
)

var translationKeys = []string{
	config.TKeyWelcome,
	config.TKeyPrompt,
	config.TKeyHello,
	config.TKeyGoodbye,
	config.TKeyHelp,
	config.TKeyContactAdded,
	config.TKeyContactUpdated,
	config.TKeyContactDeleted,
	config.TKeyPhoneRemoved,
	config.TKeyContactLine,
	config.TKeyContactNoPhones,
	config.TKeyBirthdayAdded,
	config.TKeyBirthdayUpdated,
	config.TKeyBirthdayShow,
	config.TKeyBirthdaysHeading,
	config.TKeyBirthdaysNone,
	config.TKeyBirthdaysLine,
	config.TKeyImportDone,
	config.TKeyExportDone,
	config.TKeyCalendarDone,
	config.TKeyErrName,
	config.TKeyErrPhoneDigits,
	config.TKeyErrPhoneLength,
	config.TKeyErrBirthday,
	config.TKeyErrContactNF,
	config.TKeyErrPhoneNF,
	config.TKeyErrDupPhone,
	config.TKeyErrDupName,
	config.TKeyErrBdayExists,
	config.TKeyErrBdayNotSet,
	config.TKeyErrTooFewArgs,
	config.TKeyErrEmptyBook,
	config.TKeyErrUnknownCmd,
	config.TKeyErrStorage,
	config.TKeyErrInterchange,
	config.TKeyEvtSummaryAge,
	config.TKeyEvtSummaryBirth,
}

var commandNames = []string{
	config.CmdHello, config.CmdHelp, config.CmdAdd, config.CmdChange, config.CmdPhone,
	config.CmdAll, config.CmdAddBirthday, config.CmdChangeBirthday, config.CmdShowBirthday,
	config.CmdBirthdays, config.CmdDelete, config.CmdRemovePhone, config.CmdImport,
	config.CmdExport, config.CmdCalendar, config.CmdExit, config.CmdClose,
}

func loadLocale(t *testing.T, lang string) map[string]any {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(config.LocalesDir, config.LocaleFilePrefix+lang+config.LocaleFileSuffix))
	require.NoErrorf(t, err, "Must load locale %s", lang)

	var jsonMap map[string]any
	require.NoError(t, json.Unmarshal(content, &jsonMap), "JSON must be valid")
	return jsonMap
}

// TestI18nIntegrity ensures that every translation key defined in config.go
// exists in every locale file, and that the locales do not carry orphans.
func TestI18nIntegrity(t *testing.T) {
	definedKeys := make(map[string]bool)
	for _, k := range translationKeys {
		definedKeys[k] = true
	}
	for _, name := range commandNames {
		definedKeys[config.TKeyHelpPrefix+name] = true
	}

	for _, lang := range config.SupportedLanguages {
		jsonMap := loadLocale(t, lang)

		for key := range definedKeys {
			_, exists := jsonMap[key]
			assert.Truef(t, exists, "Key '%s' defined in config.go is missing in active.%s.json", key, lang)
		}

		for jsonKey := range jsonMap {
			if strings.HasPrefix(jsonKey, "_") {
				continue
			}
			assert.Truef(t, definedKeys[jsonKey], "Key '%s' in active.%s.json is not defined in config.go", jsonKey, lang)
		}
	}
}
