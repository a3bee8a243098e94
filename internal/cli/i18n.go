package cli

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-addressbook/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Renderer turns translation keys and template data into user-facing text.
type Renderer struct {
	bundle    *i18n.Bundle
	localizer *i18n.Localizer

	// Languages lists the locale files found in the binary.
	Languages []string
}

// NewRenderer loads the embedded locales and selects lang.
func NewRenderer(lang string) *Renderer {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc(config.LocaleUnmarshalKey, json.Unmarshal)
	r := &Renderer{bundle: bundle}

	entries, err := localeFS.ReadDir(config.LocalesDir)
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		r.SetLanguage(lang)
		return r
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, config.LocaleFilePrefix) || !strings.HasSuffix(name, config.LocaleFileSuffix) {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, config.LocaleFilePrefix), config.LocaleFileSuffix)
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, config.LocalesDir+"/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		r.Languages = append(r.Languages, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}

	r.SetLanguage(lang)
	return r
}

// SetLanguage switches the active language. Unknown languages fall back to English.
func (r *Renderer) SetLanguage(lang string) {
	if lang == "" {
		lang = config.DefaultLanguage
	}
	r.localizer = i18n.NewLocalizer(r.bundle, lang)
}

// Msg translates key with data. A missing key is returned as is.
func (r *Renderer) Msg(key string, data map[string]any) string {
	msg, err := r.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		// go-i18n still returns the default language text when only the
		// requested language lacks the key.
		if msg == "" {
			return key
		}
	}
	return msg
}

// EventSummary is the localized title of a calendar event. Age 0 is the year of birth.
func (r *Renderer) EventSummary(name string, age int) string {
	if age == 0 {
		return r.Msg(config.TKeyEvtSummaryBirth, map[string]any{config.TemplateKeyName: name})
	}
	return r.Msg(config.TKeyEvtSummaryAge, map[string]any{
		config.TemplateKeyName: name,
		config.TemplateKeyAge:  age,
	})
}
