// Package i18n supplies the keyboard's display strings.
package i18n

import (
	"embed"
	"encoding/json"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var locales embed.FS

// Message IDs used by the keyboard chrome.
const (
	Cancel        = "osk_cancel"
	Space         = "osk_space"
	Backspace     = "osk_backspace"
	Shift         = "osk_shift"
	Accept        = "osk_accept"
	EnterText     = "osk_enter_text"
	EnterPassword = "osk_enter_password"
)

var i *I18N

type I18N struct {
	localizer *i18n.Localizer
	bundle    *i18n.Bundle
}

type MessageFile struct {
	Name    string
	Content []byte
}

// New builds a localizer for lang from the bundled translations plus any
// extra message files, which override bundled messages with the same ID.
func New(lang language.Tag, extra ...MessageFile) (*I18N, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := locales.ReadDir("locales")
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		content, err := locales.ReadFile(path.Join("locales", entry.Name()))
		if err != nil {
			return nil, err
		}
		if _, err := bundle.ParseMessageFileBytes(content, entry.Name()); err != nil {
			return nil, err
		}
	}

	for _, messageFile := range extra {
		if _, err := bundle.ParseMessageFileBytes(messageFile.Content, messageFile.Name); err != nil {
			return nil, err
		}
	}

	return &I18N{
		localizer: i18n.NewLocalizer(bundle, lang.String(), language.English.String()),
		bundle:    bundle,
	}, nil
}

// InitI18NFromBytes installs the package level localizer used by GetString.
func InitI18NFromBytes(lang language.Tag, messageFiles []MessageFile) error {
	loc, err := New(lang, messageFiles...)
	if err != nil {
		return err
	}
	i = loc
	return nil
}

// Default returns the package level localizer, creating an English one on first use.
func Default() *I18N {
	if i == nil {
		loc, err := New(language.English)
		if err != nil {
			return &I18N{}
		}
		i = loc
	}
	return i
}

// WithLanguage returns a localizer sharing the same messages for another language.
func (l *I18N) WithLanguage(lang language.Tag) *I18N {
	return &I18N{
		localizer: i18n.NewLocalizer(l.bundle, lang.String(), language.English.String()),
		bundle:    l.bundle,
	}
}

// GetString retrieves a localized string by key.
// If the key is not found, it returns the key itself as fallback.
func (l *I18N) GetString(key string) string {
	if l == nil || l.localizer == nil {
		return key
	}
	msg, err := l.localizer.Localize(&i18n.LocalizeConfig{
		MessageID: key,
	})
	if err != nil {
		return key
	}
	return msg
}

// Message is an alias for i18n.Message to avoid requiring users to import go-i18n directly
type Message = i18n.Message

// Localize retrieves a localized string using the go-i18n struct pattern,
// falling back to the message's Other text.
func (l *I18N) Localize(message *Message, templateData map[string]interface{}) string {
	if message == nil {
		return "I18N Error: nil message"
	}
	if l == nil || l.localizer == nil {
		return message.Other
	}

	config := &i18n.LocalizeConfig{
		DefaultMessage: message,
	}
	if templateData != nil {
		config.TemplateData = templateData
	}

	// A missing translation still renders the default message alongside the error.
	msg, err := l.localizer.Localize(config)
	if err != nil && msg == "" {
		return message.Other
	}
	return msg
}

func GetString(key string) string {
	return Default().GetString(key)
}
