package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestBundledLanguages(t *testing.T) {
	tests := []struct {
		lang language.Tag
		key  string
		want string
	}{
		{language.English, Cancel, "Cancel"},
		{language.German, Accept, "Bestätigen"},
		{language.French, Space, "Espace"},
		{language.Spanish, EnterPassword, "[Introducir contraseña]"},
		{language.Japanese, Shift, "シフト"},
		{language.Korean, Backspace, "Backspace"},
		{language.MustParse("de-CH"), Cancel, "Abbrechen"},
	}

	for _, tt := range tests {
		t.Run(tt.lang.String()+"/"+tt.key, func(t *testing.T) {
			loc, err := New(tt.lang)
			require.NoError(t, err)
			assert.Equal(t, tt.want, loc.GetString(tt.key))
		})
	}
}

func TestUnknownKeyFallsBackToKey(t *testing.T) {
	loc, err := New(language.English)
	require.NoError(t, err)
	assert.Equal(t, "osk_missing", loc.GetString("osk_missing"))

	var none *I18N
	assert.Equal(t, Cancel, none.GetString(Cancel))
}

func TestExtraMessagesOverride(t *testing.T) {
	loc, err := New(language.English, MessageFile{Name: "en.toml", Content: []byte(`osk_accept = "Done"`)})
	require.NoError(t, err)
	assert.Equal(t, "Done", loc.GetString(Accept))
	assert.Equal(t, "Cancel", loc.GetString(Cancel))

	assert.Equal(t, "Annuler", loc.WithLanguage(language.French).GetString(Cancel))
}

func TestLocalize(t *testing.T) {
	require.NoError(t, InitI18NFromBytes(language.German, nil))
	assert.Equal(t, "Umschalt", GetString(Shift))

	msg := &Message{ID: "osk_chars_left", Other: "{{.Count}} left"}
	assert.Equal(t, "3 left", Default().Localize(msg, map[string]interface{}{"Count": 3}))
}
