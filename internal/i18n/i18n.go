package i18n

import (
	"embed"
	"encoding/json"
	"os"
	"strings"
	"sync"

	gi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var (
	mu        sync.RWMutex
	localizer *gi18n.Localizer
	bundle    *gi18n.Bundle
)

func loadBundle() (*gi18n.Bundle, error) {
	b := gi18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if _, err = b.LoadMessageFileFS(localeFS, "locales/"+e.Name()); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Init builds the localizer for locale (falling back to $LANG, then English) and makes it the default for T.
func Init(locale string) (*gi18n.Localizer, error) {
	mu.Lock()
	defer mu.Unlock()

	if bundle == nil {
		b, err := loadBundle()
		if err != nil {
			return nil, err
		}
		bundle = b
	}

	if locale == "" {
		locale = detectLocale()
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	localizer = gi18n.NewLocalizer(bundle, tag.String(), language.English.String())
	return localizer, nil
}

// detectLocale reads LC_ALL or LANG, turning "es_ES.UTF-8" into "es-ES".
func detectLocale() string {
	for _, env := range []string{"LC_ALL", "LANG"} {
		v := os.Getenv(env)
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		v, _, _ = strings.Cut(v, ".")
		return strings.ReplaceAll(v, "_", "-")
	}
	return "en"
}

// T localizes messageID with the default localizer. Unknown ids are returned as-is.
func T(messageID string) string {
	mu.RLock()
	loc := localizer
	mu.RUnlock()
	if loc == nil {
		var err error
		if loc, err = Init(""); err != nil {
			return messageID
		}
	}
	msg, err := loc.Localize(&gi18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		return messageID
	}
	return msg
}
