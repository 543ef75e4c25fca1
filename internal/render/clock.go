package render

import (
	"strings"
	"time"
)

// clockLayouts maps a locale to its hour:minute layout
var clockLayouts = map[string]string{
	"en": "3:04 PM",
	"ru": "15:04",
	"de": "15:04",
	"fr": "15:04",
	"es": "15:04",
	"pt": "15:04",
	"ja": "15:04",
}

// ClockLayout returns the hour:minute layout for locale. Region suffixes
// ("ru-RU", "en_US") are ignored; unknown locales use 24-hour time.
func ClockLayout(locale string) string {
	lang := strings.ToLower(locale)
	if i := strings.IndexAny(lang, "-_"); i >= 0 {
		lang = lang[:i]
	}
	if layout, ok := clockLayouts[lang]; ok {
		return layout
	}
	return "15:04"
}

// FormatClock renders a message timestamp as localized hour:minute
func FormatClock(t time.Time, locale string) string {
	return t.Local().Format(ClockLayout(locale))
}
