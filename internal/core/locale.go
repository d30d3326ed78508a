package core

import "strings"

// languageNames maps supported locale codes to English language names,
// used when prompts need to name the target language.
var languageNames = map[string]string{
	"en": "English",
	"de": "German",
	"fr": "French",
	"es": "Spanish",
	"it": "Italian",
	"pt": "Portuguese",
	"nl": "Dutch",
	"tr": "Turkish",
	"pl": "Polish",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese",
}

// LanguageLabel returns the English name of a locale's language, or the
// locale code itself when unknown.
func LanguageLabel(locale string) string {
	if name, ok := languageNames[strings.ToLower(locale)]; ok {
		return name
	}
	return locale
}
