package translation

import (
	"sort"

	"lingolog.app/backend/internal/language"
)

// deepLTargetCodes maps normalized language display names to DeepL target
// codes. DeepL is the only provider whose API takes codes instead of names.
var deepLTargetCodes = map[string]string{
	"bulgarian":            "BG",
	"chinese (simplified)": "ZH",
	"czech":                "CS",
	"danish":               "DA",
	"dutch":                "NL",
	"english":              "EN",
	"estonian":             "ET",
	"finnish":              "FI",
	"french":               "FR",
	"german":               "DE",
	"greek":                "EL",
	"hungarian":            "HU",
	"indonesian":           "ID",
	"italian":              "IT",
	"japanese":             "JA",
	"korean":               "KO",
	"latvian":              "LV",
	"lithuanian":           "LT",
	"norwegian":            "NB",
	"polish":               "PL",
	"portuguese":           "PT",
	"romanian":             "RO",
	"russian":              "RU",
	"slovak":               "SK",
	"slovenian":            "SL",
	"spanish":              "ES",
	"swedish":              "SV",
	"turkish":              "TR",
	"ukrainian":            "UK",
}

// promptLanguageNames lists the languages the instruction-prompt providers
// (GPT, Gemini) accept. A superset of the DeepL set.
var promptLanguageNames = []string{
	"Arabic",
	"Bulgarian",
	"Chinese (Simplified)",
	"Czech",
	"Danish",
	"Dutch",
	"English",
	"Estonian",
	"Finnish",
	"French",
	"German",
	"Greek",
	"Hindi",
	"Hungarian",
	"Indonesian",
	"Italian",
	"Japanese",
	"Korean",
	"Latvian",
	"Lithuanian",
	"Norwegian",
	"Polish",
	"Portuguese",
	"Romanian",
	"Russian",
	"Slovak",
	"Slovenian",
	"Spanish",
	"Swedish",
	"Thai",
	"Turkish",
	"Ukrainian",
	"Vietnamese",
}

// DeepLSupportedLanguages returns the DeepL display names, sorted.
func DeepLSupportedLanguages() []string {
	names := make([]string, 0, len(deepLTargetCodes))
	for name := range deepLTargetCodes {
		names = append(names, language.DisplayName(name))
	}
	sort.Strings(names)
	return names
}

// PromptSupportedLanguages returns the display names accepted by the
// prompt-based providers, sorted.
func PromptSupportedLanguages() []string {
	names := make([]string, len(promptLanguageNames))
	copy(names, promptLanguageNames)
	sort.Strings(names)
	return names
}

func deepLTargetCode(displayName string) (string, bool) {
	code, ok := deepLTargetCodes[language.NormalizeName(displayName)]
	return code, ok
}

func supportsLanguage(provider Provider, displayName string) bool {
	want := language.NormalizeName(displayName)
	if want == "" {
		return false
	}
	for _, name := range provider.SupportedLanguages() {
		if language.NormalizeName(name) == want {
			return true
		}
	}
	return false
}
