package analyzer

import "strings"

var turkishRunes = "ğĞışİöÖüÜçÇ"

var turkishStopwords = map[string]bool{
	"bir": true, "bu": true, "ve": true, "de": true, "da": true,
	"ile": true, "için": true, "ama": true, "ne": true, "ben": true,
	"sen": true, "biz": true, "var": true, "yok": true, "çok": true,
	"daha": true, "her": true, "gibi": true, "kadar": true, "sonra": true,
	"önce": true, "olarak": true, "mi": true, "mu": true, "değil": true,
}

var englishStopwords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "are": true,
	"was": true, "be": true, "have": true, "has": true, "do": true,
	"will": true, "would": true, "you": true, "your": true, "it": true,
	"this": true, "that": true, "and": true, "or": true, "of": true,
	"to": true, "in": true, "on": true, "for": true, "with": true,
	"not": true, "but": true, "what": true, "why": true, "how": true,
}

// DetectLanguage classifies text as "en" or "tr". Turkish-specific letters
// decide immediately; otherwise a stopword vote breaks the tie, defaulting
// to English.
func DetectLanguage(text string) string {
	if strings.ContainsAny(text, turkishRunes) {
		return "tr"
	}
	tr, en := 0, 0
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,!?;:\"'()[]")
		if turkishStopwords[w] {
			tr++
		}
		if englishStopwords[w] {
			en++
		}
	}
	if tr > en && tr >= 2 {
		return "tr"
	}
	return "en"
}
