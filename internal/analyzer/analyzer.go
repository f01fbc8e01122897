package analyzer

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxChars is the single-post character budget.
const MaxChars = 280

// Features holds the structural measurements extracted from one post.
// Immutable once produced; every downstream score is a pure function of it.
type Features struct {
	CharCount       int
	CharUtilization float64 // percent of the 280-char budget
	LineCount       int
	HasHook         bool
	HasQuestion     bool
	QuestionCount   int
	HashtagCount    int
	MentionCount    int
	HasURL          bool
	URLCount        int
	HasCTA          bool
	CTACount        int
	HasNumbers      bool
	HasListFormat   bool
	PowerWordCount  int
	PowerWords      []string
	EmojiCount      int
	HasMedia        bool // caller-supplied context, not derived from text
	Lang            string
}

var (
	urlRe     = regexp.MustCompile(`https?://\S+`)
	hashtagRe = regexp.MustCompile(`#\w+`)
	mentionRe = regexp.MustCompile(`@\w+`)
	digitRe   = regexp.MustCompile(`[0-9]`)
	emojiRe   = regexp.MustCompile(`[\x{1F300}-\x{1F9FF}\x{2600}-\x{27BF}\x{FE00}-\x{FE0F}]`)
	listRe    = regexp.MustCompile(`^\s*(?:[-*•‣→]|\d+[.)])\s+`)
)

// powerWords trigger emotional resonance and curiosity. Matched whole-word,
// case-insensitive.
var powerWords = []string{
	"secret", "proven", "ultimate", "essential", "powerful", "exclusive",
	"amazing", "incredible", "shocking", "surprising", "brutal", "honest",
	"mistake", "mistakes", "warning", "stop", "never", "always", "nobody",
	"everyone", "instantly", "guaranteed", "free", "truth", "underrated",
	"overrated", "wrong", "dead", "broken", "insane", "massive",
}

var powerWordRe = regexp.MustCompile(`(?i)\b(` + strings.Join(powerWords, "|") + `)\b`)

// ctaPhrases are call-to-action markers. Too many of them reads as pushy and
// drives the not-interested signal up.
var ctaPhrases = []string{
	"retweet", "rt if", "like if", "follow me", "follow for", "share this",
	"tag a", "tag someone", "drop a", "comment below", "reply with",
	"dm me", "check out", "click the", "sign up", "subscribe", "link in bio",
	"read more", "thread below",
}

var hookPrefixes = []string{
	"how ", "why ", "what ", "stop ", "imagine ", "unpopular opinion",
	"hot take", "nobody talks about", "here's ", "heres ", "the real reason",
}

// Analyze extracts structural features from text. hasMedia is supplied by the
// caller since media attachment is not visible in the text itself.
func Analyze(text string, hasMedia bool) Features {
	f := Features{HasMedia: hasMedia}
	trimmed := strings.TrimSpace(text)

	f.CharCount = utf8.RuneCountInString(trimmed)
	f.CharUtilization = float64(f.CharCount) / MaxChars * 100
	if f.CharUtilization > 100 {
		f.CharUtilization = 100
	}

	lines := nonEmptyLines(trimmed)
	f.LineCount = len(lines)

	f.QuestionCount = strings.Count(trimmed, "?")
	f.HasQuestion = f.QuestionCount > 0

	f.HashtagCount = len(hashtagRe.FindAllString(trimmed, -1))
	f.MentionCount = len(mentionRe.FindAllString(trimmed, -1))

	f.URLCount = len(urlRe.FindAllString(trimmed, -1))
	f.HasURL = f.URLCount > 0

	f.HasNumbers = digitRe.MatchString(stripURLs(trimmed))
	f.EmojiCount = len(emojiRe.FindAllString(trimmed, -1))

	lower := strings.ToLower(trimmed)
	for _, p := range ctaPhrases {
		f.CTACount += strings.Count(lower, p)
	}
	f.HasCTA = f.CTACount > 0

	for _, m := range powerWordRe.FindAllString(trimmed, -1) {
		f.PowerWords = append(f.PowerWords, strings.ToLower(m))
	}
	f.PowerWordCount = len(f.PowerWords)

	listLines := 0
	for _, l := range lines {
		if listRe.MatchString(l) {
			listLines++
		}
	}
	f.HasListFormat = listLines >= 2

	if len(lines) > 0 {
		f.HasHook = isHook(lines[0])
	}

	f.Lang = DetectLanguage(trimmed)
	return f
}

// isHook judges whether the opening line is likely to stop the scroll:
// a question, a number lead, a power word, or a known hook phrase.
func isHook(first string) bool {
	first = strings.TrimSpace(first)
	if first == "" {
		return false
	}
	if strings.HasSuffix(first, "?") || strings.HasSuffix(first, ":") {
		return true
	}
	if first[0] >= '0' && first[0] <= '9' {
		return true
	}
	if powerWordRe.MatchString(first) {
		return true
	}
	lower := strings.ToLower(first)
	for _, p := range hookPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

func nonEmptyLines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

func stripURLs(s string) string {
	return urlRe.ReplaceAllString(s, "")
}
