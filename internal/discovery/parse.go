package discovery

import (
	"regexp"
	"strconv"
	"strings"

	"amplify/internal/util"
)

// TrendingTopic is one parsed item from a research response.
type TrendingTopic struct {
	Name            string `json:"name"`
	Context         string `json:"context"`
	PopularTake     string `json:"popular_take"`
	ContrarianAngle string `json:"contrarian_angle"`
}

var (
	numberedRe = regexp.MustCompile(`^\d+[.)]\s`)
	leadNumRe  = regexp.MustCompile(`^\d+[.)]\s*`)
	boldRe     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	fieldRe    = regexp.MustCompile(`^.*?:\s*`)
)

// Parse turns a freeform research response into structured topics. It
// tries the structured field format first, then numbered items, then
// falls back to paragraph splitting.
func Parse(text string) []TrendingTopic {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if topics := parseNumberedItems(text); len(topics) > 0 {
		return topics
	}
	return parseParagraphs(text)
}

// splitNumbered breaks text into blocks starting at "1. ", "2) ", etc.
func splitNumbered(text string) []string {
	var blocks []string
	var current []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if numberedRe.MatchString(strings.TrimSpace(line)) && len(current) > 0 {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = current[:0]
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, strings.Join(current, "\n"))
	}
	return blocks
}

func cleanField(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"'*[]`)
}

func parseNumberedItems(text string) []TrendingTopic {
	var topics []TrendingTopic
	for _, block := range splitNumbered(text) {
		block = strings.TrimSpace(block)
		if block == "" || !numberedRe.MatchString(block) {
			continue
		}
		cleaned := leadNumRe.ReplaceAllString(block, "")
		var lines []string
		for _, l := range strings.Split(cleaned, "\n") {
			if strings.TrimSpace(l) != "" {
				lines = append(lines, strings.TrimSpace(l))
			}
		}
		if len(lines) == 0 {
			continue
		}

		name := boldRe.ReplaceAllString(lines[0], "$1")
		name = cleanField(strings.TrimSuffix(strings.TrimSpace(name), ":"))
		// "Topic: X" / "Konu: X" headers carry the name after the colon.
		lowerName := strings.ToLower(name)
		if strings.HasPrefix(lowerName, "topic:") || strings.HasPrefix(lowerName, "konu:") {
			name = cleanField(fieldRe.ReplaceAllString(name, ""))
		}

		var context, popular, contrarian string
		for _, line := range lines[1:] {
			lower := strings.ToLower(line)
			switch {
			case util.ContainsAnyCaseInsensitive(lower, []string{"context", "neden", "trending", "gundem"}):
				context = cleanField(fieldRe.ReplaceAllString(line, ""))
			case util.ContainsAnyCaseInsensitive(lower, []string{"popular", "populer", "dominant", "mainstream"}):
				popular = cleanField(fieldRe.ReplaceAllString(line, ""))
			case util.ContainsAnyCaseInsensitive(lower, []string{"contrarian", "karsi", "opposing", "counter"}):
				contrarian = cleanField(fieldRe.ReplaceAllString(line, ""))
			}
		}
		if context == "" && len(lines) > 1 {
			context = cleanField(strings.TrimLeft(lines[1], "-—: "))
		}

		if len(name) > 2 {
			topics = append(topics, TrendingTopic{
				Name:            truncate(name, 120),
				Context:         truncate(context, 200),
				PopularTake:     truncate(popular, 200),
				ContrarianAngle: truncate(contrarian, 200),
			})
		}
	}
	return topics
}

func parseParagraphs(text string) []TrendingTopic {
	var topics []TrendingTopic
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		first := strings.TrimSpace(strings.SplitN(para, "\n", 2)[0])
		first = leadNumRe.ReplaceAllString(first, "")
		first = boldRe.ReplaceAllString(first, "$1")
		first = cleanField(strings.TrimSuffix(first, ":"))
		if len(first) > 3 {
			topics = append(topics, TrendingTopic{Name: truncate(first, 120)})
		}
		if len(topics) == 5 {
			break
		}
	}
	return topics
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// ProfileData is the parsed form of a profile research response, shaped
// for profile.BuildManual.
type ProfileData struct {
	Username       string
	Followers      int
	Following      int
	TweetCount     int
	Verified       bool
	Bio            string
	Lang           string
	AvgLikes       float64
	AvgRetweets    float64
	AvgReplies     float64
	Tone           string
	UsesLineBreaks bool
	Topics         []string
	SampleTweets   []string
}

var (
	topTweetsRe = regexp.MustCompile(`(?is)Top\s+\d+\s+tweets?.*?:\s*\n(.*)`)
	statsLineRe = regexp.MustCompile(`(?i)likes?\s*:`)
)

// ParseProfileResearch extracts account stats from the fill-in-the-blanks
// response format. Returns nil when neither followers nor topics could be
// recovered.
func ParseProfileResearch(text, username string) *ProfileData {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	d := &ProfileData{
		Username:    strings.TrimPrefix(strings.TrimSpace(username), "@"),
		Followers:   int(extractNumber(text, `Followers?\s*:\s*([^\n]+)`)),
		Following:   int(extractNumber(text, `Following\s*:\s*([^\n]+)`)),
		TweetCount:  int(extractNumber(text, `Tweet\s+count\s*:\s*([^\n]+)`)),
		Bio:         extractText(text, `Bio\s*:\s*([^\n]+)`),
		AvgLikes:    extractNumber(text, `Avg\s+likes?\s*:\s*([^\n]+)`),
		AvgRetweets: extractNumber(text, `Avg\s+retweets?\s*:\s*([^\n]+)`),
		AvgReplies:  extractNumber(text, `Avg\s+replies?\s*:\s*([^\n]+)`),
		Tone:        strings.ToLower(extractText(text, `Tone\s*:\s*([^\n]+)`)),
	}
	d.Verified = strings.HasPrefix(strings.ToLower(extractText(text, `Verified\s*:\s*([^\n]+)`)), "y")
	d.UsesLineBreaks = strings.HasPrefix(strings.ToLower(extractText(text, `Uses?\s+line\s*breaks?\s*:\s*([^\n]+)`)), "y")

	lang := strings.ToLower(strings.TrimSpace(extractText(text, `Language\s*:\s*([^\n]+)`)))
	if strings.Contains(lang, "tr") || strings.Contains(lang, "turk") {
		d.Lang = "tr"
	} else {
		d.Lang = "en"
	}

	for _, t := range strings.Split(extractText(text, `Topics?\s*:\s*([^\n]+)`), ",") {
		if t = strings.TrimSpace(t); t != "" {
			d.Topics = append(d.Topics, t)
		}
	}

	if m := topTweetsRe.FindStringSubmatch(text); m != nil {
		for _, block := range splitNumbered(m[1]) {
			block = strings.TrimSpace(block)
			if !numberedRe.MatchString(block) {
				continue
			}
			lines := strings.Split(leadNumRe.ReplaceAllString(block, ""), "\n")
			tweet := cleanField(lines[0])
			if len(tweet) > 5 && !statsLineRe.MatchString(tweet) {
				d.SampleTweets = append(d.SampleTweets, tweet)
			}
		}
	}

	if d.Followers == 0 && len(d.Topics) == 0 {
		return nil
	}
	return d
}

var suffixRe = regexp.MustCompile(`^([\d.]+)\s*([KkMm])?`)

// extractNumber pulls the first number after a labeled field, honoring
// K/M suffixes ("12.5K followers").
func extractNumber(text, pattern string) float64 {
	re := regexp.MustCompile(`(?i)` + pattern)
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	raw := strings.NewReplacer(",", "", " ", "").Replace(strings.TrimSpace(m[1]))
	sm := suffixRe.FindStringSubmatch(raw)
	if sm == nil {
		return 0
	}
	v, err := strconv.ParseFloat(sm[1], 64)
	if err != nil {
		return 0
	}
	switch strings.ToUpper(sm[2]) {
	case "K":
		v *= 1_000
	case "M":
		v *= 1_000_000
	}
	return v
}

func extractText(text, pattern string) string {
	re := regexp.MustCompile(`(?i)` + pattern)
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
