// Package profile builds a writing-style and engagement fingerprint for an
// X account from its recent tweets.
package profile

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"amplify/internal/analyzer"
	"amplify/internal/model"
	"amplify/internal/store"
	"amplify/internal/util"
	"amplify/internal/xclient"
)

// StyleFingerprint captures how an account typically writes.
type StyleFingerprint struct {
	AvgTweetLength    float64 `json:"avg_tweet_length"`
	AvgLineCount      float64 `json:"avg_line_count"`
	EmojiFrequency    float64 `json:"emoji_frequency"`
	HashtagFrequency  float64 `json:"hashtag_frequency"`
	QuestionFrequency float64 `json:"question_frequency"`
	TypicalTone       string  `json:"typical_tone"`
	UsesLineBreaks    bool    `json:"uses_line_breaks"`
}

// EngagementMetrics are per-tweet averages and follower-relative rates.
type EngagementMetrics struct {
	AvgLikes               float64 `json:"avg_likes"`
	AvgRetweets            float64 `json:"avg_retweets"`
	AvgReplies             float64 `json:"avg_replies"`
	AvgQuotes              float64 `json:"avg_quotes"`
	EngagementRateLikes    float64 `json:"engagement_rate_likes"`
	EngagementRateRetweets float64 `json:"engagement_rate_retweets"`
	EngagementRateTotal    float64 `json:"engagement_rate_total"`
}

// TopTweet is a high-performing tweet with its structural features.
type TopTweet struct {
	Text            string            `json:"text"`
	Likes           int               `json:"likes"`
	Retweets        int               `json:"retweets"`
	Replies         int               `json:"replies"`
	Quotes          int               `json:"quotes"`
	EngagementScore int               `json:"engagement_score"`
	Features        analyzer.Features `json:"structural_features"`
}

// Profile is the complete fingerprint for one account.
type Profile struct {
	Username              string            `json:"username"`
	Followers             int               `json:"followers"`
	Following             int               `json:"following"`
	TweetCount            int               `json:"tweet_count"`
	Verified              bool              `json:"verified"`
	Description           string            `json:"description"`
	Engagement            EngagementMetrics `json:"engagement"`
	Style                 StyleFingerprint  `json:"style"`
	TopTweets             []TopTweet        `json:"top_tweets"`
	Topics                []string          `json:"topics"`
	PostingFrequencyHours float64           `json:"posting_frequency_hours"`
	Lang                  string            `json:"lang"`
	FetchedAt             time.Time         `json:"fetched_at"`
}

// Options tune the fetch and analysis.
type Options struct {
	MaxTweets    int
	TopTweets    int
	CacheTTL     time.Duration
	ForceRefresh bool
}

// Source says where a profile came from. Metrics are labeled with it so
// cache hits, live API fetches, and manual builds stay distinguishable.
type Source string

const (
	SourceCache  Source = "cache"
	SourceAPI    Source = "api"
	SourceManual Source = "manual"
)

// Fetcher fetches, analyzes, and caches profiles.
type Fetcher struct {
	client xclient.XClient
	db     *store.DB
	opts   Options
}

func NewFetcher(client xclient.XClient, db *store.DB, opts Options) *Fetcher {
	if opts.MaxTweets <= 0 {
		opts.MaxTweets = 50
	}
	if opts.TopTweets <= 0 {
		opts.TopTweets = 5
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 24 * time.Hour
	}
	return &Fetcher{client: client, db: db, opts: opts}
}

// Fetch returns the profile for username, cache-first unless ForceRefresh,
// plus the source it was served from.
func (f *Fetcher) Fetch(ctx context.Context, username string) (*Profile, Source, error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" {
		return nil, "", fmt.Errorf("empty username")
	}

	if !f.opts.ForceRefresh && f.db != nil {
		var cached Profile
		ok, err := f.db.GetProfile(ctx, username, f.opts.CacheTTL, &cached)
		if err == nil && ok {
			return &cached, SourceCache, nil
		}
	}

	user, err := f.client.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("fetch user %s: %w", username, err)
	}
	tweets, err := f.client.GetUserTweets(ctx, user.ID, f.opts.MaxTweets)
	if err != nil {
		return nil, "", fmt.Errorf("fetch tweets for %s: %w", username, err)
	}
	if len(tweets) == 0 {
		return nil, "", fmt.Errorf("no tweets returned for %s", username)
	}

	p := Build(user, tweets, f.opts.TopTweets)
	if f.db != nil {
		// Cache write failures do not block the caller.
		_ = f.db.PutProfile(ctx, username, p)
	}
	return p, SourceAPI, nil
}

// Build assembles a profile from already-fetched data.
func Build(user model.User, tweets []model.Tweet, topN int) *Profile {
	lang := dominantLanguage(tweets)
	return &Profile{
		Username:              user.Username,
		Followers:             user.FollowersCount,
		Following:             user.FollowingCount,
		TweetCount:            user.TweetCount,
		Verified:              user.Verified,
		Description:           user.Description,
		Engagement:            analyzeEngagement(tweets, user.FollowersCount),
		Style:                 analyzeStyle(tweets),
		TopTweets:             findTopTweets(tweets, topN),
		Topics:                detectTopics(tweets, lang),
		PostingFrequencyHours: postingFrequency(tweets),
		Lang:                  lang,
		FetchedAt:             time.Now().UTC(),
	}
}

// BuildManual assembles a profile from user-entered stats when no API
// access is available. Sample tweets, if given, drive the style analysis.
func BuildManual(username string, followers int, avgLikes, avgRetweets, avgReplies float64, topics []string, samples []string) *Profile {
	var tweets []model.Tweet
	for _, text := range samples {
		tweets = append(tweets, model.Tweet{
			Text:         text,
			LikeCount:    int(avgLikes),
			RetweetCount: int(avgRetweets),
			ReplyCount:   int(avgReplies),
		})
	}

	style := StyleFingerprint{
		AvgTweetLength: 140, AvgLineCount: 2.0, EmojiFrequency: 0.5,
		HashtagFrequency: 0.3, QuestionFrequency: 0.2,
		TypicalTone: "professional", UsesLineBreaks: true,
	}
	lang := "en"
	if len(tweets) > 0 {
		style = analyzeStyle(tweets)
		lang = dominantLanguage(tweets)
	}

	fdiv := math.Max(float64(followers), 1)
	return &Profile{
		Username:  strings.TrimPrefix(username, "@"),
		Followers: followers,
		Engagement: EngagementMetrics{
			AvgLikes:               round1(avgLikes),
			AvgRetweets:            round1(avgRetweets),
			AvgReplies:             round1(avgReplies),
			EngagementRateLikes:    round2(avgLikes / fdiv * 100),
			EngagementRateRetweets: round2(avgRetweets / fdiv * 100),
			EngagementRateTotal:    round2((avgLikes + avgRetweets + avgReplies) / fdiv * 100),
		},
		Style:     style,
		TopTweets: findTopTweets(tweets, len(tweets)),
		Topics:    topics,
		Lang:      lang,
		FetchedAt: time.Now().UTC(),
	}
}

func dominantLanguage(tweets []model.Tweet) string {
	counts := map[string]int{}
	for _, t := range tweets {
		counts[analyzer.DetectLanguage(t.Text)]++
	}
	best, bestN := "en", 0
	for lang, n := range counts {
		if n > bestN {
			best, bestN = lang, n
		}
	}
	return best
}

var (
	emojiRe   = regexp.MustCompile(`[\x{1F300}-\x{1F9FF}\x{2600}-\x{27BF}\x{FE00}-\x{FE0F}]`)
	hashtagRe = regexp.MustCompile(`#\w+`)
	tagRe     = regexp.MustCompile(`#(\w+)`)
	urlRe     = regexp.MustCompile(`https?://\S+`)
	handleRe  = regexp.MustCompile(`[@#]\w+`)
)

func analyzeStyle(tweets []model.Tweet) StyleFingerprint {
	if len(tweets) == 0 {
		return StyleFingerprint{TypicalTone: "neutral"}
	}
	var lenSum, lineSum, emojiSum, hashtagSum, questionSum int
	for _, t := range tweets {
		lenSum += len([]rune(t.Text))
		lines := 0
		for _, l := range strings.Split(strings.TrimSpace(t.Text), "\n") {
			if strings.TrimSpace(l) != "" {
				lines++
			}
		}
		lineSum += lines
		emojiSum += len(emojiRe.FindAllString(t.Text, -1))
		hashtagSum += len(hashtagRe.FindAllString(t.Text, -1))
		questionSum += strings.Count(t.Text, "?")
	}
	n := float64(len(tweets))
	avgLen := float64(lenSum) / n
	avgEmoji := float64(emojiSum) / n
	avgQuestion := float64(questionSum) / n

	tone := "professional"
	switch {
	case avgEmoji > 1.5:
		tone = "casual"
	case avgQuestion > 0.5 && avgLen > 150:
		tone = "educational"
	case avgLen < 100:
		tone = "punchy"
	}

	avgLines := float64(lineSum) / n
	return StyleFingerprint{
		AvgTweetLength:    round1(avgLen),
		AvgLineCount:      round1(avgLines),
		EmojiFrequency:    round2(avgEmoji),
		HashtagFrequency:  round2(float64(hashtagSum) / n),
		QuestionFrequency: round2(avgQuestion),
		TypicalTone:       tone,
		UsesLineBreaks:    avgLines > 1.5,
	}
}

func analyzeEngagement(tweets []model.Tweet, followers int) EngagementMetrics {
	if len(tweets) == 0 {
		return EngagementMetrics{}
	}
	var likes, rts, replies, quotes, total int
	for _, t := range tweets {
		likes += t.LikeCount
		rts += t.RetweetCount
		replies += t.ReplyCount
		quotes += t.QuoteCount
		total += model.TotalEngagement(t)
	}
	n := float64(len(tweets))
	avgLikes := float64(likes) / n
	avgRts := float64(rts) / n
	avgReplies := float64(replies) / n
	avgQuotes := float64(quotes) / n

	var erLikes, erRts, erTotal float64
	if followers > 0 {
		f := float64(followers)
		erLikes = avgLikes / f * 100
		erRts = avgRts / f * 100
		erTotal = float64(total) / n / f * 100
	}
	return EngagementMetrics{
		AvgLikes:               round1(avgLikes),
		AvgRetweets:            round1(avgRts),
		AvgReplies:             round1(avgReplies),
		AvgQuotes:              round1(avgQuotes),
		EngagementRateLikes:    round2(erLikes),
		EngagementRateRetweets: round2(erRts),
		EngagementRateTotal:    round2(erTotal),
	}
}

func findTopTweets(tweets []model.Tweet, n int) []TopTweet {
	sorted := make([]model.Tweet, len(tweets))
	copy(sorted, tweets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return model.EngagementScore(sorted[i]) > model.EngagementScore(sorted[j])
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	top := make([]TopTweet, 0, n)
	for _, t := range sorted[:n] {
		top = append(top, TopTweet{
			Text:            t.Text,
			Likes:           t.LikeCount,
			Retweets:        t.RetweetCount,
			Replies:         t.ReplyCount,
			Quotes:          t.QuoteCount,
			EngagementScore: model.EngagementScore(t),
			Features:        analyzer.Analyze(t.Text, t.HasMedia),
		})
	}
	return top
}

// detectTopics ranks frequent non-stopword terms, weighting hashtags 3x
// since they are explicit topic declarations.
func detectTopics(tweets []model.Tweet, lang string) []string {
	stop := stopwordsEN
	if lang == "tr" {
		stop = stopwordsTR
	}

	counts := map[string]int{}
	for _, t := range tweets {
		text := urlRe.ReplaceAllString(t.Text, "")
		text = handleRe.ReplaceAllString(text, "")
		for _, w := range util.Tokenize(text) {
			if len([]rune(w)) > 2 && !stop[w] {
				counts[w]++
			}
		}
	}
	for _, t := range tweets {
		for _, m := range tagRe.FindAllStringSubmatch(t.Text, -1) {
			counts[strings.ToLower(m[1])] += 3
		}
	}

	type wc struct {
		word  string
		count int
	}
	ranked := make([]wc, 0, len(counts))
	for w, c := range counts {
		ranked = append(ranked, wc{w, c})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].word < ranked[j].word
	})
	out := make([]string, 0, 10)
	for _, r := range ranked {
		out = append(out, r.word)
		if len(out) == 10 {
			break
		}
	}
	return out
}

// postingFrequency is the average gap in hours between the oldest and
// newest tweet, zero when timestamps are unavailable.
func postingFrequency(tweets []model.Tweet) float64 {
	var dates []time.Time
	for _, t := range tweets {
		if !t.CreatedAt.IsZero() {
			dates = append(dates, t.CreatedAt)
		}
	}
	if len(dates) < 2 {
		return 0
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	totalHours := dates[len(dates)-1].Sub(dates[0]).Hours()
	return round1(totalHours / float64(len(dates)-1))
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
