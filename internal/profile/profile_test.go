package profile

import (
	"context"
	"testing"
	"time"

	"amplify/internal/model"
	"amplify/internal/store"
)

func sampleTweets() []model.Tweet {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return []model.Tweet{
		{ID: "1", Text: "Shipping the new release today. Here's what changed:\n\n- faster builds\n- smaller binaries",
			CreatedAt: base, LikeCount: 120, RetweetCount: 30, ReplyCount: 12, QuoteCount: 2},
		{ID: "2", Text: "What is the one tool you can't work without?",
			CreatedAt: base.Add(24 * time.Hour), LikeCount: 40, RetweetCount: 5, ReplyCount: 60},
		{ID: "3", Text: "hot take: most dashboards are never read #observability #devtools",
			CreatedAt: base.Add(48 * time.Hour), LikeCount: 300, RetweetCount: 80, ReplyCount: 25, QuoteCount: 10},
	}
}

func sampleUser() model.User {
	return model.User{ID: "42", Username: "builder", FollowersCount: 10000, TweetCount: 900}
}

func TestBuildProfile(t *testing.T) {
	p := Build(sampleUser(), sampleTweets(), 2)

	if p.Username != "builder" || p.Followers != 10000 {
		t.Fatalf("identity: %+v", p)
	}
	if p.Lang != "en" {
		t.Fatalf("lang = %s", p.Lang)
	}
	if len(p.TopTweets) != 2 {
		t.Fatalf("top tweets = %d", len(p.TopTweets))
	}
	// Tweet 3 scores 300+240+125+100=765, tweet 1 scores 120+90+60+20=290.
	if p.TopTweets[0].Text == "" || p.TopTweets[0].Likes != 300 {
		t.Fatalf("top tweet order wrong: %+v", p.TopTweets[0])
	}
	if p.TopTweets[0].EngagementScore != 765 {
		t.Fatalf("engagement score = %d", p.TopTweets[0].EngagementScore)
	}
	if p.Engagement.AvgLikes == 0 || p.Engagement.EngagementRateTotal == 0 {
		t.Fatalf("engagement: %+v", p.Engagement)
	}
	// 24h between consecutive tweets.
	if p.PostingFrequencyHours != 24 {
		t.Fatalf("posting frequency = %f", p.PostingFrequencyHours)
	}
}

func TestEngagementRateTotalCountsEveryInteraction(t *testing.T) {
	tweets := []model.Tweet{
		{LikeCount: 80, RetweetCount: 10, ReplyCount: 6, QuoteCount: 4},
		{LikeCount: 20, RetweetCount: 10, ReplyCount: 14, QuoteCount: 6},
	}
	m := analyzeEngagement(tweets, 1000)
	// (100+20+20+10) / 2 tweets / 1000 followers * 100
	if m.EngagementRateTotal != 7.5 {
		t.Fatalf("er total = %f", m.EngagementRateTotal)
	}
	if m.EngagementRateLikes != 5 {
		t.Fatalf("er likes = %f", m.EngagementRateLikes)
	}
}

func TestDetectTopicsWeighsHashtags(t *testing.T) {
	topics := detectTopics(sampleTweets(), "en")
	found := false
	for _, topic := range topics {
		if topic == "observability" {
			found = true
		}
	}
	if !found {
		t.Fatalf("hashtag topic missing: %v", topics)
	}
}

func TestAnalyzeStyleTone(t *testing.T) {
	punchy := analyzeStyle([]model.Tweet{{Text: "ship it"}, {Text: "less is more"}})
	if punchy.TypicalTone != "punchy" {
		t.Fatalf("tone = %s", punchy.TypicalTone)
	}
	casual := analyzeStyle([]model.Tweet{{Text: "great day 🚀🔥🎉"}, {Text: "lets go 🙌🙌"}})
	if casual.TypicalTone != "casual" {
		t.Fatalf("tone = %s", casual.TypicalTone)
	}
}

func TestBuildManualWithoutSamples(t *testing.T) {
	p := BuildManual("@indie", 500, 20, 4, 6, []string{"golang", "saas"}, nil)
	if p.Username != "indie" || len(p.Topics) != 2 {
		t.Fatalf("manual profile: %+v", p)
	}
	if p.Style.TypicalTone != "professional" {
		t.Fatalf("default tone = %s", p.Style.TypicalTone)
	}
	if p.Engagement.EngagementRateLikes != 4 {
		t.Fatalf("er likes = %f", p.Engagement.EngagementRateLikes)
	}
}

type fakeClient struct {
	user   model.User
	tweets []model.Tweet
	calls  int
}

func (f *fakeClient) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	f.calls++
	return f.user, nil
}

func (f *fakeClient) GetUserTweets(ctx context.Context, userID string, limit int) ([]model.Tweet, error) {
	return f.tweets, nil
}

func TestFetcherUsesCache(t *testing.T) {
	db, err := store.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	fc := &fakeClient{user: sampleUser(), tweets: sampleTweets()}
	f := NewFetcher(fc, db, Options{CacheTTL: time.Hour})
	ctx := context.Background()

	first, src, err := f.Fetch(ctx, "@Builder")
	if err != nil {
		t.Fatal(err)
	}
	if src != SourceAPI {
		t.Fatalf("first fetch source = %s", src)
	}
	second, src, err := f.Fetch(ctx, "builder")
	if err != nil {
		t.Fatal(err)
	}
	if src != SourceCache {
		t.Fatalf("second fetch source = %s", src)
	}
	if fc.calls != 1 {
		t.Fatalf("expected 1 live fetch, got %d", fc.calls)
	}
	if first.Username != second.Username || len(second.TopTweets) == 0 {
		t.Fatalf("cached profile mismatch: %+v", second)
	}

	refresh := NewFetcher(fc, db, Options{CacheTTL: time.Hour, ForceRefresh: true})
	if _, src, err := refresh.Fetch(ctx, "builder"); err != nil || src != SourceAPI {
		t.Fatalf("force refresh should hit the API: %s %v", src, err)
	}
	if fc.calls != 2 {
		t.Fatalf("force refresh should hit the API, calls = %d", fc.calls)
	}
}
