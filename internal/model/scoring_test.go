package model

import "testing"

func TestEngagementScoreWeighting(t *testing.T) {
	tw := Tweet{LikeCount: 10, RetweetCount: 5, ReplyCount: 4, QuoteCount: 2}
	if got := EngagementScore(tw); got != 10+15+20+20 {
		t.Fatalf("EngagementScore = %d", got)
	}
	if got := TotalEngagement(tw); got != 21 {
		t.Fatalf("TotalEngagement = %d", got)
	}
}

func TestQuoteOutweighsLikes(t *testing.T) {
	quoted := Tweet{QuoteCount: 1}
	liked := Tweet{LikeCount: 9}
	if EngagementScore(quoted) <= EngagementScore(liked) {
		t.Fatal("a quote should outrank nine likes")
	}
}
