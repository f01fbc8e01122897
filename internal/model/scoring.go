package model

// EngagementScore ranks a tweet by weighted interaction counts. Quotes and
// replies are worth more than likes because they indicate active response
// rather than passive approval.
func EngagementScore(t Tweet) int {
	return t.LikeCount + 3*t.RetweetCount + 5*t.ReplyCount + 10*t.QuoteCount
}

// TotalEngagement is the unweighted interaction count.
func TotalEngagement(t Tweet) int {
	return t.LikeCount + t.RetweetCount + t.ReplyCount + t.QuoteCount
}
