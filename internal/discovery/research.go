package discovery

import (
	"context"
	"fmt"

	"amplify/internal/llm"
	"amplify/internal/profile"
)

// ResearchProfile builds an account fingerprint without API access by
// asking the model what it knows about the account. The parsed answer
// goes through the same manual-profile path as hand-entered stats.
func ResearchProfile(ctx context.Context, client llm.Client, username, lang string) (*profile.Profile, error) {
	raw, err := client.Complete(ctx, ProfileResearchPrompt(username, lang))
	if err != nil {
		return nil, fmt.Errorf("profile research: %w", err)
	}
	data := ParseProfileResearch(raw, username)
	if data == nil {
		return nil, fmt.Errorf("research response had no usable stats for @%s", username)
	}

	p := profile.BuildManual(data.Username, data.Followers, data.AvgLikes,
		data.AvgRetweets, data.AvgReplies, data.Topics, data.SampleTweets)
	p.Following = data.Following
	p.TweetCount = data.TweetCount
	p.Verified = data.Verified
	p.Description = data.Bio
	if data.Lang != "" {
		p.Lang = data.Lang
	}
	if data.Tone != "" {
		p.Style.TypicalTone = data.Tone
	}
	if len(data.SampleTweets) == 0 {
		// No samples means the style analysis ran on nothing; trust the
		// researched answer instead of the defaults.
		p.Style.UsesLineBreaks = data.UsesLineBreaks
	}
	return p, nil
}
