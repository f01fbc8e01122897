package prompt

import (
	"fmt"
	"strings"

	"amplify/internal/discovery"
	"amplify/internal/profile"
)

// DiscoveryRequest describes a trending-topic tweet generation.
type DiscoveryRequest struct {
	Topic    discovery.TrendingTopic
	Angle    discovery.Angle
	Lang     string
	HasMedia bool
	Thread   bool
	Profile  *profile.Profile
}

// DiscoveryTweet builds the prompt that writes an original tweet about a
// trending topic from the chosen angle, in the author's voice when a
// profile is available.
func DiscoveryTweet(r DiscoveryRequest) string {
	lang := r.Lang
	if lang == "" {
		lang = "en"
	}

	var topicSection strings.Builder
	fmt.Fprintf(&topicSection, "## Trending Topic\nTopic: %s", r.Topic.Name)
	if r.Topic.Context != "" {
		fmt.Fprintf(&topicSection, "\nContext: %s", r.Topic.Context)
	}
	if r.Topic.PopularTake != "" {
		fmt.Fprintf(&topicSection, "\nPopular opinion on X: %s", r.Topic.PopularTake)
	}
	if r.Topic.ContrarianAngle != "" {
		fmt.Fprintf(&topicSection, "\nContrarian angle: %s", r.Topic.ContrarianAngle)
	}

	styleMandate := ""
	if r.Profile != nil {
		styleMandate = fmt.Sprintf(`
### CRITICAL: Author Style Matching
You MUST write this tweet as if the author (@%s) wrote it themselves.
- Study the top-performing tweets in the profile above
- Replicate the author's sentence structure, rhythm, and vocabulary
- Follow ALL style matching rules listed in the profile section
- The tweet should be INDISTINGUISHABLE from the author's own writing
`, r.Profile.Username)
	}

	threadNote := ""
	if r.Thread {
		threadNote = "\nGenerate as a THREAD: hook tweet (first tweet) plus 2-3 follow-up tweets that maintain engagement."
	}

	user := fmt.Sprintf(`%s
%s## Instructions — TRENDING TOPIC TWEET CREATION

Create an original, high-quality tweet about the trending topic above.

### Angle
%s
%s### Rules
- Write in %s (%s)
- Maximum 280 characters
- The tweet must be about the specific trending topic, not generic
- Apply all X algorithm optimization knowledge to maximize engagement signals
- Avoid excessive hashtags (max 1-2), avoid engagement bait
- Make it sound natural and authentic, not like AI-generated marketing copy
%s%s

Generate EXACTLY 1 optimized tweet.

Estimate realistic scores (0.0-1.0) for ALL 19 signals. Be honest.

%s

RESPOND WITH ONLY VALID JSON. No markdown fences, no text outside JSON.`,
		topicSection.String(), profileSection(r.Profile),
		r.Angle.Instruction(lang), styleMandate,
		languageName(lang), strings.ToUpper(lang),
		threadNote, mediaInstruction(r.HasMedia),
		OutputSchema(1, r.Thread))

	return System(r.Profile != nil) + "\n\n---\n\n" + user
}
