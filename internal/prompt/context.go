package prompt

import (
	"fmt"
	"strings"

	"amplify/internal/algorithm"
	"amplify/internal/analyzer"
	"amplify/internal/profile"
)

// analysisSummary formats the structural features for prompt injection.
func analysisSummary(f analyzer.Features, lang string) string {
	powerWords := "none"
	if len(f.PowerWords) > 0 {
		powerWords = strings.Join(f.PowerWords, ", ")
	}
	return fmt.Sprintf(`Characters: %d/280 (%.0f%% utilization)
Language: %s
Lines: %d
Has hook: %t
Questions: %d
Hashtags: %d
Power words: %d (%s)
Has CTA: %t
Has numbers/data: %t
Has media: %t
List format: %t`,
		f.CharCount, f.CharUtilization, strings.ToUpper(lang), f.LineCount,
		f.HasHook, f.QuestionCount, f.HashtagCount, f.PowerWordCount,
		powerWords, f.HasCTA, f.HasNumbers, f.HasMedia, f.HasListFormat)
}

// scoresTable lists the current heuristic estimates with weights, so the
// model sees exactly which signals are worth chasing.
func scoresTable(scores algorithm.ScoreSet) string {
	var b strings.Builder
	for _, s := range algorithm.Signals() {
		neg := ""
		if algorithm.IsNegative(s) {
			neg = " (NEGATIVE)"
		}
		label, _ := algorithm.Label(s)
		weight, _ := algorithm.Weight(s)
		fmt.Fprintf(&b, "  %s (%s): %.0f%% [weight: %g]%s\n",
			s, label, scores.Get(s)*100, weight, neg)
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatFollowers renders follower counts the way X displays them.
func formatFollowers(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// ProfileContext builds the author profile section: overview, style
// fingerprint, top tweets, mandatory style rules, and ranking insights
// calibrated to the account.
func ProfileContext(p *profile.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Author Profile: @%s\n\n", p.Username)

	verified := "No"
	if p.Verified {
		verified = "Yes"
	}
	fmt.Fprintf(&b, "Followers: %s | Verified: %s\n", formatFollowers(p.Followers), verified)
	fmt.Fprintf(&b, "Avg engagement per tweet: %.0f likes, %.0f RTs, %.0f replies, %.0f quotes\n",
		p.Engagement.AvgLikes, p.Engagement.AvgRetweets, p.Engagement.AvgReplies, p.Engagement.AvgQuotes)
	fmt.Fprintf(&b, "Engagement rates: likes %.2f%%, RTs %.2f%%, total %.2f%%\n",
		p.Engagement.EngagementRateLikes, p.Engagement.EngagementRateRetweets, p.Engagement.EngagementRateTotal)

	breaks := "no"
	if p.Style.UsesLineBreaks {
		breaks = "yes"
	}
	fmt.Fprintf(&b, "Writing style: %s | Avg length: %.0f chars | Avg lines: %.1f | Emojis: %.1f/tweet | Hashtags: %.1f/tweet | Questions: %.1f/tweet | Line breaks: %s\n",
		p.Style.TypicalTone, p.Style.AvgTweetLength, p.Style.AvgLineCount,
		p.Style.EmojiFrequency, p.Style.HashtagFrequency, p.Style.QuestionFrequency, breaks)

	if len(p.Topics) > 0 {
		topics := p.Topics
		if len(topics) > 8 {
			topics = topics[:8]
		}
		fmt.Fprintf(&b, "Topics/niche: %s\n", strings.Join(topics, ", "))
	}
	if p.PostingFrequencyHours > 0 {
		fmt.Fprintf(&b, "Posting frequency: ~%.0f hours between tweets\n", p.PostingFrequencyHours)
	}

	if len(p.TopTweets) > 0 {
		b.WriteString("\n### Top-Performing Tweets (STUDY THESE for style matching)\n")
		b.WriteString("Analyze their structure, opening hooks, sentence rhythm, formatting, and tone, then replicate these patterns.\n")
		for i, tt := range p.TopTweets {
			if i == 5 {
				break
			}
			text := tt.Text
			if len([]rune(text)) > 280 {
				text = string([]rune(text)[:280])
			}
			text = strings.ReplaceAll(text, "\n", "\n   ")
			fmt.Fprintf(&b, "%d. \"\"\"\n   %s\n   \"\"\"\n   Likes: %d | RTs: %d | Replies: %d | Quotes: %d | Score: %d\n",
				i+1, text, tt.Likes, tt.Retweets, tt.Replies, tt.Quotes, tt.EngagementScore)
		}
	}

	b.WriteString("\n### STYLE MATCHING RULES (MANDATORY)\n")
	b.WriteString("The generated tweet MUST match the author's writing style. Specifically:\n")
	writeToneRule(&b, p.Style.TypicalTone)
	writeLengthRule(&b, p.Style.AvgTweetLength)
	writeStructureRule(&b, p.Style)
	writeEmojiRule(&b, p.Style.EmojiFrequency)
	writeHashtagRule(&b, p.Style.HashtagFrequency)
	writeQuestionRule(&b, p.Style.QuestionFrequency)

	b.WriteString("\n### Algorithm Insights for This Author\n")
	writeInsights(&b, p)

	return b.String()
}

func writeToneRule(b *strings.Builder, tone string) {
	fmt.Fprintf(b, "- TONE: Write in a %s tone.", tone)
	switch tone {
	case "professional", "analytical":
		b.WriteString(" Use measured, intelligent language. No slang, no hype words.\n")
	case "casual":
		b.WriteString(" Use conversational, relaxed language.\n")
	case "punchy":
		b.WriteString(" Keep sentences short and impactful. Get to the point fast.\n")
	case "educational":
		b.WriteString(" Explain clearly, lead with substance.\n")
	default:
		b.WriteString("\n")
	}
}

func writeLengthRule(b *strings.Builder, avgLen float64) {
	if avgLen <= 0 {
		return
	}
	lenMin := int(avgLen * 0.7)
	if lenMin < 30 {
		lenMin = 30
	}
	lenMax := int(avgLen * 1.4)
	if lenMax > 280 {
		lenMax = 280
	}
	fmt.Fprintf(b, "- LENGTH: Target %.0f characters (acceptable range: %d-%d). Do NOT write significantly shorter or longer.\n",
		avgLen, lenMin, lenMax)
}

func writeStructureRule(b *strings.Builder, s profile.StyleFingerprint) {
	if s.UsesLineBreaks && s.AvgLineCount > 1.5 {
		fmt.Fprintf(b, "- STRUCTURE: Use line breaks. Author typically writes ~%.0f lines.\n", s.AvgLineCount)
	} else {
		b.WriteString("- STRUCTURE: Keep it as a single paragraph or minimal lines. The author does NOT use multi-line formatting.\n")
	}
}

func writeEmojiRule(b *strings.Builder, freq float64) {
	switch {
	case freq < 0.2:
		b.WriteString("- EMOJIS: Do NOT use emojis. The author rarely/never uses them.\n")
	case freq < 0.8:
		b.WriteString("- EMOJIS: Use emojis sparingly (0-1 per tweet).\n")
	default:
		fmt.Fprintf(b, "- EMOJIS: Use emojis (%.0f/tweet average). The author regularly includes them.\n", freq)
	}
}

func writeHashtagRule(b *strings.Builder, freq float64) {
	switch {
	case freq < 0.2:
		b.WriteString("- HASHTAGS: Do NOT use hashtags. The author rarely/never uses them.\n")
	case freq < 1.0:
		b.WriteString("- HASHTAGS: Use at most 1 hashtag.\n")
	default:
		fmt.Fprintf(b, "- HASHTAGS: Can use 1-2 hashtags. Author averages %.1f/tweet.\n", freq)
	}
}

func writeQuestionRule(b *strings.Builder, freq float64) {
	if freq > 0.4 {
		b.WriteString("- QUESTIONS: The author frequently asks questions. Include one to match this pattern.\n")
	} else if freq < 0.1 {
		b.WriteString("- QUESTIONS: The author rarely asks questions. Use declarative statements instead.\n")
	}
}

func writeInsights(b *strings.Builder, p *profile.Profile) {
	if p.Engagement.EngagementRateRetweets > 0.5 {
		b.WriteString("- OON (Out-of-Network) Scorer: Strong retweet engagement. Prioritize share_via_dm_score and repost_score signals.\n")
	} else {
		b.WriteString("- OON (Out-of-Network) Scorer: Retweet rate is moderate. Focus on quotable, shareable content that triggers repost_score and share_via_dm_score.\n")
	}

	if p.PostingFrequencyHours > 0 && p.PostingFrequencyHours < 2 {
		b.WriteString("- Author Diversity Scorer: HIGH RISK, very frequent poster. Each tweet competes with the author's own recent tweets. Make every tweet count.\n")
	} else if p.PostingFrequencyHours > 0 && p.PostingFrequencyHours < 6 {
		b.WriteString("- Author Diversity Scorer: Moderate posting frequency. Quality over quantity.\n")
	}

	if len(p.Topics) > 0 {
		topics := p.Topics
		if len(topics) > 5 {
			topics = topics[:5]
		}
		fmt.Fprintf(b, "- Phoenix Retrieval: Author's content clusters around [%s]. Staying in this niche improves retrieval scores.\n",
			strings.Join(topics, ", "))
	}

	if p.Style.HashtagFrequency > 1.5 {
		b.WriteString("- Filter Awareness: This author uses hashtags frequently. X downranks tweets with >2 hashtags. Reduce hashtag usage.\n")
	}

	if p.Followers > 50_000 {
		b.WriteString("- Large account: Profile clicks are less likely. Focus on share/DM signals instead of profile_click_score.\n")
	} else if p.Followers < 1_000 {
		b.WriteString("- Small account: Profile clicks are a strong growth lever. Optimize for profile_click_score and follow_author_score.\n")
	}
}
