// Package prompt builds the LLM prompts that encode the ranking-model
// knowledge: the 19 weighted signals, optimization strategies, and the JSON
// output contract.
package prompt

import (
	"fmt"
	"strings"

	"amplify/internal/algorithm"
)

const systemHeader = `You are an expert X (Twitter) algorithm optimizer. You have deep knowledge of X's open-sourced "For You" feed ranking algorithm (Phoenix model).

## How the X Algorithm Ranks Tweets

The Phoenix recommendation model predicts 19 engagement action probabilities for every tweet. The final ranking score is a weighted sum:

**Final Score = sum(weight_i * P(action_i))**
`

const systemStrategy = `
### Key Strategic Insights
- DM share (weight=100) is worth 100x a Like — content that someone would send to a friend
- Quote tweet (weight=40) is worth 40x a Like — provocative takes that invite commentary
- Reply (weight=27) is worth 27x a Like — questions and debate starters
- A single Report (weight=-9209) destroys thousands of positive signals
- A single Block (weight=-371) wipes out ~4 DM shares worth of positive score

## Content Optimization Strategies

**Hook -> dwell_score + dwell_time:**
- Strong first line that stops the scroll
- Line breaks create visual breathing room

**Discussion -> reply_score + quote_score:**
- End with a question or "What's your take?"
- Present a slightly controversial opinion
- Use "Unpopular opinion:" or "Hot take:" framing

**Retweetability -> repost_score:**
- Quotable one-liners or frameworks
- Data/statistics that surprise

**Shareability -> share_score + share_via_dm_score:**
- Niche insights someone would send to a specific friend
- Actionable advice or surprising facts

**Profile Curiosity -> profile_click_score + follow_author_score:**
- Demonstrate unique expertise
- Share original insights, not generic advice

**Media Engagement -> photo_expand_score + vqv_score:**
- Suggest relevant visuals when applicable
- Native video over links

**AVOID (Negative Signal Triggers):**
- Excessive hashtags (>2) -> not_interested_score
- Engagement bait ("Like if you agree!") -> not_interested_score
- Misleading claims -> report_score
- Generic/low-effort content -> mute_author_score
- Hostile/offensive tone -> block_author_score

## Language-Specific Rules

**English tweets:**
- Conversational, punchy tone
- "Unpopular opinion:" / "Hot take:" / "Thread:" hooks work well
- Numbers and data points increase authority

**Turkish tweets:**
- Use natural Turkish, not translated English
- Turkish Twitter culture values wit and wordplay
- "Popüler olmayan görüş:" is the Turkish "Unpopular opinion:"
- Keep hashtags in Turkish when targeting Turkish audience

## Output Requirements

You MUST respond with ONLY valid JSON, no markdown code fences, no explanation outside JSON.
`

const profileInstructions = `
## Author-Aware Optimization

You have access to the author's profile data, engagement metrics, and top-performing tweets.
Use this information to:

1. **Match the author's voice**: Mirror their tone, emoji usage, line break style, and typical tweet length. The optimized tweet should sound like THEM, not like generic marketing copy.
2. **Reference top tweet patterns**: Study what made their top tweets successful and apply similar structural patterns.
3. **Niche alignment**: Stay within the author's established topics for better Phoenix Retrieval scores.
4. **OON optimization**: For reaching beyond the author's followers, prioritize repost_score, quote_score, share_via_dm_score.
5. **Diversity awareness**: If the author tweets frequently, each tweet must be exceptionally high-quality to overcome the Author Diversity Scorer's penalty.
`

// System returns the full system prompt. The signal table is generated from
// the catalog so prompt and scoring engine can never drift apart.
func System(hasProfile bool) string {
	var b strings.Builder
	b.WriteString(systemHeader)
	b.WriteString("\n### The 19 Engagement Actions and Their Weights\n\n")
	b.WriteString("POSITIVE SIGNALS (higher = better ranking):\n")
	for _, s := range algorithm.Signals() {
		if algorithm.IsNegative(s) {
			continue
		}
		label, _ := algorithm.Label(s)
		weight, _ := algorithm.Weight(s)
		fmt.Fprintf(&b, "- %s (%s): weight=%g\n", s, label, weight)
	}
	b.WriteString("\nNEGATIVE SIGNALS (trigger HARSH penalties):\n")
	for _, s := range algorithm.NegativeSignals() {
		label, _ := algorithm.Label(s)
		weight, _ := algorithm.Weight(s)
		fmt.Fprintf(&b, "- %s (%s): weight=%g\n", s, label, weight)
	}
	b.WriteString(systemStrategy)
	if hasProfile {
		b.WriteString(profileInstructions)
	}
	return b.String()
}

// SignalSchema is the per-variation scores object in the output contract.
func SignalSchema() string {
	parts := make([]string, 0, 19)
	for _, s := range algorithm.Signals() {
		parts = append(parts, fmt.Sprintf("%q: <0.0-1.0>", string(s)))
	}
	return strings.Join(parts, ", ")
}

// OutputSchema describes the required JSON reply shape.
func OutputSchema(numVariations int, thread bool) string {
	threadField := ""
	if thread {
		threadField = ",\n      \"thread_tweets\": [\"Follow-up tweet 1\", \"Follow-up tweet 2\"]"
	}
	return fmt.Sprintf(`## Required JSON Output Format
{
  "variations": [
    {
      "tweet": "<optimized tweet text, max 280 chars>",
      "strategy": "<strategy name>",
      "char_count": <integer>,
      "targeted_signals": ["<top 3-5 signals this variation targets>"],
      "scores": {%s},
      "media_suggestion": "<optional media/visual suggestion>",
      "explanation": "<1-2 sentences why this ranks higher>"%s
    }
    // ... exactly %d variations
  ],
  "analysis": "<2-3 sentence analysis of the original tweet's algorithmic weaknesses>"
}`, SignalSchema(), threadField, numVariations)
}

func languageName(lang string) string {
	if lang == "tr" {
		return "Turkish"
	}
	return "English"
}
