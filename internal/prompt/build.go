package prompt

import (
	"fmt"
	"strings"

	"amplify/internal/algorithm"
	"amplify/internal/analyzer"
	"amplify/internal/profile"
)

// Request carries everything needed to build an optimization prompt.
type Request struct {
	Tweet         string
	Features      analyzer.Features
	Scores        algorithm.ScoreSet
	Style         string
	Topic         string
	Lang          string
	HasMedia      bool
	Thread        bool
	Profile       *profile.Profile
	NumVariations int
}

func (r Request) lang() string {
	if r.Lang == "" {
		return "en"
	}
	return r.Lang
}

func threadInstruction(thread bool) string {
	if !thread {
		return ""
	}
	return "\nOptimize as a THREAD: generate the hook tweet (first tweet) plus 2-3 follow-up tweets that maintain engagement."
}

func mediaInstruction(hasMedia bool) string {
	if !hasMedia {
		return ""
	}
	return "\nThis tweet WILL include media (photo/video). Optimize text to complement visuals and boost photo_expand_score / vqv_score."
}

func profileSection(p *profile.Profile) string {
	if p == nil {
		return ""
	}
	return "\n" + ProfileContext(p) + "\n"
}

// Variations builds the multi-variation optimization prompt: each variation
// pursues a different signal-targeting strategy.
func Variations(r Request) string {
	n := r.NumVariations
	if n <= 0 {
		n = 3
	}
	style := r.Style
	if style == "" {
		style = "professional"
	}
	topicContext := ""
	if r.Topic != "" {
		topicContext = "\nTopic/Niche: " + r.Topic
	}
	styleMandate := ""
	if r.Profile != nil {
		styleMandate = fmt.Sprintf("\nCRITICAL: Author profile is available above. All variations MUST match @%s's writing style. Follow the STYLE MATCHING RULES in the profile section.\n", r.Profile.Username)
	}

	user := fmt.Sprintf(`## Original Tweet
%q

## Structural Analysis
%s
%s
%s## Current Algorithm Scores (Heuristic Estimates)
%s

## Instructions
Generate exactly %d optimized variations of this tweet.
Style/Tone: %s
Language: %s — write in %s
%s%s

Each variation should use a DIFFERENT optimization strategy targeting different signal combinations.

For each variation, estimate realistic scores (0.0-1.0) for ALL 19 signals based on the content you generate. Be honest — don't inflate scores unrealistically.

%s
%s
RESPOND WITH ONLY VALID JSON. No markdown fences, no text outside JSON.`,
		r.Tweet, analysisSummary(r.Features, r.lang()), topicContext,
		profileSection(r.Profile), scoresTable(r.Scores),
		n, style, strings.ToUpper(r.lang()), languageName(r.lang()),
		threadInstruction(r.Thread), mediaInstruction(r.HasMedia),
		OutputSchema(n, r.Thread), styleMandate)

	return System(r.Profile != nil) + "\n\n---\n\n" + user
}

// PreserveStyle builds the single-variation prompt that optimizes ranking
// signals while keeping the author's voice, meaning, and structure intact.
func PreserveStyle(r Request) string {
	topicContext := ""
	if r.Topic != "" {
		topicContext = "\nTopic/Niche: " + r.Topic
	}

	user := fmt.Sprintf(`## Original Tweet
%q

## Structural Analysis
%s
%s
%s## Current Algorithm Scores (Heuristic Estimates)
%s

## Instructions — PRESERVE STYLE OPTIMIZATION

Your task is to optimize this tweet for the X algorithm while PRESERVING the original tweet's:
- Voice and tone (if casual, keep casual; if formal, keep formal)
- Core message and meaning — do NOT change what the tweet is saying
- Structure and flow — keep the same narrative structure
- Author's personality — it should still sound like the same person wrote it

What you CAN change:
- Trim to fit within 280 characters if it exceeds the limit
- Improve formatting (add line breaks for readability/dwell time)
- Add a stronger hook at the beginning if the current hook is weak
- Add a question or CTA at the end to boost reply/quote signals
- Slightly reword for clarity and impact while keeping the same meaning
- Remove or reduce elements that trigger negative signals (excessive hashtags, etc.)

Language: %s — write in %s
%s%s

Generate EXACTLY 1 optimized version that maximizes the algorithm score while staying true to the original tweet.

Estimate realistic scores (0.0-1.0) for ALL 19 signals. Be honest — don't inflate scores.

%s

RESPOND WITH ONLY VALID JSON. No markdown fences, no text outside JSON.`,
		r.Tweet, analysisSummary(r.Features, r.lang()), topicContext,
		profileSection(r.Profile), scoresTable(r.Scores),
		strings.ToUpper(r.lang()), languageName(r.lang()),
		threadInstruction(r.Thread), mediaInstruction(r.HasMedia),
		OutputSchema(1, r.Thread))

	return System(r.Profile != nil) + "\n\n---\n\n" + user
}

// Refine builds the prompt that applies user feedback to an
// already-optimized tweet. User wishes take priority over ranking signals.
func Refine(originalTweet, currentTweet, feedback string, r Request) string {
	user := fmt.Sprintf(`## Original Tweet (user's first input)
%q

## Current Optimized Version
%q
%s## User's Feedback
The user wants the following changes applied to the CURRENT optimized version:
%q

## Instructions — REFINE BASED ON FEEDBACK

Apply the user's requested changes to the current optimized version.

Rules:
- Follow the user's feedback as closely as possible
- Keep the tweet within 280 characters
- Maintain algorithm optimization where possible, but USER'S WISHES take priority
- If the user asks to keep something, do NOT remove it
- Language: %s — write in %s
%s

Generate EXACTLY 1 refined version.

Estimate realistic scores (0.0-1.0) for ALL 19 signals. Be honest — don't inflate scores.

%s

RESPOND WITH ONLY VALID JSON. No markdown fences, no text outside JSON.`,
		originalTweet, currentTweet, profileSection(r.Profile), feedback,
		strings.ToUpper(r.lang()), languageName(r.lang()),
		mediaInstruction(r.HasMedia), OutputSchema(1, r.Thread))

	return System(r.Profile != nil) + "\n\n---\n\n" + user
}
