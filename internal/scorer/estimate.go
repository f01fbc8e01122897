// Package scorer estimates per-signal action probabilities for a post and
// aggregates them into category and overall compatibility scores.
package scorer

import (
	"amplify/internal/algorithm"
	"amplify/internal/analyzer"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Estimate produces a heuristic probability in [0,1] for each of the 19
// signals from structural features. Deterministic: same features, same
// scores.
func Estimate(f analyzer.Features) algorithm.ScoreSet {
	s := make(algorithm.ScoreSet, 19)

	// favorite: emotional resonance, power words, opinion strength
	fav := 0.20
	if f.PowerWordCount > 0 {
		bonus := float64(f.PowerWordCount) * 0.08
		if bonus > 0.25 {
			bonus = 0.25
		}
		fav += bonus
	}
	if f.HasQuestion {
		fav += 0.05
	}
	if f.EmojiCount > 0 {
		fav += 0.05
	}
	if f.CharUtilization > 50 {
		fav += 0.10
	}
	if f.HasMedia {
		fav += 0.10
	}
	s[algorithm.Favorite] = clamp01(fav)

	// reply: questions, debate triggers, CTAs
	reply := 0.10
	if f.HasQuestion {
		q := f.QuestionCount
		if q > 3 {
			q = 3
		}
		reply += 0.15 * float64(q)
	}
	if f.HasCTA {
		reply += 0.10
	}
	if f.PowerWordCount > 0 {
		reply += 0.08
	}
	if f.LineCount >= 3 {
		reply += 0.05
	}
	s[algorithm.Reply] = clamp01(reply)

	// repost: quotable insights, data, universal truths
	rt := 0.15
	if f.HasNumbers {
		rt += 0.12
	}
	if f.PowerWordCount >= 2 {
		rt += 0.10
	}
	// 100-200 chars is the retweetability sweet spot
	if f.CharCount > 100 && f.CharCount < 200 {
		rt += 0.08
	}
	if f.HasListFormat {
		rt += 0.05
	}
	s[algorithm.Repost] = clamp01(rt)

	photo := 0.05
	if f.HasMedia {
		photo += 0.50
	}
	s[algorithm.PhotoExpand] = clamp01(photo)

	// click: URLs, curiosity gaps
	click := 0.05
	if f.HasURL {
		click += 0.35
	}
	if f.PowerWordCount > 0 && f.HasURL {
		click += 0.10
	}
	s[algorithm.Click] = clamp01(click)

	// profile click: authority, unique perspective
	prof := 0.10
	if f.PowerWordCount >= 2 {
		prof += 0.10
	}
	if f.HasNumbers {
		prof += 0.08
	}
	if f.CharUtilization > 60 {
		prof += 0.05
	}
	s[algorithm.ProfileClick] = clamp01(prof)

	// vqv: media could be video
	vqv := 0.02
	if f.HasMedia {
		vqv += 0.15
	}
	s[algorithm.VideoView] = clamp01(vqv)

	// share: useful, save-worthy content
	share := 0.10
	if f.HasListFormat {
		share += 0.15
	}
	if f.HasNumbers {
		share += 0.10
	}
	if f.PowerWordCount > 0 {
		share += 0.05
	}
	if f.CharUtilization > 50 {
		share += 0.05
	}
	s[algorithm.Share] = clamp01(share)

	// share via DM: personal relevance, surprising, niche
	dm := 0.05
	if f.PowerWordCount >= 2 {
		dm += 0.12
	}
	if f.HasNumbers {
		dm += 0.08
	}
	if f.HasQuestion && f.PowerWordCount > 0 {
		dm += 0.10
	}
	if f.CharUtilization > 60 {
		dm += 0.05
	}
	s[algorithm.ShareViaDM] = clamp01(dm)

	// copy link: cross-platform value
	cp := 0.05
	if f.HasListFormat {
		cp += 0.12
	}
	if f.HasNumbers {
		cp += 0.08
	}
	if f.CharUtilization > 70 {
		cp += 0.05
	}
	s[algorithm.ShareViaCopyLink] = clamp01(cp)

	// dwell: hook plus formatting
	dwell := 0.15
	if f.HasHook {
		dwell += 0.15
	}
	if f.LineCount >= 3 {
		dwell += 0.10
	}
	if f.CharUtilization > 50 {
		dwell += 0.10
	}
	s[algorithm.Dwell] = clamp01(dwell)

	// quote: hot takes, frameworks, reaction-worthy
	quote := 0.08
	if f.PowerWordCount >= 2 {
		quote += 0.12
	}
	if f.HasNumbers {
		quote += 0.08
	}
	if f.HasQuestion {
		quote += 0.05
	}
	s[algorithm.Quote] = clamp01(quote)

	// quoted click: low unless the post itself quotes
	s[algorithm.QuotedClick] = 0.05

	// follow author: expertise signals
	follow := 0.08
	if f.HasNumbers {
		follow += 0.08
	}
	if f.PowerWordCount >= 2 {
		follow += 0.08
	}
	if f.CharUtilization > 60 {
		follow += 0.05
	}
	s[algorithm.FollowAuthor] = clamp01(follow)

	// negative signals, lower is better

	ni := 0.10
	if f.HashtagCount > 3 {
		ni += 0.15
	}
	// very short reads as low effort
	if f.CharUtilization < 15 {
		ni += 0.10
	}
	// too pushy
	if f.CTACount > 2 {
		ni += 0.08
	}
	s[algorithm.NotInterested] = clamp01(ni)

	block := 0.03
	if f.HashtagCount > 5 {
		block += 0.05
	}
	s[algorithm.BlockAuthor] = clamp01(block)

	mute := 0.05
	if f.HashtagCount > 3 {
		mute += 0.05
	}
	s[algorithm.MuteAuthor] = clamp01(mute)

	s[algorithm.Report] = 0.02

	// dwell time: reading duration
	dt := 0.15
	if f.LineCount >= 4 {
		dt += 0.15
	}
	if f.CharUtilization > 60 {
		dt += 0.15
	}
	if f.HasHook {
		dt += 0.10
	}
	if f.HasListFormat {
		dt += 0.10
	}
	s[algorithm.DwellTime] = clamp01(dt)

	return s
}
