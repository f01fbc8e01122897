package discovery

import (
	"strings"
	"testing"

	"amplify/internal/profile"
)

const structuredResponse = `Here's what's trending:

1. Topic: Go 1.25 green tea garbage collector
   Context: The new GC landed in the release and benchmarks are circulating.
   Popular take: Everyone praises the latency improvements.
   Contrarian angle: The wins are workload-specific and most services won't notice.

2. Topic: AI coding agents in CI pipelines
   Context: Several large repos now run agents on every PR.
   Popular take: This is the future of code review.
   Contrarian angle: Agents rubber-stamp subtle bugs humans would catch.
`

func TestParseStructuredResponse(t *testing.T) {
	topics := Parse(structuredResponse)
	if len(topics) != 2 {
		t.Fatalf("got %d topics", len(topics))
	}
	first := topics[0]
	if !strings.Contains(first.Name, "green tea garbage collector") {
		t.Fatalf("name = %q", first.Name)
	}
	if first.Context == "" || first.PopularTake == "" || first.ContrarianAngle == "" {
		t.Fatalf("fields missing: %+v", first)
	}
}

func TestParseNumberedWithoutFields(t *testing.T) {
	text := "1. **Kernel 6.19 scheduler rewrite**\nBig thread about latency regressions.\n2) Rust in firmware\nVendors shipping it."
	topics := Parse(text)
	if len(topics) != 2 {
		t.Fatalf("got %d topics: %+v", len(topics), topics)
	}
	if topics[0].Name != "Kernel 6.19 scheduler rewrite" {
		t.Fatalf("markdown not stripped: %q", topics[0].Name)
	}
	if topics[0].Context == "" {
		t.Fatal("first free line should become context")
	}
}

func TestParseParagraphFallback(t *testing.T) {
	text := "Datacenter GPU shortages again\n\nEveryone is talking about inference costs\n\nOpen weights releases"
	topics := Parse(text)
	if len(topics) != 3 {
		t.Fatalf("got %d topics", len(topics))
	}
	if topics[0].Name != "Datacenter GPU shortages again" {
		t.Fatalf("name = %q", topics[0].Name)
	}
}

func TestParseEmpty(t *testing.T) {
	if got := Parse("   \n  "); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestAngleFallbacks(t *testing.T) {
	if Angle("bogus").Label("en") != AngleDominant.Label("en") {
		t.Fatal("unknown angle should fall back to dominant")
	}
	if AngleContrarian.Instruction("tr") == AngleContrarian.Instruction("en") {
		t.Fatal("tr and en instructions must differ")
	}
	for _, a := range Angles {
		if a.Label("en") == "" || a.Instruction("tr") == "" {
			t.Fatalf("angle %s missing text", a)
		}
	}
}

func TestRankTopics(t *testing.T) {
	p := &profile.Profile{
		Topics: []string{"golang", "kubernetes", "coffee"},
		TopTweets: []profile.TopTweet{
			{Text: "why golang wins for infra tooling", EngagementScore: 400},
			{Text: "golang generics, two years later", EngagementScore: 200},
			{Text: "kubernetes is a database now", EngagementScore: 90},
		},
	}
	ranked := RankTopics(p)
	if len(ranked) != 3 {
		t.Fatalf("got %d rankings", len(ranked))
	}
	if ranked[0].Topic != "golang" || ranked[0].TweetCount != 2 || ranked[0].AvgEngagement != 300 {
		t.Fatalf("top ranking wrong: %+v", ranked[0])
	}
	if ranked[2].Topic != "coffee" || ranked[2].AvgEngagement != 0 {
		t.Fatalf("unmatched topic should rank last: %+v", ranked[2])
	}
}

const profileResponse = `Followers: 12.5K
Following: 300
Tweet count: 4,200
Verified: Yes
Bio: Distributed systems, Go, espresso.
Language: en

Avg likes: 85
Avg retweets: 12
Avg replies: 9

Style: mixed
Tone: Analytical
Uses emojis: rarely
Uses hashtags: rarely
Uses line breaks: Yes

Topics: golang, distributed systems, databases

Top 3 tweets (highest engagement):
1. "Consensus is easy until the network disagrees with you."
   Likes: 900 | RTs: 210 | Replies: 60
2. "Your retry logic is the outage."
   Likes: 700 | RTs: 150 | Replies: 45
3. "Postgres is the best queue you already run."
   Likes: 650 | RTs: 140 | Replies: 38
`

func TestParseProfileResearch(t *testing.T) {
	d := ParseProfileResearch(profileResponse, "@sysgopher")
	if d == nil {
		t.Fatal("parse failed")
	}
	if d.Username != "sysgopher" || d.Followers != 12500 || d.TweetCount != 4200 {
		t.Fatalf("stats: %+v", d)
	}
	if !d.Verified || !d.UsesLineBreaks || d.Tone != "analytical" {
		t.Fatalf("flags: %+v", d)
	}
	if len(d.Topics) != 3 || d.Topics[0] != "golang" {
		t.Fatalf("topics: %v", d.Topics)
	}
	if len(d.SampleTweets) != 3 || !strings.Contains(d.SampleTweets[1], "retry logic") {
		t.Fatalf("samples: %v", d.SampleTweets)
	}
	if d.AvgLikes != 85 {
		t.Fatalf("avg likes = %f", d.AvgLikes)
	}
}

func TestParseProfileResearchRejectsEmpty(t *testing.T) {
	if ParseProfileResearch("no usable data here", "x") != nil {
		t.Fatal("expected nil for unusable response")
	}
	if ParseProfileResearch("", "x") != nil {
		t.Fatal("expected nil for empty response")
	}
}
