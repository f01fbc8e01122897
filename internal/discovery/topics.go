package discovery

import (
	"fmt"
	"sort"
	"strings"

	"amplify/internal/profile"
)

// TopicRanking scores one of the author's topics by engagement.
type TopicRanking struct {
	Topic         string  `json:"topic"`
	AvgEngagement float64 `json:"avg_engagement"`
	TweetCount    int     `json:"tweet_count"`
}

// RankTopics cross-references the profile's topics with its top tweets to
// find which topics actually drive engagement for this author.
func RankTopics(p *profile.Profile) []TopicRanking {
	if p == nil || len(p.Topics) == 0 {
		return nil
	}
	rankings := make([]TopicRanking, 0, len(p.Topics))
	for _, topic := range p.Topics {
		needle := strings.ToLower(topic)
		sum, count := 0, 0
		for _, tt := range p.TopTweets {
			if strings.Contains(strings.ToLower(tt.Text), needle) {
				sum += tt.EngagementScore
				count++
			}
		}
		avg := 0.0
		if count > 0 {
			avg = float64(sum) / float64(count)
		}
		rankings = append(rankings, TopicRanking{
			Topic:         topic,
			AvgEngagement: float64(int(avg*10)) / 10,
			TweetCount:    count,
		})
	}
	sort.SliceStable(rankings, func(i, j int) bool {
		if rankings[i].AvgEngagement != rankings[j].AvgEngagement {
			return rankings[i].AvgEngagement > rankings[j].AvgEngagement
		}
		return rankings[i].TweetCount > rankings[j].TweetCount
	})
	return rankings
}

// ResearchPrompt builds the structured research request for a topic. The
// fixed field format is what the response parser expects back.
func ResearchPrompt(topic, lang string) string {
	if lang == "tr" {
		return fmt.Sprintf(`X/Twitter'da su anda "%s" hakkinda en cok konusulan 5 gundem maddesini listele.

Her madde icin su formatta yaz:
1. Konu: [spesifik olay/konu adi]
   Neden gundemde: [1 cumle aciklama]
   Populer gorus: [X'te hakim olan gorus]
   Karsi gorus: [az temsil edilen veya farkli bir bakis acisi]

Genel degil, spesifik ve guncel ol. Bugun aktif olarak tartisilan konulara odaklan.`, topic)
	}
	return fmt.Sprintf(`What are the top 5 trending topics, news, or discussions about "%s" on X/Twitter right now?

For each, use this exact format:
1. Topic: [specific event/topic name]
   Context: [why it's trending, 1 sentence]
   Popular take: [the dominant opinion on X]
   Contrarian angle: [an underrepresented or opposing perspective]

Be specific and current. Focus on what's actively being discussed today, not generic themes.`, topic)
}

// ProfileResearchPrompt asks the research assistant to describe an X
// account in a fixed fill-in-the-blanks format.
func ProfileResearchPrompt(username, lang string) string {
	handle := strings.TrimPrefix(strings.TrimSpace(username), "@")
	if lang == "tr" {
		return fmt.Sprintf(`X/Twitter'da @%s kullanicisini analiz et.

Su bilgileri KESINLIKLE su formatta ver:

Followers: [sayi]
Following: [sayi]
Tweet count: [sayi]
Verified: [Yes/No]
Bio: [profil aciklamasi]
Language: [en/tr/diger]

Avg likes: [tweet basina ortalama begeni]
Avg retweets: [tweet basina ortalama RT]
Avg replies: [tweet basina ortalama yanit]

Style: [kisa/uzun/karma]
Tone: [professional/casual/provocative/humorous/analytical]
Uses emojis: [often/sometimes/rarely]
Uses hashtags: [often/sometimes/rarely]
Uses line breaks: [Yes/No]

Topics: [virgulla ayrilmis ana konulari]

Top 3 tweets (en cok etkilesim alan):
1. [tweet metni]
   Likes: [sayi] | RTs: [sayi] | Replies: [sayi]
2. [tweet metni]
   Likes: [sayi] | RTs: [sayi] | Replies: [sayi]
3. [tweet metni]
   Likes: [sayi] | RTs: [sayi] | Replies: [sayi]

Formati degistirme, sadece [] icindeki yerleri doldur.`, handle)
	}
	return fmt.Sprintf(`Analyze the X/Twitter user @%s.

Provide the following information in EXACTLY this format:

Followers: [number]
Following: [number]
Tweet count: [number]
Verified: [Yes/No]
Bio: [profile description]
Language: [en/tr/other]

Avg likes: [average likes per tweet]
Avg retweets: [average retweets per tweet]
Avg replies: [average replies per tweet]

Style: [short/long/mixed]
Tone: [professional/casual/provocative/humorous/analytical]
Uses emojis: [often/sometimes/rarely]
Uses hashtags: [often/sometimes/rarely]
Uses line breaks: [Yes/No]

Topics: [comma-separated main topics]

Top 3 tweets (highest engagement):
1. [tweet text]
   Likes: [number] | RTs: [number] | Replies: [number]
2. [tweet text]
   Likes: [number] | RTs: [number] | Replies: [number]
3. [tweet text]
   Likes: [number] | RTs: [number] | Replies: [number]

Do not change the format. Only fill in the [] placeholders.`, handle)
}
