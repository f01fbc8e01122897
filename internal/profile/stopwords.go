package profile

func toSet(words []string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

var stopwordsEN = toSet([]string{
	"the", "a", "an", "is", "are", "was", "were", "be", "been", "being",
	"have", "has", "had", "do", "does", "did", "will", "would", "could",
	"should", "may", "might", "shall", "can", "need", "dare", "ought",
	"i", "me", "my", "myself", "we", "our", "ours", "ourselves",
	"you", "your", "yours", "yourself", "yourselves", "he", "him", "his",
	"himself", "she", "her", "hers", "herself", "it", "its", "itself",
	"they", "them", "their", "theirs", "themselves", "what", "which",
	"who", "whom", "this", "that", "these", "those", "am", "in", "on",
	"at", "by", "for", "with", "about", "between", "through", "during",
	"before", "after", "above", "below", "to", "from", "up", "down",
	"out", "off", "over", "under", "again", "further", "then", "once",
	"here", "there", "when", "where", "why", "how", "all", "both",
	"each", "few", "more", "most", "other", "some", "such", "no",
	"not", "only", "own", "same", "so", "than", "too", "very",
	"just", "don", "now", "also", "but", "and", "or", "if",
	"of", "as", "into", "because", "while", "until", "get", "got",
	"like", "really", "much", "many", "even", "still", "already",
	"going", "make", "think", "know", "want", "new", "one", "two",
	"every", "people", "thing", "things", "way", "good", "right",
})

var stopwordsTR = toSet([]string{
	"bir", "bu", "ve", "de", "da", "ile", "için", "ama", "ya",
	"ne", "o", "ben", "sen", "biz", "siz", "onlar", "ki", "var",
	"yok", "çok", "daha", "en", "her", "gibi", "kadar", "sonra",
	"önce", "olan", "olarak", "bunu", "şu", "ise", "mi", "mu",
	"mı", "mü", "olur", "oldu", "fakat", "ancak", "lakin", "hem",
	"veya", "birlikte",
})
