package wordcloud

var stopwords = toSet(
	"a", "about", "above", "after", "again", "against", "all", "also", "am", "an", "and", "any", "are",
	"as", "at", "be", "because", "been", "before", "being", "below", "between", "both", "but", "by",
	"can", "could", "did", "do", "does", "doing", "down", "during", "each", "else", "ever", "few",
	"for", "from", "further", "get", "had", "has", "have", "having", "he", "her", "here", "hers",
	"herself", "him", "himself", "his", "how", "however", "i", "if", "in", "into", "is", "it", "its",
	"itself", "just", "me", "more", "most", "my", "myself", "no", "nor", "not", "of", "off", "on",
	"once", "only", "or", "other", "otherwise", "ought", "our", "ours", "ourselves", "out", "over",
	"own", "same", "shall", "she", "should", "since", "so", "some", "such", "than", "that", "the",
	"their", "theirs", "them", "themselves", "then", "there", "therefore", "these", "they", "this",
	"those", "through", "to", "too", "under", "until", "up", "very", "was", "we", "were", "what",
	"when", "where", "which", "while", "who", "whom", "why", "will", "with", "would", "you", "your",
	"yours", "yourself", "yourselves", "isn't", "aren't", "wasn't", "weren't", "don't", "doesn't",
	"didn't", "won't", "can't", "cannot", "couldn't", "shouldn't", "wouldn't", "it's", "i'm", "we're",
	"they're", "you're", "there's", "that's", "let's",
)

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
