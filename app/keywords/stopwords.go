package keywords

// Combined German and English stop-word set applied to single words and
// phrases alike.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		// German
		"aber", "alle", "allem", "allen", "aller", "alles", "also", "auch",
		"beim", "bist", "dann", "dass", "dein", "deine", "dem", "den", "denn",
		"der", "des", "dich", "die", "dies", "diese", "diesem", "diesen",
		"dieser", "dieses", "dir", "doch", "dort", "durch", "ein", "eine",
		"einem", "einen", "einer", "eines", "einige", "euch", "euer", "für",
		"gegen", "haben", "hatte", "hier", "ihre", "ihrem", "ihren", "ihrer",
		"immer", "ist", "jede", "jedem", "jeden", "jeder", "jedes", "kann",
		"kein", "keine", "können", "machen", "mehr", "mein", "meine", "mit",
		"nach", "nicht", "noch", "nur", "oder", "ohne", "schon", "sehr",
		"sein", "seine", "sich", "sie", "sind", "sondern", "über", "und",
		"uns", "unser", "unter", "vom", "von", "vor", "war", "waren", "weil",
		"wenn", "werden", "wieder", "wird", "wir", "wurde", "zum", "zur",
		// English
		"about", "after", "again", "all", "and", "any", "are", "because",
		"been", "before", "being", "below", "between", "both", "but", "can",
		"could", "did", "does", "doing", "down", "during", "each", "few",
		"for", "from", "further", "had", "has", "have", "having", "her",
		"here", "hers", "him", "his", "how", "into", "its", "itself", "just",
		"more", "most", "not", "now", "off", "once", "only", "other", "our",
		"ours", "out", "over", "own", "same", "she", "should", "some", "such",
		"than", "that", "the", "their", "theirs", "them", "then", "there",
		"these", "they", "this", "those", "through", "too", "under", "until",
		"very", "was", "were", "what", "when", "where", "which", "while",
		"who", "whom", "why", "will", "with", "would", "you", "your", "yours",
	} {
		stopwords[w] = struct{}{}
	}
}

func isStopword(word string) bool {
	_, ok := stopwords[word]
	return ok
}
