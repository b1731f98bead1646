package entity

// MaxMatches は表示する候補の最大件数です。
const MaxMatches = 10

// Match is an autocomplete suggestion. Name is empty for locally filtered classes.
type Match struct {
	Symbol string
	Name   string
}

// Cap returns at most MaxMatches leading matches.
func Cap(matches []Match) []Match {
	if len(matches) > MaxMatches {
		return matches[:MaxMatches]
	}
	return matches
}
