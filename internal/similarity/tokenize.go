package similarity

import (
	"regexp"
	"strings"
)

// tokenPattern matches words of two or more word characters.
var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

// analyze lowercases text, drops stop words and returns its unigrams
// followed by its bigrams.
func analyze(text string) []string {
	words := tokenPattern.FindAllString(strings.ToLower(text), -1)
	kept := words[:0]
	for _, w := range words {
		if !englishStopWords[w] {
			kept = append(kept, w)
		}
	}

	terms := make([]string, 0, 2*len(kept))
	terms = append(terms, kept...)
	for i := 0; i+1 < len(kept); i++ {
		terms = append(terms, kept[i]+" "+kept[i+1])
	}
	return terms
}
