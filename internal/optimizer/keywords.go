package optimizer

import (
	"regexp"
	"strings"
)

// Words that carry no meaning when matching locations against each other.
var locationStopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "-": {},
}

// Strips punctuation while keeping letters and digits in any script, so
// accented location names keep their keywords intact.
var nonWordRe = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

const maxLocationKeywords = 3

// LocationKeywords extracts up to three meaningful keywords from a free-text
// location string: lowercased, punctuation stripped, stopwords removed,
// original order preserved.
func LocationKeywords(location string) []string {
	cleaned := nonWordRe.ReplaceAllString(strings.ToLower(location), " ")

	keywords := make([]string, 0, maxLocationKeywords)
	for _, word := range strings.Fields(cleaned) {
		if _, stop := locationStopwords[word]; stop {
			continue
		}
		keywords = append(keywords, word)
		if len(keywords) == maxLocationKeywords {
			break
		}
	}
	return keywords
}

// LocationSimilarity scores two locations in [0,1] as the Jaccard index of
// their keyword sets. Either side having no keywords scores 0. No synonym
// handling: different words for the same place do not match.
func LocationSimilarity(locA, locB string) float64 {
	setA := keywordSet(LocationKeywords(locA))
	setB := keywordSet(LocationKeywords(locB))

	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	intersection := 0
	for word := range setA {
		if _, ok := setB[word]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection

	return float64(intersection) / float64(union)
}

func keywordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
