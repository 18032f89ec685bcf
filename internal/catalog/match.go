package catalog

import (
	"sort"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/shoplens/shoplens/internal/domain"
)

// Match selects catalog records for a predicted label and/or free-text
// keywords and returns them ranked by ascending price, catalog order
// preserved among equal prices.
//
// Non-empty keywords take exclusive precedence: a record matches when any
// whitespace-separated token appears as a substring of its case-folded
// name+brand+category. Without keywords, a record matches when its category
// and the label stand in a substring relation in either direction, which
// covers both over- and under-specific labels.
//
// Every record priced at the match-set minimum has BestPrice set.
func Match(products []domain.Product, label, keywords string) []domain.MatchResult {
	keywords = strings.TrimSpace(strings.ToLower(keywords))
	label = strings.ToLower(strings.TrimSpace(label))
	tokens := strings.Fields(keywords)

	matches := make([]domain.MatchResult, 0, 16)
	for _, p := range products {
		if keywords != "" {
			target := strings.ToLower(p.Name + " " + p.Brand + " " + p.Category)
			for _, tok := range tokens {
				if strings.Contains(target, tok) {
					matches = append(matches, domain.MatchResult{Product: p})
					break
				}
			}
			continue
		}
		cat := strings.ToLower(p.Category)
		if strings.Contains(cat, label) || strings.Contains(label, cat) {
			matches = append(matches, domain.MatchResult{Product: p})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Price < matches[j].Price
	})
	flagBestPrice(matches)
	return matches
}

// GlobalBestPrice reports the minimum price of the match set.
func GlobalBestPrice(matches []domain.MatchResult) (float64, bool) {
	if len(matches) == 0 {
		return 0, false
	}
	prices := make([]float64, len(matches))
	for i, m := range matches {
		prices[i] = m.Price
	}
	min, err := stats.Min(prices)
	if err != nil {
		return 0, false
	}
	return min, true
}

func flagBestPrice(matches []domain.MatchResult) {
	min, ok := GlobalBestPrice(matches)
	if !ok {
		return
	}
	for i := range matches {
		if matches[i].Price == min {
			matches[i].BestPrice = true
		}
	}
}
