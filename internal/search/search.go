// Package search resolves operator-typed athlete names against the pool using
// Levenshtein distance, so the console accepts "dev malotra" as well as an
// exact ID.
package search

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/madrasbay/auctionhall/internal/models"
)

// maxDistance is the largest edit distance still considered a match.
const maxDistance = 5

// Match is one ranked search hit.
type Match struct {
	Athlete  models.Athlete
	Distance int
}

// FindAthlete returns the closest athlete to the query, preferring an exact ID
// match, then an exact case-insensitive name, then the smallest Levenshtein
// distance within the cutoff. The second return is false when nothing matched.
func FindAthlete(query string, athletes []models.Athlete) (models.Athlete, bool) {
	for i := range athletes {
		if athletes[i].ID == query {
			return athletes[i].Clone(), true
		}
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return models.Athlete{}, false
	}

	best := -1
	bestDistance := maxDistance + 1
	for i := range athletes {
		name := strings.ToLower(athletes[i].Name)
		if name == q {
			return athletes[i].Clone(), true
		}
		distance := fuzzy.LevenshteinDistance(q, name)
		if distance < bestDistance {
			bestDistance = distance
			best = i
		}
	}
	if best < 0 {
		return models.Athlete{}, false
	}
	return athletes[best].Clone(), true
}

// RankByName returns up to limit athletes ranked by edit distance to the
// query, closest first. Athletes beyond the distance cutoff are excluded.
func RankByName(query string, athletes []models.Athlete, limit int) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || limit <= 0 {
		return nil
	}

	var matches []Match
	for i := range athletes {
		distance := fuzzy.LevenshteinDistance(q, strings.ToLower(athletes[i].Name))
		if distance > maxDistance {
			continue
		}
		matches = append(matches, Match{Athlete: athletes[i].Clone(), Distance: distance})
	}

	// Insertion sort keeps ties in pool order.
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && matches[j].Distance < matches[j-1].Distance; j-- {
			matches[j], matches[j-1] = matches[j-1], matches[j]
		}
	}

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
