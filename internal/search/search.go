package search

import (
	"sort"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"inaudible/internal/models"
)

// Result is one matching episode. Lower Distance is a better match.
type Result struct {
	Episode  models.Episode `json:"episode"`
	Distance int            `json:"distance"`
	Field    string         `json:"field"`
}

// Episodes fuzzy-matches query against each episode's number, title, slug and
// categories, case-insensitively. Results are sorted by distance; equal
// distances keep the input order. limit <= 0 means no limit.
func Episodes(query string, episodes []models.Episode, limit int) []Result {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	var results []Result
	for _, ep := range episodes {
		if r, ok := match(query, ep); ok {
			results = append(results, r)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

func match(query string, ep models.Episode) (Result, bool) {
	// an exact episode number beats any text match
	if ep.Number != nil && query == strconv.Itoa(*ep.Number) {
		return Result{Episode: ep, Distance: 0, Field: "number"}, true
	}

	best := Result{Episode: ep, Distance: -1}
	try := func(field, target string) {
		d := fuzzy.RankMatchFold(query, target)
		if d < 0 {
			return
		}
		// keep number matches strictly ahead of text matches
		d++
		if best.Distance < 0 || d < best.Distance {
			best.Distance = d
			best.Field = field
		}
	}

	try("title", ep.Title)
	try("slug", ep.Slug)
	for _, c := range ep.Categories {
		try("category", c)
	}
	return best, best.Distance >= 0
}
