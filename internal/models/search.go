package models

import (
	"sort"

	"github.com/sahilm/fuzzy"
)

// tournamentSource adapts tournaments for fuzzy matching on
// "title location" so either field can match.
type tournamentSource []Tournament

func (s tournamentSource) String(i int) string {
	return s[i].Title + " " + s[i].Location
}

func (s tournamentSource) Len() int {
	return len(s)
}

// FilterTournaments returns the tournaments matching query, best match
// first. An empty query returns ts unchanged.
func FilterTournaments(query string, ts []Tournament) []Tournament {
	if query == "" {
		return ts
	}

	matches := fuzzy.FindFrom(query, tournamentSource(ts))
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	out := make([]Tournament, len(matches))
	for i, m := range matches {
		out[i] = ts[m.Index]
	}
	return out
}
