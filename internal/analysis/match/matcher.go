// Package match implements the dev server's keyword-based therapist matching
// stub. The production scoring runs server-side in the real backend; this
// exists so local turns still carry plausible recommendation payloads.
package match

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nuanxinlab/heartchat-go/internal/model/therapist"
)

const keywordWeight = 3

// Result is one scored directory entry.
type Result struct {
	Therapist therapist.Therapist
	Score     float64
	Matched   []string
	Reason    string
}

// Rank scores every directory entry against the user message and returns the
// hits, best first, capped at limit. Entries without a single keyword hit are
// excluded. Ties keep directory order, so the output is deterministic.
func Rank(message string, directory []therapist.Therapist, limit int) []Result {
	normalized := strings.ToLower(strings.TrimSpace(message))
	if normalized == "" {
		return nil
	}

	var results []Result
	for _, entry := range directory {
		var matched []string
		score := 0
		for _, word := range entry.Keywords {
			if word == "" {
				continue
			}
			if strings.Contains(normalized, strings.ToLower(word)) {
				matched = append(matched, word)
				score += keywordWeight
			}
		}
		if score == 0 {
			continue
		}

		results = append(results, Result{
			Therapist: entry,
			Score:     float64(score),
			Matched:   matched,
			Reason:    fmt.Sprintf("你的描述与「%s」方向相关", strings.Join(entry.Specialties, "、")),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
