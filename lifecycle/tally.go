// Copyright (c) 2026 Creator Hub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lifecycle

import "github.com/creatorhub/pulse/models"

// Tally aggregates the vote set for p into per-choice counts and
// percentages. TotalVoters is the number of vote records: a
// multi-select vote over N choices adds 1 to each of the N counters
// but only 1 voter, so multi-select percentages may sum past 100.
// With no votes every percentage is 0. Selections referencing choice
// ids the poll no longer owns are ignored.
func Tally(p models.Poll, votes []models.Vote) models.Tally {
	known := make(map[string]bool, len(p.Choices))
	for _, c := range p.Choices {
		known[c.ID] = true
	}

	counts := make(map[string]int, len(p.Choices))
	for _, v := range votes {
		for _, id := range v.ChoiceIDs {
			if known[id] {
				counts[id]++
			}
		}
	}

	t := models.Tally{
		PollID:      p.ID,
		TotalVoters: len(votes),
		Results:     make(map[string]models.ChoiceResult, len(p.Choices)),
	}
	for _, c := range p.Choices {
		r := models.ChoiceResult{
			ChoiceID: c.ID,
			Label:    c.Label,
			Count:    counts[c.ID],
		}
		if t.TotalVoters > 0 {
			r.Percentage = float64(r.Count) / float64(t.TotalVoters) * 100
		}
		t.Results[c.ID] = r
	}
	return t
}
