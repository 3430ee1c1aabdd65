package game

import "sort"

type RankedPlayer struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
}

const (
	ChallengeTruth = "真心话"
	ChallengeDare  = "大冒险"
)

// Challenge is the closing prompt computed at settlement. Narrative
// output only, never scored state.
type Challenge struct {
	Kind   string         `json:"kind"`
	Winner RankedPlayer   `json:"winner"`
	Losers []RankedPlayer `json:"losers"`
}

type Settlement struct {
	Ranking   []RankedPlayer `json:"ranking"`
	Challenge *Challenge     `json:"challenge,omitempty"`
}

// Settle ranks players by score descending, stable on join order, and
// picks the loser set for the challenge prompt. A challenge is emitted
// whenever at least two players took part, even if everyone scored
// zero: the loser set is then everyone at the shared minimum.
func Settle(players []RankedPlayer, challengeKind string) Settlement {
	ranking := make([]RankedPlayer, len(players))
	copy(ranking, players)
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Score > ranking[j].Score
	})

	result := Settlement{Ranking: ranking}
	if len(ranking) < 2 {
		return result
	}

	minScore := ranking[len(ranking)-1].Score
	var losers []RankedPlayer
	for _, p := range ranking {
		if p.Score == minScore {
			losers = append(losers, p)
		}
	}

	result.Challenge = &Challenge{
		Kind:   challengeKind,
		Winner: ranking[0],
		Losers: losers,
	}
	return result
}
