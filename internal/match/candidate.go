package match

import (
	"sort"
)

// Scoring weights and acceptance thresholds.
const (
	nameWeight = 0.7
	sideWeight = 0.3

	// DefaultMinScore is the minimum score for accepting a match.
	DefaultMinScore = 0.7
	// DefaultMinGap is the minimum score gap between the two best
	// candidates.
	DefaultMinGap = 0.15
)

// Candidate is one possible bone for a name.
type Candidate struct {
	Name      string
	Bone      string
	NameScore float64
	SideMatch bool
	Score     float64
}

// CandidateList is ordered best first.
type CandidateList []Candidate

// Score compares two normalized names.
func Score(a, b BoneName) (nameScore float64, sideMatch bool, score float64) {
	nameScore = Similarity(a.Key, b.Key)
	sideMatch = a.Side == b.Side

	score = nameScore * nameWeight
	if sideMatch {
		score += sideWeight
	}

	return nameScore, sideMatch, score
}

// Rank scores every bone against name.
func Rank(name string, bones []string) CandidateList {
	want := NormalizeBone(name)
	out := make(CandidateList, 0, len(bones))

	for _, bone := range bones {
		nameScore, sideMatch, score := Score(want, NormalizeBone(bone))
		out = append(out, Candidate{
			Name:      name,
			Bone:      bone,
			NameScore: nameScore,
			SideMatch: sideMatch,
			Score:     score,
		})
	}

	sort.Sort(out)

	return out
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface. Ties are broken by bone name.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Bone < c[j].Bone
}

// Top returns the first n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the first candidate, or nil.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// HighConfidence returns the best candidate when it scores at least
// minScore, is on the same side and leads the runner-up by minGap.
func (c CandidateList) HighConfidence(minScore, minGap float64) *Candidate {
	best := c.Best()
	if best == nil || best.Score < minScore || !best.SideMatch {
		return nil
	}

	if len(c) > 1 && best.Score-c[1].Score < minGap {
		return nil
	}

	return best
}
