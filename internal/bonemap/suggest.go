package bonemap

import (
	"slices"

	"rig-retarget/internal/match"
	"rig-retarget/internal/rig"
)

// Suggestion proposes a replacement for a target bone missing on a rig.
type Suggestion struct {
	Entry Entry
	// Candidates are the best scoring rig bones, best first.
	Candidates match.CandidateList
	// Replacement is empty when no candidate is a confident match.
	Replacement string
}

// Suggest looks for renamed controls on target. For each entry whose target
// bone is missing it ranks the rig's unmapped bones by name, and proposes
// the best one when it is a confident match not already proposed.
func Suggest(t *Table, target rig.Skeleton) []Suggestion {
	taken := map[string]bool{t.targetRoot: true}
	for _, name := range t.toggles {
		taken[name] = true
	}

	var missing []Entry

	for _, e := range t.entries {
		if _, ok := target.Bone(e.Target); ok {
			taken[e.Target] = true
		} else {
			missing = append(missing, e)
		}
	}

	var pool []string

	for _, b := range target.Bones() {
		if !taken[b.Name()] {
			pool = append(pool, b.Name())
		}
	}

	out := make([]Suggestion, 0, len(missing))

	for _, e := range missing {
		ranked := match.Rank(e.Target, pool)
		s := Suggestion{Entry: e, Candidates: ranked.Top(3)}

		if best := ranked.HighConfidence(match.DefaultMinScore, match.DefaultMinGap); best != nil && !taken[best.Bone] {
			s.Replacement = best.Bone
			taken[best.Bone] = true
		}

		out = append(out, s)
	}

	return out
}

// Config returns the settings t was built from.
func (t *Table) Config() Config {
	return Config{
		Entries:        slices.Clone(t.entries),
		SourceRoot:     t.sourceRoot,
		TargetRoot:     t.targetRoot,
		Toggles:        t.Toggles(),
		ToggleProperty: t.toggleProperty,
		Tag:            t.tag,
	}
}

// Apply returns a copy of t with every suggested replacement applied.
func Apply(t *Table, suggestions []Suggestion) (*Table, error) {
	cfg := t.Config()

	replace := make(map[string]string, len(suggestions))
	for _, s := range suggestions {
		if s.Replacement != "" {
			replace[s.Entry.Source] = s.Replacement
		}
	}

	for i, e := range cfg.Entries {
		if r, ok := replace[e.Source]; ok {
			cfg.Entries[i].Target = r
		}
	}

	return New(cfg)
}
