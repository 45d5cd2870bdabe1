package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankPrefersSameSide(t *testing.T) {
	bones := []string{"ForeArm_FK_R", "ForeArm_FK_L", "UpperArm_FK_L", "Head"}

	got := Rank("forearm_fk.L", bones)
	require.Len(t, got, 4)

	assert.Equal(t, "ForeArm_FK_L", got[0].Bone)
	assert.InDelta(t, 1.0, got[0].Score, 1e-9)
	assert.Equal(t, "ForeArm_FK_R", got[1].Bone)
	assert.False(t, got[1].SideMatch)

	best := got.HighConfidence(DefaultMinScore, DefaultMinGap)
	require.NotNil(t, best)
	assert.Equal(t, "ForeArm_FK_L", best.Bone)
}

func TestHighConfidenceRejects(t *testing.T) {
	tests := []struct {
		name  string
		bones []string
	}{
		{"empty", nil},
		{"too different", []string{"tail", "wing"}},
		{"wrong side", []string{"hand.R"}},
		{"tie", []string{"hand.L.001", "hand.L.002"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, Rank("hand_fk.L", tt.bones).HighConfidence(DefaultMinScore, DefaultMinGap))
		})
	}
}

func TestTopAndBest(t *testing.T) {
	got := Rank("head", []string{"neck", "head", "hand"})

	assert.Len(t, got.Top(2), 2)
	assert.Len(t, got.Top(10), 3)
	assert.Equal(t, "head", got.Best().Bone)
	assert.Nil(t, CandidateList{}.Best())
}
