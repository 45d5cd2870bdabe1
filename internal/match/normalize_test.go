package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBone(t *testing.T) {
	tests := []struct {
		input string
		key   string
		side  Side
	}{
		{"mixamorig:LeftForeArm", "forearm", Left},
		{"forearm_fk.L", "forearm", Left},
		{"ForeArm_FK_L", "forearm", Left},
		{"mixamorig:RightUpLeg", "upleg", Right},
		{"upper_arm_fk.R", "upperarm", Right},
		{"spine_fk.002", "spine002", Center},
		{"mixamorig:Spine1", "spine1", Center},
		{"MCH-spine.001", "spine001", Center},
		{"FKHead", "head", Center},
		{"root", "root", Center},
		{"", "", Center},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := NormalizeBone(tt.input)
			assert.Equal(t, tt.key, got.Key)
			assert.Equal(t, tt.side, got.Side)
			assert.Equal(t, tt.input, got.Raw)
		})
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"Left", "Hand", "Index", "1"}, tokenize("LeftHandIndex1"))
	assert.Equal(t, []string{"upper", "arm", "fk", "L"}, tokenize("upper_arm_fk.L"))
	assert.Equal(t, []string{"FK", "Arm"}, tokenize("FKArm"))
	assert.Nil(t, tokenize(""))
}

func TestSideString(t *testing.T) {
	assert.Equal(t, "left", Left.String())
	assert.Equal(t, "right", Right.String())
	assert.Equal(t, "center", Center.String())
}
