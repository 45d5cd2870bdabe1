package rig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAxes(t *testing.T) {
	torso := AxisX | AxisZ

	assert.True(t, torso.Has(AxisX))
	assert.False(t, torso.Has(AxisY))
	assert.False(t, torso.Overlaps(AxisY))
	assert.True(t, AllAxes.Overlaps(AxisY))
	assert.Equal(t, "XZ", torso.String())
	assert.Equal(t, "Y", AxisY.String())
	assert.Equal(t, "-", Axes(0).String())
}

func TestConstraintKindString(t *testing.T) {
	assert.Equal(t, "DampedTrack", KindDampedTrack.String())
	assert.Equal(t, "CopyLocation", KindCopyLocation.String())
	assert.Equal(t, "ConstraintKind(0)", ConstraintKind(0).String())
}

func TestPartialAxes(t *testing.T) {
	assert.True(t, Constraint{Kind: KindCopyLocation, Axes: AxisY}.PartialAxes())
	assert.False(t, Constraint{Kind: KindCopyLocation, Axes: AllAxes}.PartialAxes())
	assert.False(t, Constraint{Kind: KindDampedTrack}.PartialAxes())
}
