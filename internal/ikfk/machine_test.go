package ikfk

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rig-retarget/internal/bonemap"
	"rig-retarget/internal/memhost"
	"rig-retarget/internal/rig"
)

func posed(t *testing.T) (*memhost.Scene, *memhost.Armature) {
	t.Helper()

	s := memhost.DemoScene()
	tgt, ok := s.Armature(memhost.DemoTarget)
	require.True(t, ok)

	s.SetActiveObject(tgt)
	require.NoError(t, s.SetMode(rig.ModePose))

	return s, tgt
}

func blends(t *testing.T, tgt *memhost.Armature) map[bonemap.Limb]float64 {
	t.Helper()

	table := bonemap.Default()
	out := map[bonemap.Limb]float64{}

	for _, limb := range bonemap.Limbs {
		v, ok := tgt.PoseBone(table.Toggle(limb)).Property(table.ToggleProperty())
		require.True(t, ok)

		out[limb] = v
	}

	return out
}

func TestRoundTripsThroughMixed(t *testing.T) {
	paths := [][]Mode{
		{IK, Mixed},
		{FK, Mixed},
		{IK, FK, Mixed},
		{FK, IK, FK, Mixed},
		{FK, Mixed, IK, Mixed},
	}

	for _, path := range paths {
		t.Run(fmt.Sprint(path), func(t *testing.T) {
			s, tgt := posed(t)
			original := blends(t, tgt)

			m := NewMachine(bonemap.Default(), s, nil, nil)
			for _, mode := range path {
				applied, err := m.Transition(tgt, mode)
				require.NoError(t, err)
				require.True(t, applied)
			}

			assert.Equal(t, original, blends(t, tgt))
			assert.Equal(t, Mixed, m.Mode())
		})
	}
}

func TestForcedModes(t *testing.T) {
	s, tgt := posed(t)
	m := NewMachine(bonemap.Default(), s, nil, nil)

	_, err := m.Transition(tgt, IK)
	require.NoError(t, err)

	for limb, v := range blends(t, tgt) {
		assert.Zero(t, v, limb)
	}

	_, err = m.Transition(tgt, FK)
	require.NoError(t, err)

	for limb, v := range blends(t, tgt) {
		assert.Equal(t, 1.0, v, limb)
	}

	// IK -> FK must not have overwritten the snapshot with forced values.
	assert.Equal(t, 0.25, m.State().LeftLeg)
	assert.Equal(t, 1.0, m.State().RightArm)
}

func TestMixedToMixedKeepsLiveBlends(t *testing.T) {
	s, tgt := posed(t)
	original := blends(t, tgt)
	m := NewMachine(bonemap.Default(), s, nil, nil)

	applied, err := m.Transition(tgt, Mixed)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, original, blends(t, tgt))

	// A blend edited by hand after a round trip survives a repeated Mixed.
	for _, mode := range []Mode{IK, Mixed} {
		_, err = m.Transition(tgt, mode)
		require.NoError(t, err)
	}

	require.NoError(t, tgt.PoseBone("thigh_parent.L").SetProperty(bonemap.DefaultToggleProperty, 0.5))

	_, err = m.Transition(tgt, Mixed)
	require.NoError(t, err)

	assert.Equal(t, 0.5, blends(t, tgt)[bonemap.LeftLeg])
}

func TestTransitionGuards(t *testing.T) {
	s, tgt := posed(t)
	original := blends(t, tgt)
	m := NewMachine(bonemap.Default(), s, nil, nil)

	applied, err := m.Transition(nil, IK)
	require.NoError(t, err)
	assert.False(t, applied)

	require.NoError(t, s.SetMode(rig.ModeObject))

	applied, err = m.Transition(tgt, IK)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, original, blends(t, tgt))
	assert.Equal(t, Mixed, m.Mode())
}

func TestUnknownMode(t *testing.T) {
	s, tgt := posed(t)
	m := NewMachine(bonemap.Default(), s, nil, nil)

	_, err := m.Transition(tgt, Mode("SPLINE"))
	require.ErrorIs(t, err, ErrUnknownMode)
}

func TestRetargetBeginEnd(t *testing.T) {
	s, tgt := posed(t)
	original := blends(t, tgt)
	m := NewMachine(bonemap.Default(), s, nil, nil)

	require.NoError(t, m.BeginRetarget(tgt))
	require.NoError(t, m.BeginRetarget(tgt))
	assert.Equal(t, FK, m.Mode())
	assert.Equal(t, Mixed, m.State().BeforeRetarget)

	require.NoError(t, m.EndRetarget(tgt))
	assert.Equal(t, Mixed, m.Mode())
	assert.Equal(t, Mode(""), m.State().BeforeRetarget)
	assert.Equal(t, original, blends(t, tgt))

	// Nothing remembered: no-op.
	require.NoError(t, m.EndRetarget(tgt))
	assert.Equal(t, Mixed, m.Mode())
}

func TestRetargetFromIK(t *testing.T) {
	s, tgt := posed(t)
	m := NewMachine(bonemap.Default(), s, nil, nil)

	_, err := m.Transition(tgt, IK)
	require.NoError(t, err)

	require.NoError(t, m.BeginRetarget(tgt))
	require.NoError(t, m.EndRetarget(tgt))

	assert.Equal(t, IK, m.Mode())

	for _, v := range blends(t, tgt) {
		assert.Zero(t, v)
	}
}

func TestMissingToggleBonesAreSkipped(t *testing.T) {
	s := memhost.NewScene("Scene")
	tgt, err := s.AddArmature("Bare")
	require.NoError(t, err)

	s.SetActiveObject(tgt)
	require.NoError(t, s.SetMode(rig.ModePose))

	m := NewMachine(bonemap.Default(), s, nil, nil)

	applied, err := m.Transition(tgt, FK)
	require.NoError(t, err)
	assert.True(t, applied)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"fk", FK},
		{" IK ", IK},
		{"RIG", Mixed},
		{"rigify", Mixed},
		{"mixed", Mixed},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseMode("spline")
	require.ErrorIs(t, err, ErrUnknownMode)

	assert.Equal(t, "Rigify", Mixed.Label())
}

func TestSetBlendClamps(t *testing.T) {
	s := NewState()
	s.SetBlend(bonemap.LeftArm, 1.5)
	s.SetBlend(bonemap.RightLeg, -2)

	assert.Equal(t, 1.0, s.Blend(bonemap.LeftArm))
	assert.Equal(t, 0.0, s.Blend(bonemap.RightLeg))
}
