package posectx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rig-retarget/internal/memhost"
	"rig-retarget/internal/rig"
)

func demo(t *testing.T) (*memhost.Scene, *memhost.Armature) {
	t.Helper()

	s := memhost.DemoScene()
	tgt, ok := s.Armature(memhost.DemoTarget)
	require.True(t, ok)

	return s, tgt
}

func TestDoRestoresContext(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(t *testing.T, s *memhost.Scene, tgt *memhost.Armature)
		bodyErr error
	}{
		{
			name:    "mesh active in object mode",
			prepare: func(*testing.T, *memhost.Scene, *memhost.Armature) {},
		},
		{
			name:    "body fails",
			prepare: func(*testing.T, *memhost.Scene, *memhost.Armature) {},
			bodyErr: errors.New("constraint creation failed"),
		},
		{
			name: "nothing active",
			prepare: func(_ *testing.T, s *memhost.Scene, _ *memhost.Armature) {
				s.SetActiveObject(nil)
			},
		},
		{
			name: "target already in pose mode",
			prepare: func(t *testing.T, s *memhost.Scene, tgt *memhost.Armature) {
				s.SetActiveObject(tgt)
				require.NoError(t, s.SetMode(rig.ModePose))
			},
		},
		{
			name: "target in edit mode",
			prepare: func(t *testing.T, s *memhost.Scene, tgt *memhost.Armature) {
				s.SetActiveObject(tgt)
				require.NoError(t, s.SetMode(rig.ModeEdit))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, tgt := demo(t)
			tt.prepare(t, s, tgt)

			beforeActive := s.ActiveObject()
			beforeMode := s.Mode()

			g := New(s, nil)
			err := g.Do(tgt, func() error {
				assert.Equal(t, tgt.Name(), s.ActiveObject().Name())
				assert.Equal(t, rig.ModePose, s.Mode())

				return tt.bodyErr
			})

			if tt.bodyErr != nil {
				require.ErrorIs(t, err, tt.bodyErr)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, beforeActive, s.ActiveObject())
			assert.Equal(t, beforeMode, s.Mode())
		})
	}
}

func TestDoRestoresAfterPanic(t *testing.T) {
	s, tgt := demo(t)
	before := s.ActiveObject()

	g := New(s, nil)

	assert.Panics(t, func() {
		_ = g.Do(tgt, func() error { panic("host crashed") })
	})

	assert.Equal(t, before, s.ActiveObject())
	assert.Equal(t, rig.ModeObject, tgt.Mode())
}

func TestExitSwallowsUnrestorableMode(t *testing.T) {
	s, tgt := demo(t)
	require.NoError(t, s.SetMode(rig.ModeSculpt))

	body := s.ActiveObject()

	g := New(s, nil)
	snap, err := g.Enter(tgt)
	require.NoError(t, err)
	assert.Equal(t, rig.ModeSculpt, snap.Mode())

	// The armature cannot enter sculpt mode; only the active object comes back.
	g.Exit(snap)

	assert.Equal(t, body, s.ActiveObject())
	assert.Equal(t, rig.ModeSculpt, s.Mode())
	assert.Equal(t, rig.ModePose, tgt.Mode())
}

func TestExitIsOnceOnly(t *testing.T) {
	s, tgt := demo(t)
	g := New(s, nil)

	snap, err := g.Enter(tgt)
	require.NoError(t, err)
	g.Exit(snap)

	s.SetActiveObject(tgt)
	g.Exit(snap)
	g.Exit(nil)

	assert.Equal(t, tgt.Name(), s.ActiveObject().Name())
}

func TestEnterFailureRestoresActive(t *testing.T) {
	s, _ := demo(t)
	empty, err := s.AddObject("Camera", memhost.KindEmpty)
	require.NoError(t, err)

	before := s.ActiveObject()
	g := New(s, nil)

	called := false
	err = g.Do(fakeSkeleton{Object: empty}, func() error {
		called = true
		return nil
	})

	require.ErrorIs(t, err, memhost.ErrUnsupportedMode)
	assert.False(t, called)
	assert.Equal(t, before, s.ActiveObject())
}

// fakeSkeleton lets a non-armature object pose as a skeleton so the mode
// switch fails.
type fakeSkeleton struct {
	*memhost.Object
}

func (fakeSkeleton) Bone(string) (rig.Bone, bool)  { return nil, false }
func (fakeSkeleton) Bones() []rig.Bone             { return nil }
func (fakeSkeleton) Collections() []rig.Collection { return nil }
func (fakeSkeleton) Action() rig.Action            { return nil }
func (fakeSkeleton) SetAction(rig.Action)          {}
