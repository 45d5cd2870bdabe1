package bonemap

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeepsOrder(t *testing.T) {
	data := []byte(`
version: "1"
tag: RETARGET
roots:
  source: Armature:Hips
ikfk:
  property: ik_fk_switch
  toggles:
    left_arm: arm_parent.L
bones:
  Armature:Head: head
  Armature:Hips: torso
  Armature:Neck: neck
`)

	table, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, []Entry{
		{"Armature:Head", "head"},
		{"Armature:Hips", "torso"},
		{"Armature:Neck", "neck"},
	}, table.Entries())

	assert.Equal(t, "RETARGET", table.Tag())
	assert.Equal(t, "Armature:Hips", table.SourceRoot())
	assert.Equal(t, DefaultTargetRoot, table.TargetRoot())
	assert.Equal(t, "ik_fk_switch", table.ToggleProperty())
	assert.Equal(t, "arm_parent.L", table.Toggle(LeftArm))
	assert.Equal(t, "upper_arm_parent.R", table.Toggle(RightArm))
}

func TestParseDefaults(t *testing.T) {
	table, err := Parse([]byte(`version: "1"`))
	require.NoError(t, err)

	assert.Equal(t, Default().Entries(), table.Entries())
	assert.Equal(t, DefaultTag, table.Tag())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		err  error
	}{
		{
			name: "duplicate key",
			data: "bones:\n  a: x\n  a: y\n",
			err:  ErrDuplicateSource,
		},
		{
			name: "duplicate target",
			data: "bones:\n  a: x\n  b: x\n",
			err:  ErrDuplicateTarget,
		},
		{
			name: "unknown limb",
			data: "ikfk:\n  toggles:\n    tail: t\n",
			err:  ErrUnknownLimb,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.ErrorIs(t, err, tt.err)
		})
	}

	_, err := Parse([]byte("bones: [a, b]"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bones must be a mapping")
}

func TestWriteLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bones.yaml")

	require.NoError(t, WriteFile(Default(), path))

	table, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, Default().Entries(), table.Entries())
	assert.Equal(t, Default().Toggles(), table.Toggles())
	assert.Equal(t, Default().Tag(), table.Tag())
	assert.Equal(t, Default().SourceRoot(), table.SourceRoot())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestMarshalWritesBonesAsMapping(t *testing.T) {
	table, err := New(Config{Entries: []Entry{{"mixamorig:Head", "head"}}})
	require.NoError(t, err)

	data, err := Marshal(table)
	require.NoError(t, err)

	assert.Contains(t, string(data), "mixamorig:Head: head")
}
