package bonemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"rig-retarget/internal/memhost"
)

func TestValidateDemoScene(t *testing.T) {
	s := memhost.DemoScene()
	src, _ := s.Armature(memhost.DemoSource)
	tgt, _ := s.Armature(memhost.DemoTarget)

	res := Validate(Default(), src, tgt)
	assert.Empty(t, res.All())
}

func TestValidateReportsGaps(t *testing.T) {
	s := memhost.NewScene("Scene")
	src, err := s.AddArmature("Source")
	require.NoError(t, err)
	src.AddBone("mixamorig:Head", r3.Vec{}, r3.Vec{Z: 1})

	tgt, err := s.AddArmature("Target")
	require.NoError(t, err)
	tgt.AddBone("head", r3.Vec{}, r3.Vec{Z: 1})
	tgt.AddBone("root", r3.Vec{}, r3.Vec{Y: 1})
	tgt.AddBone("upper_arm_parent.L", r3.Vec{}, r3.Vec{Z: 1})

	res := Validate(Default(), src, tgt)

	assert.False(t, res.HasErrors())
	assert.Len(t, res.WithCode(CodeSourceBoneAbsent), 21)
	assert.Len(t, res.WithCode(CodeTargetBoneAbsent), 21)
	assert.Len(t, res.WithCode(CodeRootAbsent), 1)
	assert.Len(t, res.WithCode(CodeToggleAbsent), 3)
	assert.Len(t, res.WithCode(CodeTogglePropAbsent), 1)

	root := res.WithCode(CodeRootAbsent)[0]
	assert.Equal(t, "Source", root.Rig)
	assert.Equal(t, DefaultSourceRoot, root.Bone)
}

func TestValidateMissingSkeleton(t *testing.T) {
	res := Validate(Default(), nil, nil)

	require.True(t, res.HasErrors())
	assert.Len(t, res.WithCode(CodeSkeletonMissing), 2)
	assert.Error(t, res.Error())
}
