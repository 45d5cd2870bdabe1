package memhost

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Names used by the demo scene.
const (
	DemoSource       = "Mixamo"
	DemoTarget       = "Rigify"
	DemoSourceAction = "Walk"
	DemoMesh         = "Body"
)

type demoBone struct {
	mixamo string
	rigify string
	head   r3.Vec
	tail   r3.Vec
	coll   string
}

func vec3(x, y, z float64) r3.Vec { return r3.Vec{X: x, Y: y, Z: z} }

var demoBones = []demoBone{
	{"mixamorig:Hips", "torso", vec3(0, 0, 1.0), vec3(0, 0, 1.1), "Torso"},
	{"mixamorig:Spine", "spine_fk", vec3(0, 0, 1.1), vec3(0, 0, 1.2), "Torso"},
	{"mixamorig:Spine1", "spine_fk.002", vec3(0, 0, 1.2), vec3(0, 0, 1.3), "Torso"},
	{"mixamorig:Spine2", "spine_fk.003", vec3(0, 0, 1.3), vec3(0, 0, 1.45), "Torso"},
	{"mixamorig:Neck", "neck", vec3(0, 0, 1.45), vec3(0, 0, 1.55), "Torso"},
	{"mixamorig:Head", "head", vec3(0, 0, 1.55), vec3(0, 0, 1.75), "Torso"},

	{"mixamorig:LeftShoulder", "shoulder.L", vec3(0.05, 0, 1.4), vec3(0.18, 0, 1.4), "Arms (FK)"},
	{"mixamorig:LeftArm", "upper_arm_fk.L", vec3(0.18, 0, 1.4), vec3(0.45, 0, 1.4), "Arms (FK)"},
	{"mixamorig:LeftForeArm", "forearm_fk.L", vec3(0.45, 0, 1.4), vec3(0.7, 0, 1.4), "Arms (FK)"},
	{"mixamorig:LeftHand", "hand_fk.L", vec3(0.7, 0, 1.4), vec3(0.8, 0, 1.4), "Arms (FK)"},

	{"mixamorig:RightShoulder", "shoulder.R", vec3(-0.05, 0, 1.4), vec3(-0.18, 0, 1.4), "Arms (FK)"},
	{"mixamorig:RightArm", "upper_arm_fk.R", vec3(-0.18, 0, 1.4), vec3(-0.45, 0, 1.4), "Arms (FK)"},
	{"mixamorig:RightForeArm", "forearm_fk.R", vec3(-0.45, 0, 1.4), vec3(-0.7, 0, 1.4), "Arms (FK)"},
	{"mixamorig:RightHand", "hand_fk.R", vec3(-0.7, 0, 1.4), vec3(-0.8, 0, 1.4), "Arms (FK)"},

	{"mixamorig:LeftUpLeg", "thigh_fk.L", vec3(0.1, 0, 1.0), vec3(0.1, 0, 0.55), "Legs (FK)"},
	{"mixamorig:LeftLeg", "shin_fk.L", vec3(0.1, 0, 0.55), vec3(0.1, 0, 0.1), "Legs (FK)"},
	{"mixamorig:LeftFoot", "foot_fk.L", vec3(0.1, 0, 0.1), vec3(0.1, -0.12, 0.02), "Legs (FK)"},
	{"mixamorig:LeftToeBase", "toe_fk.L", vec3(0.1, -0.12, 0.02), vec3(0.1, -0.2, 0.02), "Legs (FK)"},

	{"mixamorig:RightUpLeg", "thigh_fk.R", vec3(-0.1, 0, 1.0), vec3(-0.1, 0, 0.55), "Legs (FK)"},
	{"mixamorig:RightLeg", "shin_fk.R", vec3(-0.1, 0, 0.55), vec3(-0.1, 0, 0.1), "Legs (FK)"},
	{"mixamorig:RightFoot", "foot_fk.R", vec3(-0.1, 0, 0.1), vec3(-0.1, -0.12, 0.02), "Legs (FK)"},
	{"mixamorig:RightToeBase", "toe_fk.R", vec3(-0.1, -0.12, 0.02), vec3(-0.1, -0.2, 0.02), "Legs (FK)"},
}

// demoToggles carry a mixed IK/FK setup so restoring it is observable.
var demoToggles = []struct {
	bone  string
	blend float64
	head  r3.Vec
}{
	{"upper_arm_parent.L", 0.0, vec3(0.18, 0, 1.4)},
	{"upper_arm_parent.R", 1.0, vec3(-0.18, 0, 1.4)},
	{"thigh_parent.L", 0.25, vec3(0.1, 0, 1.0)},
	{"thigh_parent.R", 0.75, vec3(-0.1, 0, 1.0)},
}

// DemoWalkOffset is the whole-body translation of the demo walk cycle
// between its first and last frame.
var DemoWalkOffset = vec3(0.02, -0.5, 0.03)

// DemoScene returns a scene with a Mixamo source armature playing a short
// walk, a Rigify target armature and a mesh that is active in OBJECT mode.
//
// The target hides its "Legs (FK)" collection and one arm control so a bake
// that does not force visibility misses bones.
func DemoScene() *Scene {
	s := NewScene("Scene")

	walk := s.AddAction(DemoSourceAction, 1, 24)

	src, _ := s.AddArmature(DemoSource)
	for _, b := range demoBones {
		src.AddBone(b.mixamo, b.head, b.tail)
		walk.SetKey(b.mixamo, Key{Frame: 1, Head: b.head, Tail: b.tail})
		walk.SetKey(b.mixamo, Key{
			Frame: 24,
			Head:  r3.Add(b.head, DemoWalkOffset),
			Tail:  r3.Add(b.tail, DemoWalkOffset),
		})
	}

	src.action = walk

	tgt, _ := s.AddArmature(DemoTarget)
	tgt.AddCollection("Root")
	tgt.AddCollection("Torso")
	tgt.AddCollection("Arms (FK)")
	tgt.AddCollection("Legs (FK)").visible = false
	tgt.AddCollection("IK").visible = false

	tgt.AddBone("root", vec3(0, 0, 0), vec3(0, 0.3, 0), "Root")

	// Rigify controls are slightly taller than the Mixamo joints.
	for _, b := range demoBones {
		tgt.AddBone(b.rigify, r3.Scale(1.05, b.head), r3.Scale(1.05, b.tail), b.coll)
	}

	tgt.PoseBone("hand_fk.R").hidden = true

	for _, tg := range demoToggles {
		bone := tgt.AddBone(tg.bone, tg.head, r3.Add(tg.head, vec3(0, 0, 0.05)), "IK")
		bone.props["IK_FK"] = tg.blend
	}

	tgt.AddBone("upper_arm_ik.L", vec3(0.18, 0, 1.4), vec3(0.45, 0, 1.4), "IK")
	tgt.AddBone("MCH-spine.001", vec3(0, 0, 1.2), vec3(0, 0, 1.3))

	body, _ := s.AddObject(DemoMesh, KindMesh)
	s.active = body

	return s
}
