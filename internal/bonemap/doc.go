// Package bonemap holds the bone correspondence table between a Mixamo
// source skeleton and a Rigify target rig.
//
// The table is pure data: source bone to target FK control, the root bone on
// each side, the per-limb bones carrying the IK/FK blend property, and the
// tag used to name every constraint the retargeter creates. Default returns
// the built-in table; YAML files can replace it.
//
// # File format
//
//	version: "1"
//	tag: MIXAMO_RETARGET
//	roots:
//	  source: mixamorig:Hips
//	  target: root
//	ikfk:
//	  property: IK_FK
//	  toggles:
//	    left_arm: upper_arm_parent.L
//	    right_arm: upper_arm_parent.R
//	    left_leg: thigh_parent.L
//	    right_leg: thigh_parent.R
//	bones:
//	  mixamorig:Hips: torso
//	  mixamorig:Spine: spine_fk
//
// Omitted sections fall back to the built-in values. The order of the bones
// mapping is kept.
//
// Lookups never fail: a bone missing on a particular rig instance is simply
// skipped by callers. Validate reports such gaps as warnings, and Suggest
// proposes renamed controls on a custom rig to fill them.
package bonemap
