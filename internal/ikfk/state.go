package ikfk

import "rig-retarget/internal/bonemap"

// State is the per-session IK/FK record.
type State struct {
	// Limb blends captured when leaving Mixed.
	LeftArm  float64
	RightArm float64
	LeftLeg  float64
	RightLeg float64
	// Previous is the last mode applied to the rig.
	Previous Mode
	// BeforeRetarget is the mode selected when retargeting was enabled,
	// empty while retargeting is off.
	BeforeRetarget Mode
}

// NewState returns the state of a rig nobody has switched yet.
func NewState() State {
	return State{Previous: Mixed}
}

// Blend returns the captured blend of limb.
func (s *State) Blend(limb bonemap.Limb) float64 {
	switch limb {
	case bonemap.LeftArm:
		return s.LeftArm
	case bonemap.RightArm:
		return s.RightArm
	case bonemap.LeftLeg:
		return s.LeftLeg
	case bonemap.RightLeg:
		return s.RightLeg
	}

	return 0
}

// SetBlend stores the blend of limb clamped to [0, 1].
func (s *State) SetBlend(limb bonemap.Limb, v float64) {
	v = min(max(v, 0), 1)

	switch limb {
	case bonemap.LeftArm:
		s.LeftArm = v
	case bonemap.RightArm:
		s.RightArm = v
	case bonemap.LeftLeg:
		s.LeftLeg = v
	case bonemap.RightLeg:
		s.RightLeg = v
	}
}
