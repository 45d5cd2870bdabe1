package memhost

import (
	"fmt"
	"slices"

	"rig-retarget/internal/rig"
)

// Bake implements rig.Host. It keys every selected, visible bone of the
// active armature (every bone when OnlySelected is false) at each step in
// the inclusive frame range.
func (s *Scene) Bake(opts rig.BakeOptions) (rig.Action, error) {
	if s.BakeErr != nil {
		return nil, s.BakeErr
	}

	if s.active == nil {
		return nil, ErrNoActiveObject
	}

	arm, ok := s.active.(*Armature)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotArmature, s.active.Name())
	}

	if opts.Step < 1 {
		return nil, fmt.Errorf("%w: step %d", ErrInvalidBake, opts.Step)
	}

	if opts.FrameEnd < opts.FrameStart {
		return nil, fmt.Errorf("%w: frame range %d..%d", ErrInvalidBake, opts.FrameStart, opts.FrameEnd)
	}

	var bones []*Bone

	if slices.Contains(opts.Channels, rig.ChannelPose) {
		for _, b := range arm.bones {
			if opts.OnlySelected && !(b.selected && arm.boneVisible(b)) {
				continue
			}

			bones = append(bones, b)
		}
	}

	// Evaluate before touching the bound action: the bone poses read from it.
	keys := make(map[string][]Key, len(bones))

	for _, b := range bones {
		for f := opts.FrameStart; f <= opts.FrameEnd; f += opts.Step {
			if opts.VisualKeying {
				keys[b.name] = append(keys[b.name], s.evaluate(arm, b, f))
			} else {
				keys[b.name] = append(keys[b.name], arm.posed(b, f))
			}
		}
	}

	act := arm.action
	if !opts.UseCurrentAction || act == nil {
		act = s.AddAction("Action", opts.FrameStart, opts.FrameEnd)
		arm.action = act
	} else {
		act.start = min(act.start, opts.FrameStart)
		act.end = max(act.end, opts.FrameEnd)
	}

	for bone, track := range keys {
		for _, k := range track {
			act.SetKey(bone, k)
		}
	}

	s.Bakes = append(s.Bakes, opts)

	return act, nil
}
