package memhost

import (
	"gonum.org/v1/gonum/spatial/r3"

	"rig-retarget/internal/rig"
)

// restKey is the pose of b with no animation applied.
func restKey(b *Bone, frame int) Key {
	return Key{Frame: frame, Head: b.head, Tail: b.tail}
}

// posed returns the animated pose of b at frame, ignoring constraints.
func (a *Armature) posed(b *Bone, frame int) Key {
	if a.action != nil {
		if k, ok := a.action.sample(b.name, frame); ok {
			k.Frame = frame
			return k
		}
	}

	return restKey(b, frame)
}

// evaluate returns the pose of b at frame with its constraints applied in
// order. Constraints whose target cannot be resolved are skipped.
func (s *Scene) evaluate(a *Armature, b *Bone, frame int) Key {
	k := a.posed(b, frame)

	for _, c := range b.constraints {
		src, ok := s.Armature(c.Target)
		if !ok {
			continue
		}

		sb := src.PoseBone(c.Subtarget)
		if sb == nil {
			continue
		}

		// Subtargets are read unconstrained to avoid evaluation cycles.
		sk := src.posed(sb, frame)

		switch c.Kind {
		case rig.KindCopyLocation:
			k = copyLocation(k, sk.Head, c.Axes)
		case rig.KindDampedTrack:
			k = dampedTrack(k, lerp(sk.Head, sk.Tail, c.HeadTail), c.TrackAxis)
		}
	}

	return k
}

// copyLocation moves k so the enabled axes of its head match to.
func copyLocation(k Key, to r3.Vec, axes rig.Axes) Key {
	head := k.Head
	if axes.Has(rig.AxisX) {
		head.X = to.X
	}

	if axes.Has(rig.AxisY) {
		head.Y = to.Y
	}

	if axes.Has(rig.AxisZ) {
		head.Z = to.Z
	}

	delta := r3.Sub(head, k.Head)
	k.Head = head
	k.Tail = r3.Add(k.Tail, delta)

	return k
}

// dampedTrack turns the bone's length axis toward point. Only the Y axis is
// modelled since bones have no stored roll here.
func dampedTrack(k Key, point r3.Vec, axis rig.TrackAxis) Key {
	if axis != rig.TrackY {
		return k
	}

	length := r3.Norm(r3.Sub(k.Tail, k.Head))

	dir := r3.Sub(point, k.Head)
	if r3.Norm(dir) == 0 || length == 0 {
		return k
	}

	k.Tail = r3.Add(k.Head, r3.Scale(length, r3.Unit(dir)))

	return k
}
