package memhost

import (
	"slices"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Key is a sampled world-space bone pose at one frame.
type Key struct {
	Frame int
	Head  r3.Vec
	Tail  r3.Vec
}

// Action is an animation clip of per-bone pose samples.
type Action struct {
	name   string
	start  int
	end    int
	tracks map[string][]Key
}

// Name implements rig.Action.
func (a *Action) Name() string { return a.name }

// FrameRange implements rig.Action.
func (a *Action) FrameRange() (start, end int) { return a.start, a.end }

// SetFrameRange overrides the clip range.
func (a *Action) SetFrameRange(start, end int) {
	a.start, a.end = start, end
}

// SetKey inserts or replaces the key of bone at k.Frame.
func (a *Action) SetKey(bone string, k Key) {
	track := a.tracks[bone]

	i, found := slices.BinarySearchFunc(track, k.Frame, func(e Key, f int) int { return e.Frame - f })
	if found {
		track[i] = k
	} else {
		track = slices.Insert(track, i, k)
	}

	a.tracks[bone] = track
}

// Track returns the keys of bone ordered by frame.
func (a *Action) Track(bone string) []Key {
	return slices.Clone(a.tracks[bone])
}

// Bones returns every bone with at least one key, sorted.
func (a *Action) Bones() []string {
	out := make([]string, 0, len(a.tracks))
	for name, track := range a.tracks {
		if len(track) > 0 {
			out = append(out, name)
		}
	}

	sort.Strings(out)

	return out
}

// KeyedFrames returns the frames keyed for bone.
func (a *Action) KeyedFrames(bone string) []int {
	track := a.tracks[bone]

	out := make([]int, len(track))
	for i, k := range track {
		out[i] = k.Frame
	}

	return out
}

// sample returns the pose of bone at frame, interpolating linearly between
// keys and holding the first and last key outside them.
func (a *Action) sample(bone string, frame int) (Key, bool) {
	track := a.tracks[bone]
	if len(track) == 0 {
		return Key{}, false
	}

	i, found := slices.BinarySearchFunc(track, frame, func(e Key, f int) int { return e.Frame - f })

	switch {
	case found:
		return track[i], true
	case i == 0:
		return track[0], true
	case i == len(track):
		return track[len(track)-1], true
	}

	prev, next := track[i-1], track[i]
	t := float64(frame-prev.Frame) / float64(next.Frame-prev.Frame)

	return Key{
		Frame: frame,
		Head:  lerp(prev.Head, next.Head, t),
		Tail:  lerp(prev.Tail, next.Tail, t),
	}, true
}

func lerp(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}
