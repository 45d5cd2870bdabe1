package rig

//go:generate go tool stringer -type=ConstraintKind -trimprefix=Kind -output=constraint_kind_string.go

// ConstraintKind selects the constraint solver the host runs.
type ConstraintKind int

const (
	_ ConstraintKind = iota

	// KindDampedTrack aims one bone axis at a point, ignoring roll.
	KindDampedTrack
	// KindCopyLocation copies a world position, per enabled axis.
	KindCopyLocation
)

// Space is the coordinate space a constraint reads or writes in.
type Space string

const (
	SpaceWorld Space = "WORLD"
	SpaceLocal Space = "LOCAL"
)

// TrackAxis is the owner axis a damped track points at its target.
type TrackAxis string

const (
	TrackX TrackAxis = "TRACK_X"
	TrackY TrackAxis = "TRACK_Y"
	TrackZ TrackAxis = "TRACK_Z"
)

// Axes is a bit mask of world axes.
type Axes uint8

const (
	AxisX Axes = 1 << iota
	AxisY
	AxisZ

	AllAxes = AxisX | AxisY | AxisZ
)

// Has reports whether every axis in other is enabled.
func (a Axes) Has(other Axes) bool {
	return a&other == other
}

// Overlaps reports whether a and other share an axis.
func (a Axes) Overlaps(other Axes) bool {
	return a&other != 0
}

// String renders the mask as e.g. "XZ".
func (a Axes) String() string {
	s := ""
	if a.Has(AxisX) {
		s += "X"
	}

	if a.Has(AxisY) {
		s += "Y"
	}

	if a.Has(AxisZ) {
		s += "Z"
	}

	if s == "" {
		return "-"
	}

	return s
}

// Constraint is a constraint attached to a pose bone.
type Constraint struct {
	Name string
	Kind ConstraintKind
	// Target is the object the constraint reads from.
	Target string
	// Subtarget is the bone on Target.
	Subtarget   string
	TargetSpace Space
	OwnerSpace  Space
	// Axes restricts KindCopyLocation. Ignored by other kinds.
	Axes Axes
	// HeadTail picks the point along the subtarget, 0 head, 1 tail.
	HeadTail  float64
	TrackAxis TrackAxis
}

// PartialAxes reports whether c is a location copy restricted to a subset of axes.
func (c Constraint) PartialAxes() bool {
	return c.Kind == KindCopyLocation && c.Axes != AllAxes
}
